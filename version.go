// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package unity

// SerializedFile format generations. The version lives in the file
// header and gates nearly every conditional field in the metadata.
const (
	// MinSerializedFileSize is the byte size of the padded file header,
	// the smallest a SerializedFile can be.
	MinSerializedFileSize = 20

	// MinSupportedVersion is the oldest header version the schema has
	// conditionals for. Unity 1.x wrote generation 5.
	MinSupportedVersion = 5

	// VersionFlatTypeTree is the first generation to store type trees
	// as a flat node table with a string buffer. Generation 11 briefly
	// reverted to the recursive layout.
	VersionFlatTypeTree = 10

	// VersionAddsTable is the first generation with the script-add
	// object pointer table.
	VersionAddsTable = 11

	// VersionTypeHashes is the first generation carrying per-type
	// hashes and the serialize-type-trees toggle.
	VersionTypeHashes = 13

	// VersionWidePathIDs is the first generation with aligned 64-bit
	// path and object identifiers.
	VersionWidePathIDs = 14

	// VersionTypeIndices is the first generation where objects refer to
	// their type by table index instead of class id.
	VersionTypeIndices = 17

	// MaxKnownVersion is the newest generation the schema was written
	// against. Newer files still parse; unknown conditionals simply do
	// not fire.
	MaxKnownVersion = 17
)
