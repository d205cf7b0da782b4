// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package unity

// Hash is a 16-byte hash stored as four words in stream endianness.
type Hash struct {
	Hash [4]uint32 `json:"hash"`
}

// TypeString implements Serializable.
func (h *Hash) TypeString() string {
	return "Hash"
}

// Serialize implements Serializable.
func (h *Hash) Serialize(s Serializer) {
	SerializeScalar(s, &h.Hash[0], "uint32_t", "hash[0]", 0)
	SerializeScalar(s, &h.Hash[1], "uint32_t", "hash[1]", 0)
	SerializeScalar(s, &h.Hash[2], "uint32_t", "hash[2]", 0)
	SerializeScalar(s, &h.Hash[3], "uint32_t", "hash[3]", 0)
}

// Header is the SerializedFile file header. Every header scalar is
// big-endian regardless of the stream latch; the trailing BigEndian
// boolean decides the byte order of everything that follows it.
type Header struct {
	MetadataSize     int32 `json:"metadata_size"`
	FileSize         int32 `json:"file_size"`
	Version          int32 `json:"version"`
	ObjectDataOffset int32 `json:"object_data_offset"`
	BigEndian        bool  `json:"big_endian"`
}

// TypeString implements Serializable.
func (h *Header) TypeString() string {
	return "SerializedFile::Header"
}

// Serialize implements Serializable.
func (h *Header) Serialize(s Serializer) {
	SerializeScalar(s, &h.MetadataSize, "int", "metadataSize", FlagBigEndian)
	SerializeScalar(s, &h.FileSize, "int", "fileSize", FlagBigEndian)
	SerializeScalar(s, &h.Version, "int", "version", FlagBigEndian|FlagVariable)
	SerializeScalar(s, &h.ObjectDataOffset, "int", "objectDataOffset", FlagBigEndian)
	SerializeScalar(s, &h.BigEndian, "bool", "bigEndian", FlagPostAlign|FlagBigEndianWhenTrue)
}

// TypeMetadata describes one serialized class: its class id, hashes and
// optionally its embedded type tree.
type TypeMetadata struct {
	OldClassID int32    `json:"old_class_id"`
	ClassID    int32    `json:"class_id"`
	Unk0       uint8    `json:"unk0"`
	ScriptID   int16    `json:"script_id"`
	ScriptHash Hash     `json:"script_hash"`
	TypeHash   Hash     `json:"type_hash"`
	Tree       TypeTree `json:"tree"`
}

// TypeString implements Serializable.
func (t *TypeMetadata) TypeString() string {
	return "SerializedFile::TypeMetadata"
}

// Serialize implements Serializable.
func (t *TypeMetadata) Serialize(s Serializer) {
	SerializeIf(s, "version", "version >= 17", func(v int) bool {
		return v >= 17
	}, func() {
		s.SetVariable("oldClassID", 0)
		SerializeScalar(s, &t.ClassID, "int", "classID", FlagVariable)
		SerializeScalar(s, &t.Unk0, "uint8_t", "unk0", 0)
		SerializeScalar(s, &t.ScriptID, "int16_t", "scriptID", 0)
	}, func() {
		SerializeScalar(s, &t.OldClassID, "int", "oldClassID", FlagVariable)
		s.SetVariable("classID", 0)
	})
	SerializeIf(s, "version", "version >= 13", func(v int) bool {
		return v >= 13
	}, func() {
		SerializeIf(s, "oldClassID", "oldClassID < 0", func(v int) bool {
			return v < 0
		}, func() {
			SerializeStruct(s, &t.ScriptHash, "scriptHash", 0)
		}, nil)
		SerializeIf(s, "classID", "classID == 114", func(v int) bool {
			return v == 114
		}, func() {
			SerializeStruct(s, &t.ScriptHash, "scriptHash", 0)
		}, nil)
		SerializeStruct(s, &t.TypeHash, "typeHash", 0)
	}, nil)
	SerializeIf(s, "serializeTypeTrees", "serializeTypeTrees != 0", func(v int) bool {
		return v != 0
	}, func() {
		SerializeStruct(s, &t.Tree, "tree", 0)
	}, nil)
}

// ObjectPtr references an object in this or another file.
type ObjectPtr struct {
	FileID int32  `json:"file_id"`
	PathID uint64 `json:"path_id"`
}

// TypeString implements Serializable.
func (p *ObjectPtr) TypeString() string {
	return "SerializedFile::ObjectPtr"
}

// Serialize implements Serializable.
func (p *ObjectPtr) Serialize(s Serializer) {
	SerializeScalar(s, &p.FileID, "int", "fileID", 0)
	SerializeIf(s, "version", "version >= 14", func(v int) bool {
		return v >= 14
	}, func() {
		SerializeScalar(s, &p.PathID, "uint64_t", "pathID", FlagPreAlign)
	}, func() {
		SerializeScalar(s, &p.PathID, "uint32_t", "pathID", FlagValueIs32Bit)
	})
}

// ObjectInfo locates one object's payload inside the object data block.
type ObjectInfo struct {
	ObjectID   uint64 `json:"object_id"`
	DataOffset int32  `json:"data_offset"`
	DataSize   int32  `json:"data_size"`
	TypeID     int32  `json:"type_id"`
	ClassID    int16  `json:"class_id"`
	TypeIndex  int32  `json:"type_index"`
	ScriptID   int16  `json:"script_id"`
	Unk0       uint8  `json:"unk0"`
}

// TypeString implements Serializable.
func (o *ObjectInfo) TypeString() string {
	return "SerializedFile::ObjectInfo"
}

// Serialize implements Serializable.
func (o *ObjectInfo) Serialize(s Serializer) {
	SerializeIf(s, "version", "version >= 14", func(v int) bool {
		return v >= 14
	}, func() {
		SerializeScalar(s, &o.ObjectID, "uint64_t", "objectID", FlagPreAlign)
	}, func() {
		SerializeScalar(s, &o.ObjectID, "uint32_t", "objectID", FlagValueIs32Bit)
	})
	SerializeScalar(s, &o.DataOffset, "int", "dataOffset", 0)
	SerializeScalar(s, &o.DataSize, "int", "dataSize", 0)
	SerializeIf(s, "version", "version >= 17", func(v int) bool {
		return v >= 17
	}, func() {
		SerializeScalar(s, &o.TypeIndex, "int", "typeIndex", 0)
	}, func() {
		SerializeScalar(s, &o.TypeID, "int", "typeID", 0)
		SerializeScalar(s, &o.ClassID, "int16_t", "classID", 0)
	})
	SerializeIf(s, "version", "version <= 16", func(v int) bool {
		return v <= 16
	}, func() {
		SerializeScalar(s, &o.ScriptID, "int16_t", "scriptID", 0)
	}, nil)
	SerializeIf(s, "version", "15 <= version && version <= 16", func(v int) bool {
		return 15 <= v && v <= 16
	}, func() {
		SerializeScalar(s, &o.Unk0, "uint8_t", "unk0", 0)
	}, nil)
}

// FileReference names another serialized file this one depends on.
type FileReference struct {
	AssetName string `json:"asset_name"`
	GUID      Hash   `json:"guid"`
	Type      int32  `json:"type"`
	FileName  string `json:"file_name"`
}

// TypeString implements Serializable.
func (f *FileReference) TypeString() string {
	return "SerializedFile::FileReference"
}

// Serialize implements Serializable.
func (f *FileReference) Serialize(s Serializer) {
	SerializeIf(s, "version", "version >= 6", func(v int) bool {
		return v >= 6
	}, func() {
		SerializeString(s, &f.AssetName, "assetName", FlagCString)
	}, nil)
	SerializeIf(s, "version", "version >= 5", func(v int) bool {
		return v >= 5
	}, func() {
		SerializeStruct(s, &f.GUID, "guid", 0)
		SerializeScalar(s, &f.Type, "int", "type", 0)
	}, nil)
	SerializeString(s, &f.FileName, "fileName", FlagCString)
}

// Metadata is everything between the header and the object payload
// block: generator version, platform, class descriptions, the object
// table and external file references.
type Metadata struct {
	GeneratorVersion   string          `json:"generator_version"`
	Platform           int32           `json:"platform"`
	SerializeTypeTrees bool            `json:"serialize_type_trees"`
	Types              []TypeMetadata  `json:"types"`
	Unk0               int32           `json:"unk0"`
	Objects            []ObjectInfo    `json:"objects"`
	Adds               []ObjectPtr     `json:"adds"`
	ExternalFiles      []FileReference `json:"external_files"`
	Unk1               string          `json:"unk1"`
}

// TypeString implements Serializable.
func (m *Metadata) TypeString() string {
	return "SerializedFile::Metadata"
}

// Serialize implements Serializable.
func (m *Metadata) Serialize(s Serializer) {
	SerializeString(s, &m.GeneratorVersion, "generatorVersion", FlagCString)
	SerializeScalar(s, &m.Platform, "int", "platform", 0)
	SerializeIf(s, "version", "version >= 13", func(v int) bool {
		return v >= 13
	}, func() {
		SerializeScalar(s, &m.SerializeTypeTrees, "bool", "serializeTypeTrees", FlagVariable)
	}, func() {
		// Older generations always embed type trees.
		m.SerializeTypeTrees = true
		s.SetVariable("serializeTypeTrees", 1)
	})
	SerializeVector(s, "types", "SerializedFile::TypeMetadata", len(m.Types),
		func(n int) { m.Types = make([]TypeMetadata, n) },
		func(i int) { m.Types[i].Serialize(s) })
	SerializeIf(s, "version", "7 <= version && version <= 13", func(v int) bool {
		return 7 <= v && v <= 13
	}, func() {
		SerializeScalar(s, &m.Unk0, "int", "unk0", 0)
	}, nil)
	SerializeVector(s, "objects", "SerializedFile::ObjectInfo", len(m.Objects),
		func(n int) { m.Objects = make([]ObjectInfo, n) },
		func(i int) { m.Objects[i].Serialize(s) })
	SerializeIf(s, "version", "version >= 11", func(v int) bool {
		return v >= 11
	}, func() {
		SerializeVector(s, "adds", "SerializedFile::ObjectPtr", len(m.Adds),
			func(n int) { m.Adds = make([]ObjectPtr, n) },
			func(i int) { m.Adds[i].Serialize(s) })
	}, nil)
	SerializeVector(s, "externalFiles", "SerializedFile::FileReference", len(m.ExternalFiles),
		func(n int) { m.ExternalFiles = make([]FileReference, n) },
		func(i int) { m.ExternalFiles[i].Serialize(s) })
	SerializeIf(s, "version", "version >= 5", func(v int) bool {
		return v >= 5
	}, func() {
		SerializeString(s, &m.Unk1, "unk1", FlagCString)
	}, nil)
}
