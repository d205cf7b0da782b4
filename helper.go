// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package unity

import "errors"

// Errors
var (

	// ErrInvalidFileSize is returned when the file is smaller than the
	// smallest possible SerializedFile header.
	ErrInvalidFileSize = errors.New(
		"not a serialized file, smaller than the file header")

	// ErrTruncatedHeader is returned when the stream ends inside the
	// file header.
	ErrTruncatedHeader = errors.New(
		"serialized file header truncated")

	// ErrTruncatedMetadata is returned when the stream ends inside the
	// metadata block. The structures decoded so far stay available.
	ErrTruncatedMetadata = errors.New(
		"serialized file metadata truncated")

	// ErrMalformedMetadata is returned when the metadata block holds a
	// structurally impossible value, such as a negative length.
	ErrMalformedMetadata = errors.New(
		"serialized file metadata malformed")

	// ErrWriteFailed is returned when encoding produced an inconsistent
	// stream.
	ErrWriteFailed = errors.New(
		"serialized file encoding failed")
)

// AlignUp rounds offset up to the next 4-byte boundary.
func AlignUp(offset int) int {
	return (offset + 3) &^ 3
}
