// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package unity

import (
	"os"

	mmap "github.com/edsrzf/mmap-go"
	"github.com/saferwall/unity/log"
)

// A File represents an open Unity SerializedFile.
type File struct {
	Header   Header   `json:"header"`
	Metadata Metadata `json:"metadata"`

	data   mmap.MMap
	size   uint32
	f      *os.File
	opts   *Options
	logger *log.Helper
}

// Options for parsing.
type Options struct {

	// Stop after the file header and do not parse the metadata, by
	// default (false).
	HeaderOnly bool

	// A custom logger.
	Logger log.Logger
}

// New instantiates a file instance with options given a file name.
func New(name string, opts *Options) (*File, error) {

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}

	// Memory map the file instead of using read/write.
	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}

	file := File{}
	if opts != nil {
		file.opts = opts
	} else {
		file.opts = &Options{}
	}

	var logger log.Logger
	if file.opts.Logger == nil {
		logger = log.NewStdLogger(os.Stderr)
		file.logger = log.NewHelper(log.NewFilter(logger,
			log.FilterLevel(log.LevelError)))
	} else {
		file.logger = log.NewHelper(file.opts.Logger)
	}

	file.data = data
	file.size = uint32(len(file.data))
	file.f = f
	return &file, nil
}

// NewBytes instantiates a file instance with options given a memory buffer.
func NewBytes(data []byte, opts *Options) (*File, error) {

	file := File{}
	if opts != nil {
		file.opts = opts
	} else {
		file.opts = &Options{}
	}

	var logger log.Logger
	if file.opts.Logger == nil {
		logger = log.NewStdLogger(os.Stderr)
		file.logger = log.NewHelper(log.NewFilter(logger,
			log.FilterLevel(log.LevelError)))
	} else {
		file.logger = log.NewHelper(file.opts.Logger)
	}

	file.data = data
	file.size = uint32(len(file.data))
	return &file, nil
}

// Close closes the File.
func (f *File) Close() error {
	if f.f != nil {
		_ = f.data.Unmap()
		err := f.f.Close()
		f.f = nil
		return err
	}
	return nil
}

// TypeString implements Serializable.
func (f *File) TypeString() string {
	return "SerializedFile"
}

// Serialize implements Serializable: the header, then the metadata that
// the header's captured version variable gates.
func (f *File) Serialize(s Serializer) {
	SerializeStruct(s, &f.Header, "header", 0)
	SerializeStruct(s, &f.Metadata, "metadata", 0)
}

// Parse decodes the container metadata. The decoded structures stay on
// the File even when an error is returned, so a truncated file can
// still be inspected.
func (f *File) Parse() error {

	if len(f.data) < MinSerializedFileSize {
		return ErrInvalidFileSize
	}

	r := NewBinaryReader(f.data)
	SerializeStruct(r, &f.Header, "header", 0)
	if r.IsErrored() {
		return ErrTruncatedHeader
	}

	if f.Header.Version < MinSupportedVersion {
		f.logger.Warnf("serialized file version %d predates the oldest "+
			"known layout", f.Header.Version)
	}
	if f.Header.Version > MaxKnownVersion {
		f.logger.Warnf("serialized file version %d is newer than the "+
			"latest known layout, conditional fields may be missed",
			f.Header.Version)
	}
	if f.Header.FileSize > 0 && uint32(f.Header.FileSize) != f.size {
		f.logger.Warnf("header file size %d disagrees with the actual "+
			"size %d", f.Header.FileSize, f.size)
	}

	if f.opts.HeaderOnly {
		return nil
	}

	SerializeStruct(r, &f.Metadata, "metadata", 0)
	if r.IsErrored() {
		if r.IsEOF() {
			return ErrTruncatedMetadata
		}
		return ErrMalformedMetadata
	}
	return nil
}

// Marshal encodes the File's header and metadata back into
// SerializedFile bytes, writing alignment padding as zeros. Decoding a
// valid file and marshaling it reproduces the input's header and
// metadata byte for byte. The object data block is not held by the File
// and is not written, so the output ends where the metadata ends.
func (f *File) Marshal() ([]byte, error) {
	w := NewBinaryWriter()
	f.Serialize(w)
	if w.IsErrored() {
		return w.Bytes(), ErrWriteFailed
	}
	return w.Bytes(), nil
}
