// Copyright 2022 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package unity

import (
	"testing"
)

func TestReadHeaderBigEndian(t *testing.T) {

	// A version 17 header: every scalar big-endian, the trailing
	// boolean latches the stream and pads to a 4-byte boundary.
	data := []byte{
		0x00, 0x00, 0x00, 0x10,
		0x00, 0x00, 0x10, 0x00,
		0x00, 0x00, 0x00, 0x11,
		0x00, 0x00, 0x20, 0x00,
		0x01, 0x00, 0x00, 0x00,
	}

	r := NewBinaryReader(data)
	var hdr Header
	SerializeStruct(r, &hdr, "header", 0)

	want := Header{
		MetadataSize:     16,
		FileSize:         4096,
		Version:          17,
		ObjectDataOffset: 8192,
		BigEndian:        true,
	}
	if hdr != want {
		t.Errorf("header got %+v, want %+v", hdr, want)
	}
	if r.IsErrored() {
		t.Errorf("header read errored")
	}
	if !r.IsBigEndian() {
		t.Errorf("stream endianness must be latched big-endian after the header")
	}
	if got := r.Variable("version"); got != 17 {
		t.Errorf("version variable got %d, want 17", got)
	}
	if got := r.Offset(); got != 20 {
		t.Errorf("post-align offset got %d, want 20", got)
	}
}

func TestReadCString(t *testing.T) {

	tests := []struct {
		in  []byte
		out string
	}{
		{[]byte{'f', 'o', 'o', 0x00}, "foo"},
		{[]byte{0x00}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.out, func(t *testing.T) {
			r := NewBinaryReader(tt.in)
			var got string
			SerializeString(r, &got, "fileName", FlagCString)
			if got != tt.out {
				t.Errorf("cstring got %q, want %q", got, tt.out)
			}
			if r.IsErrored() {
				t.Errorf("cstring read errored")
			}
			if r.Offset() != len(tt.in) {
				t.Errorf("cstring consumed %d bytes, want %d", r.Offset(), len(tt.in))
			}
		})
	}
}

func TestReadCStringUnterminated(t *testing.T) {

	r := NewBinaryReader([]byte{'f', 'o', 'o'})
	var got string
	SerializeString(r, &got, "fileName", FlagCString)
	if !r.IsErrored() || !r.IsEOF() {
		t.Errorf("a run hitting EOF before the NUL must set errored and eof")
	}
}

func TestReadAlignment(t *testing.T) {

	// One byte, then a pre-aligned dword: the cursor jumps 1 -> 4.
	data := []byte{0xAA, 0x00, 0x00, 0x00, 0x2A, 0x00, 0x00, 0x00}
	r := NewBinaryReader(data)

	var b uint8
	SerializeScalar(r, &b, "uint8_t", "pad", 0)
	var v int32
	SerializeScalar(r, &v, "int", "value", FlagPreAlign)
	if v != 42 {
		t.Errorf("pre-aligned value got %d, want 42", v)
	}
	if r.Offset() != 8 {
		t.Errorf("offset got %d, want 8", r.Offset())
	}

	// Aligning an already aligned cursor is a no-op.
	r2 := NewBinaryReader(data[4:])
	SerializeScalar(r2, &v, "int", "value", FlagPreAlign)
	if v != 42 || r2.Offset() != 4 {
		t.Errorf("aligned read got value %d at offset %d, want 42 at 4", v, r2.Offset())
	}
}

func TestReadValueIs32Bit(t *testing.T) {

	// A 64-bit target fed from 4 bytes on the wire: zero-extended and
	// only 4 bytes consumed.
	data := []byte{0xEF, 0xBE, 0xAD, 0xDE, 0x99, 0x99, 0x99, 0x99}
	r := NewBinaryReader(data)

	var v uint64
	SerializeScalar(r, &v, "uint32_t", "pathID", FlagValueIs32Bit)
	if v != 0xDEADBEEF {
		t.Errorf("32-bit forced read got %#x, want 0xDEADBEEF", v)
	}
	if r.Offset() != 4 {
		t.Errorf("32-bit forced read consumed %d bytes, want 4", r.Offset())
	}
}

func TestReadValueIs32BitSignExtends(t *testing.T) {

	data := []byte{0xFF, 0xFF, 0xFF, 0xFF}
	r := NewBinaryReader(data)

	var v int64
	SerializeScalar(r, &v, "uint32_t", "pathID", FlagValueIs32Bit)
	if v != -1 {
		t.Errorf("signed 32-bit forced read got %d, want -1", v)
	}
}

func TestShortReadIsSticky(t *testing.T) {

	r := NewBinaryReader([]byte{0x01, 0x02})
	var v int32
	SerializeScalar(r, &v, "int", "value", 0)
	if !r.IsErrored() || !r.IsEOF() {
		t.Errorf("a short read must set errored and eof")
	}
	if v != 0 {
		t.Errorf("a short read must leave the target untouched, got %d", v)
	}

	// Later reads do not clear the flags.
	var b uint8
	SerializeScalar(r, &b, "uint8_t", "value", 0)
	if !r.IsErrored() {
		t.Errorf("errored must stay sticky")
	}
}

func TestReadLittleEndianDefault(t *testing.T) {

	r := NewBinaryReader([]byte{0x2C, 0x01, 0x00, 0x00})
	var v int32
	SerializeScalar(r, &v, "int", "platform", 0)
	if v != 300 {
		t.Errorf("little-endian read got %d, want 300", v)
	}
}
