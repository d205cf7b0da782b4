// Copyright 2022 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package unity

import (
	"bytes"
	"testing"
)

func TestWriteCString(t *testing.T) {

	tests := []struct {
		in  string
		out []byte
	}{
		{"foo", []byte{'f', 'o', 'o', 0x00}},
		{"", []byte{0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			w := NewBinaryWriter()
			str := tt.in
			SerializeString(w, &str, "fileName", FlagCString)
			if !bytes.Equal(w.Bytes(), tt.out) {
				t.Errorf("cstring write of %q got %x, want %x", tt.in, w.Bytes(), tt.out)
			}
		})
	}
}

func TestWriteHeaderBigEndian(t *testing.T) {

	hdr := Header{
		MetadataSize:     16,
		FileSize:         4096,
		Version:          17,
		ObjectDataOffset: 8192,
		BigEndian:        true,
	}

	w := NewBinaryWriter()
	SerializeStruct(w, &hdr, "header", 0)

	want := []byte{
		0x00, 0x00, 0x00, 0x10,
		0x00, 0x00, 0x10, 0x00,
		0x00, 0x00, 0x00, 0x11,
		0x00, 0x00, 0x20, 0x00,
		0x01, 0x00, 0x00, 0x00,
	}
	if !bytes.Equal(w.Bytes(), want) {
		t.Errorf("header bytes got %x, want %x", w.Bytes(), want)
	}
	if !w.IsBigEndian() {
		t.Errorf("writing a true bigEndian header must latch the stream")
	}
}

func TestWriteAlignmentPadsWithZeros(t *testing.T) {

	w := NewBinaryWriter()
	b := uint8(0xAA)
	SerializeScalar(w, &b, "uint8_t", "pad", 0)
	v := int32(42)
	SerializeScalar(w, &v, "int", "value", FlagPreAlign)

	want := []byte{0xAA, 0x00, 0x00, 0x00, 0x2A, 0x00, 0x00, 0x00}
	if !bytes.Equal(w.Bytes(), want) {
		t.Errorf("pre-aligned write got %x, want %x", w.Bytes(), want)
	}
}

func TestWriteValueIs32Bit(t *testing.T) {

	w := NewBinaryWriter()
	v := uint64(0xDEADBEEF)
	SerializeScalar(w, &v, "uint32_t", "pathID", FlagValueIs32Bit)

	want := []byte{0xEF, 0xBE, 0xAD, 0xDE}
	if !bytes.Equal(w.Bytes(), want) {
		t.Errorf("32-bit forced write got %x, want %x", w.Bytes(), want)
	}
}

func TestWriteBigEndianScalar(t *testing.T) {

	w := NewBinaryWriter()
	v := int32(0x11223344)
	SerializeScalar(w, &v, "int", "value", FlagBigEndian)

	want := []byte{0x11, 0x22, 0x33, 0x44}
	if !bytes.Equal(w.Bytes(), want) {
		t.Errorf("big-endian write got %x, want %x", w.Bytes(), want)
	}
}

func TestScalarRoundTrip(t *testing.T) {

	w := NewBinaryWriter()
	w.SetVariable("version", 14)

	in := ObjectPtr{FileID: 3, PathID: 0x1122334455667788}
	SerializeStruct(w, &in, "ptr", 0)

	r := NewBinaryReader(w.Bytes())
	r.SetVariable("version", 14)
	var out ObjectPtr
	SerializeStruct(r, &out, "ptr", 0)

	if in != out {
		t.Errorf("object ptr round trip got %+v, want %+v", out, in)
	}
}
