// Copyright 2022 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package unity

import (
	"bytes"
	"testing"
)

func TestByteSwap(t *testing.T) {

	tests := []struct {
		in  []byte
		out []byte
	}{
		{[]byte{0xAB}, []byte{0xAB}},
		{[]byte{0x12, 0x34}, []byte{0x34, 0x12}},
		{[]byte{0x12, 0x34, 0x56, 0x78}, []byte{0x78, 0x56, 0x34, 0x12}},
		{[]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08},
			[]byte{0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01}},
	}

	for _, tt := range tests {
		got := make([]byte, len(tt.in))
		copy(got, tt.in)
		ByteSwap(got)
		if !bytes.Equal(got, tt.out) {
			t.Errorf("ByteSwap(%x) got %x, want %x", tt.in, got, tt.out)
		}
	}
}

func TestByteSwapRejectsOddSizes(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("ByteSwap on a 3-byte scalar should panic")
		}
	}()
	ByteSwap(make([]byte, 3))
}

func TestByteSwapScalars(t *testing.T) {

	if got := ByteSwap16(0x1234); got != 0x3412 {
		t.Errorf("ByteSwap16(0x1234) got %#x, want 0x3412", got)
	}
	if got := ByteSwap32(0x12345678); got != 0x78563412 {
		t.Errorf("ByteSwap32(0x12345678) got %#x, want 0x78563412", got)
	}
	if got := ByteSwap64(0x0102030405060708); got != 0x0807060504030201 {
		t.Errorf("ByteSwap64 got %#x, want 0x0807060504030201", got)
	}
}
