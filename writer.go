// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package unity

// BinaryWriter is the push-mode backend. It mirrors BinaryReader:
// alignment before/after the scalar, endianness applied before the
// bytes leave, zero bytes for padding. A C-string writes its payload
// followed by a single NUL and suppresses the length prefix.
type BinaryWriter struct {
	SerializerBase
	buf     []byte
	pending int
}

// NewBinaryWriter returns an empty writer.
func NewBinaryWriter() *BinaryWriter {
	return &BinaryWriter{}
}

// Bytes returns the encoded stream.
func (w *BinaryWriter) Bytes() []byte {
	return w.buf
}

// Offset returns the current stream position.
func (w *BinaryWriter) Offset() int {
	return len(w.buf)
}

// Scalar implements Serializer.
func (w *BinaryWriter) Scalar(v interface{}) {
	if w.cstringContext() {
		switch p := v.(type) {
		case *int32:
			// The length prefix never reaches the stream; it only
			// arms the char counter so the NUL can follow the last
			// payload byte.
			w.pending = int(*p)
			if w.pending <= 0 {
				w.pending = 0
				w.buf = append(w.buf, 0)
			}
			w.RecordScalar(scalarBytes(uint64(uint32(*p)), 4))
			return
		case *uint8:
			w.buf = append(w.buf, *p)
			if w.pending > 0 {
				w.pending--
				if w.pending == 0 {
					w.buf = append(w.buf, 0)
				}
			}
			w.RecordScalar([]byte{*p})
			return
		}
	}

	u, logical := scalarValue(v)
	if logical == 0 {
		w.errored = true
		return
	}
	size := logical
	node := w.currentNode()
	if node != nil {
		if node.flags&FlagPreAlign != 0 {
			w.align()
		}
		if node.flags&FlagValueIs32Bit != 0 {
			if logical < 4 {
				w.errored = true
			} else {
				size = 4
			}
		}
	}

	var raw [8]byte
	for i := 0; i < size; i++ {
		raw[i] = byte(u >> (8 * i))
	}
	if w.IsBigEndian() {
		ByteSwap(raw[:size])
	}
	w.buf = append(w.buf, raw[:size]...)

	if node != nil && node.flags&FlagPostAlign != 0 {
		w.align()
	}
	w.RecordScalar(scalarBytes(u, logical))
}

// align pads the stream with zero bytes up to the next 4-byte boundary.
func (w *BinaryWriter) align() {
	for len(w.buf) != AlignUp(len(w.buf)) {
		w.buf = append(w.buf, 0)
	}
}
