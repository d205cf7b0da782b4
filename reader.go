// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package unity

// BinaryReader is the pull-mode backend. It decodes scalars out of a
// byte slice, honoring alignment, endianness and C-string capture. A
// short read flips the sticky errored flag and leaves the target value
// untouched; the schema keeps walking so a partial tree is still
// produced.
type BinaryReader struct {
	SerializerBase
	data        []byte
	offset      int
	cstring     []byte
	stringIndex int
}

// NewBinaryReader returns a reader decoding from data.
func NewBinaryReader(data []byte) *BinaryReader {
	return &BinaryReader{data: data}
}

// Offset returns the current stream position.
func (r *BinaryReader) Offset() int {
	return r.offset
}

// Scalar implements Serializer.
func (r *BinaryReader) Scalar(v interface{}) {
	if r.cstringContext() {
		// CString handling:
		//   string str
		//     Array Array
		//       int size
		//       char data
		// The whole NUL-terminated run is pulled off the stream when
		// the size node is visited and the chars are served from the
		// scratch buffer.
		switch p := v.(type) {
		case *int32:
			r.cstring = r.cstring[:0]
			for {
				if r.offset >= len(r.data) {
					r.errored = true
					r.eof = true
					break
				}
				c := r.data[r.offset]
				r.offset++
				if c == 0 {
					break
				}
				r.cstring = append(r.cstring, c)
			}
			*p = int32(len(r.cstring))
			r.stringIndex = 0
			r.RecordScalar(scalarBytes(uint64(uint32(*p)), 4))
			return
		case *uint8:
			var c byte
			if r.stringIndex < len(r.cstring) {
				c = r.cstring[r.stringIndex]
				r.stringIndex++
			} else {
				r.errored = true
			}
			*p = c
			r.RecordScalar([]byte{c})
			return
		}
	}

	u, logical := scalarValue(v)
	if logical == 0 {
		r.errored = true
		return
	}
	size := logical
	node := r.currentNode()
	if node != nil {
		if node.flags&FlagPreAlign != 0 {
			r.align()
		}
		if node.flags&FlagValueIs32Bit != 0 {
			if logical < 4 {
				r.errored = true
			} else {
				size = 4
			}
		}
	}

	if r.offset+size > len(r.data) {
		r.errored = true
		r.eof = true
	} else {
		var raw [8]byte
		copy(raw[:size], r.data[r.offset:r.offset+size])
		r.offset += size
		if r.IsBigEndian() {
			ByteSwap(raw[:size])
		}
		u = 0
		for i := size - 1; i >= 0; i-- {
			u = u<<8 | uint64(raw[i])
		}
		if size == 4 && logical == 8 {
			if _, signed := v.(*int64); signed {
				u = uint64(int64(int32(u)))
			}
		}
		assignScalar(v, u)
		u, _ = scalarValue(v)
	}

	if node != nil && node.flags&FlagPostAlign != 0 {
		r.align()
	}
	r.RecordScalar(scalarBytes(u, logical))
}

// align advances the stream position to the next 4-byte boundary.
func (r *BinaryReader) align() {
	r.offset = AlignUp(r.offset)
}
