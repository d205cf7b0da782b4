// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package unity

import (
	"fmt"
	"io"
	"strings"
)

// TextDumper is a backend that renders the visit tree as an indented
// `type name = value` listing. It reads every value from memory and
// never touches a stream, so it can be pointed at anything the binary
// backends can serialize.
type TextDumper struct {
	SerializerBase
	w   io.Writer
	str []byte
}

// NewTextDumper returns a dumper writing to w.
func NewTextDumper(w io.Writer) *TextDumper {
	return &TextDumper{w: w}
}

// Scalar implements Serializer.
func (d *TextDumper) Scalar(v interface{}) {
	if d.cstringContext() {
		switch p := v.(type) {
		case *int32:
			d.str = d.str[:0]
			d.RecordScalar(scalarBytes(uint64(uint32(*p)), 4))
			return
		case *uint8:
			d.str = append(d.str, *p)
			d.RecordScalar([]byte{*p})
			return
		}
	}

	u, logical := scalarValue(v)
	if logical == 0 {
		d.errored = true
		return
	}
	d.RecordScalar(scalarBytes(u, logical))
	node := d.currentNode()
	if node == nil {
		return
	}
	fmt.Fprintf(d.w, "%s%s %s = %s\n",
		d.indent(len(d.stack)-1), node.typeName, node.name, formatScalar(v))
}

// End implements Serializer. Closing a C-string node flushes the
// accumulated characters as one line.
func (d *TextDumper) End() {
	if node := d.currentNode(); node != nil && node.flags&FlagCString != 0 {
		fmt.Fprintf(d.w, "%s%s %s = %q\n",
			d.indent(len(d.stack)-1), node.typeName, node.name, string(d.str))
		d.str = d.str[:0]
	}
	d.SerializerBase.End()
}

func (d *TextDumper) indent(depth int) string {
	if depth < 0 {
		depth = 0
	}
	return strings.Repeat("  ", depth)
}

func formatScalar(v interface{}) string {
	switch p := v.(type) {
	case *bool:
		return fmt.Sprintf("%t", *p)
	case *int8:
		return fmt.Sprintf("%d", *p)
	case *uint8:
		return fmt.Sprintf("%d", *p)
	case *int16:
		return fmt.Sprintf("%d", *p)
	case *uint16:
		return fmt.Sprintf("%d", *p)
	case *int32:
		return fmt.Sprintf("%d", *p)
	case *uint32:
		return fmt.Sprintf("%d", *p)
	case *int64:
		return fmt.Sprintf("%d", *p)
	case *uint64:
		return fmt.Sprintf("%d", *p)
	}
	return fmt.Sprintf("%v", v)
}
