// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package unity

// SchemaEntry is one node of a reflected schema: the node's type and
// field name, its flags, its depth in the visit tree and, for scalar
// nodes, the scalar's logical width.
type SchemaEntry struct {
	TypeName string
	Name     string
	Flags    Flags
	Depth    int
	Size     int
}

// SchemaIntrospector is a backend that records the shape of a schema
// instead of serializing it. Walking a value produces one SchemaEntry
// per visited node; conditionals resolve against the value's captured
// variables, so the listing reflects the wire layout of that value's
// version.
type SchemaIntrospector struct {
	SerializerBase
	Entries []SchemaEntry
}

// NewSchemaIntrospector returns an empty introspector.
func NewSchemaIntrospector() *SchemaIntrospector {
	return &SchemaIntrospector{}
}

// Begin implements Serializer.
func (si *SchemaIntrospector) Begin(typeName, name string, flags Flags) {
	si.SerializerBase.Begin(typeName, name, flags)
	si.Entries = append(si.Entries, SchemaEntry{
		TypeName: typeName,
		Name:     name,
		Flags:    flags,
		Depth:    len(si.stack) - 1,
	})
}

// Scalar implements Serializer. Values come from memory; the entry for
// the enclosing node is annotated with the scalar's width.
func (si *SchemaIntrospector) Scalar(v interface{}) {
	if si.cstringContext() {
		switch p := v.(type) {
		case *int32:
			si.RecordScalar(scalarBytes(uint64(uint32(*p)), 4))
			si.noteSize(4)
			return
		case *uint8:
			si.RecordScalar([]byte{*p})
			si.noteSize(1)
			return
		}
	}
	u, logical := scalarValue(v)
	if logical == 0 {
		si.errored = true
		return
	}
	si.RecordScalar(scalarBytes(u, logical))
	si.noteSize(logical)
}

func (si *SchemaIntrospector) noteSize(size int) {
	if len(si.Entries) > 0 {
		si.Entries[len(si.Entries)-1].Size = size
	}
}
