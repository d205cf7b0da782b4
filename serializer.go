// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// The serializer is a declarative system which makes reading and writing
// serialized data a matter of walking a tree that models the data's
// structure. The schema is written once against the Serializer interface
// and each backend (BinaryReader, BinaryWriter, TextDumper,
// SchemaIntrospector) gives it a different meaning.

package unity

import "encoding/binary"

// Flags alter how a schema node is serialized.
type Flags int

const (
	// FlagBigEndian forces this scalar to big-endian regardless of the
	// stream latch.
	FlagBigEndian Flags = 0x1

	// FlagVariable captures this integral scalar into the variables map
	// under the node name, for use by conditional schema logic.
	FlagVariable Flags = 0x2

	// FlagBigEndianWhenTrue latches the stream to big-endian when the
	// captured bytes are non-zero.
	FlagBigEndianWhenTrue Flags = 0x4

	// FlagCString serializes the enclosed string as a NUL-terminated
	// byte sequence instead of a length-prefixed array of char.
	FlagCString Flags = 0x8

	// FlagArray marks an array root; sizes of scalars below it do not
	// aggregate past it.
	FlagArray Flags = 0x10

	// FlagConditionalIf marks the taken branch of a conditional.
	FlagConditionalIf Flags = 0x20

	// FlagConditionalElse marks the fallback branch of a conditional.
	FlagConditionalElse Flags = 0x40

	// FlagValueIs32Bit forces the on-the-wire width to exactly 4 bytes
	// even when the field's logical width is larger.
	FlagValueIs32Bit Flags = 0x80

	// FlagTreeNodeChildCount tags a type-tree child count for
	// introspection backends; stream backends ignore it.
	FlagTreeNodeChildCount Flags = 0x100

	// FlagPreAlign aligns the stream to a 4-byte boundary before the
	// scalar.
	FlagPreAlign Flags = 0x2000

	// FlagPostAlign aligns the stream to a 4-byte boundary after the
	// scalar.
	FlagPostAlign Flags = 0x4000
)

// Serializer is the capability set schemas are written against.
type Serializer interface {
	// Begin visits a new child node in the tree.
	Begin(typeName, name string, flags Flags)

	// End goes up a level in the tree.
	End()

	// BeginIf visits a new child node and returns true when
	// condition(variables[varName]) holds.
	BeginIf(varName, condStr string, condition func(int) bool) bool

	// BeginElse visits a new child node and returns true when the
	// previous sibling if node did not fire.
	BeginElse() bool

	// SetVariable assigns a conditional-logic variable directly.
	SetVariable(varName string, value int)

	// Scalar serializes a scalar value through the backend. v must be a
	// pointer to bool or to a sized integer type.
	Scalar(v interface{})

	// RecordScalar gives the current node the endian-corrected bytes of
	// its most recent scalar so they may be used later.
	RecordScalar(data []byte)

	IsBigEndian() bool
	IsErrored() bool

	markErrored()
}

// A node on the serializer visit stack.
type serializerNode struct {
	typeName string
	name     string
	data     []byte
	size     int
	flags    Flags
}

// SerializerBase holds the visit stack and state shared by every
// backend. The zero value is ready to use.
type SerializerBase struct {
	stack            []serializerNode
	variables        map[string]int
	bigEndian        bool
	conditionWasTrue bool
	errored          bool
	eof              bool
}

// Begin implements Serializer.
func (s *SerializerBase) Begin(typeName, name string, flags Flags) {
	size := 0
	if flags&FlagArray != 0 {
		size = -1
	}
	s.stack = append(s.stack, serializerNode{
		typeName: typeName,
		name:     name,
		size:     size,
		flags:    flags,
	})
}

// End implements Serializer. It pops the current node, applying the
// node's after-the-fact flags to the recorded scalar bytes.
func (s *SerializerBase) End() {
	if len(s.stack) == 0 {
		s.errored = true
		return
	}
	node := &s.stack[len(s.stack)-1]
	if node.flags&FlagVariable != 0 {
		var value int
		switch node.size {
		case 4:
			value = int(int32(binary.LittleEndian.Uint32(node.data)))
		case 2:
			value = int(int16(binary.LittleEndian.Uint16(node.data)))
		case 1:
			value = int(int8(node.data[0]))
		default:
			// A variable must be an integral scalar of 1, 2 or 4
			// bytes.
			s.errored = true
		}
		s.SetVariable(node.name, value)
	}
	if node.flags&FlagBigEndianWhenTrue != 0 {
		if node.size >= 1 && node.size <= 8 {
			for _, b := range node.data[:node.size] {
				if b != 0 {
					s.bigEndian = true
					break
				}
			}
		}
	}
	if node.flags&FlagConditionalIf != 0 {
		s.conditionWasTrue = true
	}
	if node.flags&FlagConditionalElse != 0 {
		s.conditionWasTrue = false
	}
	s.stack = s.stack[:len(s.stack)-1]
}

// BeginIf implements Serializer.
func (s *SerializerBase) BeginIf(varName, condStr string, condition func(int) bool) bool {
	s.conditionWasTrue = condition(s.variables[varName])
	if s.conditionWasTrue {
		s.Begin("if", condStr, FlagConditionalIf)
		return true
	}
	return false
}

// BeginElse implements Serializer.
func (s *SerializerBase) BeginElse() bool {
	if s.conditionWasTrue {
		return false
	}
	s.Begin("else", "", FlagConditionalElse)
	return true
}

// SetVariable implements Serializer.
func (s *SerializerBase) SetVariable(varName string, value int) {
	if s.variables == nil {
		s.variables = make(map[string]int)
	}
	s.variables[varName] = value
}

// Variable returns the current value of a conditional-logic variable.
func (s *SerializerBase) Variable(varName string) int {
	return s.variables[varName]
}

// RecordScalar implements Serializer. Sizes accumulate upward until the
// nearest enclosing array root; the current node also keeps the bytes.
func (s *SerializerBase) RecordScalar(data []byte) {
	size := len(data)
	top := len(s.stack) - 1
	for i := top; i >= 0; i-- {
		node := &s.stack[i]
		if node.size < 0 {
			break
		}
		if i == top {
			node.data = data
		}
		node.size += size
	}
}

// IsBigEndian implements Serializer. The sticky latch wins; before it is
// set, a node-local FlagBigEndian decides.
func (s *SerializerBase) IsBigEndian() bool {
	if s.bigEndian {
		return true
	}
	if len(s.stack) > 0 {
		if s.stack[len(s.stack)-1].flags&FlagBigEndian != 0 {
			return true
		}
	}
	return false
}

// IsErrored implements Serializer.
func (s *SerializerBase) IsErrored() bool {
	return s.errored
}

// IsEOF reports whether a short read hit the end of the stream.
func (s *SerializerBase) IsEOF() bool {
	return s.eof
}

func (s *SerializerBase) markErrored() {
	s.errored = true
}

// Depth returns the current visit-stack depth.
func (s *SerializerBase) Depth() int {
	return len(s.stack)
}

// currentNode returns the top of the visit stack, or nil when the stack
// is empty.
func (s *SerializerBase) currentNode() *serializerNode {
	if len(s.stack) == 0 {
		return nil
	}
	return &s.stack[len(s.stack)-1]
}

// cstringContext reports whether the current scalar sits inside a
// CString-flagged string node, i.e. the grandparent of the scalar
// carries FlagCString.
func (s *SerializerBase) cstringContext() bool {
	if len(s.stack) < 3 {
		return false
	}
	return s.stack[len(s.stack)-3].flags&FlagCString != 0
}

// scalarValue returns the value behind a scalar pointer as a uint64
// together with its logical width in bytes. A width of zero means the
// pointer type is not a supported scalar.
func scalarValue(v interface{}) (uint64, int) {
	switch p := v.(type) {
	case *bool:
		if *p {
			return 1, 1
		}
		return 0, 1
	case *int8:
		return uint64(uint8(*p)), 1
	case *uint8:
		return uint64(*p), 1
	case *int16:
		return uint64(uint16(*p)), 2
	case *uint16:
		return uint64(*p), 2
	case *int32:
		return uint64(uint32(*p)), 4
	case *uint32:
		return uint64(*p), 4
	case *int64:
		return uint64(*p), 8
	case *uint64:
		return *p, 8
	}
	return 0, 0
}

// assignScalar stores a raw value into the scalar behind the pointer.
func assignScalar(v interface{}, u uint64) {
	switch p := v.(type) {
	case *bool:
		*p = u != 0
	case *int8:
		*p = int8(u)
	case *uint8:
		*p = uint8(u)
	case *int16:
		*p = int16(u)
	case *uint16:
		*p = uint16(u)
	case *int32:
		*p = int32(u)
	case *uint32:
		*p = uint32(u)
	case *int64:
		*p = int64(u)
	case *uint64:
		*p = u
	}
}

// scalarBytes encodes a value at its logical width, least significant
// byte first, for RecordScalar.
func scalarBytes(u uint64, size int) []byte {
	b := make([]byte, size)
	for i := 0; i < size; i++ {
		b[i] = byte(u >> (8 * i))
	}
	return b
}
