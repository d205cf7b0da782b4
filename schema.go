// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package unity

// Serializable is implemented by every schema struct. Serialize walks
// the struct's fields against the backend; TypeString names the type in
// the visit tree.
type Serializable interface {
	TypeString() string
	Serialize(s Serializer)
}

// SerializeScalar serializes one scalar field under its own node.
func SerializeScalar(s Serializer, v interface{}, typeName, name string, flags Flags) {
	s.Begin(typeName, name, flags)
	s.Scalar(v)
	s.End()
}

// SerializeStruct serializes a nested schema struct under its own node.
func SerializeStruct(s Serializer, v Serializable, name string, flags Flags) {
	s.Begin(v.TypeString(), name, flags)
	v.Serialize(s)
	s.End()
}

// SerializeString serializes a string as a struct of type string whose
// body is an array of char. With FlagCString the wire form is a
// NUL-terminated run instead of a length-prefixed array.
func SerializeString(s Serializer, v *string, name string, flags Flags) {
	s.Begin("string", name, flags)
	size := int32(len(*v))
	beginArray(s, &size)
	if size < 0 {
		s.markErrored()
		size = 0
	}
	buf := make([]byte, size)
	copy(buf, *v)
	for i := 0; i < int(size); i++ {
		if s.IsErrored() {
			break
		}
		s.Begin("char", "data", 0)
		s.Scalar(&buf[i])
		s.End()
	}
	*v = string(buf)
	s.End()
	s.End()
}

// SerializeIf evaluates condition against the named variable and runs
// thenBody under an if node when it holds, elseBody under an else node
// otherwise. elseBody may be nil.
func SerializeIf(s Serializer, varName, condStr string, condition func(int) bool,
	thenBody func(), elseBody func()) {
	if s.BeginIf(varName, condStr, condition) {
		thenBody()
		s.End()
	}
	if elseBody != nil && s.BeginElse() {
		elseBody()
		s.End()
	}
}

// SerializeVector serializes a length-prefixed sequence under a vector
// node. resize is invoked with the decoded length before the element
// loop when it differs from length; each serializes one element.
func SerializeVector(s Serializer, name, elemTypeName string, length int,
	resize func(n int), each func(i int)) {
	s.Begin("vector", name, 0)
	size := int32(length)
	beginArray(s, &size)
	n := int(size)
	if n < 0 {
		s.markErrored()
		n = 0
	}
	if n != length {
		resize(n)
	}
	for i := 0; i < n; i++ {
		if s.IsErrored() {
			break
		}
		s.Begin(elemTypeName, "data", 0)
		each(i)
		s.End()
	}
	s.End()
	s.End()
}

// beginArray opens an array node and serializes its size. The matching
// End for the array node is the caller's to emit.
func beginArray(s Serializer, size *int32) {
	s.Begin("Array", "Array", FlagArray)
	s.Begin("int", "size", 0)
	s.Scalar(size)
	s.End()
}
