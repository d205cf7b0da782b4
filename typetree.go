// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package unity

import "bytes"

// TypeTreeNode describes one field in an object's serialized layout.
// Type and Name are interned string indices: high bit set means the
// global table, clear means the tree's local buffer.
type TypeTreeNode struct {
	Version  uint16 `json:"version"`
	Depth    uint8  `json:"depth"`
	IsArray  bool   `json:"is_array"`
	Type     uint32 `json:"type"`
	Name     uint32 `json:"name"`
	ByteSize int32  `json:"byte_size"`
	Index    int32  `json:"index"`
	MetaFlag uint32 `json:"meta_flag"`
}

// TypeString implements Serializable.
func (n *TypeTreeNode) TypeString() string {
	return "TypeTreeNode"
}

// Serialize emits the fixed-layout record used by the flat dialect.
func (n *TypeTreeNode) Serialize(s Serializer) {
	SerializeScalar(s, &n.Version, "uint16_t", "version", 0)
	SerializeScalar(s, &n.Depth, "uint8_t", "depth", 0)
	SerializeScalar(s, &n.IsArray, "bool", "isArray", 0)
	SerializeScalar(s, &n.Type, "uint32_t", "type", 0)
	SerializeScalar(s, &n.Name, "uint32_t", "name", 0)
	SerializeScalar(s, &n.ByteSize, "int", "byteSize", 0)
	SerializeScalar(s, &n.Index, "int", "index", 0)
	SerializeScalar(s, &n.MetaFlag, "uint32_t", "metaFlag", 0)
}

// TypeTree describes the in-memory layout of one Unity class. Nodes is
// the depth-first flattening of the tree; Buffer holds the names that
// are not in the global interned table.
type TypeTree struct {
	Nodes  []TypeTreeNode `json:"nodes"`
	Buffer []byte         `json:"buffer"`
}

// TypeString implements Serializable.
func (t *TypeTree) TypeString() string {
	return "TypeTree"
}

// GetString resolves an interned string index against the global table
// or the tree's local buffer.
func (t *TypeTree) GetString(index uint32) string {
	if index&globalStringFlag != 0 {
		return readCString(typeTreeGlobalStrings, int(index&^globalStringFlag))
	}
	if int(index) >= len(t.Buffer) {
		return ""
	}
	b := t.Buffer[index:]
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return string(b[:i])
	}
	return string(b)
}

// GetIndex interns str, scanning the global table first, then the local
// buffer, appending to the local buffer on a miss.
func (t *TypeTree) GetIndex(str string) uint32 {
	for off := 0; off < len(typeTreeGlobalStrings); {
		entry := readCString(typeTreeGlobalStrings, off)
		if entry == str {
			return globalStringFlag | uint32(off)
		}
		off += 1 + len(entry)
	}
	for i := 0; i < len(t.Buffer); {
		entry := readCString(string(t.Buffer), i)
		if entry == str {
			return uint32(i)
		}
		i += 1 + len(entry)
	}
	idx := len(t.Buffer)
	t.Buffer = append(t.Buffer, str...)
	t.Buffer = append(t.Buffer, 0)
	return uint32(idx)
}

// Serialize dispatches between the two wire dialects on the captured
// file version: a flat table of fixed records plus a string buffer for
// version 10 and versions 12 and later, depth-first recursion with
// inline strings otherwise.
func (t *TypeTree) Serialize(s Serializer) {
	SerializeIf(s, "version", "version == 10 || version >= 12", func(v int) bool {
		return v == 10 || v >= 12
	}, func() {
		numNodes := int32(len(t.Nodes))
		SerializeScalar(s, &numNodes, "int", "numNodes", 0)
		if numNodes < 0 {
			s.markErrored()
			numNodes = 0
		}
		if int(numNodes) != len(t.Nodes) {
			t.Nodes = make([]TypeTreeNode, numNodes)
		}

		bufferSize := int32(len(t.Buffer))
		SerializeScalar(s, &bufferSize, "int", "bufferSize", 0)
		if bufferSize < 0 {
			s.markErrored()
			bufferSize = 0
		}
		if int(bufferSize) != len(t.Buffer) {
			t.Buffer = make([]byte, bufferSize)
		}

		s.Begin("Array", "Array", FlagArray)
		for i := range t.Nodes {
			if s.IsErrored() {
				break
			}
			SerializeStruct(s, &t.Nodes[i], "data", 0)
		}
		s.End()

		s.Begin("Array", "Array", FlagArray)
		for i := range t.Buffer {
			if s.IsErrored() {
				break
			}
			s.Begin("char", "data", 0)
			s.Scalar(&t.Buffer[i])
			s.End()
		}
		s.End()
	}, func() {
		// The node count is implicit; a single root is assumed and the
		// vector grows as child counts come off the stream.
		if len(t.Nodes) < 1 {
			t.Nodes = make([]TypeTreeNode, 1)
		}
		numNodesKnown := 1
		i := 0
		t.serializeRecursiveNode(s, &i, 0, &numNodesKnown)
	})
}

// serializeRecursiveNode handles one node of the old dialect. i indexes
// the flattened vector and advances depth-first; depth is the recursion
// depth, which becomes the node's stored depth.
func (t *TypeTree) serializeRecursiveNode(s Serializer, i *int, depth int, numNodesKnown *int) {
	if *i >= len(t.Nodes) {
		s.markErrored()
		return
	}
	s.Begin("TypeTreeNode", "node", 0)

	nodeType := t.GetString(t.Nodes[*i].Type)
	nodeName := t.GetString(t.Nodes[*i].Name)
	SerializeString(s, &nodeType, "type", FlagCString)
	SerializeString(s, &nodeName, "name", FlagCString)
	t.Nodes[*i].Type = t.GetIndex(nodeType)
	t.Nodes[*i].Name = t.GetIndex(nodeName)

	SerializeScalar(s, &t.Nodes[*i].ByteSize, "int", "byteSize", 0)
	SerializeScalar(s, &t.Nodes[*i].Index, "int", "index", 0)
	isArray := int32(0)
	if t.Nodes[*i].IsArray {
		isArray = 1
	}
	SerializeScalar(s, &isArray, "int", "isArray", 0)
	t.Nodes[*i].IsArray = isArray != 0
	version := int32(t.Nodes[*i].Version)
	SerializeScalar(s, &version, "int", "version", 0)
	t.Nodes[*i].Version = uint16(version)
	SerializeScalar(s, &t.Nodes[*i].MetaFlag, "int", "metaFlag", 0)
	t.Nodes[*i].Depth = uint8(depth)

	numChildren := int32(0)
	for j := *i + 1; j < len(t.Nodes); j++ {
		if int(t.Nodes[j].Depth) <= depth {
			break
		}
		if int(t.Nodes[j].Depth) == depth+1 {
			numChildren++
		}
	}
	s.Begin("Array", "Array", FlagArray)
	SerializeScalar(s, &numChildren, "int", "numChildren", FlagTreeNodeChildCount)
	if numChildren < 0 {
		s.markErrored()
		numChildren = 0
	}
	*numNodesKnown += int(numChildren)
	if *numNodesKnown > len(t.Nodes) {
		grown := make([]TypeTreeNode, *numNodesKnown)
		copy(grown, t.Nodes)
		t.Nodes = grown
	}
	for j := int32(0); j < numChildren; j++ {
		if s.IsErrored() {
			break
		}
		*i++
		t.serializeRecursiveNode(s, i, depth+1, numNodesKnown)
	}
	s.End()

	s.End()
}
