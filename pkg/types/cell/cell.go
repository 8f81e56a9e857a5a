// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package cell implements the bit-packed tree-of-cells format. A cell holds up
// to 1023 bits of payload and up to four references to child cells. Cells are
// immutable once built and form a DAG.
package cell

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"strings"
)

const (
	// MaxBits is the maximum payload size of a cell, in bits.
	MaxBits = 1023

	// MaxRefs is the maximum number of child references of a cell.
	MaxRefs = 4

	// MaxDepth is the maximum depth of a cell tree.
	MaxDepth = 1024
)

// Cell is an immutable node of a cell tree. Cells are safe for concurrent use.
type Cell struct {
	bits  uint
	data  []byte
	refs  []*Cell
	depth uint16
	hash  [32]byte
}

// Empty returns a cell with no payload and no references.
func Empty() *Cell {
	return newCell(0, nil, nil)
}

// newCell takes ownership of data and refs. Bits of data past the payload
// length must be zero.
func newCell(bits uint, data []byte, refs []*Cell) *Cell {
	c := &Cell{bits: bits, data: data, refs: refs}
	for _, r := range refs {
		if r.depth+1 > c.depth {
			c.depth = r.depth + 1
		}
	}
	c.hash = sha256.Sum256(c.representation())
	return c
}

// representation returns the standard representation of an ordinary cell:
// the descriptor bytes, the payload padded with a completion tag, the depths
// of the children, and the hashes of the children.
func (c *Cell) representation() []byte {
	b := make([]byte, 0, 2+len(c.data)+len(c.refs)*(2+32))
	b = append(b, c.descriptors()...)
	b = append(b, c.paddedData()...)
	for _, r := range c.refs {
		b = binary.BigEndian.AppendUint16(b, r.depth)
	}
	for _, r := range c.refs {
		b = append(b, r.hash[:]...)
	}
	return b
}

func (c *Cell) descriptors() []byte {
	d1 := byte(len(c.refs))
	d2 := byte(c.bits/8 + (c.bits+7)/8)
	return []byte{d1, d2}
}

// paddedData returns the payload with a completion tag appended when the
// payload does not end on a byte boundary.
func (c *Cell) paddedData() []byte {
	b := make([]byte, len(c.data))
	copy(b, c.data)
	if c.bits%8 != 0 {
		b[c.bits/8] |= 0x80 >> (c.bits % 8)
	}
	return b
}

// BitsSize returns the payload length in bits.
func (c *Cell) BitsSize() uint { return c.bits }

// RefsCount returns the number of child references.
func (c *Cell) RefsCount() int { return len(c.refs) }

// Depth returns the depth of the tree rooted at the cell. A cell without
// references has depth zero.
func (c *Cell) Depth() uint16 { return c.depth }

// Hash returns the representation hash of the cell.
func (c *Cell) Hash() [32]byte { return c.hash }

// Data returns a copy of the payload. Bits past BitsSize are zero.
func (c *Cell) Data() []byte {
	b := make([]byte, len(c.data))
	copy(b, c.data)
	return b
}

// Ref returns the i'th child, or nil if there is no such child.
func (c *Cell) Ref(i int) *Cell {
	if i < 0 || i >= len(c.refs) {
		return nil
	}
	return c.refs[i]
}

// Refs returns the children of the cell.
func (c *Cell) Refs() []*Cell {
	r := make([]*Cell, len(c.refs))
	copy(r, c.refs)
	return r
}

// Equal returns true if the cells have the same hash.
func (c *Cell) Equal(d *Cell) bool {
	if c == nil || d == nil {
		return c == d
	}
	return c.hash == d.hash
}

// BeginParse returns a reader positioned at the start of the cell.
func (c *Cell) BeginParse() *Slice {
	return &Slice{cell: c}
}

// String returns the payload in the x{...} notation, with a trailing
// underscore when the payload length is not a multiple of four.
func (c *Cell) String() string {
	return "x{" + c.hexString() + "}"
}

// Dump returns a multi-line rendering of the tree rooted at the cell.
func (c *Cell) Dump() string {
	var sb strings.Builder
	c.dump(&sb, 0)
	return sb.String()
}

func (c *Cell) dump(sb *strings.Builder, indent int) {
	sb.WriteString(strings.Repeat(" ", indent))
	sb.WriteString(c.String())
	sb.WriteString("\n")
	for _, r := range c.refs {
		r.dump(sb, indent+1)
	}
}

func (c *Cell) hexString() string {
	if c.bits%4 == 0 {
		s := hex.EncodeToString(c.data)
		return strings.ToUpper(s[:c.bits/4])
	}

	b := c.paddedData()
	s := hex.EncodeToString(b)
	return strings.ToUpper(s[:(c.bits+4)/4]) + "_"
}
