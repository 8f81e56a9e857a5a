// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package stack defines the values passed to and returned from contract get
// methods.
package stack

import (
	"fmt"
	"math/big"

	"gitlab.com/accumulatenetwork/nft-collection/pkg/types/address"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/types/cell"
)

// Value is a get method argument or result: one of [Int], [Cell], [Slice],
// [Addr], or [Null].
type Value interface {
	Kind() string
	fmt.Stringer
	isValue()
}

// Int is an integer of up to 257 bits.
type Int struct {
	Value *big.Int
}

// Cell is a cell tree.
type Cell struct {
	Cell *cell.Cell
}

// Slice is a cell tree read as a slice from its start.
type Slice struct {
	Cell *cell.Cell
}

// Addr is an address that has already been decoded by the transport.
type Addr struct {
	Address *address.Address
}

// Null is the null value.
type Null struct{}

func (Int) isValue()   {}
func (Cell) isValue()  {}
func (Slice) isValue() {}
func (Addr) isValue()  {}
func (Null) isValue()  {}

func (Int) Kind() string   { return "int" }
func (Cell) Kind() string  { return "cell" }
func (Slice) Kind() string { return "slice" }
func (Addr) Kind() string  { return "address" }
func (Null) Kind() string  { return "null" }

func (v Int) String() string {
	if v.Value == nil {
		return "0"
	}
	return v.Value.String()
}

func (v Cell) String() string  { return cellString(v.Cell) }
func (v Slice) String() string { return cellString(v.Cell) }
func (v Addr) String() string  { return v.Address.String() }
func (Null) String() string    { return "null" }

func cellString(c *cell.Cell) string {
	if c == nil {
		return "<nil>"
	}
	return c.String()
}

// NewInt returns an [Int].
func NewInt(v int64) Int { return Int{big.NewInt(v)} }

// NewUint returns an [Int].
func NewUint(v uint64) Int { return Int{new(big.Int).SetUint64(v)} }

// NewCell returns a [Cell].
func NewCell(c *cell.Cell) Cell { return Cell{c} }

// NewSlice returns a [Slice].
func NewSlice(c *cell.Cell) Slice { return Slice{c} }
