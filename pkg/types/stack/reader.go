// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package stack

import (
	"math"
	"math/big"

	"gitlab.com/accumulatenetwork/nft-collection/pkg/errors"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/types/address"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/types/cell"
)

// Reader reads get method results in order.
type Reader struct {
	items []Value
	pos   int
}

// NewReader returns a reader over the given values.
func NewReader(items []Value) *Reader {
	return &Reader{items: items}
}

// Remaining returns the number of unread values.
func (r *Reader) Remaining() int { return len(r.items) - r.pos }

func (r *Reader) next(want string) (Value, error) {
	if r.pos >= len(r.items) {
		return nil, errors.Truncated.Skip(1).WithFormat("expected %s at position %d, stack has %d entries", want, r.pos, len(r.items))
	}
	v := r.items[r.pos]
	r.pos++
	return v, nil
}

func (r *Reader) mismatch(want string, got Value) error {
	kind := "nil"
	if got != nil {
		kind = got.Kind()
	}
	return errors.TypeMismatch.Skip(1).WithFormat("expected %s at position %d, got %s", want, r.pos-1, kind)
}

// Skip skips n values.
func (r *Reader) Skip(n int) error {
	if n > r.Remaining() {
		return errors.Truncated.WithFormat("cannot skip %d entries, %d left", n, r.Remaining())
	}
	r.pos += n
	return nil
}

// ReadBigInt reads an integer.
func (r *Reader) ReadBigInt() (*big.Int, error) {
	v, err := r.next("int")
	if err != nil {
		return nil, err
	}
	i, ok := v.(Int)
	if !ok {
		return nil, r.mismatch("int", v)
	}
	if i.Value == nil {
		return new(big.Int), nil
	}
	return i.Value, nil
}

// ReadInt reads an integer that fits in an int64.
func (r *Reader) ReadInt() (int64, error) {
	v, err := r.ReadBigInt()
	if err != nil {
		return 0, err
	}
	if !v.IsInt64() {
		return 0, errors.RangeError.WithFormat("%v does not fit in an int64", v)
	}
	return v.Int64(), nil
}

// ReadUint64 reads a non-negative integer that fits in a uint64.
func (r *Reader) ReadUint64() (uint64, error) {
	v, err := r.ReadBigInt()
	if err != nil {
		return 0, err
	}
	if !v.IsUint64() {
		return 0, errors.RangeError.WithFormat("%v does not fit in a uint64", v)
	}
	return v.Uint64(), nil
}

// ReadUint16 reads a non-negative integer that fits in a uint16.
func (r *Reader) ReadUint16() (uint16, error) {
	v, err := r.ReadUint64()
	if err != nil {
		return 0, err
	}
	if v > math.MaxUint16 {
		return 0, errors.RangeError.WithFormat("%d does not fit in a uint16", v)
	}
	return uint16(v), nil
}

// ReadCell reads a cell or a slice.
func (r *Reader) ReadCell() (*cell.Cell, error) {
	v, err := r.next("cell")
	if err != nil {
		return nil, err
	}
	switch v := v.(type) {
	case Cell:
		return v.Cell, nil
	case Slice:
		return v.Cell, nil
	}
	return nil, r.mismatch("cell", v)
}

// ReadAddress reads an address. The value may be an [Addr] or a slice or cell
// holding a serialized address. The empty address is rejected.
func (r *Reader) ReadAddress() (*address.Address, error) {
	a, err := r.ReadAddressOpt()
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, errors.TypeMismatch.WithFormat("expected address at position %d, got none", r.pos-1)
	}
	return a, nil
}

// ReadAddressOpt reads an address, or nil for the empty address or null.
func (r *Reader) ReadAddressOpt() (*address.Address, error) {
	v, err := r.next("address")
	if err != nil {
		return nil, err
	}

	var c *cell.Cell
	switch v := v.(type) {
	case Addr:
		return v.Address, nil
	case Null:
		return nil, nil
	case Slice:
		c = v.Cell
	case Cell:
		c = v.Cell
	default:
		return nil, r.mismatch("address", v)
	}

	if c == nil {
		return nil, errors.ValidationError.WithFormat("missing cell at position %d", r.pos-1)
	}
	a, err := c.BeginParse().LoadAddress()
	if err != nil {
		return nil, errors.UnknownError.WithCauseAndFormat(err, "position %d", r.pos-1)
	}
	return a, nil
}
