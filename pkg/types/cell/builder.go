// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package cell

import (
	"math/big"

	"gitlab.com/accumulatenetwork/nft-collection/pkg/errors"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/types/address"
)

// MaxCoinsBytes is the maximum length of a variable-length coin amount.
const MaxCoinsBytes = 15

// Builder accumulates bits and references for a single cell. Errors are
// deferred: the first failing store is recorded, subsequent stores are
// ignored, and the error is returned by EndCell. A builder can only be
// finalized once.
type Builder struct {
	bits uint
	data [(MaxBits + 7) / 8]byte
	refs []*Cell
	err  error
	done bool
}

// BeginCell returns a new, empty builder.
func BeginCell() *Builder {
	return new(Builder)
}

// Err returns the first error recorded by the builder, if any.
func (b *Builder) Err() error { return b.err }

// BitsUsed returns the number of bits stored so far.
func (b *Builder) BitsUsed() uint { return b.bits }

// BitsLeft returns the number of bits that can still be stored.
func (b *Builder) BitsLeft() uint { return MaxBits - b.bits }

// RefsUsed returns the number of references stored so far.
func (b *Builder) RefsUsed() int { return len(b.refs) }

func (b *Builder) record(err error) {
	if b.err == nil {
		b.err = err
	}
}

// ok returns true if the builder can accept n more bits.
func (b *Builder) ok(n uint) bool {
	if b.err != nil {
		return false
	}
	if b.done {
		b.record(errors.ValidationError.With("builder has already been finalized"))
		return false
	}
	if b.bits+n > MaxBits {
		b.record(errors.ValidationError.Skip(1).WithFormat("cell overflow: cannot store %d bits, %d bits left", n, MaxBits-b.bits))
		return false
	}
	return true
}

func (b *Builder) putBit(v bool) {
	if v {
		b.data[b.bits/8] |= 0x80 >> (b.bits % 8)
	}
	b.bits++
}

func (b *Builder) putUint(v uint64, n uint) {
	for i := n; i > 0; i-- {
		b.putBit(v>>(i-1)&1 == 1)
	}
}

// StoreBit stores a single bit.
func (b *Builder) StoreBit(v bool) *Builder {
	if b.ok(1) {
		b.putBit(v)
	}
	return b
}

// StoreUint stores v as an unsigned big-endian integer of the given width.
// Widths above 64 bits require StoreBigUint.
func (b *Builder) StoreUint(v uint64, bits uint) *Builder {
	switch {
	case bits > 64:
		b.record(errors.RangeError.WithFormat("cannot store a %d-bit integer from a uint64", bits))
		return b
	case bits < 64 && v>>bits != 0:
		b.record(errors.RangeError.WithFormat("value %d does not fit in %d bits", v, bits))
		return b
	}
	if b.ok(bits) {
		b.putUint(v, bits)
	}
	return b
}

// StoreInt stores v as a two's complement big-endian integer of the given
// width.
func (b *Builder) StoreInt(v int64, bits uint) *Builder {
	if bits == 0 || bits > 64 {
		b.record(errors.RangeError.WithFormat("cannot store a %d-bit signed integer from an int64", bits))
		return b
	}
	if bits < 64 {
		limit := int64(1) << (bits - 1)
		if v < -limit || v >= limit {
			b.record(errors.RangeError.WithFormat("value %d does not fit in %d signed bits", v, bits))
			return b
		}
	}
	if b.ok(bits) {
		b.putUint(uint64(v), bits)
	}
	return b
}

// StoreBigUint stores a non-negative integer of up to 256 bits.
func (b *Builder) StoreBigUint(v *big.Int, bits uint) *Builder {
	switch {
	case v == nil:
		b.record(errors.ValidationError.With("value is missing"))
		return b
	case v.Sign() < 0:
		b.record(errors.RangeError.WithFormat("value %v is negative", v))
		return b
	case bits > 256:
		b.record(errors.RangeError.WithFormat("cannot store a %d-bit integer", bits))
		return b
	case uint(v.BitLen()) > bits:
		b.record(errors.RangeError.WithFormat("value %v does not fit in %d bits", v, bits))
		return b
	}
	if !b.ok(bits) {
		return b
	}
	for i := int(bits) - 1; i >= 0; i-- {
		b.putBit(v.Bit(i) == 1)
	}
	return b
}

// StoreBytes stores the given bytes.
func (b *Builder) StoreBytes(v []byte) *Builder {
	if b.ok(uint(len(v)) * 8) {
		for _, c := range v {
			b.putUint(uint64(c), 8)
		}
	}
	return b
}

// StoreBits stores the first n bits of v.
func (b *Builder) StoreBits(v []byte, n uint) *Builder {
	if n > uint(len(v))*8 {
		b.record(errors.RangeError.WithFormat("cannot store %d bits from %d bytes", n, len(v)))
		return b
	}
	if b.ok(n) {
		for i := uint(0); i < n; i++ {
			b.putBit(v[i/8]&(0x80>>(i%8)) != 0)
		}
	}
	return b
}

// StoreCoins stores a variable-length amount: a 4-bit byte count followed by
// the amount as a minimal big-endian integer.
func (b *Builder) StoreCoins(v *big.Int) *Builder {
	switch {
	case v == nil:
		b.record(errors.ValidationError.With("amount is missing"))
		return b
	case v.Sign() < 0:
		b.record(errors.RangeError.WithFormat("amount %v is negative", v))
		return b
	}

	n := (v.BitLen() + 7) / 8
	if n > MaxCoinsBytes {
		b.record(errors.RangeError.WithFormat("amount %v exceeds %d bytes", v, MaxCoinsBytes))
		return b
	}
	b.StoreUint(uint64(n), 4)
	b.StoreBigUint(v, uint(n)*8)
	return b
}

// StoreAddress stores a standard internal address, or the empty address if
// addr is nil.
func (b *Builder) StoreAddress(addr *address.Address) *Builder {
	if addr == nil {
		return b.StoreUint(0b00, 2)
	}
	if !b.ok(2 + 1 + 8 + 256) {
		return b
	}
	b.putUint(0b10, 2)
	b.putBit(false) // No anycast
	b.putUint(uint64(uint8(addr.Workchain)), 8)
	for _, c := range addr.Hash {
		b.putUint(uint64(c), 8)
	}
	return b
}

// StoreRef appends a reference to the given cell.
func (b *Builder) StoreRef(c *Cell) *Builder {
	switch {
	case c == nil:
		b.record(errors.ValidationError.With("reference is missing"))
		return b
	case !b.ok(0):
		return b
	case len(b.refs) >= MaxRefs:
		b.record(errors.ValidationError.WithFormat("cell overflow: cannot store more than %d references", MaxRefs))
		return b
	case c.depth+1 > MaxDepth:
		b.record(errors.ValidationError.WithFormat("cell tree exceeds the maximum depth of %d", MaxDepth))
		return b
	}
	b.refs = append(b.refs, c)
	return b
}

// StoreMaybeRef stores a presence bit followed by a reference to c if c is
// not nil.
func (b *Builder) StoreMaybeRef(c *Cell) *Builder {
	if c == nil {
		return b.StoreBit(false)
	}
	b.StoreBit(true)
	return b.StoreRef(c)
}

// StoreSlice stores the remaining bits and references of s. The slice is not
// consumed.
func (b *Builder) StoreSlice(s *Slice) *Builder {
	if s == nil {
		b.record(errors.ValidationError.With("slice is missing"))
		return b
	}
	if !b.ok(s.BitsLeft()) {
		return b
	}
	if len(b.refs)+s.RefsLeft() > MaxRefs {
		b.record(errors.ValidationError.WithFormat("cell overflow: cannot store more than %d references", MaxRefs))
		return b
	}
	for i := s.pos; i < s.cell.bits; i++ {
		b.putBit(s.cell.bit(i))
	}
	b.refs = append(b.refs, s.cell.refs[s.ref:]...)
	return b
}

// EndCell finalizes the builder. It returns the first error recorded by a
// store, if any.
func (b *Builder) EndCell() (*Cell, error) {
	if b.done {
		return nil, errors.ValidationError.With("builder has already been finalized")
	}
	b.done = true
	if b.err != nil {
		return nil, b.err
	}

	data := make([]byte, (b.bits+7)/8)
	copy(data, b.data[:])
	refs := make([]*Cell, len(b.refs))
	copy(refs, b.refs)
	return newCell(b.bits, data, refs), nil
}
