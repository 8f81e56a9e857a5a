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

// Slice is a read cursor over the bits and references of a cell. Reading
// past the end fails with [errors.Truncated] and does not advance the cursor.
type Slice struct {
	cell *Cell
	pos  uint
	ref  int
}

func (c *Cell) bit(i uint) bool {
	return c.data[i/8]&(0x80>>(i%8)) != 0
}

// Copy returns an independent cursor at the same position.
func (s *Slice) Copy() *Slice {
	t := *s
	return &t
}

// BitsLeft returns the number of unread bits.
func (s *Slice) BitsLeft() uint { return s.cell.bits - s.pos }

// RefsLeft returns the number of unread references.
func (s *Slice) RefsLeft() int { return len(s.cell.refs) - s.ref }

// IsEmpty returns true if there are no unread bits or references.
func (s *Slice) IsEmpty() bool { return s.BitsLeft() == 0 && s.RefsLeft() == 0 }

// EnsureEmpty returns an error if there are unread bits or references.
func (s *Slice) EnsureEmpty() error {
	if s.IsEmpty() {
		return nil
	}
	return errors.ValidationError.WithFormat("unexpected trailing data: %d bits and %d references", s.BitsLeft(), s.RefsLeft())
}

func (s *Slice) need(n uint) error {
	if n > s.BitsLeft() {
		return errors.Truncated.Skip(1).WithFormat("cannot read %d bits, %d bits left", n, s.BitsLeft())
	}
	return nil
}

func (s *Slice) takeUint(n uint) uint64 {
	var v uint64
	for i := uint(0); i < n; i++ {
		v <<= 1
		if s.cell.bit(s.pos) {
			v |= 1
		}
		s.pos++
	}
	return v
}

// LoadBit reads a single bit.
func (s *Slice) LoadBit() (bool, error) {
	if err := s.need(1); err != nil {
		return false, err
	}
	v := s.cell.bit(s.pos)
	s.pos++
	return v, nil
}

// LoadUint reads an unsigned big-endian integer of up to 64 bits.
func (s *Slice) LoadUint(bits uint) (uint64, error) {
	if bits > 64 {
		return 0, errors.RangeError.WithFormat("cannot read a %d-bit integer into a uint64", bits)
	}
	if err := s.need(bits); err != nil {
		return 0, err
	}
	return s.takeUint(bits), nil
}

// PeekUint reads an unsigned integer without advancing the cursor.
func (s *Slice) PeekUint(bits uint) (uint64, error) {
	return s.Copy().LoadUint(bits)
}

// LoadInt reads a two's complement big-endian integer of up to 64 bits.
func (s *Slice) LoadInt(bits uint) (int64, error) {
	if bits == 0 || bits > 64 {
		return 0, errors.RangeError.WithFormat("cannot read a %d-bit signed integer into an int64", bits)
	}
	if err := s.need(bits); err != nil {
		return 0, err
	}
	v := s.takeUint(bits)
	shift := 64 - bits
	return int64(v<<shift) >> shift, nil
}

// LoadBigUint reads an unsigned big-endian integer of up to 256 bits.
func (s *Slice) LoadBigUint(bits uint) (*big.Int, error) {
	if bits > 256 {
		return nil, errors.RangeError.WithFormat("cannot read a %d-bit integer", bits)
	}
	if err := s.need(bits); err != nil {
		return nil, err
	}
	v := new(big.Int)
	for i := uint(0); i < bits; i++ {
		v.Lsh(v, 1)
		if s.cell.bit(s.pos) {
			v.SetBit(v, 0, 1)
		}
		s.pos++
	}
	return v, nil
}

// LoadBytes reads n whole bytes.
func (s *Slice) LoadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, errors.RangeError.WithFormat("cannot read %d bytes", n)
	}
	if err := s.need(uint(n) * 8); err != nil {
		return nil, err
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(s.takeUint(8))
	}
	return b, nil
}

// LoadRemainingBytes reads all of the unread bits, which must be a whole
// number of bytes.
func (s *Slice) LoadRemainingBytes() ([]byte, error) {
	if s.BitsLeft()%8 != 0 {
		return nil, errors.Truncated.WithFormat("%d bits left is not a whole number of bytes", s.BitsLeft())
	}
	return s.LoadBytes(int(s.BitsLeft() / 8))
}

// LoadCoins reads a variable-length amount.
func (s *Slice) LoadCoins() (*big.Int, error) {
	t := s.Copy()
	n, err := t.LoadUint(4)
	if err != nil {
		return nil, err
	}
	v, err := t.LoadBigUint(uint(n) * 8)
	if err != nil {
		return nil, err
	}
	*s = *t
	return v, nil
}

// LoadAddress reads a standard internal address, or nil for the empty
// address. External, variable-length, and anycast addresses are rejected
// with [errors.InvalidTag].
func (s *Slice) LoadAddress() (*address.Address, error) {
	t := s.Copy()
	tag, err := t.LoadUint(2)
	if err != nil {
		return nil, err
	}
	switch tag {
	case 0b00:
		*s = *t
		return nil, nil
	case 0b10:
		// Standard
	default:
		return nil, errors.InvalidTag.WithFormat("unsupported address kind %02b", tag)
	}

	anycast, err := t.LoadBit()
	if err != nil {
		return nil, err
	}
	if anycast {
		return nil, errors.InvalidTag.With("anycast addresses are not supported")
	}

	wc, err := t.LoadInt(8)
	if err != nil {
		return nil, err
	}
	hash, err := t.LoadBytes(32)
	if err != nil {
		return nil, err
	}

	addr := &address.Address{Workchain: int8(wc)}
	copy(addr.Hash[:], hash)
	*s = *t
	return addr, nil
}

// LoadRef reads the next reference.
func (s *Slice) LoadRef() (*Cell, error) {
	if s.RefsLeft() == 0 {
		return nil, errors.Truncated.With("no references left")
	}
	c := s.cell.refs[s.ref]
	s.ref++
	return c, nil
}

// LoadMaybeRef reads a presence bit and, if it is set, the next reference.
func (s *Slice) LoadMaybeRef() (*Cell, error) {
	t := s.Copy()
	ok, err := t.LoadBit()
	if err != nil {
		return nil, err
	}
	if !ok {
		*s = *t
		return nil, nil
	}
	c, err := t.LoadRef()
	if err != nil {
		return nil, err
	}
	*s = *t
	return c, nil
}

// ToCell returns a new cell holding the unread bits and references.
func (s *Slice) ToCell() (*Cell, error) {
	return BeginCell().StoreSlice(s).EndCell()
}
