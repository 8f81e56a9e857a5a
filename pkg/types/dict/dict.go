// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package dict implements dictionaries keyed by fixed-width unsigned
// integers, serialized as a binary Patricia tree of cells.
package dict

import (
	"math/bits"
	"sort"

	"gitlab.com/accumulatenetwork/nft-collection/pkg/errors"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/types/cell"
)

// Dictionary maps unsigned integer keys to values. Each value's bits and
// references are stored inline in the leaf for its key.
type Dictionary struct {
	keyBits uint
	entries map[uint64]*cell.Cell
}

// Entry is a key and its value.
type Entry struct {
	Key   uint64
	Value *cell.Slice
}

// New returns an empty dictionary with keys of the given width.
func New(keyBits uint) (*Dictionary, error) {
	if keyBits == 0 || keyBits > 64 {
		return nil, errors.RangeError.WithFormat("unsupported key width %d", keyBits)
	}
	return &Dictionary{keyBits: keyBits, entries: map[uint64]*cell.Cell{}}, nil
}

// KeyBits returns the key width.
func (d *Dictionary) KeyBits() uint { return d.keyBits }

// Len returns the number of entries.
func (d *Dictionary) Len() int { return len(d.entries) }

// Set sets the value of key, replacing any previous value.
func (d *Dictionary) Set(key uint64, value *cell.Cell) error {
	if value == nil {
		return errors.ValidationError.WithFormat("value for key %d is missing", key)
	}
	if key&^mask(d.keyBits) != 0 {
		return errors.RangeError.WithFormat("key %d does not fit in %d bits", key, d.keyBits)
	}
	d.entries[key] = value
	return nil
}

// Get returns the value of key.
func (d *Dictionary) Get(key uint64) (*cell.Cell, bool) {
	v, ok := d.entries[key]
	return v, ok
}

// Keys returns the keys in ascending order.
func (d *Dictionary) Keys() []uint64 {
	keys := make([]uint64, 0, len(d.entries))
	for k := range d.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// ToCell returns the root of the tree. A dictionary with no entries has no
// root and is rejected.
func (d *Dictionary) ToCell() (*cell.Cell, error) {
	if len(d.entries) == 0 {
		return nil, errors.ValidationError.With("dictionary is empty")
	}
	return d.edge(d.Keys(), d.keyBits)
}

// edge builds the subtree for keys that share all but their low m bits. keys
// must be sorted.
func (d *Dictionary) edge(keys []uint64, m uint) (*cell.Cell, error) {
	first, last := keys[0], keys[len(keys)-1]
	n := m
	if len(keys) > 1 {
		n = m - uint(bits.Len64((first^last)&mask(m)))
	}

	b := cell.BeginCell()
	storeLabel(b, (first>>(m-n))&mask(n), n, m)

	if len(keys) == 1 {
		b.StoreSlice(d.entries[first].BeginParse())
		c, err := b.EndCell()
		if err != nil {
			return nil, errors.UnknownError.WithCauseAndFormat(err, "key %d", first)
		}
		return c, nil
	}

	rest := m - n - 1
	split := sort.Search(len(keys), func(i int) bool { return keys[i]>>rest&1 == 1 })
	left, err := d.edge(keys[:split], rest)
	if err != nil {
		return nil, err
	}
	right, err := d.edge(keys[split:], rest)
	if err != nil {
		return nil, err
	}
	return b.StoreRef(left).StoreRef(right).EndCell()
}

// storeLabel stores the n-bit label of an edge with m bits remaining, using
// the shortest of the three label encodings.
func storeLabel(b *cell.Builder, label uint64, n, m uint) {
	lenBits := uint(bits.Len(m))

	const (
		short = iota
		long
		same
	)
	kind, size := short, 2*n+2
	if l := 2 + lenBits + n; l < size {
		kind, size = long, l
	}
	if l := 3 + lenBits; l < size && (label == 0 || label == mask(n)) {
		kind = same
	}

	switch kind {
	case short:
		b.StoreBit(false)
		for i := uint(0); i < n; i++ {
			b.StoreBit(true)
		}
		b.StoreBit(false)
		b.StoreUint(label, n)
	case long:
		b.StoreUint(0b10, 2)
		b.StoreUint(uint64(n), lenBits)
		b.StoreUint(label, n)
	case same:
		b.StoreUint(0b11, 2)
		b.StoreBit(label&1 == 1)
		b.StoreUint(uint64(n), lenBits)
	}
}

func mask(n uint) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}
	return 1<<n - 1
}

// Load parses a tree with keys of the given width and returns its entries in
// ascending key order.
func Load(root *cell.Cell, keyBits uint) ([]Entry, error) {
	if root == nil {
		return nil, errors.ValidationError.With("dictionary is empty")
	}
	if keyBits == 0 || keyBits > 64 {
		return nil, errors.RangeError.WithFormat("unsupported key width %d", keyBits)
	}
	var entries []Entry
	err := load(root, 0, keyBits, &entries)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func load(c *cell.Cell, prefix uint64, m uint, entries *[]Entry) error {
	s := c.BeginParse()
	label, n, err := loadLabel(s, m)
	if err != nil {
		return err
	}

	key := prefix<<n | label
	if n == m {
		*entries = append(*entries, Entry{Key: key, Value: s})
		return nil
	}

	left, err := s.LoadRef()
	if err != nil {
		return err
	}
	right, err := s.LoadRef()
	if err != nil {
		return err
	}
	err = load(left, key<<1, m-n-1, entries)
	if err != nil {
		return err
	}
	return load(right, key<<1|1, m-n-1, entries)
}

func loadLabel(s *cell.Slice, m uint) (uint64, uint, error) {
	lenBits := uint(bits.Len(m))
	long, err := s.LoadBit()
	if err != nil {
		return 0, 0, err
	}

	var n uint
	if !long {
		// Unary length
		for {
			bit, err := s.LoadBit()
			if err != nil {
				return 0, 0, err
			}
			if !bit {
				break
			}
			n++
			if n > m {
				return 0, 0, errors.InvalidTag.WithFormat("label longer than the remaining %d key bits", m)
			}
		}
		label, err := s.LoadUint(n)
		return label, n, err
	}

	same, err := s.LoadBit()
	if err != nil {
		return 0, 0, err
	}
	var v bool
	if same {
		v, err = s.LoadBit()
		if err != nil {
			return 0, 0, err
		}
	}
	l, err := s.LoadUint(lenBits)
	if err != nil {
		return 0, 0, err
	}
	n = uint(l)
	if n > m {
		return 0, 0, errors.InvalidTag.WithFormat("label longer than the remaining %d key bits", m)
	}

	switch {
	case !same:
		label, err := s.LoadUint(n)
		return label, n, err
	case v:
		return mask(n), n, nil
	default:
		return 0, n, nil
	}
}
