// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package address implements account addresses: a signed workchain identifier
// and a 256-bit account hash.
package address

import (
	"bytes"
	"encoding/hex"
	"fmt"
)

// Well-known workchains.
const (
	BaseWorkchain   int8 = 0
	MasterWorkchain int8 = -1
)

// Address is an internal standard address. The zero value is the all-zero
// hash on the base workchain. An absent address is represented by a nil
// *Address.
type Address struct {
	Workchain int8
	Hash      [32]byte
}

// New returns an address for the given workchain and hash.
func New(workchain int8, hash [32]byte) *Address {
	return &Address{Workchain: workchain, Hash: hash}
}

// Equal returns true if both addresses are nil, or both are non-nil and have
// the same workchain and hash.
func (a *Address) Equal(b *Address) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Copy returns a copy of the address.
func (a *Address) Copy() *Address {
	if a == nil {
		return nil
	}
	b := *a
	return &b
}

// Compare orders addresses by workchain and then hash.
func (a *Address) Compare(b *Address) int {
	switch {
	case a.Workchain < b.Workchain:
		return -1
	case a.Workchain > b.Workchain:
		return +1
	}
	return bytes.Compare(a.Hash[:], b.Hash[:])
}

// Raw formats the address as <workchain>:<hex hash>.
func (a *Address) Raw() string {
	return fmt.Sprintf("%d:%s", a.Workchain, hex.EncodeToString(a.Hash[:]))
}

// String formats the address in the user-friendly bounceable, URL-safe,
// mainnet form.
func (a *Address) String() string {
	if a == nil {
		return "<none>"
	}
	return a.Format(FormatOptions{Bounceable: true, URLSafe: true})
}

// MarshalText implements [encoding.TextMarshaler].
func (a *Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (a *Address) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*a = *v
	return nil
}
