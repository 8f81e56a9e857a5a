// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package address

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/sigurn/crc16"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/errors"
)

// Parse parses a raw (<workchain>:<hex>) or user-friendly address.
func Parse(s string) (*Address, error) {
	a, _, err := ParseWithFlags(s)
	return a, err
}

// MustParse calls Parse and panics if it fails.
func MustParse(s string) *Address {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// ParseWithFlags parses an address and returns the flags encoded in the
// user-friendly form. Raw addresses are reported as bounceable mainnet.
func ParseWithFlags(s string) (*Address, Flags, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ":") {
		a, err := ParseRaw(s)
		return a, Flags{Bounceable: true}, err
	}
	return parseFriendly(s)
}

// ParseRaw parses an address of the form <workchain>:<64 hex digits>.
func ParseRaw(s string) (*Address, error) {
	wc, hash, ok := strings.Cut(s, ":")
	if !ok {
		return nil, errors.BadRequest.WithFormat("invalid raw address %q: missing workchain separator", s)
	}

	w, err := strconv.ParseInt(wc, 10, 8)
	if err != nil {
		return nil, errors.RangeError.WithFormat("invalid raw address %q: workchain: %w", s, err)
	}

	b, err := hex.DecodeString(hash)
	if err != nil {
		return nil, errors.BadRequest.WithFormat("invalid raw address %q: %w", s, err)
	}
	if len(b) != 32 {
		return nil, errors.BadRequest.WithFormat("invalid raw address %q: want 32 bytes, got %d", s, len(b))
	}

	a := &Address{Workchain: int8(w)}
	copy(a.Hash[:], b)
	return a, nil
}

func parseFriendly(s string) (*Address, Flags, error) {
	var flags Flags
	if len(s) != 48 {
		return nil, flags, errors.BadRequest.WithFormat("invalid address %q: want 48 characters, got %d", s, len(s))
	}

	enc := base64.StdEncoding
	if strings.ContainsAny(s, "-_") {
		enc = base64.URLEncoding
		flags.URLSafe = true
	}
	b, err := enc.DecodeString(s)
	if err != nil {
		return nil, flags, errors.BadRequest.WithFormat("invalid address %q: %w", s, err)
	}
	if len(b) != friendlyLen {
		return nil, flags, errors.Truncated.WithFormat("invalid address %q: want %d bytes, got %d", s, friendlyLen, len(b))
	}

	want := binary.BigEndian.Uint16(b[34:])
	got := crc16.Checksum(b[:34], crcTable)
	if want != got {
		return nil, flags, errors.InvalidTag.WithFormat("invalid address %q: checksum mismatch", s)
	}

	tag := b[0]
	if tag&flagTestnet != 0 {
		flags.Testnet = true
		tag &^= flagTestnet
	}
	switch tag {
	case flagBounceable:
		flags.Bounceable = true
	case flagNonBounceable:
	default:
		return nil, flags, errors.InvalidTag.WithFormat("invalid address %q: unknown tag %#x", s, b[0])
	}

	a := &Address{Workchain: int8(b[1])}
	copy(a.Hash[:], b[2:34])
	return a, flags, nil
}
