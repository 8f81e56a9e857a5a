// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package coins converts between whole-token amounts and the integer nano
// amounts carried in messages.
package coins

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/errors"
)

// Decimals is the number of decimal places of a whole token.
const Decimals = 9

// MaxCoins returns the largest amount that can be serialized, 2^120-1.
func MaxCoins() *big.Int {
	v := new(big.Int).Lsh(big.NewInt(1), 120)
	return v.Sub(v, big.NewInt(1))
}

// Validate returns an error if the amount is missing, negative, or too large
// to serialize.
func Validate(amount *big.Int) error {
	switch {
	case amount == nil:
		return errors.ValidationError.With("amount is missing")
	case amount.Sign() < 0:
		return errors.RangeError.WithFormat("amount %v is negative", amount)
	case amount.Cmp(MaxCoins()) > 0:
		return errors.RangeError.WithFormat("amount %v exceeds the maximum", amount)
	}
	return nil
}

// ParseTON parses a whole-token decimal string such as "0.05" and returns
// the amount in nano.
func ParseTON(s string) (*big.Int, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return nil, errors.BadRequest.WithCauseAndFormat(err, "invalid amount %q", s)
	}
	return ToNano(d)
}

// ToNano converts a whole-token amount to nano. Amounts with more than
// [Decimals] decimal places are rejected.
func ToNano(d decimal.Decimal) (*big.Int, error) {
	n := d.Shift(Decimals)
	if !n.IsInteger() {
		return nil, errors.RangeError.WithFormat("amount %v has more than %d decimal places", d, Decimals)
	}
	v := n.BigInt()
	if err := Validate(v); err != nil {
		return nil, err
	}
	return v, nil
}

// FromNano converts a nano amount to whole tokens.
func FromNano(nano *big.Int) decimal.Decimal {
	if nano == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(nano, -Decimals)
}

// FormatTON formats a nano amount as a whole-token decimal string.
func FormatTON(nano *big.Int) string {
	return FromNano(nano).String()
}

// FromUint64 returns the amount as a big integer.
func FromUint64(nano uint64) *big.Int {
	return new(big.Int).SetUint64(nano)
}
