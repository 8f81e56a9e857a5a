// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package coins

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/errors"
)

func TestParseTON(t *testing.T) {
	cases := []struct {
		Input string
		Nano  int64
	}{
		{"0.05", 50000000},
		{"1", 1000000000},
		{" 2.5 ", 2500000000},
		{"0.000000001", 1},
		{"0", 0},
	}
	for _, c := range cases {
		t.Run(c.Input, func(t *testing.T) {
			v, err := ParseTON(c.Input)
			require.NoError(t, err)
			require.Equal(t, c.Nano, v.Int64())
		})
	}

	t.Run("Too precise", func(t *testing.T) {
		_, err := ParseTON("0.0000000001")
		require.ErrorIs(t, err, errors.RangeError)
	})

	t.Run("Negative", func(t *testing.T) {
		_, err := ParseTON("-1")
		require.ErrorIs(t, err, errors.RangeError)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := ParseTON("one")
		require.ErrorIs(t, err, errors.BadRequest)
	})
}

func TestFormatTON(t *testing.T) {
	require.Equal(t, "0.05", FormatTON(big.NewInt(50000000)))
	require.Equal(t, "1", FormatTON(big.NewInt(1000000000)))
	require.Equal(t, "0", FormatTON(nil))
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(MaxCoins()))
	require.ErrorIs(t, Validate(new(big.Int).Add(MaxCoins(), big.NewInt(1))), errors.RangeError)
	require.ErrorIs(t, Validate(nil), errors.ValidationError)
}
