// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package cell_test

import (
	"encoding/base64"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/errors"
	. "gitlab.com/accumulatenetwork/nft-collection/pkg/types/cell"
)

func TestBOC(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		require.Equal(t, "te6cckEBAQEAAgAAAEysuc0=", Empty().ToBase64())
	})

	t.Run("Single", func(t *testing.T) {
		c := mustEnd(t, BeginCell().StoreUint(0x693d3950, 32).StoreUint(1234, 64))
		require.Equal(t, "te6cckEBAQEADgAAGGk9OVAAAAAAAAAE0qMNLkg=", c.ToBase64())
	})

	t.Run("Shared child", func(t *testing.T) {
		c := sampleTree(t)
		require.Equal(t, "te6cckEBAgEACAACAgEBAQABsLhC2L4=", c.ToBase64())

		b, err := ToBOCWithOptions(BOCOptions{}, c)
		require.NoError(t, err)
		require.Equal(t, "b5ee9c720101020100080002020101010001b0", hex.EncodeToString(b))

		b, err = ToBOCWithOptions(BOCOptions{Index: true, CRC32: true}, c)
		require.NoError(t, err)
		require.Equal(t, "te6ccsEBAgEACAAFCAICAQEBAAGw7agBwA==", base64.StdEncoding.EncodeToString(b))
	})
}

func TestBOCDecode(t *testing.T) {
	want := sampleTree(t)
	for name, s := range map[string]string{
		"Checksum": "te6cckEBAgEACAACAgEBAQABsLhC2L4=",
		"Index":    "te6ccsEBAgEACAAFCAICAQEBAAGw7agBwA==",
	} {
		t.Run(name, func(t *testing.T) {
			c, err := FromBase64(s)
			require.NoError(t, err)
			require.True(t, want.Equal(c))
			require.Equal(t, uint(3), c.Ref(0).BitsSize())
		})
	}

	t.Run("No checksum", func(t *testing.T) {
		b, err := hex.DecodeString("b5ee9c720101020100080002020101010001b0")
		require.NoError(t, err)
		c, err := FromBOC(b)
		require.NoError(t, err)
		require.True(t, want.Equal(c))
	})

	t.Run("URL encoding", func(t *testing.T) {
		b := want.ToBOC()
		c, err := FromBase64(base64.URLEncoding.EncodeToString(b))
		require.NoError(t, err)
		require.True(t, want.Equal(c))
	})

	t.Run("Round trip", func(t *testing.T) {
		c := mustEnd(t, BeginCell().
			StoreBits([]byte{0xff, 0xff}, 13).
			StoreRef(want).
			StoreRef(mustEnd(t, BeginCell().StoreRef(want))))
		d, err := FromBOC(c.ToBOC())
		require.NoError(t, err)
		require.True(t, c.Equal(d))
		require.Equal(t, uint16(3), d.Depth())
	})
}

func TestBOCErrors(t *testing.T) {
	decode := func(s string) error {
		b, err := hex.DecodeString(s)
		require.NoError(t, err)
		_, err = FromBOC(b)
		return err
	}

	t.Run("Magic", func(t *testing.T) {
		require.ErrorIs(t, decode("b5ee9c730101020100080002020101010001b0"), errors.InvalidTag)
	})

	t.Run("Truncated", func(t *testing.T) {
		require.ErrorIs(t, decode("b5ee9c720101020100080002020101010001"), errors.Truncated)
		require.ErrorIs(t, decode("b5ee9c72"), errors.Truncated)
	})

	t.Run("Oversized counts", func(t *testing.T) {
		// 0x7fffffff cells and roots in a 19 byte input
		require.ErrorIs(t, decode("b5ee9c7204017fffffff7fffffff0000000000"), errors.Truncated)
		// Index that claims more bytes than remain
		require.ErrorIs(t, decode("b5ee9c7281040401000000000000000000000000000000"), errors.Truncated)
	})

	t.Run("Checksum", func(t *testing.T) {
		b := sampleTree(t).ToBOC()
		b[len(b)-1] ^= 1
		_, err := FromBOC(b)
		require.ErrorIs(t, err, errors.InvalidTag)
	})

	t.Run("Exotic", func(t *testing.T) {
		require.ErrorIs(t, decode("b5ee9c72010101010002000800"), errors.InvalidTag)
	})

	t.Run("Backward reference", func(t *testing.T) {
		require.ErrorIs(t, decode("b5ee9c720101020100080002020100010001b0"), errors.InvalidTag)
	})

	t.Run("Multiple roots", func(t *testing.T) {
		a := mustEnd(t, BeginCell().StoreUint(1, 8))
		b, err := ToBOCWithOptions(DefaultBOCOptions, a, Empty())
		require.NoError(t, err)
		_, err = FromBOC(b)
		require.ErrorIs(t, err, errors.ValidationError)

		roots, err := FromBOCMultiRoot(b)
		require.NoError(t, err)
		require.Len(t, roots, 2)
		require.True(t, a.Equal(roots[0]))
		require.True(t, Empty().Equal(roots[1]))
	})
}
