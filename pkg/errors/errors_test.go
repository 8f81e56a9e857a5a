// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package errors_test

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/errors"
)

func TestStatusIs(t *testing.T) {
	err := errors.RangeError.WithFormat("value %d does not fit in %d bits", 300, 8)
	require.ErrorIs(t, err, errors.RangeError)
	require.NotErrorIs(t, err, errors.Truncated)
	require.Equal(t, errors.RangeError, errors.Code(err))
	require.Equal(t, "value 300 does not fit in 8 bits", err.Error())
}

func TestWrapKeepsCode(t *testing.T) {
	inner := errors.Truncated.With("need 8 bits, have 3")
	outer := errors.UnknownError.WithFormat("load workchain: %w", inner)
	require.ErrorIs(t, outer, errors.Truncated)
	require.Equal(t, errors.Truncated, errors.Code(outer))

	wrapped := errors.UnknownError.Wrap(outer)
	require.Equal(t, errors.Truncated, errors.Code(wrapped))
}

func TestWrapForeign(t *testing.T) {
	err := errors.BadRequest.Wrap(io.ErrUnexpectedEOF)
	require.ErrorIs(t, err, errors.BadRequest)
	require.Equal(t, io.ErrUnexpectedEOF.Error(), err.Error())

	require.NoError(t, errors.BadRequest.Wrap(nil))
}

func TestDecodeKinds(t *testing.T) {
	for _, s := range []errors.Status{errors.Truncated, errors.InvalidTag, errors.TypeMismatch} {
		require.True(t, s.IsDecodeError(), s.String())
	}
	require.False(t, errors.RangeError.IsDecodeError())
	require.False(t, errors.ValidationError.IsDecodeError())
}

func TestPrintCallStack(t *testing.T) {
	err := errors.InvalidTag.WithCauseAndFormat(errors.Truncated.With("short"), "bad header")
	s := fmt.Sprintf("%+v", err)
	require.True(t, strings.HasPrefix(s, "bad header\n"), s)
	require.Contains(t, s, "errors_test.TestPrintCallStack")
	require.Contains(t, s, "short")
}
