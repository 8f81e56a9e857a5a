// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package cmdutil

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/errors"
)

func capture(t *testing.T) (*bytes.Buffer, *int) {
	buf := new(bytes.Buffer)
	code := -1
	oldErr, oldExit := stderr, Exit
	stderr = buf
	Exit = func(c int) { code = c }
	t.Cleanup(func() { stderr, Exit = oldErr, oldExit })
	return buf, &code
}

func TestCheck(t *testing.T) {
	t.Run("Nil", func(t *testing.T) {
		buf, code := capture(t)
		Check(nil)
		require.Equal(t, -1, *code)
		require.Empty(t, buf.String())
	})

	t.Run("Client error", func(t *testing.T) {
		buf, code := capture(t)
		Check(errors.ValidationError.With("missing owner"))
		require.Equal(t, 2, *code)
		require.Equal(t, "Error: missing owner\n", buf.String())
	})

	t.Run("Other error", func(t *testing.T) {
		buf, code := capture(t)
		Checkf(errors.Rejected.With("exit code 11"), "query %s", "royalty_params")
		require.Equal(t, 1, *code)
		require.Equal(t, "Error: query royalty_params: exit code 11\n", buf.String())
	})
}

func TestWarnf(t *testing.T) {
	buf, _ := capture(t)
	Warnf("%d items", 3)
	require.Equal(t, "WARNING: 3 items\n", buf.String())
}
