// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

//go:build tools
// +build tools

package nftcollection

import (
	_ "github.com/rinchsan/gosimports/cmd/gosimports"
	_ "github.com/vektra/mockery/v2"
	_ "gotest.tools/gotestsum"
)
