// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package version holds the build version, set with
//
//	-ldflags "-X gitlab.com/accumulatenetwork/nft-collection/pkg/version.Version=v1.0.0"
package version

const unknownVersion = "version unknown"

var Version = unknownVersion
var Commit string

func IsVersionKnown() bool {
	return Version != unknownVersion
}

// UserAgent is sent with requests to remote services.
func UserAgent() string {
	if !IsVersionKnown() {
		return "nft-collection"
	}
	return "nft-collection/" + Version
}
