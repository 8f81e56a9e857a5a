// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package address

import (
	"encoding/base64"
	"encoding/binary"

	"github.com/sigurn/crc16"
)

const (
	flagBounceable    = 0x11
	flagNonBounceable = 0x51
	flagTestnet       = 0x80

	friendlyLen = 36
)

var crcTable = crc16.MakeTable(crc16.CRC16_XMODEM)

// FormatOptions controls the user-friendly encoding.
type FormatOptions struct {
	Bounceable bool
	Testnet    bool
	URLSafe    bool
}

// Flags are the options recovered when parsing a user-friendly address.
type Flags = FormatOptions

// Format formats the address in the 48 character user-friendly form: a tag
// byte, the workchain, the hash, and a CRC16-XMODEM checksum, base64 encoded.
func (a *Address) Format(opts FormatOptions) string {
	b := make([]byte, friendlyLen)
	if opts.Bounceable {
		b[0] = flagBounceable
	} else {
		b[0] = flagNonBounceable
	}
	if opts.Testnet {
		b[0] |= flagTestnet
	}
	b[1] = byte(a.Workchain)
	copy(b[2:34], a.Hash[:])
	binary.BigEndian.PutUint16(b[34:], crc16.Checksum(b[:34], crcTable))

	if opts.URLSafe {
		return base64.URLEncoding.EncodeToString(b)
	}
	return base64.StdEncoding.EncodeToString(b)
}
