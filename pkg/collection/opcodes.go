// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package collection

import "fmt"

// Opcode identifies the operation carried by a message body.
type Opcode uint32

const (
	OpMint                Opcode = 1
	OpBatchMint           Opcode = 2
	OpChangeOwner         Opcode = 3
	OpChangeContent       Opcode = 4
	OpChangeMintPrice     Opcode = 5
	OpGetRoyaltyParams    Opcode = 0x693d3950
	OpReportRoyaltyParams Opcode = 0xa8cb00ad
)

var opcodeNames = map[Opcode]string{
	OpMint:                "mint",
	OpBatchMint:           "batchMint",
	OpChangeOwner:         "changeOwner",
	OpChangeContent:       "changeContent",
	OpChangeMintPrice:     "changeMintPrice",
	OpGetRoyaltyParams:    "getRoyaltyParams",
	OpReportRoyaltyParams: "reportRoyaltyParams",
}

// Known returns true if the opcode is one of the defined operations.
func (op Opcode) Known() bool {
	_, ok := opcodeNames[op]
	return ok
}

func (op Opcode) String() string {
	if s, ok := opcodeNames[op]; ok {
		return s
	}
	return fmt.Sprintf("Opcode(%#x)", uint32(op))
}
