// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	. "gitlab.com/accumulatenetwork/nft-collection/internal/util/cmd"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/collection"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/types/address"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/types/cell"
)

var cmdDecode = &cobra.Command{
	Use:   "decode",
	Short: "Decode message bodies and addresses",
	Run:   printUsageAndExit1,
}

var cmdDecodeBody = &cobra.Command{
	Use:   "body <base64 BoC>",
	Short: "Decode a message body sent to the collection",
	Args:  cobra.ExactArgs(1),
	Run:   decodeBody,
}

var cmdDecodeAddress = &cobra.Command{
	Use:   "address <address>",
	Short: "Show every form of an address",
	Args:  cobra.ExactArgs(1),
	Run:   decodeAddress,
}

var flagDecode = struct {
	Dump bool
}{}

func init() {
	cmdMain.AddCommand(cmdDecode)
	cmdDecode.AddCommand(cmdDecodeBody, cmdDecodeAddress)
	cmdDecodeBody.Flags().BoolVar(&flagDecode.Dump, "dump", false, "Print the cell tree")
}

func decodeBody(_ *cobra.Command, args []string) {
	body, err := cell.FromBase64(args[0])
	Check(err)

	if flagDecode.Dump {
		fmt.Println(body.Dump())
	}

	msg, err := collection.DecodeMessage(body)
	Check(err)

	hash := body.Hash()
	rows := append(describeMessage(msg), []string{"Body hash", hex.EncodeToString(hash[:])})
	printTable(os.Stdout, []string{"Field", "Value"}, rows)
}

func decodeAddress(_ *cobra.Command, args []string) {
	addr, flags, err := address.ParseWithFlags(args[0])
	Check(err)

	form := func(bounce, testnet bool) string {
		return addr.Format(address.FormatOptions{Bounceable: bounce, Testnet: testnet, URLSafe: true})
	}
	printTable(os.Stdout, []string{"Form", "Address"}, [][]string{
		{"Raw", addr.Raw()},
		{"Bounceable", form(true, false)},
		{"Non-bounceable", form(false, false)},
		{"Testnet bounceable", form(true, true)},
		{"Testnet non-bounceable", form(false, true)},
	})
	fmt.Printf("Input is bounceable=%v testnet=%v\n", flags.Bounceable, flags.Testnet)
}
