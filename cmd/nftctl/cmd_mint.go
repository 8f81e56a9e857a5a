// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/spf13/cobra"
	. "gitlab.com/accumulatenetwork/nft-collection/internal/util/cmd"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/collection"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/errors"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/types/coins"
)

var cmdMint = &cobra.Command{
	Use:   "mint <index> <receiver> <uri>",
	Short: "Mint an item",
	Long:  "Mint an item. The value sent is the mint price, which is queried from the collection, plus the amount forwarded to the item and the fee.",
	Args:  cobra.ExactArgs(3),
	Run:   mint,
}

var cmdBatchMint = &cobra.Command{
	Use:   "batch-mint <owner> <index>=<uri>...",
	Short: "Mint several items owned by the same address",
	Args:  cobra.MinimumNArgs(2),
	Run:   batchMint,
}

var flagMint = struct {
	Owner   string
	Amount  string
	Fee     string
	QueryID uint64
}{}

func init() {
	cmdMain.AddCommand(cmdMint, cmdBatchMint)
	for _, cmd := range []*cobra.Command{cmdMint, cmdBatchMint} {
		cmd.Flags().StringVar(&flagMint.Amount, "amount", "0.05", "TON forwarded to each item")
		cmd.Flags().StringVar(&flagMint.Fee, "fee", "0.05", "TON added to the value to pay for processing")
		cmd.Flags().Uint64Var(&flagMint.QueryID, "query-id", 0, "Query ID (defaults to the current time)")
	}
	cmdMint.Flags().StringVar(&flagMint.Owner, "owner", "", "Owner of the item (defaults to the receiver)")
}

func mint(_ *cobra.Command, args []string) {
	e := setup()
	c := e.open()

	msg := &collection.Mint{
		QueryID:  queryID(flagMint.QueryID),
		Index:    parseUint("index", args[0]),
		Amount:   parseTON("amount", flagMint.Amount),
		Receiver: parseAddr("receiver", args[1]),
	}
	msg.Content.URI = args[2]
	msg.Content.Owner = msg.Receiver
	if flagMint.Owner != "" {
		msg.Content.Owner = parseAddr("owner", flagMint.Owner)
	}

	ctx, cancel := contextForMainProcess()
	defer cancel()

	price, err := c.GetMintingPrice(ctx)
	Checkf(err, "get minting price")

	value := new(big.Int).Add(coins.FromUint64(price), msg.Amount)
	value.Add(value, parseTON("fee", flagMint.Fee))
	fmt.Printf("Minting item %d for %s\n", msg.Index, formatNano(value))

	_, err = c.SendMint(ctx, value, msg)
	Check(err)
}

func batchMint(_ *cobra.Command, args []string) {
	e := setup()
	c := e.open()

	owner := parseAddr("owner", args[0])
	amount := parseTON("amount", flagMint.Amount)

	var items []collection.BatchItem
	for _, arg := range args[1:] {
		index, uri, ok := strings.Cut(arg, "=")
		if !ok {
			Check(errors.BadRequest.WithFormat("invalid item %q: want <index>=<uri>", arg))
		}
		item := collection.BatchItem{Index: parseUint("index", index), Amount: amount}
		item.Content.Owner = owner
		item.Content.URI = uri
		items = append(items, item)
	}

	list, err := collection.BuildDeployList(items)
	Check(err)

	value := new(big.Int).Mul(amount, big.NewInt(int64(len(items))))
	value.Add(value, parseTON("fee", flagMint.Fee))

	ctx, cancel := contextForMainProcess()
	defer cancel()

	msg := &collection.BatchMint{QueryID: queryID(flagMint.QueryID), DeployList: list}
	printTable(os.Stdout, []string{"Field", "Value"}, describeMessage(msg))
	_, err = c.SendBatchMint(ctx, value, msg)
	Check(err)
}
