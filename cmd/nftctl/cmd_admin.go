// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	. "gitlab.com/accumulatenetwork/nft-collection/internal/util/cmd"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/collection"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/errors"
)

var cmdSetMintPrice = &cobra.Command{
	Use:   "set-mint-price <ton>",
	Short: "Change the price of minting an item",
	Args:  cobra.ExactArgs(1),
	Run:   setMintPrice,
}

var cmdChangeOwner = &cobra.Command{
	Use:   "change-owner <new owner>",
	Short: "Transfer ownership of the collection",
	Args:  cobra.ExactArgs(1),
	Run:   changeOwner,
}

var cmdChangeContent = &cobra.Command{
	Use:   "change-content <collection content> <common content>",
	Short: "Change the content and royalty parameters of the collection",
	Long:  "Change the content and royalty parameters of the collection. Royalty parameters that are not given are kept.",
	Args:  cobra.ExactArgs(2),
	Run:   changeContent,
}

var flagAdmin = struct {
	Value          string
	QueryID        uint64
	RoyaltyFactor  uint16
	RoyaltyBase    uint16
	RoyaltyAddress string
}{}

func init() {
	cmdMain.AddCommand(cmdSetMintPrice, cmdChangeOwner, cmdChangeContent)
	for _, cmd := range []*cobra.Command{cmdSetMintPrice, cmdChangeOwner, cmdChangeContent} {
		cmd.Flags().StringVar(&flagAdmin.Value, "value", "0.02", "TON to send with the message")
		cmd.Flags().Uint64Var(&flagAdmin.QueryID, "query-id", 0, "Query ID (defaults to the current time)")
	}
	cmdChangeContent.Flags().Uint16Var(&flagAdmin.RoyaltyFactor, "royalty-factor", 0, "Royalty numerator")
	cmdChangeContent.Flags().Uint16Var(&flagAdmin.RoyaltyBase, "royalty-base", 0, "Royalty denominator")
	cmdChangeContent.Flags().StringVar(&flagAdmin.RoyaltyAddress, "royalty-address", "", "Address that receives royalties")
}

func setMintPrice(_ *cobra.Command, args []string) {
	e := setup()
	c := e.open()

	price := parseTON("price", args[0])
	if !price.IsUint64() {
		Check(errors.RangeError.WithFormat("mint price %s is out of range", args[0]))
	}

	ctx, cancel := contextForMainProcess()
	defer cancel()

	msg := &collection.ChangeMintPrice{QueryID: queryID(flagAdmin.QueryID), MintPrice: price.Uint64()}
	_, err := c.SendChangeMintPrice(ctx, parseTON("value", flagAdmin.Value), msg)
	Check(err)
	fmt.Printf("Mint price set to %s\n", formatNano(price))
}

func changeOwner(_ *cobra.Command, args []string) {
	e := setup()
	c := e.open()

	ctx, cancel := contextForMainProcess()
	defer cancel()

	msg := &collection.ChangeOwner{QueryID: queryID(flagAdmin.QueryID), NewOwner: parseAddr("owner", args[0])}
	_, err := c.SendChangeOwner(ctx, parseTON("value", flagAdmin.Value), msg)
	Check(err)
}

func changeContent(cmd *cobra.Command, args []string) {
	e := setup()
	c := e.open()

	ctx, cancel := contextForMainProcess()
	defer cancel()

	msg := &collection.ChangeContent{
		QueryID:              queryID(flagAdmin.QueryID),
		CollectionContentURL: args[0],
		CommonContentURL:     args[1],
	}

	flags := cmd.Flags()
	if !flags.Changed("royalty-factor") || !flags.Changed("royalty-base") || !flags.Changed("royalty-address") {
		current, err := c.GetRoyaltyParams(ctx)
		Checkf(err, "get royalty params")
		msg.Royalty = *current
	}
	if flags.Changed("royalty-factor") {
		msg.Royalty.Factor = flagAdmin.RoyaltyFactor
	}
	if flags.Changed("royalty-base") {
		msg.Royalty.Base = flagAdmin.RoyaltyBase
	}
	if flags.Changed("royalty-address") {
		msg.Royalty.Address = parseAddr("royalty address", flagAdmin.RoyaltyAddress)
	}

	_, err := c.SendChangeContent(ctx, parseTON("value", flagAdmin.Value), msg)
	Check(err)
}
