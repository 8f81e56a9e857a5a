// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	. "gitlab.com/accumulatenetwork/nft-collection/internal/util/cmd"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/types/coins"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/types/content"
)

var cmdGet = &cobra.Command{
	Use:   "get",
	Short: "Run get methods of the collection",
	Run:   printUsageAndExit1,
}

var cmdGetData = &cobra.Command{
	Use:   "data",
	Short: "Show the collection data and mint price",
	Args:  cobra.NoArgs,
	Run:   getData,
}

var cmdGetRoyalty = &cobra.Command{
	Use:   "royalty",
	Short: "Show the royalty parameters",
	Args:  cobra.NoArgs,
	Run:   getRoyalty,
}

var cmdGetNftAddress = &cobra.Command{
	Use:   "nft-address <index>...",
	Short: "Show the addresses of items",
	Args:  cobra.MinimumNArgs(1),
	Run:   getNftAddress,
}

var cmdGetNftContent = &cobra.Command{
	Use:   "nft-content <index> <uri>",
	Short: "Show the full content URI of an item",
	Args:  cobra.ExactArgs(2),
	Run:   getNftContent,
}

var flagGet = struct {
	Concurrency int
}{}

func init() {
	cmdMain.AddCommand(cmdGet)
	cmdGet.AddCommand(cmdGetData, cmdGetRoyalty, cmdGetNftAddress, cmdGetNftContent)
	cmdGetNftAddress.Flags().IntVar(&flagGet.Concurrency, "concurrency", 4, "Maximum number of concurrent queries")
}

func getData(_ *cobra.Command, _ []string) {
	e := setup()
	c := e.open()

	ctx, cancel := contextForMainProcess()
	defer cancel()

	data, err := c.GetCollectionData(ctx)
	Check(err)
	price, err := c.GetMintingPrice(ctx)
	Check(err)

	printTable(os.Stdout, []string{"Field", "Value"}, [][]string{
		{"Address", e.format(c.Address)},
		{"Next item index", fmt.Sprint(data.NextItemIndex)},
		{"Collection content", data.CollectionContentURL},
		{"Owner", e.format(data.Owner)},
		{"Mint price", formatNano(coins.FromUint64(price))},
	})
}

func getRoyalty(_ *cobra.Command, _ []string) {
	e := setup()
	c := e.open()

	ctx, cancel := contextForMainProcess()
	defer cancel()

	r, err := c.GetRoyaltyParams(ctx)
	Check(err)

	share := "-"
	if r.Base != 0 {
		share = fmt.Sprintf("%.2f%%", 100*float64(r.Factor)/float64(r.Base))
	}
	printTable(os.Stdout, []string{"Factor", "Base", "Share", "Address"}, [][]string{
		{fmt.Sprint(r.Factor), fmt.Sprint(r.Base), share, e.format(r.Address)},
	})
}

func getNftAddress(_ *cobra.Command, args []string) {
	e := setup()
	c := e.open()

	indices := make([]uint64, len(args))
	for i, arg := range args {
		indices[i] = parseUint("index", arg)
	}

	ctx, cancel := contextForMainProcess()
	defer cancel()

	addrs, err := c.GetNftAddresses(ctx, indices, flagGet.Concurrency)
	Check(err)

	rows := make([][]string, len(addrs))
	for i, addr := range addrs {
		rows[i] = []string{fmt.Sprint(indices[i]), e.format(addr), addr.Raw()}
	}
	printTable(os.Stdout, []string{"Index", "Address", "Raw"}, rows)
}

func getNftContent(_ *cobra.Command, args []string) {
	e := setup()
	c := e.open()

	index := parseUint("index", args[0])
	individual, err := content.EncodeRaw(args[1])
	Check(err)

	ctx, cancel := contextForMainProcess()
	defer cancel()

	uri, err := c.GetNftContent(ctx, index, individual)
	Check(err)
	fmt.Println(uri)
}
