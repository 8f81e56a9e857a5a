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
	"gitlab.com/accumulatenetwork/nft-collection/pkg/errors"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/types/cell"
)

var cmdTx = &cobra.Command{
	Use:   "tx",
	Short: "Inspect transactions of the collection",
	Run:   printUsageAndExit1,
}

var cmdTxFind = &cobra.Command{
	Use:   "find <body BoC or hash>",
	Short: "Find the transaction that processed a message body",
	Long:  "Find the transaction that processed a message body. The body may be given as a base64 BoC or as the hex hash of the body cell. Only recent transactions are searched.",
	Args:  cobra.ExactArgs(1),
	Run:   findTx,
}

var flagTx = struct {
	Limit int
}{}

func init() {
	cmdMain.AddCommand(cmdTx)
	cmdTx.AddCommand(cmdTxFind)
	cmdTxFind.Flags().IntVar(&flagTx.Limit, "limit", 20, "Number of recent transactions to search")
}

func parseBodyHash(s string) ([32]byte, error) {
	var hash [32]byte
	if b, err := hex.DecodeString(s); err == nil && len(b) == len(hash) {
		copy(hash[:], b)
		return hash, nil
	}
	body, err := cell.FromBase64(s)
	if err != nil {
		return hash, errors.BadRequest.WithFormat("%q is neither a hash nor a BoC", s)
	}
	return body.Hash(), nil
}

func findTx(_ *cobra.Command, args []string) {
	e := setup()
	addr, err := e.Config.CollectionAddress()
	Check(err)
	hash, err := parseBodyHash(args[0])
	Check(err)

	ctx, cancel := contextForMainProcess()
	defer cancel()

	e.Client.TransactionLimit = flagTx.Limit
	txn, err := e.Client.FindTransaction(ctx, addr, hash)
	Check(err)

	rows := [][]string{
		{"Logical time", fmt.Sprint(txn.LogicalTime)},
		{"Hash", hex.EncodeToString(txn.Hash)},
		{"Time", formatTime(txn.Time)},
		{"Source", formatAddr(txn.Source)},
		{"Value", formatNano(txn.Value)},
	}
	if msg, err := collection.DecodeMessage(txn.Body); err == nil {
		rows = append(rows, describeMessage(msg)...)
	} else {
		Warnf("Cannot decode body: %v", err)
	}
	printTable(os.Stdout, []string{"Field", "Value"}, rows)
}
