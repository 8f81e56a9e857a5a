// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"fmt"
	"io"
	"math/big"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	. "gitlab.com/accumulatenetwork/nft-collection/internal/util/cmd"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/collection"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/errors"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/types/address"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/types/coins"
)

func printTable(w io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.AppendBulk(rows)
	table.Render()
}

func formatNano(v *big.Int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%s TON (%s nano)", coins.FormatTON(v), humanize.BigComma(v))
}

func formatAddr(a *address.Address) string {
	if a == nil {
		return "none"
	}
	return a.String()
}

func formatTime(unix int64) string {
	t := time.Unix(unix, 0)
	return fmt.Sprintf("%s (%s)", t.UTC().Format(time.RFC3339), humanize.Time(t))
}

func parseTON(name, s string) *big.Int {
	v, err := coins.ParseTON(s)
	Checkf(err, "--%s", name)
	return v
}

func parseUint(name, s string) uint64 {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		Check(errors.BadRequest.WithFormat("invalid %s %q: %w", name, s, err))
	}
	return v
}

func parseAddr(name, s string) *address.Address {
	a, err := address.Parse(s)
	Checkf(err, "invalid %s", name)
	return a
}

// queryID returns the flag value or, if it is zero, the current time in
// milliseconds.
func queryID(v uint64) uint64 {
	if v != 0 {
		return v
	}
	return uint64(time.Now().UnixMilli())
}

// describeMessage returns a field/value row for each field of a message.
func describeMessage(msg collection.Message) [][]string {
	op := msg.Opcode().String()
	if _, ok := msg.(*collection.Deploy); ok {
		op = "deploy"
	}
	rows := [][]string{{"Operation", op}}
	add := func(k, v string) { rows = append(rows, []string{k, v}) }
	royalty := func(r *collection.Royalty) {
		add("Royalty", fmt.Sprintf("%d/%d", r.Factor, r.Base))
		add("Royalty address", formatAddr(r.Address))
	}

	switch msg := msg.(type) {
	case *collection.Mint:
		add("Query ID", fmt.Sprint(msg.QueryID))
		add("Index", fmt.Sprint(msg.Index))
		add("Amount", formatNano(msg.Amount))
		add("Item owner", formatAddr(msg.Content.Owner))
		add("Item URI", msg.Content.URI)
		add("Receiver", formatAddr(msg.Receiver))
	case *collection.BatchMint:
		add("Query ID", fmt.Sprint(msg.QueryID))
		items, err := collection.DecodeDeployList(msg.DeployList)
		if err != nil {
			add("Items", err.Error())
			break
		}
		for _, item := range items {
			add(fmt.Sprintf("Item %d", item.Index), fmt.Sprintf("%s %s, %s", formatAddr(item.Content.Owner), item.Content.URI, formatNano(item.Amount)))
		}
	case *collection.ChangeOwner:
		add("Query ID", fmt.Sprint(msg.QueryID))
		add("New owner", formatAddr(msg.NewOwner))
	case *collection.ChangeContent:
		add("Query ID", fmt.Sprint(msg.QueryID))
		add("Collection content", msg.CollectionContentURL)
		add("Common content", msg.CommonContentURL)
		royalty(&msg.Royalty)
	case *collection.ChangeMintPrice:
		add("Query ID", fmt.Sprint(msg.QueryID))
		add("Mint price", formatNano(coins.FromUint64(msg.MintPrice)))
	case *collection.GetRoyaltyParams:
		add("Query ID", fmt.Sprint(msg.QueryID))
	case *collection.ReportRoyaltyParams:
		add("Query ID", fmt.Sprint(msg.QueryID))
		royalty(&msg.Royalty)
	}
	return rows
}
