// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package toncenter

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"strconv"
	"time"

	"gitlab.com/accumulatenetwork/nft-collection/pkg/api"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/errors"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/types/address"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/types/cell"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/types/stack"
)

type AccountState string

const (
	StateActive        AccountState = "active"
	StateUninitialized AccountState = "uninitialized"
	StateFrozen        AccountState = "frozen"
)

type addressParams struct {
	Address string `json:"address"`
}

type runGetMethodParams struct {
	Address string      `json:"address"`
	Method  string      `json:"method"`
	Stack   [][2]string `json:"stack"`
}

type runResult struct {
	GasUsed  int64             `json:"gas_used"`
	Stack    []json.RawMessage `json:"stack"`
	ExitCode int               `json:"exit_code"`
}

// RunGetMethod runs a get method. A nonzero exit code is reported as
// [errors.Rejected].
func (c *Client) RunGetMethod(ctx context.Context, addr *address.Address, method string, args []stack.Value) ([]stack.Value, error) {
	if addr == nil {
		return nil, errors.BadRequest.With("missing address")
	}
	params := &runGetMethodParams{Address: addr.String(), Method: method}
	var err error
	params.Stack, err = encodeStack(args)
	if err != nil {
		return nil, err
	}

	var res runResult
	err = c.request(ctx, "runGetMethod", params, &res)
	if err != nil {
		return nil, err
	}
	if res.ExitCode != 0 && res.ExitCode != 1 {
		return nil, errors.Rejected.WithFormat("%s on %v exited with code %d", method, addr, res.ExitCode)
	}
	return decodeStack(res.Stack)
}

type sendBocParams struct {
	Boc string `json:"boc"`
}

// SendBoc sends a serialized external message.
func (c *Client) SendBoc(ctx context.Context, boc []byte) error {
	if len(boc) == 0 {
		return errors.BadRequest.With("empty message")
	}
	var res json.RawMessage
	return c.request(ctx, "sendBoc", &sendBocParams{Boc: base64.StdEncoding.EncodeToString(boc)}, &res)
}

func (c *Client) GetAddressState(ctx context.Context, addr *address.Address) (AccountState, error) {
	if addr == nil {
		return "", errors.BadRequest.With("missing address")
	}
	var state AccountState
	err := c.request(ctx, "getAddressState", &addressParams{Address: addr.String()}, &state)
	return state, err
}

// GetAddressBalance returns the balance of an account in nanotons.
func (c *Client) GetAddressBalance(ctx context.Context, addr *address.Address) (*big.Int, error) {
	if addr == nil {
		return nil, errors.BadRequest.With("missing address")
	}
	var s string
	err := c.request(ctx, "getAddressBalance", &addressParams{Address: addr.String()}, &s)
	if err != nil {
		return nil, err
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, errors.BadRequest.WithFormat("invalid balance %q", s)
	}
	return v, nil
}

// WaitForDeploy polls the state of the account until it is active.
func (c *Client) WaitForDeploy(ctx context.Context, addr *address.Address) error {
	interval := c.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	tick := time.NewTicker(interval)
	defer tick.Stop()

	for {
		state, err := c.GetAddressState(ctx, addr)
		switch {
		case err == nil && state == StateActive:
			c.logger.Info().Stringer("address", addr).Msg("Contract is active")
			return nil
		case err == nil:
			c.logger.Debug().Stringer("address", addr).Str("state", string(state)).Msg("Waiting for contract")
		case errors.Is(err, errors.Timeout):
			return err
		default:
			c.logger.Warn().Err(err).Stringer("address", addr).Msg("Failed to query contract state")
		}

		select {
		case <-ctx.Done():
			return errors.Timeout.WithCauseAndFormat(ctx.Err(), "waiting for %v", addr)
		case <-tick.C:
		}
	}
}

type getTransactionsParams struct {
	Address  string `json:"address"`
	Limit    int    `json:"limit"`
	LT       string `json:"lt,omitempty"`
	Hash     string `json:"hash,omitempty"`
	Archival bool   `json:"archival,omitempty"`
}

type rawTransaction struct {
	Utime         int64 `json:"utime"`
	TransactionID struct {
		LT   string `json:"lt"`
		Hash string `json:"hash"`
	} `json:"transaction_id"`
	InMsg *rawMessage `json:"in_msg"`
}

type rawMessage struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Value       string `json:"value"`
	MsgData     struct {
		Type string `json:"@type"`
		Body string `json:"body"`
	} `json:"msg_data"`
}

// GetTransactions returns the most recent transactions of an account, newest
// first.
func (c *Client) GetTransactions(ctx context.Context, addr *address.Address, limit int) ([]*api.Transaction, error) {
	if addr == nil {
		return nil, errors.BadRequest.With("missing address")
	}
	if limit <= 0 {
		return nil, errors.BadRequest.WithFormat("invalid limit %d", limit)
	}

	var raw []*rawTransaction
	err := c.request(ctx, "getTransactions", &getTransactionsParams{Address: addr.String(), Limit: limit}, &raw)
	if err != nil {
		return nil, err
	}

	txns := make([]*api.Transaction, 0, len(raw))
	for i, r := range raw {
		txn, err := r.convert()
		if err != nil {
			return nil, errors.UnknownError.WithCauseAndFormat(err, "transaction %d", i)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

func (r *rawTransaction) convert() (*api.Transaction, error) {
	txn := new(api.Transaction)
	txn.Time = r.Utime

	var err error
	txn.LogicalTime, err = strconv.ParseUint(r.TransactionID.LT, 10, 64)
	if err != nil {
		return nil, errors.BadRequest.WithFormat("logical time: %w", err)
	}
	txn.Hash, err = base64.StdEncoding.DecodeString(r.TransactionID.Hash)
	if err != nil {
		return nil, errors.BadRequest.WithFormat("hash: %w", err)
	}

	// External messages have no source and no value
	if r.InMsg == nil {
		return txn, nil
	}
	if r.InMsg.Source != "" {
		txn.Source, err = address.Parse(r.InMsg.Source)
		if err != nil {
			return nil, errors.UnknownError.WithCauseAndFormat(err, "source")
		}
	}
	if r.InMsg.Value != "" {
		v, ok := new(big.Int).SetString(r.InMsg.Value, 10)
		if !ok {
			return nil, errors.BadRequest.WithFormat("invalid value %q", r.InMsg.Value)
		}
		txn.Value = v
	}
	if r.InMsg.MsgData.Type == "msg.dataRaw" && r.InMsg.MsgData.Body != "" {
		txn.Body, err = cell.FromBase64(r.InMsg.MsgData.Body)
		if err != nil {
			return nil, errors.UnknownError.WithCauseAndFormat(err, "body")
		}
	}
	return txn, nil
}

// FindTransaction searches the recent transactions of an account for one
// whose inbound message body has the given hash. It does not wait.
func (c *Client) FindTransaction(ctx context.Context, addr *address.Address, bodyHash [32]byte) (*api.Transaction, error) {
	txns, err := c.GetTransactions(ctx, addr, c.TransactionLimit)
	if err != nil {
		return nil, err
	}
	for _, txn := range txns {
		if txn.Body != nil && txn.Body.Hash() == bodyHash {
			return txn, nil
		}
	}
	return nil, errors.NotFound.WithFormat("no transaction of %v has body %x", addr, bodyHash)
}
