// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package api defines the services through which contract wrappers reach the
// network: submitting messages, running get methods, and waiting for
// deployment.
package api

import (
	"context"
	"math/big"

	"gitlab.com/accumulatenetwork/nft-collection/pkg/types/address"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/types/cell"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/types/stack"
)

//go:generate go run github.com/vektra/mockery/v2
//go:generate go run github.com/rinchsan/gosimports/cmd/gosimports -w .

type Submitter interface {
	// Submit sends an internal message. Implementations report rejection
	// by the network or the wallet as an error; they do not retry.
	Submit(ctx context.Context, envelope *Envelope) (*Submission, error)
}

type Querier interface {
	// RunGetMethod runs a get method of the contract at addr.
	RunGetMethod(ctx context.Context, addr *address.Address, method string, args []stack.Value) ([]stack.Value, error)
}

type DeployWaiter interface {
	// WaitForDeploy blocks until the contract at addr is active or the
	// context is canceled.
	WaitForDeploy(ctx context.Context, addr *address.Address) error
}

type TransactionFinder interface {
	// FindTransaction searches the recent transactions of addr for one
	// whose inbound message body has the given hash.
	FindTransaction(ctx context.Context, addr *address.Address, bodyHash [32]byte) (*Transaction, error)
}

// Envelope is an internal message to be sent by a wallet.
type Envelope struct {
	To    *address.Address
	Value *big.Int
	Body  *cell.Cell

	// StateInit, if present, deploys the destination contract.
	StateInit *cell.Cell

	Bounce bool
}

// Submission is the result of submitting an envelope.
type Submission struct {
	To       *address.Address
	BodyHash [32]byte

	// Link is set by submitters that hand the message to an external wallet.
	Link string
}

// Transaction is a transaction of an account, as seen by a
// [TransactionFinder].
type Transaction struct {
	LogicalTime uint64
	Hash        []byte
	Time        int64
	Source      *address.Address
	Value       *big.Int
	Body        *cell.Cell
}
