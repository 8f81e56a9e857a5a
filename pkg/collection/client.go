// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package collection

import (
	"context"
	"math/big"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"
	"gitlab.com/accumulatenetwork/nft-collection/internal/logging"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/api"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/errors"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/types/address"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/types/cell"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/types/coins"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/types/stack"
	"golang.org/x/sync/errgroup"
)

// DefaultCacheSize is the default number of item addresses a [Collection]
// remembers.
const DefaultCacheSize = 1024

// Collection is a handle to a deployed or not yet deployed collection
// contract.
type Collection struct {
	Address *address.Address

	// Init is set if the collection was created from a config and is sent
	// with the deploy message.
	Init *StateInit

	logger logging.OptionalLogger
	submit api.Submitter
	query  api.Querier
	waiter api.DeployWaiter
	items  *lru.Cache[uint64, *address.Address]
}

type Option func(c *Collection) error

func Logger(logger zerolog.Logger, keyVals ...interface{}) Option {
	return func(c *Collection) error {
		c.logger.Set(logger, keyVals...)
		return nil
	}
}

func Submitter(s api.Submitter) Option {
	return func(c *Collection) error {
		c.submit = s
		return nil
	}
}

func Querier(q api.Querier) Option {
	return func(c *Collection) error {
		c.query = q
		return nil
	}
}

func DeployWaiter(w api.DeployWaiter) Option {
	return func(c *Collection) error {
		c.waiter = w
		return nil
	}
}

// CacheSize sets the number of item addresses to remember. Zero disables the
// cache.
func CacheSize(n int) Option {
	return func(c *Collection) error {
		if n == 0 {
			c.items = nil
			return nil
		}
		var err error
		c.items, err = lru.New[uint64, *address.Address](n)
		return errors.BadRequest.Wrap(err)
	}
}

// CreateFromAddress returns a handle to the collection at addr.
func CreateFromAddress(addr *address.Address, opts ...Option) (*Collection, error) {
	if addr == nil {
		return nil, errors.ValidationError.With("address is missing")
	}
	return newCollection(addr, nil, opts)
}

// CreateFromConfig returns a handle to the collection that would be deployed
// with the given code and initial data.
func CreateFromConfig(cfg *Config, code *cell.Cell, workchain int8, opts ...Option) (*Collection, error) {
	if code == nil {
		return nil, errors.ValidationError.With("contract code is missing")
	}
	data, err := EncodeConfig(cfg)
	if err != nil {
		return nil, err
	}
	init := &StateInit{Code: code, Data: data}
	addr, err := ContractAddress(workchain, init)
	if err != nil {
		return nil, err
	}
	return newCollection(addr, init, opts)
}

func newCollection(addr *address.Address, init *StateInit, opts []Option) (*Collection, error) {
	c := &Collection{Address: addr, Init: init}
	err := CacheSize(DefaultCacheSize)(c)
	if err != nil {
		return nil, err
	}
	for _, opt := range opts {
		err = opt(c)
		if err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Collection) send(ctx context.Context, value *big.Int, msg Message) (*api.Submission, error) {
	if c.submit == nil {
		return nil, errors.BadRequest.With("no submitter configured")
	}
	err := coins.Validate(value)
	if err != nil {
		return nil, errors.ValidationError.WithCauseAndFormat(err, "value")
	}

	body, err := EncodeMessage(msg)
	if err != nil {
		return nil, err
	}

	env := &api.Envelope{To: c.Address, Value: value, Body: body, Bounce: true}
	if _, ok := msg.(*Deploy); ok && c.Init != nil {
		env.StateInit, err = c.Init.ToCell()
		if err != nil {
			return nil, err
		}
		env.Bounce = false
	}

	c.logger.Debug().
		Str("to", c.Address.String()).
		Stringer("op", msg.Opcode()).
		Str("value", coins.FormatTON(value)).
		Msg("Submitting message")

	sub, err := c.submit.Submit(ctx, env)
	if err != nil {
		return nil, err
	}

	c.logger.Info().
		Str("to", c.Address.String()).
		Hex("body-hash", sub.BodyHash[:]).
		Msg("Submitted message")
	return sub, nil
}

// SendDeploy sends the empty deploy message, along with the state init if
// the collection was created from a config.
func (c *Collection) SendDeploy(ctx context.Context, value *big.Int) (*api.Submission, error) {
	return c.send(ctx, value, new(Deploy))
}

// SendMint mints an item. value must cover the mint price and the amount
// forwarded to the item.
func (c *Collection) SendMint(ctx context.Context, value *big.Int, msg *Mint) (*api.Submission, error) {
	return c.send(ctx, value, msg)
}

func (c *Collection) SendBatchMint(ctx context.Context, value *big.Int, msg *BatchMint) (*api.Submission, error) {
	return c.send(ctx, value, msg)
}

func (c *Collection) SendChangeOwner(ctx context.Context, value *big.Int, msg *ChangeOwner) (*api.Submission, error) {
	return c.send(ctx, value, msg)
}

func (c *Collection) SendChangeContent(ctx context.Context, value *big.Int, msg *ChangeContent) (*api.Submission, error) {
	return c.send(ctx, value, msg)
}

func (c *Collection) SendChangeMintPrice(ctx context.Context, value *big.Int, msg *ChangeMintPrice) (*api.Submission, error) {
	return c.send(ctx, value, msg)
}

func (c *Collection) SendGetRoyaltyParams(ctx context.Context, value *big.Int, msg *GetRoyaltyParams) (*api.Submission, error) {
	return c.send(ctx, value, msg)
}

func (c *Collection) run(ctx context.Context, q Query) ([]stack.Value, error) {
	if c.query == nil {
		return nil, errors.BadRequest.With("no querier configured")
	}
	c.logger.Debug().Str("method", q.Method()).Str("address", c.Address.String()).Msg("Running get method")
	return c.query.RunGetMethod(ctx, c.Address, q.Method(), q.Args())
}

func (c *Collection) GetCollectionData(ctx context.Context) (*CollectionData, error) {
	values, err := c.run(ctx, GetCollectionData{})
	if err != nil {
		return nil, err
	}
	return DecodeCollectionData(values)
}

func (c *Collection) GetMintingPrice(ctx context.Context) (uint64, error) {
	values, err := c.run(ctx, GetMintingPrice{})
	if err != nil {
		return 0, err
	}
	return DecodeMintingPrice(values)
}

func (c *Collection) GetRoyaltyParams(ctx context.Context) (*Royalty, error) {
	values, err := c.run(ctx, RoyaltyParams{})
	if err != nil {
		return nil, err
	}
	return DecodeRoyaltyParams(values)
}

// GetNftAddressByIndex returns the address of an item. The mapping from index
// to address is fixed for a collection, so results are cached.
func (c *Collection) GetNftAddressByIndex(ctx context.Context, index uint64) (*address.Address, error) {
	if c.items != nil {
		if addr, ok := c.items.Get(index); ok {
			return addr.Copy(), nil
		}
	}

	values, err := c.run(ctx, GetNftAddressByIndex{Index: index})
	if err != nil {
		return nil, err
	}
	addr, err := DecodeNftAddress(values)
	if err != nil {
		return nil, err
	}

	if c.items != nil {
		c.items.Add(index, addr.Copy())
	}
	return addr, nil
}

// GetNftAddresses resolves the addresses of several items concurrently. At
// most limit queries run at once.
func (c *Collection) GetNftAddresses(ctx context.Context, indices []uint64, limit int) ([]*address.Address, error) {
	addrs := make([]*address.Address, len(indices))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, index := range indices {
		i, index := i, index
		g.Go(func() error {
			addr, err := c.GetNftAddressByIndex(ctx, index)
			if err != nil {
				return errors.UnknownError.WithCauseAndFormat(err, "item %d", index)
			}
			addrs[i] = addr
			return nil
		})
	}
	err := g.Wait()
	if err != nil {
		return nil, err
	}
	return addrs, nil
}

// GetNftContent returns the full content URI of an item given its individual
// content.
func (c *Collection) GetNftContent(ctx context.Context, index uint64, individual *cell.Cell) (string, error) {
	if individual == nil {
		return "", errors.ValidationError.With("item content is missing")
	}
	values, err := c.run(ctx, GetNftContent{Index: index, Content: individual})
	if err != nil {
		return "", err
	}
	return DecodeNftContent(values)
}

// WaitForDeploy waits until the collection contract is active.
func (c *Collection) WaitForDeploy(ctx context.Context) error {
	if c.waiter == nil {
		return errors.BadRequest.With("no deploy waiter configured")
	}
	c.logger.Info().Str("address", c.Address.String()).Msg("Waiting for deployment")
	return c.waiter.WaitForDeploy(ctx, c.Address)
}
