// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package collection_test

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"math/big"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gitlab.com/accumulatenetwork/nft-collection/internal/logging"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/api"
	. "gitlab.com/accumulatenetwork/nft-collection/pkg/collection"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/errors"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/types/address"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/types/cell"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/types/content"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/types/stack"
	mocks "gitlab.com/accumulatenetwork/nft-collection/test/mocks/pkg/api"
)

var (
	clientOwner = address.New(0, sha256.Sum256([]byte("owner")))
	collAddr    = address.New(0, sha256.Sum256([]byte("collection")))
)

func itemAddr(index uint64) *address.Address {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], index)
	return address.New(0, sha256.Sum256(b[:]))
}

func newConfig(t *testing.T) (*Config, *cell.Cell) {
	item, err := cell.BeginCell().StoreUint(0xdeadbeef, 32).EndCell()
	require.NoError(t, err)
	code, err := cell.BeginCell().StoreUint(0xc0de, 16).EndCell()
	require.NoError(t, err)
	return &Config{
		Owner:                clientOwner,
		CollectionContentURL: "https://psalmfill.github.io/tiwiflix-ton-nft/collection.json",
		CommonContentURL:     "https://psalmfill.github.io/tiwiflix-ton-nft/",
		ItemCode:             item,
		Royalty:              Royalty{Factor: 10, Base: 100, Address: clientOwner},
		MintPrice:            1000000000,
	}, code
}

func echoSubmission(_ context.Context, env *api.Envelope) (*api.Submission, error) {
	return &api.Submission{To: env.To, BodyHash: env.Body.Hash()}, nil
}

func TestSendDeploy(t *testing.T) {
	cfg, code := newConfig(t)

	var sent *api.Envelope
	s := mocks.NewSubmitter(t)
	s.EXPECT().Submit(mock.Anything, mock.Anything).Run(func(_ context.Context, env *api.Envelope) {
		sent = env
	}).RunAndReturn(echoSubmission).Once()

	c, err := CreateFromConfig(cfg, code, 0, Submitter(s), Logger(logging.NewTestZeroLogger(t, "plain")))
	require.NoError(t, err)
	require.Equal(t, "EQDzwatgoVL9NKO3ExeZzd-ISEKOg5s1YAGN17slhzpuz5in", c.Address.String())

	sub, err := c.SendDeploy(context.Background(), big.NewInt(50000000))
	require.NoError(t, err)
	require.True(t, c.Address.Equal(sub.To))

	require.NotNil(t, sent)
	require.False(t, sent.Bounce)
	require.Zero(t, sent.Body.BitsSize())
	require.Zero(t, sent.Body.RefsCount())
	init, err := c.Init.ToCell()
	require.NoError(t, err)
	require.True(t, init.Equal(sent.StateInit))
}

func TestSendMint(t *testing.T) {
	var sent *api.Envelope
	s := mocks.NewSubmitter(t)
	s.EXPECT().Submit(mock.Anything, mock.Anything).Run(func(_ context.Context, env *api.Envelope) {
		sent = env
	}).RunAndReturn(echoSubmission).Once()

	c, err := CreateFromAddress(collAddr, Submitter(s))
	require.NoError(t, err)

	msg := &Mint{
		QueryID:  1,
		Index:    0,
		Amount:   big.NewInt(50000000),
		Content:  ItemContent{Owner: clientOwner, URI: "0.json"},
		Receiver: clientOwner,
	}
	sub, err := c.SendMint(context.Background(), big.NewInt(1100000000), msg)
	require.NoError(t, err)

	body, err := EncodeMessage(msg)
	require.NoError(t, err)
	require.Equal(t, body.Hash(), sub.BodyHash)
	require.True(t, sent.Bounce)
	require.Nil(t, sent.StateInit)
	require.Equal(t, "1100000000", sent.Value.String())

	decoded, err := DecodeMessage(sent.Body)
	require.NoError(t, err)
	require.IsType(t, (*Mint)(nil), decoded)
}

func TestSendDeployFromAddress(t *testing.T) {
	// Without a state init the deploy message is an ordinary bounceable
	// transfer.
	s := mocks.NewSubmitter(t)
	s.EXPECT().Submit(mock.Anything, mock.MatchedBy(func(env *api.Envelope) bool {
		return env.StateInit == nil && env.Bounce
	})).RunAndReturn(echoSubmission).Once()

	c, err := CreateFromAddress(collAddr, Submitter(s))
	require.NoError(t, err)
	_, err = c.SendDeploy(context.Background(), big.NewInt(1))
	require.NoError(t, err)
}

func TestSendErrors(t *testing.T) {
	t.Run("No submitter", func(t *testing.T) {
		c, err := CreateFromAddress(collAddr)
		require.NoError(t, err)
		_, err = c.SendChangeMintPrice(context.Background(), big.NewInt(1), &ChangeMintPrice{MintPrice: 5})
		require.ErrorIs(t, err, errors.BadRequest)
	})

	t.Run("Invalid message", func(t *testing.T) {
		// The submitter must not be called
		c, err := CreateFromAddress(collAddr, Submitter(mocks.NewSubmitter(t)))
		require.NoError(t, err)
		_, err = c.SendChangeOwner(context.Background(), big.NewInt(1), &ChangeOwner{QueryID: 1})
		require.ErrorIs(t, err, errors.ValidationError)
	})

	t.Run("Negative value", func(t *testing.T) {
		c, err := CreateFromAddress(collAddr, Submitter(mocks.NewSubmitter(t)))
		require.NoError(t, err)
		_, err = c.SendGetRoyaltyParams(context.Background(), big.NewInt(-1), &GetRoyaltyParams{QueryID: 1})
		require.ErrorIs(t, err, errors.ValidationError)
	})

	t.Run("Rejected", func(t *testing.T) {
		s := mocks.NewSubmitter(t)
		s.EXPECT().Submit(mock.Anything, mock.Anything).Return(nil, errors.Rejected.With("insufficient balance"))
		c, err := CreateFromAddress(collAddr, Submitter(s))
		require.NoError(t, err)
		_, err = c.SendChangeMintPrice(context.Background(), big.NewInt(1), &ChangeMintPrice{MintPrice: 5})
		require.ErrorIs(t, err, errors.Rejected)
	})

	t.Run("Missing address", func(t *testing.T) {
		_, err := CreateFromAddress(nil)
		require.ErrorIs(t, err, errors.ValidationError)
	})
}

func TestGetCollectionData(t *testing.T) {
	uri := "https://psalmfill.github.io/tiwiflix-ton-nft/collection.json"
	c0, err := content.EncodeOffChain(uri)
	require.NoError(t, err)

	q := mocks.NewQuerier(t)
	q.EXPECT().RunGetMethod(mock.Anything, collAddr, "get_collection_data", []stack.Value(nil)).
		Return([]stack.Value{stack.NewInt(3), stack.NewCell(c0), stack.Addr{Address: clientOwner}}, nil)
	q.EXPECT().RunGetMethod(mock.Anything, collAddr, "get_minting_price", []stack.Value(nil)).
		Return([]stack.Value{stack.NewInt(1000000000)}, nil)
	q.EXPECT().RunGetMethod(mock.Anything, collAddr, "royalty_params", []stack.Value(nil)).
		Return([]stack.Value{stack.NewInt(10), stack.NewInt(100), stack.Addr{Address: clientOwner}}, nil)

	c, err := CreateFromAddress(collAddr, Querier(q))
	require.NoError(t, err)

	data, err := c.GetCollectionData(context.Background())
	require.NoError(t, err)
	require.Equal(t, uint64(3), data.NextItemIndex)
	require.Equal(t, uri, data.CollectionContentURL)
	require.True(t, clientOwner.Equal(data.Owner))

	price, err := c.GetMintingPrice(context.Background())
	require.NoError(t, err)
	require.Equal(t, uint64(1000000000), price)

	royalty, err := c.GetRoyaltyParams(context.Background())
	require.NoError(t, err)
	require.Equal(t, uint16(10), royalty.Factor)
	require.Equal(t, uint16(100), royalty.Base)
}

func TestGetNftAddressByIndex(t *testing.T) {
	q := mocks.NewQuerier(t)
	q.EXPECT().RunGetMethod(mock.Anything, collAddr, "get_nft_address_by_index", []stack.Value{stack.NewUint(5)}).
		Return([]stack.Value{stack.Addr{Address: itemAddr(5)}}, nil).
		Once()

	c, err := CreateFromAddress(collAddr, Querier(q))
	require.NoError(t, err)

	a, err := c.GetNftAddressByIndex(context.Background(), 5)
	require.NoError(t, err)
	require.True(t, itemAddr(5).Equal(a))

	// Served from the cache; a second query would fail the mock
	a.Hash[0] ^= 0xFF
	b, err := c.GetNftAddressByIndex(context.Background(), 5)
	require.NoError(t, err)
	require.True(t, itemAddr(5).Equal(b))

	t.Run("Cache disabled", func(t *testing.T) {
		q := mocks.NewQuerier(t)
		q.EXPECT().RunGetMethod(mock.Anything, collAddr, "get_nft_address_by_index", mock.Anything).
			Return([]stack.Value{stack.Addr{Address: itemAddr(5)}}, nil).
			Times(2)

		c, err := CreateFromAddress(collAddr, Querier(q), CacheSize(0))
		require.NoError(t, err)
		for i := 0; i < 2; i++ {
			_, err = c.GetNftAddressByIndex(context.Background(), 5)
			require.NoError(t, err)
		}
	})
}

func TestGetNftAddresses(t *testing.T) {
	q := mocks.NewQuerier(t)
	q.EXPECT().RunGetMethod(mock.Anything, collAddr, "get_nft_address_by_index", mock.Anything).
		RunAndReturn(func(_ context.Context, _ *address.Address, _ string, args []stack.Value) ([]stack.Value, error) {
			index, err := stack.NewReader(args).ReadUint64()
			if err != nil {
				return nil, err
			}
			if index == 13 {
				return nil, errors.NotFound.With("unlucky")
			}
			return []stack.Value{stack.Addr{Address: itemAddr(index)}}, nil
		})

	c, err := CreateFromAddress(collAddr, Querier(q))
	require.NoError(t, err)

	indices := []uint64{0, 1, 2, 3, 4, 5, 6, 7}
	addrs, err := c.GetNftAddresses(context.Background(), indices, 3)
	require.NoError(t, err)
	require.Len(t, addrs, len(indices))
	for i, index := range indices {
		require.Truef(t, itemAddr(index).Equal(addrs[i]), "item %d", index)
	}

	_, err = c.GetNftAddresses(context.Background(), []uint64{12, 13, 14}, 0)
	require.ErrorIs(t, err, errors.NotFound)
}

func TestGetNftContent(t *testing.T) {
	item, err := content.EncodeRaw("7.json")
	require.NoError(t, err)
	full, err := cell.BeginCell().
		StoreUint(content.OffChainPrefix, 8).
		StoreBytes([]byte("https://psalmfill.github.io/tiwiflix-ton-nft/")).
		StoreRef(item).
		EndCell()
	require.NoError(t, err)

	q := mocks.NewQuerier(t)
	q.EXPECT().RunGetMethod(mock.Anything, collAddr, "get_nft_content", []stack.Value{stack.NewUint(7), stack.NewCell(item)}).
		Return([]stack.Value{stack.NewCell(full)}, nil)

	c, err := CreateFromAddress(collAddr, Querier(q))
	require.NoError(t, err)
	uri, err := c.GetNftContent(context.Background(), 7, item)
	require.NoError(t, err)
	require.Equal(t, "https://psalmfill.github.io/tiwiflix-ton-nft/7.json", uri)

	_, err = c.GetNftContent(context.Background(), 7, nil)
	require.ErrorIs(t, err, errors.ValidationError)
}

func TestNoQuerier(t *testing.T) {
	c, err := CreateFromAddress(collAddr)
	require.NoError(t, err)
	_, err = c.GetCollectionData(context.Background())
	require.ErrorIs(t, err, errors.BadRequest)
	require.ErrorIs(t, c.WaitForDeploy(context.Background()), errors.BadRequest)
}

func TestWaitForDeploy(t *testing.T) {
	w := mocks.NewDeployWaiter(t)
	w.EXPECT().WaitForDeploy(mock.Anything, collAddr).Return(nil).Once()

	c, err := CreateFromAddress(collAddr, DeployWaiter(w))
	require.NoError(t, err)
	require.NoError(t, c.WaitForDeploy(context.Background()))
}
