// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package collection

import (
	"crypto/sha256"
	"encoding/hex"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/errors"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/types/address"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/types/cell"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/types/content"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/types/stack"
)

var (
	ownerAddr    = address.New(0, sha256.Sum256([]byte("owner")))
	receiverAddr = address.New(0, sha256.Sum256([]byte("receiver")))
)

func hashOf(c *cell.Cell) string {
	h := c.Hash()
	return hex.EncodeToString(h[:])
}

func mustCell(t testing.TB, b *cell.Builder) *cell.Cell {
	t.Helper()
	c, err := b.EndCell()
	require.NoError(t, err)
	return c
}

func testConfig(t testing.TB) *Config {
	return &Config{
		Owner:                ownerAddr,
		NextItemIndex:        0,
		CollectionContentURL: "https://psalmfill.github.io/tiwiflix-ton-nft/collection.json",
		CommonContentURL:     "https://psalmfill.github.io/tiwiflix-ton-nft/",
		ItemCode:             mustCell(t, cell.BeginCell().StoreUint(0xdeadbeef, 32)),
		Royalty:              Royalty{Factor: 10, Base: 100, Address: ownerAddr},
		MintPrice:            1000000000,
	}
}

func testCode(t testing.TB) *cell.Cell {
	return mustCell(t, cell.BeginCell().StoreUint(0xc0de, 16))
}

func TestEncodeConfig(t *testing.T) {
	cfg := testConfig(t)
	c, err := EncodeConfig(cfg)
	require.NoError(t, err)
	require.Equal(t, "dda1ca0043a0b9d86304d665c9a33d7b8f01128e76cbc22d472dabe29242bafe", hashOf(c))

	t.Run("Idempotent", func(t *testing.T) {
		d, err := EncodeConfig(testConfig(t))
		require.NoError(t, err)
		require.True(t, c.Equal(d))
		require.Equal(t, c.Data(), d.Data())
	})

	t.Run("Round trip", func(t *testing.T) {
		decoded, err := DecodeConfig(c)
		require.NoError(t, err)
		require.True(t, cfg.Owner.Equal(decoded.Owner))
		require.Equal(t, cfg.CollectionContentURL, decoded.CollectionContentURL)
		require.Equal(t, cfg.CommonContentURL, decoded.CommonContentURL)
		require.True(t, cfg.ItemCode.Equal(decoded.ItemCode))
		require.Equal(t, cfg.Royalty.Factor, decoded.Royalty.Factor)
		require.Equal(t, cfg.Royalty.Base, decoded.Royalty.Base)
		require.True(t, cfg.Royalty.Address.Equal(decoded.Royalty.Address))
		require.Equal(t, cfg.MintPrice, decoded.MintPrice)
	})

	t.Run("Collection data", func(t *testing.T) {
		// get_collection_data returns the index, the collection content, and
		// the owner
		collectionContent, err := content.EncodeOffChain(cfg.CollectionContentURL)
		require.NoError(t, err)
		data, err := DecodeCollectionData([]stack.Value{
			stack.NewUint(cfg.NextItemIndex),
			stack.NewCell(collectionContent),
			stack.Addr{Address: cfg.Owner},
		})
		require.NoError(t, err)
		require.Equal(t, cfg.NextItemIndex, data.NextItemIndex)
		require.Equal(t, cfg.CollectionContentURL, data.CollectionContentURL)
		require.True(t, cfg.Owner.Equal(data.Owner))
	})
}

func TestConfigValidation(t *testing.T) {
	cases := map[string]func(*Config){
		"No owner":           func(c *Config) { c.Owner = nil },
		"No item code":       func(c *Config) { c.ItemCode = nil },
		"No royalty address": func(c *Config) { c.Royalty.Address = nil },
		"Long common URL":    func(c *Config) { c.CommonContentURL = strings.Repeat("x", 128) },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := testConfig(t)
			mutate(cfg)
			_, err := EncodeConfig(cfg)
			require.ErrorIs(t, err, errors.ValidationError)
		})
	}
}

func TestRoyaltyValues(t *testing.T) {
	// Factor and base are opaque to the codec, any pair of u16 is encoded
	cases := map[string]Royalty{
		"Zero":              {Factor: 0, Base: 0, Address: ownerAddr},
		"Factor above base": {Factor: 200, Base: 100, Address: ownerAddr},
		"Max":               {Factor: 0xffff, Base: 0xffff, Address: receiverAddr},
	}
	for name, royalty := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.Royalty = royalty
			c, err := EncodeConfig(cfg)
			require.NoError(t, err)
			decoded, err := DecodeConfig(c)
			require.NoError(t, err)
			require.Equal(t, royalty, decoded.Royalty)

			msg := &ChangeContent{
				QueryID:              7,
				CollectionContentURL: cfg.CollectionContentURL,
				CommonContentURL:     cfg.CommonContentURL,
				Royalty:              royalty,
			}
			body, err := EncodeMessage(msg)
			require.NoError(t, err)
			got, err := DecodeMessage(body)
			require.NoError(t, err)
			require.Equal(t, msg, got)
		})
	}
}

func TestContractAddress(t *testing.T) {
	data, err := EncodeConfig(testConfig(t))
	require.NoError(t, err)
	init := &StateInit{Code: testCode(t), Data: data}

	c, err := init.ToCell()
	require.NoError(t, err)
	require.Equal(t, "f3c1ab60a152fd34a3b7131799cddf8848428e839b3560018dd7bb25873a6ecf", hashOf(c))

	addr, err := ContractAddress(0, init)
	require.NoError(t, err)
	require.Equal(t, "EQDzwatgoVL9NKO3ExeZzd-ISEKOg5s1YAGN17slhzpuz5in", addr.String())

	decoded, err := DecodeStateInit(c)
	require.NoError(t, err)
	require.True(t, init.Code.Equal(decoded.Code))
	require.True(t, init.Data.Equal(decoded.Data))

	_, err = (&StateInit{Code: init.Code}).ToCell()
	require.ErrorIs(t, err, errors.ValidationError)
}

func TestMintMessage(t *testing.T) {
	msg := &Mint{
		QueryID:  1234,
		Index:    0,
		Amount:   big.NewInt(50000000),
		Content:  ItemContent{Owner: ownerAddr, URI: "/nft.json"},
		Receiver: receiverAddr,
	}
	body, err := EncodeMessage(msg)
	require.NoError(t, err)
	require.Equal(t, "dbc7328545cb314687d2ef25a586f08d126c0f2c41d0e4d7d043bc3d66079d64", hashOf(body))
	require.Equal(t, "te6cckEBAwEAbQABcwAAAAEAAAAAAAAE0gAAAAAAAAAAQC+vCAgBA3XQ7W4KJ5O9mMEd2qky71A19DhW1oEBXYSsZzzyXB8BAUOACYIFLS/caw4rp0KUVbsC+JYCyiiBvQEG4+8Cy1khuLAwAgASL25mdC5qc29uLvdzjA==", body.ToBase64())

	// Read the fields back in wire order
	s := body.BeginParse()
	op, err := s.LoadUint(32)
	require.NoError(t, err)
	require.Equal(t, uint64(OpMint), op)
	queryID, err := s.LoadUint(64)
	require.NoError(t, err)
	require.Equal(t, uint64(1234), queryID)
	index, err := s.LoadUint(64)
	require.NoError(t, err)
	require.Zero(t, index)
	amount, err := s.LoadCoins()
	require.NoError(t, err)
	require.Equal(t, int64(50000000), amount.Int64())
	item, err := s.LoadRef()
	require.NoError(t, err)
	itemContent, err := DecodeItemContent(item)
	require.NoError(t, err)
	require.True(t, ownerAddr.Equal(itemContent.Owner))
	require.Equal(t, "/nft.json", itemContent.URI)
	receiver, err := s.LoadAddress()
	require.NoError(t, err)
	require.True(t, receiverAddr.Equal(receiver))
	require.True(t, s.IsEmpty())

	decoded, err := DecodeMessage(body)
	require.NoError(t, err)
	require.IsType(t, (*Mint)(nil), decoded)
	require.Equal(t, msg.Amount.String(), decoded.(*Mint).Amount.String())
	require.True(t, msg.Receiver.Equal(decoded.(*Mint).Receiver))
}

func TestMessageVectors(t *testing.T) {
	cfg := testConfig(t)
	deployList, err := BuildDeployList([]BatchItem{
		{Index: 1, Amount: big.NewInt(50000000), Content: ItemContent{Owner: receiverAddr, URI: "1.json"}},
		{Index: 0, Amount: big.NewInt(50000000), Content: ItemContent{Owner: ownerAddr, URI: "0.json"}},
	})
	require.NoError(t, err)
	require.Equal(t, "d856831f55e88eabff473b377a89cccdfffe61435e900b170bce68d6c6bc7a05", hashOf(deployList))

	cases := []struct {
		Name string
		Msg  Message
		Hash string
	}{
		{"Batch mint", &BatchMint{QueryID: 7, DeployList: deployList}, "5cb9684d5a2d894b5db1f1cd3232d51c6a9d48c77999e32823afbde12db07361"},
		{"Change owner", &ChangeOwner{QueryID: 3, NewOwner: receiverAddr}, "d0099a6c8902103405c7deeaeb51c01b5f885e8a59edffd544ac3793a617a83e"},
		{"Change content", &ChangeContent{
			QueryID:              5,
			CollectionContentURL: cfg.CollectionContentURL,
			CommonContentURL:     cfg.CommonContentURL,
			Royalty:              cfg.Royalty,
		}, "0bacd043bc3dbcadfa84f73bbf498bb5fcefa32cde501534aa89c0d6269c72da"},
		{"Change mint price", &ChangeMintPrice{QueryID: 9, MintPrice: 200000000}, "44054af5ab9f9d34dff996580fc1eba96327d0b712cfe0c5ce80d4f8a71acf54"},
		{"Get royalty params", &GetRoyaltyParams{QueryID: 1}, "04c090072a8ac12d00d08fc91d5f6540213e116630a86b26fe6a84e7e3c6e322"},
		{"Deploy", new(Deploy), "96a296d224f285c67bee93c30f8a309157f0daa35dc5b87e410b78630a09cfc7"},
	}
	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			body, err := EncodeMessage(c.Msg)
			require.NoError(t, err)
			require.Equal(t, c.Hash, hashOf(body))

			decoded, err := DecodeMessage(body)
			require.NoError(t, err)
			require.Equal(t, c.Msg.Opcode(), decoded.Opcode())

			again, err := EncodeMessage(decoded)
			require.NoError(t, err)
			require.True(t, body.Equal(again))
		})
	}
}

func TestDeployList(t *testing.T) {
	items := []BatchItem{
		{Index: 2, Amount: big.NewInt(3), Content: ItemContent{Owner: receiverAddr, URI: "2.json"}},
		{Index: 0, Amount: big.NewInt(1), Content: ItemContent{Owner: ownerAddr, URI: "0.json"}},
		{Index: 1 << 40, Amount: big.NewInt(2), Content: ItemContent{Owner: ownerAddr, URI: "big.json"}},
	}
	list, err := BuildDeployList(items)
	require.NoError(t, err)

	decoded, err := DecodeDeployList(list)
	require.NoError(t, err)
	require.Len(t, decoded, 3)
	require.Equal(t, []uint64{0, 2, 1 << 40}, []uint64{decoded[0].Index, decoded[1].Index, decoded[2].Index})
	require.Equal(t, "big.json", decoded[2].Content.URI)
	require.Equal(t, int64(3), decoded[1].Amount.Int64())
	require.True(t, receiverAddr.Equal(decoded[1].Content.Owner))

	t.Run("Duplicate", func(t *testing.T) {
		_, err := BuildDeployList(append(items, items[0]))
		require.ErrorIs(t, err, errors.ValidationError)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := BuildDeployList(nil)
		require.ErrorIs(t, err, errors.ValidationError)
	})
}

func TestMessageValidation(t *testing.T) {
	tooMuch := new(big.Int).Lsh(big.NewInt(1), 120)

	t.Run("Missing receiver", func(t *testing.T) {
		_, err := EncodeMessage(&Mint{Amount: big.NewInt(1), Content: ItemContent{Owner: ownerAddr}})
		require.ErrorIs(t, err, errors.ValidationError)
	})

	t.Run("Missing item owner", func(t *testing.T) {
		_, err := EncodeMessage(&Mint{Amount: big.NewInt(1), Receiver: receiverAddr})
		require.ErrorIs(t, err, errors.ValidationError)
	})

	t.Run("Amount too large", func(t *testing.T) {
		_, err := EncodeMessage(&Mint{Amount: tooMuch, Content: ItemContent{Owner: ownerAddr}, Receiver: receiverAddr})
		require.ErrorIs(t, err, errors.ValidationError)
		require.ErrorIs(t, err, errors.RangeError)
	})

	t.Run("Missing deploy list", func(t *testing.T) {
		_, err := EncodeMessage(&BatchMint{})
		require.ErrorIs(t, err, errors.ValidationError)
	})

	t.Run("Missing new owner", func(t *testing.T) {
		_, err := EncodeMessage(&ChangeOwner{})
		require.ErrorIs(t, err, errors.ValidationError)
	})

	t.Run("Nil", func(t *testing.T) {
		_, err := EncodeMessage(nil)
		require.ErrorIs(t, err, errors.ValidationError)
	})
}

func TestDecodeMessage(t *testing.T) {
	t.Run("Unknown opcode", func(t *testing.T) {
		body := mustCell(t, cell.BeginCell().StoreUint(0x12345678, 32).StoreUint(0, 64))
		_, err := DecodeMessage(body)
		require.ErrorIs(t, err, errors.InvalidTag)
	})

	t.Run("Truncated", func(t *testing.T) {
		body := mustCell(t, cell.BeginCell().StoreUint(uint64(OpChangeMintPrice), 32).StoreUint(0, 64).StoreUint(1, 32))
		_, err := DecodeMessage(body)
		require.ErrorIs(t, err, errors.Truncated)
	})

	t.Run("Royalty report", func(t *testing.T) {
		body := mustCell(t, cell.BeginCell().
			StoreUint(uint64(OpReportRoyaltyParams), 32).
			StoreUint(42, 64).
			StoreUint(10, 16).
			StoreUint(100, 16).
			StoreAddress(ownerAddr))
		msg, err := DecodeMessage(body)
		require.NoError(t, err)
		report, ok := msg.(*ReportRoyaltyParams)
		require.True(t, ok)
		require.Equal(t, uint64(42), report.QueryID)
		require.Equal(t, uint16(10), report.Royalty.Factor)
		require.Equal(t, uint16(100), report.Royalty.Base)
		require.True(t, ownerAddr.Equal(report.Royalty.Address))
	})
}

func TestQueryResults(t *testing.T) {
	t.Run("Royalty params", func(t *testing.T) {
		r, err := DecodeRoyaltyParams([]stack.Value{stack.NewInt(10), stack.NewInt(100), stack.Addr{Address: ownerAddr}})
		require.NoError(t, err)
		require.Equal(t, uint16(10), r.Factor)
		require.Equal(t, uint16(100), r.Base)
		require.True(t, ownerAddr.Equal(r.Address))
	})

	t.Run("Short collection data", func(t *testing.T) {
		c, err := content.EncodeOffChain("https://example.com/c.json")
		require.NoError(t, err)
		_, err = DecodeCollectionData([]stack.Value{stack.NewInt(0), stack.NewCell(c)})
		require.ErrorIs(t, err, errors.Truncated)
	})

	t.Run("Wrong variant", func(t *testing.T) {
		_, err := DecodeCollectionData([]stack.Value{stack.NewInt(0), stack.NewInt(1), stack.Null{}})
		require.ErrorIs(t, err, errors.TypeMismatch)
	})

	t.Run("Negative price", func(t *testing.T) {
		_, err := DecodeMintingPrice([]stack.Value{stack.NewInt(-1)})
		require.ErrorIs(t, err, errors.RangeError)
	})

	t.Run("Item content", func(t *testing.T) {
		item, err := content.EncodeRaw("7.json")
		require.NoError(t, err)
		full := mustCell(t, cell.BeginCell().
			StoreUint(content.OffChainPrefix, 8).
			StoreBytes([]byte("https://psalmfill.github.io/tiwiflix-ton-nft/")).
			StoreRef(item))
		uri, err := DecodeNftContent([]stack.Value{stack.NewCell(full)})
		require.NoError(t, err)
		require.Equal(t, "https://psalmfill.github.io/tiwiflix-ton-nft/7.json", uri)
	})

	t.Run("Query args", func(t *testing.T) {
		q := GetNftContent{Index: 7, Content: cell.Empty()}
		require.Equal(t, "get_nft_content", q.Method())
		require.Len(t, q.Args(), 2)
		require.Equal(t, "7", q.Args()[0].String())
		require.Empty(t, GetCollectionData{}.Args())
	})
}
