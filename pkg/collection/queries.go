// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package collection

import (
	"gitlab.com/accumulatenetwork/nft-collection/pkg/errors"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/types/address"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/types/cell"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/types/content"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/types/stack"
)

// Query is a get method of the collection contract. The set of queries is
// closed: [GetCollectionData], [GetMintingPrice], [RoyaltyParams],
// [GetNftAddressByIndex], and [GetNftContent].
type Query interface {
	// Method returns the name of the get method.
	Method() string

	// Args returns the arguments of the get method.
	Args() []stack.Value

	isQuery()
}

// GetCollectionData returns the next item index, the collection content, and
// the owner.
type GetCollectionData struct{}

// GetMintingPrice returns the price of minting an item.
type GetMintingPrice struct{}

// RoyaltyParams returns the royalty parameters.
type RoyaltyParams struct{}

// GetNftAddressByIndex returns the address of the item with the given index.
type GetNftAddressByIndex struct {
	Index uint64
}

// GetNftContent returns the full content of an item given its index and its
// individual content.
type GetNftContent struct {
	Index   uint64
	Content *cell.Cell
}

func (GetCollectionData) isQuery()    {}
func (GetMintingPrice) isQuery()      {}
func (RoyaltyParams) isQuery()        {}
func (GetNftAddressByIndex) isQuery() {}
func (GetNftContent) isQuery()        {}

func (GetCollectionData) Method() string    { return "get_collection_data" }
func (GetMintingPrice) Method() string      { return "get_minting_price" }
func (RoyaltyParams) Method() string        { return "royalty_params" }
func (GetNftAddressByIndex) Method() string { return "get_nft_address_by_index" }
func (GetNftContent) Method() string        { return "get_nft_content" }

func (GetCollectionData) Args() []stack.Value { return nil }
func (GetMintingPrice) Args() []stack.Value   { return nil }
func (RoyaltyParams) Args() []stack.Value     { return nil }

func (q GetNftAddressByIndex) Args() []stack.Value {
	return []stack.Value{stack.NewUint(q.Index)}
}

func (q GetNftContent) Args() []stack.Value {
	return []stack.Value{stack.NewUint(q.Index), stack.NewCell(q.Content)}
}

// CollectionData is the result of [GetCollectionData].
type CollectionData struct {
	NextItemIndex        uint64
	CollectionContentURL string
	Owner                *address.Address
}

// DecodeCollectionData decodes the result of [GetCollectionData]: an
// integer, the off-chain collection content, and an address.
func DecodeCollectionData(values []stack.Value) (*CollectionData, error) {
	r := stack.NewReader(values)
	data := new(CollectionData)
	var err error
	if data.NextItemIndex, err = r.ReadUint64(); err != nil {
		return nil, errors.UnknownError.WithCauseAndFormat(err, "next item index")
	}
	c, err := r.ReadCell()
	if err != nil {
		return nil, errors.UnknownError.WithCauseAndFormat(err, "collection content")
	}
	if data.CollectionContentURL, err = content.DecodeOffChain(c); err != nil {
		return nil, errors.UnknownError.WithCauseAndFormat(err, "collection content")
	}
	if data.Owner, err = r.ReadAddress(); err != nil {
		return nil, errors.UnknownError.WithCauseAndFormat(err, "owner")
	}
	return data, nil
}

// DecodeRoyaltyParams decodes the result of [RoyaltyParams]: two integers
// and an address.
func DecodeRoyaltyParams(values []stack.Value) (*Royalty, error) {
	r := stack.NewReader(values)
	royalty := new(Royalty)
	var err error
	if royalty.Factor, err = r.ReadUint16(); err != nil {
		return nil, errors.UnknownError.WithCauseAndFormat(err, "factor")
	}
	if royalty.Base, err = r.ReadUint16(); err != nil {
		return nil, errors.UnknownError.WithCauseAndFormat(err, "base")
	}
	if royalty.Address, err = r.ReadAddress(); err != nil {
		return nil, errors.UnknownError.WithCauseAndFormat(err, "address")
	}
	return royalty, nil
}

// DecodeMintingPrice decodes the result of [GetMintingPrice].
func DecodeMintingPrice(values []stack.Value) (uint64, error) {
	price, err := stack.NewReader(values).ReadUint64()
	if err != nil {
		return 0, errors.UnknownError.WithCauseAndFormat(err, "minting price")
	}
	return price, nil
}

// DecodeNftAddress decodes the result of [GetNftAddressByIndex].
func DecodeNftAddress(values []stack.Value) (*address.Address, error) {
	addr, err := stack.NewReader(values).ReadAddress()
	if err != nil {
		return nil, errors.UnknownError.WithCauseAndFormat(err, "item address")
	}
	return addr, nil
}

// DecodeNftContent decodes the result of [GetNftContent]: the off-chain
// content of the item, the common content followed by the item's URI.
func DecodeNftContent(values []stack.Value) (string, error) {
	c, err := stack.NewReader(values).ReadCell()
	if err != nil {
		return "", errors.UnknownError.WithCauseAndFormat(err, "item content")
	}
	uri, err := content.DecodeOffChain(c)
	if err != nil {
		return "", errors.UnknownError.WithCauseAndFormat(err, "item content")
	}
	return uri, nil
}
