// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package collection

import (
	"math/big"

	"gitlab.com/accumulatenetwork/nft-collection/pkg/errors"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/types/address"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/types/cell"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/types/coins"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/types/content"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/types/dict"
)

// DeployListKeyBits is the width of the item index keys of a deploy list.
const DeployListKeyBits = 64

// ItemContent is the initial content of an item: its owner and the URI of
// its metadata relative to the collection's common content.
type ItemContent struct {
	Owner *address.Address `validate:"required"`
	URI   string           `validate:"cell-bytes"`
}

// Validate checks that the owner is present and the URI fits in a cell.
func (c *ItemContent) Validate() error {
	return validateStruct(c)
}

// ToCell encodes the owner followed by a reference to the URI.
func (c *ItemContent) ToCell() (*cell.Cell, error) {
	err := c.Validate()
	if err != nil {
		return nil, err
	}
	uri, err := content.EncodeRaw(c.URI)
	if err != nil {
		return nil, err
	}
	return cell.BeginCell().StoreAddress(c.Owner).StoreRef(uri).EndCell()
}

// DecodeItemContent decodes item content produced by [ItemContent.ToCell].
func DecodeItemContent(c *cell.Cell) (*ItemContent, error) {
	if c == nil {
		return nil, errors.ValidationError.With("item content is missing")
	}
	s := c.BeginParse()
	owner, err := s.LoadAddress()
	if err != nil {
		return nil, err
	}
	ref, err := s.LoadRef()
	if err != nil {
		return nil, err
	}
	uri, err := content.DecodeRaw(ref)
	if err != nil {
		return nil, err
	}
	return &ItemContent{Owner: owner, URI: uri}, nil
}

// BatchItem is an entry of a batch mint.
type BatchItem struct {
	Index   uint64
	Amount  *big.Int
	Content ItemContent
}

// BuildDeployList builds the dictionary of a [BatchMint], keyed by item
// index. Each value is the amount forwarded to the item followed by a
// reference to the item content.
func BuildDeployList(items []BatchItem) (*cell.Cell, error) {
	if len(items) == 0 {
		return nil, errors.ValidationError.With("deploy list is empty")
	}

	d, err := dict.New(DeployListKeyBits)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if _, ok := d.Get(item.Index); ok {
			return nil, errors.ValidationError.WithFormat("duplicate item index %d", item.Index)
		}
		err = coins.Validate(item.Amount)
		if err != nil {
			return nil, errors.ValidationError.WithCauseAndFormat(err, "item %d amount", item.Index)
		}
		itemContent, err := item.Content.ToCell()
		if err != nil {
			return nil, errors.UnknownError.WithCauseAndFormat(err, "item %d content", item.Index)
		}
		value, err := cell.BeginCell().StoreCoins(item.Amount).StoreRef(itemContent).EndCell()
		if err != nil {
			return nil, errors.UnknownError.WithCauseAndFormat(err, "item %d", item.Index)
		}
		err = d.Set(item.Index, value)
		if err != nil {
			return nil, err
		}
	}
	return d.ToCell()
}

// DecodeDeployList decodes a dictionary built by [BuildDeployList]. Items are
// returned in ascending index order.
func DecodeDeployList(c *cell.Cell) ([]BatchItem, error) {
	entries, err := dict.Load(c, DeployListKeyBits)
	if err != nil {
		return nil, err
	}

	items := make([]BatchItem, 0, len(entries))
	for _, e := range entries {
		amount, err := e.Value.LoadCoins()
		if err != nil {
			return nil, errors.UnknownError.WithCauseAndFormat(err, "item %d amount", e.Key)
		}
		ref, err := e.Value.LoadRef()
		if err != nil {
			return nil, errors.UnknownError.WithCauseAndFormat(err, "item %d content", e.Key)
		}
		itemContent, err := DecodeItemContent(ref)
		if err != nil {
			return nil, errors.UnknownError.WithCauseAndFormat(err, "item %d content", e.Key)
		}
		items = append(items, BatchItem{Index: e.Key, Amount: amount, Content: *itemContent})
	}
	return items, nil
}
