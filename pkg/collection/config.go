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
)

// Config is the initial state of a collection contract. After deployment the
// contract owns the authoritative state; a Config is a snapshot.
type Config struct {
	Owner                *address.Address `validate:"required"`
	NextItemIndex        uint64
	CollectionContentURL string
	CommonContentURL     string     `validate:"cell-bytes"`
	ItemCode             *cell.Cell `validate:"required"`
	Royalty              Royalty
	MintPrice            uint64
}

// Royalty is the share of secondary sales paid to the royalty address,
// Factor/Base. The contract does not interpret the values, so a zero base or a
// factor above the base is encoded as given.
type Royalty struct {
	Factor  uint16
	Base    uint16
	Address *address.Address `validate:"required"`
}

// Validate checks that the required fields are present and within range.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ValidationError.With("config is missing")
	}
	return validateStruct(c)
}

// Validate checks that the royalty address is present.
func (r *Royalty) Validate() error {
	return validateStruct(r)
}

// EncodeConfig encodes the initial contract data: the owner, the next item
// index, a reference to the content, a reference to the item code, a
// reference to the royalty parameters, and the mint price.
func EncodeConfig(cfg *Config) (*cell.Cell, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	contentCell, err := EncodeContent(cfg.CollectionContentURL, cfg.CommonContentURL)
	if err != nil {
		return nil, errors.UnknownError.WithCauseAndFormat(err, "content")
	}
	royalty, err := EncodeRoyalty(&cfg.Royalty)
	if err != nil {
		return nil, errors.UnknownError.WithCauseAndFormat(err, "royalty")
	}

	return cell.BeginCell().
		StoreAddress(cfg.Owner).
		StoreUint(cfg.NextItemIndex, 64).
		StoreRef(contentCell).
		StoreRef(cfg.ItemCode).
		StoreRef(royalty).
		StoreUint(cfg.MintPrice, 64).
		EndCell()
}

// DecodeConfig decodes contract data produced by [EncodeConfig].
func DecodeConfig(c *cell.Cell) (*Config, error) {
	if c == nil {
		return nil, errors.ValidationError.With("data is missing")
	}

	cfg := new(Config)
	s := c.BeginParse()
	var err error
	if cfg.Owner, err = s.LoadAddress(); err != nil {
		return nil, errors.UnknownError.WithCauseAndFormat(err, "owner")
	}
	if cfg.NextItemIndex, err = s.LoadUint(64); err != nil {
		return nil, errors.UnknownError.WithCauseAndFormat(err, "next item index")
	}

	contentCell, err := s.LoadRef()
	if err != nil {
		return nil, errors.UnknownError.WithCauseAndFormat(err, "content")
	}
	cfg.CollectionContentURL, cfg.CommonContentURL, err = DecodeContent(contentCell)
	if err != nil {
		return nil, errors.UnknownError.WithCauseAndFormat(err, "content")
	}

	if cfg.ItemCode, err = s.LoadRef(); err != nil {
		return nil, errors.UnknownError.WithCauseAndFormat(err, "item code")
	}

	royalty, err := s.LoadRef()
	if err != nil {
		return nil, errors.UnknownError.WithCauseAndFormat(err, "royalty")
	}
	r, err := DecodeRoyalty(royalty)
	if err != nil {
		return nil, errors.UnknownError.WithCauseAndFormat(err, "royalty")
	}
	cfg.Royalty = *r

	if cfg.MintPrice, err = s.LoadUint(64); err != nil {
		return nil, errors.UnknownError.WithCauseAndFormat(err, "mint price")
	}
	if err = s.EnsureEmpty(); err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}
	return cfg, nil
}

// EncodeContent encodes the collection content: a reference to the
// collection's off-chain metadata URI and a reference to the prefix shared by
// the item URIs.
func EncodeContent(collectionURL, commonURL string) (*cell.Cell, error) {
	collection, err := content.EncodeOffChain(collectionURL)
	if err != nil {
		return nil, errors.UnknownError.WithCauseAndFormat(err, "collection content")
	}
	common, err := content.EncodeRaw(commonURL)
	if err != nil {
		return nil, errors.UnknownError.WithCauseAndFormat(err, "common content")
	}
	return cell.BeginCell().StoreRef(collection).StoreRef(common).EndCell()
}

// DecodeContent decodes collection content produced by [EncodeContent].
func DecodeContent(c *cell.Cell) (collectionURL, commonURL string, err error) {
	if c == nil {
		return "", "", errors.ValidationError.With("content is missing")
	}
	s := c.BeginParse()
	collection, err := s.LoadRef()
	if err != nil {
		return "", "", err
	}
	common, err := s.LoadRef()
	if err != nil {
		return "", "", err
	}
	collectionURL, err = content.DecodeOffChain(collection)
	if err != nil {
		return "", "", errors.UnknownError.WithCauseAndFormat(err, "collection content")
	}
	commonURL, err = content.DecodeRaw(common)
	if err != nil {
		return "", "", errors.UnknownError.WithCauseAndFormat(err, "common content")
	}
	return collectionURL, commonURL, nil
}

// EncodeRoyalty encodes royalty parameters as a cell of their own.
func EncodeRoyalty(r *Royalty) (*cell.Cell, error) {
	if r == nil {
		return nil, errors.ValidationError.With("royalty is missing")
	}
	err := r.Validate()
	if err != nil {
		return nil, err
	}
	b := cell.BeginCell()
	storeRoyalty(b, r)
	return b.EndCell()
}

// DecodeRoyalty decodes royalty parameters produced by [EncodeRoyalty].
func DecodeRoyalty(c *cell.Cell) (*Royalty, error) {
	if c == nil {
		return nil, errors.ValidationError.With("royalty is missing")
	}
	return loadRoyalty(c.BeginParse())
}

func storeRoyalty(b *cell.Builder, r *Royalty) {
	b.StoreUint(uint64(r.Factor), 16)
	b.StoreUint(uint64(r.Base), 16)
	b.StoreAddress(r.Address)
}

func loadRoyalty(s *cell.Slice) (*Royalty, error) {
	factor, err := s.LoadUint(16)
	if err != nil {
		return nil, err
	}
	base, err := s.LoadUint(16)
	if err != nil {
		return nil, err
	}
	addr, err := s.LoadAddress()
	if err != nil {
		return nil, err
	}
	return &Royalty{Factor: uint16(factor), Base: uint16(base), Address: addr}, nil
}
