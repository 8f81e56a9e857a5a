// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package config

import (
	"bytes"
	"io"

	"github.com/rs/zerolog"
	"gitlab.com/accumulatenetwork/nft-collection/internal/logging"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/client/toncenter"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/collection"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/errors"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/types/address"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/types/cell"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/types/coins"
)

var bocMagic = []byte{0xb5, 0xee, 0x9c, 0x72}

func (l *Logging) NewLogger(w io.Writer) (zerolog.Logger, error) {
	logger, err := logging.New(l.Level, l.Format, w)
	if err != nil {
		return logger, errors.BadRequest.WithFormat("logging: %w", err)
	}
	return logger, nil
}

func (n *Network) NewClient(logger zerolog.Logger) (*toncenter.Client, error) {
	return toncenter.New(n.Endpoint,
		toncenter.APIKey(n.APIKey),
		toncenter.Timeout(n.Timeout.Get()),
		toncenter.Logger(logger))
}

// LoadCode reads a BoC file referenced by the config.
func (c *Config) LoadCode(path string) (*cell.Cell, error) {
	if path == "" {
		return nil, errors.BadRequest.With("missing code file")
	}
	b, err := c.readFile(path)
	if err != nil {
		return nil, errors.BadRequest.WithFormat("read %s: %w", path, err)
	}
	if bytes.HasPrefix(b, bocMagic) {
		return cell.FromBOC(b)
	}
	return cell.FromBase64(string(bytes.TrimSpace(b)))
}

// CollectionAddress returns the configured address of a deployed collection.
func (c *Config) CollectionAddress() (*address.Address, error) {
	if c.Collection.Address == "" {
		return nil, errors.BadRequest.With("collection address is not configured")
	}
	return address.Parse(c.Collection.Address)
}

// CollectionConfig builds the initial data and the contract code of the
// collection. The royalty address defaults to the owner.
func (c *Config) CollectionConfig() (*collection.Config, *cell.Cell, error) {
	cc := &c.Collection
	if cc.Owner == "" {
		return nil, nil, errors.BadRequest.With("collection owner is not configured")
	}
	owner, err := address.Parse(cc.Owner)
	if err != nil {
		return nil, nil, err
	}

	cfg := &collection.Config{
		Owner:                owner,
		CollectionContentURL: cc.CollectionContent,
		CommonContentURL:     cc.CommonContent,
		Royalty:              collection.Royalty{Address: owner},
	}

	if cc.Royalty != nil {
		cfg.Royalty.Factor = cc.Royalty.Factor
		cfg.Royalty.Base = cc.Royalty.Base
		if cc.Royalty.Address != "" {
			cfg.Royalty.Address, err = address.Parse(cc.Royalty.Address)
			if err != nil {
				return nil, nil, err
			}
		}
	}

	if cc.MintPrice != "" {
		price, err := coins.ParseTON(cc.MintPrice)
		if err != nil {
			return nil, nil, errors.UnknownError.WithCauseAndFormat(err, "mint price")
		}
		if !price.IsUint64() {
			return nil, nil, errors.RangeError.WithFormat("mint price %s is out of range", cc.MintPrice)
		}
		cfg.MintPrice = price.Uint64()
	}

	cfg.ItemCode, err = c.LoadCode(cc.ItemCode)
	if err != nil {
		return nil, nil, errors.UnknownError.WithCauseAndFormat(err, "item code")
	}
	code, err := c.LoadCode(cc.ContractCode)
	if err != nil {
		return nil, nil, errors.UnknownError.WithCauseAndFormat(err, "contract code")
	}

	err = cfg.Validate()
	if err != nil {
		return nil, nil, err
	}
	return cfg, code, nil
}
