// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package content encodes token metadata references. Off-chain content is a
// tag byte followed by a URI, split across a chain of cells.
package content

import (
	"gitlab.com/accumulatenetwork/nft-collection/pkg/errors"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/types/cell"
)

// OffChainPrefix marks off-chain content.
const OffChainPrefix = 0x01

// ChunkSize is the number of bytes stored in each cell of a snake chain.
const ChunkSize = cell.MaxBits / 8

// EncodeOffChain encodes a URI as tagged off-chain content.
func EncodeOffChain(uri string) (*cell.Cell, error) {
	data := make([]byte, 0, 1+len(uri))
	data = append(data, OffChainPrefix)
	data = append(data, uri...)
	return MakeSnake(data)
}

// DecodeOffChain decodes tagged off-chain content and returns the URI.
func DecodeOffChain(c *cell.Cell) (string, error) {
	data, err := FlattenSnake(c)
	if err != nil {
		return "", errors.UnknownError.Wrap(err)
	}
	if len(data) == 0 {
		return "", errors.Truncated.With("content is empty")
	}
	if data[0] != OffChainPrefix {
		return "", errors.InvalidTag.WithFormat("unknown content prefix %#02x", data[0])
	}
	return string(data[1:]), nil
}

// MakeSnake splits data into chunks of [ChunkSize] bytes and stores them in a
// chain of cells, each chunk after the first in the first reference of the
// previous cell.
func MakeSnake(data []byte) (*cell.Cell, error) {
	var chunks [][]byte
	for len(data) > ChunkSize {
		chunks = append(chunks, data[:ChunkSize])
		data = data[ChunkSize:]
	}
	chunks = append(chunks, data)

	var next *cell.Cell
	for i := len(chunks) - 1; i >= 0; i-- {
		b := cell.BeginCell().StoreBytes(chunks[i])
		if next != nil {
			b.StoreRef(next)
		}
		c, err := b.EndCell()
		if err != nil {
			return nil, errors.UnknownError.WithCauseAndFormat(err, "chunk %d", i)
		}
		next = c
	}
	return next, nil
}

// FlattenSnake concatenates the data of a chain of cells, following the first
// reference of each until a cell has no references. Cells without data are
// passed through.
func FlattenSnake(c *cell.Cell) ([]byte, error) {
	if c == nil {
		return nil, errors.ValidationError.With("content is missing")
	}

	var data []byte
	for c != nil {
		b, err := c.BeginParse().LoadRemainingBytes()
		if err != nil {
			return nil, errors.UnknownError.Wrap(err)
		}
		data = append(data, b...)
		c = c.Ref(0)
	}
	return data, nil
}

// EncodeRaw stores a string in a single untagged cell.
func EncodeRaw(s string) (*cell.Cell, error) {
	if len(s) > ChunkSize {
		return nil, errors.ValidationError.WithFormat("%d bytes do not fit in a single cell", len(s))
	}
	return cell.BeginCell().StoreBytes([]byte(s)).EndCell()
}

// DecodeRaw reads the data of a single untagged cell as a string.
func DecodeRaw(c *cell.Cell) (string, error) {
	if c == nil {
		return "", errors.ValidationError.With("content is missing")
	}
	b, err := c.BeginParse().LoadRemainingBytes()
	if err != nil {
		return "", errors.UnknownError.Wrap(err)
	}
	return string(b), nil
}
