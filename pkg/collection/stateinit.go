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
)

// StateInit is the code and initial data of a contract. The address of a
// contract is the hash of its state init.
type StateInit struct {
	Code *cell.Cell
	Data *cell.Cell
}

// ToCell encodes the state init with no split depth, no tick-tock, and no
// libraries.
func (s *StateInit) ToCell() (*cell.Cell, error) {
	if s == nil || s.Code == nil || s.Data == nil {
		return nil, errors.ValidationError.With("state init requires code and data")
	}
	return cell.BeginCell().
		StoreBit(false). // Split depth
		StoreBit(false). // Tick-tock
		StoreMaybeRef(s.Code).
		StoreMaybeRef(s.Data).
		StoreBit(false). // Libraries
		EndCell()
}

// DecodeStateInit decodes a state init. Split depth, tick-tock, and libraries
// are not supported.
func DecodeStateInit(c *cell.Cell) (*StateInit, error) {
	if c == nil {
		return nil, errors.ValidationError.With("state init is missing")
	}
	s := c.BeginParse()
	flags, err := s.LoadUint(2)
	if err != nil {
		return nil, err
	}
	if flags != 0 {
		return nil, errors.InvalidTag.With("split depth and tick-tock are not supported")
	}

	init := new(StateInit)
	if init.Code, err = s.LoadMaybeRef(); err != nil {
		return nil, err
	}
	if init.Data, err = s.LoadMaybeRef(); err != nil {
		return nil, err
	}
	lib, err := s.LoadBit()
	if err != nil {
		return nil, err
	}
	if lib {
		return nil, errors.InvalidTag.With("libraries are not supported")
	}
	return init, nil
}

// ContractAddress returns the address of the contract with the given state
// init on the given workchain.
func ContractAddress(workchain int8, init *StateInit) (*address.Address, error) {
	c, err := init.ToCell()
	if err != nil {
		return nil, err
	}
	return address.New(workchain, c.Hash()), nil
}
