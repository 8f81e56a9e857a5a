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
)

// Message is a message body sent to or by the collection contract. The set
// of messages is closed: [Deploy], [Mint], [BatchMint], [ChangeOwner],
// [ChangeContent], [ChangeMintPrice], [GetRoyaltyParams], and
// [ReportRoyaltyParams].
type Message interface {
	// Opcode returns the message's opcode. Deploy has no opcode and returns
	// zero.
	Opcode() Opcode

	// Validate checks that the message can be encoded.
	Validate() error

	isMessage()
}

// Deploy is the empty message that activates a newly deployed contract.
type Deploy struct{}

// Mint mints a single item.
type Mint struct {
	QueryID uint64
	Index   uint64

	// Amount is forwarded to the item contract for storage.
	Amount *big.Int

	Content  ItemContent
	Receiver *address.Address `validate:"required"`
}

// BatchMint mints several items. DeployList is built by [BuildDeployList].
type BatchMint struct {
	QueryID    uint64
	DeployList *cell.Cell `validate:"required"`
}

// ChangeOwner transfers ownership of the collection.
type ChangeOwner struct {
	QueryID  uint64
	NewOwner *address.Address `validate:"required"`
}

// ChangeContent replaces the collection content and royalty parameters.
type ChangeContent struct {
	QueryID              uint64
	CollectionContentURL string
	CommonContentURL     string `validate:"cell-bytes"`
	Royalty              Royalty
}

// ChangeMintPrice sets the price of minting an item.
type ChangeMintPrice struct {
	QueryID   uint64
	MintPrice uint64
}

// GetRoyaltyParams asks the contract to report its royalty parameters.
type GetRoyaltyParams struct {
	QueryID uint64
}

// ReportRoyaltyParams is the contract's response to [GetRoyaltyParams].
type ReportRoyaltyParams struct {
	QueryID uint64
	Royalty Royalty
}

func (*Deploy) isMessage()              {}
func (*Mint) isMessage()                {}
func (*BatchMint) isMessage()           {}
func (*ChangeOwner) isMessage()         {}
func (*ChangeContent) isMessage()       {}
func (*ChangeMintPrice) isMessage()     {}
func (*GetRoyaltyParams) isMessage()    {}
func (*ReportRoyaltyParams) isMessage() {}

func (*Deploy) Opcode() Opcode              { return 0 }
func (*Mint) Opcode() Opcode                { return OpMint }
func (*BatchMint) Opcode() Opcode           { return OpBatchMint }
func (*ChangeOwner) Opcode() Opcode         { return OpChangeOwner }
func (*ChangeContent) Opcode() Opcode       { return OpChangeContent }
func (*ChangeMintPrice) Opcode() Opcode     { return OpChangeMintPrice }
func (*GetRoyaltyParams) Opcode() Opcode    { return OpGetRoyaltyParams }
func (*ReportRoyaltyParams) Opcode() Opcode { return OpReportRoyaltyParams }

func (*Deploy) Validate() error           { return nil }
func (*ChangeMintPrice) Validate() error  { return nil }
func (*GetRoyaltyParams) Validate() error { return nil }

func (m *Mint) Validate() error {
	err := coins.Validate(m.Amount)
	if err != nil {
		return errors.ValidationError.WithCauseAndFormat(err, "amount")
	}
	return validateStruct(m)
}

func (m *BatchMint) Validate() error     { return validateStruct(m) }
func (m *ChangeOwner) Validate() error   { return validateStruct(m) }
func (m *ChangeContent) Validate() error { return validateStruct(m) }

func (m *ReportRoyaltyParams) Validate() error { return m.Royalty.Validate() }

// EncodeMessage validates and encodes a message body. Every body other than
// Deploy starts with the 32-bit opcode and the 64-bit query ID.
func EncodeMessage(msg Message) (*cell.Cell, error) {
	if msg == nil {
		return nil, errors.ValidationError.With("message is missing")
	}
	err := msg.Validate()
	if err != nil {
		return nil, err
	}

	b := cell.BeginCell()
	switch m := msg.(type) {
	case *Deploy:
		return b.EndCell()

	case *Mint:
		item, err := m.Content.ToCell()
		if err != nil {
			return nil, errors.UnknownError.WithCauseAndFormat(err, "item content")
		}
		storeHeader(b, OpMint, m.QueryID)
		b.StoreUint(m.Index, 64)
		b.StoreCoins(m.Amount)
		b.StoreRef(item)
		b.StoreAddress(m.Receiver)

	case *BatchMint:
		storeHeader(b, OpBatchMint, m.QueryID)
		b.StoreRef(m.DeployList)

	case *ChangeOwner:
		storeHeader(b, OpChangeOwner, m.QueryID)
		b.StoreAddress(m.NewOwner)

	case *ChangeContent:
		contentCell, err := EncodeContent(m.CollectionContentURL, m.CommonContentURL)
		if err != nil {
			return nil, err
		}
		royalty, err := EncodeRoyalty(&m.Royalty)
		if err != nil {
			return nil, err
		}
		storeHeader(b, OpChangeContent, m.QueryID)
		b.StoreRef(contentCell)
		b.StoreRef(royalty)

	case *ChangeMintPrice:
		storeHeader(b, OpChangeMintPrice, m.QueryID)
		b.StoreUint(m.MintPrice, 64)

	case *GetRoyaltyParams:
		storeHeader(b, OpGetRoyaltyParams, m.QueryID)

	case *ReportRoyaltyParams:
		storeHeader(b, OpReportRoyaltyParams, m.QueryID)
		storeRoyalty(b, &m.Royalty)

	default:
		return nil, errors.BadRequest.WithFormat("unsupported message type %T", msg)
	}
	return b.EndCell()
}

func storeHeader(b *cell.Builder, op Opcode, queryID uint64) {
	b.StoreUint(uint64(op), 32)
	b.StoreUint(queryID, 64)
}

// DecodeMessage decodes a message body. An empty body decodes as [Deploy].
func DecodeMessage(body *cell.Cell) (Message, error) {
	if body == nil {
		return nil, errors.ValidationError.With("body is missing")
	}
	s := body.BeginParse()
	if s.IsEmpty() {
		return new(Deploy), nil
	}

	op, err := s.LoadUint(32)
	if err != nil {
		return nil, errors.UnknownError.WithCauseAndFormat(err, "opcode")
	}
	if !Opcode(op).Known() {
		return nil, errors.InvalidTag.WithFormat("unknown opcode %#x", op)
	}
	queryID, err := s.LoadUint(64)
	if err != nil {
		return nil, errors.UnknownError.WithCauseAndFormat(err, "query ID")
	}

	msg, err := decodePayload(Opcode(op), queryID, s)
	if err != nil {
		return nil, errors.UnknownError.WithCauseAndFormat(err, "decode %v", Opcode(op))
	}
	return msg, nil
}

func decodePayload(op Opcode, queryID uint64, s *cell.Slice) (Message, error) {
	switch op {
	case OpMint:
		m := &Mint{QueryID: queryID}
		var err error
		if m.Index, err = s.LoadUint(64); err != nil {
			return nil, err
		}
		if m.Amount, err = s.LoadCoins(); err != nil {
			return nil, err
		}
		item, err := s.LoadRef()
		if err != nil {
			return nil, err
		}
		content, err := DecodeItemContent(item)
		if err != nil {
			return nil, err
		}
		m.Content = *content
		if m.Receiver, err = s.LoadAddress(); err != nil {
			return nil, err
		}
		return m, nil

	case OpBatchMint:
		list, err := s.LoadRef()
		if err != nil {
			return nil, err
		}
		return &BatchMint{QueryID: queryID, DeployList: list}, nil

	case OpChangeOwner:
		owner, err := s.LoadAddress()
		if err != nil {
			return nil, err
		}
		return &ChangeOwner{QueryID: queryID, NewOwner: owner}, nil

	case OpChangeContent:
		m := &ChangeContent{QueryID: queryID}
		contentCell, err := s.LoadRef()
		if err != nil {
			return nil, err
		}
		royaltyCell, err := s.LoadRef()
		if err != nil {
			return nil, err
		}
		m.CollectionContentURL, m.CommonContentURL, err = DecodeContent(contentCell)
		if err != nil {
			return nil, err
		}
		royalty, err := DecodeRoyalty(royaltyCell)
		if err != nil {
			return nil, err
		}
		m.Royalty = *royalty
		return m, nil

	case OpChangeMintPrice:
		price, err := s.LoadUint(64)
		if err != nil {
			return nil, err
		}
		return &ChangeMintPrice{QueryID: queryID, MintPrice: price}, nil

	case OpGetRoyaltyParams:
		return &GetRoyaltyParams{QueryID: queryID}, nil

	case OpReportRoyaltyParams:
		royalty, err := loadRoyalty(s)
		if err != nil {
			return nil, err
		}
		return &ReportRoyaltyParams{QueryID: queryID, Royalty: *royalty}, nil
	}
	return nil, errors.InvalidTag.WithFormat("unknown opcode %#x", uint32(op))
}
