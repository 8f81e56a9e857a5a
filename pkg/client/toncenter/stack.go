// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package toncenter

import (
	"encoding/json"
	"math/big"

	"gitlab.com/accumulatenetwork/nft-collection/pkg/errors"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/types/cell"
	"gitlab.com/accumulatenetwork/nft-collection/pkg/types/stack"
)

// Stack entries are two-element arrays: a kind and a value. Arguments use
// num, tvm.Cell, and tvm.Slice. Results use num, cell, and slice, where
// cells and slices are objects with a base64 BoC in bytes.

type cellEntry struct {
	Bytes string `json:"bytes"`
}

func encodeStack(values []stack.Value) ([][2]string, error) {
	entries := make([][2]string, 0, len(values))
	for i, v := range values {
		switch v := v.(type) {
		case stack.Int:
			if v.Value == nil {
				return nil, errors.BadRequest.WithFormat("argument %d: missing integer", i)
			}
			entries = append(entries, [2]string{"num", formatNum(v.Value)})
		case stack.Cell:
			if v.Cell == nil {
				return nil, errors.BadRequest.WithFormat("argument %d: missing cell", i)
			}
			entries = append(entries, [2]string{"tvm.Cell", v.Cell.ToBase64()})
		case stack.Slice:
			if v.Cell == nil {
				return nil, errors.BadRequest.WithFormat("argument %d: missing slice", i)
			}
			entries = append(entries, [2]string{"tvm.Slice", v.Cell.ToBase64()})
		case stack.Addr:
			c, err := cell.BeginCell().StoreAddress(v.Address).EndCell()
			if err != nil {
				return nil, errors.UnknownError.WithCauseAndFormat(err, "argument %d", i)
			}
			entries = append(entries, [2]string{"tvm.Slice", c.ToBase64()})
		default:
			return nil, errors.BadRequest.WithFormat("argument %d: %s values are not supported", i, v.Kind())
		}
	}
	return entries, nil
}

func formatNum(v *big.Int) string {
	if v.Sign() < 0 {
		return "-0x" + new(big.Int).Neg(v).Text(16)
	}
	return "0x" + v.Text(16)
}

func decodeStack(entries []json.RawMessage) ([]stack.Value, error) {
	values := make([]stack.Value, 0, len(entries))
	for i, raw := range entries {
		var entry []json.RawMessage
		err := json.Unmarshal(raw, &entry)
		if err != nil || len(entry) == 0 {
			return nil, errors.BadRequest.WithFormat("result %d: malformed stack entry", i)
		}
		var kind string
		if err := json.Unmarshal(entry[0], &kind); err != nil {
			return nil, errors.BadRequest.WithFormat("result %d: malformed stack entry kind", i)
		}

		v, err := decodeEntry(kind, entry[1:])
		if err != nil {
			return nil, errors.UnknownError.WithCauseAndFormat(err, "result %d", i)
		}
		values = append(values, v)
	}
	return values, nil
}

func decodeEntry(kind string, rest []json.RawMessage) (stack.Value, error) {
	switch kind {
	case "null":
		return stack.Null{}, nil
	case "num", "cell", "slice":
	default:
		return nil, errors.TypeMismatch.WithFormat("unsupported stack entry %q", kind)
	}
	if len(rest) == 0 {
		return nil, errors.Truncated.WithFormat("%s entry has no value", kind)
	}

	if kind == "num" {
		var s string
		if err := json.Unmarshal(rest[0], &s); err != nil {
			return nil, errors.BadRequest.WithFormat("num: %w", err)
		}
		v, ok := new(big.Int).SetString(s, 0)
		if !ok {
			return nil, errors.BadRequest.WithFormat("num: invalid value %q", s)
		}
		return stack.Int{Value: v}, nil
	}

	var e cellEntry
	if err := json.Unmarshal(rest[0], &e); err != nil {
		return nil, errors.BadRequest.WithFormat("%s: %w", kind, err)
	}
	c, err := cell.FromBase64(e.Bytes)
	if err != nil {
		return nil, err
	}
	if kind == "slice" {
		return stack.NewSlice(c), nil
	}
	return stack.NewCell(c), nil
}
