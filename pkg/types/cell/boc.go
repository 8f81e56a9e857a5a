// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package cell

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"hash/crc32"
	"math/bits"

	"gitlab.com/accumulatenetwork/nft-collection/pkg/errors"
)

var bocMagic = []byte{0xb5, 0xee, 0x9c, 0x72}

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// BOCOptions controls bag-of-cells serialization.
type BOCOptions struct {
	// Index includes the cell offset index.
	Index bool

	// CRC32 appends a CRC32-C checksum.
	CRC32 bool
}

// DefaultBOCOptions includes a checksum and omits the index.
var DefaultBOCOptions = BOCOptions{CRC32: true}

// ToBOC serializes the tree rooted at c with the default options.
func (c *Cell) ToBOC() []byte {
	b, _ := ToBOCWithOptions(DefaultBOCOptions, c)
	return b
}

// ToBase64 returns the standard base64 encoding of ToBOC.
func (c *Cell) ToBase64() string {
	return base64.StdEncoding.EncodeToString(c.ToBOC())
}

// ToBOCWithOptions serializes one or more trees into a single bag of cells.
// Cells shared between or within trees are stored once.
func ToBOCWithOptions(opts BOCOptions, roots ...*Cell) ([]byte, error) {
	if len(roots) == 0 {
		return nil, errors.BadRequest.With("no roots")
	}
	for _, r := range roots {
		if r == nil {
			return nil, errors.BadRequest.With("root is missing")
		}
	}

	order, index := sortCells(roots)
	sizeBytes := byteLen(uint64(len(order)))

	var cells bytes.Buffer
	offsets := make([]uint64, len(order))
	for i, c := range order {
		cells.Write(c.descriptors())
		cells.Write(c.paddedData())
		for _, r := range c.refs {
			cells.Write(putUint(uint64(index[r.hash]), sizeBytes))
		}
		offsets[i] = uint64(cells.Len())
	}
	offBytes := byteLen(uint64(cells.Len()))

	var flags byte
	if opts.Index {
		flags |= 0x80
	}
	if opts.CRC32 {
		flags |= 0x40
	}
	flags |= byte(sizeBytes)

	var buf bytes.Buffer
	buf.Write(bocMagic)
	buf.WriteByte(flags)
	buf.WriteByte(byte(offBytes))
	buf.Write(putUint(uint64(len(order)), sizeBytes))
	buf.Write(putUint(uint64(len(roots)), sizeBytes))
	buf.Write(putUint(0, sizeBytes)) // Absent
	buf.Write(putUint(uint64(cells.Len()), offBytes))
	for _, r := range roots {
		buf.Write(putUint(uint64(index[r.hash]), sizeBytes))
	}
	if opts.Index {
		for _, off := range offsets {
			buf.Write(putUint(off, offBytes))
		}
	}
	buf.Write(cells.Bytes())

	if opts.CRC32 {
		buf.Write(binary.LittleEndian.AppendUint32(nil, crc32.Checksum(buf.Bytes(), castagnoli)))
	}
	return buf.Bytes(), nil
}

// sortCells orders the cells so that every cell precedes its children and
// returns the position of each distinct cell.
func sortCells(roots []*Cell) ([]*Cell, map[[32]byte]int) {
	seen := map[[32]byte]bool{}
	var post []*Cell
	var visit func(*Cell)
	visit = func(c *Cell) {
		if seen[c.hash] {
			return
		}
		seen[c.hash] = true
		for _, r := range c.refs {
			visit(r)
		}
		post = append(post, c)
	}
	for i := len(roots) - 1; i >= 0; i-- {
		visit(roots[i])
	}

	order := make([]*Cell, len(post))
	index := make(map[[32]byte]int, len(post))
	for i, c := range post {
		j := len(post) - 1 - i
		order[j] = c
		index[c.hash] = j
	}
	return order, index
}

func byteLen(v uint64) int {
	n := (bits.Len64(v) + 7) / 8
	if n == 0 {
		return 1
	}
	return n
}

func putUint(v uint64, n int) []byte {
	b := make([]byte, n)
	for i := n - 1; i >= 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}
	return b
}

// FromBase64 decodes a standard or URL-safe base64 bag of cells with a single
// root.
func FromBase64(s string) (*Cell, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		b, err = base64.URLEncoding.DecodeString(s)
	}
	if err != nil {
		return nil, errors.BadRequest.WithCauseAndFormat(err, "invalid base64")
	}
	return FromBOC(b)
}

// FromBOC decodes a bag of cells with exactly one root.
func FromBOC(b []byte) (*Cell, error) {
	roots, err := FromBOCMultiRoot(b)
	if err != nil {
		return nil, err
	}
	if len(roots) != 1 {
		return nil, errors.ValidationError.WithFormat("expected 1 root, got %d", len(roots))
	}
	return roots[0], nil
}

type bocReader struct {
	buf []byte
	pos int
}

func (r *bocReader) uint(n int) (uint64, error) {
	if r.pos+n > len(r.buf) {
		return 0, errors.Truncated.Skip(1).WithFormat("bag of cells is truncated at offset %d", r.pos)
	}
	var v uint64
	for _, c := range r.buf[r.pos : r.pos+n] {
		v = v<<8 | uint64(c)
	}
	r.pos += n
	return v, nil
}

func (r *bocReader) bytes(n int) ([]byte, error) {
	if n < 0 || r.pos+n > len(r.buf) {
		return nil, errors.Truncated.Skip(1).WithFormat("bag of cells is truncated at offset %d", r.pos)
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

type rawCell struct {
	bits uint
	data []byte
	refs []int
}

// FromBOCMultiRoot decodes a bag of cells and returns all of its roots.
func FromBOCMultiRoot(b []byte) ([]*Cell, error) {
	if len(b) < len(bocMagic)+2 {
		return nil, errors.Truncated.With("bag of cells is truncated")
	}
	if !bytes.Equal(b[:len(bocMagic)], bocMagic) {
		return nil, errors.InvalidTag.WithFormat("invalid bag of cells magic %x", b[:len(bocMagic)])
	}

	flags := b[len(bocMagic)]
	hasIndex := flags&0x80 != 0
	hasCRC := flags&0x40 != 0
	sizeBytes := int(flags & 0x07)
	offBytes := int(b[len(bocMagic)+1])
	if sizeBytes < 1 || sizeBytes > 4 {
		return nil, errors.InvalidTag.WithFormat("invalid reference size %d", sizeBytes)
	}
	if offBytes < 1 || offBytes > 8 {
		return nil, errors.InvalidTag.WithFormat("invalid offset size %d", offBytes)
	}

	if hasCRC {
		if len(b) < 4 {
			return nil, errors.Truncated.With("bag of cells is truncated")
		}
		n := len(b) - 4
		want := binary.LittleEndian.Uint32(b[n:])
		if got := crc32.Checksum(b[:n], castagnoli); got != want {
			return nil, errors.InvalidTag.WithFormat("checksum mismatch: want %08x, got %08x", want, got)
		}
		b = b[:n]
	}

	r := &bocReader{buf: b, pos: len(bocMagic) + 2}
	count, err := r.uint(sizeBytes)
	if err != nil {
		return nil, err
	}
	rootCount, err := r.uint(sizeBytes)
	if err != nil {
		return nil, err
	}
	if _, err := r.uint(sizeBytes); err != nil { // Absent
		return nil, err
	}
	if _, err := r.uint(offBytes); err != nil { // Total size
		return nil, err
	}

	// Every cell takes at least its two descriptor bytes and every root its
	// index, so counts beyond what is left cannot be satisfied
	left := uint64(len(r.buf) - r.pos)
	if rootCount > left/uint64(sizeBytes) || count > left/2 {
		return nil, errors.Truncated.WithFormat("bag of cells declares %d cells and %d roots in %d bytes", count, rootCount, left)
	}
	if rootCount > count {
		return nil, errors.InvalidTag.WithFormat("%d roots but only %d cells", rootCount, count)
	}

	rootIndices := make([]int, rootCount)
	for i := range rootIndices {
		v, err := r.uint(sizeBytes)
		if err != nil {
			return nil, err
		}
		if v >= count {
			return nil, errors.InvalidTag.WithFormat("root index %d out of range", v)
		}
		rootIndices[i] = int(v)
	}

	if hasIndex {
		if _, err := r.bytes(int(count) * offBytes); err != nil {
			return nil, err
		}
	}

	raw := make([]rawCell, 0, count)
	for i := 0; i < int(count); i++ {
		c, err := readRawCell(r, i, int(count), sizeBytes)
		if err != nil {
			return nil, errors.UnknownError.WithCauseAndFormat(err, "cell %d", i)
		}
		raw = append(raw, *c)
	}

	// Children always follow their parents, so build from the end
	cells := make([]*Cell, count)
	for i := len(raw) - 1; i >= 0; i-- {
		refs := make([]*Cell, len(raw[i].refs))
		for j, k := range raw[i].refs {
			refs[j] = cells[k]
			if refs[j].depth+1 > MaxDepth {
				return nil, errors.ValidationError.WithFormat("cell tree exceeds the maximum depth of %d", MaxDepth)
			}
		}
		cells[i] = newCell(raw[i].bits, raw[i].data, refs)
	}

	roots := make([]*Cell, len(rootIndices))
	for i, j := range rootIndices {
		roots[i] = cells[j]
	}
	return roots, nil
}

func readRawCell(r *bocReader, i, count, sizeBytes int) (*rawCell, error) {
	d, err := r.bytes(2)
	if err != nil {
		return nil, err
	}
	d1, d2 := d[0], d[1]
	refCount := int(d1 & 0x07)
	switch {
	case d1&0x08 != 0:
		return nil, errors.InvalidTag.With("exotic cells are not supported")
	case d1>>5 != 0:
		return nil, errors.InvalidTag.With("cells with a non-zero level are not supported")
	case refCount > MaxRefs:
		return nil, errors.InvalidTag.WithFormat("invalid reference count %d", refCount)
	}

	n := (int(d2) + 1) / 2
	data, err := r.bytes(n)
	if err != nil {
		return nil, err
	}

	c := new(rawCell)
	c.data = make([]byte, n)
	copy(c.data, data)
	c.bits = uint(n) * 8
	if d2%2 == 1 {
		// The last byte carries a completion tag
		last := c.data[n-1]
		if last == 0 {
			return nil, errors.InvalidTag.With("missing completion tag")
		}
		tz := uint(bits.TrailingZeros8(last))
		c.bits -= tz + 1
		c.data[n-1] &^= 1 << tz
	}

	for j := 0; j < refCount; j++ {
		v, err := r.uint(sizeBytes)
		if err != nil {
			return nil, err
		}
		if int(v) <= i || int(v) >= count {
			return nil, errors.InvalidTag.WithFormat("invalid reference to cell %d", v)
		}
		c.refs = append(c.refs, int(v))
	}
	return c, nil
}
