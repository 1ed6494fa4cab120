// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"fmt"
	"sync"

	"github.com/qrexgo/qr/gf256"
)

// AddPadding adds the terminator and pad codewords to b, filling the
// data capacity of a QR code with the given version and level.
func (b *Bits) AddPadding(v Version, l Level) error {
	n := v.DataBits(l)
	if b.nbit > n {
		return fmt.Errorf("%w: cannot encode %d bits into %d-bit code",
			ErrCapacity, b.nbit, n)
	}
	if b.nbit+4 <= n {
		b.Write(0, 4) // terminator
	}
	b.Align()
	for pad := byte(0xec); len(b.b) < n/8; pad ^= 0xec ^ 0x11 {
		b.b = append(b.b, pad)
	}
	b.nbit = len(b.b) * 8
	return nil
}

// A Block is a run of data codewords and its error correction
// codewords.
type Block struct {
	Data []byte
	EC   []byte
}

// Reed-Solomon encoders by number of error correction codewords,
// created the first time they are used.
var encoders [31]struct {
	once sync.Once
	rs   *gf256.RSEncoder
}

// rsEncoder returns the shared encoder for c check bytes.
func rsEncoder(c int) *gf256.RSEncoder {
	e := &encoders[c]
	e.once.Do(func() { e.rs = gf256.NewRSEncoder(Field, c) })
	return e.rs
}

// MakeBlocks splits data into error correction blocks for the given
// version and level and computes their error correction codewords.
// The length of data must be v.DataBytes(l).  The first blocks hold
// len(data)/n codewords each, the last TotalCodewords%n blocks one
// more.
func MakeBlocks(data []byte, v Version, l Level) []Block {
	if len(data) != v.DataBytes(l) {
		panic("qr: wrong data length")
	}
	lev := vtab[v].level[l]
	long := v.TotalCodewords() % lev.nblock
	short := lev.nblock - long
	db := len(data) / lev.nblock
	rs := rsEncoder(lev.check)
	blocks := make([]Block, lev.nblock)
	for i := range blocks {
		n := db
		if i >= short {
			n++
		}
		blk := &blocks[i]
		blk.Data, data = data[:n:n], data[n:]
		blk.EC = make([]byte, lev.check)
		rs.ECC(blk.Data, blk.EC)
	}
	return blocks
}

// Interleave returns the final codeword sequence: the data codewords
// of all blocks taken column by column, followed by the error
// correction codewords in the same order.
func Interleave(blocks []Block) []byte {
	var nd, ne, maxd, maxe int
	for _, blk := range blocks {
		nd += len(blk.Data)
		ne += len(blk.EC)
		maxd = max(maxd, len(blk.Data))
		maxe = max(maxe, len(blk.EC))
	}
	out := make([]byte, 0, nd+ne)
	for i := 0; i < maxd; i++ {
		for _, blk := range blocks {
			if i < len(blk.Data) {
				out = append(out, blk.Data[i])
			}
		}
	}
	for i := 0; i < maxe; i++ {
		for _, blk := range blocks {
			if i < len(blk.EC) {
				out = append(out, blk.EC[i])
			}
		}
	}
	return out
}

// Codewords adds padding to b and returns the interleaved data and
// error correction codewords for a QR code with the given version and
// level.
func Codewords(b *Bits, v Version, l Level) ([]byte, error) {
	if err := b.AddPadding(v, l); err != nil {
		return nil, err
	}
	out := Interleave(MakeBlocks(b.Bytes(), v, l))
	if len(out) != v.TotalCodewords() {
		panic("qr: internal error")
	}
	return out, nil
}
