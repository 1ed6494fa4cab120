// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// Bits is an append-only bit buffer.  Values are written MSB first;
// the last byte holds Bits()%8 significant bits at the top.
type Bits struct {
	b    []byte
	nbit int
}

// NewBits returns Bits with enough capacity for the data codewords of
// a QR code of the given version and level.
func NewBits(v Version, l Level) *Bits {
	return &Bits{b: make([]byte, 0, v.DataBytes(l))}
}

// Reset empties b, keeping its buffer.
func (b *Bits) Reset() {
	b.b = b.b[:0]
	b.nbit = 0
}

// Bits returns the number of bits written.
func (b *Bits) Bits() int {
	return b.nbit
}

// Bytes returns the underlying buffer.  It panics unless the
// length of b is a multiple of 8 bits.
func (b *Bits) Bytes() []byte {
	if b.nbit%8 != 0 {
		panic("qr: fractional byte")
	}
	return b.b
}

// Write appends the nbit low bits of v, high bit first.
// nbit must be between 0 and 32.
func (b *Bits) Write(v uint32, nbit int) {
	if nbit < 0 || nbit > 32 {
		panic("qr: invalid bit count")
	}
	for nbit > 0 {
		free := -b.nbit & 7
		if free == 0 {
			b.b = append(b.b, 0)
			free = 8
		}
		n := min(free, nbit)
		chunk := byte(v >> (nbit - n) & (1<<n - 1))
		b.b[len(b.b)-1] |= chunk << (free - n)
		b.nbit += n
		nbit -= n
	}
}

// WriteBytes appends bytes, 8 bits each.
func (b *Bits) WriteBytes(p []byte) {
	if b.nbit&7 == 0 {
		b.b = append(b.b, p...)
		b.nbit += 8 * len(p)
		return
	}
	for _, c := range p {
		b.Write(uint32(c), 8)
	}
}

// Align pads b with zero bits up to the next byte boundary.
func (b *Bits) Align() {
	b.nbit = len(b.b) * 8
}
