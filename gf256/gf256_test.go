// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gf256

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var qrField = NewField(0x11d, 2)

func TestFieldTables(t *testing.T) {
	f := qrField
	assert.Equal(t, byte(1), f.Exp(0))
	assert.Equal(t, byte(2), f.Exp(1))
	assert.Equal(t, byte(0x1d), f.Exp(8))
	assert.Equal(t, f.Exp(3), f.Exp(258))
	assert.Equal(t, -1, f.Log(0))
	for x := 1; x < 256; x++ {
		b := byte(x)
		require.Equal(t, b, f.Exp(f.Log(b)), "exp(log(%#x))", x)
		require.Equal(t, byte(1), f.Mul(b, f.Inv(b)), "%#x * inv", x)
		require.Equal(t, byte(0), f.Mul(b, 0))
	}
	assert.Equal(t, byte(29), f.Mul(2, 0x80))
	assert.Equal(t, byte(143), f.Mul(0x53, 0xca))
}

func TestInvalidField(t *testing.T) {
	assert.Panics(t, func() { NewField(0x100|0x11, 2) }) // x^8+x^4+1 is reducible
	assert.Panics(t, func() { NewField(0x11d, 1) })
	assert.Panics(t, func() { NewField(0xff, 2) })
}

func TestGenerator(t *testing.T) {
	// exponents of the 7-byte QR generator polynomial coefficients
	want := []int{0, 87, 229, 146, 149, 238, 102, 21}
	g := qrField.Generator(7)
	require.Len(t, g, len(want))
	for i, c := range g {
		assert.Equal(t, want[i], qrField.Log(c), "coefficient %d", i)
	}
}

func TestECC(t *testing.T) {
	tests := []struct {
		name  string
		data  []byte
		check []byte
	}{
		{
			name: "1-M HELLO WORLD",
			data: []byte{32, 91, 11, 120, 209, 114, 220, 77,
				67, 64, 236, 17, 236, 17, 236, 17},
			check: []byte{196, 35, 39, 119, 235, 215, 231, 226, 93, 23},
		},
		{
			name: "1-M 01234567",
			data: []byte{0x10, 0x20, 0x0c, 0x56, 0x61, 0x80, 0xec, 0x11,
				0xec, 0x11, 0xec, 0x11, 0xec, 0x11, 0xec, 0x11},
			check: []byte{165, 36, 212, 193, 237, 54, 199, 135, 44, 85},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := NewRSEncoder(qrField, len(tt.check))
			got := make([]byte, rs.Check())
			rs.ECC(tt.data, got)
			assert.Equal(t, tt.check, got)
		})
	}
}

func TestECCZero(t *testing.T) {
	for _, n := range []int{1, 13, 100} {
		for _, c := range []int{7, 10, 30} {
			rs := NewRSEncoder(qrField, c)
			check := make([]byte, c)
			for i := range check {
				check[i] = 0xaa // must be overwritten
			}
			rs.ECC(make([]byte, n), check)
			assert.Equal(t, make([]byte, c), check, "n=%d c=%d", n, c)
		}
	}
}

func BenchmarkECC(b *testing.B) {
	data := []byte{0x10, 0x20, 0x0c, 0x56, 0x61, 0x80, 0xec, 0x11, 0xec, 0x11, 0xec, 0x11, 0xec, 0x11, 0xec, 0x11}
	check := []byte{0x29, 0x41, 0xb3, 0x93, 0x8, 0xe8, 0xa9, 0xfa}
	rs := NewRSEncoder(qrField, len(check))
	out := make([]byte, len(check))
	b.SetBytes(int64(len(data)))
	for i := 0; i < b.N; i++ {
		rs.ECC(data, out)
	}
}
