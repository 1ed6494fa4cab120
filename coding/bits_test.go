// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitsWrite(t *testing.T) {
	var b Bits
	b.Write(0b0001, 4)
	assert.Equal(t, 4, b.Bits())
	b.Write(0b0000001000, 10)
	b.Write(0xffff_fffe, 2) // only the low 2 bits count
	assert.Equal(t, 16, b.Bits())
	assert.Equal(t, []byte{0x10, 0x22}, b.Bytes())

	b.Write(0xdeadbeef, 32)
	b.Write(1, 1)
	assert.Equal(t, 49, b.Bits())
	assert.Panics(t, func() { b.Bytes() })
	b.Align()
	assert.Equal(t, []byte{0x10, 0x22, 0xde, 0xad, 0xbe, 0xef, 0x80}, b.Bytes())

	b.Reset()
	assert.Equal(t, 0, b.Bits())
	assert.Empty(t, b.Bytes())
}

func TestBitsWriteBytes(t *testing.T) {
	var b Bits
	b.WriteBytes([]byte{0xa5})
	b.Write(0b101, 3)
	b.WriteBytes([]byte{0xff, 0x00})
	b.Align()
	assert.Equal(t, 32, b.Bits())
	assert.Equal(t, []byte{0xa5, 0xbf, 0xe0, 0x00}, b.Bytes())
}
