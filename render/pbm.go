// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"bufio"
	"encoding/binary"
	"io"
	"strconv"
)

// bitmap returns the modules of g packed MSB first, 1 for dark, each
// row padded to stride bytes.
func bitmap(g Grid) (bm []byte, stride int) {
	siz := g.Size()
	stride = (siz + 7) / 8
	bm = make([]byte, stride*siz)
	for y := 0; y < siz; y++ {
		row := bm[y*stride:]
		for x := 0; x < siz; x++ {
			if g.Black(x, y) {
				row[x/8] |= 0x80 >> (x & 7)
			}
		}
	}
	return bm, stride
}

// encodePBM writes a Portable Bit Map image for use with netpbm.
// Colours other than black and white are not supported.
func encodePBM(w io.Writer, g Grid, st *Style) error {
	b := bufio.NewWriter(w)
	siz := g.Size()
	scale := st.Scale
	bord := st.Margin
	length := scale * (siz + bord*2)
	ls := strconv.Itoa(length)
	if _, err := b.WriteString("P4\n" + ls + " " + ls + "\n"); err != nil {
		return err
	}
	row := make([]byte, (length+7)/8)
	var white byte
	if st.Reverse {
		white = 255
		for i := range row {
			row[i] = white
		}
	}
	for i := 0; i < scale*bord; i++ {
		if _, err := b.Write(row); err != nil {
			return err
		}
	}
	data := row[scale*bord/8 : (scale*(siz+bord)+7)/8]
	slen := scale * bord & 7
	bm, stride := bitmap(g)
	for len(bm) >= stride {
		srow := bm[:stride]
		bm = bm[stride:]
		switch {
		case scale == 8:
			pbmRow8(data, srow, white)
		case scale == 4:
			pbmRow4(data, srow, white, slen)
		case scale == 1 && slen|int(white) == 0:
			copy(data, srow)
		default:
			pbmRow(data, srow, scale, white, slen)
		}
		for i := 0; i < scale; i++ {
			if _, err := b.Write(row); err != nil {
				return err
			}
		}
	}
	if bord != 0 {
		for i := range data {
			data[i] = white
		}
		for i := 0; i < scale*bord; i++ {
			if _, err := b.Write(row); err != nil {
				return err
			}
		}
	}
	return b.Flush()
}

// pbmRow8 encodes a row of modules at scale 8.
func pbmRow8(row, srow []byte, white byte) {
	var b uint64
	for _, v := range srow {
		v ^= white
		for i := 0; i < 8; i++ {
			b = b<<8 | uint64(-(v & 1))
			v >>= 1
		}
		if len(row) < 8 {
			break
		}
		binary.LittleEndian.PutUint64(row, b)
		row = row[8:]
	}
	if len(row) > 4 {
		binary.LittleEndian.PutUint32(row, uint32(b))
		b >>= 32
		row = row[4:]
	}
	for i := range row {
		row[i] = byte(b)
		b >>= 8
	}
}

// pbmRow4 encodes a row of modules at scale 4 starting slen bits
// into the first byte.
func pbmRow4(row, srow []byte, white byte, slen int) {
	var b uint32
	var last uint16
	slen >>= 2
	for _, v := range srow {
		last |= uint16(v)
		b = uint32(byte(last>>slen)^white) * 01001001 & 0300070007 *
			0111 & 0x11111111 * 0xf
		last <<= 8
		if len(row) < 4 {
			break
		}
		binary.BigEndian.PutUint32(row, b)
		row = row[4:]
	}
	for i := range row {
		row[i] = byte(b >> 24)
		b <<= 8
	}
}

// pbmRow encodes a row of modules at any scale.
func pbmRow(row, srow []byte, scale int, white byte, slen int) {
	j := 0
	z := white
	if scale == 1 {
		for _, v := range srow {
			row[j] = z ^ v>>slen
			z = v<<(8-slen) ^ white
			j++
		}
		if j < len(row) {
			row[j] = z
		}
		return
	}
	nz := slen
	for _, v := range srow {
		v ^= white
		for i := 0; i < 8; i++ {
			bits := byte(int8(v) >> 7)
			v <<= 1
			shift := min(8-nz, scale)
			z = z<<shift | bits>>(8-shift)
			for nz += scale; nz >= 8; nz -= 8 {
				if j >= len(row) {
					return
				}
				row[j] = z
				z = bits
				j++
			}
		}
	}
}
