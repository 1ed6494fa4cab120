// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"fmt"
	"strconv"
)

// A Mask is a QR data mask pattern number, 0 to 7.
type Mask int

// MaxMask is the highest mask pattern number.
const MaxMask Mask = 7

// Valid reports whether k is between 0 and MaxMask.
func (k Mask) Valid() bool { return 0 <= k && k <= MaxMask }

func (k Mask) String() string { return strconv.Itoa(int(k)) }

// ParseMask parses a decimal mask pattern number.
func ParseMask(s string) (Mask, error) {
	n, err := strconv.Atoi(s)
	if k := Mask(n); err == nil && k.Valid() {
		return k, nil
	}
	return 0, fmt.Errorf("%w %q", ErrMask, s)
}

// Mask patterns (i is the row, j the column):
//
//	0: ▀▄▀▄▀▄▀▄▀▄▀▄  1: ▀▀▀▀▀▀▀▀▀▀▀▀  2: █  █  █  █    3: ▀ ▄▀ ▄▀ ▄▀ ▄
//	   ▀▄▀▄▀▄▀▄▀▄▀▄     ▀▀▀▀▀▀▀▀▀▀▀▀     █  █  █  █       ▄▀ ▄▀ ▄▀ ▄▀
//	   ▀▄▀▄▀▄▀▄▀▄▀▄     ▀▀▀▀▀▀▀▀▀▀▀▀     █  █  █  █        ▄▀ ▄▀ ▄▀ ▄▀
//
//	4: ███   ███     5: █▀▀▀▀▀█▀▀▀▀▀  6: ███▀▀▀███▀▀▀  7: ▀ ▀▄█▄▀ ▀▄█▄
//	      ███   ███     █ ▄▀▄ █ ▄▀▄      █▀▄▀█ █▀▄▀█      ▀▄ ▄▀█▀▄ ▄▀█
//	   ███   ███        █  ▀  █  ▀       █ ▀▀▄██ ▀▀▄█     ▀██▄  ▀██▄
//
// Dark reports whether mask k inverts the module at row i, column j.
func (k Mask) Dark(i, j int) bool {
	switch k {
	case 0:
		return (i+j)%2 == 0
	case 1:
		return i%2 == 0
	case 2:
		return j%3 == 0
	case 3:
		return (i+j)%3 == 0
	case 4:
		return (i/2+j/3)%2 == 0
	case 5:
		return i*j%2+i*j%3 == 0
	case 6:
		return (i*j%2+i*j%3)%2 == 0
	case 7:
		return (i*j%3+(i+j)%2)%2 == 0
	}
	panic("qr: invalid mask " + k.String())
}

// ApplyMask inverts the unreserved modules selected by mask k.
// Applying the same mask twice restores the matrix.
func (m *Matrix) ApplyMask(k Mask) {
	for i := 0; i < m.size; i++ {
		for j := 0; j < m.size; j++ {
			if o := i*m.size + j; !m.reserved[o] && k.Dark(i, j) {
				m.modules[o] ^= 1
			}
		}
	}
}

// Penalty returns the penalty score of m used for choosing the mask.
//
// Total penalty is the sum of four rules:
//
//   - runs of n>=5 same-colour modules in a row or column -> n-2
//   - 2x2 boxes of same-colour modules, possibly overlapping -> 3
//   - the pattern 1:1:3:1:1 with 4 light modules on either side
//     in a row or column -> 40
//   - for a dark module share of n% -> 10*floor(abs(n-50)/5)
func Penalty(m *Matrix) int {
	return penaltyRuns(m) + penaltyBoxes(m) + penaltyFinders(m) +
		penaltyBalance(m)
}

func penaltyRuns(m *Matrix) int {
	const minRun = 5
	p := 0
	add := func(n int) {
		if n >= minRun {
			p += 3 + n - minRun
		}
	}
	for i := 0; i < m.size; i++ {
		rowRun, colRun := 0, 0
		var lastRow, lastCol byte = 2, 2
		for j := 0; j < m.size; j++ {
			if v := m.Get(i, j); v == lastRow {
				rowRun++
			} else {
				add(rowRun)
				lastRow, rowRun = v, 1
			}
			if v := m.Get(j, i); v == lastCol {
				colRun++
			} else {
				add(colRun)
				lastCol, colRun = v, 1
			}
		}
		add(rowRun)
		add(colRun)
	}
	return p
}

func penaltyBoxes(m *Matrix) int {
	n := 0
	for i := 0; i < m.size-1; i++ {
		for j := 0; j < m.size-1; j++ {
			s := m.Get(i, j) + m.Get(i, j+1) + m.Get(i+1, j) + m.Get(i+1, j+1)
			if s == 0 || s == 4 {
				n++
			}
		}
	}
	return n * 3
}

func penaltyFinders(m *Matrix) int {
	// last 11 modules, dark is 1
	const (
		findA = 0b1011101_0000 // quiet zone after
		findB = 0b0000_1011101 // quiet zone before
		mask  = 1<<11 - 1
	)
	n := 0
	for i := 0; i < m.size; i++ {
		var row, col uint16
		for j := 0; j < m.size; j++ {
			row = row<<1&mask | uint16(m.Get(i, j))
			col = col<<1&mask | uint16(m.Get(j, i))
			if j < 10 {
				continue
			}
			if row == findA || row == findB {
				n++
			}
			if col == findA || col == findB {
				n++
			}
		}
	}
	return n * 40
}

func penaltyBalance(m *Matrix) int {
	dark := 0
	for _, v := range m.modules {
		dark += int(v)
	}
	total := len(m.modules)
	// |100*dark/total - 50| / 5 == |20*dark - 10*total| / total
	d := 20*dark - 10*total
	if d < 0 {
		d = -d
	}
	return d / total * 10
}

// ChooseMask returns the mask giving m the lowest penalty.  m must
// hold the function patterns and data and no mask.  For each mask,
// format is called to write the format information into a masked copy
// of m before scoring.  Ties go to the lower mask number.  m is not
// modified.
func ChooseMask(m *Matrix, format func(*Matrix, Mask)) Mask {
	best, pen := Mask(0), -1
	for k := Mask(0); k <= MaxMask; k++ {
		c := m.Clone()
		c.ApplyMask(k)
		format(c, k)
		if p := Penalty(c); pen < 0 || p < pen {
			best, pen = k, p
		}
	}
	return best
}
