// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "math/bits"

// BCH generator polynomials and the format information mask.
const (
	formatPoly  = 0x537  // x^10 + x^8 + x^5 + x^4 + x^2 + x + 1
	versionPoly = 0x1f25 // x^12 + x^11 + x^10 + x^9 + x^8 + x^5 + x^2 + 1
	formatMask  = 0x5412
)

// bch returns value with its BCH check bits appended.
func bch(value, poly uint32) uint32 {
	n := bits.Len32(poly)
	r := value << (n - 1)
	for bits.Len32(r) >= n {
		r ^= poly << (bits.Len32(r) - n)
	}
	return value<<(n-1) | r
}

// FormatInfo returns the 15 bit format information for level l and
// mask k.
func FormatInfo(l Level, k Mask) uint32 {
	return bch(l.formatBits()<<3|uint32(k), formatPoly) ^ formatMask
}

// VersionInfo returns the 18 bit version information for v,
// or 0 if v has none.
func VersionInfo(v Version) uint32 {
	if v < 7 {
		return 0
	}
	return bch(uint32(v), versionPoly)
}

// AlignmentPositions returns the row and column coordinates of
// alignment pattern centres for v, in ascending order.  Version 1
// has none.
func AlignmentPositions(v Version) []int {
	if v < 2 {
		return nil
	}
	n := int(v)/7 + 2
	siz := v.Size()
	step := 26
	if siz != 145 {
		step = ((siz-13)+(2*n-2)-1)/(2*n-2)*2 // ceil, rounded up to even
	}
	pos := make([]int, n)
	pos[0] = 6
	for i := n - 1; i > 0; i-- {
		pos[i] = siz - 7 - (n-1-i)*step
	}
	return pos
}

// Layout writes the function patterns for v into m: finder, timing
// and alignment patterns, the reserved format area and version
// information.  m must be empty.
func (m *Matrix) Layout(v Version) {
	if m.size != v.Size() {
		panic("qr: matrix size mismatch")
	}
	m.placeFinders()
	m.placeTiming()
	m.placeAlignment(v)
	m.ReserveFormatInfo()
	m.placeVersionInfo(v)
}

// placeFinders stamps the three finder patterns with their
// separators, clipped at the edges.
func (m *Matrix) placeFinders() {
	siz := m.size
	for _, p := range [3][2]int{{0, 0}, {siz - 7, 0}, {0, siz - 7}} {
		for r := -1; r <= 7; r++ {
			if p[0]+r < 0 || p[0]+r >= siz {
				continue
			}
			for c := -1; c <= 7; c++ {
				if p[1]+c < 0 || p[1]+c >= siz {
					continue
				}
				dark := 0 <= r && r <= 6 && (c == 0 || c == 6) ||
					0 <= c && c <= 6 && (r == 0 || r == 6) ||
					2 <= r && r <= 4 && 2 <= c && c <= 4
				m.reserve(p[0]+r, p[1]+c, dark)
			}
		}
	}
}

// placeTiming draws the timing patterns along row and column 6.
func (m *Matrix) placeTiming() {
	for i := 8; i < m.size-8; i++ {
		dark := i&1 == 0
		m.reserve(i, 6, dark)
		m.reserve(6, i, dark)
	}
}

// placeAlignment stamps the alignment patterns, skipping the three
// positions overlapping finder patterns.
func (m *Matrix) placeAlignment(v Version) {
	pos := AlignmentPositions(v)
	last := len(pos) - 1
	for i, row := range pos {
		for j, col := range pos {
			if i == 0 && (j == 0 || j == last) || i == last && j == 0 {
				continue
			}
			for r := -2; r <= 2; r++ {
				for c := -2; c <= 2; c++ {
					dark := r == -2 || r == 2 || c == -2 || c == 2 ||
						r == 0 && c == 0
					m.reserve(row+r, col+c, dark)
				}
			}
		}
	}
}

// writeFormat writes the 15 bit format information fb twice, around
// the top left finder pattern and split between the other two.
func (m *Matrix) writeFormat(fb uint32) {
	siz := m.size
	for i := 0; i < 15; i++ {
		dark := fb>>i&1 != 0
		// vertical
		switch {
		case i < 6:
			m.reserve(i, 8, dark)
		case i < 8:
			m.reserve(i+1, 8, dark)
		default:
			m.reserve(siz-15+i, 8, dark)
		}
		// horizontal
		switch {
		case i < 8:
			m.reserve(8, siz-i-1, dark)
		case i < 9:
			m.reserve(8, 15-i, dark)
		default:
			m.reserve(8, 15-i-1, dark)
		}
	}
	// one lonely dark module
	m.reserve(siz-8, 8, true)
}

// ReserveFormatInfo marks the format information modules reserved,
// filling them with light placeholders.  It must be called before
// PlaceData and exactly once.
func (m *Matrix) ReserveFormatInfo() {
	if m.format != formatUnset {
		panic("qr: format information already reserved")
	}
	m.writeFormat(0)
	m.format = formatReserved
}

// CommitFormatInfo writes the final format information for level l
// and mask k into the reserved format modules.  It panics unless
// ReserveFormatInfo has been called and the format has not been
// committed yet.
func (m *Matrix) CommitFormatInfo(l Level, k Mask) {
	if m.format != formatReserved {
		panic("qr: format information not reserved")
	}
	m.writeFormat(FormatInfo(l, k))
	m.format = formatCommitted
}

// placeVersionInfo writes two copies of the version information as
// 6x3 and 3x6 blocks next to the top right and bottom left finder
// patterns.
func (m *Matrix) placeVersionInfo(v Version) {
	vb := VersionInfo(v)
	if vb == 0 {
		return
	}
	for i := 0; i < 18; i++ {
		row, col := i/3, i%3+m.size-11
		dark := vb>>i&1 != 0
		m.reserve(row, col, dark)
		m.reserve(col, row, dark)
	}
}

// PlaceData writes codewords MSB first into the unreserved modules in
// zigzag order: two-column strips from the right edge, alternately
// upwards and downwards, skipping the vertical timing pattern.
// Modules left over after the last codeword are light.
func (m *Matrix) PlaceData(codewords []byte) {
	if m.format == formatUnset {
		panic("qr: format information not reserved")
	}
	siz := m.size
	n := 0 // bit index
	row, inc := siz-1, -1
	for col := siz - 1; col > 0; col -= 2 {
		if col == 6 {
			col--
		}
		for {
			for c := 0; c < 2; c++ {
				if m.IsReserved(row, col-c) {
					continue
				}
				dark := false
				if i := n >> 3; i < len(codewords) {
					dark = codewords[i]>>(7&^n)&1 != 0
				}
				m.put(row, col-c, dark)
				n++
			}
			row += inc
			if row < 0 || row >= siz {
				row -= inc
				inc = -inc
				break
			}
		}
	}
}
