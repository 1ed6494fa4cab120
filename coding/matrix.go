// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// formatPhase tracks the format information protocol of a Matrix:
// format modules are reserved with placeholder values before data
// placement and committed once the mask is known.
type formatPhase uint8

const (
	formatUnset formatPhase = iota
	formatReserved
	formatCommitted
)

// A Matrix is a square grid of modules with a parallel grid of
// reserved flags marking function pattern modules.  Data placement
// and masking never touch reserved modules.
type Matrix struct {
	size     int
	modules  []byte // row major, 1 is dark, 0 is light
	reserved []bool
	format   formatPhase
}

// NewMatrix returns an empty light Matrix for a QR code of version v.
func NewMatrix(v Version) *Matrix {
	siz := v.Size()
	return &Matrix{
		size:     siz,
		modules:  make([]byte, siz*siz),
		reserved: make([]bool, siz*siz),
	}
}

// Size returns the number of modules on a side.
func (m *Matrix) Size() int { return m.size }

// Get returns the module at row and col: 1 if dark, 0 if light.
// Modules outside the grid are light.
func (m *Matrix) Get(row, col int) byte {
	if !m.inside(row, col) {
		return 0
	}
	return m.modules[row*m.size+col]
}

func (m *Matrix) inside(row, col int) bool {
	return 0 <= row && row < m.size && 0 <= col && col < m.size
}

// IsDark reports whether the module at row and col is dark.
// Modules outside the grid are light.
func (m *Matrix) IsDark(row, col int) bool {
	return m.Get(row, col) != 0
}

// IsReserved reports whether the module at row and col belongs to
// a function pattern.  Modules outside the grid are not reserved.
func (m *Matrix) IsReserved(row, col int) bool {
	return m.inside(row, col) && m.reserved[row*m.size+col]
}

// Data returns a copy of the modules in row major order,
// 1 for dark and 0 for light.
func (m *Matrix) Data() []byte {
	return append([]byte(nil), m.modules...)
}

// Clone returns a deep copy of m.
func (m *Matrix) Clone() *Matrix {
	c := *m
	c.modules = append([]byte(nil), m.modules...)
	c.reserved = append([]bool(nil), m.reserved...)
	return &c
}

// reserve sets a function pattern module and marks it reserved.
func (m *Matrix) reserve(row, col int, dark bool) {
	i := row*m.size + col
	m.modules[i] = b2u(dark)
	m.reserved[i] = true
}

// put sets a data module.  It panics if the module is reserved.
func (m *Matrix) put(row, col int, dark bool) {
	i := row*m.size + col
	if m.reserved[i] {
		panic("qr: write to reserved module")
	}
	m.modules[i] = b2u(dark)
}

func b2u(b bool) byte {
	if b {
		return 1
	}
	return 0
}
