// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "fmt"

// A Code is a finished QR code.
type Code struct {
	*Matrix
	Version Version // QR code version
	Level   Level   // error correction level
	Mask    Mask    // mask pattern
}

// Encoder encodes a QR code with a fixed version and level.
type Encoder struct {
	v Version
	l Level
	b *Bits
}

// NewEncoder returns an Encoder for the given version and level.
func NewEncoder(version Version, level Level) (*Encoder, error) {
	if !version.Valid() {
		return nil, fmt.Errorf("%w %d", ErrVersion, version)
	}
	if !level.Valid() {
		return nil, fmt.Errorf("%w %d", ErrLevel, level)
	}
	return &Encoder{v: version, l: level, b: NewBits(version, level)}, nil
}

// Write adds segments to e.
func (e *Encoder) Write(segs ...Segment) error {
	for _, s := range segs {
		if err := s.Encode(e.b, e.v); err != nil {
			return err
		}
	}
	return nil
}

// Bits returns the number of data bits written so far.
func (e *Encoder) Bits() int { return e.b.Bits() }

// Reset discards the data written to e.
func (e *Encoder) Reset() { e.b.Reset() }

// layout returns a matrix with function patterns and the
// codewords for the data written to e, unmasked.
func (e *Encoder) layout() (*Matrix, error) {
	cw, err := Codewords(e.b, e.v, e.l)
	if err != nil {
		return nil, err
	}
	m := NewMatrix(e.v)
	m.Layout(e.v)
	m.PlaceData(cw)
	return m, nil
}

// Code returns a QR code containing data written to e, masked with
// the mask pattern giving the lowest penalty.
func (e *Encoder) Code() (*Code, error) {
	m, err := e.layout()
	if err != nil {
		return nil, err
	}
	k := ChooseMask(m, func(c *Matrix, k Mask) {
		c.CommitFormatInfo(e.l, k)
	})
	return e.finish(m, k), nil
}

// CodeWithMask returns a QR code containing data written to e,
// masked with mask pattern k.
func (e *Encoder) CodeWithMask(k Mask) (*Code, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w %d", ErrMask, k)
	}
	m, err := e.layout()
	if err != nil {
		return nil, err
	}
	return e.finish(m, k), nil
}

func (e *Encoder) finish(m *Matrix, k Mask) *Code {
	m.ApplyMask(k)
	m.CommitFormatInfo(e.l, k)
	return &Code{Matrix: m, Version: e.v, Level: e.l, Mask: k}
}

// Encode encodes segments into a QR code with the given version and
// level, choosing the mask pattern.
func Encode(version Version, level Level, segs ...Segment) (*Code, error) {
	e, err := NewEncoder(version, level)
	if err != nil {
		return nil, err
	}
	if err := e.Write(segs...); err != nil {
		return nil, err
	}
	return e.Code()
}
