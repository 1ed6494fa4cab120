// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package qr encodes QR codes.

Encode splits the content into segments, picks the smallest version
holding them at the requested error correction level, and returns
the masked symbol:

	s, err := qr.Encode("HELLO WORLD", qr.WithLevel(qr.Q))

Package render draws symbols.
*/
package qr // import "github.com/qrexgo/qr"

import (
	"go.uber.org/zap"

	"github.com/qrexgo/qr/coding"
	"github.com/qrexgo/qr/split"
)

// Error categories.  Errors returned by Encode wrap one of them; use
// errors.Is to test.
var (
	ErrInvalidInput     = coding.ErrInvalid
	ErrCapacityExceeded = coding.ErrCapacity
	ErrUnsupported      = coding.ErrUnsupported
)

type (
	// A Level denotes a QR error correction level.
	Level = coding.Level
	// A Version denotes a QR version.
	Version = coding.Version
	// A Mask denotes a QR mask pattern.
	Mask = coding.Mask
)

// Error correction levels, from least to most tolerant of errors.
const (
	L = coding.L // 7% of codewords can be restored
	M = coding.M // 15%
	Q = coding.Q // 25%
	H = coding.H // 30%
)

// A Symbol is an encoded QR code.
type Symbol struct {
	Modules  *coding.Matrix   // masked modules with format information
	Version  Version          // QR version
	Level    Level            // error correction level
	Mask     Mask             // mask pattern
	Segments []coding.Segment // segments the content was split into
}

// Size returns the number of modules on a side.
func (s *Symbol) Size() int { return s.Modules.Size() }

// Black reports whether the module at (x,y) is dark.
// Modules outside the symbol are light.
func (s *Symbol) Black(x, y int) bool { return s.Modules.IsDark(y, x) }

// Encode returns content encoded as a QR code.  The error correction
// level defaults to M; the version and mask are chosen automatically
// unless set with WithVersion and WithMask.  Kanji mode is only used
// if enabled with WithKanji or WithShiftJIS.
func Encode(content string, opts ...Option) (*Symbol, error) {
	if content == "" {
		return nil, coding.ErrEmpty
	}
	c := config{level: M, log: zap.NewNop()}
	for _, o := range opts {
		if err := o(&c); err != nil {
			return nil, err
		}
	}
	log := c.log

	// Split at the requested version, or at a version estimated
	// from a crude split.
	v := c.version
	if !c.hasVersion {
		est, ok := split.BestVersion(split.RawSplit(content, c.sjis), c.level)
		if !ok {
			est = coding.MaxVersion
		}
		log.Debug("estimated version",
			zap.Stringer("version", est), zap.Bool("fits", ok))
		v = est
	}
	segs := split.Split(content, v, c.sjis)

	best, ok := split.BestVersion(segs, c.level)
	switch {
	case !ok:
		return nil, &coding.CapacityError{Level: c.level, Version: c.version}
	case c.hasVersion && c.version < best:
		return nil, &coding.CapacityError{
			Level:    c.level,
			Version:  c.version,
			Required: best,
		}
	case c.hasVersion:
		best = c.version
	}
	log.Debug("split content",
		zap.Stringer("version", best), zap.Int("segments", len(segs)),
		zap.Int("bits", split.Length(segs, best)))

	e, err := coding.NewEncoder(best, c.level)
	if err != nil {
		return nil, err
	}
	if err := e.Write(segs...); err != nil {
		return nil, err
	}
	var code *coding.Code
	if c.hasMask {
		code, err = e.CodeWithMask(c.mask)
	} else {
		code, err = e.Code()
	}
	if err != nil {
		return nil, err
	}
	log.Debug("encoded",
		zap.Stringer("version", code.Version),
		zap.Stringer("level", code.Level),
		zap.Stringer("mask", code.Mask))
	return &Symbol{
		Modules:  code.Matrix,
		Version:  code.Version,
		Level:    code.Level,
		Mask:     code.Mask,
		Segments: segs,
	}, nil
}
