// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/qrexgo/qr/coding"
)

type config struct {
	level      Level
	version    Version
	hasVersion bool
	mask       Mask
	hasMask    bool
	sjis       coding.ShiftJISFunc
	log        *zap.Logger
}

// An Option configures Encode.
type Option func(*config) error

// WithLevel sets the error correction level.
func WithLevel(l Level) Option {
	return func(c *config) error {
		if !l.Valid() {
			return fmt.Errorf("%w %d", coding.ErrLevel, l)
		}
		c.level = l
		return nil
	}
}

// WithVersion requests version v.  Encode fails if the content does
// not fit.
func WithVersion(v Version) Option {
	return func(c *config) error {
		if !v.Valid() {
			return fmt.Errorf("%w %d", coding.ErrVersion, v)
		}
		c.version, c.hasVersion = v, true
		return nil
	}
}

// WithMask requests mask pattern k instead of the one with the
// lowest penalty.
func WithMask(k Mask) Option {
	return func(c *config) error {
		if !k.Valid() {
			return fmt.Errorf("%w %d", coding.ErrMask, k)
		}
		c.mask, c.hasMask = k, true
		return nil
	}
}

// WithShiftJIS enables Kanji mode using f to convert runes to
// Shift JIS.
func WithShiftJIS(f coding.ShiftJISFunc) Option {
	return func(c *config) error {
		if f == nil {
			return coding.ErrShiftJIS
		}
		c.sjis = f
		return nil
	}
}

// WithKanji enables Kanji mode using coding.ShiftJIS.
func WithKanji() Option { return WithShiftJIS(coding.ShiftJIS) }

// WithLogger sets the logger for debug messages.  Encode logs
// nothing by default.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) error {
		if l == nil {
			l = zap.NewNop()
		}
		c.log = l
		return nil
	}
}
