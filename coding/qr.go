// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coding implements low-level QR coding details: capacity
// tables, segment serialisation, error correction, module placement
// and masking.
package coding // import "github.com/qrexgo/qr/coding"

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/qrexgo/qr/gf256"
)

// Error categories.  Every error returned by this module wraps
// exactly one of them.
var (
	ErrInvalid     = errors.New("qr: invalid input")
	ErrCapacity    = errors.New("qr: capacity exceeded")
	ErrUnsupported = errors.New("qr: unsupported operation")
)

var (
	ErrLevel   = fmt.Errorf("%w: invalid level", ErrInvalid)
	ErrVersion = fmt.Errorf("%w: invalid version", ErrInvalid)
	ErrMask    = fmt.Errorf("%w: invalid mask", ErrInvalid)
	ErrEmpty   = fmt.Errorf("%w: empty content", ErrInvalid)

	ErrShiftJIS = fmt.Errorf("%w: nil Shift JIS function", ErrInvalid)
)

// Field is the field for QR error correction.
var Field = gf256.NewField(0x11d, 2)

// A Version represents a QR version.
// The version specifies the size of the QR code:
// a QR code with version v has 4v+17 modules on a side.
// The larger the version, the more information the code can store.
type Version int

// QR versions.
const (
	MinVersion Version = 1  // Minimum QR version
	MaxVersion Version = 40 // Maximum QR version
)

func (v Version) String() string { return strconv.Itoa(int(v)) }

// Valid reports whether v is between MinVersion and MaxVersion.
func (v Version) Valid() bool { return MinVersion <= v && v <= MaxVersion }

// QR version size classes.  The size class determines the
// length of the character count indicator.
const (
	Class0 = iota // QR versions 1 to 9
	Class1        // QR versions 10 to 26
	Class2        // QR versions 27 to 40
)

// SizeClass returns the size class of v, as documented under Class0.
func (v Version) SizeClass() int {
	if v <= 9 {
		return Class0
	}
	if v <= 26 {
		return Class1
	}
	return Class2
}

// Size returns the number of modules on a side of a code of
// version v.
func (v Version) Size() int { return int(v)*4 + 17 }

// TotalCodewords returns the number of data and error correction
// codewords in a code of version v.
func (v Version) TotalCodewords() int { return vtab[v].bytes }

// ECCodewords returns the number of error correction codewords in a
// code of version v with level l.
func (v Version) ECCodewords(l Level) int {
	lev := vtab[v].level[l]
	return lev.nblock * lev.check
}

// Blocks returns the number of error correction blocks
// in a code of version v with level l.
func (v Version) Blocks(l Level) int { return vtab[v].level[l].nblock }

// DataBytes returns the number of data codewords that can be
// stored in a QR code with the given version and level.
func (v Version) DataBytes(l Level) int {
	return v.TotalCodewords() - v.ECCodewords(l)
}

// DataBits returns the number of data bits that can be
// stored in a QR code with the given version and level.
func (v Version) DataBits(l Level) int { return v.DataBytes(l) * 8 }

// A Level represents a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
type Level int

const (
	L Level = iota // 7% of codewords can be restored
	M              // 15%
	Q              // 25%
	H              // 30%
)

func (l Level) String() string {
	if l.Valid() {
		return "LMQH"[l : l+1]
	}
	return strconv.Itoa(int(l))
}

// Valid reports whether l is one of L, M, Q and H.
func (l Level) Valid() bool { return L <= l && l <= H }

// formatBits returns the 2 bit level indicator used in format
// information.
func (l Level) formatBits() uint32 { return [4]uint32{1, 0, 3, 2}[l] }

// ParseLevel parses a level name: one of L, M, Q, H or low, medium,
// quartile, high, in any case.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "l", "low":
		return L, nil
	case "m", "medium":
		return M, nil
	case "q", "quartile":
		return Q, nil
	case "h", "high":
		return H, nil
	}
	return 0, fmt.Errorf("%w %q", ErrLevel, s)
}

// CapacityError reports data that does not fit into a code.
type CapacityError struct {
	Level    Level   // error correction level
	Version  Version // requested version, 0 if none was requested
	Required Version // minimum version holding the data, 0 if none
}

func (e *CapacityError) Error() string {
	if e.Required == 0 {
		return fmt.Sprintf("qr: data too big for any version at level %s",
			e.Level)
	}
	return fmt.Sprintf("qr: version %s cannot hold data at level %s; "+
		"minimum version required is %s", e.Version, e.Level, e.Required)
}

func (e *CapacityError) Unwrap() error { return ErrCapacity }
