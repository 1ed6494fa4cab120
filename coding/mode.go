// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"fmt"
	"strconv"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
)

// A Mode is a QR segment encoding mode.
type Mode int

// Encoding modes.  When two modes yield the same encoded length,
// the one declared first is preferred.
const (
	Numeric      Mode = iota // digits 0-9
	Alphanumeric             // digits, A-Z and " $%*+-./:"
	Byte                     // any data, 8 bits per byte
	Kanji                    // Shift JIS double-byte characters
)

var modes = [...]struct {
	name      string
	indicator uint32 // 4 bit mode indicator
	count     [3]int // character count length per size class
}{
	Numeric:      {"numeric", 1, [3]int{10, 12, 14}},
	Alphanumeric: {"alphanumeric", 2, [3]int{9, 11, 13}},
	Byte:         {"byte", 4, [3]int{8, 16, 16}},
	Kanji:        {"kanji", 8, [3]int{8, 10, 12}},
}

// Valid reports whether mode is one of the four encoding modes.
func (mode Mode) Valid() bool { return Numeric <= mode && mode <= Kanji }

func (mode Mode) String() string {
	if mode.Valid() {
		return modes[mode].name
	}
	return strconv.Itoa(int(mode))
}

// Indicator returns the 4 bit mode indicator.
func (mode Mode) Indicator() uint32 { return modes[mode].indicator }

// CountLength returns the length in bits of the character count
// indicator for mode in version v.
func (mode Mode) CountLength(v Version) int {
	return modes[mode].count[v.SizeClass()]
}

// PayloadLength returns the encoded length in bits of n characters
// in mode, excluding the header.
func (mode Mode) PayloadLength(n int) int {
	switch mode {
	case Numeric:
		return (10*n + 2) / 3
	case Alphanumeric:
		return (11*n + 1) / 2
	case Kanji:
		return 13 * n
	}
	return 8 * n
}

// Length returns the encoded length in bits of n characters in mode
// in version v, including the mode and character count indicators.
func (mode Mode) Length(n int, v Version) int {
	return 4 + mode.CountLength(v) + mode.PayloadLength(n)
}

const alphamask uint64 = 0x07fffffe_07ffec31 // SPACE $% *+ -./ [0-9] : [A-Z]

// Alphanumeric encoding table indexed by the low 6 bits of the
// character.  Used after validation.
// "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"
var alpha = [64]byte{
	00, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, // 0x40
	25, 26, 27, 28, 29, 30, 31, 32, 33, 34, 35, 00, 00, 00, 00, 00, // 0x50
	36, 00, 00, 00, 37, 38, 00, 00, 00, 00, 39, 40, 00, 41, 42, 43, // 0x20
	00, 01, 02, 03, 04, 05, 06, 07, 010, 9, 44, 00, 00, 00, 00, 00, // 0x30
}

// IsNumeric reports whether r is encodable in Numeric mode.
func IsNumeric(r rune) bool { return uint32(r-'0') < 10 }

// IsAlphanumeric reports whether r is encodable in Alphanumeric mode.
func IsAlphanumeric(r rune) bool {
	return uint32(r) < 0x60 && alphamask>>(uint32(r)-' ')&1 != 0
}

// A ShiftJISFunc converts a character to its double-byte Shift JIS
// code.  It reports false if the character has none.
type ShiftJISFunc func(rune) (uint16, bool)

var sjisEncoders = sync.Pool{
	New: func() any { return japanese.ShiftJIS.NewEncoder() },
}

// ShiftJIS is a ShiftJISFunc using the Shift JIS encoder from
// golang.org/x/text/encoding/japanese.
func ShiftJIS(r rune) (uint16, bool) {
	e := sjisEncoders.Get().(*encoding.Encoder)
	s, err := e.String(string(r))
	sjisEncoders.Put(e)
	if err != nil || len(s) != 2 {
		return 0, false
	}
	return uint16(s[0])<<8 | uint16(s[1]), true
}

// kanjiTable lists the characters considered for Kanji mode before
// Shift JIS conversion: CJK punctuation, kana, ideographs, full-width
// forms, Greek and Cyrillic letters and a few symbols.
var kanjiTable = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x00a7, Hi: 0x00a8, Stride: 1},
		{Lo: 0x00b1, Hi: 0x00b4, Stride: 3},
		{Lo: 0x00d7, Hi: 0x00f7, Stride: 0x20},
		{Lo: 0x0391, Hi: 0x0451, Stride: 1},
		{Lo: 0x2010, Hi: 0x2015, Stride: 5},
		{Lo: 0x2018, Hi: 0x2019, Stride: 1},
		{Lo: 0x201c, Hi: 0x201d, Stride: 1},
		{Lo: 0x2025, Hi: 0x2026, Stride: 1},
		{Lo: 0x203b, Hi: 0x203b, Stride: 1},
		{Lo: 0x2190, Hi: 0x2195, Stride: 1},
		{Lo: 0x2225, Hi: 0x2225, Stride: 1},
		{Lo: 0x2260, Hi: 0x2260, Stride: 1},
		{Lo: 0x2605, Hi: 0x2606, Stride: 1},
		{Lo: 0x3000, Hi: 0x30ff, Stride: 1},
		{Lo: 0x4e00, Hi: 0x9faf, Stride: 1},
		{Lo: 0xff00, Hi: 0xffef, Stride: 1},
	},
}

// validKanji reports whether c lies in the Shift JIS ranges encodable
// in Kanji mode: 0x8140-0x9ffc and 0xe040-0xebbf, with a valid
// trailing byte.
func validKanji(c uint16) bool {
	hi, lo := c>>8, c&0xff
	if lo < 0x40 || lo == 0x7f || lo > 0xfc {
		return false
	}
	return 0x81 <= hi && hi <= 0x9f || 0xe0 <= hi && c <= 0xebbf
}

// KanjiCode returns the Shift JIS code of r for Kanji mode, converted
// with sjis.  It reports false if sjis is nil or r is not encodable
// in Kanji mode.
func KanjiCode(r rune, sjis ShiftJISFunc) (uint16, bool) {
	if sjis == nil || !unicode.Is(kanjiTable, r) {
		return 0, false
	}
	c, ok := sjis(r)
	if !ok || !validKanji(c) {
		return 0, false
	}
	return c, true
}

// A Segment describes a QR code segment: a run of text encoded in
// a single mode.  Kanji segments must be created using NewSegment.
type Segment struct {
	Mode Mode   // encoding mode
	Text string // source text, UTF-8 for Kanji

	codes []uint16 // Shift JIS codes for Kanji
}

// SegmentError represents text not encodable in its mode.
type SegmentError struct {
	Mode Mode
	Text string
}

func (e *SegmentError) Error() string {
	if e.Mode.Valid() {
		return fmt.Sprintf("qr: non-%s string %#q", e.Mode, e.Text)
	}
	return fmt.Sprintf("qr: invalid mode %d", e.Mode)
}

func (e *SegmentError) Unwrap() error { return ErrInvalid }

// NewSegment returns a segment encoding text in mode.  sjis is only
// used in Kanji mode, where it is required.
func NewSegment(mode Mode, text string, sjis ShiftJISFunc) (Segment, error) {
	seg := Segment{Mode: mode, Text: text}
	if mode == Kanji {
		seg.codes = make([]uint16, 0, len(text)/3)
		for _, r := range text {
			c, ok := KanjiCode(r, sjis)
			if !ok {
				return Segment{}, &SegmentError{mode, text}
			}
			seg.codes = append(seg.codes, c)
		}
	} else if !seg.valid() {
		return Segment{}, &SegmentError{mode, text}
	}
	return seg, nil
}

// valid reports whether the text is encodable in the segment's mode.
func (seg Segment) valid() bool {
	var is func(rune) bool
	switch seg.Mode {
	case Numeric:
		is = IsNumeric
	case Alphanumeric:
		is = IsAlphanumeric
	case Byte:
		return true
	case Kanji:
		return len(seg.codes) == utf8.RuneCountInString(seg.Text)
	default:
		return false
	}
	for i := 0; i < len(seg.Text); i++ {
		if !is(rune(seg.Text[i])) {
			return false
		}
	}
	return true
}

// Count returns the value of the character count indicator: the
// number of characters for Kanji, the number of bytes otherwise.
func (seg Segment) Count() int {
	if seg.Mode == Kanji {
		return utf8.RuneCountInString(seg.Text)
	}
	return len(seg.Text)
}

// EncodedLength returns the encoded length in bits of seg in the
// given QR version, including the header.  The segment is not
// validated.
func (seg Segment) EncodedLength(v Version) int {
	return seg.Mode.Length(seg.Count(), v)
}

// Encode writes seg encoded for the given QR version to b.
func (seg Segment) Encode(b *Bits, v Version) error {
	if !seg.valid() {
		return &SegmentError{seg.Mode, seg.Text}
	}
	n, cl := seg.Count(), seg.Mode.CountLength(v)
	if n >= 1<<cl {
		return fmt.Errorf("%w: %d %s characters in version %s",
			ErrCapacity, n, seg.Mode, v)
	}
	// write header
	b.Write(seg.Mode.Indicator(), 4)
	b.Write(uint32(n), cl)
	// encode the string
	s := seg.Text
	switch seg.Mode {
	case Numeric:
		for ; len(s) >= 3; s = s[3:] {
			b.Write(uint32(s[0]-'0')*100+uint32(s[1]-'0')*10+
				uint32(s[2]-'0'), 10)
		}
		switch len(s) {
		case 2:
			b.Write(uint32(s[0]-'0')*10+uint32(s[1]-'0'), 7)
		case 1:
			b.Write(uint32(s[0]-'0'), 4)
		}
	case Alphanumeric:
		for ; len(s) >= 2; s = s[2:] {
			b.Write(uint32(alpha[s[0]&0x3f])*45+
				uint32(alpha[s[1]&0x3f]), 11)
		}
		if len(s) == 1 {
			b.Write(uint32(alpha[s[0]&0x3f]), 6)
		}
	case Byte:
		b.WriteBytes([]byte(s))
	case Kanji:
		for _, c := range seg.codes {
			if c <= 0x9ffc {
				c -= 0x8140
			} else {
				c -= 0xc140
			}
			b.Write(uint32(c>>8)*0xc0+uint32(c&0xff), 13)
		}
	}
	return nil
}
