// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package split splits strings into QR code segments and selects the
QR code version.
*/
package split // import "github.com/qrexgo/qr/split"

import (
	"unicode/utf8"

	"github.com/qrexgo/qr/coding"
	"golang.org/x/text/encoding/charmap"
)

// Mode bits used to classify characters.
const (
	numMode   = 1 << coding.Numeric
	alphaMode = 1 << coding.Alphanumeric
	byteMode  = 1 << coding.Byte
	kanjiMode = 1 << coding.Kanji

	nu = numMode | alphaMode | byteMode // digit
	al = alphaMode | byteMode           // other alphanumeric
	by = byteMode                       // anything
	ka = kanjiMode | byteMode           // kanji
)

// classify returns a bit field of modes in which the first character
// in s is encodable, and its length in bytes.  Bytes that are not
// valid UTF-8 are single byte mode characters.
func classify(s string, sjis coding.ShiftJISFunc) (byte, int) {
	if c := s[0]; c < utf8.RuneSelf {
		switch {
		case coding.IsNumeric(rune(c)):
			return nu, 1
		case coding.IsAlphanumeric(rune(c)):
			return al, 1
		}
		return by, 1
	}
	r, sz := utf8.DecodeRuneInString(s)
	if sjis != nil && r != utf8.RuneError {
		if _, ok := coding.KanjiCode(r, sjis); ok {
			return ka, sz
		}
	}
	return by, sz
}

// narrowest returns the most specific mode in the bit field m.
func narrowest(m byte) coding.Mode {
	switch {
	case m&numMode != 0:
		return coding.Numeric
	case m&alphaMode != 0:
		return coding.Alphanumeric
	case m&kanjiMode != 0:
		return coding.Kanji
	}
	return coding.Byte
}

func newSegment(mode coding.Mode, text string, sjis coding.ShiftJISFunc) coding.Segment {
	seg, err := coding.NewSegment(mode, text, sjis)
	if err != nil {
		panic("qr: internal error: " + err.Error())
	}
	return seg
}

// RawSplit splits text into one segment per maximal run of characters
// sharing the most specific mode they are encodable in.  It is cheap
// and version independent, but not optimal; it serves for estimating
// the version.  Kanji mode is only used if sjis is not nil.
func RawSplit(text string, sjis coding.ShiftJISFunc) []coding.Segment {
	var segs []coding.Segment
	start, mode := 0, coding.Mode(-1)
	for i := 0; i < len(text); {
		m, sz := classify(text[i:], sjis)
		if mm := narrowest(m); mm != mode {
			if i != 0 {
				segs = append(segs, newSegment(mode, text[start:i], sjis))
			}
			start, mode = i, mm
		}
		i += sz
	}
	if len(text) != 0 {
		segs = append(segs, newSegment(mode, text[start:], sjis))
	}
	return segs
}

/*
Split types.

Split determines modes in which each character in the string is
encodable and creates a slice of spans, each span describing a
substring of characters encodable in the same modes.

It then creates a linked list of segments representing an optimal
split of the data.  A segment contains its mode, length in bytes and
characters, total encoded length in bits of the string from this
segment to the end, and a link to the next segment.

The split is calculated by walking the spans backwards.  For each span
n, for each mode m, a segment (n,m) is created representing an optimal
split for the string from span n to the end, starting with mode m.

The segment (n,m) is created thusly.  For each mode mm in which span
n+1 is encodable, a segment (n,m,mm) linking to (n+1,mm) is created.
If m=mm, the segments are merged.  The encoded length is calculated,
and the total encoded length of the next segment is added to it.  Of
these segments, the one with the smallest total encoded length is
chosen as (n,m), the first one in mode order on ties.

When the beginning of the span slice is reached, a segment (0,m) with
the smallest total encoded length for any m describes an optimal split
for the whole string.
*/
type (
	// segment describes a segment encoded in a certain mode.
	segment struct {
		mode coding.Mode // encoding mode
		segdata
	}

	// segdata is the mutable portion of segment.
	segdata struct {
		next *segment // link to next segment in the chain
		len  int      // length of string in bytes
		rlen int      // length of string in characters
		bits int      // encoded size of all segments in the chain
	}

	// span describes a span of bytes encodable in the same modes.
	span struct {
		len  int        // length of string in bytes
		rlen int        // length of string in characters
		nseg int        // number of valid entries in seg
		seg  [4]segment // segments in mode order
	}
)

// count returns the character count of d in mode.
func (d *segdata) count(mode coding.Mode) int {
	if mode == coding.Kanji {
		return d.rlen
	}
	return d.len
}

func (d *segdata) setBits(mode coding.Mode, v coding.Version) {
	d.bits = mode.Length(d.count(mode), v)
	if d.next != nil {
		d.bits += d.next.bits
	}
}

// add adds sp to the split before next, returning a pointer to the
// segment with the smallest encoded length.
func (sp *span) add(next *span, v coding.Version) *segment {
	var best *segment
	for j := range sp.seg[:sp.nseg] {
		seg := &sp.seg[j]
		c := segdata{len: sp.len, rlen: sp.rlen}
		c.setBits(seg.mode, v)
		seg.segdata = c
		if next != nil {
			seg.bits = -1
			for k := range next.seg[:next.nseg] {
				c := segdata{len: sp.len, rlen: sp.rlen, next: &next.seg[k]}
				if seg.mode == c.next.mode {
					c.len += c.next.len
					c.rlen += c.next.rlen
					c.next = c.next.next
				}
				c.setBits(seg.mode, v)
				if seg.bits < 0 || c.bits < seg.bits {
					seg.segdata = c
				}
			}
		}
		if best == nil || seg.bits < best.bits {
			best = seg
		}
	}
	return best
}

// spans scans text and returns its spans.
func spans(text string, sjis coding.ShiftJISFunc) []span {
	var sp []span
	var old byte
	for i := 0; i < len(text); {
		m, sz := classify(text[i:], sjis)
		if m != old || len(sp) == 0 {
			sp = append(sp, span{})
			s := &sp[len(sp)-1]
			for mode := coding.Numeric; mode <= coding.Kanji; mode++ {
				if m&(1<<mode) != 0 {
					s.seg[s.nseg].mode = mode
					s.nseg++
				}
			}
			old = m
		}
		s := &sp[len(sp)-1]
		s.len += sz
		s.rlen++
		i += sz
	}
	return sp
}

// Split returns an optimal split of text into segments for QR
// version v: one whose total encoded length is minimal among splits
// at character class boundaries.  Kanji mode is only used if sjis is
// not nil; otherwise kanji are encoded in byte mode as UTF-8.
func Split(text string, v coding.Version, sjis coding.ShiftJISFunc) []coding.Segment {
	segs, _ := split(text, v, sjis)
	return segs
}

// split returns an optimal split and its encoded length.
func split(text string, v coding.Version, sjis coding.ShiftJISFunc) ([]coding.Segment, int) {
	sp := spans(text, sjis)
	if len(sp) == 0 {
		return nil, 0
	}
	// process spans in reverse order
	var head *segment
	var next *span
	for i := len(sp) - 1; i >= 0; i-- {
		head = sp[i].add(next, v)
		next = &sp[i]
	}
	var segs []coding.Segment
	bits := head.bits
	for seg, s := head, text; seg != nil; seg = seg.next {
		segs = append(segs, newSegment(seg.mode, s[:seg.len], sjis))
		s = s[seg.len:]
	}
	return segs, bits
}

// Length returns the total encoded length in bits of segs in version v.
func Length(segs []coding.Segment, v coding.Version) int {
	n := 0
	for _, s := range segs {
		n += s.EncodedLength(v)
	}
	return n
}

// terminator is the length of the terminator that must fit after
// the data.
const terminator = 4

var sizeClass = [3]struct{ min, max coding.Version }{
	{1, 9}, {10, 26}, {27, 40},
}

// BestVersion returns the smallest QR version whose data capacity at
// level l holds segs and the terminator.  It reports false if no
// version does.
func BestVersion(segs []coding.Segment, l coding.Level) (coding.Version, bool) {
	for _, sc := range sizeClass {
		// the length is constant within a size class
		bits := Length(segs, sc.min) + terminator
		if sc.max.DataBits(l) < bits {
			continue
		}
		v, max := sc.min, sc.max
		for v < max {
			if mid := (v + max) / 2; mid.DataBits(l) < bits {
				v = mid + 1
			} else {
				max = mid
			}
		}
		return v, true
	}
	return 0, false
}

// Latin1 returns text converted to ISO 8859-1.  It reports false if
// text contains characters outside ISO 8859-1.
func Latin1(text string) (string, bool) {
	s, err := charmap.ISO8859_1.NewEncoder().String(text)
	return s, err == nil
}
