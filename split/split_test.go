// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package split

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qrexgo/qr/coding"
)

type seg struct {
	mode coding.Mode
	text string
}

func flatten(segs []coding.Segment) []seg {
	var r []seg
	for _, s := range segs {
		r = append(r, seg{s.Mode, s.Text})
	}
	return r
}

func TestRawSplit(t *testing.T) {
	for _, tc := range []struct {
		in   string
		sjis coding.ShiftJISFunc
		want []seg
	}{
		{"", nil, nil},
		{"0123456789", nil, []seg{{coding.Numeric, "0123456789"}}},
		{"ABC123", nil, []seg{
			{coding.Alphanumeric, "ABC"}, {coding.Numeric, "123"},
		}},
		{"abc", nil, []seg{{coding.Byte, "abc"}}},
		{"点茗", nil, []seg{{coding.Byte, "点茗"}}},
		{"点茗", coding.ShiftJIS, []seg{{coding.Kanji, "点茗"}}},
		{"a点", coding.ShiftJIS, []seg{
			{coding.Byte, "a"}, {coding.Kanji, "点"},
		}},
		{"\xff\xfe1", nil, []seg{
			{coding.Byte, "\xff\xfe"}, {coding.Numeric, "1"},
		}},
	} {
		assert.Equal(t, tc.want, flatten(RawSplit(tc.in, tc.sjis)), "%q", tc.in)
	}
}

func TestSplit(t *testing.T) {
	for _, tc := range []struct {
		in   string
		v    coding.Version
		sjis coding.ShiftJISFunc
		want []seg
	}{
		{"HELLO WORLD", 1, nil, []seg{{coding.Alphanumeric, "HELLO WORLD"}}},
		{"01234567", 1, nil, []seg{{coding.Numeric, "01234567"}}},
		{"ABC123abc", 1, nil, []seg{
			{coding.Alphanumeric, "ABC123"}, {coding.Byte, "abc"},
		}},
		// a long run of digits pays for its own header
		{"A01234567890123B", 1, nil, []seg{
			{coding.Alphanumeric, "A"},
			{coding.Numeric, "01234567890123"},
			{coding.Alphanumeric, "B"},
		}},
		{"a1", 1, nil, []seg{{coding.Byte, "a1"}}},
		// 44 bits either way; the first mode found wins
		{"111a", 1, nil, []seg{
			{coding.Numeric, "111"}, {coding.Byte, "a"},
		}},
		{"点茗: 42", 1, coding.ShiftJIS, []seg{
			{coding.Kanji, "点茗"}, {coding.Alphanumeric, ": 42"},
		}},
		{"点茗: 42", 1, nil, []seg{{coding.Byte, "点茗: 42"}}},
	} {
		assert.Equal(t, tc.want, flatten(Split(tc.in, tc.v, tc.sjis)),
			"%q version %d", tc.in, tc.v)
	}
}

// bruteForce returns the smallest encoded length of text over every
// assignment of modes to spans.
func bruteForce(text string, v coding.Version, sjis coding.ShiftJISFunc) int {
	sp := spans(text, sjis)
	var rec func(i int, mode coding.Mode, d segdata, acc int) int
	rec = func(i int, mode coding.Mode, d segdata, acc int) int {
		if i == len(sp) {
			return acc + mode.Length(d.count(mode), v)
		}
		best := -1
		for _, s := range sp[i].seg[:sp[i].nseg] {
			var n int
			if s.mode == mode {
				n = rec(i+1, mode, segdata{
					len:  d.len + sp[i].len,
					rlen: d.rlen + sp[i].rlen,
				}, acc)
			} else {
				a := acc
				if i != 0 {
					a += mode.Length(d.count(mode), v)
				}
				n = rec(i+1, s.mode, segdata{
					len:  sp[i].len,
					rlen: sp[i].rlen,
				}, a)
			}
			if best < 0 || n < best {
				best = n
			}
		}
		return best
	}
	return rec(0, -1, segdata{}, 0)
}

func TestSplitOptimal(t *testing.T) {
	alphabet := []string{"1", "A", "a", "点"}
	var gen func(prefix string, n int, f func(string))
	gen = func(prefix string, n int, f func(string)) {
		if n == 0 {
			f(prefix)
			return
		}
		for _, c := range alphabet {
			gen(prefix+c, n-1, f)
		}
	}
	for _, v := range []coding.Version{1, 10, 27} {
		for n := 1; n <= 5; n++ {
			gen("", n, func(s string) {
				for _, sjis := range []coding.ShiftJISFunc{nil, coding.ShiftJIS} {
					segs, bits := split(s, v, sjis)
					var b strings.Builder
					for _, seg := range segs {
						b.WriteString(seg.Text)
					}
					require.Equal(t, s, b.String())
					require.Equal(t, bits, Length(segs, v), "%q", s)
					require.Equal(t, bruteForce(s, v, sjis), bits,
						"%q version %d", s, v)
				}
			})
		}
	}
}

func TestBestVersion(t *testing.T) {
	v, ok := BestVersion(Split("HELLO WORLD", 1, nil), coding.Q)
	assert.True(t, ok)
	assert.Equal(t, coding.Version(1), v)

	// 178 bits plus terminator exceed the 128 bits of 1-M
	v, ok = BestVersion(Split(strings.Repeat("A", 30), 1, nil), coding.M)
	assert.True(t, ok)
	assert.Equal(t, coding.Version(2), v)

	_, ok = BestVersion(Split(strings.Repeat("a", 3000), 40, nil), coding.H)
	assert.False(t, ok)

	v, ok = BestVersion(nil, coding.H)
	assert.True(t, ok)
	assert.Equal(t, coding.Version(1), v)
}

func TestBestVersionLinear(t *testing.T) {
	for _, l := range []coding.Level{coding.L, coding.M, coding.Q, coding.H} {
		for n := 0; n < 3000; n += 97 {
			segs := RawSplit(strings.Repeat("a1", n), nil)
			want := coding.Version(0)
			for v := coding.MinVersion; v <= coding.MaxVersion; v++ {
				if Length(segs, v)+terminator <= v.DataBits(l) {
					want = v
					break
				}
			}
			v, ok := BestVersion(segs, l)
			assert.Equal(t, want != 0, ok, "level %s, %d", l, n)
			assert.Equal(t, want, v, "level %s, %d", l, n)
		}
	}
}

func TestLatin1(t *testing.T) {
	s, ok := Latin1("café")
	assert.True(t, ok)
	assert.Equal(t, "caf\xe9", s)

	_, ok = Latin1("点")
	assert.False(t, ok)
}
