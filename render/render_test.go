// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"bytes"
	"fmt"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qrexgo/qr"
	"github.com/qrexgo/qr/coding"
)

// grid is a Grid drawn with '#' for dark modules.
type grid []string

func (g grid) Size() int { return len(g) }

func (g grid) Black(x, y int) bool {
	return 0 <= y && y < len(g) && 0 <= x && x < len(g[y]) && g[y][x] == '#'
}

var small = grid{
	"#.#",
	".#.",
	"##.",
}

func TestParseFormat(t *testing.T) {
	for i, name := range Formats() {
		f, err := ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, Format(i), f)
		assert.Equal(t, name, f.String())
	}
	f, err := ParseFormat("SVG")
	require.NoError(t, err)
	assert.Equal(t, SVG, f)

	_, err = ParseFormat("gif")
	assert.ErrorIs(t, err, coding.ErrUnsupported)
	assert.Equal(t, "Format(99)", Format(99).String())
}

func TestRenderErrors(t *testing.T) {
	var b bytes.Buffer
	err := Render(&b, small, Format(99), nil)
	assert.ErrorIs(t, err, coding.ErrUnsupported)
	err = Render(&b, small, -1, nil)
	assert.ErrorIs(t, err, coding.ErrUnsupported)

	err = Render(&b, small, PNG, &Style{Scale: 0})
	assert.ErrorIs(t, err, coding.ErrInvalid)
	err = Render(&b, small, SVG, &Style{Scale: 1, Margin: -1})
	assert.ErrorIs(t, err, coding.ErrInvalid)
	err = Render(&b, small, PBM, &Style{Scale: maxPixels})
	assert.ErrorIs(t, err, coding.ErrInvalid)
	assert.Zero(t, b.Len())

	// scale is ignored for text
	assert.NoError(t, Render(&b, small, UTF8, &Style{}))
}

func TestUTF8(t *testing.T) {
	assert.Equal(t, "▀▄▀\n▀▀ \n", String(small, &Style{}))
	assert.Equal(t, "▄▀▄\n▄▄█\n", String(small, &Style{Reverse: true}))

	var b bytes.Buffer
	require.NoError(t, Render(&b, small, UTF8, &Style{Margin: 1}))
	assert.Equal(t, " ▄ ▄ \n ▄█  \n     \n", b.String())
}

func TestASCII(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, Render(&b, small, ASCII, &Style{Margin: 1}))
	assert.Equal(t, strings.Join([]string{
		"          ",
		"  ##  ##  ",
		"    ##    ",
		"  ####    ",
		"          ",
	}, "\n")+"\n", b.String())

	b.Reset()
	require.NoError(t, Render(&b, small, ASCII, &Style{Reverse: true}))
	assert.Equal(t, "  ##  \n##  ##\n    ##\n", b.String())
}

func TestTerminal(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, Render(&b, small, Terminal, &Style{}))
	setup := bgWhite + fgBlack
	want := setup +
		"▀▄▀" + reset + "\n" + setup +
		reset + fgBlack + "▀" + setup +
		reset + fgBlack + "▀" + setup +
		reset + fgWhite + "▀" + setup +
		reset + "\n" + setup + reset
	assert.Equal(t, want, b.String())
}

func TestSVG(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, Render(&b, small, SVG, &Style{Scale: 2, Margin: 1}))
	assert.Equal(t, `<svg xmlns="http://www.w3.org/2000/svg" `+
		`width="10" height="10" viewBox="0 0 5 5" `+
		`shape-rendering="crispEdges">`+
		`<path fill="#ffffff" d="M0 0h5v5H0z"/>`+
		`<path stroke="#000000" d="M1 1.5h1m1 0h1M2 2.5h1M1 3.5h2"/>`+
		"</svg>\n", b.String())

	b.Reset()
	require.NoError(t, Render(&b, small, SVG, &Style{
		Scale: 1,
		Dark:  color.NRGBA{0xff, 0x00, 0x00, 0x80},
		Light: color.NRGBA{},
	}))
	s := b.String()
	assert.NotContains(t, s, "fill=")
	assert.Contains(t, s, `stroke="#ff0000" stroke-opacity="0.50"`)
}

func TestEPS(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, Render(&b, small, EPS, &Style{Scale: 4, Margin: 4}))
	s := b.String()
	assert.True(t, strings.HasPrefix(s, "%!PS-Adobe-2.0 EPSF-2.0\n"))
	assert.Contains(t, s, "\n1 0 p 1 1 p r\n1 1 p r\n2 0 p r\n")
	assert.True(t, strings.HasSuffix(s, "%%Trailer\n"))
	assert.NotContains(t, s, "setrgbcolor")

	b.Reset()
	require.NoError(t, Render(&b, small, EPS, &Style{Scale: 4, Reverse: true}))
	assert.Contains(t, b.String(), "0 0 0 setrgbcolor\n1 0 rlineto stroke\ngrestore\n1 1 1 setrgbcolor\n")
}

// decodePBM returns the pixels of a P4 image, true for black.
func decodePBM(t *testing.T, p []byte) [][]bool {
	var w, h int
	n, err := fmt.Sscanf(string(p), "P4\n%d %d\n", &w, &h)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	hdr := len(fmt.Sprintf("P4\n%d %d\n", w, h))
	stride := (w + 7) / 8
	require.Len(t, p, hdr+stride*h)
	p = p[hdr:]
	img := make([][]bool, h)
	for y := range img {
		img[y] = make([]bool, w)
		for x := range img[y] {
			img[y][x] = p[y*stride+x/8]&(0x80>>(x&7)) != 0
		}
	}
	return img
}

// want reports whether the pixel at (x,y) of g drawn with st is dark.
func want(g Grid, st *Style, x, y int) bool {
	return g.Black(floorDiv(x, st.Scale)-st.Margin,
		floorDiv(y, st.Scale)-st.Margin) != st.Reverse
}

func TestPBM(t *testing.T) {
	s, err := qr.Encode("HELLO WORLD", qr.WithLevel(qr.Q))
	require.NoError(t, err)
	for _, g := range []Grid{small, s} {
		for scale := 1; scale <= 9; scale++ {
			for bord := 0; bord <= 4; bord++ {
				for _, rev := range []bool{false, true} {
					st := &Style{Scale: scale, Margin: bord, Reverse: rev}
					var b bytes.Buffer
					require.NoError(t, Render(&b, g, PBM, st))
					img := decodePBM(t, b.Bytes())
					d := (g.Size() + 2*bord) * scale
					require.Len(t, img, d)
					for y := range img {
						for x := range img[y] {
							if img[y][x] != want(g, st, x, y) {
								t.Fatalf("scale %d margin %d reverse %v: "+
									"pixel (%d,%d) differs", scale, bord, rev, x, y)
							}
						}
					}
				}
			}
		}
	}
}

func TestPNG(t *testing.T) {
	s, err := qr.Encode("HELLO WORLD")
	require.NoError(t, err)
	st := &Style{Scale: 3, Margin: 2}
	var b bytes.Buffer
	require.NoError(t, Render(&b, s, PNG, st))
	img, err := png.Decode(&b)
	require.NoError(t, err)
	d := (s.Size() + 4) * 3
	require.Equal(t, d, img.Bounds().Dx())
	require.Equal(t, d, img.Bounds().Dy())
	for y := 0; y < d; y++ {
		for x := 0; x < d; x++ {
			r, _, _, _ := img.At(x, y).RGBA()
			if (r == 0) != want(s, st, x, y) {
				t.Fatalf("pixel (%d,%d) differs", x, y)
			}
		}
	}
}

func TestImage(t *testing.T) {
	red := color.NRGBA{0xff, 0x00, 0x00, 0xff}
	img := Image(small, &Style{Scale: 2, Margin: 1, Light: red})
	assert.Equal(t, 10, img.Bounds().Dx())
	assert.Equal(t, uint8(0), img.ColorIndexAt(0, 0))
	assert.Equal(t, uint8(1), img.ColorIndexAt(2, 3))
	assert.Equal(t, uint8(0), img.ColorIndexAt(-5, -5))
	assert.Equal(t, color.Color(red), img.At(0, 0))
	assert.Equal(t, color.Color(color.NRGBA{0, 0, 0, 0xff}), img.At(3, 2))
}
