// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render draws QR codes as images and text.
package render // import "github.com/qrexgo/qr/render"

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/qrexgo/qr/coding"
)

// A Grid is a square grid of modules.  *qr.Symbol implements Grid.
type Grid interface {
	Size() int           // number of modules on a side
	Black(x, y int) bool // false outside the grid
}

// A Format is an output format.
type Format int

// Output formats.
const (
	PNG      Format = iota // PNG image
	PBM                    // Portable Bit Map
	EPS                    // Encapsulated PostScript
	SVG                    // SVG path
	UTF8                   // text using half block characters
	ASCII                  // text using '#' for dark modules
	Terminal               // half blocks with ANSI colour escapes
)

var formatNames = [...]string{
	PNG:      "png",
	PBM:      "pbm",
	EPS:      "eps",
	SVG:      "svg",
	UTF8:     "utf8",
	ASCII:    "ascii",
	Terminal: "terminal",
}

// Formats returns the names of all formats.
func Formats() []string { return append([]string(nil), formatNames[:]...) }

func (f Format) String() string {
	if 0 <= f && int(f) < len(formatNames) {
		return formatNames[f]
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat returns the format named s, in any case.
func ParseFormat(s string) (Format, error) {
	for i, v := range formatNames {
		if strings.EqualFold(s, v) {
			return Format(i), nil
		}
	}
	return 0, fmt.Errorf("%w: format %q", coding.ErrUnsupported, s)
}

// Style describes how a grid is drawn.
type Style struct {
	Scale   int  // image pixels (EPS: points) per module; ignored for text
	Margin  int  // quiet zone width in modules
	Reverse bool // swap dark and light colours

	// Dark and Light set the colours of PNG, EPS and SVG output.
	// Nil means black and white, respectively.
	Dark, Light color.Color
}

// DefaultStyle is used when Render is passed a nil Style.
var DefaultStyle = Style{Scale: 4, Margin: 4}

// maxPixels limits the side of an image.
const maxPixels = 32767 * 8

var (
	errScale  = fmt.Errorf("%w: invalid scale", coding.ErrInvalid)
	errMargin = fmt.Errorf("%w: invalid margin", coding.ErrInvalid)
	errLarge  = fmt.Errorf("%w: image too large", coding.ErrInvalid)
)

func (st *Style) check(g Grid, f Format) error {
	if st.Margin < 0 || st.Margin > maxPixels {
		return errMargin
	}
	switch f {
	case UTF8, ASCII, Terminal:
		return nil
	}
	if st.Scale < 1 {
		return errScale
	}
	if (g.Size()+2*st.Margin)*st.Scale > maxPixels {
		return errLarge
	}
	return nil
}

// colors returns the dark and light colours, swapped if st.Reverse.
func (st *Style) colors() (dark, light color.NRGBA) {
	dark = color.NRGBA{0x00, 0x00, 0x00, 0xff}
	light = color.NRGBA{0xff, 0xff, 0xff, 0xff}
	if st.Dark != nil {
		dark = color.NRGBAModel.Convert(st.Dark).(color.NRGBA)
	}
	if st.Light != nil {
		light = color.NRGBAModel.Convert(st.Light).(color.NRGBA)
	}
	if st.Reverse {
		dark, light = light, dark
	}
	return dark, light
}

var renderers = [...]func(io.Writer, Grid, *Style) error{
	PNG:      encodePNG,
	PBM:      encodePBM,
	EPS:      encodeEPS,
	SVG:      encodeSVG,
	UTF8:     encodeUTF8,
	ASCII:    encodeASCII,
	Terminal: encodeTerminal,
}

// Render writes g to w in format f.  If st is nil, DefaultStyle
// is used.  Render returns an error wrapping coding.ErrUnsupported
// for unknown formats.
func Render(w io.Writer, g Grid, f Format, st *Style) error {
	if f < 0 || int(f) >= len(renderers) {
		return fmt.Errorf("%w: format %v", coding.ErrUnsupported, f)
	}
	if st == nil {
		st = &DefaultStyle
	}
	if err := st.check(g, f); err != nil {
		return err
	}
	return renderers[f](w, g, st)
}

// String returns g drawn using half block characters.  If st is nil,
// DefaultStyle is used.
func String(g Grid, st *Style) string {
	if st == nil {
		st = &DefaultStyle
	}
	var b strings.Builder
	encodeUTF8(&b, g, st)
	return b.String()
}
