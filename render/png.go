// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"image"
	"image/color"
	"image/png"
	"io"
)

// Image returns an image displaying g, with a quiet zone, scaled
// and coloured according to st.  If st is nil, DefaultStyle is used.
// The image is paletted: index 0 is light, 1 is dark.
func Image(g Grid, st *Style) image.PalettedImage {
	if st == nil {
		st = &DefaultStyle
	}
	dark, light := st.colors()
	return &gridImage{
		Grid:    g,
		scale:   max(st.Scale, 1),
		bord:    st.Margin,
		palette: color.Palette{light, dark},
	}
}

// gridImage implements image.PalettedImage.
type gridImage struct {
	Grid
	scale   int
	bord    int
	palette color.Palette
}

func (c *gridImage) Bounds() image.Rectangle {
	d := (c.Size() + 2*c.bord) * c.scale
	return image.Rect(0, 0, d, d)
}

func (c *gridImage) ColorIndexAt(x, y int) uint8 {
	if c.Black(floorDiv(x, c.scale)-c.bord, floorDiv(y, c.scale)-c.bord) {
		return 1
	}
	return 0
}

func (c *gridImage) At(x, y int) color.Color {
	return c.palette[c.ColorIndexAt(x, y)]
}

func (c *gridImage) ColorModel() color.Model { return c.palette }

// floorDiv returns a/b rounded down, for b > 0.
func floorDiv(a, b int) int {
	if a < 0 {
		return -((b - 1 - a) / b)
	}
	return a / b
}

func encodePNG(w io.Writer, g Grid, st *Style) error {
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	return enc.Encode(w, Image(g, st))
}
