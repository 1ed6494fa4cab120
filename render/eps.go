// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
)

// rgb returns c as PostScript setrgbcolor operands.
func rgb(c color.NRGBA) string {
	return fmt.Sprintf("%.3g %.3g %.3g",
		float64(c.R)/0xff, float64(c.G)/0xff, float64(c.B)/0xff)
}

// encodeEPS writes an Encapsulated PostScript file centred on a US
// Letter page, drawing each run of dark modules as a line.
func encodeEPS(w io.Writer, g Grid, st *Style) error {
	const midx, midy = 306, 396
	siz := g.Size()
	scale := st.Scale
	bord := st.Margin
	xorig := (midx*2 - (siz+2*bord)*scale) / 2
	yorig := (midy*2 - (siz+2*bord)*scale) / 2
	b := bufio.NewWriter(w)
	fmt.Fprintf(b, `%%!PS-Adobe-2.0 EPSF-2.0
%%%%Creator: qr
%%%%Title: QR Code
%%%%BoundingBox: %d %d %d %d
%%%%EndComments
%%%%EndProlog
<< >> begin
gsave
%g %g translate
%d dup neg scale
/row 0 def
/p { 0 rmoveto 0 rlineto } def
/r { 0 row 1 add dup /row exch def moveto } def
`,
		xorig-1, yorig-1, midx*2-xorig, midy*2-yorig,
		midx-float64(siz*scale)/2, midy+float64((siz-1)*scale)/2-1,
		scale)
	dark, light := st.colors()
	if st.Reverse || st.Dark != nil || st.Light != nil {
		// paint the background, quiet zone included
		fmt.Fprintf(b, `gsave
newpath %d %d moveto
%d dup neg scale
%s setrgbcolor
1 0 rlineto stroke
grestore
%s setrgbcolor
`,
			-bord, siz/2, siz+2*bord, rgb(light), rgb(dark))
	}
	fmt.Fprintln(b, "newpath 0 0 moveto")
	for y := 0; y < siz; y++ {
		for x := 0; x < siz; {
			s := x
			for x < siz && !g.Black(x, y) {
				x++
			}
			if x == siz {
				break
			}
			bl := x
			for x < siz && g.Black(x, y) {
				x++
			}
			fmt.Fprintf(b, "%d %d p ", x-bl, bl-s)
		}
		fmt.Fprintln(b, "r")
	}
	io.WriteString(b, "stroke grestore\nend\n%%Trailer\n")
	return b.Flush()
}
