// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"strconv"
)

// colorAttr returns an SVG colour attribute for c, with opacity if
// c is translucent.
func colorAttr(attr string, c color.NRGBA) string {
	s := fmt.Sprintf(`%s="#%02x%02x%02x"`, attr, c.R, c.G, c.B)
	if c.A != 0xff {
		s += fmt.Sprintf(` %s-opacity="%s"`, attr,
			strconv.FormatFloat(float64(c.A)/0xff, 'f', 2, 64))
	}
	return s
}

// svgPath returns path data drawing each horizontal run of dark
// modules as a line one module wide.
func svgPath(g Grid, bord int) []byte {
	var p []byte
	siz := g.Size()
	for y := 0; y < siz; y++ {
		first, last := true, 0
		for x := 0; x < siz; {
			for x < siz && !g.Black(x, y) {
				x++
			}
			if x == siz {
				break
			}
			start := x
			for x < siz && g.Black(x, y) {
				x++
			}
			if first {
				p = fmt.Appendf(p, "M%d %d.5", start+bord, y+bord)
				first = false
			} else {
				p = fmt.Appendf(p, "m%d 0", start-last)
			}
			p = fmt.Appendf(p, "h%d", x-start)
			last = x
		}
	}
	return p
}

func encodeSVG(w io.Writer, g Grid, st *Style) error {
	dark, light := st.colors()
	pix := g.Size() + 2*st.Margin
	b := bufio.NewWriter(w)
	fmt.Fprintf(b, `<svg xmlns="http://www.w3.org/2000/svg" `+
		`width="%d" height="%d" viewBox="0 0 %d %d" `+
		`shape-rendering="crispEdges">`,
		pix*st.Scale, pix*st.Scale, pix, pix)
	if light.A != 0 {
		fmt.Fprintf(b, `<path %s d="M0 0h%dv%dH0z"/>`,
			colorAttr("fill", light), pix, pix)
	}
	fmt.Fprintf(b, `<path %s d="%s"/></svg>`+"\n",
		colorAttr("stroke", dark), svgPath(g, st.Margin))
	return b.Flush()
}
