// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"bufio"
	"io"
)

// Half blocks indexed by top<<1 | bottom, 1 for dark.
var (
	blocks        = [4]string{" ", "▄", "▀", "█"}
	invertedBlock = [4]string{"█", "▀", "▄", " "}
)

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

// encodeUTF8 draws two rows of modules per line of text.
func encodeUTF8(w io.Writer, g Grid, st *Style) error {
	bl := &blocks
	if st.Reverse {
		bl = &invertedBlock
	}
	b := bufio.NewWriter(w)
	siz, bord := g.Size(), st.Margin
	for y := -bord; y < siz+bord; y += 2 {
		for x := -bord; x < siz+bord; x++ {
			b.WriteString(bl[b2i(g.Black(x, y))<<1|b2i(g.Black(x, y+1))])
		}
		b.WriteByte('\n')
	}
	return b.Flush()
}

// encodeASCII draws each module as two characters.
func encodeASCII(w io.Writer, g Grid, st *Style) error {
	dark, light := byte('#'), byte(' ')
	if st.Reverse {
		dark, light = light, dark
	}
	siz, bord := g.Size(), st.Margin
	pix := siz + 2*bord
	b := make([]byte, (pix*2+1)*pix)
	i := 0
	for y := -bord; y < siz+bord; y++ {
		for x := -bord; x < siz+bord; x++ {
			p := light
			if g.Black(x, y) {
				p = dark
			}
			_ = b[i+1]
			b[i], b[i+1] = p, p
			i += 2
		}
		b[i] = '\n'
		i++
	}
	_, err := w.Write(b)
	return err
}

// ANSI escape sequences.
const (
	bgWhite = "\x1b[47m"
	bgBlack = "\x1b[40m"
	fgWhite = "\x1b[37m"
	fgBlack = "\x1b[30m"
	reset   = "\x1b[0m"
)

// encodeTerminal draws two rows of modules per line using the
// terminal's colours.  The quiet zone is drawn in white, anything
// beyond it is left transparent.
func encodeTerminal(w io.Writer, g Grid, st *Style) error {
	setup, white, black := bgWhite+fgBlack, fgWhite, fgBlack
	if st.Reverse {
		setup, white, black = bgBlack+fgWhite, fgBlack, fgWhite
	}
	// palette indexed by top*3 + bottom: 0 transparent, 1 white, 2 black
	palette := [9]string{
		reset + " " + setup,
		reset + white + "▄" + setup,
		reset + black + "▄" + setup,
		reset + white + "▀" + setup,
		" ",
		"▄",
		reset + black + "▀" + setup,
		"▀",
		"█",
	}
	siz, bord := g.Size(), st.Margin
	pixel := func(x, y int) int {
		switch {
		case x < -bord || y < -bord || x >= siz+bord || y >= siz+bord:
			return 0
		case g.Black(x, y):
			return 2
		}
		return 1
	}
	b := bufio.NewWriter(w)
	b.WriteString(setup)
	for y := -bord; y < siz+bord; y += 2 {
		for x := -bord; x < siz+bord; x++ {
			b.WriteString(palette[pixel(x, y)*3+pixel(x, y+1)])
		}
		b.WriteString(reset + "\n" + setup)
	}
	b.WriteString(reset)
	return b.Flush()
}
