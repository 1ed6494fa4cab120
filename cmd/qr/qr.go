// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"log"
	"os"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/pborman/getopt/v2"
	"go.uber.org/zap"

	"github.com/qrexgo/qr"
	"github.com/qrexgo/qr/coding"
	"github.com/qrexgo/qr/render"
	"github.com/qrexgo/qr/split"
)

var g = struct {
	style   render.Style   // rendering style
	fn      string         // filename
	lev     levelFlag      // QR correction level
	ver     coding.Version // QR version, 0 for automatic
	mask    maskFlag       // mask pattern, -1 for automatic
	format  formatFlag     // output file format
	cx      int            // randr source X coordinate index in inc
	inc     [2]int         // randr source X,Y coordinate increments
	bg, fg  rgba           // colour
	colSet  bool           // colour set
	latin1  bool           // Latin-1 byte mode
	nokanji bool           // kanji mode disabled
	upper   bool           // uppercase
	info    bool           // print summary
	debug   bool           // debug logging
}{
	style: render.Style{Margin: 4},
	lev:   levelFlag(coding.M),
	mask:  autoMask,
	inc:   [2]int{1, 1},
	bg:    rgba{0xff, 0xff, 0xff, 0xff},
	fg:    rgba{0x00, 0x00, 0x00, 0xff},
}

func printUsage(w io.Writer) {
	cl := getopt.CommandLine
	prog := cl.Program()
	ul := make([]string, 1, 4)
	ul[0] = cl.UsageLine() + " [string ...]"
	ml := max(70-len("Usage: ")-1-len(prog), 0)
	for i := 0; len(ul[i]) > ml; i++ {
		s := ul[i]
		n := ml - 1
		for n > 0 && (s[n] != ' ' || s[n+1] != '[') {
			n--
		}
		ul = append(ul, s[n+1:])
		ul[i] = s[:max(n, 0)]
		ml = 60
	}
	fmt.Fprint(w, "QR code generator\nUsage: ", prog, " ",
		strings.Join(ul, "\n          "), `
If no string is given, data is read from standard input and the final
newline is stripped.  Defaults: UTF-8 input, kanji mode segments
enabled, version and mask chosen automatically.

`)
	var b bytes.Buffer
	cl.PrintOptions(&b)
	bb := b.Bytes()
	if n := bytes.Index(bb, []byte(" [-1]")); n >= 0 {
		w.Write(bb[:n])
		bb = bb[n+len(" [-1]"):]
	}
	w.Write(bb)
}

type opt func()

func (opt) String() string                    { return "" }
func (o opt) Set(string, getopt.Option) error { o(); return nil }

func usage() {
	printUsage(os.Stderr)
	os.Exit(2)
}

func help() {
	printUsage(os.Stdout)
	os.Exit(0)
}

func version() {
	fmt.Println(`qr version 0.9.0
Copyright (c) 2011 The Go Authors
Copyright (c) 2025 Vadim Vygonets`)
	os.Exit(0)
}

func flip() {
	g.inc[0] = -g.inc[0]
}

func rotate() {
	g.cx ^= 1
	m := g.inc[0] * g.inc[1]
	g.inc[0] *= m
	g.inc[1] *= -m
}

// formats lists output formats, each followed by its inverted variant.
var formats = func() []string {
	var f []string
	for _, v := range render.Formats() {
		f = append(f, v, v+"i")
	}
	return f
}()

func parseFlags() {
	getopt.SetUsage(usage)
	getopt.Flag(opt(help), 'h', "show this help").SetFlag()
	getopt.Flag(opt(version), 'V', "print version and copyright").SetFlag()
	getopt.FlagLong(&g.bg, "background", 'B', `background colour; see -F`,
		"RGB[A]|name")
	getopt.FlagLong(&g.fg, "foreground", 'F', `foreground colour `+
		`as 3, 4, 6 or 8 hex digits or a colour name; `+
		`only for types png[i], eps[i] and svg[i]`, "RGB[A]|name")
	getopt.Flag(opt(flip), 'f', `flip code horizontally; `+
		`to flip vertically, use "-frr"`).SetFlag()
	getopt.Flag(opt(rotate), 'r', `rotate code 90° counterclockwise; `+
		`-r and -f may be given multiple times, `+
		`order matters: "-fr" = "-rfrr" = "-rrrf"`).SetFlag()
	getopt.Flag(&g.nokanji, 'K', "disable kanji mode")
	getopt.Flag(&g.latin1, '1',
		"convert input to Latin-1; implies -K")
	getopt.Flag(&g.upper, 'i', `ignore case, convert input to uppercase`)
	getopt.Flag(&g.info, 'I', `print a summary of the code `+
		`to standard error`)
	getopt.Flag(&g.debug, 'd', `log debug messages`)
	getopt.Flag(&g.style.Margin, 'm', `quiet zone modules`, "margin")
	fno := getopt.Flag(&g.fn, 'o', `output file, or "-" for `+
		`standard output`, "file")
	ver := getopt.Unsigned('v', 0, &getopt.UnsignedLimit{Base: 0, Bits: 8, Min: 0, Max: 40},
		"QR code version, 0 to choose the smallest", "ver")
	getopt.Flag(&g.mask, 'p', "mask pattern 0 to 7, "+
		"or -1 or auto to choose the best", "mask")
	getopt.Flag(&g.lev, 'l', "error correction level, lowest to highest: "+
		"l or low, m or medium, q or quartile, h or high", "level")
	scale := getopt.Unsigned('s', 4,
		&(getopt.UnsignedLimit{Base: 0, Bits: 28, Min: 1, Max: 1 << 28}),
		`image pixels (type eps[i]: points, svg[i]: user units) `+
			`per QR module; ignored for text types`, "scale")
	getopt.Flag(&g.format, 't', `output format, one of: `+
		strings.Join(formats, ", ")+
		`; types with "i" appended have colours inverted; `+
		`if no -o is given and standard output is a TTY, `+
		`default is utf8, otherwise png`, "type")

	getopt.Parse()
	if g.style.Margin < 0 {
		fmt.Fprintln(os.Stderr, "margin must not be negative")
		usage()
	}
	g.style.Scale = int(*scale)
	g.ver = coding.Version(*ver)
	if !g.format.set {
		g.format.format = render.PNG
		if !fno.Seen() && isatty.IsTerminal(uintptr(syscall.Stdout)) {
			g.format.format = render.UTF8
		}
	}
	g.style.Reverse = g.format.reverse
	if g.fn == "-" {
		g.fn = ""
	}
	if g.colSet {
		g.style.Dark = color.NRGBA(g.fg)
		g.style.Light = color.NRGBA(g.bg)
	}
}

func main() {
	log.SetFlags(0)
	parseFlags()
	logger := newLogger(g.debug)
	defer logger.Sync()

	var s string
	if args := getopt.Args(); len(args) != 0 {
		s = strings.Join(args, " ")
	} else {
		var b strings.Builder
		if _, err := io.Copy(&b, os.Stdin); err != nil {
			log.Fatalln(err)
		}
		s, _ = strings.CutSuffix(
			strings.ReplaceAll(b.String(), "\r\n", "\n"), "\n")
	}
	if g.upper {
		s = strings.ToUpper(s)
	}
	if g.latin1 {
		t, ok := split.Latin1(s)
		if !ok {
			log.Fatalln("input is not representable in Latin-1")
		}
		s = t
	}

	opts := []qr.Option{qr.WithLevel(qr.Level(g.lev)), qr.WithLogger(logger)}
	if g.ver != 0 {
		opts = append(opts, qr.WithVersion(g.ver))
	}
	if g.mask != autoMask {
		opts = append(opts, qr.WithMask(qr.Mask(g.mask)))
	}
	if !g.nokanji && !g.latin1 {
		opts = append(opts, qr.WithKanji())
	}
	c, err := qr.Encode(s, opts...)
	if err != nil {
		log.Fatalln(err)
	}
	if g.info {
		summary(os.Stderr, c, g.latin1)
	}
	write(c, logger)
}

func write(c *qr.Symbol, logger *zap.Logger) {
	var w = os.Stdout
	if g.fn != "" {
		var err error
		if w, err = os.OpenFile(g.fn, os.O_WRONLY|os.O_CREATE|os.O_TRUNC,
			0666); err != nil {
			log.Fatalln(err)
		}
	} else {
		checkWidth(c.Size(), logger)
	}
	err := render.Render(w, randr(c), g.format.format, &g.style)
	if g.fn != "" && err == nil {
		err = w.Close()
	}
	if err != nil {
		log.Fatalln(err)
	}
}

// view is a rotated and reflected Grid.
type view struct {
	render.Grid
	cx  int
	inc [2]int
}

// pos maps coordinate i to the source grid for increment inc.
func (v *view) pos(i, inc int) int {
	if inc < 0 {
		return v.Size() - 1 - i
	}
	return i
}

func (v *view) Black(x, y int) bool {
	var coord [2]int
	coord[v.cx] = v.pos(x, v.inc[0])
	coord[v.cx^1] = v.pos(y, v.inc[1])
	return v.Grid.Black(coord[0], coord[1])
}

// randr rotates and reflects c.
func randr(c *qr.Symbol) render.Grid {
	if g.cx == 0 && g.inc == [2]int{1, 1} {
		return c
	}
	return &view{Grid: c, cx: g.cx, inc: g.inc}
}
