// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
	"golang.org/x/text/encoding/charmap"

	"github.com/qrexgo/qr"
	"github.com/qrexgo/qr/render"
	"github.com/qrexgo/qr/split"
)

// newLogger returns a console logger writing to standard error,
// at debug level if debug is set and warn level otherwise.
func newLogger(debug bool) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	if !debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		cfg.EncoderConfig.TimeKey = ""
		cfg.EncoderConfig.CallerKey = ""
		cfg.DisableStacktrace = true
	}
	l, err := cfg.Build()
	if err != nil {
		log.Fatalln(err)
	}
	return l
}

// checkWidth warns if text output to a terminal would be wider
// than the terminal.
func checkWidth(size int, logger *zap.Logger) {
	var need int
	switch g.format.format {
	case render.UTF8, render.Terminal:
		need = size + 2*g.style.Margin
	case render.ASCII:
		need = 2 * (size + 2*g.style.Margin)
	default:
		return
	}
	cols, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return
	}
	if need > cols {
		logger.Warn("code is wider than the terminal",
			zap.Int("width", need), zap.Int("columns", cols))
	}
}

// maxText is the length of segment text shown in the summary.
const maxText = 32

// summary prints the version, level, mask and segments of c.
func summary(w io.Writer, c *qr.Symbol, latin1 bool) {
	r := lipgloss.NewRenderer(w)
	var (
		titleStyle = r.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(lipgloss.Color("#7D56F4")).
				Padding(0, 1)
		keyStyle = r.NewStyle().
				Foreground(lipgloss.Color("#87CEEB")).
				Width(10)
		modeStyle = r.NewStyle().
				Foreground(lipgloss.Color("#98FB98")).
				Width(13)
		boxStyle = r.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#666666")).
				Padding(0, 1)
	)
	charset := "UTF-8"
	if latin1 {
		charset = "ISO 8859-1"
	}
	bits := split.Length(c.Segments, c.Version)
	lines := []string{
		titleStyle.Render("QR code"),
		keyStyle.Render("version") + fmt.Sprintf("%s (%d×%d modules)",
			c.Version, c.Size(), c.Size()),
		keyStyle.Render("level") + c.Level.String(),
		keyStyle.Render("mask") + c.Mask.String(),
		keyStyle.Render("data") + fmt.Sprintf("%d of %d bits",
			bits, c.Version.DataBits(c.Level)),
		keyStyle.Render("charset") + charset,
		keyStyle.Render("segments") + fmt.Sprint(len(c.Segments)),
	}
	for _, seg := range c.Segments {
		t := seg.Text
		if latin1 {
			t, _ = charmap.ISO8859_1.NewDecoder().String(t)
		}
		if rs := []rune(t); len(rs) > maxText {
			t = string(rs[:maxText-1]) + "…"
		}
		lines = append(lines, "  "+modeStyle.Render(seg.Mode.String())+
			fmt.Sprintf("%4d  %q", seg.Count(), t))
	}
	fmt.Fprintln(w, boxStyle.Render(strings.Join(lines, "\n")))
}
