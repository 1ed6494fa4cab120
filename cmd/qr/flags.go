// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"strings"

	"github.com/pborman/getopt/v2"

	"github.com/qrexgo/qr/coding"
	"github.com/qrexgo/qr/render"
)

// levelFlag is an error correction level given by name.
type levelFlag coding.Level

func (l *levelFlag) String() string { return strings.ToLower(coding.Level(*l).String()) }

func (l *levelFlag) Set(s string, _ getopt.Option) error {
	lev, err := coding.ParseLevel(s)
	if err != nil {
		return err
	}
	*l = levelFlag(lev)
	return nil
}

// maskFlag is a mask pattern, or -1 for automatic.
type maskFlag int

const autoMask maskFlag = -1

func (k *maskFlag) String() string {
	if *k == autoMask {
		return "auto"
	}
	return coding.Mask(*k).String()
}

func (k *maskFlag) Set(s string, _ getopt.Option) error {
	if s == "-1" || strings.EqualFold(s, "auto") {
		*k = autoMask
		return nil
	}
	m, err := coding.ParseMask(s)
	if err != nil {
		return err
	}
	*k = maskFlag(m)
	return nil
}

// formatFlag is an output format, with "i" appended for inverted
// colours.
type formatFlag struct {
	format  render.Format
	reverse bool
	set     bool
}

func (f *formatFlag) String() string {
	if !f.set {
		return ""
	}
	if f.reverse {
		return f.format.String() + "i"
	}
	return f.format.String()
}

func (f *formatFlag) Set(s string, _ getopt.Option) error {
	ff, err := render.ParseFormat(s)
	rev := false
	if err != nil && len(s) > 1 && (s[len(s)-1] == 'i' || s[len(s)-1] == 'I') {
		var err2 error
		if ff, err2 = render.ParseFormat(s[:len(s)-1]); err2 == nil {
			err, rev = nil, true
		}
	}
	if err != nil {
		return err
	}
	f.format, f.reverse, f.set = ff, rev, true
	return nil
}
