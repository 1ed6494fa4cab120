// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package split_test

import (
	"fmt"

	"github.com/qrexgo/qr/coding"
	"github.com/qrexgo/qr/split"
)

func ExampleRawSplit() {
	for _, seg := range split.RawSplit("ABC123abc", nil) {
		fmt.Printf("%-12s %q\n", seg.Mode, seg.Text)
	}
	// Output:
	// alphanumeric "ABC"
	// numeric      "123"
	// byte         "abc"
}

func ExampleSplit() {
	// Encoding the digits separately costs more than the extra
	// alphanumeric characters.
	segs := split.Split("ABC123abc", 1, nil)
	for _, seg := range segs {
		fmt.Printf("%-12s %q\n", seg.Mode, seg.Text)
	}
	fmt.Println(split.Length(segs, 1), "bits")
	// Output:
	// alphanumeric "ABC123"
	// byte         "abc"
	// 82 bits
}

func ExampleSplit_kanji() {
	for _, seg := range split.Split("点茗: 42", 1, coding.ShiftJIS) {
		fmt.Printf("%-12s %q\n", seg.Mode, seg.Text)
	}
	// Output:
	// kanji        "点茗"
	// alphanumeric ": 42"
}

func ExampleBestVersion() {
	segs := split.Split("HELLO WORLD", 1, nil)
	v, ok := split.BestVersion(segs, coding.Q)
	fmt.Println(v, ok)
	// Output:
	// 1 true
}
