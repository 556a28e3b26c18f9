// Copyright 2019 eBay Inc.
// Primary authors: Simon Fell, Diego Ongaro,
//                  Raymond Kroeker, and Sathish Kandasamy.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package table formats data into a text-based table for human consumption.
package table

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/ternlabs/tern/util/cmp"
	"golang.org/x/text/unicode/norm"
)

// Options represents different ways to control how the table is generated
type Options int

const (
	// HeaderRow if specified will format the first row in the table as a
	// header (i.e. there is a separator between it and the next row)
	HeaderRow Options = 1 << iota
	// RightJustify indicates that cells should have their contents right
	// justified (left padded), rather than the default of left justified.
	RightJustify
)

// PrettyPrint writes 't' as a nicely formatted table to the supplied Writer.
// Cells may not contain newlines. If no Justify option is used, the default
// is to left justify.
func PrettyPrint(dest io.Writer, t [][]string, opts Options) {
	if len(t) == 0 {
		return
	}
	w := bufio.NewWriterSize(dest, 256)
	defer w.Flush()

	widths := make([]int, len(t[0]))
	for _, row := range t {
		for cidx, c := range row {
			if cidx < len(widths) {
				widths[cidx] = cmp.MaxInt(widths[cidx], charsWide(c))
			}
		}
	}
	divider := func() {
		for _, width := range widths {
			io.WriteString(w, " ")
			io.WriteString(w, strings.Repeat("-", width))
			io.WriteString(w, " |")
		}
		io.WriteString(w, "\n")
	}
	for ridx, row := range t {
		for cidx, c := range row {
			pad := strings.Repeat(" ", widths[cidx]-charsWide(c))
			io.WriteString(w, " ")
			if opts&RightJustify != 0 {
				io.WriteString(w, pad)
				io.WriteString(w, c)
			} else {
				io.WriteString(w, c)
				io.WriteString(w, pad)
			}
			io.WriteString(w, " |")
		}
		io.WriteString(w, "\n")
		if opts&HeaderRow != 0 && ridx == 0 {
			divider()
		}
	}
}

// charsWide estimates how wide a string will be on a typical terminal or web
// browser. The problem is a bit harder than it appears thanks to Unicode; the
// corresponding unit tests have some interesting cases.
func charsWide(s string) int {
	s = norm.NFC.String(s)
	return utf8.RuneCountInString(s)
}
