// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package irparser parses the textual, whitespace-tokenized IR format
// (spec.md §4.B) into an *ir.Ast.
package irparser

import "strings"

// tokenize normalizes tabs and newlines to spaces, appends the end-of-
// stream sentinel "$", and splits on whitespace. The sentinel lets the
// parser distinguish a clean end of input from a parse failure partway
// through the token stream.
func tokenize(text string) []string {
	text = strings.ReplaceAll(text, "\t", " ")
	text = strings.ReplaceAll(text, "\n", " ")
	text += " $"
	return strings.Fields(text)
}
