// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codegen

import (
	"io"

	"github.com/allenkennedy/loopvec/ir"
)

// Vectorizer is the Generator of spec.md §4.G: the same AST walk as
// Tracer, with logging disabled, that rewrites an index expression
// referencing a loop variable the Allen-Kennedy driver has set as
// "being vectorized" into a `lower:upper` range.
type Vectorizer struct {
	loopReplacement map[string]*ir.Loop
	folding         bool
}

// NewVectorizer returns a Vectorizer. When folding is true, the lower
// and upper bound expressions produced by an index-expression rewrite
// are constant-folded after substitution (§4.G).
func NewVectorizer(folding bool) *Vectorizer {
	return &Vectorizer{loopReplacement: make(map[string]*ir.Loop), folding: folding}
}

func (v *Vectorizer) LogLoopBegin(io.Writer, *ir.Loop, int) error    { return nil }
func (v *Vectorizer) LogLoopEnd(io.Writer, *ir.Loop, int) error      { return nil }
func (v *Vectorizer) LogLoopUpdate(io.Writer, *ir.Loop, int) error   { return nil }
func (v *Vectorizer) LogUse(io.Writer, ir.Expression, int, int) error { return nil }
func (v *Vectorizer) LogDef(io.Writer, *ir.Variable, int, int) error { return nil }

// SetLoopData installs the loop variable -> Loop map the driver
// populates for the representative statement of a non-cyclic SCC: index
// expressions referencing one of these names become ranges.
func (v *Vectorizer) SetLoopData(loopReplacement map[string]*ir.Loop) {
	v.loopReplacement = loopReplacement
}

// IndexExpression emits expr unchanged if it references no loop
// variable currently being vectorized; otherwise it emits
// "lower(expr):upper(expr)", each side built by substituting every
// reference to a vectorized loop variable with that loop's Lower/Upper
// bound, then optionally constant-folded.
func (v *Vectorizer) IndexExpression(out io.Writer, expr ir.Expression) error {
	if !v.checkExpr(expr) {
		return generateExpression(v, out, expr)
	}

	lower := v.buildExpr(expr, false, false)
	if v.folding {
		lower = Fold(lower)
	}
	if err := generateExpression(v, out, lower); err != nil {
		return err
	}
	if _, err := io.WriteString(out, ":"); err != nil {
		return err
	}

	upper := v.buildExpr(expr, true, false)
	if v.folding {
		upper = Fold(upper)
	}
	return generateExpression(v, out, upper)
}

// checkExpr reports whether expr references any name in loopReplacement.
func (v *Vectorizer) checkExpr(expr ir.Expression) bool {
	switch x := expr.(type) {
	case ir.Var:
		_, ok := v.loopReplacement[x.Variable.Name]
		return ok
	case ir.Int, ir.Real:
		return false
	case *ir.UnOp:
		return v.checkExpr(x.Right)
	case *ir.BinOp:
		return v.checkExpr(x.Left) || v.checkExpr(x.Right)
	case *ir.Paren:
		return v.checkExpr(x.Inner)
	default:
		return false
	}
}

// buildExpr substitutes every loop-variable reference in expr with that
// loop's Lower (upper=false) or Upper (upper=true) bound expression,
// recursively. A substituted bound that is itself a compound expression
// (a BinOp or UnOp) is wrapped in an explicit Paren at the point of
// substitution, so `a(i+2)` with `i` bounded by `lb+1` becomes
// `(lb+1)+2`, not `lb+1+2`; a bound that is a bare name or literal is
// substituted without parentheses (`lb+2`). replacing==true marks that
// the immediate caller already performed a substitution this level and a
// compound result needs that wrapping.
func (v *Vectorizer) buildExpr(expr ir.Expression, upper, replacing bool) ir.Expression {
	switch x := expr.(type) {
	case ir.Var:
		if loop, ok := v.loopReplacement[x.Variable.Name]; ok {
			if upper {
				return v.buildExpr(loop.Upper, upper, true)
			}
			return v.buildExpr(loop.Lower, upper, true)
		}
		var indices []ir.Expression
		if len(x.Variable.Indices) > 0 {
			indices = make([]ir.Expression, len(x.Variable.Indices))
			for i, idx := range x.Variable.Indices {
				indices[i] = v.buildExpr(idx, upper, false)
			}
		}
		return ir.Var{Variable: &ir.Variable{Name: x.Variable.Name, Indices: indices}}
	case ir.Int, ir.Real:
		return x
	case *ir.BinOp:
		built := &ir.BinOp{Op: x.Op, Left: v.buildExpr(x.Left, upper, false), Right: v.buildExpr(x.Right, upper, false)}
		if replacing {
			return &ir.Paren{Inner: built}
		}
		return built
	case *ir.UnOp:
		built := &ir.UnOp{Op: x.Op, Right: v.buildExpr(x.Right, upper, false)}
		if replacing {
			return &ir.Paren{Inner: built}
		}
		return built
	case *ir.Paren:
		return &ir.Paren{Inner: v.buildExpr(x.Inner, upper, false)}
	default:
		return expr
	}
}
