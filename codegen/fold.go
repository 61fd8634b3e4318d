// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codegen

import "github.com/allenkennedy/loopvec/ir"

// Fold applies the bottom-up constant-folding pass of spec.md §4.G/§8 to
// e: Int/Real operands under any OpType are collapsed, and/or/not use
// C-style zero/non-zero semantics, comparisons yield Int(0)/Int(1), and
// mixed Int/Real operands promote to Real. A Paren wrapping a literal
// after folding its interior is removed; a Paren wrapping a non-literal
// is kept. Fold never mutates e; it always returns a new tree.
func Fold(e ir.Expression) ir.Expression {
	switch x := e.(type) {
	case ir.Int, ir.Real:
		return x
	case ir.Var:
		var indices []ir.Expression
		if len(x.Variable.Indices) > 0 {
			indices = make([]ir.Expression, len(x.Variable.Indices))
			for i, idx := range x.Variable.Indices {
				indices[i] = Fold(idx)
			}
		}
		return ir.Var{Variable: &ir.Variable{Name: x.Variable.Name, Indices: indices}}
	case *ir.BinOp:
		left := Fold(x.Left)
		right := Fold(x.Right)
		if folded, ok := foldBinOp(x.Op, left, right); ok {
			return folded
		}
		return &ir.BinOp{Op: x.Op, Left: left, Right: right}
	case *ir.UnOp:
		right := Fold(x.Right)
		if folded, ok := foldUnOp(x.Op, right); ok {
			return folded
		}
		return &ir.UnOp{Op: x.Op, Right: right}
	case *ir.Paren:
		inner := Fold(x.Inner)
		switch inner.(type) {
		case ir.Int, ir.Real:
			return inner
		default:
			return &ir.Paren{Inner: inner}
		}
	default:
		return e
	}
}

func boolInt(b bool) ir.Int {
	if b {
		return 1
	}
	return 0
}

// foldBinOp folds a binary operation whose operands have already been
// folded to a literal, reporting ok=false if either operand is not a
// literal (so the caller keeps the BinOp node as-is).
func foldBinOp(op ir.OpType, left, right ir.Expression) (ir.Expression, bool) {
	li, lIsInt := left.(ir.Int)
	lr, lIsReal := left.(ir.Real)
	ri, rIsInt := right.(ir.Int)
	rr, rIsReal := right.(ir.Real)

	switch {
	case lIsInt && rIsInt:
		return foldIntInt(op, int32(li), int32(ri)), true
	case lIsInt && rIsReal:
		return foldNumeric(op, float64(li), float64(rr)), true
	case lIsReal && rIsInt:
		return foldNumeric(op, float64(lr), float64(ri)), true
	case lIsReal && rIsReal:
		return foldNumeric(op, float64(lr), float64(rr)), true
	default:
		return nil, false
	}
}

// foldIntInt folds two integer operands, staying in integer arithmetic
// for Add/Sub/Mul/Div so an all-integer expression folds to Int, not
// Real.
func foldIntInt(op ir.OpType, l, r int32) ir.Expression {
	switch op {
	case ir.Add:
		return ir.Int(l + r)
	case ir.Sub:
		return ir.Int(l - r)
	case ir.Mul:
		return ir.Int(l * r)
	case ir.Div:
		return ir.Int(l / r)
	case ir.Eq:
		return boolInt(l == r)
	case ir.NotEq:
		return boolInt(l != r)
	case ir.Gt:
		return boolInt(l > r)
	case ir.GtEq:
		return boolInt(l >= r)
	case ir.Lt:
		return boolInt(l < r)
	case ir.LtEq:
		return boolInt(l <= r)
	case ir.And:
		return boolInt(l != 0 && r != 0)
	case ir.Or:
		return boolInt(l != 0 || r != 0)
	default:
		return ir.Int(0)
	}
}

// foldNumeric folds two operands where at least one is Real; arithmetic
// results are always Real (mixed Int/Real operands promote to Real).
func foldNumeric(op ir.OpType, l, r float64) ir.Expression {
	switch op {
	case ir.Add:
		return ir.Real(l + r)
	case ir.Sub:
		return ir.Real(l - r)
	case ir.Mul:
		return ir.Real(l * r)
	case ir.Div:
		return ir.Real(l / r)
	case ir.Eq:
		return boolInt(l == r)
	case ir.NotEq:
		return boolInt(l != r)
	case ir.Gt:
		return boolInt(l > r)
	case ir.GtEq:
		return boolInt(l >= r)
	case ir.Lt:
		return boolInt(l < r)
	case ir.LtEq:
		return boolInt(l <= r)
	case ir.And:
		return boolInt(l != 0 && r != 0)
	case ir.Or:
		return boolInt(l != 0 || r != 0)
	default:
		return ir.Int(0)
	}
}

// foldUnOp folds a unary operation whose operand has already been folded
// to a literal. Plus, Mul, and Div are identities on a unary operand (the
// reference mirrors this exactly, per spec.md's resolved ambiguity on
// UnOp constant folding); comparisons compare the operand to itself.
func foldUnOp(op ir.OpType, right ir.Expression) (ir.Expression, bool) {
	switch x := right.(type) {
	case ir.Int:
		return foldUnOpInt(op, int32(x)), true
	case ir.Real:
		return foldUnOpReal(op, float64(x)), true
	default:
		return nil, false
	}
}

func foldUnOpInt(op ir.OpType, v int32) ir.Expression {
	switch op {
	case ir.Add, ir.Mul, ir.Div:
		return ir.Int(v)
	case ir.Sub:
		return ir.Int(-v)
	case ir.Eq, ir.GtEq, ir.LtEq:
		return boolInt(true)
	case ir.NotEq, ir.Gt, ir.Lt:
		return boolInt(false)
	case ir.And, ir.Or:
		return boolInt(v != 0)
	case ir.Not:
		return boolInt(v == 0)
	default:
		return ir.Int(0)
	}
}

func foldUnOpReal(op ir.OpType, v float64) ir.Expression {
	switch op {
	case ir.Add, ir.Mul, ir.Div:
		return ir.Real(v)
	case ir.Sub:
		return ir.Real(-v)
	case ir.Eq, ir.GtEq, ir.LtEq:
		return boolInt(true)
	case ir.NotEq, ir.Gt, ir.Lt:
		return boolInt(false)
	case ir.And, ir.Or:
		return boolInt(v != 0)
	case ir.Not:
		return boolInt(v == 0)
	default:
		return ir.Int(0)
	}
}
