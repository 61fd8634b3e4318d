// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codegen

import (
	"testing"

	"github.com/allenkennedy/loopvec/ir"
	"github.com/google/go-cmp/cmp"
)

func TestFoldConstantArithmetic(t *testing.T) {
	cases := []struct {
		name string
		in   ir.Expression
		want ir.Expression
	}{
		{"add", &ir.BinOp{Op: ir.Add, Left: ir.Int(2), Right: ir.Int(3)}, ir.Int(5)},
		{"negate", &ir.UnOp{Op: ir.Sub, Right: ir.Int(7)}, ir.Int(-7)},
		{"eq-true", &ir.BinOp{Op: ir.Eq, Left: ir.Int(1), Right: ir.Int(1)}, ir.Int(1)},
		{"mixed-div-promotes-real", &ir.BinOp{Op: ir.Div, Left: ir.Real(1.0), Right: ir.Int(2)}, ir.Real(0.5)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Fold(c.in)
			if diff := cmp.Diff(c.want, got); diff != "" {
				t.Errorf("Fold(%v) mismatch (-want +got):\n%s", c.in, diff)
			}
		})
	}
}

func TestFoldUnaryIdentities(t *testing.T) {
	cases := []struct {
		op   ir.OpType
		in   ir.Expression
		want ir.Expression
	}{
		{ir.Add, ir.Int(4), ir.Int(4)},
		{ir.Mul, ir.Int(4), ir.Int(4)},
		{ir.Div, ir.Int(4), ir.Int(4)},
		{ir.Not, ir.Int(0), ir.Int(1)},
		{ir.Not, ir.Int(3), ir.Int(0)},
		{ir.Eq, ir.Int(9), ir.Int(1)},
		{ir.NotEq, ir.Int(9), ir.Int(0)},
	}
	for _, c := range cases {
		got := Fold(&ir.UnOp{Op: c.op, Right: c.in})
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Errorf("Fold(UnOp{%v,%v}) mismatch (-want +got):\n%s", c.op, c.in, diff)
		}
	}
}

func TestFoldRemovesParenAroundLiteral(t *testing.T) {
	got := Fold(&ir.Paren{Inner: &ir.BinOp{Op: ir.Add, Left: ir.Int(1), Right: ir.Int(1)}})
	if diff := cmp.Diff(ir.Int(2), got); diff != "" {
		t.Errorf("Fold mismatch (-want +got):\n%s", diff)
	}
}

func TestFoldKeepsParenAroundNonLiteral(t *testing.T) {
	v := ir.Var{Variable: &ir.Variable{Name: "i"}}
	got := Fold(&ir.Paren{Inner: v})
	want := &ir.Paren{Inner: v}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Fold mismatch (-want +got):\n%s", diff)
	}
}

func TestFoldIsIdempotent(t *testing.T) {
	exprs := []ir.Expression{
		&ir.BinOp{Op: ir.Mul, Left: &ir.BinOp{Op: ir.Add, Left: ir.Int(2), Right: ir.Int(3)}, Right: ir.Int(4)},
		&ir.UnOp{Op: ir.Not, Right: ir.Int(0)},
		ir.Var{Variable: &ir.Variable{Name: "a", Indices: []ir.Expression{&ir.BinOp{Op: ir.Add, Left: ir.Int(1), Right: ir.Int(1)}}}},
	}
	for _, e := range exprs {
		once := Fold(e)
		twice := Fold(once)
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Errorf("Fold not idempotent for %v (-once +twice):\n%s", e, diff)
		}
	}
}
