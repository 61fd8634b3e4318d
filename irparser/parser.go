// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package irparser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/allenkennedy/loopvec/ir"
)

// ParseError reports a parse failure together with the unparsed
// remainder of the token stream, per spec.md §4.B/§7.
type ParseError struct {
	Expected string
	Got      string
	Pos      int
	Tokens   []string
}

func (e *ParseError) Error() string {
	remainder := strings.Join(e.Tokens[e.Pos:], " ")
	if len(remainder) > 80 {
		remainder = remainder[:80] + "..."
	}
	return fmt.Sprintf("ir: expected %s, got %q at token %d; unparsed remainder: %s",
		e.Expected, e.Got, e.Pos, remainder)
}

// Parse parses the full textual IR format into an *ir.Ast.
func Parse(text string) (*ir.Ast, error) {
	p := &parser{tokens: tokenize(text)}
	ast, err := p.parseAst()
	if err != nil {
		return nil, err
	}
	if p.peek() != "$" {
		return nil, p.fail("end of stream ($)")
	}
	return ast, nil
}

type parser struct {
	tokens []string
	pos    int
}

func (p *parser) peek() string {
	if p.pos >= len(p.tokens) {
		return ""
	}
	return p.tokens[p.pos]
}

func (p *parser) next() string {
	t := p.peek()
	p.pos++
	return t
}

func (p *parser) fail(expected string) error {
	return &ParseError{Expected: expected, Got: p.peek(), Pos: p.pos, Tokens: p.tokens}
}

func (p *parser) expect(tag string) error {
	if p.peek() != tag {
		return p.fail(fmt.Sprintf("%q", tag))
	}
	p.pos++
	return nil
}

func (p *parser) parseInt32() (int32, error) {
	tok := p.peek()
	n, err := strconv.ParseInt(tok, 10, 32)
	if err != nil {
		return 0, p.fail("integer")
	}
	p.pos++
	return int32(n), nil
}

func (p *parser) parseFloat64() (float64, error) {
	tok := p.peek()
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, p.fail("float")
	}
	p.pos++
	return f, nil
}

// name consumes a single raw identifier token (a NAME in the grammar).
func (p *parser) name() (string, error) {
	tok := p.peek()
	if tok == "" || tok == "$" {
		return "", p.fail("name")
	}
	p.pos++
	return tok, nil
}

func (p *parser) parseAst() (*ir.Ast, error) {
	name, err := p.name()
	if err != nil {
		return nil, err
	}

	var defs []*ir.Definition
	for p.peek() != "STMTLIST" {
		def, err := p.parseDef()
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}

	stmts, err := p.parseStmtList()
	if err != nil {
		return nil, err
	}

	return &ir.Ast{Name: name, VarDefs: defs, Statements: stmts}, nil
}

func (p *parser) parseDef() (*ir.Definition, error) {
	name, err := p.name()
	if err != nil {
		return nil, err
	}

	var dtype ir.DataType
	switch p.peek() {
	case "FLOAT":
		dtype = ir.RealType
		p.pos++
	case "INT":
		dtype = ir.IntType
		p.pos++
	default:
		return nil, p.fail(`"FLOAT" or "INT"`)
	}

	def := &ir.Definition{Name: name, Type: dtype}

	// An array definition is followed by a dimension count and that many
	// (lower, upper) pairs; a scalar definition has neither.
	if n, ok := p.tryInt32(); ok {
		for i := int32(0); i < n; i++ {
			lb, err := p.parseInt32()
			if err != nil {
				return nil, err
			}
			ub, err := p.parseInt32()
			if err != nil {
				return nil, err
			}
			def.Dimensions = append(def.Dimensions, ir.Dimension{Lower: lb, Upper: ub})
		}
	}

	return def, nil
}

// tryInt32 consumes the next token as an int32 if it parses as one,
// otherwise leaves the cursor untouched.
func (p *parser) tryInt32() (int32, bool) {
	n, err := strconv.ParseInt(p.peek(), 10, 32)
	if err != nil {
		return 0, false
	}
	p.pos++
	return int32(n), true
}

func (p *parser) parseStmtList() ([]ir.Statement, error) {
	if err := p.expect("STMTLIST"); err != nil {
		return nil, err
	}

	var stmts []ir.Statement
	for p.peek() != "/STMTLIST" {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}

	if err := p.expect("/STMTLIST"); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *parser) parseStatement() (ir.Statement, error) {
	switch p.peek() {
	case "ASSIGN":
		return p.parseAssign()
	case "FOR":
		return p.parseLoopOrIf()
	default:
		return nil, p.fail(`"ASSIGN" or "FOR"`)
	}
}

func (p *parser) parseAssign() (ir.Statement, error) {
	if err := p.expect("ASSIGN"); err != nil {
		return nil, err
	}
	if err := p.expect("@"); err != nil {
		return nil, err
	}
	label, err := p.parseInt32()
	if err != nil {
		return nil, err
	}
	lhs, err := p.parseVar()
	if err != nil {
		return nil, err
	}
	rhs, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ir.Assign{Lbl: int(label), Lhs: lhs, Rhs: rhs}, nil
}

// parseLoopOrIf disambiguates the shared FOR tag by peeking whether the
// token after the label is a NAME (loop) or an EXPR (if), per spec.md
// §4.B.
func (p *parser) parseLoopOrIf() (ir.Statement, error) {
	if err := p.expect("FOR"); err != nil {
		return nil, err
	}
	if err := p.expect("@"); err != nil {
		return nil, err
	}
	label, err := p.parseInt32()
	if err != nil {
		return nil, err
	}

	if p.peek() == "EXPR" {
		cond, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		thenBody, err := p.parseStmtList()
		if err != nil {
			return nil, err
		}
		elseBody, err := p.parseStmtList()
		if err != nil {
			return nil, err
		}
		return &ir.If{Lbl: int(label), Cond: cond, Then: thenBody, Else: elseBody}, nil
	}

	loopVar, err := p.name()
	if err != nil {
		return nil, err
	}
	lower, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	upper, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseStmtList()
	if err != nil {
		return nil, err
	}
	return &ir.Loop{Lbl: int(label), Var: loopVar, Lower: lower, Upper: upper, Body: body}, nil
}

func (p *parser) parseVar() (*ir.Variable, error) {
	if err := p.expect("VAR"); err != nil {
		return nil, err
	}
	name, err := p.name()
	if err != nil {
		return nil, err
	}

	v := &ir.Variable{Name: name}
	if p.peek() == "EXPRLIST" {
		indices, err := p.parseExprList()
		if err != nil {
			return nil, err
		}
		v.Indices = indices
	}
	return v, nil
}

func (p *parser) parseExprList() ([]ir.Expression, error) {
	if err := p.expect("EXPRLIST"); err != nil {
		return nil, err
	}

	var exprs []ir.Expression
	for p.peek() != "/EXPRLIST" {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	if len(exprs) == 0 {
		return nil, p.fail("at least one expression in EXPRLIST")
	}

	if err := p.expect("/EXPRLIST"); err != nil {
		return nil, err
	}
	return exprs, nil
}

func (p *parser) parseExpr() (ir.Expression, error) {
	if err := p.expect("EXPR"); err != nil {
		return nil, err
	}

	switch p.peek() {
	case "FLOAT":
		p.pos++
		f, err := p.parseFloat64()
		if err != nil {
			return nil, err
		}
		return ir.Real(f), nil
	case "INT":
		p.pos++
		n, err := p.parseInt32()
		if err != nil {
			return nil, err
		}
		return ir.Int(n), nil
	case "BINOP":
		return p.parseBinOp()
	case "UNOP":
		return p.parseUnOp()
	case "VAR":
		v, err := p.parseVar()
		if err != nil {
			return nil, err
		}
		return ir.Var{Variable: v}, nil
	case "EXPR":
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ir.Paren{Inner: inner}, nil
	default:
		return nil, p.fail("FLOAT, INT, BINOP, UNOP, VAR, or EXPR")
	}
}

func (p *parser) parseBinOp() (ir.Expression, error) {
	if err := p.expect("BINOP"); err != nil {
		return nil, err
	}
	op, err := p.parseOp()
	if err != nil {
		return nil, err
	}
	left, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	right, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ir.BinOp{Op: op, Left: left, Right: right}, nil
}

func (p *parser) parseUnOp() (ir.Expression, error) {
	if err := p.expect("UNOP"); err != nil {
		return nil, err
	}
	op, err := p.parseOp()
	if err != nil {
		return nil, err
	}
	right, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ir.UnOp{Op: op, Right: right}, nil
}

var opTokens = map[string]ir.OpType{
	"+":     ir.Add,
	"-":     ir.Sub,
	"*":     ir.Mul,
	"/":     ir.Div,
	"==":    ir.Eq,
	"<>":    ir.NotEq,
	">":     ir.Gt,
	">=":    ir.GtEq,
	"<":     ir.Lt,
	"<=":    ir.LtEq,
	".and.": ir.And,
	".or.":  ir.Or,
	".not.": ir.Not,
}

func (p *parser) parseOp() (ir.OpType, error) {
	op, ok := opTokens[p.peek()]
	if !ok {
		return 0, p.fail("an operator token")
	}
	p.pos++
	return op, nil
}
