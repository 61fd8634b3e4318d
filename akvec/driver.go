// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package akvec implements the Allen-Kennedy loop vectorization driver
// of spec.md §4.H: a recursive procedure that, given a dependence graph
// and the IR it was computed from, filters the graph by carry level,
// finds its strongly connected components, and for each component either
// regenerates the enclosing loop (a cycle, meaning the dependence cannot
// be vectorized away at this level) or emits a vector assignment (no
// cycle).
package akvec

import (
	"errors"
	"fmt"
	"io"

	"github.com/allenkennedy/loopvec/codegen"
	"github.com/allenkennedy/loopvec/graph"
	"github.com/allenkennedy/loopvec/internal/diag"
	"github.com/allenkennedy/loopvec/ir"
)

// Sentinel errors for the Allen-Kennedy lookup misses of spec.md §7/§10.2:
// a malformed graph/AST pairing, not a bug in the algorithm itself.
var (
	// ErrEmptySCC is returned if a strongly connected component has no
	// members — this cannot happen from a correctly computed Tarjan
	// result and indicates caller misuse.
	ErrEmptySCC = errors.New("akvec: empty strongly connected component")
	// ErrMissingStatement is returned when a graph node's label has no
	// entry in StatMap.
	ErrMissingStatement = errors.New("akvec: statement label missing from stat_map")
	// ErrNoLoopAtDepth is returned when a cyclic SCC's representative
	// statement has fewer enclosing loops than the current recursion
	// depth c.
	ErrNoLoopAtDepth = errors.New("akvec: representative statement has no loop at depth c")
	// ErrMissingLoop is returned when a loop label named by StatLPs has
	// no entry in LoopMap.
	ErrMissingLoop = errors.New("akvec: loop label missing from loop_map")
)

// Driver holds the fixed inputs to one Allen-Kennedy vectorization run:
// the IR's loop and statement maps, and the Codegen/Vectorizer pair that
// emits the output program (spec.md §4.H).
type Driver struct {
	LoopMap map[int]*ir.Loop    // loop label -> Loop
	StatMap map[int]*ir.Assign  // statement label -> Assign
	StatLPs map[int][]int       // statement label -> enclosing loop labels, outermost first

	Codegen *codegen.Codegen
}

// Vectorize runs the Allen-Kennedy driver over g at carry level c, per
// spec.md §4.H. g is the dependence graph for the statements reachable
// at this recursion level (the whole program's graph at the top-level
// call, c == 0). The emitted indentation tracks c directly, one do-loop
// per recursion level, matching the reference's `generate_loop_vec_start(l,
// c)`/`generate_assignment(assign, c)` calls.
func (d *Driver) Vectorize(g *graph.Graph, c int) error {
	filtered := g.FilterByLevel(c)

	for _, comp := range reverseTopological(filtered) {
		if len(comp) == 0 {
			return ErrEmptySCC
		}

		sub := filtered.Induced(comp)
		if sub.IsCyclic() {
			if err := d.vectorizeCycle(sub, comp, c); err != nil {
				return err
			}
			continue
		}

		if err := d.vectorizeAcyclic(comp, c); err != nil {
			return err
		}
	}
	return nil
}

// reverseTopological returns g's strongly connected components in
// reverse of Tarjan's natural emission order: Graph.SCC emits sinks
// first (per its doc comment), so reversing gives sources first — the
// order spec.md §4.H step 3 requires.
func reverseTopological(g *graph.Graph) [][]int {
	comps := g.SCC()
	out := make([][]int, len(comps))
	for i, c := range comps {
		out[len(comps)-1-i] = c
	}
	return out
}

// vectorizeCycle handles one cyclic SCC: pick a representative node,
// look up the loop enclosing it at depth c, regenerate that loop's
// header/footer around a recursive call at c+1.
func (d *Driver) vectorizeCycle(sub *graph.Graph, comp []int, c int) error {
	rep := representative(comp)

	lps, ok := d.StatLPs[rep]
	if !ok {
		return fmt.Errorf("%w: statement %d", ErrMissingStatement, rep)
	}
	if c >= len(lps) {
		return fmt.Errorf("%w: statement %d at depth %d", ErrNoLoopAtDepth, rep, c)
	}

	loop, ok := d.LoopMap[lps[c]]
	if !ok {
		return fmt.Errorf("%w: loop label %d", ErrMissingLoop, lps[c])
	}

	if err := d.Codegen.GenerateLoopVecStart(loop, c); err != nil {
		return err
	}
	if err := d.Vectorize(sub, c+1); err != nil {
		return err
	}
	return d.Codegen.GenerateLoopVecEnd(loop, c)
}

// vectorizeAcyclic handles one non-cyclic SCC: every member statement is
// emitted as a vector assignment, with the vectorizer's loop-replacement
// map set from a representative member's remaining enclosing loops
// (StatLPs[c:]).
func (d *Driver) vectorizeAcyclic(comp []int, c int) error {
	rep := representative(comp)
	lps, ok := d.StatLPs[rep]
	if !ok {
		return fmt.Errorf("%w: statement %d", ErrMissingStatement, rep)
	}

	rest := lps[min(c, len(lps)):]
	loopReplacement := make(map[string]*ir.Loop, len(rest))
	for _, label := range rest {
		loop, ok := d.LoopMap[label]
		if !ok {
			return fmt.Errorf("%w: loop label %d", ErrMissingLoop, label)
		}
		loopReplacement[loop.Var] = loop
	}
	d.Codegen.SetLoopData(loopReplacement)

	for _, label := range sortedInts(comp) {
		assign, ok := d.StatMap[label]
		if !ok {
			return fmt.Errorf("%w: statement %d", ErrMissingStatement, label)
		}
		if err := d.Codegen.GenerateAssignment(assign, c); err != nil {
			return err
		}
	}
	return nil
}

// representative picks a single statement label from an SCC to look up
// its enclosing loops by: every member of an SCC is mutually dependent,
// so any member's StatLPs prefix names the same enclosing loops up to
// the current depth.
func representative(comp []int) int {
	rep := comp[0]
	for _, n := range comp[1:] {
		if n < rep {
			rep = n
		}
	}
	return rep
}

func sortedInts(xs []int) []int {
	out := append([]int(nil), xs...)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// BuildLoopMap walks the whole statement tree and returns every Loop
// keyed by its own label, recursing into loop bodies (ast_loops of
// original_source/src/vectorization/mod.rs).
func BuildLoopMap(statements []ir.Statement) map[int]*ir.Loop {
	m := make(map[int]*ir.Loop)
	collectLoops(statements, m)
	return m
}

func collectLoops(statements []ir.Statement, m map[int]*ir.Loop) {
	for _, s := range statements {
		if l, ok := s.(*ir.Loop); ok {
			m[l.Lbl] = l
			collectLoops(l.Body, m)
		}
	}
}

// BuildStatementMaps walks the whole statement tree and returns every
// Assign keyed by its label, plus the labels of its enclosing loops
// (outermost first), recursing into loop bodies. An If statement is
// warned about and skipped entirely — neither it nor any assignment
// nested inside it is added to either map — matching ast_statements of
// original_source/src/vectorization/mod.rs, which the vectorizer
// (§4.H) documents as a silently-skipped, only-warned construct (§7).
func BuildStatementMaps(statements []ir.Statement, log *diag.Log) (map[int]*ir.Assign, map[int][]int) {
	statMap := make(map[int]*ir.Assign)
	statLPs := make(map[int][]int)
	collectStatements(statements, nil, statMap, statLPs, log)
	return statMap, statLPs
}

func collectStatements(statements []ir.Statement, loopStack []int, statMap map[int]*ir.Assign, statLPs map[int][]int, log *diag.Log) {
	for _, s := range statements {
		switch st := s.(type) {
		case *ir.Loop:
			collectStatements(st.Body, append(loopStack, st.Lbl), statMap, statLPs, log)
		case *ir.Assign:
			statMap[st.Lbl] = st
			statLPs[st.Lbl] = append([]int(nil), loopStack...)
		case *ir.If:
			if log != nil {
				log.WarnfAt(fmt.Sprintf("%d", st.Lbl), "If statements are not supported in vectorization; skipped")
			}
		}
	}
}

// Run vectorizes ast against the dependence graph g, writing the
// resulting program to out, and corresponds to the reference's top-level
// `vectorize()`: build loop/statement maps, emit the program header, run
// the Allen-Kennedy driver from carry level 0, emit the footer.
func Run(out io.Writer, ast *ir.Ast, g *graph.Graph, folding bool, log *diag.Log) error {
	loopMap := BuildLoopMap(ast.Statements)
	statMap, statLPs := BuildStatementMaps(ast.Statements, log)

	vec := codegen.NewVectorizer(folding)
	cg := codegen.New(vec, out)

	if err := cg.GenerateHeader(ast); err != nil {
		return err
	}

	d := &Driver{LoopMap: loopMap, StatMap: statMap, StatLPs: statLPs, Codegen: cg}
	if err := d.Vectorize(g, 0); err != nil {
		return err
	}

	return cg.GenerateFooter(ast)
}
