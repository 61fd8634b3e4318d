// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import (
	"fmt"
	"io"

	"github.com/allenkennedy/loopvec/dependence"
)

// WriteDot renders g as a Graphviz .dot digraph, per spec.md §6: one
// cluster subgraph per strongly connected component of the *unfiltered*
// graph (spec.md §12 — this is deliberately the unfiltered SCC set, not
// the per-recursion-level filtered one the Allen-Kennedy driver computes
// internally), a node per statement label, and an edge per dependence
// labeled with its (level, kind) pairs as "<kind><level>" tokens, e.g.
// "A1 T2".
func (g *Graph) WriteDot(w io.Writer) error {
	bw := &errWriter{w: w}

	fmt.Fprintln(bw, "digraph dependences {")

	for i, comp := range g.SCC() {
		fmt.Fprintf(bw, "  subgraph cluster_%d {\n", i)
		for _, n := range sortedInts(comp) {
			fmt.Fprintf(bw, "    s%d [label=\"%d\"];\n", n, n)
		}
		fmt.Fprintln(bw, "  }")
	}

	for _, d := range g.Edges() {
		fmt.Fprintf(bw, "  s%d -> s%d [label=\"%s\"];\n", d.Edge.From, d.Edge.To, edgeLabel(d.LevelDeps))
	}

	fmt.Fprintln(bw, "}")
	return bw.err
}

func edgeLabel(levelDeps []dependence.LevelDependency) string {
	s := ""
	for i, ld := range levelDeps {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%s%d", ld.Kind, ld.Level)
	}
	return s
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

// errWriter collapses a chain of Fprint* error checks into one deferred
// check, the same pattern the teacher's text/ package uses when emitting
// a multi-line rendering.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	if err != nil {
		ew.err = err
	}
	return n, err
}
