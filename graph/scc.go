// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import "github.com/bits-and-blooms/bitset"

// SCC returns the strongly connected components of g using Tarjan's
// algorithm. Components are returned in the order Tarjan naturally
// emits them — reverse topological order of the condensation (a
// component is finished, and so appended, only once every component it
// can reach has already been appended) — per spec.md §8's "SCC emission
// order" property.
func (g *Graph) SCC() [][]int {
	t := &tarjan{
		g:       g,
		index:   make(map[int]int, len(g.nodes)),
		lowlink: make(map[int]int, len(g.nodes)),
		visited: make(map[int]bool, len(g.nodes)),
		onStack: bitset.New(uint(len(g.nodes)) + 1),
	}

	for _, n := range g.nodes {
		if !t.visited[n] {
			t.strongConnect(n)
		}
	}
	return t.components
}

// tarjan is the recursive state of one SCC computation. onStack is a
// bitset indexed by each node's dense position in g.nodes — the same
// dense-index-keyed-bitset technique the teacher repository uses for its
// per-block GEN/KILL/IN/OUT dataflow sets (extras/cfg/df.go), here
// tracking which nodes are currently on Tarjan's stack.
type tarjan struct {
	g       *Graph
	counter int
	index   map[int]int
	lowlink map[int]int
	visited map[int]bool
	onStack *bitset.BitSet
	stack   []int

	components [][]int
}

func (t *tarjan) strongConnect(v int) {
	t.index[v] = t.counter
	t.lowlink[v] = t.counter
	t.counter++
	t.visited[v] = true
	t.stack = append(t.stack, v)
	t.onStack.Set(uint(t.g.index[v]))

	for _, w := range t.g.succ[v] {
		switch {
		case !t.visited[w]:
			t.strongConnect(w)
			if t.lowlink[w] < t.lowlink[v] {
				t.lowlink[v] = t.lowlink[w]
			}
		case t.onStack.Test(uint(t.g.index[w])):
			if t.index[w] < t.lowlink[v] {
				t.lowlink[v] = t.index[w]
			}
		}
	}

	if t.lowlink[v] != t.index[v] {
		return
	}

	var comp []int
	for {
		w := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]
		t.onStack.Clear(uint(t.g.index[w]))
		comp = append(comp, w)
		if w == v {
			break
		}
	}
	t.components = append(t.components, comp)
}

// IsCyclic reports whether g (expected to be the subgraph induced by one
// SCC) contains a directed cycle: either it has more than one node (an
// SCC with >1 member is a cycle by definition) or its single node has a
// self-loop.
func (g *Graph) IsCyclic() bool {
	if len(g.nodes) > 1 {
		return true
	}
	if len(g.nodes) == 1 {
		n := g.nodes[0]
		if _, ok := g.Weight(n, n); ok {
			return true
		}
	}
	return false
}
