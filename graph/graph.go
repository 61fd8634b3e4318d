// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package graph implements the typed dependence multigraph of spec.md
// §3/§4.E: nodes are statement labels, edges carry a sorted list of
// (level, kind) dependence weights, and the package provides the
// primitives the Allen-Kennedy driver needs (edge filtering, strongly
// connected components) plus the two external serializations of §6
// (.dot, .graph).
package graph

import (
	"sort"

	"github.com/allenkennedy/loopvec/dependence"
)

// Graph is a directed multigraph whose nodes are statement labels and
// whose edges carry every (level, kind) dependence observed between two
// labels. Mutation is confined to construction (Build/AddNode/AddEdge);
// once built, a Graph is read only.
type Graph struct {
	nodes []int // statement labels, ascending
	index map[int]int

	// succ/pred are adjacency lists keyed by statement label. edges maps
	// an (from,to) pair to its weight.
	succ  map[int][]int
	pred  map[int][]int
	edges map[dependence.Edge][]dependence.LevelDependency
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		index: make(map[int]int),
		succ:  make(map[int][]int),
		pred:  make(map[int][]int),
		edges: make(map[dependence.Edge][]dependence.LevelDependency),
	}
}

// Build constructs a graph with one node per label in labels (order is
// not significant; nodes are stored in ascending label order) and one
// edge per dependency, per spec.md §4.E.
func Build(labels []int, deps []dependence.Dependency) *Graph {
	g := New()

	sorted := append([]int(nil), labels...)
	sort.Ints(sorted)
	for _, l := range sorted {
		g.AddNode(l)
	}

	for _, d := range deps {
		g.AddEdge(d.Edge.From, d.Edge.To, d.LevelDeps)
	}

	return g
}

// AddNode inserts a node for the given statement label if it is not
// already present.
func (g *Graph) AddNode(label int) {
	if _, ok := g.index[label]; ok {
		return
	}
	g.index[label] = len(g.nodes)
	g.nodes = append(g.nodes, label)
}

// AddEdge inserts or replaces the edge from -> to with the given weight.
// Parallel edges between the same two labels are never created: multiple
// (level, kind) pairs live on one edge's weight.
func (g *Graph) AddEdge(from, to int, levelDeps []dependence.LevelDependency) {
	g.AddNode(from)
	g.AddNode(to)

	e := dependence.Edge{From: from, To: to}
	if _, exists := g.edges[e]; !exists {
		g.succ[from] = append(g.succ[from], to)
		g.pred[to] = append(g.pred[to], from)
	}
	g.edges[e] = append([]dependence.LevelDependency(nil), levelDeps...)
}

// Nodes returns every statement label in the graph, ascending.
func (g *Graph) Nodes() []int {
	return append([]int(nil), g.nodes...)
}

// Successors returns the labels label has an outgoing edge to.
func (g *Graph) Successors(label int) []int {
	return append([]int(nil), g.succ[label]...)
}

// Weight returns the level dependencies on the edge from -> to, and
// whether that edge exists.
func (g *Graph) Weight(from, to int) ([]dependence.LevelDependency, bool) {
	w, ok := g.edges[dependence.Edge{From: from, To: to}]
	return w, ok
}

// Edges returns every edge in the graph together with its weight, in a
// deterministic (from, then to) order.
func (g *Graph) Edges() []dependence.Dependency {
	deps := make([]dependence.Dependency, 0, len(g.edges))
	for e, w := range g.edges {
		deps = append(deps, dependence.Dependency{Edge: e, LevelDeps: w})
	}
	sort.Slice(deps, func(i, j int) bool {
		if deps[i].Edge.From != deps[j].Edge.From {
			return deps[i].Edge.From < deps[j].Edge.From
		}
		return deps[i].Edge.To < deps[j].Edge.To
	})
	return deps
}

// FilterByLevel keeps every edge with at least one LevelDependency whose
// Level is 0 or greater than c, dropping edges that become empty, per
// spec.md §4.H step 1. Nodes are preserved even if they become isolated.
func (g *Graph) FilterByLevel(c int) *Graph {
	out := New()
	for _, n := range g.nodes {
		out.AddNode(n)
	}

	for _, d := range g.Edges() {
		var kept []dependence.LevelDependency
		for _, ld := range d.LevelDeps {
			if ld.Level == 0 || ld.Level > c {
				kept = append(kept, ld)
			}
		}
		if len(kept) > 0 {
			out.AddEdge(d.Edge.From, d.Edge.To, kept)
		}
	}
	return out
}

// Induced returns the subgraph induced by the given set of labels: every
// node in labels, and every edge of g whose endpoints are both in labels.
func (g *Graph) Induced(labels []int) *Graph {
	set := make(map[int]bool, len(labels))
	for _, l := range labels {
		set[l] = true
	}

	out := New()
	for _, l := range labels {
		out.AddNode(l)
	}
	for _, d := range g.Edges() {
		if set[d.Edge.From] && set[d.Edge.To] {
			out.AddEdge(d.Edge.From, d.Edge.To, d.LevelDeps)
		}
	}
	return out
}
