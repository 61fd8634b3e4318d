// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import (
	"bytes"
	"os"
	"testing"

	"github.com/allenkennedy/loopvec/dependence"
	"github.com/google/go-cmp/cmp"
)

func sampleDeps() []dependence.Dependency {
	return []dependence.Dependency{
		{
			Edge:      dependence.Edge{From: 1, To: 2},
			LevelDeps: []dependence.LevelDependency{{Level: 0, Kind: dependence.True}},
		},
		{
			Edge:      dependence.Edge{From: 2, To: 3},
			LevelDeps: []dependence.LevelDependency{{Level: 1, Kind: dependence.Anti}},
		},
	}
}

func TestBuildAndEdges(t *testing.T) {
	g := Build([]int{3, 1, 2}, sampleDeps())

	if diff := cmp.Diff([]int{1, 2, 3}, g.Nodes()); diff != "" {
		t.Errorf("Nodes mismatch (-want +got):\n%s", diff)
	}

	edges := g.Edges()
	if len(edges) != 2 {
		t.Fatalf("len(Edges()) = %d, want 2", len(edges))
	}
	if edges[0].Edge != (dependence.Edge{From: 1, To: 2}) {
		t.Errorf("edges[0].Edge = %+v, want {1 2}", edges[0].Edge)
	}
}

func TestFilterByLevelDropsCarriedBelowThreshold(t *testing.T) {
	g := Build([]int{1, 2, 3}, sampleDeps())
	filtered := g.FilterByLevel(1)

	// The level-1 Anti edge (2->3) is dropped: the filter keeps level==0
	// or level>c, and with c=1 the check 1 > 1 is false.
	if _, ok := filtered.Weight(2, 3); ok {
		t.Errorf("Weight(2,3) survived FilterByLevel(1), want dropped (level 1 <= c 1)")
	}
	if _, ok := filtered.Weight(1, 2); !ok {
		t.Errorf("Weight(1,2) dropped by FilterByLevel(1), want kept (level-independent)")
	}
	// all nodes preserved even when isolated.
	if len(filtered.Nodes()) != 3 {
		t.Errorf("len(Nodes()) = %d, want 3", len(filtered.Nodes()))
	}
}

func TestFilterByLevelKeepsDeeperCarry(t *testing.T) {
	g := Build([]int{1, 2}, []dependence.Dependency{
		{Edge: dependence.Edge{From: 1, To: 2}, LevelDeps: []dependence.LevelDependency{{Level: 2, Kind: dependence.True}}},
	})
	filtered := g.FilterByLevel(1)
	if _, ok := filtered.Weight(1, 2); !ok {
		t.Errorf("Weight(1,2) dropped, want kept (level 2 > c 1)")
	}
}

func TestInducedKeepsOnlySelectedEdges(t *testing.T) {
	g := Build([]int{1, 2, 3}, sampleDeps())
	sub := g.Induced([]int{1, 2})
	if len(sub.Edges()) != 1 {
		t.Fatalf("len(sub.Edges()) = %d, want 1", len(sub.Edges()))
	}
	if _, ok := sub.Weight(1, 2); !ok {
		t.Errorf("Weight(1,2) missing from induced subgraph")
	}
}

func TestSCCFindsCycle(t *testing.T) {
	g := Build([]int{1, 2, 3}, []dependence.Dependency{
		{Edge: dependence.Edge{From: 1, To: 2}, LevelDeps: []dependence.LevelDependency{{Level: 0, Kind: dependence.True}}},
		{Edge: dependence.Edge{From: 2, To: 1}, LevelDeps: []dependence.LevelDependency{{Level: 1, Kind: dependence.Anti}}},
		{Edge: dependence.Edge{From: 2, To: 3}, LevelDeps: []dependence.LevelDependency{{Level: 0, Kind: dependence.True}}},
	})

	comps := g.SCC()
	var cyclic [][]int
	for _, c := range comps {
		if len(c) > 1 {
			cyclic = append(cyclic, c)
		}
	}
	if len(cyclic) != 1 {
		t.Fatalf("found %d multi-node SCCs, want 1: %+v", len(cyclic), comps)
	}
	want := []int{1, 2}
	if diff := cmp.Diff(want, sortedInts(cyclic[0])); diff != "" {
		t.Errorf("cyclic SCC mismatch (-want +got):\n%s", diff)
	}
}

func TestIsCyclicSelfLoop(t *testing.T) {
	g := Build([]int{1}, []dependence.Dependency{
		{Edge: dependence.Edge{From: 1, To: 1}, LevelDeps: []dependence.LevelDependency{{Level: 1, Kind: dependence.Output}}},
	})
	if !g.IsCyclic() {
		t.Error("IsCyclic() = false, want true for a self-loop")
	}
}

func TestIsCyclicAcyclicSingleNode(t *testing.T) {
	g := Build([]int{1}, nil)
	if g.IsCyclic() {
		t.Error("IsCyclic() = true, want false for an isolated node")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	g := Build([]int{1, 2, 3}, sampleDeps())

	var buf bytes.Buffer
	if err := g.WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	got, err := ParseJSON(&buf)
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}

	if diff := cmp.Diff(g.Nodes(), got.Nodes()); diff != "" {
		t.Errorf("Nodes mismatch after round trip (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(g.Edges(), got.Edges()); diff != "" {
		t.Errorf("Edges mismatch after round trip (-want +got):\n%s", diff)
	}
}

// TestWriteDotGoldenTwoStatements compares WriteDot's output against
// testdata/two_statements.dot byte-for-byte: one edge (1->2) carrying
// both a loop-independent True and Output dependence, each getting its
// own cluster since the graph is acyclic.
func TestWriteDotGoldenTwoStatements(t *testing.T) {
	g := Build([]int{1, 2}, []dependence.Dependency{
		{
			Edge: dependence.Edge{From: 1, To: 2},
			LevelDeps: []dependence.LevelDependency{
				{Level: 0, Kind: dependence.True},
				{Level: 0, Kind: dependence.Output},
			},
		},
	})

	var buf bytes.Buffer
	if err := g.WriteDot(&buf); err != nil {
		t.Fatalf("WriteDot: %v", err)
	}

	want, err := os.ReadFile("testdata/two_statements.dot")
	if err != nil {
		t.Fatalf("ReadFile(golden): %v", err)
	}
	if diff := cmp.Diff(string(want), buf.String()); diff != "" {
		t.Errorf("WriteDot mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteDotProducesClustersAndEdges(t *testing.T) {
	g := Build([]int{1, 2}, []dependence.Dependency{
		{Edge: dependence.Edge{From: 1, To: 2}, LevelDeps: []dependence.LevelDependency{{Level: 0, Kind: dependence.True}}},
	})

	var buf bytes.Buffer
	if err := g.WriteDot(&buf); err != nil {
		t.Fatalf("WriteDot: %v", err)
	}
	out := buf.String()
	if !bytes.Contains(buf.Bytes(), []byte("digraph dependences {")) {
		t.Errorf("WriteDot output missing digraph header: %s", out)
	}
	if !bytes.Contains(buf.Bytes(), []byte("s1 -> s2")) {
		t.Errorf("WriteDot output missing edge: %s", out)
	}
}
