// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dependence

import (
	"sort"

	"github.com/allenkennedy/loopvec/trace"
)

// Analyze computes the aggregated dependence edges observed in a parsed
// trace, per spec.md §4.D: accesses are partitioned by variable, split
// into maximal runs sharing an identical index tuple, and each run is fed
// through the use/def transition table below.
func Analyze(result *trace.Result) []Dependency {
	agg := make(map[Edge]map[LevelDependency]struct{})

	for _, accesses := range result.ByVariable() {
		analyzeVariable(accesses, result.Instances, agg)
	}

	deps := make([]Dependency, 0, len(agg))
	for edge, set := range agg {
		levelDeps := make([]LevelDependency, 0, len(set))
		for ld := range set {
			levelDeps = append(levelDeps, ld)
		}
		sortLevelDeps(levelDeps)
		deps = append(deps, Dependency{Edge: edge, LevelDeps: levelDeps})
	}

	sort.Slice(deps, func(i, j int) bool {
		if deps[i].Edge.From != deps[j].Edge.From {
			return deps[i].Edge.From < deps[j].Edge.From
		}
		return deps[i].Edge.To < deps[j].Edge.To
	})
	return deps
}

func analyzeVariable(sorted []trace.Access, instances []trace.StatementInstance, agg map[Edge]map[LevelDependency]struct{}) {
	for _, group := range groupByIndices(sorted) {
		t := newTracker()
		for _, e := range t.transitions(group) {
			s1 := instances[e.from]
			s2 := instances[e.to]
			edge := Edge{From: s1.Statement, To: s2.Statement}
			ld := LevelDependency{Level: carryLevel(s1, s2), Kind: e.kind}

			set, ok := agg[edge]
			if !ok {
				set = make(map[LevelDependency]struct{})
				agg[edge] = set
			}
			set[ld] = struct{}{}
		}
	}
}

// groupByIndices splits a per-variable, index-sorted access list into
// maximal runs that share an identical Indices tuple.
func groupByIndices(sorted []trace.Access) [][]trace.Access {
	var groups [][]trace.Access
	start := 0
	for i := 1; i <= len(sorted); i++ {
		if i == len(sorted) || !indicesEqual(sorted[i].Indices, sorted[i-1].Indices) {
			groups = append(groups, sorted[start:i])
			start = i
		}
	}
	return groups
}

func indicesEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// carryLevel finds the loop nesting level that carries a dependence
// between two statement instances: the smallest 1-based index at which
// their iteration vectors first differ, within the common enclosing-loop
// prefix; 0 if they never differ (a loop-independent dependence).
func carryLevel(s1, s2 trace.StatementInstance) int {
	common := 0
	for common < len(s1.Loops) && common < len(s2.Loops) && s1.Loops[common] == s2.Loops[common] {
		common++
	}
	for i := 0; i < common; i++ {
		if s1.Iteration[i] != s2.Iteration[i] {
			return i + 1
		}
	}
	return 0
}

// instanceEdge is a dependence between two statement *instances* (not yet
// resolved to statement labels).
type instanceEdge struct {
	from, to int
	kind     Type
}

// useDefEntry collapses every consecutive access by the same statement
// instance into one (use?, def?) pair.
type useDefEntry struct {
	instance int
	use, def bool
}

// tracker implements the per-group InstanceTracker of spec.md §4.D.
type tracker struct {
	useDef []useDefEntry
}

func newTracker() *tracker { return &tracker{} }

func (t *tracker) addAccess(a trace.Access) {
	if n := len(t.useDef); n > 0 && t.useDef[n-1].instance == a.Statement {
		if a.Category == trace.Read {
			t.useDef[n-1].use = true
		} else {
			t.useDef[n-1].def = true
		}
		return
	}

	e := useDefEntry{instance: a.Statement}
	if a.Category == trace.Read {
		e.use = true
	} else {
		e.def = true
	}
	t.useDef = append(t.useDef, e)
}

// transitions runs the use/def transition table of spec.md §4.D over one
// index-equal group, emitting dependence edges between instances.
func (t *tracker) transitions(group []trace.Access) []instanceEdge {
	for _, a := range group {
		t.addAccess(a)
	}

	var edges []instanceEdge
	lastWrite := -1
	var uses []int

	for i := 0; i+1 < len(t.useDef); i++ {
		s1, s2 := t.useDef[i], t.useDef[i+1]
		u1, d1, u2, d2 := s1.use, s1.def, s2.use, s2.def

		switch {
		case !u1 && d1 && !u2 && d2:
			edges = append(edges, instanceEdge{s1.instance, s2.instance, Output})
			lastWrite, uses = s2.instance, nil
		case !u1 && d1 && u2 && !d2:
			edges = append(edges, instanceEdge{s1.instance, s2.instance, True})
			lastWrite, uses = s1.instance, nil
		case !u1 && d1 && u2 && d2:
			edges = append(edges,
				instanceEdge{s1.instance, s2.instance, True},
				instanceEdge{s1.instance, s2.instance, Output})
			lastWrite, uses = s2.instance, nil
		case u1 && !d1 && !u2 && d2:
			for _, u := range uses {
				edges = append(edges, instanceEdge{u, s2.instance, Anti})
			}
			if lastWrite >= 0 {
				edges = append(edges, instanceEdge{lastWrite, s2.instance, Output})
			}
			edges = append(edges, instanceEdge{s1.instance, s2.instance, Anti})
			lastWrite, uses = s2.instance, nil
		case u1 && !d1 && u2 && d2:
			for _, u := range uses {
				edges = append(edges, instanceEdge{u, s2.instance, Anti})
			}
			if lastWrite >= 0 {
				edges = append(edges, instanceEdge{lastWrite, s2.instance, True})
			}
			edges = append(edges, instanceEdge{s1.instance, s2.instance, Anti})
			lastWrite, uses = s2.instance, nil
		case u1 && d1 && !u2 && d2:
			edges = append(edges,
				instanceEdge{s1.instance, s2.instance, Anti},
				instanceEdge{s1.instance, s2.instance, Output})
			lastWrite, uses = s2.instance, nil
		case u1 && d1 && u2 && !d2:
			edges = append(edges, instanceEdge{s1.instance, s2.instance, True})
			lastWrite, uses = s1.instance, nil
		case u1 && d1 && u2 && d2:
			edges = append(edges,
				instanceEdge{s1.instance, s2.instance, True},
				instanceEdge{s1.instance, s2.instance, Output},
				instanceEdge{s1.instance, s2.instance, Anti})
			lastWrite, uses = s2.instance, nil
		default: // u1 && !d1 && u2 && !d2: a plain read followed by a read
			uses = append(uses, s1.instance)
			if lastWrite >= 0 {
				edges = append(edges, instanceEdge{lastWrite, s2.instance, True})
			}
		}
	}

	return edges
}
