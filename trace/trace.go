// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package trace parses the line-oriented execution trace emitted by a
// program instrumented with the codegen package's tracer (spec.md §4.C)
// into per-instance memory accesses and statement instances.
package trace

import "sort"

// Category distinguishes a read from a write access.
type Category int

const (
	Read Category = iota
	Write
)

// Access is one element-granularity read or write. Statement is not the
// trace line's raw statement label but the zero-based index into
// Result.Instances of the StatementInstance that made the access (see
// Parse). Indices is nil for a scalar access.
type Access struct {
	Statement int
	Var       string
	Category  Category
	Indices   []int
}

// StatementInstance is a single dynamic execution of a statement, with a
// snapshot of the enclosing loop labels and their current index values.
type StatementInstance struct {
	Statement int
	Loops     []int
	Iteration []int
}

// Result is the output of Parse: every statement instance observed, and
// every access, with Access.Statement rewritten to index into Instances.
type Result struct {
	Instances []StatementInstance
	Accesses  []Access
}

// ByVariable partitions accesses by variable name, each partition sorted
// ascending by its Indices tuple (lexicographically), per spec.md §4.C.
// Statement and Category do not participate in the ordering.
func (r *Result) ByVariable() map[string][]Access {
	partitions := make(map[string][]Access)
	for _, a := range r.Accesses {
		partitions[a.Var] = append(partitions[a.Var], a)
	}
	for _, accesses := range partitions {
		sort.SliceStable(accesses, func(i, j int) bool {
			return compareIndices(accesses[i].Indices, accesses[j].Indices) < 0
		})
	}
	return partitions
}

func compareIndices(a, b []int) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}
