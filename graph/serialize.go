// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import (
	"encoding/json"
	"io"

	"github.com/allenkennedy/loopvec/dependence"
)

// wireGraph is the .graph JSON on-disk shape of spec.md §6: nodes in
// stable ascending-label order, edges sorted by From, then To, so a
// round trip through MarshalJSON/ParseJSON reproduces
// the same bytes.
type wireGraph struct {
	Nodes []int       `json:"nodes"`
	Edges []wireEdge  `json:"edges"`
}

type wireEdge struct {
	From      int                         `json:"from"`
	To        int                         `json:"to"`
	LevelDeps []wireLevelDependency       `json:"deps"`
}

type wireLevelDependency struct {
	Level int    `json:"level"`
	Kind  string `json:"kind"`
}

// MarshalJSON renders g as the .graph wire format.
func (g *Graph) MarshalJSON() ([]byte, error) {
	w := wireGraph{Nodes: g.Nodes()}
	for _, d := range g.Edges() {
		we := wireEdge{From: d.Edge.From, To: d.Edge.To}
		for _, ld := range d.LevelDeps {
			we.LevelDeps = append(we.LevelDeps, wireLevelDependency{Level: ld.Level, Kind: ld.Kind.String()})
		}
		w.Edges = append(w.Edges, we)
	}
	return json.Marshal(w)
}

// WriteJSON writes the .graph wire format for g to w.
func (g *Graph) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(g)
}

// ParseJSON reads a .graph file previously written by WriteJSON/
// MarshalJSON.
func ParseJSON(r io.Reader) (*Graph, error) {
	var w wireGraph
	if err := json.NewDecoder(r).Decode(&w); err != nil {
		return nil, err
	}

	g := New()
	for _, n := range w.Nodes {
		g.AddNode(n)
	}
	for _, we := range w.Edges {
		levelDeps := make([]dependence.LevelDependency, 0, len(we.LevelDeps))
		for _, wld := range we.LevelDeps {
			levelDeps = append(levelDeps, dependence.LevelDependency{Level: wld.Level, Kind: kindFromString(wld.Kind)})
		}
		g.AddEdge(we.From, we.To, levelDeps)
	}
	return g, nil
}

func kindFromString(s string) dependence.Type {
	switch s {
	case "A":
		return dependence.Anti
	case "O":
		return dependence.Output
	default:
		return dependence.True
	}
}
