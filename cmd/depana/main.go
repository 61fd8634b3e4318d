// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The depana command reads an execution trace (project_name.trace),
// computes its dependence graph, and writes it both as a
// project_name.dot visualization and a project_name.graph JSON file
// the vectorize_fold command consumes, per spec.md §6.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/allenkennedy/loopvec/dependence"
	"github.com/allenkennedy/loopvec/graph"
	"github.com/allenkennedy/loopvec/trace"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s project_name\n", os.Args[0])
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
	}
	projectName := flag.Arg(0)

	tracePath := projectName + ".trace"
	traceFile, err := os.Open(tracePath)
	if err != nil {
		printError(fmt.Errorf("could not open %s: %v", tracePath, err))
	}
	defer traceFile.Close()

	result, err := trace.Parse(traceFile)
	if err != nil {
		printError(fmt.Errorf("could not find dependencies: %v", err))
	}

	deps := dependence.Analyze(result)
	g := graph.Build(statementLabels(result), deps)

	dotPath := projectName + ".dot"
	dotFile, err := os.Create(dotPath)
	if err != nil {
		printError(fmt.Errorf("could not print graph to %s: %v", dotPath, err))
	}
	if err := g.WriteDot(dotFile); err != nil {
		dotFile.Close()
		printError(fmt.Errorf("could not print graph to %s: %v", dotPath, err))
	}
	dotFile.Close()

	graphPath := projectName + ".graph"
	graphFile, err := os.Create(graphPath)
	if err != nil {
		printError(fmt.Errorf("could not open %s file for writing: %v", graphPath, err))
	}
	defer graphFile.Close()
	if err := g.WriteJSON(graphFile); err != nil {
		printError(fmt.Errorf("could not serialize graph to %s: %v", graphPath, err))
	}
}

// statementLabels collects every distinct statement label observed in
// the trace, so the graph has a node even for a statement with no
// dependence edges at all.
func statementLabels(result *trace.Result) []int {
	seen := make(map[int]bool)
	var labels []int
	for _, inst := range result.Instances {
		if !seen[inst.Statement] {
			seen[inst.Statement] = true
			labels = append(labels, inst.Statement)
		}
	}
	return labels
}

func printError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
