// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The vectorize_fold command reads a project's dependence graph
// (project_name.graph) and IR program (project_name.ast) and emits a
// vectorized Fortran-like program (project_name_vectorized_fold.f90),
// constant-folding index expressions along the way, per spec.md §6.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/allenkennedy/loopvec/akvec"
	"github.com/allenkennedy/loopvec/graph"
	"github.com/allenkennedy/loopvec/internal/diag"
	"github.com/allenkennedy/loopvec/irparser"
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

	graphPath := projectName + ".graph"
	graphFile, err := os.Open(graphPath)
	if err != nil {
		printError(fmt.Errorf("could not open %s: %v", graphPath, err))
	}
	defer graphFile.Close()

	g, err := graph.ParseJSON(graphFile)
	if err != nil {
		printError(fmt.Errorf("could not deserialize %s: %v", graphPath, err))
	}

	astPath := projectName + ".ast"
	irText, err := os.ReadFile(astPath)
	if err != nil {
		printError(fmt.Errorf("could not open %s: %v", astPath, err))
	}

	ast, err := irparser.Parse(string(irText))
	if err != nil {
		printError(fmt.Errorf("could not parse %s: %v", astPath, err))
	}

	outPath := projectName + "_vectorized_fold.f90"
	out, err := os.Create(outPath)
	if err != nil {
		printError(fmt.Errorf("could not open %s for writing: %v", outPath, err))
	}
	defer out.Close()

	log := diag.NewLog()
	if err := akvec.Run(out, ast, g, true, log); err != nil {
		printError(fmt.Errorf("could not vectorize %s: %v", projectName, err))
	}
	if log.ContainsErrors() {
		fmt.Fprint(os.Stderr, log.String())
		os.Exit(1)
	}
	fmt.Fprint(os.Stderr, log.String())
}

func printError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
