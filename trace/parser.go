// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trace

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// LineError reports a trace line that does not match any of the four
// recognized patterns (spec.md §4.C/§7).
type LineError struct {
	LineNo int
	Line   string
}

func (e *LineError) Error() string {
	return fmt.Sprintf("trace: could not parse line %d: %q", e.LineNo, e.Line)
}

// Parse reads a full trace stream into a Result, per spec.md §4.C.
func Parse(r io.Reader) (*Result, error) {
	reader := &reader{}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := reader.consume(line, lineNo); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return &Result{Instances: reader.instances, Accesses: reader.accesses}, nil
}

// reader holds the trace-reading state machine of spec.md §4.C.
type reader struct {
	currentStatement int
	loops            []int
	iteration        []int
	loopUpdated      bool

	instances []StatementInstance
	accesses  []Access
}

func (r *reader) consume(line string, lineNo int) error {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return &LineError{LineNo: lineNo, Line: line}
	}

	label, err := strconv.Atoi(fields[0])
	if err != nil {
		return &LineError{LineNo: lineNo, Line: line}
	}

	switch {
	case len(fields) >= 4 && fields[2] == "loop" && fields[3] == "begin":
		r.loops = append(r.loops, label)
		r.iteration = append(r.iteration, 0)
		return nil

	case len(fields) >= 4 && fields[2] == "loop" && fields[3] == "end":
		if len(r.loops) == 0 {
			return &LineError{LineNo: lineNo, Line: line}
		}
		r.loops = r.loops[:len(r.loops)-1]
		r.iteration = r.iteration[:len(r.iteration)-1]
		return nil

	case len(fields) >= 3 && (fields[2] == "USE" || fields[2] == "DEF"):
		var indices []int
		for _, f := range fields[3:] {
			v, err := strconv.Atoi(f)
			if err != nil {
				return &LineError{LineNo: lineNo, Line: line}
			}
			indices = append(indices, v)
		}
		category := Read
		if fields[2] == "DEF" {
			category = Write
		}
		r.recordAccess(label, fields[1], category, indices)
		return nil

	case len(fields) == 3:
		value, err := strconv.Atoi(fields[2])
		if err != nil {
			return &LineError{LineNo: lineNo, Line: line}
		}
		if len(r.iteration) > 0 {
			r.iteration[len(r.iteration)-1] = value
		}
		r.loopUpdated = true
		return nil
	}

	return &LineError{LineNo: lineNo, Line: line}
}

func (r *reader) recordAccess(label int, varName string, category Category, indices []int) {
	if label != r.currentStatement || r.loopUpdated {
		r.instances = append(r.instances, StatementInstance{
			Statement: label,
			Loops:     append([]int(nil), r.loops...),
			Iteration: append([]int(nil), r.iteration...),
		})
		r.currentStatement = label
		r.loopUpdated = false
	}

	r.accesses = append(r.accesses, Access{
		Statement: len(r.instances) - 1,
		Var:       varName,
		Category:  category,
		Indices:   indices,
	})
}
