// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diag defines the Log the vectorize_fold binary passes to the
// vectorizer to accumulate informational messages, warnings, and errors
// (such as a skipped If statement). The binary prints the log to
// standard error when it finishes and exits nonzero if the log contains
// errors.
package diag

import (
	"bytes"
	"fmt"
)

// A Severity indicates whether a log entry describes an informational
// message, a warning, or an error.
type Severity int

const (
	Info    Severity = iota // informational message
	Warning                 // something to be cautious of, e.g. a skipped If
	Error                   // the run failed or its output cannot be trusted
)

// An Entry is one message in a Log. Position, when nonempty, names the
// statement label or trace line number the entry concerns — the
// positions here are IR labels and trace line numbers, never Go source
// offsets.
type Entry struct {
	Severity Severity
	Message  string
	Position string
}

func (e *Entry) String() string {
	var buf bytes.Buffer
	switch e.Severity {
	case Info:
		// No prefix.
	case Warning:
		buf.WriteString("Warning: ")
	case Error:
		buf.WriteString("Error: ")
	}
	if e.Position != "" {
		buf.WriteString(e.Position)
		buf.WriteString(": ")
	}
	buf.WriteString(e.Message)
	return buf.String()
}

// A Log accumulates Entries for one run of a binary.
type Log struct {
	Entries []*Entry
}

// NewLog returns a new, empty Log.
func NewLog() *Log {
	return &Log{}
}

// Infof adds an informational entry.
func (l *Log) Infof(format string, v ...interface{}) {
	l.log(Info, "", format, v...)
}

// Warnf adds a warning entry.
func (l *Log) Warnf(format string, v ...interface{}) {
	l.log(Warning, "", format, v...)
}

// Errorf adds an error entry.
func (l *Log) Errorf(format string, v ...interface{}) {
	l.log(Error, "", format, v...)
}

// InfofAt, WarnfAt, and ErrorfAt add an entry associated with a
// statement label or trace line number, rendered verbatim as pos.
func (l *Log) InfofAt(pos string, format string, v ...interface{}) {
	l.log(Info, pos, format, v...)
}

func (l *Log) WarnfAt(pos string, format string, v ...interface{}) {
	l.log(Warning, pos, format, v...)
}

func (l *Log) ErrorfAt(pos string, format string, v ...interface{}) {
	l.log(Error, pos, format, v...)
}

func (l *Log) log(severity Severity, pos string, format string, v ...interface{}) {
	l.Entries = append(l.Entries, &Entry{
		Severity: severity,
		Message:  fmt.Sprintf(format, v...),
		Position: pos,
	})
}

// String renders every entry, one per line.
func (l *Log) String() string {
	var buf bytes.Buffer
	for _, e := range l.Entries {
		buf.WriteString(e.String())
		buf.WriteString("\n")
	}
	return buf.String()
}

// ContainsErrors reports whether the log has at least one Error entry.
func (l *Log) ContainsErrors() bool {
	for _, e := range l.Entries {
		if e.Severity >= Error {
			return true
		}
	}
	return false
}
