// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diag

import (
	"os"
	"testing"
)

func TestEntryStringPrefixes(t *testing.T) {
	cases := []struct {
		severity Severity
		want     string
	}{
		{Info, "missing semicolon"},
		{Warning, "Warning: missing semicolon"},
		{Error, "Error: missing semicolon"},
	}
	for _, c := range cases {
		e := &Entry{Severity: c.severity, Message: "missing semicolon"}
		if got := e.String(); got != c.want {
			t.Errorf("Entry{%v}.String() = %q, want %q", c.severity, got, c.want)
		}
	}
}

func TestEntryStringIncludesPosition(t *testing.T) {
	e := &Entry{Severity: Warning, Message: "If skipped", Position: "label 7"}
	want := "Warning: label 7: If skipped"
	if got := e.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestContainsErrors(t *testing.T) {
	l := NewLog()
	if l.ContainsErrors() {
		t.Fatal("empty log reports errors")
	}
	l.Warnf("skipping If at label %d", 3)
	if l.ContainsErrors() {
		t.Fatal("log with only a warning reports errors")
	}
	l.Errorf("missing loop label %d", 5)
	if !l.ContainsErrors() {
		t.Fatal("log with an error does not report errors")
	}
}

// TestLogStringGoldenRun compares a Log accumulating one entry of each
// severity against testdata/run.golden byte-for-byte.
func TestLogStringGoldenRun(t *testing.T) {
	l := NewLog()
	l.Infof("parsing %s", "foo.ast")
	l.WarnfAt("7", "If statement skipped")
	l.ErrorfAt("12", "missing loop label %d", 3)

	want, err := os.ReadFile("testdata/run.golden")
	if err != nil {
		t.Fatalf("ReadFile(golden): %v", err)
	}
	if got := l.String(); got != string(want) {
		t.Errorf("String() = %q, want %q", got, string(want))
	}
}

func TestLogStringJoinsEntries(t *testing.T) {
	l := NewLog()
	l.Infof("starting")
	l.ErrorfAt("label 3", "statement not found")
	want := "starting\nError: label 3: statement not found\n"
	if got := l.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
