package main

import (
	"strings"
	"testing"

	"github.com/dsalazardev/EffiCode-Analyzer/internal/cli"
	"github.com/dsalazardev/EffiCode-Analyzer/internal/parser"
)

func TestUsageListsEveryCommand(t *testing.T) {
	// Each name dispatched in main's switch must be documented.
	commands := []string{"check", "analyze", "ast", "grammar", "translate", "tocode", "classify"}
	for _, cmd := range commands {
		if !strings.Contains(usage, "\n  "+cmd+" ") {
			t.Errorf("usage text does not document %q", cmd)
		}
	}
}

func TestFilterGlobalFlags(t *testing.T) {
	defer func() { cli.ColorEnabled = false }()

	got := filterGlobalFlags([]string{"analyze", "--no-color", "algo.pseudo"})
	if len(got) != 2 || got[0] != "analyze" || got[1] != "algo.pseudo" {
		t.Errorf("filterGlobalFlags = %v, want [analyze algo.pseudo]", got)
	}
	if cli.ColorEnabled {
		t.Error("--no-color should disable colored output")
	}
}

func TestFormatParseError(t *testing.T) {
	_, err := parser.Parse("if x\n\ty ← 1")
	if err == nil {
		t.Fatal("expected syntax error")
	}
	got := formatParseError("algo.pseudo", err)
	if !strings.HasPrefix(got, "algo.pseudo:") {
		t.Errorf("formatParseError = %q, want file:line:column prefix", got)
	}
}
