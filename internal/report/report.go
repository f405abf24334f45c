// Package report holds the data models attached to a finished
// analysis: the algorithm under study, its derived complexity, and an
// optional second-opinion narrative from the LLM collaborator.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dsalazardev/EffiCode-Analyzer/internal/notation"
	"github.com/dsalazardev/EffiCode-Analyzer/internal/parser"
)

// Kind classifies the control structure of an algorithm.
type Kind string

const (
	KindIterative Kind = "iterative"
	KindRecursive Kind = "recursive"
)

// Algorithm is a pseudocode program submitted for analysis.
type Algorithm struct {
	ID     int    `json:"id"`
	Source string `json:"source"`
	Kind   Kind   `json:"kind"`
}

// Report consolidates one analysis run. Immutable once produced;
// associated 1:1 with the algorithm whose syntax tree produced it.
type Report struct {
	Algorithm     Algorithm            `json:"algorithm"`
	Complexity    *notation.Complexity `json:"complexity"`
	SecondOpinion string               `json:"second_opinion,omitempty"`
}

// DetectKind reports whether any declared procedure calls itself.
// Recursive cost derivation is out of scope for the engine, so the
// label lets callers warn before trusting the bounds.
func DetectKind(prog *parser.Program) Kind {
	for _, fn := range prog.Functions {
		for node := range parser.Walk(fn) {
			if call, ok := node.(*parser.CallExpr); ok && call.Name == fn.Name {
				return KindRecursive
			}
		}
	}
	return KindIterative
}

// WriteJSON serializes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
