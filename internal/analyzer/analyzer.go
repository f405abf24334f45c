// Package analyzer ties the pipeline together: parse the pseudocode,
// charge symbolic costs to each line, derive asymptotic notation, and
// assemble a report. An optional LLM connector adds second opinions.
package analyzer

import (
	"context"
	"strings"

	"github.com/dsalazardev/EffiCode-Analyzer/internal/cost"
	"github.com/dsalazardev/EffiCode-Analyzer/internal/llm"
	"github.com/dsalazardev/EffiCode-Analyzer/internal/notation"
	"github.com/dsalazardev/EffiCode-Analyzer/internal/parser"
	"github.com/dsalazardev/EffiCode-Analyzer/internal/report"
)

// Analyzer runs complexity analysis on pseudocode sources. It is
// stateful only in the algorithm ID counter; analysis itself is pure,
// so the same source always yields the same bounds.
type Analyzer struct {
	connector *llm.Connector
	nextID    int
}

// New returns an Analyzer. The connector may be nil; second opinions
// then return ErrNoProvider.
func New(connector *llm.Connector) *Analyzer {
	return &Analyzer{connector: connector, nextID: 1}
}

// Analyze parses the source and derives its complexity bounds.
// Returns a *parser.SyntaxError if the source is not valid pseudocode.
func (a *Analyzer) Analyze(source string) (*report.Report, error) {
	prog, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}
	return a.analyze(source, prog)
}

// AnalyzeProgram derives complexity bounds for an already-parsed
// program. Returns cost.InvalidStateError if prog is nil.
func (a *Analyzer) AnalyzeProgram(prog *parser.Program) (*report.Report, error) {
	if prog == nil {
		return nil, &cost.InvalidStateError{Reason: "no syntax tree to analyze"}
	}
	return a.analyze("", prog)
}

func (a *Analyzer) analyze(source string, prog *parser.Program) (*report.Report, error) {
	analysis, err := cost.Analyze(prog)
	if err != nil {
		return nil, err
	}

	r := &report.Report{
		Algorithm: report.Algorithm{
			ID:     a.nextID,
			Source: strings.TrimRight(source, "\n"),
			Kind:   report.DetectKind(prog),
		},
		Complexity: notation.Derive(analysis),
	}
	a.nextID++
	return r, nil
}

// SecondOpinion asks the LLM collaborator to critique a finished
// report and records its verdict on the report itself.
func (a *Analyzer) SecondOpinion(ctx context.Context, r *report.Report) error {
	if a.connector == nil {
		return llm.ErrNoProvider()
	}
	opinion, err := a.connector.SecondOpinion(ctx, r)
	if err != nil {
		return err
	}
	r.SecondOpinion = opinion
	return nil
}
