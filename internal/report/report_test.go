package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dsalazardev/EffiCode-Analyzer/internal/notation"
	"github.com/dsalazardev/EffiCode-Analyzer/internal/parser"
)

func mustParse(t *testing.T, source string) *parser.Program {
	t.Helper()
	prog, err := parser.Parse(source)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return prog
}

// ── Kind Detection Tests ──

func TestDetectIterative(t *testing.T) {
	source := `INSERTION-SORT(A)
    for j ← 2 to A.length do
        key ← A[j]`
	if got := DetectKind(mustParse(t, source)); got != KindIterative {
		t.Errorf("got %s, want %s", got, KindIterative)
	}
}

func TestDetectRecursive(t *testing.T) {
	source := `FACTORIAL(n)
    if n ≤ 1 then
        return 1
    return n * FACTORIAL(n - 1)`
	if got := DetectKind(mustParse(t, source)); got != KindRecursive {
		t.Errorf("got %s, want %s", got, KindRecursive)
	}
}

func TestCallToOtherProcedureIsNotRecursion(t *testing.T) {
	source := `MERGE-SORT(A, p, r)
    if p < r then
        q ← (p + r) div 2
        MERGE(A, p, q)`
	if got := DetectKind(mustParse(t, source)); got != KindIterative {
		t.Errorf("got %s, want %s", got, KindIterative)
	}
}

func TestRecursionThroughCallStatement(t *testing.T) {
	source := `COUNTDOWN(n)
    if n > 0 then
        COUNTDOWN(n - 1)`
	if got := DetectKind(mustParse(t, source)); got != KindRecursive {
		t.Errorf("got %s, want %s", got, KindRecursive)
	}
}

// ── JSON Tests ──

func TestWriteJSON(t *testing.T) {
	r := &Report{
		Algorithm: Algorithm{ID: 1, Source: "x ← 1", Kind: KindIterative},
		Complexity: &notation.Complexity{
			BigO:     "O(1)",
			BigOmega: "Ω(1)",
			BigTheta: "Θ(1)",
		},
	}

	var buf bytes.Buffer
	if err := r.WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var decoded Report
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Algorithm.ID != 1 || decoded.Complexity.BigO != "O(1)" {
		t.Errorf("round trip lost data: %+v", decoded)
	}

	// Empty second opinion stays out of the payload
	if strings.Contains(buf.String(), "second_opinion") {
		t.Error("empty second_opinion should be omitted")
	}
}

func TestWriteJSONIncludesSecondOpinion(t *testing.T) {
	r := &Report{
		Algorithm:     Algorithm{ID: 2, Source: "x ← 1", Kind: KindIterative},
		Complexity:    &notation.Complexity{BigO: "O(1)", BigOmega: "Ω(1)", BigTheta: "Θ(1)"},
		SecondOpinion: "The derivation is sound.",
	}

	var buf bytes.Buffer
	if err := r.WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if !strings.Contains(buf.String(), "second_opinion") {
		t.Error("second_opinion missing from payload")
	}
}
