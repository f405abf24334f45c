// Package notation reduces symbolic cost expressions to asymptotic
// bounds: the dominant term of T_worst(n) names O, the dominant term of
// T_best(n) names Ω, and Θ is reported only when the two coincide.
package notation

import (
	"fmt"
	"strings"

	"github.com/dsalazardev/EffiCode-Analyzer/internal/cost"
)

// Indeterminate is the Θ value reported when the worst- and best-case
// dominant terms diverge. The bounds are still valid individually; no
// tight bound exists under this analysis, and it is never silently
// defaulted to the worst case.
const Indeterminate = "indeterminate"

// TraceLine is one rendered line of the justification trace.
type TraceLine struct {
	Line        int    `json:"line"`
	Description string `json:"description"`
	Worst       string `json:"worst"`
	Best        string `json:"best"`
}

// Complexity is the asymptotic result for one analyzed program.
// Immutable once produced.
type Complexity struct {
	BigO          string      `json:"big_o"`     // e.g. "O(n^2)"
	BigOmega      string      `json:"big_omega"` // e.g. "Ω(n)"
	BigTheta      string      `json:"big_theta"` // "Θ(...)" or "indeterminate"
	Justification string      `json:"justification"`
	Trace         []TraceLine `json:"trace"`
}

// Monomial names the dominant term for a polynomial degree:
// 1, n, n^2, n^3, …
func Monomial(degree int) string {
	switch {
	case degree <= 0:
		return "1"
	case degree == 1:
		return "n"
	}
	return fmt.Sprintf("n^%d", degree)
}

// Derive reduces a cost analysis to asymptotic notation with a
// line-by-line justification. Deriving the same analysis twice yields
// bit-identical results.
func Derive(a *cost.Analysis) *Complexity {
	worstDeg := a.Worst.Degree()
	bestDeg := a.Best.Degree()

	worstTerm := Monomial(worstDeg)
	bestTerm := Monomial(bestDeg)

	c := &Complexity{
		BigO:     fmt.Sprintf("O(%s)", worstTerm),
		BigOmega: fmt.Sprintf("Ω(%s)", bestTerm),
		Trace:    renderTrace(a.Trace),
	}

	if worstDeg == bestDeg {
		c.BigTheta = fmt.Sprintf("Θ(%s)", worstTerm)
	} else {
		c.BigTheta = Indeterminate
	}

	c.Justification = justify(a, c, worstTerm, bestTerm)
	return c
}

func renderTrace(trace []cost.LineCost) []TraceLine {
	out := make([]TraceLine, len(trace))
	for i, lc := range trace {
		out[i] = TraceLine{
			Line:        lc.Line,
			Description: lc.Description,
			Worst:       lc.Worst.String(),
			Best:        lc.Best.String(),
		}
	}
	return out
}

// justify assembles the human-readable derivation: the per-line cost
// table, the two cost functions, their dominant terms, and the
// conclusion for each bound. Pure string assembly.
func justify(a *cost.Analysis, c *Complexity, worstTerm, bestTerm string) string {
	var b strings.Builder

	b.WriteString("Per-line costs (one fresh constant per elementary statement):\n")
	for _, lc := range a.Trace {
		fmt.Fprintf(&b, "  line %d: %s — worst %s", lc.Line, lc.Description, lc.Worst)
		if lc.Worst.String() != lc.Best.String() {
			fmt.Fprintf(&b, ", best %s", lc.Best)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nT_worst(n) = %s\n", a.Worst)
	fmt.Fprintf(&b, "T_best(n)  = %s\n", a.Best)

	fmt.Fprintf(&b, "\nDominant term of T_worst is %s, so the upper bound is %s.\n", worstTerm, c.BigO)
	fmt.Fprintf(&b, "Dominant term of T_best is %s, so the lower bound is %s.\n", bestTerm, c.BigOmega)

	if c.BigTheta == Indeterminate {
		fmt.Fprintf(&b, "The dominant terms diverge (%s vs %s): the bounds do not meet, so no tight Θ bound is reported.\n", worstTerm, bestTerm)
	} else {
		fmt.Fprintf(&b, "The dominant terms coincide, so the bound is tight: %s.\n", c.BigTheta)
	}

	return b.String()
}
