// Package cost derives symbolic running-cost functions T_worst(n) and
// T_best(n) from a parsed pseudocode program, one fresh opaque constant
// per elementary statement, composed through sequencing, branching, and
// bounded summation over loops.
package cost

import (
	"fmt"

	"github.com/dsalazardev/EffiCode-Analyzer/internal/parser"
)

// InvalidStateError means Analyze was called without a syntax tree —
// a contract violation by the caller, not a property of any input
// program. It is never retried.
type InvalidStateError struct {
	Reason string
}

func (e *InvalidStateError) Error() string {
	return "invalid state: " + e.Reason
}

// LineCost records the cost charged for one visited statement. The
// trace feeds the human-readable justification and never influences
// the derived bounds.
type LineCost struct {
	Line        int
	Description string
	Worst       Expr
	Best        Expr
}

// Analysis is the result of one cost-analysis run.
type Analysis struct {
	Worst Expr // T_worst(n), canonicalized
	Best  Expr // T_best(n), canonicalized
	Trace []LineCost
}

// Analyze walks the program and builds its worst- and best-case cost
// expressions. Each call owns a fresh constant counter, so concurrent
// analyses of different programs share nothing, and analyzing the same
// program twice yields identical results.
func Analyze(prog *parser.Program) (*Analysis, error) {
	if prog == nil {
		return nil, &InvalidStateError{Reason: "no syntax tree available; parse the source first"}
	}

	e := &engine{}

	var worst, best []Expr
	var trace []LineCost
	for _, fn := range prog.Functions {
		w, b, t := e.statements(fn.Body, "")
		worst = append(worst, w)
		best = append(best, b)
		trace = append(trace, t...)
	}
	if len(prog.Statements) > 0 {
		w, b, t := e.statements(prog.Statements, "")
		worst = append(worst, w)
		best = append(best, b)
		trace = append(trace, t...)
	}

	return &Analysis{
		Worst: Canonicalize(&Add{Terms: worst}),
		Best:  Canonicalize(&Add{Terms: best}),
		Trace: trace,
	}, nil
}

// engine threads the fresh-constant counter through one analysis run.
// There is no state shared between runs.
type engine struct {
	constIdx int // last issued c_i index
	whileIdx int // numbers the t_j trip-count variables of while loops
}

// fresh issues the next opaque constant c_i.
func (e *engine) fresh() *Const {
	e.constIdx++
	return &Const{Index: e.constIdx}
}

// statements analyzes an ordered statement sequence. Worst and best
// costs sum independently; they may diverge per statement. The tag
// prefixes trace descriptions for statements inside branches or loops.
func (e *engine) statements(stmts []parser.Statement, tag string) (Expr, Expr, []LineCost) {
	var worst, best []Expr
	var trace []LineCost

	for _, s := range stmts {
		w, b, t := e.statement(s, tag)
		worst = append(worst, w)
		best = append(best, b)
		trace = append(trace, t...)
	}

	return &Add{Terms: worst}, &Add{Terms: best}, trace
}

// statement analyzes a single statement via exhaustive dispatch over
// the AST's statement variants.
func (e *engine) statement(s parser.Statement, tag string) (Expr, Expr, []LineCost) {
	switch v := s.(type) {
	case *parser.AssignStmt:
		return e.elementary(v.Line(), tag+"assignment")
	case *parser.ReturnStmt:
		return e.elementary(v.Line(), tag+"return")
	case *parser.CallStmt:
		return e.elementary(v.Line(), tag+"call to "+v.Call.Name)
	case *parser.BreakStmt:
		return e.elementary(v.Line(), tag+"break")
	case *parser.IfStmt:
		return e.conditional(v, tag)
	case *parser.ForStmt:
		return e.boundedLoop(v, tag)
	case *parser.WhileStmt:
		return e.unboundedLoop(v, tag)
	}
	// Unreachable for trees built by the parser.
	return Zero{}, Zero{}, nil
}

// elementary charges one fresh constant: worst = best = c_i.
func (e *engine) elementary(line int, desc string) (Expr, Expr, []LineCost) {
	c := e.fresh()
	return c, c, []LineCost{{Line: line, Description: desc, Worst: c, Best: c}}
}

// conditional analyzes if/then/else. The test costs a fresh constant
// on every path; the worst case then takes the costlier branch and the
// best case the cheaper one. An absent else branch costs zero.
func (e *engine) conditional(v *parser.IfStmt, tag string) (Expr, Expr, []LineCost) {
	test := e.fresh()
	trace := []LineCost{{Line: v.Line(), Description: tag + "if condition test", Worst: test, Best: test}}

	thenW, thenB, thenTrace := e.statements(v.Then, tag+"(then) ")

	var elseW, elseB Expr = Zero{}, Zero{}
	var elseTrace []LineCost
	if len(v.Else) > 0 {
		elseW, elseB, elseTrace = e.statements(v.Else, tag+"(else) ")
	}

	worst := &Add{Terms: []Expr{test, &Max{A: thenW, B: elseW}}}
	best := &Add{Terms: []Expr{test, &Min{A: thenB, B: elseB}}}

	trace = append(trace, thenTrace...)
	trace = append(trace, elseTrace...)
	return worst, best, trace
}

// boundedLoop analyzes a for loop. The trip count is concrete when
// both bounds are integer literals and otherwise the full problem size
// n. Loop init and per-iteration test overhead is charged as one fresh
// constant. When the body can exit early (break, or a reachable
// return), the best-case trip count collapses to a single iteration;
// otherwise a for loop runs its full declared range in both cases.
func (e *engine) boundedLoop(v *parser.ForStmt, tag string) (Expr, Expr, []LineCost) {
	overhead := e.fresh()
	trip := forTripCount(v)

	trace := []LineCost{{
		Line:        v.Line(),
		Description: fmt.Sprintf("%sfor loop over %s (runs %s times)", tag, v.Var, trip),
		Worst:       overhead,
		Best:        overhead,
	}}

	bodyW, bodyB, bodyTrace := e.statements(v.Body, tag+"(loop body) ")

	bestTrip := trip
	if parser.ContainsEarlyExit(v.Body) {
		bestTrip = ConcreteTrip(1)
	}

	worst := &Add{Terms: []Expr{overhead, &Sum{Body: bodyW, Var: v.Var, Count: trip}}}
	best := &Add{Terms: []Expr{overhead, &Sum{Body: bodyB, Var: v.Var, Count: bestTrip}}}

	trace = append(trace, bodyTrace...)
	return worst, best, trace
}

// unboundedLoop analyzes a while loop. The trip count is not statically
// known: the worst case assumes n iterations, and the best case
// collapses to one iteration when the body can exit early. The test
// itself runs trip count + 1 times — the final failing test.
func (e *engine) unboundedLoop(v *parser.WhileStmt, tag string) (Expr, Expr, []LineCost) {
	e.whileIdx++
	iterVar := fmt.Sprintf("t_%d", e.whileIdx)

	test := e.fresh()
	worstTrip := SymbolicTrip()
	bestTrip := worstTrip
	if parser.ContainsEarlyExit(v.Body) {
		bestTrip = ConcreteTrip(1)
	}

	worstTest := &Add{Terms: []Expr{&Sum{Body: test, Var: iterVar, Count: worstTrip}, test}}
	bestTest := &Add{Terms: []Expr{&Sum{Body: test, Var: iterVar, Count: bestTrip}, test}}

	trace := []LineCost{{
		Line:        v.Line(),
		Description: fmt.Sprintf("%swhile condition test (runs trip count + 1 times)", tag),
		Worst:       worstTest,
		Best:        bestTest,
	}}

	bodyW, bodyB, bodyTrace := e.statements(v.Body, tag+"(loop body) ")

	worst := &Add{Terms: []Expr{worstTest, &Sum{Body: bodyW, Var: iterVar, Count: worstTrip}}}
	best := &Add{Terms: []Expr{bestTest, &Sum{Body: bodyB, Var: iterVar, Count: bestTrip}}}

	trace = append(trace, bodyTrace...)
	return worst, best, trace
}

// forTripCount resolves a for loop's trip count: literal integer bounds
// give a concrete count of |limit-from|+1 iterations, anything else is
// treated as spanning the full problem size.
func forTripCount(v *parser.ForStmt) Trip {
	from, okFrom := literalInt(v.From)
	limit, okLimit := literalInt(v.Limit)
	if !okFrom || !okLimit {
		return SymbolicTrip()
	}

	span := limit - from
	if v.Down {
		span = from - limit
	}
	if span < 0 {
		return ConcreteTrip(0)
	}
	return ConcreteTrip(span + 1)
}

func literalInt(expr parser.Expression) (int, bool) {
	lit, ok := expr.(*parser.NumberLit)
	if !ok {
		return 0, false
	}
	return lit.IntValue()
}
