package cost

import (
	"fmt"
	"strings"
)

// Expr is a symbolic cost expression over one free variable n (the
// problem size) and a pool of opaque positive constants c_1, c_2, ….
// The representation is deliberately minimal: asymptotic derivation
// only ever needs polynomial degree and dominance, never exact
// coefficients, so there is no general computer-algebra machinery here.
//
// Expressions are immutable values. Degree follows the closed-form
// rules Σ_{i=1}^{n} 1 = n and Σ_{i=1}^{n} n^d ~ n^{d+1}.
type Expr interface {
	// Degree returns the polynomial degree in n.
	Degree() int
	String() string
	isExpr()
}

// Zero is the cost of nothing: the absent else branch of a conditional.
type Zero struct{}

// Const is one opaque positive constant c_i, charged for one
// elementary statement.
type Const struct {
	Index int
}

// Add is a sum of cost terms.
type Add struct {
	Terms []Expr
}

// Max is the worst-case combination of two branch alternatives.
type Max struct {
	A, B Expr
}

// Min is the best-case combination of two branch alternatives.
type Min struct {
	A, B Expr
}

// Trip is a loop trip count: either symbolic (the full problem size n)
// or a concrete iteration count from literal bounds.
type Trip struct {
	Symbolic bool
	N        int // valid when !Symbolic
}

// SymbolicTrip is the n-iterations trip count.
func SymbolicTrip() Trip { return Trip{Symbolic: true} }

// ConcreteTrip is a fixed trip count of n iterations.
func ConcreteTrip(n int) Trip { return Trip{N: n} }

func (t Trip) String() string {
	if t.Symbolic {
		return "n"
	}
	return fmt.Sprintf("%d", t.N)
}

// Sum is a bounded summation of a body cost over an iteration variable
// ranging from 1 to the trip count.
type Sum struct {
	Body  Expr
	Var   string // iteration variable, for display only
	Count Trip
}

func (Zero) isExpr()   {}
func (*Const) isExpr() {}
func (*Add) isExpr()   {}
func (*Max) isExpr()   {}
func (*Min) isExpr()   {}
func (*Sum) isExpr()   {}

// ── Degree ──

func (Zero) Degree() int   { return 0 }
func (*Const) Degree() int { return 0 }

func (a *Add) Degree() int {
	d := 0
	for _, t := range a.Terms {
		if td := t.Degree(); td > d {
			d = td
		}
	}
	return d
}

func (m *Max) Degree() int {
	da, db := m.A.Degree(), m.B.Degree()
	if da >= db {
		return da
	}
	return db
}

func (m *Min) Degree() int {
	da, db := m.A.Degree(), m.B.Degree()
	if da <= db {
		return da
	}
	return db
}

func (s *Sum) Degree() int {
	if s.Count.Symbolic {
		return s.Body.Degree() + 1
	}
	// A concrete trip count is a constant factor.
	return s.Body.Degree()
}

// ── Display ──

func (Zero) String() string { return "0" }

func (c *Const) String() string {
	return fmt.Sprintf("c_%d", c.Index)
}

func (a *Add) String() string {
	if len(a.Terms) == 0 {
		return "0"
	}
	parts := make([]string, len(a.Terms))
	for i, t := range a.Terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, " + ")
}

func (m *Max) String() string {
	return fmt.Sprintf("max(%s, %s)", m.A, m.B)
}

func (m *Min) String() string {
	return fmt.Sprintf("min(%s, %s)", m.A, m.B)
}

func (s *Sum) String() string {
	return fmt.Sprintf("Σ_{%s=1}^{%s} (%s)", s.Var, s.Count, s.Body)
}

// ── Canonicalization ──

// Canonicalize rewrites an expression into a normal form: nested sums
// of terms are flattened, zero terms dropped, summations over a
// concrete trip count reduced to their body (the count folds into the
// opaque constants), and max/min resolved by degree comparison.
// Structural equality of canonical forms is the package's notion of
// expression equality.
func Canonicalize(e Expr) Expr {
	switch v := e.(type) {
	case Zero, *Const:
		return e

	case *Add:
		var terms []Expr
		for _, t := range v.Terms {
			ct := Canonicalize(t)
			switch inner := ct.(type) {
			case Zero:
				// drop
			case *Add:
				terms = append(terms, inner.Terms...)
			default:
				terms = append(terms, ct)
			}
		}
		switch len(terms) {
		case 0:
			return Zero{}
		case 1:
			return terms[0]
		}
		return &Add{Terms: terms}

	case *Max:
		a, b := Canonicalize(v.A), Canonicalize(v.B)
		// All constants are positive, so zero never wins a max.
		if _, isZero := a.(Zero); isZero {
			return b
		}
		if _, isZero := b.(Zero); isZero {
			return a
		}
		// The higher-degree side dominates; on a tie the alternatives
		// are asymptotically interchangeable, so keep the first.
		if a.Degree() >= b.Degree() {
			return a
		}
		return b

	case *Min:
		a, b := Canonicalize(v.A), Canonicalize(v.B)
		// Zero always wins a min: the absent else branch costs nothing.
		if _, isZero := a.(Zero); isZero {
			return a
		}
		if _, isZero := b.(Zero); isZero {
			return b
		}
		if a.Degree() <= b.Degree() {
			return a
		}
		return b

	case *Sum:
		body := Canonicalize(v.Body)
		if _, isZero := body.(Zero); isZero {
			return Zero{}
		}
		if !v.Count.Symbolic {
			if v.Count.N == 0 {
				return Zero{}
			}
			return body
		}
		return &Sum{Body: body, Var: v.Var, Count: v.Count}
	}
	return e
}

// Equal reports structural equality after canonicalization.
func Equal(a, b Expr) bool {
	return Canonicalize(a).String() == Canonicalize(b).String()
}
