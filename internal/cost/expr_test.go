package cost

import "testing"

// ── Degree Tests ──

func TestDegreeOfConstants(t *testing.T) {
	if (Zero{}).Degree() != 0 {
		t.Error("Zero should have degree 0")
	}
	if (&Const{Index: 3}).Degree() != 0 {
		t.Error("constants should have degree 0")
	}
}

func TestDegreeOfSymbolicSum(t *testing.T) {
	// Σ_{i=1}^{n} c_1 has degree 1
	sum := &Sum{Body: &Const{Index: 1}, Var: "i", Count: SymbolicTrip()}
	if sum.Degree() != 1 {
		t.Errorf("expected degree 1, got %d", sum.Degree())
	}

	// Nesting raises the degree by one per symbolic level
	nested := &Sum{Body: sum, Var: "j", Count: SymbolicTrip()}
	if nested.Degree() != 2 {
		t.Errorf("expected degree 2, got %d", nested.Degree())
	}
}

func TestDegreeOfConcreteSum(t *testing.T) {
	// A concrete trip count is a constant factor: no degree increase
	sum := &Sum{Body: &Const{Index: 1}, Var: "i", Count: ConcreteTrip(10)}
	if sum.Degree() != 0 {
		t.Errorf("expected degree 0, got %d", sum.Degree())
	}
}

func TestDegreeOfAddIsMax(t *testing.T) {
	linear := &Sum{Body: &Const{Index: 1}, Var: "i", Count: SymbolicTrip()}
	add := &Add{Terms: []Expr{&Const{Index: 2}, linear, &Const{Index: 3}}}
	if add.Degree() != 1 {
		t.Errorf("expected degree 1, got %d", add.Degree())
	}
}

func TestDegreeOfMaxAndMin(t *testing.T) {
	linear := &Sum{Body: &Const{Index: 1}, Var: "i", Count: SymbolicTrip()}
	constant := &Const{Index: 2}

	if (&Max{A: constant, B: linear}).Degree() != 1 {
		t.Error("max should take the higher degree")
	}
	if (&Min{A: constant, B: linear}).Degree() != 0 {
		t.Error("min should take the lower degree")
	}
}

// ── Display Tests ──

func TestExprStrings(t *testing.T) {
	tests := []struct {
		expr Expr
		want string
	}{
		{Zero{}, "0"},
		{&Const{Index: 4}, "c_4"},
		{&Add{Terms: []Expr{&Const{Index: 1}, &Const{Index: 2}}}, "c_1 + c_2"},
		{&Max{A: &Const{Index: 1}, B: Zero{}}, "max(c_1, 0)"},
		{&Min{A: &Const{Index: 1}, B: Zero{}}, "min(c_1, 0)"},
		{&Sum{Body: &Const{Index: 1}, Var: "i", Count: SymbolicTrip()}, "Σ_{i=1}^{n} (c_1)"},
		{&Sum{Body: &Const{Index: 1}, Var: "j", Count: ConcreteTrip(10)}, "Σ_{j=1}^{10} (c_1)"},
	}
	for _, tt := range tests {
		if got := tt.expr.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

// ── Canonicalization Tests ──

func TestCanonicalizeFlattensAdd(t *testing.T) {
	nested := &Add{Terms: []Expr{
		&Const{Index: 1},
		&Add{Terms: []Expr{&Const{Index: 2}, &Const{Index: 3}}},
	}}
	got := Canonicalize(nested)
	if got.String() != "c_1 + c_2 + c_3" {
		t.Errorf("expected flattened sum, got %s", got)
	}
}

func TestCanonicalizeDropsZero(t *testing.T) {
	e := &Add{Terms: []Expr{Zero{}, &Const{Index: 1}, Zero{}}}
	got := Canonicalize(e)
	if got.String() != "c_1" {
		t.Errorf("expected c_1, got %s", got)
	}
}

func TestCanonicalizeEmptyAddIsZero(t *testing.T) {
	got := Canonicalize(&Add{})
	if _, ok := got.(Zero); !ok {
		t.Errorf("expected Zero, got %T", got)
	}
}

func TestCanonicalizeResolvesMaxByDegree(t *testing.T) {
	linear := &Sum{Body: &Const{Index: 1}, Var: "i", Count: SymbolicTrip()}
	got := Canonicalize(&Max{A: &Const{Index: 2}, B: linear})
	if got.Degree() != 1 {
		t.Errorf("max should keep the higher-degree side, got %s", got)
	}

	got = Canonicalize(&Min{A: &Const{Index: 2}, B: linear})
	if got.String() != "c_2" {
		t.Errorf("min should keep the lower-degree side, got %s", got)
	}
}

func TestCanonicalizeZeroBranch(t *testing.T) {
	// The absent else branch: max picks the real branch, min the skip
	branch := &Const{Index: 1}
	if got := Canonicalize(&Max{A: branch, B: Zero{}}); got.String() != "c_1" {
		t.Errorf("max(c_1, 0) = %s, want c_1", got)
	}
	if got := Canonicalize(&Min{A: branch, B: Zero{}}); got.String() != "0" {
		t.Errorf("min(c_1, 0) = %s, want 0", got)
	}
}

func TestCanonicalizeMaxTieKeepsFirst(t *testing.T) {
	got := Canonicalize(&Max{A: &Const{Index: 1}, B: &Const{Index: 2}})
	if got.String() != "c_1" {
		t.Errorf("tie should keep the first alternative, got %s", got)
	}
}

func TestCanonicalizeFoldsConcreteSum(t *testing.T) {
	sum := &Sum{Body: &Const{Index: 1}, Var: "i", Count: ConcreteTrip(10)}
	got := Canonicalize(sum)
	if got.String() != "c_1" {
		t.Errorf("concrete trip count should fold into constants, got %s", got)
	}
}

func TestCanonicalizeZeroTripSum(t *testing.T) {
	sum := &Sum{Body: &Const{Index: 1}, Var: "i", Count: ConcreteTrip(0)}
	got := Canonicalize(sum)
	if _, ok := got.(Zero); !ok {
		t.Errorf("zero-trip sum should vanish, got %s", got)
	}
}

func TestCanonicalizeKeepsSymbolicSum(t *testing.T) {
	sum := &Sum{Body: &Const{Index: 1}, Var: "i", Count: SymbolicTrip()}
	got := Canonicalize(sum)
	if got.String() != "Σ_{i=1}^{n} (c_1)" {
		t.Errorf("symbolic sum must survive canonicalization, got %s", got)
	}
}

func TestEqual(t *testing.T) {
	a := &Add{Terms: []Expr{&Const{Index: 1}, &Add{Terms: []Expr{&Const{Index: 2}}}}}
	b := &Add{Terms: []Expr{&Const{Index: 1}, &Const{Index: 2}, Zero{}}}
	if !Equal(a, b) {
		t.Errorf("expected %s and %s to be equal after canonicalization", a, b)
	}
	if Equal(a, &Const{Index: 1}) {
		t.Error("distinct expressions reported equal")
	}
}
