package parser

import (
	"strings"
	"testing"

	"github.com/go-test/deep"
)

// helper to parse and assert no error
func mustParse(t *testing.T, source string) *Program {
	t.Helper()
	prog, err := Parse(source)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return prog
}

// helper to assert a parse failure and return the error
func mustFail(t *testing.T, source string) error {
	t.Helper()
	_, err := Parse(source)
	if err == nil {
		t.Fatalf("expected parse error for %q", source)
	}
	if _, ok := err.(*SyntaxError); !ok {
		t.Fatalf("expected *SyntaxError, got %T: %v", err, err)
	}
	return err
}

// ── Statement Tests ──

func TestParseAssignment(t *testing.T) {
	prog := mustParse(t, "x ← 5")
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
	}

	want := &AssignStmt{
		Target: &VariableExpr{Name: "x", LineNo: 1},
		Value:  &NumberLit{Text: "5", Value: 5, LineNo: 1},
		LineNo: 1,
	}
	if diff := deep.Equal(prog.Statements[0], want); diff != nil {
		t.Error(diff)
	}
}

func TestParseIndexedAssignment(t *testing.T) {
	prog := mustParse(t, "A[i + 1] ← A[i]")
	assign, ok := prog.Statements[0].(*AssignStmt)
	if !ok {
		t.Fatalf("expected AssignStmt, got %T", prog.Statements[0])
	}
	if assign.Target.Name != "A" || len(assign.Target.Selectors) != 1 {
		t.Errorf("bad target: %+v", assign.Target)
	}
	if assign.Target.Selectors[0].Index == nil {
		t.Error("expected index selector on target")
	}
}

func TestParseFieldSelector(t *testing.T) {
	prog := mustParse(t, "n ← A.length")
	assign := prog.Statements[0].(*AssignStmt)
	v, ok := assign.Value.(*VariableExpr)
	if !ok {
		t.Fatalf("expected VariableExpr, got %T", assign.Value)
	}
	if len(v.Selectors) != 1 || v.Selectors[0].Field != "length" {
		t.Errorf("expected .length selector, got %+v", v.Selectors)
	}
}

func TestParseChainedSelectors(t *testing.T) {
	prog := mustParse(t, "x ← A[i].key")
	assign := prog.Statements[0].(*AssignStmt)
	v := assign.Value.(*VariableExpr)
	if len(v.Selectors) != 2 {
		t.Fatalf("expected 2 selectors, got %d", len(v.Selectors))
	}
	if v.Selectors[0].Index == nil {
		t.Error("first selector should be an index")
	}
	if v.Selectors[1].Field != "key" {
		t.Errorf("second selector should be .key, got %+v", v.Selectors[1])
	}
}

func TestParseCallStatement(t *testing.T) {
	prog := mustParse(t, "EXCHANGE(A, i, j)")
	call, ok := prog.Statements[0].(*CallStmt)
	if !ok {
		t.Fatalf("expected CallStmt, got %T", prog.Statements[0])
	}
	if call.Call.Name != "EXCHANGE" || len(call.Call.Args) != 3 {
		t.Errorf("bad call: %+v", call.Call)
	}
}

func TestParseReturn(t *testing.T) {
	prog := mustParse(t, "return x + 1")
	ret := prog.Statements[0].(*ReturnStmt)
	if ret.Value == nil {
		t.Fatal("expected a return value")
	}
	if _, ok := ret.Value.(*BinaryExpr); !ok {
		t.Errorf("expected BinaryExpr value, got %T", ret.Value)
	}
}

func TestParseBareReturn(t *testing.T) {
	prog := mustParse(t, "if x > 0 then\n    return")
	ifStmt := prog.Statements[0].(*IfStmt)
	ret := ifStmt.Then[0].(*ReturnStmt)
	if ret.Value != nil {
		t.Errorf("expected bare return, got value %+v", ret.Value)
	}
}

func TestParseBreak(t *testing.T) {
	prog := mustParse(t, "while x > 0 do\n    break")
	loop := prog.Statements[0].(*WhileStmt)
	if _, ok := loop.Body[0].(*BreakStmt); !ok {
		t.Errorf("expected BreakStmt, got %T", loop.Body[0])
	}
}

// ── Control Flow Tests ──

func TestParseIfThen(t *testing.T) {
	prog := mustParse(t, "if x > 0 then\n    y ← 1")
	ifStmt, ok := prog.Statements[0].(*IfStmt)
	if !ok {
		t.Fatalf("expected IfStmt, got %T", prog.Statements[0])
	}
	if len(ifStmt.Then) != 1 || ifStmt.Else != nil {
		t.Errorf("expected then-only conditional, got %+v", ifStmt)
	}
}

func TestParseIfThenElse(t *testing.T) {
	source := `if x > 0 then
    y ← 1
else
    y ← 2`
	prog := mustParse(t, source)
	ifStmt := prog.Statements[0].(*IfStmt)
	if len(ifStmt.Then) != 1 || len(ifStmt.Else) != 1 {
		t.Errorf("expected one statement per branch, got then=%d else=%d", len(ifStmt.Then), len(ifStmt.Else))
	}
}

func TestParseInlineBody(t *testing.T) {
	prog := mustParse(t, "if x > 0 then return x")
	ifStmt := prog.Statements[0].(*IfStmt)
	if len(ifStmt.Then) != 1 {
		t.Fatalf("expected inline then body, got %d statements", len(ifStmt.Then))
	}
	if _, ok := ifStmt.Then[0].(*ReturnStmt); !ok {
		t.Errorf("expected ReturnStmt, got %T", ifStmt.Then[0])
	}
}

func TestParseForTo(t *testing.T) {
	prog := mustParse(t, "for i ← 1 to n do\n    x ← x + 1")
	loop := prog.Statements[0].(*ForStmt)
	if loop.Var != "i" || loop.Down {
		t.Errorf("bad loop header: %+v", loop)
	}
}

func TestParseForDownto(t *testing.T) {
	prog := mustParse(t, "for i ← n downto 1 do\n    x ← x + 1")
	loop := prog.Statements[0].(*ForStmt)
	if !loop.Down {
		t.Error("expected Down for downto loop")
	}
}

func TestParseWhile(t *testing.T) {
	source := `while i > 0 and A[i] > key do
    A[i + 1] ← A[i]
    i ← i - 1`
	prog := mustParse(t, source)
	loop := prog.Statements[0].(*WhileStmt)
	if len(loop.Body) != 2 {
		t.Errorf("expected 2 body statements, got %d", len(loop.Body))
	}
	cond, ok := loop.Cond.(*BinaryExpr)
	if !ok || cond.Op != "and" {
		t.Errorf("expected top-level 'and' condition, got %+v", loop.Cond)
	}
}

func TestParseNestedLoops(t *testing.T) {
	source := `for i ← 1 to n do
    for j ← 1 to n do
        x ← x + 1`
	prog := mustParse(t, source)
	outer := prog.Statements[0].(*ForStmt)
	inner, ok := outer.Body[0].(*ForStmt)
	if !ok {
		t.Fatalf("expected nested ForStmt, got %T", outer.Body[0])
	}
	if _, ok := inner.Body[0].(*AssignStmt); !ok {
		t.Errorf("expected AssignStmt in inner body, got %T", inner.Body[0])
	}
}

// ── Function Declaration Tests ──

func TestParseFuncDecl(t *testing.T) {
	source := `INSERTION-SORT(A)
    for j ← 2 to A.length do
        key ← A[j]`
	prog := mustParse(t, source)
	if len(prog.Functions) != 1 {
		t.Fatalf("expected 1 function, got %d", len(prog.Functions))
	}
	fn := prog.Functions[0]
	if fn.Name != "INSERTION-SORT" || len(fn.Params) != 1 || fn.Params[0] != "A" {
		t.Errorf("bad declaration: %+v", fn)
	}
}

func TestCallHeaderWithoutBodyIsStatement(t *testing.T) {
	// MERGE(A, p, q) at top level with no indented body is a call, not
	// a declaration.
	prog := mustParse(t, "MERGE(A, p, q)")
	if len(prog.Functions) != 0 {
		t.Errorf("expected no functions, got %d", len(prog.Functions))
	}
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
	}
	if _, ok := prog.Statements[0].(*CallStmt); !ok {
		t.Errorf("expected CallStmt, got %T", prog.Statements[0])
	}
}

func TestDeclAndCallMix(t *testing.T) {
	source := `MAX(a, b)
    if a > b then return a
    return b

m ← MAX(x, y)`
	prog := mustParse(t, source)
	if len(prog.Functions) != 1 || len(prog.Statements) != 1 {
		t.Fatalf("expected 1 function and 1 statement, got %d and %d",
			len(prog.Functions), len(prog.Statements))
	}
}

// ── Expression Tests ──

func TestOperatorPrecedence(t *testing.T) {
	prog := mustParse(t, "x ← a + b * c")
	assign := prog.Statements[0].(*AssignStmt)
	add, ok := assign.Value.(*BinaryExpr)
	if !ok || add.Op != "+" {
		t.Fatalf("expected + at the top, got %+v", assign.Value)
	}
	mul, ok := add.RHS.(*BinaryExpr)
	if !ok || mul.Op != "*" {
		t.Errorf("expected * on the right, got %+v", add.RHS)
	}
}

func TestParenthesesOverridePrecedence(t *testing.T) {
	prog := mustParse(t, "x ← (a + b) * c")
	assign := prog.Statements[0].(*AssignStmt)
	mul, ok := assign.Value.(*BinaryExpr)
	if !ok || mul.Op != "*" {
		t.Fatalf("expected * at the top, got %+v", assign.Value)
	}
	add, ok := mul.LHS.(*BinaryExpr)
	if !ok || add.Op != "+" {
		t.Errorf("expected + on the left, got %+v", mul.LHS)
	}
}

func TestLogicalPrecedence(t *testing.T) {
	// "a or b and c" parses as "a or (b and c)"
	prog := mustParse(t, "x ← a or b and c")
	assign := prog.Statements[0].(*AssignStmt)
	or, ok := assign.Value.(*BinaryExpr)
	if !ok || or.Op != "or" {
		t.Fatalf("expected 'or' at the top, got %+v", assign.Value)
	}
	and, ok := or.RHS.(*BinaryExpr)
	if !ok || and.Op != "and" {
		t.Errorf("expected 'and' on the right, got %+v", or.RHS)
	}
}

func TestUnaryMinus(t *testing.T) {
	prog := mustParse(t, "x ← -y + 1")
	assign := prog.Statements[0].(*AssignStmt)
	add := assign.Value.(*BinaryExpr)
	if _, ok := add.LHS.(*UnaryExpr); !ok {
		t.Errorf("expected UnaryExpr on the left, got %T", add.LHS)
	}
}

func TestDivMod(t *testing.T) {
	prog := mustParse(t, "q ← (p + r) div 2")
	assign := prog.Statements[0].(*AssignStmt)
	div, ok := assign.Value.(*BinaryExpr)
	if !ok || div.Op != "div" {
		t.Errorf("expected 'div', got %+v", assign.Value)
	}
}

func TestCallInExpression(t *testing.T) {
	prog := mustParse(t, "x ← MAX(a, b) + 1")
	assign := prog.Statements[0].(*AssignStmt)
	add := assign.Value.(*BinaryExpr)
	call, ok := add.LHS.(*CallExpr)
	if !ok || call.Name != "MAX" {
		t.Errorf("expected MAX call, got %+v", add.LHS)
	}
}

// ── Error Tests ──

func TestEmptyProgramRejected(t *testing.T) {
	mustFail(t, "")
	mustFail(t, "\n\n   \n")
	mustFail(t, "// just a comment\n")
}

func TestColonAssignRejected(t *testing.T) {
	err := mustFail(t, "x := 5")
	if !strings.Contains(err.Error(), "←") {
		t.Errorf("error should point at ←, got: %v", err)
	}
}

func TestMissingThen(t *testing.T) {
	err := mustFail(t, "if x > 0\n    y ← 1")
	if !strings.Contains(err.Error(), "then") {
		t.Errorf("error should mention 'then', got: %v", err)
	}
}

func TestMissingDo(t *testing.T) {
	mustFail(t, "for i ← 1 to n\n    x ← x + 1")
	mustFail(t, "while x > 0\n    x ← x - 1")
}

func TestEmptyBlockRejected(t *testing.T) {
	mustFail(t, "while x > 0 do\n")
}

func TestErrorCarriesPosition(t *testing.T) {
	err := mustFail(t, "x ← 1\nif y > 0\n    z ← 1")
	syntaxErr := err.(*SyntaxError)
	if syntaxErr.Line != 2 {
		t.Errorf("expected error on line 2, got line %d", syntaxErr.Line)
	}
}

func TestMisspelledKeywordSuggestion(t *testing.T) {
	err := mustFail(t, "whle x > 0 do\n    x ← x - 1")
	if !strings.Contains(err.Error(), "did you mean 'while'") {
		t.Errorf("expected a 'while' suggestion, got: %v", err)
	}
}

func TestReturmSuggestion(t *testing.T) {
	err := mustFail(t, "returm x")
	if !strings.Contains(err.Error(), "did you mean 'return'") {
		t.Errorf("expected a 'return' suggestion, got: %v", err)
	}
}

// ── Validate Tests ──

func TestValidateAgreesWithParse(t *testing.T) {
	sources := []string{
		"x ← 5",
		"x := 5",
		"if x > 0 then return x",
		"if x > 0",
		"for i ← 1 to n do\n    x ← x + 1",
		"",
		"INSERTION-SORT(A)\n    key ← A[1]",
	}
	for _, src := range sources {
		_, err := Parse(src)
		if got, want := Validate(src), err == nil; got != want {
			t.Errorf("Validate(%q) = %v, but Parse error = %v", src, got, err)
		}
	}
}

// ── Walk Tests ──

func TestWalkVisitsAllNodes(t *testing.T) {
	source := `for i ← 1 to n do
    if A[i] > x then
        x ← A[i]`
	prog := mustParse(t, source)

	var fors, ifs, assigns int
	for node := range Walk(prog.Statements[0]) {
		switch node.(type) {
		case *ForStmt:
			fors++
		case *IfStmt:
			ifs++
		case *AssignStmt:
			assigns++
		}
	}
	if fors != 1 || ifs != 1 || assigns != 1 {
		t.Errorf("walk counts: for=%d if=%d assign=%d", fors, ifs, assigns)
	}
}

func TestWalkIsRestartable(t *testing.T) {
	prog := mustParse(t, "x ← a + b")
	seq := Walk(prog.Statements[0])

	count := func() int {
		n := 0
		for range seq {
			n++
		}
		return n
	}
	first, second := count(), count()
	if first != second {
		t.Errorf("walk not restartable: %d then %d nodes", first, second)
	}
}

func TestWalkPreOrderLineMonotone(t *testing.T) {
	source := `INSERTION-SORT(A)
    for j ← 2 to A.length do
        key ← A[j]
        i ← j - 1
        while i > 0 and A[i] > key do
            A[i + 1] ← A[i]
            i ← i - 1
        A[i + 1] ← key`
	prog := mustParse(t, source)

	last := 0
	for node := range Walk(prog.Functions[0]) {
		if node.Line() < last {
			t.Fatalf("line numbers regressed: %d after %d (%T)", node.Line(), last, node)
		}
		last = node.Line()
	}
}

// ── Early Exit Detection Tests ──

func TestEarlyExitDirect(t *testing.T) {
	prog := mustParse(t, "while x > 0 do\n    break")
	loop := prog.Statements[0].(*WhileStmt)
	if !ContainsEarlyExit(loop.Body) {
		t.Error("direct break not detected")
	}
}

func TestEarlyExitThroughIf(t *testing.T) {
	source := `for i ← 1 to n do
    if A[i] = v then
        return i`
	prog := mustParse(t, source)
	loop := prog.Statements[0].(*ForStmt)
	if !ContainsEarlyExit(loop.Body) {
		t.Error("return inside if not detected")
	}
}

func TestEarlyExitNoFalsePositive(t *testing.T) {
	source := `for i ← 1 to n do
    x ← x + 1`
	prog := mustParse(t, source)
	loop := prog.Statements[0].(*ForStmt)
	if ContainsEarlyExit(loop.Body) {
		t.Error("loop without break or return reported an early exit")
	}
}

func TestBreakInInnerLoopDoesNotPropagate(t *testing.T) {
	source := `for i ← 1 to n do
    for j ← 1 to n do
        break`
	prog := mustParse(t, source)
	outer := prog.Statements[0].(*ForStmt)
	if ContainsEarlyExit(outer.Body) {
		t.Error("inner loop's break should not exit the outer loop")
	}
}

func TestReturnInInnerLoopPropagates(t *testing.T) {
	source := `for i ← 1 to n do
    for j ← 1 to n do
        return j`
	prog := mustParse(t, source)
	outer := prog.Statements[0].(*ForStmt)
	if !ContainsEarlyExit(outer.Body) {
		t.Error("return exits every enclosing loop")
	}
}
