package parser

// Node is implemented by every syntax-tree node. Line returns the
// 1-based source line the node starts on; a pre-order walk of a valid
// Program yields non-decreasing line numbers, which the cost engine
// relies on for line-by-line cost attribution.
type Node interface {
	Line() int
}

// Statement is the sealed interface for statement nodes.
type Statement interface {
	Node
	stmtNode()
}

// Expression is the sealed interface for expression nodes.
type Expression interface {
	Node
	exprNode()
}

// Program is the root AST node: a sequence of top-level statements and
// function declarations, in source order.
type Program struct {
	Functions  []*FuncDecl
	Statements []Statement
}

// Line returns the line of the first declaration or statement.
func (p *Program) Line() int {
	switch {
	case len(p.Functions) > 0 && (len(p.Statements) == 0 || p.Functions[0].LineNo <= p.Statements[0].Line()):
		return p.Functions[0].LineNo
	case len(p.Statements) > 0:
		return p.Statements[0].Line()
	}
	return 0
}

// FuncDecl represents a procedure declaration.
//
//	INSERTION-SORT(A)
//	    for j ← 2 to A.length do
//	        ...
type FuncDecl struct {
	Name   string
	Params []string
	Body   []Statement
	LineNo int
}

func (f *FuncDecl) Line() int { return f.LineNo }

// ── Statements ──

// AssignStmt represents: variable ← expression
type AssignStmt struct {
	Target *VariableExpr
	Value  Expression
	LineNo int
}

// IfStmt represents: if condition then body [else body]
// Else is nil when the conditional has no else branch.
type IfStmt struct {
	Cond   Expression
	Then   []Statement
	Else   []Statement
	LineNo int
}

// ForStmt represents: for var ← from to/downto limit do body
// Down is true for "downto".
type ForStmt struct {
	Var    string
	From   Expression
	Limit  Expression
	Down   bool
	Body   []Statement
	LineNo int
}

// WhileStmt represents: while condition do body
type WhileStmt struct {
	Cond   Expression
	Body   []Statement
	LineNo int
}

// ReturnStmt represents: return [expression]
type ReturnStmt struct {
	Value  Expression // nil for a bare return
	LineNo int
}

// BreakStmt represents: break
type BreakStmt struct {
	LineNo int
}

// CallStmt represents a procedure call used as a statement.
//
//	EXCHANGE(A, i, j)
type CallStmt struct {
	Call   *CallExpr
	LineNo int
}

func (s *AssignStmt) Line() int { return s.LineNo }
func (s *IfStmt) Line() int     { return s.LineNo }
func (s *ForStmt) Line() int    { return s.LineNo }
func (s *WhileStmt) Line() int  { return s.LineNo }
func (s *ReturnStmt) Line() int { return s.LineNo }
func (s *BreakStmt) Line() int  { return s.LineNo }
func (s *CallStmt) Line() int   { return s.LineNo }

func (*AssignStmt) stmtNode() {}
func (*IfStmt) stmtNode()     {}
func (*ForStmt) stmtNode()    {}
func (*WhileStmt) stmtNode()  {}
func (*ReturnStmt) stmtNode() {}
func (*BreakStmt) stmtNode()  {}
func (*CallStmt) stmtNode()   {}

// ── Expressions ──

// NumberLit is a decimal literal. The text is kept verbatim;
// the cost engine only ever needs the integer value of loop bounds.
type NumberLit struct {
	Text   string
	Value  float64
	LineNo int
}

// Selector is one step of a variable's access chain: exactly one of
// Field or Index is set.
//
//	A.length  → Selector{Field: "length"}
//	A[i+1]    → Selector{Index: <i+1>}
type Selector struct {
	Field string
	Index Expression
}

// VariableExpr is a name with an optional chain of field/index selectors.
type VariableExpr struct {
	Name      string
	Selectors []Selector
	LineNo    int
}

// BinaryExpr is a binary operation. Op is the source spelling of the
// operator: one of + - * / div mod ≤ ≥ ≠ = < > and or.
type BinaryExpr struct {
	Op     string
	LHS    Expression
	RHS    Expression
	LineNo int
}

// UnaryExpr is a prefix operation: Op is "-", "+", or "not".
type UnaryExpr struct {
	Op      string
	Operand Expression
	LineNo  int
}

// CallExpr is a function call in expression position.
type CallExpr struct {
	Name   string
	Args   []Expression
	LineNo int
}

func (e *NumberLit) Line() int    { return e.LineNo }
func (e *VariableExpr) Line() int { return e.LineNo }
func (e *BinaryExpr) Line() int   { return e.LineNo }
func (e *UnaryExpr) Line() int    { return e.LineNo }
func (e *CallExpr) Line() int     { return e.LineNo }

func (*NumberLit) exprNode()    {}
func (*VariableExpr) exprNode() {}
func (*BinaryExpr) exprNode()   {}
func (*UnaryExpr) exprNode()    {}
func (*CallExpr) exprNode()     {}

// IntValue returns the literal as a non-negative int and true when the
// literal is a whole number. Used to recognize concrete loop bounds.
func (e *NumberLit) IntValue() (int, bool) {
	n := int(e.Value)
	if float64(n) == e.Value && n >= 0 {
		return n, true
	}
	return 0, false
}
