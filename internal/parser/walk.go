package parser

import "iter"

// Walk returns a lazy pre-order traversal of the subtree rooted at n.
// The sequence is finite and restartable: ranging over it twice visits
// the same nodes in the same order.
func Walk(n Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		walk(n, yield)
	}
}

// walk visits n and its children pre-order. Returns false when the
// consumer stopped early.
func walk(n Node, yield func(Node) bool) bool {
	if n == nil {
		return true
	}
	if !yield(n) {
		return false
	}

	switch v := n.(type) {
	case *Program:
		for _, f := range v.Functions {
			if !walk(f, yield) {
				return false
			}
		}
		for _, s := range v.Statements {
			if !walk(s, yield) {
				return false
			}
		}

	case *FuncDecl:
		for _, s := range v.Body {
			if !walk(s, yield) {
				return false
			}
		}

	case *AssignStmt:
		if !walk(v.Target, yield) || !walk(v.Value, yield) {
			return false
		}

	case *IfStmt:
		if !walk(v.Cond, yield) {
			return false
		}
		for _, s := range v.Then {
			if !walk(s, yield) {
				return false
			}
		}
		for _, s := range v.Else {
			if !walk(s, yield) {
				return false
			}
		}

	case *ForStmt:
		if !walk(v.From, yield) || !walk(v.Limit, yield) {
			return false
		}
		for _, s := range v.Body {
			if !walk(s, yield) {
				return false
			}
		}

	case *WhileStmt:
		if !walk(v.Cond, yield) {
			return false
		}
		for _, s := range v.Body {
			if !walk(s, yield) {
				return false
			}
		}

	case *ReturnStmt:
		if v.Value != nil && !walk(v.Value, yield) {
			return false
		}

	case *CallStmt:
		if !walk(v.Call, yield) {
			return false
		}

	case *VariableExpr:
		for _, sel := range v.Selectors {
			if sel.Index != nil && !walk(sel.Index, yield) {
				return false
			}
		}

	case *BinaryExpr:
		if !walk(v.LHS, yield) || !walk(v.RHS, yield) {
			return false
		}

	case *UnaryExpr:
		if !walk(v.Operand, yield) {
			return false
		}

	case *CallExpr:
		for _, a := range v.Args {
			if !walk(a, yield) {
				return false
			}
		}
	}

	return true
}

// ContainsEarlyExit reports whether a loop body contains a break or a
// return on some execution path. The scan covers arbitrarily nested
// conditionals and loops but does not cross into nested function
// declarations — a return inside a declared procedure exits that
// procedure, not the loop under analysis.
func ContainsEarlyExit(body []Statement) bool {
	for _, s := range body {
		if stmtExits(s) {
			return true
		}
	}
	return false
}

func stmtExits(s Statement) bool {
	switch v := s.(type) {
	case *BreakStmt, *ReturnStmt:
		return true
	case *IfStmt:
		return ContainsEarlyExit(v.Then) || ContainsEarlyExit(v.Else)
	case *ForStmt:
		// A break in an inner loop exits the inner loop only, but a
		// return exits everything. Scan for returns alone.
		return containsReturn(v.Body)
	case *WhileStmt:
		return containsReturn(v.Body)
	}
	return false
}

func containsReturn(body []Statement) bool {
	for _, s := range body {
		switch v := s.(type) {
		case *ReturnStmt:
			return true
		case *IfStmt:
			if containsReturn(v.Then) || containsReturn(v.Else) {
				return true
			}
		case *ForStmt:
			if containsReturn(v.Body) {
				return true
			}
		case *WhileStmt:
			if containsReturn(v.Body) {
				return true
			}
		}
	}
	return false
}
