package parser

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes an indented tree rendering of the AST, one node per
// line, for the "ast" command and for debugging parser changes.
func Fprint(w io.Writer, prog *Program) {
	for _, fn := range prog.Functions {
		fmt.Fprintf(w, "FuncDecl %s(%s) [line %d]\n", fn.Name, strings.Join(fn.Params, ", "), fn.Line())
		printStatements(w, fn.Body, 1)
	}
	for _, stmt := range prog.Statements {
		printStatement(w, stmt, 0)
	}
}

func printStatements(w io.Writer, stmts []Statement, depth int) {
	for _, stmt := range stmts {
		printStatement(w, stmt, depth)
	}
}

func printStatement(w io.Writer, stmt Statement, depth int) {
	pad := strings.Repeat("  ", depth)
	switch s := stmt.(type) {
	case *AssignStmt:
		fmt.Fprintf(w, "%sAssign %s ← %s [line %d]\n", pad, exprString(s.Target), exprString(s.Value), s.Line())
	case *IfStmt:
		fmt.Fprintf(w, "%sIf %s [line %d]\n", pad, exprString(s.Cond), s.Line())
		printStatements(w, s.Then, depth+1)
		if len(s.Else) > 0 {
			fmt.Fprintf(w, "%sElse\n", pad)
			printStatements(w, s.Else, depth+1)
		}
	case *ForStmt:
		dir := "to"
		if s.Down {
			dir = "downto"
		}
		fmt.Fprintf(w, "%sFor %s ← %s %s %s [line %d]\n", pad, s.Var, exprString(s.From), dir, exprString(s.Limit), s.Line())
		printStatements(w, s.Body, depth+1)
	case *WhileStmt:
		fmt.Fprintf(w, "%sWhile %s [line %d]\n", pad, exprString(s.Cond), s.Line())
		printStatements(w, s.Body, depth+1)
	case *ReturnStmt:
		if s.Value != nil {
			fmt.Fprintf(w, "%sReturn %s [line %d]\n", pad, exprString(s.Value), s.Line())
		} else {
			fmt.Fprintf(w, "%sReturn [line %d]\n", pad, s.Line())
		}
	case *BreakStmt:
		fmt.Fprintf(w, "%sBreak [line %d]\n", pad, s.Line())
	case *CallStmt:
		fmt.Fprintf(w, "%sCall %s [line %d]\n", pad, exprString(s.Call), s.Line())
	}
}

// exprString renders an expression in source-like form.
func exprString(e Expression) string {
	switch x := e.(type) {
	case *NumberLit:
		return x.Text
	case *VariableExpr:
		var b strings.Builder
		b.WriteString(x.Name)
		for _, sel := range x.Selectors {
			if sel.Index != nil {
				fmt.Fprintf(&b, "[%s]", exprString(sel.Index))
			} else {
				fmt.Fprintf(&b, ".%s", sel.Field)
			}
		}
		return b.String()
	case *BinaryExpr:
		return fmt.Sprintf("(%s %s %s)", exprString(x.LHS), x.Op, exprString(x.RHS))
	case *UnaryExpr:
		return fmt.Sprintf("(%s %s)", x.Op, exprString(x.Operand))
	case *CallExpr:
		args := make([]string, len(x.Args))
		for i, a := range x.Args {
			args[i] = exprString(a)
		}
		return fmt.Sprintf("%s(%s)", x.Name, strings.Join(args, ", "))
	default:
		return fmt.Sprintf("%T", e)
	}
}
