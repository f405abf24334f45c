package parser

import (
	"fmt"
	"strconv"

	"github.com/dsalazardev/EffiCode-Analyzer/internal/lexer"
)

// SyntaxError describes why a source text failed to parse, with the
// best-effort position of the offending token.
type SyntaxError struct {
	Message string
	Line    int
	Column  int
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("syntax error at line %d, column %d: %s", e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("syntax error: %s", e.Message)
}

// Parse lexes and parses pseudocode source into a Program AST.
// On failure the returned error is a *SyntaxError.
func Parse(source string) (*Program, error) {
	lex := lexer.New(source)
	tokens, err := lex.Tokenize()
	if err != nil {
		return nil, &SyntaxError{Message: err.Error()}
	}
	p := &parser{tokens: tokens}
	return p.parseProgram()
}

// Validate reports whether the source parses successfully. It exposes
// no error detail; use Parse when the cause matters.
func Validate(source string) bool {
	_, err := Parse(source)
	return err == nil
}

// parser holds the state for a single parse run.
type parser struct {
	tokens []lexer.Token
	pos    int
}

// parseProgram parses a sequence of top-level statements and function
// declarations. An empty program is a syntax error: the grammar's start
// rule requires at least one construct.
func (p *parser) parseProgram() (*Program, error) {
	prog := &Program{}
	p.skipNewlines()

	for !p.isAtEnd() {
		if decl, ok, err := p.tryParseFuncDecl(); err != nil {
			return nil, err
		} else if ok {
			prog.Functions = append(prog.Functions, decl)
		} else {
			stmt, err := p.parseStatement()
			if err != nil {
				return nil, err
			}
			prog.Statements = append(prog.Statements, stmt)
		}
		p.skipNewlines()
	}

	if len(prog.Functions) == 0 && len(prog.Statements) == 0 {
		return nil, &SyntaxError{Message: "empty program: expected at least one statement or function declaration"}
	}
	return prog, nil
}

// tryParseFuncDecl attempts to parse a function declaration:
//
//	NAME(param, param)
//	    body
//
// A declaration is only recognizable after its parameter list — the
// header of MERGE(A, p, q) looks exactly like a call statement until the
// indented body shows up. The parser saves its position, scans the
// header, and backtracks when no body follows.
func (p *parser) tryParseFuncDecl() (*FuncDecl, bool, error) {
	if !p.check(lexer.TOKEN_IDENTIFIER) || p.peekAt(1).Type != lexer.TOKEN_LPAREN {
		return nil, false, nil
	}

	save := p.pos
	line := p.peek().Line
	name := p.advance().Literal
	p.advance() // consume (

	var params []string
	for !p.check(lexer.TOKEN_RPAREN) {
		if !p.check(lexer.TOKEN_IDENTIFIER) {
			p.pos = save
			return nil, false, nil
		}
		params = append(params, p.advance().Literal)
		if !p.match(lexer.TOKEN_COMMA) {
			break
		}
	}
	if !p.match(lexer.TOKEN_RPAREN) {
		p.pos = save
		return nil, false, nil
	}

	// A declaration header is followed by an indented body; anything
	// else means the header was really a call statement.
	if !p.check(lexer.TOKEN_NEWLINE) || p.peekAt(1).Type != lexer.TOKEN_INDENT {
		p.pos = save
		return nil, false, nil
	}
	p.advance() // consume NEWLINE
	p.advance() // consume INDENT

	body, err := p.parseStatements()
	if err != nil {
		return nil, false, err
	}
	if err := p.expect(lexer.TOKEN_DEDENT, "expected end of function body"); err != nil {
		return nil, false, err
	}

	return &FuncDecl{Name: name, Params: params, Body: body, LineNo: line}, true, nil
}

// parseStatements parses statements until a DEDENT or EOF, requiring at
// least one. Every block in the dialect is a non-empty statement sequence.
func (p *parser) parseStatements() ([]Statement, error) {
	var stmts []Statement
	p.skipNewlines()

	for !p.check(lexer.TOKEN_DEDENT) && !p.isAtEnd() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		p.skipNewlines()
	}

	if len(stmts) == 0 {
		return nil, p.errorf("expected at least one statement in block")
	}
	return stmts, nil
}

// parseStatement dispatches on the leading token.
func (p *parser) parseStatement() (Statement, error) {
	switch p.peek().Type {
	case lexer.TOKEN_IF:
		return p.parseIf()
	case lexer.TOKEN_FOR:
		return p.parseFor()
	case lexer.TOKEN_WHILE:
		return p.parseWhile()
	case lexer.TOKEN_RETURN:
		return p.parseReturn()
	case lexer.TOKEN_BREAK:
		line := p.advance().Line
		return &BreakStmt{LineNo: line}, nil
	case lexer.TOKEN_IDENTIFIER:
		return p.parseAssignOrCall()
	default:
		return nil, p.errorf("unexpected %s at start of statement", p.peek())
	}
}

// parseIf parses: if condition then body [else body]
func (p *parser) parseIf() (Statement, error) {
	line := p.advance().Line // consume if

	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TOKEN_THEN, "expected 'then' after if condition"); err != nil {
		return nil, err
	}
	then, err := p.parseBody()
	if err != nil {
		return nil, err
	}

	var elseBody []Statement
	if p.checkSkippingNewlines(lexer.TOKEN_ELSE) {
		p.skipNewlines()
		p.advance() // consume else
		elseBody, err = p.parseBody()
		if err != nil {
			return nil, err
		}
	}

	return &IfStmt{Cond: cond, Then: then, Else: elseBody, LineNo: line}, nil
}

// parseFor parses: for var ← from to|downto limit do body
func (p *parser) parseFor() (Statement, error) {
	line := p.advance().Line // consume for

	if !p.check(lexer.TOKEN_IDENTIFIER) {
		return nil, p.errorf("expected loop variable after 'for', got %s", p.peek())
	}
	name := p.advance().Literal

	if err := p.expect(lexer.TOKEN_ASSIGN, "expected ← after loop variable"); err != nil {
		return nil, err
	}
	from, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	down := false
	switch p.peek().Type {
	case lexer.TOKEN_TO:
		p.advance()
	case lexer.TOKEN_DOWNTO:
		p.advance()
		down = true
	default:
		return nil, p.errorf("expected 'to' or 'downto' in for loop, got %s", p.peek())
	}

	limit, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TOKEN_DO, "expected 'do' after for loop bounds"); err != nil {
		return nil, err
	}
	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}

	return &ForStmt{Var: name, From: from, Limit: limit, Down: down, Body: body, LineNo: line}, nil
}

// parseWhile parses: while condition do body
func (p *parser) parseWhile() (Statement, error) {
	line := p.advance().Line // consume while

	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TOKEN_DO, "expected 'do' after while condition"); err != nil {
		return nil, err
	}
	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}

	return &WhileStmt{Cond: cond, Body: body, LineNo: line}, nil
}

// parseReturn parses: return [expression]
func (p *parser) parseReturn() (Statement, error) {
	line := p.advance().Line // consume return

	// A bare return ends the line.
	if p.check(lexer.TOKEN_NEWLINE) || p.check(lexer.TOKEN_DEDENT) || p.isAtEnd() {
		return &ReturnStmt{LineNo: line}, nil
	}

	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ReturnStmt{Value: value, LineNo: line}, nil
}

// parseAssignOrCall parses either an assignment (variable ← expression)
// or a call statement (NAME(args)), both of which start with an identifier.
func (p *parser) parseAssignOrCall() (Statement, error) {
	line := p.peek().Line

	if p.peekAt(1).Type == lexer.TOKEN_LPAREN {
		call, err := p.parseCall()
		if err != nil {
			return nil, err
		}
		return &CallStmt{Call: call, LineNo: line}, nil
	}

	target, err := p.parseVariable()
	if err != nil {
		return nil, err
	}
	if !p.check(lexer.TOKEN_ASSIGN) {
		// A lone word where an assignment should start is usually a
		// misspelled keyword: "whle x > 0 do" parses this far.
		if len(target.Selectors) == 0 {
			if kw := suggestKeyword(target.Name); kw != "" {
				return nil, &SyntaxError{
					Message: fmt.Sprintf("unexpected '%s', did you mean '%s'?", target.Name, kw),
					Line:    line,
					Column:  p.peek().Column,
				}
			}
		}
	}
	if err := p.expect(lexer.TOKEN_ASSIGN, "expected ← in assignment"); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &AssignStmt{Target: target, Value: value, LineNo: line}, nil
}

// parseBody parses a statement block after do/then/else. The block is
// either a single inline statement on the same line, or an indented
// sequence of statements on the following lines.
func (p *parser) parseBody() ([]Statement, error) {
	if !p.check(lexer.TOKEN_NEWLINE) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		return []Statement{stmt}, nil
	}

	p.advance() // consume NEWLINE
	if err := p.expect(lexer.TOKEN_INDENT, "expected indented block"); err != nil {
		return nil, err
	}
	stmts, err := p.parseStatements()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TOKEN_DEDENT, "expected end of block"); err != nil {
		return nil, err
	}
	return stmts, nil
}

// ── Expression parsing ──
//
// Precedence climbing, loosest first:
//
//	or < and < not < comparison < additive < multiplicative < unary

func (p *parser) parseExpression() (Expression, error) {
	return p.parseOr()
}

func (p *parser) parseOr() (Expression, error) {
	lhs, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.TOKEN_OR) {
		line := p.advance().Line
		rhs, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		lhs = &BinaryExpr{Op: "or", LHS: lhs, RHS: rhs, LineNo: line}
	}
	return lhs, nil
}

func (p *parser) parseAnd() (Expression, error) {
	lhs, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.TOKEN_AND) {
		line := p.advance().Line
		rhs, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		lhs = &BinaryExpr{Op: "and", LHS: lhs, RHS: rhs, LineNo: line}
	}
	return lhs, nil
}

func (p *parser) parseNot() (Expression, error) {
	if p.check(lexer.TOKEN_NOT) {
		line := p.advance().Line
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: "not", Operand: operand, LineNo: line}, nil
	}
	return p.parseComparison()
}

func (p *parser) parseComparison() (Expression, error) {
	lhs, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for p.peek().IsRelational() {
		tok := p.advance()
		rhs, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		lhs = &BinaryExpr{Op: tok.Literal, LHS: lhs, RHS: rhs, LineNo: tok.Line}
	}
	return lhs, nil
}

func (p *parser) parseAdditive() (Expression, error) {
	lhs, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.TOKEN_PLUS) || p.check(lexer.TOKEN_MINUS) {
		tok := p.advance()
		rhs, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		lhs = &BinaryExpr{Op: tok.Literal, LHS: lhs, RHS: rhs, LineNo: tok.Line}
	}
	return lhs, nil
}

func (p *parser) parseMultiplicative() (Expression, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.TOKEN_STAR) || p.check(lexer.TOKEN_SLASH) ||
		p.check(lexer.TOKEN_DIV) || p.check(lexer.TOKEN_MOD) {
		tok := p.advance()
		rhs, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		lhs = &BinaryExpr{Op: tok.Literal, LHS: lhs, RHS: rhs, LineNo: tok.Line}
	}
	return lhs, nil
}

func (p *parser) parseUnary() (Expression, error) {
	if p.check(lexer.TOKEN_PLUS) || p.check(lexer.TOKEN_MINUS) {
		tok := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: tok.Literal, Operand: operand, LineNo: tok.Line}, nil
	}
	return p.parseAtom()
}

// parseAtom parses a number, a parenthesized expression, a call, or a
// variable with its selector chain.
func (p *parser) parseAtom() (Expression, error) {
	switch p.peek().Type {
	case lexer.TOKEN_NUMBER:
		tok := p.advance()
		value, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, &SyntaxError{Message: fmt.Sprintf("bad number literal %q", tok.Literal), Line: tok.Line, Column: tok.Column}
		}
		return &NumberLit{Text: tok.Literal, Value: value, LineNo: tok.Line}, nil

	case lexer.TOKEN_LPAREN:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(lexer.TOKEN_RPAREN, "expected ')'"); err != nil {
			return nil, err
		}
		return expr, nil

	case lexer.TOKEN_IDENTIFIER:
		if p.peekAt(1).Type == lexer.TOKEN_LPAREN {
			return p.parseCall()
		}
		return p.parseVariable()

	default:
		return nil, p.errorf("unexpected %s in expression", p.peek())
	}
}

// parseCall parses: NAME(arg, arg, ...)
func (p *parser) parseCall() (*CallExpr, error) {
	tok := p.advance() // identifier
	p.advance()        // consume (

	var args []Expression
	for !p.check(lexer.TOKEN_RPAREN) {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.match(lexer.TOKEN_COMMA) {
			break
		}
	}
	if err := p.expect(lexer.TOKEN_RPAREN, "expected ')' after call arguments"); err != nil {
		return nil, err
	}

	return &CallExpr{Name: tok.Literal, Args: args, LineNo: tok.Line}, nil
}

// parseVariable parses: NAME (. field | [ index ])*
func (p *parser) parseVariable() (*VariableExpr, error) {
	tok := p.advance() // identifier
	v := &VariableExpr{Name: tok.Literal, LineNo: tok.Line}

	for {
		switch p.peek().Type {
		case lexer.TOKEN_DOT:
			p.advance()
			if !p.check(lexer.TOKEN_IDENTIFIER) {
				return nil, p.errorf("expected field name after '.', got %s", p.peek())
			}
			v.Selectors = append(v.Selectors, Selector{Field: p.advance().Literal})

		case lexer.TOKEN_LBRACKET:
			p.advance()
			index, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if err := p.expect(lexer.TOKEN_RBRACKET, "expected ']' after index"); err != nil {
				return nil, err
			}
			v.Selectors = append(v.Selectors, Selector{Index: index})

		default:
			return v, nil
		}
	}
}

// ── Token stream helpers ──

func (p *parser) isAtEnd() bool {
	return p.peek().Type == lexer.TOKEN_EOF
}

func (p *parser) peek() lexer.Token {
	if p.pos >= len(p.tokens) {
		return lexer.Token{Type: lexer.TOKEN_EOF}
	}
	return p.tokens[p.pos]
}

func (p *parser) peekAt(offset int) lexer.Token {
	if p.pos+offset >= len(p.tokens) {
		return lexer.Token{Type: lexer.TOKEN_EOF}
	}
	return p.tokens[p.pos+offset]
}

func (p *parser) advance() lexer.Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// check returns true if the current token is of the given type.
func (p *parser) check(t lexer.TokenType) bool {
	return p.peek().Type == t
}

// checkSkippingNewlines looks past NEWLINE tokens for the given type,
// without consuming anything. Used for "else" on its own line.
func (p *parser) checkSkippingNewlines(t lexer.TokenType) bool {
	i := 0
	for p.peekAt(i).Type == lexer.TOKEN_NEWLINE {
		i++
	}
	return p.peekAt(i).Type == t
}

// match consumes the current token if it is of the given type.
func (p *parser) match(t lexer.TokenType) bool {
	if p.check(t) {
		p.advance()
		return true
	}
	return false
}

// expect consumes a token of the given type or fails with a SyntaxError.
func (p *parser) expect(t lexer.TokenType, msg string) error {
	if p.match(t) {
		return nil
	}
	return p.errorf("%s, got %s", msg, p.peek())
}

func (p *parser) skipNewlines() {
	for p.check(lexer.TOKEN_NEWLINE) {
		p.advance()
	}
}

// errorf builds a SyntaxError at the current token's position.
func (p *parser) errorf(format string, args ...interface{}) error {
	tok := p.peek()
	return &SyntaxError{
		Message: fmt.Sprintf(format, args...),
		Line:    tok.Line,
		Column:  tok.Column,
	}
}
