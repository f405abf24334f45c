package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Lexer tokenizes Cormen-style pseudocode into a stream of tokens.
type Lexer struct {
	source  string  // the full source text
	tokens  []Token // accumulated tokens
	start   int     // byte offset of current token start
	current int     // byte offset of current position
	line    int     // current line number (1-based)
	column  int     // current column number (1-based)

	// Indentation tracking. Cormen blocks are scoped by indentation,
	// so the lexer emits INDENT/DEDENT pairs like a Python tokenizer.
	indentStack []int // stack of indentation levels
	atLineStart bool  // true when we're at the beginning of a new line
}

// New creates a new Lexer for the given source code.
func New(source string) *Lexer {
	return &Lexer{
		source:      source,
		tokens:      make([]Token, 0, 128),
		line:        1,
		column:      1,
		indentStack: []int{0},
		atLineStart: true,
	}
}

// Tokenize processes the entire source and returns all tokens.
// The token stream always ends with TOKEN_EOF.
func (l *Lexer) Tokenize() ([]Token, error) {
	for !l.isAtEnd() {
		if l.atLineStart {
			if err := l.processLineStart(); err != nil {
				return nil, err
			}
			continue
		}

		l.start = l.current
		if err := l.scanToken(); err != nil {
			return nil, err
		}
	}

	// Close the last logical line before unwinding indentation.
	if len(l.tokens) > 0 && l.tokens[len(l.tokens)-1].Type != TOKEN_NEWLINE {
		l.emit(TOKEN_NEWLINE, "")
	}

	// Emit DEDENT tokens for any remaining indentation levels
	for len(l.indentStack) > 1 {
		l.indentStack = l.indentStack[:len(l.indentStack)-1]
		l.emit(TOKEN_DEDENT, "")
	}

	l.emit(TOKEN_EOF, "")
	return l.tokens, nil
}

// processLineStart handles the beginning of a new line: blank line skipping,
// comment-only lines, and indentation changes.
func (l *Lexer) processLineStart() error {
	// Measure leading whitespace
	indent := 0
	for !l.isAtEnd() {
		r := l.peekRune()
		if r == ' ' {
			indent++
			l.advance()
		} else if r == '\t' {
			indent += 4 // tabs count as 4 spaces
			l.advance()
		} else {
			break
		}
	}

	if l.isAtEnd() {
		l.atLineStart = false
		return nil
	}

	r := l.peekRune()

	// Blank line: skip entirely
	if r == '\n' {
		l.advance()
		l.line++
		l.column = 1
		return nil
	}
	if r == '\r' {
		l.advance()
		if !l.isAtEnd() && l.peekRune() == '\n' {
			l.advance()
		}
		l.line++
		l.column = 1
		return nil
	}

	// Comment-only line: skip to next line without touching indentation
	if r == '/' && l.peekRuneAt(l.current+1) == '/' {
		l.skipComment()
		return nil
	}

	// Process indentation changes
	currentIndent := l.indentStack[len(l.indentStack)-1]

	if indent > currentIndent {
		l.indentStack = append(l.indentStack, indent)
		l.emit(TOKEN_INDENT, "")
	} else if indent < currentIndent {
		for len(l.indentStack) > 1 && l.indentStack[len(l.indentStack)-1] > indent {
			l.indentStack = l.indentStack[:len(l.indentStack)-1]
			l.emit(TOKEN_DEDENT, "")
		}
		if l.indentStack[len(l.indentStack)-1] != indent {
			return l.errorf("unindent does not match any outer indentation level")
		}
	}

	l.atLineStart = false
	l.start = l.current
	return nil
}

// scanToken scans and emits the next token from the current position.
func (l *Lexer) scanToken() error {
	r := l.peekRune()

	switch {
	case r == '\n':
		l.advance()
		l.emit(TOKEN_NEWLINE, "")
		l.line++
		l.column = 1
		l.atLineStart = true
		return nil

	case r == '\r':
		l.advance()
		if !l.isAtEnd() && l.peekRune() == '\n' {
			l.advance()
		}
		l.emit(TOKEN_NEWLINE, "")
		l.line++
		l.column = 1
		l.atLineStart = true
		return nil

	case r == ' ' || r == '\t':
		l.skipWhitespace()
		l.start = l.current
		return nil

	case r == '/':
		if l.peekRuneAt(l.current+1) == '/' {
			// Inline comment runs to end of line; the line still ends
			// with a NEWLINE from the scan loop.
			for !l.isAtEnd() && l.peekRune() != '\n' && l.peekRune() != '\r' {
				l.advance()
			}
			l.start = l.current
			return nil
		}
		l.advance()
		l.emit(TOKEN_SLASH, "/")
		return nil

	case r == '←': // ←
		l.advance()
		l.emit(TOKEN_ASSIGN, "←")
		return nil

	case r == '≤': // ≤
		l.advance()
		l.emit(TOKEN_LESS_EQUAL, "≤")
		return nil

	case r == '≥': // ≥
		l.advance()
		l.emit(TOKEN_GREATER_EQUAL, "≥")
		return nil

	case r == '≠': // ≠
		l.advance()
		l.emit(TOKEN_NOT_EQUAL, "≠")
		return nil

	case r == '=':
		l.advance()
		l.emit(TOKEN_EQUAL, "=")
		return nil

	case r == '<':
		l.advance()
		// A C-style "<=" is not part of the dialect; the single-rune ≤ is.
		if !l.isAtEnd() && l.peekRune() == '=' {
			return l.errorf("unexpected '<=': the dialect writes ≤")
		}
		l.emit(TOKEN_LESS, "<")
		return nil

	case r == '>':
		l.advance()
		if !l.isAtEnd() && l.peekRune() == '=' {
			return l.errorf("unexpected '>=': the dialect writes ≥")
		}
		l.emit(TOKEN_GREATER, ">")
		return nil

	case r == '+':
		l.advance()
		l.emit(TOKEN_PLUS, "+")
		return nil

	case r == '-':
		l.advance()
		l.emit(TOKEN_MINUS, "-")
		return nil

	case r == '*':
		l.advance()
		l.emit(TOKEN_STAR, "*")
		return nil

	case r == '(':
		l.advance()
		l.emit(TOKEN_LPAREN, "(")
		return nil

	case r == ')':
		l.advance()
		l.emit(TOKEN_RPAREN, ")")
		return nil

	case r == '[':
		l.advance()
		l.emit(TOKEN_LBRACKET, "[")
		return nil

	case r == ']':
		l.advance()
		l.emit(TOKEN_RBRACKET, "]")
		return nil

	case r == '.':
		l.advance()
		l.emit(TOKEN_DOT, ".")
		return nil

	case r == ',':
		l.advance()
		l.emit(TOKEN_COMMA, ",")
		return nil

	case r == ':':
		// Catches ':=' — the single most common mistake when writing
		// the dialect. The only assignment operator is ←.
		if l.peekRuneAt(l.current+1) == '=' {
			return l.errorf("unexpected ':=': the dialect's assignment operator is ←")
		}
		return l.errorf("unexpected ':'")

	case isDigit(r):
		l.scanNumber()
		return nil

	case isAlpha(r) || r == '_':
		l.scanWord()
		return nil

	default:
		return l.errorf("unexpected character %q", r)
	}
}

// scanNumber scans an integer or decimal number.
func (l *Lexer) scanNumber() {
	for !l.isAtEnd() && isDigit(l.peekRune()) {
		l.advance()
	}

	// Check for decimal point
	if !l.isAtEnd() && l.peekRune() == '.' {
		next := l.current + 1
		if next < len(l.source) && isDigit(l.peekRuneAt(next)) {
			l.advance() // consume .
			for !l.isAtEnd() && isDigit(l.peekRune()) {
				l.advance()
			}
		}
	}

	l.emit(TOKEN_NUMBER, l.source[l.start:l.current])
}

// scanWord scans a keyword or identifier.
// Identifiers match [a-zA-Z_][a-zA-Z0-9_-]* — hyphens are legal inside
// names (INSERTION-SORT), but only when followed by another letter so
// that "i - 1" still lexes as three tokens.
func (l *Lexer) scanWord() {
	l.advance() // first rune already classified by the caller

	for !l.isAtEnd() {
		r := l.peekRune()
		if isAlphaNumeric(r) {
			l.advance()
			continue
		}
		if r == '-' {
			nextPos := l.current + 1
			if nextPos < len(l.source) && isAlphaNumeric(l.peekRuneAt(nextPos)) {
				l.advance() // consume -
				continue
			}
		}
		break
	}

	word := l.source[l.start:l.current]
	l.emit(LookupKeyword(word), word)
}

// skipComment consumes a comment-only line including its newline.
func (l *Lexer) skipComment() {
	for !l.isAtEnd() && l.peekRune() != '\n' && l.peekRune() != '\r' {
		l.advance()
	}
	if !l.isAtEnd() {
		r := l.peekRune()
		if r == '\r' {
			l.advance()
			if !l.isAtEnd() && l.peekRune() == '\n' {
				l.advance()
			}
		} else {
			l.advance()
		}
		l.line++
		l.column = 1
	}
}

// ── Character scanning helpers ──

// isAtEnd returns true if the lexer has reached the end of the source.
func (l *Lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

// peekRune returns the rune at the current position without advancing.
func (l *Lexer) peekRune() rune {
	if l.isAtEnd() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.source[l.current:])
	return r
}

// peekRuneAt returns the rune at the given byte offset.
func (l *Lexer) peekRuneAt(offset int) rune {
	if offset >= len(l.source) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.source[offset:])
	return r
}

// advance consumes the current rune and moves forward.
func (l *Lexer) advance() rune {
	if l.isAtEnd() {
		return 0
	}
	r, size := utf8.DecodeRuneInString(l.source[l.current:])
	l.current += size
	l.column++
	return r
}

// skipWhitespace consumes spaces and tabs.
func (l *Lexer) skipWhitespace() {
	for !l.isAtEnd() {
		r := l.peekRune()
		if r == ' ' || r == '\t' {
			l.advance()
		} else {
			break
		}
	}
}

// emit adds a token to the output stream. The recorded column is the
// token's first rune, not the position after it was consumed.
func (l *Lexer) emit(tokenType TokenType, literal string) {
	column := l.column - utf8.RuneCountInString(l.source[l.start:l.current])
	if column < 1 {
		column = 1
	}
	l.tokens = append(l.tokens, Token{
		Type:    tokenType,
		Literal: literal,
		Line:    l.line,
		Column:  column,
	})
	l.start = l.current
}

// errorf returns a formatted error with the current position.
func (l *Lexer) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("lexer error at line %d, column %d: %s",
		l.line, l.column, fmt.Sprintf(format, args...))
}

// ── Character classification helpers ──

func isAlpha(r rune) bool {
	return unicode.IsLetter(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlphaNumeric(r rune) bool {
	return isAlpha(r) || isDigit(r) || r == '_'
}
