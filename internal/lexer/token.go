package lexer

import (
	"fmt"
	"sort"
)

// TokenType represents the type of a lexical token.
type TokenType int

const (
	// Structural tokens
	TOKEN_EOF      TokenType = iota
	TOKEN_NEWLINE            // end of a logical line
	TOKEN_INDENT             // increase in indentation level
	TOKEN_DEDENT             // decrease in indentation level
	TOKEN_COMMA              // ,
	TOKEN_LPAREN             // (
	TOKEN_RPAREN             // )
	TOKEN_LBRACKET           // [
	TOKEN_RBRACKET           // ]
	TOKEN_DOT                // . (field access, e.g. A.length)
	TOKEN_COMMENT            // // comment text

	// Literal tokens
	TOKEN_NUMBER     // 42, 3.14
	TOKEN_IDENTIFIER // A, key, INSERTION-SORT

	// ── Operators ──

	TOKEN_ASSIGN        // ← (U+2190)
	TOKEN_LESS_EQUAL    // ≤ (U+2264)
	TOKEN_GREATER_EQUAL // ≥ (U+2265)
	TOKEN_NOT_EQUAL     // ≠ (U+2260)
	TOKEN_EQUAL         // =
	TOKEN_LESS          // <
	TOKEN_GREATER       // >
	TOKEN_PLUS          // +
	TOKEN_MINUS         // -
	TOKEN_STAR          // *
	TOKEN_SLASH         // /

	// ── Keywords ──

	TOKEN_FOR    // for
	TOKEN_TO     // to
	TOKEN_DOWNTO // downto
	TOKEN_DO     // do
	TOKEN_WHILE  // while
	TOKEN_IF     // if
	TOKEN_THEN   // then
	TOKEN_ELSE   // else
	TOKEN_RETURN // return
	TOKEN_BREAK  // break
	TOKEN_AND    // and
	TOKEN_OR     // or
	TOKEN_NOT    // not
	TOKEN_DIV    // div (integer division)
	TOKEN_MOD    // mod (modulo)
)

// tokenNames maps token types to their display names.
var tokenNames = map[TokenType]string{
	// Structural
	TOKEN_EOF:      "EOF",
	TOKEN_NEWLINE:  "NEWLINE",
	TOKEN_INDENT:   "INDENT",
	TOKEN_DEDENT:   "DEDENT",
	TOKEN_COMMA:    "COMMA",
	TOKEN_LPAREN:   "LPAREN",
	TOKEN_RPAREN:   "RPAREN",
	TOKEN_LBRACKET: "LBRACKET",
	TOKEN_RBRACKET: "RBRACKET",
	TOKEN_DOT:      "DOT",
	TOKEN_COMMENT:  "COMMENT",

	// Literals
	TOKEN_NUMBER:     "NUMBER",
	TOKEN_IDENTIFIER: "IDENTIFIER",

	// Operators
	TOKEN_ASSIGN:        "←",
	TOKEN_LESS_EQUAL:    "≤",
	TOKEN_GREATER_EQUAL: "≥",
	TOKEN_NOT_EQUAL:     "≠",
	TOKEN_EQUAL:         "=",
	TOKEN_LESS:          "<",
	TOKEN_GREATER:       ">",
	TOKEN_PLUS:          "+",
	TOKEN_MINUS:         "-",
	TOKEN_STAR:          "*",
	TOKEN_SLASH:         "/",

	// Keywords
	TOKEN_FOR:    "for",
	TOKEN_TO:     "to",
	TOKEN_DOWNTO: "downto",
	TOKEN_DO:     "do",
	TOKEN_WHILE:  "while",
	TOKEN_IF:     "if",
	TOKEN_THEN:   "then",
	TOKEN_ELSE:   "else",
	TOKEN_RETURN: "return",
	TOKEN_BREAK:  "break",
	TOKEN_AND:    "and",
	TOKEN_OR:     "or",
	TOKEN_NOT:    "not",
	TOKEN_DIV:    "div",
	TOKEN_MOD:    "mod",
}

// String returns the display name of a token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", int(t))
}

// Token represents a single lexical token with its position in the source.
type Token struct {
	Type    TokenType
	Literal string // the actual source text of the token
	Line    int    // 1-based line number
	Column  int    // 1-based column number
}

// String returns a human-readable representation of a token.
func (t Token) String() string {
	switch t.Type {
	case TOKEN_EOF:
		return "EOF"
	case TOKEN_NEWLINE:
		return "NEWLINE"
	case TOKEN_INDENT:
		return "INDENT"
	case TOKEN_DEDENT:
		return "DEDENT"
	default:
		if t.Literal != "" {
			return fmt.Sprintf("%s(%q)", t.Type, t.Literal)
		}
		return t.Type.String()
	}
}

// IsRelational reports whether the token is one of the six relational
// operators of the dialect: ≤ ≥ ≠ = < >.
func (t Token) IsRelational() bool {
	switch t.Type {
	case TOKEN_LESS_EQUAL, TOKEN_GREATER_EQUAL, TOKEN_NOT_EQUAL,
		TOKEN_EQUAL, TOKEN_LESS, TOKEN_GREATER:
		return true
	}
	return false
}

// keywords maps keyword strings to their token types.
// Keywords are case-sensitive: Cormen pseudocode writes them in lowercase,
// and an uppercase FOR is a perfectly good procedure name.
var keywords = map[string]TokenType{
	"for":    TOKEN_FOR,
	"to":     TOKEN_TO,
	"downto": TOKEN_DOWNTO,
	"do":     TOKEN_DO,
	"while":  TOKEN_WHILE,
	"if":     TOKEN_IF,
	"then":   TOKEN_THEN,
	"else":   TOKEN_ELSE,
	"return": TOKEN_RETURN,
	"break":  TOKEN_BREAK,
	"and":    TOKEN_AND,
	"or":     TOKEN_OR,
	"not":    TOKEN_NOT,
	"div":    TOKEN_DIV,
	"mod":    TOKEN_MOD,
}

// LookupKeyword returns the keyword token type for the given word,
// or TOKEN_IDENTIFIER if the word is not a keyword.
func LookupKeyword(word string) TokenType {
	if tok, ok := keywords[word]; ok {
		return tok
	}
	return TOKEN_IDENTIFIER
}

// KeywordNames returns the dialect's keywords in a stable order,
// for documentation and tooling output.
func KeywordNames() []string {
	names := make([]string, 0, len(keywords))
	for k := range keywords {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
