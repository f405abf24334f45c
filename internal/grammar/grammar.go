// Package grammar holds the formal description of the pseudocode
// dialect: Cormen-style assignment with ←, the six relational operators
// ≤ ≥ ≠ = < >, for/while/if control flow, and // comments.
//
// The grammar is descriptive — the hand-written recursive-descent
// parser in internal/parser is the executable definition — but the two
// are kept in lockstep, and the rule catalogue feeds documentation and
// tooling output (the `efficode grammar` subcommand).
package grammar

import "strings"

// text is the EBNF-ish grammar of the dialect. One rule per line,
// "name: production". Terminals are quoted; character classes use
// regex notation.
const text = `
start: (statement | function_declaration)+

statement: assignment | if_statement | for_statement | while_statement | function_call | return_statement | break_statement

function_declaration: IDENTIFIER "(" [parameter_list] ")" statements

if_statement: "if" condition "then" statements ("else" statements)?
for_statement: "for" IDENTIFIER "←" expression ("to" | "downto") expression "do" statements
while_statement: "while" condition "do" statements

statements: (statement)+

assignment: variable "←" expression
return_statement: "return" [expression]
break_statement: "break"

parameter_list: IDENTIFIER ("," IDENTIFIER)*
argument_list: expression ("," expression)*

condition: expression

expression: bool_or
bool_or: bool_and ("or" bool_and)*
bool_and: bool_not ("and" bool_not)*
bool_not: "not" bool_not | comparison
comparison: arithmetic (REL_OP arithmetic)*

arithmetic: term (("+" | "-") term)*
term: factor (("*" | "/" | "div" | "mod") factor)*
factor: ("+" | "-") factor | atom

atom: NUMBER | variable | "(" expression ")" | function_call

variable: IDENTIFIER ("." IDENTIFIER | "[" expression "]")*
function_call: IDENTIFIER "(" [argument_list] ")"

IDENTIFIER: /[a-zA-Z_][a-zA-Z0-9_-]*/
REL_OP: "≤" | "≥" | "≠" | "=" | "<" | ">"
NUMBER: /[0-9]+(\.[0-9]+)?/
COMMENT: "//" /[^\n]*/
`

// NamedRule is a single production rule of the grammar.
type NamedRule struct {
	Name       string
	Production string
}

// rules is the parsed catalogue, in declaration order. Built once at
// package init; never mutated afterwards.
var rules = parseText()

// byName indexes the catalogue for Rule lookups.
var byName = func() map[string]string {
	m := make(map[string]string, len(rules))
	for _, r := range rules {
		m[r.Name] = r.Production
	}
	return m
}()

func parseText() []NamedRule {
	var out []NamedRule
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		name, production, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		out = append(out, NamedRule{
			Name:       strings.TrimSpace(name),
			Production: strings.TrimSpace(production),
		})
	}
	return out
}

// Rule returns the production text for a rule name.
func Rule(name string) (string, bool) {
	production, ok := byName[name]
	return production, ok
}

// Rules returns every rule in declaration order. The caller gets a
// copy and cannot disturb the catalogue.
func Rules() []NamedRule {
	out := make([]NamedRule, len(rules))
	copy(out, rules)
	return out
}

// Text returns the full grammar text.
func Text() string {
	return strings.TrimSpace(text) + "\n"
}
