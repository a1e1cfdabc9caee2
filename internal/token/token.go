// Package token splits boolean keyword expressions into tokens.
package token

type Type int

const (
	EOF Type = iota
	WORD
	AND
	OR
	NOT
	LPAREN
	RPAREN
	// ILLEGAL carries input the grammar has no meaning for.
	ILLEGAL
)

var typeNames = [...]string{
	EOF:     "EOF",
	WORD:    "WORD",
	AND:     "AND",
	OR:      "OR",
	NOT:     "NOT",
	LPAREN:  "LPAREN",
	RPAREN:  "RPAREN",
	ILLEGAL: "ILLEGAL",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "UNKNOWN"
	}
	return typeNames[t]
}

// IsBinary reports whether t joins two operands.
func (t Type) IsBinary() bool {
	return t == AND || t == OR
}

// Token is one lexeme. Pos is its rune offset in the trimmed input.
// Quoted is set for WORD tokens read from a "quoted phrase".
type Token struct {
	Type   Type
	Value  string
	Pos    int
	Quoted bool
}
