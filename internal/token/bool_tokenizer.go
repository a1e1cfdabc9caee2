package token

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
)

type BoolTokenizer struct {
	input []rune
	pos   int
}

func NewBoolTokenizer() *BoolTokenizer {
	return &BoolTokenizer{}
}

// Tokenize converts the input string into a slice of Tokens.
// Example: Input: `(Saudi AND "labor market") OR NOT sports`
// A leading '-' on a word is shorthand for NOT, so `-sports` yields NOT, WORD.
func (t *BoolTokenizer) Tokenize(input string) []Token {
	t.input = []rune(strings.TrimSpace(input))
	t.pos = 0

	var tokens []Token

	t.skipWhitespace()
	for t.pos < len(t.input) {
		ch := t.input[t.pos]
		switch {
		case ch == '(':
			tokens = append(tokens, Token{Type: LPAREN, Value: "(", Pos: t.pos})
			t.pos++
		case ch == ')':
			tokens = append(tokens, Token{Type: RPAREN, Value: ")", Pos: t.pos})
			t.pos++
		case ch == '"':
			if tok, ok := t.readQuoted(); ok {
				tokens = append(tokens, tok)
			}
		case ch == '-' && t.pos+1 < len(t.input) && (isWordChar(t.input[t.pos+1]) || t.input[t.pos+1] == '"' || t.input[t.pos+1] == '('):
			tokens = append(tokens, Token{Type: NOT, Value: "-", Pos: t.pos})
			t.pos++
		case isWordChar(ch):
			tokens = append(tokens, t.readWord())
		default:
			tokens = append(tokens, Token{Type: ILLEGAL, Value: string(ch), Pos: t.pos})
			t.pos++
		}
		t.skipWhitespace()
	}

	tokens = append(tokens, Token{Type: EOF, Pos: len(t.input)})
	return tokens
}

func (t *BoolTokenizer) skipWhitespace() {
	for t.pos < len(t.input) && unicode.IsSpace(t.input[t.pos]) {
		t.pos++
	}
}

func (t *BoolTokenizer) readWord() Token {
	start := t.pos
	for t.pos < len(t.input) && (isWordChar(t.input[t.pos]) || t.input[t.pos] == '-') {
		t.pos++
	}

	word := strings.TrimRight(string(t.input[start:t.pos]), "-")

	tok := Token{Type: WORD, Value: word, Pos: start}
	switch word {
	case "AND":
		tok.Type = AND
	case "OR":
		tok.Type = OR
	case "NOT":
		tok.Type = NOT
	}
	return tok
}

// readQuoted reads a phrase up to the closing quote. Empty phrases are
// dropped; an unterminated quote yields an ILLEGAL token.
func (t *BoolTokenizer) readQuoted() (Token, bool) {
	open := t.pos
	t.pos++
	start := t.pos
	for t.pos < len(t.input) && t.input[t.pos] != '"' {
		t.pos++
	}
	if t.pos >= len(t.input) {
		return Token{Type: ILLEGAL, Value: string(t.input[open:]), Pos: open}, true
	}
	value := strings.Join(strings.Fields(string(t.input[start:t.pos])), " ")
	t.pos++
	if value == "" {
		return Token{}, false
	}
	return Token{Type: WORD, Value: value, Pos: open, Quoted: true}, true
}

// isWordChar accepts letters and combining marks so Arabic diacritics stay
// attached to their term, plus the symbols that appear in handles and hashtags.
func isWordChar(ch rune) bool {
	if unicode.IsLetter(ch) || unicode.IsMark(ch) || unicode.IsDigit(ch) {
		return true
	}
	switch ch {
	case '_', '#', '@', '\'', '’', '.', '&':
		return true
	}
	return false
}

// Validate checks operator placement and parenthesis balance.
func (t *BoolTokenizer) Validate(tokens []Token) error {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != EOF {
		tokens = append(slices.Clip(tokens), Token{Type: EOF})
	}

	depth := 0
	hasWord := false

	for i, tok := range tokens {
		if tok.Type == EOF {
			break
		}

		switch {
		case tok.Type == WORD:
			hasWord = true
		case tok.Type == LPAREN:
			depth++
			if i+1 < len(tokens) && tokens[i+1].Type == RPAREN {
				return fmt.Errorf("empty parentheses at position %d", tok.Pos)
			}
		case tok.Type == RPAREN:
			depth--
			if depth < 0 {
				return fmt.Errorf("unexpected closing parenthesis at position %d", tok.Pos)
			}
		case tok.Type.IsBinary():
			if i == 0 {
				return fmt.Errorf("expression cannot start with %s", tok.Value)
			}
			if prev := tokens[i-1].Type; prev != WORD && prev != RPAREN {
				return fmt.Errorf("unexpected %s at position %d", tok.Value, tok.Pos)
			}
			if next := tokens[i+1].Type; next == EOF || next == RPAREN {
				return fmt.Errorf("expression cannot end with %s", tok.Value)
			}
		case tok.Type == NOT:
			if next := tokens[i+1].Type; next != WORD && next != LPAREN && next != NOT {
				return fmt.Errorf("NOT must be followed by a term or group, position %d", tok.Pos)
			}
		case tok.Type == ILLEGAL && strings.HasPrefix(tok.Value, `"`):
			return fmt.Errorf("unterminated quote at position %d", tok.Pos)
		default:
			return fmt.Errorf("invalid character %q at position %d", tok.Value, tok.Pos)
		}
	}

	if depth != 0 {
		return fmt.Errorf("unbalanced parentheses: %d unclosed", depth)
	}
	if !hasWord {
		return fmt.Errorf("expression must contain at least one search term")
	}

	return nil
}
