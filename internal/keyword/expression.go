// Package keyword parses boolean keyword expressions used as topic filters.
//
// Grammar, lowest precedence first:
//
//	or    := and ("OR" and)*
//	and   := unary (["AND"] unary)*
//	unary := "NOT" unary | "-" unary | primary
//	primary := WORD | PHRASE | "(" or ")"
//
// Adjacent terms are an implicit AND, so `Saudi labor OR employment` reads as
// `(Saudi AND labor) OR employment`.
package keyword

import (
	"fmt"
	"strings"

	"github.com/DjordjeVuckovic/news-pulse/internal/token"
	"gopkg.in/yaml.v3"
)

// Node is an element of a parsed expression tree.
type Node interface {
	node()
}

type Term struct {
	Text   string
	Phrase bool
}

type Not struct {
	Operand Node
}

type And struct {
	Operands []Node
}

type Or struct {
	Operands []Node
}

func (Term) node() {}
func (Not) node()  {}
func (And) node()  {}
func (Or) node()   {}

// Expression is an immutable, validated keyword expression.
type Expression struct {
	raw  string
	root Node
}

// Parse validates and parses raw into an Expression.
func Parse(raw string) (Expression, error) {
	tokenizer := token.NewBoolTokenizer()
	tokens := tokenizer.Tokenize(raw)
	if err := tokenizer.Validate(tokens); err != nil {
		return Expression{}, fmt.Errorf("invalid keyword expression %q: %w", raw, err)
	}

	p := &parser{tokens: tokens}
	root, err := p.parseOr()
	if err != nil {
		return Expression{}, fmt.Errorf("invalid keyword expression %q: %w", raw, err)
	}
	if p.peek().Type != token.EOF {
		return Expression{}, fmt.Errorf("invalid keyword expression %q: unexpected %s", raw, p.peek().Value)
	}

	return Expression{raw: strings.TrimSpace(raw), root: root}, nil
}

// MustParse is like Parse but panics on error.
// Use only for literals known to be valid.
func MustParse(raw string) Expression {
	expr, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return expr
}

func (e Expression) Raw() string { return e.raw }

func (e Expression) Root() Node { return e.root }

func (e Expression) IsZero() bool { return e.root == nil }

func (e Expression) String() string { return e.raw }

// UnmarshalYAML lets expressions be declared as plain strings in config files.
func (e *Expression) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if strings.TrimSpace(raw) == "" {
		*e = Expression{}
		return nil
	}
	parsed, err := Parse(raw)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*e = parsed
	return nil
}

func (e Expression) MarshalYAML() (any, error) {
	return e.raw, nil
}

type parser struct {
	tokens []token.Token
	pos    int
}

func (p *parser) peek() token.Token {
	if p.pos >= len(p.tokens) {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[p.pos]
}

func (p *parser) next() token.Token {
	tok := p.peek()
	p.pos++
	return tok
}

func (p *parser) parseOr() (Node, error) {
	first, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	operands := []Node{first}
	for p.peek().Type == token.OR {
		p.next()
		n, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		operands = append(operands, n)
	}
	return flatten(operands, true), nil
}

func (p *parser) parseAnd() (Node, error) {
	first, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	operands := []Node{first}
	for {
		switch p.peek().Type {
		case token.AND:
			p.next()
		case token.WORD, token.LPAREN, token.NOT:
		default:
			return flatten(operands, false), nil
		}
		n, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		operands = append(operands, n)
	}
}

func (p *parser) parseUnary() (Node, error) {
	if p.peek().Type == token.NOT {
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if inner, ok := operand.(Not); ok {
			return inner.Operand, nil
		}
		return Not{Operand: operand}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Node, error) {
	tok := p.next()
	switch tok.Type {
	case token.WORD:
		return Term{Text: tok.Value, Phrase: tok.Quoted}, nil
	case token.LPAREN:
		n, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.Type != token.RPAREN {
			return nil, fmt.Errorf("expected ) but found %s", closing.Type)
		}
		return n, nil
	default:
		return nil, fmt.Errorf("unexpected %s", tok.Type)
	}
}

// flatten collapses single-operand groups and merges nested groups of the same kind.
func flatten(operands []Node, or bool) Node {
	if len(operands) == 1 {
		return operands[0]
	}
	var merged []Node
	for _, op := range operands {
		switch v := op.(type) {
		case Or:
			if or {
				merged = append(merged, v.Operands...)
				continue
			}
		case And:
			if !or {
				merged = append(merged, v.Operands...)
				continue
			}
		}
		merged = append(merged, op)
	}
	if or {
		return Or{Operands: merged}
	}
	return And{Operands: merged}
}
