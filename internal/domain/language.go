package domain

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

type Language string

const (
	LanguageEnglish Language = "en"
	LanguageArabic  Language = "ar"
)

// Languages holds the two languages a deployment serves. Primary doubles as
// the default for missing or unsupported input.
type Languages struct {
	Primary   Language
	Secondary Language
}

var DefaultLanguages = Languages{
	Primary:   LanguageEnglish,
	Secondary: LanguageArabic,
}

// NewLanguages canonicalizes both tags to their base language and rejects
// pairs that collapse to the same language.
func NewLanguages(primary, secondary string) (Languages, error) {
	p, err := baseOf(primary)
	if err != nil {
		return Languages{}, fmt.Errorf("primary language: %w", err)
	}
	s, err := baseOf(secondary)
	if err != nil {
		return Languages{}, fmt.Errorf("secondary language: %w", err)
	}
	if p == s {
		return Languages{}, fmt.Errorf("primary and secondary language must differ, both are %q", p)
	}
	return Languages{Primary: p, Secondary: s}, nil
}

// Parse normalizes any input to one of the two supported languages.
// Region and script subtags are ignored ("ar-SA" -> "ar"); empty, malformed or
// unsupported input resolves to the primary language.
func (l Languages) Parse(input string) Language {
	base, err := baseOf(input)
	if err != nil {
		return l.Primary
	}
	if base == l.Secondary {
		return l.Secondary
	}
	return l.Primary
}

// Lookup is the strict form of Parse: it reports false instead of defaulting.
func (l Languages) Lookup(input string) (Language, bool) {
	base, err := baseOf(input)
	if err != nil || !l.Supports(base) {
		return "", false
	}
	return base, true
}

func (l Languages) IsSecondary(lang Language) bool {
	return lang == l.Secondary
}

func (l Languages) All() []Language {
	return []Language{l.Primary, l.Secondary}
}

func (l Languages) Supports(lang Language) bool {
	return lang == l.Primary || lang == l.Secondary
}

func baseOf(input string) (Language, error) {
	input = strings.ReplaceAll(strings.TrimSpace(input), "_", "-")
	if input == "" {
		return "", fmt.Errorf("empty language tag")
	}
	tag, err := language.Parse(input)
	if err != nil {
		return "", fmt.Errorf("parse language tag %q: %w", input, err)
	}
	base, conf := tag.Base()
	if conf == language.No {
		return "", fmt.Errorf("unknown base language for %q", input)
	}
	return Language(base.String()), nil
}
