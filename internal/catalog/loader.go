package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/DjordjeVuckovic/news-pulse/internal/domain"
	"github.com/DjordjeVuckovic/news-pulse/internal/keyword"
	"github.com/DjordjeVuckovic/news-pulse/internal/validation"
	"gopkg.in/yaml.v3"
)

const (
	defaultLimit     = 25
	defaultQueryType = "Latest"
)

//go:embed catalog.yaml
var defaultArtifact []byte

// Default returns the catalog shipped with the binary.
func Default() (*Catalog, error) {
	return Parse(defaultArtifact)
}

func LoadFromFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a catalog artifact.
func Parse(data []byte) (*Catalog, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog YAML: %w", err)
	}
	if err := validation.Struct(f); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return build(f)
}

func build(f File) (*Catalog, error) {
	langs, err := domain.NewLanguages(f.Languages.Primary, f.Languages.Secondary)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog languages: %w", err)
	}

	c := &Catalog{
		version:   f.Version,
		languages: langs,
		accounts:  make(map[domain.Language][]Account, 2),
		allow:     make(map[domain.Language]AllowSet, 2),
		topics:    make(map[string]Topic, len(f.Topics)),
	}

	if err := c.buildAccounts(f.Accounts); err != nil {
		return nil, err
	}
	if err := c.buildTopics(f.Topics); err != nil {
		return nil, err
	}
	if err := c.buildPolicy(f.Policy); err != nil {
		return nil, err
	}

	c.search = Search{Limit: f.Search.Limit, QueryType: f.Search.QueryType}
	if c.search.Limit == 0 {
		c.search.Limit = defaultLimit
	}
	if c.search.QueryType == "" {
		c.search.QueryType = defaultQueryType
	}

	return c, nil
}

func (c *Catalog) buildAccounts(specs map[string][]AccountSpec) error {
	owner := make(map[string]domain.Language)

	for rawLang, list := range specs {
		lang, err := c.supportedLanguage(rawLang)
		if err != nil {
			return fmt.Errorf("accounts: %w", err)
		}
		if _, dup := c.accounts[lang]; dup {
			return fmt.Errorf("accounts: language %q declared twice", lang)
		}

		accounts := make([]Account, 0, len(list))
		handles := make([]string, 0, len(list))
		for _, spec := range list {
			handle := strings.TrimPrefix(strings.TrimSpace(spec.Handle), "@")
			key := normalizeHandle(handle)
			if prev, taken := owner[key]; taken {
				return fmt.Errorf("accounts: %q is listed for both %q and %q", handle, prev, lang)
			}
			owner[key] = lang
			accounts = append(accounts, Account{Handle: handle, Qualifier: spec.Qualifier})
			handles = append(handles, handle)
		}

		c.accounts[lang] = accounts
		c.allow[lang] = NewAllowSet(handles...)
	}

	for _, lang := range c.languages.All() {
		if len(c.accounts[lang]) == 0 {
			return fmt.Errorf("accounts: no accounts configured for %q", lang)
		}
	}
	return nil
}

func (c *Catalog) buildTopics(specs map[string]TopicSpec) error {
	for rawID, spec := range specs {
		id := strings.TrimSpace(rawID)
		if id == "" {
			return fmt.Errorf("topics: empty topic id")
		}

		topic := Topic{ID: id, entries: make(map[domain.Language]topicEntry, len(spec))}
		for rawLang, ls := range spec {
			lang, err := c.supportedLanguage(rawLang)
			if err != nil {
				return fmt.Errorf("topic %q: %w", id, err)
			}
			if ls.Keywords.IsZero() {
				return fmt.Errorf("topic %q language %q: keywords are required", id, lang)
			}

			overrides := make(map[string]keyword.Expression, len(ls.AccountOverrides))
			for handle, raw := range ls.AccountOverrides {
				key := normalizeHandle(handle)
				if !c.allow[lang].Contains(key) {
					return fmt.Errorf("topic %q language %q: override for unknown account %q", id, lang, handle)
				}
				var q keyword.Expression
				if strings.TrimSpace(raw) != "" {
					if q, err = keyword.Parse(raw); err != nil {
						return fmt.Errorf("topic %q language %q account %q: %w", id, lang, handle, err)
					}
				}
				overrides[key] = q
			}

			topic.entries[lang] = topicEntry{keywords: ls.Keywords, overrides: overrides}
		}
		c.topics[id] = topic
	}
	return nil
}

func (c *Catalog) buildPolicy(spec PolicySpec) error {
	unknown, err := ParseUnknownTopicPolicy(spec.OnUnknownTopic)
	if err != nil {
		return fmt.Errorf("policy: %w", err)
	}
	if err := c.checkFallback(unknown); err != nil {
		return fmt.Errorf("policy: %w", err)
	}

	p := Policy{
		UnknownTopic:        unknown,
		ExcludeQuotes:       true,
		LanguageGuard:       make(map[domain.Language]bool, 2),
		IncludeSourceStatus: spec.IncludeSourceStatus,
	}
	if spec.ExcludeQuotes != nil {
		p.ExcludeQuotes = *spec.ExcludeQuotes
	}

	if spec.LanguageGuard == nil {
		p.LanguageGuard[c.languages.Secondary] = true
	}
	for _, raw := range spec.LanguageGuard {
		lang, err := c.supportedLanguage(raw)
		if err != nil {
			return fmt.Errorf("policy language_guard: %w", err)
		}
		p.LanguageGuard[lang] = true
	}

	c.policy = p
	return nil
}

func (c *Catalog) checkFallback(p UnknownTopicPolicy) error {
	if p.Mode != UnknownTopicFallback {
		return nil
	}
	for _, lang := range c.languages.All() {
		if _, ok := c.entry(p.Fallback, lang); !ok {
			return fmt.Errorf("fallback topic %q is not defined for %q", p.Fallback, lang)
		}
	}
	return nil
}

// supportedLanguage canonicalizes a configured tag and requires it to be one
// of the catalog's two languages. Unlike request input it never defaults.
func (c *Catalog) supportedLanguage(raw string) (domain.Language, error) {
	lang, ok := c.languages.Lookup(raw)
	if !ok {
		return "", fmt.Errorf("unsupported language %q", raw)
	}
	return lang, nil
}
