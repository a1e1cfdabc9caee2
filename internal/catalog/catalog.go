// Package catalog holds the topic keyword registry and the account registry.
// A Catalog is built once from a versioned artifact and never mutated.
package catalog

import (
	"errors"
	"slices"
	"strings"

	"github.com/DjordjeVuckovic/news-pulse/internal/domain"
	"github.com/DjordjeVuckovic/news-pulse/internal/keyword"
)

var ErrTopicNotFound = errors.New("unknown topic")

type Account struct {
	Handle string
	// Qualifier is ANDed with the topic keywords when querying this account.
	// Zero means no qualifier.
	Qualifier keyword.Expression
}

type Topic struct {
	ID      string
	entries map[domain.Language]topicEntry
}

type topicEntry struct {
	keywords keyword.Expression
	// keyed by lowercased handle
	overrides map[string]keyword.Expression
}

type Policy struct {
	UnknownTopic        UnknownTopicPolicy
	ExcludeQuotes       bool
	LanguageGuard       map[domain.Language]bool
	IncludeSourceStatus bool
}

type Search struct {
	Limit     int
	QueryType string
}

type Catalog struct {
	version   int
	languages domain.Languages
	policy    Policy
	search    Search
	accounts  map[domain.Language][]Account
	allow     map[domain.Language]AllowSet
	topics    map[string]Topic
}

// Resolution is a topic resolved for one language, after the unknown topic
// policy has been applied.
type Resolution struct {
	TopicID   string
	Requested string
	Lang      domain.Language
	Keywords  keyword.Expression
	FellBack  bool

	overrides map[string]keyword.Expression
}

func (c *Catalog) Version() int { return c.version }

func (c *Catalog) Languages() domain.Languages { return c.languages }

func (c *Catalog) Policy() Policy { return c.policy }

func (c *Catalog) Search() Search { return c.search }

// Topics returns the configured topic ids in lexical order.
func (c *Catalog) Topics() []string {
	ids := make([]string, 0, len(c.topics))
	for id := range c.topics {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// ResolveKeywords is a plain two-key lookup with no policy applied.
func (c *Catalog) ResolveKeywords(topic string, lang domain.Language) (keyword.Expression, error) {
	entry, ok := c.entry(topic, lang)
	if !ok {
		return keyword.Expression{}, ErrTopicNotFound
	}
	return entry.keywords, nil
}

// ResolveTopic looks up topic for lang and applies the unknown topic policy
// on a miss.
func (c *Catalog) ResolveTopic(topic string, lang domain.Language) (Resolution, error) {
	topic = strings.TrimSpace(topic)

	if entry, ok := c.entry(topic, lang); ok {
		return Resolution{
			TopicID:   topic,
			Requested: topic,
			Lang:      lang,
			Keywords:  entry.keywords,
			overrides: entry.overrides,
		}, nil
	}

	if c.policy.UnknownTopic.Mode != UnknownTopicFallback {
		return Resolution{}, ErrTopicNotFound
	}

	fallback := c.policy.UnknownTopic.Fallback
	entry, ok := c.entry(fallback, lang)
	if !ok {
		return Resolution{}, ErrTopicNotFound
	}

	return Resolution{
		TopicID:   fallback,
		Requested: topic,
		Lang:      lang,
		Keywords:  entry.keywords,
		FellBack:  true,
		overrides: entry.overrides,
	}, nil
}

// ResolveAccounts returns the language's accounts in registry order.
func (c *Catalog) ResolveAccounts(lang domain.Language) []Account {
	return slices.Clone(c.accounts[lang])
}

func (c *Catalog) AllowSet(lang domain.Language) AllowSet {
	return c.allow[lang]
}

// LanguageGuard reports whether posts must carry lang (when tagged at all).
func (c *Catalog) LanguageGuard(lang domain.Language) bool {
	return c.policy.LanguageGuard[lang]
}

// WithUnknownTopicPolicy returns a copy of the catalog using p. The fallback
// topic must exist for every language.
func (c *Catalog) WithUnknownTopicPolicy(p UnknownTopicPolicy) (*Catalog, error) {
	if err := c.checkFallback(p); err != nil {
		return nil, err
	}
	cp := *c
	cp.policy.UnknownTopic = p
	return &cp, nil
}

// Qualifier returns the qualifier to AND with the keywords for account:
// the topic's override when one is set, otherwise the account default.
func (r Resolution) Qualifier(account Account) keyword.Expression {
	if q, ok := r.overrides[normalizeHandle(account.Handle)]; ok {
		return q
	}
	return account.Qualifier
}

func (c *Catalog) entry(topic string, lang domain.Language) (topicEntry, bool) {
	t, ok := c.topics[topic]
	if !ok {
		return topicEntry{}, false
	}
	entry, ok := t.entries[lang]
	return entry, ok
}
