// Package query renders per-account search queries in the provider's
// advanced search syntax.
package query

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/DjordjeVuckovic/news-pulse/internal/catalog"
	"github.com/DjordjeVuckovic/news-pulse/internal/domain"
	"github.com/DjordjeVuckovic/news-pulse/internal/keyword"
)

const (
	DefaultLimit     = 25
	DefaultQueryType = "Latest"
)

// Query is one upstream search request.
type Query struct {
	Account   string
	Text      string
	QueryType string
	Limit     int
}

// Values returns the URL parameters of the advanced search endpoint.
func (q Query) Values() url.Values {
	v := url.Values{}
	v.Set("query", q.Text)
	v.Set("queryType", q.QueryType)
	v.Set("limit", strconv.Itoa(q.Limit))
	return v
}

type Builder struct {
	languages     domain.Languages
	limit         int
	queryType     string
	excludeQuotes bool
}

type Option func(*Builder)

func WithLimit(limit int) Option {
	return func(b *Builder) {
		if limit > 0 {
			b.limit = limit
		}
	}
}

func WithQueryType(queryType string) Option {
	return func(b *Builder) {
		if queryType != "" {
			b.queryType = queryType
		}
	}
}

func WithExcludeQuotes(exclude bool) Option {
	return func(b *Builder) {
		b.excludeQuotes = exclude
	}
}

func NewBuilder(languages domain.Languages, opts ...Option) *Builder {
	b := &Builder{
		languages:     languages,
		limit:         DefaultLimit,
		queryType:     DefaultQueryType,
		excludeQuotes: true,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// FromCatalog configures a Builder with the catalog's search and policy settings.
func FromCatalog(c *catalog.Catalog) *Builder {
	return NewBuilder(c.Languages(),
		WithLimit(c.Search().Limit),
		WithQueryType(c.Search().QueryType),
		WithExcludeQuotes(c.Policy().ExcludeQuotes),
	)
}

// Build composes
//
//	from:<handle> [lang:<tag>] (<keywords>) [<qualifier>] -is:reply -is:retweet [-is:quote]
//
// account.Qualifier must already hold the effective qualifier for the topic.
func (b *Builder) Build(account catalog.Account, lang domain.Language, expr keyword.Expression) Query {
	handle := strings.TrimPrefix(strings.TrimSpace(account.Handle), "@")

	clauses := []string{"from:" + handle}
	if b.languages.IsSecondary(lang) {
		clauses = append(clauses, "lang:"+string(lang))
	}
	if !expr.IsZero() {
		clauses = append(clauses, Group(expr))
	}
	if !account.Qualifier.IsZero() {
		clauses = append(clauses, Group(account.Qualifier))
	}
	clauses = append(clauses, "-is:reply", "-is:retweet")
	if b.excludeQuotes {
		clauses = append(clauses, "-is:quote")
	}

	return Query{
		Account:   handle,
		Text:      strings.Join(clauses, " "),
		QueryType: b.queryType,
		Limit:     b.limit,
	}
}

// Group renders expr as a single parenthesized clause.
func Group(expr keyword.Expression) string {
	switch expr.Root().(type) {
	case keyword.And, keyword.Or:
		return Render(expr.Root())
	default:
		return "(" + Render(expr.Root()) + ")"
	}
}

// Render writes a node in provider syntax. Every compound node is wrapped in
// parentheses because the provider binds OR tighter than adjacency.
func Render(n keyword.Node) string {
	switch n := n.(type) {
	case keyword.Term:
		if n.Phrase {
			return `"` + n.Text + `"`
		}
		return n.Text
	case keyword.Not:
		return "-" + Render(n.Operand)
	case keyword.And:
		return "(" + join(n.Operands, " ") + ")"
	case keyword.Or:
		return "(" + join(n.Operands, " OR ") + ")"
	default:
		return ""
	}
}

func join(nodes []keyword.Node, sep string) string {
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		parts = append(parts, Render(n))
	}
	return strings.Join(parts, sep)
}
