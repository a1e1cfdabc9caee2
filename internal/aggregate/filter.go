package aggregate

import (
	"strings"

	"github.com/DjordjeVuckovic/news-pulse/internal/catalog"
	"github.com/DjordjeVuckovic/news-pulse/internal/domain"
	"github.com/DjordjeVuckovic/news-pulse/internal/post"
)

// Drop reasons, in the order they are checked.
const (
	DropNoAuthor   = "no_author"
	DropNotAllowed = "not_allowed"
	DropReply      = "reply"
	DropRetweet    = "retweet"
	DropQuote      = "quote"
	DropLanguage   = "language"
)

// LanguageGuard rejects posts whose reported language is present and is not
// Lang. The zero value is inactive.
type LanguageGuard struct {
	Active bool
	Lang   domain.Language
}

// FilterStats counts dropped posts by reason.
type FilterStats map[string]int

func (s FilterStats) Total() int {
	n := 0
	for _, v := range s {
		n += v
	}
	return n
}

type Filter struct {
	excludeQuotes bool
}

func NewFilter(excludeQuotes bool) *Filter {
	return &Filter{excludeQuotes: excludeQuotes}
}

// Apply keeps original posts by allowed authors. It has no side effects, so
// applying it to its own output is a no-op.
func (f *Filter) Apply(posts []post.RawPost, allow catalog.AllowSet, guard LanguageGuard) ([]post.CanonicalPost, FilterStats) {
	kept := make([]post.CanonicalPost, 0, len(posts))
	stats := FilterStats{}

	for _, p := range posts {
		if reason := f.reject(p, allow, guard); reason != "" {
			stats[reason]++
			continue
		}
		kept = append(kept, post.NewCanonicalPost(p))
	}

	return kept, stats
}

func (f *Filter) reject(p post.RawPost, allow catalog.AllowSet, guard LanguageGuard) string {
	author := p.Author()
	switch {
	case author == "":
		return DropNoAuthor
	case !allow.Contains(author):
		return DropNotAllowed
	case p.IsReply():
		return DropReply
	case p.IsRetweet():
		return DropRetweet
	case f.excludeQuotes && p.IsQuote():
		return DropQuote
	case guard.Active && !languageMatches(p.Lang(), guard.Lang):
		return DropLanguage
	}
	return ""
}

// languageMatches treats a missing tag as a match and compares base tags, so
// "ar-SA" matches "ar".
func languageMatches(tag string, want domain.Language) bool {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return true
	}
	base, _, _ := strings.Cut(strings.ReplaceAll(tag, "_", "-"), "-")
	return base == string(want)
}
