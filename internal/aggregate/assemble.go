package aggregate

import (
	"github.com/DjordjeVuckovic/news-pulse/internal/catalog"
	"github.com/DjordjeVuckovic/news-pulse/internal/domain"
	"github.com/DjordjeVuckovic/news-pulse/internal/post"
)

// Assemble packages the ordered posts with the resolved topic, language and
// every account that was queried, including ones whose fetch failed.
// statuses may be nil when per-account status reporting is off.
func Assemble(topic string, lang domain.Language, accounts []catalog.Account, posts []post.CanonicalPost, statuses []domain.SourceStatus) *domain.AggregationResult {
	sources := make([]string, 0, len(accounts))
	for _, a := range accounts {
		sources = append(sources, a.Handle)
	}
	if posts == nil {
		posts = []post.CanonicalPost{}
	}

	return &domain.AggregationResult{
		Topic:        topic,
		Lang:         lang,
		Sources:      sources,
		Posts:        posts,
		SourceStatus: statuses,
	}
}
