package domain

import "github.com/DjordjeVuckovic/news-pulse/internal/post"

// AggregationResult is the outcome of one aggregation request. It is built
// fresh per request and never stored.
type AggregationResult struct {
	Topic   string
	Lang    Language
	Sources []string
	Posts   []post.CanonicalPost

	// SourceStatus is only populated when per-account status reporting is enabled.
	SourceStatus []SourceStatus
}

// SourceStatus reports how a single account's fetch went.
type SourceStatus struct {
	Account string
	OK      bool
	Fetched int
	Kept    int
	Error   string
}
