package aggregate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/news-pulse/internal/catalog"
	"github.com/DjordjeVuckovic/news-pulse/internal/domain"
	"github.com/DjordjeVuckovic/news-pulse/internal/metrics"
	"github.com/DjordjeVuckovic/news-pulse/internal/post"
	"github.com/DjordjeVuckovic/news-pulse/internal/twitter"
)

type Service struct {
	catalog             *catalog.Catalog
	orchestrator        *Orchestrator
	filter              *Filter
	metrics             metrics.Recorder
	includeSourceStatus bool
}

type ServiceOption func(*Service)

func WithMetrics(m metrics.Recorder) ServiceOption {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithSourceStatus overrides the catalog's include_source_status policy.
func WithSourceStatus(enabled bool) ServiceOption {
	return func(s *Service) {
		s.includeSourceStatus = enabled
	}
}

func NewService(cat *catalog.Catalog, orchestrator *Orchestrator, opts ...ServiceOption) *Service {
	s := &Service{
		catalog:             cat,
		orchestrator:        orchestrator,
		filter:              NewFilter(cat.Policy().ExcludeQuotes),
		metrics:             metrics.Nop{},
		includeSourceStatus: cat.Policy().IncludeSourceStatus,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Aggregate resolves topic and rawLang against the catalog and returns the
// merged feed. An unknown topic under the reject policy returns an error
// wrapping catalog.ErrTopicNotFound before any upstream call is made.
// Per-account upstream failures never produce an error.
func (s *Service) Aggregate(ctx context.Context, topic, rawLang string) (*domain.AggregationResult, error) {
	start := time.Now()
	lang := s.catalog.Languages().Parse(rawLang)

	res, err := s.catalog.ResolveTopic(topic, lang)
	if err != nil {
		return nil, fmt.Errorf("resolve topic %q: %w", topic, err)
	}
	if res.FellBack {
		slog.Info("Unknown topic, using fallback", "requested", res.Requested, "topic", res.TopicID, "lang", lang)
	}

	accounts := s.catalog.ResolveAccounts(lang)
	targets := make([]catalog.Account, len(accounts))
	for i, a := range accounts {
		targets[i] = catalog.Account{Handle: a.Handle, Qualifier: res.Qualifier(a)}
	}

	batches := s.orchestrator.FetchAll(ctx, targets, lang, res.Keywords)

	allow := s.catalog.AllowSet(lang)
	guard := LanguageGuard{Active: s.catalog.LanguageGuard(lang), Lang: lang}

	filtered := make([][]post.CanonicalPost, len(batches))
	statuses := make([]domain.SourceStatus, len(batches))
	dropped := FilterStats{}

	for i, b := range batches {
		kept, stats := s.filter.Apply(b.Posts, allow, guard)
		filtered[i] = kept
		for reason, n := range stats {
			dropped[reason] += n
		}
		statuses[i] = domain.SourceStatus{
			Account: b.Account,
			OK:      b.Err == nil,
			Fetched: len(b.Posts),
			Kept:    len(kept),
			Error:   describeFetchError(b.Err),
		}
	}

	for reason, n := range dropped {
		s.metrics.RecordDropped(reason, n)
	}

	posts := Reduce(filtered)
	s.metrics.RecordAggregation(res.TopicID, string(lang), len(posts), res.FellBack)

	slog.Debug("Aggregation completed",
		"topic", res.TopicID,
		"lang", lang,
		"posts", len(posts),
		"dropped", dropped.Total(),
		"duration", time.Since(start),
	)

	if !s.includeSourceStatus {
		statuses = nil
	}
	return Assemble(res.TopicID, lang, accounts, posts, statuses), nil
}

// describeFetchError keeps upstream bodies out of client responses.
func describeFetchError(err error) string {
	if err == nil {
		return ""
	}
	var se *twitter.StatusError
	switch {
	case errors.As(err, &se):
		return fmt.Sprintf("upstream status %d", se.StatusCode)
	case errors.Is(err, twitter.ErrMalformedResponse):
		return "malformed upstream response"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "upstream unavailable"
	}
}
