// Package aggregate runs the topical aggregation pipeline: per-account
// fan-out, filtering, de-duplication, ordering and assembly.
package aggregate

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/news-pulse/internal/catalog"
	"github.com/DjordjeVuckovic/news-pulse/internal/domain"
	"github.com/DjordjeVuckovic/news-pulse/internal/keyword"
	"github.com/DjordjeVuckovic/news-pulse/internal/metrics"
	"github.com/DjordjeVuckovic/news-pulse/internal/post"
	"github.com/DjordjeVuckovic/news-pulse/internal/query"
	"github.com/DjordjeVuckovic/news-pulse/internal/twitter"
	"golang.org/x/sync/errgroup"
)

// Searcher executes one upstream search.
type Searcher interface {
	Search(ctx context.Context, q query.Query) ([]post.RawPost, error)
}

// Batch is one account's fetch result. A failed fetch has no posts and a
// non-nil Err; it never fails the aggregation.
type Batch struct {
	Account string
	Query   query.Query
	Posts   []post.RawPost
	Err     error
}

type Orchestrator struct {
	searcher       Searcher
	builder        *query.Builder
	metrics        metrics.Recorder
	maxConcurrency int
}

type OrchestratorOption func(*Orchestrator)

// WithMaxConcurrency caps in-flight searches. n <= 0 means one per account.
func WithMaxConcurrency(n int) OrchestratorOption {
	return func(o *Orchestrator) {
		o.maxConcurrency = n
	}
}

func WithFetchMetrics(m metrics.Recorder) OrchestratorOption {
	return func(o *Orchestrator) {
		if m != nil {
			o.metrics = m
		}
	}
}

func NewOrchestrator(searcher Searcher, builder *query.Builder, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		searcher: searcher,
		builder:  builder,
		metrics:  metrics.Nop{},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// FetchAll searches every account concurrently and waits for all of them.
// The result has exactly one Batch per account, in the order given.
// Each account's Qualifier must already be the effective one for the topic.
func (o *Orchestrator) FetchAll(ctx context.Context, accounts []catalog.Account, lang domain.Language, expr keyword.Expression) []Batch {
	batches := make([]Batch, len(accounts))

	var g errgroup.Group
	if o.maxConcurrency > 0 {
		g.SetLimit(o.maxConcurrency)
	}

	for i, account := range accounts {
		q := o.builder.Build(account, lang, expr)
		batches[i] = Batch{Account: q.Account, Query: q}

		g.Go(func() error {
			batches[i].Posts, batches[i].Err = o.fetch(ctx, q)
			return nil
		})
	}

	_ = g.Wait()
	return batches
}

func (o *Orchestrator) fetch(ctx context.Context, q query.Query) ([]post.RawPost, error) {
	start := time.Now()
	posts, err := o.searcher.Search(ctx, q)
	elapsed := time.Since(start)

	if err == nil {
		o.metrics.RecordFetch(q.Account, metrics.OutcomeOK, elapsed)
		slog.Debug("Upstream search completed", "account", q.Account, "posts", len(posts), "duration", elapsed)
		return posts, nil
	}

	var se *twitter.StatusError
	switch {
	case errors.As(err, &se):
		o.metrics.RecordFetch(q.Account, metrics.OutcomeStatus, elapsed)
		o.metrics.RecordUpstreamStatus("twitter", se.StatusCode)
		slog.Warn("Upstream search failed", "account", q.Account, "status", se.StatusCode, "body", se.Body)
	case errors.Is(err, twitter.ErrMalformedResponse):
		o.metrics.RecordFetch(q.Account, metrics.OutcomeMalformed, elapsed)
		slog.Warn("Upstream search returned a malformed body", "account", q.Account, "error", err)
	case ctx.Err() != nil:
		o.metrics.RecordFetch(q.Account, metrics.OutcomeCanceled, elapsed)
		slog.Warn("Upstream search canceled", "account", q.Account, "error", err)
	default:
		o.metrics.RecordFetch(q.Account, metrics.OutcomeTransport, elapsed)
		slog.Warn("Upstream search transport error", "account", q.Account, "error", err)
	}

	return nil, err
}
