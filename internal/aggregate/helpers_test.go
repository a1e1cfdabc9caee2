package aggregate

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/news-pulse/internal/post"
	"github.com/DjordjeVuckovic/news-pulse/internal/query"
	"github.com/stretchr/testify/require"
)

// fakeSearcher answers per account handle and records every query it sees.
type fakeSearcher struct {
	mu      sync.Mutex
	results map[string][]post.RawPost
	errs    map[string]error
	queries []query.Query
}

func newFakeSearcher() *fakeSearcher {
	return &fakeSearcher{
		results: map[string][]post.RawPost{},
		errs:    map[string]error{},
	}
}

func (f *fakeSearcher) Search(_ context.Context, q query.Query) ([]post.RawPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	if err := f.errs[q.Account]; err != nil {
		return nil, err
	}
	return f.results[q.Account], nil
}

func (f *fakeSearcher) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

type rawSpec struct {
	id      string
	author  string
	created time.Time
	extra   map[string]any
}

func rawPost(t *testing.T, s rawSpec) post.RawPost {
	t.Helper()
	fields := map[string]any{}
	if s.id != "" {
		fields["id"] = s.id
	}
	if s.author != "" {
		fields["author"] = map[string]any{"userName": s.author}
	}
	if !s.created.IsZero() {
		fields["createdAt"] = s.created.UTC().Format(time.RubyDate)
	}
	fields["text"] = fmt.Sprintf("post %s", s.id)
	for k, v := range s.extra {
		fields[k] = v
	}

	data, err := json.Marshal(fields)
	require.NoError(t, err)
	p, err := post.NewRawPost(data)
	require.NoError(t, err)
	return p
}

func ids(posts []post.CanonicalPost) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.PostID)
	}
	return out
}

var baseTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func at(minutes int) time.Time {
	return baseTime.Add(time.Duration(minutes) * time.Minute)
}
