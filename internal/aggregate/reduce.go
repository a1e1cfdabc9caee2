package aggregate

import (
	"slices"

	"github.com/DjordjeVuckovic/news-pulse/internal/post"
)

// Reduce merges filtered batches in registry order, keeps the first post seen
// for each id and orders the result newest first. Posts without an id are
// dropped; posts without a usable timestamp sort last.
func Reduce(batches [][]post.CanonicalPost) []post.CanonicalPost {
	total := 0
	for _, b := range batches {
		total += len(b)
	}

	seen := make(map[string]struct{}, total)
	out := make([]post.CanonicalPost, 0, total)

	for _, batch := range batches {
		for _, p := range batch {
			if p.PostID == "" {
				continue
			}
			if _, dup := seen[p.PostID]; dup {
				continue
			}
			seen[p.PostID] = struct{}{}
			out = append(out, p)
		}
	}

	slices.SortStableFunc(out, func(a, b post.CanonicalPost) int {
		return b.Timestamp.Compare(a.Timestamp)
	})

	return out
}
