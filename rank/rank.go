// Package rank scores documentation entries against free-text queries.
package rank

import (
	"cmp"
	"slices"
	"strings"

	"github.com/fwojciec/ghdocs"
)

// New returns the Ranker selected by cfg.
func New(cfg ghdocs.SearchConfig) ghdocs.Ranker {
	if cfg.FuzzyEnabled {
		return &Fuzzy{
			TitleWeight:   cfg.TitleWeight,
			ContentWeight: cfg.ContentWeight,
			Threshold:     cfg.FuzzyThreshold,
		}
	}
	return &Weighted{
		TitleWeight:   cfg.TitleWeight,
		ContentWeight: cfg.ContentWeight,
	}
}

// normalize lowercases and trims a query.
func normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// lowerContent returns the lowercased content of e, or "" when absent.
func lowerContent(e ghdocs.Entry) string {
	content, ok := e.Content()
	if !ok {
		return ""
	}
	return strings.ToLower(content)
}

// finish orders results by score, breaks ties by title then id, and
// truncates to ghdocs.MaxResults.
func finish(results []ghdocs.Result) []ghdocs.Result {
	slices.SortFunc(results, func(a, b ghdocs.Result) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		if c := strings.Compare(strings.ToLower(a.Entry.Title), strings.ToLower(b.Entry.Title)); c != 0 {
			return c
		}
		return strings.Compare(a.Entry.ID(), b.Entry.ID())
	})
	if len(results) > ghdocs.MaxResults {
		results = results[:ghdocs.MaxResults]
	}
	return results
}
