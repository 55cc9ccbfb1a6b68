package mock

import "github.com/fwojciec/ghdocs"

var _ ghdocs.Ranker = (*Ranker)(nil)

// Ranker is a mock implementation of ghdocs.Ranker.
type Ranker struct {
	RankFn func(query string, entries []ghdocs.Entry) []ghdocs.Result
}

func (r *Ranker) Rank(query string, entries []ghdocs.Entry) []ghdocs.Result {
	return r.RankFn(query, entries)
}
