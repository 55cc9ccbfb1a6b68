package rank

import (
	"strings"

	"github.com/fwojciec/ghdocs"
)

var _ ghdocs.Ranker = (*Weighted)(nil)

// Weighted scores entries by substring matches in title and content.
//
// A single-word query rewards title containment, an exact title and a title
// prefix, plus content containment with a small bonus for every repeat.
// A multi-word query scores each word separately, then adds bonuses when all
// words appear in a field and when the whole phrase does.
type Weighted struct {
	TitleWeight   float64
	ContentWeight float64
}

// Rank implements ghdocs.Ranker.
func (w *Weighted) Rank(query string, entries []ghdocs.Entry) []ghdocs.Result {
	q := normalize(query)
	results := []ghdocs.Result{}
	if q == "" {
		return results
	}
	words := strings.Fields(q)

	for _, e := range entries {
		title := strings.ToLower(e.Title)
		content := lowerContent(e)

		var score float64
		if len(words) == 1 {
			score = w.scoreWord(q, title, content)
		} else {
			score = w.scorePhrase(q, words, title, content)
		}
		if score > 0 {
			results = append(results, ghdocs.Result{Entry: e, Score: score})
		}
	}
	return finish(results)
}

func (w *Weighted) scoreWord(q, title, content string) float64 {
	var score float64
	if strings.Contains(title, q) {
		score += w.TitleWeight
		if title == q {
			score += 2 * w.TitleWeight
		}
		if strings.HasPrefix(title, q) {
			score += w.TitleWeight
		}
	}
	if n := strings.Count(content, q); n > 0 {
		score += w.ContentWeight
		score += float64(n-1) * w.ContentWeight * 0.1
	}
	return score
}

func (w *Weighted) scorePhrase(q string, words []string, title, content string) float64 {
	var score float64
	var inTitle, inContent int
	for _, word := range words {
		if strings.Contains(title, word) {
			score += w.TitleWeight * 0.5
			inTitle++
		}
		if n := strings.Count(content, word); n > 0 {
			score += w.ContentWeight * 0.3 * float64(n)
			inContent++
		}
	}
	if inTitle == len(words) {
		score += w.TitleWeight
	}
	if inContent == len(words) {
		score += w.ContentWeight
	}
	if strings.Contains(title, q) {
		score += w.TitleWeight * 1.5
	}
	if strings.Contains(content, q) {
		score += w.ContentWeight * 1.5
	}
	return score
}
