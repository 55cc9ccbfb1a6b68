package rank

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/fwojciec/ghdocs"
)

var _ ghdocs.Ranker = (*Fuzzy)(nil)

// Fuzzy scores entries by edit-distance similarity so that misspelled
// queries still find their documents.
//
// Each field gets a similarity in [0,1]. A field containing the query scores
// 1. Otherwise every query word is matched against its closest word in the
// field and the per-word similarities are averaged. The entry score is the
// weighted mean of the title and content similarities and must reach
// Threshold to be returned.
type Fuzzy struct {
	TitleWeight   float64
	ContentWeight float64
	Threshold     float64
}

// Rank implements ghdocs.Ranker.
func (f *Fuzzy) Rank(query string, entries []ghdocs.Entry) []ghdocs.Result {
	q := normalize(query)
	results := []ghdocs.Result{}
	if q == "" {
		return results
	}
	total := f.TitleWeight + f.ContentWeight
	if total <= 0 {
		return results
	}
	words := strings.Fields(q)

	for _, e := range entries {
		title := strings.ToLower(e.Title)
		titleSim := fieldSimilarity(q, words, title, true)
		contentSim := fieldSimilarity(q, words, lowerContent(e), false)

		score := (f.TitleWeight*titleSim + f.ContentWeight*contentSim) / total
		if score > 0 && score >= f.Threshold {
			results = append(results, ghdocs.Result{Entry: e, Score: score})
		}
	}
	return finish(results)
}

// fieldSimilarity returns how closely field matches the query. When whole is
// set the entire field is also compared against the query, which lets short
// titles match multi-word queries with a typo.
func fieldSimilarity(q string, words []string, field string, whole bool) float64 {
	if field == "" {
		return 0
	}
	if strings.Contains(field, q) {
		return 1
	}

	fieldWords := uniqueWords(field)
	var sum float64
	for _, w := range words {
		var best float64
		for fw := range fieldWords {
			if s := similarity(w, fw); s > best {
				best = s
				if best == 1 {
					break
				}
			}
		}
		sum += best
	}
	sim := sum / float64(len(words))

	if whole {
		if s := similarity(q, field); s > sim {
			sim = s
		}
	}
	return sim
}

// similarity converts the Levenshtein distance between a and b into a
// score where 1 means identical.
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 1
	}
	d := levenshtein.ComputeDistance(a, b)
	return 1 - float64(d)/float64(longest)
}

func uniqueWords(s string) map[string]struct{} {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-'
	})
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
