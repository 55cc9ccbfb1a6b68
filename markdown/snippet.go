package markdown

import (
	"strings"
	"unicode/utf8"
)

// SnippetLength is the maximum snippet length in characters, excluding the
// trailing ellipsis.
const SnippetLength = 200

// braces are Antlers tag delimiters, noise in a snippet.
var braces = strings.NewReplacer("{", "", "}", "")

// minMeaningfulLength is the shortest line used as a fallback snippet.
const minMeaningfulLength = 20

// Snippet picks a line of body that best illustrates why it matched query.
//
// Lines containing the whole query win. For multi-word queries a line
// containing any of the words is used next. Without a match the first line
// longer than 20 characters is returned. The result is limited to
// SnippetLength characters and is "" when nothing qualifies.
func Snippet(body, query string) string {
	lines := PlainLines(Parse(body).Body)
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(braces.Replace(line)), " ")
	}

	q := strings.ToLower(strings.TrimSpace(query))
	words := strings.Fields(q)

	if q != "" {
		var partial string
		for _, line := range lines {
			lower := strings.ToLower(line)
			if strings.Contains(lower, q) {
				return limit(line)
			}
			if partial == "" && len(words) > 1 && containsAny(lower, words) {
				partial = line
			}
		}
		if partial != "" {
			return limit(partial)
		}
	}

	for _, line := range lines {
		if len(line) > minMeaningfulLength {
			return limit(line)
		}
	}
	return ""
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func limit(s string) string {
	if utf8.RuneCountInString(s) <= SnippetLength {
		return s
	}
	r := []rune(s)
	return strings.TrimRight(string(r[:SnippetLength]), " ") + "..."
}
