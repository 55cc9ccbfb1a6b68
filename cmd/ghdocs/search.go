package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/ghdocs"
	"github.com/fwojciec/ghdocs/markdown"
)

// searchResult is the JSON form of one search hit.
type searchResult struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Collection string  `json:"collection"`
	Score      float64 `json:"score"`
	SourceURL  string  `json:"source_url"`
	Snippet    string  `json:"snippet"`
}

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	query := strings.Join(c.Query, " ")
	if strings.TrimSpace(query) == "" {
		fmt.Fprintln(deps.Stderr, "error: search query required")
		return ghdocs.Errorf(ghdocs.EINVALID, "search query required")
	}
	if c.Start < 0 || c.Limit <= 0 {
		fmt.Fprintln(deps.Stderr, "error: --start must not be negative and --limit must be positive")
		return ghdocs.Errorf(ghdocs.EINVALID, "invalid page bounds")
	}

	results, err := deps.Catalog.Search(deps.Ctx, c.Source, query)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ghdocs.ErrorMessage(err))
		if ghdocs.ErrorCode(err) == ghdocs.ENOINDEX {
			fmt.Fprintf(deps.Stderr, "Hint: run 'ghdocs update -s %s' first\n", c.Source)
		}
		return err
	}

	start := min(c.Start, len(results))
	end := len(results)
	if c.Limit < end-start {
		end = start + c.Limit
	}
	page := results[start:end]

	if c.JSON {
		out := make([]searchResult, 0, len(page))
		for _, r := range page {
			out = append(out, searchResult{
				ID:         r.Entry.ID(),
				Title:      r.Entry.Title,
				Collection: r.Entry.Collection,
				Score:      r.Score,
				SourceURL:  r.Entry.SourceURL,
				Snippet:    snippet(r.Entry, query),
			})
		}
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "No results found.")
		fmt.Fprintln(deps.Stdout, "Try fewer or more general search terms.")
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Found %d results for %q\n\n", len(results), query)
	for i, r := range page {
		fmt.Fprintf(deps.Stdout, "%d. %s\n", c.Start+i+1, r.Entry.Title)
		fmt.Fprintf(deps.Stdout, "   %s  %s\n", r.Entry.Collection, r.Entry.ID())
		if s := snippet(r.Entry, query); s != "" {
			fmt.Fprintf(deps.Stdout, "   %s\n", s)
		}
		fmt.Fprintf(deps.Stdout, "   %s\n\n", r.Entry.SourceURL)
	}

	if next := c.Start + len(page); next < len(results) {
		fmt.Fprintf(deps.Stdout, "Use --start=%d to see the next page\n", next)
	}
	return nil
}

func snippet(e ghdocs.Entry, query string) string {
	content, ok := e.Content()
	if !ok {
		return ""
	}
	return markdown.Snippet(content, query)
}
