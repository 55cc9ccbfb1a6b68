package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/ghdocs"
	"github.com/fwojciec/ghdocs/markdown"
)

// entryJSON is the JSON form of a documentation page.
type entryJSON struct {
	ID         string             `json:"id"`
	Title      string             `json:"title"`
	Collection string             `json:"collection"`
	SourceURL  string             `json:"source_url"`
	Content    string             `json:"content"`
	Sections   []markdown.Section `json:"sections,omitempty"`
}

// Run executes the get command.
func (c *GetCmd) Run(deps *Dependencies) error {
	e, err := deps.Catalog.FindByID(deps.Ctx, c.Source, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ghdocs.ErrorMessage(err))
		if ghdocs.ErrorCode(err) == ghdocs.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "Hint: use 'ghdocs search -s %s <query>' to find documentation ids\n", c.Source)
		}
		return err
	}

	content, hasContent := e.Content()
	var sections []markdown.Section
	if c.TOC {
		sections = markdown.Sections(content)
	}

	if c.Format == "json" {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entryJSON{
			ID:         e.ID(),
			Title:      e.Title,
			Collection: e.Collection,
			SourceURL:  e.SourceURL,
			Content:    content,
			Sections:   sections,
		})
	}

	fmt.Fprintf(deps.Stdout, "# %s\n\n", e.Title)
	fmt.Fprintf(deps.Stdout, "Collection: %s\n", e.Collection)
	fmt.Fprintf(deps.Stdout, "Source: %s\n", e.SourceURL)
	fmt.Fprintf(deps.Stdout, "Updated: %s\n\n", e.LastUpdated.Format(ghdocs.TimeLayout))

	if c.TOC {
		if len(sections) == 0 {
			fmt.Fprintln(deps.Stdout, "No headings found.")
			return nil
		}
		fmt.Fprintln(deps.Stdout, "Table of contents:")
		for _, s := range sections {
			indent := strings.Repeat("  ", max(s.Level-1, 0))
			fmt.Fprintf(deps.Stdout, "%s- %s (#%s)\n", indent, s.Title, s.Anchor)
		}
		return nil
	}

	if !hasContent {
		fmt.Fprintf(deps.Stdout, "Content not available. Run 'ghdocs update -s %s' to download it.\n", c.Source)
		return nil
	}
	fmt.Fprintln(deps.Stdout, strings.TrimRight(content, "\n"))
	return nil
}
