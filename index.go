package ghdocs

import "context"

// IndexService represents the persisted index of one documentation source.
type IndexService interface {
	// All returns every entry in index file order.
	// A missing index yields an empty slice.
	All(ctx context.Context) ([]Entry, error)

	// Find returns the first entry matching collection and filename.
	// Returns ENOTFOUND if no entry matches.
	Find(ctx context.Context, collection, filename string) (Entry, error)

	// FindByID returns the entry for a "collection:filename" identifier with
	// its content loaded from disk when available.
	// Returns ENOTFOUND if the id is malformed or no entry matches.
	FindByID(ctx context.Context, id string) (Entry, error)

	// Search ranks the index against a free-text query.
	// Returns ENOINDEX if the index has never been written.
	Search(ctx context.Context, query string) ([]Result, error)

	// Save writes content to the entry's file and upserts the entry.
	Save(ctx context.Context, entry Entry, content string) error

	// SaveMany replaces the whole index with entries.
	SaveMany(ctx context.Context, entries []Entry) error

	// Exists reports whether the index has been written.
	Exists(ctx context.Context) (bool, error)

	// Count returns the number of entries in the index.
	Count(ctx context.Context) (int, error)

	// RebuildWithContent attaches on-disk content to every entry and
	// rewrites the index with content included.
	RebuildWithContent(ctx context.Context) error
}

// Result is a ranked search hit.
type Result struct {
	Entry Entry
	Score float64
}

// Ranker orders entries by relevance to a query.
//
// Implementations drop zero-score entries, order by descending score with
// ties broken by title then id, and return at most MaxResults results.
// Input entries are never modified.
type Ranker interface {
	Rank(query string, entries []Entry) []Result
}
