package ghdocs

import (
	"context"
	"strings"
)

// Remote item types reported by Lister.
const (
	RemoteTypeFile = "file"
	RemoteTypeDir  = "dir"
)

// RemoteFile describes one item in a remote collection directory.
type RemoteFile struct {
	Collection  string
	Name        string
	Path        string
	Type        string
	HTMLURL     string
	DownloadURL string
}

// IsMarkdown reports whether the item is a markdown file.
func (f RemoteFile) IsMarkdown() bool {
	return f.Type == RemoteTypeFile && strings.HasSuffix(f.Name, ".md")
}

// Lister enumerates the items of a collection in a source repository.
type Lister interface {
	ListFiles(ctx context.Context, src Source, collection string) ([]RemoteFile, error)
}

// Downloader retrieves the raw content of a remote file.
type Downloader interface {
	Download(ctx context.Context, url string) (string, error)
}

// FetchStats summarizes one fetch of a source.
type FetchStats struct {
	Total     int
	Updated   int
	Unchanged int
	Errors    int
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
