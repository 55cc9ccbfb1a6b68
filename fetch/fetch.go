// Package fetch rebuilds a source's documentation from its GitHub repository.
// It coordinates listing, downloading, front matter parsing, local storage
// and the final index replace.
package fetch

import (
	"context"
	"log/slog"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/fwojciec/ghdocs"
	"github.com/fwojciec/ghdocs/fs"
	"github.com/fwojciec/ghdocs/markdown"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of files downloaded at once.
const DefaultConcurrency = 10

// Pipeline fetches every collection of a source and replaces its index.
type Pipeline struct {
	Lister      ghdocs.Lister
	Downloader  ghdocs.Downloader
	RateLimiter ghdocs.DomainLimiter
	Concurrency int
	RetryDelays []time.Duration
	Logger      *slog.Logger
	Now         func() time.Time
}

// ProgressEvent reports progress during a fetch.
type ProgressEvent struct {
	Type       ProgressType
	Collection string
	Completed  int
	Total      int
	Path       string
	Error      error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressListed ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressSaving
	ProgressFinished
)

// ProgressFunc is a callback for reporting fetch progress.
type ProgressFunc func(event ProgressEvent)

// fileResult holds the outcome of processing a single remote file.
type fileResult struct {
	position int
	path     string
	entry    ghdocs.Entry
	changed  bool
	err      error
}

// Run lists, downloads and stores every markdown file of src, then replaces
// the index with one entry per stored file in collection and listing order.
// Per-file and per-collection failures are counted in the returned stats and
// never abort the run. The index is replaced even when nothing was stored.
func (p *Pipeline) Run(ctx context.Context, src ghdocs.Source, index ghdocs.IndexService, progress ProgressFunc) (*ghdocs.FetchStats, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	notify := func(e ProgressEvent) {
		if progress != nil {
			progress(e)
		}
	}

	writer := fs.NewWriter(src.StoragePath)
	stats := &ghdocs.FetchStats{}
	entries := []ghdocs.Entry{}

	for _, collection := range src.Collections {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		items, err := p.Lister.ListFiles(ctx, src, collection)
		if err != nil {
			stats.Errors++
			notify(ProgressEvent{Type: ProgressFailed, Collection: collection, Error: err})
			continue
		}
		stats.Total += len(items)

		files := make([]ghdocs.RemoteFile, 0, len(items))
		for _, item := range items {
			if item.IsMarkdown() {
				files = append(files, item)
			}
		}
		notify(ProgressEvent{Type: ProgressListed, Collection: collection, Total: len(files)})

		for _, result := range p.fetchCollection(ctx, writer, collection, files, notify) {
			if result.err != nil {
				stats.Errors++
				continue
			}
			if result.changed {
				stats.Updated++
			} else {
				stats.Unchanged++
			}
			entries = append(entries, result.entry)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	notify(ProgressEvent{Type: ProgressSaving, Total: len(entries)})
	if err := index.SaveMany(ctx, entries); err != nil {
		return nil, err
	}
	notify(ProgressEvent{Type: ProgressFinished, Completed: len(entries), Total: len(entries)})

	return stats, nil
}

// fetchCollection processes files concurrently and returns their results in
// listing order.
func (p *Pipeline) fetchCollection(ctx context.Context, writer *fs.Writer, collection string, files []ghdocs.RemoteFile, notify func(ProgressEvent)) []fileResult {
	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan fileResult, len(files))
	var completed atomic.Int64
	total := len(files)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, file := range files {
			g.Go(func() error {
				resultCh <- p.processFile(gctx, writer, collection, i, file)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]fileResult, len(files))
	for result := range resultCh {
		completed.Add(1)
		results[result.position] = result

		event := ProgressEvent{
			Type:       ProgressCompleted,
			Collection: collection,
			Completed:  int(completed.Load()),
			Total:      total,
			Path:       result.path,
		}
		if result.err != nil {
			event.Type = ProgressFailed
			event.Error = result.err
		}
		notify(event)
	}
	return results
}

// processFile downloads, parses and stores a single file.
func (p *Pipeline) processFile(ctx context.Context, writer *fs.Writer, collection string, position int, file ghdocs.RemoteFile) fileResult {
	result := fileResult{position: position, path: file.Path}

	if p.RateLimiter != nil {
		if err := p.RateLimiter.Wait(ctx, host(file.DownloadURL)); err != nil {
			result.err = err
			return result
		}
	}

	delays := p.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	raw, err := DownloadWithRetry(ctx, file.DownloadURL, p.Downloader.Download, p.logRetry, delays)
	if err != nil {
		result.err = err
		return result
	}

	doc := markdown.Parse(raw)
	path, changed, err := writer.Write(collection, file.Name, doc.Body)
	if err != nil {
		result.err = err
		return result
	}

	entry := ghdocs.Entry{
		Collection:  collection,
		Filename:    file.Name,
		Title:       doc.Title(),
		FilePath:    path,
		SourceURL:   file.HTMLURL,
		LastUpdated: p.now(),
	}
	if entry.Title == "" {
		entry.Title = markdown.Headline(entry.Slug())
	}

	result.entry = entry
	result.changed = changed
	return result
}

func (p *Pipeline) logRetry(url string, attempt int, err error) {
	if p.Logger != nil {
		p.Logger.Debug("retry download", "url", url, "attempt", attempt, "err", err)
	}
}

func (p *Pipeline) now() time.Time {
	if p.Now != nil {
		return p.Now().UTC().Truncate(time.Second)
	}
	return time.Now().UTC().Truncate(time.Second)
}

func host(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
