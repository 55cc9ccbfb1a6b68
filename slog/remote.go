// Package slog provides logging decorators for ghdocs services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/ghdocs"
)

var (
	_ ghdocs.Lister     = (*LoggingLister)(nil)
	_ ghdocs.Downloader = (*LoggingDownloader)(nil)
)

// LoggingLister wraps a Lister with debug logging.
type LoggingLister struct {
	next   ghdocs.Lister
	logger *slog.Logger
}

// NewLoggingLister creates a new LoggingLister.
func NewLoggingLister(next ghdocs.Lister, logger *slog.Logger) *LoggingLister {
	return &LoggingLister{next: next, logger: logger}
}

// ListFiles delegates to the wrapped lister and logs the operation.
func (l *LoggingLister) ListFiles(ctx context.Context, src ghdocs.Source, collection string) (files []ghdocs.RemoteFile, err error) {
	defer func(begin time.Time) {
		l.logger.Info("list files",
			"source", src.Name,
			"collection", collection,
			"count", len(files),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.ListFiles(ctx, src, collection)
}

// LoggingDownloader wraps a Downloader with debug logging.
type LoggingDownloader struct {
	next   ghdocs.Downloader
	logger *slog.Logger
}

// NewLoggingDownloader creates a new LoggingDownloader.
func NewLoggingDownloader(next ghdocs.Downloader, logger *slog.Logger) *LoggingDownloader {
	return &LoggingDownloader{next: next, logger: logger}
}

// Download delegates to the wrapped downloader and logs the operation.
func (d *LoggingDownloader) Download(ctx context.Context, url string) (content string, err error) {
	defer func(begin time.Time) {
		d.logger.Info("download",
			"url", url,
			"bytes", len(content),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.Download(ctx, url)
}
