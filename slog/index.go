package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/ghdocs"
)

var _ ghdocs.IndexService = (*LoggingIndexService)(nil)

// LoggingIndexService wraps an IndexService with debug logging. Reads that
// only touch the cache are not logged.
type LoggingIndexService struct {
	next   ghdocs.IndexService
	source string
	logger *slog.Logger
}

// NewLoggingIndexService creates a new LoggingIndexService for the named source.
func NewLoggingIndexService(next ghdocs.IndexService, source string, logger *slog.Logger) *LoggingIndexService {
	return &LoggingIndexService{next: next, source: source, logger: logger}
}

func (s *LoggingIndexService) All(ctx context.Context) ([]ghdocs.Entry, error) {
	return s.next.All(ctx)
}

func (s *LoggingIndexService) Find(ctx context.Context, collection, filename string) (ghdocs.Entry, error) {
	return s.next.Find(ctx, collection, filename)
}

func (s *LoggingIndexService) FindByID(ctx context.Context, id string) (e ghdocs.Entry, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find by id",
			"source", s.source,
			"id", id,
			"content", e.HasContent(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindByID(ctx, id)
}

func (s *LoggingIndexService) Search(ctx context.Context, query string) (results []ghdocs.Result, err error) {
	defer func(begin time.Time) {
		s.logger.Info("search",
			"source", s.source,
			"query", query,
			"count", len(results),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, query)
}

func (s *LoggingIndexService) Save(ctx context.Context, entry ghdocs.Entry, content string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("save entry",
			"source", s.source,
			"id", entry.ID(),
			"bytes", len(content),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Save(ctx, entry, content)
}

func (s *LoggingIndexService) SaveMany(ctx context.Context, entries []ghdocs.Entry) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("save index",
			"source", s.source,
			"count", len(entries),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SaveMany(ctx, entries)
}

func (s *LoggingIndexService) Exists(ctx context.Context) (bool, error) {
	return s.next.Exists(ctx)
}

func (s *LoggingIndexService) Count(ctx context.Context) (int, error) {
	return s.next.Count(ctx)
}

func (s *LoggingIndexService) RebuildWithContent(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("rebuild with content",
			"source", s.source,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.RebuildWithContent(ctx)
}
