package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/ghdocs"
	"github.com/fwojciec/ghdocs/fs"
)

// Compile-time interface verification.
var _ ghdocs.IndexService = (*IndexService)(nil)

// IndexService implements ghdocs.IndexService for one source using SQLite.
// Several sources may share a DB; their rows are keyed by source name.
type IndexService struct {
	db     *DB
	source string
	cfg    ghdocs.SearchConfig
	ranker ghdocs.Ranker

	mu sync.Mutex
}

// NewIndexService creates a new IndexService for the named source.
func NewIndexService(db *DB, source string, cfg ghdocs.SearchConfig, ranker ghdocs.Ranker) *IndexService {
	return &IndexService{db: db, source: source, cfg: cfg, ranker: ranker}
}

func (s *IndexService) All(ctx context.Context) ([]ghdocs.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.all(ctx)
}

func (s *IndexService) Find(ctx context.Context, collection, filename string) (ghdocs.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.find(ctx, collection, filename)
}

func (s *IndexService) FindByID(ctx context.Context, id string) (ghdocs.Entry, error) {
	collection, filename, ok := ghdocs.SplitID(id)
	if !ok {
		return ghdocs.Entry{}, ghdocs.Errorf(ghdocs.ENOTFOUND, "invalid documentation id %q, expected collection:filename", id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.find(ctx, collection, filename)
	if err != nil {
		return ghdocs.Entry{}, err
	}
	if e.HasContent() {
		return e, nil
	}
	content, ok, err := fs.ReadContent(e.FilePath)
	if err != nil {
		return ghdocs.Entry{}, err
	} else if ok {
		e = e.WithContent(content)
	}
	return e, nil
}

func (s *IndexService) Search(ctx context.Context, query string) ([]ghdocs.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if exists, err := s.exists(ctx); err != nil {
		return nil, err
	} else if !exists {
		return nil, ghdocs.Errorf(ghdocs.ENOINDEX, "no documentation index for %s, run update first", s.source)
	}

	entries, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(query) == "" {
		return []ghdocs.Result{}, nil
	}
	entries, err = fs.AttachContent(entries)
	if err != nil {
		return nil, err
	}
	return s.ranker.Rank(query, entries), nil
}

func (s *IndexService) Save(ctx context.Context, entry ghdocs.Entry, content string) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	if entry.FilePath == "" {
		return ghdocs.Errorf(ghdocs.EINVALID, "entry %s has no file path", entry.ID())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fs.WriteFileAtomic(entry.FilePath, []byte(content)); err != nil {
		return err
	}
	if s.cfg.IndexContent {
		entry = entry.WithContent(content)
	} else {
		entry = entry.WithoutContent()
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return storageError(s.source, err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.markBuilt(ctx, tx); err != nil {
		return storageError(s.source, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM entries WHERE source = ? AND id = ?`, s.source, entry.ID()); err != nil {
		return storageError(s.source, err)
	}
	var position int
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(position) + 1, 0) FROM entries WHERE source = ?`, s.source).Scan(&position); err != nil {
		return storageError(s.source, err)
	}
	if err := s.insert(ctx, tx, entry, position, s.cfg.IndexContent); err != nil {
		return storageError(s.source, err)
	}
	if err := tx.Commit(); err != nil {
		return storageError(s.source, err)
	}
	return nil
}

func (s *IndexService) SaveMany(ctx context.Context, entries []ghdocs.Entry) error {
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return err
		}
		if seen[e.ID()] {
			return ghdocs.Errorf(ghdocs.EINVALID, "duplicate documentation id %q", e.ID())
		}
		seen[e.ID()] = true
	}
	if s.cfg.IndexContent {
		var err error
		if entries, err = fs.AttachContent(entries); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return storageError(s.source, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM entries WHERE source = ?`, s.source); err != nil {
		return storageError(s.source, err)
	}
	if err := s.markBuilt(ctx, tx); err != nil {
		return storageError(s.source, err)
	}
	for i, e := range entries {
		if err := s.insert(ctx, tx, e, i, s.cfg.IndexContent); err != nil {
			return storageError(s.source, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return storageError(s.source, err)
	}
	return nil
}

func (s *IndexService) Exists(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.exists(ctx)
}

func (s *IndexService) Count(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries WHERE source = ?`, s.source).Scan(&n); err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return n, nil
}

func (s *IndexService) RebuildWithContent(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if exists, err := s.exists(ctx); err != nil {
		return err
	} else if !exists {
		return ghdocs.Errorf(ghdocs.ENOINDEX, "no documentation index for %s, run update first", s.source)
	}

	entries, err := s.all(ctx)
	if err != nil {
		return err
	}
	entries, err = fs.AttachContent(entries)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return storageError(s.source, err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `UPDATE entries SET content = ?, content_hash = ? WHERE source = ? AND id = ?`)
	if err != nil {
		return storageError(s.source, err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, nullContent(e, true), hashContent(e), s.source, e.ID()); err != nil {
			return storageError(s.source, err)
		}
	}
	if err := s.markBuilt(ctx, tx); err != nil {
		return storageError(s.source, err)
	}
	if err := tx.Commit(); err != nil {
		return storageError(s.source, err)
	}
	return nil
}

func (s *IndexService) exists(ctx context.Context) (bool, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM indexes WHERE source = ?`, s.source).Scan(&n); err != nil {
		return false, fmt.Errorf("check index: %w", err)
	}
	return n > 0, nil
}

func (s *IndexService) all(ctx context.Context) ([]ghdocs.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM entries WHERE source = ? ORDER BY position ASC`, s.source)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	entries := []ghdocs.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

func (s *IndexService) find(ctx context.Context, collection, filename string) (ghdocs.Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM entries WHERE source = ? AND collection = ? AND filename = ? ORDER BY position ASC LIMIT 1`,
		s.source, collection, filename)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return ghdocs.Entry{}, ghdocs.Errorf(ghdocs.ENOTFOUND, "documentation %s:%s not found", collection, filename)
	} else if err != nil {
		return ghdocs.Entry{}, err
	}
	return e, nil
}

func (s *IndexService) markBuilt(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO indexes (source, built_at) VALUES (?, ?)
		ON CONFLICT(source) DO UPDATE SET built_at = excluded.built_at
	`, s.source, time.Now().UTC().Format(time.RFC3339))
	return err
}

func (s *IndexService) insert(ctx context.Context, tx *sql.Tx, e ghdocs.Entry, position int, includeContent bool) error {
	if !includeContent {
		e = e.WithoutContent()
	}
	r := e.Record(includeContent)
	_, err := tx.ExecContext(ctx, `
		INSERT INTO entries (source, position, id, collection, filename, title, file_path, source_url, last_updated, content, content_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, s.source, position, r.ID, r.Collection, r.Filename, r.Title, r.FilePath, r.SourceURL, r.LastUpdated,
		nullContent(e, includeContent), hashContent(e))
	return err
}

func storageError(source string, err error) error {
	return ghdocs.Errorf(ghdocs.ESTORAGE, "cannot write index for %s: %v", source, err)
}
