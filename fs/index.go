package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/ghdocs"
	"github.com/gofrs/flock"
)

// lockRetryDelay is how often a blocked writer retries the index lock.
const lockRetryDelay = 50 * time.Millisecond

// Ensure IndexService implements ghdocs.IndexService at compile time.
var _ ghdocs.IndexService = (*IndexService)(nil)

// IndexService implements ghdocs.IndexService on a single JSON file holding
// an array of ghdocs.Record values.
//
// The file is loaded once and cached. Writes replace the file atomically and
// hold an advisory lock on "<path>.lock" so that two processes never
// interleave a replace. The cache only changes after a write succeeds.
type IndexService struct {
	path   string
	cfg    ghdocs.SearchConfig
	ranker ghdocs.Ranker
	lock   *flock.Flock

	mu      sync.Mutex
	entries []ghdocs.Entry
	loaded  bool
}

// NewIndexService creates an IndexService backed by the file at path.
func NewIndexService(path string, cfg ghdocs.SearchConfig, ranker ghdocs.Ranker) *IndexService {
	return &IndexService{
		path:   path,
		cfg:    cfg,
		ranker: ranker,
		lock:   flock.New(path + ".lock"),
	}
}

// Path returns the index file location.
func (s *IndexService) Path() string {
	return s.path
}

func (s *IndexService) All(ctx context.Context) ([]ghdocs.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return nil, err
	}
	return slices.Clone(entries), nil
}

func (s *IndexService) Find(ctx context.Context, collection, filename string) (ghdocs.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, e, err := s.find(collection, filename)
	return e, err
}

func (s *IndexService) FindByID(ctx context.Context, id string) (ghdocs.Entry, error) {
	collection, filename, ok := ghdocs.SplitID(id)
	if !ok {
		return ghdocs.Entry{}, ghdocs.Errorf(ghdocs.ENOTFOUND, "invalid documentation id %q, expected collection:filename", id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i, e, err := s.find(collection, filename)
	if err != nil {
		return ghdocs.Entry{}, err
	}
	if e.HasContent() {
		return e, nil
	}

	content, ok, err := ReadContent(e.FilePath)
	if err != nil {
		return ghdocs.Entry{}, err
	} else if !ok {
		return e, nil
	}
	e = e.WithContent(content)
	s.entries[i] = e
	return e, nil
}

func (s *IndexService) Search(ctx context.Context, query string) ([]ghdocs.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if exists, err := s.exists(); err != nil {
		return nil, err
	} else if !exists {
		return nil, ghdocs.Errorf(ghdocs.ENOINDEX, "no documentation index at %s, run update first", s.path)
	}

	entries, err := s.load()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(query) == "" {
		return []ghdocs.Result{}, nil
	}

	entries, err = AttachContent(entries)
	if err != nil {
		return nil, err
	}
	s.entries = entries

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

	current, err := s.load()
	if err != nil {
		return err
	}

	if err := WriteFileAtomic(entry.FilePath, []byte(content)); err != nil {
		return err
	}

	if s.cfg.IndexContent {
		entry = entry.WithContent(content)
	} else {
		entry = entry.WithoutContent()
	}

	id := entry.ID()
	next := make([]ghdocs.Entry, 0, len(current)+1)
	for _, e := range current {
		if e.ID() != id {
			next = append(next, e)
		}
	}
	next = append(next, entry)

	return s.persist(ctx, next, s.cfg.IndexContent)
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

	next := slices.Clone(entries)
	if s.cfg.IndexContent {
		var err error
		if next, err = AttachContent(next); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.persist(ctx, next, s.cfg.IndexContent)
}

func (s *IndexService) Exists(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.exists()
}

func (s *IndexService) Count(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}

func (s *IndexService) RebuildWithContent(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if exists, err := s.exists(); err != nil {
		return err
	} else if !exists {
		return ghdocs.Errorf(ghdocs.ENOINDEX, "no documentation index at %s, run update first", s.path)
	}

	entries, err := s.load()
	if err != nil {
		return err
	}
	entries, err = AttachContent(entries)
	if err != nil {
		return err
	}
	return s.persist(ctx, entries, true)
}

func (s *IndexService) exists() (bool, error) {
	_, err := os.Stat(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("stat index %s: %w", s.path, err)
	}
	return true, nil
}

// find returns the position and value of the first matching entry.
func (s *IndexService) find(collection, filename string) (int, ghdocs.Entry, error) {
	entries, err := s.load()
	if err != nil {
		return -1, ghdocs.Entry{}, err
	}
	for i, e := range entries {
		if e.Collection == collection && e.Filename == filename {
			return i, e, nil
		}
	}
	return -1, ghdocs.Entry{}, ghdocs.Errorf(ghdocs.ENOTFOUND, "documentation %s:%s not found", collection, filename)
}

// load returns the cached entries, reading the index file on first use.
// A missing file is an empty index and is not cached, so an index written
// later by another process is picked up. Caller must hold s.mu.
func (s *IndexService) load() ([]ghdocs.Entry, error) {
	if s.loaded {
		return s.entries, nil
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("read index %s: %w", s.path, err)
	}

	entries, err := Decode(data)
	if err != nil {
		return nil, err
	}

	s.entries = entries
	s.loaded = true
	return s.entries, nil
}

// persist writes entries to the index file and, once the file is in place,
// makes them the cached index. Caller must hold s.mu.
func (s *IndexService) persist(ctx context.Context, entries []ghdocs.Entry, includeContent bool) error {
	data, err := Encode(entries, includeContent)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return ghdocs.Errorf(ghdocs.ESTORAGE, "cannot create directory for %s: %v", s.path, err)
	}
	locked, err := s.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return ghdocs.Errorf(ghdocs.ESTORAGE, "cannot lock index %s: %v", s.path, err)
	} else if !locked {
		return ghdocs.Errorf(ghdocs.ESTORAGE, "index %s is locked by another process", s.path)
	}
	defer func() { _ = s.lock.Unlock() }()

	if err := WriteFileAtomic(s.path, data); err != nil {
		return err
	}

	s.entries = entries
	s.loaded = true
	return nil
}

// Encode serializes entries as an indented JSON array of records.
func Encode(entries []ghdocs.Entry, includeContent bool) ([]byte, error) {
	records := make([]ghdocs.Record, 0, len(entries))
	for _, e := range entries {
		records = append(records, e.Record(includeContent))
	}
	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("encode index: %w", err)
	}
	return data, nil
}

// Decode parses an index file. Invalid JSON, invalid records and duplicate
// ids are reported as EMALFORMED.
func Decode(data []byte) ([]ghdocs.Entry, error) {
	var records []ghdocs.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, ghdocs.Errorf(ghdocs.EMALFORMED, "cannot parse documentation index: %v", err)
	}

	entries := make([]ghdocs.Entry, 0, len(records))
	seen := make(map[string]bool, len(records))
	for _, r := range records {
		e, err := ghdocs.EntryFromRecord(r)
		if err != nil {
			return nil, err
		}
		if seen[e.ID()] {
			return nil, ghdocs.Errorf(ghdocs.EMALFORMED, "documentation index contains %q twice", e.ID())
		}
		seen[e.ID()] = true
		entries = append(entries, e)
	}
	return entries, nil
}
