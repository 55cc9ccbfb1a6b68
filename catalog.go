package ghdocs

import (
	"context"
	"sync"
)

// IndexOpener creates the IndexService backing a source.
type IndexOpener func(src Source) (IndexService, error)

// Catalog gives access to the index of every configured source.
// Each source gets exactly one IndexService, opened on first use, so sources
// never share storage or locks.
type Catalog struct {
	mu       sync.Mutex
	sources  []Source
	open     IndexOpener
	services map[string]IndexService
}

// NewCatalog creates a Catalog over sources using open to create services.
func NewCatalog(sources []Source, open IndexOpener) *Catalog {
	return &Catalog{
		sources:  sources,
		open:     open,
		services: make(map[string]IndexService, len(sources)),
	}
}

// Sources returns the configured sources in order.
func (c *Catalog) Sources() []Source {
	out := make([]Source, len(c.sources))
	copy(out, c.sources)
	return out
}

// Source returns the named source.
// Returns ENOTFOUND if the source is not configured.
func (c *Catalog) Source(name string) (Source, error) {
	for _, s := range c.sources {
		if s.Name == name {
			return s, nil
		}
	}
	return Source{}, Errorf(ENOTFOUND, "documentation source %q not configured", name)
}

// Index returns the IndexService for the named source.
func (c *Catalog) Index(name string) (IndexService, error) {
	src, err := c.Source(name)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if svc, ok := c.services[name]; ok {
		return svc, nil
	}
	svc, err := c.open(src)
	if err != nil {
		return nil, err
	}
	c.services[name] = svc
	return svc, nil
}

// Exists reports whether the named source has an index.
func (c *Catalog) Exists(ctx context.Context, name string) (bool, error) {
	svc, err := c.Index(name)
	if err != nil {
		return false, err
	}
	return svc.Exists(ctx)
}

// Count returns the number of entries in the named source's index.
func (c *Catalog) Count(ctx context.Context, name string) (int, error) {
	svc, err := c.Index(name)
	if err != nil {
		return 0, err
	}
	return svc.Count(ctx)
}

// FindByID looks up an entry in the named source.
func (c *Catalog) FindByID(ctx context.Context, name, id string) (Entry, error) {
	svc, err := c.Index(name)
	if err != nil {
		return Entry{}, err
	}
	return svc.FindByID(ctx, id)
}

// Search ranks the named source's index against query.
func (c *Catalog) Search(ctx context.Context, name, query string) ([]Result, error) {
	svc, err := c.Index(name)
	if err != nil {
		return nil, err
	}
	return svc.Search(ctx, query)
}

// RebuildWithContent rewrites the named source's index with content included.
func (c *Catalog) RebuildWithContent(ctx context.Context, name string) error {
	svc, err := c.Index(name)
	if err != nil {
		return err
	}
	return svc.RebuildWithContent(ctx)
}
