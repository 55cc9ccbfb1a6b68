package ghdocs

import (
	"path/filepath"
)

// Storage backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// SearchConfig holds scoring weights and indexing flags.
type SearchConfig struct {
	TitleWeight    float64 `yaml:"title_weight"`
	ContentWeight  float64 `yaml:"content_weight"`
	IndexContent   bool    `yaml:"index_content"`
	FuzzyEnabled   bool    `yaml:"fuzzy_enabled"`
	FuzzyThreshold float64 `yaml:"fuzzy_threshold"`
}

// DefaultSearchConfig returns the default scoring configuration.
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		TitleWeight:    3.0,
		ContentWeight:  1.0,
		FuzzyThreshold: 0.3,
	}
}

// Validate returns an error if the search configuration is unusable.
func (c SearchConfig) Validate() error {
	if c.TitleWeight < 0 || c.ContentWeight < 0 {
		return Errorf(EINVALID, "search weights must not be negative")
	}
	if c.FuzzyThreshold < 0 || c.FuzzyThreshold > 1 {
		return Errorf(EINVALID, "fuzzy threshold must be between 0 and 1, got %g", c.FuzzyThreshold)
	}
	return nil
}

// Source describes one documentation source: where it lives on GitHub and
// where its files and index are stored locally.
type Source struct {
	Name        string   `yaml:"name"`
	StoragePath string   `yaml:"storage_path"`
	IndexFile   string   `yaml:"index_file"`
	Repo        string   `yaml:"repo"`
	Branch      string   `yaml:"branch"`
	PathPrefix  string   `yaml:"path_prefix"`
	Collections []string `yaml:"collections"`
}

// CollectionPath returns the repository path of a collection directory.
func (s Source) CollectionPath(collection string) string {
	return s.PathPrefix + collection
}

// Validate returns an error if the source contains invalid fields.
func (s Source) Validate() error {
	if s.Name == "" {
		return Errorf(EINVALID, "source name required")
	}
	if s.StoragePath == "" {
		return Errorf(EINVALID, "source %q storage path required", s.Name)
	}
	if s.IndexFile == "" {
		return Errorf(EINVALID, "source %q index file required", s.Name)
	}
	return nil
}

// Config is the complete application configuration.
type Config struct {
	Search   SearchConfig `yaml:"search"`
	Backend  string       `yaml:"backend"`
	Database string       `yaml:"database"`
	Sources  []Source     `yaml:"sources"`
}

// DefaultConfig returns the configuration used when no file overrides it.
// All local paths are rooted at baseDir.
func DefaultConfig(baseDir string) Config {
	docsDir := filepath.Join(baseDir, "statamic-docs")
	peakDir := filepath.Join(baseDir, "statamic-peak-docs")
	return Config{
		Search:   DefaultSearchConfig(),
		Backend:  BackendJSON,
		Database: filepath.Join(baseDir, "ghdocs.db"),
		Sources: []Source{
			{
				Name:        "docs",
				StoragePath: docsDir,
				IndexFile:   filepath.Join(docsDir, "index.json"),
				Repo:        "statamic/docs",
				Branch:      "master",
				PathPrefix:  "content/collections/",
				Collections: []string{"docs", "tags", "modifiers", "fieldtypes", "variables", "reference"},
			},
			{
				Name:        "peak_docs",
				StoragePath: peakDir,
				IndexFile:   filepath.Join(peakDir, "index.json"),
				Repo:        "studio1902/statamic-peak-docs",
				Branch:      "main",
				Collections: []string{"getting-started", "features", "other"},
			},
		},
	}
}

// Source returns the named source.
// Returns ENOTFOUND if no source has that name.
func (c Config) Source(name string) (Source, error) {
	for _, s := range c.Sources {
		if s.Name == name {
			return s, nil
		}
	}
	return Source{}, Errorf(ENOTFOUND, "documentation source %q not configured", name)
}

// SourceNames returns the configured source names in order.
func (c Config) SourceNames() []string {
	names := make([]string, 0, len(c.Sources))
	for _, s := range c.Sources {
		names = append(names, s.Name)
	}
	return names
}

// Validate returns an error if the configuration is unusable.
func (c Config) Validate() error {
	if err := c.Search.Validate(); err != nil {
		return err
	}
	switch c.Backend {
	case BackendJSON:
	case BackendSQLite:
		if c.Database == "" {
			return Errorf(EINVALID, "database path required for sqlite backend")
		}
	default:
		return Errorf(EINVALID, "unknown backend %q", c.Backend)
	}

	seen := make(map[string]bool, len(c.Sources))
	indexFiles := make(map[string]string, len(c.Sources))
	for _, s := range c.Sources {
		if err := s.Validate(); err != nil {
			return err
		}
		if seen[s.Name] {
			return Errorf(EINVALID, "duplicate source %q", s.Name)
		}
		seen[s.Name] = true
		if other, ok := indexFiles[s.IndexFile]; ok {
			return Errorf(EINVALID, "sources %q and %q share index file %s", other, s.Name, s.IndexFile)
		}
		indexFiles[s.IndexFile] = s.Name
	}
	return nil
}
