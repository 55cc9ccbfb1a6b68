package yaml_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/ghdocs"
	"github.com/fwojciec/ghdocs/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("missing file yields defaults", func(t *testing.T) {
		t.Parallel()

		base := t.TempDir()
		cfg, err := yaml.LoadConfig(filepath.Join(base, "nope.yaml"), base)

		require.NoError(t, err)
		assert.Equal(t, ghdocs.DefaultConfig(base), cfg)
	})

	t.Run("empty path yields defaults", func(t *testing.T) {
		t.Parallel()

		base := t.TempDir()
		cfg, err := yaml.LoadConfig("", base)

		require.NoError(t, err)
		assert.Equal(t, ghdocs.DefaultConfig(base), cfg)
	})

	t.Run("overrides search settings and keeps the rest", func(t *testing.T) {
		t.Parallel()

		base := t.TempDir()
		path := writeConfig(t, `
search:
  title_weight: 5
  fuzzy_enabled: true
backend: SQLite
`)

		cfg, err := yaml.LoadConfig(path, base)

		require.NoError(t, err)
		assert.Equal(t, 5.0, cfg.Search.TitleWeight)
		assert.Equal(t, 1.0, cfg.Search.ContentWeight)
		assert.True(t, cfg.Search.FuzzyEnabled)
		assert.Equal(t, 0.3, cfg.Search.FuzzyThreshold)
		assert.Equal(t, ghdocs.BackendSQLite, cfg.Backend)
		assert.Equal(t, filepath.Join(base, "ghdocs.db"), cfg.Database)
		assert.Equal(t, []string{"docs", "peak_docs"}, cfg.SourceNames())
	})

	t.Run("sources list replaces defaults and fills missing fields", func(t *testing.T) {
		t.Parallel()

		base := t.TempDir()
		path := writeConfig(t, `
sources:
  - name: docs
    branch: "5.x"
  - name: addons
    repo: acme/addon-docs
    path_prefix: content
    collections: [guides]
`)

		cfg, err := yaml.LoadConfig(path, base)

		require.NoError(t, err)
		require.Equal(t, []string{"docs", "addons"}, cfg.SourceNames())

		docs, err := cfg.Source("docs")
		require.NoError(t, err)
		def, _ := ghdocs.DefaultConfig(base).Source("docs")
		assert.Equal(t, "5.x", docs.Branch)
		assert.Equal(t, def.Repo, docs.Repo)
		assert.Equal(t, def.PathPrefix, docs.PathPrefix)
		assert.Equal(t, def.Collections, docs.Collections)
		assert.Equal(t, def.IndexFile, docs.IndexFile)

		addons, err := cfg.Source("addons")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(base, "addons"), addons.StoragePath)
		assert.Equal(t, filepath.Join(base, "addons", "index.json"), addons.IndexFile)
		assert.Equal(t, yaml.DefaultBranch, addons.Branch)
		assert.Equal(t, "content/", addons.PathPrefix)
		assert.Equal(t, "content/guides", addons.CollectionPath("guides"))
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "search:\n  title_wieght: 2\n")

		_, err := yaml.LoadConfig(path, t.TempDir())

		assert.Equal(t, ghdocs.EINVALID, ghdocs.ErrorCode(err))
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "search:\n  fuzzy_threshold: 2\n")

		_, err := yaml.LoadConfig(path, t.TempDir())

		assert.Equal(t, ghdocs.EINVALID, ghdocs.ErrorCode(err))
	})

	t.Run("rejects sources sharing an index file", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `
sources:
  - name: a
    storage_path: /tmp/shared
    repo: acme/a
  - name: b
    storage_path: /tmp/shared
    repo: acme/b
`)

		_, err := yaml.LoadConfig(path, t.TempDir())

		assert.Equal(t, ghdocs.EINVALID, ghdocs.ErrorCode(err))
	})
}

func TestExpandHome(t *testing.T) {
	t.Parallel()

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := yaml.ExpandHome("~/.ghdocs")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".ghdocs"), got)

	got, err = yaml.ExpandHome("/var/docs")
	require.NoError(t, err)
	assert.Equal(t, "/var/docs", got)

	got, err = yaml.ExpandHome("docs/~")
	require.NoError(t, err)
	assert.Equal(t, "docs/~", got)
}
