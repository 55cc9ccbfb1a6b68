package main_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/ghdocs"
	main "github.com/fwojciec/ghdocs/cmd/ghdocs"
	"github.com/fwojciec/ghdocs/fetch"
	"github.com/fwojciec/ghdocs/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("runs the pipeline and prints stats", func(t *testing.T) {
		t.Parallel()

		var saved []ghdocs.Entry
		index := &mock.IndexService{
			SaveManyFn: func(_ context.Context, entries []ghdocs.Entry) error {
				saved = entries
				return nil
			},
		}
		deps, stdout, stderr := testDeps(map[string]*mock.IndexService{"docs": index})
		deps.Pipeline = &fetch.Pipeline{
			Lister: &mock.Lister{
				ListFilesFn: func(_ context.Context, _ ghdocs.Source, collection string) ([]ghdocs.RemoteFile, error) {
					if collection != "tags" {
						return []ghdocs.RemoteFile{}, nil
					}
					return []ghdocs.RemoteFile{
						{Collection: "tags", Name: "nav.md", Path: "content/collections/tags/nav.md", Type: ghdocs.RemoteTypeFile, DownloadURL: "https://raw.example.com/nav.md"},
						{Collection: "tags", Name: "gone.md", Path: "content/collections/tags/gone.md", Type: ghdocs.RemoteTypeFile, DownloadURL: "https://raw.example.com/gone.md"},
					}, nil
				},
			},
			Downloader: &mock.Downloader{
				DownloadFn: func(_ context.Context, url string) (string, error) {
					if url == "https://raw.example.com/gone.md" {
						return "", ghdocs.Errorf(ghdocs.ENOTFOUND, "gone")
					}
					return "---\ntitle: Nav\n---\nNavigation.", nil
				},
			},
			RetryDelays: []time.Duration{0},
		}
		// Write below a temp dir rather than the default storage path.
		src, err := deps.Catalog.Source("docs")
		require.NoError(t, err)
		src.StoragePath = t.TempDir()
		deps.Catalog = ghdocs.NewCatalog([]ghdocs.Source{src}, func(ghdocs.Source) (ghdocs.IndexService, error) { return index, nil })

		cmd := &main.UpdateCmd{Source: "docs", Concurrency: 2}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, 2, deps.Pipeline.Concurrency)
		assert.NotNil(t, deps.Pipeline.RateLimiter)
		require.Len(t, saved, 1)
		assert.Equal(t, "tags:nav.md", saved[0].ID())
		output := stdout.String()
		assert.Contains(t, output, "Updating docs from statamic/docs@master")
		assert.Contains(t, output, "tags: 2 files")
		assert.Contains(t, output, "Total: 2, updated: 1, unchanged: 0, errors: 1")
		assert.Contains(t, stderr.String(), "skip content/collections/tags/gone.md")
	})

	t.Run("rejects a negative rate", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := testDeps(nil)
		deps.Pipeline = &fetch.Pipeline{}

		err := (&main.UpdateCmd{Source: "docs", Rate: -1}).Run(deps)

		assert.Equal(t, ghdocs.EINVALID, ghdocs.ErrorCode(err))
		assert.Nil(t, deps.Pipeline.RateLimiter)
	})

	t.Run("rejects unknown sources", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := testDeps(nil)
		deps.Pipeline = &fetch.Pipeline{}

		err := (&main.UpdateCmd{Source: "laravel"}).Run(deps)

		assert.Equal(t, ghdocs.ENOTFOUND, ghdocs.ErrorCode(err))
		assert.Contains(t, stderr.String(), "ghdocs sources")
	})
}

func TestRebuildCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("rebuilds every source and warns about missing indexes", func(t *testing.T) {
		t.Parallel()

		rebuilt := false
		docs := &mock.IndexService{
			RebuildWithContentFn: func(_ context.Context) error {
				rebuilt = true
				return nil
			},
			CountFn: func(_ context.Context) (int, error) { return 42, nil },
		}
		deps, stdout, stderr := testDeps(map[string]*mock.IndexService{"docs": docs})

		require.NoError(t, (&main.RebuildCmd{All: true}).Run(deps))

		assert.True(t, rebuilt)
		assert.Contains(t, stdout.String(), "Rebuilt docs index with content (42 documents)")
		assert.Contains(t, stderr.String(), "warning: peak_docs has no index")
	})

	t.Run("returns storage errors", func(t *testing.T) {
		t.Parallel()

		docs := &mock.IndexService{
			RebuildWithContentFn: func(_ context.Context) error {
				return ghdocs.Errorf(ghdocs.ESTORAGE, "disk full")
			},
		}
		deps, _, stderr := testDeps(map[string]*mock.IndexService{"docs": docs})

		err := (&main.RebuildCmd{Source: "docs"}).Run(deps)

		assert.Equal(t, ghdocs.ESTORAGE, ghdocs.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error: disk full")
	})
}

func TestStatusCmd_Run(t *testing.T) {
	t.Parallel()

	docs := &mock.IndexService{
		ExistsFn: func(_ context.Context) (bool, error) { return true, nil },
		CountFn:  func(_ context.Context) (int, error) { return 312, nil },
	}
	deps, stdout, _ := testDeps(map[string]*mock.IndexService{"docs": docs})

	require.NoError(t, (&main.StatusCmd{}).Run(deps))

	assert.Equal(t, "docs         312 documents\npeak_docs    not fetched\n", stdout.String())
}

func TestSourcesCmd_Run(t *testing.T) {
	t.Parallel()

	deps, stdout, _ := testDeps(nil)

	require.NoError(t, (&main.SourcesCmd{}).Run(deps))

	output := stdout.String()
	assert.Contains(t, output, "docs  statamic/docs@master")
	assert.Contains(t, output, "collections: docs, tags, modifiers, fieldtypes, variables, reference")
	assert.Contains(t, output, "peak_docs  studio1902/statamic-peak-docs@main")
}
