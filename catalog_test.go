package ghdocs_test

import (
	"context"
	"testing"

	"github.com/fwojciec/ghdocs"
	"github.com/fwojciec/ghdocs/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Index(t *testing.T) {
	t.Parallel()

	t.Run("opens one service per source", func(t *testing.T) {
		t.Parallel()

		opened := map[string]int{}
		catalog := ghdocs.NewCatalog(
			[]ghdocs.Source{{Name: "docs"}, {Name: "peak_docs"}},
			func(src ghdocs.Source) (ghdocs.IndexService, error) {
				opened[src.Name]++
				return &mock.IndexService{}, nil
			},
		)

		docs1, err := catalog.Index("docs")
		require.NoError(t, err)
		docs2, err := catalog.Index("docs")
		require.NoError(t, err)
		peak, err := catalog.Index("peak_docs")
		require.NoError(t, err)

		assert.Same(t, docs1, docs2)
		assert.NotSame(t, docs1, peak)
		assert.Equal(t, map[string]int{"docs": 1, "peak_docs": 1}, opened)
	})

	t.Run("returns ENOTFOUND for unknown source", func(t *testing.T) {
		t.Parallel()

		catalog := ghdocs.NewCatalog(nil, func(src ghdocs.Source) (ghdocs.IndexService, error) {
			t.Fatal("opener should not be called")
			return nil, nil
		})

		_, err := catalog.Index("nope")

		assert.Equal(t, ghdocs.ENOTFOUND, ghdocs.ErrorCode(err))
	})

	t.Run("does not cache failed opens", func(t *testing.T) {
		t.Parallel()

		calls := 0
		catalog := ghdocs.NewCatalog([]ghdocs.Source{{Name: "docs"}}, func(src ghdocs.Source) (ghdocs.IndexService, error) {
			calls++
			if calls == 1 {
				return nil, ghdocs.Errorf(ghdocs.ESTORAGE, "cannot open")
			}
			return &mock.IndexService{}, nil
		})

		_, err := catalog.Index("docs")
		require.Error(t, err)
		_, err = catalog.Index("docs")
		require.NoError(t, err)
		assert.Equal(t, 2, calls)
	})
}

func TestCatalog_Delegates(t *testing.T) {
	t.Parallel()

	docs := &mock.IndexService{
		ExistsFn: func(ctx context.Context) (bool, error) { return true, nil },
		CountFn:  func(ctx context.Context) (int, error) { return 7, nil },
		FindByIDFn: func(ctx context.Context, id string) (ghdocs.Entry, error) {
			return ghdocs.Entry{Collection: "docs", Filename: "a.md"}, nil
		},
		SearchFn: func(ctx context.Context, query string) ([]ghdocs.Result, error) {
			return []ghdocs.Result{{Entry: ghdocs.Entry{Title: query}, Score: 1}}, nil
		},
		RebuildWithContentFn: func(ctx context.Context) error { return nil },
	}
	peak := &mock.IndexService{
		ExistsFn: func(ctx context.Context) (bool, error) { return false, nil },
		CountFn:  func(ctx context.Context) (int, error) { return 0, nil },
	}
	catalog := ghdocs.NewCatalog(
		[]ghdocs.Source{{Name: "docs"}, {Name: "peak_docs"}},
		func(src ghdocs.Source) (ghdocs.IndexService, error) {
			if src.Name == "docs" {
				return docs, nil
			}
			return peak, nil
		},
	)
	ctx := context.Background()

	exists, err := catalog.Exists(ctx, "docs")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = catalog.Exists(ctx, "peak_docs")
	require.NoError(t, err)
	assert.False(t, exists)

	n, err := catalog.Count(ctx, "docs")
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	e, err := catalog.FindByID(ctx, "docs", "docs:a.md")
	require.NoError(t, err)
	assert.Equal(t, "docs:a.md", e.ID())

	results, err := catalog.Search(ctx, "docs", "guide")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "guide", results[0].Entry.Title)

	require.NoError(t, catalog.RebuildWithContent(ctx, "docs"))

	_, err = catalog.Count(ctx, "other")
	assert.Equal(t, ghdocs.ENOTFOUND, ghdocs.ErrorCode(err))
}
