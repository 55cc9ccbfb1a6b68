package main_test

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"testing"

	"github.com/fwojciec/ghdocs"
	main "github.com/fwojciec/ghdocs/cmd/ghdocs"
	"github.com/fwojciec/ghdocs/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func searchIndex(results []ghdocs.Result) *mock.IndexService {
	return &mock.IndexService{
		SearchFn: func(_ context.Context, _ string) ([]ghdocs.Result, error) {
			return results, nil
		},
	}
}

func TestSearchCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints results with snippets", func(t *testing.T) {
		t.Parallel()

		var gotQuery string
		index := &mock.IndexService{
			SearchFn: func(_ context.Context, query string) ([]ghdocs.Result, error) {
				gotQuery = query
				return []ghdocs.Result{
					{Entry: entry("docs", "page-builder.md", "Page Builder").WithContent("Intro.\n\nThe page builder lets editors compose pages."), Score: 10.5},
					{Entry: entry("docs", "blueprints.md", "Blueprints"), Score: 1.5},
				}, nil
			},
		}
		deps, stdout, stderr := testDeps(map[string]*mock.IndexService{"docs": index})

		cmd := &main.SearchCmd{Query: []string{"page", "builder"}, Source: "docs", Limit: 10}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Empty(t, stderr.String())
		assert.Equal(t, "page builder", gotQuery)
		output := stdout.String()
		assert.Contains(t, output, "Found 2 results")
		assert.Contains(t, output, "1. Page Builder")
		assert.Contains(t, output, "docs:page-builder.md")
		assert.Contains(t, output, "The page builder lets editors compose pages.")
		assert.Contains(t, output, "2. Blueprints")
		assert.Contains(t, output, "https://github.com/statamic/docs/blob/master/content/collections/docs/blueprints.md")
		assert.NotContains(t, output, "--start=")
	})

	t.Run("pages through results", func(t *testing.T) {
		t.Parallel()

		var results []ghdocs.Result
		for i := range 25 {
			results = append(results, ghdocs.Result{Entry: entry("docs", fmt.Sprintf("p%02d.md", i), fmt.Sprintf("Page %02d", i)), Score: float64(25 - i)})
		}
		deps, stdout, _ := testDeps(map[string]*mock.IndexService{"docs": searchIndex(results)})

		cmd := &main.SearchCmd{Query: []string{"page"}, Source: "docs", Start: 10, Limit: 10}
		require.NoError(t, cmd.Run(deps))

		output := stdout.String()
		assert.Contains(t, output, "Found 25 results")
		assert.Contains(t, output, "11. Page 10")
		assert.Contains(t, output, "20. Page 19")
		assert.NotContains(t, output, "Page 20")
		assert.Contains(t, output, "Use --start=20 to see the next page")
	})

	t.Run("a very large limit shows every remaining result", func(t *testing.T) {
		t.Parallel()

		results := []ghdocs.Result{
			{Entry: entry("docs", "a.md", "Alpha"), Score: 2},
			{Entry: entry("docs", "b.md", "Bravo"), Score: 1},
		}
		deps, stdout, _ := testDeps(map[string]*mock.IndexService{"docs": searchIndex(results)})

		cmd := &main.SearchCmd{Query: []string{"page"}, Source: "docs", Start: 1, Limit: math.MaxInt}
		require.NoError(t, cmd.Run(deps))

		output := stdout.String()
		assert.NotContains(t, output, "Alpha")
		assert.Contains(t, output, "2. Bravo")
		assert.NotContains(t, output, "--start=")
	})

	t.Run("a start past the end prints no results", func(t *testing.T) {
		t.Parallel()

		results := []ghdocs.Result{{Entry: entry("docs", "a.md", "Alpha"), Score: 1}}
		deps, stdout, _ := testDeps(map[string]*mock.IndexService{"docs": searchIndex(results)})

		cmd := &main.SearchCmd{Query: []string{"page"}, Source: "docs", Start: math.MaxInt, Limit: math.MaxInt, JSON: true}
		require.NoError(t, cmd.Run(deps))

		var got []map[string]any
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
		assert.Empty(t, got)
	})

	t.Run("prints a hint when nothing matches", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps(map[string]*mock.IndexService{"docs": searchIndex([]ghdocs.Result{})})

		cmd := &main.SearchCmd{Query: []string{"zzz"}, Source: "docs", Limit: 10}
		require.NoError(t, cmd.Run(deps))

		assert.Contains(t, stdout.String(), "No results found.")
	})

	t.Run("refuses to search without an index", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := testDeps(nil)

		cmd := &main.SearchCmd{Query: []string{"guide"}, Source: "peak_docs", Limit: 10}
		err := cmd.Run(deps)

		assert.Equal(t, ghdocs.ENOINDEX, ghdocs.ErrorCode(err))
		assert.Contains(t, stderr.String(), "ghdocs update -s peak_docs")
	})

	t.Run("rejects unknown sources", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := testDeps(nil)

		cmd := &main.SearchCmd{Query: []string{"guide"}, Source: "laravel", Limit: 10}
		err := cmd.Run(deps)

		assert.Equal(t, ghdocs.ENOTFOUND, ghdocs.ErrorCode(err))
	})

	t.Run("rejects invalid page bounds", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := testDeps(nil)

		cmd := &main.SearchCmd{Query: []string{"guide"}, Source: "docs", Limit: 0}
		err := cmd.Run(deps)

		assert.Equal(t, ghdocs.EINVALID, ghdocs.ErrorCode(err))
	})

	t.Run("prints JSON", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps(map[string]*mock.IndexService{"docs": searchIndex([]ghdocs.Result{
			{Entry: entry("tags", "nav.md", "Nav").WithContent("The nav tag lists pages."), Score: 3},
		})})

		cmd := &main.SearchCmd{Query: []string{"nav"}, Source: "docs", Limit: 10, JSON: true}
		require.NoError(t, cmd.Run(deps))

		var got []map[string]any
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "tags:nav.md", got[0]["id"])
		assert.Equal(t, "Nav", got[0]["title"])
		assert.Equal(t, 3.0, got[0]["score"])
		assert.Equal(t, "The nav tag lists pages.", got[0]["snippet"])
	})
}
