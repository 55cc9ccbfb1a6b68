package main_test

import (
	"bytes"
	"context"
	"time"

	"github.com/fwojciec/ghdocs"
	main "github.com/fwojciec/ghdocs/cmd/ghdocs"
	"github.com/fwojciec/ghdocs/mock"
)

// testDeps returns Dependencies whose catalog serves the given indexes for
// the default sources.
func testDeps(indexes map[string]*mock.IndexService) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cfg := ghdocs.DefaultConfig("/tmp/ghdocs-test")
	catalog := ghdocs.NewCatalog(cfg.Sources, func(src ghdocs.Source) (ghdocs.IndexService, error) {
		index, ok := indexes[src.Name]
		if !ok {
			return &mock.IndexService{
				ExistsFn: func(_ context.Context) (bool, error) { return false, nil },
				SearchFn: func(_ context.Context, _ string) ([]ghdocs.Result, error) {
					return nil, ghdocs.Errorf(ghdocs.ENOINDEX, "no documentation index for %s", src.Name)
				},
				RebuildWithContentFn: func(_ context.Context) error {
					return ghdocs.Errorf(ghdocs.ENOINDEX, "no documentation index for %s", src.Name)
				},
			}, nil
		}
		return index, nil
	})
	return &main.Dependencies{
		Ctx:     context.Background(),
		Stdout:  stdout,
		Stderr:  stderr,
		Catalog: catalog,
	}, stdout, stderr
}

func entry(collection, filename, title string) ghdocs.Entry {
	return ghdocs.Entry{
		Collection:  collection,
		Filename:    filename,
		Title:       title,
		SourceURL:   "https://github.com/statamic/docs/blob/master/content/collections/" + collection + "/" + filename,
		LastUpdated: time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC),
	}
}
