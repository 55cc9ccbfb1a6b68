package mock

import (
	"context"

	"github.com/fwojciec/ghdocs"
)

var _ ghdocs.IndexService = (*IndexService)(nil)

// IndexService is a mock implementation of ghdocs.IndexService.
type IndexService struct {
	AllFn                func(ctx context.Context) ([]ghdocs.Entry, error)
	FindFn               func(ctx context.Context, collection, filename string) (ghdocs.Entry, error)
	FindByIDFn           func(ctx context.Context, id string) (ghdocs.Entry, error)
	SearchFn             func(ctx context.Context, query string) ([]ghdocs.Result, error)
	SaveFn               func(ctx context.Context, entry ghdocs.Entry, content string) error
	SaveManyFn           func(ctx context.Context, entries []ghdocs.Entry) error
	ExistsFn             func(ctx context.Context) (bool, error)
	CountFn              func(ctx context.Context) (int, error)
	RebuildWithContentFn func(ctx context.Context) error
}

func (s *IndexService) All(ctx context.Context) ([]ghdocs.Entry, error) {
	return s.AllFn(ctx)
}

func (s *IndexService) Find(ctx context.Context, collection, filename string) (ghdocs.Entry, error) {
	return s.FindFn(ctx, collection, filename)
}

func (s *IndexService) FindByID(ctx context.Context, id string) (ghdocs.Entry, error) {
	return s.FindByIDFn(ctx, id)
}

func (s *IndexService) Search(ctx context.Context, query string) ([]ghdocs.Result, error) {
	return s.SearchFn(ctx, query)
}

func (s *IndexService) Save(ctx context.Context, entry ghdocs.Entry, content string) error {
	return s.SaveFn(ctx, entry, content)
}

func (s *IndexService) SaveMany(ctx context.Context, entries []ghdocs.Entry) error {
	return s.SaveManyFn(ctx, entries)
}

func (s *IndexService) Exists(ctx context.Context) (bool, error) {
	return s.ExistsFn(ctx)
}

func (s *IndexService) Count(ctx context.Context) (int, error) {
	return s.CountFn(ctx)
}

func (s *IndexService) RebuildWithContent(ctx context.Context) error {
	return s.RebuildWithContentFn(ctx)
}
