package mock

import (
	"context"

	"github.com/fwojciec/ghdocs"
)

var (
	_ ghdocs.Lister        = (*Lister)(nil)
	_ ghdocs.Downloader    = (*Downloader)(nil)
	_ ghdocs.DomainLimiter = (*DomainLimiter)(nil)
)

// Lister is a mock implementation of ghdocs.Lister.
type Lister struct {
	ListFilesFn func(ctx context.Context, src ghdocs.Source, collection string) ([]ghdocs.RemoteFile, error)
}

func (l *Lister) ListFiles(ctx context.Context, src ghdocs.Source, collection string) ([]ghdocs.RemoteFile, error) {
	return l.ListFilesFn(ctx, src, collection)
}

// Downloader is a mock implementation of ghdocs.Downloader.
type Downloader struct {
	DownloadFn func(ctx context.Context, url string) (string, error)
}

func (d *Downloader) Download(ctx context.Context, url string) (string, error) {
	return d.DownloadFn(ctx, url)
}

// DomainLimiter is a mock implementation of ghdocs.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return d.WaitFn(ctx, domain)
}
