// Package github lists documentation files through the GitHub contents API.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/fwojciec/ghdocs"
	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// Ensure Lister implements ghdocs.Lister at compile time.
var _ ghdocs.Lister = (*Lister)(nil)

// Lister lists collection directories of a source repository.
type Lister struct {
	client *github.Client
}

// Option configures a Lister.
type Option func(*options)

type options struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

// WithToken authenticates requests, raising the API rate limit.
func WithToken(token string) Option {
	return func(o *options) {
		o.token = token
	}
}

// WithBaseURL points the client at another API endpoint, such as GitHub
// Enterprise or a test server.
func WithBaseURL(u string) Option {
	return func(o *options) {
		o.baseURL = u
	}
}

// WithHTTPClient sets the HTTP client used for unauthenticated requests.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// NewLister creates a Lister. Without a token requests are anonymous.
func NewLister(ctx context.Context, opts ...Option) (*Lister, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	httpClient := o.httpClient
	if o.token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: o.token})
		httpClient = oauth2.NewClient(ctx, ts)
	}
	client := github.NewClient(httpClient)

	if o.baseURL != "" {
		base := o.baseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, ghdocs.Errorf(ghdocs.EINVALID, "invalid GitHub API url %q", o.baseURL)
		}
		client.BaseURL = u
	}

	return &Lister{client: client}, nil
}

// ListFiles returns the items of a collection directory at the source's
// branch. Subdirectories are included so callers can count them.
func (l *Lister) ListFiles(ctx context.Context, src ghdocs.Source, collection string) ([]ghdocs.RemoteFile, error) {
	owner, repo, ok := strings.Cut(src.Repo, "/")
	if !ok || owner == "" || repo == "" {
		return nil, ghdocs.Errorf(ghdocs.EINVALID, "source %q repository must be owner/name, got %q", src.Name, src.Repo)
	}

	path := src.CollectionPath(collection)
	file, dir, resp, err := l.client.Repositories.GetContents(ctx, owner, repo, path, &github.RepositoryContentGetOptions{
		Ref: src.Branch,
	})
	if err != nil {
		var rateErr *github.RateLimitError
		if errors.As(err, &rateErr) {
			return nil, ghdocs.Errorf(ghdocs.EINTERNAL, "GitHub rate limit exceeded, resets at %s; set GITHUB_TOKEN to raise it",
				rateErr.Rate.Reset.Format("15:04"))
		}
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, ghdocs.Errorf(ghdocs.ENOTFOUND, "%s not found in %s@%s", path, src.Repo, src.Branch)
		}
		return nil, fmt.Errorf("list %s in %s: %w", path, src.Repo, err)
	}
	if file != nil {
		return nil, ghdocs.Errorf(ghdocs.EINVALID, "%s in %s is a file, not a collection directory", path, src.Repo)
	}

	files := make([]ghdocs.RemoteFile, 0, len(dir))
	for _, c := range dir {
		files = append(files, ghdocs.RemoteFile{
			Collection:  collection,
			Name:        c.GetName(),
			Path:        c.GetPath(),
			Type:        c.GetType(),
			HTMLURL:     c.GetHTMLURL(),
			DownloadURL: c.GetDownloadURL(),
		})
	}
	return files, nil
}
