// Package http provides an HTTP-based implementation of ghdocs.Downloader
// for retrieving raw markdown files.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/ghdocs"
)

// DefaultTimeout is the default timeout for HTTP requests.
const DefaultTimeout = 30 * time.Second

// MaxFileSize bounds a single download. Documentation pages are far smaller.
const MaxFileSize = 10 << 20

// DefaultUserAgent identifies the tool to GitHub.
const DefaultUserAgent = "ghdocs"

// Ensure Downloader implements ghdocs.Downloader at compile time.
var _ ghdocs.Downloader = (*Downloader)(nil)

// Downloader retrieves file content using plain HTTP GET requests.
type Downloader struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	token     string
}

// Option configures a Downloader.
type Option func(*Downloader)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultTimeout if not specified.
func WithTimeout(timeout time.Duration) Option {
	return func(d *Downloader) {
		d.timeout = timeout
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(d *Downloader) {
		d.userAgent = ua
	}
}

// WithToken sends token as a bearer credential, which raises GitHub rate
// limits and allows private repositories.
func WithToken(token string) Option {
	return func(d *Downloader) {
		d.token = token
	}
}

// NewDownloader creates a new HTTP-based Downloader.
func NewDownloader(opts ...Option) *Downloader {
	d := &Downloader{
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(d)
	}

	d.client = &http.Client{
		Timeout: d.timeout,
	}

	return d
}

// Download retrieves the body at url.
func (d *Downloader) Download(ctx context.Context, url string) (string, error) {
	if url == "" {
		return "", ghdocs.Errorf(ghdocs.EINVALID, "download url required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", d.userAgent)
	if d.token != "" {
		req.Header.Set("Authorization", "Bearer "+d.token)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", ghdocs.Errorf(ghdocs.ENOTFOUND, "file not found at %s", url)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxFileSize+1))
	if err != nil {
		return "", err
	}
	if len(body) > MaxFileSize {
		return "", ghdocs.Errorf(ghdocs.EINVALID, "file at %s exceeds %d bytes", url, MaxFileSize)
	}

	return string(body), nil
}
