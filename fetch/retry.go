package fetch

import (
	"context"
	"time"

	"github.com/fwojciec/ghdocs"
)

// DownloadFunc is the signature of a single download attempt.
type DownloadFunc func(ctx context.Context, url string) (string, error)

// RetryFunc is called before each retry with the attempt number about to run.
type RetryFunc func(url string, attempt int, err error)

// DefaultRetryDelays returns the backoff delays for download retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// DownloadWithRetry calls download until it succeeds, waiting delays[i]
// before retry i+1. Missing files and invalid requests are not retried.
func DownloadWithRetry(ctx context.Context, url string, download DownloadFunc, onRetry RetryFunc, delays []time.Duration) (string, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		content, err := download(ctx, url)
		if err == nil {
			return content, nil
		}
		lastErr = err

		if !retryable(err) || attempt >= maxAttempts-1 {
			break
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		if onRetry != nil {
			onRetry(url, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}

func retryable(err error) bool {
	switch ghdocs.ErrorCode(err) {
	case ghdocs.ENOTFOUND, ghdocs.EINVALID:
		return false
	}
	return true
}
