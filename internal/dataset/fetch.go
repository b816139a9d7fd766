package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/ppiankov/salesight/internal/model"
	"github.com/ppiankov/salesight/internal/util"
)

const (
	fetchAttempts  = 3
	fetchBackoff   = time.Second
	maxRedirects   = 3
	defaultMaxSize = 64 << 20
)

// fetchSleepFunc is replaced in tests
var fetchSleepFunc = time.Sleep

// StatusError is returned for non-2xx responses
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status: %d %s", e.Code, e.Status)
}

// Fetcher downloads sales CSVs over HTTP
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
}

// NewFetcher creates a fetcher. Proxies come from the environment.
// A non-positive maxBytes uses a 64 MiB cap.
func NewFetcher(timeout time.Duration, userAgent string, maxBytes int64) *Fetcher {
	if maxBytes <= 0 {
		maxBytes = defaultMaxSize
	}
	return &Fetcher{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: util.NewTransport("", "", ""),
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
		userAgent: userAgent,
		maxBytes:  maxBytes,
	}
}

// Fetch downloads and parses the CSV at rawURL, retrying transient failures
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (model.Dataset, error) {
	var lastErr error
	for attempt := range fetchAttempts {
		if attempt > 0 {
			fetchSleepFunc(fetchBackoff << (attempt - 1))
		}

		body, err := f.fetchOnce(ctx, rawURL)
		if err == nil {
			return Parse(strings.NewReader(body))
		}
		lastErr = err
		if ctx.Err() != nil || !isRetryableFetchError(err) {
			break
		}
	}
	return nil, lastErr
}

func (f *Fetcher) fetchOnce(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/csv,text/plain;q=0.9,*/*;q=0.8")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &StatusError{Code: resp.StatusCode, Status: http.StatusText(resp.StatusCode)}
	}

	// One extra byte tells a truncated body from one that fits exactly
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > f.maxBytes {
		return "", fmt.Errorf("dataset exceeds %d bytes", f.maxBytes)
	}

	return string(body), nil
}

// isRetryableFetchError reports whether a fetch failure is worth another attempt:
// server errors, throttling, and network failures
func isRetryableFetchError(err error) bool {
	if err == nil {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code >= 500 || statusErr.Code == http.StatusTooManyRequests
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}

// IsRemote reports whether source names an HTTP(S) location
func IsRemote(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Open loads a dataset from a local path or, for http(s) sources, through f
func Open(ctx context.Context, source string, f *Fetcher) (model.Dataset, error) {
	if !IsRemote(source) {
		return Load(source)
	}
	if f == nil {
		f = NewFetcher(time.Minute, "salesight", 0)
	}

	ds, err := f.Fetch(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return ds, nil
}
