// Package fetcher downloads boundary data over HTTP and loads tabular
// inputs (XLSX, CSV) into row sets.
package fetcher

import (
	"context"
	"io"
	"math"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// HTTPOptions configures the HTTP fetcher.
type HTTPOptions struct {
	UserAgent  string
	Timeout    time.Duration
	MaxRetries int
}

// HTTPFetcher wraps net/http with per-host rate limiting and retry with
// jittered exponential backoff. Boundary hosts are public community
// services, so the limits err on the polite side.
type HTTPFetcher struct {
	client   *http.Client
	opts     HTTPOptions
	limiters map[string]*rate.Limiter
}

// defaultRateLimiters returns the per-host rate limiters for known
// boundary sources.
func defaultRateLimiters() map[string]*rate.Limiter {
	return map[string]*rate.Limiter{
		"overpass-api.de":           rate.NewLimiter(1, 1),
		"overpass.kumi.systems":     rate.NewLimiter(1, 1),
		"raw.githubusercontent.com": rate.NewLimiter(5, 5),
	}
}

// NewHTTPFetcher creates an HTTPFetcher with the given options.
func NewHTTPFetcher(opts HTTPOptions) *HTTPFetcher {
	if opts.Timeout == 0 {
		opts.Timeout = 20 * time.Second
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = 3
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "tagmap/1.0"
	}
	transport := &http.Transport{
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     90 * time.Second,
	}
	return &HTTPFetcher{
		client: &http.Client{
			Timeout:   opts.Timeout,
			Transport: transport,
		},
		opts:     opts,
		limiters: defaultRateLimiters(),
	}
}

func (f *HTTPFetcher) limiterFor(rawURL string) *rate.Limiter {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rate.NewLimiter(5, 5)
	}
	if lim, ok := f.limiters[u.Host]; ok {
		return lim
	}
	return rate.NewLimiter(5, 5)
}

// Get fetches the URL and returns the response body.
func (f *HTTPFetcher) Get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "fetcher: build request")
	}
	return f.do(req)
}

// Post sends a form-encoded body and returns the response body. Overpass
// expects its query language in a "data" form field.
func (f *HTTPFetcher) Post(ctx context.Context, rawURL, body string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, strings.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "fetcher: build request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return f.do(req)
}

func (f *HTTPFetcher) do(req *http.Request) ([]byte, error) {
	req.Header.Set("User-Agent", f.opts.UserAgent)

	var lastErr error
	for attempt := range f.opts.MaxRetries {
		lim := f.limiterFor(req.URL.String())
		if err := lim.Wait(req.Context()); err != nil {
			return nil, eris.Wrap(err, "fetcher: rate limiter wait")
		}

		cloned := req.Clone(req.Context())
		if req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, eris.Wrap(err, "fetcher: rewind request body")
			}
			cloned.Body = body
		}
		resp, err := f.client.Do(cloned)
		if err != nil {
			lastErr = err
			zap.L().Warn("http request failed, retrying",
				zap.String("url", req.URL.String()),
				zap.Int("attempt", attempt+1),
				zap.Error(err),
			)
			f.backoff(req.Context(), attempt)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			_ = resp.Body.Close()
			lastErr = eris.Errorf("fetcher: http %d from %s", resp.StatusCode, req.URL.String())
			zap.L().Warn("retryable status, backing off",
				zap.String("url", req.URL.String()),
				zap.Int("status", resp.StatusCode),
				zap.Int("attempt", attempt+1),
			)
			f.backoff(req.Context(), attempt)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			_ = resp.Body.Close()
			return nil, eris.Errorf("fetcher: http %d from %s", resp.StatusCode, req.URL.String())
		}

		data, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			return nil, eris.Wrap(err, "fetcher: read body")
		}
		return data, nil
	}

	return nil, eris.Wrapf(lastErr, "fetcher: all %d attempts failed for %s", f.opts.MaxRetries, req.URL.String())
}

// backoff sleeps for an exponentially increasing duration with jitter.
func (f *HTTPFetcher) backoff(ctx context.Context, attempt int) {
	base := time.Duration(math.Pow(2, float64(attempt))) * 500 * time.Millisecond
	jitter := time.Duration(rand.Int64N(int64(base / 2)))
	select {
	case <-time.After(base + jitter):
	case <-ctx.Done():
	}
}
