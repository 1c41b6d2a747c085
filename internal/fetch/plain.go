package fetch

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/bradyp19/market-intel/internal/resilience"
)

const (
	defaultTimeout = 30 * time.Second
	maxBodyBytes   = 2 * 1024 * 1024
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// PlainFetcher retrieves pages with a plain HTTP GET. Requests to the same
// host are rate limited for politeness.
type PlainFetcher struct {
	client *http.Client

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	perHost  rate.Limit
	burst    int
	retry    resilience.RetryConfig
}

// PlainOption configures a PlainFetcher.
type PlainOption func(*PlainFetcher)

// WithTimeout overrides the default 30s request timeout.
func WithTimeout(d time.Duration) PlainOption {
	return func(f *PlainFetcher) {
		if d > 0 {
			f.client.Timeout = d
		}
	}
}

// WithHostRate overrides the per-host request rate.
func WithHostRate(r rate.Limit, burst int) PlainOption {
	return func(f *PlainFetcher) {
		f.perHost = r
		f.burst = burst
	}
}

// WithRetry overrides the retry policy for transient failures.
func WithRetry(cfg resilience.RetryConfig) PlainOption {
	return func(f *PlainFetcher) {
		f.retry = cfg
	}
}

// NewPlainFetcher creates a PlainFetcher with sensible defaults.
func NewPlainFetcher(opts ...PlainOption) *PlainFetcher {
	f := &PlainFetcher{
		client: &http.Client{
			Timeout: defaultTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 10 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: 10 * time.Second,
				MaxIdleConnsPerHost: 10,
			},
		},
		limiters: make(map[string]*rate.Limiter),
		perHost:  rate.Limit(2),
		burst:    4,
		retry:    resilience.DefaultRetryConfig(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *PlainFetcher) Name() string { return "plain_http" }

// Fetch GETs the URL and returns the body. Transient failures (timeouts,
// 429, 5xx) are retried with backoff; other non-2xx statuses error out so
// the caller skips the URL and moves on.
func (f *PlainFetcher) Fetch(ctx context.Context, targetURL string) (string, error) {
	if err := f.wait(ctx, targetURL); err != nil {
		return "", eris.Wrap(err, "plain_http: rate wait")
	}
	return resilience.Do(ctx, f.retry, "plain_http fetch",
		func(ctx context.Context) (string, error) {
			return f.doFetch(ctx, targetURL)
		})
}

func (f *PlainFetcher) doFetch(ctx context.Context, targetURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return "", eris.Wrap(err, "plain_http: create request")
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", eris.Wrapf(err, "plain_http: fetch %s", targetURL)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", eris.Wrap(err, "plain_http: read body")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := eris.Errorf("plain_http: status %d for %s", resp.StatusCode, targetURL)
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return "", resilience.NewTransientError(statusErr, resp.StatusCode)
		}
		return "", statusErr
	}

	zap.L().Debug("plain_http: fetched",
		zap.String("url", targetURL),
		zap.Int("bytes", len(body)),
	)
	return string(body), nil
}

func (f *PlainFetcher) wait(ctx context.Context, targetURL string) error {
	u, err := url.Parse(targetURL)
	if err != nil {
		return nil // the request will fail with a better error
	}
	host := u.Hostname()

	f.mu.Lock()
	limiter, ok := f.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(f.perHost, f.burst)
		f.limiters[host] = limiter
	}
	f.mu.Unlock()

	return limiter.Wait(ctx)
}
