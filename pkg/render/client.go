// Package render provides a client for a headless-browser rendering
// service. The service fetches a URL, executes its scripts, and returns the
// rendered HTML — used for sites that serve empty shells to plain GETs.
package render

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
)

// Client defines the rendering service operations.
type Client interface {
	// Render fetches targetURL through the rendering service and returns
	// the rendered page.
	Render(ctx context.Context, targetURL string) (*Response, error)
}

// Response is the parsed rendering service response.
type Response struct {
	Code int  `json:"code"`
	Data Data `json:"data"`
}

// Data holds the rendered page.
type Data struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	HTML  string `json:"html"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) Option {
	return func(c *httpClient) { c.baseURL = u }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) { c.http = hc }
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a rendering service client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: "https://r.jina.ai",
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) Render(ctx context.Context, targetURL string) (*Response, error) {
	endpoint := fmt.Sprintf("%s/%s", c.baseURL, url.PathEscape(targetURL))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, eris.Wrap(err, "render: create request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Return-Format", "html")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrapf(err, "render: fetch %s", targetURL)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4*1024*1024))
	if err != nil {
		return nil, eris.Wrap(err, "render: read body")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("render: status %d for %s", resp.StatusCode, targetURL)
	}

	var parsed Response
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, eris.Wrap(err, "render: decode response")
	}
	if parsed.Data.HTML == "" {
		return nil, eris.Errorf("render: empty result for %s", targetURL)
	}
	return &parsed, nil
}
