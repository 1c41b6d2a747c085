package fetch

import (
	"context"

	"github.com/bradyp19/market-intel/pkg/render"
)

// RenderedFetcher fetches through the headless-render service for domains
// that serve empty shells to plain GETs.
type RenderedFetcher struct {
	client render.Client
}

// NewRenderedFetcher wraps a render service client.
func NewRenderedFetcher(client render.Client) *RenderedFetcher {
	return &RenderedFetcher{client: client}
}

func (f *RenderedFetcher) Name() string { return "rendered" }

func (f *RenderedFetcher) Fetch(ctx context.Context, targetURL string) (string, error) {
	resp, err := f.client.Render(ctx, targetURL)
	if err != nil {
		return "", err
	}
	return resp.Data.HTML, nil
}
