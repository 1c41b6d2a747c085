// Package fetch retrieves raw page content, routing each URL to the plain
// HTTP transport or the headless-render transport by domain.
package fetch

import (
	"context"
	"net/url"
	"strings"
)

// Fetcher retrieves the raw HTML for a URL. Implementations report
// failures as errors; callers wrap them into task envelopes.
type Fetcher interface {
	Fetch(ctx context.Context, targetURL string) (string, error)
	Name() string
}

// DefaultRenderedDomains require script execution before their content is
// visible to a plain GET.
var DefaultRenderedDomains = []string{
	"snowflake.com",
	"tableau.com",
	"powerbi.microsoft.com",
}

// Dispatcher routes URLs between the plain and rendered transports. It is
// pure routing with no state beyond the domain list.
type Dispatcher struct {
	plain    Fetcher
	rendered Fetcher
	domains  []string
}

// NewDispatcher builds a Dispatcher. A nil renderedDomains falls back to
// the default list; a nil rendered fetcher routes everything to plain.
func NewDispatcher(plain, rendered Fetcher, renderedDomains []string) *Dispatcher {
	if renderedDomains == nil {
		renderedDomains = DefaultRenderedDomains
	}
	return &Dispatcher{plain: plain, rendered: rendered, domains: renderedDomains}
}

// Fetch retrieves targetURL using the transport its host calls for.
func (d *Dispatcher) Fetch(ctx context.Context, targetURL string) (string, error) {
	return d.pick(targetURL).Fetch(ctx, targetURL)
}

// Name identifies the transport that would handle targetURL.
func (d *Dispatcher) Name() string { return "dispatcher" }

// NeedsRendering reports whether the URL's host matches the rendered-domain
// list (suffix-or-equal match on the host).
func (d *Dispatcher) NeedsRendering(targetURL string) bool {
	u, err := url.Parse(targetURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, domain := range d.domains {
		domain = strings.ToLower(domain)
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

func (d *Dispatcher) pick(targetURL string) Fetcher {
	if d.rendered != nil && d.NeedsRendering(targetURL) {
		return d.rendered
	}
	return d.plain
}
