// Package extract turns fetched pages into Articles and discovers links.
package extract

import (
	"context"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/bradyp19/market-intel/internal/fetch"
	"github.com/bradyp19/market-intel/internal/model"
)

// Extractor produces an Article from a URL. A (nil, nil) return means the
// page was deliberately dropped (e.g. by the publish-date gate), not that
// extraction failed.
type Extractor interface {
	Extract(ctx context.Context, targetURL string) (*model.Article, error)
}

// PageExtractor fetches a page and extracts title, body text, and publish
// date. The MinDate gate drops articles published before the cutoff; pages
// without a detectable date default to the fetch time.
type PageExtractor struct {
	fetcher   fetch.Fetcher
	converter *md.Converter

	// MinDate is the earliest accepted publish date. Zero disables the gate.
	MinDate time.Time
	// Now is the clock used for dateless articles; replaced in tests.
	Now func() time.Time
}

// NewPageExtractor builds a PageExtractor on top of the given fetcher.
func NewPageExtractor(fetcher fetch.Fetcher, minDate time.Time) *PageExtractor {
	return &PageExtractor{
		fetcher:   fetcher,
		converter: md.NewConverter("", true, nil),
		MinDate:   minDate,
		Now:       time.Now,
	}
}

// Extract fetches the URL and builds an Article. Returns (nil, nil) when
// the article's known publish date precedes MinDate.
func (e *PageExtractor) Extract(ctx context.Context, targetURL string) (*model.Article, error) {
	html, err := e.fetcher.Fetch(ctx, targetURL)
	if err != nil {
		return nil, eris.Wrapf(err, "extract: fetch %s", targetURL)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, eris.Wrapf(err, "extract: parse %s", targetURL)
	}

	title := extractTitle(doc)
	published, known := extractPublished(doc)
	if known && !e.MinDate.IsZero() && published.Before(e.MinDate) {
		zap.L().Debug("extract: article predates cutoff",
			zap.String("url", targetURL),
			zap.Time("published", published),
		)
		return nil, nil
	}
	if !known {
		published = e.Now().UTC()
	}

	text, err := e.bodyText(doc)
	if err != nil {
		return nil, eris.Wrapf(err, "extract: body %s", targetURL)
	}
	if strings.TrimSpace(text) == "" {
		return nil, eris.Errorf("extract: empty body for %s", targetURL)
	}

	return &model.Article{
		Title:     title,
		Text:      text,
		URL:       targetURL,
		Published: published,
	}, nil
}

func extractTitle(doc *goquery.Document) string {
	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && og != "" {
		return strings.TrimSpace(og)
	}
	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		return h1
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// dateLayouts cover the formats sites actually put in their meta tags.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

func extractPublished(doc *goquery.Document) (time.Time, bool) {
	candidates := []string{}
	for _, sel := range []string{
		`meta[property="article:published_time"]`,
		`meta[name="date"]`,
		`meta[name="pubdate"]`,
		`meta[itemprop="datePublished"]`,
	} {
		if v, ok := doc.Find(sel).Attr("content"); ok {
			candidates = append(candidates, v)
		}
	}
	if v, ok := doc.Find("time[datetime]").Attr("datetime"); ok {
		candidates = append(candidates, v)
	}

	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		for _, layout := range dateLayouts {
			if ts, err := time.Parse(layout, c); err == nil {
				return ts, true
			}
		}
	}
	return time.Time{}, false
}

// bodyText converts the article content to plain markdown text, preferring
// the <article> element and falling back to the whole body.
func (e *PageExtractor) bodyText(doc *goquery.Document) (string, error) {
	sel := doc.Find("article").First()
	if sel.Length() == 0 {
		sel = doc.Find("body").First()
	}
	if sel.Length() == 0 {
		return "", nil
	}

	html, err := goquery.OuterHtml(sel)
	if err != nil {
		return "", err
	}
	text, err := e.converter.ConvertString(html)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
