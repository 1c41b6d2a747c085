// Package metrics persists pipeline measurements to a queryable store.
// Recording is fire-and-forget: callers log failures and move on, a sink
// error never affects pipeline outcome.
package metrics

import (
	"context"
	"time"

	"github.com/bradyp19/market-intel/internal/model"
)

// ScrapeEvent measures one fetch operation.
type ScrapeEvent struct {
	Company       string
	URL           string
	Status        string // "success" or "error"
	Latency       time.Duration
	ContentLength int
	ErrorMessage  string
}

// SummaryEvent measures one summary generation.
type SummaryEvent struct {
	Company      string
	URL          string
	Latency      time.Duration
	Confidence   float64
	NeedsReview  bool
	ErrorMessage string
}

// Sink receives pipeline events.
type Sink interface {
	RecordScrape(ctx context.Context, ev ScrapeEvent) error
	RecordSummary(ctx context.Context, ev SummaryEvent) error
	RecordCoverage(ctx context.Context, cov model.Coverage) error
	Close() error
}

// Nop discards every event. Used when no metrics store is configured.
type Nop struct{}

func (Nop) RecordScrape(context.Context, ScrapeEvent) error { return nil }

func (Nop) RecordSummary(context.Context, SummaryEvent) error { return nil }

func (Nop) RecordCoverage(context.Context, model.Coverage) error { return nil }

func (Nop) Close() error { return nil }
