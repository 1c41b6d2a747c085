package main

import (
	"context"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/bradyp19/market-intel/internal/metrics"
)

// initSink opens the configured metrics database and applies migrations.
func initSink(ctx context.Context) (*metrics.SQLiteSink, error) {
	sink, err := metrics.NewSQLite(cfg.Metrics.DatabasePath)
	if err != nil {
		return nil, eris.Wrap(err, "open metrics store")
	}
	if err := sink.Migrate(ctx); err != nil {
		sink.Close()
		return nil, eris.Wrap(err, "migrate metrics store")
	}
	return sink, nil
}

func rateLimit(perSecond float64) rate.Limit {
	if perSecond <= 0 {
		return rate.Inf
	}
	return rate.Limit(perSecond)
}
