package metrics

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/bradyp19/market-intel/internal/model"
)

// SQLiteSink implements Sink using modernc.org/sqlite.
type SQLiteSink struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteSink{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS scraping_metrics (
	id             TEXT PRIMARY KEY,
	company        TEXT NOT NULL,
	url            TEXT NOT NULL,
	status         TEXT NOT NULL,
	latency_ms     INTEGER NOT NULL,
	content_length INTEGER NOT NULL,
	error_message  TEXT,
	recorded_at    DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS summary_metrics (
	id            TEXT PRIMARY KEY,
	company       TEXT NOT NULL,
	url           TEXT NOT NULL,
	latency_ms    INTEGER NOT NULL,
	confidence    REAL NOT NULL,
	needs_review  INTEGER NOT NULL,
	error_message TEXT,
	recorded_at   DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS coverage_metrics (
	id          TEXT PRIMARY KEY,
	company     TEXT NOT NULL,
	total       INTEGER NOT NULL,
	scraped     INTEGER NOT NULL,
	summarized  INTEGER NOT NULL,
	recorded_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_scraping_metrics_company ON scraping_metrics(company);
CREATE INDEX IF NOT EXISTS idx_summary_metrics_company ON summary_metrics(company);
CREATE INDEX IF NOT EXISTS idx_summary_metrics_confidence ON summary_metrics(confidence);
CREATE INDEX IF NOT EXISTS idx_coverage_metrics_company ON coverage_metrics(company);
`

func (s *SQLiteSink) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteSink) Close() error {
	return s.db.Close()
}

func (s *SQLiteSink) RecordScrape(ctx context.Context, ev ScrapeEvent) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO scraping_metrics (id, company, url, status, latency_ms, content_length, error_message, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), ev.Company, ev.URL, ev.Status,
		ev.Latency.Milliseconds(), ev.ContentLength, ev.ErrorMessage, time.Now().UTC(),
	)
	return eris.Wrap(err, "sqlite: insert scrape metric")
}

func (s *SQLiteSink) RecordSummary(ctx context.Context, ev SummaryEvent) error {
	needsReview := 0
	if ev.NeedsReview {
		needsReview = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO summary_metrics (id, company, url, latency_ms, confidence, needs_review, error_message, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), ev.Company, ev.URL,
		ev.Latency.Milliseconds(), ev.Confidence, needsReview, ev.ErrorMessage, time.Now().UTC(),
	)
	return eris.Wrap(err, "sqlite: insert summary metric")
}

func (s *SQLiteSink) RecordCoverage(ctx context.Context, cov model.Coverage) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO coverage_metrics (id, company, total, scraped, summarized, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), cov.Company, cov.Total, cov.Scraped, cov.Summarized, time.Now().UTC(),
	)
	return eris.Wrap(err, "sqlite: insert coverage metric")
}
