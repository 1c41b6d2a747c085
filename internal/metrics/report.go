package metrics

import (
	"context"

	"github.com/rotisserie/eris"
)

// LowConfidenceEntry identifies a summary flagged by the quality report.
type LowConfidenceEntry struct {
	Company    string  `json:"company"`
	URL        string  `json:"url"`
	Confidence float64 `json:"confidence"`
}

// QualityReport aggregates summary confidence across all recorded runs.
type QualityReport struct {
	TotalSummaries int                  `json:"total_summaries"`
	AvgConfidence  float64              `json:"avg_confidence"`
	NeedsReview    int                  `json:"needs_review"`
	LowConfidence  []LowConfidenceEntry `json:"low_confidence"`
}

// CompanyCoverage reports scrape and summary success rates for one company,
// computed from its most recent coverage row.
type CompanyCoverage struct {
	Company         string  `json:"company"`
	Total           int     `json:"total"`
	Scraped         int     `json:"scraped"`
	Summarized      int     `json:"summarized"`
	ScrapeCoverage  float64 `json:"scrape_coverage"`
	SummaryCoverage float64 `json:"summary_coverage"`
}

// LowConfidenceThreshold marks summaries worth a second look even when they
// cleared the review gate.
const LowConfidenceThreshold = 0.7

// Quality builds a QualityReport from the summary_metrics table.
func (s *SQLiteSink) Quality(ctx context.Context) (*QualityReport, error) {
	report := &QualityReport{LowConfidence: []LowConfidenceEntry{}}

	row := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(AVG(confidence), 0), COALESCE(SUM(needs_review), 0) FROM summary_metrics`)
	if err := row.Scan(&report.TotalSummaries, &report.AvgConfidence, &report.NeedsReview); err != nil {
		return nil, eris.Wrap(err, "sqlite: quality aggregate")
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT company, url, confidence FROM summary_metrics WHERE confidence < ? ORDER BY confidence ASC`,
		LowConfidenceThreshold)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: quality low-confidence query")
	}
	defer rows.Close()

	for rows.Next() {
		var entry LowConfidenceEntry
		if err := rows.Scan(&entry.Company, &entry.URL, &entry.Confidence); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan low-confidence row")
		}
		report.LowConfidence = append(report.LowConfidence, entry)
	}
	return report, eris.Wrap(rows.Err(), "sqlite: quality rows")
}

// Coverage builds per-company coverage from the latest coverage_metrics row
// of each company.
func (s *SQLiteSink) Coverage(ctx context.Context) ([]CompanyCoverage, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT company, total, scraped, summarized FROM coverage_metrics
		WHERE id IN (
			SELECT id FROM coverage_metrics AS c
			WHERE recorded_at = (SELECT MAX(recorded_at) FROM coverage_metrics WHERE company = c.company)
		)
		ORDER BY company`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: coverage query")
	}
	defer rows.Close()

	var out []CompanyCoverage
	for rows.Next() {
		var cov CompanyCoverage
		if err := rows.Scan(&cov.Company, &cov.Total, &cov.Scraped, &cov.Summarized); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan coverage row")
		}
		if cov.Total > 0 {
			cov.ScrapeCoverage = float64(cov.Scraped) / float64(cov.Total)
			cov.SummaryCoverage = float64(cov.Summarized) / float64(cov.Total)
		}
		out = append(out, cov)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: coverage rows")
}
