// Package pipeline orchestrates a monitoring run: discover candidate URLs
// from each company's sources, extract articles, classify announcements,
// summarize, score, and retain the best records.
package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bradyp19/market-intel/internal/analyze"
	"github.com/bradyp19/market-intel/internal/classify"
	"github.com/bradyp19/market-intel/internal/config"
	"github.com/bradyp19/market-intel/internal/extract"
	"github.com/bradyp19/market-intel/internal/fetch"
	"github.com/bradyp19/market-intel/internal/format"
	"github.com/bradyp19/market-intel/internal/metrics"
	"github.com/bradyp19/market-intel/internal/model"
	"github.com/bradyp19/market-intel/internal/retain"
	"github.com/bradyp19/market-intel/internal/score"
	"github.com/bradyp19/market-intel/internal/social"
	"github.com/bradyp19/market-intel/internal/task"
	"github.com/bradyp19/market-intel/internal/watchlist"
)

// Runner executes the crawl-classify-curate pipeline for companies on the
// watchlist.
type Runner struct {
	cfg       *config.Config
	fetcher   fetch.Fetcher
	extractor extract.Extractor
	analyzer  analyze.Analyzer
	scorer    *score.Scorer
	store     *retain.Store
	sink      metrics.Sink
	monitor   social.Monitor
}

// New creates a Runner with all dependencies. A nil sink or monitor degrades
// to the no-op implementation.
func New(
	cfg *config.Config,
	fetcher fetch.Fetcher,
	extractor extract.Extractor,
	analyzer analyze.Analyzer,
	scorer *score.Scorer,
	store *retain.Store,
	sink metrics.Sink,
	monitor social.Monitor,
) *Runner {
	if sink == nil {
		sink = metrics.Nop{}
	}
	if monitor == nil {
		monitor = social.Disabled{}
	}
	return &Runner{
		cfg:       cfg,
		fetcher:   fetcher,
		extractor: extractor,
		analyzer:  analyzer,
		scorer:    scorer,
		store:     store,
		sink:      sink,
		monitor:   monitor,
	}
}

// Result is one company's outcome: the accepted summaries in acceptance
// order (which may exceed the retention cap) plus the run's coverage
// counters.
type Result struct {
	Summaries []model.Summary `json:"summaries"`
	Coverage  model.Coverage  `json:"coverage"`
}

// RunAll monitors every company on the watchlist, a bounded number at a
// time. Per-company failures are logged and reported as empty coverage, they
// never abort the run.
func (r *Runner) RunAll(ctx context.Context, wl *watchlist.Watchlist) []Result {
	results := make([]Result, len(wl.Companies))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Pipeline.MaxConcurrentCompanies)
	for i, company := range wl.Companies {
		g.Go(func() error {
			summaries, cov, err := r.Run(gCtx, company, wl)
			if err != nil {
				zap.L().Error("pipeline: company run failed",
					zap.String("company", company.Name),
					zap.Error(err))
				results[i] = Result{Coverage: model.Coverage{Company: company.Name}}
				return nil
			}
			results[i] = Result{Summaries: summaries, Coverage: cov}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Run monitors a single company: previous retained records for it are
// cleared, then every stage runs to completion and coverage for the run is
// recorded. The returned summaries are every accepted announcement's
// summary, independent of what retention later keeps.
func (r *Runner) Run(ctx context.Context, company watchlist.Company, wl *watchlist.Watchlist) ([]model.Summary, model.Coverage, error) {
	log := zap.L().With(zap.String("company", company.Name))
	log.Info("pipeline: starting run")

	r.store.Reset(company.Name)

	candidates := r.discover(ctx, company, wl)
	cov := model.Coverage{Company: company.Name, Total: len(candidates)}

	articles := r.extractAll(ctx, company.Name, candidates, &cov)
	announcements := r.classifyAll(articles, company, wl)

	var accepted []model.Summary
	for _, ann := range announcements {
		summary, admitted := r.curate(ctx, ann)
		if summary != nil {
			accepted = append(accepted, *summary)
		}
		if admitted {
			cov.Summarized++
		}
	}

	if err := r.sink.RecordCoverage(ctx, cov); err != nil {
		log.Warn("pipeline: record coverage failed", zap.Error(err))
	}
	log.Info("pipeline: run complete",
		zap.Int("candidates", cov.Total),
		zap.Int("scraped", cov.Scraped),
		zap.Int("accepted", len(accepted)),
		zap.Int("retained", cov.Summarized))
	return accepted, cov, nil
}

// extractAll fetches candidate pages in parallel. Results keep candidate
// order so classification is deterministic regardless of completion order.
func (r *Runner) extractAll(ctx context.Context, company string, candidates []model.CandidateURL, cov *model.Coverage) []*model.Article {
	log := zap.L().With(zap.String("company", company))
	articles := make([]*model.Article, len(candidates))

	var mu sync.Mutex
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Pipeline.MaxConcurrentArticles)
	for i, cand := range candidates {
		g.Go(func() error {
			start := time.Now()
			article, err := r.extractor.Extract(gCtx, cand.Canonical)

			ev := metrics.ScrapeEvent{
				Company: company,
				URL:     cand.Canonical,
				Latency: time.Since(start),
			}
			switch {
			case err != nil:
				ev.Status = "error"
				ev.ErrorMessage = err.Error()
				log.Warn("pipeline: extract failed",
					zap.String("url", cand.Canonical),
					zap.Error(err))
			case article == nil:
				// Published before the cutoff; not an error, not coverage.
				return nil
			default:
				ev.Status = "success"
				ev.ContentLength = len(article.Text)
				article.Company = company
				mu.Lock()
				articles[i] = article
				cov.Scraped++
				mu.Unlock()
			}
			if sinkErr := r.sink.RecordScrape(gCtx, ev); sinkErr != nil {
				log.Warn("pipeline: record scrape failed", zap.Error(sinkErr))
			}
			return nil
		})
	}
	_ = g.Wait()

	return articles
}

// classifyAll walks extracted articles in candidate order and accepts up to
// MaxAnnouncements of them. When nothing matches the announcement vocabulary
// the most recent article is promoted so the company still yields a record.
func (r *Runner) classifyAll(articles []*model.Article, company watchlist.Company, wl *watchlist.Watchlist) []model.Announcement {
	var out []model.Announcement
	for _, article := range articles {
		if article == nil {
			continue
		}
		if len(out) >= r.cfg.Pipeline.MaxAnnouncements {
			break
		}
		if classify.IsExcluded(article.Title, article.URL) {
			continue
		}
		if classify.IsAnnouncement(article.Title+" "+article.Text, wl.Keywords, company.Keywords) {
			out = append(out, model.Announcement{Article: *article, AcceptedBy: "keyword"})
		}
	}
	if len(out) > 0 {
		return out
	}

	// The fallback pool is every successful extraction, classification
	// outcome notwithstanding: a company with any reachable content must
	// yield at least one candidate.
	var latest *model.Article
	for _, article := range articles {
		if article == nil {
			continue
		}
		if latest == nil || article.Published.After(latest.Published) {
			latest = article
		}
	}
	if latest != nil {
		zap.L().Info("pipeline: no keyword match, promoting most recent article",
			zap.String("company", company.Name),
			zap.String("url", latest.URL))
		out = append(out, model.Announcement{Article: *latest, AcceptedBy: "fallback"})
	}
	return out
}

// curate summarizes, scores, formats, and retains one announcement. It
// returns the accepted summary (nil when the summarizer produced nothing
// usable) and whether the record was admitted to the retention store.
func (r *Runner) curate(ctx context.Context, ann model.Announcement) (*model.Summary, bool) {
	log := zap.L().With(
		zap.String("company", ann.Company),
		zap.String("url", ann.URL))

	res := task.Run("summarize", func() (*model.Summary, error) {
		s := r.summarize(ctx, ann)
		if s.Summary == "" || s.Summary == analyze.NoContentSummary || s.Summary == analyze.ErrorSummary {
			return nil, eris.Errorf("unusable summary for %s", ann.URL)
		}
		return s, nil
	})
	if !res.OK {
		ev := metrics.SummaryEvent{
			Company:      ann.Company,
			URL:          ann.URL,
			Latency:      res.Elapsed,
			ErrorMessage: res.Err,
		}
		if sinkErr := r.sink.RecordSummary(ctx, ev); sinkErr != nil {
			log.Warn("pipeline: record summary failed", zap.Error(sinkErr))
		}
		return nil, false
	}
	summary := res.Value
	quality := r.scorer.Score(summary)

	ev := metrics.SummaryEvent{
		Company:      ann.Company,
		URL:          ann.URL,
		Latency:      res.Elapsed,
		Confidence:   quality.Confidence,
		NeedsReview:  quality.NeedsReview,
		ErrorMessage: quality.Reason(),
	}
	if sinkErr := r.sink.RecordSummary(ctx, ev); sinkErr != nil {
		log.Warn("pipeline: record summary failed", zap.Error(sinkErr))
	}

	if quality.NeedsReview {
		log.Warn("pipeline: low-confidence summary retained",
			zap.Float64("confidence", quality.Confidence),
			zap.String("reason", quality.Reason()))
	}

	formatted := task.Run("format", func() (string, error) {
		return format.Record(summary)
	})
	if !formatted.OK {
		return summary, false
	}

	rec := retain.Record{
		Formatted:     formatted.Value,
		Confidence:    quality.Confidence,
		EffectiveDate: summary.Date,
	}
	if err := r.store.Admit(ann.Company, rec); err != nil {
		log.Warn("pipeline: admit failed", zap.Error(err))
		return summary, false
	}
	return summary, true
}

// summarize builds the Summary for an announcement, including the optional
// social breakdown when the monitor has mentions.
func (r *Runner) summarize(ctx context.Context, ann model.Announcement) *model.Summary {
	features := r.analyzer.Features(ann.Text)
	s := &model.Summary{
		Company:  ann.Company,
		Title:    ann.Title,
		URL:      ann.URL,
		Date:     ann.Published,
		Content:  ann.Text,
		Features: features,
		Summary:  r.analyzer.Summarize(ann.Text, features),
	}

	mentions, err := r.monitor.Mentions(ctx, ann.Company, ann.Title)
	if err != nil {
		zap.L().Warn("pipeline: social monitor failed",
			zap.String("company", ann.Company),
			zap.Error(err))
	} else if len(mentions) > 0 {
		s.Social = social.Aggregate(mentions)
	}
	return s
}
