package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/bradyp19/market-intel/internal/extract"
	"github.com/bradyp19/market-intel/internal/model"
	"github.com/bradyp19/market-intel/internal/task"
	"github.com/bradyp19/market-intel/internal/urlx"
	"github.com/bradyp19/market-intel/internal/watchlist"
)

// discover fetches each of the company's source pages and collects candidate
// announcement URLs: canonicalized, filtered, and deduplicated across
// sources. First occurrence wins, so candidate order follows source order.
func (r *Runner) discover(ctx context.Context, company watchlist.Company, wl *watchlist.Watchlist) []model.CandidateURL {
	log := zap.L().With(zap.String("company", company.Name))
	filter := urlx.NewFilter(wl.ExcludedKeywords, company.ExcludedKeywords)

	seen := make(map[string]bool)
	var out []model.CandidateURL
	for _, source := range company.Sources() {
		res := task.Run("fetch source", func() (string, error) {
			return r.fetcher.Fetch(ctx, source)
		})
		if !res.OK {
			continue
		}

		links, err := extract.Links(res.Value)
		if err != nil {
			log.Warn("pipeline: link extraction failed",
				zap.String("source", source),
				zap.Error(err))
			continue
		}

		for _, link := range links {
			canonical, err := urlx.Canonicalize(link, source)
			if err != nil {
				continue
			}
			if !filter.Accepted(canonical) || seen[canonical] {
				continue
			}
			seen[canonical] = true
			out = append(out, model.CandidateURL{Canonical: canonical, Source: source})
		}
	}

	log.Info("pipeline: discovery complete",
		zap.Int("sources", len(company.Sources())),
		zap.Int("candidates", len(out)))
	return out
}
