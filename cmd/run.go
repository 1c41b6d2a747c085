package main

import (
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bradyp19/market-intel/internal/analyze"
	"github.com/bradyp19/market-intel/internal/extract"
	"github.com/bradyp19/market-intel/internal/fetch"
	"github.com/bradyp19/market-intel/internal/metrics"
	"github.com/bradyp19/market-intel/internal/pipeline"
	"github.com/bradyp19/market-intel/internal/retain"
	"github.com/bradyp19/market-intel/internal/score"
	"github.com/bradyp19/market-intel/internal/social"
	"github.com/bradyp19/market-intel/internal/watchlist"
	"github.com/bradyp19/market-intel/pkg/render"
)

var runCompany string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the monitoring pipeline over the watchlist",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		wl := watchlist.Load(cfg.Watchlist.Path)
		if runCompany != "" {
			var filtered []watchlist.Company
			for _, c := range wl.Companies {
				if strings.EqualFold(c.Name, runCompany) {
					filtered = append(filtered, c)
				}
			}
			if len(filtered) == 0 {
				return eris.Errorf("company %q not on watchlist", runCompany)
			}
			wl.Companies = filtered
		}
		if len(wl.Companies) == 0 {
			// A missing or empty watchlist degrades to a run over zero
			// companies rather than aborting.
			zap.L().Error("watchlist has no companies",
				zap.String("path", cfg.Watchlist.Path))
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode([]pipeline.Result{})
		}

		sink, err := initSink(ctx)
		if err != nil {
			return err
		}
		defer sink.Close()

		runner, err := buildRunner(sink)
		if err != nil {
			return err
		}

		results := runner.RunAll(ctx, wl)

		zap.L().Info("monitoring complete",
			zap.Int("companies", len(results)),
			zap.Int("retained", totalSummarized(results)),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	},
}

func buildRunner(sink metrics.Sink) (*pipeline.Runner, error) {
	plain := fetch.NewPlainFetcher(
		fetch.WithTimeout(time.Duration(cfg.Fetch.TimeoutSecs)*time.Second),
		fetch.WithHostRate(rateLimit(cfg.Fetch.HostRate), cfg.Fetch.HostBurst),
	)

	var rendered fetch.Fetcher
	if cfg.Render.Key != "" {
		client := render.NewClient(cfg.Render.Key, render.WithBaseURL(cfg.Render.BaseURL))
		rendered = fetch.NewRenderedFetcher(client)
	}
	dispatcher := fetch.NewDispatcher(plain, rendered, cfg.Fetch.RenderedDomains)

	minDate, err := time.Parse("2006-01-02", cfg.Pipeline.MinPublishDate)
	if err != nil {
		return nil, eris.Wrapf(err, "parse min publish date %q", cfg.Pipeline.MinPublishDate)
	}
	extractor := extract.NewPageExtractor(dispatcher, minDate)

	scorer := score.NewScorer()
	scorer.MinConfidence = cfg.Score.MinConfidence
	scorer.MinContentLength = cfg.Score.MinContentLength
	scorer.MinFeatureCount = cfg.Score.MinFeatureCount

	store := retain.NewStore(
		retain.WithCap(cfg.Retain.Cap),
		retain.WithDir(cfg.Retain.OutputDir),
	)

	return pipeline.New(cfg, dispatcher, extractor, analyze.NewRegexAnalyzer(),
		scorer, store, sink, social.Disabled{}), nil
}

func totalSummarized(results []pipeline.Result) int {
	n := 0
	for _, res := range results {
		n += res.Coverage.Summarized
	}
	return n
}

func init() {
	runCmd.Flags().StringVar(&runCompany, "company", "", "monitor a single watchlist company by name")
	rootCmd.AddCommand(runCmd)
}
