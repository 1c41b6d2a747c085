package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var reportSave bool

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize recorded quality and coverage metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		sink, err := initSink(ctx)
		if err != nil {
			return err
		}
		defer sink.Close()

		quality, err := sink.Quality(ctx)
		if err != nil {
			return eris.Wrap(err, "quality report")
		}
		coverage, err := sink.Coverage(ctx)
		if err != nil {
			return eris.Wrap(err, "coverage report")
		}

		report := map[string]any{
			"generated_at": time.Now().UTC().Format(time.RFC3339),
			"quality":      quality,
			"coverage":     coverage,
		}

		if reportSave {
			path, err := saveReport(report)
			if err != nil {
				return err
			}
			zap.L().Info("report saved", zap.String("path", path))
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	},
}

func saveReport(report map[string]any) (string, error) {
	if err := os.MkdirAll(cfg.Metrics.ReportDir, 0o755); err != nil {
		return "", eris.Wrap(err, "create report dir")
	}
	path := filepath.Join(cfg.Metrics.ReportDir,
		"report-"+time.Now().UTC().Format("20060102-150405")+".json")

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", eris.Wrap(err, "marshal report")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", eris.Wrap(err, "write report")
	}
	return path, nil
}

func init() {
	reportCmd.Flags().BoolVar(&reportSave, "save", false, "also write the report to the report directory")
	rootCmd.AddCommand(reportCmd)
}
