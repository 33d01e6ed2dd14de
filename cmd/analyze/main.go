// Command analyze runs the full FMCG market analysis pipeline: dataset
// loading and integration, market snapshot, launch identification and
// ranking, source-of-volume attribution, portfolio impact, revenue
// forecasting, and report generation.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"fmcgcli/internal/config"
	"fmcgcli/internal/dataset"
	"fmcgcli/internal/forecast"
	"fmcgcli/internal/impact"
	"fmcgcli/internal/launch"
	"fmcgcli/internal/market"
	"fmcgcli/internal/reports"
	"fmcgcli/internal/sov"
)

func main() {
	dataDir := flag.String("data", "", "directory containing the input CSV files (defaults to config)")
	outDir := flag.String("out", "", "output directory for reports (defaults to config)")
	lookback := flag.Int("lookback", 0, "launch lookback window in months (defaults to config)")
	topN := flag.Int("top", 0, "number of top launches to analyze (defaults to config)")
	window := flag.Int("window", 0, "pre/post attribution window in months (defaults to config)")
	horizon := flag.Int("horizon", 0, "forecast horizon in months (defaults to config)")
	category := flag.String("category", "", "restrict forecasting to one product category")
	noForecast := flag.Bool("no-forecast", false, "skip the forecasting stage")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger()
	slog.SetDefault(logger)

	applyFlagOverrides(cfg, *dataDir, *outDir, *lookback, *topN, *window, *horizon, *category)

	ctx := context.Background()

	ds, err := dataset.Load(ctx, cfg.Paths.DataDir, logger)
	if err != nil {
		logger.Error("Failed to load dataset", "dir", cfg.Paths.DataDir, "error", err)
		os.Exit(1)
	}

	quality := dataset.BuildQualityReport(ds)
	logger.InfoContext(ctx, "data quality assessed",
		"transactions", quality.TotalTransactions,
		"integrated_sales", quality.IntegratedSales,
		"duplicates", quality.DuplicateTransactions,
		"outliers", quality.RevenueOutliers)

	snapshot := market.Build(ctx, ds, logger)

	registry := launch.NewRegistry(ds, logger)
	candidates := registry.Find(cfg.Analysis.LookbackMonths)
	scored := registry.Score(ctx, candidates)
	top := registry.Top(scored, cfg.Analysis.TopLaunches)
	logger.InfoContext(ctx, "launches ranked",
		"candidates", len(candidates),
		"scored", len(scored),
		"selected", len(top))

	sovEngine := sov.NewEngine(ds, cfg.Analysis.WindowMonths, logger)
	sovResult, err := sovEngine.Execute(ctx, top)
	if err != nil {
		logger.Error("Source-of-volume analysis failed", "error", err)
		os.Exit(1)
	}

	impactEngine := impact.NewEngine(ds, cfg.Analysis.WindowMonths, logger)
	impactResult := impactEngine.Execute(ctx, top, sovResult)

	var forecastRun *forecast.RunResult
	if !*noForecast {
		opts := forecast.DefaultOptions()
		opts.Horizon = cfg.Analysis.ForecastHorizon
		opts.Category = cfg.Analysis.Category

		run, err := forecast.Run(ctx, ds, opts, logger)
		if err != nil {
			// Too little history is not fatal for the rest of the pipeline.
			logger.WarnContext(ctx, "forecasting skipped", "error", err)
		} else {
			forecastRun = &run
		}
	}

	rep := reports.NewReport(quality, snapshot, top, sovResult, impactResult, forecastRun)

	writer := reports.NewWriter(cfg.Paths.OutputDir, logger)
	if err := writer.WriteAll(ctx, rep); err != nil {
		logger.Error("Failed to write reports", "out", cfg.Paths.OutputDir, "error", err)
		os.Exit(1)
	}

	fmt.Print(reports.Summary(rep))
	logger.InfoContext(ctx, "analysis complete", "run_id", rep.RunID, "out", cfg.Paths.OutputDir)
}

// applyFlagOverrides lets command line flags override config and
// environment values for one run.
func applyFlagOverrides(cfg *config.Config, dataDir, outDir string, lookback, topN, window, horizon int, category string) {
	if dataDir != "" {
		cfg.Paths.DataDir = dataDir
	}
	if outDir != "" {
		cfg.Paths.OutputDir = outDir
	}
	if lookback > 0 {
		cfg.Analysis.LookbackMonths = lookback
	}
	if topN > 0 {
		cfg.Analysis.TopLaunches = topN
	}
	if window > 0 {
		cfg.Analysis.WindowMonths = window
	}
	if horizon > 0 {
		cfg.Analysis.ForecastHorizon = horizon
	}
	if category != "" {
		cfg.Analysis.Category = category
	}
}
