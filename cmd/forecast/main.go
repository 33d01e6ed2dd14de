// Command forecast runs only the revenue forecasting stage: monthly
// aggregation, seasonal decomposition, the two forecast models, and the
// ensemble, printing the comparison without the launch analysis.
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
)

func main() {
	dataDir := flag.String("data", "", "directory containing the input CSV files (defaults to config)")
	horizon := flag.Int("horizon", 0, "forecast horizon in months (defaults to config)")
	category := flag.String("category", "", "restrict the series to one product category")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger()
	slog.SetDefault(logger)

	if *dataDir != "" {
		cfg.Paths.DataDir = *dataDir
	}
	if *horizon > 0 {
		cfg.Analysis.ForecastHorizon = *horizon
	}
	if *category != "" {
		cfg.Analysis.Category = *category
	}

	ctx := context.Background()

	ds, err := dataset.Load(ctx, cfg.Paths.DataDir, logger)
	if err != nil {
		logger.Error("Failed to load dataset", "dir", cfg.Paths.DataDir, "error", err)
		os.Exit(1)
	}

	opts := forecast.DefaultOptions()
	opts.Horizon = cfg.Analysis.ForecastHorizon
	opts.Category = cfg.Analysis.Category

	run, err := forecast.Run(ctx, ds, opts, logger)
	if err != nil {
		logger.Error("Forecasting failed", "error", err)
		os.Exit(1)
	}

	printRun(run)
}

func printRun(run forecast.RunResult) {
	fmt.Printf("Series: %d monthly observations (%s to %s)\n",
		run.Series.Len(),
		run.Series.Months[0].Format("2006-01"),
		run.Series.Months[run.Series.Len()-1].Format("2006-01"))

	if d := run.Decomposition; d != nil {
		fmt.Printf("Decomposition: %s model, period %d, trend slope %.2f/month, seasonality strength %.2f\n",
			d.Model, d.Period, d.TrendSlope, d.SeasonalityStrength)
	}

	printModel(run.SARIMA)
	printModel(run.Additive)

	if e := run.Ensemble; e != nil {
		fmt.Printf("%s: MAPE %.2f%% (simple %.2f%%), weights %.2f / %.2f\n",
			forecast.ModelEnsemble,
			e.WeightedMetrics.MAPE, e.SimpleMetrics.MAPE,
			e.WeightA, e.WeightB)
	}

	if run.BestModel != "" {
		fmt.Printf("Best model: %s (MAPE %.2f%%)\n", run.BestModel, run.BestMAPE)
	}

	if run.SARIMA.Ok() && len(run.SARIMA.FutureForecast) > 0 {
		fmt.Println("\nFuture forecast (seasonal model):")
		months := run.Series.FutureMonths(len(run.SARIMA.FutureForecast))
		for i, v := range run.SARIMA.FutureForecast {
			fmt.Printf("  %s: %.2f\n", months[i].Format("2006-01"), v)
		}
	}
}

func printModel(r forecast.ModelResult) {
	if !r.Ok() {
		fmt.Printf("%s: failed (%v)\n", r.Name, r.Err)
		return
	}
	fmt.Printf("%s: MAPE %.2f%%, RMSE %.2f, MAE %.2f\n",
		r.Name, r.Metrics.MAPE, r.Metrics.RMSE, r.Metrics.MAE)
	if r.Stationary != nil {
		fmt.Printf("  training series stationary: %t\n", *r.Stationary)
	}
}
