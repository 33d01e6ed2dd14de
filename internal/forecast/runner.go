package forecast

import (
	"context"
	"fmt"
	"log/slog"

	"fmcgcli/internal/dataset"
	"fmcgcli/internal/timeseries"
)

// Default forecasting parameters.
const (
	DefaultHorizon   = 12
	DefaultTrainFrac = 0.8
)

// Options configures a forecasting run.
type Options struct {
	// Horizon is the number of future months to forecast beyond the end
	// of the series.
	Horizon int

	// Category restricts the series to one product type; empty means the
	// whole market.
	Category string

	// TrainFrac is the chronological train/test split fraction.
	TrainFrac float64
}

// DefaultOptions returns the standard run configuration.
func DefaultOptions() Options {
	return Options{Horizon: DefaultHorizon, TrainFrac: DefaultTrainFrac}
}

// RunResult bundles everything a forecasting run produces.
type RunResult struct {
	Series        timeseries.Series
	Test          timeseries.Series
	Decomposition *timeseries.Decomposition

	SARIMA   ModelResult
	Additive ModelResult
	Ensemble *EnsembleResult

	// BestModel is the minimum-MAPE entry among the seasonal model, the
	// additive model, and the weighted ensemble.
	BestModel string
	BestMAPE  float64
}

// Run executes the forecasting pipeline: monthly aggregation, seasonal
// decomposition, both model fits, and ensembling. Model failures are
// recorded and logged, never propagated; only an unusably short series
// is an error.
func Run(ctx context.Context, ds *dataset.Dataset, opts Options, logger *slog.Logger) (RunResult, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Horizon <= 0 {
		opts.Horizon = DefaultHorizon
	}
	if opts.TrainFrac <= 0 || opts.TrainFrac >= 1 {
		opts.TrainFrac = DefaultTrainFrac
	}

	series := timeseries.Monthly(ds, opts.Category)
	if series.Len() < 6 {
		return RunResult{}, fmt.Errorf("insufficient monthly observations for forecasting: %d", series.Len())
	}

	logger.InfoContext(ctx, "starting forecasting run",
		"months", series.Len(),
		"category", opts.Category,
		"horizon", opts.Horizon,
	)

	result := RunResult{Series: series}

	if decomp, err := timeseries.Decompose(series); err != nil {
		logger.WarnContext(ctx, "seasonal decomposition failed", "error", err)
	} else {
		result.Decomposition = &decomp
		logger.InfoContext(ctx, "seasonal decomposition",
			"model", decomp.Model,
			"trend_slope", decomp.TrendSlope,
			"seasonality_strength", decomp.SeasonalityStrength,
		)
	}

	train, test := series.Split(opts.TrainFrac)
	result.Test = test

	result.SARIMA = FitSARIMA(ctx, train, test, opts.Horizon, logger)
	if !result.SARIMA.Ok() {
		logger.WarnContext(ctx, "SARIMA model unavailable", "error", result.SARIMA.Err)
	}

	result.Additive = FitAdditive(ctx, train, test, opts.Horizon, logger)
	if !result.Additive.Ok() {
		logger.WarnContext(ctx, "additive model unavailable", "error", result.Additive.Err)
	}

	if result.SARIMA.Ok() && result.Additive.Ok() {
		ensemble, err := Combine(result.SARIMA, result.Additive, test)
		if err != nil {
			logger.WarnContext(ctx, "ensembling skipped", "error", err)
		} else {
			result.Ensemble = &ensemble
		}
	}

	result.BestModel, result.BestMAPE = bestModel(result)
	if result.BestModel != "" {
		logger.InfoContext(ctx, "forecasting run completed",
			"best_model", result.BestModel,
			"best_mape", result.BestMAPE,
		)
	}

	return result, nil
}

// bestModel selects the minimum MAPE among the successful models and the
// weighted ensemble.
func bestModel(r RunResult) (string, float64) {
	best := ""
	bestMAPE := 0.0

	consider := func(name string, mape float64) {
		if best == "" || mape < bestMAPE {
			best = name
			bestMAPE = mape
		}
	}

	if r.SARIMA.Ok() {
		consider(ModelSARIMA, r.SARIMA.Metrics.MAPE)
	}
	if r.Additive.Ok() {
		consider(ModelAdditive, r.Additive.Metrics.MAPE)
	}
	if r.Ensemble != nil {
		consider(ModelEnsemble, r.Ensemble.WeightedMetrics.MAPE)
	}

	return best, bestMAPE
}
