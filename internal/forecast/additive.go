package forecast

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aouyang1/go-forecaster/forecast"
	"github.com/aouyang1/go-forecaster/timedataset"
	"gonum.org/v1/gonum/stat"

	"fmcgcli/internal/timeseries"
)

// confidenceZ is the z-score for the ~95% residual-based uncertainty band.
const confidenceZ = 1.96

// FitAdditive fits the additive trend/seasonality model on the training
// prefix and produces point forecasts with residual-based uncertainty
// bounds for the test horizon, plus a future-horizon forecast. Any fit or
// prediction error becomes a structured failure result.
func FitAdditive(ctx context.Context, train, test timeseries.Series, horizon int, logger *slog.Logger) ModelResult {
	if logger == nil {
		logger = slog.Default()
	}

	model, err := forecast.New(forecast.NewDefaultOptions())
	if err != nil {
		return failedResult(ModelAdditive, fmt.Errorf("initialize additive model: %w", err))
	}

	trainData, err := timedataset.NewUnivariateDataset(train.Months, train.Values)
	if err != nil {
		return failedResult(ModelAdditive, fmt.Errorf("build training dataset: %w", err))
	}

	if err := model.Fit(trainData); err != nil {
		return failedResult(ModelAdditive, fmt.Errorf("fit additive model: %w", err))
	}

	testForecast, err := model.Predict(test.Months)
	if err != nil {
		return failedResult(ModelAdditive, fmt.Errorf("predict test horizon: %w", err))
	}

	futureForecast, err := model.Predict(test.FutureMonths(horizon))
	if err != nil {
		return failedResult(ModelAdditive, fmt.Errorf("predict future horizon: %w", err))
	}

	// Uncertainty band from the in-sample residual spread, in the manner
	// of the residual-window bound construction.
	_, residStdDev := stat.MeanStdDev(model.Residuals(), nil)
	band := confidenceZ * residStdDev

	lower := make([]float64, len(testForecast))
	upper := make([]float64, len(testForecast))
	for i, v := range testForecast {
		lower[i] = v - band
		upper[i] = v + band
	}

	return ModelResult{
		Name:            ModelAdditive,
		TestForecast:    testForecast,
		FutureForecast:  futureForecast,
		ConfidenceLower: lower,
		ConfidenceUpper: upper,
		Metrics:         timeseries.Evaluate(test.Values, testForecast),
	}
}
