package forecast

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sartorproj/goarima/sarima"
	gostats "github.com/sartorproj/goarima/stats"
	gots "github.com/sartorproj/goarima/timeseries"

	"fmcgcli/internal/timeseries"
)

// SARIMA model order, fixed per the methodology: (1,1,1)x(1,1,1,12).
const (
	sarimaP = 1
	sarimaD = 1
	sarimaQ = 1
	sarimaM = 12
)

// FitSARIMA fits the seasonal ARIMA model on the training prefix and
// forecasts the test horizon plus the future horizon. An ADF stationarity
// test runs on the training series and is recorded as informational output.
// Any fit or prediction error becomes a structured failure result.
func FitSARIMA(ctx context.Context, train, test timeseries.Series, horizon int, logger *slog.Logger) ModelResult {
	if logger == nil {
		logger = slog.Default()
	}

	trainSeries := gots.New(train.Values)

	var stationary *bool
	if adf := gostats.ADF(trainSeries, 0); adf != nil {
		v := adf.IsStationary
		stationary = &v
		logger.DebugContext(ctx, "ADF stationarity test",
			"p_value", adf.PValue,
			"stationary", v,
		)
	}

	model := sarima.New(sarimaP, sarimaD, sarimaQ, sarimaP, sarimaD, sarimaQ, sarimaM)
	if err := model.Fit(trainSeries); err != nil {
		return failedResult(ModelSARIMA, fmt.Errorf("fit SARIMA: %w", err))
	}

	testLen := test.Len()
	forecasts, err := model.Predict(testLen + horizon)
	if err != nil {
		return failedResult(ModelSARIMA, fmt.Errorf("predict SARIMA: %w", err))
	}
	if len(forecasts) < testLen+horizon {
		return failedResult(ModelSARIMA, fmt.Errorf("short SARIMA forecast: got %d, want %d", len(forecasts), testLen+horizon))
	}

	testForecast := forecasts[:testLen]

	return ModelResult{
		Name:           ModelSARIMA,
		TestForecast:   testForecast,
		FutureForecast: forecasts[testLen:],
		Metrics:        timeseries.Evaluate(test.Values, testForecast),
		Stationary:     stationary,
	}
}
