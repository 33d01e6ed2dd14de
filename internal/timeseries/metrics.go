package timeseries

import (
	"math"
)

// Metrics holds the forecast accuracy measures computed identically for
// every model and ensemble variant.
//
// MAPE divides by the actual values: a zero actual yields an infinite
// MAPE. That fragility is inherited from the methodology and deliberately
// not guarded here.
type Metrics struct {
	MSE  float64 `json:"mse"`
	RMSE float64 `json:"rmse"`
	MAE  float64 `json:"mae"`
	MAPE float64 `json:"mape"`
}

// Evaluate computes accuracy metrics for a forecast against actuals.
// Both slices must have the same length; the shorter length is used when
// they differ so partially aligned forecasts still evaluate.
func Evaluate(actual, forecast []float64) Metrics {
	n := len(actual)
	if len(forecast) < n {
		n = len(forecast)
	}
	if n == 0 {
		return Metrics{}
	}

	var sumSq, sumAbs, sumPct float64
	for i := 0; i < n; i++ {
		diff := actual[i] - forecast[i]
		sumSq += diff * diff
		sumAbs += math.Abs(diff)
		sumPct += math.Abs(diff / actual[i])
	}

	mse := sumSq / float64(n)
	return Metrics{
		MSE:  mse,
		RMSE: math.Sqrt(mse),
		MAE:  sumAbs / float64(n),
		MAPE: sumPct / float64(n) * 100,
	}
}
