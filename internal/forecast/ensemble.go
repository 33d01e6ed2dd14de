package forecast

import (
	"fmt"

	"fmcgcli/internal/timeseries"
)

// mapeEpsilon guards the inverse-MAPE weighting against a model that
// achieves exactly 0% MAPE.
const mapeEpsilon = 0.001

// EnsembleResult combines two fitted models' test forecasts.
type EnsembleResult struct {
	// Simple is the elementwise mean of the two test forecasts.
	Simple []float64 `json:"simple"`

	// Weighted uses inverse-MAPE weights normalized to sum to 1.
	Weighted []float64 `json:"weighted"`

	SimpleMetrics   timeseries.Metrics `json:"simple_metrics"`
	WeightedMetrics timeseries.Metrics `json:"weighted_metrics"`

	// WeightA and WeightB are the normalized weights applied to the first
	// and second model respectively.
	WeightA float64 `json:"weight_a"`
	WeightB float64 `json:"weight_b"`
}

// Combine builds simple and inverse-MAPE-weighted ensembles of two model
// results over the held-out test series. Both models must be successful
// and aligned to the same test horizon.
func Combine(a, b ModelResult, test timeseries.Series) (EnsembleResult, error) {
	if !a.Ok() || !b.Ok() {
		return EnsembleResult{}, fmt.Errorf("ensemble requires two successful models")
	}
	if len(a.TestForecast) != len(b.TestForecast) {
		return EnsembleResult{}, fmt.Errorf("forecast length mismatch: %d vs %d", len(a.TestForecast), len(b.TestForecast))
	}

	weightA := 1 / (a.Metrics.MAPE + mapeEpsilon)
	weightB := 1 / (b.Metrics.MAPE + mapeEpsilon)
	total := weightA + weightB
	weightA /= total
	weightB /= total

	n := len(a.TestForecast)
	simple := make([]float64, n)
	weighted := make([]float64, n)
	for i := 0; i < n; i++ {
		simple[i] = (a.TestForecast[i] + b.TestForecast[i]) / 2
		weighted[i] = a.TestForecast[i]*weightA + b.TestForecast[i]*weightB
	}

	return EnsembleResult{
		Simple:          simple,
		Weighted:        weighted,
		SimpleMetrics:   timeseries.Evaluate(test.Values, simple),
		WeightedMetrics: timeseries.Evaluate(test.Values, weighted),
		WeightA:         weightA,
		WeightB:         weightB,
	}, nil
}
