package forecast

import (
	"fmcgcli/internal/timeseries"
)

// Model names used in results and reports.
const (
	ModelSARIMA   = "sarima"
	ModelAdditive = "additive"
	ModelEnsemble = "weighted_ensemble"
)

// ModelResult is the outcome of fitting one forecast model: either a
// forecast payload or a structured failure reason. Callers check Ok()
// instead of probing for populated fields.
type ModelResult struct {
	Name string `json:"name"`

	// TestForecast is aligned to the held-out test suffix.
	TestForecast []float64 `json:"test_forecast"`

	// FutureForecast extends beyond the end of the full series.
	FutureForecast []float64 `json:"future_forecast"`

	// Optional uncertainty bounds aligned to TestForecast. Only the
	// additive model produces them.
	ConfidenceLower []float64 `json:"confidence_lower,omitempty"`
	ConfidenceUpper []float64 `json:"confidence_upper,omitempty"`

	Metrics timeseries.Metrics `json:"metrics"`

	// Stationary records the ADF test outcome on the training series.
	// Informational only; it does not alter the model order. SARIMA only.
	Stationary *bool `json:"stationary,omitempty"`

	// Err is the structured failure reason when the fit or prediction
	// failed. All other fields are zero in that case.
	Err error `json:"-"`
}

// Ok reports whether the model produced a usable forecast.
func (r ModelResult) Ok() bool {
	return r.Err == nil
}

func failedResult(name string, err error) ModelResult {
	return ModelResult{Name: name, Err: err}
}
