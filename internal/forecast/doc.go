// Package forecast fits monthly revenue models and combines them into an
// ensemble.
//
// Two models are fitted on the chronological 80% training prefix of the
// series: a seasonal ARIMA (1,1,1)x(1,1,1,12) via goarima, and an additive
// trend/seasonality model via go-forecast with residual-based uncertainty
// bounds. Each fit produces a ModelResult that carries either the forecast
// payload or a structured failure; a failed model never aborts the run.
// When both models succeed, Combine blends their test forecasts by
// simple and inverse-MAPE-weighted averaging, and the best model is the
// minimum-MAPE entry among the seasonal model, the additive model, and the
// weighted ensemble.
package forecast
