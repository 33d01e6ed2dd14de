// Package timeseries provides the monthly revenue series the forecasting
// pipeline operates on, along with classical seasonal decomposition and
// forecast accuracy metrics.
//
// A Series is a single ordered numeric sequence indexed by calendar month,
// built from the integrated sales table. Decompose splits a series into
// trend, seasonal, and residual components and derives a trend slope and
// a seasonality strength measure. Evaluate computes the standard accuracy
// metrics (MSE, RMSE, MAE, MAPE) shared by every model and ensemble.
package timeseries
