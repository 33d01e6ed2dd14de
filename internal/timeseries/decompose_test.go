package timeseries

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func syntheticSeries(n int, trendPerMonth, seasonalAmp float64) Series {
	months := make([]time.Time, n)
	values := make([]float64, n)
	start := month(2020, 1)
	for i := 0; i < n; i++ {
		months[i] = start.AddDate(0, i, 0)
		values[i] = 1000 + trendPerMonth*float64(i) + seasonalAmp*math.Sin(2*math.Pi*float64(i)/12)
	}
	return Series{Months: months, Values: values}
}

func TestDecomposeTooShort(t *testing.T) {
	_, err := Decompose(syntheticSeries(3, 0, 0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too short")
}

func TestDecomposeShortSeriesIsAdditive(t *testing.T) {
	d, err := Decompose(syntheticSeries(24, 10, 50))
	require.NoError(t, err)

	assert.Equal(t, Additive, d.Model)
	assert.Equal(t, 12, d.Period)
	assert.Len(t, d.Trend, 24)
	assert.Len(t, d.Seasonal, 24)
	assert.Len(t, d.Residual, 24)
}

func TestDecomposePeriodCappedForVeryShortSeries(t *testing.T) {
	d, err := Decompose(syntheticSeries(8, 5, 0))
	require.NoError(t, err)

	assert.Equal(t, Additive, d.Model)
	assert.Equal(t, 4, d.Period)
}

func TestDecomposeLongSeriesIsMultiplicative(t *testing.T) {
	d, err := Decompose(syntheticSeries(60, 10, 50))
	require.NoError(t, err)

	assert.Equal(t, Multiplicative, d.Model)
	assert.Equal(t, 12, d.Period)
}

func TestDecomposeRecoverTrend(t *testing.T) {
	d, err := Decompose(syntheticSeries(48, 10, 0))
	require.NoError(t, err)

	// A pure linear trend decomposes to roughly its slope.
	assert.InDelta(t, 10, d.TrendSlope, 1.0)
	assert.InDelta(t, 0, d.SeasonalityStrength, 2.0)
}

func TestDecomposeSeasonalSignal(t *testing.T) {
	flat, err := Decompose(syntheticSeries(48, 0, 0))
	require.NoError(t, err)
	seasonal, err := Decompose(syntheticSeries(48, 0, 200))
	require.NoError(t, err)

	assert.Greater(t, seasonal.SeasonalityStrength, flat.SeasonalityStrength)
}

func TestDecomposeTrendEdgesAreNaN(t *testing.T) {
	d, err := Decompose(syntheticSeries(30, 5, 0))
	require.NoError(t, err)

	// The centered moving average is undefined at the series edges.
	assert.True(t, math.IsNaN(d.Trend[0]))
	assert.True(t, math.IsNaN(d.Trend[len(d.Trend)-1]))
	assert.False(t, math.IsNaN(d.Trend[len(d.Trend)/2]))
}
