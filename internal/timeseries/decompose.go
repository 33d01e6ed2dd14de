package timeseries

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// DecompositionModel selects how trend and seasonality combine.
type DecompositionModel string

const (
	Additive       DecompositionModel = "additive"
	Multiplicative DecompositionModel = "multiplicative"
)

// Decomposition holds the classical seasonal decomposition of a series.
// Trend and Residual carry NaN at positions where the centered moving
// average is undefined.
type Decomposition struct {
	Model    DecompositionModel
	Period   int
	Trend    []float64
	Seasonal []float64
	Residual []float64

	// TrendSlope is the slope of a degree-1 least squares fit over the
	// defined trend points.
	TrendSlope float64

	// SeasonalityStrength is the standard deviation of the seasonal
	// component.
	SeasonalityStrength float64
}

// Decompose performs classical seasonal decomposition with a 12-month
// period. Series longer than 52 points use a multiplicative model;
// shorter series use an additive model with the period capped at half
// the series length so short series remain decomposable.
func Decompose(s Series) (Decomposition, error) {
	n := s.Len()
	if n < 4 {
		return Decomposition{}, fmt.Errorf("series too short for decomposition: %d points", n)
	}

	model := Additive
	period := 12
	if n > 52 {
		model = Multiplicative
	} else if period > n/2 {
		period = n / 2
	}
	if period < 2 {
		period = 2
	}

	trend := centeredMovingAverage(s.Values, period)

	// De-trend to isolate the seasonal pattern.
	detrended := make([]float64, n)
	for i, v := range s.Values {
		if math.IsNaN(trend[i]) {
			detrended[i] = math.NaN()
			continue
		}
		if model == Multiplicative {
			if trend[i] == 0 {
				detrended[i] = math.NaN()
			} else {
				detrended[i] = v / trend[i]
			}
		} else {
			detrended[i] = v - trend[i]
		}
	}

	indices := seasonalIndices(detrended, period, model)

	seasonal := make([]float64, n)
	for i := range seasonal {
		seasonal[i] = indices[i%period]
	}

	residual := make([]float64, n)
	for i, v := range s.Values {
		if math.IsNaN(trend[i]) {
			residual[i] = math.NaN()
			continue
		}
		if model == Multiplicative {
			denom := trend[i] * seasonal[i]
			if denom == 0 {
				residual[i] = math.NaN()
			} else {
				residual[i] = v / denom
			}
		} else {
			residual[i] = v - trend[i] - seasonal[i]
		}
	}

	return Decomposition{
		Model:               model,
		Period:              period,
		Trend:               trend,
		Seasonal:            seasonal,
		Residual:            residual,
		TrendSlope:          trendSlope(trend),
		SeasonalityStrength: stat.StdDev(seasonal, nil),
	}, nil
}

// centeredMovingAverage computes the classical centered MA used for trend
// extraction. Even periods use the standard 2xMA so the window stays
// centered on the observation.
func centeredMovingAverage(values []float64, period int) []float64 {
	n := len(values)
	trend := make([]float64, n)
	for i := range trend {
		trend[i] = math.NaN()
	}

	half := period / 2
	for i := half; i < n-half; i++ {
		var sum float64
		if period%2 == 0 {
			// Weighted window of period+1 points with half-weight ends.
			if i+half >= n {
				continue
			}
			sum = values[i-half]/2 + values[i+half]/2
			for j := i - half + 1; j < i+half; j++ {
				sum += values[j]
			}
			trend[i] = sum / float64(period)
		} else {
			for j := i - half; j <= i+half; j++ {
				sum += values[j]
			}
			trend[i] = sum / float64(period)
		}
	}

	return trend
}

// seasonalIndices averages the de-trended values per seasonal position and
// normalizes them (zero-mean for additive, unit-mean for multiplicative).
func seasonalIndices(detrended []float64, period int, model DecompositionModel) []float64 {
	sums := make([]float64, period)
	counts := make([]int, period)

	for i, v := range detrended {
		if math.IsNaN(v) {
			continue
		}
		sums[i%period] += v
		counts[i%period]++
	}

	indices := make([]float64, period)
	for i := range indices {
		if counts[i] > 0 {
			indices[i] = sums[i] / float64(counts[i])
		} else if model == Multiplicative {
			indices[i] = 1
		}
	}

	var mean float64
	for _, v := range indices {
		mean += v
	}
	mean /= float64(period)

	for i := range indices {
		if model == Multiplicative {
			if mean != 0 {
				indices[i] /= mean
			}
		} else {
			indices[i] -= mean
		}
	}

	return indices
}

// trendSlope fits a degree-1 polynomial over the defined trend points.
func trendSlope(trend []float64) float64 {
	var xs, ys []float64
	for i, v := range trend {
		if !math.IsNaN(v) {
			xs = append(xs, float64(i))
			ys = append(ys, v)
		}
	}
	if len(xs) < 2 {
		return 0
	}
	_, slope := stat.LinearRegression(xs, ys, nil, false)
	return slope
}
