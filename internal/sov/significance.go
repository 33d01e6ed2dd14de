package sov

import (
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"fmcgcli/internal/launch"
)

// significanceLevel is the p-value threshold for flagging cannibalization
// as statistically significant.
const significanceLevel = 0.05

// testSignificance runs a two-sample mean-difference test on the monthly
// revenue of every cannibalized sibling. Siblings with fewer than two
// monthly observations in either window are skipped rather than failed.
func (e *Engine) testSignificance(l launch.Launch, rec Record) []SignificanceTest {
	preStart := l.LaunchDate.AddDate(0, -e.windowMonths, 0)
	postEnd := l.LaunchDate.AddDate(0, e.windowMonths, 0)

	var tests []SignificanceTest

	for _, target := range rec.CannibalizedProducts {
		pre := e.monthlyRevenue(target.ProductID, preStart, l.LaunchDate)
		post := e.monthlyRevenue(target.ProductID, l.LaunchDate, postEnd)

		if len(pre) < 2 || len(post) < 2 {
			continue
		}

		tStat, pValue := twoSampleTTest(pre, post)

		tests = append(tests, SignificanceTest{
			TargetProductID: target.ProductID,
			RevenueLoss:     target.RevenueLoss,
			PctChange:       target.PctChange,
			TStatistic:      tStat,
			PValue:          pValue,
			Significant:     pValue < significanceLevel,
		})
	}

	return tests
}

// monthlyRevenue sums a product's revenue per calendar month within
// [start, end), returned in month order.
func (e *Engine) monthlyRevenue(productID string, start, end time.Time) []float64 {
	totals := make(map[time.Time]float64)

	for _, s := range e.ds.Sales {
		if s.ProductID != productID || !inWindow(s.Date, start, end) {
			continue
		}
		totals[s.Month()] += s.Revenue
	}

	months := make([]time.Time, 0, len(totals))
	for m := range totals {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool {
		return months[i].Before(months[j])
	})

	values := make([]float64, len(months))
	for i, m := range months {
		values[i] = totals[m]
	}
	return values
}

// twoSampleTTest computes an independent two-sample t-test with pooled
// variance and returns the statistic and two-sided p-value from the
// Student's t distribution.
func twoSampleTTest(a, b []float64) (tStat, pValue float64) {
	n1 := float64(len(a))
	n2 := float64(len(b))

	mean1, var1 := stat.MeanVariance(a, nil)
	mean2, var2 := stat.MeanVariance(b, nil)

	df := n1 + n2 - 2
	pooled := ((n1-1)*var1 + (n2-1)*var2) / df
	denom := math.Sqrt(pooled * (1/n1 + 1/n2))

	if denom == 0 {
		// Degenerate samples with zero spread: identical means are a
		// non-result, differing means are maximally significant.
		if mean1 == mean2 {
			return 0, 1
		}
		return math.Inf(sign(mean1 - mean2)), 0
	}

	tStat = (mean1 - mean2) / denom

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	pValue = 2 * dist.CDF(-math.Abs(tStat))

	return tStat, pValue
}

func sign(x float64) int {
	if x < 0 {
		return -1
	}
	return 1
}
