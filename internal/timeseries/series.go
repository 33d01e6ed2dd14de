package timeseries

import (
	"sort"
	"time"

	"fmcgcli/internal/dataset"
)

// Series is an ordered monthly numeric sequence. Months and Values are
// parallel slices sorted chronologically.
type Series struct {
	Months []time.Time
	Values []float64
}

// Len returns the number of monthly observations.
func (s Series) Len() int {
	return len(s.Values)
}

// Split performs a chronological train/test split at the given fraction.
// Ordering is preserved; there is no shuffling.
func (s Series) Split(trainFrac float64) (train, test Series) {
	n := int(float64(s.Len()) * trainFrac)
	if n < 0 {
		n = 0
	}
	if n > s.Len() {
		n = s.Len()
	}
	train = Series{Months: s.Months[:n], Values: s.Values[:n]}
	test = Series{Months: s.Months[n:], Values: s.Values[n:]}
	return train, test
}

// FutureMonths returns the n calendar months immediately following the
// last observation.
func (s Series) FutureMonths(n int) []time.Time {
	months := make([]time.Time, 0, n)
	if s.Len() == 0 {
		return months
	}
	last := s.Months[s.Len()-1]
	for i := 1; i <= n; i++ {
		months = append(months, last.AddDate(0, i, 0))
	}
	return months
}

// Monthly aggregates integrated sales revenue by calendar month. When
// category is non-empty only sales of that product type contribute.
// Months with no sales in the covered span are absent, matching the
// source data's granularity.
func Monthly(ds *dataset.Dataset, category string) Series {
	totals := make(map[time.Time]float64)

	for _, sale := range ds.Sales {
		if category != "" && sale.Type != category {
			continue
		}
		totals[sale.Month()] += sale.Revenue
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

	return Series{Months: months, Values: values}
}
