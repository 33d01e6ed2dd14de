package timeseries

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fmcgcli/internal/dataset"
)

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func sale(productID, category string, date time.Time, revenue float64) dataset.Sale {
	return dataset.Sale{
		Transaction: dataset.Transaction{
			ProductID: productID,
			Date:      date,
			Revenue:   revenue,
		},
		Type: category,
	}
}

func TestMonthly(t *testing.T) {
	ds := &dataset.Dataset{Sales: []dataset.Sale{
		sale("P001", "Noodle", time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), 100),
		sale("P001", "Noodle", time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC), 50),
		sale("P002", "Tea", time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC), 200),
		sale("P001", "Noodle", time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC), 75),
	}}

	s := Monthly(ds, "")
	require.Equal(t, 3, s.Len())
	assert.Equal(t, []time.Time{month(2025, 1), month(2025, 2), month(2025, 3)}, s.Months)
	assert.Equal(t, []float64{150, 200, 75}, s.Values)

	noodle := Monthly(ds, "Noodle")
	require.Equal(t, 2, noodle.Len())
	assert.Equal(t, []float64{150, 75}, noodle.Values)

	empty := Monthly(ds, "Snack")
	assert.Equal(t, 0, empty.Len())
}

func TestSplit(t *testing.T) {
	s := Series{
		Months: []time.Time{month(2025, 1), month(2025, 2), month(2025, 3), month(2025, 4), month(2025, 5)},
		Values: []float64{1, 2, 3, 4, 5},
	}

	train, test := s.Split(0.8)
	assert.Equal(t, []float64{1, 2, 3, 4}, train.Values)
	assert.Equal(t, []float64{5}, test.Values)

	// The split is chronological: the test suffix follows the train prefix.
	assert.True(t, train.Months[train.Len()-1].Before(test.Months[0]))

	all, none := s.Split(1.0)
	assert.Equal(t, 5, all.Len())
	assert.Equal(t, 0, none.Len())
}

func TestFutureMonths(t *testing.T) {
	s := Series{
		Months: []time.Time{month(2025, 11), month(2025, 12)},
		Values: []float64{1, 2},
	}

	future := s.FutureMonths(3)
	require.Len(t, future, 3)
	assert.Equal(t, month(2026, 1), future[0])
	assert.Equal(t, month(2026, 2), future[1])
	assert.Equal(t, month(2026, 3), future[2])

	assert.Empty(t, Series{}.FutureMonths(3))
}
