package market

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fmcgcli/internal/dataset"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func sale(productID, name, brand, category, channel, region string, d time.Time, units, revenue float64) dataset.Sale {
	return dataset.Sale{
		Transaction: dataset.Transaction{
			ProductID: productID,
			Date:      d,
			UnitsSold: units,
			Revenue:   revenue,
			Channel:   channel,
			Region:    region,
		},
		ProductName: name,
		Brand:       brand,
		Type:        category,
	}
}

func TestBuild(t *testing.T) {
	ds := &dataset.Dataset{Sales: []dataset.Sale{
		sale("P1", "Noodle Ayam", "BrandA", "Noodle", "GT", "Jakarta", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), 10, 400),
		sale("P1", "Noodle Ayam", "BrandA", "Noodle", "GT", "Jakarta", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), 10, 300),
		sale("P2", "Green Tea", "BrandB", "Tea", "MT", "Surabaya", time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), 5, 200),
		sale("P3", "Black Tea", "BrandB", "Tea", "MT", "", time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), 2, 100),
	}}

	snap := Build(context.Background(), ds, testLogger())

	assert.Equal(t, 1000.0, snap.TotalRevenue)
	assert.Equal(t, 27.0, snap.TotalUnits)
	assert.Equal(t, 4, snap.TotalTransactions)

	assert.Equal(t, 2025, snap.CurrentYear)
	assert.Equal(t, 600.0, snap.CurrentYearRevenue)
	assert.Equal(t, 400.0, snap.PrevYearRevenue)
	assert.InDelta(t, 50.0, snap.YoYGrowthPct, 1e-9)

	// Shares are ordered by revenue descending.
	require.Len(t, snap.ByProduct, 3)
	assert.Equal(t, "P1", snap.ByProduct[0].Key)
	assert.Equal(t, "Noodle Ayam", snap.ByProduct[0].Name)
	assert.InDelta(t, 70.0, snap.ByProduct[0].SharePct, 1e-9)

	require.Len(t, snap.ByBrand, 2)
	assert.Equal(t, "BrandA", snap.ByBrand[0].Key)
	assert.InDelta(t, 70.0, snap.ByBrand[0].SharePct, 1e-9)
	assert.Equal(t, "BrandB", snap.ByBrand[1].Key)
	assert.InDelta(t, 30.0, snap.ByBrand[1].SharePct, 1e-9)

	require.Len(t, snap.ByChannel, 2)
	assert.Equal(t, "GT", snap.ByChannel[0].Key)

	// Missing keys are bucketed, not dropped.
	require.Len(t, snap.ByRegion, 3)
	assert.Equal(t, "(unknown)", snap.ByRegion[2].Key)
	assert.Equal(t, 100.0, snap.ByRegion[2].Revenue)
}

func TestBuildEmptyDataset(t *testing.T) {
	snap := Build(context.Background(), &dataset.Dataset{}, testLogger())

	assert.Zero(t, snap.TotalRevenue)
	assert.Zero(t, snap.YoYGrowthPct)
	assert.Empty(t, snap.ByProduct)
}

func TestBuildNoPriorYear(t *testing.T) {
	ds := &dataset.Dataset{Sales: []dataset.Sale{
		sale("P1", "Noodle Ayam", "BrandA", "Noodle", "GT", "Jakarta", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), 10, 300),
	}}

	snap := Build(context.Background(), ds, testLogger())

	// No prior-year revenue: growth reports zero rather than dividing by it.
	assert.Zero(t, snap.YoYGrowthPct)
}
