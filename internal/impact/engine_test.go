package impact

import (
	"context"
	"log/slog"
	"math"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fmcgcli/internal/dataset"
	"fmcgcli/internal/launch"
	"fmcgcli/internal/sov"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newLaunch(id, name, brand, category string, launched time.Time) launch.Launch {
	return launch.Launch{Product: dataset.Product{
		ProductID:   id,
		ProductName: name,
		Brand:       brand,
		Type:        category,
		LaunchDate:  launched,
	}}
}

func sovRecord(id string, ownRevenue, cannibalized float64) sov.Record {
	return sov.Record{
		ProductID:           id,
		NewProductRevenue:   ownRevenue,
		CannibalizedRevenue: cannibalized,
	}
}

func sovResult(records ...sov.Record) sov.Result {
	result := sov.Result{
		Launches:     make([]string, 0, len(records)),
		ByLaunch:     make(map[string]sov.Record, len(records)),
		Significance: map[string][]sov.SignificanceTest{},
	}
	for _, rec := range records {
		result.Launches = append(result.Launches, rec.ProductID)
		result.ByLaunch[rec.ProductID] = rec
	}
	return result
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name              string
		netImpact         float64
		newProductRevenue float64
		want              string
	}{
		{"positive net impact", 150, 200, TypeAdditive},
		{"barely positive", 0.01, 1000, TypeAdditive},
		{"loss beyond the 10% threshold", -150, 1000, TypeSubstitutive},
		{"loss within the threshold", -50, 1000, TypeNeutral},
		{"zero net impact", 0, 1000, TypeNeutral},
		{"loss exactly at the threshold", -100, 1000, TypeNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.netImpact, tt.newProductRevenue))
		})
	}
}

func TestRate(t *testing.T) {
	assert.Equal(t, RatingExcellent, Rate(1))
	assert.Equal(t, RatingModerate, Rate(0))
	assert.Equal(t, RatingModerate, Rate(-500_000))
	assert.Equal(t, RatingModerate, Rate(-1_000_000))
	assert.Equal(t, RatingPoor, Rate(-1_000_001))
}

func TestExecuteNetImpact(t *testing.T) {
	l := newLaunch("N", "New Product", "B", "C", date(2025, 1, 1))
	engine := NewEngine(&dataset.Dataset{}, 6, testLogger())

	result := engine.Execute(context.Background(), []launch.Launch{l},
		sovResult(sovRecord("N", 200, 50)))

	require.Len(t, result.Impacts, 1)
	imp := result.Impacts[0]

	// Net impact is own revenue minus cannibalized revenue.
	assert.Equal(t, 150.0, imp.NetImpact)
	assert.InDelta(t, 75.0, imp.NetImpactPct, 1e-9)
	assert.InDelta(t, 300.0, imp.ROI, 1e-9)
	assert.Equal(t, TypeAdditive, imp.LaunchType)
	assert.Equal(t, RatingExcellent, imp.PerformanceRating)
}

func TestExecuteSubstitutiveLaunch(t *testing.T) {
	l := newLaunch("N", "New Product", "B", "C", date(2025, 1, 1))
	engine := NewEngine(&dataset.Dataset{}, 6, testLogger())

	// Cannibalizes more than it earns: 1000 revenue, 1150 lost.
	result := engine.Execute(context.Background(), []launch.Launch{l},
		sovResult(sovRecord("N", 1000, 1150)))

	require.Len(t, result.Impacts, 1)
	imp := result.Impacts[0]

	assert.Equal(t, -150.0, imp.NetImpact)
	assert.Equal(t, TypeSubstitutive, imp.LaunchType)
	assert.Equal(t, RatingModerate, imp.PerformanceRating)
	assert.InDelta(t, -150.0/1150.0*100, imp.ROI, 1e-9)
}

func TestExecuteInfiniteROI(t *testing.T) {
	l := newLaunch("N", "New Product", "B", "C", date(2025, 1, 1))
	engine := NewEngine(&dataset.Dataset{}, 6, testLogger())

	result := engine.Execute(context.Background(), []launch.Launch{l},
		sovResult(sovRecord("N", 200, 0)))

	require.Len(t, result.Impacts, 1)
	assert.True(t, math.IsInf(result.Impacts[0].ROI, 1))
}

func TestExecuteSkipsLaunchesWithoutAttribution(t *testing.T) {
	launches := []launch.Launch{
		newLaunch("N", "New Product", "B", "C", date(2025, 1, 1)),
		newLaunch("M", "Missing", "B", "C", date(2025, 2, 1)),
	}
	engine := NewEngine(&dataset.Dataset{}, 6, testLogger())

	result := engine.Execute(context.Background(), launches,
		sovResult(sovRecord("N", 200, 50)))

	require.Len(t, result.Impacts, 1)
	assert.Equal(t, "N", result.Impacts[0].ProductID)
}

func TestExecuteEmptyInput(t *testing.T) {
	engine := NewEngine(&dataset.Dataset{}, 6, testLogger())
	result := engine.Execute(context.Background(), nil, sovResult())

	assert.Empty(t, result.Impacts)
	assert.Empty(t, result.ByCategory)
	assert.Empty(t, result.ByBrand)
}

func TestGroupImpacts(t *testing.T) {
	launches := []launch.Launch{
		newLaunch("N1", "One", "BrandA", "Noodle", date(2025, 1, 1)),
		newLaunch("N2", "Two", "BrandA", "Noodle", date(2025, 2, 1)),
		newLaunch("N3", "Three", "BrandB", "Tea", date(2025, 3, 1)),
	}
	sr := sovResult(
		sovRecord("N1", 200, 50),
		sovRecord("N2", 100, 150),
		sovRecord("N3", 300, 0),
	)

	engine := NewEngine(&dataset.Dataset{}, 6, testLogger())
	result := engine.Execute(context.Background(), launches, sr)

	require.Len(t, result.ByCategory, 2)
	require.Len(t, result.ByBrand, 2)

	byKey := make(map[string]GroupImpact)
	for _, g := range result.ByCategory {
		byKey[g.Key] = g
	}

	noodle := byKey["Noodle"]
	assert.Equal(t, 2, noodle.NumLaunches)
	assert.Equal(t, 300.0, noodle.TotalNewRevenue)
	assert.Equal(t, 200.0, noodle.TotalLostRevenue)
	// Net impact is recomputed from the summed revenues, not averaged
	// from the per-launch percentages.
	assert.Equal(t, 100.0, noodle.NetImpact)
	assert.InDelta(t, 100.0/300.0*100, noodle.NetImpactPct, 1e-9)

	tea := byKey["Tea"]
	assert.Equal(t, 1, tea.NumLaunches)
	assert.Equal(t, 300.0, tea.NetImpact)

	// Groups are ordered by net impact descending.
	assert.Equal(t, "Tea", result.ByCategory[0].Key)
	assert.Equal(t, "Noodle", result.ByCategory[1].Key)
}

func TestExecutePortfolioGrowth(t *testing.T) {
	l := newLaunch("N", "New Product", "B", "C", date(2025, 1, 1))

	ds := &dataset.Dataset{Sales: []dataset.Sale{
		{Transaction: dataset.Transaction{ProductID: "A", Date: date(2024, 9, 1), Revenue: 100}, Brand: "B", Type: "C"},
		{Transaction: dataset.Transaction{ProductID: "A", Date: date(2025, 3, 1), Revenue: 80}, Brand: "B", Type: "C"},
		{Transaction: dataset.Transaction{ProductID: "N", Date: date(2025, 4, 1), Revenue: 70}, Brand: "B", Type: "C"},
		// Different brand: outside the portfolio.
		{Transaction: dataset.Transaction{ProductID: "X", Date: date(2025, 4, 1), Revenue: 500}, Brand: "Z", Type: "C"},
	}}

	engine := NewEngine(ds, 6, testLogger())
	result := engine.Execute(context.Background(), []launch.Launch{l},
		sovResult(sovRecord("N", 70, 20)))

	require.Len(t, result.Impacts, 1)
	// Portfolio revenue moved from 100 to 150 across the launch.
	assert.InDelta(t, 50.0, result.Impacts[0].PortfolioGrowthPct, 1e-9)
}

func TestExecuteOrdering(t *testing.T) {
	launches := []launch.Launch{
		newLaunch("N1", "One", "BrandA", "Noodle", date(2025, 1, 1)),
		newLaunch("N2", "Two", "BrandB", "Tea", date(2025, 2, 1)),
	}
	sr := sovResult(
		sovRecord("N1", 100, 90),
		sovRecord("N2", 500, 100),
	)

	engine := NewEngine(&dataset.Dataset{}, 6, testLogger())
	result := engine.Execute(context.Background(), launches, sr)

	require.Len(t, result.Impacts, 2)
	assert.Equal(t, "N2", result.Impacts[0].ProductID)
	assert.Equal(t, "N1", result.Impacts[1].ProductID)
}
