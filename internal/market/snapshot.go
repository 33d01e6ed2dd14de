// Package market computes the descriptive market snapshot: overall size,
// year-over-year growth, and revenue shares by product, brand, category,
// channel, and region. Pure derivations over the read-only integrated
// sales table, produced once per run for reporting.
package market

import (
	"context"
	"log/slog"
	"sort"

	"fmcgcli/internal/dataset"
)

// Share is one entity's slice of total revenue.
type Share struct {
	Key       string  `json:"key"`
	Name      string  `json:"name,omitempty"`
	Revenue   float64 `json:"revenue"`
	SharePct  float64 `json:"share_pct"`
	UnitsSold float64 `json:"units_sold"`
	SaleCount int     `json:"sale_count"`
}

// Snapshot is the overall market picture for one pipeline run.
type Snapshot struct {
	TotalRevenue      float64 `json:"total_revenue"`
	TotalUnits        float64 `json:"total_units"`
	TotalTransactions int     `json:"total_transactions"`

	CurrentYear        int     `json:"current_year"`
	CurrentYearRevenue float64 `json:"current_year_revenue"`
	PrevYearRevenue    float64 `json:"prev_year_revenue"`
	YoYGrowthPct       float64 `json:"yoy_growth_pct"`

	ByProduct  []Share `json:"by_product"`
	ByBrand    []Share `json:"by_brand"`
	ByCategory []Share `json:"by_category"`
	ByChannel  []Share `json:"by_channel"`
	ByRegion   []Share `json:"by_region"`
}

// Build computes the market snapshot from the integrated sales view.
func Build(ctx context.Context, ds *dataset.Dataset, logger *slog.Logger) Snapshot {
	if logger == nil {
		logger = slog.Default()
	}

	snap := Snapshot{}

	currentYear := ds.MaxDate().Year()
	snap.CurrentYear = currentYear

	products := newAccumulator()
	brands := newAccumulator()
	categories := newAccumulator()
	channels := newAccumulator()
	regions := newAccumulator()

	for _, s := range ds.Sales {
		snap.TotalRevenue += s.Revenue
		snap.TotalUnits += s.UnitsSold
		snap.TotalTransactions++

		switch s.Date.Year() {
		case currentYear:
			snap.CurrentYearRevenue += s.Revenue
		case currentYear - 1:
			snap.PrevYearRevenue += s.Revenue
		}

		products.add(s.ProductID, s.ProductName, s)
		brands.add(s.Brand, "", s)
		categories.add(s.Type, "", s)
		channels.add(s.Channel, "", s)
		regions.add(s.Region, "", s)
	}

	if snap.PrevYearRevenue > 0 {
		snap.YoYGrowthPct = (snap.CurrentYearRevenue - snap.PrevYearRevenue) / snap.PrevYearRevenue * 100
	}

	snap.ByProduct = products.shares(snap.TotalRevenue)
	snap.ByBrand = brands.shares(snap.TotalRevenue)
	snap.ByCategory = categories.shares(snap.TotalRevenue)
	snap.ByChannel = channels.shares(snap.TotalRevenue)
	snap.ByRegion = regions.shares(snap.TotalRevenue)

	logger.InfoContext(ctx, "market snapshot built",
		"total_revenue", snap.TotalRevenue,
		"transactions", snap.TotalTransactions,
		"yoy_growth_pct", snap.YoYGrowthPct,
	)

	return snap
}

type accumulator struct {
	byKey map[string]*Share
}

func newAccumulator() *accumulator {
	return &accumulator{byKey: make(map[string]*Share)}
}

func (a *accumulator) add(key, name string, s dataset.Sale) {
	if key == "" {
		key = "(unknown)"
	}
	entry, ok := a.byKey[key]
	if !ok {
		entry = &Share{Key: key, Name: name}
		a.byKey[key] = entry
	}
	entry.Revenue += s.Revenue
	entry.UnitsSold += s.UnitsSold
	entry.SaleCount++
}

// shares returns entries ordered by revenue descending with ties broken
// by key for stable output.
func (a *accumulator) shares(totalRevenue float64) []Share {
	out := make([]Share, 0, len(a.byKey))
	for _, entry := range a.byKey {
		if totalRevenue > 0 {
			entry.SharePct = entry.Revenue / totalRevenue * 100
		}
		out = append(out, *entry)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].Key < out[j].Key
	})

	return out
}
