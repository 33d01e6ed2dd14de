// Package launch identifies qualifying new-product launches and ranks
// them by a post-launch performance score. The top launches feed the
// source-of-volume and portfolio impact engines.
package launch

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"fmcgcli/internal/dataset"
)

// Default registry parameters.
const (
	DefaultLookbackMonths = 12
	DefaultTopN           = 5
)

// Launch is a scored launch candidate: a recently launched product with
// its post-launch performance metrics.
type Launch struct {
	dataset.Product

	TotalRevenue     float64 `json:"total_revenue"`
	TotalUnits       float64 `json:"total_units"`
	Transactions     int     `json:"transactions"`
	GrowthRatePct    float64 `json:"growth_rate_pct"`
	MarketSharePct   float64 `json:"market_share_pct"`
	PerformanceScore float64 `json:"performance_score"`
}

// Registry derives launch candidates from the product master and the
// integrated sales table.
type Registry struct {
	ds     *dataset.Dataset
	logger *slog.Logger
}

// NewRegistry creates a launch registry over the given dataset.
func NewRegistry(ds *dataset.Dataset, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{ds: ds, logger: logger}
}

// Find returns products launched within the trailing lookback window,
// ordered by launch date descending. No qualifying launches yields an
// empty slice, not an error.
func (r *Registry) Find(months int) []dataset.Product {
	maxDate := r.ds.MaxDate()
	if maxDate.IsZero() {
		return nil
	}
	cutoff := maxDate.AddDate(0, -months, 0)

	var candidates []dataset.Product
	for _, p := range r.ds.Products {
		if !p.LaunchDate.Before(cutoff) {
			candidates = append(candidates, p)
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if !candidates[i].LaunchDate.Equal(candidates[j].LaunchDate) {
			return candidates[i].LaunchDate.After(candidates[j].LaunchDate)
		}
		return candidates[i].ProductID < candidates[j].ProductID
	})

	return candidates
}

// Score computes post-launch performance for each candidate. Candidates
// with no post-launch transactions are silently dropped. The result is
// ordered by performance score descending, ties broken by product ID so
// ranking is reproducible run-to-run.
func (r *Registry) Score(ctx context.Context, candidates []dataset.Product) []Launch {
	var scored []Launch

	for _, p := range candidates {
		l, ok := r.scoreCandidate(p)
		if !ok {
			r.logger.DebugContext(ctx, "candidate has no post-launch sales, dropped",
				"product_id", p.ProductID,
			)
			continue
		}
		scored = append(scored, l)
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].PerformanceScore != scored[j].PerformanceScore {
			return scored[i].PerformanceScore > scored[j].PerformanceScore
		}
		return scored[i].ProductID < scored[j].ProductID
	})

	return scored
}

// Top returns the n highest-scoring launches; all of them when fewer
// than n qualify.
func (r *Registry) Top(scored []Launch, n int) []Launch {
	if len(scored) <= n {
		return scored
	}
	return scored[:n]
}

func (r *Registry) scoreCandidate(p dataset.Product) (Launch, bool) {
	launchDate := p.LaunchDate
	first3mEnd := launchDate.AddDate(0, 3, 0)
	next3mEnd := launchDate.AddDate(0, 6, 0)

	var (
		totalRevenue, totalUnits      float64
		first3mRevenue, next3mRevenue float64
		marketRevenue                 float64
		transactions                  int
	)

	for _, s := range r.ds.Sales {
		if s.Date.Before(launchDate) {
			continue
		}
		marketRevenue += s.Revenue

		if s.ProductID != p.ProductID {
			continue
		}
		totalRevenue += s.Revenue
		totalUnits += s.UnitsSold
		transactions++

		if inWindow(s.Date, launchDate, first3mEnd) {
			first3mRevenue += s.Revenue
		} else if inWindow(s.Date, first3mEnd, next3mEnd) {
			next3mRevenue += s.Revenue
		}
	}

	if transactions == 0 {
		return Launch{}, false
	}

	growthRate := 0.0
	if first3mRevenue > 0 {
		growthRate = (next3mRevenue - first3mRevenue) / first3mRevenue * 100
	}

	marketShare := 0.0
	if marketRevenue > 0 {
		marketShare = totalRevenue / marketRevenue * 100
	}

	return Launch{
		Product:          p,
		TotalRevenue:     totalRevenue,
		TotalUnits:       totalUnits,
		Transactions:     transactions,
		GrowthRatePct:    growthRate,
		MarketSharePct:   marketShare,
		PerformanceScore: totalRevenue * (1 + growthRate/100),
	}, true
}

// inWindow reports whether t falls in [start, end).
func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}
