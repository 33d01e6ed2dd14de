// Package impact aggregates source-of-volume attributions into the net
// portfolio effect of each launch, classifies launches as additive,
// substitutive, or neutral, and rolls impacts up to category and brand
// level.
package impact

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"time"

	"fmcgcli/internal/dataset"
	"fmcgcli/internal/launch"
	"fmcgcli/internal/sov"
)

// Launch classifications, mutually exclusive and evaluated in order.
const (
	TypeAdditive     = "Additive"
	TypeSubstitutive = "Substitutive"
	TypeNeutral      = "Neutral"
)

// Performance ratings.
const (
	RatingExcellent = "Excellent"
	RatingModerate  = "Moderate"
	RatingPoor      = "Poor"
)

// substitutiveFraction: a launch is substitutive when its net loss exceeds
// this fraction of its own revenue.
const substitutiveFraction = 0.1

// poorThreshold is the absolute currency-unit net impact below which a
// launch rates Poor.
const poorThreshold = -1_000_000

// LaunchImpact is the net portfolio effect of a single launch.
type LaunchImpact struct {
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	LaunchDate  time.Time `json:"launch_date"`

	NewProductRevenue float64 `json:"new_product_revenue"`
	LostRevenue       float64 `json:"lost_revenue"`
	NetImpact         float64 `json:"net_impact"`
	NetImpactPct      float64 `json:"net_impact_pct"`

	// PortfolioGrowthPct compares total category+brand revenue across the
	// pre/post windows, recomputed directly from transactions.
	PortfolioGrowthPct float64 `json:"portfolio_growth_pct"`

	// ROI is net impact over cannibalized revenue; positive infinity when
	// no cannibalization occurred (all gain is undiluted).
	ROI float64 `json:"roi"`

	LaunchType        string `json:"launch_type"`
	PerformanceRating string `json:"performance_rating"`
}

// GroupImpact is the impact aggregated over all launches sharing a
// category or brand. Revenues are summed first and the net impact and
// percentage recomputed from the sums, avoiding bias toward small
// launches.
type GroupImpact struct {
	Key              string  `json:"key"`
	NumLaunches      int     `json:"num_launches"`
	TotalNewRevenue  float64 `json:"total_new_revenue"`
	TotalLostRevenue float64 `json:"total_lost_revenue"`
	NetImpact        float64 `json:"net_impact"`
	NetImpactPct     float64 `json:"net_impact_pct"`
}

// Result bundles per-launch, per-category, and per-brand impacts.
type Result struct {
	Impacts    []LaunchImpact `json:"portfolio_impact"`
	ByCategory []GroupImpact  `json:"category_impact"`
	ByBrand    []GroupImpact  `json:"brand_impact"`
}

// Engine computes net portfolio impact from launches and their SOV
// attributions.
type Engine struct {
	ds           *dataset.Dataset
	windowMonths int
	logger       *slog.Logger
}

// NewEngine creates a portfolio impact engine. windowMonths <= 0 falls
// back to the SOV default so both engines window identically.
func NewEngine(ds *dataset.Dataset, windowMonths int, logger *slog.Logger) *Engine {
	if windowMonths <= 0 {
		windowMonths = sov.DefaultWindowMonths
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{ds: ds, windowMonths: windowMonths, logger: logger}
}

// Execute derives the impact rows for every launch with a SOV record.
// Launches without one are skipped. Empty input produces an empty result,
// never an error.
func (e *Engine) Execute(ctx context.Context, launches []launch.Launch, sovResult sov.Result) Result {
	result := Result{
		Impacts:    []LaunchImpact{},
		ByCategory: []GroupImpact{},
		ByBrand:    []GroupImpact{},
	}

	if len(launches) == 0 {
		e.logger.WarnContext(ctx, "no launches supplied for portfolio impact analysis")
		return result
	}

	for _, l := range launches {
		rec, ok := sovResult.ByLaunch[l.ProductID]
		if !ok {
			continue
		}
		result.Impacts = append(result.Impacts, e.launchImpact(l, rec))
	}

	sort.SliceStable(result.Impacts, func(i, j int) bool {
		if result.Impacts[i].NetImpact != result.Impacts[j].NetImpact {
			return result.Impacts[i].NetImpact > result.Impacts[j].NetImpact
		}
		return result.Impacts[i].ProductID < result.Impacts[j].ProductID
	})

	result.ByCategory = groupImpacts(launches, sovResult, func(l launch.Launch) string { return l.Type })
	result.ByBrand = groupImpacts(launches, sovResult, func(l launch.Launch) string { return l.Brand })

	e.logger.InfoContext(ctx, "portfolio impact analysis completed",
		"launches", len(result.Impacts),
		"categories", len(result.ByCategory),
		"brands", len(result.ByBrand),
	)

	return result
}

func (e *Engine) launchImpact(l launch.Launch, rec sov.Record) LaunchImpact {
	netImpact := rec.NewProductRevenue - rec.CannibalizedRevenue

	netImpactPct := 0.0
	if rec.NewProductRevenue > 0 {
		netImpactPct = netImpact / rec.NewProductRevenue * 100
	}

	roi := math.Inf(1)
	if rec.CannibalizedRevenue > 0 {
		roi = netImpact / rec.CannibalizedRevenue * 100
	}

	return LaunchImpact{
		ProductID:          l.ProductID,
		ProductName:        l.ProductName,
		LaunchDate:         l.LaunchDate,
		NewProductRevenue:  rec.NewProductRevenue,
		LostRevenue:        rec.CannibalizedRevenue,
		NetImpact:          netImpact,
		NetImpactPct:       netImpactPct,
		PortfolioGrowthPct: e.portfolioGrowth(l),
		ROI:                roi,
		LaunchType:         Classify(netImpact, rec.NewProductRevenue),
		PerformanceRating:  Rate(netImpact),
	}
}

// portfolioGrowth compares total category+brand revenue across the
// symmetric pre/post windows, independent of the SOV decomposition.
func (e *Engine) portfolioGrowth(l launch.Launch) float64 {
	preStart := l.LaunchDate.AddDate(0, -e.windowMonths, 0)
	postEnd := l.LaunchDate.AddDate(0, e.windowMonths, 0)

	var preRevenue, postRevenue float64
	for _, s := range e.ds.Sales {
		if s.Type != l.Type || s.Brand != l.Brand {
			continue
		}
		if !s.Date.Before(preStart) && s.Date.Before(l.LaunchDate) {
			preRevenue += s.Revenue
		} else if !s.Date.Before(l.LaunchDate) && s.Date.Before(postEnd) {
			postRevenue += s.Revenue
		}
	}

	if preRevenue <= 0 {
		return 0
	}
	return (postRevenue - preRevenue) / preRevenue * 100
}

// Classify maps net impact to a launch type. Exactly one label applies:
// positive net impact is additive; a net loss exceeding 10% of the new
// product's own revenue is substitutive; anything between is neutral.
func Classify(netImpact, newProductRevenue float64) string {
	switch {
	case netImpact > 0:
		return TypeAdditive
	case netImpact < -newProductRevenue*substitutiveFraction:
		return TypeSubstitutive
	default:
		return TypeNeutral
	}
}

// Rate assigns the secondary performance label.
func Rate(netImpact float64) string {
	switch {
	case netImpact > 0:
		return RatingExcellent
	case netImpact < poorThreshold:
		return RatingPoor
	default:
		return RatingModerate
	}
}

// groupImpacts sums launch revenues per group key and recomputes net
// impact from the sums. Groups are ordered by net impact descending,
// ties by key.
func groupImpacts(launches []launch.Launch, sovResult sov.Result, keyFn func(launch.Launch) string) []GroupImpact {
	byKey := make(map[string]*GroupImpact)
	var order []string

	for _, l := range launches {
		rec, ok := sovResult.ByLaunch[l.ProductID]
		if !ok {
			continue
		}

		g, exists := byKey[keyFn(l)]
		if !exists {
			g = &GroupImpact{Key: keyFn(l)}
			byKey[keyFn(l)] = g
			order = append(order, keyFn(l))
		}
		g.NumLaunches++
		g.TotalNewRevenue += rec.NewProductRevenue
		g.TotalLostRevenue += rec.CannibalizedRevenue
	}

	groups := make([]GroupImpact, 0, len(order))
	for _, key := range order {
		g := byKey[key]
		g.NetImpact = g.TotalNewRevenue - g.TotalLostRevenue
		if g.TotalNewRevenue > 0 {
			g.NetImpactPct = g.NetImpact / g.TotalNewRevenue * 100
		}
		groups = append(groups, *g)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].NetImpact != groups[j].NetImpact {
			return groups[i].NetImpact > groups[j].NetImpact
		}
		return groups[i].Key < groups[j].Key
	})

	return groups
}
