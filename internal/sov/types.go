package sov

import (
	"time"
)

// DefaultWindowMonths is the default width of the symmetric pre/post
// attribution windows.
const DefaultWindowMonths = 6

// CannibalizedProduct records the revenue loss of one sibling product.
type CannibalizedProduct struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	RevenueLoss float64 `json:"revenue_loss"`

	// PctChange is the sibling's revenue change relative to its
	// pre-window revenue (negative for a loss).
	PctChange float64 `json:"pct_change"`
}

// Breakdown expresses the three volume sources relative to the new
// product's own revenue. The percentages are independently derived and
// need not sum to 100%.
type Breakdown struct {
	CannibalizationPct float64 `json:"cannibalization_pct"`
	CompetitorPct      float64 `json:"competitor_pct"`
	ExpansionPct       float64 `json:"expansion_pct"`
}

// Record is the full source-of-volume attribution for one launch.
type Record struct {
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	LaunchDate  time.Time `json:"launch_date"`

	NewProductRevenue float64 `json:"new_product_revenue"`
	NewProductUnits   float64 `json:"new_product_units"`

	CannibalizedRevenue  float64               `json:"cannibalized_revenue"`
	CannibalizedProducts []CannibalizedProduct `json:"cannibalized_products"`

	CompetitorLoss  float64 `json:"competitor_loss"`
	MarketExpansion float64 `json:"market_expansion"`

	Breakdown Breakdown `json:"sov_breakdown"`
}

// SignificanceTest records a two-sample mean-difference test on one
// cannibalized sibling's monthly revenue.
type SignificanceTest struct {
	TargetProductID string  `json:"target_product_id"`
	RevenueLoss     float64 `json:"revenue_loss"`
	PctChange       float64 `json:"pct_change"`
	TStatistic      float64 `json:"t_statistic"`
	PValue          float64 `json:"p_value"`
	Significant     bool    `json:"is_significant"`
}

// Result bundles the attribution of every analyzed launch. Launches keeps
// the input ranking order so downstream consumers and reports iterate
// deterministically. Empty input produces empty (non-nil) structures.
type Result struct {
	Launches     []string                      `json:"launches"`
	ByLaunch     map[string]Record             `json:"sov_by_launch"`
	Significance map[string][]SignificanceTest `json:"significance_tests"`
}

// Records returns the per-launch records in input ranking order.
func (r Result) Records() []Record {
	out := make([]Record, 0, len(r.Launches))
	for _, id := range r.Launches {
		if rec, ok := r.ByLaunch[id]; ok {
			out = append(out, rec)
		}
	}
	return out
}
