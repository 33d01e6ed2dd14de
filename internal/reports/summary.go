package reports

import (
	"fmt"
	"strings"

	"fmcgcli/internal/impact"
)

// Summary renders the narrative executive summary of a run. The same
// text is printed to the console and saved via WriteSummary.
func Summary(rep Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "FMCG Market Analysis - Executive Summary\n")
	fmt.Fprintf(&b, "========================================\n\n")
	fmt.Fprintf(&b, "Run ID: %s\n", rep.RunID)
	fmt.Fprintf(&b, "Generated: %s\n\n", rep.GeneratedAt.Format("2006-01-02 15:04:05"))

	fmt.Fprintf(&b, "MARKET OVERVIEW\n")
	fmt.Fprintf(&b, "---------------\n")
	fmt.Fprintf(&b, "Total Revenue: %.2f\n", rep.Market.TotalRevenue)
	fmt.Fprintf(&b, "Total Units: %.0f\n", rep.Market.TotalUnits)
	fmt.Fprintf(&b, "Transactions: %d\n", rep.Market.TotalTransactions)
	fmt.Fprintf(&b, "YoY Growth (%d vs %d): %.1f%%\n\n",
		rep.Market.CurrentYear, rep.Market.CurrentYear-1, rep.Market.YoYGrowthPct)

	if len(rep.Market.ByCategory) > 0 {
		fmt.Fprintf(&b, "TOP CATEGORIES BY REVENUE\n")
		fmt.Fprintf(&b, "-------------------------\n")
		for i, s := range rep.Market.ByCategory {
			if i >= 5 {
				break
			}
			fmt.Fprintf(&b, "%2d. %s: %.2f (%.1f%%)\n", i+1, s.Key, s.Revenue, s.SharePct)
		}
		fmt.Fprintf(&b, "\n")
	}

	fmt.Fprintf(&b, "DATA QUALITY\n")
	fmt.Fprintf(&b, "------------\n")
	fmt.Fprintf(&b, "Transactions Loaded: %d\n", rep.Quality.TotalTransactions)
	fmt.Fprintf(&b, "Integrated Sales: %d\n", rep.Quality.IntegratedSales)
	fmt.Fprintf(&b, "Orphan Transactions: %d\n", rep.Quality.OrphanTransactions)
	fmt.Fprintf(&b, "Duplicate IDs: %d\n", rep.Quality.DuplicateTransactions)
	fmt.Fprintf(&b, "Revenue Outliers: %d\n\n", rep.Quality.RevenueOutliers)

	fmt.Fprintf(&b, "RECENT LAUNCHES ANALYZED\n")
	fmt.Fprintf(&b, "------------------------\n")
	if len(rep.Launches) == 0 {
		fmt.Fprintf(&b, "No recent launches found in the lookback window.\n\n")
	} else {
		for i, l := range rep.Launches {
			fmt.Fprintf(&b, "%2d. %s (%s, %s) - revenue %.2f, growth %.1f%%, score %.2f\n",
				i+1, l.ProductName, l.Brand, l.Type,
				l.TotalRevenue, l.GrowthRatePct, l.PerformanceScore)
		}
		fmt.Fprintf(&b, "\n")
	}

	if len(rep.SOV.Launches) > 0 {
		fmt.Fprintf(&b, "SOURCE OF VOLUME\n")
		fmt.Fprintf(&b, "----------------\n")
		for _, rec := range rep.SOV.Records() {
			fmt.Fprintf(&b, "%s: revenue %.2f | cannibalized %.2f (%.1f%%) | from competitors %.2f (%.1f%%) | market expansion %.2f (%.1f%%)\n",
				rec.ProductName,
				rec.NewProductRevenue,
				rec.CannibalizedRevenue, rec.Breakdown.CannibalizationPct,
				rec.CompetitorLoss, rec.Breakdown.CompetitorPct,
				rec.MarketExpansion, rec.Breakdown.ExpansionPct)
		}
		fmt.Fprintf(&b, "\n")
	}

	if len(rep.Impact.Impacts) > 0 {
		fmt.Fprintf(&b, "PORTFOLIO IMPACT\n")
		fmt.Fprintf(&b, "----------------\n")
		byType := make(map[string]int)
		for _, imp := range rep.Impact.Impacts {
			byType[imp.LaunchType]++
			fmt.Fprintf(&b, "%s: net impact %.2f (%s, %s)\n",
				imp.ProductName, imp.NetImpact, imp.LaunchType, imp.PerformanceRating)
		}
		fmt.Fprintf(&b, "Classification: %d additive, %d substitutive, %d neutral\n\n",
			byType[impact.TypeAdditive], byType[impact.TypeSubstitutive], byType[impact.TypeNeutral])
	}

	if fc := rep.Forecast; fc != nil {
		fmt.Fprintf(&b, "REVENUE FORECAST\n")
		fmt.Fprintf(&b, "----------------\n")
		fmt.Fprintf(&b, "Series Length: %d months\n", fc.Series.Len())
		if fc.Decomposition != nil {
			fmt.Fprintf(&b, "Decomposition: %s, trend slope %.2f/month\n",
				fc.Decomposition.Model, fc.Decomposition.TrendSlope)
		}
		if fc.SARIMA.Ok() {
			fmt.Fprintf(&b, "Seasonal Model MAPE: %.2f%%\n", fc.SARIMA.Metrics.MAPE)
		}
		if fc.Additive.Ok() {
			fmt.Fprintf(&b, "Additive Model MAPE: %.2f%%\n", fc.Additive.Metrics.MAPE)
		}
		if fc.Ensemble != nil {
			fmt.Fprintf(&b, "Weighted Ensemble MAPE: %.2f%% (weights %.2f / %.2f)\n",
				fc.Ensemble.WeightedMetrics.MAPE, fc.Ensemble.WeightA, fc.Ensemble.WeightB)
		}
		if fc.BestModel != "" {
			fmt.Fprintf(&b, "Best Model: %s (MAPE %.2f%%)\n", fc.BestModel, fc.BestMAPE)
		}
		fmt.Fprintf(&b, "\n")
	}

	return b.String()
}
