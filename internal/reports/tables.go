package reports

import (
	"fmt"
	"math"

	"fmcgcli/internal/market"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

// Table is one exportable analytical table.
type Table struct {
	Name     string
	FileName string
	Headers  []string
	Records  [][]string
}

// Tables flattens the run results into the full set of CSV tables. The
// forecast tables are only present when the run included forecasting.
func Tables(rep Report) []Table {
	tables := []Table{
		marketSharesTable(rep.Market),
		launchRankingTable(rep),
		sovAttributionTable(rep),
		cannibalizationTable(rep),
		significanceTable(rep),
		portfolioImpactTable(rep),
		groupImpactTable(rep),
	}

	if rep.Forecast != nil {
		tables = append(tables,
			forecastComparisonTable(rep),
			forecastFutureTable(rep),
		)
	}

	return tables
}

func marketSharesTable(snap market.Snapshot) Table {
	headers := []string{"dimension", "key", "name", "revenue", "share_pct", "units_sold", "sale_count"}

	dimensions := []struct {
		name   string
		shares []market.Share
	}{
		{"product", snap.ByProduct},
		{"brand", snap.ByBrand},
		{"category", snap.ByCategory},
		{"channel", snap.ByChannel},
		{"region", snap.ByRegion},
	}

	var records [][]string
	for _, dim := range dimensions {
		for _, s := range dim.shares {
			records = append(records, []string{
				dim.name,
				s.Key,
				s.Name,
				formatFloat(s.Revenue),
				formatFloat(s.SharePct),
				formatFloat(s.UnitsSold),
				formatInt(int64(s.SaleCount)),
			})
		}
	}

	return Table{Name: "market shares", FileName: FileMarketShares, Headers: headers, Records: records}
}

func launchRankingTable(rep Report) Table {
	headers := []string{
		"rank", "product_id", "product_name", "brand", "category", "launch_date",
		"total_revenue", "total_units", "transactions",
		"growth_rate_pct", "market_share_pct", "performance_score",
	}

	records := make([][]string, 0, len(rep.Launches))
	for i, l := range rep.Launches {
		records = append(records, []string{
			formatInt(int64(i + 1)),
			l.ProductID,
			l.ProductName,
			l.Brand,
			l.Type,
			l.LaunchDate.Format(dateLayout),
			formatFloat(l.TotalRevenue),
			formatFloat(l.TotalUnits),
			formatInt(int64(l.Transactions)),
			formatFloat(l.GrowthRatePct),
			formatFloat(l.MarketSharePct),
			formatFloat(l.PerformanceScore),
		})
	}

	return Table{Name: "launch ranking", FileName: FileLaunchRanking, Headers: headers, Records: records}
}

func sovAttributionTable(rep Report) Table {
	headers := []string{
		"product_id", "product_name", "launch_date",
		"new_product_revenue", "new_product_units",
		"cannibalized_revenue", "competitor_loss", "market_expansion",
		"cannibalization_pct", "competitor_pct", "expansion_pct",
	}

	var records [][]string
	for _, rec := range rep.SOV.Records() {
		records = append(records, []string{
			rec.ProductID,
			rec.ProductName,
			rec.LaunchDate.Format(dateLayout),
			formatFloat(rec.NewProductRevenue),
			formatFloat(rec.NewProductUnits),
			formatFloat(rec.CannibalizedRevenue),
			formatFloat(rec.CompetitorLoss),
			formatFloat(rec.MarketExpansion),
			formatFloat(rec.Breakdown.CannibalizationPct),
			formatFloat(rec.Breakdown.CompetitorPct),
			formatFloat(rec.Breakdown.ExpansionPct),
		})
	}

	return Table{Name: "sov attribution", FileName: FileSOVAttribution, Headers: headers, Records: records}
}

func cannibalizationTable(rep Report) Table {
	headers := []string{
		"launch_product_id", "target_product_id", "target_product_name",
		"revenue_loss", "pct_change",
	}

	var records [][]string
	for _, rec := range rep.SOV.Records() {
		for _, target := range rec.CannibalizedProducts {
			records = append(records, []string{
				rec.ProductID,
				target.ProductID,
				target.ProductName,
				formatFloat(target.RevenueLoss),
				formatFloat(target.PctChange),
			})
		}
	}

	return Table{Name: "cannibalization detail", FileName: FileCannibalization, Headers: headers, Records: records}
}

func significanceTable(rep Report) Table {
	headers := []string{
		"launch_product_id", "target_product_id",
		"revenue_loss", "pct_change", "t_statistic", "p_value", "is_significant",
	}

	var records [][]string
	for _, launchID := range rep.SOV.Launches {
		for _, t := range rep.SOV.Significance[launchID] {
			records = append(records, []string{
				launchID,
				t.TargetProductID,
				formatFloat(t.RevenueLoss),
				formatFloat(t.PctChange),
				fmt.Sprintf("%.4f", t.TStatistic),
				fmt.Sprintf("%.4f", t.PValue),
				formatBool(t.Significant),
			})
		}
	}

	return Table{Name: "significance tests", FileName: FileSignificance, Headers: headers, Records: records}
}

func portfolioImpactTable(rep Report) Table {
	headers := []string{
		"product_id", "product_name", "launch_date",
		"new_product_revenue", "lost_revenue", "net_impact", "net_impact_pct",
		"portfolio_growth_pct", "roi", "launch_type", "performance_rating",
	}

	records := make([][]string, 0, len(rep.Impact.Impacts))
	for _, imp := range rep.Impact.Impacts {
		records = append(records, []string{
			imp.ProductID,
			imp.ProductName,
			imp.LaunchDate.Format(dateLayout),
			formatFloat(imp.NewProductRevenue),
			formatFloat(imp.LostRevenue),
			formatFloat(imp.NetImpact),
			formatFloat(imp.NetImpactPct),
			formatFloat(imp.PortfolioGrowthPct),
			formatRatio(imp.ROI),
			imp.LaunchType,
			imp.PerformanceRating,
		})
	}

	return Table{Name: "portfolio impact", FileName: FilePortfolioImpact, Headers: headers, Records: records}
}

func groupImpactTable(rep Report) Table {
	headers := []string{
		"level", "key", "num_launches",
		"total_new_revenue", "total_lost_revenue", "net_impact", "net_impact_pct",
	}

	var records [][]string
	for _, g := range rep.Impact.ByCategory {
		records = append(records, groupRow("category", g.Key, g.NumLaunches, g.TotalNewRevenue, g.TotalLostRevenue, g.NetImpact, g.NetImpactPct))
	}
	for _, g := range rep.Impact.ByBrand {
		records = append(records, groupRow("brand", g.Key, g.NumLaunches, g.TotalNewRevenue, g.TotalLostRevenue, g.NetImpact, g.NetImpactPct))
	}

	return Table{Name: "group impact", FileName: FileGroupImpact, Headers: headers, Records: records}
}

func groupRow(level, key string, n int, newRev, lostRev, net, netPct float64) []string {
	return []string{
		level,
		key,
		formatInt(int64(n)),
		formatFloat(newRev),
		formatFloat(lostRev),
		formatFloat(net),
		formatFloat(netPct),
	}
}

func forecastComparisonTable(rep Report) Table {
	headers := []string{"month", "actual", "sarima", "additive", "ensemble_simple", "ensemble_weighted"}

	fc := rep.Forecast
	var records [][]string
	for i, m := range fc.Test.Months {
		row := []string{
			m.Format(monthLayout),
			formatFloat(fc.Test.Values[i]),
			forecastCell(fc.SARIMA.TestForecast, i, fc.SARIMA.Ok()),
			forecastCell(fc.Additive.TestForecast, i, fc.Additive.Ok()),
			"",
			"",
		}
		if fc.Ensemble != nil {
			row[4] = forecastCell(fc.Ensemble.Simple, i, true)
			row[5] = forecastCell(fc.Ensemble.Weighted, i, true)
		}
		records = append(records, row)
	}

	return Table{Name: "forecast comparison", FileName: FileForecastCompare, Headers: headers, Records: records}
}

func forecastFutureTable(rep Report) Table {
	headers := []string{"month", "sarima", "additive"}

	fc := rep.Forecast
	steps := len(fc.SARIMA.FutureForecast)
	if len(fc.Additive.FutureForecast) > steps {
		steps = len(fc.Additive.FutureForecast)
	}

	months := fc.Series.FutureMonths(steps)
	var records [][]string
	for i := 0; i < steps; i++ {
		records = append(records, []string{
			months[i].Format(monthLayout),
			forecastCell(fc.SARIMA.FutureForecast, i, fc.SARIMA.Ok()),
			forecastCell(fc.Additive.FutureForecast, i, fc.Additive.Ok()),
		})
	}

	return Table{Name: "forecast future", FileName: FileForecastFuture, Headers: headers, Records: records}
}

// forecastCell returns the formatted forecast value or an empty cell when
// the model failed or did not cover this step.
func forecastCell(values []float64, i int, ok bool) string {
	if !ok || i >= len(values) {
		return ""
	}
	return formatFloat(values[i])
}

// formatFloat formats a float64 value for CSV output with exactly 2 decimal places
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatInt formats an int64 value for CSV output
func formatInt(i int64) string {
	return fmt.Sprintf("%d", i)
}

// formatBool formats a boolean value for CSV output
func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// formatRatio handles the infinite ROI of launches with zero
// cannibalization.
func formatRatio(f float64) string {
	if math.IsInf(f, 1) {
		return "inf"
	}
	if math.IsInf(f, -1) {
		return "-inf"
	}
	return formatFloat(f)
}
