package dataset

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// QualityReport describes data quality issues found in the loaded tables.
// It is purely diagnostic: nothing in the dataset is mutated or excluded
// based on it.
type QualityReport struct {
	TotalTransactions     int     `json:"total_transactions"`
	IntegratedSales       int     `json:"integrated_sales"`
	OrphanTransactions    int     `json:"orphan_transactions"` // no matching product
	DuplicateTransactions int     `json:"duplicate_transactions"`
	MissingChannel        int     `json:"missing_channel"`
	MissingRegion         int     `json:"missing_region"`
	ZeroRevenue           int     `json:"zero_revenue"`
	RevenueOutliers       int     `json:"revenue_outliers"`
	OutlierLowerBound     float64 `json:"outlier_lower_bound"`
	OutlierUpperBound     float64 `json:"outlier_upper_bound"`
}

// BuildQualityReport scans the dataset for missing values, duplicate
// transaction IDs, and IQR-based revenue outliers (1.5*IQR fences).
func BuildQualityReport(ds *Dataset) QualityReport {
	report := QualityReport{
		TotalTransactions:  len(ds.Transactions),
		IntegratedSales:    len(ds.Sales),
		OrphanTransactions: len(ds.Transactions) - len(ds.Sales),
	}

	seen := make(map[string]bool, len(ds.Transactions))
	revenues := make([]float64, 0, len(ds.Transactions))

	for _, tx := range ds.Transactions {
		if seen[tx.TransactionID] {
			report.DuplicateTransactions++
		}
		seen[tx.TransactionID] = true

		if tx.Channel == "" {
			report.MissingChannel++
		}
		if tx.Region == "" {
			report.MissingRegion++
		}
		if tx.Revenue == 0 {
			report.ZeroRevenue++
		}
		revenues = append(revenues, tx.Revenue)
	}

	if len(revenues) >= 4 {
		sort.Float64s(revenues)
		q1 := stat.Quantile(0.25, stat.Empirical, revenues, nil)
		q3 := stat.Quantile(0.75, stat.Empirical, revenues, nil)
		iqr := q3 - q1

		report.OutlierLowerBound = q1 - 1.5*iqr
		report.OutlierUpperBound = q3 + 1.5*iqr

		for _, r := range revenues {
			if r < report.OutlierLowerBound || r > report.OutlierUpperBound {
				report.RevenueOutliers++
			}
		}
	}

	return report
}
