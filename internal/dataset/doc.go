// Package dataset loads and integrates the retail sales data sources.
//
// Four CSV files are expected in the data directory:
//
//	sales.csv      transaction-level sales records
//	products.csv   product master data (brand, category, launch date)
//	marketing.csv  campaign spend records
//	reviews.csv    customer review records
//
// Loading is tolerant: malformed rows are logged and skipped, never fatal.
// Records are validated at construction with go-playground/validator, and
// the integrated view joins each transaction to its product attributes
// through a typed ProductID key. All tables are immutable after Load; the
// analytic engines treat the Dataset as read-only input.
//
// Example usage:
//
//	ds, err := dataset.Load(ctx, "data/fmcg", slog.Default())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	report := dataset.BuildQualityReport(ds)
//	fmt.Printf("outliers: %d\n", report.RevenueOutliers)
package dataset
