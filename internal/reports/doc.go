// Package reports renders a completed analysis run into its output
// artifacts.
//
// This package contains three main components:
//
// Writer: Core CSV writing functionality with support for headers and a
// UTF-8 BOM for Excel compatibility. Every analytical table (market
// shares, launch rankings, source-of-volume attribution, significance
// tests, portfolio impact, forecast comparison) is exported as its own
// CSV file.
//
// Workbook export: the same tables collected into a single multi-sheet
// Excel workbook.
//
// Narrative summary: a plain-text executive summary of the run, both
// printed to the console and saved next to the CSV files.
//
// Example usage:
//
//	rep := reports.NewReport(quality, snapshot, launches, sovResult, impactResult, forecastRun)
//	w := reports.NewWriter("reports", logger)
//	if err := w.WriteAll(ctx, rep); err != nil {
//		return err
//	}
//	fmt.Print(reports.Summary(rep))
package reports
