package reports

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// Sheet names are capped by Excel at 31 characters; table names here are
// short enough to use directly.
var sheetNames = map[string]string{
	FileMarketShares:    "Market Shares",
	FileLaunchRanking:   "Launch Ranking",
	FileSOVAttribution:  "SOV Attribution",
	FileCannibalization: "Cannibalization",
	FileSignificance:    "Significance",
	FilePortfolioImpact: "Portfolio Impact",
	FileGroupImpact:     "Group Impact",
	FileForecastCompare: "Forecast Test",
	FileForecastFuture:  "Forecast Future",
}

// WriteWorkbook collects every table of the run into one multi-sheet
// Excel workbook, with a metadata sheet identifying the run.
func (w *Writer) WriteWorkbook(ctx context.Context, rep Report) error {
	fullPath := filepath.Join(w.outDir, FileWorkbook)

	if err := os.MkdirAll(w.outDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeMetadataSheet(f, rep); err != nil {
		return err
	}

	for _, t := range Tables(rep) {
		name, ok := sheetNames[t.FileName]
		if !ok {
			name = t.Name
		}
		if err := writeSheet(f, name, t); err != nil {
			return fmt.Errorf("sheet %s: %w", name, err)
		}
	}

	if err := f.SaveAs(fullPath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	w.logger.InfoContext(ctx, "wrote Excel workbook",
		"path", fullPath,
		"sheets", len(sheetNames)+1)
	return nil
}

// writeMetadataSheet repurposes the default sheet for run metadata.
func writeMetadataSheet(f *excelize.File, rep Report) error {
	const sheet = "Run Info"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename metadata sheet: %w", err)
	}

	rows := [][]interface{}{
		{"run_id", rep.RunID},
		{"generated_at", rep.GeneratedAt.Format("2006-01-02 15:04:05")},
		{"transactions", rep.Quality.TotalTransactions},
		{"integrated_sales", rep.Quality.IntegratedSales},
		{"orphan_transactions", rep.Quality.OrphanTransactions},
		{"duplicate_transactions", rep.Quality.DuplicateTransactions},
		{"revenue_outliers", rep.Quality.RevenueOutliers},
		{"launches_analyzed", len(rep.Launches)},
	}

	for i, row := range rows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeSheet(f *excelize.File, name string, t Table) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	for j, h := range t.Headers {
		cell, err := excelize.CoordinatesToCellName(j+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(name, cell, h); err != nil {
			return err
		}
	}

	for i, record := range t.Records {
		for j, v := range record {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return err
			}
			// Numeric cells stay numeric in the workbook.
			if num, parseErr := strconv.ParseFloat(v, 64); parseErr == nil {
				if err := f.SetCellValue(name, cell, num); err != nil {
					return err
				}
				continue
			}
			if err := f.SetCellValue(name, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}
