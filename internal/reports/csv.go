package reports

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Output file names produced by a full run.
const (
	FileMarketShares     = "market_shares.csv"
	FileLaunchRanking    = "launch_ranking.csv"
	FileSOVAttribution   = "sov_attribution.csv"
	FileCannibalization  = "cannibalization_detail.csv"
	FileSignificance     = "significance_tests.csv"
	FilePortfolioImpact  = "portfolio_impact.csv"
	FileGroupImpact      = "group_impact.csv"
	FileForecastCompare  = "forecast_comparison.csv"
	FileForecastFuture   = "forecast_future.csv"
	FileWorkbook         = "fmcg_analysis.xlsx"
	FileExecutiveSummary = "executive_summary.txt"
)

// Writer renders run results into CSV, Excel, and text files under a
// single output directory.
type Writer struct {
	outDir string
	logger *slog.Logger
}

// NewWriter creates a report writer rooted at outDir.
func NewWriter(outDir string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{outDir: outDir, logger: logger}
}

// WriteOptions configures CSV writing behavior.
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes one table to a CSV file under the output directory.
func (w *Writer) WriteCSV(ctx context.Context, fileName string, options WriteOptions) error {
	fullPath := filepath.Join(w.outDir, fileName)

	w.logger.InfoContext(ctx, "writing CSV file",
		"path", fullPath,
		"record_count", len(options.Records))

	if err := os.MkdirAll(w.outDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	// BOM helps Excel recognize UTF-8.
	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	return writer.Error()
}

// WriteAll renders every artifact of the run: one CSV per table, the
// combined workbook, and the executive summary text file.
func (w *Writer) WriteAll(ctx context.Context, rep Report) error {
	for _, t := range Tables(rep) {
		if err := w.WriteCSV(ctx, t.FileName, WriteOptions{
			Headers:   t.Headers,
			Records:   t.Records,
			BOMPrefix: true,
		}); err != nil {
			return fmt.Errorf("export %s: %w", t.Name, err)
		}
	}

	if err := w.WriteWorkbook(ctx, rep); err != nil {
		return fmt.Errorf("export workbook: %w", err)
	}

	if err := w.WriteSummary(ctx, rep); err != nil {
		return fmt.Errorf("export summary: %w", err)
	}

	return nil
}

// WriteSummary saves the narrative executive summary as a text file.
func (w *Writer) WriteSummary(ctx context.Context, rep Report) error {
	fullPath := filepath.Join(w.outDir, FileExecutiveSummary)

	if err := os.MkdirAll(w.outDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(fullPath, []byte(Summary(rep)), 0644); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	w.logger.InfoContext(ctx, "wrote executive summary", "path", fullPath)
	return nil
}
