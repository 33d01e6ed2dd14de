package reports

import (
	"bytes"
	"context"
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, testLogger())

	err := w.WriteCSV(context.Background(), "test.csv", WriteOptions{
		Headers:   []string{"col_a", "col_b"},
		Records:   [][]string{{"1", "x"}, {"2", "y"}},
		BOMPrefix: true,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "test.csv"))
	require.NoError(t, err)

	// UTF-8 BOM prefix for Excel.
	require.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}))

	rows, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF}))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"col_a", "col_b"}, rows[0])
	assert.Equal(t, []string{"2", "y"}, rows[2])
}

func TestWriteCSVCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	w := NewWriter(dir, testLogger())

	err := w.WriteCSV(context.Background(), "test.csv", WriteOptions{
		Headers: []string{"a"},
		Records: [][]string{{"1"}},
	})
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "test.csv"))
}

func TestWriteAll(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, testLogger())
	rep := testReport(true)

	require.NoError(t, w.WriteAll(context.Background(), rep))

	for _, name := range []string{
		FileMarketShares, FileLaunchRanking, FileSOVAttribution,
		FileCannibalization, FileSignificance, FilePortfolioImpact,
		FileGroupImpact, FileForecastCompare, FileForecastFuture,
		FileWorkbook, FileExecutiveSummary,
	} {
		assert.FileExists(t, filepath.Join(dir, name), name)
	}

	summary, err := os.ReadFile(filepath.Join(dir, FileExecutiveSummary))
	require.NoError(t, err)
	assert.Contains(t, string(summary), rep.RunID)
}

func TestWriteWorkbook(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, testLogger())
	rep := testReport(true)

	require.NoError(t, w.WriteWorkbook(context.Background(), rep))

	f, err := excelize.OpenFile(filepath.Join(dir, FileWorkbook))
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, "Run Info")
	assert.Contains(t, sheets, "Market Shares")
	assert.Contains(t, sheets, "SOV Attribution")
	assert.Contains(t, sheets, "Forecast Future")

	runID, err := f.GetCellValue("Run Info", "B1")
	require.NoError(t, err)
	assert.Equal(t, rep.RunID, runID)

	// Headers land in row 1 of each table sheet.
	head, err := f.GetCellValue("Launch Ranking", "A1")
	require.NoError(t, err)
	assert.Equal(t, "rank", head)
}

func TestWriteAllWithoutForecast(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, testLogger())

	require.NoError(t, w.WriteAll(context.Background(), testReport(false)))

	assert.NoFileExists(t, filepath.Join(dir, FileForecastCompare))
	assert.FileExists(t, filepath.Join(dir, FileWorkbook))
}
