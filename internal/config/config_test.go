package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir moves into dir for the duration of the test so config file
// lookup is isolated.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "data", cfg.Paths.DataDir)
	assert.Equal(t, "reports", cfg.Paths.OutputDir)
	assert.Equal(t, 12, cfg.Analysis.LookbackMonths)
	assert.Equal(t, 5, cfg.Analysis.TopLaunches)
	assert.Equal(t, 6, cfg.Analysis.WindowMonths)
	assert.Equal(t, 12, cfg.Analysis.ForecastHorizon)
	assert.Empty(t, cfg.Analysis.Category)
}

func TestLoadFromEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("FMCG_LOGGING_LEVEL", "debug")
	t.Setenv("FMCG_PATHS_DATA_DIR", "/srv/fmcg/data")
	t.Setenv("FMCG_ANALYSIS_WINDOW_MONTHS", "3")
	t.Setenv("FMCG_ANALYSIS_CATEGORY", "Instant Noodle")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/srv/fmcg/data", cfg.Paths.DataDir)
	assert.Equal(t, 3, cfg.Analysis.WindowMonths)
	assert.Equal(t, "Instant Noodle", cfg.Analysis.Category)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	content := `analysis:
  category: RTD Tea
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))
	chdir(t, dir)

	cfg, err := Load()
	require.NoError(t, err)

	// Fields without an env value or default fall back to the file.
	assert.Equal(t, "RTD Tea", cfg.Analysis.Category)
	// Defaulted fields are untouched by the file.
	assert.Equal(t, 5, cfg.Analysis.TopLaunches)
}

func TestLoadFilePrecedence(t *testing.T) {
	dir := t.TempDir()
	content := `analysis:
  category: RTD Tea
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))
	chdir(t, dir)
	t.Setenv("FMCG_ANALYSIS_CATEGORY", "Instant Noodle")

	cfg, err := Load()
	require.NoError(t, err)

	// Environment wins over the file.
	assert.Equal(t, "Instant Noodle", cfg.Analysis.Category)
}

func TestLoadValidation(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("FMCG_ANALYSIS_WINDOW_MONTHS", "-2")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "window_months")
}

func TestLogger(t *testing.T) {
	cfg := &Config{Logging: LoggingConfig{Level: "debug", Format: "json"}}
	logger := cfg.Logger()
	require.NotNil(t, logger)
	assert.True(t, logger.Enabled(nil, slog.LevelDebug))

	cfg = &Config{Logging: LoggingConfig{Level: "info", Format: "text"}}
	logger = cfg.Logger()
	assert.False(t, logger.Enabled(nil, slog.LevelDebug))
	assert.True(t, logger.Enabled(nil, slog.LevelInfo))
}
