package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// ConfigFileName is the optional YAML configuration file looked up next
// to the working directory.
const ConfigFileName = "fmcgcli.yaml"

// Config represents the complete application configuration.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Analysis AnalysisConfig `yaml:"analysis" envconfig:"ANALYSIS"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format string `yaml:"format" envconfig:"FORMAT" default:"text"`
}

// PathsConfig contains file system paths configuration.
type PathsConfig struct {
	DataDir   string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data"`
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR" default:"reports"`
}

// AnalysisConfig contains the analytic pipeline parameters.
type AnalysisConfig struct {
	LookbackMonths  int    `yaml:"lookback_months" envconfig:"LOOKBACK_MONTHS" default:"12"`
	TopLaunches     int    `yaml:"top_launches" envconfig:"TOP_LAUNCHES" default:"5"`
	WindowMonths    int    `yaml:"window_months" envconfig:"WINDOW_MONTHS" default:"6"`
	ForecastHorizon int    `yaml:"forecast_horizon" envconfig:"FORECAST_HORIZON" default:"12"`
	Category        string `yaml:"category" envconfig:"CATEGORY"`
}

// Load loads configuration from environment variables and the optional
// config file. Environment variables take precedence.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("FMCG", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	configFile := configFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileCfg, cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Logger builds the process logger described by the logging section.
func (c *Config) Logger() *slog.Logger {
	var level slog.Level
	switch c.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if c.Logging.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}

func (c *Config) validate() error {
	if c.Analysis.LookbackMonths <= 0 {
		return fmt.Errorf("lookback_months must be positive: %d", c.Analysis.LookbackMonths)
	}
	if c.Analysis.TopLaunches <= 0 {
		return fmt.Errorf("top_launches must be positive: %d", c.Analysis.TopLaunches)
	}
	if c.Analysis.WindowMonths <= 0 {
		return fmt.Errorf("window_months must be positive: %d", c.Analysis.WindowMonths)
	}
	if c.Analysis.ForecastHorizon <= 0 {
		return fmt.Errorf("forecast_horizon must be positive: %d", c.Analysis.ForecastHorizon)
	}
	return nil
}

func configFilePath() string {
	if dir, err := os.Getwd(); err == nil {
		return filepath.Join(dir, ConfigFileName)
	}
	return ConfigFileName
}

func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence;
// env fields still at their zero value fall back to the file).
func mergeConfigs(fileConfig, envConfig Config) Config {
	if envConfig.Logging.Level == "" {
		envConfig.Logging.Level = fileConfig.Logging.Level
	}
	if envConfig.Logging.Format == "" {
		envConfig.Logging.Format = fileConfig.Logging.Format
	}
	if envConfig.Paths.DataDir == "" {
		envConfig.Paths.DataDir = fileConfig.Paths.DataDir
	}
	if envConfig.Paths.OutputDir == "" {
		envConfig.Paths.OutputDir = fileConfig.Paths.OutputDir
	}
	if envConfig.Analysis.LookbackMonths == 0 {
		envConfig.Analysis.LookbackMonths = fileConfig.Analysis.LookbackMonths
	}
	if envConfig.Analysis.TopLaunches == 0 {
		envConfig.Analysis.TopLaunches = fileConfig.Analysis.TopLaunches
	}
	if envConfig.Analysis.WindowMonths == 0 {
		envConfig.Analysis.WindowMonths = fileConfig.Analysis.WindowMonths
	}
	if envConfig.Analysis.ForecastHorizon == 0 {
		envConfig.Analysis.ForecastHorizon = fileConfig.Analysis.ForecastHorizon
	}
	if envConfig.Analysis.Category == "" {
		envConfig.Analysis.Category = fileConfig.Analysis.Category
	}
	return envConfig
}
