package reports

import (
	"time"

	"github.com/google/uuid"

	"fmcgcli/internal/dataset"
	"fmcgcli/internal/forecast"
	"fmcgcli/internal/impact"
	"fmcgcli/internal/launch"
	"fmcgcli/internal/market"
	"fmcgcli/internal/sov"
)

// Report bundles every result of one analysis run for rendering. The
// forecast section is optional; the analyze pipeline may run without it.
type Report struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`

	Quality  dataset.QualityReport `json:"quality"`
	Market   market.Snapshot       `json:"market"`
	Launches []launch.Launch       `json:"launches"`
	SOV      sov.Result            `json:"sov"`
	Impact   impact.Result         `json:"impact"`

	Forecast *forecast.RunResult `json:"-"`
}

// NewReport stamps the results with a fresh run ID and timestamp.
func NewReport(quality dataset.QualityReport, snapshot market.Snapshot, launches []launch.Launch, sovResult sov.Result, impactResult impact.Result, fc *forecast.RunResult) Report {
	return Report{
		RunID:       uuid.New().String(),
		GeneratedAt: time.Now(),
		Quality:     quality,
		Market:      snapshot,
		Launches:    launches,
		SOV:         sovResult,
		Impact:      impactResult,
		Forecast:    fc,
	}
}
