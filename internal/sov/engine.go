package sov

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"fmcgcli/internal/dataset"
	"fmcgcli/internal/launch"
)

// Engine attributes each launch's post-launch revenue to cannibalization,
// competitor displacement, and market expansion.
type Engine struct {
	ds           *dataset.Dataset
	windowMonths int
	concurrency  int
	logger       *slog.Logger
}

// NewEngine creates a source-of-volume engine over the integrated dataset.
// windowMonths <= 0 falls back to DefaultWindowMonths.
func NewEngine(ds *dataset.Dataset, windowMonths int, logger *slog.Logger) *Engine {
	if windowMonths <= 0 {
		windowMonths = DefaultWindowMonths
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		ds:           ds,
		windowMonths: windowMonths,
		concurrency:  4,
		logger:       logger,
	}
}

// Execute runs the attribution for every supplied launch. Launches are
// mutually independent, so they are analyzed under a bounded errgroup;
// results are assembled back in input order so output is deterministic.
// An empty launch list returns empty structures, not an error.
func (e *Engine) Execute(ctx context.Context, launches []launch.Launch) (Result, error) {
	result := Result{
		Launches:     make([]string, 0, len(launches)),
		ByLaunch:     make(map[string]Record, len(launches)),
		Significance: make(map[string][]SignificanceTest, len(launches)),
	}

	if len(launches) == 0 {
		e.logger.WarnContext(ctx, "no launches supplied for SOV analysis")
		return result, nil
	}

	e.logger.InfoContext(ctx, "starting SOV analysis",
		"launches", len(launches),
		"window_months", e.windowMonths,
	)

	records := make([]Record, len(launches))
	tests := make([][]SignificanceTest, len(launches))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i, l := range launches {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			records[i] = e.analyzeLaunch(l)
			tests[i] = e.testSignificance(l, records[i])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, fmt.Errorf("SOV analysis: %w", err)
	}

	// Serial assembly preserves the input ranking order.
	for i, l := range launches {
		result.Launches = append(result.Launches, l.ProductID)
		result.ByLaunch[l.ProductID] = records[i]
		result.Significance[l.ProductID] = tests[i]
	}

	e.logger.InfoContext(ctx, "SOV analysis completed", "records", len(result.ByLaunch))

	return result, nil
}

// analyzeLaunch computes the full attribution for one launch in a single
// pass over the integrated sales table.
func (e *Engine) analyzeLaunch(l launch.Launch) Record {
	preStart := l.LaunchDate.AddDate(0, -e.windowMonths, 0)
	postEnd := l.LaunchDate.AddDate(0, e.windowMonths, 0)

	var (
		ownRevenue, ownUnits          float64
		preCompetitor, postCompetitor float64
		preCategory, postCategory     float64
	)
	preSibling := make(map[string]float64)
	postSibling := make(map[string]float64)
	siblingNames := make(map[string]string)

	for _, s := range e.ds.Sales {
		pre := inWindow(s.Date, preStart, l.LaunchDate)
		post := inWindow(s.Date, l.LaunchDate, postEnd)
		if !pre && !post {
			continue
		}

		if s.ProductID == l.ProductID {
			if post {
				ownRevenue += s.Revenue
				ownUnits += s.UnitsSold
			}
			if pre {
				preCategory += s.Revenue
			} else {
				postCategory += s.Revenue
			}
			continue
		}

		if s.Type != l.Type {
			continue
		}

		if pre {
			preCategory += s.Revenue
		} else {
			postCategory += s.Revenue
		}

		if s.Brand == l.Brand {
			siblingNames[s.ProductID] = s.ProductName
			if pre {
				preSibling[s.ProductID] += s.Revenue
			} else {
				postSibling[s.ProductID] += s.Revenue
			}
		} else {
			if pre {
				preCompetitor += s.Revenue
			} else {
				postCompetitor += s.Revenue
			}
		}
	}

	// Per-product cannibalization with a zero floor: only siblings present
	// in both windows can be cannibalized, and gains never net against
	// losses elsewhere.
	var cannibalizedRevenue float64
	var cannibalized []CannibalizedProduct

	siblingIDs := make([]string, 0, len(preSibling))
	for id := range preSibling {
		siblingIDs = append(siblingIDs, id)
	}
	sort.Strings(siblingIDs)

	for _, id := range siblingIDs {
		postRev, ok := postSibling[id]
		if !ok {
			continue
		}
		preRev := preSibling[id]
		change := postRev - preRev
		if change >= 0 {
			continue
		}

		loss := -change
		cannibalizedRevenue += loss

		pctChange := 0.0
		if preRev > 0 {
			pctChange = change / preRev * 100
		}

		cannibalized = append(cannibalized, CannibalizedProduct{
			ProductID:   id,
			ProductName: siblingNames[id],
			RevenueLoss: loss,
			PctChange:   pctChange,
		})
	}

	competitorLoss := 0.0
	if preCompetitor > postCompetitor {
		competitorLoss = preCompetitor - postCompetitor
	}

	marketExpansion := postCategory - preCategory - ownRevenue

	var breakdown Breakdown
	if ownRevenue > 0 {
		breakdown = Breakdown{
			CannibalizationPct: cannibalizedRevenue / ownRevenue * 100,
			CompetitorPct:      competitorLoss / ownRevenue * 100,
			ExpansionPct:       marketExpansion / ownRevenue * 100,
		}
	}

	return Record{
		ProductID:            l.ProductID,
		ProductName:          l.ProductName,
		LaunchDate:           l.LaunchDate,
		NewProductRevenue:    ownRevenue,
		NewProductUnits:      ownUnits,
		CannibalizedRevenue:  cannibalizedRevenue,
		CannibalizedProducts: cannibalized,
		CompetitorLoss:       competitorLoss,
		MarketExpansion:      marketExpansion,
		Breakdown:            breakdown,
	}
}

// inWindow reports whether t falls in [start, end).
func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}
