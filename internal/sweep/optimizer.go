package sweep

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"

	simerrors "github.com/mnq-invest/futures-sim/internal/errors"
	"github.com/mnq-invest/futures-sim/internal/monitoring"
	"github.com/mnq-invest/futures-sim/internal/simulation"
	"github.com/mnq-invest/futures-sim/pkg/data"
	"github.com/mnq-invest/futures-sim/pkg/types"
)

const (
	// maxGridPoints bounds worst-case sweep latency; an oversized grid gets
	// its step enlarged instead of being truncated.
	maxGridPoints = 1000

	// dollarProfitTopN is fixed and independent of the caller's TopN.
	dollarProfitTopN = 5
)

// Params are the sweep parameters: the candidate amount grid plus the
// percentage-ranking objective.
type Params struct {
	AmountMin  float64       `json:"amount_min"`
	AmountMax  float64       `json:"amount_max"`
	StepSize   float64       `json:"step_size"`
	TopN       int           `json:"top_n"`
	SortKey    types.SortKey `json:"sort_key"`
	Descending bool          `json:"descending"`
}

// Validate checks the sweep parameters before any grid evaluation begins.
func (p Params) Validate() error {
	switch {
	case p.AmountMin <= 0:
		return &simerrors.InvalidConfigError{Field: "amountMin", Reason: "must be positive"}
	case p.AmountMax < p.AmountMin:
		return &simerrors.InvalidConfigError{Field: "amountMax", Reason: "must be at least amountMin"}
	case p.StepSize <= 0:
		return &simerrors.InvalidConfigError{Field: "stepSize", Reason: "must be positive"}
	case p.TopN < 1:
		return &simerrors.InvalidConfigError{Field: "topN", Reason: "must be at least 1"}
	}
	if _, err := types.ParseSortKey(string(p.SortKey)); err != nil {
		return &simerrors.InvalidConfigError{Field: "sortKey", Reason: err.Error()}
	}
	return nil
}

// Optimizer sweeps a grid of weekly contribution amounts, running one
// simulation per candidate against a single shared weekly price series.
type Optimizer struct {
	cfg     simulation.Config
	workers int
	log     zerolog.Logger
}

// NewOptimizer creates a sweep optimizer. workers <= 0 sizes the pool to the
// available cores.
func NewOptimizer(cfg simulation.Config, workers int, log zerolog.Logger) *Optimizer {
	return &Optimizer{cfg: cfg, workers: workers, log: log}
}

// Optimize evaluates every candidate amount and produces two independently
// ranked result sets. Individual candidate failures are logged and skipped;
// the sweep fails only when the parameters are invalid, the context is
// cancelled, or no candidate at all succeeded.
func (o *Optimizer) Optimize(ctx context.Context, prices []types.PricePoint, params Params) (*types.OptimizationReport, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := o.cfg.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()

	// Resample to weekly resolution exactly once. Every candidate reads this
	// series by reference; nothing downstream mutates it.
	weekly := data.ResampleWeekly(prices)

	grid := buildGrid(params.AmountMin, params.AmountMax, params.StepSize)
	o.log.Info().
		Int("grid_size", len(grid)).
		Int("weeks", len(weekly)).
		Str("sort_key", string(params.SortKey)).
		Msg("starting parameter sweep")

	pool := newWorkerPool(o.workers, weekly, o.cfg)
	results := pool.run(ctx, grid)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("sweep cancelled: %w", err)
	}

	// Single-threaded reduction over the per-candidate slots.
	candidates := make([]types.SweepCandidate, 0, len(grid))
	failed := 0
	for i, res := range results {
		if res.err != nil {
			failed++
			monitoring.RecordCandidateFailure()
			o.log.Warn().
				Float64("weekly_amount", grid[i]).
				Err(res.err).
				Msg("grid candidate failed, excluded from ranking")
			continue
		}
		candidates = append(candidates, res.candidate)
	}

	if len(candidates) == 0 {
		return nil, simerrors.Wrap(simerrors.ErrNoValidCandidates, simerrors.ErrorCategorySweep, "sweep", "optimize")
	}

	weeks := 0
	if len(candidates) > 0 {
		weeks = len(candidates[0].Result.WeeklyRecords)
	}

	report := &types.OptimizationReport{
		TestedGrid:        grid,
		TopByObjective:    rankByObjective(candidates, params.SortKey, params.Descending, params.TopN),
		TopByDollarProfit: rankByDollarProfit(candidates),
		Summary: types.SweepSummary{
			GridSize:   len(grid),
			Evaluated:  len(candidates),
			Failed:     failed,
			Weeks:      weeks,
			SortKey:    params.SortKey,
			Descending: params.Descending,
			Duration:   time.Since(start),
		},
	}

	monitoring.RecordSweep(len(grid), report.Summary.Duration)
	o.log.Info().
		Int("evaluated", len(candidates)).
		Int("failed", failed).
		Dur("duration", report.Summary.Duration).
		Msg("parameter sweep finished")

	return report, nil
}

// buildGrid produces the inclusive candidate grid. When the requested step
// would exceed maxGridPoints the step is enlarged so the grid lands exactly
// on the cap while still covering [min, max].
func buildGrid(min, max, step float64) []float64 {
	span := max - min
	if span <= 0 {
		return []float64{min}
	}

	points := int(math.Floor(span/step+1e-9)) + 1
	if points > maxGridPoints {
		step = span / float64(maxGridPoints-1)
		points = maxGridPoints
	}

	grid := make([]float64, 0, points+1)
	for i := 0; i < points; i++ {
		grid = append(grid, min+float64(i)*step)
	}
	if grid[len(grid)-1] < max-1e-9 {
		grid = append(grid, max)
	} else {
		grid[len(grid)-1] = max
	}
	return grid
}

// objectiveValue extracts the percentage-ranking sort key from a candidate.
func objectiveValue(c types.SweepCandidate, key types.SortKey) float64 {
	switch key {
	case types.SortBySharpeRatio:
		return c.Metrics.SharpeRatio
	case types.SortByProfitFactor:
		return c.Metrics.ProfitFactor
	case types.SortByReturnPerDollar:
		return c.ReturnPerInvestedDollar
	default:
		return c.Metrics.TotalReturnPct
	}
}

func rankByObjective(candidates []types.SweepCandidate, key types.SortKey, descending bool, topN int) []types.SweepCandidate {
	ranked := make([]types.SweepCandidate, len(candidates))
	copy(ranked, candidates)

	sort.SliceStable(ranked, func(i, j int) bool {
		vi, vj := objectiveValue(ranked[i], key), objectiveValue(ranked[j], key)
		if descending {
			return vi > vj
		}
		return vi < vj
	})

	if topN > len(ranked) {
		topN = len(ranked)
	}
	return ranked[:topN]
}

// rankByDollarProfit applies the fixed tie-break chain: dollar profit
// descending, Sharpe descending, volatility ascending, weekly amount
// ascending. Independent of the caller's sort key.
func rankByDollarProfit(candidates []types.SweepCandidate) []types.SweepCandidate {
	ranked := make([]types.SweepCandidate, len(candidates))
	copy(ranked, candidates)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.DollarProfit != b.DollarProfit {
			return a.DollarProfit > b.DollarProfit
		}
		if a.Metrics.SharpeRatio != b.Metrics.SharpeRatio {
			return a.Metrics.SharpeRatio > b.Metrics.SharpeRatio
		}
		if a.Metrics.VolatilityAnnualized != b.Metrics.VolatilityAnnualized {
			return a.Metrics.VolatilityAnnualized < b.Metrics.VolatilityAnnualized
		}
		return a.WeeklyAmount < b.WeeklyAmount
	})

	top := dollarProfitTopN
	if top > len(ranked) {
		top = len(ranked)
	}
	return ranked[:top]
}
