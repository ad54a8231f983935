package sweep

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	simerrors "github.com/mnq-invest/futures-sim/internal/errors"
	"github.com/mnq-invest/futures-sim/internal/simulation"
	"github.com/mnq-invest/futures-sim/pkg/types"
)

func testConfig() simulation.Config {
	return simulation.Config{
		ContractMultiplier:           2.0,
		InitialMarginPerContract:     1000.0,
		MaintenanceMarginPerContract: 800.0,
		CommissionPerContract:        2.5,
		SlippagePerContract:          1.0,
		MaxContracts:                 100,
		MinEquityToNotionalRatio:     0.10,
		MaxContractAddsPerWeek:       1,
	}
}

func testParams() Params {
	return Params{
		AmountMin:  100,
		AmountMax:  300,
		StepSize:   100,
		TopN:       3,
		SortKey:    types.SortByTotalReturn,
		Descending: true,
	}
}

// risingSeries produces a steady uptrend, enough weeks for annualized
// metrics to be meaningful.
func risingSeries(weeks int) []types.PricePoint {
	base := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	series := make([]types.PricePoint, weeks)
	price := 500.0
	for i := 0; i < weeks; i++ {
		series[i] = types.PricePoint{Date: base.AddDate(0, 0, 7*i), Close: price}
		price *= 1.01
	}
	return series
}

func newTestOptimizer(cfg simulation.Config) *Optimizer {
	return NewOptimizer(cfg, 2, zerolog.Nop())
}

func TestOptimize_ParamValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
		field  string
	}{
		{"non-positive min", func(p *Params) { p.AmountMin = 0 }, "amountMin"},
		{"max below min", func(p *Params) { p.AmountMax = 50 }, "amountMax"},
		{"non-positive step", func(p *Params) { p.StepSize = 0 }, "stepSize"},
		{"zero topN", func(p *Params) { p.TopN = 0 }, "topN"},
		{"bad sort key", func(p *Params) { p.SortKey = "alpha" }, "sortKey"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := testParams()
			tt.mutate(&params)

			_, err := newTestOptimizer(testConfig()).Optimize(context.Background(), risingSeries(10), params)
			require.Error(t, err)

			var cfgErr *simerrors.InvalidConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestOptimize_InvalidSimulationConfigAbortsSweep(t *testing.T) {
	cfg := testConfig()
	cfg.MaintenanceMarginPerContract = cfg.InitialMarginPerContract

	_, err := newTestOptimizer(cfg).Optimize(context.Background(), risingSeries(10), testParams())
	require.Error(t, err)

	var cfgErr *simerrors.InvalidConfigError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestOptimize_SingleCandidateGrid(t *testing.T) {
	params := testParams()
	params.AmountMin = 500
	params.AmountMax = 500

	report, err := newTestOptimizer(testConfig()).Optimize(context.Background(), risingSeries(20), params)
	require.NoError(t, err)

	require.Equal(t, []float64{500}, report.TestedGrid)
	require.Len(t, report.TopByObjective, 1)
	require.Len(t, report.TopByDollarProfit, 1)
	assert.Equal(t, 500.0, report.TopByObjective[0].WeeklyAmount)
	assert.Equal(t, 500.0, report.TopByDollarProfit[0].WeeklyAmount)
	assert.Equal(t, 1, report.Summary.Evaluated)
	assert.Equal(t, 0, report.Summary.Failed)
}

// TestOptimize_RankingIndependence: the objective ranking follows the sort
// key, while the dollar-profit ranking obeys only its fixed tie-break chain.
func TestOptimize_RankingIndependence(t *testing.T) {
	prices := risingSeries(30)

	descending, err := newTestOptimizer(testConfig()).Optimize(context.Background(), prices, testParams())
	require.NoError(t, err)

	// Objective ranking strictly ordered by total return, descending.
	top := descending.TopByObjective
	require.NotEmpty(t, top)
	for i := 1; i < len(top); i++ {
		assert.GreaterOrEqual(t, top[i-1].Metrics.TotalReturnPct, top[i].Metrics.TotalReturnPct)
	}

	// Dollar-profit ranking ordered by its own chain.
	profits := descending.TopByDollarProfit
	require.NotEmpty(t, profits)
	for i := 1; i < len(profits); i++ {
		assert.GreaterOrEqual(t, profits[i-1].DollarProfit, profits[i].DollarProfit)
	}

	// Flipping the sort direction must not move the dollar-profit ranking.
	params := testParams()
	params.Descending = false
	ascending, err := newTestOptimizer(testConfig()).Optimize(context.Background(), prices, params)
	require.NoError(t, err)

	require.Equal(t, len(profits), len(ascending.TopByDollarProfit))
	for i := range profits {
		assert.Equal(t, profits[i].WeeklyAmount, ascending.TopByDollarProfit[i].WeeklyAmount)
	}

	// And the ascending objective ranking is the reverse ordering.
	ascTop := ascending.TopByObjective
	for i := 1; i < len(ascTop); i++ {
		assert.LessOrEqual(t, ascTop[i-1].Metrics.TotalReturnPct, ascTop[i].Metrics.TotalReturnPct)
	}
}

func TestOptimize_AllCandidatesFail(t *testing.T) {
	// A single price point means every candidate's simulation fails with
	// insufficient data; the sweep reports that no candidate succeeded.
	prices := risingSeries(1)

	_, err := newTestOptimizer(testConfig()).Optimize(context.Background(), prices, testParams())
	require.Error(t, err)
	assert.True(t, errors.Is(err, simerrors.ErrNoValidCandidates))
}

func TestOptimize_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestOptimizer(testConfig()).Optimize(ctx, risingSeries(30), testParams())
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestOptimize_Deterministic(t *testing.T) {
	prices := risingSeries(25)

	first, err := newTestOptimizer(testConfig()).Optimize(context.Background(), prices, testParams())
	require.NoError(t, err)
	second, err := newTestOptimizer(testConfig()).Optimize(context.Background(), prices, testParams())
	require.NoError(t, err)

	// Everything except wall-clock duration must match.
	first.Summary.Duration = 0
	second.Summary.Duration = 0
	require.Equal(t, first, second)
}

func TestBuildGrid_InclusiveOfMax(t *testing.T) {
	assert.Equal(t, []float64{100, 200, 300}, buildGrid(100, 300, 100))
	assert.Equal(t, []float64{100, 200, 250}, buildGrid(100, 250, 100))
	assert.Equal(t, []float64{100}, buildGrid(100, 100, 50))
}

func TestBuildGrid_CapsAtMaxPoints(t *testing.T) {
	grid := buildGrid(1, 100000, 0.01)

	assert.Len(t, grid, maxGridPoints)
	assert.Equal(t, 1.0, grid[0])
	assert.Equal(t, 100000.0, grid[len(grid)-1])

	// Step was enlarged, not truncated: the grid still spans the range.
	for i := 1; i < len(grid); i++ {
		assert.Greater(t, grid[i], grid[i-1])
	}
}

func BenchmarkOptimize(b *testing.B) {
	prices := risingSeries(104)
	params := testParams()
	params.AmountMax = 1000
	params.StepSize = 10
	opt := newTestOptimizer(testConfig())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = opt.Optimize(context.Background(), prices, params)
	}
}
