package sweep

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/mnq-invest/futures-sim/internal/analytics"
	"github.com/mnq-invest/futures-sim/internal/monitoring"
	"github.com/mnq-invest/futures-sim/internal/simulation"
	"github.com/mnq-invest/futures-sim/pkg/types"
)

// evalResult is one grid candidate's outcome slot. Exactly one worker writes
// each slot, so no locking is needed beyond the job channel.
type evalResult struct {
	candidate types.SweepCandidate
	err       error
}

// workerPool evaluates grid candidates in parallel. Workers share only the
// read-only weekly price series; simulation purity makes the sweep
// embarrassingly parallel.
type workerPool struct {
	workerCount int
	weekly      []types.PricePoint
	cfg         simulation.Config
}

func newWorkerPool(workerCount int, weekly []types.PricePoint, cfg simulation.Config) *workerPool {
	if workerCount <= 0 {
		workerCount = runtime.NumCPU()
	}
	return &workerPool{workerCount: workerCount, weekly: weekly, cfg: cfg}
}

// run evaluates every grid amount and returns one result slot per candidate,
// index-aligned with the grid. The context is checked between candidates;
// cancellation stops feeding new work and drains the workers.
func (wp *workerPool) run(ctx context.Context, grid []float64) []evalResult {
	results := make([]evalResult, len(grid))

	workers := wp.workerCount
	if workers > len(grid) {
		workers = len(grid)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = wp.evaluate(grid[idx])
				select {
				case <-ctx.Done():
					return
				default:
				}
			}
		}()
	}

feed:
	for idx := range grid {
		select {
		case jobs <- idx:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	return results
}

// evaluate runs one simulation plus its performance analysis.
func (wp *workerPool) evaluate(weeklyAmount float64) evalResult {
	start := time.Now()
	result, err := simulation.Simulate(wp.weekly, weeklyAmount, wp.cfg)
	if err != nil {
		monitoring.RecordSimulation("error", time.Since(start))
		return evalResult{err: err}
	}
	monitoring.RecordSimulation("ok", time.Since(start))

	metrics := analytics.Analyze(result)
	dollarProfit := result.FinalEquity - result.TotalInvested

	returnPerDollar := 0.0
	if result.TotalInvested > 0 {
		returnPerDollar = dollarProfit / result.TotalInvested
	}

	return evalResult{candidate: types.SweepCandidate{
		WeeklyAmount:            weeklyAmount,
		Result:                  *result,
		Metrics:                 metrics,
		DollarProfit:            dollarProfit,
		ReturnPerInvestedDollar: returnPerDollar,
	}}
}
