package types

import (
	"fmt"
	"time"
)

// SortKey selects the objective used for the percentage-based ranking of a
// parameter sweep.
type SortKey string

const (
	SortByTotalReturn      SortKey = "total_return"
	SortBySharpeRatio      SortKey = "sharpe_ratio"
	SortByProfitFactor     SortKey = "profit_factor"
	SortByReturnPerDollar  SortKey = "return_per_invested_dollar"
)

// ParseSortKey maps a user-supplied string onto a SortKey.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(s) {
	case SortByTotalReturn, SortBySharpeRatio, SortByProfitFactor, SortByReturnPerDollar:
		return SortKey(s), nil
	}
	return "", fmt.Errorf("unknown sort key %q (want total_return, sharpe_ratio, profit_factor or return_per_invested_dollar)", s)
}

// SweepCandidate is one evaluated grid point: a weekly contribution amount
// together with its simulation outcome and derived metrics.
type SweepCandidate struct {
	WeeklyAmount            float64            `json:"weekly_amount"`
	Result                  SimulationResult   `json:"result"`
	Metrics                 PerformanceMetrics `json:"metrics"`
	DollarProfit            float64            `json:"dollar_profit"`
	ReturnPerInvestedDollar float64            `json:"return_per_invested_dollar"`
}

// SweepSummary describes how a sweep ran.
type SweepSummary struct {
	GridSize   int           `json:"grid_size"`
	Evaluated  int           `json:"evaluated"`
	Failed     int           `json:"failed"`
	Weeks      int           `json:"weeks"`
	SortKey    SortKey       `json:"sort_key"`
	Descending bool          `json:"descending"`
	Duration   time.Duration `json:"duration_ns"`
}

// OptimizationReport is the structured output of one parameter sweep:
// the tested amount grid plus two independently ranked result sets.
type OptimizationReport struct {
	TestedGrid        []float64        `json:"tested_grid"`
	TopByObjective    []SweepCandidate `json:"top_by_objective"`
	TopByDollarProfit []SweepCandidate `json:"top_by_dollar_profit"`
	Summary           SweepSummary     `json:"summary"`
}
