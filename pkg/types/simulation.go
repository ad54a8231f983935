package types

import "time"

// WeekRecord is one row of the per-week simulation ledger. Records are
// immutable once appended; equity and contract counts are always
// non-negative at a persisted record.
type WeekRecord struct {
	WeekIndex                 int       `json:"week_index"`
	Date                      time.Time `json:"date"`
	Price                     float64   `json:"price"`
	ContributionAmount        float64   `json:"contribution_amount"`
	ContractsAdded            int       `json:"contracts_added"`
	TotalContracts            int       `json:"total_contracts"`
	TotalInvested             float64   `json:"total_invested"`
	Equity                    float64   `json:"equity"`
	PositionNotional          float64   `json:"position_notional"`
	CashBalance               float64   `json:"cash_balance"`
	RequiredMaintenanceMargin float64   `json:"required_maintenance_margin"`
	PnL                       float64   `json:"pnl"`
	ReturnPct                 float64   `json:"return_pct"`
	TimeWeightedReturn        float64   `json:"time_weighted_return"`
}

// SimulationResult is the full outcome of one weekly DCA simulation.
// A fresh value is produced per Simulate call and never mutated afterwards.
type SimulationResult struct {
	WeeklyRecords  []WeekRecord `json:"weekly_records"`
	TotalInvested  float64      `json:"total_invested"`
	FinalEquity    float64      `json:"final_equity"`
	TotalContracts int          `json:"total_contracts"`
}

// PerformanceMetrics are derived from a SimulationResult's time-weighted
// weekly returns. Values are rounded to two decimals at this boundary;
// everything upstream runs at full precision.
type PerformanceMetrics struct {
	TotalReturnPct       float64 `json:"total_return_pct"`
	CAGR                 float64 `json:"cagr"`
	VolatilityAnnualized float64 `json:"volatility_annualized"`
	SharpeRatio          float64 `json:"sharpe_ratio"`
	MaxDrawdownPct       float64 `json:"max_drawdown_pct"`
	ProfitFactor         float64 `json:"profit_factor"`
	WinRatePct           float64 `json:"win_rate_pct"`
}
