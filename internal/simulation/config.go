package simulation

import (
	simerrors "github.com/mnq-invest/futures-sim/internal/errors"
)

// Config holds the contract and margin parameters of one leveraged DCA
// simulation. All numeric fields must be strictly positive and the
// maintenance margin must sit below the initial margin.
type Config struct {
	ContractMultiplier           float64 `json:"contract_multiplier"`
	InitialMarginPerContract     float64 `json:"initial_margin_per_contract"`
	MaintenanceMarginPerContract float64 `json:"maintenance_margin_per_contract"`
	CommissionPerContract        float64 `json:"commission_per_contract"`
	SlippagePerContract          float64 `json:"slippage_per_contract"`
	MaxContracts                 int     `json:"max_contracts"`
	MinEquityToNotionalRatio     float64 `json:"min_equity_to_notional_ratio"`
	MaxContractAddsPerWeek       int     `json:"max_contract_adds_per_week"`
}

// DefaultMNQConfig returns contract parameters in the ballpark of CME micro
// E-mini Nasdaq-100 futures.
func DefaultMNQConfig() Config {
	return Config{
		ContractMultiplier:           2.0,
		InitialMarginPerContract:     1800.0,
		MaintenanceMarginPerContract: 1600.0,
		CommissionPerContract:        0.62,
		SlippagePerContract:          0.50,
		MaxContracts:                 100,
		MinEquityToNotionalRatio:     0.05,
		MaxContractAddsPerWeek:       1,
	}
}

// Validate checks every field against its positivity/ordering constraint.
// Run once before a sweep starts; a violation aborts the whole sweep.
func (c Config) Validate() error {
	switch {
	case c.ContractMultiplier <= 0:
		return &simerrors.InvalidConfigError{Field: "contractMultiplier", Reason: "must be positive"}
	case c.InitialMarginPerContract <= 0:
		return &simerrors.InvalidConfigError{Field: "initialMarginPerContract", Reason: "must be positive"}
	case c.MaintenanceMarginPerContract <= 0:
		return &simerrors.InvalidConfigError{Field: "maintenanceMarginPerContract", Reason: "must be positive"}
	case c.MaintenanceMarginPerContract >= c.InitialMarginPerContract:
		return &simerrors.InvalidConfigError{Field: "maintenanceMarginPerContract", Reason: "must be below initialMarginPerContract"}
	case c.CommissionPerContract <= 0:
		return &simerrors.InvalidConfigError{Field: "commissionPerContract", Reason: "must be positive"}
	case c.SlippagePerContract <= 0:
		return &simerrors.InvalidConfigError{Field: "slippagePerContract", Reason: "must be positive"}
	case c.MaxContracts < 1:
		return &simerrors.InvalidConfigError{Field: "maxContracts", Reason: "must be at least 1"}
	case c.MinEquityToNotionalRatio <= 0:
		return &simerrors.InvalidConfigError{Field: "minEquityToNotionalRatio", Reason: "must be positive"}
	case c.MaxContractAddsPerWeek < 1:
		return &simerrors.InvalidConfigError{Field: "maxContractAddsPerWeek", Reason: "must be at least 1"}
	}
	return nil
}

// feePerContract is the round-cost of opening or force-closing one contract.
func (c Config) feePerContract() float64 {
	return c.CommissionPerContract + c.SlippagePerContract
}
