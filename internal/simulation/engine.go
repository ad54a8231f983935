package simulation

import (
	"fmt"

	simerrors "github.com/mnq-invest/futures-sim/internal/errors"
	"github.com/mnq-invest/futures-sim/pkg/types"
)

// Simulate runs one full weekly DCA simulation over an ordered weekly close
// series, contributing weeklyAmount every week and adding leveraged
// contracts whenever margin allows.
//
// The function is pure: no I/O, no clock, no shared state. Identical inputs
// yield identical ledgers.
func Simulate(prices []types.PricePoint, weeklyAmount float64, cfg Config) (*types.SimulationResult, error) {
	if weeklyAmount <= 0 {
		return nil, &simerrors.InvalidConfigError{Field: "weeklyAmount", Reason: "must be positive"}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(prices) < 2 {
		return nil, fmt.Errorf("simulate: got %d price points: %w", len(prices), simerrors.ErrInsufficientData)
	}

	var (
		cashBalance    float64
		equity         float64
		totalContracts int
		totalInvested  float64
	)

	records := make([]types.WeekRecord, 0, len(prices))

	for i, bar := range prices {
		// 1. Mark-to-market the open position against last week's close.
		if i > 0 && totalContracts != 0 {
			pnl := (bar.Close - prices[i-1].Close) * cfg.ContractMultiplier * float64(totalContracts)
			cashBalance += pnl
			equity += pnl
		}

		equityBeforeContribution := equity

		// 2. Weekly cash contribution.
		cashBalance += weeklyAmount
		totalInvested += weeklyAmount
		equity += weeklyAmount

		// 3. Controlled position adds: up to MaxContractAddsPerWeek
		// single-contract adds, each gated by initial margin and the
		// equity-to-notional floor after fees.
		contractsAdded := 0
		for contractsAdded < cfg.MaxContractAddsPerWeek && totalContracts < cfg.MaxContracts {
			fee := cfg.feePerContract()
			equityAfterFees := equity - fee
			requiredInitial := float64(totalContracts+1) * cfg.InitialMarginPerContract
			notionalAfterAdd := float64(totalContracts+1) * bar.Close * cfg.ContractMultiplier

			if equity < requiredInitial || equityAfterFees < notionalAfterAdd*cfg.MinEquityToNotionalRatio {
				break
			}

			equity = equityAfterFees
			cashBalance -= fee
			totalContracts++
			contractsAdded++
		}

		// 4. Maintenance check: force-close one contract at a time until the
		// remaining position is covered or the position is flat.
		requiredMaintenance := float64(totalContracts) * cfg.MaintenanceMarginPerContract
		for totalContracts > 0 && equity < requiredMaintenance {
			fee := cfg.feePerContract()
			equity -= fee
			cashBalance -= fee
			totalContracts--
			requiredMaintenance = float64(totalContracts) * cfg.MaintenanceMarginPerContract
		}

		// 5. Fee-driven zero floor: a flat account cannot owe money. The
		// week's return basis resets with it, even when it was still
		// positive before the contribution, so a floored week always reads
		// as flat downstream.
		if totalContracts == 0 && equity < 0 {
			equity = 0
			cashBalance = 0
			equityBeforeContribution = 0
		}

		pnl := equity - totalInvested
		returnPct := 0.0
		if totalInvested > 0 {
			returnPct = pnl / totalInvested * 100
		}

		// Time-weighted return isolates the market-driven move from the cash
		// injection. A denominator at or below zero yields 0; degenerate
		// post-liquidation weeks therefore read as flat in every derived
		// metric.
		timeWeightedReturn := 0.0
		if equityBeforeContribution > 0 {
			timeWeightedReturn = (equity - equityBeforeContribution - weeklyAmount) / equityBeforeContribution
		}

		records = append(records, types.WeekRecord{
			WeekIndex:                 i + 1,
			Date:                      bar.Date,
			Price:                     bar.Close,
			ContributionAmount:        weeklyAmount,
			ContractsAdded:            contractsAdded,
			TotalContracts:            totalContracts,
			TotalInvested:             totalInvested,
			Equity:                    equity,
			PositionNotional:          float64(totalContracts) * bar.Close * cfg.ContractMultiplier,
			CashBalance:               cashBalance,
			RequiredMaintenanceMargin: requiredMaintenance,
			PnL:                       pnl,
			ReturnPct:                 returnPct,
			TimeWeightedReturn:        timeWeightedReturn,
		})
	}

	return &types.SimulationResult{
		WeeklyRecords:  records,
		TotalInvested:  totalInvested,
		FinalEquity:    equity,
		TotalContracts: totalContracts,
	}, nil
}
