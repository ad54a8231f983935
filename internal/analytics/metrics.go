package analytics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/mnq-invest/futures-sim/pkg/types"
)

const weeksPerYear = 52.0

// Analyze derives return and risk metrics from a simulation's ledger. It is
// a pure function of the WeekRecord sequence; engine internals never leak
// into it. Outputs are rounded to two decimals, internal math runs at full
// precision.
func Analyze(result *types.SimulationResult) types.PerformanceMetrics {
	totalReturnPct := 0.0
	if result.TotalInvested > 0 {
		totalReturnPct = (result.FinalEquity/result.TotalInvested - 1) * 100
	}

	returns := returnSeries(result.WeeklyRecords)

	volatility, sharpe := volatilityAndSharpe(returns)
	profitFactor, winRate := profitFactorAndWinRate(result.WeeklyRecords)

	return types.PerformanceMetrics{
		TotalReturnPct:       round2(totalReturnPct),
		CAGR:                 round2(cagr(returns)),
		VolatilityAnnualized: round2(volatility),
		SharpeRatio:          round2(sharpe),
		MaxDrawdownPct:       round2(maxDrawdownPct(result.WeeklyRecords)),
		ProfitFactor:         round2(profitFactor),
		WinRatePct:           round2(winRate),
	}
}

// returnSeries collects the time-weighted weekly returns for weeks 2..N.
// Week 1 has no prior basis and is skipped.
func returnSeries(records []types.WeekRecord) []float64 {
	if len(records) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(records)-1)
	for _, rec := range records[1:] {
		returns = append(returns, rec.TimeWeightedReturn)
	}
	return returns
}

func volatilityAndSharpe(returns []float64) (volatility, sharpe float64) {
	if len(returns) < 2 {
		return 0, 0
	}
	stddev := stat.StdDev(returns, nil)
	if stddev == 0 {
		return 0, 0
	}
	volatility = stddev * math.Sqrt(weeksPerYear) * 100
	sharpe = stat.Mean(returns, nil) / stddev * math.Sqrt(weeksPerYear)
	return volatility, sharpe
}

// cagr annualizes the compounded weekly returns. A wipe-out week can carry a
// return below -1 and drive the compound factor to zero or negative; that
// case reports 0 instead of a NaN fractional power, extending the "0 when no
// full year elapsed" rule to unrepresentable growth.
func cagr(returns []float64) float64 {
	years := float64(len(returns)) / weeksPerYear
	if years <= 0 {
		return 0
	}
	compound := 1.0
	for _, r := range returns {
		compound *= 1 + r
	}
	if compound <= 0 {
		return 0
	}
	return (math.Pow(compound, 1/years) - 1) * 100
}

func maxDrawdownPct(records []types.WeekRecord) float64 {
	peak := 0.0
	maxDrawdown := 0.0
	for _, rec := range records {
		if rec.Equity > peak {
			peak = rec.Equity
		}
		if peak > 0 {
			if dd := (peak - rec.Equity) / peak; dd > maxDrawdown {
				maxDrawdown = dd
			}
		}
	}
	return maxDrawdown * 100
}

// profitFactorAndWinRate reconstructs the dollar pnl of each week from its
// time-weighted return applied to the previous week's equity. Weeks with no
// losses yield a profit factor of 0, not infinity.
func profitFactorAndWinRate(records []types.WeekRecord) (profitFactor, winRate float64) {
	if len(records) < 2 {
		return 0, 0
	}

	var gains, losses float64
	wins, valid := 0, 0
	for i := 1; i < len(records); i++ {
		pnl := records[i].TimeWeightedReturn * records[i-1].Equity
		valid++
		switch {
		case pnl > 0:
			gains += pnl
			wins++
		case pnl < 0:
			losses += -pnl
		}
	}

	if losses > 0 {
		profitFactor = gains / losses
	}
	if valid > 0 {
		winRate = float64(wins) / float64(valid) * 100
	}
	return profitFactor, winRate
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
