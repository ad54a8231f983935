package diagnostics

import (
	"time"

	"github.com/mnq-invest/futures-sim/pkg/types"
)

// WorstWeek is the minimal view handed to the narrative layer. The engine
// does no causal interpretation of why the week was bad.
type WorstWeek struct {
	Date      time.Time `json:"date"`
	ReturnPct float64   `json:"return_pct"`
}

// FindWorstWeek returns the ledger record with the lowest cumulative return
// percentage, falling back to the first record when the series has a single
// entry. An empty ledger yields a zero record.
func FindWorstWeek(result *types.SimulationResult) types.WeekRecord {
	if result == nil || len(result.WeeklyRecords) == 0 {
		return types.WeekRecord{}
	}

	worst := result.WeeklyRecords[0]
	for _, rec := range result.WeeklyRecords[1:] {
		if rec.ReturnPct < worst.ReturnPct {
			worst = rec
		}
	}
	return worst
}

// Summarize projects a week record onto the fields the narrative
// collaborator receives.
func Summarize(rec types.WeekRecord) WorstWeek {
	return WorstWeek{Date: rec.Date, ReturnPct: rec.ReturnPct}
}
