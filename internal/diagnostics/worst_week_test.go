package diagnostics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mnq-invest/futures-sim/pkg/types"
)

func week(index int, date string, returnPct float64) types.WeekRecord {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return types.WeekRecord{WeekIndex: index, Date: d, ReturnPct: returnPct}
}

func TestFindWorstWeek_EmptyLedger(t *testing.T) {
	assert.Equal(t, types.WeekRecord{}, FindWorstWeek(nil))
	assert.Equal(t, types.WeekRecord{}, FindWorstWeek(&types.SimulationResult{}))
}

func TestFindWorstWeek_SingleRecord(t *testing.T) {
	only := week(1, "2024-01-05", 3.2)
	result := &types.SimulationResult{WeeklyRecords: []types.WeekRecord{only}}

	assert.Equal(t, only, FindWorstWeek(result))
}

func TestFindWorstWeek_PicksLowestReturn(t *testing.T) {
	result := &types.SimulationResult{WeeklyRecords: []types.WeekRecord{
		week(1, "2024-01-05", 1.0),
		week(2, "2024-01-12", -4.5),
		week(3, "2024-01-19", -12.3),
		week(4, "2024-01-26", 2.1),
	}}

	worst := FindWorstWeek(result)
	assert.Equal(t, 3, worst.WeekIndex)
	assert.Equal(t, -12.3, worst.ReturnPct)
}

func TestFindWorstWeek_TieKeepsEarliest(t *testing.T) {
	result := &types.SimulationResult{WeeklyRecords: []types.WeekRecord{
		week(1, "2024-01-05", -8.0),
		week(2, "2024-01-12", -8.0),
	}}

	assert.Equal(t, 1, FindWorstWeek(result).WeekIndex)
}

func TestFindWorstWeek_AllPositive(t *testing.T) {
	result := &types.SimulationResult{WeeklyRecords: []types.WeekRecord{
		week(1, "2024-01-05", 5.0),
		week(2, "2024-01-12", 1.5),
		week(3, "2024-01-19", 9.0),
	}}

	// The worst week is still well defined on an all-positive ledger.
	worst := FindWorstWeek(result)
	assert.Equal(t, 2, worst.WeekIndex)
	assert.Equal(t, 1.5, worst.ReturnPct)
}

func TestSummarize(t *testing.T) {
	rec := week(7, "2024-02-16", -3.25)
	summary := Summarize(rec)

	assert.Equal(t, rec.Date, summary.Date)
	assert.Equal(t, -3.25, summary.ReturnPct)
}
