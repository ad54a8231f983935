package data

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnq-invest/futures-sim/pkg/types"
)

func point(date string, close float64) types.PricePoint {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return types.PricePoint{Date: d, Close: close}
}

func TestResampleWeekly_Empty(t *testing.T) {
	assert.Nil(t, ResampleWeekly(nil))
	assert.Nil(t, ResampleWeekly([]types.PricePoint{}))
}

func TestResampleWeekly_DailyBarsKeepLastOfWeek(t *testing.T) {
	// Two full trading weeks of daily closes, Jan 2024. Mon 2024-01-01.
	daily := []types.PricePoint{
		point("2024-01-01", 100),
		point("2024-01-02", 101),
		point("2024-01-03", 102),
		point("2024-01-04", 103),
		point("2024-01-05", 104), // Friday, last of ISO week 1
		point("2024-01-08", 105),
		point("2024-01-09", 106),
		point("2024-01-10", 107),
		point("2024-01-11", 108),
		point("2024-01-12", 109), // Friday, last of ISO week 2
	}

	weekly := ResampleWeekly(daily)

	require.Len(t, weekly, 2)
	assert.Equal(t, point("2024-01-05", 104), weekly[0])
	assert.Equal(t, point("2024-01-12", 109), weekly[1])
}

func TestResampleWeekly_HolidayShortenedWeek(t *testing.T) {
	// Friday missing; Thursday's close represents the week.
	daily := []types.PricePoint{
		point("2024-01-01", 100),
		point("2024-01-04", 103), // last bar of week 1
		point("2024-01-12", 109),
	}

	weekly := ResampleWeekly(daily)

	require.Len(t, weekly, 2)
	assert.Equal(t, point("2024-01-04", 103), weekly[0])
	assert.Equal(t, point("2024-01-12", 109), weekly[1])
}

func TestResampleWeekly_AlreadyWeeklyPassesThrough(t *testing.T) {
	weekly := []types.PricePoint{
		point("2024-01-05", 100),
		point("2024-01-12", 101),
		point("2024-01-19", 102),
	}

	assert.Equal(t, weekly, ResampleWeekly(weekly))
}

func TestResampleWeekly_UnsortedInput(t *testing.T) {
	daily := []types.PricePoint{
		point("2024-01-12", 109),
		point("2024-01-05", 104),
		point("2024-01-03", 102),
		point("2024-01-10", 107),
	}

	weekly := ResampleWeekly(daily)

	require.Len(t, weekly, 2)
	assert.Equal(t, point("2024-01-05", 104), weekly[0])
	assert.Equal(t, point("2024-01-12", 109), weekly[1])
}

func TestResampleWeekly_YearBoundary(t *testing.T) {
	// 2024-12-30 and 2025-01-03 fall in the same ISO week (2025-W01), while
	// 2024-12-27 closes 2024-W52.
	daily := []types.PricePoint{
		point("2024-12-27", 100),
		point("2024-12-30", 101),
		point("2025-01-03", 102),
		point("2025-01-10", 103),
	}

	weekly := ResampleWeekly(daily)

	require.Len(t, weekly, 3)
	assert.Equal(t, point("2024-12-27", 100), weekly[0])
	assert.Equal(t, point("2025-01-03", 102), weekly[1])
	assert.Equal(t, point("2025-01-10", 103), weekly[2])
}

func TestResampleWeekly_DoesNotMutateInput(t *testing.T) {
	daily := []types.PricePoint{
		point("2024-01-03", 102),
		point("2024-01-05", 104),
	}
	snapshot := make([]types.PricePoint, len(daily))
	copy(snapshot, daily)

	_ = ResampleWeekly(daily)

	assert.Equal(t, snapshot, daily)
}
