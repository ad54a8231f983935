package data

import (
	"sort"

	"github.com/mnq-invest/futures-sim/pkg/types"
)

// ResampleWeekly collapses an ascending close-price series to one point per
// ISO week, keeping the last observation of each week (Friday-close
// convention when daily bars are supplied). A series that is already weekly
// passes through with at most its dates preserved.
//
// The result is a fresh slice; a sweep resamples exactly once and shares the
// result read-only across every grid candidate.
func ResampleWeekly(series []types.PricePoint) []types.PricePoint {
	if len(series) == 0 {
		return nil
	}

	type weekKey struct {
		year int
		week int
	}

	lastOfWeek := make(map[weekKey]types.PricePoint, len(series))
	for _, p := range series {
		year, week := p.Date.ISOWeek()
		key := weekKey{year, week}
		if cur, ok := lastOfWeek[key]; !ok || p.Date.After(cur.Date) {
			lastOfWeek[key] = p
		}
	}

	out := make([]types.PricePoint, 0, len(lastOfWeek))
	for _, p := range lastOfWeek {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
