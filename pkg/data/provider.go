package data

import (
	"time"

	"github.com/mnq-invest/futures-sim/pkg/types"
)

// PriceSeriesProvider supplies an ordered close-price series for a symbol
// and date range. Implementations own fetching and caching; the simulation
// core only ever reads the returned slice.
type PriceSeriesProvider interface {
	Series(symbol string, start, end time.Time) ([]types.PricePoint, error)
}

// CacheStats reports provider cache behaviour.
type CacheStats struct {
	HitCount  int64
	MissCount int64
	CacheSize int
}

// filterRange returns the points of an ascending series that fall inside
// [start, end]. Zero bounds are open.
func filterRange(series []types.PricePoint, start, end time.Time) []types.PricePoint {
	out := make([]types.PricePoint, 0, len(series))
	for _, p := range series {
		if !start.IsZero() && p.Date.Before(start) {
			continue
		}
		if !end.IsZero() && p.Date.After(end) {
			continue
		}
		out = append(out, p)
	}
	return out
}
