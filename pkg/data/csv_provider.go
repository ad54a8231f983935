package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/mnq-invest/futures-sim/pkg/types"
)

// CSVColumnMapping defines the column positions of a close-price CSV.
type CSVColumnMapping struct {
	DateCol    int
	CloseCol   int
	MinColumns int
	DateFormat string
}

// DefaultCSVMapping matches "date,close" exports with ISO-8601 dates.
var DefaultCSVMapping = CSVColumnMapping{
	DateCol:    0,
	CloseCol:   1,
	MinColumns: 2,
	DateFormat: "2006-01-02",
}

// OHLCVCSVMapping matches "date,open,high,low,close,volume" exports; only
// the close column feeds the simulation.
var OHLCVCSVMapping = CSVColumnMapping{
	DateCol:    0,
	CloseCol:   4,
	MinColumns: 6,
	DateFormat: "2006-01-02",
}

// CSVProvider implements PriceSeriesProvider over local CSV files, with an
// in-memory cache keyed by file path.
type CSVProvider struct {
	path    string
	mapping CSVColumnMapping

	cacheMu   sync.RWMutex
	cache     map[string][]types.PricePoint
	hitCount  int64
	missCount int64
}

// NewCSVProvider creates a provider reading from the given file.
func NewCSVProvider(path string) *CSVProvider {
	return &CSVProvider{
		path:    path,
		mapping: DefaultCSVMapping,
		cache:   make(map[string][]types.PricePoint),
	}
}

// SetColumnMapping overrides the default column layout.
func (p *CSVProvider) SetColumnMapping(mapping CSVColumnMapping) {
	p.mapping = mapping
}

// Series loads the full file (cached after the first read), then filters to
// [start, end]. The returned slice is a fresh copy; callers may hold it for
// the lifetime of a sweep.
func (p *CSVProvider) Series(symbol string, start, end time.Time) ([]types.PricePoint, error) {
	p.cacheMu.RLock()
	series, ok := p.cache[p.path]
	p.cacheMu.RUnlock()

	if ok {
		p.cacheMu.Lock()
		p.hitCount++
		p.cacheMu.Unlock()
		return filterRange(series, start, end), nil
	}

	loaded, err := p.loadFromFile(p.path)
	if err != nil {
		return nil, err
	}

	p.cacheMu.Lock()
	p.missCount++
	p.cache[p.path] = loaded
	p.cacheMu.Unlock()

	return filterRange(loaded, start, end), nil
}

// Stats returns cache hit/miss counters.
func (p *CSVProvider) Stats() CacheStats {
	p.cacheMu.RLock()
	defer p.cacheMu.RUnlock()
	return CacheStats{HitCount: p.hitCount, MissCount: p.missCount, CacheSize: len(p.cache)}
}

// ClearCache drops all cached series.
func (p *CSVProvider) ClearCache() {
	p.cacheMu.Lock()
	defer p.cacheMu.Unlock()
	p.cache = make(map[string][]types.PricePoint)
	p.hitCount = 0
	p.missCount = 0
}

func (p *CSVProvider) loadFromFile(path string) ([]types.PricePoint, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open price file %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	// Skip header.
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	var series []types.PricePoint
	line := 1
	for {
		record, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("error reading %s at line %d: %w", path, line, err)
		}
		line++

		if len(record) < p.mapping.MinColumns {
			continue
		}

		date, err := time.Parse(p.mapping.DateFormat, record[p.mapping.DateCol])
		if err != nil {
			continue
		}
		closePrice, err := strconv.ParseFloat(record[p.mapping.CloseCol], 64)
		if err != nil || closePrice <= 0 {
			continue
		}

		series = append(series, types.PricePoint{Date: date, Close: closePrice})
	}

	sort.Slice(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })
	return series, nil
}
