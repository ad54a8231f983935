package data

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prices.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCSVProvider_LoadDefaultMapping(t *testing.T) {
	path := writeTempCSV(t, `date,close
2024-01-05,17500.25
2024-01-12,17610.50
2024-01-19,17420.00
`)

	provider := NewCSVProvider(path)
	series, err := provider.Series("MNQ", time.Time{}, time.Time{})
	require.NoError(t, err)

	require.Len(t, series, 3)
	assert.Equal(t, 17500.25, series[0].Close)
	assert.Equal(t, "2024-01-19", series[2].Date.Format("2006-01-02"))
}

func TestCSVProvider_OHLCVMapping(t *testing.T) {
	path := writeTempCSV(t, `date,open,high,low,close,volume
2024-01-05,17400,17520,17380,17500.25,120000
2024-01-12,17505,17650,17490,17610.50,98000
`)

	provider := NewCSVProvider(path)
	provider.SetColumnMapping(OHLCVCSVMapping)

	series, err := provider.Series("MNQ", time.Time{}, time.Time{})
	require.NoError(t, err)

	require.Len(t, series, 2)
	assert.Equal(t, 17500.25, series[0].Close)
	assert.Equal(t, 17610.50, series[1].Close)
}

func TestCSVProvider_SkipsMalformedRows(t *testing.T) {
	path := writeTempCSV(t, `date,close
2024-01-05,17500.25
not-a-date,17610.50
2024-01-12,not-a-number
2024-01-19,-5
2024-01-26,0
2024-02-02,17700.00
`)

	provider := NewCSVProvider(path)
	series, err := provider.Series("MNQ", time.Time{}, time.Time{})
	require.NoError(t, err)

	require.Len(t, series, 2)
	assert.Equal(t, 17500.25, series[0].Close)
	assert.Equal(t, 17700.00, series[1].Close)
}

func TestCSVProvider_SortsUnorderedFile(t *testing.T) {
	path := writeTempCSV(t, `date,close
2024-01-19,17420.00
2024-01-05,17500.25
2024-01-12,17610.50
`)

	provider := NewCSVProvider(path)
	series, err := provider.Series("MNQ", time.Time{}, time.Time{})
	require.NoError(t, err)

	require.Len(t, series, 3)
	for i := 1; i < len(series); i++ {
		assert.True(t, series[i-1].Date.Before(series[i].Date))
	}
}

func TestCSVProvider_RangeFilter(t *testing.T) {
	path := writeTempCSV(t, `date,close
2024-01-05,100
2024-01-12,101
2024-01-19,102
2024-01-26,103
`)

	provider := NewCSVProvider(path)
	start, _ := time.Parse("2006-01-02", "2024-01-12")
	end, _ := time.Parse("2006-01-02", "2024-01-19")

	series, err := provider.Series("MNQ", start, end)
	require.NoError(t, err)

	require.Len(t, series, 2)
	assert.Equal(t, 101.0, series[0].Close)
	assert.Equal(t, 102.0, series[1].Close)
}

func TestCSVProvider_CachesAcrossCalls(t *testing.T) {
	path := writeTempCSV(t, `date,close
2024-01-05,100
2024-01-12,101
`)

	provider := NewCSVProvider(path)

	first, err := provider.Series("MNQ", time.Time{}, time.Time{})
	require.NoError(t, err)

	// Remove the backing file; the second call must be served from cache.
	require.NoError(t, os.Remove(path))

	second, err := provider.Series("MNQ", time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, first, second)

	stats := provider.Stats()
	assert.Equal(t, int64(1), stats.HitCount)
	assert.Equal(t, int64(1), stats.MissCount)
	assert.Equal(t, 1, stats.CacheSize)

	provider.ClearCache()
	stats = provider.Stats()
	assert.Equal(t, int64(0), stats.HitCount)
	assert.Equal(t, 0, stats.CacheSize)

	_, err = provider.Series("MNQ", time.Time{}, time.Time{})
	assert.Error(t, err)
}

func TestCSVProvider_MissingFile(t *testing.T) {
	provider := NewCSVProvider(filepath.Join(t.TempDir(), "missing.csv"))
	_, err := provider.Series("MNQ", time.Time{}, time.Time{})
	assert.Error(t, err)
}

func TestCSVProvider_ReturnsFreshCopies(t *testing.T) {
	path := writeTempCSV(t, `date,close
2024-01-05,100
2024-01-12,101
`)

	provider := NewCSVProvider(path)

	first, err := provider.Series("MNQ", time.Time{}, time.Time{})
	require.NoError(t, err)
	first[0].Close = -999

	second, err := provider.Series("MNQ", time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 100.0, second[0].Close)
}
