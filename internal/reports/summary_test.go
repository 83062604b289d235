package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrowthPercent(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		previous float64
		want     float64
	}{
		{"both zero", 0, 0, 0},
		{"previous zero current positive", 250, 0, 100},
		{"doubled", 200, 100, 100},
		{"halved", 50, 100, -50},
		{"rounded up", 115, 100, 15},
		{"rounded fraction", 133.4, 100, 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GrowthPercent(tt.current, tt.previous))
		})
	}
}

func TestMonthStart(t *testing.T) {
	loc := time.FixedZone("NPT", 5*3600+45*60)
	at := time.Date(2026, time.March, 17, 14, 30, 12, 0, loc)

	start := MonthStart(at)
	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, loc), start)
	assert.Equal(t, loc, start.Location())
}

func TestPeriodRange(t *testing.T) {
	now := time.Date(2026, time.March, 17, 12, 0, 0, 0, time.UTC)

	start, end, bounded := PeriodRange(PeriodThisMonth, now)
	require.True(t, bounded)
	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC), end)

	start, end, bounded = PeriodRange(PeriodLastMonth, now)
	require.True(t, bounded)
	assert.Equal(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), end)

	start, end, bounded = PeriodRange(PeriodThisYear, now)
	require.True(t, bounded)
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC), end)

	_, _, bounded = PeriodRange(PeriodAllTime, now)
	assert.False(t, bounded)
}

func TestPeriodRangeYearBoundary(t *testing.T) {
	now := time.Date(2026, time.January, 5, 8, 0, 0, 0, time.UTC)

	start, end, bounded := PeriodRange(PeriodLastMonth, now)
	require.True(t, bounded)
	assert.Equal(t, time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestTrailingMonthBounds(t *testing.T) {
	now := time.Date(2026, time.March, 17, 12, 0, 0, 0, time.UTC)

	bounds := trailingMonthBounds(now)
	require.Len(t, bounds, 6)

	assert.Equal(t, time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC), bounds[0].Start)
	for i, b := range bounds[:5] {
		assert.Equal(t, b.Start.AddDate(0, 1, 0), b.End, "bucket %d ends at the next month boundary", i)
		assert.False(t, b.EndInclusive)
	}

	// The final bucket's upper bound is now itself, inclusive, not the
	// next calendar month.
	last := bounds[5]
	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), last.Start)
	assert.Equal(t, now, last.End)
	assert.True(t, last.EndInclusive)
}

func TestTrailingMonthBoundsYearBoundary(t *testing.T) {
	now := time.Date(2026, time.February, 10, 8, 0, 0, 0, time.UTC)

	bounds := trailingMonthBounds(now)
	require.Len(t, bounds, 6)
	assert.Equal(t, time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC), bounds[0].Start)
	assert.Equal(t, time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC), bounds[3].Start)
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), bounds[4].Start)
	assert.Equal(t, now, bounds[5].End)
}

func TestParsePeriod(t *testing.T) {
	for _, valid := range []string{"all_time", "this_month", "last_month", "this_year"} {
		period, err := ParsePeriod(valid)
		require.NoError(t, err)
		assert.Equal(t, Period(valid), period)
	}

	_, err := ParsePeriod("last_year")
	assert.Error(t, err)
	_, err = ParsePeriod("")
	assert.Error(t, err)
}
