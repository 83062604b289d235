package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestActivityPeriodStart(t *testing.T) {
	// Tuesday, March 17th.
	now := time.Date(2026, time.March, 17, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		period string
		want   time.Time
	}{
		{"today", time.Date(2026, time.March, 17, 0, 0, 0, 0, time.UTC)},
		{"this_week", time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)},
		{"this_month", time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			start, ok := activityPeriodStart(tt.period, now)
			assert.True(t, ok)
			assert.Equal(t, tt.want, start)
		})
	}
}

func TestActivityPeriodStartOnSunday(t *testing.T) {
	// Already Sunday, so the week starts today.
	now := time.Date(2026, time.March, 15, 9, 0, 0, 0, time.UTC)

	start, ok := activityPeriodStart("this_week", now)
	assert.True(t, ok)
	assert.Equal(t, time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC), start)
}

func TestActivityPeriodStartWeekCrossesMonth(t *testing.T) {
	// Tuesday, April 1st: the week began the previous Sunday in March.
	now := time.Date(2025, time.April, 1, 12, 0, 0, 0, time.UTC)

	start, ok := activityPeriodStart("this_week", now)
	assert.True(t, ok)
	assert.Equal(t, time.Date(2025, time.March, 30, 0, 0, 0, 0, time.UTC), start)
}

func TestActivityPeriodStartUnknown(t *testing.T) {
	_, ok := activityPeriodStart("last_year", time.Now())
	assert.False(t, ok)
}
