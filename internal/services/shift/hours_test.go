package shift

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHoursBetween_NinetyMinutes(t *testing.T) {
	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 10, 11, 30, 0, 0, time.UTC)

	assert.Equal(t, 1.5, HoursBetween(start, end))
}

func TestHoursBetween_RoundsToTwoDecimals(t *testing.T) {
	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	// 100 minutes = 1.666... hours, rounds to 1.67
	assert.Equal(t, 1.67, HoursBetween(start, start.Add(100*time.Minute)))

	// 10 minutes = 0.1666... hours, rounds to 0.17
	assert.Equal(t, 0.17, HoursBetween(start, start.Add(10*time.Minute)))
}

func TestHoursBetween_ZeroDuration(t *testing.T) {
	now := time.Now()
	assert.Equal(t, 0.0, HoursBetween(now, now))
}

func TestHoursBetween_FullDay(t *testing.T) {
	start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	assert.Equal(t, 24.0, HoursBetween(start, end))
}
