package report

import (
	"testing"
	"time"

	"github.com/careshare/csh_backendl/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(volunteerID int, start time.Time, hours float64) models.ShiftRow {
	h := hours
	return models.ShiftRow{
		Shift: models.Shift{
			VolunteerID: volunteerID,
			Status:      models.ShiftApproved,
			StartTime:   start,
			Hours:       &h,
		},
		VolunteerName: "Volunteer",
	}
}

func TestParseWindow(t *testing.T) {
	for _, valid := range []string{"weekly", "monthly", "yearly"} {
		kind, err := ParseWindow(valid)
		assert.NoError(t, err)
		assert.Equal(t, Window(valid), kind)
	}

	_, err := ParseWindow("daily")
	assert.Error(t, err)
}

func TestAggregate_EmptyInput(t *testing.T) {
	summary := Aggregate(nil, Monthly, time.Now())

	assert.Equal(t, 0.0, summary.TotalHours)
	assert.Equal(t, 0, summary.DistinctVolunteers)
	assert.Equal(t, 0, summary.SessionCount)
	require.NotNil(t, summary.Rows, "rows must serialize as [], not null")
	assert.Empty(t, summary.Rows)
}

func TestAggregate_TotalsAndDistinctVolunteers(t *testing.T) {
	ref := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	shifts := []models.ShiftRow{
		row(1, ref.AddDate(0, 0, -1), 1.5),
		row(2, ref.AddDate(0, 0, -2), 2.0),
		row(1, ref.AddDate(0, 0, -3), 1.5),
	}

	summary := Aggregate(shifts, Monthly, ref)

	assert.Equal(t, 5.0, summary.TotalHours)
	assert.Equal(t, 2, summary.DistinctVolunteers)
	assert.Equal(t, 3, summary.SessionCount)
}

func TestAggregate_RowsMostRecentFirst(t *testing.T) {
	ref := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	shifts := []models.ShiftRow{
		row(1, ref.AddDate(0, 0, -5), 1.0),
		row(2, ref.AddDate(0, 0, -1), 1.0),
		row(3, ref.AddDate(0, 0, -3), 1.0),
	}

	summary := Aggregate(shifts, Monthly, ref)

	require.Len(t, summary.Rows, 3)
	assert.Equal(t, 2, summary.Rows[0].VolunteerID)
	assert.Equal(t, 3, summary.Rows[1].VolunteerID)
	assert.Equal(t, 1, summary.Rows[2].VolunteerID)
}

func TestAggregate_NilHoursCountAsZero(t *testing.T) {
	ref := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	noHours := models.ShiftRow{Shift: models.Shift{VolunteerID: 1, StartTime: ref}}

	summary := Aggregate([]models.ShiftRow{noHours, row(2, ref, 2.5)}, Monthly, ref)

	assert.Equal(t, 2.5, summary.TotalHours)
	assert.Equal(t, 2, summary.SessionCount)
}

func TestInWindow_WeeklyIsTrailingSevenDays(t *testing.T) {
	ref := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	assert.True(t, InWindow(ref.AddDate(0, 0, -6), Weekly, ref))
	assert.True(t, InWindow(ref.AddDate(0, 0, -7), Weekly, ref))
	assert.False(t, InWindow(ref.AddDate(0, 0, -8), Weekly, ref))
	assert.False(t, InWindow(ref.AddDate(0, 0, 1), Weekly, ref))
}

func TestInWindow_MonthlyFollowsCalendar(t *testing.T) {
	// March 5 reference: Feb 25 is only eight days back but belongs to
	// the previous calendar month.
	ref := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)

	assert.True(t, InWindow(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), Monthly, ref))
	assert.True(t, InWindow(time.Date(2026, 3, 31, 23, 59, 0, 0, time.UTC), Monthly, ref))
	assert.False(t, InWindow(time.Date(2026, 2, 25, 12, 0, 0, 0, time.UTC), Monthly, ref))
	assert.False(t, InWindow(time.Date(2025, 3, 5, 12, 0, 0, 0, time.UTC), Monthly, ref))
}

func TestInWindow_YearlyFollowsCalendar(t *testing.T) {
	ref := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	assert.True(t, InWindow(time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), Yearly, ref))
	assert.False(t, InWindow(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), Yearly, ref))
}

func TestAggregate_TotalRoundedToTwoDecimals(t *testing.T) {
	ref := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	shifts := []models.ShiftRow{
		row(1, ref, 0.17),
		row(1, ref, 0.17),
		row(1, ref, 0.17),
	}

	summary := Aggregate(shifts, Monthly, ref)
	assert.Equal(t, 0.51, summary.TotalHours)
}
