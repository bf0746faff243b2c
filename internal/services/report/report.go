// internal/services/report/report.go
//
// Pure aggregation over completed shifts. No I/O here; handlers fetch
// the approved shifts and hand them in.
package report

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/careshare/csh_backendl/internal/models"
)

type Window string

const (
	Weekly  Window = "weekly"
	Monthly Window = "monthly"
	Yearly  Window = "yearly"
)

func ParseWindow(s string) (Window, error) {
	switch Window(s) {
	case Weekly, Monthly, Yearly:
		return Window(s), nil
	}
	return "", fmt.Errorf("unknown report window: %q", s)
}

// InWindow reports whether t falls inside the window anchored at ref.
// Weekly is the trailing seven days ending at ref; monthly and yearly
// follow the calendar, so a shift 20 days ago in the previous month is
// outside a monthly window.
func InWindow(t time.Time, kind Window, ref time.Time) bool {
	switch kind {
	case Weekly:
		return !t.Before(ref.AddDate(0, 0, -7)) && !t.After(ref)
	case Monthly:
		return t.Year() == ref.Year() && t.Month() == ref.Month()
	case Yearly:
		return t.Year() == ref.Year()
	}
	return false
}

type Summary struct {
	TotalHours         float64           `json:"total_hours"`
	DistinctVolunteers int               `json:"distinct_volunteers"`
	SessionCount       int               `json:"session_count"`
	Rows               []models.ShiftRow `json:"rows"`
}

// Aggregate folds the given shifts into window totals. Nil hours count
// as zero. Rows come back most recent first.
func Aggregate(shifts []models.ShiftRow, kind Window, ref time.Time) Summary {
	rows := make([]models.ShiftRow, 0)
	volunteers := make(map[int]struct{})
	var total float64

	for _, s := range shifts {
		if !InWindow(s.StartTime, kind, ref) {
			continue
		}
		rows = append(rows, s)
		volunteers[s.VolunteerID] = struct{}{}
		if s.Hours != nil {
			total += *s.Hours
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].StartTime.After(rows[j].StartTime)
	})

	return Summary{
		TotalHours:         math.Round(total*100) / 100,
		DistinctVolunteers: len(volunteers),
		SessionCount:       len(rows),
		Rows:               rows,
	}
}
