// internal/services/shift/hours.go
package shift

import (
	"math"
	"time"
)

// HoursBetween returns the elapsed time between start and end in
// fractional hours, rounded to two decimal places. A 10:00 check-in
// and 11:30 check-out yields 1.5.
func HoursBetween(start, end time.Time) float64 {
	hours := end.Sub(start).Hours()
	return math.Round(hours*100) / 100
}
