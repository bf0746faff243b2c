// models/shift.go
package models

import "time"

// Shift statuses. A shift only moves forward:
// active -> pending_review -> approved | rejected.
const (
	ShiftActive        = "active"
	ShiftPendingReview = "pending_review"
	ShiftApproved      = "approved"
	ShiftRejected      = "rejected"
)

// Activity types
const (
	ActivitySandwichMaking = "sandwich_making"
	ActivityDistribution   = "distribution"
	ActivityParentDropoff  = "parent_dropoff"
)

type Shift struct {
	ID          int        `json:"id"`
	VolunteerID int        `json:"volunteer_id"`
	Activity    string     `json:"activity"`
	Status      string     `json:"status"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	Hours       *float64   `json:"hours,omitempty"`
}

// ShiftRow is a shift joined with its volunteer's name, as shown on
// the admin review and report screens.
type ShiftRow struct {
	Shift
	VolunteerName string `json:"volunteer_name"`
}

func ValidActivity(activity string) bool {
	switch activity {
	case ActivitySandwichMaking, ActivityDistribution, ActivityParentDropoff:
		return true
	}
	return false
}
