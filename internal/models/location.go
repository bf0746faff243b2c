// models/location.go
package models

import "time"

type GeoUpdate struct {
	ID          int64     `json:"id,omitempty"`
	VolunteerID int       `json:"volunteer_id"`
	Lat         float64   `json:"lat"`
	Lon         float64   `json:"lon"`
	Accuracy    float64   `json:"accuracy,omitempty"`
	CreatedAt   time.Time `json:"ts,omitempty"`
}

// LastLocation is the most recent known position of a volunteer,
// served to the admin live map.
type LastLocation struct {
	VolunteerID int       `json:"volunteer_id"`
	Lat         float64   `json:"lat"`
	Lon         float64   `json:"lon"`
	Ts          time.Time `json:"ts"`
}
