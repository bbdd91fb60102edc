package models

import (
	"strings"
	"time"
)

// SubjectKey normalises a subject name into its aggregation key.
// "Math", " math " and "MATH" share one summary.
func SubjectKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// SubjectSummary holds derived per-subject totals. Attended never exceeds Total.
type SubjectSummary struct {
	UserID          string    `db:"user_id" json:"-"`
	Key             string    `db:"subject_key" json:"key"`
	Name            string    `db:"name" json:"name"`
	TotalClasses    int       `db:"total_classes" json:"total_classes"`
	AttendedClasses int       `db:"attended_classes" json:"attended_classes"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// Projection is the pair of disjoint forecasts for one threshold.
// Bunkable assumes only skipping from now on; Needed assumes only attending.
type Projection struct {
	Target   int `json:"target"`
	Bunkable int `json:"bunkable"`
	Needed   int `json:"needed"`
}
