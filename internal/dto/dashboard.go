package dto

import "time"

// AdviceAction tells the user which way to move.
type AdviceAction string

const (
	AdviceMaySkip    AdviceAction = "may_skip"
	AdviceMustAttend AdviceAction = "must_attend"
)

// Advice is one actionable line for a subject card.
type Advice struct {
	Action  AdviceAction `json:"action"`
	Target  int          `json:"target"`
	Classes int          `json:"classes"`
}

// ProjectionView pairs a target with its two disjoint forecasts.
type ProjectionView struct {
	Target   int `json:"target"`
	Bunkable int `json:"bunkable"`
	Needed   int `json:"needed"`
}

// SubjectStanding is one card on the dashboard.
type SubjectStanding struct {
	Key         string           `json:"key"`
	Name        string           `json:"name"`
	Attended    int              `json:"attended"`
	Total       int              `json:"total"`
	Percent     int              `json:"percent"`
	Status      string           `json:"status"`
	HasClasses  bool             `json:"has_classes"`
	Projections []ProjectionView `json:"projections"`
	Advice      []Advice         `json:"advice"`
}

// ThresholdView echoes the configured targets.
type ThresholdView struct {
	Low  int `json:"low"`
	Safe int `json:"safe"`
}

// DashboardResponse aggregates every subject standing for the user.
type DashboardResponse struct {
	Subjects    []SubjectStanding `json:"subjects"`
	Attended    int               `json:"attended"`
	Total       int               `json:"total"`
	Percent     int               `json:"percent"`
	Thresholds  ThresholdView     `json:"thresholds"`
	GeneratedAt time.Time         `json:"generated_at"`
}

// ProjectionQuery drives the ad-hoc GET /projection endpoint.
type ProjectionQuery struct {
	Attended int `form:"attended" validate:"min=0,ltefield=Total"`
	Total    int `form:"total" validate:"min=0"`
	Target   int `form:"target" validate:"required,gt=0,lt=100"`
}
