package dto

import (
	"time"

	"github.com/noah-isme/bunkerpal-api/internal/models"
)

// TimetableResponse carries the stored week, or the blank template when Exists is false.
type TimetableResponse struct {
	Exists    bool                  `json:"exists"`
	Week      models.WeeklySchedule `json:"week"`
	UpdatedAt *time.Time            `json:"updated_at,omitempty"`
}

// SaveTimetableRequest replaces the whole week.
type SaveTimetableRequest struct {
	Week map[string][]string `json:"week" validate:"required,dive,keys,weekday,endkeys,dive,max=80"`
}

// SubjectsResponse lists distinct timetable subjects.
type SubjectsResponse struct {
	Subjects []string `json:"subjects"`
}
