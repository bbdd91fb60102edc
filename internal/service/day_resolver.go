package service

import (
	"strings"
	"time"

	"github.com/noah-isme/bunkerpal-api/internal/models"
)

// DayPlan is the initial editing state for one calendar date.
type DayPlan struct {
	Date         string         `json:"date"`
	Weekday      string         `json:"weekday"`
	IsWeekend    bool           `json:"is_weekend"`
	HasTimetable bool           `json:"has_timetable"`
	Logged       bool           `json:"logged"`
	Kind         models.LogKind `json:"kind,omitempty"`
	Subjects     []string       `json:"subjects"`
	Periods      models.Periods `json:"periods"`
}

// ResolveDay works out what a date looks like before the user edits it.
// Weekends short-circuit. A stored log wins over the weekly schedule; otherwise
// every scheduled period starts out attended.
func ResolveDay(date time.Time, schedule models.WeeklySchedule, existing *models.DailyLog) DayPlan {
	plan := DayPlan{
		Date:     date.Format(models.DateLayout),
		Weekday:  strings.ToLower(date.Weekday().String()),
		Subjects: []string{},
		Periods:  models.Periods{},
	}
	if isWeekend(date) {
		plan.IsWeekend = true
		return plan
	}

	plan.HasTimetable = schedule != nil
	if subjects, ok := schedule[plan.Weekday]; ok {
		plan.Subjects = append(plan.Subjects, subjects...)
	}

	if existing != nil {
		plan.Logged = true
		plan.Kind = existing.Kind
		for idx, entry := range existing.Periods {
			plan.Periods[idx] = entry
		}
		return plan
	}

	for idx, subject := range plan.Subjects {
		entry := models.PeriodEntry{Attended: true}
		if subject != "" {
			name := subject
			entry.Subject = &name
		}
		plan.Periods[idx] = entry
	}
	return plan
}

// ParseDate accepts YYYY-MM-DD only.
func ParseDate(raw string) (time.Time, error) {
	return time.Parse(models.DateLayout, strings.TrimSpace(raw))
}
