package dto

import "github.com/noah-isme/bunkerpal-api/internal/models"

// PeriodInput is one edited period.
type PeriodInput struct {
	Subject  *string `json:"subject" validate:"omitempty,max=80"`
	Attended bool    `json:"attended"`
}

// SaveDayRequest replaces a date's log with an ordinary day.
type SaveDayRequest struct {
	Periods map[int]PeriodInput `json:"periods" validate:"dive,keys,min=0,max=63,endkeys"`
}

// ToPeriods converts the payload into stored periods, dropping blank subjects to null.
func (r SaveDayRequest) ToPeriods() models.Periods {
	out := make(models.Periods, len(r.Periods))
	for idx, in := range r.Periods {
		entry := models.PeriodEntry{Attended: in.Attended}
		if in.Subject != nil {
			if name := trimmed(*in.Subject); name != "" {
				entry.Subject = &name
			}
		}
		out[idx] = entry
	}
	return out
}

// RecalculateResponse returns the rebuilt summaries.
type RecalculateResponse struct {
	Subjects []models.SubjectSummary `json:"subjects"`
}
