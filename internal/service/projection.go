package service

import (
	"github.com/noah-isme/bunkerpal-api/internal/models"
	appErrors "github.com/noah-isme/bunkerpal-api/pkg/errors"
)

// Status bands a subject's attendance percentage against the two thresholds.
type Status string

const (
	StatusCritical Status = "critical"
	StatusLow      Status = "low"
	StatusOnTrack  Status = "on_track"
)

// Thresholds are the low and safe attendance targets, low < safe.
type Thresholds struct {
	Low  int
	Safe int
}

// DefaultThresholds are 75% and 85%.
var DefaultThresholds = Thresholds{Low: 75, Safe: 85}

// Project returns how many classes can be missed and how many must be attended
// for summary to sit at target percent. The two numbers describe different
// futures and must not be combined.
//
// Everything is computed on integers (100*attended vs target*total) so values
// landing exactly on a threshold are not lost to float rounding.
func Project(summary models.SubjectSummary, target int) (models.Projection, error) {
	if target <= 0 || target >= 100 {
		return models.Projection{}, appErrors.Clone(appErrors.ErrValidation, "target must be between 1 and 99")
	}
	out := models.Projection{Target: target}
	total, attended := summary.TotalClasses, summary.AttendedClasses
	if total <= 0 {
		return out, nil
	}

	have := 100 * attended
	want := target * total
	if have >= want {
		out.Bunkable = (have - want) / target
		return out, nil
	}
	gap, step := want-have, 100-target
	out.Needed = (gap + step - 1) / step
	return out, nil
}

// Percentage is attended/total rounded half up to a whole percent, 0 with no classes.
func Percentage(summary models.SubjectSummary) int {
	if summary.TotalClasses <= 0 {
		return 0
	}
	return (200*summary.AttendedClasses + summary.TotalClasses) / (2 * summary.TotalClasses)
}

// StatusFor bands a percentage.
func StatusFor(percent int, th Thresholds) Status {
	switch {
	case percent < th.Low:
		return StatusCritical
	case percent < th.Safe:
		return StatusLow
	default:
		return StatusOnTrack
	}
}
