package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// DateLayout is the ISO form used for daily log keys.
const DateLayout = "2006-01-02"

// LogKind distinguishes ordinary days from holidays.
type LogKind string

const (
	LogKindOrdinary LogKind = "ordinary"
	LogKindHoliday  LogKind = "holiday"
)

// PeriodEntry records one period of one day.
type PeriodEntry struct {
	Subject  *string `json:"subject"`
	Attended bool    `json:"attended"`
}

// SubjectName returns the subject or "" for a free period.
func (p PeriodEntry) SubjectName() string {
	if p.Subject == nil {
		return ""
	}
	return *p.Subject
}

// Periods maps a 0-based period index to its entry.
type Periods map[int]PeriodEntry

// Indexes returns the period indexes in ascending order.
func (p Periods) Indexes() []int {
	idx := make([]int, 0, len(p))
	for i := range p {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	return idx
}

func (p Periods) Value() (driver.Value, error) {
	if p == nil {
		p = Periods{}
	}
	data, err := json.Marshal(map[int]PeriodEntry(p))
	if err != nil {
		return nil, fmt.Errorf("marshal periods: %w", err)
	}
	return data, nil
}

func (p *Periods) Scan(value interface{}) error {
	data, err := jsonBytes(value, "Periods")
	if err != nil {
		return err
	}
	periods := Periods{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &periods); err != nil {
			return fmt.Errorf("unmarshal periods: %w", err)
		}
	}
	*p = periods
	return nil
}

// DailyLog is one user's record for one calendar date.
type DailyLog struct {
	UserID    string    `db:"user_id" json:"-"`
	Date      string    `db:"log_date" json:"date"`
	Kind      LogKind   `db:"kind" json:"kind" validate:"log_kind"`
	Periods   Periods   `db:"periods" json:"periods"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

func (l DailyLog) IsHoliday() bool {
	return l.Kind == LogKindHoliday
}
