package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Weekdays lists the schedule keys in week order.
var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday"}

// WeeklySchedule maps a weekday name to its ordered period subjects.
// An empty string marks a free period.
type WeeklySchedule map[string][]string

// DefaultSchedule is the blank template offered before a timetable exists.
func DefaultSchedule(periods int) WeeklySchedule {
	if periods < 0 {
		periods = 0
	}
	week := make(WeeklySchedule, len(Weekdays))
	for _, day := range Weekdays {
		week[day] = make([]string, periods)
	}
	return week
}

// IsWeekday reports whether name is one of the schedule keys.
func IsWeekday(name string) bool {
	for _, day := range Weekdays {
		if day == name {
			return true
		}
	}
	return false
}

func (w WeeklySchedule) Value() (driver.Value, error) {
	if w == nil {
		w = WeeklySchedule{}
	}
	data, err := json.Marshal(map[string][]string(w))
	if err != nil {
		return nil, fmt.Errorf("marshal weekly schedule: %w", err)
	}
	return data, nil
}

func (w *WeeklySchedule) Scan(value interface{}) error {
	data, err := jsonBytes(value, "WeeklySchedule")
	if err != nil {
		return err
	}
	week := WeeklySchedule{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &week); err != nil {
			return fmt.Errorf("unmarshal weekly schedule: %w", err)
		}
	}
	*w = week
	return nil
}

// Timetable is the stored schedule row.
type Timetable struct {
	UserID    string         `db:"user_id" json:"-"`
	Week      WeeklySchedule `db:"week" json:"week"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
}

func jsonBytes(value interface{}, target string) ([]byte, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported type %T for %s", value, target)
	}
}
