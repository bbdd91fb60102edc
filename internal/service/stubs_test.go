package service

import (
	"context"
	"database/sql"
	"sort"

	"github.com/noah-isme/bunkerpal-api/internal/models"
)

// memStore is an in-memory stand-in for the Postgres repositories.
type memStore struct {
	logs       map[string]map[string]models.DailyLog
	summaries  map[string]map[string]models.SubjectSummary
	timetables map[string]models.WeeklySchedule

	listLogsErr  error
	mergeErr     error
	replaceErr   error
	timetableErr error
	mergeCalls   int
	listLogCalls int
}

func newMemStore() *memStore {
	return &memStore{
		logs:       map[string]map[string]models.DailyLog{},
		summaries:  map[string]map[string]models.SubjectSummary{},
		timetables: map[string]models.WeeklySchedule{},
	}
}

func (m *memStore) putLog(userID string, log models.DailyLog) {
	if m.logs[userID] == nil {
		m.logs[userID] = map[string]models.DailyLog{}
	}
	log.UserID = userID
	m.logs[userID][log.Date] = log
}

// DailyLog repository

func (m *memStore) ListByUser(_ context.Context, userID string) ([]models.DailyLog, error) {
	m.listLogCalls++
	if m.listLogsErr != nil {
		return nil, m.listLogsErr
	}
	out := make([]models.DailyLog, 0, len(m.logs[userID]))
	for _, log := range m.logs[userID] {
		out = append(out, log)
	}
	// map order is random, which also checks the service does not rely on input order
	return out, nil
}

func (m *memStore) Get(_ context.Context, userID, date string) (*models.DailyLog, error) {
	log, ok := m.logs[userID][date]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &log, nil
}

func (m *memStore) Replace(_ context.Context, log *models.DailyLog) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.putLog(log.UserID, *log)
	return nil
}

// summaryRepo adapts memStore to the summary repository shape.
type summaryRepo struct{ *memStore }

func (s summaryRepo) ListByUser(_ context.Context, userID string) ([]models.SubjectSummary, error) {
	out := make([]models.SubjectSummary, 0, len(s.summaries[userID]))
	for _, sum := range s.summaries[userID] {
		out = append(out, sum)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (s summaryRepo) Merge(_ context.Context, sum models.SubjectSummary) error {
	s.mergeCalls++
	if s.mergeErr != nil {
		return s.mergeErr
	}
	if s.summaries[sum.UserID] == nil {
		s.summaries[sum.UserID] = map[string]models.SubjectSummary{}
	}
	s.summaries[sum.UserID][sum.Key] = sum
	return nil
}

// timetableRepo adapts memStore to the timetable repository shape.
type timetableRepo struct{ *memStore }

func (t timetableRepo) Get(_ context.Context, userID string) (*models.Timetable, error) {
	if t.timetableErr != nil {
		return nil, t.timetableErr
	}
	week, ok := t.timetables[userID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &models.Timetable{UserID: userID, Week: week}, nil
}

func (t timetableRepo) Replace(_ context.Context, userID string, week models.WeeklySchedule) error {
	if t.timetableErr != nil {
		return t.timetableErr
	}
	t.timetables[userID] = week
	return nil
}

type recordingInvalidator struct{ keys []string }

func (r *recordingInvalidator) Invalidate(_ context.Context, keys ...string) error {
	r.keys = append(r.keys, keys...)
	return nil
}
