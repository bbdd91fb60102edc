package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/bunkerpal-api/internal/models"
	appErrors "github.com/noah-isme/bunkerpal-api/pkg/errors"
)

type dailyLogLister interface {
	ListByUser(ctx context.Context, userID string) ([]models.DailyLog, error)
}

type subjectSummaryStore interface {
	ListByUser(ctx context.Context, userID string) ([]models.SubjectSummary, error)
	Merge(ctx context.Context, summary models.SubjectSummary) error
}

type dashboardInvalidator interface {
	Invalidate(ctx context.Context, keys ...string) error
}

// DashboardCacheKey is the cache key of a user's dashboard.
func DashboardCacheKey(userID string) string {
	return "dash:user:" + userID
}

// RecalculationService folds a user's daily logs into subject summaries.
type RecalculationService struct {
	logs      dailyLogLister
	summaries subjectSummaryStore
	cache     dashboardInvalidator
	metrics   *MetricsService
	logger    *zap.Logger
}

func NewRecalculationService(logs dailyLogLister, summaries subjectSummaryStore, cache dashboardInvalidator, metrics *MetricsService, logger *zap.Logger) *RecalculationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecalculationService{logs: logs, summaries: summaries, cache: cache, metrics: metrics, logger: logger}
}

type tally struct {
	name     string
	total    int
	attended int
}

// Recalculate rebuilds every summary of the user from the full log history and
// returns the reloaded list.
//
// Subjects are grouped by models.SubjectKey, so "Math" and "math" count as one
// subject. The display name is the spelling from the most recent log. Summaries
// whose subject no longer appears in any ordinary log are written back as 0/0.
// Writes are independent statements; a failure part way leaves earlier ones in
// place until the next run.
func (s *RecalculationService) Recalculate(ctx context.Context, userID string) ([]models.SubjectSummary, error) {
	if userID == "" {
		return nil, appErrors.ErrUnauthorized
	}
	start := time.Now()
	written, err := s.rebuild(ctx, userID)
	s.metrics.ObserveRecalculation(written, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, DashboardCacheKey(userID)); err != nil {
			s.logger.Warn("dashboard invalidation failed", zap.String("user_id", userID), zap.Error(err))
		}
	}

	summaries, err := s.summaries.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject summaries")
	}
	s.logger.Debug("attendance recalculated", zap.String("user_id", userID), zap.Int("subjects", len(summaries)))
	return summaries, nil
}

// ListSummaries returns the stored summaries without recomputing.
func (s *RecalculationService) ListSummaries(ctx context.Context, userID string) ([]models.SubjectSummary, error) {
	if userID == "" {
		return nil, appErrors.ErrUnauthorized
	}
	summaries, err := s.summaries.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject summaries")
	}
	return summaries, nil
}

func (s *RecalculationService) rebuild(ctx context.Context, userID string) (int, error) {
	logs, err := s.logs.ListByUser(ctx, userID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load daily logs")
	}
	existing, err := s.summaries.ListByUser(ctx, userID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject summaries")
	}

	totals := aggregate(logs)

	for _, old := range existing {
		if _, ok := totals[old.Key]; ok || (old.TotalClasses == 0 && old.AttendedClasses == 0) {
			continue
		}
		totals[old.Key] = &tally{name: old.Name}
	}

	keys := make([]string, 0, len(totals))
	for key := range totals {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for i, key := range keys {
		t := totals[key]
		err := s.summaries.Merge(ctx, models.SubjectSummary{
			UserID:          userID,
			Key:             key,
			Name:            t.name,
			TotalClasses:    t.total,
			AttendedClasses: t.attended,
		})
		if err != nil {
			return i, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to write subject summary")
		}
	}
	return len(keys), nil
}

// aggregate counts periods per normalised subject across ordinary logs.
// Holidays and blank subjects contribute nothing.
func aggregate(logs []models.DailyLog) map[string]*tally {
	ordered := make([]models.DailyLog, len(logs))
	copy(ordered, logs)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Date < ordered[j].Date })

	totals := make(map[string]*tally)
	for _, log := range ordered {
		if log.IsHoliday() {
			continue
		}
		for _, idx := range log.Periods.Indexes() {
			entry := log.Periods[idx]
			name := strings.TrimSpace(entry.SubjectName())
			if name == "" {
				continue
			}
			key := models.SubjectKey(name)
			t, ok := totals[key]
			if !ok {
				t = &tally{}
				totals[key] = t
			}
			t.name = name
			t.total++
			if entry.Attended {
				t.attended++
			}
		}
	}
	return totals
}
