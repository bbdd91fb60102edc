package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/bunkerpal-api/internal/dto"
	appErrors "github.com/noah-isme/bunkerpal-api/pkg/errors"
)

type dashboardBuilder interface {
	Dashboard(ctx context.Context, userID string) (*dto.DashboardResponse, bool, error)
}

// SessionService runs the load-then-recalculate workflow once a user is known.
type SessionService struct {
	schedule  scheduleLoader
	recalc    recalculator
	dashboard dashboardBuilder
	logger    *zap.Logger
}

func NewSessionService(schedule scheduleLoader, recalc recalculator, dashboard dashboardBuilder, logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{schedule: schedule, recalc: recalc, dashboard: dashboard, logger: logger}
}

// Establish reports whether a timetable exists, rebuilds the subject summaries
// and returns the resulting dashboard. The recalculation invalidates the cached
// dashboard, so the returned one is always fresh.
func (s *SessionService) Establish(ctx context.Context, userID string) (*dto.SessionResponse, error) {
	if userID == "" {
		return nil, appErrors.ErrUnauthorized
	}

	week, err := s.schedule.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.recalc.Recalculate(ctx, userID); err != nil {
		return nil, err
	}
	dash, _, err := s.dashboard.Dashboard(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("session established", zap.String("user_id", userID), zap.Bool("has_timetable", week != nil))
	return &dto.SessionResponse{HasTimetable: week != nil, Dashboard: *dash}, nil
}
