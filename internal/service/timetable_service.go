package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/bunkerpal-api/internal/dto"
	"github.com/noah-isme/bunkerpal-api/internal/models"
	appErrors "github.com/noah-isme/bunkerpal-api/pkg/errors"
)

type timetableStore interface {
	Get(ctx context.Context, userID string) (*models.Timetable, error)
	Replace(ctx context.Context, userID string, week models.WeeklySchedule) error
}

// TimetableConfig bounds schedule shape.
type TimetableConfig struct {
	MaxPeriods     int
	DefaultPeriods int
}

// TimetableService reads and replaces a user's weekly schedule.
type TimetableService struct {
	repo      timetableStore
	validator *validator.Validate
	logger    *zap.Logger
	cfg       TimetableConfig
}

func NewTimetableService(repo timetableStore, validate *validator.Validate, logger *zap.Logger, cfg TimetableConfig) *TimetableService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxPeriods <= 0 {
		cfg.MaxPeriods = 12
	}
	if cfg.DefaultPeriods <= 0 || cfg.DefaultPeriods > cfg.MaxPeriods {
		cfg.DefaultPeriods = 6
	}
	svc := &TimetableService{repo: repo, validator: validate, logger: logger, cfg: cfg}
	svc.validator.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		return models.IsWeekday(fl.Field().String())
	})
	return svc
}

// Load returns the stored week, or nil when the user has none yet.
func (s *TimetableService) Load(ctx context.Context, userID string) (models.WeeklySchedule, error) {
	if userID == "" {
		return nil, appErrors.ErrUnauthorized
	}
	tt, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable")
	}
	return tt.Week, nil
}

// Get returns the stored week or the blank template with Exists=false.
func (s *TimetableService) Get(ctx context.Context, userID string) (*dto.TimetableResponse, error) {
	if userID == "" {
		return nil, appErrors.ErrUnauthorized
	}
	tt, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &dto.TimetableResponse{Exists: false, Week: models.DefaultSchedule(s.cfg.DefaultPeriods)}, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable")
	}
	updated := tt.UpdatedAt
	return &dto.TimetableResponse{Exists: true, Week: tt.Week, UpdatedAt: &updated}, nil
}

// Save replaces the whole week. Omitted weekdays are stored empty.
func (s *TimetableService) Save(ctx context.Context, userID string, req dto.SaveTimetableRequest) (*dto.TimetableResponse, error) {
	if userID == "" {
		return nil, appErrors.ErrUnauthorized
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid timetable payload")
	}

	week := make(models.WeeklySchedule, len(models.Weekdays))
	for _, day := range models.Weekdays {
		periods := req.Week[day]
		if len(periods) > s.cfg.MaxPeriods {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s has more than %d periods", day, s.cfg.MaxPeriods))
		}
		cleaned := make([]string, len(periods))
		for i, subject := range periods {
			cleaned[i] = strings.TrimSpace(subject)
		}
		week[day] = cleaned
	}

	if err := s.repo.Replace(ctx, userID, week); err != nil {
		s.logger.Error("timetable save failed", zap.String("user_id", userID), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save timetable")
	}
	return &dto.TimetableResponse{Exists: true, Week: week}, nil
}

// Subjects lists distinct subjects in week order, first spelling wins.
func (s *TimetableService) Subjects(ctx context.Context, userID string) ([]string, error) {
	week, err := s.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return DistinctSubjects(week), nil
}

// DistinctSubjects walks weekdays then periods and keeps each normalised subject once.
func DistinctSubjects(week models.WeeklySchedule) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, day := range models.Weekdays {
		for _, subject := range week[day] {
			name := strings.TrimSpace(subject)
			key := models.SubjectKey(name)
			if key == "" {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, name)
		}
	}
	return out
}
