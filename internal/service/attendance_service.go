package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/bunkerpal-api/internal/dto"
	"github.com/noah-isme/bunkerpal-api/internal/models"
	appErrors "github.com/noah-isme/bunkerpal-api/pkg/errors"
)

type dailyLogStore interface {
	Get(ctx context.Context, userID, date string) (*models.DailyLog, error)
	Replace(ctx context.Context, log *models.DailyLog) error
}

type scheduleLoader interface {
	Load(ctx context.Context, userID string) (models.WeeklySchedule, error)
}

type recalculator interface {
	Recalculate(ctx context.Context, userID string) ([]models.SubjectSummary, error)
}

// AttendanceService resolves, saves and clears single days.
// Every write replaces the date's log outright and is followed by a recalculation.
type AttendanceService struct {
	logs       dailyLogStore
	schedule   scheduleLoader
	recalc     recalculator
	validator  *validator.Validate
	logger     *zap.Logger
	maxPeriods int
}

func NewAttendanceService(logs dailyLogStore, schedule scheduleLoader, recalc recalculator, validate *validator.Validate, logger *zap.Logger, maxPeriods int) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxPeriods <= 0 {
		maxPeriods = 12
	}
	svc := &AttendanceService{
		logs:       logs,
		schedule:   schedule,
		recalc:     recalc,
		validator:  validate,
		logger:     logger,
		maxPeriods: maxPeriods,
	}
	svc.validator.RegisterValidation("log_kind", func(fl validator.FieldLevel) bool {
		switch models.LogKind(fl.Field().String()) {
		case models.LogKindOrdinary, models.LogKindHoliday:
			return true
		default:
			return false
		}
	})
	return svc
}

// Resolve returns the editing state for date. Weekends skip all lookups.
func (s *AttendanceService) Resolve(ctx context.Context, userID, date string) (*DayPlan, error) {
	if userID == "" {
		return nil, appErrors.ErrUnauthorized
	}
	day, err := parseDay(date)
	if err != nil {
		return nil, err
	}
	if isWeekend(day) {
		plan := ResolveDay(day, nil, nil)
		return &plan, nil
	}

	week, err := s.schedule.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	existing, err := s.logs.Get(ctx, userID, date)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load daily log")
		}
		existing = nil
	}
	plan := ResolveDay(day, week, existing)
	return &plan, nil
}

// SaveDay stores an ordinary day with exactly the given periods.
func (s *AttendanceService) SaveDay(ctx context.Context, userID, date string, req dto.SaveDayRequest) (*DayPlan, error) {
	if userID == "" {
		return nil, appErrors.ErrUnauthorized
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload")
	}
	if len(req.Periods) > s.maxPeriods {
		return nil, appErrors.Clone(appErrors.ErrValidation, "too many periods")
	}
	return s.write(ctx, userID, date, models.LogKindOrdinary, req.ToPeriods())
}

// MarkHoliday stores a holiday, dropping any periods previously logged for the date.
func (s *AttendanceService) MarkHoliday(ctx context.Context, userID, date string) (*DayPlan, error) {
	if userID == "" {
		return nil, appErrors.ErrUnauthorized
	}
	return s.write(ctx, userID, date, models.LogKindHoliday, models.Periods{})
}

func (s *AttendanceService) write(ctx context.Context, userID, date string, kind models.LogKind, periods models.Periods) (*DayPlan, error) {
	day, err := parseDay(date)
	if err != nil {
		return nil, err
	}
	if isWeekend(day) {
		return nil, appErrors.ErrWeekend
	}

	log := &models.DailyLog{
		UserID:  userID,
		Date:    day.Format(models.DateLayout),
		Kind:    kind,
		Periods: periods,
	}
	if err := s.validator.Struct(log); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid daily log")
	}
	if err := s.logs.Replace(ctx, log); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save attendance")
	}
	if _, err := s.recalc.Recalculate(ctx, userID); err != nil {
		return nil, err
	}

	week, err := s.schedule.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	plan := ResolveDay(day, week, log)
	s.logger.Info("attendance saved", zap.String("user_id", userID), zap.String("date", log.Date), zap.String("kind", string(kind)))
	return &plan, nil
}

func parseDay(raw string) (time.Time, error) {
	day, err := ParseDate(raw)
	if err != nil {
		return time.Time{}, appErrors.Clone(appErrors.ErrValidation, "date must be formatted as YYYY-MM-DD")
	}
	return day, nil
}

func isWeekend(day time.Time) bool {
	wd := day.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
