package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/bunkerpal-api/internal/dto"
	"github.com/noah-isme/bunkerpal-api/internal/models"
	appErrors "github.com/noah-isme/bunkerpal-api/pkg/errors"
)

type summaryLister interface {
	ListSummaries(ctx context.Context, userID string) ([]models.SubjectSummary, error)
}

type dashboardCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// DashboardService turns subject summaries into percentages, bands and projections.
type DashboardService struct {
	summaries  summaryLister
	cache      dashboardCache
	thresholds Thresholds
	ttl        time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

func NewDashboardService(summaries summaryLister, cache dashboardCache, thresholds Thresholds, ttl time.Duration, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if thresholds.Low <= 0 || thresholds.Safe <= thresholds.Low || thresholds.Safe >= 100 {
		thresholds = DefaultThresholds
	}
	return &DashboardService{
		summaries:  summaries,
		cache:      cache,
		thresholds: thresholds,
		ttl:        ttl,
		logger:     logger,
		now:        time.Now,
	}
}

// Dashboard returns the user's dashboard and whether it came from cache.
// Cache errors only cost a recomputation.
func (s *DashboardService) Dashboard(ctx context.Context, userID string) (*dto.DashboardResponse, bool, error) {
	if userID == "" {
		return nil, false, appErrors.ErrUnauthorized
	}
	key := DashboardCacheKey(userID)
	if s.cache != nil {
		var cached dto.DashboardResponse
		hit, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.logger.Warn("dashboard cache read failed", zap.String("user_id", userID), zap.Error(err))
		}
		if hit {
			return &cached, true, nil
		}
	}

	summaries, err := s.summaries.ListSummaries(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	resp := s.Build(summaries)

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, resp, s.ttl); err != nil {
			s.logger.Warn("dashboard cache write failed", zap.String("user_id", userID), zap.Error(err))
		}
	}
	return &resp, false, nil
}

// Build is the pure part of Dashboard.
func (s *DashboardService) Build(summaries []models.SubjectSummary) dto.DashboardResponse {
	resp := dto.DashboardResponse{
		Subjects:    make([]dto.SubjectStanding, 0, len(summaries)),
		Thresholds:  dto.ThresholdView{Low: s.thresholds.Low, Safe: s.thresholds.Safe},
		GeneratedAt: s.now().UTC(),
	}
	for _, sum := range summaries {
		resp.Subjects = append(resp.Subjects, s.standing(sum))
		resp.Attended += sum.AttendedClasses
		resp.Total += sum.TotalClasses
	}
	resp.Percent = Percentage(models.SubjectSummary{AttendedClasses: resp.Attended, TotalClasses: resp.Total})
	return resp
}

func (s *DashboardService) standing(sum models.SubjectSummary) dto.SubjectStanding {
	percent := Percentage(sum)
	out := dto.SubjectStanding{
		Key:        sum.Key,
		Name:       sum.Name,
		Attended:   sum.AttendedClasses,
		Total:      sum.TotalClasses,
		Percent:    percent,
		Status:     string(StatusFor(percent, s.thresholds)),
		HasClasses: sum.TotalClasses > 0,
		Advice:     []dto.Advice{},
	}

	// thresholds are validated in the constructor so Project cannot fail here
	low, _ := Project(sum, s.thresholds.Low)
	safe, _ := Project(sum, s.thresholds.Safe)
	out.Projections = []dto.ProjectionView{toView(low), toView(safe)}

	if !out.HasClasses {
		return out
	}
	switch {
	case percent >= s.thresholds.Safe:
		out.Advice = append(out.Advice,
			dto.Advice{Action: dto.AdviceMaySkip, Target: safe.Target, Classes: safe.Bunkable},
			dto.Advice{Action: dto.AdviceMaySkip, Target: low.Target, Classes: low.Bunkable},
		)
	case percent >= s.thresholds.Low:
		out.Advice = append(out.Advice, dto.Advice{Action: dto.AdviceMustAttend, Target: safe.Target, Classes: safe.Needed})
	default:
		out.Advice = append(out.Advice, dto.Advice{Action: dto.AdviceMustAttend, Target: low.Target, Classes: low.Needed})
	}
	return out
}

func toView(p models.Projection) dto.ProjectionView {
	return dto.ProjectionView{Target: p.Target, Bunkable: p.Bunkable, Needed: p.Needed}
}

// Thresholds returns the effective low and safe targets.
func (s *DashboardService) Thresholds() Thresholds {
	return s.thresholds
}
