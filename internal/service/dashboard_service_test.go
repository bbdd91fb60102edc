package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/bunkerpal-api/internal/dto"
	"github.com/noah-isme/bunkerpal-api/internal/models"
)

type stubSummaryLister struct {
	items []models.SubjectSummary
	err   error
	calls int
}

func (s *stubSummaryLister) ListSummaries(context.Context, string) ([]models.SubjectSummary, error) {
	s.calls++
	return s.items, s.err
}

func TestDashboardBuildAdvice(t *testing.T) {
	svc := NewDashboardService(nil, nil, DefaultThresholds, 0, nil)
	resp := svc.Build([]models.SubjectSummary{
		{Key: "math", Name: "Math", AttendedClasses: 18, TotalClasses: 20},
		{Key: "art", Name: "Art", AttendedClasses: 16, TotalClasses: 20},
		{Key: "bio", Name: "Bio", AttendedClasses: 13, TotalClasses: 20},
		{Key: "pe", Name: "PE"},
	})

	require.Len(t, resp.Subjects, 4)
	math, art, bio, pe := resp.Subjects[0], resp.Subjects[1], resp.Subjects[2], resp.Subjects[3]

	assert.Equal(t, 90, math.Percent)
	assert.Equal(t, string(StatusOnTrack), math.Status)
	assert.Equal(t, []dto.Advice{
		{Action: dto.AdviceMaySkip, Target: 85, Classes: 1},
		{Action: dto.AdviceMaySkip, Target: 75, Classes: 4},
	}, math.Advice)

	assert.Equal(t, string(StatusLow), art.Status)
	assert.Equal(t, []dto.Advice{{Action: dto.AdviceMustAttend, Target: 85, Classes: 7}}, art.Advice)

	assert.Equal(t, string(StatusCritical), bio.Status)
	assert.Equal(t, []dto.Advice{{Action: dto.AdviceMustAttend, Target: 75, Classes: 8}}, bio.Advice)

	assert.False(t, pe.HasClasses)
	assert.Empty(t, pe.Advice)

	assert.Equal(t, 47, resp.Attended)
	assert.Equal(t, 60, resp.Total)
	assert.Equal(t, 78, resp.Percent)
}

func TestDashboardUsesCacheUntilInvalidated(t *testing.T) {
	repo := newStubCacheRepo()
	cache := NewCacheService(repo, nil, time.Minute, nil, true)
	lister := &stubSummaryLister{items: []models.SubjectSummary{{Key: "math", Name: "Math", AttendedClasses: 3, TotalClasses: 4}}}
	svc := NewDashboardService(lister, cache, DefaultThresholds, time.Minute, nil)
	ctx := context.Background()

	_, hit, err := svc.Dashboard(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, hit)

	resp, hit, err := svc.Dashboard(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 75, resp.Subjects[0].Percent)
	assert.Equal(t, 1, lister.calls)

	require.NoError(t, cache.Invalidate(ctx, DashboardCacheKey("u1")))
	_, hit, err = svc.Dashboard(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2, lister.calls)
}

func TestDashboardSurvivesCacheFailure(t *testing.T) {
	repo := newStubCacheRepo()
	repo.getErr = errors.New("redis down")
	cache := NewCacheService(repo, nil, time.Minute, nil, true)
	lister := &stubSummaryLister{}
	svc := NewDashboardService(lister, cache, DefaultThresholds, time.Minute, nil)

	resp, hit, err := svc.Dashboard(context.Background(), "u1")
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Empty(t, resp.Subjects)
}

func TestDashboardFallsBackToDefaultThresholds(t *testing.T) {
	svc := NewDashboardService(nil, nil, Thresholds{Low: 90, Safe: 80}, 0, nil)
	assert.Equal(t, DefaultThresholds, svc.thresholds)
}
