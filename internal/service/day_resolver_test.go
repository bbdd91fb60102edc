package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/bunkerpal-api/internal/models"
)

func mustDate(t *testing.T, raw string) time.Time {
	t.Helper()
	d, err := ParseDate(raw)
	require.NoError(t, err)
	return d
}

func strPtr(s string) *string { return &s }

func TestResolveDayWeekendIgnoresEverything(t *testing.T) {
	schedule := models.WeeklySchedule{"monday": {"Math"}}
	log := &models.DailyLog{Kind: models.LogKindOrdinary, Periods: models.Periods{0: {Subject: strPtr("Math"), Attended: true}}}

	for _, raw := range []string{"2024-03-16", "2024-03-17"} {
		plan := ResolveDay(mustDate(t, raw), schedule, log)
		assert.True(t, plan.IsWeekend)
		assert.Empty(t, plan.Subjects)
		assert.Empty(t, plan.Periods)
		assert.False(t, plan.Logged)
	}
}

func TestResolveDaySynthesisesFromSchedule(t *testing.T) {
	schedule := models.WeeklySchedule{"monday": {"Math", "", "Physics"}}

	plan := ResolveDay(mustDate(t, "2024-03-11"), schedule, nil)
	assert.False(t, plan.IsWeekend)
	assert.True(t, plan.HasTimetable)
	assert.Equal(t, "monday", plan.Weekday)
	assert.Equal(t, []string{"Math", "", "Physics"}, plan.Subjects)
	require.Len(t, plan.Periods, 3)
	assert.Equal(t, "Math", *plan.Periods[0].Subject)
	assert.Nil(t, plan.Periods[1].Subject)
	for _, entry := range plan.Periods {
		assert.True(t, entry.Attended)
	}
}

func TestResolveDayExistingLogWins(t *testing.T) {
	schedule := models.WeeklySchedule{"tuesday": {"Math", "Physics"}}
	log := &models.DailyLog{
		Date: "2024-03-12",
		Kind: models.LogKindOrdinary,
		Periods: models.Periods{
			0: {Subject: strPtr("Chemistry"), Attended: false},
		},
	}

	plan := ResolveDay(mustDate(t, "2024-03-12"), schedule, log)
	assert.True(t, plan.Logged)
	assert.Equal(t, log.Periods, plan.Periods)
	assert.Equal(t, []string{"Math", "Physics"}, plan.Subjects)
}

func TestResolveDayWithoutTimetable(t *testing.T) {
	plan := ResolveDay(mustDate(t, "2024-03-13"), nil, nil)
	assert.False(t, plan.HasTimetable)
	assert.Empty(t, plan.Subjects)
	assert.Empty(t, plan.Periods)

	plan = ResolveDay(mustDate(t, "2024-03-13"), models.WeeklySchedule{"monday": {"Math"}}, nil)
	assert.True(t, plan.HasTimetable)
	assert.Empty(t, plan.Subjects)
}

func TestParseDateRejectsOtherLayouts(t *testing.T) {
	_, err := ParseDate("11/03/2024")
	assert.Error(t, err)
	_, err = ParseDate("2024-02-30")
	assert.Error(t, err)
}
