package test

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ascentfit/ascent/internal/dashboard"
	"github.com/ascentfit/ascent/internal/habits"
	"github.com/ascentfit/ascent/internal/routine"
	"github.com/ascentfit/ascent/internal/sleeplog"
	"github.com/ascentfit/ascent/internal/weightlog"
)

func (s *IntegrationTestSuite) TestDashboard_Stats() {
	ctx := context.Background()

	session, _ := doSignup(ctx, s.T())

	// two habits done on the 13th, one the day before for the streak
	for _, toggle := range []habits.ToggleRequest{
		{HabitID: "water", Date: "2025-03-12", Completed: true},
		{HabitID: "water", Date: "2025-03-13", Completed: true},
		{HabitID: "reading", Date: "2025-03-13", Completed: true},
	} {
		status, _ := doReq(ctx, s.T(), "POST", "/habits/toggle", session.Token, toggle)
		s.Require().Equal(http.StatusOK, status)
	}

	status, _ := doReq(ctx, s.T(), "PUT", "/sleep", session.Token, sleeplog.SaveRequest{
		Date: "2025-03-13", Hours: 8, Quality: sleeplog.QualityGood,
	})
	s.Require().Equal(http.StatusOK, status)

	for _, entry := range []weightlog.SaveRequest{
		{Date: "2025-03-12", Weight: 81},
		{Date: "2025-03-13", Weight: 80.5},
	} {
		status, _ := doReq(ctx, s.T(), "PUT", "/weight", session.Token, entry)
		s.Require().Equal(http.StatusOK, status)
	}

	status, body := doReq(ctx, s.T(), "GET", "/dashboard?date=2025-03-13", session.Token, nil)
	s.Require().Equal(http.StatusOK, status)

	var stats dashboard.Stats
	s.Require().NoError(json.Unmarshal(body, &stats))
	s.Equal(2, stats.HabitsCompleted)
	s.Equal(len(habits.DefaultHabits), stats.HabitsTotal)
	s.Equal(2, stats.Streak)
	s.True(stats.SleepHasData)
	s.Equal(8.0, stats.SleepAverage)
	s.NotEmpty(stats.SleepHint)
	s.Equal(80.5, stats.LatestWeight)
	s.Equal(-0.5, stats.WeightDelta)
	// 2025-03-13 is a Thursday
	s.Equal(routine.TrainingLowerBody, stats.TodayTraining.Type)

	// same date again comes from the dashboard cache
	status, cachedBody := doReq(ctx, s.T(), "GET", "/dashboard?date=2025-03-13", session.Token, nil)
	s.Require().Equal(http.StatusOK, status)
	s.JSONEq(string(body), string(cachedBody))
}

func (s *IntegrationTestSuite) TestDashboard_GuestDefaults() {
	ctx := context.Background()

	status, body := doReq(ctx, s.T(), "GET", "/dashboard?date=2025-07-01", "", nil)
	s.Require().Equal(http.StatusOK, status)

	var stats dashboard.Stats
	s.Require().NoError(json.Unmarshal(body, &stats))
	s.Equal(len(habits.DefaultHabits), stats.HabitsTotal)
	// guests never have persisted sleep logs
	s.False(stats.SleepHasData)
	// 2025-07-01 is a Tuesday
	s.Equal(routine.TrainingUpperBody, stats.TodayTraining.Type)
}

func (s *IntegrationTestSuite) TestMisc_RootAndVersion() {
	ctx := context.Background()

	status, body := doReq(ctx, s.T(), "GET", "/", "", nil)
	s.Require().Equal(http.StatusOK, status)
	s.NotEmpty(body)

	status, body = doReq(ctx, s.T(), "GET", "/version", "", nil)
	s.Require().Equal(http.StatusOK, status)
	s.Equal("test-version-info", string(body))

	status, _ = doReq(ctx, s.T(), "GET", "/nope-not-here", "", nil)
	s.Equal(http.StatusNotFound, status)
}
