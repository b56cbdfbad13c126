package test

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ascentfit/ascent/internal/habits"
)

func (s *IntegrationTestSuite) TestHabits_Catalog() {
	ctx := context.Background()

	status, body := doReq(ctx, s.T(), "GET", "/habits", "", nil)
	s.Require().Equal(http.StatusOK, status)

	var catalog []habits.Habit
	s.Require().NoError(json.Unmarshal(body, &catalog))
	s.Require().Len(catalog, len(habits.DefaultHabits))
	s.Equal("water", catalog[0].ID)
	s.Equal("exercise", catalog[1].ID)
}

func (s *IntegrationTestSuite) TestHabits_ToggleBuildsStreak() {
	ctx := context.Background()

	session, _ := doSignup(ctx, s.T())

	for _, date := range []string{"2025-03-10", "2025-03-11", "2025-03-12"} {
		status, body := doReq(ctx, s.T(), "POST", "/habits/toggle", session.Token, habits.ToggleRequest{
			HabitID:   "water",
			Date:      date,
			Completed: true,
		})
		s.Require().Equal(http.StatusOK, status)

		var toggleResp habits.ToggleResponse
		s.Require().NoError(json.Unmarshal(body, &toggleResp))
		s.Require().NotNil(toggleResp.Streak)
	}

	status, body := doReq(ctx, s.T(), "GET", "/habits/streaks?date=2025-03-12", session.Token, nil)
	s.Require().Equal(http.StatusOK, status)

	var streaksResp habits.StreaksResponse
	s.Require().NoError(json.Unmarshal(body, &streaksResp))
	s.Require().Len(streaksResp.Streaks, 1)
	s.Equal("water", streaksResp.Streaks[0].HabitID)
	s.Equal(3, streaksResp.Streaks[0].CurrentStreak)
	s.Equal(3, streaksResp.Streaks[0].BestStreak)
}

func (s *IntegrationTestSuite) TestHabits_UndoSameDay() {
	ctx := context.Background()

	session, _ := doSignup(ctx, s.T())

	toggle := func(completed bool) habits.ToggleResponse {
		status, body := doReq(ctx, s.T(), "POST", "/habits/toggle", session.Token, habits.ToggleRequest{
			HabitID:   "reading",
			Date:      "2025-03-12",
			Completed: completed,
		})
		s.Require().Equal(http.StatusOK, status)
		var resp habits.ToggleResponse
		s.Require().NoError(json.Unmarshal(body, &resp))
		return resp
	}

	on := toggle(true)
	s.Require().NotNil(on.Streak)
	s.Equal(1, on.Streak.CurrentStreak)

	off := toggle(false)
	s.Require().NotNil(off.Streak)
	s.Equal(0, off.Streak.CurrentStreak)
	// best streak survives the undo
	s.Equal(1, off.Streak.BestStreak)
}

func (s *IntegrationTestSuite) TestHabits_CompletionsForDay() {
	ctx := context.Background()

	session, _ := doSignup(ctx, s.T())

	status, _ := doReq(ctx, s.T(), "POST", "/habits/toggle", session.Token, habits.ToggleRequest{
		HabitID:   "meditation",
		Date:      "2025-04-01",
		Completed: true,
	})
	s.Require().Equal(http.StatusOK, status)

	status, body := doReq(ctx, s.T(), "GET", "/habits/completions?date=2025-04-01", session.Token, nil)
	s.Require().Equal(http.StatusOK, status)

	var completionsResp habits.CompletionsResponse
	s.Require().NoError(json.Unmarshal(body, &completionsResp))
	s.Require().Len(completionsResp.Completions, 1)
	s.Equal("meditation", completionsResp.Completions[0].HabitID)
	s.True(completionsResp.Completions[0].Completed)
}

func (s *IntegrationTestSuite) TestHabits_GuestToggle() {
	ctx := context.Background()

	status, body := doReq(ctx, s.T(), "POST", "/habits/toggle", "", habits.ToggleRequest{
		HabitID:   "exercise",
		Date:      "2025-05-05",
		Completed: true,
	})
	s.Require().Equal(http.StatusOK, status)

	var toggleResp habits.ToggleResponse
	s.Require().NoError(json.Unmarshal(body, &toggleResp))
	// guests have no streak table
	s.Nil(toggleResp.Streak)

	status, body = doReq(ctx, s.T(), "GET", "/habits/completions?date=2025-05-05", "", nil)
	s.Require().Equal(http.StatusOK, status)

	var completionsResp habits.CompletionsResponse
	s.Require().NoError(json.Unmarshal(body, &completionsResp))
	s.Require().Len(completionsResp.Completions, 1)
	s.Equal("exercise", completionsResp.Completions[0].HabitID)
}

func (s *IntegrationTestSuite) TestHabits_AddCustom() {
	ctx := context.Background()

	session, _ := doSignup(ctx, s.T())

	status, _ := doReq(ctx, s.T(), "POST", "/habits", session.Token, habits.Habit{
		ID:     "stretching",
		Name:   "🤸 Stretching",
		Target: 15,
	})
	s.Require().Equal(http.StatusCreated, status)

	status, body := doReq(ctx, s.T(), "GET", "/habits", session.Token, nil)
	s.Require().Equal(http.StatusOK, status)

	var catalog []habits.Habit
	s.Require().NoError(json.Unmarshal(body, &catalog))
	s.Require().Len(catalog, len(habits.DefaultHabits)+1)
	s.Equal("stretching", catalog[len(catalog)-1].ID)

	// same ID again is rejected
	status, _ = doReq(ctx, s.T(), "POST", "/habits", session.Token, habits.Habit{
		ID:     "stretching",
		Name:   "🤸 Stretching",
		Target: 15,
	})
	s.Equal(http.StatusConflict, status)
}
