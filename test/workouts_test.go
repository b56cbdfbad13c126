package test

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ascentfit/ascent/internal/workoutlog"
)

func (s *IntegrationTestSuite) TestWorkouts_Catalog() {
	ctx := context.Background()

	status, body := doReq(ctx, s.T(), "GET", "/workouts/catalog/upper-body", "", nil)
	s.Require().Equal(http.StatusOK, status)

	var catalog workoutlog.CatalogResponse
	s.Require().NoError(json.Unmarshal(body, &catalog))
	s.Equal("Upper Body", catalog.Training.Name)
	s.Require().Len(catalog.Exercises, 4)
	s.Equal("Bench Press", catalog.Exercises[0].Name)

	status, _ = doReq(ctx, s.T(), "GET", "/workouts/catalog/legs-day", "", nil)
	s.Equal(http.StatusNotFound, status)
}

func (s *IntegrationTestSuite) TestWorkouts_SessionFlow() {
	ctx := context.Background()

	session, _ := doSignup(ctx, s.T())

	status, body := doReq(ctx, s.T(), "GET", "/workouts/session/lower-body", session.Token, nil)
	s.Require().Equal(http.StatusOK, status)

	var sessionResp workoutlog.SessionResponse
	s.Require().NoError(json.Unmarshal(body, &sessionResp))
	s.Empty(sessionResp.Session.Completed)
	s.Equal(4, sessionResp.Total)
	s.False(sessionResp.AllDone)

	// check off every exercise
	for exerciseID := 1; exerciseID <= 4; exerciseID++ {
		status, body = doReq(ctx, s.T(), "PUT", "/workouts/session/lower-body", session.Token, workoutlog.ToggleExerciseRequest{
			ExerciseID: exerciseID,
		})
		s.Require().Equal(http.StatusOK, status)
		s.Require().NoError(json.Unmarshal(body, &sessionResp))
	}
	s.True(sessionResp.AllDone)

	// unchecking one puts the session back in progress
	status, body = doReq(ctx, s.T(), "PUT", "/workouts/session/lower-body", session.Token, workoutlog.ToggleExerciseRequest{
		ExerciseID: 2,
	})
	s.Require().Equal(http.StatusOK, status)
	s.Require().NoError(json.Unmarshal(body, &sessionResp))
	s.False(sessionResp.AllDone)
	s.Len(sessionResp.Session.Completed, 3)
}

func (s *IntegrationTestSuite) TestWorkouts_Finish() {
	ctx := context.Background()

	session, _ := doSignup(ctx, s.T())

	// finishing an incomplete session is rejected
	status, _ := doReq(ctx, s.T(), "POST", "/workouts/finish", session.Token, workoutlog.FinishRequest{
		Type: "upper-body",
		Date: "2025-03-12",
	})
	s.Require().Equal(http.StatusBadRequest, status)

	for exerciseID := 1; exerciseID <= 4; exerciseID++ {
		status, _ = doReq(ctx, s.T(), "PUT", "/workouts/session/upper-body", session.Token, workoutlog.ToggleExerciseRequest{
			ExerciseID: exerciseID,
		})
		s.Require().Equal(http.StatusOK, status)
	}

	status, body := doReq(ctx, s.T(), "POST", "/workouts/finish", session.Token, workoutlog.FinishRequest{
		Type: "upper-body",
		Date: "2025-03-12",
	})
	s.Require().Equal(http.StatusCreated, status)

	var finished workoutlog.Log
	s.Require().NoError(json.Unmarshal(body, &finished))
	s.Equal("Upper Body", finished.Type)
	s.True(finished.Completed)
	s.Equal(4, finished.ExercisesCompleted)
	s.Equal(4, finished.TotalExercises)

	// the session was cleared by the finish
	status, body = doReq(ctx, s.T(), "GET", "/workouts/session/upper-body", session.Token, nil)
	s.Require().Equal(http.StatusOK, status)

	var sessionResp workoutlog.SessionResponse
	s.Require().NoError(json.Unmarshal(body, &sessionResp))
	s.Empty(sessionResp.Session.Completed)

	// and the workout shows up in the history
	status, body = doReq(ctx, s.T(), "GET", "/workouts/list", session.Token, nil)
	s.Require().Equal(http.StatusOK, status)

	var workouts []workoutlog.Log
	s.Require().NoError(json.Unmarshal(body, &workouts))
	s.Require().Len(workouts, 1)
	s.Equal("Upper Body", workouts[0].Type)
}

func (s *IntegrationTestSuite) TestWorkouts_GuestCannotFinish() {
	ctx := context.Background()

	// guests can keep a checklist session
	status, _ := doReq(ctx, s.T(), "PUT", "/workouts/session/arms-shoulders", "", workoutlog.ToggleExerciseRequest{
		ExerciseID: 1,
	})
	s.Require().Equal(http.StatusOK, status)

	// but finishing needs an account
	status, _ = doReq(ctx, s.T(), "POST", "/workouts/finish", "", workoutlog.FinishRequest{
		Type: "arms-shoulders",
		Date: "2025-03-12",
	})
	s.Equal(http.StatusUnauthorized, status)
}
