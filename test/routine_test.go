package test

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ascentfit/ascent/internal/routine"
)

func (s *IntegrationTestSuite) TestRoutine_DefaultPlan() {
	ctx := context.Background()

	session, _ := doSignup(ctx, s.T())

	// 2025-03-13 is a Thursday, lower body day on the default plan
	status, body := doReq(ctx, s.T(), "GET", "/routine?date=2025-03-13", session.Token, nil)
	s.Require().Equal(http.StatusOK, status)

	var planResp routine.PlanResponse
	s.Require().NoError(json.Unmarshal(body, &planResp))
	s.Require().Len(planResp.Plan, 7)
	s.Equal("mon", planResp.Plan[0].DayKey)
	s.Equal(routine.TrainingRest, planResp.Plan[0].Type)
	s.Equal(routine.TrainingLowerBody, planResp.Today.Type)
	s.Equal("thu", planResp.Today.DayKey)
}

func (s *IntegrationTestSuite) TestRoutine_UpdateDayAndReset() {
	ctx := context.Background()

	session, _ := doSignup(ctx, s.T())

	status, body := doReq(ctx, s.T(), "PUT", "/routine/day", session.Token, routine.UpdateDayRequest{
		DayKey: "wed",
		Type:   routine.TrainingUpperBody,
	})
	s.Require().Equal(http.StatusOK, status)

	var planResp routine.PlanResponse
	s.Require().NoError(json.Unmarshal(body, &planResp))
	s.Equal(routine.TrainingUpperBody, planResp.Plan[2].Type)

	// the update is visible on subsequent reads
	status, body = doReq(ctx, s.T(), "GET", "/routine?date=2025-03-12", session.Token, nil)
	s.Require().Equal(http.StatusOK, status)
	s.Require().NoError(json.Unmarshal(body, &planResp))
	// 2025-03-12 is a Wednesday
	s.Equal(routine.TrainingUpperBody, planResp.Today.Type)

	status, body = doReq(ctx, s.T(), "POST", "/routine/reset", session.Token, nil)
	s.Require().Equal(http.StatusOK, status)

	s.Require().NoError(json.Unmarshal(body, &planResp))
	s.Equal(routine.TrainingRest, planResp.Plan[2].Type)
}

func (s *IntegrationTestSuite) TestRoutine_UpdateValidation() {
	ctx := context.Background()

	session, _ := doSignup(ctx, s.T())

	status, _ := doReq(ctx, s.T(), "PUT", "/routine/day", session.Token, routine.UpdateDayRequest{
		DayKey: "wed",
		Type:   "cardio-hard",
	})
	s.Equal(http.StatusBadRequest, status)

	status, _ = doReq(ctx, s.T(), "PUT", "/routine/day", session.Token, routine.UpdateDayRequest{
		DayKey: "someday",
		Type:   routine.TrainingRest,
	})
	s.Equal(http.StatusBadRequest, status)
}

func (s *IntegrationTestSuite) TestRoutine_GuestHasOwnPlan() {
	ctx := context.Background()

	status, _ := doReq(ctx, s.T(), "PUT", "/routine/day", "", routine.UpdateDayRequest{
		DayKey: "sun",
		Type:   routine.TrainingUpperBody,
	})
	s.Require().Equal(http.StatusOK, status)

	// the guest plan does not leak into an authenticated user's plan
	session, _ := doSignup(ctx, s.T())
	status, body := doReq(ctx, s.T(), "GET", "/routine", session.Token, nil)
	s.Require().Equal(http.StatusOK, status)

	var planResp routine.PlanResponse
	s.Require().NoError(json.Unmarshal(body, &planResp))
	s.Equal(routine.TrainingRest, planResp.Plan[6].Type)
}
