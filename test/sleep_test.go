package test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ascentfit/ascent/internal/sleeplog"
)

func (s *IntegrationTestSuite) TestSleep_SaveAndGet() {
	ctx := context.Background()

	session, _ := doSignup(ctx, s.T())

	status, _ := doReq(ctx, s.T(), "PUT", "/sleep", session.Token, sleeplog.SaveRequest{
		Date:    "2025-03-12",
		Hours:   7.5,
		Quality: sleeplog.QualityGood,
	})
	s.Require().Equal(http.StatusOK, status)

	status, body := doReq(ctx, s.T(), "GET", "/sleep?date=2025-03-12", session.Token, nil)
	s.Require().Equal(http.StatusOK, status)

	var logged sleeplog.Log
	s.Require().NoError(json.Unmarshal(body, &logged))
	s.Equal(7.5, logged.Hours)
	s.Equal(sleeplog.QualityGood, logged.Quality)
}

func (s *IntegrationTestSuite) TestSleep_SaveIsIdempotentPerDay() {
	ctx := context.Background()

	session, _ := doSignup(ctx, s.T())

	for _, hours := range []float64{6, 8} {
		status, _ := doReq(ctx, s.T(), "PUT", "/sleep", session.Token, sleeplog.SaveRequest{
			Date:    "2025-03-15",
			Hours:   hours,
			Quality: sleeplog.QualityFair,
		})
		s.Require().Equal(http.StatusOK, status)
	}

	// the second save overwrote the first, no duplicate rows
	status, body := doReq(ctx, s.T(), "GET", "/sleep?date=2025-03-15", session.Token, nil)
	s.Require().Equal(http.StatusOK, status)

	var logged sleeplog.Log
	s.Require().NoError(json.Unmarshal(body, &logged))
	s.Equal(float64(8), logged.Hours)
}

func (s *IntegrationTestSuite) TestSleep_GuestGetsDefaults() {
	ctx := context.Background()

	status, body := doReq(ctx, s.T(), "GET", "/sleep?date=2025-03-12", "", nil)
	s.Require().Equal(http.StatusOK, status)

	var logged sleeplog.Log
	s.Require().NoError(json.Unmarshal(body, &logged))
	s.Equal(sleeplog.DefaultHours, logged.Hours)
	s.Equal(sleeplog.QualityGood, logged.Quality)

	// guests cannot persist sleep
	status, _ = doReq(ctx, s.T(), "PUT", "/sleep", "", sleeplog.SaveRequest{
		Date:    "2025-03-12",
		Hours:   8,
		Quality: sleeplog.QualityGood,
	})
	s.Equal(http.StatusUnauthorized, status)
}

func (s *IntegrationTestSuite) TestSleep_Validation() {
	ctx := context.Background()

	session, _ := doSignup(ctx, s.T())

	status, _ := doReq(ctx, s.T(), "PUT", "/sleep", session.Token, sleeplog.SaveRequest{
		Date:    "2025-03-12",
		Hours:   15,
		Quality: sleeplog.QualityGood,
	})
	s.Equal(http.StatusBadRequest, status)

	status, _ = doReq(ctx, s.T(), "PUT", "/sleep", session.Token, sleeplog.SaveRequest{
		Date:    "2025-03-12",
		Hours:   7,
		Quality: "amazing",
	})
	s.Equal(http.StatusBadRequest, status)
}

func (s *IntegrationTestSuite) TestSleep_Overview() {
	ctx := context.Background()

	session, _ := doSignup(ctx, s.T())

	for i, hours := range []float64{7, 8, 7.5} {
		status, _ := doReq(ctx, s.T(), "PUT", "/sleep", session.Token, sleeplog.SaveRequest{
			Date:    fmt.Sprintf("2025-03-1%d", i+1),
			Hours:   hours,
			Quality: sleeplog.QualityGood,
		})
		s.Require().Equal(http.StatusOK, status)
	}

	status, body := doReq(ctx, s.T(), "GET", "/sleep/overview", session.Token, nil)
	s.Require().Equal(http.StatusOK, status)

	var overview sleeplog.OverviewResponse
	s.Require().NoError(json.Unmarshal(body, &overview))
	s.True(overview.HasData)
	s.Equal(7.5, overview.AverageHours)
	s.NotEmpty(overview.Hint)
	s.Len(overview.Logs, 3)
}
