package test

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ascentfit/ascent/internal/weightlog"
)

func (s *IntegrationTestSuite) TestWeight_SaveAndList() {
	ctx := context.Background()

	session, _ := doSignup(ctx, s.T())

	for _, entry := range []weightlog.SaveRequest{
		{Date: "2025-03-10", Weight: 81.2},
		{Date: "2025-03-11", Weight: 80.8},
		{Date: "2025-03-12", Weight: 80.5},
	} {
		status, _ := doReq(ctx, s.T(), "PUT", "/weight", session.Token, entry)
		s.Require().Equal(http.StatusOK, status)
	}

	status, body := doReq(ctx, s.T(), "GET", "/weight", session.Token, nil)
	s.Require().Equal(http.StatusOK, status)

	var entries []weightlog.Entry
	s.Require().NoError(json.Unmarshal(body, &entries))
	s.Require().Len(entries, 3)
	// newest first
	s.Equal(80.5, entries[0].Weight)
	s.Equal(81.2, entries[2].Weight)
}

func (s *IntegrationTestSuite) TestWeight_SameDayOverwrites() {
	ctx := context.Background()

	session, _ := doSignup(ctx, s.T())

	for _, weight := range []float64{79.9, 79.4} {
		status, _ := doReq(ctx, s.T(), "PUT", "/weight", session.Token, weightlog.SaveRequest{
			Date:   "2025-03-20",
			Weight: weight,
		})
		s.Require().Equal(http.StatusOK, status)
	}

	status, body := doReq(ctx, s.T(), "GET", "/weight", session.Token, nil)
	s.Require().Equal(http.StatusOK, status)

	var entries []weightlog.Entry
	s.Require().NoError(json.Unmarshal(body, &entries))
	s.Require().Len(entries, 1)
	s.Equal(79.4, entries[0].Weight)
}

func (s *IntegrationTestSuite) TestWeight_Validation() {
	ctx := context.Background()

	session, _ := doSignup(ctx, s.T())

	status, _ := doReq(ctx, s.T(), "PUT", "/weight", session.Token, weightlog.SaveRequest{
		Date:   "2025-03-12",
		Weight: 0,
	})
	s.Equal(http.StatusBadRequest, status)
}

func (s *IntegrationTestSuite) TestWeight_GuestUsesLocalStore() {
	ctx := context.Background()

	status, _ := doReq(ctx, s.T(), "PUT", "/weight", "", weightlog.SaveRequest{
		Date:   "2025-06-01",
		Weight: 75.5,
	})
	s.Require().Equal(http.StatusOK, status)

	status, body := doReq(ctx, s.T(), "GET", "/weight", "", nil)
	s.Require().Equal(http.StatusOK, status)

	var entries []weightlog.Entry
	s.Require().NoError(json.Unmarshal(body, &entries))
	s.Require().NotEmpty(entries)
	s.Equal(75.5, entries[0].Weight)

	// the guest entry is invisible to an authenticated user
	session, _ := doSignup(ctx, s.T())
	status, body = doReq(ctx, s.T(), "GET", "/weight", session.Token, nil)
	s.Require().Equal(http.StatusOK, status)
	s.Equal("[]", string(body))
}

func (s *IntegrationTestSuite) TestWeight_Overview() {
	ctx := context.Background()

	session, _ := doSignup(ctx, s.T())

	for _, entry := range []weightlog.SaveRequest{
		{Date: "2025-03-03", Weight: 82},
		{Date: "2025-03-04", Weight: 81.5},
		{Date: "2025-03-10", Weight: 81},
		{Date: "2025-03-11", Weight: 80.5},
	} {
		status, _ := doReq(ctx, s.T(), "PUT", "/weight", session.Token, entry)
		s.Require().Equal(http.StatusOK, status)
	}

	status, body := doReq(ctx, s.T(), "GET", "/weight/overview", session.Token, nil)
	s.Require().Equal(http.StatusOK, status)

	var overview weightlog.OverviewResponse
	s.Require().NoError(json.Unmarshal(body, &overview))
	s.Equal(80.5, overview.Current)
	s.Equal(80.5, overview.Lowest)
	s.Equal(82.0, overview.Highest)
	s.Equal(-0.5, overview.Delta)
	s.Require().Len(overview.Weeks, 2)
	// ISO weeks, newest first
	s.Equal("2025-W11", overview.Weeks[0].Key)
	s.Equal("2025-W10", overview.Weeks[1].Key)
	s.Equal(80.5, overview.Weeks[0].Min)
	s.Equal(81.0, overview.Weeks[0].Max)
}
