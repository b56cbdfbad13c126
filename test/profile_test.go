package test

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ascentfit/ascent/internal/profile"
)

func (s *IntegrationTestSuite) TestSignupAndLogin() {
	ctx := context.Background()

	session, signupReq := doSignup(ctx, s.T())

	// a fresh token works for authenticated endpoints
	status, body := doReq(ctx, s.T(), "GET", "/profile", session.Token, nil)
	s.Require().Equal(http.StatusOK, status)

	var p profile.Profile
	s.Require().NoError(json.Unmarshal(body, &p))
	s.Equal(session.UserID, p.UserID)
	s.Equal(signupReq.Name, p.Name)
	s.Equal(signupReq.Email, p.Email)

	// logging in again issues a new valid token
	session2 := doLogin(ctx, s.T(), signupReq.Email, signupReq.Password)
	s.Equal(session.UserID, session2.UserID)
	s.NotEmpty(session2.Token)

	status, _ = doReq(ctx, s.T(), "GET", "/profile", session2.Token, nil)
	s.Equal(http.StatusOK, status)
}

func (s *IntegrationTestSuite) TestSignup_EmailTaken() {
	ctx := context.Background()

	_, signupReq := doSignup(ctx, s.T())

	status, _ := doReq(ctx, s.T(), "POST", "/a/signup", "", signupReq)
	s.Equal(http.StatusConflict, status)
}

func (s *IntegrationTestSuite) TestLogin_WrongPassword() {
	ctx := context.Background()

	_, signupReq := doSignup(ctx, s.T())

	status, _ := doReq(ctx, s.T(), "POST", "/a/login", "", profile.LoginRequest{
		Email:    signupReq.Email,
		Password: "definitely-not-it",
	})
	s.Equal(http.StatusBadRequest, status)
}

func (s *IntegrationTestSuite) TestLogout() {
	ctx := context.Background()

	session, _ := doSignup(ctx, s.T())

	status, _ := doReq(ctx, s.T(), "GET", "/a/logout", session.Token, nil)
	s.Require().Equal(http.StatusOK, status)

	// token no longer valid, the profile is now guest territory
	status, _ = doReq(ctx, s.T(), "GET", "/profile", session.Token, nil)
	s.Equal(http.StatusUnauthorized, status)

	// second logout with the same token fails
	status, _ = doReq(ctx, s.T(), "GET", "/a/logout", session.Token, nil)
	s.Equal(http.StatusUnauthorized, status)
}

func (s *IntegrationTestSuite) TestProfileUpdate() {
	ctx := context.Background()

	session, signupReq := doSignup(ctx, s.T())

	update := profile.Profile{
		Name:      "Updated Name",
		Email:     signupReq.Email,
		AvatarURL: "https://cdn.example.com/avatar.png",
	}
	status, _ := doReq(ctx, s.T(), "PUT", "/profile", session.Token, update)
	s.Require().Equal(http.StatusOK, status)

	status, body := doReq(ctx, s.T(), "GET", "/profile", session.Token, nil)
	s.Require().Equal(http.StatusOK, status)

	var p profile.Profile
	s.Require().NoError(json.Unmarshal(body, &p))
	s.Equal(session.UserID, p.UserID)
	s.Equal("Updated Name", p.Name)
	s.Equal("https://cdn.example.com/avatar.png", p.AvatarURL)
}

func (s *IntegrationTestSuite) TestProfile_GuestDenied() {
	ctx := context.Background()

	status, _ := doReq(ctx, s.T(), "GET", "/profile", "", nil)
	s.Equal(http.StatusUnauthorized, status)

	status, _ = doReq(ctx, s.T(), "PUT", "/profile", "", profile.Profile{Name: "nope"})
	s.Equal(http.StatusUnauthorized, status)
}
