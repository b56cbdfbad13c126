package auth

import "context"

// LoginTestChecker is an in-memory Checker for unit tests.
type LoginTestChecker struct {
	Token2UserID map[string]string
}

func NewLoginTestChecker() *LoginTestChecker {
	return &LoginTestChecker{
		Token2UserID: make(map[string]string),
	}
}

func (lc *LoginTestChecker) UserIDForToken(_ context.Context, token string) (string, error) {
	userID, ok := lc.Token2UserID[token]
	if !ok {
		return "", ErrSessionNotFound
	}
	return userID, nil
}
