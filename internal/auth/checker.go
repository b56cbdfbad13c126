package auth

import "context"

var _ Checker = (*LoginChecker)(nil)
var _ Checker = (*LoginTestChecker)(nil)

type Checker interface {
	// UserIDForToken resolves a session token to the owning user ID.
	// ErrSessionNotFound is returned for unknown or expired tokens.
	UserIDForToken(ctx context.Context, token string) (string, error)
}
