package middleware

import (
	"errors"
	"net/http"

	"github.com/ascentfit/ascent/internal/auth"
	"github.com/ascentfit/ascent/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

// AuthTokenHeader carries the opaque session token. A non-standard header,
// so browsers issue a preflight/OPTIONS request first:
// https://developer.mozilla.org/en-US/docs/Web/HTTP/CORS#preflighted_requests
const AuthTokenHeader = "X-ASCENT-TOKEN"

type AuthMiddlewareHandler struct {
	loginChecker auth.Checker
}

func NewAuthMiddlewareHandler(loginChecker auth.Checker) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		loginChecker: loginChecker,
	}
}

// ResolveIdentity resolves the session token (if any) to the owning user and
// stores the identity in the request context. Requests without a token run
// in guest mode; requests with an invalid or expired token are rejected.
func (h *AuthMiddlewareHandler) ResolveIdentity() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, PUT, OPTIONS")
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			authToken := r.Header.Get(AuthTokenHeader)
			if authToken == "" {
				// guest mode
				span.SetStatus(codes.Ok, "guest")
				next.ServeHTTP(w, r.WithContext(auth.NewContext(ctx, auth.Identity{})))
				return
			}

			userID, err := h.loginChecker.UserIDForToken(ctx, authToken)
			if errors.Is(err, auth.ErrSessionNotFound) {
				log.Tracef("[invalid token] [auth middleware] unauthorized => %s", r.URL.Path)
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "not-logged")
				return
			}
			if err != nil {
				log.Errorf("[failed login check] => %s: %s", r.URL.Path, err)
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "check-logged-err")
				span.RecordError(err)
				return
			}

			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r.WithContext(auth.NewContext(ctx, auth.Identity{UserID: userID})))
		})
	}
}
