package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ascentfit/ascent/internal/auth"
	"github.com/ascentfit/ascent/internal/middleware"
	"github.com/ascentfit/ascent/internal/telemetry/metrics"
	"github.com/ascentfit/ascent/internal/telemetry/tracing"
	"github.com/ascentfit/ascent/pkg"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type accountsRepo interface {
	AddAccount(ctx context.Context, account Account, createdAt time.Time) error
	GetAccountByEmail(ctx context.Context, email string) (*Account, error)
	UpsertProfile(ctx context.Context, p Profile) error
	GetProfile(ctx context.Context, userID string) (*Profile, error)
}

type sessionService interface {
	Login(ctx context.Context, userID string, createdAt time.Time) (string, error)
	Logout(ctx context.Context, token string) error
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Handler struct {
	repo        accountsRepo
	authService sessionService
}

func NewHandler(repo accountsRepo, authService sessionService) *Handler {
	return &Handler{
		repo:        repo,
		authService: authService,
	}
}

func (handler *Handler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	allowedPerMin int,
	metricsManager *metrics.Manager,
) {
	authSubrouter := mainRouter.PathPrefix("/a").Subrouter()
	authSubrouter.
		HandleFunc("/signup", handler.handleSignup).
		Methods("POST", "OPTIONS").Name("signup")
	authSubrouter.
		HandleFunc("/login", handler.handleLogin).
		Methods("POST", "OPTIONS").Name("login")
	authSubrouter.
		HandleFunc("/logout", handler.handleLogout).
		Methods("GET", "OPTIONS").Name("logout")

	// rate limit the auth endpoints to prevent abuse
	authSubrouter.Use(middleware.RateLimit(rateLimiter, "auth", allowedPerMin, metricsManager))

	profileRouter := mainRouter.PathPrefix("/profile").Subrouter()
	profileRouter.HandleFunc("", handler.handleGet).Methods("GET", "OPTIONS").Name("profile-get")
	profileRouter.HandleFunc("", handler.handleUpdate).Methods("PUT", "OPTIONS").Name("profile-update")
}

func (handler *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "profileHandler.signup")
	defer span.End()

	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("signup, unmarshal json params: %s", err)
		http.Error(w, "signup failed", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		http.Error(w, "error, email or password empty", http.StatusBadRequest)
		return
	}

	passwordHash, err := pkg.HashPassword(req.Password)
	if err != nil {
		log.Errorf("signup failed, hash password: %s", err)
		http.Error(w, "signup failed", http.StatusInternalServerError)
		return
	}

	account := Account{
		UserID:       uuid.NewString(),
		Email:        req.Email,
		PasswordHash: passwordHash,
	}
	if err := handler.repo.AddAccount(ctx, account, time.Now()); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			http.Error(w, "error, email already taken", http.StatusConflict)
			return
		}
		log.Errorf("signup failed, add account: %s", err)
		http.Error(w, "signup failed", http.StatusInternalServerError)
		return
	}

	// profile row is auto-created alongside the account
	if err := handler.repo.UpsertProfile(ctx, Profile{
		UserID: account.UserID,
		Name:   req.Name,
		Email:  req.Email,
	}); err != nil {
		log.Errorf("signup, create profile: %s", err)
	}

	token, err := handler.authService.Login(ctx, account.UserID, time.Now())
	if err != nil {
		log.Errorf("signup, generate token error: %s", err)
		http.Error(w, "signup succeeded, login failed", http.StatusInternalServerError)
		return
	}

	log.Tracef("new signup: %s", account.UserID)
	pkg.WriteResponse(
		w, pkg.ContentType.JSON,
		fmt.Sprintf(`{"token": "%s", "userId": "%s"}`, token, account.UserID),
		http.StatusCreated,
	)
}

func (handler *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "profileHandler.login")
	defer span.End()

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("login, unmarshal json params: %s", err)
		http.Error(w, "login failed", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		http.Error(w, "error, email or password empty", http.StatusBadRequest)
		return
	}

	account, err := handler.repo.GetAccountByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			log.Tracef("[email] failed login attempt: %s", req.Email)
			http.Error(w, "error, wrong credentials", http.StatusBadRequest)
			return
		}
		log.Errorf("login failed, get account: %s", err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	if !pkg.CheckPasswordHash(req.Password, account.PasswordHash) {
		log.Tracef("[password] failed login attempt: %s", req.Email)
		http.Error(w, "error, wrong credentials", http.StatusBadRequest)
		return
	}

	token, err := handler.authService.Login(ctx, account.UserID, time.Now())
	if err != nil {
		log.Errorf("login failed, generate token error: %s", err)
		http.Error(w, "generate token error", http.StatusInternalServerError)
		return
	}

	log.Trace("new login success")
	pkg.WriteJSONResponseOK(w, fmt.Sprintf(`{"token": "%s", "userId": "%s"}`, token, account.UserID))
}

func (handler *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "profileHandler.logout")
	defer span.End()

	authToken := r.Header.Get(middleware.AuthTokenHeader)
	if authToken == "" {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	if err := handler.authService.Logout(ctx, authToken); err != nil {
		log.Tracef("[failed logout] => %s: %s", r.URL.Path, err)
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	pkg.WriteTextResponseOK(w, "logged-out")
}

func (handler *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "profileHandler.get")
	defer span.End()

	id := auth.FromContext(ctx)
	if id.IsGuest() {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	p, err := handler.repo.GetProfile(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			http.Error(w, "profile not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get profile: %s", err)
		http.Error(w, "error, failed to get profile", http.StatusInternalServerError)
		return
	}

	resp, err := json.Marshal(p)
	if err != nil {
		log.Errorf("get profile, marshal response: %s", err)
		http.Error(w, "error, failed to get profile", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, resp)
}

func (handler *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "profileHandler.update")
	defer span.End()

	id := auth.FromContext(ctx)
	if id.IsGuest() {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var p Profile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		log.Errorf("update profile, unmarshal json params: %s", err)
		http.Error(w, "update profile failed", http.StatusBadRequest)
		return
	}

	// the profile key always comes from the session, never the payload
	p.UserID = id.UserID
	if err := handler.repo.UpsertProfile(ctx, p); err != nil {
		log.Errorf("failed to update profile: %s", err)
		http.Error(w, "error, failed to update profile", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, "updated")
}
