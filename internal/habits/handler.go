package habits

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ascentfit/ascent/internal/auth"
	"github.com/ascentfit/ascent/internal/caldate"
	"github.com/ascentfit/ascent/internal/telemetry/tracing"
	"github.com/ascentfit/ascent/pkg"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

type changeNotifier interface {
	Publish(ctx context.Context, collection, owner string) error
}

type habitsService interface {
	Toggle(ctx context.Context, id auth.Identity, habitID string, day caldate.Day, completed bool) (*StreakRecord, error)
	CompletionsForDay(ctx context.Context, id auth.Identity, day caldate.Day) ([]Completion, error)
	Streaks(ctx context.Context, id auth.Identity, anchor caldate.Day) ([]StreakRecord, error)
	Catalog(ctx context.Context, id auth.Identity) ([]Habit, error)
	AddCustomHabit(ctx context.Context, id auth.Identity, habit Habit) error
}

type ToggleRequest struct {
	HabitID   string `json:"habitId"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}

type ToggleResponse struct {
	HabitID   string        `json:"habitId"`
	Date      caldate.Day   `json:"date"`
	Completed bool          `json:"completed"`
	Streak    *StreakRecord `json:"streak,omitempty"`
}

type CompletionsResponse struct {
	Date        caldate.Day  `json:"date"`
	Completions []Completion `json:"completions"`
}

type StreaksResponse struct {
	Streaks []StreakRecord `json:"streaks"`
}

type Handler struct {
	service        habitsService
	notifier       changeNotifier
	counterToggles prometheus.Counter
}

func NewHandler(service habitsService, notifier changeNotifier, counterToggles prometheus.Counter) *Handler {
	return &Handler{
		service:        service,
		notifier:       notifier,
		counterToggles: counterToggles,
	}
}

func (handler *Handler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.habits.toggle")
	defer span.End()

	var req ToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("toggle habit, unmarshal json params: %s", err)
		http.Error(w, "toggle habit failed", http.StatusBadRequest)
		return
	}
	if req.HabitID == "" {
		http.Error(w, "error, habit id empty", http.StatusBadRequest)
		return
	}

	day, err := caldate.ParseOrToday(req.Date)
	if err != nil {
		http.Error(w, "error, invalid date", http.StatusBadRequest)
		return
	}

	id := auth.FromContext(ctx)
	streak, err := handler.service.Toggle(ctx, id, req.HabitID, day, req.Completed)
	if err != nil {
		log.Errorf("failed to toggle habit [%s] for %s: %s", req.HabitID, day, err)
		http.Error(w, "error, failed to toggle habit", http.StatusInternalServerError)
		return
	}

	handler.counterToggles.Inc()
	if err := handler.notifier.Publish(ctx, "habit_completions", id.OwnerKey()); err != nil {
		log.Errorf("toggle habit, publish change: %s", err)
	}

	resp, err := json.Marshal(ToggleResponse{
		HabitID:   req.HabitID,
		Date:      day,
		Completed: req.Completed,
		Streak:    streak,
	})
	if err != nil {
		log.Errorf("toggle habit, marshal response: %s", err)
		http.Error(w, "error, failed to toggle habit", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, resp)
}

func (handler *Handler) HandleCompletions(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.habits.completions")
	defer span.End()

	day, err := caldate.ParseOrToday(r.URL.Query().Get("date"))
	if err != nil {
		http.Error(w, "error, invalid date", http.StatusBadRequest)
		return
	}

	completions, err := handler.service.CompletionsForDay(ctx, auth.FromContext(ctx), day)
	if err != nil {
		log.Errorf("failed to get completions for %s: %s", day, err)
		http.Error(w, "error, failed to get completions", http.StatusInternalServerError)
		return
	}
	if completions == nil {
		completions = []Completion{}
	}

	resp, err := json.Marshal(CompletionsResponse{Date: day, Completions: completions})
	if err != nil {
		log.Errorf("completions, marshal response: %s", err)
		http.Error(w, "error, failed to get completions", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, resp)
}

func (handler *Handler) HandleStreaks(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.habits.streaks")
	defer span.End()

	day, err := caldate.ParseOrToday(r.URL.Query().Get("date"))
	if err != nil {
		http.Error(w, "error, invalid date", http.StatusBadRequest)
		return
	}

	streaks, err := handler.service.Streaks(ctx, auth.FromContext(ctx), day)
	if err != nil {
		log.Errorf("failed to list streaks: %s", err)
		http.Error(w, "error, failed to list streaks", http.StatusInternalServerError)
		return
	}
	if streaks == nil {
		streaks = []StreakRecord{}
	}

	resp, err := json.Marshal(StreaksResponse{Streaks: streaks})
	if err != nil {
		log.Errorf("streaks, marshal response: %s", err)
		http.Error(w, "error, failed to list streaks", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, resp)
}

func (handler *Handler) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.habits.catalog")
	defer span.End()

	habits, err := handler.service.Catalog(ctx, auth.FromContext(ctx))
	if err != nil {
		log.Errorf("failed to get habits catalog: %s", err)
		http.Error(w, "error, failed to get habits", http.StatusInternalServerError)
		return
	}

	resp, err := json.Marshal(habits)
	if err != nil {
		log.Errorf("habits catalog, marshal response: %s", err)
		http.Error(w, "error, failed to get habits", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, resp)
}

func (handler *Handler) HandleAddCustom(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.habits.addCustom")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var habit Habit
	if err := json.NewDecoder(r.Body).Decode(&habit); err != nil {
		log.Errorf("add custom habit, unmarshal json params: %s", err)
		http.Error(w, "add habit failed", http.StatusBadRequest)
		return
	}
	if habit.ID == "" || habit.Name == "" || habit.Target <= 0 {
		http.Error(w, "error, habit id, name or target invalid", http.StatusBadRequest)
		return
	}

	err := handler.service.AddCustomHabit(ctx, auth.FromContext(ctx), habit)
	switch {
	case errors.Is(err, ErrHabitCapReached), errors.Is(err, ErrHabitExists):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case err != nil:
		log.Errorf("failed to add custom habit [%s]: %s", habit.ID, err)
		http.Error(w, "error, failed to add habit", http.StatusInternalServerError)
		return
	}

	log.Debugf("custom habit added: [%s] %s", habit.ID, habit.Name)
	pkg.WriteResponse(w, pkg.ContentType.JSON, `{"added":true}`, http.StatusCreated)
}
