package workoutlog

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ascentfit/ascent/internal/auth"
	"github.com/ascentfit/ascent/internal/caldate"
	"github.com/ascentfit/ascent/internal/telemetry/tracing"
	"github.com/ascentfit/ascent/pkg"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

type workoutsRepo interface {
	Add(ctx context.Context, userID string, l Log) error
	List(ctx context.Context, userID string) ([]Log, error)
}

type changeNotifier interface {
	Publish(ctx context.Context, collection, owner string) error
}

type CatalogResponse struct {
	Training  Training   `json:"training"`
	Exercises []Exercise `json:"exercises"`
}

type SessionResponse struct {
	Session Session `json:"session"`
	Total   int     `json:"totalExercises"`
	AllDone bool    `json:"allDone"`
}

type ToggleExerciseRequest struct {
	ExerciseID int `json:"exerciseId"`
}

type FinishRequest struct {
	Type string `json:"type"`
	Date string `json:"date"`
}

type Handler struct {
	repo            workoutsRepo
	sessions        *Sessions
	notifier        changeNotifier
	counterFinished prometheus.Counter
}

func NewHandler(repo workoutsRepo, sessions *Sessions, notifier changeNotifier, counterFinished prometheus.Counter) *Handler {
	return &Handler{
		repo:            repo,
		sessions:        sessions,
		notifier:        notifier,
		counterFinished: counterFinished,
	}
}

func (handler *Handler) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.catalog")
	defer span.End()

	trainingType := mux.Vars(r)["type"]
	exercises, ok := Catalog(trainingType)
	if !ok {
		http.Error(w, "error, unknown training type", http.StatusNotFound)
		return
	}
	training, _ := TrainingFor(trainingType)

	resp, err := json.Marshal(CatalogResponse{Training: training, Exercises: exercises})
	if err != nil {
		log.Errorf("workouts catalog, marshal response: %s", err)
		http.Error(w, "error, failed to get catalog", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, resp)
}

func (handler *Handler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.getSession")
	defer span.End()

	trainingType := mux.Vars(r)["type"]
	exercises, ok := Catalog(trainingType)
	if !ok {
		http.Error(w, "error, unknown training type", http.StatusNotFound)
		return
	}

	id := auth.FromContext(ctx)
	session, err := handler.sessions.Get(ctx, id.OwnerKey(), trainingType)
	if err != nil {
		log.Errorf("failed to get workout session [%s]: %s", trainingType, err)
		http.Error(w, "error, failed to get session", http.StatusInternalServerError)
		return
	}

	handler.writeSession(w, session, len(exercises))
}

func (handler *Handler) HandleToggleExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.toggleExercise")
	defer span.End()

	trainingType := mux.Vars(r)["type"]
	exercises, ok := Catalog(trainingType)
	if !ok {
		http.Error(w, "error, unknown training type", http.StatusNotFound)
		return
	}

	var req ToggleExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("toggle exercise, unmarshal json params: %s", err)
		http.Error(w, "toggle exercise failed", http.StatusBadRequest)
		return
	}

	known := false
	for _, e := range exercises {
		if e.ID == req.ExerciseID {
			known = true
			break
		}
	}
	if !known {
		http.Error(w, "error, unknown exercise id", http.StatusBadRequest)
		return
	}

	id := auth.FromContext(ctx)
	session, err := handler.sessions.ToggleExercise(ctx, id.OwnerKey(), trainingType, req.ExerciseID)
	if err != nil {
		log.Errorf("failed to toggle exercise [%s/%d]: %s", trainingType, req.ExerciseID, err)
		http.Error(w, "error, failed to toggle exercise", http.StatusInternalServerError)
		return
	}

	handler.writeSession(w, session, len(exercises))
}

func (handler *Handler) HandleFinish(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.finish")
	defer span.End()

	id := auth.FromContext(ctx)
	if id.IsGuest() {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req FinishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("finish workout, unmarshal json params: %s", err)
		http.Error(w, "finish workout failed", http.StatusBadRequest)
		return
	}

	exercises, ok := Catalog(req.Type)
	if !ok {
		http.Error(w, "error, unknown training type", http.StatusBadRequest)
		return
	}

	day, err := caldate.ParseOrToday(req.Date)
	if err != nil {
		http.Error(w, "error, invalid date", http.StatusBadRequest)
		return
	}

	session, err := handler.sessions.Get(ctx, id.OwnerKey(), req.Type)
	if err != nil {
		log.Errorf("finish workout, get session [%s]: %s", req.Type, err)
		http.Error(w, "error, failed to finish workout", http.StatusInternalServerError)
		return
	}
	if !session.IsDone(len(exercises)) {
		http.Error(w, "error, complete all exercises to finish", http.StatusBadRequest)
		return
	}

	training, _ := TrainingFor(req.Type)
	workout := Log{
		Day:                day,
		Type:               training.Name,
		Completed:          true,
		ExercisesCompleted: len(session.Completed),
		TotalExercises:     len(exercises),
	}
	if err := handler.repo.Add(ctx, id.UserID, workout); err != nil {
		log.Errorf("failed to add workout log [%s]: %s", req.Type, err)
		http.Error(w, "error, failed to finish workout", http.StatusInternalServerError)
		return
	}

	if err := handler.sessions.Clear(ctx, id.OwnerKey(), req.Type); err != nil {
		log.Errorf("finish workout, clear session [%s]: %s", req.Type, err)
	}

	handler.counterFinished.Inc()
	if err := handler.notifier.Publish(ctx, "workout_logs", id.OwnerKey()); err != nil {
		log.Errorf("finish workout, publish change: %s", err)
	}

	log.Debugf("workout finished: [%s] %s", id.UserID, training.Name)

	resp, err := json.Marshal(workout)
	if err != nil {
		log.Errorf("finish workout, marshal response: %s", err)
		http.Error(w, "error, failed to finish workout", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, resp, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.list")
	defer span.End()

	var logs []Log
	id := auth.FromContext(ctx)
	if !id.IsGuest() {
		var err error
		logs, err = handler.repo.List(ctx, id.UserID)
		if err != nil {
			log.Errorf("failed to list workout logs: %s", err)
			http.Error(w, "error, failed to list workouts", http.StatusInternalServerError)
			return
		}
	}
	if logs == nil {
		logs = []Log{}
	}

	resp, err := json.Marshal(logs)
	if err != nil {
		log.Errorf("list workouts, marshal response: %s", err)
		http.Error(w, "error, failed to list workouts", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, resp)
}

func (handler *Handler) writeSession(w http.ResponseWriter, session Session, totalExercises int) {
	resp, err := json.Marshal(SessionResponse{
		Session: session,
		Total:   totalExercises,
		AllDone: session.IsDone(totalExercises),
	})
	if err != nil {
		log.Errorf("workout session, marshal response: %s", err)
		http.Error(w, "error, failed to get session", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, resp)
}
