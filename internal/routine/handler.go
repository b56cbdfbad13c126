package routine

import (
	"encoding/json"
	"net/http"

	"github.com/ascentfit/ascent/internal/auth"
	"github.com/ascentfit/ascent/internal/caldate"
	"github.com/ascentfit/ascent/internal/telemetry/tracing"
	"github.com/ascentfit/ascent/pkg"

	log "github.com/sirupsen/logrus"
)

type UpdateDayRequest struct {
	DayKey string       `json:"dayKey"`
	Type   TrainingType `json:"type"`
}

type PlanResponse struct {
	Plan  Plan        `json:"plan"`
	Today TrainingDay `json:"today"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.routine.get")
	defer span.End()

	day, err := caldate.ParseOrToday(r.URL.Query().Get("date"))
	if err != nil {
		http.Error(w, "error, invalid date", http.StatusBadRequest)
		return
	}

	id := auth.FromContext(ctx)
	plan, err := handler.service.PlanFor(ctx, id)
	if err != nil {
		log.Errorf("failed to get routine plan: %s", err)
		http.Error(w, "error, failed to get routine", http.StatusInternalServerError)
		return
	}

	handler.writePlan(w, plan, day)
}

func (handler *Handler) HandleUpdateDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.routine.updateDay")
	defer span.End()

	var req UpdateDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("update routine day, unmarshal json params: %s", err)
		http.Error(w, "update routine failed", http.StatusBadRequest)
		return
	}
	if !req.Type.Valid() {
		http.Error(w, "error, invalid training type", http.StatusBadRequest)
		return
	}

	plan, err := handler.service.UpdateDay(ctx, auth.FromContext(ctx), req.DayKey, req.Type)
	if err != nil {
		log.Errorf("failed to update routine day [%s]: %s", req.DayKey, err)
		http.Error(w, "error, failed to update routine", http.StatusBadRequest)
		return
	}

	handler.writePlan(w, plan, caldate.Today())
}

func (handler *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.routine.reset")
	defer span.End()

	plan, err := handler.service.Reset(ctx, auth.FromContext(ctx))
	if err != nil {
		log.Errorf("failed to reset routine plan: %s", err)
		http.Error(w, "error, failed to reset routine", http.StatusInternalServerError)
		return
	}

	handler.writePlan(w, plan, caldate.Today())
}

func (handler *Handler) writePlan(w http.ResponseWriter, plan Plan, day caldate.Day) {
	resp, err := json.Marshal(PlanResponse{
		Plan:  plan,
		Today: TrainingForDate(plan, day),
	})
	if err != nil {
		log.Errorf("routine, marshal response: %s", err)
		http.Error(w, "error, failed to get routine", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, resp)
}
