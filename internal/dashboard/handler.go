package dashboard

import (
	"encoding/json"
	"net/http"

	"github.com/ascentfit/ascent/internal/auth"
	"github.com/ascentfit/ascent/internal/caldate"
	"github.com/ascentfit/ascent/internal/telemetry/tracing"
	"github.com/ascentfit/ascent/pkg"

	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.stats")
	defer span.End()

	day, err := caldate.ParseOrToday(r.URL.Query().Get("date"))
	if err != nil {
		http.Error(w, "error, invalid date", http.StatusBadRequest)
		return
	}

	stats, err := handler.service.Stats(ctx, auth.FromContext(ctx), day)
	if err != nil {
		log.Errorf("failed to get dashboard stats for %s: %s", day, err)
		http.Error(w, "error, failed to get dashboard", http.StatusInternalServerError)
		return
	}

	resp, err := json.Marshal(stats)
	if err != nil {
		log.Errorf("dashboard stats, marshal response: %s", err)
		http.Error(w, "error, failed to get dashboard", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, resp)
}
