package sleeplog

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

// DefaultHours pre-fills the input form when a day has no log yet.
const DefaultHours = 7.5

type sleepRepo interface {
	Upsert(ctx context.Context, userID string, l Log) error
	GetForDay(ctx context.Context, userID string, day caldate.Day) (*Log, error)
	Recent(ctx context.Context, userID string, limit int) ([]Log, error)
}

type changeNotifier interface {
	Publish(ctx context.Context, collection, owner string) error
}

type SaveRequest struct {
	Date    string  `json:"date"`
	Hours   float64 `json:"hours"`
	Quality Quality `json:"quality"`
}

type OverviewResponse struct {
	AverageHours float64 `json:"averageHours"`
	HasData      bool    `json:"hasData"`
	Hint         string  `json:"hint"`
	Logs         []Log   `json:"logs"`
}

type Handler struct {
	repo         sleepRepo
	notifier     changeNotifier
	counterSaves prometheus.Counter
}

func NewHandler(repo sleepRepo, notifier changeNotifier, counterSaves prometheus.Counter) *Handler {
	return &Handler{
		repo:         repo,
		notifier:     notifier,
		counterSaves: counterSaves,
	}
}

func (handler *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sleep.save")
	defer span.End()

	id := auth.FromContext(ctx)
	if id.IsGuest() {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("save sleep log, unmarshal json params: %s", err)
		http.Error(w, "save sleep log failed", http.StatusBadRequest)
		return
	}

	// the 0.5h input grid is a UI convention, only the range is enforced here
	if req.Hours < 0 || req.Hours > 12 {
		http.Error(w, "error, hours must be within 0-12", http.StatusBadRequest)
		return
	}
	if !req.Quality.Valid() {
		http.Error(w, "error, invalid sleep quality", http.StatusBadRequest)
		return
	}

	day, err := caldate.ParseOrToday(req.Date)
	if err != nil {
		http.Error(w, "error, invalid date", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Upsert(ctx, id.UserID, Log{Day: day, Hours: req.Hours, Quality: req.Quality}); err != nil {
		log.Errorf("failed to save sleep log for %s: %s", day, err)
		http.Error(w, "error, failed to save sleep log", http.StatusInternalServerError)
		return
	}

	handler.counterSaves.Inc()
	if err := handler.notifier.Publish(ctx, "sleep_logs", id.OwnerKey()); err != nil {
		log.Errorf("save sleep log, publish change: %s", err)
	}

	pkg.WriteTextResponseOK(w, "saved")
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sleep.get")
	defer span.End()

	day, err := caldate.ParseOrToday(r.URL.Query().Get("date"))
	if err != nil {
		http.Error(w, "error, invalid date", http.StatusBadRequest)
		return
	}

	// guests and missing days both get the form defaults
	l := &Log{Day: day, Hours: DefaultHours, Quality: QualityGood}
	id := auth.FromContext(ctx)
	if !id.IsGuest() {
		stored, err := handler.repo.GetForDay(ctx, id.UserID, day)
		switch {
		case errors.Is(err, ErrLogNotFound):
		case err != nil:
			log.Errorf("failed to get sleep log for %s: %s", day, err)
			http.Error(w, "error, failed to get sleep log", http.StatusInternalServerError)
			return
		default:
			l = stored
		}
	}

	resp, err := json.Marshal(l)
	if err != nil {
		log.Errorf("get sleep log, marshal response: %s", err)
		http.Error(w, "error, failed to get sleep log", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, resp)
}

func (handler *Handler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sleep.overview")
	defer span.End()

	var logs []Log
	id := auth.FromContext(ctx)
	if !id.IsGuest() {
		var err error
		logs, err = handler.repo.Recent(ctx, id.UserID, OverviewWindow)
		if err != nil {
			// read failure means "no data", never a broken page
			log.Errorf("failed to get recent sleep logs: %s", err)
			logs = nil
		}
	}
	if logs == nil {
		logs = []Log{}
	}

	avg, hasData := AverageHours(logs)
	resp, err := json.Marshal(OverviewResponse{
		AverageHours: avg,
		HasData:      hasData,
		Hint:         BedtimeHint(avg, hasData),
		Logs:         logs,
	})
	if err != nil {
		log.Errorf("sleep overview, marshal response: %s", err)
		http.Error(w, "error, failed to get sleep overview", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, resp)
}
