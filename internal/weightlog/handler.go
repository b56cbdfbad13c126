package weightlog

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ascentfit/ascent/internal/auth"
	"github.com/ascentfit/ascent/internal/caldate"
	"github.com/ascentfit/ascent/internal/telemetry/tracing"
	"github.com/ascentfit/ascent/pkg"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

type entriesStore interface {
	Upsert(ctx context.Context, owner string, e Entry) error
	List(ctx context.Context, owner string) ([]Entry, error)
}

type changeNotifier interface {
	Publish(ctx context.Context, collection, owner string) error
}

type SaveRequest struct {
	Date   string  `json:"date"`
	Weight float64 `json:"weight"`
	Photo  string  `json:"photo,omitempty"`
}

type OverviewResponse struct {
	Current float64     `json:"current"`
	Lowest  float64     `json:"lowest"`
	Highest float64     `json:"highest"`
	Delta   float64     `json:"delta"`
	Trend   string      `json:"trend"`
	Weeks   []WeekGroup `json:"weeks"`
}

type Handler struct {
	remote       entriesStore
	local        entriesStore
	notifier     changeNotifier
	counterSaves prometheus.Counter
}

func NewHandler(remote, local entriesStore, notifier changeNotifier, counterSaves prometheus.Counter) *Handler {
	return &Handler{
		remote:       remote,
		local:        local,
		notifier:     notifier,
		counterSaves: counterSaves,
	}
}

func (handler *Handler) storeFor(id auth.Identity) entriesStore {
	if id.IsGuest() {
		return handler.local
	}
	return handler.remote
}

func (handler *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.weight.save")
	defer span.End()

	var req SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("save weight entry, unmarshal json params: %s", err)
		http.Error(w, "save weight entry failed", http.StatusBadRequest)
		return
	}
	if req.Weight <= 0 {
		http.Error(w, "error, weight must be positive", http.StatusBadRequest)
		return
	}

	day, err := caldate.ParseOrToday(req.Date)
	if err != nil {
		http.Error(w, "error, invalid date", http.StatusBadRequest)
		return
	}

	id := auth.FromContext(ctx)
	entry := Entry{Day: day, Weight: req.Weight, Photo: req.Photo}
	if err := handler.storeFor(id).Upsert(ctx, id.OwnerKey(), entry); err != nil {
		log.Errorf("failed to save weight entry for %s: %s", day, err)
		http.Error(w, "error, failed to save weight entry", http.StatusInternalServerError)
		return
	}

	handler.counterSaves.Inc()
	if err := handler.notifier.Publish(ctx, "weight_logs", id.OwnerKey()); err != nil {
		log.Errorf("save weight entry, publish change: %s", err)
	}

	pkg.WriteTextResponseOK(w, "saved")
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.weight.list")
	defer span.End()

	id := auth.FromContext(ctx)
	entries, err := handler.storeFor(id).List(ctx, id.OwnerKey())
	if err != nil {
		log.Errorf("failed to list weight entries: %s", err)
		http.Error(w, "error, failed to list weight entries", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []Entry{}
	}

	resp, err := json.Marshal(entries)
	if err != nil {
		log.Errorf("list weight entries, marshal response: %s", err)
		http.Error(w, "error, failed to list weight entries", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, resp)
}

func (handler *Handler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.weight.overview")
	defer span.End()

	id := auth.FromContext(ctx)
	entries, err := handler.storeFor(id).List(ctx, id.OwnerKey())
	if err != nil {
		// read failures surface as an empty overview
		log.Errorf("failed to list weight entries for overview: %s", err)
		entries = nil
	}

	overview := OverviewResponse{
		Trend: Trend(entries),
		Weeks: GroupByISOWeek(entries),
	}
	if overview.Weeks == nil {
		overview.Weeks = []WeekGroup{}
	}

	var weights []float64
	for _, e := range entries {
		if e.Weight != 0 {
			weights = append(weights, e.Weight)
		}
	}
	if len(weights) > 0 {
		// entries are newest first
		overview.Current = weights[0]
		overview.Lowest = weights[0]
		overview.Highest = weights[0]
		for _, weight := range weights {
			if weight < overview.Lowest {
				overview.Lowest = weight
			}
			if weight > overview.Highest {
				overview.Highest = weight
			}
		}
		if len(weights) > 1 {
			overview.Delta = round1(weights[0] - weights[1])
		}
	}

	resp, err := json.Marshal(overview)
	if err != nil {
		log.Errorf("weight overview, marshal response: %s", err)
		http.Error(w, "error, failed to get weight overview", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, resp)
}
