package dashboard

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ascentfit/ascent/internal/auth"
	"github.com/ascentfit/ascent/internal/caldate"
	"github.com/ascentfit/ascent/internal/habits"
	"github.com/ascentfit/ascent/internal/notify"
	"github.com/ascentfit/ascent/internal/routine"
	"github.com/ascentfit/ascent/internal/sleeplog"
	"github.com/ascentfit/ascent/internal/telemetry/tracing"
	"github.com/ascentfit/ascent/internal/weightlog"

	"github.com/coocood/freecache"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

const (
	cacheSize = 10 * 1024 * 1024 // 10 MB
	// stats are invalidated on change events anyway, the TTL only covers
	// events lost while a subscriber was down
	cacheExpireSeconds = 5 * 60
)

type habitsStats interface {
	Catalog(ctx context.Context, id auth.Identity) ([]habits.Habit, error)
	CompletionsForDay(ctx context.Context, id auth.Identity, day caldate.Day) ([]habits.Completion, error)
	DerivedStreak(ctx context.Context, id auth.Identity, habitID string, anchor caldate.Day) (int, error)
}

type sleepStore interface {
	Recent(ctx context.Context, userID string, limit int) ([]sleeplog.Log, error)
}

type weightStore interface {
	List(ctx context.Context, owner string) ([]weightlog.Entry, error)
}

type routineService interface {
	TrainingForDate(ctx context.Context, id auth.Identity, day caldate.Day) (routine.TrainingDay, error)
}

// Stats is everything the dashboard shows for one (owner, day). Every field
// degrades to its zero/default on a failed read, a broken sub-widget never
// breaks the page.
type Stats struct {
	Date            caldate.Day         `json:"date"`
	HabitsCompleted int                 `json:"habitsCompleted"`
	HabitsTotal     int                 `json:"habitsTotal"`
	Streak          int                 `json:"streak"`
	SleepAverage    float64             `json:"sleepAverage"`
	SleepHasData    bool                `json:"sleepHasData"`
	SleepHint       string              `json:"sleepHint"`
	LatestWeight    float64             `json:"latestWeight"`
	WeightDelta     float64             `json:"weightDelta"`
	WeightTrend     string              `json:"weightTrend"`
	TodayTraining   routine.TrainingDay `json:"todayTraining"`
}

type Service struct {
	habits           habitsStats
	sleep            sleepStore
	remoteWeights    weightStore
	localWeights     weightStore
	routines         routineService
	cache            *freecache.Cache
	counterCacheHits prometheus.Counter
}

func NewService(
	habits habitsStats,
	sleep sleepStore,
	remoteWeights weightStore,
	localWeights weightStore,
	routines routineService,
	counterCacheHits prometheus.Counter,
) *Service {
	return &Service{
		habits:           habits,
		sleep:            sleep,
		remoteWeights:    remoteWeights,
		localWeights:     localWeights,
		routines:         routines,
		cache:            freecache.NewCache(cacheSize),
		counterCacheHits: counterCacheHits,
	}
}

func cacheKey(owner string, day caldate.Day) []byte {
	return []byte(fmt.Sprintf("dashboard-%s-%s", owner, day))
}

func (s *Service) Stats(ctx context.Context, id auth.Identity, day caldate.Day) (_ *Stats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "dashboard.stats")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	key := cacheKey(id.OwnerKey(), day)
	if cached, err := s.cache.Get(key); err == nil {
		var stats Stats
		if err := json.Unmarshal(cached, &stats); err == nil {
			s.counterCacheHits.Inc()
			return &stats, nil
		}
	}

	stats := s.assemble(ctx, id, day)

	statsBytes, err := json.Marshal(stats)
	if err != nil {
		return nil, fmt.Errorf("marshal stats: %w", err)
	}
	if err := s.cache.Set(key, statsBytes, cacheExpireSeconds); err != nil {
		log.Warnf("dashboard: cache stats for %s: %s", day, err)
	}

	return stats, nil
}

// assemble pulls every widget's numbers; each failure downgrades to "no
// data" instead of surfacing.
func (s *Service) assemble(ctx context.Context, id auth.Identity, day caldate.Day) *Stats {
	stats := &Stats{Date: day, WeightTrend: weightlog.TrendSteady}

	if catalog, err := s.habits.Catalog(ctx, id); err != nil {
		log.Errorf("dashboard: habits catalog: %s", err)
	} else {
		stats.HabitsTotal = len(catalog)
	}

	if completions, err := s.habits.CompletionsForDay(ctx, id, day); err != nil {
		log.Errorf("dashboard: completions for %s: %s", day, err)
	} else {
		for _, c := range completions {
			if c.Completed {
				stats.HabitsCompleted++
			}
		}
	}

	// dashboard-wide streak counts days with any habit completed
	if streak, err := s.habits.DerivedStreak(ctx, id, "", day); err != nil {
		log.Errorf("dashboard: derived streak: %s", err)
	} else {
		stats.Streak = streak
	}

	var sleepLogs []sleeplog.Log
	if !id.IsGuest() {
		var err error
		if sleepLogs, err = s.sleep.Recent(ctx, id.UserID, sleeplog.OverviewWindow); err != nil {
			log.Errorf("dashboard: recent sleep logs: %s", err)
			sleepLogs = nil
		}
	}
	stats.SleepAverage, stats.SleepHasData = sleeplog.AverageHours(sleepLogs)
	stats.SleepHint = sleeplog.BedtimeHint(stats.SleepAverage, stats.SleepHasData)

	if entries, err := s.weightsFor(id).List(ctx, id.OwnerKey()); err != nil {
		log.Errorf("dashboard: weight entries: %s", err)
	} else if len(entries) > 0 {
		stats.LatestWeight = entries[0].Weight
		if len(entries) > 1 {
			stats.WeightDelta = entries[0].Weight - entries[1].Weight
		}
		stats.WeightTrend = weightlog.Trend(entries)
	}

	if training, err := s.routines.TrainingForDate(ctx, id, day); err != nil {
		log.Errorf("dashboard: training for %s: %s", day, err)
		stats.TodayTraining = routine.TrainingForDate(routine.DefaultPlan(), day)
	} else {
		stats.TodayTraining = training
	}

	return stats
}

func (s *Service) weightsFor(id auth.Identity) weightStore {
	if id.IsGuest() {
		return s.localWeights
	}
	return s.remoteWeights
}

// Invalidate drops the cached stats of one owner for a day.
func (s *Service) Invalidate(owner string, day caldate.Day) {
	s.cache.Del(cacheKey(owner, day))
}

// ListenForChanges drops cached stats whenever a change event for the owner
// arrives. No debouncing: the write rate in this domain is low enough that
// redundant recomputes are fine.
func (s *Service) ListenForChanges(ctx context.Context, changes <-chan notify.Change) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case change, ok := <-changes:
				if !ok {
					return
				}
				log.Tracef("dashboard: change in %s for %s, invalidating", change.Collection, change.Owner)
				s.Invalidate(change.Owner, caldate.Today())
			}
		}
	}()
}
