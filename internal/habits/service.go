package habits

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ascentfit/ascent/internal/auth"
	"github.com/ascentfit/ascent/internal/caldate"
	"github.com/ascentfit/ascent/internal/localstore"
	"github.com/ascentfit/ascent/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrHabitCapReached = fmt.Errorf("habit display cap of %d reached", DisplayCap)
	ErrHabitExists     = errors.New("habit id already taken")
)

type completionsStore interface {
	UpsertCompletion(ctx context.Context, owner string, c Completion) error
	CompletionsForDay(ctx context.Context, owner string, day caldate.Day) ([]Completion, error)
	CompletedDays(ctx context.Context, owner, habitID string) ([]caldate.Day, error)
}

type streaksStore interface {
	GetStreak(ctx context.Context, userID, habitID string) (*StreakRecord, error)
	UpsertStreak(ctx context.Context, userID string, s StreakRecord) error
	ListStreaks(ctx context.Context, userID string) ([]StreakRecord, error)
}

type keyedStore interface {
	Get(ctx context.Context, feature, ownerKey string, dest any) (found bool, err error)
	Put(ctx context.Context, feature, ownerKey string, value any) error
}

// Service holds the habit business logic over two completion stores: the
// postgres repo for authenticated users and the keyed local store for guests.
// The math (streak derivation, toggle bookkeeping) is shared across both.
type Service struct {
	remote  completionsStore
	local   completionsStore
	streaks streaksStore
	customs keyedStore
	now     func() time.Time
}

func NewService(repo *Repo, local *LocalCompletions, customs *localstore.Store) *Service {
	return &Service{
		remote:  repo,
		local:   local,
		streaks: repo,
		customs: customs,
		now:     time.Now,
	}
}

func (s *Service) completionsFor(id auth.Identity) completionsStore {
	if id.IsGuest() {
		return s.local
	}
	return s.remote
}

// Toggle flips completion of a habit for one day. For authenticated users it
// also maintains the persisted streak pair, strictly after the completion
// upsert has returned. The returned record is nil for guests, whose streaks
// are always derived on read.
func (s *Service) Toggle(
	ctx context.Context,
	id auth.Identity,
	habitID string,
	day caldate.Day,
	completed bool,
) (_ *StreakRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "habits.toggle")
	span.SetAttributes(
		attribute.String("habit", habitID),
		attribute.String("day", day.String()),
		attribute.Bool("completed", completed),
	)
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	completion := Completion{
		HabitID:   habitID,
		Day:       day,
		Completed: completed,
	}
	if completed {
		now := s.now()
		completion.CompletedAt = &now
	}

	if err := s.completionsFor(id).UpsertCompletion(ctx, id.OwnerKey(), completion); err != nil {
		return nil, fmt.Errorf("upsert completion: %w", err)
	}

	if id.IsGuest() {
		return nil, nil
	}

	if completed {
		return s.streakAfterCompletion(ctx, id.UserID, habitID, day)
	}
	return s.streakAfterUndo(ctx, id.UserID, habitID, day)
}

func (s *Service) streakAfterCompletion(ctx context.Context, userID, habitID string, day caldate.Day) (*StreakRecord, error) {
	record, err := s.streaks.GetStreak(ctx, userID, habitID)
	if errors.Is(err, ErrStreakNotFound) {
		record = &StreakRecord{HabitID: habitID}
	} else if err != nil {
		return nil, fmt.Errorf("get streak: %w", err)
	}

	switch {
	case record.LastCompleted == nil:
		record.CurrentStreak++
	default:
		daysDiff := caldate.DaysBetween(*record.LastCompleted, day)
		switch {
		case daysDiff == 1:
			record.CurrentStreak++
		case daysDiff > 1:
			record.CurrentStreak = 1
		}
		// daysDiff == 0: same day toggled again, streak unchanged
	}

	if record.CurrentStreak > record.BestStreak {
		record.BestStreak = record.CurrentStreak
	}
	record.LastCompleted = &day

	if err := s.streaks.UpsertStreak(ctx, userID, *record); err != nil {
		return nil, fmt.Errorf("upsert streak: %w", err)
	}
	return record, nil
}

func (s *Service) streakAfterUndo(ctx context.Context, userID, habitID string, day caldate.Day) (*StreakRecord, error) {
	record, err := s.streaks.GetStreak(ctx, userID, habitID)
	if errors.Is(err, ErrStreakNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get streak: %w", err)
	}

	// undo only unwinds the increment applied for this exact day;
	// best_streak is never decremented
	if record.LastCompleted == nil || record.LastCompleted.String() != day.String() {
		return record, nil
	}

	record.CurrentStreak--
	if record.CurrentStreak < 0 {
		record.CurrentStreak = 0
	}
	record.LastCompleted = nil

	if err := s.streaks.UpsertStreak(ctx, userID, *record); err != nil {
		return nil, fmt.Errorf("upsert streak: %w", err)
	}
	return record, nil
}

func (s *Service) CompletionsForDay(ctx context.Context, id auth.Identity, day caldate.Day) ([]Completion, error) {
	return s.completionsFor(id).CompletionsForDay(ctx, id.OwnerKey(), day)
}

// DerivedStreak recomputes the consecutive-days streak from raw completion
// days, independent of the persisted pair. habitID empty means "any habit",
// the dashboard-wide variant.
func (s *Service) DerivedStreak(ctx context.Context, id auth.Identity, habitID string, anchor caldate.Day) (int, error) {
	days, err := s.completionsFor(id).CompletedDays(ctx, id.OwnerKey(), habitID)
	if err != nil {
		return 0, fmt.Errorf("completed days: %w", err)
	}
	return DeriveStreak(days, anchor), nil
}

// Streaks returns the persisted streak records for an authenticated user.
// Guests have no streak table; their records are derived from completion
// days on the spot, anchored at the given date.
func (s *Service) Streaks(ctx context.Context, id auth.Identity, anchor caldate.Day) ([]StreakRecord, error) {
	if !id.IsGuest() {
		return s.streaks.ListStreaks(ctx, id.UserID)
	}

	habits, err := s.Catalog(ctx, id)
	if err != nil {
		return nil, err
	}

	var records []StreakRecord
	for _, habit := range habits {
		streak, err := s.DerivedStreak(ctx, id, habit.ID, anchor)
		if err != nil {
			return nil, err
		}
		if streak == 0 {
			continue
		}
		records = append(records, StreakRecord{
			HabitID:       habit.ID,
			CurrentStreak: streak,
			BestStreak:    streak,
		})
	}
	return records, nil
}

// Catalog returns the default habits plus the owner's custom ones, capped
// for display.
func (s *Service) Catalog(ctx context.Context, id auth.Identity) ([]Habit, error) {
	var custom []Habit
	if _, err := s.customs.Get(ctx, localstore.FeatureCustomHabits, id.OwnerKey(), &custom); err != nil {
		return nil, fmt.Errorf("read custom habits: %w", err)
	}

	habits := make([]Habit, 0, len(DefaultHabits)+len(custom))
	habits = append(habits, DefaultHabits...)
	habits = append(habits, custom...)
	if len(habits) > DisplayCap {
		habits = habits[:DisplayCap]
	}
	return habits, nil
}

func (s *Service) AddCustomHabit(ctx context.Context, id auth.Identity, habit Habit) error {
	existing, err := s.Catalog(ctx, id)
	if err != nil {
		return err
	}
	if len(existing) >= DisplayCap {
		return ErrHabitCapReached
	}
	for _, h := range existing {
		if h.ID == habit.ID {
			return ErrHabitExists
		}
	}

	var custom []Habit
	if _, err := s.customs.Get(ctx, localstore.FeatureCustomHabits, id.OwnerKey(), &custom); err != nil {
		return fmt.Errorf("read custom habits: %w", err)
	}
	custom = append(custom, habit)
	return s.customs.Put(ctx, localstore.FeatureCustomHabits, id.OwnerKey(), custom)
}
