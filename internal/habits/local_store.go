package habits

import (
	"context"
	"fmt"

	"github.com/ascentfit/ascent/internal/caldate"
	"github.com/ascentfit/ascent/internal/localstore"
)

// LocalCompletions keeps habit completions in the keyed local store, one JSON
// array of dated records per owner. It backs guest sessions, which have no
// postgres rows at all.
type LocalCompletions struct {
	store *localstore.Store
}

func NewLocalCompletions(store *localstore.Store) *LocalCompletions {
	return &LocalCompletions{
		store: store,
	}
}

func (lc *LocalCompletions) UpsertCompletion(ctx context.Context, owner string, c Completion) error {
	var completions []Completion
	if _, err := lc.store.Get(ctx, localstore.FeatureHabitCompletions, owner, &completions); err != nil {
		return fmt.Errorf("read local completions: %w", err)
	}

	replaced := false
	for i := range completions {
		if completions[i].HabitID == c.HabitID && completions[i].Day.String() == c.Day.String() {
			completions[i] = c
			replaced = true
			break
		}
	}
	if !replaced {
		completions = append(completions, c)
	}

	return lc.store.Put(ctx, localstore.FeatureHabitCompletions, owner, completions)
}

func (lc *LocalCompletions) CompletionsForDay(ctx context.Context, owner string, day caldate.Day) ([]Completion, error) {
	var completions []Completion
	if _, err := lc.store.Get(ctx, localstore.FeatureHabitCompletions, owner, &completions); err != nil {
		return nil, fmt.Errorf("read local completions: %w", err)
	}

	var forDay []Completion
	for _, c := range completions {
		if c.Day.String() == day.String() {
			forDay = append(forDay, c)
		}
	}
	return forDay, nil
}

func (lc *LocalCompletions) CompletedDays(ctx context.Context, owner, habitID string) ([]caldate.Day, error) {
	var completions []Completion
	if _, err := lc.store.Get(ctx, localstore.FeatureHabitCompletions, owner, &completions); err != nil {
		return nil, fmt.Errorf("read local completions: %w", err)
	}

	seen := make(map[string]struct{})
	var days []caldate.Day
	for _, c := range completions {
		if !c.Completed {
			continue
		}
		if habitID != "" && c.HabitID != habitID {
			continue
		}
		if _, ok := seen[c.Day.String()]; ok {
			continue
		}
		seen[c.Day.String()] = struct{}{}
		days = append(days, c.Day)
	}
	return days, nil
}
