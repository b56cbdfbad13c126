package routine

import (
	"context"
	"fmt"

	"github.com/ascentfit/ascent/internal/auth"
	"github.com/ascentfit/ascent/internal/caldate"
	"github.com/ascentfit/ascent/internal/localstore"
)

type keyedStore interface {
	Get(ctx context.Context, feature, ownerKey string, dest any) (found bool, err error)
	Put(ctx context.Context, feature, ownerKey string, value any) error
}

// Service keeps one weekly plan per owner in the keyed local store, guests
// and authenticated users alike. A stored plan that fails validation is
// silently replaced by the default, never surfaced as an error.
type Service struct {
	store keyedStore
}

func NewService(store *localstore.Store) *Service {
	return &Service{
		store: store,
	}
}

func (s *Service) PlanFor(ctx context.Context, id auth.Identity) (Plan, error) {
	var plan Plan
	found, err := s.store.Get(ctx, localstore.FeatureRoutine, id.OwnerKey(), &plan)
	if err != nil {
		return nil, fmt.Errorf("read routine plan: %w", err)
	}
	if !found || !plan.Valid() {
		return DefaultPlan(), nil
	}
	return plan, nil
}

// UpdateDay sets one slot's training type and persists the full plan.
func (s *Service) UpdateDay(ctx context.Context, id auth.Identity, dayKey string, t TrainingType) (Plan, error) {
	plan, err := s.PlanFor(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := false
	for i := range plan {
		if plan[i].DayKey == dayKey {
			plan[i].Type = t
			updated = true
			break
		}
	}
	if !updated {
		return nil, fmt.Errorf("unknown day key %q", dayKey)
	}

	if err := s.store.Put(ctx, localstore.FeatureRoutine, id.OwnerKey(), plan); err != nil {
		return nil, fmt.Errorf("persist routine plan: %w", err)
	}
	return plan, nil
}

func (s *Service) Reset(ctx context.Context, id auth.Identity) (Plan, error) {
	plan := DefaultPlan()
	if err := s.store.Put(ctx, localstore.FeatureRoutine, id.OwnerKey(), plan); err != nil {
		return nil, fmt.Errorf("persist routine plan: %w", err)
	}
	return plan, nil
}

func (s *Service) TrainingForDate(ctx context.Context, id auth.Identity, day caldate.Day) (TrainingDay, error) {
	plan, err := s.PlanFor(ctx, id)
	if err != nil {
		return TrainingDay{}, err
	}
	return TrainingForDate(plan, day), nil
}
