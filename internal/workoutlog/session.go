package workoutlog

import (
	"context"
	"fmt"

	"github.com/ascentfit/ascent/internal/localstore"

	"github.com/google/uuid"
)

// Session holds the in-progress per-exercise checkmarks of one training
// type. Sessions live in the keyed local store only and never reach
// postgres: finishing a workout persists a Log row and drops the session.
type Session struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Completed []int  `json:"completed"`
}

func (s Session) IsDone(totalExercises int) bool {
	return totalExercises > 0 && len(s.Completed) == totalExercises
}

func (s Session) has(exerciseID int) bool {
	for _, id := range s.Completed {
		if id == exerciseID {
			return true
		}
	}
	return false
}

type keyedStore interface {
	Get(ctx context.Context, feature, ownerKey string, dest any) (found bool, err error)
	Put(ctx context.Context, feature, ownerKey string, value any) error
}

// Sessions manages one session per (owner, training type).
type Sessions struct {
	store keyedStore
}

func NewSessions(store *localstore.Store) *Sessions {
	return &Sessions{
		store: store,
	}
}

func (ss *Sessions) load(ctx context.Context, owner string) ([]Session, error) {
	var sessions []Session
	if _, err := ss.store.Get(ctx, localstore.FeatureWorkoutSession, owner, &sessions); err != nil {
		return nil, fmt.Errorf("read workout sessions: %w", err)
	}
	return sessions, nil
}

// Get returns the owner's session for a training type, a fresh empty one if
// none is in progress.
func (ss *Sessions) Get(ctx context.Context, owner, trainingType string) (Session, error) {
	sessions, err := ss.load(ctx, owner)
	if err != nil {
		return Session{}, err
	}
	for _, s := range sessions {
		if s.Type == trainingType {
			return s, nil
		}
	}
	return Session{ID: uuid.NewString(), Type: trainingType}, nil
}

// ToggleExercise flips one exercise checkmark and persists the session.
func (ss *Sessions) ToggleExercise(ctx context.Context, owner, trainingType string, exerciseID int) (Session, error) {
	sessions, err := ss.load(ctx, owner)
	if err != nil {
		return Session{}, err
	}

	idx := -1
	for i := range sessions {
		if sessions[i].Type == trainingType {
			idx = i
			break
		}
	}
	if idx == -1 {
		sessions = append(sessions, Session{ID: uuid.NewString(), Type: trainingType})
		idx = len(sessions) - 1
	}

	session := sessions[idx]
	if session.has(exerciseID) {
		kept := make([]int, 0, len(session.Completed))
		for _, id := range session.Completed {
			if id != exerciseID {
				kept = append(kept, id)
			}
		}
		session.Completed = kept
	} else {
		session.Completed = append(session.Completed, exerciseID)
	}
	sessions[idx] = session

	if err := ss.store.Put(ctx, localstore.FeatureWorkoutSession, owner, sessions); err != nil {
		return Session{}, fmt.Errorf("persist workout sessions: %w", err)
	}
	return session, nil
}

// Clear drops the session for a training type, typically after finishing.
func (ss *Sessions) Clear(ctx context.Context, owner, trainingType string) error {
	sessions, err := ss.load(ctx, owner)
	if err != nil {
		return err
	}

	kept := make([]Session, 0, len(sessions))
	for _, s := range sessions {
		if s.Type != trainingType {
			kept = append(kept, s)
		}
	}
	if len(kept) == len(sessions) {
		return nil
	}
	return ss.store.Put(ctx, localstore.FeatureWorkoutSession, owner, kept)
}
