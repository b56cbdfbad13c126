package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ascentfit/ascent/internal/telemetry/tracing"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

// Feature names double as storage key prefixes. The full key is
// "{feature}-{userID|guest}", one JSON document per owner and feature.
const (
	FeatureHabitCompletions = "habit-completions"
	FeatureCustomHabits     = "custom-habits"
	FeatureProgress         = "progress"
	FeatureRoutine          = "routine"
	FeatureWorkoutSession   = "workout-session"
)

// Store is the keyed local persistence fallback: the sole storage for guest
// sessions and the home of a few per-user settings (custom habits, routine
// plan, in-session workout checkmarks).
type Store struct {
	redisClient *redis.Client
}

func NewStore(redisClient *redis.Client) *Store {
	return &Store{
		redisClient: redisClient,
	}
}

func Key(feature, ownerKey string) string {
	return fmt.Sprintf("%s-%s", feature, ownerKey)
}

// Get unmarshals the stored document into dest. A missing key or malformed
// stored JSON both leave dest untouched and return found=false: corrupt
// local state reads as empty, never as an error surfaced to the user.
func (s *Store) Get(ctx context.Context, feature, ownerKey string, dest any) (found bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "localstore.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	key := Key(feature, ownerKey)
	stored, err := s.redisClient.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("localstore get %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(stored), dest); err != nil {
		log.Warnf("localstore: malformed JSON at %s, treating as empty: %s", key, err)
		return false, nil
	}

	return true, nil
}

func (s *Store) Put(ctx context.Context, feature, ownerKey string, value any) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "localstore.put")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("localstore marshal: %w", err)
	}

	key := Key(feature, ownerKey)
	if err := s.redisClient.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("localstore set %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, feature, ownerKey string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "localstore.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return s.redisClient.Del(ctx, Key(feature, ownerKey)).Err()
}
