package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

const changesChannel = "ascent-changes"

// Change announces that data belonging to an owner has changed in a
// collection. Consumers use it to drop cached aggregates for that owner.
type Change struct {
	Collection string `json:"collection"`
	Owner      string `json:"owner"`
}

// Notifier fans out data-change events over redis pub/sub. Writers publish
// after every mutation; the dashboard subscribes to invalidate its cache.
type Notifier struct {
	redisClient        *redis.Client
	counterChangeEvent prometheus.Counter
}

func NewNotifier(redisClient *redis.Client, counterChangeEvent prometheus.Counter) *Notifier {
	return &Notifier{
		redisClient:        redisClient,
		counterChangeEvent: counterChangeEvent,
	}
}

func (n *Notifier) Publish(ctx context.Context, collection, owner string) error {
	payload, err := json.Marshal(Change{Collection: collection, Owner: owner})
	if err != nil {
		return fmt.Errorf("marshal change event: %w", err)
	}
	if err := n.redisClient.Publish(ctx, changesChannel, payload).Err(); err != nil {
		return fmt.Errorf("publish change event: %w", err)
	}
	n.counterChangeEvent.Inc()
	return nil
}

// Subscribe delivers change events until ctx is canceled. Malformed messages
// are logged and skipped.
func (n *Notifier) Subscribe(ctx context.Context) <-chan Change {
	changes := make(chan Change)
	pubsub := n.redisClient.Subscribe(ctx, changesChannel)

	go func() {
		defer close(changes)
		defer func() {
			if err := pubsub.Close(); err != nil {
				log.Errorf("notify: close pubsub: %s", err)
			}
		}()

		msgs := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var change Change
				if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
					log.Warnf("notify: malformed change event, skipping: %s", err)
					continue
				}
				select {
				case changes <- change:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return changes
}
