package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/redis/go-redis/v9"

	"github.com/appetyte/appetyte/internal/pkg/cache"
)

// Actions mirror row-level change notifications.
const (
	ActionInsert = "INSERT"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

// Event is one row-level change pushed to connected dashboards. Events are
// fanned out over Redis pub/sub on per-provider and per-customer channels so
// a subscriber only sees its own tenant's changes.
type Event struct {
	Table      string      `json:"table"`
	Action     string      `json:"action"`
	ProviderID uint        `json:"provider_id,omitempty"`
	CustomerID uint        `json:"customer_id,omitempty"`
	Payload    interface{} `json:"payload,omitempty"`
	At         time.Time   `json:"at"`
}

func providerChannel(id uint) string { return fmt.Sprintf("events:provider:%d", id) }
func customerChannel(id uint) string { return fmt.Sprintf("events:customer:%d", id) }

// Publish fans the event out to the provider channel and, when the event
// concerns a specific customer, to that customer's channel too. Publishing
// is best-effort: a dead Redis never fails the business operation.
func Publish(event Event) {
	if event.At.IsZero() {
		event.At = time.Now()
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Errorf("[Realtime] marshal event: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	client := cache.GetClient()
	if event.ProviderID != 0 {
		if err := client.Publish(ctx, providerChannel(event.ProviderID), data).Err(); err != nil {
			log.Errorf("[Realtime] publish provider event: %v", err)
		}
	}
	if event.CustomerID != 0 {
		if err := client.Publish(ctx, customerChannel(event.CustomerID), data).Err(); err != nil {
			log.Errorf("[Realtime] publish customer event: %v", err)
		}
	}
}

// SubscribeProvider opens a pub/sub subscription for one provider's events.
func SubscribeProvider(ctx context.Context, providerID uint) *redis.PubSub {
	return cache.GetClient().Subscribe(ctx, providerChannel(providerID))
}

// SubscribeCustomer opens a pub/sub subscription for one customer's events.
func SubscribeCustomer(ctx context.Context, customerID uint) *redis.PubSub {
	return cache.GetClient().Subscribe(ctx, customerChannel(customerID))
}
