package redis

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/farazahmedph003/GULL-2025-sub000/internal/domain"
)

// Publisher pushes outbox events onto a Redis pub/sub channel per event
// type, e.g. "events:balance.changed". Dashboards subscribe to see balance
// movements live.
type Publisher struct {
	client *redis.Client
	prefix string
}

// NewPublisher creates a new Publisher.
func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{
		client: client,
		prefix: "events:",
	}
}

// Publish sends one event to its channel.
func (p *Publisher) Publish(ctx context.Context, event *domain.OutboxEvent) error {
	payload, err := json.Marshal(map[string]any{
		"id":             event.ID,
		"aggregate_id":   event.AggregateID,
		"aggregate_type": event.AggregateType,
		"event_type":     event.EventType,
		"payload":        event.Payload,
		"created_at":     event.CreatedAt,
	})
	if err != nil {
		return err
	}

	return p.client.Publish(ctx, p.prefix+event.EventType, payload).Err()
}
