package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sirawitp/siamshop-backend/pkg/enums"
	redisclient "github.com/sirawitp/siamshop-backend/pkg/redis"
)

// Event describes an order lifecycle change broadcast to live subscribers.
type Event struct {
	OrderID       uuid.UUID           `json:"order_id"`
	OrderNumber   string              `json:"order_number"`
	UserID        uuid.UUID           `json:"user_id"`
	Status        enums.OrderStatus   `json:"status"`
	PaymentStatus enums.PaymentStatus `json:"payment_status"`
	OccurredAt    time.Time           `json:"occurred_at"`
}

// EventPublisher broadcasts order events.
type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event Event) error
}

type channelPublisher interface {
	Publish(ctx context.Context, channel string, payload any) error
}

type redisPublisher struct {
	client channelPublisher
}

// NewRedisPublisher wires the order event stream onto Redis pub/sub.
func NewRedisPublisher(client channelPublisher) (EventPublisher, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	return &redisPublisher{client: client}, nil
}

func (p *redisPublisher) PublishOrderEvent(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding order event: %w", err)
	}
	return p.client.Publish(ctx, redisclient.OrderEventsChannel, string(payload))
}
