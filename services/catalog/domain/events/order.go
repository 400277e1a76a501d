package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TopicOrderPlaced is the Watermill topic published when an order is committed.
const TopicOrderPlaced = "order.placed"

// OrderPlacedEvent is published in the same transaction that inserts the
// order, so consumers never observe an event for a rolled-back purchase.
// Consumers subscribe via EventBus.Subscribe(ctx, events.TopicOrderPlaced).
type OrderPlacedEvent struct {
	EventID    uuid.UUID       `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int             `json:"version"`  // Schema version; increment on breaking changes
	OrderID    int64           `json:"order_id"`
	ProductID  int64           `json:"product_id"`
	Quantity   int             `json:"quantity"`
	Total      decimal.Decimal `json:"total"`
	OccurredAt time.Time       `json:"occurred_at"`
}
