package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/victordehoyos/ProductCatalog/pkg/database"
	"github.com/victordehoyos/ProductCatalog/pkg/events"
	catalogdomain "github.com/victordehoyos/ProductCatalog/services/catalog/domain"
	domainevents "github.com/victordehoyos/ProductCatalog/services/catalog/domain/events"
	"github.com/victordehoyos/ProductCatalog/services/catalog/domain/models"
)

// OrderRepository implements repositories.OrderRepository against PostgreSQL.
// Orders are append-only; rows are never updated or deleted.
type OrderRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewOrderRepository returns an OrderRepository backed by the given pool and
// event bus. The bus publishes OrderPlacedEvents in the same transaction as
// the insert; pass nil to disable publishing.
func NewOrderRepository(db *database.Database, bus *events.EventBus) *OrderRepository {
	return &OrderRepository{db: db, bus: bus}
}

// Insert persists a new order, assigns its ID, and publishes an
// OrderPlacedEvent within the enclosing transaction. A unique-constraint
// violation on idempotency_key — two concurrent requests racing on the same
// key — returns ErrDuplicateIdempotencyKey so the enclosing transaction (and
// its stock decrement) rolls back as one.
func (r *OrderRepository) Insert(ctx context.Context, o *models.Order) error {
	const stmt = `
INSERT INTO orders (product_id, quantity, total, date, idempotency_key)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`

	err := r.db.QueryRowContext(ctx, stmt,
		o.ProductID, o.Quantity, o.Total, o.Date, o.IdempotencyKey,
	).Scan(&o.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return catalogdomain.ErrDuplicateIdempotencyKey
		}
		return fmt.Errorf("insert order: %w", err)
	}

	if r.bus != nil {
		if err := r.publishPlaced(ctx, o); err != nil {
			return fmt.Errorf("publish order placed: %w", err)
		}
	}
	return nil
}

// GetByID retrieves an order by ID. Returns ErrOrderNotFound if not found.
func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	const query = `
SELECT id, product_id, quantity, total, date, idempotency_key
FROM orders
WHERE id = $1`

	o, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalogdomain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("query order: %w", err)
	}
	return o, nil
}

// GetByIdempotencyKey retrieves the order created under key, or (nil, nil)
// when no such order exists. Used by the orchestrator's pre-transaction
// idempotency check.
func (r *OrderRepository) GetByIdempotencyKey(ctx context.Context, key string) (*models.Order, error) {
	const query = `
SELECT id, product_id, quantity, total, date, idempotency_key
FROM orders
WHERE idempotency_key = $1`

	o, err := scanOrder(r.db.QueryRowContext(ctx, query, key))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query order by key: %w", err)
	}
	return o, nil
}

// List retrieves all orders, newest first.
func (r *OrderRepository) List(ctx context.Context) ([]*models.Order, error) {
	const query = `
SELECT id, product_id, quantity, total, date, idempotency_key
FROM orders
ORDER BY date DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate orders: %w", rows.Err())
	}
	return orders, nil
}

// publishPlaced emits an OrderPlacedEvent on the transaction carried by ctx,
// so the event commits or rolls back together with the order row.
func (r *OrderRepository) publishPlaced(ctx context.Context, o *models.Order) error {
	tx := database.TxFromContext(ctx)
	if tx == nil {
		return fmt.Errorf("order insert outside transaction")
	}

	event := domainevents.OrderPlacedEvent{
		EventID:    uuid.New(),
		Version:    1,
		OrderID:    o.ID,
		ProductID:  o.ProductID,
		Quantity:   o.Quantity,
		Total:      o.Total,
		OccurredAt: o.Date,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", event.EventID.String())
	msg.Metadata.Set("event_version", "1")

	p, err := r.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return p.Publish(domainevents.TopicOrderPlaced, msg)
}

func scanOrder(row rowScanner) (*models.Order, error) {
	var o models.Order
	if err := row.Scan(
		&o.ID, &o.ProductID, &o.Quantity, &o.Total, &o.Date, &o.IdempotencyKey,
	); err != nil {
		return nil, err
	}
	return &o, nil
}
