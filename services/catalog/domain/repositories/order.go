package repositories

import (
	"context"

	"github.com/victordehoyos/ProductCatalog/services/catalog/domain/models"
)

// OrderRepository is the persistence interface for the append-only order ledger.
type OrderRepository interface {
	// Insert persists a new order and assigns its ID. A uniqueness violation
	// on the idempotency key returns ErrDuplicateIdempotencyKey, never a
	// generic failure.
	Insert(ctx context.Context, o *models.Order) error

	// GetByID returns the order or ErrOrderNotFound.
	GetByID(ctx context.Context, id int64) (*models.Order, error)

	// GetByIdempotencyKey returns the order created under key, or (nil, nil)
	// when no such order exists. Pure read, safe outside any transaction.
	GetByIdempotencyKey(ctx context.Context, key string) (*models.Order, error)

	// List returns all orders, newest first.
	List(ctx context.Context) ([]*models.Order, error)
}
