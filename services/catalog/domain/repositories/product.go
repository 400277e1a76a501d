package repositories

import (
	"context"

	"github.com/victordehoyos/ProductCatalog/services/catalog/domain/models"
)

// UnitOfWork scopes a group of repository calls to one all-or-nothing
// transaction. fn's context must be passed to every repository call inside it.
type UnitOfWork interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ProductRepository is the persistence interface for the Product aggregate.
// The domain layer owns this interface; infrastructure implements it.
//
// Stock is never written through a plain read-modify-write: TryDecreaseStock
// and IncreaseStock are single atomic conditional statements evaluated by the
// store, and Update is conditioned on the version the caller read.
type ProductRepository interface {
	// Insert persists a new product and assigns its ID.
	Insert(ctx context.Context, p *models.Product) error

	// GetByID returns the product or ErrProductNotFound.
	GetByID(ctx context.Context, id int64) (*models.Product, error)

	// GetForUpdate returns a version-carrying copy of the product suitable
	// for a subsequent optimistic Update. ErrProductNotFound when missing.
	GetForUpdate(ctx context.Context, id int64) (*models.Product, error)

	// List returns all products, newest first.
	List(ctx context.Context) ([]*models.Product, error)

	// Update writes name/description/price/updated_at conditioned on the
	// version carried by p being unchanged in the store. On success the
	// stored version increments by one and p.Version is advanced to match;
	// on a lost race it returns ErrConcurrencyConflict.
	Update(ctx context.Context, p *models.Product) error

	// Delete removes the product row. ErrProductNotFound when no row matched.
	Delete(ctx context.Context, id int64) error

	// TryDecreaseStock atomically runs "stock -= qty, version += 1 where
	// stock >= qty". Returns true iff a row was updated; false means the
	// product is missing or stock is insufficient — the caller cannot tell
	// which from the boolean alone.
	TryDecreaseStock(ctx context.Context, id int64, qty int) (bool, error)

	// IncreaseStock atomically runs "stock += qty, version += 1". Matching
	// zero rows is not an error: a missing product is a silent no-op.
	IncreaseStock(ctx context.Context, id int64, qty int) error
}
