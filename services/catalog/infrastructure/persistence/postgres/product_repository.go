package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/victordehoyos/ProductCatalog/pkg/database"
	catalogdomain "github.com/victordehoyos/ProductCatalog/services/catalog/domain"
	"github.com/victordehoyos/ProductCatalog/services/catalog/domain/models"
)

// ProductRepository implements repositories.ProductRepository against PostgreSQL.
//
// Every stock mutation is a single conditional UPDATE the database applies
// atomically per row; field updates are guarded by the version column. The
// repository never does a read-then-write on the products table.
type ProductRepository struct {
	db *database.Database
}

// NewProductRepository returns a ProductRepository backed by the given pool.
func NewProductRepository(db *database.Database) *ProductRepository {
	return &ProductRepository{db: db}
}

// Insert persists a new product and assigns its store-generated ID.
func (r *ProductRepository) Insert(ctx context.Context, p *models.Product) error {
	const stmt = `
INSERT INTO products (name, description, price, stock, version, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`

	err := r.db.QueryRowContext(ctx, stmt,
		p.Name, p.Description, p.Price, p.Stock, p.Version, p.CreatedAt,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID retrieves a product by ID. Returns ErrProductNotFound if not found.
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	return r.get(ctx, id)
}

// GetForUpdate retrieves a version-carrying copy of the product for a
// subsequent optimistic Update. The read itself takes no lock — correctness
// comes from Update's version condition.
func (r *ProductRepository) GetForUpdate(ctx context.Context, id int64) (*models.Product, error) {
	return r.get(ctx, id)
}

func (r *ProductRepository) get(ctx context.Context, id int64) (*models.Product, error) {
	const query = `
SELECT id, name, description, price, stock, version, created_at, updated_at
FROM products
WHERE id = $1`

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalogdomain.ErrProductNotFound
		}
		return nil, fmt.Errorf("query product: %w", err)
	}
	return p, nil
}

// List retrieves all products, newest first.
func (r *ProductRepository) List(ctx context.Context) ([]*models.Product, error) {
	const query = `
SELECT id, name, description, price, stock, version, created_at, updated_at
FROM products
ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate products: %w", rows.Err())
	}
	return products, nil
}

// Update writes name, description, price and updated_at conditioned on the
// version carried by p being unchanged in the store. Matching zero rows means
// another writer committed first: ErrConcurrencyConflict, never a silent
// overwrite. On success p.Version is advanced to the stored value.
func (r *ProductRepository) Update(ctx context.Context, p *models.Product) error {
	const stmt = `
UPDATE products
SET name = $2, description = $3, price = $4, updated_at = $5, version = version + 1
WHERE id = $1 AND version = $6`

	res, err := r.db.ExecContext(ctx, stmt,
		p.ID, p.Name, p.Description, p.Price, p.UpdatedAt, p.Version,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update product rows: %w", err)
	}
	if rows == 0 {
		return catalogdomain.ErrConcurrencyConflict
	}
	p.Version++
	return nil
}

// Delete removes the product row. Unconditioned on version: a concurrent
// stock mutation does not block the delete. ErrProductNotFound when no row
// matched.
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	const stmt = `DELETE FROM products WHERE id = $1`

	res, err := r.db.ExecContext(ctx, stmt, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete product rows: %w", err)
	}
	if rows == 0 {
		return catalogdomain.ErrProductNotFound
	}
	return nil
}

// TryDecreaseStock applies "stock -= qty, version += 1 only if stock >= qty"
// as one atomic statement. The database evaluates the predicate and the
// mutation indivisibly per row, so two concurrent calls can never both drive
// stock below zero. Returns true iff a row was updated.
func (r *ProductRepository) TryDecreaseStock(ctx context.Context, id int64, qty int) (bool, error) {
	const stmt = `
UPDATE products
SET stock = stock - $2, version = version + 1, updated_at = now()
WHERE id = $1 AND stock >= $2`

	res, err := r.db.ExecContext(ctx, stmt, id, qty)
	if err != nil {
		return false, fmt.Errorf("decrease stock: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("decrease stock rows: %w", err)
	}
	return rows > 0, nil
}

// IncreaseStock unconditionally adds qty and bumps the version. A missing
// product matches zero rows and is a silent no-op.
func (r *ProductRepository) IncreaseStock(ctx context.Context, id int64, qty int) error {
	const stmt = `
UPDATE products
SET stock = stock + $2, version = version + 1, updated_at = now()
WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, stmt, id, qty); err != nil {
		return fmt.Errorf("increase stock: %w", err)
	}
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	var p models.Product
	var updatedAt sql.NullTime
	if err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.Version,
		&p.CreatedAt, &updatedAt,
	); err != nil {
		return nil, err
	}
	if updatedAt.Valid {
		t := updatedAt.Time
		p.UpdatedAt = &t
	}
	return &p, nil
}
