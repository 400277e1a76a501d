package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the contended aggregate of this bounded context. Stock and
// Version are only ever mutated through the repository's conditional updates:
// Stock never goes negative, and Version grows by exactly one per successful
// write, serving as the optimistic-concurrency token.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	Version     int
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// NewProduct constructs a Product aggregate ready for first persist:
// version 0, CreatedAt now. The ID is assigned by the store on insert.
func NewProduct(name, description string, price decimal.Decimal, stock int) *Product {
	return &Product{
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       stock,
		Version:     0,
		CreatedAt:   time.Now().UTC(),
	}
}
