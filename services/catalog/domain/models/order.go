package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxIdempotencyKeyLength caps the caller-supplied idempotency key.
const MaxIdempotencyKeyLength = 64

// Order is an immutable ledger entry. Total is computed once at creation time
// (price × quantity) and never recomputed; ProductID is a historical reference,
// not a live foreign constraint on later product edits.
type Order struct {
	ID             int64
	ProductID      int64
	Quantity       int
	Total          decimal.Decimal
	Date           time.Time
	IdempotencyKey string
}

// NewOrder builds the order row for a reserved purchase. date must already be UTC.
func NewOrder(productID int64, quantity int, unitPrice decimal.Decimal, date time.Time, idempotencyKey string) *Order {
	return &Order{
		ProductID:      productID,
		Quantity:       quantity,
		Total:          unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
		Date:           date,
		IdempotencyKey: idempotencyKey,
	}
}
