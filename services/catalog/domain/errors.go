package domain

import "errors"

// Sentinel errors for the catalog domain. Use errors.Is() to check these.
var (
	// ErrProductNotFound indicates the requested product does not exist.
	ErrProductNotFound = errors.New("product not found")

	// ErrOrderNotFound indicates the requested order does not exist.
	ErrOrderNotFound = errors.New("order not found")

	// ErrInsufficientStock indicates the conditional stock decrement did not
	// apply: the product is missing or its stock is below the requested quantity.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrConcurrencyConflict indicates an optimistic version check failed
	// because another writer committed first. Callers re-read and retry.
	ErrConcurrencyConflict = errors.New("concurrency conflict")

	// ErrDuplicateIdempotencyKey indicates an order with the same idempotency
	// key was committed concurrently. Benign: re-query by key to get that order.
	ErrDuplicateIdempotencyKey = errors.New("duplicate idempotency key")

	// ErrIdempotencyKeyRequired indicates order placement was attempted
	// without an idempotency key.
	ErrIdempotencyKeyRequired = errors.New("idempotency key required")

	// ErrInvalidProduct indicates product fields violate domain constraints.
	ErrInvalidProduct = errors.New("invalid product")

	// ErrInvalidQuantity indicates a stock or order quantity below 1.
	ErrInvalidQuantity = errors.New("invalid quantity")
)
