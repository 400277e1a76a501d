package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/victordehoyos/ProductCatalog/pkg/clock"
	"github.com/victordehoyos/ProductCatalog/pkg/logger"
	catalogdomain "github.com/victordehoyos/ProductCatalog/services/catalog/domain"
	"github.com/victordehoyos/ProductCatalog/services/catalog/domain/models"
	"github.com/victordehoyos/ProductCatalog/services/catalog/domain/repositories"
)

// OrderService orchestrates idempotent, inventory-safe order placement.
//
// Create runs the placement protocol: a pure idempotency read outside any
// transaction, then a single transaction covering the stock reservation and
// the order insert. The conditional decrement and the unique idempotency-key
// constraint carry all concurrency correctness — the service holds no locks.
type OrderService struct {
	uow      repositories.UnitOfWork
	products repositories.ProductRepository
	orders   repositories.OrderRepository
	clock    clock.Clock
	log      logger.Logger
}

// NewOrderService returns an OrderService wired with the given unit of work,
// repositories, clock, and logger.
func NewOrderService(
	uow repositories.UnitOfWork,
	products repositories.ProductRepository,
	orders repositories.OrderRepository,
	clk clock.Clock,
	log logger.Logger,
) *OrderService {
	return &OrderService{
		uow:      uow,
		products: products,
		orders:   orders,
		clock:    clk,
		log:      log,
	}
}

// CreateOrderInput carries the caller's purchase request.
type CreateOrderInput struct {
	ProductID      int64
	Quantity       int
	IdempotencyKey string
}

// OrderView is the immutable projection returned to callers — never the live
// aggregate.
type OrderView struct {
	ID        int64
	ProductID int64
	Quantity  int
	Total     decimal.Decimal
	Date      time.Time
}

// Create places an order at most once per idempotency key.
//
// Retries of an already-completed request short-circuit on the idempotency
// read and return the existing order without opening a transaction or
// touching stock. Otherwise one transaction reads the product (for its
// price), reserves stock via the atomic conditional decrement, and inserts
// the order; any failure rolls the whole unit back, including the decrement.
//
// Errors: ErrIdempotencyKeyRequired, ErrInvalidQuantity, ErrProductNotFound,
// ErrInsufficientStock, ErrDuplicateIdempotencyKey (lost a same-key race —
// the caller re-queries by key and receives the committed order).
func (s *OrderService) Create(ctx context.Context, in CreateOrderInput) (OrderView, error) {
	if in.IdempotencyKey == "" {
		return OrderView{}, catalogdomain.ErrIdempotencyKeyRequired
	}
	if len(in.IdempotencyKey) > models.MaxIdempotencyKeyLength {
		return OrderView{}, fmt.Errorf("%w: idempotency key exceeds %d characters",
			catalogdomain.ErrIdempotencyKeyRequired, models.MaxIdempotencyKeyLength)
	}
	if in.Quantity < 1 {
		return OrderView{}, catalogdomain.ErrInvalidQuantity
	}

	existing, err := s.orders.GetByIdempotencyKey(ctx, in.IdempotencyKey)
	if err != nil {
		return OrderView{}, fmt.Errorf("idempotency check: %w", err)
	}
	if existing != nil {
		s.log.InfoContext(ctx, "idempotent replay, returning existing order",
			"order_id", existing.ID, "idempotency_key", in.IdempotencyKey)
		return toOrderView(existing), nil
	}

	var view OrderView
	err = s.uow.WithTx(ctx, func(txCtx context.Context) error {
		product, err := s.products.GetByID(txCtx, in.ProductID)
		if err != nil {
			return err
		}

		ok, err := s.products.TryDecreaseStock(txCtx, in.ProductID, in.Quantity)
		if err != nil {
			return fmt.Errorf("reserve stock: %w", err)
		}
		if !ok {
			s.log.WarnContext(txCtx, "insufficient stock",
				"product_id", in.ProductID, "quantity", in.Quantity)
			return catalogdomain.ErrInsufficientStock
		}

		order := models.NewOrder(product.ID, in.Quantity, product.Price, s.clock.Now(), in.IdempotencyKey)
		if err := s.orders.Insert(txCtx, order); err != nil {
			return err
		}

		view = toOrderView(order)
		return nil
	})
	if err != nil {
		return OrderView{}, err
	}

	s.log.InfoContext(ctx, "order placed",
		"order_id", view.ID,
		"product_id", view.ProductID,
		"quantity", view.Quantity,
		"total", view.Total,
	)
	return view, nil
}

// GetByID returns a projection of the order or ErrOrderNotFound.
func (s *OrderService) GetByID(ctx context.Context, id int64) (OrderView, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return OrderView{}, fmt.Errorf("get order: %w", err)
	}
	return toOrderView(order), nil
}

// List returns projections of all orders, newest first.
func (s *OrderService) List(ctx context.Context) ([]OrderView, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	views := make([]OrderView, len(orders))
	for i, o := range orders {
		views[i] = toOrderView(o)
	}
	return views, nil
}

func toOrderView(o *models.Order) OrderView {
	return OrderView{
		ID:        o.ID,
		ProductID: o.ProductID,
		Quantity:  o.Quantity,
		Total:     o.Total,
		Date:      o.Date,
	}
}
