package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/victordehoyos/ProductCatalog/pkg/clock"
	"github.com/victordehoyos/ProductCatalog/pkg/config"
	"github.com/victordehoyos/ProductCatalog/pkg/logger"
	catalogdomain "github.com/victordehoyos/ProductCatalog/services/catalog/domain"
)

func newProductService(store *fakeStore) *ProductService {
	return NewProductService(
		store,
		store,
		nil,
		clock.NewFixed(orderDate),
		logger.New(&config.Config{LogLevel: "error"}),
	)
}

func TestProductServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("persists a valid product at version zero", func(t *testing.T) {
		store := newFakeStore()
		svc := newProductService(store)

		p, err := svc.Create(ctx, CreateProductInput{
			Name:        "Desk Lamp",
			Description: "Adjustable arm",
			Price:       decimal.RequireFromString("24.90"),
			Stock:       7,
		})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if p.ID == 0 {
			t.Error("expected assigned product ID")
		}
		if p.Version != 0 {
			t.Errorf("Version = %d, want 0", p.Version)
		}
		if p.UpdatedAt != nil {
			t.Error("UpdatedAt should be nil on creation")
		}
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		store := newFakeStore()
		svc := newProductService(store)

		cases := map[string]CreateProductInput{
			"blank name":     {Name: "   ", Price: decimal.RequireFromString("1.00")},
			"name too long":  {Name: strings.Repeat("x", 101), Price: decimal.RequireFromString("1.00")},
			"price too low":  {Name: "Pen", Price: decimal.RequireFromString("0.001")},
			"negative stock": {Name: "Pen", Price: decimal.RequireFromString("1.00"), Stock: -1},
			"long description": {
				Name:        "Pen",
				Description: strings.Repeat("x", 501),
				Price:       decimal.RequireFromString("1.00"),
			},
		}
		for name, in := range cases {
			t.Run(name, func(t *testing.T) {
				if _, err := svc.Create(ctx, in); !errors.Is(err, catalogdomain.ErrInvalidProduct) {
					t.Errorf("Create() error = %v, want ErrInvalidProduct", err)
				}
			})
		}
		if got := len(store.products); got != 0 {
			t.Errorf("products persisted = %d, want 0", got)
		}
	})
}

func TestProductServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("applies edits and advances the version", func(t *testing.T) {
		store := newFakeStore()
		seedProduct(store, 1, "10.00", 5)
		svc := newProductService(store)

		p, err := svc.Update(ctx, 1, UpdateProductInput{
			Name:        "Mechanical Keyboard v2",
			Description: "Hot-swappable switches",
			Price:       decimal.RequireFromString("12.50"),
		})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if p.Version != 1 {
			t.Errorf("Version = %d, want 1", p.Version)
		}
		if p.UpdatedAt == nil || !p.UpdatedAt.Equal(orderDate) {
			t.Errorf("UpdatedAt = %v, want %s", p.UpdatedAt, orderDate)
		}
		if got := store.version(1); got != 1 {
			t.Errorf("stored version = %d, want 1", got)
		}
	})

	t.Run("concurrent write between read and write is detected", func(t *testing.T) {
		store := newFakeStore()
		seedProduct(store, 1, "10.00", 5)
		// A stock mutation commits after the edit read its version.
		store.afterGetForUpdate = func() {
			_ = store.IncreaseStock(context.Background(), 1, 1)
		}
		svc := newProductService(store)

		_, err := svc.Update(ctx, 1, UpdateProductInput{
			Name:  "Mechanical Keyboard",
			Price: decimal.RequireFromString("10.00"),
		})
		if !errors.Is(err, catalogdomain.ErrConcurrencyConflict) {
			t.Fatalf("Update() error = %v, want ErrConcurrencyConflict", err)
		}
	})

	t.Run("unknown product", func(t *testing.T) {
		store := newFakeStore()
		svc := newProductService(store)

		_, err := svc.Update(ctx, 42, UpdateProductInput{
			Name:  "Ghost",
			Price: decimal.RequireFromString("1.00"),
		})
		if !errors.Is(err, catalogdomain.ErrProductNotFound) {
			t.Fatalf("Update() error = %v, want ErrProductNotFound", err)
		}
	})

	t.Run("invalid edit leaves the product untouched", func(t *testing.T) {
		store := newFakeStore()
		seedProduct(store, 1, "10.00", 5)
		svc := newProductService(store)

		_, err := svc.Update(ctx, 1, UpdateProductInput{Name: "", Price: decimal.RequireFromString("1.00")})
		if !errors.Is(err, catalogdomain.ErrInvalidProduct) {
			t.Fatalf("Update() error = %v, want ErrInvalidProduct", err)
		}
		if got := store.version(1); got != 0 {
			t.Errorf("stored version = %d, want 0 (rolled back)", got)
		}
	})
}

func TestProductServiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes an existing product", func(t *testing.T) {
		store := newFakeStore()
		seedProduct(store, 1, "10.00", 5)
		svc := newProductService(store)

		deleted, err := svc.Delete(ctx, 1)
		if err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if !deleted {
			t.Error("Delete() = false, want true")
		}
		if _, err := svc.GetByID(ctx, 1); !errors.Is(err, catalogdomain.ErrProductNotFound) {
			t.Errorf("GetByID() after delete error = %v, want ErrProductNotFound", err)
		}
	})

	t.Run("missing product reports false without error", func(t *testing.T) {
		store := newFakeStore()
		svc := newProductService(store)

		deleted, err := svc.Delete(ctx, 42)
		if err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if deleted {
			t.Error("Delete() = true, want false")
		}
	})
}

func TestProductServiceStock(t *testing.T) {
	ctx := context.Background()

	t.Run("increase adds stock and advances the version", func(t *testing.T) {
		store := newFakeStore()
		seedProduct(store, 1, "10.00", 5)
		svc := newProductService(store)

		if err := svc.IncreaseStock(ctx, 1, 3); err != nil {
			t.Fatalf("IncreaseStock() error = %v", err)
		}
		if got := store.stock(1); got != 8 {
			t.Errorf("stock = %d, want 8", got)
		}
		if got := store.version(1); got != 1 {
			t.Errorf("version = %d, want 1", got)
		}
	})

	t.Run("increase on a missing product is a no-op", func(t *testing.T) {
		store := newFakeStore()
		svc := newProductService(store)

		if err := svc.IncreaseStock(ctx, 42, 3); err != nil {
			t.Fatalf("IncreaseStock() error = %v", err)
		}
	})

	t.Run("admin decrease removes stock", func(t *testing.T) {
		store := newFakeStore()
		seedProduct(store, 1, "10.00", 5)
		svc := newProductService(store)

		if err := svc.DecreaseStockAdmin(ctx, 1, 2); err != nil {
			t.Fatalf("DecreaseStockAdmin() error = %v", err)
		}
		if got := store.stock(1); got != 3 {
			t.Errorf("stock = %d, want 3", got)
		}
	})

	t.Run("admin decrease below available stock does not apply", func(t *testing.T) {
		store := newFakeStore()
		seedProduct(store, 1, "10.00", 2)
		svc := newProductService(store)

		if err := svc.DecreaseStockAdmin(ctx, 1, 3); err != nil {
			t.Fatalf("DecreaseStockAdmin() error = %v", err)
		}
		if got := store.stock(1); got != 2 {
			t.Errorf("stock = %d, want 2 (unchanged)", got)
		}
		if got := store.version(1); got != 0 {
			t.Errorf("version = %d, want 0 (unchanged)", got)
		}
	})

	t.Run("invalid quantities are rejected", func(t *testing.T) {
		store := newFakeStore()
		seedProduct(store, 1, "10.00", 5)
		svc := newProductService(store)

		if err := svc.IncreaseStock(ctx, 1, 0); !errors.Is(err, catalogdomain.ErrInvalidQuantity) {
			t.Errorf("IncreaseStock(0) error = %v, want ErrInvalidQuantity", err)
		}
		if err := svc.DecreaseStockAdmin(ctx, 1, -1); !errors.Is(err, catalogdomain.ErrInvalidQuantity) {
			t.Errorf("DecreaseStockAdmin(-1) error = %v, want ErrInvalidQuantity", err)
		}
	})

	t.Run("every stock mutation advances the version", func(t *testing.T) {
		store := newFakeStore()
		seedProduct(store, 1, "10.00", 10)
		svc := newProductService(store)

		_ = svc.IncreaseStock(ctx, 1, 1)
		_ = svc.DecreaseStockAdmin(ctx, 1, 1)
		_ = svc.DecreaseStockAdmin(ctx, 1, 2)

		if got := store.version(1); got != 3 {
			t.Errorf("version = %d, want 3", got)
		}
	})
}
