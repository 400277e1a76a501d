package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	pkgcache "github.com/victordehoyos/ProductCatalog/pkg/cache"
	"github.com/victordehoyos/ProductCatalog/pkg/clock"
	"github.com/victordehoyos/ProductCatalog/pkg/logger"
	catalogdomain "github.com/victordehoyos/ProductCatalog/services/catalog/domain"
	"github.com/victordehoyos/ProductCatalog/services/catalog/domain/models"
	"github.com/victordehoyos/ProductCatalog/services/catalog/domain/repositories"
	domainsvcs "github.com/victordehoyos/ProductCatalog/services/catalog/domain/services"
)

// ProductService orchestrates the product catalog: create, read, optimistic
// field updates, delete, and the administrative stock operations.
//
// All mutations invalidate the Redis read model; reads go through it.
type ProductService struct {
	uow   repositories.UnitOfWork
	repo  repositories.ProductRepository
	cache *pkgcache.ProductCache
	clock clock.Clock
	log   logger.Logger
}

// NewProductService returns a ProductService wired with the given unit of
// work, repository, cache (nil disables caching), clock, and logger.
func NewProductService(
	uow repositories.UnitOfWork,
	repo repositories.ProductRepository,
	productCache *pkgcache.ProductCache,
	clk clock.Clock,
	log logger.Logger,
) *ProductService {
	return &ProductService{uow: uow, repo: repo, cache: productCache, clock: clk, log: log}
}

// CreateProductInput carries the fields for a new product.
type CreateProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
}

// UpdateProductInput carries the editable product fields.
type UpdateProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
}

// Create validates and persists a new product with version 0.
func (s *ProductService) Create(ctx context.Context, in CreateProductInput) (*models.Product, error) {
	product := models.NewProduct(in.Name, in.Description, in.Price, in.Stock)
	if err := domainsvcs.ValidateProduct(product); err != nil {
		return nil, fmt.Errorf("%w: %w", catalogdomain.ErrInvalidProduct, err)
	}

	err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		return s.repo.Insert(txCtx, product)
	})
	if err != nil {
		return nil, fmt.Errorf("save product: %w", err)
	}
	return product, nil
}

// GetByID retrieves a product using a read-through cache pattern:
//  1. Check Redis first.
//  2. On cache miss (or cache error), query Postgres.
//  3. Asynchronously warm the cache with the Postgres result.
func (s *ProductService) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, id); err == nil {
			return &models.Product{
				ID:          cached.ID,
				Name:        cached.Name,
				Description: cached.Description,
				Price:       cached.Price,
				Stock:       cached.Stock,
				Version:     cached.Version,
				CreatedAt:   cached.CreatedAt,
			}, nil
		} else if !errors.Is(err, redis.Nil) {
			s.log.WarnContext(ctx, "product cache read failed", "product_id", id, "error", err)
		}
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}

	if s.cache != nil {
		go func() {
			_ = s.cache.Set(context.Background(), toCachedProduct(product))
		}()
	}

	return product, nil
}

// List returns all products, newest first.
func (s *ProductService) List(ctx context.Context) ([]*models.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// Update edits name, description and price under the optimistic version
// guard: the product is read together with its current version, mutated in
// memory, and written back conditioned on that version being unchanged. A
// concurrent writer (another edit or a stock mutation) surfaces as
// ErrConcurrencyConflict — never a silent overwrite.
func (s *ProductService) Update(ctx context.Context, id int64, in UpdateProductInput) (*models.Product, error) {
	var product *models.Product
	err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		p, err := s.repo.GetForUpdate(txCtx, id)
		if err != nil {
			return err
		}

		p.Name = in.Name
		p.Description = in.Description
		p.Price = in.Price
		now := s.clock.Now()
		p.UpdatedAt = &now

		if err := domainsvcs.ValidateProduct(p); err != nil {
			return fmt.Errorf("%w: %w", catalogdomain.ErrInvalidProduct, err)
		}

		if err := s.repo.Update(txCtx, p); err != nil {
			return err
		}
		product = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return product, nil
}

// Delete removes a product. Returns false when no such product exists.
// The delete is not version-guarded (a concurrent stock mutation between the
// existence read and the delete still deletes).
func (s *ProductService) Delete(ctx context.Context, id int64) (bool, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, catalogdomain.ErrProductNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("check product: %w", err)
	}

	err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, id)
	})
	if err != nil {
		// Deleted by a concurrent request between the read and the delete.
		if errors.Is(err, catalogdomain.ErrProductNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("delete product: %w", err)
	}

	s.invalidate(ctx, id)
	return true, nil
}

// IncreaseStock adds qty to the product's stock, bumping its version. A
// missing product is a silent no-op: the conditional update simply matches
// zero rows. Known asymmetry with DecreaseStockAdmin, preserved deliberately.
func (s *ProductService) IncreaseStock(ctx context.Context, id int64, qty int) error {
	if qty < 1 {
		return catalogdomain.ErrInvalidQuantity
	}

	err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		return s.repo.IncreaseStock(txCtx, id, qty)
	})
	if err != nil {
		return fmt.Errorf("increase stock: %w", err)
	}

	s.invalidate(ctx, id)
	return nil
}

// DecreaseStockAdmin removes qty from stock through the same atomic
// conditional decrement the order path uses. The administrative contract
// reports no business failure: when the product is missing or stock is too
// low the decrement simply does not apply.
func (s *ProductService) DecreaseStockAdmin(ctx context.Context, id int64, qty int) error {
	if qty < 1 {
		return catalogdomain.ErrInvalidQuantity
	}

	err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		applied, err := s.repo.TryDecreaseStock(txCtx, id, qty)
		if err != nil {
			return err
		}
		if !applied {
			s.log.WarnContext(txCtx, "admin stock decrease did not apply",
				"product_id", id, "quantity", qty)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("decrease stock: %w", err)
	}

	s.invalidate(ctx, id)
	return nil
}

func (s *ProductService) invalidate(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(context.Background(), id); err != nil {
		s.log.WarnContext(ctx, "product cache invalidation failed", "product_id", id, "error", err)
	}
}

func toCachedProduct(p *models.Product) *pkgcache.CachedProduct {
	return &pkgcache.CachedProduct{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Version:     p.Version,
		CreatedAt:   p.CreatedAt,
	}
}
