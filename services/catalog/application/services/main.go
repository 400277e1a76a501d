package services

import (
	"github.com/victordehoyos/ProductCatalog/pkg/app"
	"github.com/victordehoyos/ProductCatalog/pkg/cache"
	"github.com/victordehoyos/ProductCatalog/services/catalog/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Product *ProductService
	Order   *OrderService
}

// New wires all catalog application services with infrastructure from the
// Application container.
func New(a *app.Application) *Services {
	products := postgres.NewProductRepository(a.Db)
	orders := postgres.NewOrderRepository(a.Db, a.EventBus)
	productCache := cache.NewProductCache(a.Redis)
	return &Services{
		Product: NewProductService(a.Db, products, productCache, a.Clock, a.Logger),
		Order:   NewOrderService(a.Db, products, orders, a.Clock, a.Logger),
	}
}
