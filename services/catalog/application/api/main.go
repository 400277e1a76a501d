package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/victordehoyos/ProductCatalog/pkg/app"
	"github.com/victordehoyos/ProductCatalog/services/catalog/application/handlers"
	appsvcs "github.com/victordehoyos/ProductCatalog/services/catalog/application/services"
)

// CatalogRoutes registers the product and order endpoints on the provided chi router.
func CatalogRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Group(func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Post("/", handlers.NewPostProductHandler(svcs).Execute)
			r.Get("/", handlers.NewGetProductsHandler(svcs).Execute)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", handlers.NewGetProductHandler(svcs).Execute)
				r.Put("/", handlers.NewPutProductHandler(svcs).Execute)
				r.Delete("/", handlers.NewDeleteProductHandler(svcs).Execute)
				r.Post("/increase-stock", handlers.NewIncreaseStockHandler(svcs).Execute)
				r.Post("/decrease-stock", handlers.NewDecreaseStockHandler(svcs).Execute)
			})
		})
		r.Route("/orders", func(r chi.Router) {
			r.Post("/", handlers.NewPostOrderHandler(svcs).Execute)
			r.Get("/", handlers.NewGetOrdersHandler(svcs).Execute)
			r.Get("/{id}", handlers.NewGetOrderHandler(svcs).Execute)
		})
	})
}
