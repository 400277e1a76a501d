package handlers

import (
	"net/http"

	"github.com/victordehoyos/ProductCatalog/pkg/errhttp"
	"github.com/victordehoyos/ProductCatalog/pkg/httpx"
	appsvcs "github.com/victordehoyos/ProductCatalog/services/catalog/application/services"
)

// GetProductHandler handles GET /products/{id} requests.
type GetProductHandler struct {
	svc *appsvcs.Services
}

// NewGetProductHandler returns a GetProductHandler backed by the given services.
func NewGetProductHandler(svc *appsvcs.Services) *GetProductHandler {
	return &GetProductHandler{svc: svc}
}

// Execute fetches a single product.
//
//	@Summary	Get product
//	@Tags		products
//	@Produce	json
//	@Param		id	path		int	true	"Product ID"
//	@Success	200	{object}	ProductResponse
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/products/{id} [get]
func (h *GetProductHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromURL(w, r)
	if !ok {
		return
	}

	product, err := h.svc.Product.GetByID(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toProductResponse(product))
}
