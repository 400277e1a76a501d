package handlers

import (
	"net/http"

	"github.com/victordehoyos/ProductCatalog/pkg/errhttp"
	"github.com/victordehoyos/ProductCatalog/pkg/httpx"
	appsvcs "github.com/victordehoyos/ProductCatalog/services/catalog/application/services"
)

// DeleteProductHandler handles DELETE /products/{id} requests.
type DeleteProductHandler struct {
	svc *appsvcs.Services
}

// NewDeleteProductHandler returns a DeleteProductHandler backed by the given services.
func NewDeleteProductHandler(svc *appsvcs.Services) *DeleteProductHandler {
	return &DeleteProductHandler{svc: svc}
}

// Execute removes a product.
//
//	@Summary	Delete product
//	@Tags		products
//	@Produce	json
//	@Param		id	path	int	true	"Product ID"
//	@Success	204
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/products/{id} [delete]
func (h *DeleteProductHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromURL(w, r)
	if !ok {
		return
	}

	deleted, err := h.svc.Product.Delete(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	if !deleted {
		httpx.JSONError(w, http.StatusNotFound, "product not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
