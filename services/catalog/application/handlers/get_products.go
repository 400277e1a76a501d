package handlers

import (
	"net/http"

	"github.com/victordehoyos/ProductCatalog/pkg/errhttp"
	"github.com/victordehoyos/ProductCatalog/pkg/httpx"
	appsvcs "github.com/victordehoyos/ProductCatalog/services/catalog/application/services"
)

// GetProductsHandler handles GET /products requests.
type GetProductsHandler struct {
	svc *appsvcs.Services
}

// NewGetProductsHandler returns a GetProductsHandler backed by the given services.
func NewGetProductsHandler(svc *appsvcs.Services) *GetProductsHandler {
	return &GetProductsHandler{svc: svc}
}

// Execute lists all products, newest first.
//
//	@Summary	List products
//	@Tags		products
//	@Produce	json
//	@Success	200	{array}		ProductResponse
//	@Failure	500	{object}	ErrorResponse
//	@Router		/products [get]
func (h *GetProductsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.Product.List(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = toProductResponse(p)
	}
	httpx.JSON(w, http.StatusOK, out)
}
