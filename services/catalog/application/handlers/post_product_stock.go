package handlers

import (
	"net/http"

	"github.com/victordehoyos/ProductCatalog/pkg/errhttp"
	"github.com/victordehoyos/ProductCatalog/pkg/httpx"
	pkgvalidator "github.com/victordehoyos/ProductCatalog/pkg/validator"
	appsvcs "github.com/victordehoyos/ProductCatalog/services/catalog/application/services"
)

// StockRequest is the request body for the stock adjustment endpoints.
type StockRequest struct {
	Quantity int `json:"quantity" validate:"required,gte=1" example:"5"`
} // @name StockRequest

// IncreaseStockHandler handles POST /products/{id}/increase-stock requests.
type IncreaseStockHandler struct {
	svc *appsvcs.Services
}

// NewIncreaseStockHandler returns an IncreaseStockHandler backed by the given services.
func NewIncreaseStockHandler(svc *appsvcs.Services) *IncreaseStockHandler {
	return &IncreaseStockHandler{svc: svc}
}

// Execute adds stock to a product. Adding stock to an unknown product is
// accepted and has no effect.
//
//	@Summary	Increase stock
//	@Tags		products
//	@Accept		json
//	@Produce	json
//	@Param		id		path	int				true	"Product ID"
//	@Param		request	body	StockRequest	true	"Stock adjustment"
//	@Success	204
//	@Failure	400	{object}	ErrorResponse
//	@Failure	422	{object}	ErrorResponse
//	@Router		/products/{id}/increase-stock [post]
func (h *IncreaseStockHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromURL(w, r)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[StockRequest](w, r)
	if !ok {
		return
	}

	if err := h.svc.Product.IncreaseStock(r.Context(), id, req.Quantity); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DecreaseStockHandler handles POST /products/{id}/decrease-stock requests.
type DecreaseStockHandler struct {
	svc *appsvcs.Services
}

// NewDecreaseStockHandler returns a DecreaseStockHandler backed by the given services.
func NewDecreaseStockHandler(svc *appsvcs.Services) *DecreaseStockHandler {
	return &DecreaseStockHandler{svc: svc}
}

// Execute removes stock from a product. When the product is missing or stock
// is too low the decrement does not apply; the response is 204 either way.
//
//	@Summary	Decrease stock
//	@Tags		products
//	@Accept		json
//	@Produce	json
//	@Param		id		path	int				true	"Product ID"
//	@Param		request	body	StockRequest	true	"Stock adjustment"
//	@Success	204
//	@Failure	400	{object}	ErrorResponse
//	@Failure	422	{object}	ErrorResponse
//	@Router		/products/{id}/decrease-stock [post]
func (h *DecreaseStockHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromURL(w, r)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[StockRequest](w, r)
	if !ok {
		return
	}

	if err := h.svc.Product.DecreaseStockAdmin(r.Context(), id, req.Quantity); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
