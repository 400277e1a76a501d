package handlers

import (
	"net/http"

	"github.com/victordehoyos/ProductCatalog/pkg/errhttp"
	"github.com/victordehoyos/ProductCatalog/pkg/httpx"
	appsvcs "github.com/victordehoyos/ProductCatalog/services/catalog/application/services"
)

// GetOrdersHandler handles GET /orders requests.
type GetOrdersHandler struct {
	svc *appsvcs.Services
}

// NewGetOrdersHandler returns a GetOrdersHandler backed by the given services.
func NewGetOrdersHandler(svc *appsvcs.Services) *GetOrdersHandler {
	return &GetOrdersHandler{svc: svc}
}

// Execute lists all orders, newest first.
//
//	@Summary	List orders
//	@Tags		orders
//	@Produce	json
//	@Success	200	{array}		OrderResponse
//	@Failure	500	{object}	ErrorResponse
//	@Router		/orders [get]
func (h *GetOrdersHandler) Execute(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.Order.List(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	out := make([]OrderResponse, len(orders))
	for i, v := range orders {
		out[i] = toOrderResponse(v)
	}
	httpx.JSON(w, http.StatusOK, out)
}
