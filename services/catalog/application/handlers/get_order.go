package handlers

import (
	"net/http"

	"github.com/victordehoyos/ProductCatalog/pkg/errhttp"
	"github.com/victordehoyos/ProductCatalog/pkg/httpx"
	appsvcs "github.com/victordehoyos/ProductCatalog/services/catalog/application/services"
)

// GetOrderHandler handles GET /orders/{id} requests.
type GetOrderHandler struct {
	svc *appsvcs.Services
}

// NewGetOrderHandler returns a GetOrderHandler backed by the given services.
func NewGetOrderHandler(svc *appsvcs.Services) *GetOrderHandler {
	return &GetOrderHandler{svc: svc}
}

// Execute fetches a single order.
//
//	@Summary	Get order
//	@Tags		orders
//	@Produce	json
//	@Param		id	path		int	true	"Order ID"
//	@Success	200	{object}	OrderResponse
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/orders/{id} [get]
func (h *GetOrderHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromURL(w, r)
	if !ok {
		return
	}

	view, err := h.svc.Order.GetByID(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toOrderResponse(view))
}
