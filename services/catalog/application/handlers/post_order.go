package handlers

import (
	"net/http"

	"github.com/victordehoyos/ProductCatalog/pkg/errhttp"
	"github.com/victordehoyos/ProductCatalog/pkg/httpx"
	pkgvalidator "github.com/victordehoyos/ProductCatalog/pkg/validator"
	appsvcs "github.com/victordehoyos/ProductCatalog/services/catalog/application/services"
)

// IdempotencyKeyHeader carries the client-chosen retry key for order placement.
const IdempotencyKeyHeader = "Idempotency-Key"

// CreateOrderRequest is the request body for POST /orders.
type CreateOrderRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gte=1" example:"1"`
	Quantity  int   `json:"quantity" validate:"required,gte=1" example:"2"`
} // @name CreateOrderRequest

// PostOrderHandler handles POST /orders requests.
type PostOrderHandler struct {
	svc *appsvcs.Services
}

// NewPostOrderHandler returns a PostOrderHandler backed by the given services.
func NewPostOrderHandler(svc *appsvcs.Services) *PostOrderHandler {
	return &PostOrderHandler{svc: svc}
}

// Execute places an order. Retrying with the same Idempotency-Key returns the
// original order with 200 instead of creating a second one.
//
//	@Summary		Place order
//	@Description	Places an order at most once per Idempotency-Key, reserving stock atomically
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			Idempotency-Key	header		string				true	"Client-chosen retry key (max 64 chars)"
//	@Param			request			body		CreateOrderRequest	true	"Order placement request"
//	@Success		201				{object}	OrderResponse	"Created, or the original order on a replay"
//	@Failure		400				{object}	ErrorResponse
//	@Failure		404				{object}	ErrorResponse
//	@Failure		409				{object}	ErrorResponse
//	@Failure		422				{object}	ErrorResponse
//	@Router			/orders [post]
func (h *PostOrderHandler) Execute(w http.ResponseWriter, r *http.Request) {
	key := r.Header.Get(IdempotencyKeyHeader)

	req, ok := pkgvalidator.ValidateRequest[CreateOrderRequest](w, r)
	if !ok {
		return
	}

	view, err := h.svc.Order.Create(r.Context(), appsvcs.CreateOrderInput{
		ProductID:      req.ProductID,
		Quantity:       req.Quantity,
		IdempotencyKey: key,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toOrderResponse(view))
}
