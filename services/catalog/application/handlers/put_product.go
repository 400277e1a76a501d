package handlers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/victordehoyos/ProductCatalog/pkg/errhttp"
	"github.com/victordehoyos/ProductCatalog/pkg/httpx"
	pkgvalidator "github.com/victordehoyos/ProductCatalog/pkg/validator"
	appsvcs "github.com/victordehoyos/ProductCatalog/services/catalog/application/services"
)

// UpdateProductRequest is the request body for PUT /products/{id}.
type UpdateProductRequest struct {
	Name        string          `json:"name" validate:"required,max=100" example:"Mechanical Keyboard v2"`
	Description string          `json:"description" validate:"max=500" example:"Gasket mount"`
	Price       decimal.Decimal `json:"price" example:"89.99"`
} // @name UpdateProductRequest

// PutProductHandler handles PUT /products/{id} requests.
type PutProductHandler struct {
	svc *appsvcs.Services
}

// NewPutProductHandler returns a PutProductHandler backed by the given services.
func NewPutProductHandler(svc *appsvcs.Services) *PutProductHandler {
	return &PutProductHandler{svc: svc}
}

// Execute edits a product's name, description, and price under the optimistic
// version guard. A lost update returns 409.
//
//	@Summary		Update product
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Product ID"
//	@Param			request	body		UpdateProductRequest	true	"Product update request"
//	@Success		200		{object}	ProductResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/products/{id} [put]
func (h *PutProductHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromURL(w, r)
	if !ok {
		return
	}

	req, ok := pkgvalidator.ValidateRequest[UpdateProductRequest](w, r)
	if !ok {
		return
	}

	product, err := h.svc.Product.Update(r.Context(), id, appsvcs.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toProductResponse(product))
}
