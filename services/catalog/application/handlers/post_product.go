package handlers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/victordehoyos/ProductCatalog/pkg/errhttp"
	"github.com/victordehoyos/ProductCatalog/pkg/httpx"
	pkgvalidator "github.com/victordehoyos/ProductCatalog/pkg/validator"
	appsvcs "github.com/victordehoyos/ProductCatalog/services/catalog/application/services"
)

// CreateProductRequest is the request body for POST /products.
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,max=100" example:"Mechanical Keyboard"`
	Description string          `json:"description" validate:"max=500" example:"Hot-swappable switches"`
	Price       decimal.Decimal `json:"price" example:"79.99"`
	Stock       int             `json:"stock" validate:"gte=0" example:"25"`
} // @name CreateProductRequest

// PostProductHandler handles POST /products requests.
type PostProductHandler struct {
	svc *appsvcs.Services
}

// NewPostProductHandler returns a PostProductHandler backed by the given services.
func NewPostProductHandler(svc *appsvcs.Services) *PostProductHandler {
	return &PostProductHandler{svc: svc}
}

// Execute creates a new product.
//
//	@Summary		Create product
//	@Description	Creates a new catalog product at version zero
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateProductRequest	true	"Product creation request"
//	@Success		201		{object}	ProductResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/products [post]
func (h *PostProductHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateProductRequest](w, r)
	if !ok {
		return
	}

	product, err := h.svc.Product.Create(r.Context(), appsvcs.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toProductResponse(product))
}
