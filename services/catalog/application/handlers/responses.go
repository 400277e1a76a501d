package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/victordehoyos/ProductCatalog/pkg/httpx"
	appsvcs "github.com/victordehoyos/ProductCatalog/services/catalog/application/services"
	"github.com/victordehoyos/ProductCatalog/services/catalog/domain/models"
)

// ProductResponse is the JSON projection of a product.
type ProductResponse struct {
	ID          int64           `json:"id"          example:"1"`
	Name        string          `json:"name"        example:"Mechanical Keyboard"`
	Description string          `json:"description" example:"Hot-swappable switches"`
	Price       decimal.Decimal `json:"price"       example:"79.99"`
	Stock       int             `json:"stock"       example:"25"`
	Version     int             `json:"version"     example:"0"`
	CreatedAt   time.Time       `json:"created_at"  example:"2024-01-15T10:30:00Z"`
	UpdatedAt   *time.Time      `json:"updated_at,omitempty"`
} // @name ProductResponse

// OrderResponse is the JSON projection of a placed order.
type OrderResponse struct {
	ID        int64           `json:"id"         example:"1"`
	ProductID int64           `json:"product_id" example:"1"`
	Quantity  int             `json:"quantity"   example:"2"`
	Total     decimal.Decimal `json:"total"      example:"159.98"`
	Date      time.Time       `json:"date"       example:"2024-01-15T10:30:00Z"`
} // @name OrderResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"product not found"`
} // @name ErrorResponse

func toProductResponse(p *models.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Version:     p.Version,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toOrderResponse(v appsvcs.OrderView) OrderResponse {
	return OrderResponse{
		ID:        v.ID,
		ProductID: v.ProductID,
		Quantity:  v.Quantity,
		Total:     v.Total,
		Date:      v.Date,
	}
}

// idFromURL extracts the {id} route parameter. On a malformed ID it writes a
// 400 response and reports false.
func idFromURL(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
