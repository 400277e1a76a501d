// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/victordehoyos/ProductCatalog/pkg/httpx"
	catalogdomain "github.com/victordehoyos/ProductCatalog/services/catalog/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
func WriteError(w http.ResponseWriter, err error) {
	httpx.JSONError(w, mapErrorToStatus(err), err.Error())
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, catalogdomain.ErrProductNotFound),
		errors.Is(err, catalogdomain.ErrOrderNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, catalogdomain.ErrInsufficientStock),
		errors.Is(err, catalogdomain.ErrConcurrencyConflict),
		errors.Is(err, catalogdomain.ErrDuplicateIdempotencyKey):
		return http.StatusConflict // 409
	case errors.Is(err, catalogdomain.ErrInvalidProduct),
		errors.Is(err, catalogdomain.ErrInvalidQuantity):
		return http.StatusUnprocessableEntity // 422
	case errors.Is(err, catalogdomain.ErrIdempotencyKeyRequired):
		return http.StatusBadRequest // 400
	default:
		return http.StatusInternalServerError // 500
	}
}
