// Package services contains stateless domain services for the catalog bounded
// context. They enforce business rules that operate purely on domain types and
// have zero external dependencies beyond the domain layer.
package services

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/victordehoyos/ProductCatalog/services/catalog/domain/models"
)

const (
	maxProductNameLength        = 100
	maxProductDescriptionLength = 500
)

// minProductPrice is the smallest sellable unit price.
var minProductPrice = decimal.NewFromFloat(0.01)

// ValidateName enforces business rules for product names beyond structural
// length limits: no leading/trailing whitespace, no control characters,
// not blank.
func ValidateName(name string) error {
	if name != strings.TrimSpace(name) {
		return fmt.Errorf("product name must not have leading or trailing whitespace")
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("product name must not be blank")
	}
	if len(name) > maxProductNameLength {
		return fmt.Errorf("product name must not exceed %d characters", maxProductNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return fmt.Errorf("product name must not contain control characters")
		}
	}
	return nil
}

// ValidateProduct performs cross-field validation on a Product aggregate
// before it is persisted or updated.
func ValidateProduct(p *models.Product) error {
	if p == nil {
		return fmt.Errorf("product cannot be nil")
	}
	if err := ValidateName(p.Name); err != nil {
		return fmt.Errorf("invalid name: %w", err)
	}
	if len(p.Description) > maxProductDescriptionLength {
		return fmt.Errorf("description must not exceed %d characters", maxProductDescriptionLength)
	}
	if p.Price.LessThan(minProductPrice) {
		return fmt.Errorf("price must be at least %s", minProductPrice)
	}
	if p.Stock < 0 {
		return fmt.Errorf("stock must not be negative")
	}
	return nil
}
