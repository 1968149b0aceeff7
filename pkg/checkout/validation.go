package checkout

import (
	"fmt"

	"github.com/google/uuid"

	pkgerrors "github.com/sirawitp/siamshop-backend/pkg/errors"
)

// StockValidationInput describes the data required to verify a line item's availability.
type StockValidationInput struct {
	ProductID   uuid.UUID
	ProductName string
	Stock       int
	Quantity    int
}

// StockViolationDetail exposes the data returned to callers when a validation fails.
type StockViolationDetail struct {
	ProductID    uuid.UUID `json:"product_id"`
	ProductName  string    `json:"product_name,omitempty"`
	AvailableQty int       `json:"available_qty"`
	RequestedQty int       `json:"requested_qty"`
}

// ValidateStock ensures every provided line item can be covered by current stock.
func ValidateStock(items []StockValidationInput) error {
	var violations []StockViolationDetail
	for _, item := range items {
		if item.Quantity <= item.Stock {
			continue
		}
		violations = append(violations, StockViolationDetail{
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			AvailableQty: item.Stock,
			RequestedQty: item.Quantity,
		})
	}
	if len(violations) == 0 {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("insufficient stock for %d item(s)", len(violations))).WithDetails(map[string]any{
		"violations": violations,
	})
}
