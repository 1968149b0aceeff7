package cart

import (
	"time"

	"github.com/google/uuid"

	"github.com/sirawitp/siamshop-backend/internal/pricing"
)

// LineView is a cart line joined against the current catalog.
type LineView struct {
	ProductID      uuid.UUID `json:"product_id"`
	ProductName    string    `json:"product_name"`
	UnitPrice      int       `json:"unit_price"`
	Quantity       int       `json:"quantity"`
	LineTotal      int       `json:"line_total"`
	ImageName      *string   `json:"image_name,omitempty"`
	AvailableStock int       `json:"available_stock"`
	AddedAt        time.Time `json:"added_at"`
}

// View is the aggregated cart returned to clients. Totals are recomputed
// from the catalog on every read; nothing here is a stored snapshot.
type View struct {
	Lines        []LineView     `json:"lines"`
	Totals       pricing.Totals `json:"totals"`
	RemovedLines []uuid.UUID    `json:"removed_lines,omitempty"`
}

// AddItemInput is the payload for adding a product to the cart.
type AddItemInput struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}
