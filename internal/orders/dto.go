package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/sirawitp/siamshop-backend/pkg/enums"
	"github.com/sirawitp/siamshop-backend/pkg/types"
)

// Summary exposes the aggregated fields returned in order lists.
type Summary struct {
	ID            uuid.UUID           `json:"id"`
	OrderNumber   string              `json:"order_number"`
	CreatedAt     time.Time           `json:"created_at"`
	Status        enums.OrderStatus   `json:"status"`
	PaymentStatus enums.PaymentStatus `json:"payment_status"`
	Total         int                 `json:"total"`
	TotalItems    int                 `json:"total_items"`
	CustomerName  string              `json:"customer_name"`
}

// List wraps the paginated orders plus the next page cursor.
type List struct {
	Orders     []Summary `json:"orders"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

// AdminFilters describe the inputs supported by the admin orders list.
type AdminFilters struct {
	Status        *enums.OrderStatus
	PaymentStatus *enums.PaymentStatus
	DateFrom      *time.Time
	DateTo        *time.Time
	Query         string
}

// AdminUpdateInput carries the field-level edits an admin can apply.
type AdminUpdateInput struct {
	Status         *enums.OrderStatus   `json:"status,omitempty"`
	PaymentStatus  *enums.PaymentStatus `json:"payment_status,omitempty"`
	AdminNote      types.NullableString `json:"admin_note,omitempty"`
	TrackingNumber types.NullableString `json:"tracking_number,omitempty"`
}
