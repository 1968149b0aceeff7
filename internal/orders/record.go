package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/sirawitp/siamshop-backend/pkg/enums"
)

type orderSummaryRecord struct {
	ID            uuid.UUID
	OrderNumber   string
	CreatedAt     time.Time
	Status        enums.OrderStatus
	PaymentStatus enums.PaymentStatus
	Total         int
	CustomerName  string
	TotalItems    int
}

func (r orderSummaryRecord) toSummary() Summary {
	return Summary{
		ID:            r.ID,
		OrderNumber:   r.OrderNumber,
		CreatedAt:     r.CreatedAt,
		Status:        r.Status,
		PaymentStatus: r.PaymentStatus,
		Total:         r.Total,
		TotalItems:    r.TotalItems,
		CustomerName:  r.CustomerName,
	}
}
