package checkout

import (
	"github.com/sirawitp/siamshop-backend/internal/pricing"
	"github.com/sirawitp/siamshop-backend/pkg/enums"
)

// ShippingAddress is the destination captured at checkout.
type ShippingAddress struct {
	Line1       string `json:"line1" validate:"required"`
	Subdistrict string `json:"subdistrict" validate:"required"`
	District    string `json:"district" validate:"required"`
	Province    string `json:"province" validate:"required"`
	PostalCode  string `json:"postal_code" validate:"required"`
}

// Input is the payload required to place an order.
type Input struct {
	CustomerName  string              `json:"customer_name" validate:"required"`
	CustomerPhone string              `json:"customer_phone" validate:"required"`
	CustomerEmail string              `json:"customer_email" validate:"required,email"`
	Shipping      ShippingAddress     `json:"shipping" validate:"required"`
	PaymentMethod enums.PaymentMethod `json:"payment_method" validate:"required"`
}

// Receipt is returned after a successful checkout.
type Receipt struct {
	OrderID     string         `json:"order_id"`
	OrderNumber string         `json:"order_number"`
	Totals      pricing.Totals `json:"totals"`
}
