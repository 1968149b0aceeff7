package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/sirawitp/siamshop-backend/pkg/enums"
)

// Order is the immutable record written at checkout. Customer and shipping
// fields are snapshotted so later profile edits never rewrite history.
type Order struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber string            `gorm:"column:order_number;not null;index"`
	UserID      uuid.UUID         `gorm:"column:user_id;type:uuid;not null;index"`
	Status      enums.OrderStatus `gorm:"column:status;type:text;not null;default:pending"`

	CustomerName  string `gorm:"column:customer_name;not null"`
	CustomerPhone string `gorm:"column:customer_phone;not null"`
	CustomerEmail string `gorm:"column:customer_email;not null"`

	ShippingLine1       string `gorm:"column:shipping_line1;not null"`
	ShippingSubdistrict string `gorm:"column:shipping_subdistrict;not null"`
	ShippingDistrict    string `gorm:"column:shipping_district;not null"`
	ShippingProvince    string `gorm:"column:shipping_province;not null"`
	ShippingPostalCode  string `gorm:"column:shipping_postal_code;not null"`

	Subtotal    int `gorm:"column:subtotal;not null"`
	ShippingFee int `gorm:"column:shipping_fee;not null"`
	Total       int `gorm:"column:total;not null"`

	PaymentMethod enums.PaymentMethod `gorm:"column:payment_method;type:text;not null"`
	PaymentStatus enums.PaymentStatus `gorm:"column:payment_status;type:text;not null;default:pending"`

	AdminNote      *string `gorm:"column:admin_note"`
	TrackingNumber *string `gorm:"column:tracking_number"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
