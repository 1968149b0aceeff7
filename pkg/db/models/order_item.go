package models

import (
	"github.com/google/uuid"
)

// OrderItem is a per-line snapshot of a product at checkout time.
type OrderItem struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID     uuid.UUID `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID   uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	ProductName string    `gorm:"column:product_name;not null"`
	ImageName   *string   `gorm:"column:image_name"`
	UnitPrice   int       `gorm:"column:unit_price;not null"`
	Quantity    int       `gorm:"column:quantity;not null"`
	LineTotal   int       `gorm:"column:line_total;not null"`
}
