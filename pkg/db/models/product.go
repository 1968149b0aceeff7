package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Product represents a storefront listing. Prices are whole baht.
type Product struct {
	ID             uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name           string         `gorm:"column:name;not null"`
	Description    *string        `gorm:"column:description"`
	Category       string         `gorm:"column:category;not null;index"`
	Price          int            `gorm:"column:price;not null"`
	CompareAtPrice *int           `gorm:"column:compare_at_price"`
	Stock          int            `gorm:"column:stock;not null;default:0"`
	ImageName      *string        `gorm:"column:image_name"`
	Tags           pq.StringArray `gorm:"column:tags;type:text[];not null;default:ARRAY[]::text[]"`
	IsActive       bool           `gorm:"column:is_active;not null;default:true"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

// EffectivePrice returns the price the customer pays right now.
func (p Product) EffectivePrice() int {
	return p.Price
}

// DiscountPercent reports the markdown against the compare-at price, or 0.
func (p Product) DiscountPercent() int {
	if p.CompareAtPrice == nil || *p.CompareAtPrice <= p.Price || *p.CompareAtPrice == 0 {
		return 0
	}
	return (*p.CompareAtPrice - p.Price) * 100 / *p.CompareAtPrice
}
