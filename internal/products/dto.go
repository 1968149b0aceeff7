package product

import (
	"github.com/sirawitp/siamshop-backend/pkg/db/models"
	"github.com/sirawitp/siamshop-backend/pkg/enums"
	"github.com/sirawitp/siamshop-backend/pkg/pagination"
)

// ListFilters describe the supported filter knobs for the browse endpoint.
type ListFilters struct {
	Category string `json:"category,omitempty"`
	PriceMin *int   `json:"price_min,omitempty"`
	PriceMax *int   `json:"price_max,omitempty"`
	InStock  *bool  `json:"in_stock,omitempty"`
	Query    string `json:"q,omitempty"`
}

// ListQuery captures the inputs needed to paginate/filter the catalog.
type ListQuery struct {
	Filters         ListFilters
	Sort            enums.ProductSort
	Pagination      pagination.Params
	IncludeInactive bool
}

// ListResult wraps the paginated products plus the next page cursor.
type ListResult struct {
	Products   []models.Product `json:"products"`
	NextCursor string           `json:"next_cursor,omitempty"`
}

// UpsertInput is the admin payload for creating or updating a product.
type UpsertInput struct {
	Name           string   `json:"name" validate:"required,min=1,max=200"`
	Description    *string  `json:"description,omitempty"`
	Category       string   `json:"category" validate:"required,min=1,max=100"`
	Price          int      `json:"price" validate:"gte=0"`
	CompareAtPrice *int     `json:"compare_at_price,omitempty" validate:"omitempty,gte=0"`
	Stock          int      `json:"stock" validate:"gte=0"`
	ImageName      *string  `json:"image_name,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	IsActive       *bool    `json:"is_active,omitempty"`
}
