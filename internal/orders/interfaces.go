package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sirawitp/siamshop-backend/pkg/db/models"
	"github.com/sirawitp/siamshop-backend/pkg/pagination"
)

// Repository defines persistence operations for orders.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) (*List, error)
	ListAll(ctx context.Context, params pagination.Params, filters AdminFilters) (*List, error)
	UpdateFields(ctx context.Context, id uuid.UUID, updates map[string]any) error
}
