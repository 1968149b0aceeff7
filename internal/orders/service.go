package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sirawitp/siamshop-backend/pkg/db/models"
	"github.com/sirawitp/siamshop-backend/pkg/enums"
	pkgerrors "github.com/sirawitp/siamshop-backend/pkg/errors"
	"github.com/sirawitp/siamshop-backend/pkg/logger"
	"github.com/sirawitp/siamshop-backend/pkg/pagination"
)

// Service exposes order reads plus the admin mutation surface.
type Service interface {
	ListMine(ctx context.Context, userID uuid.UUID, params pagination.Params) (*List, error)
	GetMine(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error)
	AdminList(ctx context.Context, params pagination.Params, filters AdminFilters) (*List, error)
	AdminGet(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	AdminUpdate(ctx context.Context, orderID uuid.UUID, input AdminUpdateInput) (*models.Order, error)
}

type service struct {
	repo   Repository
	events EventPublisher
	logg   *logger.Logger
	now    func() time.Time
}

// NewService builds an order service with the required dependencies.
func NewService(repo Repository, events EventPublisher, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if events == nil {
		return nil, fmt.Errorf("event publisher required")
	}
	return &service{
		repo:   repo,
		events: events,
		logg:   logg,
		now:    time.Now,
	}, nil
}

func (s *service) ListMine(ctx context.Context, userID uuid.UUID, params pagination.Params) (*List, error) {
	return s.repo.ListByUser(ctx, userID, params)
}

func (s *service) GetMine(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	return s.repo.FindByIDForUser(ctx, orderID, userID)
}

func (s *service) AdminList(ctx context.Context, params pagination.Params, filters AdminFilters) (*List, error) {
	return s.repo.ListAll(ctx, params, filters)
}

func (s *service) AdminGet(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	return s.repo.FindByID(ctx, orderID)
}

// AdminUpdate applies field-level edits. Status changes are guarded by the
// fulfillment state machine; note and tracking edits are free-form.
func (s *service) AdminUpdate(ctx context.Context, orderID uuid.UUID, input AdminUpdateInput) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}

	if input.Status != nil {
		target := *input.Status
		if !target.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status")
		}
		if target != order.Status {
			if !order.Status.CanTransitionTo(target) {
				return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
					fmt.Sprintf("cannot move order from %s to %s", order.Status, target))
			}
			updates["status"] = target
		}
	}

	if input.PaymentStatus != nil {
		if !input.PaymentStatus.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown payment status")
		}
		if *input.PaymentStatus != order.PaymentStatus {
			updates["payment_status"] = *input.PaymentStatus
		}
	}

	if input.AdminNote.Valid {
		updates["admin_note"] = input.AdminNote.Value
	}
	if input.TrackingNumber.Valid {
		updates["tracking_number"] = input.TrackingNumber.Value
	}

	if len(updates) == 0 {
		return order, nil
	}

	if err := s.repo.UpdateFields(ctx, orderID, updates); err != nil {
		return nil, err
	}

	updated, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if _, statusChanged := updates["status"]; statusChanged || updates["payment_status"] != nil {
		event := Event{
			OrderID:       updated.ID,
			OrderNumber:   updated.OrderNumber,
			UserID:        updated.UserID,
			Status:        updated.Status,
			PaymentStatus: updated.PaymentStatus,
			OccurredAt:    s.now().UTC(),
		}
		if err := s.events.PublishOrderEvent(ctx, event); err != nil && s.logg != nil {
			s.logg.Warn(ctx, fmt.Sprintf("publishing order event failed: %v", err))
		}
	}

	return updated, nil
}

// ToEnumStatus narrows raw admin input into the typed status.
func ToEnumStatus(value string) (*enums.OrderStatus, error) {
	if value == "" {
		return nil, nil
	}
	status, err := enums.ParseOrderStatus(value)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order status")
	}
	return &status, nil
}
