package users

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sirawitp/siamshop-backend/pkg/enums"
	pkgerrors "github.com/sirawitp/siamshop-backend/pkg/errors"
	"github.com/sirawitp/siamshop-backend/pkg/logger"
	"github.com/sirawitp/siamshop-backend/pkg/pagination"
)

// Service exposes the admin-facing user management operations.
type Service interface {
	List(ctx context.Context, params pagination.Params) (*List, error)
	UpdateRole(ctx context.Context, actorID, userID uuid.UUID, role string) (*View, error)
	Delete(ctx context.Context, actorID, userID uuid.UUID) error
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService wires the user management service.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) List(ctx context.Context, params pagination.Params) (*List, error) {
	records, nextCursor, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	views := make([]View, 0, len(records))
	for i := range records {
		views = append(views, *FromModel(&records[i]))
	}
	return &List{Users: views, NextCursor: nextCursor}, nil
}

func (s *service) UpdateRole(ctx context.Context, actorID, userID uuid.UUID, role string) (*View, error) {
	parsed, err := enums.ParseRole(role)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown role %q", role))
	}
	if actorID == userID {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cannot change your own role")
	}

	if err := s.repo.UpdateRole(ctx, userID, parsed.String()); err != nil {
		return nil, err
	}

	updated, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithUserID(ctx, userID.String()), fmt.Sprintf("role changed to %s", parsed))
	}
	return FromModel(updated), nil
}

func (s *service) Delete(ctx context.Context, actorID, userID uuid.UUID) error {
	if actorID == userID {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "cannot delete your own account")
	}

	hasOrders, err := s.repo.HasOrders(ctx, userID)
	if err != nil {
		return err
	}
	if hasOrders {
		return pkgerrors.New(pkgerrors.CodeConflict, "user has orders and cannot be deleted")
	}

	return s.repo.Delete(ctx, userID)
}
