package product

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/sirawitp/siamshop-backend/pkg/db/models"
	"github.com/sirawitp/siamshop-backend/pkg/enums"
	pkgerrors "github.com/sirawitp/siamshop-backend/pkg/errors"
)

// Service exposes catalog reads plus the admin CRUD surface.
type Service interface {
	List(ctx context.Context, query ListQuery) (*ListResult, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Create(ctx context.Context, input UpsertInput) (*models.Product, error)
	Update(ctx context.Context, id uuid.UUID, input UpsertInput) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService builds a product service backed by the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, query ListQuery) (*ListResult, error) {
	if query.Sort != "" && !query.Sort.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown sort option")
	}
	return s.repo.List(ctx, query)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) Create(ctx context.Context, input UpsertInput) (*models.Product, error) {
	if err := validateUpsert(input); err != nil {
		return nil, err
	}

	product := &models.Product{
		ID:             uuid.New(),
		Name:           input.Name,
		Description:    input.Description,
		Category:       input.Category,
		Price:          input.Price,
		CompareAtPrice: input.CompareAtPrice,
		Stock:          input.Stock,
		ImageName:      input.ImageName,
		Tags:           pq.StringArray(input.Tags),
		IsActive:       true,
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if product.Tags == nil {
		product.Tags = pq.StringArray{}
	}
	return s.repo.Create(ctx, product)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpsertInput) (*models.Product, error) {
	if err := validateUpsert(input); err != nil {
		return nil, err
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.Description = input.Description
	product.Category = input.Category
	product.Price = input.Price
	product.CompareAtPrice = input.CompareAtPrice
	product.Stock = input.Stock
	product.ImageName = input.ImageName
	if input.Tags != nil {
		product.Tags = pq.StringArray(input.Tags)
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	return s.repo.Update(ctx, product)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func validateUpsert(input UpsertInput) error {
	if input.Price < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}
	if input.Stock < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "stock must not be negative")
	}
	if input.CompareAtPrice != nil && *input.CompareAtPrice < input.Price {
		return pkgerrors.New(pkgerrors.CodeValidation, "compare-at price must not undercut price")
	}
	return nil
}

// DefaultSort is what the storefront uses when no sort is requested.
const DefaultSort = enums.ProductSortNewest
