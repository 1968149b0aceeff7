package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sirawitp/siamshop-backend/internal/pricing"
	"github.com/sirawitp/siamshop-backend/pkg/db/models"
	pkgerrors "github.com/sirawitp/siamshop-backend/pkg/errors"
)

type productLoader interface {
	FindActiveByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
}

type itemStore interface {
	Load(ctx context.Context, userID uuid.UUID) ([]Item, error)
	Save(ctx context.Context, userID uuid.UUID, items []Item) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

// Service exposes cart operations for the authenticated storefront user.
type Service interface {
	View(ctx context.Context, userID uuid.UUID) (*View, error)
	AddItem(ctx context.Context, userID uuid.UUID, input AddItemInput) (*View, error)
	SetQuantity(ctx context.Context, userID uuid.UUID, productID uuid.UUID, quantity int) (*View, error)
	RemoveItem(ctx context.Context, userID uuid.UUID, productID uuid.UUID) (*View, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	store       itemStore
	products    productLoader
	shippingFee int
	now         func() time.Time
}

// NewService builds a cart service backed by the provided stack.
func NewService(store itemStore, products productLoader, shippingFee int) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart item store required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if shippingFee < 0 {
		return nil, fmt.Errorf("shipping fee must not be negative")
	}
	return &service{
		store:       store,
		products:    products,
		shippingFee: shippingFee,
		now:         time.Now,
	}, nil
}

func (s *service) View(ctx context.Context, userID uuid.UUID) (*View, error) {
	items, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, userID, items)
}

func (s *service) AddItem(ctx context.Context, userID uuid.UUID, input AddItemInput) (*View, error) {
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	products, err := s.products.FindActiveByIDs(ctx, []uuid.UUID{input.ProductID})
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	items, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range items {
		if items[i].ProductID == input.ProductID {
			items[i].Quantity += input.Quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, Item{
			ProductID: input.ProductID,
			Quantity:  input.Quantity,
			AddedAt:   s.now().UTC(),
		})
	}

	if err := s.store.Save(ctx, userID, items); err != nil {
		return nil, err
	}
	return s.buildView(ctx, userID, items)
}

// SetQuantity overwrites a line's quantity. Zero or negative removes the line.
func (s *service) SetQuantity(ctx context.Context, userID uuid.UUID, productID uuid.UUID, quantity int) (*View, error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, userID, productID)
	}

	items, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not in cart")
	}

	if err := s.store.Save(ctx, userID, items); err != nil {
		return nil, err
	}
	return s.buildView(ctx, userID, items)
}

// RemoveItem drops a line from the cart. Removing an absent product is a no-op.
func (s *service) RemoveItem(ctx context.Context, userID uuid.UUID, productID uuid.UUID) (*View, error) {
	items, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	remaining := items[:0]
	for _, item := range items {
		if item.ProductID != productID {
			remaining = append(remaining, item)
		}
	}

	if err := s.store.Save(ctx, userID, remaining); err != nil {
		return nil, err
	}
	return s.buildView(ctx, userID, remaining)
}

func (s *service) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.store.Clear(ctx, userID)
}

// buildView joins stored lines against the live catalog. Prices always come
// from the product record, never from anything persisted with the cart, and
// lines whose product vanished or went inactive are reported as removed.
func (s *service) buildView(ctx context.Context, userID uuid.UUID, items []Item) (*View, error) {
	view := &View{Lines: []LineView{}}
	if len(items) == 0 {
		view.Totals = pricing.Compute(nil, s.shippingFee)
		return view, nil
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	products, err := s.products.FindActiveByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	kept := make([]Item, 0, len(items))
	lines := make([]pricing.Line, 0, len(items))
	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok {
			view.RemovedLines = append(view.RemovedLines, item.ProductID)
			continue
		}
		kept = append(kept, item)
		view.Lines = append(view.Lines, LineView{
			ProductID:      product.ID,
			ProductName:    product.Name,
			UnitPrice:      product.EffectivePrice(),
			Quantity:       item.Quantity,
			LineTotal:      pricing.LineTotal(pricing.Line{UnitPrice: product.EffectivePrice(), Quantity: item.Quantity}),
			ImageName:      product.ImageName,
			AvailableStock: product.Stock,
			AddedAt:        item.AddedAt,
		})
		lines = append(lines, pricing.Line{UnitPrice: product.EffectivePrice(), Quantity: item.Quantity})
	}

	if len(view.RemovedLines) > 0 {
		if err := s.store.Save(ctx, userID, kept); err != nil {
			return nil, err
		}
	}

	view.Totals = pricing.Compute(lines, s.shippingFee)
	return view, nil
}
