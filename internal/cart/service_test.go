package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/sirawitp/siamshop-backend/pkg/db/models"
	pkgerrors "github.com/sirawitp/siamshop-backend/pkg/errors"
)

type stubItemStore struct {
	items map[uuid.UUID][]Item
}

func newStubItemStore() *stubItemStore {
	return &stubItemStore{items: make(map[uuid.UUID][]Item)}
}

func (s *stubItemStore) Load(ctx context.Context, userID uuid.UUID) ([]Item, error) {
	return s.items[userID], nil
}

func (s *stubItemStore) Save(ctx context.Context, userID uuid.UUID, items []Item) error {
	if len(items) == 0 {
		delete(s.items, userID)
		return nil
	}
	copied := make([]Item, len(items))
	copy(copied, items)
	s.items[userID] = copied
	return nil
}

func (s *stubItemStore) Clear(ctx context.Context, userID uuid.UUID) error {
	delete(s.items, userID)
	return nil
}

type stubProductLoader struct {
	products map[uuid.UUID]models.Product
}

func (s *stubProductLoader) FindActiveByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	var out []models.Product
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func newTestService(t *testing.T, products ...models.Product) (Service, *stubItemStore) {
	t.Helper()
	loader := &stubProductLoader{products: make(map[uuid.UUID]models.Product)}
	for _, p := range products {
		loader.products[p.ID] = p
	}
	store := newStubItemStore()
	svc, err := NewService(store, loader, 50)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, store
}

func testProduct(name string, price int) models.Product {
	return models.Product{ID: uuid.New(), Name: name, Price: price, Stock: 10, IsActive: true}
}

func TestAddItemMergesSameProduct(t *testing.T) {
	ctx := context.Background()
	product := testProduct("Jasmine Rice 5kg", 500)
	svc, _ := newTestService(t, product)
	userID := uuid.New()

	if _, err := svc.AddItem(ctx, userID, AddItemInput{ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("first add: %v", err)
	}
	view, err := svc.AddItem(ctx, userID, AddItemInput{ProductID: product.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("second add: %v", err)
	}

	if len(view.Lines) != 1 {
		t.Fatalf("expected one line, got %d", len(view.Lines))
	}
	if view.Lines[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", view.Lines[0].Quantity)
	}
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	ctx := context.Background()
	product := testProduct("Fish Sauce 700ml", 45)
	svc, store := newTestService(t, product)
	userID := uuid.New()

	_, err := svc.AddItem(ctx, userID, AddItemInput{ProductID: product.ID, Quantity: 0})
	if err == nil {
		t.Fatal("expected validation error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
	if len(store.items[userID]) != 0 {
		t.Fatal("cart should remain untouched on rejection")
	}
}

func TestAddItemUnknownProduct(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.AddItem(ctx, uuid.New(), AddItemInput{ProductID: uuid.New(), Quantity: 1})
	if err == nil {
		t.Fatal("expected not found error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", err)
	}
}

func TestSetQuantityZeroEqualsRemove(t *testing.T) {
	ctx := context.Background()
	product := testProduct("Palm Sugar 1kg", 80)
	svc, _ := newTestService(t, product)
	userID := uuid.New()

	if _, err := svc.AddItem(ctx, userID, AddItemInput{ProductID: product.ID, Quantity: 3}); err != nil {
		t.Fatalf("add: %v", err)
	}

	view, err := svc.SetQuantity(ctx, userID, product.ID, 0)
	if err != nil {
		t.Fatalf("set quantity 0: %v", err)
	}
	if len(view.Lines) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(view.Lines))
	}
}

func TestSetQuantityOverwrites(t *testing.T) {
	ctx := context.Background()
	product := testProduct("Dried Chili 500g", 120)
	svc, _ := newTestService(t, product)
	userID := uuid.New()

	if _, err := svc.AddItem(ctx, userID, AddItemInput{ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("add: %v", err)
	}
	view, err := svc.SetQuantity(ctx, userID, product.ID, 5)
	if err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	if view.Lines[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", view.Lines[0].Quantity)
	}
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	ctx := context.Background()
	product := testProduct("Coconut Milk 400ml", 35)
	svc, _ := newTestService(t, product)
	userID := uuid.New()

	if _, err := svc.AddItem(ctx, userID, AddItemInput{ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.RemoveItem(ctx, userID, product.ID); err != nil {
		t.Fatalf("first remove: %v", err)
	}
	view, err := svc.RemoveItem(ctx, userID, product.ID)
	if err != nil {
		t.Fatalf("second remove should be a no-op: %v", err)
	}
	if len(view.Lines) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(view.Lines))
	}

	// Removing from an empty cart is also fine.
	if _, err := svc.RemoveItem(ctx, userID, uuid.New()); err != nil {
		t.Fatalf("remove absent id: %v", err)
	}
}

func TestViewRecomputesTotalsFromCatalog(t *testing.T) {
	ctx := context.Background()
	product := testProduct("Rice Cooker 1.8L", 500)
	loader := &stubProductLoader{products: map[uuid.UUID]models.Product{product.ID: product}}
	store := newStubItemStore()
	svc, err := NewService(store, loader, 50)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	userID := uuid.New()

	view, err := svc.AddItem(ctx, userID, AddItemInput{ProductID: product.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if view.Totals.Subtotal != 1000 || view.Totals.Total != 1050 {
		t.Fatalf("unexpected totals %+v", view.Totals)
	}

	// Catalog price change must show up on the next read.
	product.Price = 600
	loader.products[product.ID] = product

	view, err = svc.View(ctx, userID)
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if view.Totals.Subtotal != 1200 || view.Totals.Total != 1250 {
		t.Fatalf("expected recomputed totals, got %+v", view.Totals)
	}
}

func TestViewDropsVanishedProducts(t *testing.T) {
	ctx := context.Background()
	product := testProduct("Tea Set", 250)
	loader := &stubProductLoader{products: map[uuid.UUID]models.Product{product.ID: product}}
	store := newStubItemStore()
	svc, err := NewService(store, loader, 50)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	userID := uuid.New()

	if _, err := svc.AddItem(ctx, userID, AddItemInput{ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("add: %v", err)
	}

	delete(loader.products, product.ID)

	view, err := svc.View(ctx, userID)
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if len(view.Lines) != 0 {
		t.Fatalf("expected vanished product dropped, got %d lines", len(view.Lines))
	}
	if len(view.RemovedLines) != 1 || view.RemovedLines[0] != product.ID {
		t.Fatalf("expected removal report, got %+v", view.RemovedLines)
	}
	if len(store.items[userID]) != 0 {
		t.Fatal("expected stored cart pruned")
	}
}

func TestEmptyCartView(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	view, err := svc.View(ctx, uuid.New())
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if view.Totals.Subtotal != 0 || view.Totals.TotalItems != 0 {
		t.Fatalf("expected empty subtotal, got %+v", view.Totals)
	}
	if view.Totals.ShippingFee != 50 || view.Totals.Total != 50 {
		t.Fatalf("expected flat shipping fee, got %+v", view.Totals)
	}
}
