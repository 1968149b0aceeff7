package product

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sirawitp/siamshop-backend/pkg/db/models"
	"github.com/sirawitp/siamshop-backend/pkg/enums"
	"github.com/sirawitp/siamshop-backend/pkg/pagination"
)

func mustCreateProduct(t *testing.T, tx *gorm.DB, name, category string, price, stock int, active bool) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:       uuid.New(),
		Name:     name,
		Category: category,
		Price:    price,
		Stock:    stock,
		Tags:     []string{},
		IsActive: active,
	}
	if err := tx.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

func TestRepositoryListFilters(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	err := db.Transaction(func(tx *gorm.DB) error {
		repo := NewRepository(tx)

		mustCreateProduct(t, tx, "Jasmine Rice 5kg", "grocery", 250, 10, true)
		mustCreateProduct(t, tx, "Rice Cooker 1.8L", "appliance", 890, 4, true)
		mustCreateProduct(t, tx, "Retired Kettle", "appliance", 450, 0, false)

		result, err := repo.List(ctx, ListQuery{
			Filters: ListFilters{Category: "appliance"},
		})
		if err != nil {
			t.Fatalf("list by category: %v", err)
		}
		if len(result.Products) != 1 {
			t.Fatalf("expected inactive products hidden, got %d rows", len(result.Products))
		}

		result, err = repo.List(ctx, ListQuery{
			Filters:         ListFilters{Category: "appliance"},
			IncludeInactive: true,
		})
		if err != nil {
			t.Fatalf("list including inactive: %v", err)
		}
		if len(result.Products) != 2 {
			t.Fatalf("expected 2 appliance rows, got %d", len(result.Products))
		}

		result, err = repo.List(ctx, ListQuery{
			Filters: ListFilters{Query: "rice"},
		})
		if err != nil {
			t.Fatalf("list by query: %v", err)
		}
		if len(result.Products) != 2 {
			t.Fatalf("expected 2 rice matches, got %d", len(result.Products))
		}

		return gorm.ErrRecordNotFound // roll back fixture data
	})
	if err != gorm.ErrRecordNotFound {
		t.Fatalf("transaction: %v", err)
	}
}

func TestRepositoryListPriceSort(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	err := db.Transaction(func(tx *gorm.DB) error {
		repo := NewRepository(tx)

		mustCreateProduct(t, tx, "A", "misc", 300, 1, true)
		mustCreateProduct(t, tx, "B", "misc", 100, 1, true)
		mustCreateProduct(t, tx, "C", "misc", 200, 1, true)

		result, err := repo.List(ctx, ListQuery{
			Filters: ListFilters{Category: "misc"},
			Sort:    enums.ProductSortPriceAsc,
		})
		if err != nil {
			t.Fatalf("list price asc: %v", err)
		}
		if len(result.Products) != 3 {
			t.Fatalf("expected 3 rows, got %d", len(result.Products))
		}
		if result.Products[0].Price != 100 || result.Products[2].Price != 300 {
			t.Fatalf("unexpected ordering %v", result.Products)
		}
		if result.NextCursor != "" {
			t.Fatal("price sort should not return cursors")
		}

		return gorm.ErrRecordNotFound
	})
	if err != gorm.ErrRecordNotFound {
		t.Fatalf("transaction: %v", err)
	}
}

func TestRepositoryListCursorPagination(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	err := db.Transaction(func(tx *gorm.DB) error {
		repo := NewRepository(tx)

		for i := 0; i < 3; i++ {
			mustCreateProduct(t, tx, "Paged", "paged", 100+i, 1, true)
		}

		first, err := repo.List(ctx, ListQuery{
			Filters:    ListFilters{Category: "paged"},
			Pagination: pagination.Params{Limit: 2},
		})
		if err != nil {
			t.Fatalf("first page: %v", err)
		}
		if len(first.Products) != 2 || first.NextCursor == "" {
			t.Fatalf("expected full first page with cursor, got %d rows cursor=%q", len(first.Products), first.NextCursor)
		}

		second, err := repo.List(ctx, ListQuery{
			Filters:    ListFilters{Category: "paged"},
			Pagination: pagination.Params{Limit: 2, Cursor: first.NextCursor},
		})
		if err != nil {
			t.Fatalf("second page: %v", err)
		}
		if len(second.Products) != 1 || second.NextCursor != "" {
			t.Fatalf("expected final page, got %d rows cursor=%q", len(second.Products), second.NextCursor)
		}

		return gorm.ErrRecordNotFound
	})
	if err != gorm.ErrRecordNotFound {
		t.Fatalf("transaction: %v", err)
	}
}
