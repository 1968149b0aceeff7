package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sirawitp/siamshop-backend/api/responses"
	"github.com/sirawitp/siamshop-backend/api/validators"
	productsvc "github.com/sirawitp/siamshop-backend/internal/products"
	"github.com/sirawitp/siamshop-backend/pkg/enums"
	pkgerrors "github.com/sirawitp/siamshop-backend/pkg/errors"
	"github.com/sirawitp/siamshop-backend/pkg/logger"
	"github.com/sirawitp/siamshop-backend/pkg/pagination"
)

// ListProducts serves the public catalog with filtering, sorting and cursor
// pagination. Inactive products never appear here.
func ListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		query, err := parseListQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), *query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// GetProduct serves the public product detail page.
func GetProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		productID, err := uuid.Parse(chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		product, err := svc.Get(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

func parseListQuery(r *http.Request) (*productsvc.ListQuery, error) {
	limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return nil, err
	}

	query := productsvc.ListQuery{
		Sort: enums.ProductSortNewest,
		Pagination: pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		},
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("sort")); raw != "" {
		sort, err := enums.ParseProductSort(raw)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sort")
		}
		query.Sort = sort
	}

	query.Filters.Category = validators.SanitizeString(r.URL.Query().Get("category"), 0)
	query.Filters.Query = validators.SanitizeString(r.URL.Query().Get("q"), 0)

	if raw := strings.TrimSpace(r.URL.Query().Get("price_min")); raw != "" {
		min, err := strconv.Atoi(raw)
		if err != nil || min < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price_min must be a non-negative integer")
		}
		query.Filters.PriceMin = &min
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("price_max")); raw != "" {
		max, err := strconv.Atoi(raw)
		if err != nil || max < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price_max must be a non-negative integer")
		}
		query.Filters.PriceMax = &max
	}
	if query.Filters.PriceMin != nil && query.Filters.PriceMax != nil && *query.Filters.PriceMin > *query.Filters.PriceMax {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price_min must not exceed price_max")
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("in_stock")); raw != "" {
		inStock, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "in_stock must be a boolean")
		}
		query.Filters.InStock = &inStock
	}

	return &query, nil
}
