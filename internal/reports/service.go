package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sirawitp/siamshop-backend/pkg/enums"
	pkgerrors "github.com/sirawitp/siamshop-backend/pkg/errors"
)

// Filters bounds a sales report to a created_at window.
type Filters struct {
	From *time.Time
	To   *time.Time
}

// SalesReport is the admin-facing revenue summary. Revenue only counts
// orders whose payment has been confirmed.
type SalesReport struct {
	TotalRevenue      decimal.Decimal  `json:"total_revenue"`
	OrderCount        int64            `json:"order_count"`
	PaidOrderCount    int64            `json:"paid_order_count"`
	AverageOrderValue decimal.Decimal  `json:"average_order_value"`
	CountsByStatus    map[string]int64 `json:"counts_by_status"`
}

// Service produces the admin sales report.
type Service interface {
	Sales(ctx context.Context, filters Filters) (*SalesReport, error)
}

type service struct {
	repo Repository
}

// NewService wires the reports service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("reports repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Sales(ctx context.Context, filters Filters) (*SalesReport, error) {
	if filters.From != nil && filters.To != nil && !filters.From.Before(*filters.To) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "date_from must be before date_to")
	}

	totals, err := s.repo.Totals(ctx, filters.From, filters.To)
	if err != nil {
		return nil, err
	}
	statusCounts, err := s.repo.CountByStatus(ctx, filters.From, filters.To)
	if err != nil {
		return nil, err
	}

	revenue := decimal.NewFromInt(totals.PaidRevenue)
	average := decimal.Zero
	if totals.PaidOrderCount > 0 {
		average = revenue.DivRound(decimal.NewFromInt(totals.PaidOrderCount), 2)
	}

	counts := make(map[string]int64, len(enums.ValidOrderStatuses()))
	for _, status := range enums.ValidOrderStatuses() {
		counts[status.String()] = statusCounts[status]
	}

	return &SalesReport{
		TotalRevenue:      revenue,
		OrderCount:        totals.OrderCount,
		PaidOrderCount:    totals.PaidOrderCount,
		AverageOrderValue: average,
		CountsByStatus:    counts,
	}, nil
}
