package reports

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/sirawitp/siamshop-backend/pkg/db/models"
	"github.com/sirawitp/siamshop-backend/pkg/enums"
)

// SalesTotals aggregates revenue over paid orders in a window.
type SalesTotals struct {
	OrderCount     int64
	PaidOrderCount int64
	PaidRevenue    int64
}

// Repository reads the aggregates behind the sales report.
type Repository interface {
	Totals(ctx context.Context, from, to *time.Time) (*SalesTotals, error)
	CountByStatus(ctx context.Context, from, to *time.Time) (map[enums.OrderStatus]int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a reports repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Totals(ctx context.Context, from, to *time.Time) (*SalesTotals, error) {
	var record struct {
		OrderCount     int64
		PaidOrderCount int64
		PaidRevenue    int64
	}

	qb := windowed(r.db.WithContext(ctx).Model(&models.Order{}), from, to)
	err := qb.
		Select(
			"COUNT(*) AS order_count, "+
				"COUNT(*) FILTER (WHERE payment_status = ?) AS paid_order_count, "+
				"COALESCE(SUM(total) FILTER (WHERE payment_status = ?), 0) AS paid_revenue",
			enums.PaymentStatusPaid, enums.PaymentStatusPaid,
		).
		Scan(&record).Error
	if err != nil {
		return nil, err
	}

	return &SalesTotals{
		OrderCount:     record.OrderCount,
		PaidOrderCount: record.PaidOrderCount,
		PaidRevenue:    record.PaidRevenue,
	}, nil
}

func (r *repository) CountByStatus(ctx context.Context, from, to *time.Time) (map[enums.OrderStatus]int64, error) {
	var records []struct {
		Status string
		Count  int64
	}

	qb := windowed(r.db.WithContext(ctx).Model(&models.Order{}), from, to)
	err := qb.
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&records).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[enums.OrderStatus]int64, len(records))
	for _, record := range records {
		counts[enums.OrderStatus(record.Status)] = record.Count
	}
	return counts, nil
}

func windowed(qb *gorm.DB, from, to *time.Time) *gorm.DB {
	if from != nil {
		qb = qb.Where("created_at >= ?", *from)
	}
	if to != nil {
		qb = qb.Where("created_at < ?", *to)
	}
	return qb
}
