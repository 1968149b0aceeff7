package checkout

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sirawitp/siamshop-backend/internal/cart"
	"github.com/sirawitp/siamshop-backend/internal/orders"
	"github.com/sirawitp/siamshop-backend/internal/pricing"
	pkgcheckout "github.com/sirawitp/siamshop-backend/pkg/checkout"
	"github.com/sirawitp/siamshop-backend/pkg/db/models"
	"github.com/sirawitp/siamshop-backend/pkg/enums"
	pkgerrors "github.com/sirawitp/siamshop-backend/pkg/errors"
	"github.com/sirawitp/siamshop-backend/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type cartStore interface {
	Load(ctx context.Context, userID uuid.UUID) ([]cart.Item, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

type productLoader interface {
	FindActiveByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
}

// Service turns a validated cart into a persisted order.
type Service interface {
	Submit(ctx context.Context, userID uuid.UUID, input Input) (*Receipt, error)
}

type service struct {
	carts       cartStore
	products    productLoader
	orders      orders.Repository
	tx          txRunner
	events      orders.EventPublisher
	logg        *logger.Logger
	shippingFee int
	now         func() time.Time

	// rand.Rand is not safe for concurrent use; rngMu serializes
	// order-number generation across simultaneous checkouts.
	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewService builds the checkout service with the required stack.
func NewService(carts cartStore, products productLoader, ordersRepo orders.Repository, tx txRunner, events orders.EventPublisher, logg *logger.Logger, shippingFee int) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if events == nil {
		return nil, fmt.Errorf("event publisher required")
	}
	if shippingFee < 0 {
		return nil, fmt.Errorf("shipping fee must not be negative")
	}
	return &service{
		carts:       carts,
		products:    products,
		orders:      ordersRepo,
		tx:          tx,
		events:      events,
		logg:        logg,
		shippingFee: shippingFee,
		now:         time.Now,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

func (s *service) nextOrderNumber(now time.Time) string {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return GenerateOrderNumber(now, s.rng)
}

// Submit validates the shipping form and the cart, snapshots the cart into an
// order inside one transaction, then clears the cart. Validation failures
// happen before any write, so a rejected checkout leaves the cart intact.
func (s *service) Submit(ctx context.Context, userID uuid.UUID, input Input) (*Receipt, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	items, err := s.carts.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
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

	stockInputs := make([]pkgcheckout.StockValidationInput, 0, len(items))
	lines := make([]pricing.Line, 0, len(items))
	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "a cart item is no longer available").WithDetails(map[string]any{
				"product_id": item.ProductID,
			})
		}
		stockInputs = append(stockInputs, pkgcheckout.StockValidationInput{
			ProductID:   product.ID,
			ProductName: product.Name,
			Stock:       product.Stock,
			Quantity:    item.Quantity,
		})
		line := pricing.Line{UnitPrice: product.EffectivePrice(), Quantity: item.Quantity}
		lines = append(lines, line)
		orderItems = append(orderItems, models.OrderItem{
			ID:          uuid.New(),
			ProductID:   product.ID,
			ProductName: product.Name,
			ImageName:   product.ImageName,
			UnitPrice:   product.EffectivePrice(),
			Quantity:    item.Quantity,
			LineTotal:   pricing.LineTotal(line),
		})
	}

	if err := pkgcheckout.ValidateStock(stockInputs); err != nil {
		return nil, err
	}

	totals := pricing.Compute(lines, s.shippingFee)
	now := s.now()

	order := &models.Order{
		ID:          uuid.New(),
		OrderNumber: s.nextOrderNumber(now),
		UserID:      userID,
		Status:      enums.OrderStatusPending,

		CustomerName:  input.CustomerName,
		CustomerPhone: normalizePhone(input.CustomerPhone),
		CustomerEmail: input.CustomerEmail,

		ShippingLine1:       input.Shipping.Line1,
		ShippingSubdistrict: input.Shipping.Subdistrict,
		ShippingDistrict:    input.Shipping.District,
		ShippingProvince:    input.Shipping.Province,
		ShippingPostalCode:  input.Shipping.PostalCode,

		Subtotal:    totals.Subtotal,
		ShippingFee: totals.ShippingFee,
		Total:       totals.Total,

		PaymentMethod: input.PaymentMethod,
		PaymentStatus: enums.PaymentStatusPending,

		Items: orderItems,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		_, err := s.orders.WithTx(tx).Create(ctx, order)
		return err
	})
	if err != nil {
		if coded := pkgerrors.As(err); coded != nil {
			return nil, coded
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persisting order")
	}

	// The order is durable from here on; cart cleanup and the event are
	// best effort.
	if err := s.carts.Clear(ctx, userID); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithOrderNumber(ctx, order.OrderNumber), fmt.Sprintf("clearing cart after checkout failed: %v", err))
	}

	event := orders.Event{
		OrderID:       order.ID,
		OrderNumber:   order.OrderNumber,
		UserID:        userID,
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
		OccurredAt:    now.UTC(),
	}
	if err := s.events.PublishOrderEvent(ctx, event); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithOrderNumber(ctx, order.OrderNumber), fmt.Sprintf("publishing order event failed: %v", err))
	}

	return &Receipt{
		OrderID:     order.ID.String(),
		OrderNumber: order.OrderNumber,
		Totals:      totals,
	}, nil
}
