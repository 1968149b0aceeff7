package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	checkoutsvc "github.com/sirawitp/siamshop-backend/internal/checkout"
	"github.com/sirawitp/siamshop-backend/internal/pricing"
	pkgerrors "github.com/sirawitp/siamshop-backend/pkg/errors"
)

type stubCheckoutService struct {
	receipt *checkoutsvc.Receipt
	err     error
	calls   int
}

func (s *stubCheckoutService) Submit(ctx context.Context, userID uuid.UUID, input checkoutsvc.Input) (*checkoutsvc.Receipt, error) {
	s.calls++
	return s.receipt, s.err
}

const checkoutBody = `{
	"customer_name": "Somchai Prasert",
	"customer_phone": "0812345678",
	"customer_email": "somchai@example.com",
	"shipping": {
		"line1": "99/1 Sukhumvit 23",
		"subdistrict": "Khlong Toei Nuea",
		"district": "Watthana",
		"province": "Bangkok",
		"postal_code": "10110"
	},
	"payment_method": "bank_transfer"
}`

func TestSubmitCheckoutCreated(t *testing.T) {
	receipt := &checkoutsvc.Receipt{
		OrderID:     uuid.New().String(),
		OrderNumber: "ORD123456ABC",
		Totals:      pricing.Totals{Subtotal: 1000, ShippingFee: 50, Total: 1050, TotalItems: 2},
	}
	svc := &stubCheckoutService{receipt: receipt}
	handler := SubmitCheckout(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/v1/checkout", checkoutBody))

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}

	var envelope struct {
		Data checkoutsvc.Receipt `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.OrderNumber != "ORD123456ABC" {
		t.Fatalf("unexpected order number: %s", envelope.Data.OrderNumber)
	}
}

func TestSubmitCheckoutEmptyCart(t *testing.T) {
	svc := &stubCheckoutService{err: pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")}
	handler := SubmitCheckout(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/v1/checkout", checkoutBody))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestSubmitCheckoutRequiresAuth(t *testing.T) {
	svc := &stubCheckoutService{}
	handler := SubmitCheckout(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
	if svc.calls != 0 {
		t.Fatalf("service should not run without a user")
	}
}
