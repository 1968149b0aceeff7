package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	authsvc "github.com/sirawitp/siamshop-backend/internal/auth"
	usersvc "github.com/sirawitp/siamshop-backend/internal/users"
	pkgerrors "github.com/sirawitp/siamshop-backend/pkg/errors"
)

type stubAuthService struct {
	user      *usersvc.View
	login     *authsvc.LoginResponse
	refresh   *authsvc.RefreshResponse
	err       error
	loggedOut []string
}

func (s *stubAuthService) Register(ctx context.Context, req authsvc.RegisterRequest) (*usersvc.View, error) {
	return s.user, s.err
}

func (s *stubAuthService) Login(ctx context.Context, req authsvc.LoginRequest) (*authsvc.LoginResponse, error) {
	return s.login, s.err
}

func (s *stubAuthService) Refresh(ctx context.Context, req authsvc.RefreshRequest) (*authsvc.RefreshResponse, error) {
	return s.refresh, s.err
}

func (s *stubAuthService) Logout(ctx context.Context, accessID string) error {
	s.loggedOut = append(s.loggedOut, accessID)
	return s.err
}

func TestRegisterCreated(t *testing.T) {
	svc := &stubAuthService{user: &usersvc.View{ID: uuid.New(), Email: "mali@example.com"}}
	handler := Register(svc, nil)

	body := `{"email":"mali@example.com","password":"correct-horse","display_name":"Mali"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	handler := Register(&stubAuthService{}, nil)

	body := `{"email":"mali@example.com","password":"short","display_name":"Mali"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc := &stubAuthService{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")}
	handler := Login(svc, nil)

	body := `{"email":"mali@example.com","password":"wrong-password"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestLogoutWithoutSessionContext(t *testing.T) {
	svc := &stubAuthService{}
	handler := Logout(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil))

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
	if len(svc.loggedOut) != 0 {
		t.Fatalf("logout should not reach the service without a session")
	}
}
