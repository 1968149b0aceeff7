package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	pkgauth "github.com/sirawitp/siamshop-backend/pkg/auth"
	"github.com/sirawitp/siamshop-backend/pkg/auth/session"
	"github.com/sirawitp/siamshop-backend/pkg/config"
	"github.com/sirawitp/siamshop-backend/pkg/db/models"
	"github.com/sirawitp/siamshop-backend/pkg/enums"
	pkgerrors "github.com/sirawitp/siamshop-backend/pkg/errors"
	"github.com/sirawitp/siamshop-backend/pkg/security"
)

type stubUserRepo struct {
	byEmail    map[string]*models.User
	created    []*models.User
	lastLogins map[uuid.UUID]time.Time
}

func newStubUserRepo(users ...*models.User) *stubUserRepo {
	byEmail := make(map[string]*models.User, len(users))
	for _, u := range users {
		byEmail[u.Email] = u
	}
	return &stubUserRepo{byEmail: byEmail, lastLogins: map[uuid.UUID]time.Time{}}
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if _, exists := s.byEmail[user.Email]; exists {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
	}
	s.byEmail[user.Email] = user
	s.created = append(s.created, user)
	return user, nil
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := s.byEmail[email]; ok {
		return u, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
}

func (s *stubUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	s.lastLogins[id] = at
	return nil
}

type stubSessionManager struct {
	generated map[string]string
	revoked   []string
	rotateErr error
}

func newStubSessionManager() *stubSessionManager {
	return &stubSessionManager{generated: map[string]string{}}
}

func (s *stubSessionManager) Generate(ctx context.Context, accessID string) (string, error) {
	token := "refresh-" + accessID
	s.generated[accessID] = token
	return token, nil
}

func (s *stubSessionManager) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	if s.rotateErr != nil {
		return "", "", s.rotateErr
	}
	stored, ok := s.generated[oldAccessID]
	if !ok || stored != provided {
		return "", "", session.ErrInvalidRefreshToken
	}
	delete(s.generated, oldAccessID)
	newID := session.NewAccessID()
	token := "refresh-" + newID
	s.generated[newID] = token
	return newID, token, nil
}

func (s *stubSessionManager) Revoke(ctx context.Context, accessID string) error {
	delete(s.generated, accessID)
	s.revoked = append(s.revoked, accessID)
	return nil
}

type stubLimiter struct {
	allow bool
	calls int
}

func (s *stubLimiter) FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error) {
	s.calls++
	return s.allow, int64(s.calls), nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:                 "test-secret",
		Issuer:                 "siamshop-test",
		ExpirationMinutes:      15,
		RefreshTokenTTLMinutes: 60,
	}
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8192,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func activeUser(t *testing.T, email, password string, role enums.Role) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password, testPasswordConfig())
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	return &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		DisplayName:  "Somchai",
		Role:         role,
		IsActive:     true,
	}
}

func newAuthService(t *testing.T, repo *stubUserRepo, sessions *stubSessionManager, limiter *stubLimiter) Service {
	t.Helper()
	params := ServiceParams{
		UserRepo:       repo,
		SessionManager: sessions,
		JWTConfig:      testJWTConfig(),
		AuthConfig:     config.AuthConfig{LoginRateLimit: 3, LoginRateLimitWindow: time.Minute},
		PasswordConfig: testPasswordConfig(),
	}
	if limiter != nil {
		params.Limiter = limiter
	}
	svc, err := NewService(params)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestRegisterCreatesUserWithHashedPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(t, repo, newStubSessionManager(), nil)

	view, err := svc.Register(context.Background(), RegisterRequest{
		Email:       "Somchai@Example.com",
		Password:    "supersecret",
		DisplayName: "Somchai",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if view.Email != "somchai@example.com" {
		t.Fatalf("expected lowercased email, got %q", view.Email)
	}
	if view.Role != enums.RoleUser {
		t.Fatalf("expected role user, got %s", view.Role)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one user created")
	}
	if repo.created[0].PasswordHash == "supersecret" || repo.created[0].PasswordHash == "" {
		t.Fatalf("expected password to be hashed")
	}
	ok, err := security.VerifyPassword("supersecret", repo.created[0].PasswordHash)
	if err != nil || !ok {
		t.Fatalf("expected stored hash to verify, ok=%v err=%v", ok, err)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	existing := activeUser(t, "somchai@example.com", "supersecret", enums.RoleUser)
	repo := newStubUserRepo(existing)
	svc := newAuthService(t, repo, newStubSessionManager(), nil)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:       "somchai@example.com",
		Password:    "anothersecret",
		DisplayName: "Somchai",
	})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc := newAuthService(t, newStubUserRepo(), newStubSessionManager(), nil)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:       "somchai@example.com",
		Password:    "short",
		DisplayName: "Somchai",
	})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLoginReturnsTokenPairAndRecordsLogin(t *testing.T) {
	user := activeUser(t, "somchai@example.com", "supersecret", enums.RoleUser)
	repo := newStubUserRepo(user)
	sessions := newStubSessionManager()
	svc := newAuthService(t, repo, sessions, nil)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "Somchai@example.com",
		Password: "supersecret",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != enums.RoleUser {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if _, ok := sessions.generated[claims.ID]; !ok {
		t.Fatalf("expected session stored for jti %q", claims.ID)
	}
	if resp.RefreshToken == "" {
		t.Fatalf("expected refresh token")
	}
	if _, ok := repo.lastLogins[user.ID]; !ok {
		t.Fatalf("expected last login recorded")
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	user := activeUser(t, "somchai@example.com", "supersecret", enums.RoleUser)
	svc := newAuthService(t, newStubUserRepo(user), newStubSessionManager(), nil)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "somchai@example.com",
		Password: "wrong-password",
	})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginRejectsUnknownEmailWithSameMessage(t *testing.T) {
	svc := newAuthService(t, newStubUserRepo(), newStubSessionManager(), nil)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "supersecret",
	})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if coded.Message() != invalidCredentialsMessage {
		t.Fatalf("expected generic message, got %q", coded.Message())
	}
}

func TestLoginRejectsInactiveUser(t *testing.T) {
	user := activeUser(t, "somchai@example.com", "supersecret", enums.RoleUser)
	user.IsActive = false
	svc := newAuthService(t, newStubUserRepo(user), newStubSessionManager(), nil)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "somchai@example.com",
		Password: "supersecret",
	})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginRateLimited(t *testing.T) {
	user := activeUser(t, "somchai@example.com", "supersecret", enums.RoleUser)
	limiter := &stubLimiter{allow: false}
	svc := newAuthService(t, newStubUserRepo(user), newStubSessionManager(), limiter)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "somchai@example.com",
		Password: "supersecret",
	})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeRateLimited {
		t.Fatalf("expected rate limited, got %v", err)
	}
	if limiter.calls != 1 {
		t.Fatalf("expected limiter consulted once, got %d", limiter.calls)
	}
}

func TestRefreshRotatesSession(t *testing.T) {
	user := activeUser(t, "somchai@example.com", "supersecret", enums.RoleUser)
	sessions := newStubSessionManager()
	svc := newAuthService(t, newStubUserRepo(user), sessions, nil)

	login, err := svc.Login(context.Background(), LoginRequest{
		Email:    "somchai@example.com",
		Password: "supersecret",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	oldClaims, err := pkgauth.ParseAccessToken(testJWTConfig(), login.AccessToken)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}

	refreshed, err := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	newClaims, err := pkgauth.ParseAccessToken(testJWTConfig(), refreshed.AccessToken)
	if err != nil {
		t.Fatalf("ParseAccessToken(new): %v", err)
	}
	if newClaims.UserID != user.ID || newClaims.Role != enums.RoleUser {
		t.Fatalf("claims did not carry over: %+v", newClaims)
	}
	if newClaims.ID == oldClaims.ID {
		t.Fatalf("expected rotated jti")
	}
	if _, ok := sessions.generated[oldClaims.ID]; ok {
		t.Fatalf("expected old session invalidated")
	}

	// The replaced refresh token must not rotate again.
	_, err = svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized on replayed refresh, got %v", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	user := activeUser(t, "somchai@example.com", "supersecret", enums.RoleUser)
	sessions := newStubSessionManager()
	svc := newAuthService(t, newStubUserRepo(user), sessions, nil)

	login, err := svc.Login(context.Background(), LoginRequest{
		Email:    "somchai@example.com",
		Password: "supersecret",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), login.AccessToken)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}

	if err := svc.Logout(context.Background(), claims.ID); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != claims.ID {
		t.Fatalf("expected session revoked")
	}
}
