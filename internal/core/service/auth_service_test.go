package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/lendstack/agency-system/internal/core/domain"
)

type stubThrottle struct {
	failures map[string]int
	blocked  bool
	err      error
}

func newStubThrottle() *stubThrottle {
	return &stubThrottle{failures: make(map[string]int)}
}

func (s *stubThrottle) TooManyFailures(_ context.Context, _ string) (bool, error) {
	return s.blocked, s.err
}

func (s *stubThrottle) RecordFailure(_ context.Context, email string) error {
	s.failures[email]++
	return nil
}

func (s *stubThrottle) Reset(_ context.Context, email string) error {
	delete(s.failures, email)
	return nil
}

func newAuthFixture(t *testing.T) (*AuthService, *stubUserStore, *stubTenantRegistry, *stubThrottle) {
	t.Helper()
	users := &stubUserStore{}
	tenants := &stubTenantRegistry{}
	throttle := newStubThrottle()
	tokens := NewTokenService(testAccessSecret, testRefreshSecret, time.Hour, 24*time.Hour)
	svc := NewAuthService(users, tokens, throttle, &stubAuditSink{}, zerolog.Nop())
	return svc, users, tenants, throttle
}

func seedLoginUser(t *testing.T, users *stubUserStore, tenants *stubTenantRegistry, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	tenant, _ := tenants.Create(context.Background(), "Seed Agency")
	user, _ := users.Create(context.Background(), &domain.User{
		Email:        "carol@seed.com",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		Tenant:       tenant,
	})
	return user
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, users, tenants, _ := newAuthFixture(t)
	user := seedLoginUser(t, users, tenants, "s3cret")

	result, err := svc.Login(context.Background(), "carol@seed.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.User == nil || result.User.ID != user.ID {
		t.Fatalf("unexpected user: %+v", result.User)
	}
	if result.Tokens.Token == "" || result.Tokens.RefreshToken == "" {
		t.Fatalf("expected token pair, got %+v", result.Tokens)
	}

	mc := decodeClaims(t, result.Tokens.Token, testAccessSecret)
	if mc["id"] != user.ID || mc["role"] != "ADMIN" || mc["tenantId"] != user.Tenant.ID {
		t.Fatalf("unexpected claims: %+v", mc)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc, users, tenants, throttle := newAuthFixture(t)
	seedLoginUser(t, users, tenants, "goodpass")

	if _, err := svc.Login(context.Background(), "carol@seed.com", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if throttle.failures["carol@seed.com"] != 1 {
		t.Fatalf("expected one recorded failure, got %d", throttle.failures["carol@seed.com"])
	}
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	if _, err := svc.Login(context.Background(), "ghost@seed.com", "pass"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_Login_NoPasswordHash(t *testing.T) {
	svc, users, tenants, _ := newAuthFixture(t)
	tenant, _ := tenants.Create(context.Background(), "Seed Agency")
	_, _ = users.Create(context.Background(), &domain.User{
		Email:  "nopass@seed.com",
		Role:   domain.RoleAdmin,
		Tenant: tenant,
	})

	if _, err := svc.Login(context.Background(), "nopass@seed.com", "whatever"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for hashless account, got %v", err)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	svc, users, tenants, throttle := newAuthFixture(t)
	seedLoginUser(t, users, tenants, "s3cret")
	throttle.blocked = true

	if _, err := svc.Login(context.Background(), "carol@seed.com", "s3cret"); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAuthService_Login_ThrottleErrorDoesNotBlock(t *testing.T) {
	svc, users, tenants, throttle := newAuthFixture(t)
	seedLoginUser(t, users, tenants, "s3cret")
	throttle.err = errors.New("redis down")

	if _, err := svc.Login(context.Background(), "carol@seed.com", "s3cret"); err != nil {
		t.Fatalf("throttle outage must not block login, got %v", err)
	}
}

func TestAuthService_RefreshToken_Success(t *testing.T) {
	svc, users, tenants, _ := newAuthFixture(t)
	user := seedLoginUser(t, users, tenants, "s3cret")

	login, err := svc.Login(context.Background(), "carol@seed.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	refreshed, err := svc.RefreshToken(context.Background(), login.Tokens.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if refreshed.User.ID != user.ID {
		t.Fatalf("unexpected user: %+v", refreshed.User)
	}

	mc := decodeClaims(t, refreshed.Tokens.Token, testAccessSecret)
	if mc["id"] != user.ID || mc["role"] != "ADMIN" || mc["email"] != user.Email || mc["tenantId"] != user.Tenant.ID {
		t.Fatalf("refreshed claims do not match user: %+v", mc)
	}
}

func TestAuthService_RefreshToken_Expired(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       "user_1",
		"role":     "ADMIN",
		"email":    "carol@seed.com",
		"tenantId": "tenant_1",
		"exp":      time.Now().Add(-time.Minute).Unix(),
	})
	signed, err := token.SignedString([]byte(testRefreshSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := svc.RefreshToken(context.Background(), signed); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestAuthService_RefreshToken_Tampered(t *testing.T) {
	svc, users, tenants, _ := newAuthFixture(t)
	seedLoginUser(t, users, tenants, "s3cret")

	login, err := svc.Login(context.Background(), "carol@seed.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	tampered := login.Tokens.RefreshToken[:len(login.Tokens.RefreshToken)-2] + "xx"
	if _, err := svc.RefreshToken(context.Background(), tampered); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestAuthService_RefreshToken_UserGone(t *testing.T) {
	svc, users, tenants, _ := newAuthFixture(t)
	user := seedLoginUser(t, users, tenants, "s3cret")

	login, err := svc.Login(context.Background(), "carol@seed.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := users.Remove(context.Background(), user.ID); err != nil {
		t.Fatalf("remove user: %v", err)
	}

	if _, err := svc.RefreshToken(context.Background(), login.Tokens.RefreshToken); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for vanished user, got %v", err)
	}
}

func TestAuthService_Me(t *testing.T) {
	svc, users, tenants, _ := newAuthFixture(t)
	user := seedLoginUser(t, users, tenants, "s3cret")

	got, err := svc.Me(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("Me returned error: %v", err)
	}
	if got.ID != user.ID || got.Email != user.Email {
		t.Fatalf("unexpected user: %+v", got)
	}

	if _, err := svc.Me(context.Background(), "ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_Remove(t *testing.T) {
	svc, users, tenants, _ := newAuthFixture(t)
	user := seedLoginUser(t, users, tenants, "s3cret")

	if err := svc.Remove(context.Background(), user.ID); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if _, err := users.FindByID(context.Background(), user.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("user must be gone, got %v", err)
	}
}
