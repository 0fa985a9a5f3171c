package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lendstack/agency-system/internal/core/domain"
)

const (
	testAccessSecret  = "access-secret"
	testRefreshSecret = "refresh-secret"
)

func testClaims() domain.Claims {
	return domain.Claims{
		ID:       "user_1",
		Role:     domain.RoleAdmin,
		Email:    "a@x.com",
		TenantID: "tenant_1",
	}
}

func decodeClaims(t *testing.T, token, secret string) jwt.MapClaims {
	t.Helper()
	mc := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, mc, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	return mc
}

func TestTokenService_IssueTokenPair(t *testing.T) {
	svc := NewTokenService(testAccessSecret, testRefreshSecret, time.Hour, 24*time.Hour)

	pair, err := svc.IssueTokenPair(testClaims())
	if err != nil {
		t.Fatalf("IssueTokenPair returned error: %v", err)
	}
	if pair.Token == "" || pair.RefreshToken == "" {
		t.Fatalf("expected both tokens, got %+v", pair)
	}
	if pair.Token == pair.RefreshToken {
		t.Fatalf("access and refresh tokens must differ")
	}

	for _, tc := range []struct {
		token  string
		secret string
	}{
		{pair.Token, testAccessSecret},
		{pair.RefreshToken, testRefreshSecret},
	} {
		mc := decodeClaims(t, tc.token, tc.secret)
		if mc["id"] != "user_1" || mc["role"] != "ADMIN" || mc["email"] != "a@x.com" || mc["tenantId"] != "tenant_1" {
			t.Fatalf("unexpected claims: %+v", mc)
		}
	}

	wantExpires := time.Now().Add(time.Hour).UnixMilli()
	if pair.TokenExpires > wantExpires || pair.TokenExpires < wantExpires-5000 {
		t.Fatalf("token_expires out of range: %d", pair.TokenExpires)
	}
}

func TestTokenService_IssueTokenPair_SecretsAreDistinct(t *testing.T) {
	svc := NewTokenService(testAccessSecret, testRefreshSecret, time.Hour, 24*time.Hour)

	pair, err := svc.IssueTokenPair(testClaims())
	if err != nil {
		t.Fatalf("IssueTokenPair returned error: %v", err)
	}

	// The access token must not verify against the refresh secret.
	_, err = jwt.Parse(pair.Token, func(token *jwt.Token) (interface{}, error) {
		return []byte(testRefreshSecret), nil
	})
	if err == nil {
		t.Fatalf("access token verified with refresh secret")
	}
}

func TestTokenService_IssueTokenPair_IncompleteClaims(t *testing.T) {
	svc := NewTokenService(testAccessSecret, testRefreshSecret, time.Hour, 24*time.Hour)

	for _, claims := range []domain.Claims{
		{},
		{Role: domain.RoleAdmin, Email: "a@x.com", TenantID: "t"},
		{ID: "u", Email: "a@x.com", TenantID: "t"},
		{ID: "u", Role: domain.RoleAdmin, TenantID: "t"},
		{ID: "u", Role: domain.RoleAdmin, Email: "a@x.com"},
	} {
		if _, err := svc.IssueTokenPair(claims); !errors.Is(err, domain.ErrInvalidClaims) {
			t.Fatalf("expected ErrInvalidClaims for %+v, got %v", claims, err)
		}
	}
}

func TestTokenService_VerifyRefreshToken(t *testing.T) {
	svc := NewTokenService(testAccessSecret, testRefreshSecret, time.Hour, 24*time.Hour)

	pair, err := svc.IssueTokenPair(testClaims())
	if err != nil {
		t.Fatalf("IssueTokenPair returned error: %v", err)
	}

	claims, err := svc.VerifyRefreshToken(pair.RefreshToken)
	if err != nil {
		t.Fatalf("VerifyRefreshToken returned error: %v", err)
	}
	if claims != testClaims() {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestTokenService_VerifyRefreshToken_Expired(t *testing.T) {
	svc := NewTokenService(testAccessSecret, testRefreshSecret, time.Hour, 24*time.Hour)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       "user_1",
		"role":     "ADMIN",
		"email":    "a@x.com",
		"tenantId": "tenant_1",
		"exp":      time.Now().Add(-time.Minute).Unix(),
	})
	signed, err := token.SignedString([]byte(testRefreshSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := svc.VerifyRefreshToken(signed); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenService_VerifyRefreshToken_Invalid(t *testing.T) {
	svc := NewTokenService(testAccessSecret, testRefreshSecret, time.Hour, 24*time.Hour)

	pair, err := svc.IssueTokenPair(testClaims())
	if err != nil {
		t.Fatalf("IssueTokenPair returned error: %v", err)
	}

	// Tampered signature.
	tampered := pair.RefreshToken[:len(pair.RefreshToken)-2] + "xx"
	if _, err := svc.VerifyRefreshToken(tampered); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for tampered token, got %v", err)
	}

	// Garbage input.
	if _, err := svc.VerifyRefreshToken("not-a-token"); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for garbage, got %v", err)
	}

	// Access token offered as refresh token: wrong secret.
	if _, err := svc.VerifyRefreshToken(pair.Token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for access token, got %v", err)
	}
}
