package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lendstack/agency-system/internal/core/domain"
	"github.com/lendstack/agency-system/internal/core/ports"
)

const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 30 * 24 * time.Hour
)

// TokenService signs and verifies HS256 token pairs. Access and refresh
// tokens carry the same claims but are signed with distinct secrets and
// expiry durations.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenService {
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = defaultRefreshTTL
	}
	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// IssueTokenPair signs the access and refresh tokens for the given claims.
// The two signings are independent and run concurrently.
func (s *TokenService) IssueTokenPair(claims domain.Claims) (*ports.TokenPair, error) {
	if !claims.Complete() {
		return nil, domain.ErrInvalidClaims
	}

	expiresAt := time.Now().Add(s.accessTTL)

	type signResult struct {
		token string
		err   error
	}
	accessCh := make(chan signResult, 1)
	go func() {
		token, err := signClaims(claims, s.accessSecret, s.accessTTL)
		accessCh <- signResult{token, err}
	}()

	refreshToken, err := signClaims(claims, s.refreshSecret, s.refreshTTL)
	access := <-accessCh

	if access.err != nil {
		return nil, fmt.Errorf("sign access token: %w", access.err)
	}
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	return &ports.TokenPair{
		Token:        access.token,
		RefreshToken: refreshToken,
		TokenExpires: expiresAt.UnixMilli(),
	}, nil
}

// VerifyRefreshToken parses and validates a refresh token, returning the
// embedded claims.
func (s *TokenService) VerifyRefreshToken(token string) (domain.Claims, error) {
	return verifyToken(token, s.refreshSecret)
}

func signClaims(claims domain.Claims, secret []byte, ttl time.Duration) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       claims.ID,
		"role":     string(claims.Role),
		"email":    claims.Email,
		"tenantId": claims.TenantID,
		"exp":      time.Now().Add(ttl).Unix(),
	})
	return t.SignedString(secret)
}

func verifyToken(token string, secret []byte) (domain.Claims, error) {
	mc := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, mc, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Claims{}, domain.ErrTokenExpired
		}
		return domain.Claims{}, domain.ErrTokenInvalid
	}
	if !parsed.Valid {
		return domain.Claims{}, domain.ErrTokenInvalid
	}

	claims := domain.Claims{
		ID:       stringClaim(mc, "id"),
		Role:     domain.Role(stringClaim(mc, "role")),
		Email:    stringClaim(mc, "email"),
		TenantID: stringClaim(mc, "tenantId"),
	}
	if !claims.Complete() {
		return domain.Claims{}, domain.ErrTokenInvalid
	}
	return claims, nil
}

func stringClaim(mc jwt.MapClaims, key string) string {
	v, _ := mc[key].(string)
	return v
}
