package ports

import "github.com/lendstack/agency-system/internal/core/domain"

// TokenPair is the result of signing the same claims twice: a short-lived
// access token and a long-lived refresh token, each with its own secret.
type TokenPair struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
	// TokenExpires is the access token expiry as unix epoch milliseconds.
	TokenExpires int64 `json:"token_expires"`
}

// TokenIssuer signs and verifies token pairs. Implementations depend only on
// configured secrets, expiry durations and the clock, with no persistence.
type TokenIssuer interface {
	IssueTokenPair(claims domain.Claims) (*TokenPair, error)
	// VerifyRefreshToken returns the embedded claims, domain.ErrTokenExpired
	// for expired tokens and domain.ErrTokenInvalid for anything malformed or
	// tampered with.
	VerifyRefreshToken(token string) (domain.Claims, error)
}
