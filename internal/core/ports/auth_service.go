package ports

import (
	"context"

	"github.com/lendstack/agency-system/internal/core/domain"
)

// SessionResult is returned by login and refresh: a new token pair plus the
// user it authenticates.
type SessionResult struct {
	Tokens *TokenPair   `json:"tokens"`
	User   *domain.User `json:"user"`
}

// AuthService implements the session-facing operations: password login, token
// refresh, and resolving the authenticated caller.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*SessionResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*SessionResult, error)
	Me(ctx context.Context, userID string) (*domain.User, error)
	Remove(ctx context.Context, userID string) error
}
