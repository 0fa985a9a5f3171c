package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/lendstack/agency-system/internal/core/domain"
	"github.com/lendstack/agency-system/internal/core/ports"
)

// LoginThrottle abstracts the failed-login counter (Redis). A throttle error
// never blocks a login; it is logged and the attempt proceeds.
type LoginThrottle interface {
	TooManyFailures(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// AuthService implements password login, token refresh, and caller lookup.
type AuthService struct {
	users    ports.UserStore
	tokens   ports.TokenIssuer
	throttle LoginThrottle
	audit    AuditSink
	log      zerolog.Logger
}

func NewAuthService(
	users ports.UserStore,
	tokens ports.TokenIssuer,
	throttle LoginThrottle,
	audit AuditSink,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		tokens:   tokens,
		throttle: throttle,
		audit:    audit,
		log:      log,
	}
}

// Login validates the email/password pair and issues a fresh token pair.
// Accounts without a stored password hash are rejected as invalid
// credentials, never matched by plaintext comparison.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.SessionResult, error) {
	if s.throttle != nil {
		blocked, err := s.throttle.TooManyFailures(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Msg("login throttle check failed, proceeding")
		} else if blocked {
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if user.PasswordHash == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.noteFailure(ctx, email, user)
		return nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("login throttle reset failed")
		}
	}

	tokens, err := s.tokens.IssueTokenPair(domain.ClaimsFor(user))
	if err != nil {
		return nil, err
	}

	s.record(ports.AuditEventInput{
		TenantID: tenantID(user),
		ActorID:  user.ID,
		Action:   domain.AuditLoginSucceeded,
		Subject:  user.ID,
	})
	s.log.Info().Str("user_id", user.ID).Msg("login succeeded")

	return &ports.SessionResult{Tokens: tokens, User: user}, nil
}

// RefreshToken verifies the refresh token, re-resolves the user, and issues a
// new pair from the user's current identity. A token whose user no longer
// exists is treated as invalid.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*ports.SessionResult, error) {
	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, err
	}

	tokens, err := s.tokens.IssueTokenPair(domain.ClaimsFor(user))
	if err != nil {
		return nil, err
	}

	s.record(ports.AuditEventInput{
		TenantID: tenantID(user),
		ActorID:  user.ID,
		Action:   domain.AuditTokenRefreshed,
		Subject:  user.ID,
	})

	return &ports.SessionResult{Tokens: tokens, User: user}, nil
}

// Me resolves the authenticated caller from the id embedded in its access
// token claims.
func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

// Remove deletes the caller's account.
func (s *AuthService) Remove(ctx context.Context, userID string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.users.Remove(ctx, userID); err != nil {
		return err
	}
	s.record(ports.AuditEventInput{
		TenantID: tenantID(user),
		ActorID:  userID,
		Action:   domain.AuditUserRemoved,
		Subject:  userID,
	})
	return nil
}

func (s *AuthService) noteFailure(ctx context.Context, email string, user *domain.User) {
	if s.throttle != nil {
		if err := s.throttle.RecordFailure(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("login throttle record failed")
		}
	}
	s.record(ports.AuditEventInput{
		TenantID: tenantID(user),
		ActorID:  user.ID,
		Action:   domain.AuditLoginFailed,
		Subject:  user.ID,
	})
}

func (s *AuthService) record(event ports.AuditEventInput) {
	if s.audit == nil {
		return
	}
	event.Timestamp = time.Now().UTC()
	s.audit.Enqueue(event)
}

func tenantID(u *domain.User) string {
	if u == nil || u.Tenant == nil {
		return ""
	}
	return u.Tenant.ID
}
