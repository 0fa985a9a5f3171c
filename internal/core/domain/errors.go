package domain

import "errors"

// ErrorKind is the machine-readable classification attached to every failure
// the core can surface. The HTTP layer maps kinds to status codes.
type ErrorKind string

const (
	KindNotFound   ErrorKind = "not_found"
	KindConflict   ErrorKind = "conflict"
	KindAuth       ErrorKind = "auth"
	KindDependency ErrorKind = "dependency"
	KindUnknown    ErrorKind = "unknown"
)

var (
	// ErrUserNotFound is returned when a login or lookup targets an unknown email or id.
	ErrUserNotFound = errors.New("user not found")
	// ErrCreatorNotFound covers both an absent creator and a creator without the
	// ADMIN role. The two conditions are deliberately indistinguishable so that
	// callers cannot probe which one failed.
	ErrCreatorNotFound = errors.New("creator not found or unauthorized")
	// ErrTenantNotFound is returned by tenant read paths.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrEmailExists is returned when the requested email is already taken.
	ErrEmailExists = errors.New("email already exists")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidClaims      = errors.New("token claims incomplete")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrUnauthorizedRole   = errors.New("role not permitted")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")

	ErrTenantCreation     = errors.New("tenant creation failed")
	ErrCreatorHasNoTenant = errors.New("creator does not belong to any tenant")
)

// Kind classifies err into the error taxonomy. Unrecognised errors map to
// KindUnknown.
func Kind(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrCreatorNotFound), errors.Is(err, ErrTenantNotFound):
		return KindNotFound
	case errors.Is(err, ErrEmailExists):
		return KindConflict
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrInvalidClaims),
		errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrTokenInvalid),
		errors.Is(err, ErrUnauthorizedRole),
		errors.Is(err, ErrTooManyAttempts):
		return KindAuth
	case errors.Is(err, ErrTenantCreation), errors.Is(err, ErrCreatorHasNoTenant):
		return KindDependency
	}
	return KindUnknown
}
