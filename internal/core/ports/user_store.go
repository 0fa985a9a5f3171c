package ports

import (
	"context"

	"github.com/lendstack/agency-system/internal/core/domain"
)

// UserStore defines the persistence port for user accounts.
//
// FindByID resolves the user's tenant eagerly: provisioning flows read
// creator.Tenant synchronously and must never receive a user with a nil
// tenant that exists in storage.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Create persists the user and returns it with storage-assigned ID. A
	// uniqueness violation on email surfaces as domain.ErrEmailExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Remove(ctx context.Context, id string) error
}
