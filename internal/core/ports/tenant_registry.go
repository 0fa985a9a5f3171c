package ports

import (
	"context"

	"github.com/lendstack/agency-system/internal/core/domain"
)

// TenantRegistry defines the persistence port for tenants. Create assigns the
// ID, applies defaults (country, timestamps) and returns the stored tenant.
// Tenant names are not deduplicated: two agencies may share a name.
type TenantRegistry interface {
	Create(ctx context.Context, name string) (*domain.Tenant, error)
	FindByID(ctx context.Context, id string) (*domain.Tenant, error)
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Tenant, error)
}
