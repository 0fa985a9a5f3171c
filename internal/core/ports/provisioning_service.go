package ports

import (
	"context"

	"github.com/lendstack/agency-system/internal/core/domain"
)

// CreateAdminInput carries the fields for the admin-bootstrap flow. The
// tenant is created as part of the flow, never chosen from existing ones.
type CreateAdminInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	PhoneNumber string
	TenantName  string
}

// CreateManagerInput carries the fields for provisioning a manager under the
// acting admin's tenant.
type CreateManagerInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	PhoneNumber string // optional
	Department  string
	ReportsTo   string
}

// CreateLoanOfficerInput carries the fields for provisioning a loan officer
// under the acting admin's tenant.
type CreateLoanOfficerInput struct {
	Email          string
	Password       string
	FirstName      string
	LastName       string
	Branch         string
	FieldWorkAreas []string
}

// AdminBootstrapResult bundles the freshly created admin with its session
// tokens. Bootstrap is the only provisioning flow that issues tokens.
type AdminBootstrapResult struct {
	Tokens *TokenPair   `json:"tokens"`
	Admin  *domain.User `json:"admin"`
}

// ProvisioningService is the hierarchy engine: three disjoint creation flows,
// each enforcing tenant inheritance and role prerequisites.
type ProvisioningService interface {
	CreateAdmin(ctx context.Context, in CreateAdminInput) (*AdminBootstrapResult, error)
	// CreateManager and CreateLoanOfficer require creatorID to reference an
	// existing ADMIN; an absent creator and a non-admin creator both fail with
	// domain.ErrCreatorNotFound.
	CreateManager(ctx context.Context, in CreateManagerInput, creatorID string) (*domain.User, error)
	CreateLoanOfficer(ctx context.Context, in CreateLoanOfficerInput, creatorID string) (*domain.User, error)
}
