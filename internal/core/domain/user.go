package domain

import "time"

// Role determines which provisioning operations a user may invoke.
type Role string

const (
	RoleAdmin       Role = "ADMIN"
	RoleManager     Role = "MANAGER"
	RoleLoanOfficer Role = "LOAN_OFFICER"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleLoanOfficer:
		return true
	}
	return false
}

// User models an account within a loan agency. Every user belongs to exactly
// one tenant; managers and loan officers additionally record the admin that
// provisioned them in CreatedBy.
type User struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	PasswordHash string         `json:"-"`
	FirstName    string         `json:"first_name"`
	LastName     string         `json:"last_name"`
	PhoneNumber  string         `json:"phone_number,omitempty"`
	Role         Role           `json:"role"`
	Tenant       *Tenant        `json:"tenant"`
	CreatedBy    string         `json:"created_by,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// ManagerMetadata builds the metadata map stored on MANAGER accounts.
func ManagerMetadata(department, reportsTo string) map[string]any {
	return map[string]any{
		"department": department,
		"reportsTo":  reportsTo,
	}
}

// LoanOfficerMetadata builds the metadata map stored on LOAN_OFFICER accounts.
// fieldWorkAreas keeps the caller-supplied order.
func LoanOfficerMetadata(branch string, fieldWorkAreas []string) map[string]any {
	return map[string]any{
		"branch":         branch,
		"fieldWorkAreas": fieldWorkAreas,
	}
}
