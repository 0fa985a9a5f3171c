package domain

import "time"

// Audit actions recorded by the provisioning and session flows.
const (
	AuditAdminCreated       = "admin_created"
	AuditManagerCreated     = "manager_created"
	AuditLoanOfficerCreated = "loan_officer_created"
	AuditLoginSucceeded     = "login_succeeded"
	AuditLoginFailed        = "login_failed"
	AuditTokenRefreshed     = "token_refreshed"
	AuditUserRemoved        = "user_removed"
)

// AuditEvent records who did what, scoped to a tenant.
type AuditEvent struct {
	TenantID  string
	ActorID   string
	Action    string
	Subject   string
	Timestamp time.Time
}
