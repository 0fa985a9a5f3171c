package ports

import (
	"context"
	"time"

	"github.com/lendstack/agency-system/internal/core/domain"
)

// AuditEventInput describes a single security-relevant action. TenantID may
// be empty for pre-authentication events (e.g. failed logins on unknown
// accounts).
type AuditEventInput struct {
	TenantID  string
	ActorID   string
	Action    string
	Subject   string
	Timestamp time.Time
}

// AuditRepository persists audit events.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *domain.AuditEvent) error
}

// AuditService processes audit events dequeued by the dispatcher workers.
type AuditService interface {
	Process(ctx context.Context, event AuditEventInput) error
}
