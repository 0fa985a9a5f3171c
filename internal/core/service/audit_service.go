package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/lendstack/agency-system/internal/core/domain"
	"github.com/lendstack/agency-system/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService that persists events through repo.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Process persists a single audit event.
func (s *auditService) Process(ctx context.Context, in ports.AuditEventInput) error {
	ts := in.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	event := &domain.AuditEvent{
		TenantID:  in.TenantID,
		ActorID:   in.ActorID,
		Action:    in.Action,
		Subject:   in.Subject,
		Timestamp: ts,
	}
	if err := s.repo.InsertEvent(ctx, event); err != nil {
		return fmt.Errorf("process audit event: %w", err)
	}

	s.log.Debug().
		Str("tenant_id", in.TenantID).
		Str("action", in.Action).
		Msg("audit event recorded")

	return nil
}
