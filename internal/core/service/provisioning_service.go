package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/lendstack/agency-system/internal/core/domain"
	"github.com/lendstack/agency-system/internal/core/ports"
)

// AuditSink accepts audit events for asynchronous recording.
type AuditSink interface {
	Enqueue(event ports.AuditEventInput)
}

// ProvisioningService is the hierarchy engine. CreateAdmin bootstraps a fresh
// tenant with its single admin; CreateManager and CreateLoanOfficer provision
// subordinates under the creating admin's tenant.
type ProvisioningService struct {
	users   ports.UserStore
	tenants ports.TenantRegistry
	tokens  ports.TokenIssuer
	audit   AuditSink
	log     zerolog.Logger
}

func NewProvisioningService(
	users ports.UserStore,
	tenants ports.TenantRegistry,
	tokens ports.TokenIssuer,
	audit AuditSink,
	log zerolog.Logger,
) *ProvisioningService {
	return &ProvisioningService{
		users:   users,
		tenants: tenants,
		tokens:  tokens,
		audit:   audit,
		log:     log,
	}
}

// CreateAdmin creates a tenant and its bootstrapping admin, then issues the
// admin's first token pair.
//
// If user creation fails after the tenant is persisted, the tenant is left
// behind; the mongo storage layer has no multi-document transaction on
// standalone deployments, so the orphan-tenant window is accepted.
func (s *ProvisioningService) CreateAdmin(ctx context.Context, in ports.CreateAdminInput) (*ports.AdminBootstrapResult, error) {
	if err := s.ensureEmailFree(ctx, in.Email); err != nil {
		return nil, err
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	tenant, err := s.tenants.Create(ctx, in.TenantName)
	if err != nil {
		s.log.Error().Err(err).Str("tenant_name", in.TenantName).Msg("tenant creation failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrTenantCreation, err)
	}

	now := time.Now().UTC()
	admin, err := s.users.Create(ctx, &domain.User{
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PhoneNumber:  in.PhoneNumber,
		Role:         domain.RoleAdmin,
		Tenant:       tenant,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		s.log.Error().Err(err).Str("tenant_id", tenant.ID).Msg("admin creation failed after tenant was persisted")
		return nil, err
	}

	tokens, err := s.tokens.IssueTokenPair(domain.ClaimsFor(admin))
	if err != nil {
		return nil, err
	}

	s.record(ports.AuditEventInput{
		TenantID: tenant.ID,
		ActorID:  admin.ID,
		Action:   domain.AuditAdminCreated,
		Subject:  admin.ID,
	})
	s.log.Info().Str("admin_id", admin.ID).Str("tenant_id", tenant.ID).Msg("admin bootstrapped")

	return &ports.AdminBootstrapResult{Tokens: tokens, Admin: admin}, nil
}

// CreateManager provisions a MANAGER under the creator's tenant. No token
// pair is issued; the acting admin keeps its own session.
func (s *ProvisioningService) CreateManager(ctx context.Context, in ports.CreateManagerInput, creatorID string) (*domain.User, error) {
	creator, err := s.requireAdminCreator(ctx, creatorID)
	if err != nil {
		return nil, err
	}

	if err := s.ensureEmailFree(ctx, in.Email); err != nil {
		return nil, err
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	manager, err := s.users.Create(ctx, &domain.User{
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PhoneNumber:  in.PhoneNumber,
		Role:         domain.RoleManager,
		Tenant:       creator.Tenant,
		CreatedBy:    creatorID,
		Metadata:     domain.ManagerMetadata(in.Department, in.ReportsTo),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.record(ports.AuditEventInput{
		TenantID: creator.Tenant.ID,
		ActorID:  creatorID,
		Action:   domain.AuditManagerCreated,
		Subject:  manager.ID,
	})
	s.log.Info().Str("manager_id", manager.ID).Str("creator_id", creatorID).Msg("manager provisioned")

	return manager, nil
}

// CreateLoanOfficer provisions a LOAN_OFFICER under the creator's tenant.
func (s *ProvisioningService) CreateLoanOfficer(ctx context.Context, in ports.CreateLoanOfficerInput, creatorID string) (*domain.User, error) {
	creator, err := s.requireAdminCreator(ctx, creatorID)
	if err != nil {
		return nil, err
	}

	if err := s.ensureEmailFree(ctx, in.Email); err != nil {
		return nil, err
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	officer, err := s.users.Create(ctx, &domain.User{
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         domain.RoleLoanOfficer,
		Tenant:       creator.Tenant,
		CreatedBy:    creatorID,
		Metadata:     domain.LoanOfficerMetadata(in.Branch, in.FieldWorkAreas),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.record(ports.AuditEventInput{
		TenantID: creator.Tenant.ID,
		ActorID:  creatorID,
		Action:   domain.AuditLoanOfficerCreated,
		Subject:  officer.ID,
	})
	s.log.Info().Str("officer_id", officer.ID).Str("creator_id", creatorID).Msg("loan officer provisioned")

	return officer, nil
}

// requireAdminCreator resolves the creator and verifies role and tenant. An
// absent creator and a non-admin creator fail identically so the error does
// not leak which condition triggered.
func (s *ProvisioningService) requireAdminCreator(ctx context.Context, creatorID string) (*domain.User, error) {
	creator, err := s.users.FindByID(ctx, creatorID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrCreatorNotFound
		}
		return nil, err
	}
	if creator.Role != domain.RoleAdmin {
		return nil, domain.ErrCreatorNotFound
	}
	if creator.Tenant == nil {
		return nil, domain.ErrCreatorHasNoTenant
	}
	return creator, nil
}

// ensureEmailFree is a check-then-act guard; the unique index on email at the
// storage boundary reconciles concurrent creations for the same address.
func (s *ProvisioningService) ensureEmailFree(ctx context.Context, email string) error {
	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return domain.ErrEmailExists
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}
	return nil
}

func (s *ProvisioningService) record(event ports.AuditEventInput) {
	if s.audit == nil {
		return
	}
	event.Timestamp = time.Now().UTC()
	s.audit.Enqueue(event)
}

func hashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
