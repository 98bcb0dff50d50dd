package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/bayup/backend/internal/domain/identity"
	"github.com/bayup/backend/internal/domain/shared"
	"github.com/bayup/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrOwnerOnly is returned when a staff member tries to manage staff
var ErrOwnerOnly = shared.NewDomainError("FORBIDDEN", "Only the store owner can manage staff")

// revokeWindow covers the longest access token lifetime
const revokeWindow = 7 * 24 * time.Hour

// StaffService manages the staff and custom roles of a store
type StaffService struct {
	userRepo  domain.UserRepository
	roleRepo  domain.CustomRoleRepository
	blacklist auth.TokenBlacklist
	publisher shared.EventPublisher
	notifier  AccountNotifier
	logger    *zap.Logger
}

// NewStaffService creates a new StaffService. blacklist, publisher and
// notifier may be nil.
func NewStaffService(
	userRepo domain.UserRepository,
	roleRepo domain.CustomRoleRepository,
	blacklist auth.TokenBlacklist,
	publisher shared.EventPublisher,
	notifier AccountNotifier,
	logger *zap.Logger,
) *StaffService {
	return &StaffService{
		userRepo:  userRepo,
		roleRepo:  roleRepo,
		blacklist: blacklist,
		publisher: publisher,
		notifier:  notifier,
		logger:    logger,
	}
}

func requireOwner(actor *domain.User) error {
	if actor == nil || !actor.IsOwner() {
		return ErrOwnerOnly
	}
	return nil
}

// InviteStaff creates a staff account with a temporary password and emails it
func (s *StaffService) InviteStaff(ctx context.Context, owner *domain.User, req InviteStaffRequest) (*InviteStaffResponse, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}

	email := domain.NormalizeEmail(req.Email)
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	tempPassword, err := RandomPassword()
	if err != nil {
		return nil, err
	}
	staff, err := domain.NewStaffUser(owner.ID, email, tempPassword, req.FullName, req.Role, req.Permissions)
	if err != nil {
		return nil, err
	}
	staff.PlanID = owner.PlanID

	if err := s.userRepo.Create(ctx, staff); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create staff: %w", err)
	}

	s.logger.Info("staff invited",
		zap.String("tenant_id", owner.ID.String()),
		zap.String("staff_id", staff.ID.String()),
		zap.String("role", staff.Role))

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, domain.NewStaffInvitedEvent(staff, tempPassword)); err != nil {
			s.logger.Warn("publish staff invited", zap.Error(err))
		}
	}
	if s.notifier != nil {
		if err := s.notifier.SendStaffInvitation(ctx, staff.Email, staff.DisplayName(), owner.DisplayName(), tempPassword); err != nil {
			s.logger.Warn("staff invitation not sent", zap.String("email", staff.Email), zap.Error(err))
		}
	}

	return &InviteStaffResponse{UserResponse: ToUserResponse(staff), TempPassword: tempPassword}, nil
}

// ListStaff lists the staff of the actor's store
func (s *StaffService) ListStaff(ctx context.Context, actor *domain.User, filter shared.Filter) (shared.Paginated[UserResponse], error) {
	users, total, err := s.userRepo.FindStaff(ctx, actor.TenantID(), filter)
	if err != nil {
		return shared.Paginated[UserResponse]{}, err
	}
	items := make([]UserResponse, len(users))
	for i := range users {
		items[i] = ToUserResponse(&users[i])
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// UpdateStaff changes role, permissions or status of a staff member
func (s *StaffService) UpdateStaff(ctx context.Context, owner *domain.User, staffID uuid.UUID, req UpdateStaffRequest) (*UserResponse, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}
	staff, err := s.userRepo.FindStaffMember(ctx, owner.ID, staffID)
	if err != nil {
		return nil, err
	}
	if err := staff.UpdateAccess(req.Role, req.Permissions, req.Status); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, staff); err != nil {
		return nil, err
	}
	if !staff.IsActive() {
		s.revoke(ctx, staff.ID)
	}
	resp := ToUserResponse(staff)
	return &resp, nil
}

// DeleteStaff removes a staff member and revokes their tokens
func (s *StaffService) DeleteStaff(ctx context.Context, owner *domain.User, staffID uuid.UUID) error {
	if err := requireOwner(owner); err != nil {
		return err
	}
	if _, err := s.userRepo.FindStaffMember(ctx, owner.ID, staffID); err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, staffID); err != nil {
		return err
	}
	s.revoke(ctx, staffID)
	return nil
}

func (s *StaffService) revoke(ctx context.Context, userID uuid.UUID) {
	if s.blacklist == nil {
		return
	}
	if err := s.blacklist.RevokeSessions(ctx, userID.String(), revokeWindow); err != nil {
		s.logger.Warn("failed to revoke staff tokens", zap.String("user_id", userID.String()), zap.Error(err))
	}
}

// ListRoles lists the custom roles of the actor's store
func (s *StaffService) ListRoles(ctx context.Context, actor *domain.User) ([]CustomRoleResponse, error) {
	roles, err := s.roleRepo.FindAll(ctx, actor.TenantID())
	if err != nil {
		return nil, err
	}
	resp := make([]CustomRoleResponse, len(roles))
	for i := range roles {
		resp[i] = ToCustomRoleResponse(&roles[i])
	}
	return resp, nil
}

// CreateRole creates a custom role
func (s *StaffService) CreateRole(ctx context.Context, owner *domain.User, req CustomRoleRequest) (*CustomRoleResponse, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}
	name := ""
	if req.Name != nil {
		name = *req.Name
	}
	role, err := domain.NewCustomRole(owner.ID, name, req.Permissions)
	if err != nil {
		return nil, err
	}
	if err := s.roleRepo.Create(ctx, role); err != nil {
		return nil, err
	}
	resp := ToCustomRoleResponse(role)
	return &resp, nil
}

// UpdateRole renames a custom role or replaces its permissions
func (s *StaffService) UpdateRole(ctx context.Context, owner *domain.User, id uuid.UUID, req CustomRoleRequest) (*CustomRoleResponse, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}
	role, err := s.roleRepo.FindByID(ctx, owner.ID, id)
	if err != nil {
		return nil, err
	}
	if err := role.Update(req.Name, req.Permissions); err != nil {
		return nil, err
	}
	if err := s.roleRepo.Update(ctx, role); err != nil {
		return nil, err
	}
	resp := ToCustomRoleResponse(role)
	return &resp, nil
}

// DeleteRole deletes a custom role
func (s *StaffService) DeleteRole(ctx context.Context, owner *domain.User, id uuid.UUID) error {
	if err := requireOwner(owner); err != nil {
		return err
	}
	return s.roleRepo.Delete(ctx, owner.ID, id)
}
