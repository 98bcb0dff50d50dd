package identity

import (
	"context"

	domain "github.com/bayup/backend/internal/domain/identity"
	"github.com/bayup/backend/internal/domain/sales"
	"github.com/bayup/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindByShopSlug(ctx context.Context, slug string) (*domain.User, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) FindStaff(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]domain.User, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]domain.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) FindStaffMember(ctx context.Context, tenantID, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) CountOwners(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockPlanRepository struct{ mock.Mock }

func (m *MockPlanRepository) Create(ctx context.Context, p *domain.Plan) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Plan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Plan), args.Error(1)
}

func (m *MockPlanRepository) FindDefault(ctx context.Context) (*domain.Plan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Plan), args.Error(1)
}

func (m *MockPlanRepository) FindAll(ctx context.Context) ([]domain.Plan, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Plan), args.Error(1)
}

func (m *MockPlanRepository) ClearDefault(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockCustomRoleRepository struct{ mock.Mock }

func (m *MockCustomRoleRepository) Create(ctx context.Context, r *domain.CustomRole) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockCustomRoleRepository) Update(ctx context.Context, r *domain.CustomRole) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockCustomRoleRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

func (m *MockCustomRoleRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.CustomRole, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomRole), args.Error(1)
}

func (m *MockCustomRoleRepository) FindAll(ctx context.Context, tenantID uuid.UUID) ([]domain.CustomRole, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]domain.CustomRole), args.Error(1)
}

type MockAccountNotifier struct{ mock.Mock }

func (m *MockAccountNotifier) SendWelcome(ctx context.Context, email, name string) error {
	return m.Called(ctx, email, name).Error(0)
}

func (m *MockAccountNotifier) SendStaffInvitation(ctx context.Context, email, name, storeName, tempPassword string) error {
	return m.Called(ctx, email, name, storeName, tempPassword).Error(0)
}

type MockRevenueSource struct{ mock.Mock }

func (m *MockRevenueSource) RevenueByTenant(ctx context.Context) ([]sales.TenantRevenue, error) {
	args := m.Called(ctx)
	return args.Get(0).([]sales.TenantRevenue), args.Error(1)
}
