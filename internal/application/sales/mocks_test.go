package sales

import (
	"context"

	"github.com/bayup/backend/internal/domain/catalog"
	"github.com/bayup/backend/internal/domain/finance"
	"github.com/bayup/backend/internal/domain/identity"
	"github.com/bayup/backend/internal/domain/sales"
	"github.com/bayup/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockVariantRepository struct{ mock.Mock }

func (m *MockVariantRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductVariant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ProductVariant), args.Error(1)
}

func (m *MockVariantRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.ProductVariant, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ProductVariant), args.Error(1)
}

func (m *MockVariantRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	return m.Called(ctx, id, quantity).Error(0)
}

func (m *MockVariantRepository) SetStock(ctx context.Context, tenantID, id uuid.UUID, stock int) error {
	return m.Called(ctx, tenantID, id, stock).Error(0)
}

func (m *MockVariantRepository) CountLowStock(ctx context.Context, tenantID uuid.UUID, threshold int) (int64, error) {
	args := m.Called(ctx, tenantID, threshold)
	return args.Get(0).(int64), args.Error(1)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Create(ctx context.Context, order *sales.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*sales.Order, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByIDAny(ctx context.Context, id uuid.UUID) (*sales.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]sales.Order, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]sales.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status sales.OrderStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockOrderRepository) FindByPaymentReference(ctx context.Context, reference string) (*sales.Order, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Order), args.Error(1)
}

func (m *MockOrderRepository) SetPaymentReference(ctx context.Context, tenantID, id uuid.UUID, reference string) error {
	return m.Called(ctx, tenantID, id, reference).Error(0)
}

func (m *MockOrderRepository) StatsForTenant(ctx context.Context, tenantID uuid.UUID) (sales.TenantRevenue, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(sales.TenantRevenue), args.Error(1)
}

func (m *MockOrderRepository) RevenueByTenant(ctx context.Context) ([]sales.TenantRevenue, error) {
	args := m.Called(ctx)
	return args.Get(0).([]sales.TenantRevenue), args.Error(1)
}

type MockCustomerRepository struct{ mock.Mock }

func (m *MockCustomerRepository) Create(ctx context.Context, c *sales.Customer) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCustomerRepository) Update(ctx context.Context, c *sales.Customer) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCustomerRepository) FindByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*sales.Customer, error) {
	args := m.Called(ctx, tenantID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*sales.Customer, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]sales.Customer, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]sales.Customer), args.Get(1).(int64), args.Error(2)
}

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Create(ctx context.Context, s *sales.Shipment) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockShipmentRepository) Update(ctx context.Context, s *sales.Shipment) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockShipmentRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*sales.Shipment, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) FindByOrder(ctx context.Context, tenantID, orderID uuid.UUID) (*sales.Shipment, error) {
	args := m.Called(ctx, tenantID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]sales.Shipment, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]sales.Shipment), args.Get(1).(int64), args.Error(2)
}

type MockActivityRepository struct{ mock.Mock }

func (m *MockActivityRepository) Create(ctx context.Context, log *sales.ActivityLog) error {
	return m.Called(ctx, log).Error(0)
}

func (m *MockActivityRepository) FindRecent(ctx context.Context, tenantID uuid.UUID, limit int) ([]sales.ActivityLog, error) {
	args := m.Called(ctx, tenantID, limit)
	return args.Get(0).([]sales.ActivityLog), args.Error(1)
}

type MockIncomeRepository struct{ mock.Mock }

func (m *MockIncomeRepository) Create(ctx context.Context, i *finance.Income) error {
	return m.Called(ctx, i).Error(0)
}

func (m *MockIncomeRepository) Update(ctx context.Context, i *finance.Income) error {
	return m.Called(ctx, i).Error(0)
}

func (m *MockIncomeRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

func (m *MockIncomeRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*finance.Income, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Income), args.Error(1)
}

func (m *MockIncomeRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]finance.Income, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]finance.Income), args.Get(1).(int64), args.Error(2)
}

func (m *MockIncomeRepository) Sum(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Create(ctx context.Context, u *identity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, u *identity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByShopSlug(ctx context.Context, slug string) (*identity.User, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) FindStaff(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]identity.User, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]identity.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) FindStaffMember(ctx context.Context, tenantID, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) CountOwners(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) NotifyOrderCreated(ctx context.Context, order *sales.Order, storeName string) error {
	return m.Called(ctx, order, storeName).Error(0)
}
