package finance

import (
	"context"

	"github.com/bayup/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// mockTenantRepo mocks shared.TenantRepository for any row type
type mockTenantRepo[T any] struct{ mock.Mock }

func (m *mockTenantRepo[T]) Create(ctx context.Context, entity *T) error {
	return m.Called(ctx, entity).Error(0)
}

func (m *mockTenantRepo[T]) Update(ctx context.Context, entity *T) error {
	return m.Called(ctx, entity).Error(0)
}

func (m *mockTenantRepo[T]) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

func (m *mockTenantRepo[T]) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*T, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *mockTenantRepo[T]) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]T, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]T), args.Get(1).(int64), args.Error(2)
}

func (m *mockTenantRepo[T]) SumByStatus(ctx context.Context, tenantID uuid.UUID, status string) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, status)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *mockTenantRepo[T]) Sum(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *mockTenantRepo[T]) ClearDefault(ctx context.Context, tenantID, keepID uuid.UUID) error {
	return m.Called(ctx, tenantID, keepID).Error(0)
}
