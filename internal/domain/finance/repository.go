package finance

import (
	"context"

	"github.com/bayup/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseRepository defines the interface for expense persistence.
// FindAll supports the status and category filters.
type ExpenseRepository interface {
	shared.TenantRepository[Expense]

	// SumByStatus sums expense amounts; an empty status sums every row
	SumByStatus(ctx context.Context, tenantID uuid.UUID, status string) (decimal.Decimal, error)
}

// IncomeRepository defines the interface for income persistence
type IncomeRepository interface {
	shared.TenantRepository[Income]

	// Sum sums every income of the tenant
	Sum(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, error)
}

// ReceivableRepository defines the interface for receivable persistence
type ReceivableRepository interface {
	shared.TenantRepository[Receivable]

	// SumByStatus sums receivable amounts; an empty status sums every row
	SumByStatus(ctx context.Context, tenantID uuid.UUID, status string) (decimal.Decimal, error)
}

// PayrollRepository defines the interface for payroll persistence
type PayrollRepository interface {
	shared.TenantRepository[PayrollEmployee]
}

// TaxRateRepository defines the interface for tax rate persistence
type TaxRateRepository interface {
	shared.TenantRepository[TaxRate]

	// ClearDefault unsets is_default on every rate of the tenant except keepID
	ClearDefault(ctx context.Context, tenantID, keepID uuid.UUID) error
}

// ShippingOptionRepository defines the interface for shipping option persistence
type ShippingOptionRepository interface {
	shared.TenantRepository[ShippingOption]
}
