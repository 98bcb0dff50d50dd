package persistence

import (
	"context"

	"github.com/bayup/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type sumResult struct {
	Total decimal.Decimal
}

// GormExpenseRepository implements finance.ExpenseRepository
type GormExpenseRepository struct {
	*GormTenantRepository[finance.Expense]
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{
		GormTenantRepository: NewGormTenantRepository[finance.Expense](db, LedgerSortFields, "description", "status", "category"),
	}
}

// SumByStatus sums expense amounts
func (r *GormExpenseRepository) SumByStatus(ctx context.Context, tenantID uuid.UUID, status string) (decimal.Decimal, error) {
	out, err := r.sum(ctx, tenantID, status)
	return out.Total, err
}

// GormIncomeRepository implements finance.IncomeRepository
type GormIncomeRepository struct {
	*GormTenantRepository[finance.Income]
}

// NewGormIncomeRepository creates a new GormIncomeRepository
func NewGormIncomeRepository(db *gorm.DB) *GormIncomeRepository {
	return &GormIncomeRepository{
		GormTenantRepository: NewGormTenantRepository[finance.Income](db, LedgerSortFields, "description", "category"),
	}
}

// Sum sums every income of the tenant
func (r *GormIncomeRepository) Sum(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, error) {
	out, err := r.sum(ctx, tenantID, "")
	return out.Total, err
}

// GormReceivableRepository implements finance.ReceivableRepository
type GormReceivableRepository struct {
	*GormTenantRepository[finance.Receivable]
}

// NewGormReceivableRepository creates a new GormReceivableRepository
func NewGormReceivableRepository(db *gorm.DB) *GormReceivableRepository {
	return &GormReceivableRepository{
		GormTenantRepository: NewGormTenantRepository[finance.Receivable](db, LedgerSortFields, "client_name", "status"),
	}
}

// SumByStatus sums receivable amounts
func (r *GormReceivableRepository) SumByStatus(ctx context.Context, tenantID uuid.UUID, status string) (decimal.Decimal, error) {
	out, err := r.sum(ctx, tenantID, status)
	return out.Total, err
}

// NewGormPayrollRepository creates the payroll repository
func NewGormPayrollRepository(db *gorm.DB) *GormTenantRepository[finance.PayrollEmployee] {
	return NewGormTenantRepository[finance.PayrollEmployee](db, LedgerSortFields, "name")
}

// GormTaxRateRepository implements finance.TaxRateRepository
type GormTaxRateRepository struct {
	*GormTenantRepository[finance.TaxRate]
}

// NewGormTaxRateRepository creates a new GormTaxRateRepository
func NewGormTaxRateRepository(db *gorm.DB) *GormTaxRateRepository {
	return &GormTaxRateRepository{
		GormTenantRepository: NewGormTenantRepository[finance.TaxRate](db, SettingsSortFields, "name"),
	}
}

// ClearDefault unsets is_default on every other rate of the tenant
func (r *GormTaxRateRepository) ClearDefault(ctx context.Context, tenantID, keepID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&finance.TaxRate{}).
		Where("tenant_id = ? AND id <> ? AND is_default = ?", tenantID, keepID, true).
		Update("is_default", false).Error
}

// NewGormShippingOptionRepository creates the shipping option repository
func NewGormShippingOptionRepository(db *gorm.DB) *GormTenantRepository[finance.ShippingOption] {
	return NewGormTenantRepository[finance.ShippingOption](db, SettingsSortFields, "name")
}

var (
	_ finance.ExpenseRepository        = (*GormExpenseRepository)(nil)
	_ finance.IncomeRepository         = (*GormIncomeRepository)(nil)
	_ finance.ReceivableRepository     = (*GormReceivableRepository)(nil)
	_ finance.PayrollRepository        = (*GormTenantRepository[finance.PayrollEmployee])(nil)
	_ finance.TaxRateRepository        = (*GormTaxRateRepository)(nil)
	_ finance.ShippingOptionRepository = (*GormTenantRepository[finance.ShippingOption])(nil)
)
