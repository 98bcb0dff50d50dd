package finance

import (
	"strings"

	"github.com/bayup/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// TaxRate is a named tax percentage. At most one rate per store is the default.
type TaxRate struct {
	shared.TenantEntity
	Name      string          `gorm:"type:varchar(100);not null"`
	Rate      decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	IsDefault bool            `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (TaxRate) TableName() string {
	return "tax_rates"
}

// NewTaxRate creates a tax rate; rate is a percentage between 0 and 100
func NewTaxRate(tenantID uuid.UUID, name string, rate decimal.Decimal, isDefault bool) (*TaxRate, error) {
	t := &TaxRate{TenantEntity: shared.NewTenantEntity(tenantID)}
	if err := t.Update(name, rate, isDefault); err != nil {
		return nil, err
	}
	return t, nil
}

// Update replaces the rate fields
func (t *TaxRate) Update(name string, rate decimal.Decimal, isDefault bool) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Tax rate name cannot be empty")
	}
	if rate.IsNegative() || rate.GreaterThan(hundred) {
		return shared.NewDomainError("INVALID_RATE", "Tax rate must be between 0 and 100")
	}
	t.Name = name
	t.Rate = rate
	t.IsDefault = isDefault
	t.Touch()
	return nil
}

// Apply returns the tax for an amount, rounded to cents
func (t *TaxRate) Apply(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(t.Rate).Div(hundred).Round(2)
}

// ShippingOption is a delivery method offered at checkout
type ShippingOption struct {
	shared.TenantEntity
	Name          string          `gorm:"type:varchar(100);not null"`
	Cost          decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	MinOrderTotal decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (ShippingOption) TableName() string {
	return "shipping_options"
}

// NewShippingOption creates a shipping option
func NewShippingOption(tenantID uuid.UUID, name string, cost, minOrderTotal decimal.Decimal) (*ShippingOption, error) {
	s := &ShippingOption{TenantEntity: shared.NewTenantEntity(tenantID)}
	if err := s.Update(name, cost, minOrderTotal); err != nil {
		return nil, err
	}
	return s, nil
}

// Update replaces the option fields
func (s *ShippingOption) Update(name string, cost, minOrderTotal decimal.Decimal) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Shipping option name cannot be empty")
	}
	if cost.IsNegative() || minOrderTotal.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amounts cannot be negative")
	}
	s.Name = name
	s.Cost = cost
	s.MinOrderTotal = minOrderTotal
	s.Touch()
	return nil
}

// CostFor returns the shipping cost for an order subtotal. Orders at or above
// a positive minimum ship free.
func (s *ShippingOption) CostFor(subtotal decimal.Decimal) decimal.Decimal {
	if s.MinOrderTotal.IsPositive() && subtotal.GreaterThanOrEqual(s.MinOrderTotal) {
		return decimal.Zero
	}
	return s.Cost
}
