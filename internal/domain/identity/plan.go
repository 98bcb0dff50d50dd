package identity

import (
	"strings"

	"github.com/bayup/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Plan is a subscription tier. CommissionRate is the percentage of each
// order total retained by the platform.
type Plan struct {
	shared.BaseEntity
	Name           string          `gorm:"size:100;not null;uniqueIndex"`
	Description    string          `gorm:"size:500"`
	CommissionRate decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	MonthlyFee     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Modules        []string        `gorm:"serializer:json"`
	IsDefault      bool            `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (Plan) TableName() string {
	return "plans"
}

// NewPlan creates a plan
func NewPlan(name string, commissionRate, monthlyFee decimal.Decimal) (*Plan, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Plan name cannot be empty")
	}
	if commissionRate.IsNegative() || commissionRate.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_COMMISSION", "Commission rate must be between 0 and 100")
	}
	if monthlyFee.IsNegative() {
		return nil, shared.NewDomainError("INVALID_FEE", "Monthly fee cannot be negative")
	}
	return &Plan{
		BaseEntity:     shared.NewBaseEntity(),
		Name:           name,
		CommissionRate: commissionRate,
		MonthlyFee:     monthlyFee,
		Modules:        []string{},
	}, nil
}

// Commission returns the platform's share of the given amount
func (p *Plan) Commission(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(p.CommissionRate).Div(decimal.NewFromInt(100)).Round(2)
}

// HasModule reports whether the plan unlocks a module
func (p *Plan) HasModule(module string) bool {
	for _, m := range p.Modules {
		if m == module {
			return true
		}
	}
	return false
}
