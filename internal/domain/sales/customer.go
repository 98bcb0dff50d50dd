package sales

import (
	"strings"
	"time"

	"github.com/bayup/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Customer is a buyer known to a store. Email is unique per store only
// (enforced by idx_customers_tenant_email in the schema migrations).
type Customer struct {
	shared.TenantEntity
	Email               string          `gorm:"type:varchar(200);not null;index"`
	FullName            string          `gorm:"type:varchar(200)"`
	Phone               string          `gorm:"type:varchar(50)"`
	City                string          `gorm:"type:varchar(100)"`
	CustomerType        string          `gorm:"type:varchar(30);not null;default:'final'"`
	TotalSpent          decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	OrdersCount         int             `gorm:"not null;default:0"`
	LoyaltyPoints       int             `gorm:"not null;default:0"`
	LastPurchaseDate    *time.Time
	LastPurchaseSummary string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// loyaltyUnit is the amount that earns one loyalty point
var loyaltyUnit = decimal.NewFromInt(1000)

// NewCustomer creates a customer record from order buyer data
func NewCustomer(tenantID uuid.UUID, info CustomerInfo) (*Customer, error) {
	email := strings.ToLower(strings.TrimSpace(info.Email))
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Customer email cannot be empty")
	}
	customerType := info.Type
	if customerType == "" {
		customerType = CustomerFinal
	}
	return &Customer{
		TenantEntity: shared.NewTenantEntity(tenantID),
		Email:        email,
		FullName:     strings.TrimSpace(info.Name),
		Phone:        strings.TrimSpace(info.Phone),
		City:         strings.TrimSpace(info.City),
		CustomerType: customerType,
		TotalSpent:   decimal.Zero,
	}, nil
}

// RecordPurchase adds an order to the customer's history
func (c *Customer) RecordPurchase(order *Order) {
	c.TotalSpent = c.TotalSpent.Add(order.TotalPrice)
	c.OrdersCount++
	c.LoyaltyPoints += int(order.TotalPrice.Div(loyaltyUnit).IntPart())
	now := time.Now()
	c.LastPurchaseDate = &now
	c.LastPurchaseSummary = order.Summary()
	if order.CustomerName != "" {
		c.FullName = order.CustomerName
	}
	if order.CustomerPhone != "" {
		c.Phone = order.CustomerPhone
	}
	if order.CustomerCity != "" {
		c.City = order.CustomerCity
	}
	c.Touch()
}
