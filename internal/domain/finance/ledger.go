package finance

import (
	"strings"
	"time"

	"github.com/bayup/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ledger statuses and default categories
const (
	StatusPending   = "pending"
	StatusPaid      = "paid"
	StatusCollected = "collected"

	ExpenseCategoryDaily = "diario"
	IncomeCategorySales  = "ventas"
)

func validateLedgerLine(description string, amount decimal.Decimal) error {
	if strings.TrimSpace(description) == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount cannot be negative")
	}
	return nil
}

// Expense is money the store owes or has paid out
type Expense struct {
	shared.TenantEntity
	Description       string                   `gorm:"type:varchar(255);not null"`
	Amount            decimal.Decimal          `gorm:"type:decimal(18,2);not null"`
	DueDate           *time.Time
	Status            string                   `gorm:"type:varchar(20);not null;default:'pending';index"`
	Category          string                   `gorm:"type:varchar(50);not null;default:'diario'"`
	InvoiceNum        string                   `gorm:"type:varchar(100)"`
	Items             []map[string]interface{} `gorm:"serializer:json"`
	DescriptionDetail string                   `gorm:"type:text"`
	PaidAt            *time.Time
}

// TableName returns the table name for GORM
func (Expense) TableName() string {
	return "expenses"
}

// NewExpense creates a pending expense
func NewExpense(tenantID uuid.UUID, description string, amount decimal.Decimal, category string) (*Expense, error) {
	if err := validateLedgerLine(description, amount); err != nil {
		return nil, err
	}
	if category == "" {
		category = ExpenseCategoryDaily
	}
	return &Expense{
		TenantEntity: shared.NewTenantEntity(tenantID),
		Description:  strings.TrimSpace(description),
		Amount:       amount,
		Status:       StatusPending,
		Category:     category,
	}, nil
}

// Update replaces the editable fields of the expense
func (e *Expense) Update(description string, amount decimal.Decimal, category string, dueDate *time.Time) error {
	if err := validateLedgerLine(description, amount); err != nil {
		return err
	}
	e.Description = strings.TrimSpace(description)
	e.Amount = amount
	if category != "" {
		e.Category = category
	}
	e.DueDate = dueDate
	e.Touch()
	return nil
}

// MarkPaid records the expense as paid
func (e *Expense) MarkPaid() error {
	if e.Status == StatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Expense is already paid")
	}
	now := time.Now()
	e.Status = StatusPaid
	e.PaidAt = &now
	e.Touch()
	return nil
}

// IsOverdue reports whether a pending expense is past its due date
func (e *Expense) IsOverdue(now time.Time) bool {
	return e.Status == StatusPending && e.DueDate != nil && e.DueDate.Before(now)
}

// Income is money the store has received
type Income struct {
	shared.TenantEntity
	Description string          `gorm:"type:varchar(255);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Category    string          `gorm:"type:varchar(50);not null;default:'ventas'"`
	OrderID     *uuid.UUID      `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (Income) TableName() string {
	return "incomes"
}

// NewIncome creates an income line
func NewIncome(tenantID uuid.UUID, description string, amount decimal.Decimal, category string) (*Income, error) {
	if err := validateLedgerLine(description, amount); err != nil {
		return nil, err
	}
	if category == "" {
		category = IncomeCategorySales
	}
	return &Income{
		TenantEntity: shared.NewTenantEntity(tenantID),
		Description:  strings.TrimSpace(description),
		Amount:       amount,
		Category:     category,
	}, nil
}

// NewSaleIncome creates the ledger line booked for a new order
func NewSaleIncome(tenantID, orderID uuid.UUID, shortID string, amount decimal.Decimal) *Income {
	return &Income{
		TenantEntity: shared.NewTenantEntity(tenantID),
		Description:  "Venta #" + shortID,
		Amount:       amount,
		Category:     IncomeCategorySales,
		OrderID:      &orderID,
	}
}

// Update replaces the editable fields of the income
func (i *Income) Update(description string, amount decimal.Decimal, category string) error {
	if err := validateLedgerLine(description, amount); err != nil {
		return err
	}
	i.Description = strings.TrimSpace(description)
	i.Amount = amount
	if category != "" {
		i.Category = category
	}
	i.Touch()
	return nil
}

// Receivable is money a client owes the store
type Receivable struct {
	shared.TenantEntity
	ClientName  string          `gorm:"type:varchar(200);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	DueDate     *time.Time
	Status      string `gorm:"type:varchar(20);not null;default:'pending';index"`
	CollectedAt *time.Time
}

// TableName returns the table name for GORM
func (Receivable) TableName() string {
	return "receivables"
}

// NewReceivable creates a pending receivable
func NewReceivable(tenantID uuid.UUID, clientName string, amount decimal.Decimal, dueDate *time.Time) (*Receivable, error) {
	if err := validateLedgerLine(clientName, amount); err != nil {
		return nil, err
	}
	return &Receivable{
		TenantEntity: shared.NewTenantEntity(tenantID),
		ClientName:   strings.TrimSpace(clientName),
		Amount:       amount,
		DueDate:      dueDate,
		Status:       StatusPending,
	}, nil
}

// Update replaces the editable fields of the receivable
func (r *Receivable) Update(clientName string, amount decimal.Decimal, dueDate *time.Time) error {
	if err := validateLedgerLine(clientName, amount); err != nil {
		return err
	}
	r.ClientName = strings.TrimSpace(clientName)
	r.Amount = amount
	r.DueDate = dueDate
	r.Touch()
	return nil
}

// MarkCollected records the receivable as collected
func (r *Receivable) MarkCollected() error {
	if r.Status == StatusCollected {
		return shared.NewDomainError("INVALID_STATE", "Receivable is already collected")
	}
	now := time.Now()
	r.Status = StatusCollected
	r.CollectedAt = &now
	r.Touch()
	return nil
}

// PayrollEmployee is an employee on the store payroll
type PayrollEmployee struct {
	shared.TenantEntity
	Name       string          `gorm:"type:varchar(200);not null"`
	Role       string          `gorm:"type:varchar(100)"`
	BaseSalary decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (PayrollEmployee) TableName() string {
	return "payroll_employees"
}

// NewPayrollEmployee creates a payroll entry
func NewPayrollEmployee(tenantID uuid.UUID, name, role string, baseSalary decimal.Decimal) (*PayrollEmployee, error) {
	if err := validateLedgerLine(name, baseSalary); err != nil {
		return nil, err
	}
	return &PayrollEmployee{
		TenantEntity: shared.NewTenantEntity(tenantID),
		Name:         strings.TrimSpace(name),
		Role:         role,
		BaseSalary:   baseSalary,
	}, nil
}

// Update replaces the editable fields of the employee
func (p *PayrollEmployee) Update(name, role string, baseSalary decimal.Decimal) error {
	if err := validateLedgerLine(name, baseSalary); err != nil {
		return err
	}
	p.Name = strings.TrimSpace(name)
	p.Role = role
	p.BaseSalary = baseSalary
	p.Touch()
	return nil
}

// Summary is the aggregated financial position of a store
type Summary struct {
	TotalIncome        decimal.Decimal `json:"total_income"`
	TotalExpenses      decimal.Decimal `json:"total_expenses"`
	NetBalance         decimal.Decimal `json:"net_balance"`
	PendingReceivables decimal.Decimal `json:"pending_receivables"`
	PendingExpenses    decimal.Decimal `json:"pending_expenses"`
}

// NewSummary derives the net balance from incomes and expenses
func NewSummary(income, expenses, pendingReceivables, pendingExpenses decimal.Decimal) Summary {
	return Summary{
		TotalIncome:        income,
		TotalExpenses:      expenses,
		NetBalance:         income.Sub(expenses),
		PendingReceivables: pendingReceivables,
		PendingExpenses:    pendingExpenses,
	}
}
