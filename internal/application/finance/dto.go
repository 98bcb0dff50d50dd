package finance

import (
	"time"

	"github.com/bayup/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseRequest creates or updates an expense
type ExpenseRequest struct {
	Description       string                   `json:"description" binding:"required,max=255"`
	Amount            decimal.Decimal          `json:"amount"`
	DueDate           *time.Time               `json:"due_date"`
	Category          string                   `json:"category" binding:"omitempty,max=50"`
	InvoiceNum        string                   `json:"invoice_num" binding:"omitempty,max=100"`
	Items             []map[string]interface{} `json:"items"`
	DescriptionDetail string                   `json:"description_detail"`
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID                uuid.UUID                `json:"id"`
	Description       string                   `json:"description"`
	Amount            decimal.Decimal          `json:"amount"`
	DueDate           *time.Time               `json:"due_date,omitempty"`
	Status            string                   `json:"status"`
	Category          string                   `json:"category"`
	InvoiceNum        string                   `json:"invoice_num,omitempty"`
	Items             []map[string]interface{} `json:"items"`
	DescriptionDetail string                   `json:"description_detail,omitempty"`
	PaidAt            *time.Time               `json:"paid_at,omitempty"`
	CreatedAt         time.Time                `json:"created_at"`
}

// ToExpenseResponse converts a domain expense to its response
func ToExpenseResponse(e *finance.Expense) ExpenseResponse {
	items := e.Items
	if items == nil {
		items = []map[string]interface{}{}
	}
	return ExpenseResponse{
		ID:                e.ID,
		Description:       e.Description,
		Amount:            e.Amount,
		DueDate:           e.DueDate,
		Status:            e.Status,
		Category:          e.Category,
		InvoiceNum:        e.InvoiceNum,
		Items:             items,
		DescriptionDetail: e.DescriptionDetail,
		PaidAt:            e.PaidAt,
		CreatedAt:         e.CreatedAt,
	}
}

// IncomeRequest creates or updates an income
type IncomeRequest struct {
	Description string          `json:"description" binding:"required,max=255"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category" binding:"omitempty,max=50"`
}

// IncomeResponse represents an income in API responses
type IncomeResponse struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	OrderID     *uuid.UUID      `json:"order_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToIncomeResponse converts a domain income to its response
func ToIncomeResponse(i *finance.Income) IncomeResponse {
	return IncomeResponse{
		ID:          i.ID,
		Description: i.Description,
		Amount:      i.Amount,
		Category:    i.Category,
		OrderID:     i.OrderID,
		CreatedAt:   i.CreatedAt,
	}
}

// ReceivableRequest creates or updates a receivable
type ReceivableRequest struct {
	ClientName string          `json:"client_name" binding:"required,max=200"`
	Amount     decimal.Decimal `json:"amount"`
	DueDate    *time.Time      `json:"due_date"`
}

// ReceivableResponse represents a receivable in API responses
type ReceivableResponse struct {
	ID          uuid.UUID       `json:"id"`
	ClientName  string          `json:"client_name"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
	Status      string          `json:"status"`
	CollectedAt *time.Time      `json:"collected_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToReceivableResponse converts a domain receivable to its response
func ToReceivableResponse(r *finance.Receivable) ReceivableResponse {
	return ReceivableResponse{
		ID:          r.ID,
		ClientName:  r.ClientName,
		Amount:      r.Amount,
		DueDate:     r.DueDate,
		Status:      r.Status,
		CollectedAt: r.CollectedAt,
		CreatedAt:   r.CreatedAt,
	}
}

// PayrollRequest creates or updates a payroll employee
type PayrollRequest struct {
	Name       string          `json:"name" binding:"required,max=200"`
	Role       string          `json:"role" binding:"omitempty,max=100"`
	BaseSalary decimal.Decimal `json:"base_salary"`
}

// PayrollResponse represents a payroll employee in API responses
type PayrollResponse struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Role       string          `json:"role"`
	BaseSalary decimal.Decimal `json:"base_salary"`
	CreatedAt  time.Time       `json:"created_at"`
}

// ToPayrollResponse converts a domain payroll employee to its response
func ToPayrollResponse(p *finance.PayrollEmployee) PayrollResponse {
	return PayrollResponse{
		ID:         p.ID,
		Name:       p.Name,
		Role:       p.Role,
		BaseSalary: p.BaseSalary,
		CreatedAt:  p.CreatedAt,
	}
}

// TaxRateRequest creates or updates a tax rate
type TaxRateRequest struct {
	Name      string          `json:"name" binding:"required,max=100"`
	Rate      decimal.Decimal `json:"rate"`
	IsDefault bool            `json:"is_default"`
}

// TaxRateResponse represents a tax rate in API responses
type TaxRateResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Rate      decimal.Decimal `json:"rate"`
	IsDefault bool            `json:"is_default"`
}

// ToTaxRateResponse converts a domain tax rate to its response
func ToTaxRateResponse(t *finance.TaxRate) TaxRateResponse {
	return TaxRateResponse{ID: t.ID, Name: t.Name, Rate: t.Rate, IsDefault: t.IsDefault}
}

// ShippingOptionRequest creates or updates a shipping option
type ShippingOptionRequest struct {
	Name          string          `json:"name" binding:"required,max=100"`
	Cost          decimal.Decimal `json:"cost"`
	MinOrderTotal decimal.Decimal `json:"min_order_total"`
}

// ShippingOptionResponse represents a shipping option in API responses
type ShippingOptionResponse struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Cost          decimal.Decimal `json:"cost"`
	MinOrderTotal decimal.Decimal `json:"min_order_total"`
}

// ToShippingOptionResponse converts a domain shipping option to its response
func ToShippingOptionResponse(s *finance.ShippingOption) ShippingOptionResponse {
	return ShippingOptionResponse{ID: s.ID, Name: s.Name, Cost: s.Cost, MinOrderTotal: s.MinOrderTotal}
}

func mapSlice[T any, R any](items []T, fn func(*T) R) []R {
	out := make([]R, len(items))
	for i := range items {
		out[i] = fn(&items[i])
	}
	return out
}
