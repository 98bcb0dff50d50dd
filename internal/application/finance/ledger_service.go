package finance

import (
	"context"
	"fmt"

	"github.com/bayup/backend/internal/domain/finance"
	"github.com/bayup/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LedgerService manages the expense, income, receivable and payroll books of
// a store
type LedgerService struct {
	expenseRepo    finance.ExpenseRepository
	incomeRepo     finance.IncomeRepository
	receivableRepo finance.ReceivableRepository
	payrollRepo    finance.PayrollRepository
	logger         *zap.Logger
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(
	expenseRepo finance.ExpenseRepository,
	incomeRepo finance.IncomeRepository,
	receivableRepo finance.ReceivableRepository,
	payrollRepo finance.PayrollRepository,
	logger *zap.Logger,
) *LedgerService {
	return &LedgerService{
		expenseRepo:    expenseRepo,
		incomeRepo:     incomeRepo,
		receivableRepo: receivableRepo,
		payrollRepo:    payrollRepo,
		logger:         logger,
	}
}

// ===================== Expenses =====================

// ListExpenses lists expenses; filters: status, category
func (s *LedgerService) ListExpenses(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[ExpenseResponse], error) {
	rows, total, err := s.expenseRepo.FindAll(ctx, tenantID, filter)
	if err != nil {
		return shared.Paginated[ExpenseResponse]{}, err
	}
	return shared.NewPaginated(mapSlice(rows, ToExpenseResponse), total, filter.Page, filter.PageSize), nil
}

// GetExpense returns one expense
func (s *LedgerService) GetExpense(ctx context.Context, tenantID, id uuid.UUID) (*ExpenseResponse, error) {
	e, err := s.expenseRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToExpenseResponse(e)
	return &resp, nil
}

// CreateExpense records a pending expense
func (s *LedgerService) CreateExpense(ctx context.Context, tenantID uuid.UUID, req ExpenseRequest) (*ExpenseResponse, error) {
	e, err := finance.NewExpense(tenantID, req.Description, req.Amount, req.Category)
	if err != nil {
		return nil, err
	}
	e.DueDate = req.DueDate
	e.InvoiceNum = req.InvoiceNum
	e.Items = req.Items
	e.DescriptionDetail = req.DescriptionDetail
	if err := s.expenseRepo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}
	resp := ToExpenseResponse(e)
	return &resp, nil
}

// UpdateExpense replaces the editable fields of an expense
func (s *LedgerService) UpdateExpense(ctx context.Context, tenantID, id uuid.UUID, req ExpenseRequest) (*ExpenseResponse, error) {
	e, err := s.expenseRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := e.Update(req.Description, req.Amount, req.Category, req.DueDate); err != nil {
		return nil, err
	}
	e.InvoiceNum = req.InvoiceNum
	if req.Items != nil {
		e.Items = req.Items
	}
	e.DescriptionDetail = req.DescriptionDetail
	if err := s.expenseRepo.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("update expense: %w", err)
	}
	resp := ToExpenseResponse(e)
	return &resp, nil
}

// DeleteExpense deletes an expense
func (s *LedgerService) DeleteExpense(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.expenseRepo.Delete(ctx, tenantID, id)
}

// MarkExpensePaid marks a pending expense as paid
func (s *LedgerService) MarkExpensePaid(ctx context.Context, tenantID, id uuid.UUID) (*ExpenseResponse, error) {
	e, err := s.expenseRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := e.MarkPaid(); err != nil {
		return nil, err
	}
	if err := s.expenseRepo.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("mark expense paid: %w", err)
	}
	resp := ToExpenseResponse(e)
	return &resp, nil
}

// ===================== Incomes =====================

// ListIncomes lists incomes; filters: category
func (s *LedgerService) ListIncomes(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[IncomeResponse], error) {
	rows, total, err := s.incomeRepo.FindAll(ctx, tenantID, filter)
	if err != nil {
		return shared.Paginated[IncomeResponse]{}, err
	}
	return shared.NewPaginated(mapSlice(rows, ToIncomeResponse), total, filter.Page, filter.PageSize), nil
}

// CreateIncome records an income
func (s *LedgerService) CreateIncome(ctx context.Context, tenantID uuid.UUID, req IncomeRequest) (*IncomeResponse, error) {
	i, err := finance.NewIncome(tenantID, req.Description, req.Amount, req.Category)
	if err != nil {
		return nil, err
	}
	if err := s.incomeRepo.Create(ctx, i); err != nil {
		return nil, fmt.Errorf("create income: %w", err)
	}
	resp := ToIncomeResponse(i)
	return &resp, nil
}

// UpdateIncome replaces the editable fields of an income
func (s *LedgerService) UpdateIncome(ctx context.Context, tenantID, id uuid.UUID, req IncomeRequest) (*IncomeResponse, error) {
	i, err := s.incomeRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := i.Update(req.Description, req.Amount, req.Category); err != nil {
		return nil, err
	}
	if err := s.incomeRepo.Update(ctx, i); err != nil {
		return nil, fmt.Errorf("update income: %w", err)
	}
	resp := ToIncomeResponse(i)
	return &resp, nil
}

// DeleteIncome deletes an income
func (s *LedgerService) DeleteIncome(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.incomeRepo.Delete(ctx, tenantID, id)
}

// ===================== Receivables =====================

// ListReceivables lists receivables; filters: status
func (s *LedgerService) ListReceivables(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[ReceivableResponse], error) {
	rows, total, err := s.receivableRepo.FindAll(ctx, tenantID, filter)
	if err != nil {
		return shared.Paginated[ReceivableResponse]{}, err
	}
	return shared.NewPaginated(mapSlice(rows, ToReceivableResponse), total, filter.Page, filter.PageSize), nil
}

// CreateReceivable records a pending receivable
func (s *LedgerService) CreateReceivable(ctx context.Context, tenantID uuid.UUID, req ReceivableRequest) (*ReceivableResponse, error) {
	r, err := finance.NewReceivable(tenantID, req.ClientName, req.Amount, req.DueDate)
	if err != nil {
		return nil, err
	}
	if err := s.receivableRepo.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("create receivable: %w", err)
	}
	resp := ToReceivableResponse(r)
	return &resp, nil
}

// UpdateReceivable replaces the editable fields of a receivable
func (s *LedgerService) UpdateReceivable(ctx context.Context, tenantID, id uuid.UUID, req ReceivableRequest) (*ReceivableResponse, error) {
	r, err := s.receivableRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := r.Update(req.ClientName, req.Amount, req.DueDate); err != nil {
		return nil, err
	}
	if err := s.receivableRepo.Update(ctx, r); err != nil {
		return nil, fmt.Errorf("update receivable: %w", err)
	}
	resp := ToReceivableResponse(r)
	return &resp, nil
}

// DeleteReceivable deletes a receivable
func (s *LedgerService) DeleteReceivable(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.receivableRepo.Delete(ctx, tenantID, id)
}

// MarkReceivableCollected marks a pending receivable as collected
func (s *LedgerService) MarkReceivableCollected(ctx context.Context, tenantID, id uuid.UUID) (*ReceivableResponse, error) {
	r, err := s.receivableRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := r.MarkCollected(); err != nil {
		return nil, err
	}
	if err := s.receivableRepo.Update(ctx, r); err != nil {
		return nil, fmt.Errorf("mark receivable collected: %w", err)
	}
	resp := ToReceivableResponse(r)
	return &resp, nil
}

// ===================== Payroll =====================

// ListPayroll lists payroll employees
func (s *LedgerService) ListPayroll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[PayrollResponse], error) {
	rows, total, err := s.payrollRepo.FindAll(ctx, tenantID, filter)
	if err != nil {
		return shared.Paginated[PayrollResponse]{}, err
	}
	return shared.NewPaginated(mapSlice(rows, ToPayrollResponse), total, filter.Page, filter.PageSize), nil
}

// CreatePayroll adds an employee to the payroll
func (s *LedgerService) CreatePayroll(ctx context.Context, tenantID uuid.UUID, req PayrollRequest) (*PayrollResponse, error) {
	p, err := finance.NewPayrollEmployee(tenantID, req.Name, req.Role, req.BaseSalary)
	if err != nil {
		return nil, err
	}
	if err := s.payrollRepo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create payroll employee: %w", err)
	}
	resp := ToPayrollResponse(p)
	return &resp, nil
}

// UpdatePayroll replaces the editable fields of an employee
func (s *LedgerService) UpdatePayroll(ctx context.Context, tenantID, id uuid.UUID, req PayrollRequest) (*PayrollResponse, error) {
	p, err := s.payrollRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := p.Update(req.Name, req.Role, req.BaseSalary); err != nil {
		return nil, err
	}
	if err := s.payrollRepo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update payroll employee: %w", err)
	}
	resp := ToPayrollResponse(p)
	return &resp, nil
}

// DeletePayroll removes an employee from the payroll
func (s *LedgerService) DeletePayroll(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.payrollRepo.Delete(ctx, tenantID, id)
}

// ===================== Summary =====================

// Summary aggregates the books of a store
func (s *LedgerService) Summary(ctx context.Context, tenantID uuid.UUID) (*finance.Summary, error) {
	income, err := s.incomeRepo.Sum(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("sum incomes: %w", err)
	}
	expenses, err := s.expenseRepo.SumByStatus(ctx, tenantID, "")
	if err != nil {
		return nil, fmt.Errorf("sum expenses: %w", err)
	}
	pendingExpenses, err := s.expenseRepo.SumByStatus(ctx, tenantID, finance.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("sum pending expenses: %w", err)
	}
	pendingReceivables, err := s.receivableRepo.SumByStatus(ctx, tenantID, finance.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("sum pending receivables: %w", err)
	}
	summary := finance.NewSummary(income, expenses, pendingReceivables, pendingExpenses)
	return &summary, nil
}
