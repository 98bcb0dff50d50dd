package finance

import (
	"context"
	"testing"

	"github.com/bayup/backend/internal/domain/finance"
	"github.com/bayup/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type ledgerFixture struct {
	expenses    *mockTenantRepo[finance.Expense]
	incomes     *mockTenantRepo[finance.Income]
	receivables *mockTenantRepo[finance.Receivable]
	payroll     *mockTenantRepo[finance.PayrollEmployee]
	service     *LedgerService
}

func newLedgerFixture() *ledgerFixture {
	f := &ledgerFixture{
		expenses:    new(mockTenantRepo[finance.Expense]),
		incomes:     new(mockTenantRepo[finance.Income]),
		receivables: new(mockTenantRepo[finance.Receivable]),
		payroll:     new(mockTenantRepo[finance.PayrollEmployee]),
	}
	f.service = NewLedgerService(f.expenses, f.incomes, f.receivables, f.payroll, zap.NewNop())
	return f
}

func TestLedgerService_CreateExpenseDefaults(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture()
	tenantID := uuid.New()
	f.expenses.On("Create", ctx, mock.AnythingOfType("*finance.Expense")).Return(nil)

	resp, err := f.service.CreateExpense(ctx, tenantID, ExpenseRequest{
		Description: "Arriendo local",
		Amount:      decimal.NewFromInt(1200000),
	})
	require.NoError(t, err)
	assert.Equal(t, finance.StatusPending, resp.Status)
	assert.Equal(t, finance.ExpenseCategoryDaily, resp.Category)
	assert.NotNil(t, resp.Items)
}

func TestLedgerService_MarkExpensePaid(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture()
	tenantID := uuid.New()
	e, err := finance.NewExpense(tenantID, "Proveedor", decimal.NewFromInt(300), "")
	require.NoError(t, err)

	f.expenses.On("FindByID", ctx, tenantID, e.ID).Return(e, nil)
	f.expenses.On("Update", ctx, e).Return(nil).Once()

	resp, err := f.service.MarkExpensePaid(ctx, tenantID, e.ID)
	require.NoError(t, err)
	assert.Equal(t, finance.StatusPaid, resp.Status)
	assert.NotNil(t, resp.PaidAt)

	_, err = f.service.MarkExpensePaid(ctx, tenantID, e.ID)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
	f.expenses.AssertNumberOfCalls(t, "Update", 1)
}

func TestLedgerService_MarkReceivableCollectedOtherStore(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture()
	tenantID := uuid.New()
	id := uuid.New()
	f.receivables.On("FindByID", ctx, tenantID, id).Return(nil, shared.ErrNotFound)

	_, err := f.service.MarkReceivableCollected(ctx, tenantID, id)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestLedgerService_Summary(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture()
	tenantID := uuid.New()
	f.incomes.On("Sum", ctx, tenantID).Return(decimal.NewFromInt(1000), nil)
	f.expenses.On("SumByStatus", ctx, tenantID, "").Return(decimal.NewFromInt(400), nil)
	f.expenses.On("SumByStatus", ctx, tenantID, finance.StatusPending).Return(decimal.NewFromInt(150), nil)
	f.receivables.On("SumByStatus", ctx, tenantID, finance.StatusPending).Return(decimal.NewFromInt(75), nil)

	summary, err := f.service.Summary(ctx, tenantID)
	require.NoError(t, err)
	assert.True(t, summary.NetBalance.Equal(decimal.NewFromInt(600)))
	assert.True(t, summary.PendingReceivables.Equal(decimal.NewFromInt(75)))
	assert.True(t, summary.PendingExpenses.Equal(decimal.NewFromInt(150)))
}

func TestSettingsService_DefaultTaxRateIsExclusive(t *testing.T) {
	ctx := context.Background()
	taxes := new(mockTenantRepo[finance.TaxRate])
	svc := NewSettingsService(taxes, new(mockTenantRepo[finance.ShippingOption]))
	tenantID := uuid.New()

	var created *finance.TaxRate
	taxes.On("Create", ctx, mock.AnythingOfType("*finance.TaxRate")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*finance.TaxRate) }).
		Return(nil)
	taxes.On("ClearDefault", ctx, tenantID, mock.AnythingOfType("uuid.UUID")).Return(nil)

	resp, err := svc.CreateTaxRate(ctx, tenantID, TaxRateRequest{Name: "IVA", Rate: decimal.NewFromInt(19), IsDefault: true})
	require.NoError(t, err)
	assert.True(t, resp.IsDefault)
	taxes.AssertCalled(t, "ClearDefault", ctx, tenantID, created.ID)

	_, err = svc.CreateTaxRate(ctx, tenantID, TaxRateRequest{Name: "Exento", Rate: decimal.Zero})
	require.NoError(t, err)
	taxes.AssertNumberOfCalls(t, "ClearDefault", 1)
}

func TestSettingsService_RejectsRateAboveHundred(t *testing.T) {
	taxes := new(mockTenantRepo[finance.TaxRate])
	svc := NewSettingsService(taxes, new(mockTenantRepo[finance.ShippingOption]))

	_, err := svc.CreateTaxRate(context.Background(), uuid.New(), TaxRateRequest{Name: "X", Rate: decimal.NewFromInt(101)})
	assert.Error(t, err)
	taxes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
