package finance

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpense_Lifecycle(t *testing.T) {
	e, err := NewExpense(uuid.New(), "Arriendo", decimal.NewFromInt(1200000), "")
	require.NoError(t, err)

	assert.Equal(t, StatusPending, e.Status)
	assert.Equal(t, ExpenseCategoryDaily, e.Category)

	past := time.Now().Add(-24 * time.Hour)
	e.DueDate = &past
	assert.True(t, e.IsOverdue(time.Now()))

	require.NoError(t, e.MarkPaid())
	assert.Equal(t, StatusPaid, e.Status)
	assert.NotNil(t, e.PaidAt)
	assert.False(t, e.IsOverdue(time.Now()))
	assert.Error(t, e.MarkPaid())

	_, err = NewExpense(uuid.New(), "", decimal.NewFromInt(1), "")
	assert.Error(t, err)
	_, err = NewExpense(uuid.New(), "x", decimal.NewFromInt(-1), "")
	assert.Error(t, err)
}

func TestNewSaleIncome(t *testing.T) {
	tenantID, orderID := uuid.New(), uuid.New()
	inc := NewSaleIncome(tenantID, orderID, "AB12CD34", decimal.NewFromInt(90000))

	assert.Equal(t, "Venta #AB12CD34", inc.Description)
	assert.Equal(t, IncomeCategorySales, inc.Category)
	require.NotNil(t, inc.OrderID)
	assert.Equal(t, orderID, *inc.OrderID)
	assert.Equal(t, tenantID, inc.TenantID)
}

func TestReceivable_MarkCollected(t *testing.T) {
	r, err := NewReceivable(uuid.New(), "Cliente Mayorista", decimal.NewFromInt(500000), nil)
	require.NoError(t, err)

	require.NoError(t, r.MarkCollected())
	assert.Equal(t, StatusCollected, r.Status)
	assert.Error(t, r.MarkCollected())
}

func TestSummary(t *testing.T) {
	s := NewSummary(decimal.NewFromInt(1000), decimal.NewFromInt(300), decimal.NewFromInt(50), decimal.Zero)
	assert.True(t, s.NetBalance.Equal(decimal.NewFromInt(700)))
}

func TestTaxRate(t *testing.T) {
	tr, err := NewTaxRate(uuid.New(), "IVA", decimal.NewFromInt(19), true)
	require.NoError(t, err)
	assert.True(t, tr.Apply(decimal.NewFromInt(100000)).Equal(decimal.NewFromInt(19000)))

	_, err = NewTaxRate(uuid.New(), "IVA", decimal.NewFromInt(101), false)
	assert.Error(t, err)
	_, err = NewTaxRate(uuid.New(), " ", decimal.NewFromInt(5), false)
	assert.Error(t, err)
}

func TestShippingOption_CostFor(t *testing.T) {
	opt, err := NewShippingOption(uuid.New(), "Nacional", decimal.NewFromInt(12000), decimal.NewFromInt(200000))
	require.NoError(t, err)

	assert.True(t, opt.CostFor(decimal.NewFromInt(150000)).Equal(decimal.NewFromInt(12000)))
	assert.True(t, opt.CostFor(decimal.NewFromInt(200000)).IsZero())

	flat, err := NewShippingOption(uuid.New(), "Local", decimal.NewFromInt(5000), decimal.Zero)
	require.NoError(t, err)
	assert.True(t, flat.CostFor(decimal.NewFromInt(1000000)).Equal(decimal.NewFromInt(5000)))
}

func TestNewPaymentReference(t *testing.T) {
	ref := NewPaymentReference()
	require.Len(t, ref, len(ReferencePrefix)+8)
	assert.True(t, strings.HasPrefix(ref, ReferencePrefix))
	assert.Equal(t, strings.ToUpper(ref), ref)
	assert.NotEqual(t, ref, NewPaymentReference())
}

func TestAmountInCents(t *testing.T) {
	assert.Equal(t, int64(15000050), AmountInCents(decimal.RequireFromString("150000.50")))
	assert.Equal(t, int64(1999), AmountInCents(decimal.RequireFromString("19.999")))
}

func TestCheckoutRequest_Validate(t *testing.T) {
	req := &CheckoutRequest{Reference: "BAY-ABCDEF12", Amount: decimal.NewFromInt(10)}
	require.NoError(t, req.Validate())
	assert.Equal(t, DefaultCurrency, req.Currency)

	bad := &CheckoutRequest{Reference: "X-1", Amount: decimal.NewFromInt(10)}
	assert.ErrorIs(t, bad.Validate(), ErrPaymentInvalidReference)

	zero := &CheckoutRequest{Reference: "BAY-ABCDEF12", Amount: decimal.Zero}
	assert.ErrorIs(t, zero.Validate(), ErrPaymentInvalidAmount)
}
