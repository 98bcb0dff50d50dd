package printing

import (
	"context"
	"errors"
	"testing"

	"github.com/bayup/backend/internal/domain/sales"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePDF struct {
	last *RenderRequest
	err  error
}

func (f *fakePDF) Render(_ context.Context, req *RenderRequest) (*RenderResult, error) {
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return &RenderResult{PDFData: []byte("%PDF-1.4"), PageCount: 1}, nil
}

func (f *fakePDF) Close() error { return nil }

func receiptOrder(t *testing.T) *sales.Order {
	t.Helper()
	order, err := sales.NewOrder(uuid.New(), sales.CustomerInfo{Name: "Ana <b>", Email: "ana@example.com"}, sales.SourcePOS, "cash", "Luis")
	require.NoError(t, err)
	_, err = order.AddItem(uuid.New(), "Camiseta", "M", decimal.NewFromInt(45000), 3)
	require.NoError(t, err)
	require.NoError(t, order.SetCharges(decimal.NewFromInt(8000), decimal.Zero))
	return order
}

func TestReceiptHTML(t *testing.T) {
	order := receiptOrder(t)

	html, err := ReceiptHTML(order, "Tienda Luna")
	require.NoError(t, err)

	assert.Contains(t, html, "Tienda Luna")
	assert.Contains(t, html, "#"+order.ShortID())
	assert.Contains(t, html, "Camiseta (M)")
	assert.Contains(t, html, "$135000.00")
	assert.Contains(t, html, "Envío")
	assert.Contains(t, html, "$143000.00")
	assert.NotContains(t, html, "Impuestos")
	assert.Contains(t, html, "Ana &lt;b&gt;")
}

func TestReceiptRenderer_RenderReceipt(t *testing.T) {
	pdf := &fakePDF{}
	renderer := NewReceiptRenderer(pdf, 3.15)
	order := receiptOrder(t)

	data, err := renderer.RenderReceipt(context.Background(), order, "")
	require.NoError(t, err)

	assert.Equal(t, []byte("%PDF-1.4"), data)
	require.NotNil(t, pdf.last)
	assert.Equal(t, 3.15, pdf.last.Paper.Width)
	assert.Equal(t, A4.Height, pdf.last.Paper.Height)
	assert.Contains(t, pdf.last.HTML, "Bayup")
}

func TestReceiptRenderer_PropagatesRenderError(t *testing.T) {
	pdf := &fakePDF{err: NewRenderError(ErrCodeRenderTimeout, "timed out", nil)}
	_, err := NewReceiptRenderer(pdf, 0).RenderReceipt(context.Background(), receiptOrder(t), "x")

	var renderErr *RenderError
	require.True(t, errors.As(err, &renderErr))
	assert.Equal(t, ErrCodeRenderTimeout, renderErr.Code)
}
