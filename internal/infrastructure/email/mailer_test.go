package email

import (
	"context"
	"errors"
	"testing"

	"github.com/bayup/backend/internal/domain/sales"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingSender struct {
	sent []Message
	err  error
}

func (s *recordingSender) Send(_ context.Context, msg Message) (string, error) {
	s.sent = append(s.sent, msg)
	return "id", s.err
}

func newOrder(t *testing.T, email string) *sales.Order {
	t.Helper()
	order, err := sales.NewOrder(uuid.New(), sales.CustomerInfo{Name: "ana maría", Email: email}, sales.SourceWeb, "", "")
	require.NoError(t, err)
	_, err = order.AddItem(uuid.New(), "Camiseta", "M", decimal.NewFromInt(45000), 2)
	require.NoError(t, err)
	return order
}

func TestMailer_SendWelcome(t *testing.T) {
	sender := &recordingSender{}
	mailer := NewMailer(sender, "https://app.bayup.test", zap.NewNop())

	require.NoError(t, mailer.SendWelcome(context.Background(), "owner@example.com", "LUIS PÉREZ"))

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, "owner@example.com", msg.To)
	assert.Equal(t, "¡Bienvenido a Bayup!", msg.Subject)
	assert.Contains(t, msg.HTML, "Luis Pérez")
	assert.Contains(t, msg.HTML, "https://app.bayup.test/dashboard")
}

func TestMailer_SendStaffInvitation(t *testing.T) {
	sender := &recordingSender{}
	mailer := NewMailer(sender, "", zap.NewNop())

	require.NoError(t, mailer.SendStaffInvitation(context.Background(), "staff@example.com", "", "Tienda Luna", "Tmp-9x2"))

	msg := sender.sent[0]
	assert.Contains(t, msg.HTML, "Tienda Luna")
	assert.Contains(t, msg.HTML, "Tmp-9x2")
	assert.Contains(t, msg.HTML, "https://bayup.com.co/login")
}

func TestMailer_OrderEmails(t *testing.T) {
	sender := &recordingSender{}
	mailer := NewMailer(sender, "", zap.NewNop())
	order := newOrder(t, "ana@example.com")

	require.NoError(t, mailer.NotifyOrderCreated(context.Background(), order, "Tienda Luna"))
	require.NoError(t, mailer.SendPaymentReceived(context.Background(), order, ""))

	require.Len(t, sender.sent, 2)
	confirmation := sender.sent[0]
	assert.Contains(t, confirmation.Subject, order.ShortID())
	assert.Contains(t, confirmation.HTML, "Ana María")
	assert.Contains(t, confirmation.HTML, "90000.00")

	payment := sender.sent[1]
	assert.Equal(t, "ana@example.com", payment.To)
	assert.Contains(t, payment.HTML, "Bayup")
}

func TestMailer_SkipsOrdersWithoutEmail(t *testing.T) {
	sender := &recordingSender{}
	mailer := NewMailer(sender, "", zap.NewNop())
	order := newOrder(t, "")

	assert.NoError(t, mailer.NotifyOrderCreated(context.Background(), order, ""))
	assert.NoError(t, mailer.SendPaymentReceived(context.Background(), order, ""))
	assert.Empty(t, sender.sent)
}

func TestMailer_PropagatesSenderError(t *testing.T) {
	sender := &recordingSender{err: ErrDeliveryFailed}
	err := NewMailer(sender, "", zap.NewNop()).SendWelcome(context.Background(), "a@example.com", "Ana")
	assert.True(t, errors.Is(err, ErrDeliveryFailed))
}

func TestTemplatesParse(t *testing.T) {
	for _, name := range []string{TemplateWelcome, TemplateStaffInvitation, TemplateOrderConfirmation, TemplatePaymentReceived} {
		assert.Contains(t, templates, name)
	}
	_, err := render("missing", nil)
	assert.Error(t, err)
}
