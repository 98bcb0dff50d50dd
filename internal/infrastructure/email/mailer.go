package email

import (
	"context"

	"github.com/bayup/backend/internal/domain/sales"
	"go.uber.org/zap"
)

// Sender delivers a rendered message
type Sender interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// Mailer renders the platform emails and hands them to a Sender. It serves
// the account, order and payment notification ports.
type Mailer struct {
	sender      Sender
	frontendURL string
	logger      *zap.Logger
}

// NewMailer creates a new Mailer; frontendURL is the base of dashboard links
func NewMailer(sender Sender, frontendURL string, logger *zap.Logger) *Mailer {
	if frontendURL == "" {
		frontendURL = "https://bayup.com.co"
	}
	return &Mailer{sender: sender, frontendURL: frontendURL, logger: logger}
}

// SendWelcome greets a new store owner
func (m *Mailer) SendWelcome(ctx context.Context, email, name string) error {
	return m.deliver(ctx, email, "¡Bienvenido a Bayup!", TemplateWelcome, struct {
		Name   string
		Action action
	}{
		Name:   displayName(name, "emprendedor"),
		Action: action{URL: m.frontendURL + "/dashboard", Label: "Entrar a mi Dashboard"},
	})
}

// SendStaffInvitation sends a staff member their temporary credentials
func (m *Mailer) SendStaffInvitation(ctx context.Context, email, name, storeName, tempPassword string) error {
	return m.deliver(ctx, email, "Invitación a colaborar en Bayup", TemplateStaffInvitation, struct {
		Name         string
		Email        string
		StoreName    string
		TempPassword string
		Action       action
	}{
		Name:         displayName(name, email),
		Email:        email,
		StoreName:    storeOrDefault(storeName),
		TempPassword: tempPassword,
		Action:       action{URL: m.frontendURL + "/login", Label: "Aceptar Invitación y Entrar"},
	})
}

// NotifyOrderCreated sends the buyer their order confirmation
func (m *Mailer) NotifyOrderCreated(ctx context.Context, order *sales.Order, storeName string) error {
	if order.CustomerEmail == "" {
		return nil
	}
	lines := make([]lineView, 0, len(order.Items))
	for i := range order.Items {
		item := &order.Items[i]
		lines = append(lines, lineView{
			Name:     item.DisplayName(),
			Quantity: item.Quantity,
			Subtotal: item.Subtotal().StringFixed(2),
		})
	}
	return m.deliver(ctx, order.CustomerEmail, "Confirmación de tu pedido #"+order.ShortID(), TemplateOrderConfirmation, struct {
		Name      string
		StoreName string
		OrderRef  string
		Items     []lineView
		Total     string
	}{
		Name:      displayName(order.CustomerName, "cliente"),
		StoreName: storeOrDefault(storeName),
		OrderRef:  order.ShortID(),
		Items:     lines,
		Total:     order.TotalPrice.StringFixed(2),
	})
}

// SendPaymentReceived confirms a gateway payment to the buyer
func (m *Mailer) SendPaymentReceived(ctx context.Context, order *sales.Order, storeName string) error {
	if order.CustomerEmail == "" {
		return nil
	}
	return m.deliver(ctx, order.CustomerEmail, "Pago recibido - pedido #"+order.ShortID(), TemplatePaymentReceived, struct {
		Name      string
		StoreName string
		OrderRef  string
		Total     string
	}{
		Name:      displayName(order.CustomerName, "cliente"),
		StoreName: storeOrDefault(storeName),
		OrderRef:  order.ShortID(),
		Total:     order.TotalPrice.StringFixed(2),
	})
}

func (m *Mailer) deliver(ctx context.Context, to, subject, template string, data interface{}) error {
	html, err := render(template, data)
	if err != nil {
		return err
	}
	_, err = m.sender.Send(ctx, Message{To: to, Subject: subject, HTML: html})
	return err
}

func storeOrDefault(name string) string {
	if name == "" {
		return "Bayup"
	}
	return name
}
