package workflow

import (
	"context"

	"github.com/bayup/backend/internal/domain/sales"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
)

// Mailer sends the platform emails
type Mailer interface {
	SendWelcome(ctx context.Context, email, name string) error
	SendStaffInvitation(ctx context.Context, email, name, storeName, tempPassword string) error
	NotifyOrderCreated(ctx context.Context, order *sales.Order, storeName string) error
	SendPaymentReceived(ctx context.Context, order *sales.Order, storeName string) error
}

// Activities wraps a Mailer as Temporal activities
type Activities struct {
	mailer Mailer
}

// NewActivities creates a new Activities
func NewActivities(mailer Mailer) *Activities {
	return &Activities{mailer: mailer}
}

// SendWelcome sends the welcome email
func (a *Activities) SendWelcome(ctx context.Context, n Notification) error {
	if n.Email == "" {
		return invalid("welcome email without recipient")
	}
	activity.GetLogger(ctx).Info("Sending welcome email", "email", n.Email)
	return a.mailer.SendWelcome(ctx, n.Email, n.Name)
}

// SendStaffInvitation sends the staff invitation email
func (a *Activities) SendStaffInvitation(ctx context.Context, n Notification) error {
	if n.Email == "" {
		return invalid("invitation without recipient")
	}
	activity.GetLogger(ctx).Info("Sending staff invitation", "email", n.Email)
	return a.mailer.SendStaffInvitation(ctx, n.Email, n.Name, n.StoreName, n.TempPassword)
}

// SendOrderConfirmation sends the buyer order confirmation
func (a *Activities) SendOrderConfirmation(ctx context.Context, n Notification) error {
	if n.Order == nil {
		return invalid("order confirmation without order")
	}
	activity.GetLogger(ctx).Info("Sending order confirmation", "order_id", n.Order.ID.String())
	return a.mailer.NotifyOrderCreated(ctx, n.Order, n.StoreName)
}

// SendPaymentReceived sends the payment confirmation
func (a *Activities) SendPaymentReceived(ctx context.Context, n Notification) error {
	if n.Order == nil {
		return invalid("payment email without order")
	}
	activity.GetLogger(ctx).Info("Sending payment received", "order_id", n.Order.ID.String())
	return a.mailer.SendPaymentReceived(ctx, n.Order, n.StoreName)
}

func invalid(msg string) error {
	return temporal.NewNonRetryableApplicationError(msg, ErrTypeInvalidNotification, nil)
}
