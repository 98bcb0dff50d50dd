package workflow

import (
	"fmt"
	"time"

	"github.com/bayup/backend/internal/domain/sales"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

// Kind names the email a notification workflow sends
type Kind string

// Notification kinds
const (
	KindWelcome           Kind = "welcome"
	KindStaffInvitation   Kind = "staff_invitation"
	KindOrderConfirmation Kind = "order_confirmation"
	KindPaymentReceived   Kind = "payment_received"
)

// ErrTypeInvalidNotification marks notifications that must not be retried
const ErrTypeInvalidNotification = "InvalidNotification"

// Notification is the input of NotificationWorkflow
type Notification struct {
	Kind         Kind         `json:"kind"`
	Email        string       `json:"email,omitempty"`
	Name         string       `json:"name,omitempty"`
	StoreName    string       `json:"store_name,omitempty"`
	TempPassword string       `json:"temp_password,omitempty"`
	Order        *sales.Order `json:"order,omitempty"`
}

// key identifies the subject of the notification in its workflow id
func (n Notification) key() string {
	if n.Order != nil {
		return n.Order.ID.String()
	}
	return n.Email
}

// retryPolicy governs the email activity; Resend outages are retried with
// backoff and malformed input is not
var retryPolicy = &temporal.RetryPolicy{
	InitialInterval:        2 * time.Second,
	BackoffCoefficient:     2.0,
	MaximumInterval:        time.Minute,
	MaximumAttempts:        6,
	NonRetryableErrorTypes: []string{ErrTypeInvalidNotification},
}

// NotificationWorkflow sends one platform email through an activity
func NotificationWorkflow(ctx workflow.Context, n Notification) error {
	logger := workflow.GetLogger(ctx)
	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy:         retryPolicy,
	})

	var a *Activities
	var future workflow.Future
	switch n.Kind {
	case KindWelcome:
		future = workflow.ExecuteActivity(ctx, a.SendWelcome, n)
	case KindStaffInvitation:
		future = workflow.ExecuteActivity(ctx, a.SendStaffInvitation, n)
	case KindOrderConfirmation:
		future = workflow.ExecuteActivity(ctx, a.SendOrderConfirmation, n)
	case KindPaymentReceived:
		future = workflow.ExecuteActivity(ctx, a.SendPaymentReceived, n)
	default:
		return temporal.NewNonRetryableApplicationError(
			fmt.Sprintf("unknown notification kind %q", n.Kind), ErrTypeInvalidNotification, nil)
	}

	if err := future.Get(ctx, nil); err != nil {
		logger.Error("Notification failed", "kind", n.Kind, "error", err)
		return err
	}
	logger.Info("Notification sent", "kind", n.Kind)
	return nil
}
