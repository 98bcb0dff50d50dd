package workflow

import (
	"context"

	"github.com/bayup/backend/internal/application/identity"
	"github.com/bayup/backend/internal/application/payment"
	appsales "github.com/bayup/backend/internal/application/sales"
	"github.com/bayup/backend/internal/domain/sales"
	"go.temporal.io/sdk/client"
	"go.uber.org/zap"
)

// Starter starts workflow executions; client.Client satisfies it
type Starter interface {
	ExecuteWorkflow(ctx context.Context, options client.StartWorkflowOptions, workflow interface{}, args ...interface{}) (client.WorkflowRun, error)
}

// Notifier hands platform emails to Temporal. Without a starter, or when a
// start fails, the email is sent inline through the mailer.
type Notifier struct {
	starter   Starter
	taskQueue string
	mailer    Mailer
	logger    *zap.Logger
}

// NewNotifier creates a new Notifier. starter may be nil.
func NewNotifier(starter Starter, taskQueue string, mailer Mailer, logger *zap.Logger) *Notifier {
	return &Notifier{starter: starter, taskQueue: taskQueue, mailer: mailer, logger: logger}
}

// SendWelcome queues the welcome email
func (n *Notifier) SendWelcome(ctx context.Context, email, name string) error {
	return n.dispatch(ctx, Notification{Kind: KindWelcome, Email: email, Name: name}, func() error {
		return n.mailer.SendWelcome(ctx, email, name)
	})
}

// SendStaffInvitation queues the staff invitation email
func (n *Notifier) SendStaffInvitation(ctx context.Context, email, name, storeName, tempPassword string) error {
	msg := Notification{Kind: KindStaffInvitation, Email: email, Name: name, StoreName: storeName, TempPassword: tempPassword}
	return n.dispatch(ctx, msg, func() error {
		return n.mailer.SendStaffInvitation(ctx, email, name, storeName, tempPassword)
	})
}

// NotifyOrderCreated queues the order confirmation email
func (n *Notifier) NotifyOrderCreated(ctx context.Context, order *sales.Order, storeName string) error {
	msg := Notification{Kind: KindOrderConfirmation, Order: order, StoreName: storeName}
	return n.dispatch(ctx, msg, func() error {
		return n.mailer.NotifyOrderCreated(ctx, order, storeName)
	})
}

// SendPaymentReceived queues the payment confirmation email
func (n *Notifier) SendPaymentReceived(ctx context.Context, order *sales.Order, storeName string) error {
	msg := Notification{Kind: KindPaymentReceived, Order: order, StoreName: storeName}
	return n.dispatch(ctx, msg, func() error {
		return n.mailer.SendPaymentReceived(ctx, order, storeName)
	})
}

func (n *Notifier) dispatch(ctx context.Context, msg Notification, inline func() error) error {
	if n.starter == nil {
		return inline()
	}
	run, err := n.starter.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:        "notification-" + string(msg.Kind) + "-" + msg.key(),
		TaskQueue: n.taskQueue,
	}, NotificationWorkflow, msg)
	if err != nil {
		n.logger.Warn("Failed to start notification workflow, sending inline",
			zap.String("kind", string(msg.Kind)),
			zap.Error(err))
		return inline()
	}
	n.logger.Debug("Notification workflow started",
		zap.String("kind", string(msg.Kind)),
		zap.String("workflow_id", run.GetID()),
		zap.String("run_id", run.GetRunID()))
	return nil
}

var (
	_ appsales.OrderNotifier   = (*Notifier)(nil)
	_ identity.AccountNotifier = (*Notifier)(nil)
	_ payment.PaymentNotifier  = (*Notifier)(nil)
)
