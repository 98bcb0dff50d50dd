package event

import (
	"context"
	"fmt"

	"github.com/bayup/backend/internal/domain/catalog"
	"github.com/bayup/backend/internal/domain/identity"
	"github.com/bayup/backend/internal/domain/sales"
	"github.com/bayup/backend/internal/domain/shared"
)

// ActivityRecorder writes activity feed lines for events raised outside the
// order transaction
type ActivityRecorder struct {
	repo sales.ActivityLogRepository
}

// NewActivityRecorder creates a new ActivityRecorder
func NewActivityRecorder(repo sales.ActivityLogRepository) *ActivityRecorder {
	return &ActivityRecorder{repo: repo}
}

// EventTypes returns the events that produce activity lines
func (r *ActivityRecorder) EventTypes() []string {
	return []string{
		catalog.EventTypeProductCreated,
		identity.EventTypeStaffInvited,
		sales.EventTypeOrderPaid,
	}
}

// Handle records one activity line for the event
func (r *ActivityRecorder) Handle(ctx context.Context, event shared.DomainEvent) error {
	var action, detail string
	switch e := event.(type) {
	case *catalog.ProductCreatedEvent:
		action, detail = sales.ActionProductCreated, "Producto "+e.Name
	case *identity.StaffInvitedEvent:
		action, detail = sales.ActionStaffInvited, fmt.Sprintf("Invitación a %s (%s)", e.Email, e.Role)
	case *sales.OrderPaidEvent:
		action, detail = sales.ActionOrderPaid, fmt.Sprintf("Pago recibido por %s", e.TotalPrice.StringFixed(2))
		if e.TransactionID != "" {
			detail += " (" + e.TransactionID + ")"
		}
	default:
		return nil
	}

	target := event.AggregateID()
	line := sales.NewActivityLog(event.TenantID(), nil, action, detail, &target)
	if err := r.repo.Create(ctx, line); err != nil {
		return fmt.Errorf("record %s activity: %w", event.EventType(), err)
	}
	return nil
}

var _ shared.EventHandler = (*ActivityRecorder)(nil)
