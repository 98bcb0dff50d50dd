package sales

import (
	"github.com/bayup/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Activity actions recorded by the platform
const (
	ActionOrderCreated    = "order_created"
	ActionOrderPaid       = "order_paid"
	ActionShipmentUpdated = "shipment_updated"
	ActionProductCreated  = "product_created"
	ActionStaffInvited    = "staff_invited"
)

// ActivityLog is an audit line in a store's activity feed
type ActivityLog struct {
	shared.TenantEntity
	UserID   *uuid.UUID `gorm:"type:uuid;index"`
	Action   string     `gorm:"type:varchar(50);not null;index"`
	Detail   string     `gorm:"type:text"`
	TargetID *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (ActivityLog) TableName() string {
	return "activity_logs"
}

// NewActivityLog creates an activity line; actor and target are optional
func NewActivityLog(tenantID uuid.UUID, actor *uuid.UUID, action, detail string, target *uuid.UUID) *ActivityLog {
	return &ActivityLog{
		TenantEntity: shared.NewTenantEntity(tenantID),
		UserID:       actor,
		Action:       action,
		Detail:       detail,
		TargetID:     target,
	}
}
