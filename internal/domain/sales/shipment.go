package sales

import (
	"strings"

	"github.com/bayup/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Shipment statuses. Status is stored as a free string so stores can use
// their own carrier states; these are the ones the platform sets itself.
const (
	ShipmentPendingPacking = "pending_packing"
	ShipmentPacked         = "packed"
	ShipmentShipped        = "shipped"
	ShipmentDelivered      = "delivered"
	ShipmentCancelled      = "cancelled"
)

// Shipment tracks the physical delivery of an order
type Shipment struct {
	shared.TenantEntity
	OrderID            uuid.UUID `gorm:"type:uuid;not null;index"`
	Status             string    `gorm:"type:varchar(50);not null;default:'pending_packing'"`
	RecipientName      string    `gorm:"type:varchar(200)"`
	DestinationAddress string    `gorm:"type:text"`
	Carrier            string    `gorm:"type:varchar(100)"`
	TrackingNumber     string    `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (Shipment) TableName() string {
	return "shipments"
}

// NewShipment creates a shipment for an order awaiting packing
func NewShipment(order *Order, address string) *Shipment {
	if address == "" {
		address = order.CustomerCity
	}
	return &Shipment{
		TenantEntity:       shared.NewTenantEntity(order.TenantID),
		OrderID:            order.ID,
		Status:             ShipmentPendingPacking,
		RecipientName:      order.CustomerName,
		DestinationAddress: address,
	}
}

// UpdateStatus sets the status and, when given, carrier and tracking number
func (s *Shipment) UpdateStatus(status, carrier, trackingNumber string) error {
	status = strings.TrimSpace(status)
	if status == "" {
		return shared.NewDomainError("INVALID_STATUS", "Shipment status cannot be empty")
	}
	s.Status = status
	if carrier != "" {
		s.Carrier = carrier
	}
	if trackingNumber != "" {
		s.TrackingNumber = trackingNumber
	}
	s.Touch()
	return nil
}
