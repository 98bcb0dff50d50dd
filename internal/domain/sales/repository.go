package sales

import (
	"context"

	"github.com/bayup/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TenantRevenue is the order total of one store
type TenantRevenue struct {
	TenantID uuid.UUID
	Orders   int64
	Revenue  decimal.Decimal
}

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// Create saves the order with its items
	Create(ctx context.Context, order *Order) error

	// FindByID finds an order with items within the tenant
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Order, error)

	// FindByIDAny finds an order by id regardless of tenant. Used by the
	// payment webhook, which has no tenant context.
	FindByIDAny(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByPaymentReference finds an order by its gateway reference
	FindByPaymentReference(ctx context.Context, reference string) (*Order, error)

	// FindAll lists orders of a tenant, newest first. Supported filters:
	// status, source
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Order, int64, error)

	// UpdateStatus overwrites the status of an order
	UpdateStatus(ctx context.Context, id uuid.UUID, status OrderStatus) error

	// SetPaymentReference stores the gateway reference of an order
	SetPaymentReference(ctx context.Context, tenantID, id uuid.UUID, reference string) error

	// StatsForTenant returns order count and revenue of a tenant
	StatsForTenant(ctx context.Context, tenantID uuid.UUID) (TenantRevenue, error)

	// RevenueByTenant aggregates order counts and totals for every store
	RevenueByTenant(ctx context.Context) ([]TenantRevenue, error)
}

// ShipmentRepository defines the interface for shipment persistence
type ShipmentRepository interface {
	Create(ctx context.Context, s *Shipment) error
	Update(ctx context.Context, s *Shipment) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Shipment, error)
	FindByOrder(ctx context.Context, tenantID, orderID uuid.UUID) (*Shipment, error)
	// FindAll supports the status filter
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Shipment, int64, error)
}

// CustomerRepository defines the interface for CRM customer persistence
type CustomerRepository interface {
	Create(ctx context.Context, c *Customer) error
	Update(ctx context.Context, c *Customer) error
	FindByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*Customer, error)
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Customer, error)
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Customer, int64, error)
}

// ActivityLogRepository defines the interface for the activity feed
type ActivityLogRepository interface {
	Create(ctx context.Context, log *ActivityLog) error
	FindRecent(ctx context.Context, tenantID uuid.UUID, limit int) ([]ActivityLog, error)
}
