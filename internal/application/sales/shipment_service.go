package sales

import (
	"context"
	"errors"

	"github.com/bayup/backend/internal/domain/sales"
	"github.com/bayup/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ShipmentService handles shipments, the CRM customer list and the
// activity feed of a store
type ShipmentService struct {
	shipmentRepo sales.ShipmentRepository
	orderRepo    sales.OrderRepository
	customerRepo sales.CustomerRepository
	activityRepo sales.ActivityLogRepository
}

// NewShipmentService creates a new ShipmentService
func NewShipmentService(
	shipmentRepo sales.ShipmentRepository,
	orderRepo sales.OrderRepository,
	customerRepo sales.CustomerRepository,
	activityRepo sales.ActivityLogRepository,
) *ShipmentService {
	return &ShipmentService{
		shipmentRepo: shipmentRepo,
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		activityRepo: activityRepo,
	}
}

// ListShipments lists the shipments of a store
func (s *ShipmentService) ListShipments(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[ShipmentResponse], error) {
	shipments, total, err := s.shipmentRepo.FindAll(ctx, tenantID, filter)
	if err != nil {
		return shared.Paginated[ShipmentResponse]{}, err
	}
	items := make([]ShipmentResponse, len(shipments))
	for i := range shipments {
		items[i] = ToShipmentResponse(&shipments[i])
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// UpdateShipmentStatus sets status, carrier and tracking number
func (s *ShipmentService) UpdateShipmentStatus(ctx context.Context, tenantID, id uuid.UUID, actorID *uuid.UUID, req UpdateShipmentStatusRequest) (*ShipmentResponse, error) {
	shipment, err := s.shipmentRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := shipment.UpdateStatus(req.Status, req.Carrier, req.TrackingNumber); err != nil {
		return nil, err
	}
	if err := s.shipmentRepo.Update(ctx, shipment); err != nil {
		return nil, err
	}

	log := sales.NewActivityLog(tenantID, actorID, sales.ActionShipmentUpdated, "Envío "+shipment.Status, &shipment.OrderID)
	if err := s.activityRepo.Create(ctx, log); err != nil {
		return nil, err
	}

	resp := ToShipmentResponse(shipment)
	return &resp, nil
}

// CreateShipmentForOrder opens a shipment for an order that has none
func (s *ShipmentService) CreateShipmentForOrder(ctx context.Context, tenantID, orderID uuid.UUID, address string) (*ShipmentResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	existing, err := s.shipmentRepo.FindByOrder(ctx, tenantID, orderID)
	if err == nil {
		resp := ToShipmentResponse(existing)
		return &resp, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	shipment := sales.NewShipment(order, address)
	if err := s.shipmentRepo.Create(ctx, shipment); err != nil {
		return nil, err
	}
	resp := ToShipmentResponse(shipment)
	return &resp, nil
}

// ListCustomers lists the CRM customers of a store
func (s *ShipmentService) ListCustomers(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[CustomerResponse], error) {
	customers, total, err := s.customerRepo.FindAll(ctx, tenantID, filter)
	if err != nil {
		return shared.Paginated[CustomerResponse]{}, err
	}
	items := make([]CustomerResponse, len(customers))
	for i := range customers {
		items[i] = ToCustomerResponse(&customers[i])
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// ListActivity returns the most recent activity lines of a store
func (s *ShipmentService) ListActivity(ctx context.Context, tenantID uuid.UUID, limit int) ([]ActivityLogResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	logs, err := s.activityRepo.FindRecent(ctx, tenantID, limit)
	if err != nil {
		return nil, err
	}
	resp := make([]ActivityLogResponse, len(logs))
	for i, l := range logs {
		resp[i] = ActivityLogResponse{
			ID:        l.ID,
			UserID:    l.UserID,
			Action:    l.Action,
			Detail:    l.Detail,
			TargetID:  l.TargetID,
			CreatedAt: l.CreatedAt,
		}
	}
	return resp, nil
}
