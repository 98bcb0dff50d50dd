package catalog

import (
	"github.com/bayup/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant for Product
const AggregateTypeProduct = "Product"

// Product event types
const (
	EventTypeProductCreated = "ProductCreated"
)

// ProductCreatedEvent is published when a product is created
type ProductCreatedEvent struct {
	shared.EventHeader
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(p *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		EventHeader: shared.NewEventHeader(EventTypeProductCreated, AggregateTypeProduct, p.ID, p.TenantID),
		Name:        p.Name,
		Price:       p.Price,
	}
}
