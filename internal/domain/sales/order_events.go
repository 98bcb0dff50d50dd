package sales

import (
	"github.com/bayup/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant for Order
const AggregateTypeOrder = "Order"

// Order event types
const (
	EventTypeOrderCreated = "OrderCreated"
	EventTypeOrderPaid    = "OrderPaid"
)

// OrderCreatedEvent is published after an order transaction commits
type OrderCreatedEvent struct {
	shared.EventHeader
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	Summary       string          `json:"summary"`
	Source        string          `json:"source"`
}

// NewOrderCreatedEvent creates a new OrderCreatedEvent
func NewOrderCreatedEvent(o *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		EventHeader:   shared.NewEventHeader(EventTypeOrderCreated, AggregateTypeOrder, o.ID, o.TenantID),
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		TotalPrice:    o.TotalPrice,
		Summary:       o.Summary(),
		Source:        o.Source,
	}
}

// OrderPaidEvent is published when the payment gateway confirms a transaction
type OrderPaidEvent struct {
	shared.EventHeader
	CustomerEmail string          `json:"customer_email"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	TransactionID string          `json:"transaction_id"`
}

// NewOrderPaidEvent creates a new OrderPaidEvent
func NewOrderPaidEvent(o *Order, transactionID string) *OrderPaidEvent {
	return &OrderPaidEvent{
		EventHeader:   shared.NewEventHeader(EventTypeOrderPaid, AggregateTypeOrder, o.ID, o.TenantID),
		CustomerEmail: o.CustomerEmail,
		TotalPrice:    o.TotalPrice,
		TransactionID: transactionID,
	}
}
