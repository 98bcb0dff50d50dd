package shared

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is something that happened to an aggregate inside one store
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	AggregateID() uuid.UUID
	AggregateType() string
	TenantID() uuid.UUID
	OccurredAt() time.Time
}

// EventHeader is the envelope every Bayup event embeds.
// Store is the tenant id, i.e. the id of the store-owning user.
type EventHeader struct {
	ID        uuid.UUID `json:"id"`
	Kind      string    `json:"type"`
	Subject   uuid.UUID `json:"aggregate_id"`
	Aggregate string    `json:"aggregate_type"`
	Store     uuid.UUID `json:"tenant_id"`
	At        time.Time `json:"occurred_at"`
}

// NewEventHeader stamps a fresh event of kind about the given aggregate
func NewEventHeader(kind, aggregate string, subject, store uuid.UUID) EventHeader {
	return EventHeader{
		ID:        uuid.New(),
		Kind:      kind,
		Subject:   subject,
		Aggregate: aggregate,
		Store:     store,
		At:        time.Now().UTC(),
	}
}

func (h *EventHeader) EventID() uuid.UUID     { return h.ID }
func (h *EventHeader) EventType() string      { return h.Kind }
func (h *EventHeader) AggregateID() uuid.UUID { return h.Subject }
func (h *EventHeader) AggregateType() string  { return h.Aggregate }
func (h *EventHeader) TenantID() uuid.UUID    { return h.Store }
func (h *EventHeader) OccurredAt() time.Time  { return h.At }
