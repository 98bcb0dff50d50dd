package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/bayup/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEvent struct {
	shared.EventHeader
}

func newTestEvent(eventType string) *testEvent {
	return &testEvent{EventHeader: shared.NewEventHeader(eventType, "Test", uuid.New(), uuid.New())}
}

type testHandler struct {
	mu         sync.Mutex
	eventTypes []string
	handled    []shared.DomainEvent
	err        error
	panics     bool
}

func newTestHandler(eventTypes ...string) *testHandler {
	return &testHandler{eventTypes: eventTypes}
}

func (h *testHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	h.mu.Lock()
	h.handled = append(h.handled, event)
	h.mu.Unlock()
	if h.panics {
		panic("boom")
	}
	return h.err
}

func (h *testHandler) EventTypes() []string { return h.eventTypes }

func (h *testHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.handled)
}

func TestInMemoryEventBus_Publish(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := newTestHandler("OrderCreated")
	bus.Subscribe(handler)

	event := newTestEvent("OrderCreated")
	require.NoError(t, bus.Publish(context.Background(), event, newTestEvent("OrderCreated")))

	assert.Equal(t, 2, handler.count())
	assert.Same(t, event, handler.handled[0])
}

func TestInMemoryEventBus_ExplicitTypesOverrideDeclared(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := newTestHandler("OrderCreated")
	bus.Subscribe(handler, "OrderPaid")

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("OrderCreated"), newTestEvent("OrderPaid")))
	assert.Equal(t, 1, handler.count())
}

func TestInMemoryEventBus_Wildcard(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	wildcard := newTestHandler()
	typed := newTestHandler("OrderPaid")
	bus.Subscribe(wildcard)
	bus.Subscribe(typed)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("Anything"), newTestEvent("OrderPaid")))
	assert.Equal(t, 2, wildcard.count())
	assert.Equal(t, 1, typed.count())
}

func TestInMemoryEventBus_FailuresDoNotStopDelivery(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	failing := newTestHandler("OrderPaid")
	failing.err = errors.New("handler error")
	panicking := newTestHandler("OrderPaid")
	panicking.panics = true
	healthy := newTestHandler("OrderPaid")
	bus.Subscribe(failing)
	bus.Subscribe(panicking)
	bus.Subscribe(healthy)

	err := bus.Publish(context.Background(), newTestEvent("OrderPaid"))

	require.NoError(t, err)
	assert.Equal(t, 1, failing.count())
	assert.Equal(t, 1, panicking.count())
	assert.Equal(t, 1, healthy.count())
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := newTestHandler("OrderPaid", "OrderCreated")
	bus.Subscribe(handler)

	_ = bus.Publish(context.Background(), newTestEvent("OrderPaid"))
	bus.Unsubscribe(handler)
	_ = bus.Publish(context.Background(), newTestEvent("OrderPaid"), newTestEvent("OrderCreated"))

	assert.Equal(t, 1, handler.count())
	assert.Empty(t, bus.byType)
}
