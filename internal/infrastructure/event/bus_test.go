package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"go.uber.org/zap/zapcore"
)

type testEvent struct {
	shared.BaseDomainEvent
}

func newTestEvent(eventType string) *testEvent {
	return &testEvent{BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "TestAggregate", uuid.New())}
}

type testHandler struct {
	mu         sync.Mutex
	eventTypes []string
	handled    []shared.DomainEvent
	err        error
	panicWith  any
}

func newTestHandler(eventTypes ...string) *testHandler {
	return &testHandler{eventTypes: eventTypes}
}

func (h *testHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	h.mu.Lock()
	h.handled = append(h.handled, event)
	h.mu.Unlock()
	if h.panicWith != nil {
		panic(h.panicWith)
	}
	return h.err
}

func (h *testHandler) EventTypes() []string {
	return h.eventTypes
}

func (h *testHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.handled)
}

func TestInMemoryEventBus_Publish(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := newTestHandler("OrderPlaced")
	bus.Subscribe(handler)

	event := newTestEvent("OrderPlaced")
	require.NoError(t, bus.Publish(context.Background(), event, newTestEvent("OrderPlaced")))
	assert.Equal(t, 2, handler.count())
	assert.Equal(t, event, handler.handled[0])
}

func TestInMemoryEventBus_Routing(t *testing.T) {
	bus := NewInMemoryEventBus(nil)
	placed := newTestHandler("OrderPlaced")
	other := newTestHandler("Other")
	everything := newTestHandler()
	bus.Subscribe(placed)
	bus.Subscribe(other)
	bus.Subscribe(everything)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("OrderPlaced")))
	assert.Equal(t, 1, placed.count())
	assert.Equal(t, 0, other.count())
	assert.Equal(t, 1, everything.count())
}

func TestInMemoryEventBus_ExplicitTypesOverrideHandlerTypes(t *testing.T) {
	bus := NewInMemoryEventBus(nil)
	handler := newTestHandler("OrderPlaced")
	bus.Subscribe(handler, "Custom")

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("OrderPlaced")))
	require.NoError(t, bus.Publish(context.Background(), newTestEvent("Custom")))
	assert.Equal(t, 1, handler.count())
}

func TestInMemoryEventBus_FailuresDoNotStopOtherHandlers(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	bus := NewInMemoryEventBus(zap.New(core))

	failing := newTestHandler("OrderPlaced")
	failing.err = errors.New("handler error")
	panicking := newTestHandler("OrderPlaced")
	panicking.panicWith = "boom"
	healthy := newTestHandler("OrderPlaced")
	bus.Subscribe(failing)
	bus.Subscribe(panicking)
	bus.Subscribe(healthy)

	err := bus.Publish(context.Background(), newTestEvent("OrderPlaced"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "handler error")
	assert.Contains(t, err.Error(), "panicked")
	assert.Equal(t, 1, healthy.count())
	assert.Equal(t, 2, logs.FilterMessage("handler failed to process event").Len())
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(nil)
	handler := newTestHandler("OrderPlaced")
	bus.Subscribe(handler)

	_ = bus.Publish(context.Background(), newTestEvent("OrderPlaced"))
	bus.Unsubscribe(handler)
	_ = bus.Publish(context.Background(), newTestEvent("OrderPlaced"))

	assert.Equal(t, 1, handler.count())
}
