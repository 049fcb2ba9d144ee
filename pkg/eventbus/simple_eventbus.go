package eventbus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/kingstore/api/pkg/domain"
)

// Handler consumes a single published event.
type Handler func(context.Context, domain.Event)

// SimpleEventBus is a synchronous in-process bus. Handlers run on the
// publisher's goroutine; the handler slice is copied before dispatch so a
// handler may itself subscribe without deadlocking the bus.
type SimpleEventBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

func NewSimpleEventBus() *SimpleEventBus {
	return &SimpleEventBus{handlers: make(map[string][]Handler)}
}

func (b *SimpleEventBus) Publish(ctx context.Context, event domain.Event) error {
	slog.Debug("EventBus.Publish", "event_type", event.Type(), "concrete_type", fmt.Sprintf("%T", event))
	b.mu.RLock()
	subscribed := make([]Handler, len(b.handlers[event.Type()]))
	copy(subscribed, b.handlers[event.Type()])
	b.mu.RUnlock()
	for _, handler := range subscribed {
		handler(ctx, event)
	}
	return nil
}

func (b *SimpleEventBus) Subscribe(eventType string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
