// Package events implements the in-process event bus modules use to
// communicate without importing each other.
package events

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"asvab_prep_backend/platform/logger"
)

// handlerTimeout bounds how long an async handler may run after the
// originating request has already completed.
const handlerTimeout = 30 * time.Second

// Bus publishes domain events to their subscribers.
type Bus interface {
	// Publish delivers the event to every handler registered for its name.
	// Delivery is asynchronous; Publish never fails.
	Publish(ctx context.Context, event Event)

	// PublishSync delivers the event inline and returns the first handler
	// error.
	PublishSync(ctx context.Context, event Event) error

	// Subscribe registers a handler under an Event.EventName() value.
	Subscribe(eventName string, handler Handler)
}

// InMemoryBus is an in-process implementation of Bus.
// Publish runs each handler in its own goroutine; handler errors and panics
// are logged and never propagate to the publisher.
type InMemoryBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	log      *logger.Logger
	wg       sync.WaitGroup
}

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return &InMemoryBus{
		handlers: make(map[string][]Handler),
		log:      log,
	}
}

// Subscribe registers a handler for a specific event type.
func (b *InMemoryBus) Subscribe(eventName string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventName] = append(b.handlers[eventName], handler)
}

// Publish delivers the event to all registered handlers asynchronously.
// Handlers run detached from the caller's context cancellation so they
// survive the originating request, bounded by handlerTimeout.
func (b *InMemoryBus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.EventName()]...)
	b.mu.RUnlock()

	for _, handler := range handlers {
		b.wg.Add(1)
		go func(h Handler) {
			defer b.wg.Done()
			defer func() {
				if r := recover(); r != nil {
					b.log.Error("event_handler_panic",
						slog.String("event", event.EventName()),
						slog.String("panic", fmt.Sprintf("%v", r)),
					)
				}
			}()

			handlerCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), handlerTimeout)
			defer cancel()

			if err := h.Handle(handlerCtx, event); err != nil {
				b.log.Error("event_handler_failed",
					slog.String("event", event.EventName()),
					slog.String("error", err.Error()),
				)
			}
		}(handler)
	}
}

// PublishSync delivers the event to all handlers sequentially and returns
// the first handler error encountered.
func (b *InMemoryBus) PublishSync(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.EventName()]...)
	b.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler.Handle(ctx, event); err != nil {
			return fmt.Errorf("handle %s: %w", event.EventName(), err)
		}
	}
	return nil
}

// Wait blocks until all in-flight asynchronous handlers have completed.
// Called during graceful shutdown and from tests.
func (b *InMemoryBus) Wait() {
	b.wg.Wait()
}
