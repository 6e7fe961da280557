// Package messaging implements the in-memory event bus that connects
// the command handlers to side-effect subscribers (autosave). Dispatch
// is synchronous: the program is single-threaded by design and a
// mutation is only reported complete once its subscribers ran.
package messaging

import (
	"context"
	"errors"
	"sync"

	"github.com/engr-rabbi/Student-Grade-Management-System/internal/domain/shared"
	"github.com/engr-rabbi/Student-Grade-Management-System/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// IN-MEMORY EVENT BUS
// ══════════════════════════════════════════════════════════════════════════════

// InMemoryEventBus is a synchronous implementation of shared.EventPublisher.
type InMemoryEventBus struct {
	mu       sync.RWMutex
	handlers map[shared.EventType][]shared.EventHandler
	logger   *logger.Logger
}

// NewInMemoryEventBus creates a new in-memory event bus.
func NewInMemoryEventBus(log *logger.Logger) *InMemoryEventBus {
	if log == nil {
		log = logger.Default()
	}
	return &InMemoryEventBus{
		handlers: make(map[shared.EventType][]shared.EventHandler),
		logger:   log,
	}
}

// Subscribe registers a handler for every event type it declares.
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, et := range handler.EventTypes() {
		b.handlers[et] = append(b.handlers[et], handler)
	}
}

// Publish delivers the event to every subscribed handler in subscription
// order. Handler errors do not stop delivery to the remaining handlers;
// all errors are joined into the returned error.
func (b *InMemoryEventBus) Publish(ctx context.Context, event shared.Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.EventType()]
	b.mu.RUnlock()

	var errs []error
	for _, h := range handlers {
		if err := h.Handle(ctx, event); err != nil {
			b.logger.Error("event handler failed",
				logger.String("event_type", string(event.EventType())),
				logger.String("event_id", event.EventID()),
				logger.String("aggregate_id", event.AggregateID()),
				logger.Err(err))
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
