package event

import (
	"context"
	"errors"
	"sync"
)

// Handler consumes a payload published on a topic. The payload type is
// fixed per topic (see the Topic constants).
type Handler func(ctx context.Context, payload any) error

// Bus is the synchronous in-process pub/sub that chains pipeline stages.
// Handlers run in registration order on the emitter's goroutine, so a
// stage's emission completes only once every downstream stage has run.
// Handler errors are joined and returned to the emitter; the bus itself
// never retries.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Topic][]Handler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[Topic][]Handler)}
}

// Subscribe registers a handler for a topic.
func (b *Bus) Subscribe(topic Topic, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[topic] = append(b.handlers[topic], h)
}

// Emit delivers the payload to every handler subscribed to the topic.
// A topic with no subscribers is not an error.
func (b *Bus) Emit(ctx context.Context, topic Topic, payload any) error {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[topic]))
	copy(handlers, b.handlers[topic])
	b.mu.RUnlock()

	var errs []error
	for _, h := range handlers {
		if err := h(ctx, payload); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
