// ABOUTME: Typed event bus bridging background goroutines to the TUI
// ABOUTME: Subscribe returns an unsubscribe func; Publish delivers synchronously

package eventbus

import "sync"

// Handler is a callback function for events.
type Handler[T any] func(T)

// subscription pairs a handler with its registration id.
type subscription[T any] struct {
	id      int
	handler Handler[T]
}

// Bus delivers events of one type to registered handlers. The config watcher
// publishes reload events on a Bus; the run loop subscribes and forwards them
// into the Bubble Tea program.
type Bus[T any] struct {
	mu     sync.RWMutex
	subs   []subscription[T]
	nextID int
}

// New creates an empty event bus.
func New[T any]() *Bus[T] {
	return &Bus[T]{}
}

// Subscribe registers a handler and returns an unsubscribe function.
// The unsubscribe function is idempotent.
func (b *Bus[T]) Subscribe(handler Handler[T]) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs = append(b.subs, subscription[T]{id: id, handler: handler})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish sends an event to all registered handlers in subscription order.
// Handlers run synchronously on the caller's goroutine; the lock is not held
// during callbacks so handlers may subscribe or unsubscribe.
func (b *Bus[T]) Publish(event T) {
	b.mu.RLock()
	snapshot := make([]Handler[T], len(b.subs))
	for i, s := range b.subs {
		snapshot[i] = s.handler
	}
	b.mu.RUnlock()

	for _, h := range snapshot {
		h(event)
	}
}

// Count returns the number of registered handlers.
func (b *Bus[T]) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
