// Package watch implements a small in-process broadcast hub.
// Subscribers always receive a full snapshot, never a diff, so a
// callback can never observe a partially-applied mutation.
package watch

import "sync"

// Hub fans a snapshot value out to registered subscribers.
// The zero value is not usable; create hubs with NewHub.
type Hub[T any] struct {
	mu   sync.Mutex
	next uint64
	subs map[uint64]func(T)
}

// NewHub creates an empty hub
func NewHub[T any]() *Hub[T] {
	return &Hub[T]{subs: make(map[uint64]func(T))}
}

// Subscribe registers fn and returns an unsubscribe function.
// The unsubscribe function is idempotent: calling it more than once,
// or after the hub is otherwise emptied, is a no-op.
func (h *Hub[T]) Subscribe(fn func(T)) func() {
	h.mu.Lock()
	id := h.next
	h.next++
	h.subs[id] = fn
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}
}

// Publish delivers snapshot to every current subscriber.
// Callbacks run synchronously on the caller's goroutine, outside the
// hub lock, so a subscriber may unsubscribe from within its callback.
func (h *Hub[T]) Publish(snapshot T) {
	h.mu.Lock()
	fns := make([]func(T), 0, len(h.subs))
	for _, fn := range h.subs {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(snapshot)
	}
}

// Len returns the number of active subscribers
func (h *Hub[T]) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
