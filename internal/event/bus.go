// Package event is the host's global event bus. Host-level input such as
// mouse clicks is published here; extensions tap it through hooks.
package event

import (
	"sync"
	"time"
)

// Well-known event names.
const (
	Click        = "click"
	FileOpen     = "file-open"
	LayoutChange = "layout-change"
)

// Event is a host event.
type Event struct {
	Name string
	Time time.Time

	// X and Y are cell coordinates for pointer events.
	X, Y int

	// Data carries event-specific values (e.g. "path" for file-open).
	Data map[string]string
}

// Handler receives events.
type Handler func(Event)

// Bus fans events out to subscribers synchronously, in the publisher's
// goroutine.
type Bus struct {
	mu   sync.RWMutex
	next uint64
	subs map[string]map[uint64]Handler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[string]map[uint64]Handler)}
}

// Subscribe registers h for events named name. The returned function
// removes the subscription and may be called any number of times.
func (b *Bus) Subscribe(name string, h Handler) (unsubscribe func()) {
	b.mu.Lock()
	b.next++
	id := b.next
	if b.subs[name] == nil {
		b.subs[name] = make(map[uint64]Handler)
	}
	b.subs[name][id] = h
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs[name], id)
		if len(b.subs[name]) == 0 {
			delete(b.subs, name)
		}
		b.mu.Unlock()
	}
}

// Publish delivers e to every current subscriber of e.Name and returns how
// many handlers were called. A zero Time is set to now.
func (b *Bus) Publish(e Event) int {
	if e.Time.IsZero() {
		e.Time = time.Now()
	}

	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subs[e.Name]))
	for _, h := range b.subs[e.Name] {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(e)
	}
	return len(handlers)
}

// Subscribers returns the number of handlers for name.
func (b *Bus) Subscribers(name string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[name])
}
