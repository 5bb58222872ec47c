// Package event delivers lifecycle notifications to registered listeners.
// Delivery is synchronous and in subscription order: Dispatch returns only
// after every listener has run, so pre-transition events observe old state
// and post-transition events observe committed state.
package event

import (
	"sync"

	"github.com/miquelnez/extman/internal/extension"
)

// Event is one lifecycle notification.
type Event struct {
	Name      string
	Extension *extension.Descriptor
}

// Listener receives dispatched events.
type Listener func(Event)

// Dispatcher is the interface the lifecycle manager emits through.
type Dispatcher interface {
	Dispatch(Event)
}

// Bus is an in-process Dispatcher delivering to listeners in subscription
// order.
type Bus struct {
	mu        sync.Mutex
	listeners []Listener
}

// NewBus creates an empty Bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a listener for all events.
func (b *Bus) Subscribe(fn Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append(b.listeners, fn)
}

// Dispatch delivers ev to every listener before returning.
func (b *Bus) Dispatch(ev Event) {
	b.mu.Lock()
	listeners := make([]Listener, len(b.listeners))
	copy(listeners, b.listeners)
	b.mu.Unlock()

	for _, fn := range listeners {
		fn(ev)
	}
}
