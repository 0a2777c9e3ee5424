package app

import (
	"log/slog"
	"sync"
)

const (
	ModelCreated = "model.created"
	ViewBuilt    = "view.built"
	FileOpened   = "file.opened"
	FileSaved    = "file.saved"
	AppExiting   = "app.exiting"
)

type EventListener func(payload any) error

// EventEmitter lets applications listen to the lifecycle events above
type EventEmitter interface {
	On(event string, listener EventListener)
	Dispatch(event string, payload any)
	Remove(event string) bool
	Has(event string) bool
}

type eventRegistry struct {
	mu     sync.RWMutex
	events map[string][]EventListener
}

func newEventRegistry() *eventRegistry {
	return &eventRegistry{
		events: make(map[string][]EventListener),
	}
}

// Dispatch calls the listeners of event in registration order. Listener
// errors are logged and do not stop the remaining listeners.
func (r *eventRegistry) Dispatch(event string, payload any) {
	r.mu.RLock()
	listeners := append([]EventListener(nil), r.events[event]...)
	r.mu.RUnlock()

	for _, listener := range listeners {
		if err := listener(payload); err != nil {
			slog.Error("event listener failed", "event", event, "error", err)
		}
	}
}

func (r *eventRegistry) On(event string, listener EventListener) {
	if listener == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[event] = append(r.events[event], listener)
}

// Remove unregisters the listeners of an event
func (r *eventRegistry) Remove(event string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.events[event]; exists {
		delete(r.events, event)
		return true
	}
	return false
}

// Has checks if an event has listeners
func (r *eventRegistry) Has(event string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.events[event]
	return exists
}
