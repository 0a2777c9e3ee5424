// Package event provides the synchronous Observer/Subject pair used by models,
// widgets and view managers to announce state changes.
//
// A Subject keeps an ordered list of attached observers. Notify calls Update on
// every one of them, in attachment order, on the calling goroutine, before it
// returns. The same observer may be attached more than once and will then be
// updated once per attachment.
package event

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

var (
	ErrInvalidObserver  = errors.New("invalid observer")
	ErrObserverNotFound = errors.New("observer not attached")
	ErrNotImplemented   = errors.New("not implemented")
)

// Observer interface defines the update method which will be called when the subject changes
type Observer interface {
	Update(subject Subject) error
}

// Subject interface defines methods for managing observers
type Subject interface {
	Attach(observer Observer) error
	Detach(observer Observer) error
	Notify() error
}

// Base is an embeddable Subject implementation. Types embedding it must call
// Init with themselves so observers receive the outer value. Without Init the
// *Base itself is passed to observers.
type Base struct {
	mu        sync.RWMutex
	owner     Subject
	observers []Observer
}

// NewBase returns a Base announcing owner as the notifying subject.
func NewBase(owner Subject) *Base {
	b := &Base{}
	b.Init(owner)
	return b
}

// Init sets the subject value passed to observers on Notify.
func (b *Base) Init(owner Subject) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.owner = owner
}

func (b *Base) self() Subject {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.owner != nil {
		return b.owner
	}
	return b
}

// Attach appends an observer to the subject
func (b *Base) Attach(observer Observer) error {
	if err := validObserver(observer); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.observers = append(b.observers, observer)
	return nil
}

// Detach removes the first attachment of observer
func (b *Base) Detach(observer Observer) error {
	if err := validObserver(observer); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for i, obs := range b.observers {
		if obs == observer {
			b.observers = append(b.observers[:i:i], b.observers[i+1:]...)
			return nil
		}
	}
	return ErrObserverNotFound
}

// Notify updates every observer attached when the call started. Attach and
// Detach calls made by an observer during the fan-out apply from the next
// Notify on. The first failing observer stops the fan-out.
func (b *Base) Notify() error {
	b.mu.RLock()
	snapshot := make([]Observer, len(b.observers))
	copy(snapshot, b.observers)
	b.mu.RUnlock()

	subject := b.self()
	for i, observer := range snapshot {
		if err := observer.Update(subject); err != nil {
			return fmt.Errorf("observer %d (%T): %w", i, observer, err)
		}
	}
	return nil
}

// Observers returns a copy of the attached observers in attachment order
func (b *Base) Observers() []Observer {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Observer, len(b.observers))
	copy(out, b.observers)
	return out
}

// Len returns the number of attachments, duplicates included
func (b *Base) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.observers)
}

// Has reports whether observer is attached at least once
func (b *Base) Has(observer Observer) bool {
	if validObserver(observer) != nil {
		return false
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, obs := range b.observers {
		if obs == observer {
			return true
		}
	}
	return false
}

func validObserver(observer Observer) error {
	if isNil(observer) {
		return fmt.Errorf("%w: nil %T", ErrInvalidObserver, observer)
	}
	if t := reflect.TypeOf(observer); !t.Comparable() {
		return fmt.Errorf("%w: %v is not comparable", ErrInvalidObserver, t)
	}
	return nil
}

// isNil also catches nil pointers and channels stored in an interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}

// Comparable reports whether v can be used as an identity key. Nil values,
// typed nil pointers included, are not.
func Comparable(v any) bool {
	return !isNil(v) && reflect.TypeOf(v).Comparable()
}

// Unimplemented can be embedded by types that do not provide Update yet.
type Unimplemented struct{}

func (Unimplemented) Update(Subject) error {
	return ErrNotImplemented
}

// FuncObserver adapts a function to the Observer interface.
type FuncObserver struct {
	fn func(subject Subject) error
}

// ObserverFunc wraps fn so it can be attached and later detached by identity.
func ObserverFunc(fn func(subject Subject) error) *FuncObserver {
	return &FuncObserver{fn: fn}
}

func (o *FuncObserver) Update(subject Subject) error {
	if o == nil || o.fn == nil {
		return ErrNotImplemented
	}
	return o.fn(subject)
}
