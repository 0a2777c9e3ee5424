// Package view provides the view manager, a mediator that observes many
// subjects and dispatches each subject's notification to its own handler.
package view

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/lemmego/appkit/event"
)

var (
	ErrInvalidSubject       = errors.New("invalid subject")
	ErrInvalidHandler       = errors.New("invalid handler")
	ErrSubjectNotRegistered = errors.New("subject not registered")
	ErrTornDown             = errors.New("view manager torn down")
)

// Handler reacts to a notification from one registered subject
type Handler func() error

// Builder creates the widgets owned by a Manager and registers them.
type Builder interface {
	Build(m *Manager) error
}

// BuilderFunc adapts a function to the Builder interface
type BuilderFunc func(m *Manager) error

func (f BuilderFunc) Build(m *Manager) error {
	return f(m)
}

// UnimplementedBuilder can be embedded by builders that do not create widgets yet.
type UnimplementedBuilder struct{}

func (UnimplementedBuilder) Build(*Manager) error {
	return event.ErrNotImplemented
}

type State int

const (
	Created State = iota
	Built
	Active
	TornDown
)

func (s State) String() string {
	switch s {
	case Created:
		return "created"
	case Built:
		return "built"
	case Active:
		return "active"
	case TornDown:
		return "torn down"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Manager is an event.Observer holding a subject to handler registry.
// Every registered subject has the manager attached as one of its observers.
type Manager struct {
	mu       sync.RWMutex
	state    State
	handlers map[event.Subject]Handler
	order    []event.Subject
}

// NewManager returns an empty manager in the Created state.
func NewManager() *Manager {
	return &Manager{
		handlers: make(map[event.Subject]Handler),
	}
}

// New creates a manager and runs the builder's widget creation hook. A failed
// build detaches whatever the builder managed to register.
func New(builder Builder) (*Manager, error) {
	if builder == nil {
		return nil, fmt.Errorf("build view: %w", event.ErrNotImplemented)
	}

	m := NewManager()
	if err := builder.Build(m); err != nil {
		_ = m.DetachAll()
		return nil, fmt.Errorf("build view: %w", err)
	}

	m.mu.Lock()
	m.state = Built
	m.mu.Unlock()
	slog.Debug("view manager built", "subjects", m.Len())
	return m, nil
}

// Register attaches the manager to subject and records handler for it.
// Registering a subject twice replaces its handler without attaching again.
// The subject is recorded by identity, so a subject embedding event.Base must
// have called Init with itself, otherwise its notifications carry the *Base and
// fail with ErrSubjectNotRegistered. subject.Attach runs without the manager's
// lock held and may call back into the manager.
func (m *Manager) Register(subject event.Subject, handler Handler) error {
	if !event.Comparable(subject) {
		return fmt.Errorf("%w: %T", ErrInvalidSubject, subject)
	}
	if handler == nil {
		return fmt.Errorf("%w: nil handler for %T", ErrInvalidHandler, subject)
	}

	if replaced, err := m.replaceHandler(subject, handler); replaced || err != nil {
		return err
	}

	if err := subject.Attach(m); err != nil {
		return fmt.Errorf("register %T: %w", subject, err)
	}

	m.mu.Lock()
	state := m.state
	_, raced := m.handlers[subject]
	if state != TornDown {
		if !raced {
			m.order = append(m.order, subject)
		}
		m.handlers[subject] = handler
	}
	m.mu.Unlock()

	// A concurrent Register of the same subject or a teardown won while the
	// lock was released: drop the extra attachment.
	if state == TornDown || raced {
		if err := subject.Detach(m); err != nil {
			return fmt.Errorf("register %T: %w", subject, err)
		}
		if state == TornDown {
			return ErrTornDown
		}
		return nil
	}

	slog.Debug("view manager registered subject", "subject", fmt.Sprintf("%T", subject))
	return nil
}

func (m *Manager) replaceHandler(subject event.Subject, handler Handler) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == TornDown {
		return false, ErrTornDown
	}
	if _, ok := m.handlers[subject]; ok {
		m.handlers[subject] = handler
		return true, nil
	}
	return false, nil
}

// Update implements event.Observer by calling the handler registered for subject
func (m *Manager) Update(subject event.Subject) error {
	if !event.Comparable(subject) {
		return fmt.Errorf("%w: %T", ErrInvalidSubject, subject)
	}

	m.mu.Lock()
	if m.state == TornDown {
		m.mu.Unlock()
		return ErrTornDown
	}
	handler, ok := m.handlers[subject]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("%w: %T", ErrSubjectNotRegistered, subject)
	}
	if m.state == Built {
		m.state = Active
	}
	m.mu.Unlock()

	return handler()
}

// DetachAll detaches the manager from every registered subject. It is meant
// for teardown: the manager refuses registrations and updates afterwards, and
// calling it again does nothing.
func (m *Manager) DetachAll() error {
	m.mu.Lock()
	if m.state == TornDown {
		m.mu.Unlock()
		return nil
	}
	m.state = TornDown
	subjects := make([]event.Subject, len(m.order))
	copy(subjects, m.order)
	m.mu.Unlock()

	var errs []error
	for _, subject := range subjects {
		if err := subject.Detach(m); err != nil {
			errs = append(errs, fmt.Errorf("detach from %T: %w", subject, err))
		}
	}

	slog.Debug("view manager torn down", "subjects", len(subjects))
	return errors.Join(errs...)
}

// State returns the lifecycle state of the manager
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Registered reports whether subject has a handler
func (m *Manager) Registered(subject event.Subject) bool {
	if !event.Comparable(subject) {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.handlers[subject]
	return ok
}

// Len returns the number of registered subjects
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.handlers)
}
