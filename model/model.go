// Package model provides the base for types holding application data and
// business state. A model is an event.Subject: every logically complete
// mutation ends with a notification to its observers.
package model

import (
	"github.com/lemmego/appkit/event"
)

// Model is any subject representing application state
type Model interface {
	event.Subject
}

// Base is embedded by concrete models. Call Init with the outer value.
type Base struct {
	event.Base
}

// Change applies fn and, only when it succeeds, notifies the observers. The
// observers therefore always see post-mutation state.
func (b *Base) Change(fn func() error) error {
	if fn != nil {
		if err := fn(); err != nil {
			return err
		}
	}
	return b.Notify()
}
