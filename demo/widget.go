// Package demo is a small application built on appkit: one button that
// toggles between Start and Stop and counts its clicks in the model.
package demo

import (
	"github.com/lemmego/appkit/event"
)

const (
	StartLabel = "Start"
	StopLabel  = "Stop"
)

// Widget is a toggle button. It notifies its observers after every click.
type Widget struct {
	event.Base
	started bool
	label   string
}

func NewWidget() *Widget {
	w := &Widget{label: StartLabel}
	w.Init(w)
	return w
}

// Started reports whether the widget is in the started state
func (w *Widget) Started() bool {
	return w.started
}

// Label is the text currently shown on the button
func (w *Widget) Label() string {
	return w.label
}

// Click flips the started state, then notifies.
func (w *Widget) Click() error {
	w.started = !w.started
	if w.started {
		w.label = StopLabel
	} else {
		w.label = StartLabel
	}
	return w.Notify()
}
