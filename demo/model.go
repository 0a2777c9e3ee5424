package demo

import (
	"github.com/lemmego/appkit/model"
)

// Model counts button clicks
type Model struct {
	model.Base
	clicks int
}

type state struct {
	Clicks int `json:"clicks" yaml:"clicks" toml:"clicks"`
}

func NewModel() *Model {
	m := &Model{}
	m.Init(m)
	return m
}

func (m *Model) Clicks() int {
	return m.clicks
}

// Increment adds one click and notifies
func (m *Model) Increment() error {
	return m.Change(func() error {
		m.clicks++
		return nil
	})
}

func (m *Model) Snapshot() any {
	return state{Clicks: m.clicks}
}

func (m *Model) Restore(decode func(v any) error) error {
	var s state
	return m.Change(func() error {
		if err := decode(&s); err != nil {
			return err
		}
		m.clicks = s.Clicks
		return nil
	})
}
