package demo

import (
	"fmt"
	"log/slog"

	"github.com/gertd/go-pluralize"

	"github.com/lemmego/appkit/app"
	"github.com/lemmego/appkit/model"
	"github.com/lemmego/appkit/view"
)

// Factory creates the demo model and view manager. OnStatus, when set,
// receives the status line every time the model changes.
type Factory struct {
	OnStatus func(status string)

	widget *Widget
	model  *Model
	status string
	plural *pluralize.Client
}

func NewFactory() *Factory {
	return &Factory{plural: pluralize.NewClient()}
}

func (f *Factory) CreateModel() (model.Model, error) {
	f.model = NewModel()
	return f.model, nil
}

func (f *Factory) CreateViewManager(a *app.Application) (*view.Manager, error) {
	m, ok := app.ModelOf[*Model](a)
	if !ok {
		return nil, fmt.Errorf("demo: unexpected model %T", a.Model())
	}
	f.model = m

	return view.New(view.BuilderFunc(func(vm *view.Manager) error {
		f.widget = NewWidget()
		return vm.Register(f.widget, f.handleWidgetUpdate)
	}))
}

func (f *Factory) ModelHandler(*app.Application) view.Handler {
	return f.handleModelUpdate
}

// Widget returns the toggle button, nil before the view manager exists
func (f *Factory) Widget() *Widget {
	return f.widget
}

// Status returns the last status line, e.g. "3 clicks"
func (f *Factory) Status() string {
	return f.status
}

func (f *Factory) handleWidgetUpdate() error {
	slog.Debug("received update notification from widget", "label", f.widget.Label())
	return f.model.Increment()
}

func (f *Factory) handleModelUpdate() error {
	if f.plural == nil {
		f.plural = pluralize.NewClient()
	}
	f.status = f.plural.Pluralize("click", f.model.Clicks(), true)
	if f.OnStatus != nil {
		f.OnStatus(f.status)
	}
	return nil
}
