// Package help is a help topic viewer: the model holds the path of the help
// file and the text widget shows its content.
package help

import (
	"fmt"
	"log/slog"

	"github.com/lemmego/appkit/app"
	"github.com/lemmego/appkit/event"
	"github.com/lemmego/appkit/fsys"
	"github.com/lemmego/appkit/model"
	"github.com/lemmego/appkit/view"
)

// Model holds the help file to display
type Model struct {
	model.Base
	helpFile string
}

func NewModel(helpFile string) *Model {
	m := &Model{helpFile: helpFile}
	m.Init(m)
	return m
}

func (m *Model) HelpFile() string {
	return m.helpFile
}

// SetHelpFile changes the help file and notifies
func (m *Model) SetHelpFile(path string) error {
	return m.Change(func() error {
		m.helpFile = path
		return nil
	})
}

// TextWidget shows the content of a help file read from storage
type TextWidget struct {
	event.Base
	storage fsys.FS
	file    string
	content string
}

func NewTextWidget(storage fsys.FS) *TextWidget {
	w := &TextWidget{storage: storage}
	w.Init(w)
	return w
}

func (w *TextWidget) Content() string {
	return w.content
}

func (w *TextWidget) File() string {
	return w.file
}

// Load replaces the content with the file at path and notifies. An empty path
// clears the widget.
func (w *TextWidget) Load(path string) error {
	content := ""
	if path != "" {
		data, err := fsys.ReadAll(w.storage, path)
		if err != nil {
			return fmt.Errorf("load help %s: %w", path, err)
		}
		content = string(data)
	}
	w.file, w.content = path, content
	return w.Notify()
}

// Factory builds the help viewer for an initial help file.
type Factory struct {
	HelpFile string

	model  *Model
	widget *TextWidget
}

func (f *Factory) CreateModel() (model.Model, error) {
	f.model = NewModel(f.HelpFile)
	return f.model, nil
}

func (f *Factory) CreateViewManager(a *app.Application) (*view.Manager, error) {
	return view.New(view.BuilderFunc(func(vm *view.Manager) error {
		f.widget = NewTextWidget(a.Storage())
		if err := vm.Register(f.widget, f.handleTextWidgetUpdate); err != nil {
			return err
		}
		return f.widget.Load(f.model.HelpFile())
	}))
}

func (f *Factory) ModelHandler(*app.Application) view.Handler {
	return func() error {
		return f.widget.Load(f.model.HelpFile())
	}
}

// Widget returns the text widget, nil before the view manager exists
func (f *Factory) Widget() *TextWidget {
	return f.widget
}

func (f *Factory) handleTextWidgetUpdate() error {
	slog.Debug("help content loaded", "file", f.widget.File(), "bytes", len(f.widget.Content()))
	return nil
}
