// Package app wires a model, a view manager and a menu into an application.
//
// A concrete application supplies a Factory creating its model and its view
// manager. The Application attaches the view manager to the model, builds the
// menu (File | Open..., Save, Save As..., Exit and Help | About... unless a
// menu is given) and persists the model through an fsys.FS using the codec
// selected by the file extension.
package app

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/lemmego/appkit/config"
	"github.com/lemmego/appkit/event"
	"github.com/lemmego/appkit/fsys"
	"github.com/lemmego/appkit/model"
	"github.com/lemmego/appkit/view"
)

var (
	ErrNoSavePath = errors.New("no save path, use save as first")
	ErrNoModel    = errors.New("factory returned no model")
	ErrNoView     = errors.New("factory returned no view manager")
)

// Factory creates the model and the view manager of an application. The model
// is created first and is available through Application.Model when the view
// manager is created.
type Factory interface {
	CreateModel() (model.Model, error)
	CreateViewManager(a *Application) (*view.Manager, error)
}

// ModelHandlerProvider is implemented by factories whose view manager reacts
// to model notifications. The handler is registered for the model, which
// attaches the view manager to it.
type ModelHandlerProvider interface {
	ModelHandler(a *Application) view.Handler
}

// Host is the user facing side of the application: it asks for file paths
// and presents messages. An empty path means the user cancelled.
type Host interface {
	AskPath(title string, fileTypes []FileType, save bool) (string, error)
	ShowInfo(title, message string) error
}

type headless struct{}

func (headless) AskPath(string, []FileType, bool) (string, error) {
	return "", nil
}

func (headless) ShowInfo(title, message string) error {
	slog.Info(title, "message", message)
	return nil
}

// Application is the main application
type Application struct {
	mu        sync.Mutex
	title     string
	about     AboutInfo
	menu      Menu
	fileTypes []FileType
	savePath  string
	exited    bool

	host    Host
	storage fsys.FS
	events  *eventRegistry

	model model.Model
	views *view.Manager
}

type Options struct {
	Title     string
	About     AboutInfo
	Menu      Menu
	FileTypes []FileType
	Host      Host
	Storage   fsys.FS
	Listeners map[string][]EventListener
}

type OptFunc func(opts *Options)

func WithTitle(title string) OptFunc {
	return func(opts *Options) {
		opts.Title = title
	}
}

func WithAbout(about AboutInfo) OptFunc {
	return func(opts *Options) {
		opts.About = about
	}
}

// WithMenu replaces the default menu. File | Exit and Help | About... are not
// added to a custom menu.
func WithMenu(menu Menu) OptFunc {
	return func(opts *Options) {
		opts.Menu = menu
	}
}

func WithFileTypes(fileTypes ...FileType) OptFunc {
	return func(opts *Options) {
		opts.FileTypes = append(opts.FileTypes, fileTypes...)
	}
}

func WithHost(host Host) OptFunc {
	return func(opts *Options) {
		opts.Host = host
	}
}

func WithStorage(storage fsys.FS) OptFunc {
	return func(opts *Options) {
		opts.Storage = storage
	}
}

// WithListener registers an event listener before the model and view are created
func WithListener(event string, listener EventListener) OptFunc {
	return func(opts *Options) {
		if opts.Listeners == nil {
			opts.Listeners = map[string][]EventListener{}
		}
		opts.Listeners[event] = append(opts.Listeners[event], listener)
	}
}

// New creates the application: menu, model, view manager, then the model
// registration of the view manager.
func New(factory Factory, optFuncs ...OptFunc) (*Application, error) {
	if factory == nil {
		return nil, fmt.Errorf("create app: %w", event.ErrNotImplemented)
	}

	opts := &Options{}
	for _, optFunc := range optFuncs {
		optFunc(opts)
	}

	a := &Application{
		title:     opts.Title,
		about:     opts.About.WithDefaults(),
		fileTypes: opts.FileTypes,
		host:      opts.Host,
		storage:   opts.Storage,
		events:    newEventRegistry(),
	}

	if a.title == "" {
		a.title = config.String("app.name", a.about.Name)
	}
	if len(a.fileTypes) == 0 {
		a.fileTypes = []FileType{{Description: "JSON", Pattern: "*.json"}}
	}
	if a.host == nil {
		a.host = headless{}
	}
	if a.storage == nil {
		storage, err := fsys.Disk()
		if err != nil {
			return nil, fmt.Errorf("create app: %w", err)
		}
		a.storage = storage
	}
	for name, listeners := range opts.Listeners {
		for _, listener := range listeners {
			a.events.On(name, listener)
		}
	}

	a.menu = opts.Menu
	if len(a.menu) == 0 {
		a.menu = a.defaultMenu()
	}
	if err := a.menu.Validate(); err != nil {
		return nil, err
	}

	m, err := factory.CreateModel()
	if err != nil {
		return nil, fmt.Errorf("create model: %w", err)
	}
	if m == nil {
		return nil, ErrNoModel
	}
	a.model = m
	a.events.Dispatch(ModelCreated, m)

	views, err := factory.CreateViewManager(a)
	if err != nil {
		return nil, fmt.Errorf("create view manager: %w", err)
	}
	if views == nil {
		return nil, ErrNoView
	}
	a.views = views

	if p, ok := factory.(ModelHandlerProvider); ok {
		if err := views.Register(m, p.ModelHandler(a)); err != nil {
			_ = views.DetachAll()
			return nil, fmt.Errorf("observe model: %w", err)
		}
	}
	a.events.Dispatch(ViewBuilt, views)

	slog.Debug("application created", "title", a.title, "subjects", views.Len())
	return a, nil
}

func (a *Application) defaultMenu() Menu {
	return Menu{
		Cascade("File",
			Command("Open...", a.onFileOpen),
			Command("Save", a.Save),
			Command("Save As...", a.onFileSaveAs),
			Command("Exit", a.Exit),
		),
		Cascade("Help",
			Command("About...", a.onHelpAbout),
		),
	}
}

func (a *Application) Title() string {
	return a.title
}

func (a *Application) About() AboutInfo {
	return a.about
}

func (a *Application) Menu() Menu {
	return a.menu
}

func (a *Application) FileTypes() []FileType {
	return append([]FileType(nil), a.fileTypes...)
}

func (a *Application) Model() model.Model {
	return a.model
}

func (a *Application) Views() *view.Manager {
	return a.views
}

func (a *Application) Storage() fsys.FS {
	return a.storage
}

func (a *Application) Events() EventEmitter {
	return a.events
}

// SavePath returns the path of the last open or save, empty if there was none
func (a *Application) SavePath() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.savePath
}

// ModelOf returns the application's model as T
func ModelOf[T model.Model](a *Application) (T, bool) {
	m, ok := a.model.(T)
	return m, ok
}

func (a *Application) withDefaultExt(path string) string {
	if filepath.Ext(path) == "" && len(a.fileTypes) > 0 {
		return path + a.fileTypes[0].Ext()
	}
	return path
}

// OpenFile reads the model from path. The file format follows the extension.
func (a *Application) OpenFile(path string) error {
	path = a.withDefaultExt(path)

	rc, err := a.storage.Read(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer rc.Close()

	if err := model.Read(rc, filepath.Ext(path), a.model); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}

	a.mu.Lock()
	a.savePath = path
	a.mu.Unlock()

	a.events.Dispatch(FileOpened, path)
	slog.Info("model opened", "path", path)
	return nil
}

// Save writes the model to the path of the last open or save
func (a *Application) Save() error {
	path := a.SavePath()
	if path == "" {
		return ErrNoSavePath
	}
	return a.SaveAs(path)
}

// SaveAs writes the model to path and remembers it for Save
func (a *Application) SaveAs(path string) error {
	path = a.withDefaultExt(path)

	var buf bytes.Buffer
	if err := model.Write(&buf, filepath.Ext(path), a.model); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := a.storage.Write(path, buf.Bytes()); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	a.mu.Lock()
	a.savePath = path
	a.mu.Unlock()

	a.events.Dispatch(FileSaved, path)
	slog.Info("model saved", "path", path)
	return nil
}

// Exit tears the view manager down. Calling it again does nothing.
func (a *Application) Exit() error {
	a.mu.Lock()
	if a.exited {
		a.mu.Unlock()
		return nil
	}
	a.exited = true
	a.mu.Unlock()

	a.events.Dispatch(AppExiting, a)
	return a.views.DetachAll()
}

// Exited reports whether Exit has been called
func (a *Application) Exited() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.exited
}

func (a *Application) onFileOpen() error {
	path, err := a.host.AskPath("Select file to open", a.FileTypes(), false)
	if err != nil || path == "" {
		return err
	}
	return a.OpenFile(path)
}

func (a *Application) onFileSaveAs() error {
	path, err := a.host.AskPath("Select file to save as", a.FileTypes(), true)
	if err != nil || path == "" {
		return err
	}
	return a.SaveAs(path)
}

func (a *Application) onHelpAbout() error {
	return a.host.ShowInfo(a.about.Title(), a.about.Message())
}
