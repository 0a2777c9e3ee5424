package app

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lemmego/appkit/event"
	"github.com/lemmego/appkit/fsys"
	"github.com/lemmego/appkit/model"
	"github.com/lemmego/appkit/view"
)

type counter struct {
	model.Base
	Count int
}

type counterState struct {
	Count int `json:"count" yaml:"count" toml:"count"`
}

func (c *counter) Snapshot() any { return counterState{Count: c.Count} }

func (c *counter) Restore(decode func(v any) error) error {
	var s counterState
	return c.Change(func() error {
		if err := decode(&s); err != nil {
			return err
		}
		c.Count = s.Count
		return nil
	})
}

type testFactory struct {
	seen     []int
	model    *counter
	modelErr error
}

func (f *testFactory) CreateModel() (model.Model, error) {
	if f.modelErr != nil {
		return nil, f.modelErr
	}
	f.model = &counter{}
	f.model.Init(f.model)
	return f.model, nil
}

func (f *testFactory) CreateViewManager(*Application) (*view.Manager, error) {
	return view.New(view.BuilderFunc(func(*view.Manager) error { return nil }))
}

func (f *testFactory) ModelHandler(*Application) view.Handler {
	return func() error {
		f.seen = append(f.seen, f.model.Count)
		return nil
	}
}

type fakeHost struct {
	path   string
	titles []string
	infos  []string
}

func (h *fakeHost) AskPath(title string, _ []FileType, _ bool) (string, error) {
	h.titles = append(h.titles, title)
	return h.path, nil
}

func (h *fakeHost) ShowInfo(title, message string) error {
	h.titles = append(h.titles, title)
	h.infos = append(h.infos, message)
	return nil
}

func newTestApp(t *testing.T, opts ...OptFunc) (*Application, *testFactory, *fsys.MemoryStorage) {
	t.Helper()
	storage := fsys.NewMemoryStorage()
	f := &testFactory{}
	a, err := New(f, append([]OptFunc{WithStorage(storage)}, opts...)...)
	require.NoError(t, err)
	return a, f, storage
}

func TestNewAttachesViewManagerToModel(t *testing.T) {
	a, f, _ := newTestApp(t)

	assert.True(t, a.Views().Registered(f.model))
	assert.True(t, f.model.Has(a.Views()))

	require.NoError(t, f.model.Change(func() error {
		f.model.Count = 7
		return nil
	}))
	assert.Equal(t, []int{7}, f.seen)
}

func TestNewModelError(t *testing.T) {
	boom := errors.New("boom")
	_, err := New(&testFactory{modelErr: boom}, WithStorage(fsys.NewMemoryStorage()))
	assert.ErrorIs(t, err, boom)

	_, err = New(nil)
	assert.ErrorIs(t, err, event.ErrNotImplemented)
}

func TestDefaultMenu(t *testing.T) {
	a, _, _ := newTestApp(t)

	assert.Equal(t, []string{"File", "Help"}, a.Menu().Labels())
	for _, path := range []string{"file.open", "file.save", "file.save_as", "file.exit", "help.about"} {
		item, ok := a.Menu().Find(path)
		assert.True(t, ok, path)
		assert.NotNil(t, item.Action, path)
	}
}

func TestCustomMenuIsKept(t *testing.T) {
	called := false
	a, _, _ := newTestApp(t, WithMenu(Menu{
		Cascade("Tools", Command("Run", func() error {
			called = true
			return nil
		})),
	}))

	require.NoError(t, a.Menu().Invoke("tools.run"))
	assert.True(t, called)
	_, ok := a.Menu().Find("file.exit")
	assert.False(t, ok)
}

func TestInvalidMenu(t *testing.T) {
	_, err := New(&testFactory{}, WithStorage(fsys.NewMemoryStorage()), WithMenu(Menu{{Label: "Empty"}}))
	assert.ErrorIs(t, err, ErrInvalidMenu)
}

func TestSaveWithoutPath(t *testing.T) {
	a, _, _ := newTestApp(t)
	assert.ErrorIs(t, a.Save(), ErrNoSavePath)
}

func TestSaveAsThenOpen(t *testing.T) {
	var saved []any
	a, f, storage := newTestApp(t, WithListener(FileSaved, func(p any) error {
		saved = append(saved, p)
		return nil
	}))
	f.model.Count = 3

	require.NoError(t, a.SaveAs("state"))
	assert.Equal(t, "state.json", a.SavePath())
	ok, err := storage.Exists("state.json")
	require.NoError(t, err)
	assert.True(t, ok)

	f.model.Count = 0
	require.NoError(t, a.OpenFile("state.json"))
	assert.Equal(t, 3, f.model.Count)
	assert.Equal(t, []int{3}, f.seen)

	f.model.Count = 4
	require.NoError(t, a.Save())
	assert.Equal(t, []any{"state.json", "state.json"}, saved)
}

func TestOpenUnsupportedFormat(t *testing.T) {
	a, _, storage := newTestApp(t)
	require.NoError(t, storage.Write("state.xml", []byte("<count/>")))

	assert.ErrorIs(t, a.OpenFile("state.xml"), model.ErrUnsupportedFormat)
	assert.Empty(t, a.SavePath())
}

func TestMenuActionsUseHost(t *testing.T) {
	host := &fakeHost{path: "picked.toml"}
	a, f, _ := newTestApp(t, WithHost(host), WithFileTypes(FileType{"TOML", "*.toml"}))
	f.model.Count = 5

	require.NoError(t, a.Menu().Invoke("file.save_as"))
	assert.Equal(t, "picked.toml", a.SavePath())

	require.NoError(t, a.Menu().Invoke("file.open"))
	require.NoError(t, a.Menu().Invoke("help.about"))

	assert.Equal(t, []string{"Select file to save as", "Select file to open", "About My App"}, host.titles)
	require.Len(t, host.infos, 1)
	assert.Contains(t, host.infos[0], "Copyright (c) 20XX by John Q. Public")
}

func TestCancelledDialogDoesNothing(t *testing.T) {
	a, _, _ := newTestApp(t, WithHost(&fakeHost{}))

	require.NoError(t, a.Menu().Invoke("file.open"))
	assert.Empty(t, a.SavePath())
}

func TestExitTearsDownOnce(t *testing.T) {
	exits := 0
	a, f, _ := newTestApp(t, WithListener(AppExiting, func(any) error {
		exits++
		return nil
	}))

	require.NoError(t, a.Menu().Invoke("file.exit"))
	require.NoError(t, a.Exit())

	assert.True(t, a.Exited())
	assert.Equal(t, 1, exits)
	assert.Equal(t, view.TornDown, a.Views().State())
	assert.False(t, f.model.Has(a.Views()))
	require.NoError(t, f.model.Notify())
	assert.Empty(t, f.seen)
}

func TestAboutDefaults(t *testing.T) {
	about := AboutInfo{Name: "demo", Version: "1.2"}.WithDefaults()

	assert.Equal(t, "About Demo", about.Title())
	assert.Equal(t, "demo\nversion 1.2\nCopyright (c) 20XX by John Q. Public\nLicensed under the MIT License\nSource: github url", about.Message())
}

func TestMenuID(t *testing.T) {
	assert.Equal(t, "save_as", MenuID("Save As..."))
	assert.Equal(t, "about", MenuID("About..."))
}

func TestEventListenerErrorsDoNotStopDispatch(t *testing.T) {
	r := newEventRegistry()
	calls := 0
	r.On("x", func(any) error { return errors.New("first fails") })
	r.On("x", func(any) error {
		calls++
		return nil
	})

	r.Dispatch("x", nil)

	assert.Equal(t, 1, calls)
	assert.True(t, r.Has("x"))
	assert.True(t, r.Remove("x"))
	assert.False(t, r.Has("x"))
	assert.False(t, r.Remove("x"))
}

func TestRemoveSavedListener(t *testing.T) {
	saved := 0
	a, _, _ := newTestApp(t, WithListener(FileSaved, func(any) error {
		saved++
		return nil
	}))

	require.NoError(t, a.SaveAs("notes.json"))
	require.True(t, a.Events().Has(FileSaved))
	require.True(t, a.Events().Remove(FileSaved))
	require.NoError(t, a.Save())

	assert.Equal(t, 1, saved)
	assert.False(t, a.Events().Has(FileSaved))
}
