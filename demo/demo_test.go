package demo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lemmego/appkit/app"
	"github.com/lemmego/appkit/fsys"
	"github.com/lemmego/appkit/view"
)

func newApp(t *testing.T, f *Factory) (*app.Application, *fsys.MemoryStorage) {
	t.Helper()
	storage := fsys.NewMemoryStorage()
	a, err := app.New(f, app.WithTitle("Demo Application"), app.WithStorage(storage))
	require.NoError(t, err)
	return a, storage
}

func TestWidgetToggles(t *testing.T) {
	w := NewWidget()
	assert.Equal(t, StartLabel, w.Label())
	assert.False(t, w.Started())

	require.NoError(t, w.Click())
	assert.Equal(t, StopLabel, w.Label())
	assert.True(t, w.Started())

	require.NoError(t, w.Click())
	assert.Equal(t, StartLabel, w.Label())
}

func TestClickIncrementsModelAndStatus(t *testing.T) {
	f := NewFactory()
	var statuses []string
	f.OnStatus = func(s string) { statuses = append(statuses, s) }
	a, _ := newApp(t, f)

	require.NoError(t, f.Widget().Click())
	require.NoError(t, f.Widget().Click())

	m, ok := app.ModelOf[*Model](a)
	require.True(t, ok)
	assert.Equal(t, 2, m.Clicks())
	assert.Equal(t, []string{"1 click", "2 clicks"}, statuses)
	assert.Equal(t, view.Active, a.Views().State())
}

func TestSaveAndOpenRoundTrip(t *testing.T) {
	f := NewFactory()
	a, storage := newApp(t, f)
	require.NoError(t, f.Widget().Click())
	require.NoError(t, a.SaveAs("clicks.yaml"))

	other := NewFactory()
	b, err := app.New(other, app.WithStorage(storage))
	require.NoError(t, err)
	require.NoError(t, b.OpenFile("clicks.yaml"))

	m, _ := app.ModelOf[*Model](b)
	assert.Equal(t, 1, m.Clicks())
	assert.Equal(t, "1 click", other.Status())
}

func TestExitStopsNotifications(t *testing.T) {
	f := NewFactory()
	a, _ := newApp(t, f)

	require.NoError(t, a.Exit())
	require.NoError(t, f.Widget().Click())

	m, _ := app.ModelOf[*Model](a)
	assert.Equal(t, 0, m.Clicks())
	assert.Equal(t, StopLabel, f.Widget().Label())
}
