package manager

import (
	"io"
	"log/slog"
	"testing"

	"github.com/1broseidon/floatwm/internal/geometry"
	"github.com/1broseidon/floatwm/internal/interact"
	"github.com/1broseidon/floatwm/internal/placement"
	"github.com/1broseidon/floatwm/internal/strut"
	"github.com/1broseidon/floatwm/internal/wm"
	"github.com/1broseidon/floatwm/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testMetrics = geometry.Metrics{TitleHeight: 20, BorderWidth: 4, ButtonWidth: 20, CornerSize: 20}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mapped(id wm.ClientID, r geometry.Rect) *wm.Client {
	c := wm.NewClient(id, r)
	c.State |= geometry.StateMapped
	return c
}

func TestHub_PublishReachesSubscribers(t *testing.T) {
	h := NewHub(quietLogger())
	a, unsubA := h.Subscribe(4)
	b, unsubB := h.Subscribe(4)
	defer unsubA()
	defer unsubB()
	require.Equal(t, 2, h.Len())

	h.Publish(Event{Type: EventDesktop, Desktop: 2})

	for _, ch := range []<-chan Event{a, b} {
		select {
		case ev := <-ch:
			assert.Equal(t, EventDesktop, ev.Type)
			assert.Equal(t, 2, ev.Desktop)
		default:
			t.Fatal("expected an event")
		}
	}
}

func TestHub_FullSubscriberDropsEvents(t *testing.T) {
	h := NewHub(quietLogger())
	ch, unsub := h.Subscribe(1)
	defer unsub()

	h.Publish(Event{Type: EventMap})
	h.Publish(Event{Type: EventUnmap})

	ev := <-ch
	assert.Equal(t, EventMap, ev.Type)
	select {
	case ev := <-ch:
		t.Fatalf("unexpected second event %v", ev.Type)
	default:
	}
}

func TestHub_UnsubscribeIsIdempotent(t *testing.T) {
	h := NewHub(quietLogger())
	ch, unsub := h.Subscribe(0)
	unsub()
	unsub()

	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, h.Len())

	// Publishing after everyone left must not panic.
	h.Publish(Event{Type: EventConfig})
}

func TestBuildSnapshot_FreeAreaHonoursStrutsAndClients(t *testing.T) {
	screen := geometry.Rect{Width: 1920, Height: 1080}
	model := wm.NewModel()
	model.Screens = []wm.Screen{{Index: 0, Name: "test", Rect: screen}}
	model.Desktops = 2

	win := mapped(10, geometry.Rect{X: 100, Y: 100, Width: 400, Height: 300})
	model.Stack.Add(win)

	dock := mapped(20, geometry.Rect{Width: 1920, Height: 30})
	docks := map[wm.ClientID]*wm.Client{dock.ID: dock}

	m := &Manager{model: model, docks: docks}
	reg := strut.NewRegistry(owners{m}, screen.Width, screen.Height)
	reg.UpsertStruts(dock.ID, []uint{0, 0, 30, 0})
	solver := placement.NewSolver(model, reg, testMetrics)

	snap := buildSnapshot(7, model, docks, reg, solver)

	require.Equal(t, uint64(7), snap.Generation)
	require.Len(t, snap.Clients, 1)
	require.Len(t, snap.Docks, 1)
	require.Len(t, snap.Struts, 1)
	assert.Equal(t, strut.EdgeTop, snap.Struts[0].Edge)

	fa, ok := snap.FreeArea(0)
	require.True(t, ok)
	assert.Equal(t, geometry.Rect{X: 0, Y: 30, Width: 1920, Height: 1050}, fa.Usable)
	assert.True(t, fa.Usable.Contains(fa.Free))
	assert.False(t, fa.Free.Intersects(win.Frame(testMetrics)))

	_, ok = snap.FreeArea(3)
	assert.False(t, ok)
}

func TestBuildSnapshot_IsACopy(t *testing.T) {
	model := wm.NewModel()
	model.Screens = []wm.Screen{{Index: 0, Rect: geometry.Rect{Width: 800, Height: 600}}}
	c := mapped(1, geometry.Rect{X: 10, Y: 10, Width: 100, Height: 100})
	model.Stack.Add(c)
	reg := strut.NewRegistry(model, 800, 600)
	snap := buildSnapshot(1, model, nil, reg, placement.NewSolver(model, reg, testMetrics))

	c.Rect.X = 500
	got, ok := snap.Client(1)
	require.True(t, ok)
	assert.Equal(t, 10, got.Rect.X)

	_, ok = snap.Client(99)
	assert.False(t, ok)
}

func TestOwners_DocksBeforeClients(t *testing.T) {
	model := wm.NewModel()
	model.Stack.Add(wm.NewClient(1, geometry.Rect{Width: 10, Height: 10}))
	dock := wm.NewClient(2, geometry.Rect{Width: 10, Height: 10})
	m := &Manager{model: model, docks: map[wm.ClientID]*wm.Client{2: dock}}

	got, ok := owners{m}.Lookup(2)
	require.True(t, ok)
	assert.Same(t, dock, got)

	_, ok = owners{m}.Lookup(1)
	assert.True(t, ok)
	_, ok = owners{m}.Lookup(3)
	assert.False(t, ok)
}

func TestRequestedState(t *testing.T) {
	tests := []struct {
		name   string
		cur    geometry.State
		action x11.StateAction
		atoms  []string
		want   geometry.State
	}{
		{
			name:   "add both maximize axes",
			action: x11.StateAdd,
			atoms:  []string{"_NET_WM_STATE_MAXIMIZED_HORZ", "_NET_WM_STATE_MAXIMIZED_VERT"},
			want:   geometry.StateMaximized,
		},
		{
			name:   "remove keeps other bits",
			cur:    geometry.StateMapped | geometry.StateFullscreen,
			action: x11.StateRemove,
			atoms:  []string{"_NET_WM_STATE_FULLSCREEN", ""},
			want:   geometry.StateMapped,
		},
		{
			name:   "toggle clears a set bit",
			cur:    geometry.StateSticky,
			action: x11.StateToggle,
			atoms:  []string{"_NET_WM_STATE_STICKY"},
			want:   0,
		},
		{
			name:   "unknown atoms are ignored",
			cur:    geometry.StateMapped,
			action: x11.StateAdd,
			atoms:  []string{"_NET_WM_STATE_ABOVE", "_NET_WM_STATE_DEMANDS_ATTENTION"},
			want:   geometry.StateMapped,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, requestedState(tt.cur, tt.action, tt.atoms...))
		})
	}
}

func TestRequestedRect(t *testing.T) {
	base := geometry.Rect{X: 10, Y: 20, Width: 200, Height: 100}
	all := uint16(xproto.ConfigWindowX | xproto.ConfigWindowY | xproto.ConfigWindowWidth | xproto.ConfigWindowHeight)

	t.Run("only masked fields change", func(t *testing.T) {
		c := wm.NewClient(1, base)
		got := requestedRect(c, xproto.ConfigWindowX|xproto.ConfigWindowWidth, 50, 999, 300, 999)
		assert.Equal(t, geometry.Rect{X: 50, Y: 20, Width: 300, Height: 100}, got)
	})

	t.Run("maximized axis is locked", func(t *testing.T) {
		c := wm.NewClient(1, base)
		c.State |= geometry.StateMaxHorz
		got := requestedRect(c, all, 50, 60, 300, 400)
		assert.Equal(t, geometry.Rect{X: 10, Y: 60, Width: 200, Height: 400}, got)
	})

	t.Run("fullscreen ignores the request", func(t *testing.T) {
		c := wm.NewClient(1, base)
		c.State |= geometry.StateFullscreen
		assert.Equal(t, base, requestedRect(c, all, 0, 0, 1, 1))
	})

	t.Run("size hints apply", func(t *testing.T) {
		c := wm.NewClient(1, base)
		c.Hints.MinWidth = 150
		got := requestedRect(c, xproto.ConfigWindowWidth, 0, 0, 20, 0)
		assert.Equal(t, 150, got.Width)
	})
}

func TestConstrainSize(t *testing.T) {
	h := wm.DefaultSizeHints()
	h.Flags = wm.HintMinSize | wm.HintMaxSize | wm.HintResizeInc | wm.HintBaseSize
	h.MinWidth, h.MinHeight = 100, 50
	h.MaxWidth, h.MaxHeight = 800, 600
	h.BaseWidth, h.BaseHeight = 10, 10
	h.WidthInc, h.HeightInc = 10, 20

	w, ht := constrainSize(355, 95, h)
	assert.Equal(t, 350, w)
	assert.Equal(t, 90, ht)

	w, ht = constrainSize(5, 5, h)
	assert.Equal(t, 100, w)
	assert.Equal(t, 50, ht)

	w, ht = constrainSize(5000, 5000, h)
	assert.Equal(t, 800, w)
	assert.Equal(t, 590, ht)
}

func TestConstrainSize_Aspect(t *testing.T) {
	h := wm.DefaultSizeHints()
	h.Flags = wm.HintAspect
	h.MinAspect = wm.Aspect{X: 1, Y: 1}
	h.MaxAspect = wm.Aspect{X: 1, Y: 1}

	w, ht := constrainSize(400, 200, h)
	assert.Equal(t, w, ht)
}

func TestShouldMap(t *testing.T) {
	c := wm.NewClient(1, geometry.Rect{Width: 10, Height: 10})
	c.Desktop = 1
	assert.True(t, shouldMap(c, 1))
	assert.False(t, shouldMap(c, 0))

	c.State |= geometry.StateSticky
	assert.True(t, shouldMap(c, 0))

	c.State |= geometry.StateHidden
	assert.False(t, shouldMap(c, 1))
}

func TestTranslateKey(t *testing.T) {
	cases := map[string]interact.Key{
		"Up":       interact.KeyUp,
		"KP_Down":  interact.KeyDown,
		"h":        interact.KeyLeft,
		"Right":    interact.KeyRight,
		"KP_Enter": interact.KeyReturn,
		"Escape":   interact.KeyEscape,
		"a":        interact.KeyOther,
		"":         interact.KeyOther,
	}
	for name, want := range cases {
		assert.Equal(t, want, translateKey(name), name)
	}
}

func TestTranslateMods(t *testing.T) {
	assert.Equal(t, interact.Modifier(0), translateMods(0))
	assert.Equal(t, interact.ModPrecise, translateMods(xproto.ModMaskControl))
	assert.Equal(t, interact.ModFast, translateMods(xproto.ModMaskShift|xproto.ModMaskLock))
	assert.Equal(t, interact.ModPrecise|interact.ModFast,
		translateMods(xproto.ModMaskControl|xproto.ModMaskShift))
}

func TestClientAt_TopmostVisibleWins(t *testing.T) {
	model := wm.NewModel()
	model.Desktops = 2

	bottom := mapped(1, geometry.Rect{X: 0, Y: 0, Width: 400, Height: 400})
	top := mapped(2, geometry.Rect{X: 100, Y: 100, Width: 400, Height: 400})
	other := mapped(3, geometry.Rect{X: 100, Y: 100, Width: 400, Height: 400})
	other.Desktop = 1
	hidden := mapped(4, geometry.Rect{X: 100, Y: 100, Width: 400, Height: 400})
	hidden.State |= geometry.StateHidden
	for _, c := range []*wm.Client{bottom, top, other, hidden} {
		model.Stack.Add(c)
	}

	got, ok := clientAt(model, testMetrics, 200, 200)
	require.True(t, ok)
	assert.Equal(t, top.ID, got.ID)

	got, ok = clientAt(model, testMetrics, 50, 50)
	require.True(t, ok)
	assert.Equal(t, bottom.ID, got.ID)

	_, ok = clientAt(model, testMetrics, 1500, 1500)
	assert.False(t, ok)

	above := mapped(5, geometry.Rect{X: 0, Y: 0, Width: 50, Height: 50})
	above.Layer = wm.LayerAbove
	model.Stack.Add(above)
	model.Stack.Raise(bottom.ID)
	got, ok = clientAt(model, testMetrics, 10, 10)
	require.True(t, ok)
	assert.Equal(t, above.ID, got.ID)
}

func TestVanished(t *testing.T) {
	managed := []wm.ClientID{5, 1, 3}
	present := []xproto.Window{1, 2}
	assert.Equal(t, []wm.ClientID{3, 5}, vanished(managed, present))
	assert.Empty(t, vanished(managed, []xproto.Window{1, 3, 5}))
}
