package interact

import (
	"testing"

	"github.com/1broseidon/floatwm/internal/border"
	"github.com/1broseidon/floatwm/internal/geometry"
	"github.com/1broseidon/floatwm/internal/placement"
	"github.com/1broseidon/floatwm/internal/platform"
	"github.com/1broseidon/floatwm/internal/snap"
	"github.com/1broseidon/floatwm/internal/wm"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	denyPointer  bool
	denyKeyboard bool
	buttons      uint16

	pointerGrabs  int
	keyboardGrabs int
	pointerHeld   bool
	keyboardHeld  bool
	cursor        platform.Cursor

	configured  []geometry.Rect
	stateWrites int
}

var _ platform.Backend = (*fakeBackend)(nil)

func (b *fakeBackend) Screens() ([]wm.Screen, error) { return nil, nil }
func (b *fakeBackend) PointerPosition() (int, int, bool) { return 0, 0, false }
func (b *fakeBackend) PointerButtons() uint16 { return b.buttons }
func (b *fakeBackend) WriteState(c *wm.Client) error { b.stateWrites++; return nil }
func (b *fakeBackend) UngrabPointer() { b.pointerHeld = false }
func (b *fakeBackend) UngrabKeyboard() { b.keyboardHeld = false }

func (b *fakeBackend) GrabPointer(cursor platform.Cursor) bool {
	b.pointerGrabs++
	if b.denyPointer {
		return false
	}
	b.cursor = cursor
	b.pointerHeld = true
	return true
}

func (b *fakeBackend) GrabKeyboard() bool {
	b.keyboardGrabs++
	if b.denyKeyboard {
		return false
	}
	b.keyboardHeld = true
	return true
}

func (b *fakeBackend) Configure(c *wm.Client, in geometry.Insets) error {
	b.configured = append(b.configured, c.Rect)
	return nil
}

type fakeFeedback struct {
	outlines []geometry.Rect
	statuses []string
	hidden   int
}

func (f *fakeFeedback) ShowOutline(frame geometry.Rect) { f.outlines = append(f.outlines, frame) }
func (f *fakeFeedback) HideOutline() { f.hidden++ }
func (f *fakeFeedback) ShowStatus(_ geometry.Rect, s string) { f.statuses = append(f.statuses, s) }
func (f *fakeFeedback) HideStatus() {}

type harness struct {
	ctl      *Controller
	backend  *fakeBackend
	feedback *fakeFeedback
	model    *wm.Model
	solver   *placement.Solver
	notified []wm.ClientID
}

func newHarness() *harness {
	h := &harness{
		backend:  &fakeBackend{buttons: platform.ButtonMask(1)},
		feedback: &fakeFeedback{},
		model:    wm.NewModel(),
	}
	h.model.Screens = []wm.Screen{{Index: 0, Rect: geometry.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}}}
	h.solver = placement.NewSolver(h.model, nil, testSettings().Metrics)
	h.ctl = New(Options{
		Backend:    h.backend,
		Feedback:   h.feedback,
		World:      h.model,
		Screens:    func() []wm.Screen { return h.model.Screens },
		Placer:     h.solver,
		OnGeometry: func(c *wm.Client) { h.notified = append(h.notified, c.ID) },
	})
	return h
}

func (h *harness) add(id wm.ClientID, r geometry.Rect) *wm.Client {
	c := wm.NewClient(id, r)
	c.State |= geometry.StateMapped
	h.model.Stack.Add(c)
	return c
}

func testSettings() Settings {
	s := DefaultSettings()
	s.Snap.Mode = snap.ModeNone
	return s
}

func motion(x, y int) Event { return Event{Kind: EventMotion, RootX: x, RootY: y} }

func release() Event { return Event{Kind: EventButtonRelease, Button: 1} }

func press(k Key, mods Modifier) Event { return Event{Kind: EventKeyPress, Key: k, Mods: mods} }

func TestBeginResize_RefusedWithoutResizeDecoration(t *testing.T) {
	r := require.New(t)
	h := newHarness()
	c := h.add(1, geometry.Rect{X: 100, Y: 100, Width: 300, Height: 200})
	c.Decor &^= geometry.DecorResize
	before := *c

	r.False(h.ctl.BeginResize(c, border.Resize|border.East, 400, 200, 1, testSettings()))
	r.Zero(h.backend.pointerGrabs)
	r.Zero(h.backend.keyboardGrabs)
	r.Nil(h.ctl.Active())
	r.Equal(TagIdle, h.ctl.State(c.ID))
	r.Equal(before, *c)
}

func TestBeginMove_RefusedWhenFullscreenOrImmovable(t *testing.T) {
	r := require.New(t)
	h := newHarness()
	full := h.add(1, geometry.Rect{Width: 1920, Height: 1080})
	full.State |= geometry.StateFullscreen
	fixed := h.add(2, geometry.Rect{Width: 100, Height: 100})
	fixed.Decor &^= geometry.DecorMove

	r.False(h.ctl.BeginMove(full, 10, 10, 1, testSettings()))
	r.False(h.ctl.BeginMove(fixed, 10, 10, 1, testSettings()))
	r.Zero(h.backend.pointerGrabs)
}

func TestResize_EastEdgeKeepsSixteenByNine(t *testing.T) {
	r := require.New(t)
	h := newHarness()
	c := h.add(1, geometry.Rect{X: 0, Y: 0, Width: 1280, Height: 720})
	c.Hints.Flags |= wm.HintAspect
	c.Hints.MinAspect = wm.Aspect{X: 16, Y: 9}
	c.Hints.MaxAspect = wm.Aspect{X: 16, Y: 9}

	r.True(h.ctl.BeginResize(c, border.Resize|border.East, 1284, 360, 1, testSettings()))
	r.Equal(platform.CursorEast, h.backend.cursor)
	r.Equal(TagResizing, h.ctl.State(c.ID))

	r.True(h.ctl.Step(motion(1284+160, 360)))
	r.Equal(1440, c.Rect.Width)
	r.Equal(810, c.Rect.Height)
	r.Equal(1440*9, c.Rect.Height*16)

	r.True(h.ctl.Step(release()))
	r.Equal(geometry.Rect{X: 0, Y: 0, Width: 1440, Height: 810}, c.Rect)
	r.False(h.backend.pointerHeld)
	r.Nil(h.ctl.Active())
}

func TestResize_QuantizedAndBounded(t *testing.T) {
	r := require.New(t)
	h := newHarness()
	c := h.add(1, geometry.Rect{X: 500, Y: 400, Width: 302, Height: 202})
	c.Hints = wm.SizeHints{
		Flags:     wm.HintMinSize | wm.HintMaxSize | wm.HintResizeInc | wm.HintBaseSize,
		MinWidth:  52,
		MinHeight: 22,
		MaxWidth:  802,
		MaxHeight: 602,
		BaseWidth: 2, BaseHeight: 2,
		WidthInc: 10, HeightInc: 5,
	}.Normalize()

	check := func() {
		r.Zero((c.Rect.Width-2)%10, "width %d", c.Rect.Width)
		r.Zero((c.Rect.Height-2)%5, "height %d", c.Rect.Height)
		r.GreaterOrEqual(c.Rect.Width, 52)
		r.LessOrEqual(c.Rect.Width, 802)
		r.GreaterOrEqual(c.Rect.Height, 22)
		r.LessOrEqual(c.Rect.Height, 602)
	}

	r.True(h.ctl.BeginResize(c, border.Resize|border.North|border.West, 500, 400, 1, testSettings()))
	right, bottom := c.Rect.Right(), c.Rect.Bottom()
	for _, p := range [][2]int{{493, 391}, {457, 377}, {-300, -300}, {480, 380}, {790, 590}, {1200, 1000}} {
		h.ctl.Step(motion(p[0], p[1]))
		check()
		r.Equal(right, c.Rect.Right(), "west drag must keep the east edge")
		r.Equal(bottom, c.Rect.Bottom(), "north drag must keep the south edge")
	}
	h.ctl.Step(release())

	r.True(h.ctl.BeginResize(c, border.Resize|border.South|border.East, 0, 0, 1, testSettings()))
	for _, p := range [][2]int{{7, 3}, {33, 17}, {5000, 5000}, {-5000, -5000}} {
		h.ctl.Step(motion(p[0], p[1]))
		check()
	}
	h.ctl.Step(release())
}

func TestResize_BaseSizeActsAsMinimum(t *testing.T) {
	r := require.New(t)
	h := newHarness()
	c := h.add(1, geometry.Rect{X: 100, Y: 100, Width: 101, Height: 101})
	c.Hints = wm.SizeHints{
		Flags:     wm.HintResizeInc | wm.HintBaseSize,
		BaseWidth: 10, BaseHeight: 10,
		WidthInc: 7, HeightInc: 7,
	}.Normalize()

	r.True(h.ctl.BeginResize(c, border.Resize|border.South|border.East, 0, 0, 1, testSettings()))
	for _, p := range [][2]int{{-400, -400}, {-20, -13}, {300, 300}} {
		h.ctl.Step(motion(p[0], p[1]))
		r.GreaterOrEqual(c.Rect.Width, 10)
		r.GreaterOrEqual(c.Rect.Height, 10)
		r.Zero((c.Rect.Width-10)%7, "width %d", c.Rect.Width)
		r.Zero((c.Rect.Height-10)%7, "height %d", c.Rect.Height)
	}
	h.ctl.Step(motion(-400, -400))
	r.Equal(10, c.Rect.Width)
	r.Equal(10, c.Rect.Height)
}

func TestResize_WestDragKeepsLastValidSize(t *testing.T) {
	r := require.New(t)
	h := newHarness()
	c := h.add(1, geometry.Rect{X: 100, Y: 100, Width: 200, Height: 200})
	c.Hints.MinWidth = 150

	r.True(h.ctl.BeginResize(c, border.Resize|border.West, 100, 150, 1, testSettings()))
	h.ctl.Step(motion(140, 150))
	r.Equal(geometry.Rect{X: 140, Y: 100, Width: 160, Height: 200}, c.Rect)
	// Past the minimum the west edge stays where it last fit.
	h.ctl.Step(motion(190, 150))
	r.Equal(geometry.Rect{X: 140, Y: 100, Width: 160, Height: 200}, c.Rect)
}

func TestMove_ThresholdGatesCommit(t *testing.T) {
	r := require.New(t)
	h := newHarness()
	c := h.add(1, geometry.Rect{X: 100, Y: 100, Width: 300, Height: 200})

	r.True(h.ctl.BeginMove(c, 150, 110, 1, testSettings()))
	r.Equal(platform.CursorMove, h.backend.cursor)
	s := h.ctl.Active()
	r.Equal(PhaseArmed, s.Phase())

	h.ctl.Step(motion(153, 107))
	r.Equal(PhaseArmed, s.Phase())
	r.Empty(h.backend.configured)
	r.Equal(geometry.Rect{X: 100, Y: 100, Width: 300, Height: 200}, c.Rect)

	h.ctl.Step(motion(154, 110))
	r.Equal(PhaseCommitting, s.Phase())
	r.Equal(104, c.Rect.X)
	r.Len(h.backend.configured, 1)
	r.Equal([]string{"104, 100"}, h.feedback.statuses)
	r.Equal([]wm.ClientID{1}, h.notified)

	h.ctl.Step(release())
	r.Equal(PhaseTerminal, s.Phase())
	r.True(s.Committed())
	r.Equal(104, c.Rect.X)
}

func TestMove_ReleaseBeforeThresholdChangesNothing(t *testing.T) {
	r := require.New(t)
	h := newHarness()
	c := h.add(1, geometry.Rect{X: 100, Y: 100, Width: 300, Height: 200})

	r.True(h.ctl.BeginMove(c, 150, 110, 1, testSettings()))
	h.ctl.Step(motion(152, 111))
	h.ctl.Step(release())

	r.Equal(geometry.Rect{X: 100, Y: 100, Width: 300, Height: 200}, c.Rect)
	r.Empty(h.backend.configured)
	r.False(h.backend.pointerHeld)
}

func TestMove_EscapeKeepsCommittedGeometry(t *testing.T) {
	r := require.New(t)
	h := newHarness()
	c := h.add(1, geometry.Rect{X: 100, Y: 100, Width: 300, Height: 200})

	r.True(h.ctl.BeginMove(c, 200, 150, 1, testSettings()))
	h.ctl.Step(motion(300, 250))
	r.Equal(geometry.Rect{X: 200, Y: 200, Width: 300, Height: 200}, c.Rect)

	r.True(h.ctl.Step(press(KeyEscape, 0)))
	r.Equal(geometry.Rect{X: 200, Y: 200, Width: 300, Height: 200}, c.Rect)
	r.Equal(c.Rect, h.backend.configured[len(h.backend.configured)-1])
	r.Nil(h.ctl.Active())
	r.False(h.backend.pointerHeld)
}

func TestMove_EscapeBeforeThresholdChangesNothing(t *testing.T) {
	r := require.New(t)
	h := newHarness()
	start := geometry.Rect{X: 100, Y: 100, Width: 300, Height: 200}
	c := h.add(1, start)

	r.True(h.ctl.BeginMove(c, 200, 150, 1, testSettings()))
	h.ctl.Step(motion(201, 151))
	r.True(h.ctl.Step(press(KeyEscape, 0)))
	r.Equal(start, c.Rect)
	r.Empty(h.backend.configured)
	r.Nil(h.ctl.Active())
}

func TestMove_CancelRollsBackCommittedMove(t *testing.T) {
	r := require.New(t)
	h := newHarness()
	start := geometry.Rect{X: 100, Y: 100, Width: 300, Height: 200}
	c := h.add(1, start)

	r.True(h.ctl.BeginMove(c, 150, 110, 1, testSettings()))
	h.ctl.Step(motion(400, 500))
	r.NotEqual(start, c.Rect)

	h.ctl.Cancel()
	r.Equal(start, c.Rect)
	r.Equal(start, h.backend.configured[len(h.backend.configured)-1])
	r.False(h.backend.pointerHeld)
}

func TestMove_KeyboardNudges(t *testing.T) {
	r := require.New(t)
	h := newHarness()
	c := h.add(1, geometry.Rect{X: 100, Y: 100, Width: 300, Height: 200})

	r.True(h.ctl.BeginMove(c, 250, 200, 0, testSettings()))
	r.True(h.backend.keyboardHeld)

	// Pointer motion does not move keyboard sessions.
	r.True(h.ctl.Step(motion(900, 900)))
	r.Equal(100, c.Rect.X)
	// Button releases belong to the normal handlers.
	r.False(h.ctl.Step(release()))

	h.ctl.Step(press(KeyRight, 0))
	r.Equal(110, c.Rect.X)
	h.ctl.Step(press(KeyRight, ModPrecise))
	r.Equal(111, c.Rect.X)
	h.ctl.Step(press(KeyDown, ModFast))
	r.Equal(130, c.Rect.Y)
	h.ctl.Step(press(KeyLeft, 0))
	h.ctl.Step(press(KeyUp, 0))
	r.Equal(geometry.Rect{X: 101, Y: 120, Width: 300, Height: 200}, c.Rect)

	r.True(h.ctl.Step(Event{Kind: EventKeyRelease}))
	r.True(h.ctl.Step(press(KeyReturn, 0)))
	r.Nil(h.ctl.Active())
	r.False(h.backend.keyboardHeld)
	r.False(h.backend.pointerHeld)
	r.Equal(geometry.Rect{X: 101, Y: 120, Width: 300, Height: 200}, c.Rect)
}

func TestMove_PreciseNudgesRespectThreshold(t *testing.T) {
	r := require.New(t)
	h := newHarness()
	c := h.add(1, geometry.Rect{X: 100, Y: 100, Width: 300, Height: 200})

	r.True(h.ctl.BeginMove(c, 0, 0, 0, testSettings()))
	for i := 0; i < 3; i++ {
		h.ctl.Step(press(KeyRight, ModPrecise))
	}
	r.Equal(100, c.Rect.X)
	h.ctl.Step(press(KeyRight, ModPrecise))
	r.Equal(104, c.Rect.X)

	// Any other key ends the session and keeps the result.
	h.ctl.Step(press(KeyOther, 0))
	r.Nil(h.ctl.Active())
	r.Equal(104, c.Rect.X)
}

func TestResize_KeyboardStepsRoundToIncrements(t *testing.T) {
	r := require.New(t)
	h := newHarness()
	c := h.add(1, geometry.Rect{X: 100, Y: 100, Width: 307, Height: 207})
	c.Hints.Flags |= wm.HintResizeInc | wm.HintBaseSize
	c.Hints.WidthInc, c.Hints.HeightInc = 7, 12
	c.Hints.BaseWidth, c.Hints.BaseHeight = 6, 15

	r.True(h.ctl.BeginResize(c, border.Resize|border.South|border.East, 0, 0, 0, testSettings()))
	h.ctl.Step(press(KeyRight, 0))
	r.Equal(314, c.Rect.Width)
	h.ctl.Step(press(KeyDown, 0))
	r.Equal(219, c.Rect.Height)
	r.Equal([]string{"44 x 16", "44 x 17"}, h.feedback.statuses)
}

func TestController_RefusesSecondSession(t *testing.T) {
	r := require.New(t)
	h := newHarness()
	a := h.add(1, geometry.Rect{X: 100, Y: 100, Width: 300, Height: 200})
	b := h.add(2, geometry.Rect{X: 600, Y: 100, Width: 300, Height: 200})

	r.True(h.ctl.BeginMove(a, 150, 110, 1, testSettings()))
	h.ctl.Step(motion(170, 130))
	r.False(h.ctl.BeginMove(b, 650, 110, 1, testSettings()))
	r.False(h.ctl.BeginResize(a, border.Resize|border.East, 650, 110, 1, testSettings()))
	r.Equal(1, h.backend.pointerGrabs)
	r.Equal(TagMoving, h.ctl.State(a.ID))
	r.Equal(TagIdle, h.ctl.State(b.ID))
}

func TestController_DeniedGrabsReleaseEverything(t *testing.T) {
	r := require.New(t)
	h := newHarness()
	c := h.add(1, geometry.Rect{X: 100, Y: 100, Width: 300, Height: 200})
	before := *c

	h.backend.denyPointer = true
	r.False(h.ctl.BeginMove(c, 0, 0, 1, testSettings()))
	r.Nil(h.ctl.Active())

	h.backend.denyPointer = false
	h.backend.denyKeyboard = true
	r.False(h.ctl.BeginMove(c, 0, 0, 0, testSettings()))
	r.False(h.backend.pointerHeld)
	r.Nil(h.ctl.Active())
	r.Equal(before, *c)
}

func TestController_ButtonAlreadyReleased(t *testing.T) {
	r := require.New(t)
	h := newHarness()
	c := h.add(1, geometry.Rect{X: 100, Y: 100, Width: 300, Height: 200})
	h.backend.buttons = 0

	r.False(h.ctl.BeginMove(c, 0, 0, 1, testSettings()))
	r.Equal(1, h.backend.pointerGrabs)
	r.False(h.backend.pointerHeld)
	r.Nil(h.ctl.Active())
	r.Empty(h.backend.configured)
	r.False(h.ctl.Step(motion(100, 100)))
}

func TestMove_UnmaximizesMovedAxisAndRestoresTheOther(t *testing.T) {
	r := require.New(t)
	h := newHarness()
	c := h.add(1, geometry.Rect{X: 100, Y: 100, Width: 400, Height: 300})
	h.solver.PlaceMaximized(c, true, true)
	r.Equal(geometry.Rect{X: 4, Y: 20, Width: 1912, Height: 1056}, c.Rect)

	r.True(h.ctl.BeginMove(c, 960, 10, 1, testSettings()))
	h.ctl.Step(motion(1000, 12))

	r.False(c.State.Has(geometry.StateMaxHorz))
	r.True(c.State.Has(geometry.StateMaxVert))
	r.Equal(400, c.Rect.Width)
	r.Equal(960-200+40, c.Rect.X)
	r.Equal(20, c.Rect.Y, "vertically maximized axis stays put")

	h.ctl.Step(motion(1100, 300))
	r.Equal(20, c.Rect.Y)

	h.ctl.Step(release())
	r.Equal(geometry.Rect{X: 960 - 200 + 140, Y: 20, Width: 400, Height: 1056}, c.Rect)
	r.True(c.State.Has(geometry.StateMaxVert))
	r.Equal(1, h.backend.stateWrites)
}

func TestMove_CancelRestoresMaximizedState(t *testing.T) {
	r := require.New(t)
	h := newHarness()
	c := h.add(1, geometry.Rect{X: 100, Y: 100, Width: 400, Height: 300})
	h.solver.PlaceMaximized(c, true, true)
	maximized := *c

	r.True(h.ctl.BeginMove(c, 960, 10, 1, testSettings()))
	h.ctl.Step(motion(1200, 400))
	r.False(c.State.Any(geometry.StateMaximized))

	h.ctl.Cancel()
	r.Equal(maximized, *c)
}

func TestMove_OutlineFeedbackAppliesAtEnd(t *testing.T) {
	r := require.New(t)
	h := newHarness()
	c := h.add(1, geometry.Rect{X: 100, Y: 100, Width: 300, Height: 200})
	s := testSettings()
	s.MoveFeedback = FeedbackOutline

	r.True(h.ctl.BeginMove(c, 150, 110, 1, s))
	h.ctl.Step(motion(200, 110))
	h.ctl.Step(motion(250, 110))
	r.Empty(h.backend.configured)
	r.Len(h.feedback.outlines, 2)
	r.Equal(c.Frame(s.Metrics), h.feedback.outlines[1])
	// Pagers follow every outline step.
	r.Equal([]wm.ClientID{1, 1}, h.notified)

	h.ctl.Step(release())
	r.Equal([]geometry.Rect{{X: 200, Y: 100, Width: 300, Height: 200}}, h.backend.configured)
	r.Equal([]wm.ClientID{1, 1, 1}, h.notified)
	r.Positive(h.feedback.hidden)
}

func TestMove_OutlineCancelNotifiesWithoutConfigure(t *testing.T) {
	r := require.New(t)
	h := newHarness()
	start := geometry.Rect{X: 100, Y: 100, Width: 300, Height: 200}
	c := h.add(1, start)
	s := testSettings()
	s.MoveFeedback = FeedbackOutline

	r.True(h.ctl.BeginMove(c, 150, 110, 1, s))
	h.ctl.Step(motion(200, 110))
	h.ctl.Cancel()

	r.Equal(start, c.Rect)
	r.Empty(h.backend.configured)
	r.Equal([]wm.ClientID{1, 1}, h.notified)
}

func TestMove_SnapsToNeighbour(t *testing.T) {
	r := require.New(t)
	h := newHarness()
	h.add(1, geometry.Rect{X: 4, Y: 20, Width: 392, Height: 276}) // frame (0,0,400,300)
	c := h.add(2, geometry.Rect{X: 504, Y: 20, Width: 392, Height: 276})
	s := testSettings()
	s.Snap = snap.Engine{Mode: snap.ModeClient, Distance: 10, Metrics: s.Metrics}

	r.True(h.ctl.BeginMove(c, 600, 10, 1, s))
	h.ctl.Step(motion(506, 10))
	r.Equal(404, c.Rect.X)
}

func TestShutdown(t *testing.T) {
	r := require.New(t)

	h := newHarness()
	c := h.add(1, geometry.Rect{X: 100, Y: 100, Width: 300, Height: 200})
	r.True(h.ctl.BeginMove(c, 0, 0, 0, testSettings()))
	h.ctl.Step(press(KeyRight, 0))
	h.ctl.Shutdown()
	r.Equal(110, c.Rect.X)
	r.False(h.backend.pointerHeld)
	r.False(h.backend.keyboardHeld)
	r.Nil(h.ctl.Active())

	h = newHarness()
	c = h.add(1, geometry.Rect{X: 100, Y: 100, Width: 300, Height: 200})
	r.True(h.ctl.BeginMove(c, 0, 0, 1, testSettings()))
	h.ctl.Step(motion(1, 1))
	h.ctl.Shutdown()
	r.Equal(100, c.Rect.X)
	r.False(h.backend.pointerHeld)

	// Without a session Shutdown does nothing.
	h.ctl.Shutdown()
}

func TestDrop(t *testing.T) {
	r := require.New(t)
	h := newHarness()
	c := h.add(1, geometry.Rect{X: 100, Y: 100, Width: 300, Height: 200})
	r.True(h.ctl.BeginMove(c, 0, 0, 1, testSettings()))
	h.ctl.Step(motion(50, 50))
	configured := len(h.backend.configured)

	h.ctl.Drop(2)
	r.NotNil(h.ctl.Active())
	h.ctl.Drop(1)
	r.Nil(h.ctl.Active())
	r.False(h.backend.pointerHeld)
	r.Len(h.backend.configured, configured)
}

func TestParseFeedbackMode(t *testing.T) {
	r := require.New(t)
	m, err := ParseFeedbackMode("Outline")
	r.NoError(err)
	r.Equal(FeedbackOutline, m)
	_, err = ParseFeedbackMode("wireframe")
	r.Error(err)
	r.Equal("committing", PhaseCommitting.String())
}
