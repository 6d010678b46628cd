// Package interact runs interactive move and resize sessions.
//
// A session is a step function: the event loop feeds it one event at a time
// through Controller.Step and keeps dispatching everything else as usual.
package interact

import (
	"fmt"
	"log/slog"

	"github.com/1broseidon/floatwm/internal/border"
	"github.com/1broseidon/floatwm/internal/geometry"
	"github.com/1broseidon/floatwm/internal/platform"
	"github.com/1broseidon/floatwm/internal/snap"
	"github.com/1broseidon/floatwm/internal/wm"
)

// Feedback draws the outline and status text of a session.
type Feedback interface {
	ShowOutline(frame geometry.Rect)
	HideOutline()
	ShowStatus(frame geometry.Rect, text string)
	HideStatus()
}

// Placer re-applies maximization.
type Placer interface {
	PlaceMaximized(c *wm.Client, horz, vert bool)
	Restore(c *wm.Client, horz, vert bool)
}

// Options configures a Controller.
type Options struct {
	Backend  platform.Backend
	Feedback Feedback
	World    snap.World
	// Screens returns the current screen layout.
	Screens func() []wm.Screen
	Placer  Placer
	Logger  *slog.Logger
	// OnGeometry is called after every visible geometry change.
	OnGeometry func(c *wm.Client)
}

// Controller owns the single active session. It is driven from the event
// dispatch thread and is not safe for concurrent use.
type Controller struct {
	backend    platform.Backend
	feedback   Feedback
	world      snap.World
	screens    func() []wm.Screen
	placer     Placer
	logger     *slog.Logger
	onGeometry func(c *wm.Client)

	session *Session
}

// New creates a controller.
func New(opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	screens := opts.Screens
	if screens == nil {
		screens = func() []wm.Screen { return nil }
	}
	return &Controller{
		backend:    opts.Backend,
		feedback:   opts.Feedback,
		world:      opts.World,
		screens:    screens,
		placer:     opts.Placer,
		logger:     logger,
		onGeometry: opts.OnGeometry,
	}
}

// Active returns the running session, if any.
func (c *Controller) Active() *Session { return c.session }

// State reports what the controller is doing with client id.
func (c *Controller) State(id wm.ClientID) Tag {
	s := c.session
	if s == nil || s.Client.ID != id {
		return TagIdle
	}
	if s.Kind == KindResize {
		return TagResizing
	}
	return TagMoving
}

// BeginMove starts moving cl. button is the pointer button holding the
// drag, or 0 when started from the keyboard. It returns false when the
// session did not start or ended immediately.
func (c *Controller) BeginMove(cl *wm.Client, rootX, rootY, button int, settings Settings) bool {
	if !cl.Decor.Has(geometry.DecorMove) {
		c.logger.Debug("move refused", "client", cl.ID, "reason", "not movable")
		return false
	}
	return c.begin(&Session{
		Kind:   KindMove,
		Client: cl,
		Button: button,
		Action: border.Move,
	}, rootX, rootY, settings)
}

// BeginResize starts resizing cl along the edges in action. Edges on a
// maximized axis are dropped; nothing starts if none remain.
func (c *Controller) BeginResize(cl *wm.Client, action border.Action, rootX, rootY, button int, settings Settings) bool {
	if !cl.Decor.Has(geometry.DecorResize) {
		c.logger.Debug("resize refused", "client", cl.ID, "reason", "not resizable")
		return false
	}
	edges := action.Directions()
	if cl.State.Has(geometry.StateMaxHorz) {
		edges &^= border.East | border.West
	}
	if cl.State.Has(geometry.StateMaxVert) || cl.State.Has(geometry.StateShaded) {
		edges &^= border.North | border.South
	}
	if edges == 0 {
		c.logger.Debug("resize refused", "client", cl.ID, "reason", "no free edge")
		return false
	}
	return c.begin(&Session{
		Kind:   KindResize,
		Client: cl,
		Button: button,
		Action: border.Resize | edges,
	}, rootX, rootY, settings)
}

func (c *Controller) begin(s *Session, rootX, rootY int, settings Settings) bool {
	cl := s.Client
	if c.session != nil {
		c.logger.Debug("session refused", "client", cl.ID, "reason", "busy", "active", c.session.Client.ID)
		return false
	}
	if cl.State.Has(geometry.StateFullscreen) {
		c.logger.Debug("session refused", "client", cl.ID, "reason", "fullscreen")
		return false
	}

	if !c.backend.GrabPointer(platform.CursorFor(s.Action)) {
		c.logger.Debug("pointer grab denied", "client", cl.ID)
		return false
	}
	if s.keyboard() && !c.backend.GrabKeyboard() {
		c.backend.UngrabPointer()
		c.logger.Debug("keyboard grab denied", "client", cl.ID)
		return false
	}

	if settings.KeyStep <= 0 {
		settings.KeyStep = DefaultKeyStep
	}
	s.settings = settings
	s.anchorX, s.anchorY = rootX, rootY
	s.pointerX, s.pointerY = rootX, rootY
	s.base = cl.Rect
	s.origRect = cl.Rect
	s.origSaved = cl.Saved
	s.origState = cl.State
	s.phase = PhaseArmed
	c.session = s

	if !s.keyboard() && c.backend.PointerButtons()&platform.ButtonMask(s.Button) == 0 {
		c.logger.Debug("button released before grab", "client", cl.ID, "button", s.Button)
		c.finish(s, true)
		return false
	}

	c.logger.Debug("session started", "kind", s.Kind, "client", cl.ID, "button", s.Button, "action", s.Action)
	return true
}

// Relevant reports whether ev belongs to the running session.
func (c *Controller) Relevant(ev Event) bool {
	s := c.session
	if s == nil {
		return false
	}
	switch ev.Kind {
	case EventMotion, EventKeyPress, EventKeyRelease:
		return true
	case EventButtonRelease:
		return !s.keyboard()
	default:
		return false
	}
}

// Step feeds one event to the running session and reports whether it was
// consumed.
func (c *Controller) Step(ev Event) bool {
	if !c.Relevant(ev) {
		return false
	}
	s := c.session
	switch ev.Kind {
	case EventMotion:
		if s.keyboard() {
			return true
		}
		s.pointerX, s.pointerY = ev.RootX, ev.RootY
		c.update(s)
	case EventButtonRelease:
		c.finish(s, false)
	case EventKeyPress:
		c.key(s, ev)
	case EventKeyRelease:
	}
	return true
}

// Cancel ends the running session and restores the starting geometry.
func (c *Controller) Cancel() {
	if s := c.session; s != nil {
		c.finish(s, true)
	}
}

// Shutdown ends the running session for process exit: committed geometry
// is kept, anything else is rolled back. Grabs are always released.
func (c *Controller) Shutdown() {
	if s := c.session; s != nil {
		c.finish(s, false)
	}
}

// Drop abandons the session of a client that went away without touching
// its window.
func (c *Controller) Drop(id wm.ClientID) {
	s := c.session
	if s == nil || s.Client.ID != id {
		return
	}
	c.release(s)
	c.logger.Debug("session dropped", "client", id)
}

func (c *Controller) key(s *Session, ev Event) {
	step := s.settings.KeyStep
	if ev.Mods&ModPrecise != 0 {
		step = max(1, step/10)
	}
	if ev.Mods&ModFast != 0 {
		step *= 3
	}
	stepX, stepY := step, step
	if s.Kind == KindResize {
		stepX = roundStep(step, s.Client.Hints.WidthInc)
		stepY = roundStep(step, s.Client.Hints.HeightInc)
	}

	switch ev.Key {
	case KeyLeft:
		s.nudgeX -= stepX
	case KeyRight:
		s.nudgeX += stepX
	case KeyUp:
		s.nudgeY -= stepY
	case KeyDown:
		s.nudgeY += stepY
	default:
		// Return, Escape and unknown keys all end the session; it commits
		// only once the threshold was crossed.
		c.finish(s, false)
		return
	}
	c.update(s)
}

func roundStep(step, inc int) int {
	if inc <= 1 {
		return step
	}
	return max(inc, step/inc*inc)
}

func (c *Controller) delta(s *Session) (int, int) {
	return s.pointerX - s.anchorX + s.nudgeX, s.pointerY - s.anchorY + s.nudgeY
}

func (c *Controller) update(s *Session) {
	dx, dy := c.delta(s)
	if !s.committed {
		t := s.settings.Threshold
		if abs(dx) <= t && abs(dy) <= t {
			return
		}
		c.commit(s, dx, dy)
	}

	switch s.Kind {
	case KindMove:
		c.stepMove(s, dx, dy)
	case KindResize:
		cl := s.Client
		cl.Rect = resizeStep(s.base, cl.Rect, cl.Hints, s.Action, dx, dy)
	}
	c.present(s)
}

// commit is the first threshold crossing. Maximized axes the pointer moved
// along are restored and the window is re-centred under the pointer.
func (c *Controller) commit(s *Session, dx, dy int) {
	s.committed = true
	s.phase = PhaseCommitting
	cl := s.Client

	if s.Kind == KindMove && cl.State.Any(geometry.StateMaximized) {
		t := s.settings.Threshold
		horz := cl.State.Has(geometry.StateMaxHorz) && abs(dx) > t
		vert := cl.State.Has(geometry.StateMaxVert) && abs(dy) > t
		if horz || vert {
			if c.placer != nil {
				c.placer.Restore(cl, horz, vert)
			}
			in := cl.Insets(s.settings.Metrics)
			if horz {
				s.unmaxed |= geometry.StateMaxHorz
				s.base.Width = cl.Rect.Width
				s.base.X = s.anchorX - cl.Rect.Width/2
			}
			if vert {
				s.unmaxed |= geometry.StateMaxVert
				s.base.Height = cl.Rect.Height
				s.base.Y = s.anchorY + in.North/2
			}
		}
	}
	c.logger.Debug("session committed", "kind", s.Kind, "client", cl.ID, "unmaximized", s.unmaxed)
}

func (c *Controller) stepMove(s *Session, dx, dy int) {
	cl := s.Client
	lockX := cl.State.Has(geometry.StateMaxHorz)
	lockY := cl.State.Has(geometry.StateMaxVert)

	cl.Rect.X, cl.Rect.Y = s.base.X, s.base.Y
	if !lockX {
		cl.Rect.X += dx
	}
	if !lockY {
		cl.Rect.Y += dy
	}
	if c.world == nil {
		return
	}
	x, y := s.settings.Snap.Snap(cl, c.world, c.screens())
	if !lockX {
		cl.Rect.X = x
	}
	if !lockY {
		cl.Rect.Y = y
	}
}

func (c *Controller) present(s *Session) {
	cl := s.Client
	in := cl.Insets(s.settings.Metrics)
	frame := cl.Frame(s.settings.Metrics)

	if s.feedback() == FeedbackOutline {
		if c.feedback != nil {
			c.feedback.ShowOutline(frame)
		}
	} else if err := c.backend.Configure(cl, in); err != nil {
		c.logger.Warn("failed to configure client", "client", cl.ID, "error", err)
	}
	if c.feedback != nil {
		c.feedback.ShowStatus(frame, statusText(s))
	}
	c.notify(cl)
}

func statusText(s *Session) string {
	r := s.Client.Rect
	if s.Kind == KindMove {
		return fmt.Sprintf("%d, %d", r.X, r.Y)
	}
	h := s.Client.Hints
	return fmt.Sprintf("%d x %d",
		(r.Width-h.BaseWidth)/max(h.WidthInc, 1),
		(r.Height-h.BaseHeight)/max(h.HeightInc, 1))
}

func (c *Controller) finish(s *Session, cancel bool) {
	c.release(s)
	cl := s.Client

	if s.committed && !cancel {
		switch {
		case s.unmaxed == geometry.StateMaxHorz && cl.State.Has(geometry.StateMaxVert):
			c.remaximize(cl, false, true)
		case s.unmaxed == geometry.StateMaxVert && cl.State.Has(geometry.StateMaxHorz):
			c.remaximize(cl, true, false)
		}
		c.apply(s)
		c.logger.Debug("session committed geometry", "kind", s.Kind, "client", cl.ID, "rect", cl.Rect)
		return
	}

	changed := cl.Rect != s.origRect || cl.State != s.origState
	cl.Rect = s.origRect
	cl.Saved = s.origSaved
	cl.State = s.origState
	switch {
	case !changed:
	case s.feedback() == FeedbackOpaque:
		c.apply(s)
	default:
		// Pagers followed the outline, tell them it is gone.
		c.notify(cl)
	}
	c.logger.Debug("session rolled back", "kind", s.Kind, "client", cl.ID)
}

func (c *Controller) remaximize(cl *wm.Client, horz, vert bool) {
	if c.placer != nil {
		c.placer.PlaceMaximized(cl, horz, vert)
	}
}

func (c *Controller) apply(s *Session) {
	cl := s.Client
	if err := c.backend.Configure(cl, cl.Insets(s.settings.Metrics)); err != nil {
		c.logger.Warn("failed to configure client", "client", cl.ID, "error", err)
	}
	if cl.State != s.origState {
		if err := c.backend.WriteState(cl); err != nil {
			c.logger.Warn("failed to write client state", "client", cl.ID, "error", err)
		}
	}
	c.notify(cl)
}

func (c *Controller) release(s *Session) {
	s.phase = PhaseTerminal
	c.session = nil
	c.backend.UngrabPointer()
	if s.keyboard() {
		c.backend.UngrabKeyboard()
	}
	if c.feedback != nil {
		c.feedback.HideOutline()
		c.feedback.HideStatus()
	}
}

func (c *Controller) notify(cl *wm.Client) {
	if c.onGeometry != nil {
		c.onGeometry(cl)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
