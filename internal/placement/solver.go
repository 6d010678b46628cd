// Package placement decides where clients go and how large they may be.
package placement

import (
	"github.com/1broseidon/floatwm/internal/geometry"
	"github.com/1broseidon/floatwm/internal/strut"
	"github.com/1broseidon/floatwm/internal/wm"
)

type cascadeKey struct {
	screen  int
	desktop int
}

// PointerFunc reports the pointer position in root coordinates.
type PointerFunc func() (x, y int, ok bool)

// Solver computes free areas and placements against the window manager model.
// It is owned by the event-dispatch thread.
type Solver struct {
	model   *wm.Model
	struts  *strut.Registry
	metrics geometry.Metrics
	pointer PointerFunc
	cascade map[cascadeKey]int
}

// NewSolver returns a solver over model and struts.
func NewSolver(model *wm.Model, struts *strut.Registry, metrics geometry.Metrics) *Solver {
	return &Solver{
		model:   model,
		struts:  struts,
		metrics: metrics,
		cascade: make(map[cascadeKey]int),
	}
}

// SetMetrics updates the decoration sizes after a config reload.
func (s *Solver) SetMetrics(m geometry.Metrics) { s.metrics = m }

// SetPointer installs the pointer lookup used to pick the screen for new clients.
func (s *Solver) SetPointer(p PointerFunc) { s.pointer = p }

// ResetCascade clears every cascade offset, e.g. after a screen change.
func (s *Solver) ResetCascade() {
	s.cascade = make(map[cascadeKey]int)
}

// CascadeOffset returns the current cascade offset for a screen and desktop.
func (s *Solver) CascadeOffset(screen, desktop int) int {
	return s.cascade[cascadeKey{screen: screen, desktop: desktop}]
}

// UsableArea returns bound minus the panels above maxLayer and the active
// struts, skipping struts owned by exclude. A subtraction that would leave
// no area is rolled back.
func (s *Solver) UsableArea(bound geometry.Rect, maxLayer wm.Layer, desktop int, exclude wm.ClientID) geometry.Rect {
	box := bound
	for _, p := range s.model.Panels {
		if p.Layer <= maxLayer || p.AutoHide || p.MaximizeOver {
			continue
		}
		box = subtractKeep(box, p.Rect)
	}
	if s.struts != nil {
		s.struts.ForEachActiveStrut(desktop, func(st strut.Strut) {
			if st.Owner == exclude {
				return
			}
			box = subtractKeep(box, st.Rect)
		})
	}
	return box
}

// ComputeFreeArea returns the usable area of bound further reduced by the
// frames of the visible clients on desktop, excluding exclude.
func (s *Solver) ComputeFreeArea(bound geometry.Rect, maxLayer wm.Layer, desktop int, exclude wm.ClientID) geometry.Rect {
	box := s.UsableArea(bound, maxLayer, desktop, exclude)
	s.model.Stack.Each(func(c *wm.Client) {
		if c.ID == exclude || !c.Visible() || !c.OnDesktop(desktop) {
			return
		}
		box = subtractKeep(box, c.Frame(s.metrics))
	})
	return box
}

func (s *Solver) desktopOf(c *wm.Client) int {
	if c.State.Has(geometry.StateSticky) {
		return s.model.Desktop
	}
	return c.Desktop
}

func (s *Solver) placementScreen(c *wm.Client) wm.Screen {
	if s.pointer != nil {
		if x, y, ok := s.pointer(); ok {
			return s.model.ScreenAt(x, y)
		}
	}
	return s.model.ScreenFor(c.Rect)
}

func (s *Solver) onAnyScreen(r geometry.Rect) bool {
	for _, scr := range s.model.Screens {
		if scr.Rect.Intersects(r) {
			return true
		}
	}
	return false
}
