package manager

import (
	"github.com/1broseidon/floatwm/internal/border"
	"github.com/1broseidon/floatwm/internal/geometry"
	"github.com/1broseidon/floatwm/internal/wm"
	"github.com/1broseidon/floatwm/internal/x11"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"
)

func (m *Manager) onClientMessage(xu *xgbutil.XUtil, ev xevent.ClientMessageEvent) {
	msg, ok := m.conn.DecodeClientMessage(ev)
	if !ok {
		return
	}

	switch msg.Type {
	case x11.WakeAtom:
		if msg.Window == m.conn.CheckWindow() && len(msg.Data) > 0 {
			m.onWake(x11.Wake(msg.Data[0]))
		}
		return
	case "_NET_CURRENT_DESKTOP":
		if len(msg.Data) > 0 {
			m.switchDesktop(int(msg.Data[0]))
		}
		return
	}

	c, ok := m.model.Lookup(wm.ClientID(msg.Window))
	if !ok {
		m.logger.Debug("client message for unmanaged window", "type", msg.Type, "window", msg.Window)
		return
	}

	switch msg.Type {
	case "_NET_WM_STATE":
		m.onStateMessage(c, msg.Data)
	case "_NET_WM_MOVERESIZE":
		m.onMoveResize(c, msg.Data)
	case "_NET_WM_DESKTOP":
		if len(msg.Data) > 0 {
			d := msg.Data[0]
			m.moveToDesktop(c, int(d), d == 0xFFFFFFFF)
		}
	case "_NET_ACTIVE_WINDOW":
		if c.State.Has(geometry.StateHidden) {
			c.State &^= geometry.StateHidden
			m.writeState(c)
		}
		if !c.OnDesktop(m.model.Desktop) {
			m.switchDesktop(c.Desktop)
		}
		m.syncVisibility(c)
		m.raise(c)
		m.changed(EventState, c)
	case "WM_CHANGE_STATE":
		// ICCCM iconify request.
		if len(msg.Data) > 0 && msg.Data[0] == 3 {
			m.setState(c, c.State|geometry.StateHidden)
		}
	default:
		m.logger.Debug("ignored client message", "type", msg.Type, "client", c.ID)
	}
}

func (m *Manager) onStateMessage(c *wm.Client, data []uint32) {
	if len(data) < 3 {
		return
	}
	action := x11.StateAction(data[0])
	atoms := []string{m.conn.AtomName(data[1]), m.conn.AtomName(data[2])}
	next := requestedState(c.State, action, atoms...)
	if next == c.State {
		return
	}
	m.logger.Debug("state request", "client", c.ID, "from", c.State, "to", next)
	m.setState(c, next)
}

// stateMask lists the bits clients may change through _NET_WM_STATE.
const stateMask = geometry.StateMaximized | geometry.StateFullscreen |
	geometry.StateShaded | geometry.StateSticky | geometry.StateHidden

// requestedState applies a _NET_WM_STATE action to cur. Unknown and empty
// atoms are ignored.
func requestedState(cur geometry.State, action x11.StateAction, atoms ...string) geometry.State {
	next := cur
	for _, name := range atoms {
		if name == "" {
			continue
		}
		bit, ok := x11.StateBit(name)
		if !ok || bit&stateMask == 0 {
			continue
		}
		if action.Apply(cur.Has(bit)) {
			next |= bit
		} else {
			next &^= bit
		}
	}
	return next
}

// setState moves c to the requested state bits, recomputing geometry and
// visibility.
func (m *Manager) setState(c *wm.Client, next geometry.State) {
	if m.ctrl.Active() != nil && m.ctrl.Active().Client == c {
		m.ctrl.Cancel()
	}
	before := c.Rect
	m.applyGeometryState(c, next)

	for _, bit := range []geometry.State{geometry.StateShaded, geometry.StateSticky, geometry.StateHidden} {
		if next.Has(bit) {
			c.State |= bit
		} else {
			c.State &^= bit
		}
	}
	if c.State.Has(geometry.StateFullscreen) {
		m.raise(c)
	}

	m.writeState(c)
	m.writeDesktop(c)
	m.syncVisibility(c)
	if c.Rect != before {
		m.configure(c)
		m.changed(EventGeometry, c)
	}
	m.changed(EventState, c)
}

// applyGeometryState handles the maximize and fullscreen bits of next.
func (m *Manager) applyGeometryState(c *wm.Client, next geometry.State) {
	cur := c.State

	if next.Has(geometry.StateFullscreen) && !cur.Has(geometry.StateFullscreen) {
		m.restore[c.ID] = c.Rect
		c.State |= geometry.StateFullscreen
		c.Rect = m.model.ScreenFor(c.Frame(m.metrics())).Rect
	}
	if !next.Has(geometry.StateFullscreen) && cur.Has(geometry.StateFullscreen) {
		c.State &^= geometry.StateFullscreen
		if r, ok := m.restore[c.ID]; ok {
			c.Rect = r
			delete(m.restore, c.ID)
		}
		if c.State.Any(geometry.StateMaximized) && next.Any(geometry.StateMaximized) {
			m.solver.PlaceMaximized(c, c.State.Has(geometry.StateMaxHorz), c.State.Has(geometry.StateMaxVert))
		}
	}

	addHorz := next.Has(geometry.StateMaxHorz) && !cur.Has(geometry.StateMaxHorz)
	addVert := next.Has(geometry.StateMaxVert) && !cur.Has(geometry.StateMaxVert)
	dropHorz := !next.Has(geometry.StateMaxHorz) && cur.Has(geometry.StateMaxHorz)
	dropVert := !next.Has(geometry.StateMaxVert) && cur.Has(geometry.StateMaxVert)
	if dropHorz || dropVert {
		m.solver.Restore(c, dropHorz, dropVert)
	}
	if addHorz || addVert {
		if c.State.Has(geometry.StateFullscreen) {
			// Remembered and applied when fullscreen ends.
			if addHorz {
				c.State |= geometry.StateMaxHorz
			}
			if addVert {
				c.State |= geometry.StateMaxVert
			}
			return
		}
		m.solver.PlaceMaximized(c, addHorz, addVert)
	}
}

func (m *Manager) onMoveResize(c *wm.Client, data []uint32) {
	req, ok := x11.ParseMoveResize(data)
	if !ok {
		m.logger.Debug("bad move/resize request", "client", c.ID, "data", data)
		return
	}
	if req.Cancel {
		if s := m.ctrl.Active(); s != nil && s.Client == c {
			m.ctrl.Cancel()
		}
		return
	}

	x, y := req.RootX, req.RootY
	if req.Keyboard {
		if px, py, ok := m.backend.PointerPosition(); ok {
			x, y = px, py
		}
	}
	m.begin(c, req.Action, x, y, req.Button)
}

// begin starts a session of the kind given by action. button is 0 for
// keyboard sessions.
func (m *Manager) begin(c *wm.Client, action border.Action, rootX, rootY, button int) bool {
	settings := m.settings()
	m.raise(c)
	if action.Primary() == border.Move {
		return m.ctrl.BeginMove(c, rootX, rootY, button, settings)
	}
	if action.Primary() == border.Resize {
		return m.ctrl.BeginResize(c, action, rootX, rootY, button, settings)
	}
	return false
}
