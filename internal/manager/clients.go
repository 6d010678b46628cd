package manager

import (
	"github.com/1broseidon/floatwm/internal/geometry"
	"github.com/1broseidon/floatwm/internal/interact"
	"github.com/1broseidon/floatwm/internal/wm"
	"github.com/1broseidon/floatwm/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"
)

func (m *Manager) connectRoot() error {
	xu := m.conn.XUtil
	root := m.conn.Root

	xevent.MapRequestFun(m.onMapRequest).Connect(xu, root)
	xevent.ConfigureRequestFun(m.onConfigureRequest).Connect(xu, root)
	xevent.ClientMessageFun(m.onClientMessage).Connect(xu, root)
	xevent.ClientMessageFun(m.onClientMessage).Connect(xu, m.conn.CheckWindow())

	xevent.MotionNotifyFun(m.onMotion).Connect(xu, root)
	xevent.ButtonReleaseFun(m.onButtonRelease).Connect(xu, root)

	grab, err := m.conn.GrabWindow()
	if err != nil {
		return err
	}
	xevent.KeyPressFun(m.onKeyPress).Connect(xu, grab)
	xevent.KeyReleaseFun(m.onKeyRelease).Connect(xu, grab)
	return nil
}

// connectClient installs the per-window callbacks. xevent routes these
// events by the window they describe.
func (m *Manager) connectClient(win xproto.Window) {
	xu := m.conn.XUtil
	xevent.PropertyNotifyFun(m.onPropertyNotify).Connect(xu, win)
	xevent.ClientMessageFun(m.onClientMessage).Connect(xu, win)
	xevent.UnmapNotifyFun(m.onUnmapNotify).Connect(xu, win)
	xevent.DestroyNotifyFun(m.onDestroyNotify).Connect(xu, win)
}

// adoptExisting manages the windows that were mapped before we started.
func (m *Manager) adoptExisting() {
	children, err := m.conn.Children()
	if err != nil {
		m.logger.Warn("failed to list existing windows", "error", err)
		return
	}
	for _, win := range children {
		if win == m.conn.CheckWindow() || m.conn.OverrideRedirect(win) || !m.conn.Viewable(win) {
			continue
		}
		m.manage(win, true)
	}
}

func (m *Manager) onMapRequest(xu *xgbutil.XUtil, ev xevent.MapRequestEvent) {
	if c, ok := m.lookup(ev.Window); ok {
		// A managed client asking to be mapped again, e.g. after iconify.
		if c.State.Has(geometry.StateHidden) {
			c.State &^= geometry.StateHidden
			m.writeState(c)
		}
		m.syncVisibility(c)
		m.changed(EventMap, c)
		return
	}
	m.manage(ev.Window, false)
}

func (m *Manager) manage(win xproto.Window, mapped bool) {
	if _, ok := m.lookup(win); ok {
		return
	}
	rect, err := m.conn.Geometry(win)
	if err != nil {
		m.logger.Warn("failed to read window geometry", "window", win, "error", err)
		return
	}

	switch kind := m.conn.Kind(win); kind {
	case x11.KindDock:
		m.manageDock(win, rect)
	default:
		m.manageClient(win, rect, kind, mapped)
	}
}

func (m *Manager) manageClient(win xproto.Window, rect geometry.Rect, kind x11.WindowKind, mapped bool) {
	id := wm.ClientID(win)
	c := wm.NewClient(id, rect)
	c.Name = m.conn.Title(win)
	c.Hints = m.conn.SizeHints(win)
	c.Desktop = m.model.Desktop

	switch kind {
	case x11.KindDesktop:
		c.Layer = wm.LayerDesktop
		c.Decor = 0
	case x11.KindUtility:
		c.Decor &^= geometry.DecorTitle | geometry.DecorMaximize | geometry.DecorMinimize | geometry.DecorMenu
	}

	if d, sticky, err := m.conn.Desktop(win); err == nil {
		if sticky {
			c.State |= geometry.StateSticky
		} else if d >= 0 && d < m.model.Desktops {
			c.Desktop = d
		}
	}
	requested := m.conn.InitialState(win)
	c.State |= requested & (geometry.StateSticky | geometry.StateHidden | geometry.StateShaded)

	m.model.Stack.Add(c)
	m.conn.Struts(win).Apply(m.struts, id)
	m.solver.PlaceClient(c, mapped)
	if geo := requested & (geometry.StateMaximized | geometry.StateFullscreen); geo != 0 {
		m.applyGeometryState(c, c.State|geo)
	}

	show := shouldMap(c, m.model.Desktop)
	if err := m.conn.Manage(win, show); err != nil {
		m.logger.Warn("failed to manage window", "window", win, "error", err)
		m.model.Stack.Remove(id)
		m.struts.RemoveStruts(id)
		return
	}
	switch {
	case show:
		c.State |= geometry.StateMapped
	case mapped:
		// Adopted on another desktop or iconified.
		m.pendingUnmaps[id]++
		m.conn.Hide(win)
	}
	m.connectClient(win)
	m.configure(c)
	m.writeState(c)
	m.writeDesktop(c)
	m.conn.Raise(win)
	m.publishClientList()

	m.logger.Info("managing client", "client", id, "name", c.Name, "rect", c.Rect, "desktop", c.Desktop)
	m.changed(EventMap, c)
}

// manageDock tracks a dock or panel. Docks are sticky, undecorated, never
// placed, and only reserve space.
func (m *Manager) manageDock(win xproto.Window, rect geometry.Rect) {
	id := wm.ClientID(win)
	d := wm.NewClient(id, rect)
	d.Name = m.conn.Title(win)
	d.Decor = 0
	d.Layer = wm.LayerAbove
	d.State = geometry.StateSticky | geometry.StateMapped
	m.docks[id] = d
	m.syncPanels()

	if err := m.conn.Manage(win, true); err != nil {
		m.logger.Warn("failed to manage dock", "window", win, "error", err)
	}
	m.connectClient(win)
	m.conn.Struts(win).Apply(m.struts, id)

	m.logger.Info("managing dock", "dock", id, "name", d.Name, "rect", rect)
	m.strutsChanged()
	m.changed(EventMap, d)
}

func (m *Manager) syncPanels() {
	panels := make([]wm.Panel, 0, len(m.docks))
	for _, d := range m.docks {
		panels = append(panels, wm.Panel{ID: d.ID, Rect: d.Rect, Layer: d.Layer})
	}
	m.model.Panels = panels
}

// unmanage forgets a client or dock. withdraw is false when the window is
// already gone.
func (m *Manager) unmanage(id wm.ClientID, withdraw bool) {
	win := xproto.Window(id)
	m.ctrl.Drop(id)
	delete(m.pendingUnmaps, id)
	delete(m.restore, id)

	if withdraw {
		m.conn.Withdraw(win)
	} else {
		xevent.Detach(m.conn.XUtil, win)
	}

	hadStruts := len(m.struts.All())
	m.struts.RemoveStruts(id)
	strutsGone := hadStruts != len(m.struts.All())

	if d, ok := m.docks[id]; ok {
		delete(m.docks, id)
		m.syncPanels()
		m.logger.Info("dock removed", "dock", id)
		m.strutsChanged()
		m.changed(EventUnmap, d)
		return
	}

	c, ok := m.model.Stack.Remove(id)
	if !ok {
		return
	}
	m.publishClientList()
	m.logger.Info("client removed", "client", id, "name", c.Name)
	if strutsGone {
		m.strutsChanged()
	}
	m.changed(EventUnmap, c)
}

func (m *Manager) onUnmapNotify(xu *xgbutil.XUtil, ev xevent.UnmapNotifyEvent) {
	id := wm.ClientID(ev.Window)
	if n := m.pendingUnmaps[id]; n > 0 {
		m.pendingUnmaps[id] = n - 1
		return
	}
	if _, ok := m.lookup(ev.Window); ok {
		m.unmanage(id, true)
	}
}

func (m *Manager) onDestroyNotify(xu *xgbutil.XUtil, ev xevent.DestroyNotifyEvent) {
	if _, ok := m.lookup(ev.Window); ok {
		m.unmanage(wm.ClientID(ev.Window), false)
	}
}

func (m *Manager) onPropertyNotify(xu *xgbutil.XUtil, ev xevent.PropertyNotifyEvent) {
	c, ok := m.lookup(ev.Window)
	if !ok {
		return
	}
	switch name := m.conn.AtomName(uint32(ev.Atom)); name {
	case "_NET_WM_STRUT", "_NET_WM_STRUT_PARTIAL":
		m.conn.Struts(ev.Window).Apply(m.struts, c.ID)
		m.logger.Debug("struts updated", "owner", c.ID)
		m.strutsChanged()
		m.changed(EventState, c)
	case "WM_NORMAL_HINTS":
		c.Hints = m.conn.SizeHints(ev.Window)
		if _, dock := m.docks[c.ID]; dock {
			return
		}
		if m.ctrl.State(c.ID) != interact.TagIdle {
			// Picked up by the next session.
			return
		}
		before := c.Rect
		c.Rect.Width, c.Rect.Height = constrainSize(c.Rect.Width, c.Rect.Height, c.Hints)
		if c.Rect != before {
			m.configure(c)
			m.changed(EventGeometry, c)
		}
	case "_NET_WM_NAME", "WM_NAME":
		c.Name = m.conn.Title(ev.Window)
		m.publish()
	}
}

func (m *Manager) onConfigureRequest(xu *xgbutil.XUtil, ev xevent.ConfigureRequestEvent) {
	c, ok := m.lookup(ev.Window)
	if !ok {
		m.passConfigure(ev)
		return
	}
	if _, dock := m.docks[c.ID]; dock {
		m.passConfigure(ev)
		if r, err := m.conn.Geometry(ev.Window); err == nil {
			c.Rect = r
			m.syncPanels()
			m.changed(EventGeometry, c)
		}
		return
	}
	if ev.ValueMask&xproto.ConfigWindowStackMode != 0 && ev.StackMode == xproto.StackModeAbove {
		m.raise(c)
	}
	if m.ctrl.State(c.ID) != interact.TagIdle {
		// The session owns the geometry; answer with where the client is.
		m.configure(c)
		return
	}

	next := requestedRect(c, ev.ValueMask, int(ev.X), int(ev.Y), int(ev.Width), int(ev.Height))
	if next != c.Rect {
		c.Rect = next
		m.logger.Debug("configure request", "client", c.ID, "rect", c.Rect)
	}
	// Always answer, even when nothing changed.
	m.configure(c)
	m.changed(EventGeometry, c)
}

// requestedRect applies the fields of a ConfigureRequest that the client
// may change. Maximized axes and fullscreen clients keep their geometry;
// sizes are constrained by the size hints.
func requestedRect(c *wm.Client, mask uint16, x, y, width, height int) geometry.Rect {
	r := c.Rect
	if c.State.Has(geometry.StateFullscreen) {
		return r
	}
	horz := !c.State.Has(geometry.StateMaxHorz)
	vert := !c.State.Has(geometry.StateMaxVert)
	if horz && mask&xproto.ConfigWindowX != 0 {
		r.X = x
	}
	if vert && mask&xproto.ConfigWindowY != 0 {
		r.Y = y
	}
	if horz && mask&xproto.ConfigWindowWidth != 0 {
		r.Width = width
	}
	if vert && mask&xproto.ConfigWindowHeight != 0 {
		r.Height = height
	}
	r.Width, r.Height = constrainSize(r.Width, r.Height, c.Hints)
	return r
}

// constrainSize bounds a size by the min/max hints, rounds it to the
// resize increments and then fixes the aspect ratio.
func constrainSize(width, height int, h wm.SizeHints) (int, int) {
	width = interact.ClampSize(width, h.MinWidth, h.MaxWidth)
	height = interact.ClampSize(height, h.MinHeight, h.MaxHeight)
	width = max(interact.Quantize(width, h.BaseWidth, h.WidthInc), h.MinWidth)
	height = max(interact.Quantize(height, h.BaseHeight, h.HeightInc), h.MinHeight)
	width = interact.FixWidth(width, height, h)
	height = interact.FixHeight(width, height, h)
	return width, height
}

func (m *Manager) passConfigure(ev xevent.ConfigureRequestEvent) {
	var values []uint32
	mask := ev.ValueMask
	if mask&xproto.ConfigWindowX != 0 {
		values = append(values, uint32(int32(ev.X)))
	}
	if mask&xproto.ConfigWindowY != 0 {
		values = append(values, uint32(int32(ev.Y)))
	}
	if mask&xproto.ConfigWindowWidth != 0 {
		values = append(values, uint32(ev.Width))
	}
	if mask&xproto.ConfigWindowHeight != 0 {
		values = append(values, uint32(ev.Height))
	}
	if mask&xproto.ConfigWindowBorderWidth != 0 {
		values = append(values, uint32(ev.BorderWidth))
	}
	if mask&xproto.ConfigWindowSibling != 0 {
		values = append(values, uint32(ev.Sibling))
	}
	if mask&xproto.ConfigWindowStackMode != 0 {
		values = append(values, uint32(ev.StackMode))
	}
	xproto.ConfigureWindow(m.conn.XUtil.Conn(), ev.Window, mask, values)
}

func (m *Manager) raise(c *wm.Client) {
	m.model.Stack.Raise(c.ID)
	m.conn.Raise(xproto.Window(c.ID))
	m.publishClientList()
}

// shouldMap reports whether a client belongs on screen for desktop.
func shouldMap(c *wm.Client, desktop int) bool {
	return c.OnDesktop(desktop) && !c.State.Has(geometry.StateHidden)
}

// syncVisibility maps or unmaps c to match shouldMap.
func (m *Manager) syncVisibility(c *wm.Client) {
	want := shouldMap(c, m.model.Desktop)
	has := c.State.Has(geometry.StateMapped)
	win := xproto.Window(c.ID)
	switch {
	case want && !has:
		m.conn.Show(win)
		c.State |= geometry.StateMapped
	case !want && has:
		m.ctrl.Drop(c.ID)
		m.pendingUnmaps[c.ID]++
		m.conn.Hide(win)
		c.State &^= geometry.StateMapped
	}
}

func (m *Manager) switchDesktop(d int) {
	if d < 0 || d >= m.model.Desktops || d == m.model.Desktop {
		return
	}
	if s := m.ctrl.Active(); s != nil && !s.Client.OnDesktop(d) {
		m.ctrl.Cancel()
	}
	m.logger.Debug("switching desktop", "from", m.model.Desktop, "to", d)
	m.model.Desktop = d
	m.forEachClient(m.syncVisibility)
	m.publishDesktops()
	// Maximized clients follow the struts of the new desktop.
	m.strutsChanged()
	m.changed(EventDesktop, nil)
}

func (m *Manager) moveToDesktop(c *wm.Client, d int, sticky bool) {
	if sticky {
		c.State |= geometry.StateSticky
	} else {
		if d < 0 || d >= m.model.Desktops {
			return
		}
		c.State &^= geometry.StateSticky
		c.Desktop = d
	}
	m.writeDesktop(c)
	m.writeState(c)
	m.syncVisibility(c)
	m.changed(EventState, c)
}

// strutsChanged re-maximizes clients after the reserved space changed.
func (m *Manager) strutsChanged() {
	m.forEachClient(func(c *wm.Client) {
		if !c.State.Any(geometry.StateMaximized) || c.State.Has(geometry.StateFullscreen) {
			return
		}
		if m.ctrl.State(c.ID) != interact.TagIdle {
			return
		}
		before := c.Rect
		m.solver.PlaceMaximized(c, c.State.Has(geometry.StateMaxHorz), c.State.Has(geometry.StateMaxVert))
		if c.Rect != before {
			m.configure(c)
			m.changed(EventGeometry, c)
		}
	})
}

// refit re-applies the geometry rules to c after the screens or metrics
// changed.
func (m *Manager) refit(c *wm.Client) {
	before := c.Rect
	switch {
	case c.State.Has(geometry.StateFullscreen):
		c.Rect = m.model.ScreenFor(c.Rect).Rect
	case c.State.Any(geometry.StateMaximized):
		m.solver.PlaceMaximized(c, c.State.Has(geometry.StateMaxHorz), c.State.Has(geometry.StateMaxVert))
	default:
		m.solver.ConstrainSize(c)
	}
	m.configure(c)
	if c.Rect != before {
		m.changed(EventGeometry, c)
	}
}

func (m *Manager) refreshScreens() error {
	screens, err := m.conn.Screens()
	if err != nil {
		return err
	}
	m.model.Screens = screens
	return nil
}

func (m *Manager) onScreensChanged() {
	if err := m.refreshScreens(); err != nil {
		m.logger.Warn("failed to read screens", "error", err)
		return
	}
	if width, height, err := m.conn.RootSize(); err == nil {
		m.struts.SetRootSize(width, height)
	}
	m.solver.ResetCascade()
	m.ctrl.Cancel()
	m.logger.Info("screen layout changed", "screens", len(m.model.Screens))

	m.forEachClient(m.refit)
	m.changed(EventScreens, nil)
}
