package x11

import (
	"fmt"

	"github.com/1broseidon/floatwm/internal/geometry"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// Configure moves and resizes a client window, advertises its frame extents
// and sends the synthetic ConfigureNotify ICCCM requires for moves.
func (c *Connection) Configure(win xproto.Window, r geometry.Rect, in geometry.Insets) error {
	err := xproto.ConfigureWindowChecked(
		c.XUtil.Conn(),
		win,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight|xproto.ConfigWindowBorderWidth,
		[]uint32{
			uint32(int32(r.X)),
			uint32(int32(r.Y)),
			uint32(max(r.Width, 1)),
			uint32(max(r.Height, 1)),
			0,
		},
	).Check()
	if err != nil {
		return fmt.Errorf("failed to configure window %d: %w", win, err)
	}

	extents := &ewmh.FrameExtents{Left: in.West, Right: in.East, Top: in.North, Bottom: in.South}
	if err := ewmh.FrameExtentsSet(c.XUtil, win, extents); err != nil {
		return fmt.Errorf("failed to set frame extents: %w", err)
	}

	c.sendConfigureNotify(win, r)
	return nil
}

func (c *Connection) sendConfigureNotify(win xproto.Window, r geometry.Rect) {
	ev := xproto.ConfigureNotifyEvent{
		Event:            win,
		Window:           win,
		AboveSibling:     xevent.NoWindow,
		X:                int16(r.X),
		Y:                int16(r.Y),
		Width:            uint16(max(r.Width, 1)),
		Height:           uint16(max(r.Height, 1)),
		BorderWidth:      0,
		OverrideRedirect: false,
	}
	xproto.SendEvent(c.XUtil.Conn(), false, win, xproto.EventMaskStructureNotify, string(ev.Bytes()))
}

// stateAtoms lists the _NET_WM_STATE atoms for s.
var stateAtoms = []struct {
	bit  geometry.State
	atom string
}{
	{geometry.StateMaxHorz, "_NET_WM_STATE_MAXIMIZED_HORZ"},
	{geometry.StateMaxVert, "_NET_WM_STATE_MAXIMIZED_VERT"},
	{geometry.StateFullscreen, "_NET_WM_STATE_FULLSCREEN"},
	{geometry.StateShaded, "_NET_WM_STATE_SHADED"},
	{geometry.StateSticky, "_NET_WM_STATE_STICKY"},
	{geometry.StateHidden, "_NET_WM_STATE_HIDDEN"},
}

// AtomsFromState returns the _NET_WM_STATE atoms describing s.
func AtomsFromState(s geometry.State) []string {
	out := []string{}
	for _, a := range stateAtoms {
		if s.Has(a.bit) {
			out = append(out, a.atom)
		}
	}
	return out
}

// StateFromAtoms is the inverse of AtomsFromState. Unknown atoms are ignored.
func StateFromAtoms(atoms []string) geometry.State {
	var s geometry.State
	for _, name := range atoms {
		if bit, ok := StateBit(name); ok {
			s |= bit
		}
	}
	return s
}

// StateBit maps a single _NET_WM_STATE atom to its state bit.
func StateBit(atom string) (geometry.State, bool) {
	for _, a := range stateAtoms {
		if a.atom == atom {
			return a.bit, true
		}
	}
	return 0, false
}

// WriteState publishes s as the window's _NET_WM_STATE.
func (c *Connection) WriteState(win xproto.Window, s geometry.State) error {
	if err := ewmh.WmStateSet(c.XUtil, win, AtomsFromState(s)); err != nil {
		return fmt.Errorf("failed to set wm state: %w", err)
	}
	return nil
}

// Manage selects property changes on a client and maps it when show is
// set. Clients on another desktop stay unmapped and iconic. Unmap and
// destroy notifications arrive through the root's substructure mask.
func (c *Connection) Manage(win xproto.Window, show bool) error {
	w := xwindow.New(c.XUtil, win)
	if err := w.Listen(xproto.EventMaskPropertyChange); err != nil {
		return fmt.Errorf("failed to listen on window %d: %w", win, err)
	}
	state := uint(icccm.StateIconic)
	if show {
		state = icccm.StateNormal
	}
	if err := icccm.WmStateSet(c.XUtil, win, &icccm.WmState{State: state}); err != nil {
		return fmt.Errorf("failed to set WM_STATE: %w", err)
	}
	if show {
		w.Map()
	}
	return nil
}

// Show maps a managed client that was hidden by a desktop switch.
func (c *Connection) Show(win xproto.Window) {
	_ = icccm.WmStateSet(c.XUtil, win, &icccm.WmState{State: icccm.StateNormal})
	xproto.MapWindow(c.XUtil.Conn(), win)
}

// Hide unmaps a managed client. The caller must expect the UnmapNotify.
func (c *Connection) Hide(win xproto.Window) {
	_ = icccm.WmStateSet(c.XUtil, win, &icccm.WmState{State: icccm.StateIconic})
	xproto.UnmapWindow(c.XUtil.Conn(), win)
}

// Withdraw marks a client as withdrawn after it unmapped itself.
func (c *Connection) Withdraw(win xproto.Window) {
	_ = icccm.WmStateSet(c.XUtil, win, &icccm.WmState{State: icccm.StateWithdrawn})
	xevent.Detach(c.XUtil, win)
}

// Raise puts win on top of its siblings.
func (c *Connection) Raise(win xproto.Window) {
	xproto.ConfigureWindow(c.XUtil.Conn(), win, xproto.ConfigWindowStackMode, []uint32{xproto.StackModeAbove})
}

// PublishClients sets _NET_CLIENT_LIST.
func (c *Connection) PublishClients(wins []xproto.Window) error {
	return ewmh.ClientListSet(c.XUtil, wins)
}

// PublishDesktops sets _NET_NUMBER_OF_DESKTOPS and _NET_CURRENT_DESKTOP.
func (c *Connection) PublishDesktops(count, current int) error {
	if err := ewmh.NumberOfDesktopsSet(c.XUtil, uint(count)); err != nil {
		return fmt.Errorf("failed to set desktop count: %w", err)
	}
	if err := ewmh.CurrentDesktopSet(c.XUtil, uint(current)); err != nil {
		return fmt.Errorf("failed to set current desktop: %w", err)
	}
	return nil
}

// SetWindowDesktop writes _NET_WM_DESKTOP on a managed client. Sticky
// clients get 0xFFFFFFFF.
func (c *Connection) SetWindowDesktop(win xproto.Window, desktop int, sticky bool) error {
	d := uint(desktop)
	if sticky {
		d = 0xFFFFFFFF
	}
	return ewmh.WmDesktopSet(c.XUtil, win, d)
}
