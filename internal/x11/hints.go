package x11

import (
	"fmt"

	"github.com/1broseidon/floatwm/internal/geometry"
	"github.com/1broseidon/floatwm/internal/strut"
	"github.com/1broseidon/floatwm/internal/wm"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
)

// SizeHints reads WM_NORMAL_HINTS. A missing or unreadable property yields
// the defaults.
func (c *Connection) SizeHints(win xproto.Window) wm.SizeHints {
	nh, err := icccm.WmNormalHintsGet(c.XUtil, win)
	if err != nil || nh == nil {
		return wm.DefaultSizeHints()
	}
	return convertNormalHints(nh)
}

func convertNormalHints(nh *icccm.NormalHints) wm.SizeHints {
	h := wm.DefaultSizeHints()
	flags := nh.Flags

	if flags&icccm.SizeHintUSPosition != 0 {
		h.Flags |= wm.HintUserPosition
	}
	if flags&icccm.SizeHintUSSize != 0 {
		h.Flags |= wm.HintUserSize
	}
	if flags&icccm.SizeHintPPosition != 0 {
		h.Flags |= wm.HintProgramPosition
	}
	if flags&icccm.SizeHintPSize != 0 {
		h.Flags |= wm.HintProgramSize
	}
	if flags&icccm.SizeHintPMinSize != 0 {
		h.Flags |= wm.HintMinSize
		h.MinWidth, h.MinHeight = int(nh.MinWidth), int(nh.MinHeight)
	}
	if flags&icccm.SizeHintPMaxSize != 0 {
		h.Flags |= wm.HintMaxSize
		h.MaxWidth, h.MaxHeight = int(nh.MaxWidth), int(nh.MaxHeight)
	}
	if flags&icccm.SizeHintPResizeInc != 0 {
		h.Flags |= wm.HintResizeInc
		h.WidthInc, h.HeightInc = int(nh.WidthInc), int(nh.HeightInc)
	}
	if flags&icccm.SizeHintPAspect != 0 {
		h.Flags |= wm.HintAspect
		h.MinAspect = wm.Aspect{X: int(nh.MinAspectNum), Y: int(nh.MinAspectDen)}
		h.MaxAspect = wm.Aspect{X: int(nh.MaxAspectNum), Y: int(nh.MaxAspectDen)}
	}
	if flags&icccm.SizeHintPBaseSize != 0 {
		h.Flags |= wm.HintBaseSize
		h.BaseWidth, h.BaseHeight = int(nh.BaseWidth), int(nh.BaseHeight)
	}
	if flags&icccm.SizeHintPWinGravity != 0 {
		h.Flags |= wm.HintGravity
		h.Gravity = geometry.Gravity(nh.WinGravity)
	}
	return h.Normalize()
}

// StrutHint is the strut property of a window. At most one field is set.
type StrutHint struct {
	Partial *ewmh.WmStrutPartial
	Legacy  *ewmh.WmStrut
}

// Apply records the hint for id, or removes id's struts when it has none.
func (s StrutHint) Apply(reg *strut.Registry, id wm.ClientID) {
	switch {
	case s.Partial != nil:
		reg.UpsertPartial(id, *s.Partial)
	case s.Legacy != nil:
		reg.UpsertLegacy(id, *s.Legacy)
	default:
		reg.RemoveStruts(id)
	}
}

// Struts reads _NET_WM_STRUT_PARTIAL, then the legacy _NET_WM_STRUT.
func (c *Connection) Struts(win xproto.Window) StrutHint {
	if sp, err := ewmh.WmStrutPartialGet(c.XUtil, win); err == nil {
		return StrutHint{Partial: sp}
	}
	// Some docks only set _NET_WM_STRUT (no partial ranges).
	if s, err := ewmh.WmStrutGet(c.XUtil, win); err == nil {
		return StrutHint{Legacy: s}
	}
	return StrutHint{}
}

// WindowKind is how the manager treats a new top-level window.
type WindowKind int

const (
	KindNormal WindowKind = iota
	// KindDock reserves space and is never decorated or placed.
	KindDock
	// KindDesktop sits below everything.
	KindDesktop
	// KindUtility has no title bar.
	KindUtility
)

// Kind classifies a window by _NET_WM_WINDOW_TYPE.
func (c *Connection) Kind(win xproto.Window) WindowKind {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, win)
	if err != nil {
		return KindNormal
	}
	return kindFromTypes(types)
}

func kindFromTypes(types []string) WindowKind {
	for _, t := range types {
		switch t {
		case "_NET_WM_WINDOW_TYPE_NORMAL", "_NET_WM_WINDOW_TYPE_DIALOG":
			return KindNormal
		case "_NET_WM_WINDOW_TYPE_DOCK":
			return KindDock
		case "_NET_WM_WINDOW_TYPE_DESKTOP":
			return KindDesktop
		case "_NET_WM_WINDOW_TYPE_UTILITY", "_NET_WM_WINDOW_TYPE_TOOLBAR",
			"_NET_WM_WINDOW_TYPE_SPLASH", "_NET_WM_WINDOW_TYPE_NOTIFICATION":
			return KindUtility
		}
	}
	return KindNormal
}

// Desktop returns the _NET_WM_DESKTOP of a window. Sticky windows report
// sticky=true.
func (c *Connection) Desktop(win xproto.Window) (desktop int, sticky bool, err error) {
	d, err := ewmh.WmDesktopGet(c.XUtil, win)
	if err != nil {
		return 0, false, fmt.Errorf("failed to get window desktop: %w", err)
	}
	// 0xFFFFFFFF means the window is on all desktops (sticky)
	if d == 0xFFFFFFFF {
		return 0, true, nil
	}
	return int(d), false, nil
}

// Title returns _NET_WM_NAME, falling back to WM_NAME.
func (c *Connection) Title(win xproto.Window) string {
	if name, err := ewmh.WmNameGet(c.XUtil, win); err == nil && name != "" {
		return name
	}
	if name, err := icccm.WmNameGet(c.XUtil, win); err == nil {
		return name
	}
	return ""
}

// InitialState reads the _NET_WM_STATE a client asked for before mapping.
func (c *Connection) InitialState(win xproto.Window) geometry.State {
	atoms, err := ewmh.WmStateGet(c.XUtil, win)
	if err != nil {
		return 0
	}
	return StateFromAtoms(atoms)
}

// Geometry returns the current window rectangle in root coordinates.
func (c *Connection) Geometry(win xproto.Window) (geometry.Rect, error) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(win)).Reply()
	if err != nil {
		return geometry.Rect{}, fmt.Errorf("failed to get window geometry: %w", err)
	}
	return geometry.Rect{X: int(geom.X), Y: int(geom.Y), Width: int(geom.Width), Height: int(geom.Height)}, nil
}

// OverrideRedirect reports whether win bypasses the window manager.
func (c *Connection) OverrideRedirect(win xproto.Window) bool {
	attr, err := xproto.GetWindowAttributes(c.XUtil.Conn(), win).Reply()
	if err != nil {
		return true
	}
	return attr.OverrideRedirect
}

// Children returns the top-level windows in stacking order, bottom first.
func (c *Connection) Children() ([]xproto.Window, error) {
	tree, err := xproto.QueryTree(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to query tree: %w", err)
	}
	return tree.Children, nil
}

// Viewable reports whether win is currently mapped.
func (c *Connection) Viewable(win xproto.Window) bool {
	attr, err := xproto.GetWindowAttributes(c.XUtil.Conn(), win).Reply()
	if err != nil {
		return false
	}
	return attr.MapState == xproto.MapStateViewable
}
