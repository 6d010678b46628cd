package x11

import (
	"github.com/1broseidon/floatwm/internal/geometry"
	"github.com/BurntSushi/xgb/xproto"
)

// Overlay colors
const (
	DefaultOutlineColor = 0xffffff
	ColorStatusText     = 0xf5f7fa
	ColorStatusBg       = 0x1f2933
)

// OutlineThickness is the width of the outline bars in pixels.
const OutlineThickness = 2

const (
	statusPaddingX   = 8
	statusPaddingY   = 4
	statusLineHeight = 16
	statusCharWidth  = 7
	statusMinWidth   = 60
)

// outline is a rectangle made of four thin override-redirect windows.
type outline struct {
	bars    [4]xproto.Window
	created bool
	mapped  bool
}

type status struct {
	Window   xproto.Window
	GC       xproto.Gcontext
	Font     xproto.Font
	created  bool
	mapped   bool
	disabled bool
}

// Overlay draws the move/resize outline and the geometry status window.
// It is used from the event-dispatch thread only.
type Overlay struct {
	conn  *Connection
	color uint32

	outline outline
	status  status
}

// NewOverlay returns an overlay that creates its windows on first use.
func NewOverlay(conn *Connection, color uint32) *Overlay {
	return &Overlay{conn: conn, color: color}
}

// SetColor changes the outline color for the next draw.
func (o *Overlay) SetColor(color uint32) { o.color = color }

// ShowOutline draws a rectangle around frame.
func (o *Overlay) ShowOutline(frame geometry.Rect) {
	if !o.outline.created {
		for i := range o.outline.bars {
			wid, err := o.createOverrideRedirectWindow()
			if err != nil {
				o.destroyOutline()
				return
			}
			o.outline.bars[i] = wid
		}
		o.outline.created = true
	}

	conn := o.conn.XUtil.Conn()
	for i, r := range outlineBars(frame, OutlineThickness) {
		o.updateWindow(o.outline.bars[i], r, o.color)
		xproto.MapWindow(conn, o.outline.bars[i])
	}
	o.outline.mapped = true
}

// HideOutline unmaps the outline windows.
func (o *Overlay) HideOutline() {
	if !o.outline.mapped {
		return
	}
	for _, wid := range o.outline.bars {
		xproto.UnmapWindow(o.conn.XUtil.Conn(), wid)
	}
	o.outline.mapped = false
}

// ShowStatus shows text centred on frame.
func (o *Overlay) ShowStatus(frame geometry.Rect, text string) {
	if !o.ensureStatus() {
		return
	}
	conn := o.conn.XUtil.Conn()
	st := &o.status

	r := statusRect(frame, text)
	o.updateWindow(st.Window, r, ColorStatusBg)
	xproto.ChangeGC(conn, st.GC, xproto.GcForeground|xproto.GcBackground, []uint32{ColorStatusText, ColorStatusBg})

	if len(text) > 255 {
		text = text[:255]
	}
	baseline := statusPaddingY + statusLineHeight - 4
	xproto.ImageText8(conn, byte(len(text)), xproto.Drawable(st.Window), st.GC,
		int16((r.Width-len(text)*statusCharWidth)/2), int16(baseline), text)

	xproto.MapWindow(conn, st.Window)
	st.mapped = true
}

// HideStatus unmaps the status window.
func (o *Overlay) HideStatus() {
	if !o.status.mapped {
		return
	}
	xproto.UnmapWindow(o.conn.XUtil.Conn(), o.status.Window)
	o.status.mapped = false
}

// Close destroys every overlay window.
func (o *Overlay) Close() {
	o.destroyOutline()
	o.destroyStatus()
}

// outlineBars splits the outline of r into top, bottom, left and right bars.
func outlineBars(r geometry.Rect, t int) [4]geometry.Rect {
	inner := max(r.Height-2*t, 1)
	return [4]geometry.Rect{
		{X: r.X, Y: r.Y, Width: r.Width, Height: t},
		{X: r.X, Y: r.Bottom() - t, Width: r.Width, Height: t},
		{X: r.X, Y: r.Y + t, Width: t, Height: inner},
		{X: r.Right() - t, Y: r.Y + t, Width: t, Height: inner},
	}
}

// statusRect sizes the status window for text and centres it on frame.
func statusRect(frame geometry.Rect, text string) geometry.Rect {
	width := max(len(text)*statusCharWidth+2*statusPaddingX, statusMinWidth)
	height := statusLineHeight + 2*statusPaddingY
	cx, cy := frame.Center()
	return geometry.Rect{X: cx - width/2, Y: cy - height/2, Width: width, Height: height}
}

func (o *Overlay) createOverrideRedirectWindow() (xproto.Window, error) {
	conn := o.conn.XUtil.Conn()
	screen := o.conn.XUtil.Screen()

	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		return 0, err
	}

	err = xproto.CreateWindowChecked(
		conn,
		screen.RootDepth,
		wid,
		o.conn.Root,
		0, 0,
		1, 1,
		0,
		xproto.WindowClassInputOutput,
		screen.RootVisual,
		xproto.CwBackPixel|xproto.CwOverrideRedirect,
		// Values follow mask bit order: back_pixel, then override_redirect.
		[]uint32{0, 1},
	).Check()
	if err != nil {
		return 0, err
	}
	return wid, nil
}

// updateWindow moves, resizes, raises and recolors a window.
func (o *Overlay) updateWindow(wid xproto.Window, r geometry.Rect, color uint32) {
	conn := o.conn.XUtil.Conn()
	xproto.ConfigureWindow(
		conn,
		wid,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight|xproto.ConfigWindowStackMode,
		[]uint32{
			uint32(int32(r.X)),
			uint32(int32(r.Y)),
			uint32(max(r.Width, 1)),
			uint32(max(r.Height, 1)),
			xproto.StackModeAbove,
		},
	)
	xproto.ChangeWindowAttributes(conn, wid, xproto.CwBackPixel, []uint32{color})
	xproto.ClearArea(conn, false, wid, 0, 0, 0, 0)
}

func (o *Overlay) ensureStatus() bool {
	st := &o.status
	if st.disabled {
		return false
	}
	if st.created {
		return true
	}

	conn := o.conn.XUtil.Conn()
	win, err := o.createOverrideRedirectWindow()
	if err != nil {
		st.disabled = true
		return false
	}
	st.Window = win

	font, err := xproto.NewFontId(conn)
	if err != nil {
		o.disableStatus()
		return false
	}
	opened := false
	for _, name := range []string{"fixed", "9x15", "8x13", "6x13"} {
		if xproto.OpenFontChecked(conn, font, uint16(len(name)), name).Check() == nil {
			opened = true
			break
		}
	}
	if !opened {
		o.disableStatus()
		return false
	}
	st.Font = font

	gc, err := xproto.NewGcontextId(conn)
	if err != nil {
		o.disableStatus()
		return false
	}
	err = xproto.CreateGCChecked(
		conn,
		gc,
		xproto.Drawable(win),
		xproto.GcForeground|xproto.GcBackground|xproto.GcFont|xproto.GcGraphicsExposures,
		[]uint32{ColorStatusText, ColorStatusBg, uint32(font), 0},
	).Check()
	if err != nil {
		o.disableStatus()
		return false
	}
	st.GC = gc
	st.created = true
	return true
}

func (o *Overlay) disableStatus() {
	o.destroyStatus()
	o.status.disabled = true
}

func (o *Overlay) destroyStatus() {
	conn := o.conn.XUtil.Conn()
	st := &o.status
	if st.GC != 0 {
		xproto.FreeGC(conn, st.GC)
	}
	if st.Font != 0 {
		xproto.CloseFont(conn, st.Font)
	}
	if st.Window != 0 {
		xproto.DestroyWindow(conn, st.Window)
	}
	disabled := st.disabled
	*st = status{disabled: disabled}
}

func (o *Overlay) destroyOutline() {
	for _, wid := range o.outline.bars {
		if wid != 0 {
			xproto.DestroyWindow(o.conn.XUtil.Conn(), wid)
		}
	}
	o.outline = outline{}
}
