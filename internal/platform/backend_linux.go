//go:build linux

package platform

import (
	"fmt"
	"log/slog"

	"github.com/1broseidon/floatwm/internal/geometry"
	"github.com/1broseidon/floatwm/internal/wm"
	"github.com/1broseidon/floatwm/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xcursor"
)

// LinuxBackend wraps an existing X11 connection behind the platform Backend interface.
type LinuxBackend struct {
	conn   *x11.Connection
	logger *slog.Logger
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend creates a Linux platform backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection, logger *slog.Logger) *LinuxBackend {
	if logger == nil {
		logger = slog.Default()
	}
	return &LinuxBackend{conn: conn, logger: logger}
}

// NewLinuxBackendFromDisplay creates a new Linux backend by opening a fresh X11 connection.
func NewLinuxBackendFromDisplay(logger *slog.Logger) (*LinuxBackend, error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return NewLinuxBackend(conn, logger), nil
}

// Disconnect closes the underlying X11 connection.
func (b *LinuxBackend) Disconnect() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

// Conn returns the X11 connection for operations outside the Backend interface.
func (b *LinuxBackend) Conn() *x11.Connection {
	return b.conn
}

// XUtil returns the underlying xgbutil connection for X11-specific operations.
func (b *LinuxBackend) XUtil() *xgbutil.XUtil {
	if b == nil || b.conn == nil {
		return nil
	}
	return b.conn.XUtil
}

// RootWindow returns the X11 root window ID.
func (b *LinuxBackend) RootWindow() xproto.Window {
	if b == nil || b.conn == nil {
		return 0
	}
	return b.conn.Root
}

// Screens returns the physical outputs.
func (b *LinuxBackend) Screens() ([]wm.Screen, error) {
	return b.conn.Screens()
}

// PointerPosition returns the pointer in root coordinates.
func (b *LinuxBackend) PointerPosition() (int, int, bool) {
	return b.conn.PointerPosition()
}

// GrabPointer grabs the pointer with the cursor for the session.
func (b *LinuxBackend) GrabPointer(cursor Cursor) bool {
	ok, err := b.conn.GrabPointer(b.conn.Cursor(cursorGlyph(cursor)))
	if err != nil {
		b.logger.Warn("pointer grab failed", "error", err)
		return false
	}
	return ok
}

// UngrabPointer releases the pointer.
func (b *LinuxBackend) UngrabPointer() {
	b.conn.UngrabPointer()
}

// GrabKeyboard grabs the keyboard for a session.
func (b *LinuxBackend) GrabKeyboard() bool {
	ok, err := b.conn.GrabKeyboard()
	if err != nil {
		b.logger.Warn("keyboard grab failed", "error", err)
		return false
	}
	return ok
}

// UngrabKeyboard releases the keyboard.
func (b *LinuxBackend) UngrabKeyboard() {
	b.conn.UngrabKeyboard()
}

// PointerButtons returns the held button mask.
func (b *LinuxBackend) PointerButtons() uint16 {
	return b.conn.PointerButtons()
}

// Configure applies the client's geometry to its window.
func (b *LinuxBackend) Configure(c *wm.Client, in geometry.Insets) error {
	return b.conn.Configure(xproto.Window(c.ID), c.Rect, in)
}

// WriteState publishes the client's _NET_WM_STATE.
func (b *LinuxBackend) WriteState(c *wm.Client) error {
	return b.conn.WriteState(xproto.Window(c.ID), c.State)
}

func cursorGlyph(c Cursor) uint16 {
	switch c {
	case CursorMove:
		return xcursor.Fleur
	case CursorNorth:
		return xcursor.TopSide
	case CursorSouth:
		return xcursor.BottomSide
	case CursorEast:
		return xcursor.RightSide
	case CursorWest:
		return xcursor.LeftSide
	case CursorNorthEast:
		return xcursor.TopRightCorner
	case CursorNorthWest:
		return xcursor.TopLeftCorner
	case CursorSouthEast:
		return xcursor.BottomRightCorner
	case CursorSouthWest:
		return xcursor.BottomLeftCorner
	default:
		return xcursor.LeftPtr
	}
}
