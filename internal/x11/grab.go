package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xevent"
)

const pointerGrabMask = xproto.EventMaskButtonPress |
	xproto.EventMaskButtonRelease |
	xproto.EventMaskPointerMotion

// GrabPointer takes an active pointer grab on the root window. It reports
// false when another client holds the pointer.
func (c *Connection) GrabPointer(cursor xproto.Cursor) (bool, error) {
	reply, err := xproto.GrabPointer(
		c.XUtil.Conn(),
		false, // owner_events: report everything relative to the root
		c.Root,
		pointerGrabMask,
		xproto.GrabModeAsync,
		xproto.GrabModeAsync,
		xproto.WindowNone, // confine_to
		cursor,
		xproto.TimeCurrentTime,
	).Reply()
	if err != nil {
		return false, fmt.Errorf("pointer grab failed: %w", err)
	}
	return reply.Status == xproto.GrabStatusSuccess, nil
}

// UngrabPointer releases the pointer grab.
func (c *Connection) UngrabPointer() {
	xproto.UngrabPointer(c.XUtil.Conn(), xproto.TimeCurrentTime)
}

// GrabKeyboard grabs the keyboard and redirects key events to GrabWindow.
func (c *Connection) GrabKeyboard() (bool, error) {
	if err := c.ensureGrabWindow(); err != nil {
		return false, err
	}

	grab := func() (*xproto.GrabKeyboardReply, error) {
		return xproto.GrabKeyboard(
			c.XUtil.Conn(),
			false,
			c.Root,
			xproto.TimeCurrentTime,
			xproto.GrabModeAsync,
			xproto.GrabModeAsync,
		).Reply()
	}

	reply, err := grab()
	if err != nil {
		return false, fmt.Errorf("keyboard grab failed: %w", err)
	}

	// A session started from a global hotkey runs while the passive key
	// grab is still active. Release it and retry.
	if reply.Status == xproto.GrabStatusAlreadyGrabbed {
		xproto.UngrabKeyboard(c.XUtil.Conn(), xproto.TimeCurrentTime)
		if reply, err = grab(); err != nil {
			return false, fmt.Errorf("keyboard grab failed: %w", err)
		}
	}

	if reply.Status != xproto.GrabStatusSuccess {
		return false, nil
	}

	xevent.RedirectKeyEvents(c.XUtil, c.grabWindow)
	return true, nil
}

// UngrabKeyboard releases the keyboard grab and stops redirecting key events.
func (c *Connection) UngrabKeyboard() {
	xproto.UngrabKeyboard(c.XUtil.Conn(), xproto.TimeCurrentTime)
	xevent.RedirectKeyEvents(c.XUtil, 0)
}

// GrabWindow returns the window key events are delivered to while the
// keyboard is grabbed.
func (c *Connection) GrabWindow() (xproto.Window, error) {
	if err := c.ensureGrabWindow(); err != nil {
		return 0, err
	}
	return c.grabWindow, nil
}

func (c *Connection) ensureGrabWindow() error {
	if c.grabWindow != 0 {
		return nil
	}

	conn := c.XUtil.Conn()
	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		return err
	}

	// InputOnly window that never draws anything; it is only a target for
	// key event callbacks.
	err = xproto.CreateWindowChecked(
		conn,
		0, // depth (must be 0 for InputOnly)
		wid,
		c.Root,
		-1, -1,
		1, 1,
		0,
		xproto.WindowClassInputOnly,
		xproto.Visualid(0), // CopyFromParent
		xproto.CwOverrideRedirect|xproto.CwEventMask,
		[]uint32{1, uint32(xproto.EventMaskKeyPress | xproto.EventMaskKeyRelease)},
	).Check()
	if err != nil {
		return fmt.Errorf("failed to create grab window: %w", err)
	}

	xproto.MapWindow(conn, wid)
	c.grabWindow = wid
	return nil
}
