package x11

import (
	"fmt"

	"github.com/1broseidon/floatwm/internal/border"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xprop"
)

// ClientMessage is a decoded 32-bit client message.
type ClientMessage struct {
	Window xproto.Window
	Type   string
	Data   []uint32
}

// DecodeClientMessage resolves the message type atom. Messages that are not
// 32-bit are rejected.
func (c *Connection) DecodeClientMessage(ev xevent.ClientMessageEvent) (ClientMessage, bool) {
	if ev.Format != 32 {
		return ClientMessage{}, false
	}
	name, err := xprop.AtomName(c.XUtil, ev.Type)
	if err != nil {
		return ClientMessage{}, false
	}
	return ClientMessage{Window: ev.Window, Type: name, Data: ev.Data.Data32}, true
}

// AtomName resolves an atom from a message payload.
func (c *Connection) AtomName(a uint32) string {
	if a == 0 {
		return ""
	}
	name, err := xprop.AtomName(c.XUtil, xproto.Atom(a))
	if err != nil {
		return ""
	}
	return name
}

// StateAction is the first field of a _NET_WM_STATE request.
type StateAction int

const (
	StateRemove StateAction = iota
	StateAdd
	StateToggle
)

// Apply returns the new value of a state bit that is currently set or not.
func (a StateAction) Apply(current bool) bool {
	switch a {
	case StateRemove:
		return false
	case StateAdd:
		return true
	default:
		return !current
	}
}

// MoveResizeRequest is a decoded _NET_WM_MOVERESIZE message.
type MoveResizeRequest struct {
	RootX, RootY int
	Action       border.Action
	Keyboard     bool
	Cancel       bool
	Button       int
}

const (
	moveResizeSizeTopLeft = iota
	moveResizeSizeTop
	moveResizeSizeTopRight
	moveResizeSizeRight
	moveResizeSizeBottomRight
	moveResizeSizeBottom
	moveResizeSizeBottomLeft
	moveResizeSizeLeft
	moveResizeMove
	moveResizeSizeKeyboard
	moveResizeMoveKeyboard
	moveResizeCancel
)

// ParseMoveResize decodes the payload of a _NET_WM_MOVERESIZE message.
func ParseMoveResize(data []uint32) (MoveResizeRequest, bool) {
	if len(data) < 4 {
		return MoveResizeRequest{}, false
	}
	req := MoveResizeRequest{
		RootX:  int(int32(data[0])),
		RootY:  int(int32(data[1])),
		Button: int(data[3]),
	}
	switch data[2] {
	case moveResizeSizeTopLeft:
		req.Action = border.Resize | border.North | border.West
	case moveResizeSizeTop:
		req.Action = border.Resize | border.North
	case moveResizeSizeTopRight:
		req.Action = border.Resize | border.North | border.East
	case moveResizeSizeRight:
		req.Action = border.Resize | border.East
	case moveResizeSizeBottomRight:
		req.Action = border.Resize | border.South | border.East
	case moveResizeSizeBottom:
		req.Action = border.Resize | border.South
	case moveResizeSizeBottomLeft:
		req.Action = border.Resize | border.South | border.West
	case moveResizeSizeLeft:
		req.Action = border.Resize | border.West
	case moveResizeMove:
		req.Action = border.Move
	case moveResizeSizeKeyboard:
		req.Action = border.Resize | border.South | border.East
		req.Keyboard = true
	case moveResizeMoveKeyboard:
		req.Action = border.Move
		req.Keyboard = true
	case moveResizeCancel:
		req.Cancel = true
	default:
		return MoveResizeRequest{}, false
	}
	if req.Keyboard {
		req.Button = 0
	}
	return req, true
}

// Wake is an internal request delivered through the event loop so that it
// runs on the event-dispatch thread.
type Wake uint32

const (
	WakeReload Wake = iota + 1
	WakeQuit
	WakeReconcile
)

// WakeAtom is the message type of internal wake-up messages.
const WakeAtom = "_FLOATWM_WAKE"

// SendWake posts w to the check window. It is safe to call from any
// goroutine.
func (c *Connection) SendWake(w Wake) error {
	if c.check == 0 {
		return fmt.Errorf("window manager not started")
	}
	atom, err := xprop.Atm(c.XUtil, WakeAtom)
	if err != nil {
		return fmt.Errorf("failed to intern %s: %w", WakeAtom, err)
	}

	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: c.check,
		Type:   atom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{uint32(w), 0, 0, 0, 0}),
	}
	return xproto.SendEventChecked(
		c.XUtil.Conn(),
		false,
		c.check,
		xproto.EventMaskNoEvent,
		string(ev.Bytes()),
	).Check()
}
