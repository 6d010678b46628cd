package platform

import (
	"github.com/1broseidon/floatwm/internal/border"
	"github.com/1broseidon/floatwm/internal/geometry"
	"github.com/1broseidon/floatwm/internal/wm"
)

// Cursor is the pointer shape shown while a grab is active.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorMove
	CursorNorth
	CursorSouth
	CursorEast
	CursorWest
	CursorNorthEast
	CursorNorthWest
	CursorSouthEast
	CursorSouthWest
)

// CursorFor picks the cursor for a frame action.
func CursorFor(a border.Action) Cursor {
	switch a.Primary() {
	case border.Move:
		return CursorMove
	case border.Resize:
	default:
		return CursorDefault
	}

	switch a.Directions() {
	case border.North:
		return CursorNorth
	case border.South:
		return CursorSouth
	case border.East:
		return CursorEast
	case border.West:
		return CursorWest
	case border.North | border.East:
		return CursorNorthEast
	case border.North | border.West:
		return CursorNorthWest
	case border.South | border.East:
		return CursorSouthEast
	case border.South | border.West:
		return CursorSouthWest
	default:
		return CursorDefault
	}
}

// Backend abstracts the window-system operations used by interactive
// sessions and the client manager.
type Backend interface {
	Screens() ([]wm.Screen, error)
	PointerPosition() (x, y int, ok bool)

	// GrabPointer and GrabKeyboard report false when another client holds
	// the device.
	GrabPointer(cursor Cursor) bool
	UngrabPointer()
	GrabKeyboard() bool
	UngrabKeyboard()
	// PointerButtons returns the currently held button mask.
	PointerButtons() uint16

	// Configure moves and resizes the client, advertises its frame extents
	// and sends the synthetic ConfigureNotify.
	Configure(c *wm.Client, in geometry.Insets) error
	// WriteState publishes the client's maximize/shade/sticky/fullscreen state.
	WriteState(c *wm.Client) error
}

// ButtonMask returns the state mask bit for pointer button b (1-5).
func ButtonMask(b int) uint16 {
	if b < 1 || b > 5 {
		return 0
	}
	return 1 << (7 + b)
}
