package geometry

import "strings"

// Decoration is the set of frame parts a client carries.
type Decoration uint16

const (
	DecorTitle Decoration = 1 << iota
	DecorOutline
	DecorMove
	DecorResize
	DecorClose
	DecorMaximize
	DecorMinimize
	DecorSticky
	DecorMenu

	DefaultDecorations = DecorTitle | DecorOutline | DecorMove | DecorResize |
		DecorClose | DecorMaximize | DecorMinimize | DecorMenu
)

// Has reports whether every bit of f is set.
func (d Decoration) Has(f Decoration) bool { return d&f == f }

// State holds the per-client status bits that affect geometry.
type State uint16

const (
	StateMapped State = 1 << iota
	StateHidden
	StateSticky
	StateShaded
	StateFullscreen
	StateMaxHorz
	StateMaxVert
)

// StateMaximized covers both maximize axes.
const StateMaximized = StateMaxHorz | StateMaxVert

// Has reports whether every bit of f is set.
func (s State) Has(f State) bool { return s&f == f }

// Any reports whether at least one bit of f is set.
func (s State) Any(f State) bool { return s&f != 0 }

func (s State) String() string {
	names := []struct {
		bit  State
		name string
	}{
		{StateMapped, "mapped"},
		{StateHidden, "hidden"},
		{StateSticky, "sticky"},
		{StateShaded, "shaded"},
		{StateFullscreen, "fullscreen"},
		{StateMaxHorz, "max-horz"},
		{StateMaxVert, "max-vert"},
	}
	var parts []string
	for _, n := range names {
		if s&n.bit != 0 {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// Metrics are the configured decoration sizes.
type Metrics struct {
	TitleHeight int
	BorderWidth int
	ButtonWidth int
	CornerSize  int
	MenuWidth   int
}

// Insets are the pixels of decoration outside a client's content rectangle.
type Insets struct {
	North int `json:"north"`
	South int `json:"south"`
	East  int `json:"east"`
	West  int `json:"west"`
}

// ComputeBorderInsets derives the frame insets from decoration and state.
func ComputeBorderInsets(m Metrics, d Decoration, s State) Insets {
	if s.Has(StateFullscreen) {
		return Insets{}
	}
	var in Insets
	if d.Has(DecorOutline) {
		in.South = m.BorderWidth
		in.East = m.BorderWidth
		in.West = m.BorderWidth
	}
	// Only the title bar contributes to the top.
	if d.Has(DecorTitle) {
		in.North = m.TitleHeight
	}
	if s.Has(StateShaded) {
		in.South = 0
	}
	return in
}

// Frame expands a content rectangle by in.
func Frame(content Rect, in Insets) Rect {
	return Rect{
		X:      content.X - in.West,
		Y:      content.Y - in.North,
		Width:  content.Width + in.West + in.East,
		Height: content.Height + in.North + in.South,
	}
}

// Content is the inverse of Frame.
func Content(frame Rect, in Insets) Rect {
	return Rect{
		X:      frame.X + in.West,
		Y:      frame.Y + in.North,
		Width:  frame.Width - in.West - in.East,
		Height: frame.Height - in.North - in.South,
	}
}
