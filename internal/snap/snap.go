// Package snap aligns a moving client with nearby frames and screen edges.
package snap

import (
	"fmt"
	"strings"

	"github.com/1broseidon/floatwm/internal/geometry"
	"github.com/1broseidon/floatwm/internal/wm"
)

// Mode selects what a moving client snaps to.
type Mode int

const (
	ModeNone Mode = iota
	ModeScreen
	ModeBorder
	ModeClient
)

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeScreen:
		return "screen"
	case ModeBorder:
		return "border"
	case ModeClient:
		return "client"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts a config value into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return ModeNone, nil
	case "screen":
		return ModeScreen, nil
	case "border":
		return ModeBorder, nil
	case "client":
		return ModeClient, nil
	default:
		return ModeNone, fmt.Errorf("unknown snap mode %q (expected none, screen, border or client)", s)
	}
}

// World is what a client can snap against.
type World interface {
	PanelsInLayer(l wm.Layer) []wm.Panel
	ClientsInLayer(l wm.Layer) []*wm.Client
	CurrentDesktop() int
}

// Engine snaps client positions. The zero value never moves anything.
type Engine struct {
	Mode     Mode
	Distance int
	Metrics  geometry.Metrics
}

// ToBox returns the frame edges of c. A shaded client ends at its title strip.
func ToBox(c *wm.Client, m geometry.Metrics) geometry.Box {
	return c.Frame(m).Box()
}

// TopBottomOverlap reports whether a and b share part of the vertical axis.
func TopBottomOverlap(a, b geometry.Box) bool {
	return a.Top < b.Bottom && a.Bottom > b.Top
}

// LeftRightOverlap reports whether a and b share part of the horizontal axis.
func LeftRightOverlap(a, b geometry.Box) bool {
	return a.Left < b.Right && a.Right > b.Left
}

// Snap returns the content position of c after snapping per e.Mode.
// Border mode snaps to frames first and then to screen edges.
func (e Engine) Snap(c *wm.Client, w World, screens []wm.Screen) (x, y int) {
	switch e.Mode {
	case ModeClient:
		return e.SnapToBorder(c, w)
	case ModeBorder:
		x, y = e.SnapToBorder(c, w)
		moved := *c
		moved.Rect.X, moved.Rect.Y = x, y
		return e.SnapToScreen(&moved, screens)
	case ModeScreen:
		return e.SnapToScreen(c, screens)
	default:
		return c.Rect.X, c.Rect.Y
	}
}

// SnapToBorder aligns c with the nearest unobstructed panel or client frame
// on each side. Siblings are scanned bottom-to-top, panels before clients in
// each layer.
func (e Engine) SnapToBorder(c *wm.Client, w World) (x, y int) {
	x, y = c.Rect.X, c.Rect.Y
	s := scan{client: ToBox(c, e.Metrics), dist: e.Distance}
	desktop := w.CurrentDesktop()

	for l := wm.LayerDesktop; int(l) < wm.LayerCount; l++ {
		for _, p := range w.PanelsInLayer(l) {
			s.consider(p.Rect.Box())
		}
		for _, o := range w.ClientsInLayer(l) {
			if o.ID == c.ID || !o.Visible() || !o.OnDesktop(desktop) {
				continue
			}
			s.consider(ToBox(o, e.Metrics))
		}
	}

	in := c.Insets(e.Metrics)
	if k := s.cand[Right]; k.valid {
		x = k.box.Left - c.Rect.Width - in.East
	}
	if k := s.cand[Left]; k.valid {
		x = k.box.Right + in.West
	}
	if k := s.cand[Bottom]; k.valid {
		y = k.box.Top - in.South
		if !c.State.Has(geometry.StateShaded) {
			y -= c.Rect.Height
		}
	}
	if k := s.cand[Top]; k.valid {
		y = k.box.Bottom + in.North
	}
	return x, y
}

// SnapToScreen aligns c with any screen edge within distance.
func (e Engine) SnapToScreen(c *wm.Client, screens []wm.Screen) (x, y int) {
	x, y = c.Rect.X, c.Rect.Y
	b := ToBox(c, e.Metrics)
	in := c.Insets(e.Metrics)
	for _, scr := range screens {
		sb := scr.Rect.Box()
		if abs(b.Right-sb.Right) <= e.Distance {
			x = sb.Right - in.East - c.Rect.Width
		}
		if abs(b.Left-sb.Left) <= e.Distance {
			x = sb.Left + in.West
		}
		if abs(b.Bottom-sb.Bottom) <= e.Distance {
			y = sb.Bottom - in.South
			if !c.State.Has(geometry.StateShaded) {
				y -= c.Rect.Height
			}
		}
		if abs(b.Top-sb.Top) <= e.Distance {
			y = sb.Top + in.North
		}
	}
	return x, y
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
