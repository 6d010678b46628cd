package border

import (
	"github.com/1broseidon/floatwm/internal/geometry"
	"github.com/1broseidon/floatwm/internal/wm"
)

type titleButton struct {
	decor  geometry.Decoration
	action Action
}

// Buttons are laid out from the right edge of the title strip.
var titleButtons = []titleButton{
	{geometry.DecorClose, Close},
	{geometry.DecorMaximize, Maximize},
	{geometry.DecorMinimize, Minimize},
	{geometry.DecorSticky, Sticky},
}

// ClassifyHit returns the action for a press at (x, y) relative to the
// top-left corner of c's frame.
func ClassifyHit(c *wm.Client, m geometry.Metrics, x, y int) Action {
	in := c.Insets(m)
	width, height := contentSize(c)

	if c.Decor.Has(geometry.DecorTitle) && in.North > 0 && y >= in.South && y < in.North {
		if a, ok := classifyTitle(c, m, in, x); ok {
			return a
		}
	}

	if !c.Decor.Has(geometry.DecorResize) {
		return None
	}
	mask := resizeMask(c.State)
	frameWidth := width + in.West + in.East
	frameHeight := height + in.North + in.South

	if cs := m.CornerSize; cs > 0 && width >= 2*cs && height >= 2*cs {
		switch {
		case y >= frameHeight-cs:
			if x < cs {
				return masked(Resize|South|West, mask)
			}
			if x >= frameWidth-cs {
				return masked(Resize|South|East, mask)
			}
		case y < cs:
			if x < cs {
				return masked(Resize|North|West, mask)
			}
			if x >= frameWidth-cs {
				return masked(Resize|North|East, mask)
			}
		}
	}

	switch {
	case x < in.West:
		return masked(Resize|West, mask)
	case x >= width+in.West:
		return masked(Resize|East, mask)
	case y >= height+in.North:
		return masked(Resize|South, mask)
	case y < in.South:
		// The top resize band is as thick as the bottom border.
		return masked(Resize|North, mask)
	}
	return None
}

// Quadrant picks the resize edges nearest to (x, y) for a resize started
// from inside the window.
func Quadrant(c *wm.Client, m geometry.Metrics, x, y int) Action {
	if !c.Decor.Has(geometry.DecorResize) {
		return None
	}
	frame := c.Frame(m)
	a := Resize
	if x > frame.Width/2 {
		a |= East
	} else {
		a |= West
	}
	if y > frame.Height/2 {
		a |= South
	} else {
		a |= North
	}
	return masked(a, resizeMask(c.State))
}

func classifyTitle(c *wm.Client, m geometry.Metrics, in geometry.Insets, x int) (Action, bool) {
	width, _ := contentSize(c)
	left := in.West
	right := in.West + width

	menu := c.Decor.Has(geometry.DecorMenu) && m.MenuWidth > 0 && width >= m.MenuWidth
	if menu {
		if x >= left && x < left+m.MenuWidth {
			return Menu, true
		}
		left += m.MenuWidth
	}

	if bw := m.ButtonWidth; bw > 0 {
		for _, b := range titleButtons {
			if !c.Decor.Has(b.decor) {
				continue
			}
			if right-left < 2*bw {
				break
			}
			if x >= right-bw && x < right {
				return b.action, true
			}
			right -= bw
		}
	}

	if x >= left && x < right {
		if c.Decor.Has(geometry.DecorMove) {
			return Move, true
		}
		return None, true
	}
	return None, false
}

// resizeMask removes the edges that cannot move: both sides of a maximized
// axis, and north/south on a shaded client.
func resizeMask(s geometry.State) Action {
	mask := Resize | directionMask
	if s.Has(geometry.StateMaxHorz) {
		mask &^= East | West
	}
	if s.Has(geometry.StateMaxVert) {
		mask &^= North | South
	}
	if s.Has(geometry.StateShaded) {
		mask &^= North | South
	}
	return mask
}

func masked(a, mask Action) Action {
	a &= mask
	if a.Directions() == 0 {
		return None
	}
	return a
}

func contentSize(c *wm.Client) (int, int) {
	if c.State.Has(geometry.StateShaded) {
		return c.Rect.Width, 0
	}
	return c.Rect.Width, c.Rect.Height
}
