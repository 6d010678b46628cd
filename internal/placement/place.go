package placement

import (
	"github.com/1broseidon/floatwm/internal/geometry"
	"github.com/1broseidon/floatwm/internal/wm"
)

// PlaceClient picks the initial position of c.
//
// Clients that are already mapped on a screen, or that asked for a position,
// are only adjusted for gravity. Everything else goes to the origin of the
// free area when it fits, and is cascaded otherwise.
func (s *Solver) PlaceClient(c *wm.Client, alreadyMapped bool) {
	in := c.Insets(s.metrics)

	if (alreadyMapped && s.onAnyScreen(c.Frame(s.metrics))) || c.Hints.HasPosition() {
		c.Rect = geometry.ApplyGravity(c.Rect, in, c.Hints.Gravity, false)
		if !alreadyMapped {
			s.ConstrainSize(c)
		}
		return
	}

	scr := s.placementScreen(c)
	free := s.ComputeFreeArea(scr.Rect, c.Layer, s.desktopOf(c), c.ID)
	frameWidth := c.Rect.Width + in.West + in.East
	frameHeight := c.Rect.Height + in.North + in.South
	if frameWidth <= free.Width && frameHeight <= free.Height {
		c.Rect.X = free.X + in.West
		c.Rect.Y = free.Y + in.North
		return
	}

	s.cascadeClient(c, scr, in)
}

func (s *Solver) cascadeClient(c *wm.Client, scr wm.Screen, in geometry.Insets) {
	desktop := s.desktopOf(c)
	key := cascadeKey{screen: scr.Index, desktop: desktop}
	box := s.UsableArea(scr.Rect, c.Layer, desktop, c.ID)

	offset := s.cascade[key]
	c.Rect.X = box.X + in.West + offset
	c.Rect.Y = box.Y + in.North + offset
	s.cascade[key] = offset + s.metrics.TitleHeight

	if !overflows(c.Rect, in, box) {
		return
	}

	// Restart at the origin; the next client steps on from there.
	s.cascade[key] = s.metrics.TitleHeight
	c.Rect.X = box.X + in.West
	c.Rect.Y = box.Y + in.North
	if !overflows(c.Rect, in, box) {
		return
	}
	s.cascade[key] = 0

	// Last resort: the raw screen, shrinking the client if it is larger.
	sb := scr.Rect
	c.Rect.X = sb.X + in.West
	c.Rect.Y = sb.Y + in.North
	if overflows(c.Rect, in, sb) {
		c.Rect.Width = max(min(c.Rect.Width, sb.Width-in.West-in.East), c.Hints.MinWidth)
		c.Rect.Height = max(min(c.Rect.Height, sb.Height-in.North-in.South), c.Hints.MinHeight)
	}
}

func overflows(content geometry.Rect, in geometry.Insets, box geometry.Rect) bool {
	return content.Right()+in.East > box.Right() || content.Bottom()+in.South > box.Bottom()
}
