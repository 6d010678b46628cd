package placement

import (
	"github.com/1broseidon/floatwm/internal/geometry"
	"github.com/1broseidon/floatwm/internal/wm"
)

// PlaceMaximized maximizes c along the requested axes within the usable area
// of its screen.
func (s *Solver) PlaceMaximized(c *wm.Client, horz, vert bool) {
	if !horz && !vert {
		return
	}
	if !c.State.Any(geometry.StateMaximized) {
		c.Saved = c.Rect
	}

	in := c.Insets(s.metrics)
	frame := c.Frame(s.metrics)
	box := s.model.ScreenFor(frame).Rect
	if !horz {
		box.X, box.Width = frame.X, frame.Width
	}
	if !vert {
		box.Y, box.Height = frame.Y, frame.Height
	}
	inner := geometry.Content(s.UsableArea(box, c.Layer, s.desktopOf(c), c.ID), in)

	width := min(inner.Width, c.Hints.MaxWidth)
	height := min(inner.Height, c.Hints.MaxHeight)
	width, height = fitAspect(width, height, c.Hints)

	if horz {
		c.Rect.X = inner.X
		c.Rect.Width = width
		c.State |= geometry.StateMaxHorz
	}
	if vert {
		c.Rect.Y = inner.Y
		c.Rect.Height = height
		c.State |= geometry.StateMaxVert
	}
}

// Restore un-maximizes the requested axes, returning them to the geometry
// saved by PlaceMaximized.
func (s *Solver) Restore(c *wm.Client, horz, vert bool) {
	if horz && c.State.Has(geometry.StateMaxHorz) {
		c.Rect.X, c.Rect.Width = c.Saved.X, c.Saved.Width
		c.State &^= geometry.StateMaxHorz
	}
	if vert && c.State.Has(geometry.StateMaxVert) {
		c.Rect.Y, c.Rect.Height = c.Saved.Y, c.Saved.Height
		c.State &^= geometry.StateMaxVert
	}
}

// ConstrainSize brings c back inside its screen after its geometry became
// invalid, for example when an output was removed. It never sets the
// maximized state.
func (s *Solver) ConstrainSize(c *wm.Client) {
	h := c.Hints
	c.Rect.Width = min(c.Rect.Width, h.MaxWidth)
	c.Rect.Height = min(c.Rect.Height, h.MaxHeight)

	in := c.Insets(s.metrics)
	frame := c.Frame(s.metrics)
	scr := s.model.ScreenFor(frame)
	if frame.Width <= scr.Rect.Width && frame.Height <= scr.Rect.Height {
		if !s.onAnyScreen(frame) {
			c.Rect.X = scr.Rect.X + in.West
			c.Rect.Y = scr.Rect.Y + in.North
		}
		return
	}

	inner := geometry.Content(s.UsableArea(scr.Rect, c.Layer, s.desktopOf(c), c.ID), in)
	width := min(inner.Width, h.MaxWidth)
	height := min(inner.Height, h.MaxHeight)
	width, height = fitAspect(width, height, h)

	c.Rect.X, c.Rect.Y = inner.X, inner.Y
	c.Rect.Width = max(roundDown(width, h.BaseWidth, h.WidthInc), h.MinWidth)
	c.Rect.Height = max(roundDown(height, h.BaseHeight, h.HeightInc), h.MinHeight)
}

// fitAspect shrinks one side so that width:height stays within the aspect
// bounds. Ratios use a 16-bit fixed point fraction. A degenerate result is
// rolled back to the input size.
func fitAspect(width, height int, h wm.SizeHints) (int, int) {
	if !h.HasAspect() || width <= 0 || height <= 0 {
		return width, height
	}
	w, ht := width, height
	ratio := (w << 16) / ht
	if minr := (h.MinAspect.X << 16) / h.MinAspect.Y; minr > 0 && ratio < minr {
		ht = (w << 16) / minr
	}
	if maxr := (h.MaxAspect.X << 16) / h.MaxAspect.Y; maxr > 0 && ratio > maxr {
		w = (ht * maxr) >> 16
	}
	if w <= 0 || ht <= 0 {
		return width, height
	}
	return w, ht
}

// roundDown trims size so that (size - base) is a multiple of inc.
func roundDown(size, base, inc int) int {
	if inc <= 1 || size <= base {
		return size
	}
	return size - (size-base)%inc
}
