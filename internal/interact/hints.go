package interact

import (
	"github.com/1broseidon/floatwm/internal/border"
	"github.com/1broseidon/floatwm/internal/geometry"
	"github.com/1broseidon/floatwm/internal/wm"
)

// Quantize rounds size down so that (size - base) is a multiple of inc.
func Quantize(size, base, inc int) int {
	if inc <= 1 || size <= base {
		return size
	}
	return base + (size-base)/inc*inc
}

// QuantizeDelta truncates a pointer delta to whole increments.
func QuantizeDelta(delta, inc int) int {
	if inc <= 1 {
		return delta
	}
	return delta / inc * inc
}

// ClampSize bounds size to [lo, hi].
func ClampSize(size, lo, hi int) int {
	return min(max(size, lo), hi)
}

// FixWidth re-derives the width from the height to satisfy the aspect bounds.
func FixWidth(width, height int, h wm.SizeHints) int {
	if !h.HasAspect() || height <= 0 {
		return width
	}
	if width*h.MinAspect.Y < height*h.MinAspect.X {
		width = height * h.MinAspect.X / h.MinAspect.Y
	}
	if width*h.MaxAspect.Y > height*h.MaxAspect.X {
		width = height * h.MaxAspect.X / h.MaxAspect.Y
	}
	return width
}

// FixHeight re-derives the height from the width to satisfy the aspect bounds.
func FixHeight(width, height int, h wm.SizeHints) int {
	if !h.HasAspect() || height <= 0 {
		return height
	}
	if width*h.MinAspect.Y < height*h.MinAspect.X {
		height = width * h.MinAspect.Y / h.MinAspect.X
	}
	if width*h.MaxAspect.Y > height*h.MaxAspect.X {
		height = width * h.MaxAspect.Y / h.MaxAspect.X
	}
	return height
}

// CorrectAspect fixes the aspect ratio of a resize that moves both axes.
// Too narrow widens, too wide grows the height; the position follows when
// the dragged edge is west or north.
func CorrectAspect(r geometry.Rect, h wm.SizeHints, edges border.Action) geometry.Rect {
	if !h.HasAspect() {
		return r
	}
	if !edges.Has(border.North) && !edges.Has(border.South) {
		return r
	}
	if !edges.Has(border.East) && !edges.Has(border.West) {
		return r
	}
	if r.Width*h.MinAspect.Y < r.Height*h.MinAspect.X {
		old := r.Width
		r.Width = r.Height * h.MinAspect.X / h.MinAspect.Y
		if edges.Has(border.West) {
			r.X -= r.Width - old
		}
	}
	if r.Width*h.MaxAspect.Y > r.Height*h.MaxAspect.X {
		old := r.Height
		r.Height = r.Width * h.MaxAspect.Y / h.MaxAspect.X
		if edges.Has(border.North) {
			r.Y -= r.Height - old
		}
	}
	return r
}

// resizeStep applies a pointer delta to start for the given edges.
// Dragged west and north edges only move while the size stays within
// bounds; prev is kept otherwise.
func resizeStep(start, prev geometry.Rect, h wm.SizeHints, edges border.Action, dx, dy int) geometry.Rect {
	r := prev
	vertical := edges.Has(border.North) || edges.Has(border.South)
	horizontal := edges.Has(border.East) || edges.Has(border.West)

	if edges.Has(border.North) {
		d := QuantizeDelta(dy, h.HeightInc)
		if next := start.Height - d; next >= h.MinHeight && (next <= h.MaxHeight || d > 0) {
			r.Height = next
			r.Y = start.Y + d
		}
		if !horizontal {
			r.Width = FixWidth(r.Width, r.Height, h)
		}
	}
	if edges.Has(border.South) {
		d := QuantizeDelta(dy, h.HeightInc)
		r.Y = start.Y
		r.Height = ClampSize(start.Height+d, h.MinHeight, h.MaxHeight)
		if !horizontal {
			r.Width = FixWidth(r.Width, r.Height, h)
		}
	}
	if edges.Has(border.East) {
		d := QuantizeDelta(dx, h.WidthInc)
		r.X = start.X
		r.Width = ClampSize(start.Width+d, h.MinWidth, h.MaxWidth)
		if !vertical {
			r.Height = FixHeight(r.Width, r.Height, h)
		}
	}
	if edges.Has(border.West) {
		d := QuantizeDelta(dx, h.WidthInc)
		if next := start.Width - d; next >= h.MinWidth && (next <= h.MaxWidth || d > 0) {
			r.Width = next
			r.X = start.X + d
		}
		if !vertical {
			r.Height = FixHeight(r.Width, r.Height, h)
		}
	}

	if vertical && horizontal {
		r = CorrectAspect(r, h, edges)
	}
	return alignToIncrements(r, h, edges)
}

// alignToIncrements keeps the dragged size on the increment grid and inside
// the size bounds, holding the opposite edge in place.
func alignToIncrements(r geometry.Rect, h wm.SizeHints, edges border.Action) geometry.Rect {
	right, bottom := r.Right(), r.Bottom()
	r.Width = ClampSize(Quantize(r.Width, h.BaseWidth, h.WidthInc), h.MinWidth, h.MaxWidth)
	r.Height = ClampSize(Quantize(r.Height, h.BaseHeight, h.HeightInc), h.MinHeight, h.MaxHeight)
	if edges.Has(border.West) {
		r.X = right - r.Width
	}
	if edges.Has(border.North) {
		r.Y = bottom - r.Height
	}
	return r
}
