package placement

import "github.com/1broseidon/floatwm/internal/geometry"

// Subtract removes cut from r, keeping a single rectangle.
//
// A rectangle minus a rectangle is generally not a rectangle, so this picks
// the largest of four candidates:
//
//	0. move the left edge past cut
//	1. move the top edge past cut
//	2. end the width at cut
//	3. end the height at cut
//
// Candidates 0 and 1 are preferred over 2 and 3 on equal area, and the lower
// numbered candidate wins within each pair. One dimension of a candidate may
// be negative; callers must check the result.
func Subtract(r, cut geometry.Rect) geometry.Rect {
	if !r.Intersects(cut) {
		return r
	}

	var c [4]geometry.Rect

	c[0] = r
	c[0].X = cut.Right()
	c[0].Width = r.Right() - c[0].X

	c[1] = r
	c[1].Y = cut.Bottom()
	c[1].Height = r.Bottom() - c[1].Y

	c[2] = r
	c[2].Width = cut.X - r.X

	c[3] = r
	c[3].Height = cut.Y - r.Y

	if c[0].Area() < c[1].Area() {
		c[0] = c[1]
	}
	if c[2].Area() < c[3].Area() {
		c[2] = c[3]
	}
	if c[0].Area() < c[2].Area() {
		return c[2]
	}
	return c[0]
}

// subtractKeep subtracts cut from r unless the result would have no area.
func subtractKeep(r, cut geometry.Rect) geometry.Rect {
	next := Subtract(r, cut)
	if next.Empty() {
		return r
	}
	return next
}
