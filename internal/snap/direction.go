package snap

import "github.com/1broseidon/floatwm/internal/geometry"

// Direction is the side of the moving client a candidate edge is on.
type Direction int

const (
	Left Direction = iota
	Right
	Top
	Bottom
)

var directions = [...]Direction{Left, Right, Top, Bottom}

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// toLeft maps b into the frame where d becomes the left side. Every
// direction then shares the same snap and occlusion rules.
func (d Direction) toLeft(b geometry.Box) geometry.Box {
	switch d {
	case Right:
		return geometry.Box{Left: -b.Right, Top: b.Top, Right: -b.Left, Bottom: b.Bottom}
	case Top:
		return geometry.Box{Left: b.Top, Top: b.Left, Right: b.Bottom, Bottom: b.Right}
	case Bottom:
		return geometry.Box{Left: -b.Bottom, Top: b.Left, Right: -b.Top, Bottom: b.Right}
	default:
		return b
	}
}

type candidate struct {
	box   geometry.Box
	valid bool
}

type scan struct {
	client geometry.Box
	dist   int
	cand   [len(directions)]candidate
}

// consider drops candidates that other hides and records other when its
// facing edge is within distance.
func (s *scan) consider(other geometry.Box) {
	for _, d := range directions {
		k := &s.cand[d]
		c, o := d.toLeft(s.client), d.toLeft(other)
		if k.valid && !stillValid(c, o, d.toLeft(k.box)) {
			k.valid = false
		}
		if snaps(c, o, s.dist) {
			*k = candidate{box: other, valid: true}
		}
	}
}

// stillValid reports whether cand stays visible to client once other is
// stacked on top, all in the left frame.
func stillValid(client, other, cand geometry.Box) bool {
	switch {
	case cand.Right > other.Right:
		return true
	case cand.Top < other.Top && client.Top < other.Top:
		return true
	case cand.Bottom > other.Bottom && client.Bottom > other.Bottom:
		return true
	case other.Left >= cand.Right:
		return true
	}
	return false
}

func snaps(client, other geometry.Box, dist int) bool {
	return TopBottomOverlap(client, other) && abs(client.Left-other.Right) <= dist
}
