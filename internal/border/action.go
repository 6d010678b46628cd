// Package border classifies pointer positions on a client frame.
package border

import "strings"

// Action is what pressing a button at a frame position does. Resize
// actions carry the edges being dragged as direction bits.
type Action uint16

const (
	Resize Action = 1 << iota
	Move
	Close
	Maximize
	Minimize
	Sticky
	Menu

	North
	South
	East
	West
)

const None Action = 0

const (
	primaryMask   = Resize | Move | Close | Maximize | Minimize | Sticky | Menu
	directionMask = North | South | East | West
)

// Primary strips the direction bits.
func (a Action) Primary() Action { return a & primaryMask }

// Directions returns only the direction bits.
func (a Action) Directions() Action { return a & directionMask }

// Has reports whether every bit of f is set.
func (a Action) Has(f Action) bool { return a&f == f }

func (a Action) String() string {
	var name string
	switch a.Primary() {
	case None:
		return "none"
	case Resize:
		name = "resize"
	case Move:
		name = "move"
	case Close:
		name = "close"
	case Maximize:
		name = "maximize"
	case Minimize:
		name = "minimize"
	case Sticky:
		name = "sticky"
	case Menu:
		name = "menu"
	default:
		name = "mixed"
	}
	dirs := a.Directions()
	if dirs == 0 {
		return name
	}
	var parts []string
	for _, d := range []struct {
		bit  Action
		name string
	}{{North, "north"}, {South, "south"}, {East, "east"}, {West, "west"}} {
		if dirs&d.bit != 0 {
			parts = append(parts, d.name)
		}
	}
	return name + ":" + strings.Join(parts, "|")
}
