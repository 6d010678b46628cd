package border

import (
	"testing"

	"github.com/1broseidon/floatwm/internal/geometry"
	"github.com/1broseidon/floatwm/internal/wm"
)

var metrics = geometry.Metrics{TitleHeight: 20, BorderWidth: 4, ButtonWidth: 20, CornerSize: 20, MenuWidth: 20}

// newClient returns a 400x300 client; its frame is 408x324.
func newClient() *wm.Client {
	return wm.NewClient(1, geometry.Rect{X: 100, Y: 100, Width: 400, Height: 300})
}

func TestClassifyHit_Regions(t *testing.T) {
	c := newClient()
	tests := []struct {
		name string
		x, y int
		want Action
	}{
		{"close", 390, 10, Close},
		{"maximize", 370, 10, Maximize},
		{"minimize", 350, 10, Minimize},
		{"title", 200, 10, Move},
		{"menu", 10, 10, Menu},
		{"north-west corner", 2, 10, Resize | North | West},
		{"north-east corner", 406, 2, Resize | North | East},
		{"south-west corner", 2, 320, Resize | South | West},
		{"south-east corner", 407, 323, Resize | South | East},
		{"west", 1, 150, Resize | West},
		{"east", 405, 150, Resize | East},
		{"south", 200, 322, Resize | South},
		{"north", 200, 1, Resize | North},
		{"content", 200, 150, None},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyHit(c, metrics, tt.x, tt.y); got != tt.want {
				t.Fatalf("ClassifyHit(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestClassifyHit_ResizeDisabled(t *testing.T) {
	c := newClient()
	c.Decor &^= geometry.DecorResize

	if got := ClassifyHit(c, metrics, 1, 150); got != None {
		t.Fatalf("expected none on the west edge, got %v", got)
	}
	if got := ClassifyHit(c, metrics, 390, 10); got != Close {
		t.Fatalf("expected close button to still work, got %v", got)
	}
}

func TestClassifyHit_MoveDisabled(t *testing.T) {
	c := newClient()
	c.Decor &^= geometry.DecorMove
	if got := ClassifyHit(c, metrics, 200, 10); got != None {
		t.Fatalf("expected none, got %v", got)
	}
}

func TestClassifyHit_MaximizedAxesMasked(t *testing.T) {
	c := newClient()
	c.State |= geometry.StateMaxHorz

	if got := ClassifyHit(c, metrics, 1, 150); got != None {
		t.Fatalf("west edge of horizontally maximized client: got %v", got)
	}
	if got := ClassifyHit(c, metrics, 407, 323); got != Resize|South {
		t.Fatalf("south-east corner of horizontally maximized client: got %v", got)
	}

	c.State = geometry.StateMaxVert
	if got := ClassifyHit(c, metrics, 200, 322); got != None {
		t.Fatalf("south edge of vertically maximized client: got %v", got)
	}
}

func TestClassifyHit_Shaded(t *testing.T) {
	c := newClient()
	c.State |= geometry.StateShaded

	if got := ClassifyHit(c, metrics, 200, 10); got != Move {
		t.Fatalf("title of shaded client: got %v", got)
	}
	if got := ClassifyHit(c, metrics, 1, 10); got != Resize|West {
		t.Fatalf("west edge of shaded client: got %v", got)
	}
	if got := ClassifyHit(c, metrics, 200, 21); got != None {
		t.Fatalf("below shaded frame: got %v", got)
	}
}

func TestClassifyHit_SmallClientSkipsCorners(t *testing.T) {
	c := wm.NewClient(2, geometry.Rect{Width: 30, Height: 30})
	if got := ClassifyHit(c, metrics, 1, 1); got != Resize|West {
		t.Fatalf("got %v", got)
	}
}

func TestClassifyHit_NarrowTitleDropsButtons(t *testing.T) {
	c := wm.NewClient(2, geometry.Rect{Width: 50, Height: 100})
	if got := ClassifyHit(c, metrics, 50, 10); got != Move {
		t.Fatalf("got %v", got)
	}
}

func TestQuadrant(t *testing.T) {
	c := newClient()
	if got := Quadrant(c, metrics, 300, 250); got != Resize|South|East {
		t.Fatalf("got %v", got)
	}
	if got := Quadrant(c, metrics, 10, 10); got != Resize|North|West {
		t.Fatalf("got %v", got)
	}
	c.Decor &^= geometry.DecorResize
	if got := Quadrant(c, metrics, 10, 10); got != None {
		t.Fatalf("got %v", got)
	}
}

func TestActionString(t *testing.T) {
	if got := (Resize | North | East).String(); got != "resize:north|east" {
		t.Fatalf("got %q", got)
	}
	if got := None.String(); got != "none" {
		t.Fatalf("got %q", got)
	}
	if (Resize | West).Primary() != Resize {
		t.Fatal("primary should strip direction bits")
	}
}
