package wm

import (
	"testing"

	"github.com/1broseidon/floatwm/internal/geometry"
)

func TestStack_OrderBottomToTopAcrossLayers(t *testing.T) {
	s := NewStack()
	a := NewClient(1, geometry.Rect{})
	b := NewClient(2, geometry.Rect{})
	c := NewClient(3, geometry.Rect{})
	c.Layer = LayerBelow
	s.Add(a)
	s.Add(b)
	s.Add(c)

	var got []ClientID
	s.Each(func(cl *Client) { got = append(got, cl.ID) })
	want := []ClientID{3, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}

	s.Raise(1)
	if top := s.Layer(LayerNormal); top[len(top)-1].ID != 1 {
		t.Fatalf("expected client 1 on top after raise")
	}

	s.SetLayer(2, LayerAbove)
	if len(s.Layer(LayerAbove)) != 1 || len(s.Layer(LayerNormal)) != 1 {
		t.Fatalf("expected client 2 moved to above layer")
	}

	if _, ok := s.Remove(3); !ok || s.Len() != 2 {
		t.Fatalf("remove failed, len=%d", s.Len())
	}
	if _, ok := s.Lookup(3); ok {
		t.Fatalf("removed client still found")
	}
}

func TestSizeHints_NormalizeDefaults(t *testing.T) {
	h := SizeHints{Flags: HintResizeInc | HintAspect, WidthInc: 0, HeightInc: 7}
	n := h.Normalize()
	if n.WidthInc != 1 || n.HeightInc != 7 {
		t.Fatalf("unexpected increments %d/%d", n.WidthInc, n.HeightInc)
	}
	if n.MinWidth != 1 || n.MaxWidth != MaxSize {
		t.Fatalf("unexpected min/max %d/%d", n.MinWidth, n.MaxWidth)
	}
	if n.HasAspect() {
		t.Fatalf("zero aspect bounds must be dropped")
	}
	if n.Gravity != geometry.GravityNorthWest {
		t.Fatalf("expected northwest gravity, got %d", n.Gravity)
	}
}

func TestSizeHints_NormalizeMinAndBaseFallBack(t *testing.T) {
	n := SizeHints{Flags: HintBaseSize | HintResizeInc, BaseWidth: 10, BaseHeight: 12, WidthInc: 7, HeightInc: 7}.Normalize()
	if n.MinWidth != 10 || n.MinHeight != 12 {
		t.Fatalf("min without PMinSize = %dx%d, want base 10x12", n.MinWidth, n.MinHeight)
	}

	n = SizeHints{Flags: HintMinSize, MinWidth: 40, MinHeight: 30}.Normalize()
	if n.BaseWidth != 40 || n.BaseHeight != 30 {
		t.Fatalf("base without PBaseSize = %dx%d, want min 40x30", n.BaseWidth, n.BaseHeight)
	}

	n = SizeHints{}.Normalize()
	if n.MinWidth != 1 || n.MinHeight != 1 || n.BaseWidth != 0 || n.BaseHeight != 0 {
		t.Fatalf("no hints: min %dx%d base %dx%d", n.MinWidth, n.MinHeight, n.BaseWidth, n.BaseHeight)
	}
}

func TestClient_FrameAndDesktop(t *testing.T) {
	m := geometry.Metrics{TitleHeight: 20, BorderWidth: 4}
	c := NewClient(1, geometry.Rect{X: 100, Y: 100, Width: 300, Height: 200})
	if f := c.Frame(m); f != (geometry.Rect{X: 96, Y: 80, Width: 308, Height: 224}) {
		t.Fatalf("unexpected frame %+v", f)
	}
	c.State |= geometry.StateShaded
	if f := c.Frame(m); f.Height != 20 {
		t.Fatalf("shaded frame should be the title strip, got %+v", f)
	}

	c.Desktop = 2
	if c.OnDesktop(1) {
		t.Fatalf("client on desktop 2 reported on 1")
	}
	c.State |= geometry.StateSticky
	if !c.OnDesktop(1) {
		t.Fatalf("sticky client must be on every desktop")
	}
}
