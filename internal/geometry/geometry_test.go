package geometry

import "testing"

var testMetrics = Metrics{TitleHeight: 20, BorderWidth: 4, ButtonWidth: 20, CornerSize: 20}

func TestComputeBorderInsets_ZeroExactlyWhenFullscreen(t *testing.T) {
	decorations := []Decoration{0, DecorTitle, DecorOutline, DecorTitle | DecorOutline, DefaultDecorations}
	states := []State{0, StateShaded, StateSticky, StateMaxHorz | StateMaxVert, StateShaded | StateSticky}

	for _, d := range decorations {
		for _, s := range states {
			plain := ComputeBorderInsets(testMetrics, d, s)
			if again := ComputeBorderInsets(testMetrics, d, s); again != plain {
				t.Fatalf("insets not deterministic for %v/%v: %+v vs %+v", d, s, plain, again)
			}
			full := ComputeBorderInsets(testMetrics, d, s|StateFullscreen)
			if full != (Insets{}) {
				t.Fatalf("expected zero insets for fullscreen %v/%v, got %+v", d, s, full)
			}
			if d&(DecorTitle|DecorOutline) != 0 && plain == (Insets{}) {
				t.Fatalf("expected non-zero insets for %v/%v", d, s)
			}
		}
	}
}

func TestComputeBorderInsets_TitleWithoutOutlineIsNorthOnly(t *testing.T) {
	got := ComputeBorderInsets(testMetrics, DecorTitle, 0)
	want := Insets{North: 20}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestComputeBorderInsets_OutlineOnlyHasNoNorth(t *testing.T) {
	got := ComputeBorderInsets(testMetrics, DecorOutline, 0)
	want := Insets{North: 0, South: 4, East: 4, West: 4}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestComputeBorderInsets_ShadedCollapsesSouth(t *testing.T) {
	got := ComputeBorderInsets(testMetrics, DecorTitle|DecorOutline, StateShaded)
	want := Insets{North: 20, South: 0, East: 4, West: 4}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestApplyGravity_RoundTrip(t *testing.T) {
	in := Insets{North: 20, South: 4, East: 4, West: 4}
	start := Rect{X: 100, Y: 100, Width: 300, Height: 200}

	for g := GravityForget; g <= GravityStatic; g++ {
		moved := ApplyGravity(start, in, g, false)
		back := ApplyGravity(moved, in, g, true)
		if back != start {
			t.Fatalf("gravity %d: round trip got %+v, want %+v", g, back, start)
		}
	}

	nw := ApplyGravity(start, in, GravityNorthWest, false)
	if nw.X != 104 || nw.Y != 120 {
		t.Fatalf("northwest: expected content at (104,120), got (%d,%d)", nw.X, nw.Y)
	}
	se := ApplyGravity(start, in, GravitySouthEast, false)
	if se.X != 96 || se.Y != 96 {
		t.Fatalf("southeast: expected content at (96,96), got (%d,%d)", se.X, se.Y)
	}
	if st := ApplyGravity(start, in, GravityStatic, false); st != start {
		t.Fatalf("static gravity moved the window: %+v", st)
	}
}

func TestRectIntersectionAndBox(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	b := Rect{X: 50, Y: 60, Width: 100, Height: 100}

	if !a.Intersects(b) {
		t.Fatalf("expected overlap")
	}
	got := a.Intersection(b)
	if got != (Rect{X: 50, Y: 60, Width: 50, Height: 40}) {
		t.Fatalf("unexpected intersection %+v", got)
	}
	if a.Intersects(Rect{X: 100, Y: 0, Width: 10, Height: 10}) {
		t.Fatalf("touching rectangles must not intersect")
	}
	if a.Box().Rect() != a {
		t.Fatalf("box round trip failed")
	}
}

func TestFrame(t *testing.T) {
	in := ComputeBorderInsets(testMetrics, DecorTitle|DecorOutline, 0)
	f := Frame(Rect{X: 10, Y: 30, Width: 100, Height: 50}, in)
	want := Rect{X: 6, Y: 10, Width: 108, Height: 74}
	if f != want {
		t.Fatalf("got %+v, want %+v", f, want)
	}
	if c := Content(f, in); c != (Rect{X: 10, Y: 30, Width: 100, Height: 50}) {
		t.Fatalf("Content did not invert Frame: %+v", c)
	}
}
