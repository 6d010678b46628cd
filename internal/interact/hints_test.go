package interact

import (
	"testing"

	"github.com/1broseidon/floatwm/internal/border"
	"github.com/1broseidon/floatwm/internal/geometry"
	"github.com/1broseidon/floatwm/internal/wm"
	"github.com/stretchr/testify/require"
)

func aspectHints(minX, minY, maxX, maxY int) wm.SizeHints {
	h := wm.DefaultSizeHints()
	h.Flags |= wm.HintAspect
	h.MinAspect = wm.Aspect{X: minX, Y: minY}
	h.MaxAspect = wm.Aspect{X: maxX, Y: maxY}
	return h
}

func TestQuantize(t *testing.T) {
	r := require.New(t)
	r.Equal(107, Quantize(107, 2, 1))
	r.Equal(102, Quantize(107, 2, 10))
	r.Equal(1, Quantize(1, 2, 10))
	r.Equal(-10, QuantizeDelta(-17, 10))
	r.Equal(10, QuantizeDelta(17, 10))
	r.Equal(17, QuantizeDelta(17, 1))
}

func TestClampSize(t *testing.T) {
	r := require.New(t)
	r.Equal(10, ClampSize(5, 10, 20))
	r.Equal(20, ClampSize(25, 10, 20))
	r.Equal(15, ClampSize(15, 10, 20))
}

func TestFixWidthAndHeight(t *testing.T) {
	r := require.New(t)
	wide := aspectHints(16, 9, 16, 9)
	r.Equal(1600, FixWidth(1000, 900, wide))
	r.Equal(810, FixHeight(1440, 720, wide))
	r.Equal(450, FixHeight(800, 900, wide))

	loose := aspectHints(1, 2, 2, 1)
	r.Equal(500, FixHeight(500, 500, loose))
	r.Equal(1000, FixWidth(3000, 500, loose))

	r.Equal(300, FixWidth(300, 200, wm.DefaultSizeHints()))
}

func TestCorrectAspect_MovesAnchoredEdges(t *testing.T) {
	r := require.New(t)
	square := aspectHints(1, 1, 1, 1)

	// Too narrow: width grows and the west edge follows.
	got := CorrectAspect(geometry.Rect{X: 100, Y: 100, Width: 200, Height: 300}, square, border.North|border.West)
	r.Equal(geometry.Rect{X: 0, Y: 100, Width: 300, Height: 300}, got)

	// Too wide: height grows and the north edge follows.
	got = CorrectAspect(geometry.Rect{X: 100, Y: 100, Width: 300, Height: 200}, square, border.North|border.West)
	r.Equal(geometry.Rect{X: 100, Y: 0, Width: 300, Height: 300}, got)

	// South-east drags keep the origin.
	got = CorrectAspect(geometry.Rect{X: 100, Y: 100, Width: 300, Height: 200}, square, border.South|border.East)
	r.Equal(geometry.Rect{X: 100, Y: 100, Width: 300, Height: 300}, got)

	// Single-axis edges are left to FixWidth/FixHeight.
	single := geometry.Rect{X: 100, Y: 100, Width: 300, Height: 200}
	r.Equal(single, CorrectAspect(single, square, border.East))
}
