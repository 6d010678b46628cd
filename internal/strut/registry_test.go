package strut

import (
	"testing"

	"github.com/1broseidon/floatwm/internal/geometry"
	"github.com/1broseidon/floatwm/internal/wm"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/stretchr/testify/require"
)

func newModel(clients ...*wm.Client) *wm.Model {
	m := wm.NewModel()
	for _, c := range clients {
		m.Stack.Add(c)
	}
	return m
}

func collect(r *Registry, desktop int) []Strut {
	var out []Strut
	r.ForEachActiveStrut(desktop, func(s Strut) { out = append(out, s) })
	return out
}

func TestUpsertPartial_OnlyPositiveEdges(t *testing.T) {
	r := require.New(t)
	dock := wm.NewClient(10, geometry.Rect{})
	reg := NewRegistry(newModel(dock), 1920, 1080)

	reg.UpsertPartial(10, ewmh.WmStrutPartial{
		Top:       30,
		TopStartX: 0,
		TopEndX:   1919,
	})

	got := collect(reg, 0)
	r.Len(got, 1)
	r.Equal(EdgeTop, got[0].Edge)
	r.Equal(geometry.Rect{X: 0, Y: 0, Width: 1920, Height: 30}, got[0].Rect)
}

func TestUpsertStruts_RawLegacyAndPartial(t *testing.T) {
	r := require.New(t)
	dock := wm.NewClient(10, geometry.Rect{})
	reg := NewRegistry(newModel(dock), 1920, 1080)

	reg.UpsertStruts(10, []uint{0, 0, 0, 40})
	got := collect(reg, 0)
	r.Len(got, 1)
	r.Equal(geometry.Rect{X: 0, Y: 1040, Width: 1920, Height: 40}, got[0].Rect)

	// Partial replaces the legacy entries of the same owner.
	reg.UpsertStruts(10, []uint{25, 0, 0, 0, 100, 599, 0, 0, 0, 0, 0, 0})
	got = collect(reg, 0)
	r.Len(got, 1)
	r.Equal(EdgeLeft, got[0].Edge)
	r.Equal(geometry.Rect{X: 0, Y: 100, Width: 25, Height: 500}, got[0].Rect)

	reg.UpsertStruts(10, nil)
	r.Empty(collect(reg, 0))
}

func TestForEachActiveStrut_DesktopScoped(t *testing.T) {
	r := require.New(t)
	onOne := wm.NewClient(1, geometry.Rect{})
	onOne.Desktop = 1
	sticky := wm.NewClient(2, geometry.Rect{})
	sticky.Desktop = 3
	sticky.State |= geometry.StateSticky
	reg := NewRegistry(newModel(onOne, sticky), 1000, 800)

	reg.UpsertLegacy(1, ewmh.WmStrut{Left: 10})
	reg.UpsertLegacy(2, ewmh.WmStrut{Right: 20})
	reg.UpsertLegacy(99, ewmh.WmStrut{Top: 5}) // unknown owner

	r.Len(collect(reg, 0), 1)
	r.Len(collect(reg, 1), 2)
	r.Len(reg.All(), 3)

	reg.RemoveStruts(2)
	r.Empty(collect(reg, 0))
	r.Len(collect(reg, 1), 1)
}

func TestSetRootSize_RederivesFarEdges(t *testing.T) {
	r := require.New(t)
	dock := wm.NewClient(10, geometry.Rect{})
	reg := NewRegistry(newModel(dock), 1920, 1080)
	reg.UpsertLegacy(10, ewmh.WmStrut{Right: 50})

	reg.SetRootSize(2560, 1440)
	got := collect(reg, 0)
	r.Len(got, 1)
	r.Equal(geometry.Rect{X: 2510, Y: 0, Width: 50, Height: 1440}, got[0].Rect)
}
