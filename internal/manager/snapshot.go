package manager

import (
	"sort"

	"github.com/1broseidon/floatwm/internal/geometry"
	"github.com/1broseidon/floatwm/internal/placement"
	"github.com/1broseidon/floatwm/internal/strut"
	"github.com/1broseidon/floatwm/internal/wm"
)

// FreeArea is the space left on one screen of the current desktop for a
// normal-layer client.
type FreeArea struct {
	Screen int           `json:"screen"`
	Usable geometry.Rect `json:"usable"`
	Free   geometry.Rect `json:"free"`
}

// Snapshot is an immutable copy of the manager state. It is rebuilt on the
// dispatch thread after every change and read from anywhere.
type Snapshot struct {
	Generation uint64        `json:"generation"`
	Desktop    int           `json:"desktop"`
	Desktops   int           `json:"desktops"`
	Clients    []wm.Client   `json:"clients"`
	Docks      []wm.Client   `json:"docks"`
	Screens    []wm.Screen   `json:"screens"`
	Struts     []strut.Strut `json:"struts"`
	FreeAreas  []FreeArea    `json:"free_areas"`
}

// Client returns the client with the given id.
func (s *Snapshot) Client(id wm.ClientID) (wm.Client, bool) {
	for _, c := range s.Clients {
		if c.ID == id {
			return c, true
		}
	}
	for _, c := range s.Docks {
		if c.ID == id {
			return c, true
		}
	}
	return wm.Client{}, false
}

// FreeArea returns the free area of a screen.
func (s *Snapshot) FreeArea(screen int) (FreeArea, bool) {
	for _, fa := range s.FreeAreas {
		if fa.Screen == screen {
			return fa, true
		}
	}
	return FreeArea{}, false
}

func buildSnapshot(gen uint64, model *wm.Model, docks map[wm.ClientID]*wm.Client, struts *strut.Registry, solver *placement.Solver) *Snapshot {
	snap := &Snapshot{
		Generation: gen,
		Desktop:    model.Desktop,
		Desktops:   model.Desktops,
		Clients:    make([]wm.Client, 0, model.Stack.Len()),
		Docks:      make([]wm.Client, 0, len(docks)),
		Screens:    append([]wm.Screen(nil), model.Screens...),
		Struts:     struts.All(),
	}
	// Bottom to top.
	model.Stack.Each(func(c *wm.Client) {
		snap.Clients = append(snap.Clients, *c)
	})
	for _, d := range docks {
		snap.Docks = append(snap.Docks, *d)
	}
	sort.Slice(snap.Docks, func(i, j int) bool { return snap.Docks[i].ID < snap.Docks[j].ID })

	for _, scr := range model.Screens {
		snap.FreeAreas = append(snap.FreeAreas, FreeArea{
			Screen: scr.Index,
			Usable: solver.UsableArea(scr.Rect, wm.LayerNormal, model.Desktop, 0),
			Free:   solver.ComputeFreeArea(scr.Rect, wm.LayerNormal, model.Desktop, 0),
		})
	}
	return snap
}
