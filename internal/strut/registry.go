// Package strut tracks the screen areas reserved by docks and panels.
package strut

import (
	"sort"

	"github.com/1broseidon/floatwm/internal/geometry"
	"github.com/1broseidon/floatwm/internal/wm"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// Edge is the root window edge a strut is attached to.
type Edge int

const (
	EdgeLeft Edge = iota
	EdgeRight
	EdgeTop
	EdgeBottom
)

func (e Edge) String() string {
	switch e {
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	case EdgeTop:
		return "top"
	case EdgeBottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// Strut is one reserved rectangle in root coordinates.
type Strut struct {
	Owner wm.ClientID   `json:"owner"`
	Edge  Edge          `json:"edge"`
	Rect  geometry.Rect `json:"rect"`
}

// Owners resolves the client that owns a strut.
type Owners interface {
	Lookup(id wm.ClientID) (*wm.Client, bool)
}

// Registry holds the struts of every client, keyed by owner.
// It is owned by the event-dispatch thread.
type Registry struct {
	owners     Owners
	rootWidth  int
	rootHeight int
	hints      map[wm.ClientID]hint
	struts     map[wm.ClientID][]Strut
}

// hint keeps the raw property so struts can be re-derived on root resize.
type hint struct {
	partial ewmh.WmStrutPartial
	legacy  *ewmh.WmStrut
}

// NewRegistry returns an empty registry for a root window of the given size.
func NewRegistry(owners Owners, rootWidth, rootHeight int) *Registry {
	return &Registry{
		owners:     owners,
		rootWidth:  rootWidth,
		rootHeight: rootHeight,
		hints:      make(map[wm.ClientID]hint),
		struts:     make(map[wm.ClientID][]Strut),
	}
}

// UpsertPartial replaces the struts of id from a _NET_WM_STRUT_PARTIAL hint.
func (r *Registry) UpsertPartial(id wm.ClientID, sp ewmh.WmStrutPartial) {
	r.hints[id] = hint{partial: sp}
	r.rebuild(id)
}

// UpsertLegacy replaces the struts of id from a _NET_WM_STRUT hint, whose
// edges span the whole root window.
func (r *Registry) UpsertLegacy(id wm.ClientID, s ewmh.WmStrut) {
	r.hints[id] = hint{legacy: &s}
	r.rebuild(id)
}

// UpsertStruts accepts the raw CARDINAL values of either hint. Twelve values
// are read as a partial strut, four as a legacy strut. Anything else removes
// the owner's struts.
func (r *Registry) UpsertStruts(id wm.ClientID, values []uint) {
	switch len(values) {
	case 12:
		r.UpsertPartial(id, ewmh.WmStrutPartial{
			Left: values[0], Right: values[1], Top: values[2], Bottom: values[3],
			LeftStartY: values[4], LeftEndY: values[5],
			RightStartY: values[6], RightEndY: values[7],
			TopStartX: values[8], TopEndX: values[9],
			BottomStartX: values[10], BottomEndX: values[11],
		})
	case 4:
		r.UpsertLegacy(id, ewmh.WmStrut{
			Left: values[0], Right: values[1], Top: values[2], Bottom: values[3],
		})
	default:
		r.RemoveStruts(id)
	}
}

// RemoveStruts drops every strut owned by id.
func (r *Registry) RemoveStruts(id wm.ClientID) {
	delete(r.hints, id)
	delete(r.struts, id)
}

// SetRootSize re-derives all struts for a new root window size.
func (r *Registry) SetRootSize(width, height int) {
	if width == r.rootWidth && height == r.rootHeight {
		return
	}
	r.rootWidth, r.rootHeight = width, height
	for id := range r.hints {
		r.rebuild(id)
	}
}

// ForEachActiveStrut visits the struts whose owner is on desktop or sticky,
// in ascending owner order.
func (r *Registry) ForEachActiveStrut(desktop int, visit func(Strut)) {
	for _, id := range r.ownerIDs() {
		c, ok := r.owners.Lookup(id)
		if !ok || !c.OnDesktop(desktop) {
			continue
		}
		for _, s := range r.struts[id] {
			visit(s)
		}
	}
}

// All returns every strut regardless of desktop.
func (r *Registry) All() []Strut {
	var out []Strut
	for _, id := range r.ownerIDs() {
		out = append(out, r.struts[id]...)
	}
	return out
}

func (r *Registry) ownerIDs() []wm.ClientID {
	ids := make([]wm.ClientID, 0, len(r.struts))
	for id := range r.struts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (r *Registry) fullSpan(s ewmh.WmStrut) ewmh.WmStrutPartial {
	return ewmh.WmStrutPartial{
		Left:         s.Left,
		Right:        s.Right,
		Top:          s.Top,
		Bottom:       s.Bottom,
		LeftStartY:   0,
		LeftEndY:     uint(max(r.rootHeight-1, 0)),
		RightStartY:  0,
		RightEndY:    uint(max(r.rootHeight-1, 0)),
		TopStartX:    0,
		TopEndX:      uint(max(r.rootWidth-1, 0)),
		BottomStartX: 0,
		BottomEndX:   uint(max(r.rootWidth-1, 0)),
	}
}

func (r *Registry) rebuild(id wm.ClientID) {
	h := r.hints[id]
	sp := h.partial
	if h.legacy != nil {
		sp = r.fullSpan(*h.legacy)
	}
	var out []Strut
	add := func(e Edge, x1, y1, x2, y2 int) {
		if x2 <= x1 || y2 <= y1 {
			return
		}
		out = append(out, Strut{Owner: id, Edge: e, Rect: geometry.Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}})
	}

	// Left strut: x=[0,Left), y=[LeftStartY,LeftEndY]
	if sp.Left > 0 {
		add(EdgeLeft, 0, int(sp.LeftStartY), int(sp.Left), int(sp.LeftEndY)+1)
	}
	// Right strut: x=[rootWidth-Right,rootWidth), y=[RightStartY,RightEndY]
	if sp.Right > 0 {
		add(EdgeRight, r.rootWidth-int(sp.Right), int(sp.RightStartY), r.rootWidth, int(sp.RightEndY)+1)
	}
	// Top strut: y=[0,Top), x=[TopStartX,TopEndX]
	if sp.Top > 0 {
		add(EdgeTop, int(sp.TopStartX), 0, int(sp.TopEndX)+1, int(sp.Top))
	}
	// Bottom strut: y=[rootHeight-Bottom,rootHeight), x=[BottomStartX,BottomEndX]
	if sp.Bottom > 0 {
		add(EdgeBottom, int(sp.BottomStartX), r.rootHeight-int(sp.Bottom), int(sp.BottomEndX)+1, r.rootHeight)
	}

	if len(out) == 0 {
		delete(r.struts, id)
		return
	}
	r.struts[id] = out
}
