package wm

import "github.com/1broseidon/floatwm/internal/geometry"

// Stack keeps managed clients ordered bottom-to-top within each layer.
// It is owned by the event-dispatch thread and is not safe for concurrent use.
type Stack struct {
	layers [LayerCount][]*Client
	byID   map[ClientID]*Client
}

// NewStack returns an empty stack.
func NewStack() *Stack {
	return &Stack{byID: make(map[ClientID]*Client)}
}

// Add places c on top of its layer. Adding a known id replaces nothing.
func (s *Stack) Add(c *Client) {
	if _, ok := s.byID[c.ID]; ok {
		return
	}
	l := clampLayer(c.Layer)
	c.Layer = l
	s.layers[l] = append(s.layers[l], c)
	s.byID[c.ID] = c
}

// Remove drops the client with the given id.
func (s *Stack) Remove(id ClientID) (*Client, bool) {
	c, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	delete(s.byID, id)
	s.layers[c.Layer] = without(s.layers[c.Layer], c)
	return c, true
}

// Lookup returns the client with the given id.
func (s *Stack) Lookup(id ClientID) (*Client, bool) {
	c, ok := s.byID[id]
	return c, ok
}

// Raise moves the client to the top of its layer.
func (s *Stack) Raise(id ClientID) {
	c, ok := s.byID[id]
	if !ok {
		return
	}
	s.layers[c.Layer] = append(without(s.layers[c.Layer], c), c)
}

// SetLayer moves the client to the top of layer l.
func (s *Stack) SetLayer(id ClientID, l Layer) {
	c, ok := s.byID[id]
	if !ok {
		return
	}
	s.layers[c.Layer] = without(s.layers[c.Layer], c)
	c.Layer = clampLayer(l)
	s.layers[c.Layer] = append(s.layers[c.Layer], c)
}

// Layer returns the clients of layer l, bottom first.
func (s *Stack) Layer(l Layer) []*Client {
	return s.layers[clampLayer(l)]
}

// Each visits every client bottom-to-top across all layers.
func (s *Stack) Each(visit func(*Client)) {
	for l := range s.layers {
		for _, c := range s.layers[l] {
			visit(c)
		}
	}
}

// Clients returns all clients bottom-to-top.
func (s *Stack) Clients() []*Client {
	out := make([]*Client, 0, len(s.byID))
	s.Each(func(c *Client) { out = append(out, c) })
	return out
}

// Len returns the number of managed clients.
func (s *Stack) Len() int { return len(s.byID) }

func without(list []*Client, c *Client) []*Client {
	for i, e := range list {
		if e == c {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return list
}

func clampLayer(l Layer) Layer {
	if l < LayerDesktop {
		return LayerDesktop
	}
	if int(l) >= LayerCount {
		return LayerAbove
	}
	return l
}

// Model is the window manager state the geometry core reads.
type Model struct {
	Stack    *Stack
	Panels   []Panel
	Screens  []Screen
	Desktop  int
	Desktops int
}

// NewModel returns an empty model with one desktop.
func NewModel() *Model {
	return &Model{Stack: NewStack(), Desktops: 1}
}

// Lookup implements the owner lookup used by the strut registry.
func (m *Model) Lookup(id ClientID) (*Client, bool) {
	return m.Stack.Lookup(id)
}

// ScreenAt returns the screen containing (x, y), falling back to the first.
func (m *Model) ScreenAt(x, y int) Screen {
	for _, s := range m.Screens {
		if s.Rect.ContainsPoint(x, y) {
			return s
		}
	}
	if len(m.Screens) > 0 {
		return m.Screens[0]
	}
	return Screen{}
}

// ScreenFor returns the screen containing the centre of r.
func (m *Model) ScreenFor(r geometry.Rect) Screen {
	cx, cy := r.Center()
	return m.ScreenAt(cx, cy)
}

// PanelsInLayer returns the visible panels of layer l.
func (m *Model) PanelsInLayer(l Layer) []Panel {
	var out []Panel
	for _, p := range m.Panels {
		if p.Layer == l && !p.Hidden {
			out = append(out, p)
		}
	}
	return out
}

// ClientsInLayer returns the clients of layer l, bottom first.
func (m *Model) ClientsInLayer(l Layer) []*Client { return m.Stack.Layer(l) }

// CurrentDesktop returns the desktop being shown.
func (m *Model) CurrentDesktop() int { return m.Desktop }
