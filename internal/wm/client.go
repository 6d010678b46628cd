package wm

import "github.com/1broseidon/floatwm/internal/geometry"

// ClientID identifies a managed client by its X window.
type ClientID uint32

// Layer orders clients for stacking. Higher layers are drawn above lower ones.
type Layer int

const (
	LayerDesktop Layer = iota
	LayerBelow
	LayerNormal
	LayerAbove

	LayerCount = int(LayerAbove) + 1
)

func (l Layer) String() string {
	switch l {
	case LayerDesktop:
		return "desktop"
	case LayerBelow:
		return "below"
	case LayerNormal:
		return "normal"
	case LayerAbove:
		return "above"
	default:
		return "unknown"
	}
}

// Client is the geometry-relevant part of a managed window.
type Client struct {
	ID   ClientID `json:"id"`
	Name string   `json:"name,omitempty"`

	// Rect is the content rectangle in root coordinates.
	Rect geometry.Rect `json:"rect"`
	// Saved holds the geometry from before the last maximize.
	Saved geometry.Rect `json:"saved"`

	Desktop int                 `json:"desktop"`
	State   geometry.State      `json:"state"`
	Decor   geometry.Decoration `json:"decor"`
	Layer   Layer               `json:"layer"`
	Hints   SizeHints           `json:"hints"`
}

// NewClient returns a client with default decorations and hints.
func NewClient(id ClientID, r geometry.Rect) *Client {
	return &Client{
		ID:    id,
		Rect:  r,
		Saved: r,
		Decor: geometry.DefaultDecorations,
		Layer: LayerNormal,
		Hints: DefaultSizeHints(),
	}
}

// Insets returns the frame insets for the client's current state.
func (c *Client) Insets(m geometry.Metrics) geometry.Insets {
	return geometry.ComputeBorderInsets(m, c.Decor, c.State)
}

// Frame returns the content rectangle expanded by the insets.
// A shaded client's frame collapses to its title strip.
func (c *Client) Frame(m geometry.Metrics) geometry.Rect {
	in := c.Insets(m)
	r := c.Rect
	if c.State.Has(geometry.StateShaded) {
		r.Height = 0
	}
	return geometry.Frame(r, in)
}

// OnDesktop reports whether the client is shown on desktop d.
func (c *Client) OnDesktop(d int) bool {
	return c.State.Has(geometry.StateSticky) || c.Desktop == d
}

// Visible reports whether the client is mapped and not hidden.
func (c *Client) Visible() bool {
	return c.State.Has(geometry.StateMapped) && !c.State.Has(geometry.StateHidden)
}

// Panel is a tray or dock the window manager reserves space for.
type Panel struct {
	ID           ClientID      `json:"id"`
	Rect         geometry.Rect `json:"rect"`
	Layer        Layer         `json:"layer"`
	AutoHide     bool          `json:"auto_hide"`
	MaximizeOver bool          `json:"maximize_over"`
	Hidden       bool          `json:"hidden"`
}

// Screen is one physical output.
type Screen struct {
	Index int           `json:"index"`
	Name  string        `json:"name"`
	Rect  geometry.Rect `json:"rect"`
}
