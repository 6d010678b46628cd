package interact

import (
	"fmt"
	"strings"

	"github.com/1broseidon/floatwm/internal/border"
	"github.com/1broseidon/floatwm/internal/geometry"
	"github.com/1broseidon/floatwm/internal/snap"
	"github.com/1broseidon/floatwm/internal/wm"
)

// Phase is the lifecycle position of a session.
type Phase int

const (
	// PhaseIdle means no grab has been taken yet.
	PhaseIdle Phase = iota
	// PhaseArmed means grabs are held but the pointer has not moved far enough.
	PhaseArmed
	// PhaseCommitting means the geometry follows the pointer.
	PhaseCommitting
	// PhaseTerminal means grabs are released and the outcome is final.
	PhaseTerminal
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseArmed:
		return "armed"
	case PhaseCommitting:
		return "committing"
	case PhaseTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// Kind is the geometry a session changes.
type Kind int

const (
	KindMove Kind = iota
	KindResize
)

func (k Kind) String() string {
	if k == KindResize {
		return "resize"
	}
	return "move"
}

// Tag is the per-client view of the controller.
type Tag int

const (
	TagIdle Tag = iota
	TagMoving
	TagResizing
)

func (t Tag) String() string {
	switch t {
	case TagMoving:
		return "moving"
	case TagResizing:
		return "resizing"
	default:
		return "idle"
	}
}

// EventKind is the input delivered to a running session.
type EventKind int

const (
	EventMotion EventKind = iota + 1
	EventButtonRelease
	EventKeyPress
	EventKeyRelease
)

// Key is a key press already translated from its keysym.
type Key int

const (
	KeyOther Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyReturn
	KeyEscape
)

// Modifier scales keyboard steps.
type Modifier uint8

const (
	// ModPrecise divides the step by ten (Control).
	ModPrecise Modifier = 1 << iota
	// ModFast triples the step (Shift).
	ModFast
)

// Event is one input event in root coordinates.
type Event struct {
	Kind   EventKind
	RootX  int
	RootY  int
	Button int
	Key    Key
	Mods   Modifier
}

// FeedbackMode selects how geometry changes are shown while committing.
type FeedbackMode int

const (
	// FeedbackOpaque reconfigures the window on every step.
	FeedbackOpaque FeedbackMode = iota
	// FeedbackOutline draws a rectangle and applies the geometry at the end.
	FeedbackOutline
)

func (m FeedbackMode) String() string {
	if m == FeedbackOutline {
		return "outline"
	}
	return "opaque"
}

// ParseFeedbackMode converts a config value into a FeedbackMode.
func ParseFeedbackMode(s string) (FeedbackMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "opaque", "":
		return FeedbackOpaque, nil
	case "outline":
		return FeedbackOutline, nil
	default:
		return FeedbackOpaque, fmt.Errorf("unknown feedback mode %q (expected opaque or outline)", s)
	}
}

// DefaultThreshold is how far the pointer must travel before a session
// changes anything.
const DefaultThreshold = 3

// DefaultKeyStep is the keyboard nudge in pixels.
const DefaultKeyStep = 10

// Settings are captured when a session begins; a config reload does not
// affect a running session.
type Settings struct {
	Threshold      int
	KeyStep        int
	Snap           snap.Engine
	MoveFeedback   FeedbackMode
	ResizeFeedback FeedbackMode
	Metrics        geometry.Metrics
}

// DefaultSettings returns the settings used without a config file.
func DefaultSettings() Settings {
	metrics := geometry.Metrics{TitleHeight: 20, BorderWidth: 4, ButtonWidth: 20, CornerSize: 20, MenuWidth: 20}
	return Settings{
		Threshold: DefaultThreshold,
		KeyStep:   DefaultKeyStep,
		Snap:      snap.Engine{Mode: snap.ModeBorder, Distance: 5, Metrics: metrics},
		Metrics:   metrics,
	}
}

// Session is one interactive move or resize.
type Session struct {
	Kind   Kind
	Client *wm.Client
	// Button is the initiating pointer button, 0 for keyboard sessions.
	Button int
	// Action holds the resize edges.
	Action border.Action

	phase     Phase
	settings  Settings
	committed bool

	anchorX, anchorY   int
	pointerX, pointerY int
	nudgeX, nudgeY     int

	// base is the geometry deltas are applied to. It starts as the
	// original geometry and is re-centred when an axis is un-maximized.
	base geometry.Rect

	origRect  geometry.Rect
	origSaved geometry.Rect
	origState geometry.State
	unmaxed   geometry.State
}

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Committed reports whether the threshold has been crossed.
func (s *Session) Committed() bool { return s.committed }

func (s *Session) keyboard() bool { return s.Button == 0 }

func (s *Session) feedback() FeedbackMode {
	if s.Kind == KindResize {
		return s.settings.ResizeFeedback
	}
	return s.settings.MoveFeedback
}
