package manager

import (
	"github.com/1broseidon/floatwm/internal/border"
	"github.com/1broseidon/floatwm/internal/geometry"
	"github.com/1broseidon/floatwm/internal/hotkeys"
	"github.com/1broseidon/floatwm/internal/interact"
	"github.com/1broseidon/floatwm/internal/wm"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

const (
	moveButton   = "Mod1-1"
	resizeButton = "Mod1-3"
)

func (m *Manager) bindButtons() error {
	m.bindings = hotkeys.NewHandler(m.conn, m.logger.With("component", "hotkeys"))
	if err := m.bindings.RegisterButton(moveButton, m.onMoveButton); err != nil {
		return err
	}
	return m.bindings.RegisterButton(resizeButton, m.onResizeButton)
}

// bindKeys registers the configured keyboard-session hotkeys. Failures are
// logged; a missing hotkey does not stop the manager.
func (m *Manager) bindKeys() {
	kb := m.Config().Keyboard
	bind := func(keys string, action border.Action) {
		if keys == "" {
			return
		}
		err := m.bindings.RegisterFunc(keys, func() { m.keyboardSession(action) })
		if err != nil {
			m.logger.Warn("failed to register hotkey", "keys", keys, "error", err)
		}
	}
	bind(kb.MoveHotkey, border.Move)
	bind(kb.ResizeHotkey, border.Resize|border.South|border.East)
}

// keyboardSession starts a keyboard move or resize on the client under the
// pointer.
func (m *Manager) keyboardSession(action border.Action) {
	x, y, ok := m.backend.PointerPosition()
	if !ok {
		return
	}
	c, ok := clientAt(m.model, m.metrics(), x, y)
	if !ok {
		m.logger.Debug("no client under pointer", "x", x, "y", y)
		return
	}
	m.begin(c, action, x, y, 0)
}

func (m *Manager) onMoveButton(ev xevent.ButtonPressEvent) {
	c, ok := m.model.Lookup(wm.ClientID(ev.Child))
	if !ok {
		return
	}
	m.begin(c, border.Move, int(ev.RootX), int(ev.RootY), int(ev.Detail))
}

func (m *Manager) onResizeButton(ev xevent.ButtonPressEvent) {
	c, ok := m.model.Lookup(wm.ClientID(ev.Child))
	if !ok {
		return
	}
	metrics := m.metrics()
	frame := c.Frame(metrics)
	fx, fy := int(ev.RootX)-frame.X, int(ev.RootY)-frame.Y

	action := border.ClassifyHit(c, metrics, fx, fy)
	if action.Primary() != border.Resize {
		action = border.Quadrant(c, metrics, fx, fy)
	}
	m.begin(c, action, int(ev.RootX), int(ev.RootY), int(ev.Detail))
}

func (m *Manager) onMotion(xu *xgbutil.XUtil, ev xevent.MotionNotifyEvent) {
	if m.ctrl.Active() == nil {
		return
	}
	ev = m.conn.CompressMotion(ev)
	m.ctrl.Step(interact.Event{
		Kind:  interact.EventMotion,
		RootX: int(ev.RootX),
		RootY: int(ev.RootY),
	})
}

func (m *Manager) onButtonRelease(xu *xgbutil.XUtil, ev xevent.ButtonReleaseEvent) {
	s := m.ctrl.Active()
	if s == nil || int(ev.Detail) != s.Button {
		return
	}
	m.ctrl.Step(interact.Event{
		Kind:   interact.EventButtonRelease,
		RootX:  int(ev.RootX),
		RootY:  int(ev.RootY),
		Button: int(ev.Detail),
	})
}

func (m *Manager) onKeyPress(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
	if m.ctrl.Active() == nil {
		return
	}
	name := keybind.LookupString(xu, ev.State, ev.Detail)
	m.ctrl.Step(interact.Event{
		Kind:  interact.EventKeyPress,
		RootX: int(ev.RootX),
		RootY: int(ev.RootY),
		Key:   translateKey(name),
		Mods:  translateMods(ev.State),
	})
}

func (m *Manager) onKeyRelease(xu *xgbutil.XUtil, ev xevent.KeyReleaseEvent) {
	if m.ctrl.Active() == nil {
		return
	}
	m.ctrl.Step(interact.Event{
		Kind:  interact.EventKeyRelease,
		RootX: int(ev.RootX),
		RootY: int(ev.RootY),
	})
}

// translateKey maps a keysym name to a session key.
func translateKey(name string) interact.Key {
	switch name {
	case "Up", "KP_Up", "k":
		return interact.KeyUp
	case "Down", "KP_Down", "j":
		return interact.KeyDown
	case "Left", "KP_Left", "h":
		return interact.KeyLeft
	case "Right", "KP_Right", "l":
		return interact.KeyRight
	case "Return", "KP_Enter", "space":
		return interact.KeyReturn
	case "Escape":
		return interact.KeyEscape
	default:
		return interact.KeyOther
	}
}

func translateMods(state uint16) interact.Modifier {
	var mods interact.Modifier
	if state&xproto.ModMaskControl != 0 {
		mods |= interact.ModPrecise
	}
	if state&xproto.ModMaskShift != 0 {
		mods |= interact.ModFast
	}
	return mods
}

// clientAt returns the topmost visible client on the current desktop whose
// frame contains (x, y).
func clientAt(model *wm.Model, metrics geometry.Metrics, x, y int) (*wm.Client, bool) {
	for l := wm.LayerCount - 1; l >= 0; l-- {
		layer := model.Stack.Layer(wm.Layer(l))
		for i := len(layer) - 1; i >= 0; i-- {
			c := layer[i]
			if !c.Visible() || !c.OnDesktop(model.Desktop) {
				continue
			}
			if c.Frame(metrics).ContainsPoint(x, y) {
				return c, true
			}
		}
	}
	return nil, false
}
