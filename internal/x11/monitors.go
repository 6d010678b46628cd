package x11

import (
	"fmt"
	"sort"

	"github.com/1broseidon/floatwm/internal/geometry"
	"github.com/1broseidon/floatwm/internal/wm"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xinerama"
	"github.com/BurntSushi/xgbutil/xrect"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// Screens returns the physical outputs, trying RandR, then Xinerama, then
// the root window geometry.
func (c *Connection) Screens() ([]wm.Screen, error) {
	if screens, err := c.randrScreens(); err == nil && len(screens) > 0 {
		return screens, nil
	}

	var heads []xrect.Rect
	if c.XUtil.ExtInitialized("XINERAMA") {
		if h, err := xinerama.PhysicalHeads(c.XUtil); err == nil {
			heads = h
		}
	}
	if len(heads) == 0 {
		rgeom, err := xwindow.New(c.XUtil, c.Root).Geometry()
		if err != nil {
			return nil, fmt.Errorf("failed to get root geometry: %w", err)
		}
		heads = append(heads, rgeom)
	}
	return screensFromHeads(heads), nil
}

func (c *Connection) randrScreens() ([]wm.Screen, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var screens []wm.Screen
	for i, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		// Disabled CRTC.
		if info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}

		name := fmt.Sprintf("Monitor%d", i)
		if out, err := randr.GetOutputInfo(c.XUtil.Conn(), info.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			name = string(out.Name)
		}

		screens = append(screens, wm.Screen{
			Name: name,
			Rect: geometry.Rect{X: int(info.X), Y: int(info.Y), Width: int(info.Width), Height: int(info.Height)},
		})
	}
	return normalizeScreens(screens), nil
}

// screensFromHeads converts Xinerama heads into indexed screens.
func screensFromHeads(heads []xrect.Rect) []wm.Screen {
	screens := make([]wm.Screen, 0, len(heads))
	for i, h := range heads {
		screens = append(screens, wm.Screen{
			Name: fmt.Sprintf("head%d", i),
			Rect: geometry.Rect{X: h.X(), Y: h.Y(), Width: h.Width(), Height: h.Height()},
		})
	}
	return normalizeScreens(screens)
}

// normalizeScreens drops mirrored outputs, sorts left to right then top to
// bottom, and renumbers.
func normalizeScreens(in []wm.Screen) []wm.Screen {
	seen := make(map[geometry.Rect]bool, len(in))
	out := make([]wm.Screen, 0, len(in))
	for _, s := range in {
		if s.Rect.Empty() || seen[s.Rect] {
			continue
		}
		seen[s.Rect] = true
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Rect.X != out[j].Rect.X {
			return out[i].Rect.X < out[j].Rect.X
		}
		return out[i].Rect.Y < out[j].Rect.Y
	})
	for i := range out {
		out[i].Index = i
	}
	return out
}

// RootSize returns the root window dimensions.
func (c *Connection) RootSize() (width, height int, err error) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(c.Root)).Reply()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get root geometry: %w", err)
	}
	return int(geom.Width), int(geom.Height), nil
}

// PointerPosition returns the pointer in root coordinates.
func (c *Connection) PointerPosition() (x, y int, ok bool) {
	pointer, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return 0, 0, false
	}
	return int(pointer.RootX), int(pointer.RootY), true
}

// PointerButtons returns the key and button state mask of the pointer.
func (c *Connection) PointerButtons() uint16 {
	pointer, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return 0
	}
	return pointer.Mask
}

// WatchScreens asks for RandR screen-change notifications and calls
// onChange on the event-dispatch thread when the layout changes.
func (c *Connection) WatchScreens(onChange func()) error {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return fmt.Errorf("randr init failed: %w", err)
	}
	err := randr.SelectInputChecked(c.XUtil.Conn(), c.Root, randr.NotifyMaskScreenChange).Check()
	if err != nil {
		return fmt.Errorf("failed to select randr input: %w", err)
	}
	xevent.HookFun(func(xu *xgbutil.XUtil, ev interface{}) bool {
		if _, ok := ev.(randr.ScreenChangeNotifyEvent); ok {
			onChange()
			return false
		}
		return true
	}).Connect(c.XUtil)
	return nil
}
