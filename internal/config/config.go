package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/1broseidon/floatwm/internal/geometry"
	"github.com/1broseidon/floatwm/internal/interact"
	"github.com/1broseidon/floatwm/internal/snap"
	"gopkg.in/yaml.v3"
)

// MaxDesktops bounds the desktops setting.
const MaxDesktops = 32

// SnapConfig controls edge snapping while moving.
type SnapConfig struct {
	Mode     string `yaml:"mode"`
	Distance int    `yaml:"distance"`
}

// MoveConfig controls pointer and keyboard moves.
type MoveConfig struct {
	Feedback  string `yaml:"feedback"`
	Threshold int    `yaml:"threshold"`
}

// ResizeConfig controls resizes.
type ResizeConfig struct {
	Feedback string `yaml:"feedback"`
}

// KeyboardConfig holds the keyboard step and the hotkeys that start
// keyboard sessions on the client under the pointer.
type KeyboardConfig struct {
	Step         int    `yaml:"step"`
	MoveHotkey   string `yaml:"move_hotkey"`
	ResizeHotkey string `yaml:"resize_hotkey"`
}

// DecorationConfig holds the frame sizes in pixels.
type DecorationConfig struct {
	TitleHeight int `yaml:"title_height"`
	BorderWidth int `yaml:"border_width"`
	ButtonWidth int `yaml:"button_width"`
	CornerSize  int `yaml:"corner_size"`
	MenuWidth   int `yaml:"menu_width"`
}

// APIConfig controls the inspection API.
type APIConfig struct {
	Enabled bool `yaml:"enabled"`
	// Listen is a TCP address. Empty serves on the unix socket in the
	// runtime directory.
	Listen string `yaml:"listen"`
}

// Config is the effective configuration.
type Config struct {
	LogLevel     string           `yaml:"log_level"`
	Desktops     int              `yaml:"desktops"`
	Snap         SnapConfig       `yaml:"snap"`
	Move         MoveConfig       `yaml:"move"`
	Resize       ResizeConfig     `yaml:"resize"`
	Keyboard     KeyboardConfig   `yaml:"keyboard"`
	Decorations  DecorationConfig `yaml:"decorations"`
	OutlineColor uint32           `yaml:"outline_color"`
	API          APIConfig        `yaml:"api"`
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Desktops: 4,
		Snap: SnapConfig{
			Mode:     "border",
			Distance: 5,
		},
		Move: MoveConfig{
			Feedback:  "opaque",
			Threshold: interact.DefaultThreshold,
		},
		Resize: ResizeConfig{
			Feedback: "opaque",
		},
		Keyboard: KeyboardConfig{
			Step:         interact.DefaultKeyStep,
			MoveHotkey:   "Mod1-F7",
			ResizeHotkey: "Mod1-F8",
		},
		Decorations: DecorationConfig{
			TitleHeight: 20,
			BorderWidth: 4,
			ButtonWidth: 20,
			CornerSize:  20,
			MenuWidth:   20,
		},
		OutlineColor: 0xffffff,
		API: APIConfig{
			Enabled: true,
		},
	}
}

// Metrics returns the decoration sizes used by the geometry core.
func (c *Config) Metrics() geometry.Metrics {
	d := c.Decorations
	return geometry.Metrics{
		TitleHeight: d.TitleHeight,
		BorderWidth: d.BorderWidth,
		ButtonWidth: d.ButtonWidth,
		CornerSize:  d.CornerSize,
		MenuWidth:   d.MenuWidth,
	}
}

// Settings returns the interaction settings. The config must have been
// validated.
func (c *Config) Settings() interact.Settings {
	mode, _ := snap.ParseMode(c.Snap.Mode)
	move, _ := interact.ParseFeedbackMode(c.Move.Feedback)
	resize, _ := interact.ParseFeedbackMode(c.Resize.Feedback)
	metrics := c.Metrics()
	return interact.Settings{
		Threshold:      c.Move.Threshold,
		KeyStep:        c.Keyboard.Step,
		Snap:           snap.Engine{Mode: mode, Distance: c.Snap.Distance, Metrics: metrics},
		MoveFeedback:   move,
		ResizeFeedback: resize,
		Metrics:        metrics,
	}
}

// Marshal renders the effective configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	if c.Desktops < 1 || c.Desktops > MaxDesktops {
		return &ValidationError{Path: "desktops", Err: fmt.Errorf("desktops must be between 1 and %d", MaxDesktops)}
	}
	if _, err := snap.ParseMode(c.Snap.Mode); err != nil {
		return &ValidationError{Path: "snap.mode", Err: err}
	}
	if c.Snap.Distance < 0 {
		return &ValidationError{Path: "snap.distance", Err: fmt.Errorf("distance must be >= 0")}
	}
	if _, err := interact.ParseFeedbackMode(c.Move.Feedback); err != nil {
		return &ValidationError{Path: "move.feedback", Err: err}
	}
	if c.Move.Threshold < 0 {
		return &ValidationError{Path: "move.threshold", Err: fmt.Errorf("threshold must be >= 0")}
	}
	if _, err := interact.ParseFeedbackMode(c.Resize.Feedback); err != nil {
		return &ValidationError{Path: "resize.feedback", Err: err}
	}
	if c.Keyboard.Step < 1 {
		return &ValidationError{Path: "keyboard.step", Err: fmt.Errorf("step must be >= 1")}
	}
	if c.Keyboard.MoveHotkey != "" && c.Keyboard.MoveHotkey == c.Keyboard.ResizeHotkey {
		return &ValidationError{Path: "keyboard.resize_hotkey", Err: fmt.Errorf("resize_hotkey must differ from move_hotkey")}
	}

	d := c.Decorations
	for _, f := range []struct {
		path  string
		value int
	}{
		{"decorations.title_height", d.TitleHeight},
		{"decorations.border_width", d.BorderWidth},
		{"decorations.button_width", d.ButtonWidth},
		{"decorations.corner_size", d.CornerSize},
		{"decorations.menu_width", d.MenuWidth},
	} {
		if f.value < 0 {
			return &ValidationError{Path: f.path, Err: fmt.Errorf("must be >= 0")}
		}
	}
	if c.OutlineColor > 0xffffff {
		return &ValidationError{Path: "outline_color", Err: fmt.Errorf("outline_color must be a 24-bit RGB value")}
	}
	if c.API.Listen != "" && !strings.Contains(c.API.Listen, ":") {
		return &ValidationError{Path: "api.listen", Err: fmt.Errorf("listen must be a host:port address")}
	}

	for _, w := range c.validationWarnings() {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}
	return nil
}

func (c *Config) validationWarnings() []string {
	var warnings []string
	if c.Snap.Mode != "none" && c.Snap.Distance == 0 {
		warnings = append(warnings, fmt.Sprintf("snap.mode is %q but snap.distance is 0; nothing will snap", c.Snap.Mode))
	}
	if c.Decorations.CornerSize > 0 && c.Decorations.CornerSize < c.Decorations.BorderWidth {
		warnings = append(warnings, "decorations.corner_size is smaller than border_width; corners will be hard to grab")
	}
	return warnings
}
