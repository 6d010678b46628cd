package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		// Not present.
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

type RawSnap struct {
	Mode     *string `yaml:"mode"`
	Distance *int    `yaml:"distance"`
}

type RawMove struct {
	Feedback  *string `yaml:"feedback"`
	Threshold *int    `yaml:"threshold"`
}

type RawResize struct {
	Feedback *string `yaml:"feedback"`
}

type RawKeyboard struct {
	Step         *int    `yaml:"step"`
	MoveHotkey   *string `yaml:"move_hotkey"`
	ResizeHotkey *string `yaml:"resize_hotkey"`
}

type RawDecorations struct {
	TitleHeight *int `yaml:"title_height"`
	BorderWidth *int `yaml:"border_width"`
	ButtonWidth *int `yaml:"button_width"`
	CornerSize  *int `yaml:"corner_size"`
	MenuWidth   *int `yaml:"menu_width"`
}

type RawAPI struct {
	Enabled *bool   `yaml:"enabled"`
	Listen  *string `yaml:"listen"`
}

// RawConfig mirrors Config with every field optional so that files can be
// layered.
type RawConfig struct {
	Include      IncludeList     `yaml:"include"`
	LogLevel     *string         `yaml:"log_level"`
	Desktops     *int            `yaml:"desktops"`
	Snap         *RawSnap        `yaml:"snap"`
	Move         *RawMove        `yaml:"move"`
	Resize       *RawResize      `yaml:"resize"`
	Keyboard     *RawKeyboard    `yaml:"keyboard"`
	Decorations  *RawDecorations `yaml:"decorations"`
	OutlineColor *uint32         `yaml:"outline_color"`
	API          *RawAPI         `yaml:"api"`
}

// override returns overlay when it is set, base otherwise.
func override[T any](base, overlay *T) *T {
	if overlay != nil {
		return overlay
	}
	return base
}

func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c

	out.LogLevel = override(out.LogLevel, overlay.LogLevel)
	out.Desktops = override(out.Desktops, overlay.Desktops)
	out.OutlineColor = override(out.OutlineColor, overlay.OutlineColor)

	if overlay.Snap != nil {
		merged := RawSnap{}
		if out.Snap != nil {
			merged = *out.Snap
		}
		merged.Mode = override(merged.Mode, overlay.Snap.Mode)
		merged.Distance = override(merged.Distance, overlay.Snap.Distance)
		out.Snap = &merged
	}
	if overlay.Move != nil {
		merged := RawMove{}
		if out.Move != nil {
			merged = *out.Move
		}
		merged.Feedback = override(merged.Feedback, overlay.Move.Feedback)
		merged.Threshold = override(merged.Threshold, overlay.Move.Threshold)
		out.Move = &merged
	}
	if overlay.Resize != nil {
		merged := RawResize{}
		if out.Resize != nil {
			merged = *out.Resize
		}
		merged.Feedback = override(merged.Feedback, overlay.Resize.Feedback)
		out.Resize = &merged
	}
	if overlay.Keyboard != nil {
		merged := RawKeyboard{}
		if out.Keyboard != nil {
			merged = *out.Keyboard
		}
		merged.Step = override(merged.Step, overlay.Keyboard.Step)
		merged.MoveHotkey = override(merged.MoveHotkey, overlay.Keyboard.MoveHotkey)
		merged.ResizeHotkey = override(merged.ResizeHotkey, overlay.Keyboard.ResizeHotkey)
		out.Keyboard = &merged
	}
	if overlay.Decorations != nil {
		merged := RawDecorations{}
		if out.Decorations != nil {
			merged = *out.Decorations
		}
		merged.TitleHeight = override(merged.TitleHeight, overlay.Decorations.TitleHeight)
		merged.BorderWidth = override(merged.BorderWidth, overlay.Decorations.BorderWidth)
		merged.ButtonWidth = override(merged.ButtonWidth, overlay.Decorations.ButtonWidth)
		merged.CornerSize = override(merged.CornerSize, overlay.Decorations.CornerSize)
		merged.MenuWidth = override(merged.MenuWidth, overlay.Decorations.MenuWidth)
		out.Decorations = &merged
	}
	if overlay.API != nil {
		merged := RawAPI{}
		if out.API != nil {
			merged = *out.API
		}
		merged.Enabled = override(merged.Enabled, overlay.API.Enabled)
		merged.Listen = override(merged.Listen, overlay.API.Listen)
		out.API = &merged
	}

	return out
}
