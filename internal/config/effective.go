package config

import (
	"fmt"
)

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// BuildEffectiveConfig applies raw over the defaults.
func BuildEffectiveConfig(raw RawConfig) *Config {
	cfg := DefaultConfig()

	set(&cfg.LogLevel, raw.LogLevel)
	set(&cfg.Desktops, raw.Desktops)
	set(&cfg.OutlineColor, raw.OutlineColor)

	if s := raw.Snap; s != nil {
		set(&cfg.Snap.Mode, s.Mode)
		set(&cfg.Snap.Distance, s.Distance)
	}
	if m := raw.Move; m != nil {
		set(&cfg.Move.Feedback, m.Feedback)
		set(&cfg.Move.Threshold, m.Threshold)
	}
	if r := raw.Resize; r != nil {
		set(&cfg.Resize.Feedback, r.Feedback)
	}
	if k := raw.Keyboard; k != nil {
		set(&cfg.Keyboard.Step, k.Step)
		set(&cfg.Keyboard.MoveHotkey, k.MoveHotkey)
		set(&cfg.Keyboard.ResizeHotkey, k.ResizeHotkey)
	}
	if d := raw.Decorations; d != nil {
		set(&cfg.Decorations.TitleHeight, d.TitleHeight)
		set(&cfg.Decorations.BorderWidth, d.BorderWidth)
		set(&cfg.Decorations.ButtonWidth, d.ButtonWidth)
		set(&cfg.Decorations.CornerSize, d.CornerSize)
		set(&cfg.Decorations.MenuWidth, d.MenuWidth)
	}
	if a := raw.API; a != nil {
		set(&cfg.API.Enabled, a.Enabled)
		set(&cfg.API.Listen, a.Listen)
	}

	return cfg
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
