package config

import (
	"fmt"
	"sort"
)

var explainPaths = map[string]func(*Config) any{
	"log_level":                func(c *Config) any { return c.LogLevel },
	"desktops":                 func(c *Config) any { return c.Desktops },
	"snap":                     func(c *Config) any { return c.Snap },
	"snap.mode":                func(c *Config) any { return c.Snap.Mode },
	"snap.distance":            func(c *Config) any { return c.Snap.Distance },
	"move":                     func(c *Config) any { return c.Move },
	"move.feedback":            func(c *Config) any { return c.Move.Feedback },
	"move.threshold":           func(c *Config) any { return c.Move.Threshold },
	"resize":                   func(c *Config) any { return c.Resize },
	"resize.feedback":          func(c *Config) any { return c.Resize.Feedback },
	"keyboard":                 func(c *Config) any { return c.Keyboard },
	"keyboard.step":            func(c *Config) any { return c.Keyboard.Step },
	"keyboard.move_hotkey":     func(c *Config) any { return c.Keyboard.MoveHotkey },
	"keyboard.resize_hotkey":   func(c *Config) any { return c.Keyboard.ResizeHotkey },
	"decorations":              func(c *Config) any { return c.Decorations },
	"decorations.title_height": func(c *Config) any { return c.Decorations.TitleHeight },
	"decorations.border_width": func(c *Config) any { return c.Decorations.BorderWidth },
	"decorations.button_width": func(c *Config) any { return c.Decorations.ButtonWidth },
	"decorations.corner_size":  func(c *Config) any { return c.Decorations.CornerSize },
	"decorations.menu_width":   func(c *Config) any { return c.Decorations.MenuWidth },
	"outline_color":            func(c *Config) any { return c.OutlineColor },
	"api":                      func(c *Config) any { return c.API },
	"api.enabled":              func(c *Config) any { return c.API.Enabled },
	"api.listen":               func(c *Config) any { return c.API.Listen },
}

// ExplainPaths lists every path Explain accepts.
func ExplainPaths() []string {
	out := make([]string, 0, len(explainPaths))
	for p := range explainPaths {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Explain returns the effective value at the given YAML-like path (for
// example snap.distance) and the file position that set it.
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	lookup, ok := explainPaths[path]
	if !ok {
		return nil, Source{}, fmt.Errorf("unknown path: %s", path)
	}
	value := lookup(res.Config)

	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault, Name: "defaults"}, nil
}
