package wm

import "github.com/1broseidon/floatwm/internal/geometry"

// MaxSize is the largest window dimension the protocol can express.
const MaxSize = 1<<15 - 1

// HintFlags records which WM_NORMAL_HINTS fields a client supplied.
type HintFlags uint32

const (
	HintUserPosition HintFlags = 1 << iota
	HintUserSize
	HintProgramPosition
	HintProgramSize
	HintMinSize
	HintMaxSize
	HintResizeInc
	HintAspect
	HintBaseSize
	HintGravity
)

// Aspect is a width:height ratio.
type Aspect struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// SizeHints are the normalized size constraints of a client.
type SizeHints struct {
	Flags HintFlags `json:"flags"`

	MinWidth  int `json:"min_width"`
	MinHeight int `json:"min_height"`
	MaxWidth  int `json:"max_width"`
	MaxHeight int `json:"max_height"`

	BaseWidth  int `json:"base_width"`
	BaseHeight int `json:"base_height"`
	WidthInc   int `json:"width_inc"`
	HeightInc  int `json:"height_inc"`

	MinAspect Aspect `json:"min_aspect"`
	MaxAspect Aspect `json:"max_aspect"`

	Gravity geometry.Gravity `json:"gravity"`
}

// DefaultSizeHints is what a client without WM_NORMAL_HINTS gets.
func DefaultSizeHints() SizeHints {
	return SizeHints{
		MinWidth:  1,
		MinHeight: 1,
		MaxWidth:  MaxSize,
		MaxHeight: MaxSize,
		WidthInc:  1,
		HeightInc: 1,
		Gravity:   geometry.GravityNorthWest,
	}
}

// Normalize fills unset or invalid fields so that the constraint math
// never divides by zero.
func (h SizeHints) Normalize() SizeHints {
	// ICCCM: base and min size stand in for each other when one is missing.
	hasMin, hasBase := h.Flags&HintMinSize != 0, h.Flags&HintBaseSize != 0
	switch {
	case !hasMin && hasBase:
		h.MinWidth, h.MinHeight = h.BaseWidth, h.BaseHeight
	case !hasMin:
		h.MinWidth, h.MinHeight = 1, 1
	}
	switch {
	case !hasBase && hasMin:
		h.BaseWidth, h.BaseHeight = h.MinWidth, h.MinHeight
	case !hasBase:
		h.BaseWidth, h.BaseHeight = 0, 0
	}
	h.MinWidth = max(1, h.MinWidth)
	h.MinHeight = max(1, h.MinHeight)
	if h.Flags&HintMaxSize == 0 || h.MaxWidth <= 0 {
		h.MaxWidth = MaxSize
	}
	if h.Flags&HintMaxSize == 0 || h.MaxHeight <= 0 {
		h.MaxHeight = MaxSize
	}
	h.MaxWidth = max(h.MaxWidth, h.MinWidth)
	h.MaxHeight = max(h.MaxHeight, h.MinHeight)
	if h.Flags&HintResizeInc == 0 || h.WidthInc < 1 {
		h.WidthInc = 1
	}
	if h.Flags&HintResizeInc == 0 || h.HeightInc < 1 {
		h.HeightInc = 1
	}
	if h.Flags&HintAspect != 0 {
		if h.MinAspect.X <= 0 || h.MinAspect.Y <= 0 || h.MaxAspect.X <= 0 || h.MaxAspect.Y <= 0 {
			h.Flags &^= HintAspect
		}
	}
	if h.Flags&HintGravity == 0 || h.Gravity == geometry.GravityForget {
		h.Gravity = geometry.GravityNorthWest
	}
	return h
}

// HasAspect reports whether aspect bounds apply.
func (h SizeHints) HasAspect() bool { return h.Flags&HintAspect != 0 }

// HasPosition reports whether the client asked for a specific position.
func (h SizeHints) HasPosition() bool {
	return h.Flags&(HintUserPosition|HintProgramPosition) != 0
}
