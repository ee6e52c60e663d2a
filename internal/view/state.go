// Package view maps image pixels to viewport pixels. It owns the zoom and pan
// state of a single viewer and turns input events into changes of that state.
//
// Nothing in this package is safe for concurrent use; a Viewer belongs to the
// goroutine that runs the game loop.
package view

import "fmt"

// Vec is a point or translation in viewport pixels unless stated otherwise.
type Vec struct {
	X, Y float64
}

func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }

// IsZero reports whether v is the zero translation.
func (v Vec) IsZero() bool { return v == Vec{} }

func (v Vec) String() string { return fmt.Sprintf("(%g, %g)", v.X, v.Y) }

// Size is an integer width and height.
type Size struct {
	W, H int
}

// Empty reports whether either dimension is zero or negative.
func (s Size) Empty() bool { return s.W <= 0 || s.H <= 0 }

func (s Size) String() string { return fmt.Sprintf("%dx%d", s.W, s.H) }

// State is the complete transform of the displayed image.
type State struct {
	// Scale is the uniform zoom factor. Zoom steps keep it inside
	// [MinScale, MaxScale]; fitting may leave it outside.
	Scale float64

	// PanOffset is the committed pan of all finished drags.
	PanOffset Vec
	// PanDelta is the translation of the drag in progress, zero when idle.
	PanDelta Vec

	ImageSize    Size
	ViewportSize Size

	// AspectRatio is ImageSize.W / ImageSize.H in floating point.
	AspectRatio float64

	// Adjusted is set once the user zooms or pans after a load. A resize
	// refits the image only while it is false.
	Adjusted bool
}

// NewState returns the identity transform.
func NewState() State {
	return State{Scale: 1}
}

// SetImageSize records the dimensions of a newly loaded image and recomputes
// the aspect ratio.
func (s *State) SetImageSize(sz Size) {
	s.ImageSize = sz
	s.AspectRatio = 0
	if sz.H > 0 {
		s.AspectRatio = float64(sz.W) / float64(sz.H)
	}
}

// ResetTransforms drops all zoom and pan.
func (s *State) ResetTransforms() {
	s.Scale = 1
	s.PanOffset = Vec{}
	s.PanDelta = Vec{}
	s.Adjusted = false
}

// Pan returns the total translation currently applied, committed plus in
// progress.
func (s *State) Pan() Vec {
	return s.PanOffset.Add(s.PanDelta)
}
