package view

import (
	"errors"
	"fmt"
)

var (
	// ErrStaleLoad is returned for a load result that a newer load superseded.
	ErrStaleLoad = errors.New("stale load result")
	// ErrEmptyImage is returned when a zero-size image is offered as the
	// active image.
	ErrEmptyImage = errors.New("empty image")
)

// Token identifies one load request. Tokens increase with every request.
type Token uint64

// DrawCall is everything the renderer needs for one frame.
type DrawCall struct {
	// Image is false when there is nothing to draw.
	Image bool
	// Position is the image origin in the coordinate system scaled by Scale.
	Position Vec
	Scale    float64
	// Loading is true while a load is in flight.
	Loading bool
	// Viewport is the size of the surface being drawn to.
	Viewport Size
}

// Viewer owns the view state of one displayed image and the lifecycle of the
// loads that replace it.
type Viewer struct {
	state    State
	pan      Pan
	hasImage bool

	inspected   Vec
	inspectedOK bool

	latest  Token
	loading bool
	source  string
}

// NewViewer returns a viewer with no image.
func NewViewer() *Viewer {
	return &Viewer{state: NewState()}
}

// State returns a copy of the current state.
func (v *Viewer) State() State { return v.state }

// PanPhase returns the phase of the pan gesture.
func (v *Viewer) PanPhase() PanPhase { return v.pan.Phase() }

// HasImage reports whether an image is being displayed.
func (v *Viewer) HasImage() bool { return v.hasImage }

// Inspected returns the image point found by the last Inspect event. It
// returns false if that event found no image.
func (v *Viewer) Inspected() (Vec, bool) { return v.inspected, v.inspectedOK }

// Loading reports whether a load is in flight.
func (v *Viewer) Loading() bool { return v.loading }

// Source returns the description of the newest load request.
func (v *Viewer) Source() string { return v.source }

// BeginLoad registers a new load and returns its token. Any earlier load
// still in flight becomes stale.
func (v *Viewer) BeginLoad(source string) Token {
	v.latest++
	v.loading = true
	v.source = source
	return v.latest
}

// IsCurrent reports whether t belongs to the newest load.
func (v *Viewer) IsCurrent(t Token) bool { return t == v.latest }

// ImageLoaded makes an image of the given size the active image and fits it
// to the viewport. Results for stale tokens and empty images are rejected
// without touching the state.
func (v *Viewer) ImageLoaded(t Token, size Size) error {
	if !v.IsCurrent(t) {
		return ErrStaleLoad
	}
	if size.Empty() {
		v.loading = false
		return fmt.Errorf("%w: %v", ErrEmptyImage, size)
	}

	vp := v.state.ViewportSize
	v.state = NewState()
	v.state.ViewportSize = vp
	v.state.SetImageSize(size)
	v.state.Fit()
	v.pan = Pan{}
	v.inspected, v.inspectedOK = Vec{}, false
	v.hasImage = true
	v.loading = false
	return nil
}

// LoadFailed ends the load with token t. The displayed image and its view
// state are kept. It returns false if t is stale.
func (v *Viewer) LoadFailed(t Token) bool {
	if !v.IsCurrent(t) {
		return false
	}
	v.loading = false
	return true
}

// Handle applies one input event and reports whether the frame needs to be
// redrawn.
func (v *Viewer) Handle(ev Event) bool {
	switch ev := ev.(type) {
	case Resize:
		return v.resize(Size{W: ev.W, H: ev.H})
	case Wheel:
		return v.wheel(ev.Delta)
	case PointerDown:
		v.pan.Begin(&v.state, Vec{X: ev.X, Y: ev.Y})
		return false
	case PointerMove:
		return v.pan.Update(&v.state, Vec{X: ev.X, Y: ev.Y})
	case PointerUp:
		return v.pan.Commit(&v.state)
	case Inspect:
		v.inspected, v.inspectedOK = v.ToImage(Vec{X: ev.X, Y: ev.Y})
		return false
	case Command:
		return v.command(ev)
	default:
		return false
	}
}

func (v *Viewer) resize(sz Size) bool {
	if sz == v.state.ViewportSize {
		return false
	}
	v.state.ViewportSize = sz
	if v.hasImage && !v.state.Adjusted {
		v.state.Fit()
	}
	return true
}

func (v *Viewer) wheel(delta float64) bool {
	if !v.hasImage {
		return false
	}
	switch {
	case delta > 0:
		return v.state.Zoom(ZoomIn)
	case delta < 0:
		return v.state.Zoom(ZoomOut)
	default:
		return false
	}
}

func (v *Viewer) command(c Command) bool {
	if !v.hasImage {
		return false
	}
	switch c {
	case CommandFit:
		v.pan.Cancel(&v.state)
		return v.state.Fit()
	case CommandActualSize:
		v.pan.Cancel(&v.state)
		v.state.ActualSize()
		return true
	default:
		return false
	}
}

// ToImage maps a viewport point to image coordinates under the current
// transform. It returns false when no image is displayed.
func (v *Viewer) ToImage(p Vec) (Vec, bool) {
	if !v.hasImage {
		return Vec{}, false
	}
	return v.state.ToImage(p), true
}

// Frame computes the draw call for the current state. It is recomputed on
// every call since the viewport may change between frames.
func (v *Viewer) Frame() DrawCall {
	dc := DrawCall{
		Image:    v.hasImage && v.state.Scale > 0,
		Scale:    v.state.Scale,
		Loading:  v.loading,
		Viewport: v.state.ViewportSize,
	}
	if dc.Image {
		dc.Position = v.state.DrawPosition()
	}
	return dc
}
