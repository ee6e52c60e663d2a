package ui

import (
	"errors"
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/nicky-ayoub/ebitview/internal/pixels"
	"github.com/nicky-ayoub/ebitview/internal/view"
)

// checkSurfaceSize reports whether a w x h surface may be allocated.
func checkSurfaceSize(w, h, maxSize int) error {
	if w <= 0 || h <= 0 {
		return &pixels.SurfaceAllocationError{Width: w, Height: h, Err: errors.New("empty surface")}
	}
	if w > maxSize || h > maxSize {
		return &pixels.SurfaceAllocationError{Width: w, Height: h, Err: fmt.Errorf("exceeds maximum edge of %d", maxSize)}
	}
	return nil
}

// allocateSurface uploads premultiplied pixels into a new ebiten image.
// Must be called from the game loop.
func allocateSurface(rgba *image.RGBA, maxSize int) (surface *ebiten.Image, err error) {
	w, h := rgba.Bounds().Dx(), rgba.Bounds().Dy()
	if err := checkSurfaceSize(w, h, maxSize); err != nil {
		return nil, err
	}
	// ebiten panics when the graphics driver cannot create the texture.
	defer func() {
		if r := recover(); r != nil {
			surface = nil
			err = &pixels.SurfaceAllocationError{Width: w, Height: h, Err: fmt.Errorf("%v", r)}
		}
	}()
	return ebiten.NewImageFromImage(rgba), nil
}

// imageGeoM returns the transform of one frame: translate to the draw
// position in scaled space, then apply the scale.
func imageGeoM(dc view.DrawCall) ebiten.GeoM {
	var m ebiten.GeoM
	m.Translate(dc.Position.X, dc.Position.Y)
	m.Scale(dc.Scale, dc.Scale)
	return m
}

// placeholderGeoM centres the placeholder in the viewport at unit scale.
func placeholderGeoM(dc view.DrawCall, placeholder view.Size) ebiten.GeoM {
	var m ebiten.GeoM
	pos := view.Centered(dc.Viewport, placeholder)
	m.Translate(pos.X, pos.Y)
	return m
}

func sizeOf(img *ebiten.Image) view.Size {
	b := img.Bounds()
	return view.Size{W: b.Dx(), H: b.Dy()}
}

// render issues the single draw call of a frame. It never changes view
// state.
func render(screen, surface, placeholder *ebiten.Image, dc view.DrawCall) {
	if dc.Loading && placeholder != nil {
		op := &ebiten.DrawImageOptions{GeoM: placeholderGeoM(dc, sizeOf(placeholder))}
		screen.DrawImage(placeholder, op)
		return
	}
	if surface == nil || !dc.Image {
		return
	}
	op := &ebiten.DrawImageOptions{GeoM: imageGeoM(dc)}
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(surface, op)
}
