// Package pixels holds decoded pixel data and the conversions applied to it
// before it is handed to a drawable surface.
package pixels

import (
	"errors"
	"fmt"
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
)

// Channels is the number of bytes per pixel in an ImageBuffer.
const Channels = 4

// ImageBuffer is a decoded RGBA image with straight (non-premultiplied)
// alpha. Pixels are stored row-major, top to bottom, with no row padding.
// A buffer is never modified after it has been created.
type ImageBuffer struct {
	Width  int
	Height int
	Pix    []byte
}

// ByteSize returns w*h*Channels, or an error if the product does not fit in
// an int or either dimension is negative.
func ByteSize(w, h int) (int, error) {
	if w < 0 || h < 0 {
		return 0, fmt.Errorf("negative dimensions %dx%d", w, h)
	}
	if w == 0 || h == 0 {
		return 0, nil
	}
	if w > math.MaxInt/Channels/h {
		return 0, fmt.Errorf("dimensions %dx%d overflow addressable size", w, h)
	}
	return w * h * Channels, nil
}

// NewImageBuffer wraps pix as a w x h buffer. The slice is used directly and
// must not be changed by the caller afterwards.
func NewImageBuffer(pix []byte, w, h int, source string) (*ImageBuffer, error) {
	n, err := ByteSize(w, h)
	if err != nil {
		return nil, &DecodeError{Source: source, Err: err}
	}
	if len(pix) != n {
		return nil, &DecodeError{
			Source: source,
			Err:    fmt.Errorf("have %d bytes, want %d for %dx%d RGBA", len(pix), n, w, h),
		}
	}
	buf := &ImageBuffer{Width: w, Height: h, Pix: pix}
	if err := buf.Validate(source); err != nil {
		return nil, err
	}
	return buf, nil
}

// FromImage converts any decoded image into a straight-alpha RGBA buffer.
func FromImage(img image.Image, source string) (*ImageBuffer, error) {
	if img == nil {
		return nil, &DecodeError{Source: source, Err: errors.New("no image")}
	}
	b := img.Bounds()
	if _, err := ByteSize(b.Dx(), b.Dy()); err != nil {
		return nil, &DecodeError{Source: source, Err: err}
	}

	var nrgba *image.NRGBA
	// A sub-image at the origin shares its parent's longer Pix and takes
	// the slow path.
	if src, ok := img.(*image.NRGBA); ok && src.Stride == b.Dx()*Channels && src.Rect.Min == (image.Point{}) &&
		len(src.Pix) == b.Dx()*b.Dy()*Channels {
		nrgba = &image.NRGBA{
			Pix:    append([]byte(nil), src.Pix...),
			Stride: src.Stride,
			Rect:   src.Rect,
		}
	} else {
		nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		xdraw.Draw(nrgba, nrgba.Bounds(), img, b.Min, xdraw.Src)
	}
	return NewImageBuffer(nrgba.Pix, b.Dx(), b.Dy(), source)
}

// Validate reports whether the buffer may become the active image.
func (b *ImageBuffer) Validate(source string) error {
	if b == nil {
		return &DecodeError{Source: source, Err: errors.New("nil buffer")}
	}
	if b.Width <= 0 || b.Height <= 0 {
		return &DecodeError{Source: source, Err: fmt.Errorf("empty image %dx%d", b.Width, b.Height)}
	}
	return nil
}

// Size returns the buffer dimensions as a point.
func (b *ImageBuffer) Size() image.Point {
	return image.Pt(b.Width, b.Height)
}

// At returns the straight RGBA bytes of the pixel at (x, y).
func (b *ImageBuffer) At(x, y int) (r, g, bl, a uint8) {
	i := (y*b.Width + x) * Channels
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3]
}
