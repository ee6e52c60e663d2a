package pixels

import "image"

// Premultiply converts a straight-alpha buffer into an *image.RGBA, whose
// pixels are alpha-premultiplied. Each colour channel becomes c*a/255 with
// integer truncation; alpha is copied unchanged.
func Premultiply(buf *ImageBuffer) (*image.RGBA, error) {
	if err := buf.Validate(""); err != nil {
		return nil, err
	}
	dst := image.NewRGBA(image.Rect(0, 0, buf.Width, buf.Height))
	PremultiplyInto(dst.Pix, buf.Pix)
	return dst, nil
}

// PremultiplyInto writes the premultiplied form of the straight RGBA bytes in
// src to dst. Both slices must have the same length, a multiple of Channels.
func PremultiplyInto(dst, src []byte) {
	for i := 0; i+3 < len(src); i += Channels {
		a := uint32(src[i+3])
		dst[i] = uint8(uint32(src[i]) * a / 255)
		dst[i+1] = uint8(uint32(src[i+1]) * a / 255)
		dst[i+2] = uint8(uint32(src[i+2]) * a / 255)
		dst[i+3] = uint8(a)
	}
}
