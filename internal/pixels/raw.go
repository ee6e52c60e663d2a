package pixels

import "fmt"

// FromRaw builds a buffer from interleaved raw bytes. With hasAlpha the data
// is RGBA, otherwise RGB and every pixel gets an opaque alpha channel.
func FromRaw(data []byte, w, h int, hasAlpha bool, source string) (*ImageBuffer, error) {
	n, err := ByteSize(w, h)
	if err != nil {
		return nil, &DecodeError{Source: source, Err: err}
	}
	if hasAlpha {
		if len(data) != n {
			return nil, &DecodeError{Source: source, Err: fmt.Errorf("have %d bytes, want %d for %dx%d RGBA", len(data), n, w, h)}
		}
		return NewImageBuffer(append([]byte(nil), data...), w, h, source)
	}

	want := n / Channels * 3
	if len(data) != want {
		return nil, &DecodeError{Source: source, Err: fmt.Errorf("have %d bytes, want %d for %dx%d RGB", len(data), want, w, h)}
	}
	pix := make([]byte, n)
	for i, j := 0, 0; j < len(data); i, j = i+Channels, j+3 {
		pix[i] = data[j]
		pix[i+1] = data[j+1]
		pix[i+2] = data[j+2]
		pix[i+3] = 0xff
	}
	return NewImageBuffer(pix, w, h, source)
}

// FromPlanes builds a buffer from an interleaved RGB plane and a separate
// alpha plane of one byte per pixel.
func FromPlanes(rgb, alpha []byte, w, h int, source string) (*ImageBuffer, error) {
	n, err := ByteSize(w, h)
	if err != nil {
		return nil, &DecodeError{Source: source, Err: err}
	}
	pixelCount := n / Channels
	if len(rgb) != pixelCount*3 || len(alpha) != pixelCount {
		return nil, &DecodeError{
			Source: source,
			Err:    fmt.Errorf("plane sizes %d/%d do not match %dx%d", len(rgb), len(alpha), w, h),
		}
	}
	pix := make([]byte, n)
	for p := 0; p < pixelCount; p++ {
		copy(pix[p*Channels:p*Channels+3], rgb[p*3:p*3+3])
		pix[p*Channels+3] = alpha[p]
	}
	return NewImageBuffer(pix, w, h, source)
}
