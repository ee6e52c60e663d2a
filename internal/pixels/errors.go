package pixels

import "fmt"

// DecodeError is returned when a source cannot be turned into an ImageBuffer:
// unreadable path, corrupt data, unsupported format or impossible dimensions.
type DecodeError struct {
	Source string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("decoding image: %v", e.Err)
	}
	return fmt.Sprintf("decoding image %s: %v", e.Source, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// SurfaceAllocationError is returned when no drawable surface can be
// allocated at the requested size.
type SurfaceAllocationError struct {
	Width, Height int
	Err           error
}

func (e *SurfaceAllocationError) Error() string {
	return fmt.Sprintf("allocating %dx%d surface: %v", e.Width, e.Height, e.Err)
}

func (e *SurfaceAllocationError) Unwrap() error { return e.Err }
