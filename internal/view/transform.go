package view

const (
	MinScale = 0.1
	MaxScale = 10.0
	// ZoomStep is the fraction of the current scale added by a zoom-in
	// step and removed by a zoom-out step. The two steps do not cancel:
	// in then out leaves the scale at 1.07*0.93 of where it started.
	ZoomStep   = 0.07
	ZoomFactor = 1 + ZoomStep
)

// ZoomDirection selects a zoom step.
type ZoomDirection int

const (
	ZoomIn ZoomDirection = iota
	ZoomOut
)

func (d ZoomDirection) String() string {
	if d == ZoomIn {
		return "in"
	}
	return "out"
}

// FitScale returns the scale at which an image of size img fits a viewport
// of size vp. A landscape image taller than the viewport is bound by the
// viewport width; everything else is bound by the viewport height. It
// returns false if either size is empty.
func FitScale(img, vp Size) (float64, bool) {
	if img.Empty() || vp.Empty() {
		return 0, false
	}
	aspect := float64(img.W) / float64(img.H)
	if img.H < img.W && img.H > vp.H {
		return (float64(vp.W) / aspect) / float64(img.H), true
	}
	return float64(vp.H) / float64(img.H), true
}

// Fit scales the image to the viewport and re-centres it. The state is left
// alone if the image or viewport is empty.
func (s *State) Fit() bool {
	scale, ok := FitScale(s.ImageSize, s.ViewportSize)
	if !ok {
		return false
	}
	s.Scale = scale
	s.PanOffset = Vec{}
	s.PanDelta = Vec{}
	s.Adjusted = false
	return true
}

// ActualSize shows the image at one image pixel per viewport pixel, centred.
func (s *State) ActualSize() {
	s.Scale = 1
	s.PanOffset = Vec{}
	s.PanDelta = Vec{}
	s.Adjusted = true
}

// DrawPosition returns where the image origin goes in the coordinate system
// the renderer has already scaled by s.Scale. The image is centred in the
// viewport and then moved by the pan converted to image units.
func (s *State) DrawPosition() Vec {
	pan := s.Pan()
	return Vec{
		X: (float64(s.ViewportSize.W)/s.Scale-float64(s.ImageSize.W))/2 + pan.X/s.Scale,
		Y: (float64(s.ViewportSize.H)/s.Scale-float64(s.ImageSize.H))/2 + pan.Y/s.Scale,
	}
}

// Zoom applies one step around the viewport centre: in multiplies the scale
// by ZoomFactor, out subtracts ZoomStep of it. A step that would leave
// [MinScale, MaxScale] is dropped and Zoom returns false.
func (s *State) Zoom(dir ZoomDirection) bool {
	next := s.Scale * ZoomFactor
	if dir == ZoomOut {
		next = s.Scale * (1 - ZoomStep)
	}
	if dir == ZoomIn && next > MaxScale || dir == ZoomOut && next < MinScale {
		return false
	}
	s.Scale = next
	s.Adjusted = true
	return true
}

// ToImage maps a viewport point to image pixel coordinates. The result may
// lie outside the image.
func (s *State) ToImage(p Vec) Vec {
	pos := s.DrawPosition()
	return Vec{X: p.X/s.Scale - pos.X, Y: p.Y/s.Scale - pos.Y}
}

// ToViewport maps an image point to viewport coordinates.
func (s *State) ToViewport(p Vec) Vec {
	pos := s.DrawPosition()
	return Vec{X: (p.X + pos.X) * s.Scale, Y: (p.Y + pos.Y) * s.Scale}
}

// Centered returns the top-left corner that centres an item of size item in
// a viewport of size vp at unit scale.
func Centered(vp, item Size) Vec {
	return Vec{
		X: float64(vp.W-item.W) / 2,
		Y: float64(vp.H-item.H) / 2,
	}
}
