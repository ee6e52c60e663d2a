package view

import "fmt"

// Event is an input event handled by Viewer.Handle.
type Event interface {
	event()
}

// Wheel is a mouse wheel movement; positive values zoom in.
type Wheel struct {
	Delta float64
}

// PointerDown is a press of the pan button at X, Y.
type PointerDown struct {
	X, Y float64
}

// PointerMove is a cursor movement to X, Y.
type PointerMove struct {
	X, Y float64
}

// PointerUp is a release of the pan button.
type PointerUp struct{}

// Inspect asks for the image pixel under the viewport point X, Y.
type Inspect struct {
	X, Y float64
}

// Resize reports the new viewport size.
type Resize struct {
	W, H int
}

// Command is a keyboard command.
type Command int

const (
	CommandFit Command = iota
	CommandActualSize
)

func (Wheel) event() {}
func (PointerDown) event() {}
func (PointerMove) event() {}
func (PointerUp) event() {}
func (Inspect) event() {}
func (Resize) event() {}
func (Command) event() {}

func (c Command) String() string {
	switch c {
	case CommandFit:
		return "fit"
	case CommandActualSize:
		return "actual-size"
	default:
		return fmt.Sprintf("Command(%d)", int(c))
	}
}
