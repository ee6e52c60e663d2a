package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/nicky-ayoub/ebitview/internal/view"
)

// InputState holds the polled state of inputs for a single frame.
// This separates input polling from input handling logic.
type InputState struct {
	Quit                bool
	ToggleFullscreen    bool
	ToggleHUD           bool
	ResetViewFit        bool
	ResetViewActualSize bool

	// Mouse state
	WheelY          float64
	LeftClickStart  bool // Left mouse button just pressed
	LeftClickEnd    bool // Left mouse button just released
	RightClickStart bool // Right mouse button just pressed
	PanActive       bool // Left mouse button is being held down
	MouseX, MouseY  int
}

// PollInput gathers all raw input for the current frame.
func PollInput() InputState {
	_, wheelY := ebiten.Wheel()
	mx, my := ebiten.CursorPosition()
	return InputState{
		Quit:                inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		ToggleFullscreen:    inpututil.IsKeyJustPressed(ebiten.KeyF11),
		ToggleHUD:           inpututil.IsKeyJustPressed(ebiten.KeyI),
		ResetViewFit:        inpututil.IsKeyJustPressed(ebiten.KeyF),
		ResetViewActualSize: inpututil.IsKeyJustPressed(ebiten.KeyO),

		WheelY:          wheelY,
		LeftClickStart:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		LeftClickEnd:    inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
		RightClickStart: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight),
		PanActive:       ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		MouseX:          mx,
		MouseY:          my,
	}
}

// Events converts the frame's input into view events, in the order the
// viewer must see them: wheel, press, move, release, inspect, then
// commands.
func (in InputState) Events() []view.Event {
	var events []view.Event
	x, y := float64(in.MouseX), float64(in.MouseY)

	if in.WheelY != 0 {
		events = append(events, view.Wheel{Delta: in.WheelY})
	}
	if in.LeftClickStart {
		events = append(events, view.PointerDown{X: x, Y: y})
	}
	if in.PanActive || in.LeftClickEnd {
		events = append(events, view.PointerMove{X: x, Y: y})
	}
	if in.LeftClickEnd {
		events = append(events, view.PointerUp{})
	}
	if in.RightClickStart {
		events = append(events, view.Inspect{X: x, Y: y})
	}
	if in.ResetViewFit {
		events = append(events, view.CommandFit)
	}
	if in.ResetViewActualSize {
		events = append(events, view.CommandActualSize)
	}
	return events
}
