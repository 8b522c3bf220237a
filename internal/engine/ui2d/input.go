package ui2d

import "github.com/Faultbox/phaseview/internal/engine/input"

// InputState holds the current input state for the UI.
type InputState struct {
	// Mouse state
	MouseX      float32
	MouseY      float32
	MouseDeltaX float32
	MouseDeltaY float32

	// Mouse buttons (current frame)
	MouseLeftDown bool

	// Mouse buttons (pressed this frame)
	MouseLeftPressed bool
	// MouseLeftClicked latches a press until a widget consumes it, so a
	// press and release within one frame is not lost.
	MouseLeftClicked bool

	// Mouse buttons (released this frame)
	MouseLeftReleased bool

	// Scroll
	ScrollY float32

	// Previous frame state for edge detection
	prevMouseLeft bool
	prevMouseX    float32
	prevMouseY    float32
}

// Apply folds an input event into the state.
func (i *InputState) Apply(ev input.Event) {
	switch ev.Type {
	case input.EventMouseMove:
		i.MouseX, i.MouseY = float32(ev.MouseX), float32(ev.MouseY)
	case input.EventMouseDown:
		i.MouseX, i.MouseY = float32(ev.MouseX), float32(ev.MouseY)
		if ev.Button == input.ButtonLeft {
			i.MouseLeftDown = true
			i.MouseLeftClicked = true
		}
	case input.EventMouseUp:
		i.MouseX, i.MouseY = float32(ev.MouseX), float32(ev.MouseY)
		if ev.Button == input.ButtonLeft {
			i.MouseLeftDown = false
		}
	case input.EventMouseWheel:
		i.ScrollY += ev.DeltaY
	}
}

// Update prepares input state for a new frame.
// Call this at the start of each frame after updating raw input values.
func (i *InputState) Update() {
	// Calculate deltas
	i.MouseDeltaX = i.MouseX - i.prevMouseX
	i.MouseDeltaY = i.MouseY - i.prevMouseY

	// Detect press/release edges
	i.MouseLeftPressed = (i.MouseLeftDown && !i.prevMouseLeft) || i.MouseLeftClicked
	i.MouseLeftReleased = !i.MouseLeftDown && (i.prevMouseLeft || i.MouseLeftClicked)

	// Store current state for next frame
	i.prevMouseLeft = i.MouseLeftDown
	i.prevMouseX = i.MouseX
	i.prevMouseY = i.MouseY
}

// EndFrame clears per-frame input state.
// Call this at the end of each frame.
func (i *InputState) EndFrame() {
	i.ScrollY = 0
	i.MouseLeftClicked = false
}

// IsMouseInRect checks if the mouse is within a rectangle.
func (i *InputState) IsMouseInRect(x, y, w, h float32) bool {
	return i.MouseX >= x && i.MouseX < x+w &&
		i.MouseY >= y && i.MouseY < y+h
}
