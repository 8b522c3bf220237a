package window

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/phaseview/internal/engine/input"
)

var keymap = map[sdl.Scancode]input.Key{
	sdl.SCANCODE_ESCAPE: input.KeyEscape,
	sdl.SCANCODE_H:      input.KeyH,
	sdl.SCANCODE_R:      input.KeyR,
	sdl.SCANCODE_F12:    input.KeyF12,
}

// Poll drains the SDL event queue and converts it to input events. Pointer
// coordinates are scaled to drawable pixels and resize events carry the new
// drawable size.
func (w *Window) Poll() []input.Event {
	var events []input.Event

	ww, _ := w.GetSize()
	dw, _ := w.DrawableSize()
	scale := float32(1)
	if ww > 0 && dw > 0 {
		scale = float32(dw) / float32(ww)
	}
	px := func(v int32) int { return int(float32(v) * scale) }

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			events = append(events, input.Event{Type: input.EventQuit})

		case *sdl.WindowEvent:
			switch e.Event {
			case sdl.WINDOWEVENT_SIZE_CHANGED:
				width, height := w.DrawableSize()
				events = append(events, input.Event{
					Type:   input.EventWindowResize,
					Width:  width,
					Height: height,
				})
			case sdl.WINDOWEVENT_CLOSE:
				events = append(events, input.Event{Type: input.EventQuit})
			}

		case *sdl.KeyboardEvent:
			if e.Repeat != 0 {
				continue
			}
			key, ok := keymap[e.Keysym.Scancode]
			if !ok {
				continue
			}
			t := input.EventKeyDown
			if e.Type == sdl.KEYUP {
				t = input.EventKeyUp
			}
			events = append(events, input.Event{Type: t, Key: key})

		case *sdl.MouseMotionEvent:
			events = append(events, input.Event{
				Type:   input.EventMouseMove,
				MouseX: px(e.X),
				MouseY: px(e.Y),
				DeltaX: float32(e.XRel),
				DeltaY: float32(e.YRel),
			})

		case *sdl.MouseButtonEvent:
			t := input.EventMouseDown
			if e.Type == sdl.MOUSEBUTTONUP {
				t = input.EventMouseUp
			}
			events = append(events, input.Event{
				Type:   t,
				MouseX: px(e.X),
				MouseY: px(e.Y),
				Button: e.Button,
			})

		case *sdl.MouseWheelEvent:
			dy := float32(e.Y)
			if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
				dy = -dy
			}
			mx, my, _ := sdl.GetMouseState()
			events = append(events, input.Event{
				Type:   input.EventMouseWheel,
				MouseX: px(mx),
				MouseY: px(my),
				DeltaX: float32(e.X),
				DeltaY: dy,
			})
		}
	}

	return events
}
