package viewer

import (
	"github.com/Faultbox/phaseview/internal/engine/input"
	"github.com/Faultbox/phaseview/internal/engine/scene"
	"github.com/Faultbox/phaseview/internal/gui"
)

// Surface is where the viewer draws. The OpenGL renderer implements it; tests
// use a recording fake.
type Surface interface {
	// Resize sets the drawable size in pixels.
	Resize(width, height int)
	Size() (width, height int)

	// Render draws the scene from its camera, then the panel on top.
	Render(sc *scene.Scene, panel *gui.Panel) error
	// Present shows the finished frame.
	Present()

	// HandleOverlayEvent offers a pointer event to the panel overlay and
	// reports whether the overlay captured it.
	HandleOverlayEvent(ev input.Event) bool

	// Screenshot saves the last rendered scene, without the panel, and
	// returns the file path.
	Screenshot() (string, error)
}

// EventSource yields the input events that arrived since the last call.
type EventSource interface {
	Poll() []input.Event
}
