// Package input defines window-system independent input events and a
// dispatcher that routes them to registered handlers.
package input

// EventType identifies the kind of an Event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
)

var eventNames = [...]string{
	EventNone:         "none",
	EventQuit:         "quit",
	EventWindowResize: "resize",
	EventKeyDown:      "key_down",
	EventKeyUp:        "key_up",
	EventMouseMove:    "mouse_move",
	EventMouseDown:    "mouse_down",
	EventMouseUp:      "mouse_up",
	EventMouseWheel:   "mouse_wheel",
}

func (t EventType) String() string {
	if t >= 0 && int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// Key is a physical key. Only the keys the viewer binds are named.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyH
	KeyR
	KeyF12
)

// Mouse buttons, numbered like SDL.
const (
	ButtonLeft   uint8 = 1
	ButtonMiddle uint8 = 2
	ButtonRight  uint8 = 3
)

// Event represents a processed input event.
type Event struct {
	Type EventType
	Key  Key

	// Width and Height are the new drawable size of a resize event.
	Width  int
	Height int

	MouseX int
	MouseY int
	// DeltaX and DeltaY carry relative motion for mouse moves and the
	// scroll amount for wheel events.
	DeltaX float32
	DeltaY float32
	Button uint8
}

// Handler receives a dispatched event.
type Handler func(Event)

// Dispatcher routes events to the handlers registered for their type.
// Handlers run synchronously, in registration order.
type Dispatcher struct {
	handlers map[EventType][]Handler
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[EventType][]Handler)}
}

// On registers a handler for an event type.
func (d *Dispatcher) On(t EventType, h Handler) {
	d.handlers[t] = append(d.handlers[t], h)
}

// Dispatch delivers ev to its handlers and reports whether any ran.
func (d *Dispatcher) Dispatch(ev Event) bool {
	hs := d.handlers[ev.Type]
	for _, h := range hs {
		h(ev)
	}
	return len(hs) > 0
}

// State tracks pointer buttons across events so drags can be recognised.
type State struct {
	MouseX, MouseY int
	buttons        [8]bool
}

// Apply updates the state from an event.
func (s *State) Apply(ev Event) {
	switch ev.Type {
	case EventMouseMove:
		s.MouseX, s.MouseY = ev.MouseX, ev.MouseY
	case EventMouseDown:
		s.MouseX, s.MouseY = ev.MouseX, ev.MouseY
		if int(ev.Button) < len(s.buttons) {
			s.buttons[ev.Button] = true
		}
	case EventMouseUp:
		s.MouseX, s.MouseY = ev.MouseX, ev.MouseY
		if int(ev.Button) < len(s.buttons) {
			s.buttons[ev.Button] = false
		}
	}
}

// Pressed reports whether a mouse button is held.
func (s *State) Pressed(button uint8) bool {
	return int(button) < len(s.buttons) && s.buttons[button]
}
