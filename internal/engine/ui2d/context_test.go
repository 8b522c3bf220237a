package ui2d

import (
	"testing"

	"github.com/Faultbox/phaseview/internal/engine/input"
)

// recordCanvas counts draw calls and measures text with a fixed 7x13 cell.
type recordCanvas struct {
	rects  int
	texts  []string
	frames int

	// width and height default to 800x600.
	width, height int
}

func (r *recordCanvas) Begin() {
	r.rects = 0
	r.texts = r.texts[:0]
}
func (r *recordCanvas) End()                                           { r.frames++ }
func (r *recordCanvas) DrawRect(x, y, w, h float32, c Color)           { r.rects++ }
func (r *recordCanvas) DrawRectOutline(x, y, w, h, t float32, c Color) { r.rects++ }
func (r *recordCanvas) DrawText(x, y float32, s string, scale float32, c Color) {
	r.texts = append(r.texts, s)
}
func (r *recordCanvas) MeasureText(s string, scale float32) (float32, float32) {
	return float32(len(s)*7) * scale, 13 * scale
}
func (r *recordCanvas) GetScreenSize() (int, int) {
	if r.width == 0 {
		return 800, 600
	}
	return r.width, r.height
}

// frame runs one UI frame with a single 200x100 window at (10, 10).
func frame(c *Context, body func()) bool {
	c.Begin()
	open := c.BeginWindow("panel", 10, 10, 200, 100, "Controls")
	if open && body != nil {
		body()
	}
	c.EndWindow()
	c.End()
	return open
}

func press(c *Context, x, y int) {
	c.HandleEvent(input.Event{Type: input.EventMouseDown, Button: input.ButtonLeft, MouseX: x, MouseY: y})
}

func release(c *Context, x, y int) {
	c.HandleEvent(input.Event{Type: input.EventMouseUp, Button: input.ButtonLeft, MouseX: x, MouseY: y})
}

func move(c *Context, x, y int) bool {
	return c.HandleEvent(input.Event{Type: input.EventMouseMove, MouseX: x, MouseY: y})
}

func TestWantsMouseOverWindow(t *testing.T) {
	c := NewContext(&recordCanvas{})
	frame(c, nil)

	if !move(c, 50, 50) {
		t.Error("pointer over the window should be captured")
	}
	if move(c, 500, 500) {
		t.Error("pointer outside the window should not be captured")
	}
}

func TestWantsMouseBeforeFirstFrame(t *testing.T) {
	c := NewContext(&recordCanvas{})
	if move(c, 50, 50) {
		t.Error("nothing drawn yet, nothing to capture")
	}
}

func TestButtonClick(t *testing.T) {
	c := NewContext(&recordCanvas{})
	var clicked bool
	body := func() {
		c.Row(22)
		if c.Button("reset", 0, "Reset view") {
			clicked = true
		}
	}
	frame(c, body)

	// Button row starts below the title bar.
	press(c, 50, 45)
	release(c, 50, 45)
	frame(c, body)

	if !clicked {
		t.Error("press and release within one frame should click the button")
	}

	clicked = false
	frame(c, body)
	if clicked {
		t.Error("click must fire only once")
	}
}

func TestSliderDrag(t *testing.T) {
	c := NewContext(&recordCanvas{})
	value := float32(0.2)
	changes := 0
	body := func() {
		c.Row(22)
		if v, ok := c.Slider("scale", 0, value, "x"); ok {
			value = v
			changes++
		}
	}
	frame(c, body)

	// Track spans x in [18, 202).
	press(c, 110, 45)
	frame(c, body)
	if changes != 1 || value < 0.49 || value > 0.51 {
		t.Fatalf("after press value=%v changes=%d, want ~0.5 once", value, changes)
	}

	// Dragging past the end clamps, and stays captured outside the window.
	if !move(c, 700, 300) {
		t.Error("active slider should keep the pointer")
	}
	frame(c, body)
	if value != 1 {
		t.Errorf("value = %v, want 1 when dragged past the end", value)
	}

	release(c, 700, 300)
	frame(c, body)
	move(c, 20, 45)
	frame(c, body)
	if value != 1 {
		t.Errorf("value changed after release: %v", value)
	}
}

func TestTitleClickCollapses(t *testing.T) {
	c := NewContext(&recordCanvas{})
	frame(c, nil)

	press(c, 100, 15)
	release(c, 100, 15)
	if frame(c, nil) {
		t.Error("window should report collapsed after a title click")
	}
	if !c.Window("panel").Collapsed {
		t.Fatal("window state not collapsed")
	}
	// Collapsed windows only capture the title bar.
	if move(c, 100, 80) {
		t.Error("body area of a collapsed window should not capture")
	}

	press(c, 100, 15)
	release(c, 100, 15)
	frame(c, nil)
	if !frame(c, nil) {
		t.Error("second title click should expand the window")
	}
}

func TestTitleDragMoves(t *testing.T) {
	c := NewContext(&recordCanvas{})
	frame(c, nil)

	press(c, 100, 15)
	frame(c, nil)
	move(c, 130, 55)
	frame(c, nil)
	release(c, 130, 55)
	frame(c, nil)

	ws := c.Window("panel")
	if ws.X != 40 || ws.Y != 50 {
		t.Errorf("window at (%v, %v), want (40, 50)", ws.X, ws.Y)
	}
	if ws.Collapsed {
		t.Error("a drag should not collapse the window")
	}
}

func TestWindowFollowsCallerUntilDragged(t *testing.T) {
	c := NewContext(&recordCanvas{})
	place := func(x, y float32) *WindowState {
		c.Begin()
		c.BeginWindow("panel", x, y, 200, 100, "Controls")
		c.EndWindow()
		c.End()
		return c.Window("panel")
	}

	place(10, 10)
	if ws := place(300, 20); ws.X != 300 || ws.Y != 20 {
		t.Errorf("undragged window at (%v, %v), want (300, 20)", ws.X, ws.Y)
	}

	press(c, 400, 25)
	place(300, 20)
	move(c, 350, 45)
	place(300, 20)
	release(c, 350, 45)
	if ws := place(500, 20); ws.X != 350 || ws.Y != 40 {
		t.Errorf("dragged window at (%v, %v), want to stay at (350, 40)", ws.X, ws.Y)
	}
}

func TestDraggedWindowStaysOnScreen(t *testing.T) {
	canvas := &recordCanvas{width: 1600, height: 900}
	c := NewContext(canvas)
	place := func() *WindowState {
		c.Begin()
		c.BeginWindow("panel", 1300, 10, 200, 100, "Controls")
		c.EndWindow()
		c.End()
		return c.Window("panel")
	}

	place()
	press(c, 1400, 15)
	place()
	move(c, 1450, 715)
	place()
	release(c, 1450, 715)
	place()
	if ws := c.Window("panel"); ws.X != 1350 || ws.Y != 710 {
		t.Fatalf("window at (%v, %v) after drag, want (1350, 710)", ws.X, ws.Y)
	}

	canvas.width, canvas.height = 800, 600
	ws := place()
	if ws.X != 600 || ws.Y != 600-TitleBarHeight {
		t.Errorf("window at (%v, %v) after shrink, want (600, %v)", ws.X, ws.Y, 600-TitleBarHeight)
	}
}

func TestLabelDrawsText(t *testing.T) {
	canvas := &recordCanvas{}
	c := NewContext(canvas)
	c.Begin()
	c.BeginWindow("panel", 0, 0, 200, 100, "Controls")
	c.Row(22)
	c.Label("displacementScale")
	c.EndWindow()

	found := false
	for _, s := range canvas.texts {
		if s == "displacementScale" {
			found = true
		}
	}
	if !found {
		t.Errorf("label not drawn, texts = %v", canvas.texts)
	}
	c.End()
}

func TestWidgetsOutsideWindowAreNoops(t *testing.T) {
	canvas := &recordCanvas{}
	c := NewContext(canvas)
	c.Begin()
	if c.Button("b", 10, "x") {
		t.Error("button outside a window clicked")
	}
	if _, changed := c.Slider("s", 10, 0.5, "x"); changed {
		t.Error("slider outside a window changed")
	}
	c.Label("x")
	c.End()
	if canvas.rects != 0 || len(canvas.texts) != 0 {
		t.Error("widgets outside a window should not draw")
	}
}
