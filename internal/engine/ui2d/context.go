package ui2d

import "github.com/Faultbox/phaseview/internal/engine/input"

// Layout metrics.
const (
	TitleBarHeight = float32(22)
	Padding        = float32(8)
	RowHeight      = float32(22)
	TextScale      = float32(1)
)

// Context is the main UI context that manages layout and input.
type Context struct {
	canvas Canvas
	input  *InputState

	// Active/hot widget tracking for interaction
	hotWidget    string
	activeWidget string

	// Window state
	windows map[string]*WindowState

	// Current window being drawn
	currentWindow *WindowState

	// Window rectangles of the frame in progress and the last finished one.
	// Hit tests between frames use the finished frame.
	frameRects []Rect
	lastRects  []Rect

	// Layout state
	cursorX float32
	cursorY float32
	rowH    float32
}

// WindowState holds state for a UI window.
type WindowState struct {
	ID        string
	X, Y      float32
	W, H      float32
	Collapsed bool
	Moving    bool

	// moved is set once the user has dragged the window; until then it
	// follows the caller's position.
	moved   bool
	dragged bool
}

// NewContext creates a UI context drawing to canvas.
func NewContext(canvas Canvas) *Context {
	return &Context{
		canvas:  canvas,
		input:   &InputState{},
		windows: make(map[string]*WindowState),
	}
}

// Canvas returns the underlying canvas.
func (c *Context) Canvas() Canvas {
	return c.canvas
}

// Input returns the input state for modification.
func (c *Context) Input() *InputState {
	return c.input
}

// HandleEvent feeds a pointer event to the UI and reports whether the UI
// claims it: the pointer is over a window or a widget is being dragged.
func (c *Context) HandleEvent(ev input.Event) bool {
	c.input.Apply(ev)
	switch ev.Type {
	case input.EventMouseMove, input.EventMouseDown, input.EventMouseUp, input.EventMouseWheel:
	default:
		return false
	}
	return c.WantsMouse()
}

// WantsMouse reports whether the pointer is over the UI or a widget is
// active.
func (c *Context) WantsMouse() bool {
	return c.activeWidget != "" || c.overWindow()
}

func (c *Context) overWindow() bool {
	for _, r := range c.lastRects {
		if r.Contains(c.input.MouseX, c.input.MouseY) {
			return true
		}
	}
	return false
}

// Begin starts a new UI frame.
func (c *Context) Begin() {
	c.input.Update()
	c.hotWidget = ""
	c.frameRects = c.frameRects[:0]
	c.canvas.Begin()
}

// End finishes the UI frame.
func (c *Context) End() {
	c.canvas.End()
	c.lastRects = append(c.lastRects[:0], c.frameRects...)
	if c.input.MouseLeftReleased || !c.input.MouseLeftDown {
		c.activeWidget = ""
	}
	c.input.EndFrame()
}

// BeginWindow starts a new window. The window sits at the given position
// until the user drags it by its title bar; a dragged window is kept on
// screen when the screen shrinks. A click on the title bar collapses or
// expands it. Returns false while the window is collapsed.
func (c *Context) BeginWindow(id string, x, y, w, h float32, title string) bool {
	ws := c.window(id)
	if !ws.moved {
		ws.X, ws.Y = x, y
	}
	ws.W, ws.H = w, h

	titleBar := Rect{ws.X, ws.Y, ws.W, TitleBarHeight}
	titleID := id + "_titlebar"

	if c.input.MouseLeftPressed && titleBar.Contains(c.input.MouseX, c.input.MouseY) {
		ws.Moving = true
		ws.dragged = false
		c.activeWidget = titleID
		c.input.MouseLeftClicked = false
	}

	if ws.Moving && c.input.MouseLeftDown && !c.input.MouseLeftPressed {
		if c.input.MouseDeltaX != 0 || c.input.MouseDeltaY != 0 {
			ws.dragged = true
			ws.moved = true
		}
		ws.X += c.input.MouseDeltaX
		ws.Y += c.input.MouseDeltaY
	}
	if ws.moved {
		c.keepOnScreen(ws)
	}

	if ws.Moving && c.input.MouseLeftReleased {
		ws.Moving = false
		if !ws.dragged {
			ws.Collapsed = !ws.Collapsed
		}
		if c.activeWidget == titleID {
			c.activeWidget = ""
		}
	}

	height := ws.H
	if ws.Collapsed {
		height = TitleBarHeight
	}
	c.frameRects = append(c.frameRects, Rect{ws.X, ws.Y, ws.W, height})

	DrawPanel(c.canvas, ws.X, ws.Y, ws.W, height, ColorPanelBg, ColorPanelBorder)
	c.canvas.DrawRect(ws.X+1, ws.Y+1, ws.W-2, TitleBarHeight-1, ColorButtonNormal)

	_, textH := c.canvas.MeasureText(title, TextScale)
	c.canvas.DrawText(ws.X+Padding, ws.Y+(TitleBarHeight-textH)/2, title, TextScale, ColorText)

	if ws.Collapsed {
		return false
	}

	c.currentWindow = ws

	// Set cursor for content (below title bar, with padding)
	c.cursorX = ws.X + Padding
	c.cursorY = ws.Y + TitleBarHeight + Padding - 4
	c.rowH = 0

	return true
}

// keepOnScreen pulls a window back so its title bar stays reachable.
func (c *Context) keepOnScreen(ws *WindowState) {
	sw, sh := c.GetScreenSize()
	ws.X = max(min(ws.X, sw-ws.W), 0)
	ws.Y = max(min(ws.Y, sh-TitleBarHeight), 0)
}

// EndWindow ends the current window.
func (c *Context) EndWindow() {
	c.currentWindow = nil
}

// Window returns the state of a window, or nil if it was never shown.
func (c *Context) Window(id string) *WindowState {
	return c.windows[id]
}

// SetCollapsed collapses or expands a window ahead of its next BeginWindow.
func (c *Context) SetCollapsed(id string, collapsed bool) {
	c.window(id).Collapsed = collapsed
}

func (c *Context) window(id string) *WindowState {
	ws, ok := c.windows[id]
	if !ok {
		ws = &WindowState{ID: id}
		c.windows[id] = ws
	}
	return ws
}

// Row starts a new row with the given height.
func (c *Context) Row(height float32) {
	if c.currentWindow == nil {
		return
	}
	c.cursorX = c.currentWindow.X + Padding
	c.cursorY += c.rowH + 4
	c.rowH = height
}

// Column moves the cursor to x pixels from the start of the row.
func (c *Context) Column(x float32) {
	if c.currentWindow == nil {
		return
	}
	c.cursorX = c.currentWindow.X + Padding + x
}

// ContentWidth returns the usable width of the current row.
func (c *Context) ContentWidth() float32 {
	if c.currentWindow == nil {
		return 0
	}
	return c.currentWindow.X + c.currentWindow.W - Padding - c.cursorX
}

// Button draws a button and returns true if clicked.
func (c *Context) Button(id string, width float32, label string) bool {
	if c.currentWindow == nil {
		return false
	}

	x := c.cursorX
	y := c.cursorY
	h := c.rowH
	if h == 0 {
		h = RowHeight
	}
	if width == 0 {
		width = c.ContentWidth()
	}

	fullID := c.currentWindow.ID + "_" + id
	rect := Rect{x, y, width, h}

	hovered := rect.Contains(c.input.MouseX, c.input.MouseY)
	clicked := false

	if hovered {
		c.hotWidget = fullID
		// Click on press for responsiveness
		if c.input.MouseLeftPressed && c.activeWidget == "" {
			c.activeWidget = fullID
			clicked = true
			// Consume the click event so only one button gets it
			c.input.MouseLeftClicked = false
		}
	}

	color := ColorButtonNormal
	if c.activeWidget == fullID {
		color = ColorButtonActive
	} else if hovered {
		color = ColorButtonHover
	}

	c.canvas.DrawRect(x, y, width, h, color)
	c.canvas.DrawRectOutline(x, y, width, h, 1, ColorPanelBorder)

	// Draw button label centered
	textW, textH := c.canvas.MeasureText(label, TextScale)
	c.canvas.DrawText(x+(width-textW)/2, y+(h-textH)/2, label, TextScale, ColorText)

	c.cursorX += width + 4

	return clicked
}

// Label draws a text label.
func (c *Context) Label(text string) {
	c.LabelColored(text, ColorText)
}

// LabelColored draws a text label with a specific color.
func (c *Context) LabelColored(text string, color Color) {
	if c.currentWindow == nil {
		return
	}

	h := c.rowH
	if h == 0 {
		h = RowHeight
	}
	w, textH := c.canvas.MeasureText(text, TextScale)
	c.canvas.DrawText(c.cursorX, c.cursorY+(h-textH)/2, text, TextScale, color)

	c.cursorX += w + 4
}

// Slider draws a horizontal slider for a value at position fraction (0..1)
// and shows text on top of it. Dragging anywhere on the track sets the
// position under the pointer. Returns the new position and whether it
// changed this frame.
func (c *Context) Slider(id string, width float32, fraction float32, text string) (float32, bool) {
	if c.currentWindow == nil {
		return fraction, false
	}

	x := c.cursorX
	y := c.cursorY
	h := c.rowH
	if h == 0 {
		h = RowHeight
	}
	if width == 0 {
		width = c.ContentWidth()
	}

	fullID := c.currentWindow.ID + "_" + id
	rect := Rect{x, y, width, h}
	hovered := rect.Contains(c.input.MouseX, c.input.MouseY)

	if hovered {
		c.hotWidget = fullID
		if c.input.MouseLeftPressed && c.activeWidget == "" {
			c.activeWidget = fullID
			c.input.MouseLeftClicked = false
		}
	}

	changed := false
	if c.activeWidget == fullID && width > 0 {
		next := clamp01((c.input.MouseX - x) / width)
		if next != fraction {
			fraction = next
			changed = true
		}
	}

	bg := ColorInputBg
	if hovered || c.activeWidget == fullID {
		bg = ColorButtonHover
	}
	c.canvas.DrawRect(x, y, width, h, bg)
	if fill := (width - 2) * clamp01(fraction); fill > 0 {
		c.canvas.DrawRect(x+1, y+1, fill, h-2, ColorHighlight)
	}
	c.canvas.DrawRectOutline(x, y, width, h, 1, ColorInputBorder)

	textW, textH := c.canvas.MeasureText(text, TextScale)
	c.canvas.DrawText(x+width-textW-6, y+(h-textH)/2, text, TextScale, ColorText)

	c.cursorX += width + 4
	return fraction, changed
}

// Separator draws a horizontal line across the window.
func (c *Context) Separator() {
	if c.currentWindow == nil {
		return
	}
	c.cursorY += c.rowH + 4
	c.rowH = 0
	c.canvas.DrawRect(c.currentWindow.X+Padding, c.cursorY, c.currentWindow.W-Padding*2, 1, ColorPanelBorder)
}

// Bottom returns the y coordinate below the last row.
func (c *Context) Bottom() float32 {
	return c.cursorY + c.rowH + Padding
}

// GetScreenSize returns the current screen dimensions.
func (c *Context) GetScreenSize() (float32, float32) {
	w, h := c.canvas.GetScreenSize()
	return float32(w), float32(h)
}

// Rect is a simple rectangle struct.
type Rect struct {
	X, Y, W, H float32
}

// Contains checks if a point is inside the rectangle.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
