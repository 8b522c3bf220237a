package gui

import (
	"testing"

	"github.com/Faultbox/phaseview/internal/engine/input"
	"github.com/Faultbox/phaseview/internal/engine/ui2d"
)

type countCanvas struct {
	draws int
	texts []string
	// width defaults to 800.
	width int
}

func (c *countCanvas) Begin()                                                { c.draws = 0; c.texts = nil }
func (c *countCanvas) End()                                                  {}
func (c *countCanvas) DrawRect(x, y, w, h float32, col ui2d.Color)           { c.draws++ }
func (c *countCanvas) DrawRectOutline(x, y, w, h, t float32, col ui2d.Color) { c.draws++ }
func (c *countCanvas) DrawText(x, y float32, s string, scale float32, col ui2d.Color) {
	c.draws++
	c.texts = append(c.texts, s)
}
func (c *countCanvas) MeasureText(s string, scale float32) (float32, float32) {
	return float32(len(s)*7) * scale, 13 * scale
}
func (c *countCanvas) GetScreenSize() (int, int) {
	if c.width == 0 {
		return 800, 600
	}
	return c.width, 600
}

// testPanel mirrors the viewer's panel: one slider and two buttons. On an
// 800px wide screen the window spans x in [524, 784) from y=16; the slider
// track is x in [654, 776) on the row at y in [46, 68), and the buttons sit
// at y in [72, 94) and [98, 120).
func testPanel() (*Panel, *float32, *int) {
	value := float32(0.2)
	clicks := 0
	p := NewPanel("Controls")
	p.AddFloat("displacementScale", &value)
	p.AddButton("Reset view", func() { clicks++ })
	p.AddButton("Save", func() {})
	return p, &value, &clicks
}

func drawFrame(ctx *ui2d.Context, p *Panel) {
	ctx.Begin()
	Draw(ctx, p)
	ctx.End()
}

func click(ctx *ui2d.Context, x, y int) {
	ctx.HandleEvent(input.Event{Type: input.EventMouseDown, Button: input.ButtonLeft, MouseX: x, MouseY: y})
	ctx.HandleEvent(input.Event{Type: input.EventMouseUp, Button: input.ButtonLeft, MouseX: x, MouseY: y})
}

func TestDrawShowsValue(t *testing.T) {
	canvas := &countCanvas{}
	ctx := ui2d.NewContext(canvas)
	p, _, _ := testPanel()

	ctx.Begin()
	Draw(ctx, p)
	want := map[string]bool{"Controls": false, "displacementScale": false, "0.200": false, "Reset view": false, "Save": false}
	for _, s := range canvas.texts {
		if _, ok := want[s]; ok {
			want[s] = true
		}
	}
	ctx.End()
	for s, seen := range want {
		if !seen {
			t.Errorf("%q not drawn", s)
		}
	}
}

func TestDrawSliderWritesTarget(t *testing.T) {
	ctx := ui2d.NewContext(&countCanvas{})
	p, value, _ := testPanel()
	var got []float32
	p.Float("displacementScale").OnChange(func(v float32) { got = append(got, v) })

	drawFrame(ctx, p)
	click(ctx, 715, 57)
	drawFrame(ctx, p)

	if *value != 0.5 {
		t.Errorf("value = %v, want 0.5", *value)
	}
	if len(got) != 1 || got[0] != 0.5 {
		t.Errorf("OnChange calls = %v, want [0.5]", got)
	}
}

func TestDrawButtonClicks(t *testing.T) {
	ctx := ui2d.NewContext(&countCanvas{})
	p, value, clicks := testPanel()

	drawFrame(ctx, p)
	click(ctx, 600, 83)
	drawFrame(ctx, p)

	if *clicks != 1 {
		t.Errorf("clicks = %d, want 1", *clicks)
	}
	if *value != 0.2 {
		t.Errorf("button click moved the slider to %v", *value)
	}
}

func TestDrawHidden(t *testing.T) {
	canvas := &countCanvas{}
	ctx := ui2d.NewContext(canvas)
	p, _, _ := testPanel()
	p.Hidden = true

	ctx.Begin()
	Draw(ctx, p)
	if canvas.draws != 0 {
		t.Errorf("hidden panel issued %d draws", canvas.draws)
	}
	ctx.End()

	if ctx.HandleEvent(input.Event{Type: input.EventMouseMove, MouseX: 600, MouseY: 50}) {
		t.Error("hidden panel should not capture the pointer")
	}
}

func TestDrawClosed(t *testing.T) {
	ctx := ui2d.NewContext(&countCanvas{})
	p, value, _ := testPanel()
	p.Closed = true

	drawFrame(ctx, p)
	click(ctx, 715, 57)
	drawFrame(ctx, p)

	if *value != 0.2 {
		t.Errorf("closed panel slider changed value to %v", *value)
	}
	if ctx.HandleEvent(input.Event{Type: input.EventMouseMove, MouseX: 715, MouseY: 57}) {
		t.Error("area below a closed panel's title should not capture")
	}
}

func TestDrawTitleClickCloses(t *testing.T) {
	ctx := ui2d.NewContext(&countCanvas{})
	p, _, _ := testPanel()

	drawFrame(ctx, p)
	click(ctx, 600, 25)
	drawFrame(ctx, p)

	if !p.Closed {
		t.Error("title click should close the panel")
	}

	p.Toggle()
	drawFrame(ctx, p)
	if ctx.Window("gui_Controls").Collapsed {
		t.Error("Toggle should reopen the window")
	}
}

func TestHeight(t *testing.T) {
	p, _, _ := testPanel()
	// 3 rows: last row ends 26*3+26 below the top, plus padding.
	if got := Height(p); got != 26*3+34 {
		t.Errorf("Height = %v, want %v", got, 26*3+34)
	}
}

func TestDrawStaysPinnedRight(t *testing.T) {
	canvas := &countCanvas{width: 1600}
	ctx := ui2d.NewContext(canvas)
	p, _, _ := testPanel()

	drawFrame(ctx, p)
	if ws := ctx.Window("gui_Controls"); ws.X != 1324 {
		t.Fatalf("panel x = %v on a 1600px screen, want 1324", ws.X)
	}

	canvas.width = 800
	drawFrame(ctx, p)
	if ws := ctx.Window("gui_Controls"); ws.X != 524 {
		t.Errorf("panel x = %v after shrinking to 800px, want 524", ws.X)
	}
}
