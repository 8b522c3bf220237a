package gui

import (
	"fmt"

	"github.com/Faultbox/phaseview/internal/engine/ui2d"
)

// Panel placement, in pixels from the top-right corner.
const (
	marginRight = 16
	marginTop   = 16
	labelRatio  = 0.5
)

// Draw lays the panel out in the top-right corner and applies widget
// interaction to the bound controllers. Hidden panels draw nothing; closed
// panels draw only their title bar.
func Draw(ctx *ui2d.Context, p *Panel) {
	if p.Hidden {
		return
	}

	id := "gui_" + p.Title
	ctx.SetCollapsed(id, p.Closed)

	screenW, _ := ctx.GetScreenSize()
	x := screenW - p.Width - marginRight
	open := ctx.BeginWindow(id, x, marginTop, p.Width, Height(p), p.Title)
	p.Closed = ctx.Window(id).Collapsed
	if !open {
		ctx.EndWindow()
		return
	}

	for i, it := range p.items {
		ctx.Row(ui2d.RowHeight)
		switch c := it.(type) {
		case *FloatController:
			labelW := ctx.ContentWidth() * labelRatio
			ctx.Label(c.label)
			ctx.Column(labelW)
			f, changed := ctx.Slider(fmt.Sprintf("f%d", i), 0, c.Fraction(), formatValue(c.Value()))
			if changed {
				c.SetFraction(f)
			}
		case *Readout:
			labelW := ctx.ContentWidth() * labelRatio
			ctx.Label(c.label)
			ctx.Column(labelW)
			ctx.LabelColored(c.text, ui2d.ColorTextDim)
		case *Button:
			if ctx.Button(fmt.Sprintf("b%d", i), 0, c.label) {
				c.Click()
			}
		}
	}
	ctx.EndWindow()
}

// Height returns the pixel height of an open panel.
func Height(p *Panel) float32 {
	rows := float32(len(p.items))
	// Content starts Padding-4 below the title bar; rows are 4px apart.
	return ui2d.TitleBarHeight + (ui2d.Padding - 4) + rows*(ui2d.RowHeight+4) + ui2d.Padding
}

func formatValue(v float32) string {
	return fmt.Sprintf("%.3f", v)
}
