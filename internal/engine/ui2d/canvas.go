// Package ui2d is a small immediate-mode UI drawn on top of the 3D scene.
// Widgets emit rectangles and text through a Canvas, so layout and
// interaction run without a GPU.
package ui2d

// Canvas receives the draw commands of one UI frame.
type Canvas interface {
	// Begin starts a new UI frame.
	Begin()
	// End flushes everything drawn since Begin.
	End()

	DrawRect(x, y, width, height float32, color Color)
	DrawRectOutline(x, y, width, height, thickness float32, color Color)
	DrawText(x, y float32, text string, scale float32, color Color)
	MeasureText(text string, scale float32) (float32, float32)

	GetScreenSize() (int, int)
}

// DrawPanel draws a panel with border.
func DrawPanel(c Canvas, x, y, width, height float32, bg, border Color) {
	c.DrawRect(x, y, width, height, bg)
	c.DrawRectOutline(x, y, width, height, 1, border)
}
