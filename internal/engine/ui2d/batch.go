package ui2d

// Vertex layouts of a Batch, in floats per vertex.
const (
	SolidStride = 6 // x, y, r, g, b, a
	TextStride  = 8 // x, y, u, v, r, g, b, a
)

// Batch is a Canvas that collects the frame's quads as triangle lists in
// screen pixels, origin top-left. A GPU backend uploads Solid and Text when
// the frame ends; text is drawn after solids.
type Batch struct {
	Solid []float32
	Text  []float32

	font          *Font
	width, height int
}

// NewBatch creates a batch for a screen of the given size.
func NewBatch(font *Font, width, height int) *Batch {
	return &Batch{
		Solid:  make([]float32, 0, 4096),
		Text:   make([]float32, 0, 4096),
		font:   font,
		width:  width,
		height: height,
	}
}

// Font returns the glyph atlas used for text.
func (b *Batch) Font() *Font {
	return b.font
}

// Resize updates the screen dimensions.
func (b *Batch) Resize(width, height int) {
	b.width = width
	b.height = height
}

// GetScreenSize returns the current screen dimensions.
func (b *Batch) GetScreenSize() (int, int) {
	return b.width, b.height
}

// Begin clears the previous frame.
func (b *Batch) Begin() {
	b.Solid = b.Solid[:0]
	b.Text = b.Text[:0]
}

// End is a no-op; backends flush the batch themselves.
func (b *Batch) End() {}

// DrawRect draws a filled rectangle.
func (b *Batch) DrawRect(x, y, width, height float32, color Color) {
	b.addQuad(x, y, width, height, color)
}

// DrawRectOutline draws a rectangle outline.
func (b *Batch) DrawRectOutline(x, y, width, height, thickness float32, color Color) {
	b.addQuad(x, y, width, thickness, color)
	b.addQuad(x, y+height-thickness, width, thickness, color)
	b.addQuad(x, y+thickness, thickness, height-thickness*2, color)
	b.addQuad(x+width-thickness, y+thickness, thickness, height-thickness*2, color)
}

func (b *Batch) addQuad(x, y, w, h float32, c Color) {
	b.Solid = append(b.Solid,
		x, y, c.R, c.G, c.B, c.A,
		x+w, y, c.R, c.G, c.B, c.A,
		x+w, y+h, c.R, c.G, c.B, c.A,

		x, y, c.R, c.G, c.B, c.A,
		x+w, y+h, c.R, c.G, c.B, c.A,
		x, y+h, c.R, c.G, c.B, c.A,
	)
}

func (b *Batch) addTexturedQuad(x, y, w, h, u0, v0, u1, v1 float32, c Color) {
	b.Text = append(b.Text,
		x, y, u0, v0, c.R, c.G, c.B, c.A,
		x+w, y, u1, v0, c.R, c.G, c.B, c.A,
		x+w, y+h, u1, v1, c.R, c.G, c.B, c.A,

		x, y, u0, v0, c.R, c.G, c.B, c.A,
		x+w, y+h, u1, v1, c.R, c.G, c.B, c.A,
		x, y+h, u0, v1, c.R, c.G, c.B, c.A,
	)
}

// DrawText draws text with its top-left corner at (x, y). Spaces advance
// without emitting geometry.
func (b *Batch) DrawText(x, y float32, text string, scale float32, color Color) {
	gw, gh := b.font.GlyphSize()
	charW := float32(gw) * scale
	charH := float32(gh) * scale

	curX := x
	for _, ch := range text {
		switch ch {
		case '\n':
			curX = x
			y += charH
			continue
		case ' ':
		default:
			u0, v0, u1, v1 := b.font.GetGlyphUV(ch)
			b.addTexturedQuad(curX, y, charW, charH, u0, v0, u1, v1, color)
		}
		curX += charW
	}
}

// MeasureText returns the width and height of rendered text.
func (b *Batch) MeasureText(text string, scale float32) (float32, float32) {
	return b.font.MeasureText(text, scale)
}
