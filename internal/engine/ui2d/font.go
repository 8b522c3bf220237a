package ui2d

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Printable ASCII range covered by the atlas.
const (
	firstGlyph   = 32
	lastGlyph    = 126
	glyphColumns = 16
)

// Font is a fixed-width bitmap font baked into an RGBA atlas. Glyph
// coverage is stored in alpha with white color, ready for the text shader.
type Font struct {
	atlas         *image.RGBA
	glyphW        int
	glyphH        int
	textureID     uint32
	rows, columns int
}

// NewFont bakes the 7x13 basic font into an atlas.
func NewFont() *Font {
	face := basicfont.Face7x13
	gw := face.Advance
	gh := face.Height
	count := lastGlyph - firstGlyph + 1
	rows := (count + glyphColumns - 1) / glyphColumns

	alpha := image.NewAlpha(image.Rect(0, 0, glyphColumns*gw, rows*gh))
	d := font.Drawer{Dst: alpha, Src: image.Opaque, Face: face}
	for ch := firstGlyph; ch <= lastGlyph; ch++ {
		i := ch - firstGlyph
		col, row := i%glyphColumns, i/glyphColumns
		d.Dot = fixed.P(col*gw, row*gh+face.Ascent)
		d.DrawString(string(rune(ch)))
	}

	atlas := image.NewRGBA(alpha.Bounds())
	draw.DrawMask(atlas, atlas.Bounds(), image.NewUniform(color.White), image.Point{}, alpha, image.Point{}, draw.Src)

	return &Font{atlas: atlas, glyphW: gw, glyphH: gh, rows: rows, columns: glyphColumns}
}

// Atlas returns the glyph atlas image.
func (f *Font) Atlas() *image.RGBA {
	return f.atlas
}

// GlyphSize returns the size of one glyph cell in pixels.
func (f *Font) GlyphSize() (int, int) {
	return f.glyphW, f.glyphH
}

// GetGlyphUV returns the atlas texture coordinates of a character. Characters
// outside the atlas map to '?'.
func (f *Font) GetGlyphUV(ch rune) (u0, v0, u1, v1 float32) {
	if ch < firstGlyph || ch > lastGlyph {
		ch = '?'
	}
	i := int(ch) - firstGlyph
	col, row := i%f.columns, i/f.columns
	b := f.atlas.Bounds()
	w, h := float32(b.Dx()), float32(b.Dy())

	u0 = float32(col*f.glyphW) / w
	v0 = float32(row*f.glyphH) / h
	u1 = float32((col+1)*f.glyphW) / w
	v1 = float32((row+1)*f.glyphH) / h
	return u0, v0, u1, v1
}

// MeasureText returns the width and height of rendered text.
func (f *Font) MeasureText(text string, scale float32) (float32, float32) {
	lines := 1
	longest, cur := 0, 0
	for _, ch := range text {
		if ch == '\n' {
			lines++
			cur = 0
			continue
		}
		cur++
		longest = max(longest, cur)
	}
	return float32(longest*f.glyphW) * scale, float32(lines*f.glyphH) * scale
}

// SetTextureID records the GPU texture holding the atlas.
func (f *Font) SetTextureID(id uint32) {
	f.textureID = id
}

// TextureID returns the GPU texture holding the atlas, 0 before upload.
func (f *Font) TextureID() uint32 {
	return f.textureID
}
