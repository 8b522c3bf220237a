package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/phaseview/internal/engine/renderer/shaders"
	"github.com/Faultbox/phaseview/internal/engine/shader"
	"github.com/Faultbox/phaseview/internal/engine/ui2d"
)

// Overlay draws a ui2d batch on top of the scene with an orthographic
// projection in drawable pixels.
type Overlay struct {
	*ui2d.Batch

	solidShader *shader.Program
	textShader  *shader.Program

	solidVAO, solidVBO uint32
	textVAO, textVBO   uint32
	fontTexture        uint32
}

// NewOverlay creates the overlay pipeline and uploads the font atlas.
func NewOverlay(width, height int) (*Overlay, error) {
	o := &Overlay{Batch: ui2d.NewBatch(ui2d.NewFont(), width, height)}

	var err error
	o.solidShader, err = shader.NewProgram(shaders.SolidVertexShader, shaders.SolidFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("create solid shader: %w", err)
	}
	o.textShader, err = shader.NewProgram(shaders.TextVertexShader, shaders.TextFragmentShader)
	if err != nil {
		o.Close()
		return nil, fmt.Errorf("create text shader: %w", err)
	}

	o.solidVAO, o.solidVBO = newStreamBuffers(ui2d.SolidStride, []attrib{{0, 2}, {1, 4}})
	o.textVAO, o.textVBO = newStreamBuffers(ui2d.TextStride, []attrib{{0, 2}, {1, 2}, {2, 4}})

	font := o.Font()
	o.fontTexture = uploadRGBA(font.Atlas(), false)
	font.SetTextureID(o.fontTexture)

	return o, nil
}

// End draws everything batched since Begin. Blend, depth and cull state is
// restored afterwards.
func (o *Overlay) End() {
	if len(o.Solid) == 0 && len(o.Text) == 0 {
		return
	}

	prevBlend := gl.IsEnabled(gl.BLEND)
	prevDepth := gl.IsEnabled(gl.DEPTH_TEST)
	prevCull := gl.IsEnabled(gl.CULL_FACE)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)

	width, height := o.GetScreenSize()
	proj := orthoMatrix(0, float32(width), float32(height), 0, -1, 1)

	if len(o.Solid) > 0 {
		o.solidShader.Use()
		o.solidShader.SetMat4("uProjection", proj)
		streamDraw(o.solidVAO, o.solidVBO, o.Solid, ui2d.SolidStride)
	}

	if len(o.Text) > 0 {
		o.textShader.Use()
		o.textShader.SetMat4("uProjection", proj)
		o.textShader.SetInt("uTexture", 0)
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, o.fontTexture)
		streamDraw(o.textVAO, o.textVBO, o.Text, ui2d.TextStride)
	}

	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.UseProgram(0)

	if !prevBlend {
		gl.Disable(gl.BLEND)
	}
	if prevDepth {
		gl.Enable(gl.DEPTH_TEST)
	}
	if prevCull {
		gl.Enable(gl.CULL_FACE)
	}
}

// Close releases GPU resources.
func (o *Overlay) Close() {
	if o.fontTexture != 0 {
		gl.DeleteTextures(1, &o.fontTexture)
	}
	for _, vao := range []*uint32{&o.solidVAO, &o.textVAO} {
		if *vao != 0 {
			gl.DeleteVertexArrays(1, vao)
		}
	}
	for _, vbo := range []*uint32{&o.solidVBO, &o.textVBO} {
		if *vbo != 0 {
			gl.DeleteBuffers(1, vbo)
		}
	}
	if o.solidShader != nil {
		o.solidShader.Delete()
	}
	if o.textShader != nil {
		o.textShader.Delete()
	}
}

// attrib is a float vertex attribute: location and component count.
type attrib struct {
	location uint32
	size     int32
}

// newStreamBuffers creates a VAO/VBO pair for interleaved float vertices
// that are re-uploaded every frame.
func newStreamBuffers(stride int, attribs []attrib) (vao, vbo uint32) {
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)

	offset := 0
	for _, a := range attribs {
		gl.VertexAttribPointerWithOffset(a.location, a.size, gl.FLOAT, false, int32(stride*4), uintptr(offset*4))
		gl.EnableVertexAttribArray(a.location)
		offset += int(a.size)
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return vao, vbo
}

func streamDraw(vao, vbo uint32, vertices []float32, stride int) {
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(vertices)/stride))
}

// orthoMatrix creates an orthographic projection matrix.
func orthoMatrix(left, right, bottom, top, near, far float32) [16]float32 {
	return [16]float32{
		2 / (right - left), 0, 0, 0,
		0, 2 / (top - bottom), 0, 0,
		0, 0, -2 / (far - near), 0,
		-(right + left) / (right - left), -(top + bottom) / (top - bottom), -(far + near) / (far - near), 1,
	}
}
