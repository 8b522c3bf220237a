// Package renderer draws the scene graph and the panel overlay with OpenGL.
package renderer

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/phaseview/internal/engine/debug"
	"github.com/Faultbox/phaseview/internal/engine/framebuffer"
	"github.com/Faultbox/phaseview/internal/engine/input"
	"github.com/Faultbox/phaseview/internal/engine/mesh"
	"github.com/Faultbox/phaseview/internal/engine/renderer/shaders"
	"github.com/Faultbox/phaseview/internal/engine/scene"
	"github.com/Faultbox/phaseview/internal/engine/shader"
	"github.com/Faultbox/phaseview/internal/engine/texture"
	"github.com/Faultbox/phaseview/internal/engine/ui2d"
	"github.com/Faultbox/phaseview/internal/gui"
	"github.com/Faultbox/phaseview/internal/logger"
)

// Display is the window the renderer presents to.
type Display interface {
	DrawableSize() (int, int)
	SwapBuffers()
}

// Config holds renderer configuration.
type Config struct {
	ScreenshotDir string
	ClearColor    [4]float32
}

// DefaultClearColor is the background behind the plane.
var DefaultClearColor = [4]float32{0.1, 0.1, 0.15, 1.0}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	display Display
	log     *zap.Logger
	config  Config

	width, height int

	program  *shader.Program
	meshes   map[*mesh.Mesh]*gpuMesh
	textures map[*texture.Texture]*gpuTexture
	white    uint32
	black    uint32

	overlay *Overlay
	ui      *ui2d.Context

	capture   *debug.ScreenshotCapture
	target    *framebuffer.Framebuffer
	lastScene *scene.Scene
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(display Display, cfg Config) (*Renderer, error) {
	r := &Renderer{
		display:  display,
		log:      logger.Named("renderer"),
		config:   cfg,
		meshes:   make(map[*mesh.Mesh]*gpuMesh),
		textures: make(map[*texture.Texture]*gpuTexture),
		capture:  debug.NewScreenshotCapture(cfg.ScreenshotDir, "phaseview"),
	}
	if r.config.ClearColor == ([4]float32{}) {
		r.config.ClearColor = DefaultClearColor
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.MULTISAMPLE)
	c := r.config.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])

	var err error
	r.program, err = shader.NewProgram(shaders.DisplaceVertexShader, shaders.DisplaceFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create displacement shader: %w", err)
	}

	width, height := display.DrawableSize()
	r.overlay, err = NewOverlay(width, height)
	if err != nil {
		r.program.Delete()
		return nil, fmt.Errorf("failed to create overlay: %w", err)
	}
	r.ui = ui2d.NewContext(r.overlay)

	r.white = solidTexture(255, 255, 255, 255)
	r.black = solidTexture(0, 0, 0, 255)

	r.Resize(width, height)
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	for _, m := range r.meshes {
		m.destroy()
	}
	for _, t := range r.textures {
		t.destroy()
	}
	gl.DeleteTextures(1, &r.white)
	gl.DeleteTextures(1, &r.black)
	if r.target != nil {
		r.target.Destroy()
	}
	r.overlay.Close()
	r.program.Delete()
}

// Resize sets the viewport to the new drawable size.
func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.width, r.height = width, height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.overlay.Resize(width, height)
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the drawable size in pixels.
func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

// Render draws the scene from its camera, then the panel on top.
func (r *Renderer) Render(sc *scene.Scene, panel *gui.Panel) error {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	if err := r.drawScene(sc); err != nil {
		return err
	}
	r.lastScene = sc

	r.ui.Begin()
	if panel != nil {
		gui.Draw(r.ui, panel)
	}
	r.ui.End()

	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("OpenGL error 0x%x", code)
	}
	return nil
}

// drawScene draws every mesh node with the displacement program.
func (r *Renderer) drawScene(sc *scene.Scene) error {
	cam := sc.Camera()
	if cam == nil {
		return errors.New("scene has no camera")
	}

	r.program.Use()
	r.program.SetMat4("uView", cam.ViewMatrix())
	r.program.SetMat4("uProjection", cam.ProjectionMatrix())
	r.program.SetVec3("uAmbient", sc.AmbientRadiance())
	r.program.SetInt("uMap", 0)
	r.program.SetInt("uDisplacementMap", 1)

	for _, node := range sc.Meshes() {
		mat := node.Material

		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, r.textureID(mat.Map, r.white))
		gl.ActiveTexture(gl.TEXTURE1)
		gl.BindTexture(gl.TEXTURE_2D, r.textureID(mat.DisplacementMap, r.black))

		// Material values are read every frame so panel edits show at once.
		r.program.SetMat4("uModel", node.Model)
		r.program.SetVec3("uColor", mat.Color)
		r.program.SetFloat("uDisplacementScale", mat.DisplacementScale)
		r.program.SetFloat("uDisplacementBias", mat.DisplacementBias)

		if mat.Wireframe {
			gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		}
		r.mesh(node.Geometry).draw()
		if mat.Wireframe {
			gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
		}
	}

	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.UseProgram(0)
	return nil
}

func (r *Renderer) mesh(m *mesh.Mesh) *gpuMesh {
	g, ok := r.meshes[m]
	if !ok {
		g = uploadMesh(m)
		r.meshes[m] = g
		r.log.Debug("mesh uploaded", zap.Int("vertices", len(m.Vertices)), zap.Int32("indices", g.indexCount))
	}
	return g
}

// textureID returns the GL texture for t, uploading or refreshing it as
// needed, or fallback when t has no image.
func (r *Renderer) textureID(t *texture.Texture, fallback uint32) uint32 {
	if t == nil || t.Image == nil {
		return fallback
	}
	g, ok := r.textures[t]
	if !ok {
		g = uploadTexture(t)
		r.textures[t] = g
		r.log.Debug("texture uploaded", zap.String("path", t.Path), zap.Int("width", g.width), zap.Int("height", g.height))
		return g.id
	}
	if g.sync(t) {
		r.log.Debug("texture refreshed", zap.String("path", t.Path), zap.Uint64("version", g.version))
	}
	return g.id
}

// Present swaps the back buffer to the screen.
func (r *Renderer) Present() {
	r.display.SwapBuffers()
}

// HandleOverlayEvent passes a pointer event to the overlay and reports
// whether the overlay captured it.
func (r *Renderer) HandleOverlayEvent(ev input.Event) bool {
	return r.ui.HandleEvent(ev)
}

// Screenshot renders the last drawn scene, without the overlay, into an
// offscreen target of the current size and saves it as PNG.
func (r *Renderer) Screenshot() (string, error) {
	if r.lastScene == nil {
		return "", errors.New("nothing rendered yet")
	}

	if r.target == nil {
		target, err := framebuffer.New(r.width, r.height)
		if err != nil {
			return "", err
		}
		r.target = target
	}
	r.target.Resize(r.width, r.height)

	restore := r.target.BindWithViewport()
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	err := r.drawScene(r.lastScene)
	pixels := r.target.ReadPixels()
	restore()
	if err != nil {
		return "", err
	}

	w, h := r.target.Size()
	return r.capture.CaptureFromPixels(pixels, w, h)
}
