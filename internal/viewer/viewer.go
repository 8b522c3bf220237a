// Package viewer shows a displacement-mapped image plane with an orbit
// camera and a panel for tuning the displacement scale.
package viewer

import (
	"context"
	"fmt"
	"image"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/phaseview/internal/config"
	"github.com/Faultbox/phaseview/internal/engine/camera"
	"github.com/Faultbox/phaseview/internal/engine/input"
	"github.com/Faultbox/phaseview/internal/engine/lighting"
	"github.com/Faultbox/phaseview/internal/engine/material"
	"github.com/Faultbox/phaseview/internal/engine/mesh"
	"github.com/Faultbox/phaseview/internal/engine/scene"
	"github.com/Faultbox/phaseview/internal/engine/texture"
	"github.com/Faultbox/phaseview/internal/gui"
	"github.com/Faultbox/phaseview/internal/logger"
	"github.com/Faultbox/phaseview/pkg/math"
)

// Panel labels.
const (
	LabelDisplacementScale = "displacementScale"
	LabelResetView         = "Reset view"
	LabelSave              = "Save"
)

// Viewer owns the scene, the settings and the render loop. All of its
// methods except Stop must be called from the render thread.
type Viewer struct {
	cfg     *config.Config
	surface Surface
	events  EventSource
	log     *zap.Logger

	settings Settings

	scene    *scene.Scene
	camera   *camera.Perspective
	controls *camera.OrbitControls
	material *material.Standard
	texture  *texture.Texture
	panel    *gui.Panel
	readout  *gui.Readout

	// Pointer position of the last probe and the scale it was taken at.
	// onScene is false until the pointer has moved over the scene.
	onScene     bool
	probedScale float32

	dispatcher *input.Dispatcher
	pointer    input.State
	dragButton uint8 // button driving the camera, 0 when idle

	watcher *Watcher
	reloads <-chan *image.RGBA

	// save persists the config; replaced in tests.
	save func(*config.Config) (string, error)

	stopped atomic.Bool
	frames  uint64
}

// New builds the scene described by cfg and wires input handling. The
// surface must already exist at its initial size. A texture that cannot be
// loaded is fatal.
func New(cfg *config.Config, surface Surface, events EventSource) (*Viewer, error) {
	v := &Viewer{
		cfg:        cfg,
		surface:    surface,
		events:     events,
		log:        logger.Named("viewer"),
		settings:   DefaultSettings(),
		dispatcher: input.NewDispatcher(),
		save:       (*config.Config).Save,
	}
	v.settings.SetDisplacementScale(cfg.Scene.DisplacementScale)

	tex, err := texture.Load(cfg.Scene.Texture)
	if err != nil {
		return nil, fmt.Errorf("loading texture %s: %w", cfg.Scene.Texture, err)
	}
	v.texture = tex
	w, h := tex.Size()
	v.log.Info("texture loaded", zap.String("path", tex.Path), zap.Int("width", w), zap.Int("height", h))

	if err := v.buildScene(); err != nil {
		return nil, err
	}
	v.buildPanel()
	v.registerHandlers()
	v.probedScale = v.material.DisplacementScale

	if cfg.Scene.WatchTexture {
		watcher, err := NewWatcher(cfg.Scene.Texture, v.log)
		if err != nil {
			v.log.Warn("texture watch disabled", zap.Error(err))
		} else {
			v.watcher = watcher
			v.reloads = watcher.Images()
		}
	}

	return v, nil
}

func (v *Viewer) buildScene() error {
	sc := scene.New()

	cam := v.cfg.Camera
	width, height := v.surface.Size()
	aspect := float32(v.cfg.Window.Width) / float32(v.cfg.Window.Height)
	if width > 0 && height > 0 {
		aspect = float32(width) / float32(height)
	}
	v.camera = camera.NewPerspective(cam.FOV, aspect, cam.Near, cam.Far)
	v.camera.Position = math.Vec3{X: cam.Position[0], Y: cam.Position[1], Z: cam.Position[2]}
	v.camera.LookAt(math.Vec3{})

	v.controls = camera.NewOrbitControls(v.camera)
	v.controls.RotateSpeed = v.cfg.Controls.RotateSpeed
	v.controls.ZoomSpeed = v.cfg.Controls.ZoomSpeed
	v.controls.PanSpeed = v.cfg.Controls.PanSpeed

	v.material = material.NewStandard()
	v.material.Map = v.texture
	v.material.DisplacementMap = v.texture
	v.material.DisplacementScale = v.settings.DisplacementScale

	size := v.cfg.Scene.PlaneSize
	geom := mesh.Plane(size, size, v.cfg.Scene.Segments, v.cfg.Scene.Segments)

	if err := sc.AddCamera("camera", v.camera); err != nil {
		return err
	}
	if err := sc.AddLight("ambient", lighting.White(1)); err != nil {
		return err
	}
	if _, err := sc.AddMesh("plane", geom, v.material); err != nil {
		return err
	}
	sc.Seal()
	v.scene = sc

	v.log.Debug("scene built",
		zap.Int("vertices", len(geom.Vertices)),
		zap.Int("triangles", geom.TriangleCount()),
		zap.Float32("aspect", aspect))
	return nil
}

func (v *Viewer) buildPanel() {
	v.panel = gui.NewPanel("Controls")
	v.panel.AddFloat(LabelDisplacementScale, &v.settings.DisplacementScale).
		Min(0).
		Max(1).
		OnChange(func(scale float32) {
			v.material.DisplacementScale = scale
		})
	v.readout = v.panel.AddReadout(LabelPhase)
	v.panel.AddButton(LabelResetView, v.controls.Reset)
	v.panel.AddButton(LabelSave, v.saveSettings)
}

func (v *Viewer) registerHandlers() {
	d := v.dispatcher
	d.On(input.EventQuit, func(input.Event) { v.Stop() })
	d.On(input.EventWindowResize, v.handleResize)
	d.On(input.EventKeyDown, v.handleKey)
	d.On(input.EventMouseDown, v.handleMouseDown)
	d.On(input.EventMouseUp, v.handleMouseUp)
	d.On(input.EventMouseMove, v.handleMouseMove)
	d.On(input.EventMouseWheel, v.handleWheel)
}

// handleResize keeps the drawable and the projection in step with the
// window. It runs synchronously for every resize event.
func (v *Viewer) handleResize(ev input.Event) {
	if ev.Width <= 0 || ev.Height <= 0 {
		return
	}
	v.surface.Resize(ev.Width, ev.Height)
	v.camera.SetAspect(float32(ev.Width) / float32(ev.Height))
	v.log.Debug("resized", zap.Int("width", ev.Width), zap.Int("height", ev.Height))
}

func (v *Viewer) handleKey(ev input.Event) {
	switch ev.Key {
	case input.KeyEscape:
		v.Stop()
	case input.KeyR:
		v.controls.Reset()
	case input.KeyH:
		v.panel.Hidden = !v.panel.Hidden
	case input.KeyF12:
		v.TakeScreenshot()
	}
}

func (v *Viewer) handleMouseDown(ev input.Event) {
	v.pointer.Apply(ev)
	if v.surface.HandleOverlayEvent(ev) {
		return
	}
	if v.dragButton == 0 {
		v.dragButton = ev.Button
	}
}

func (v *Viewer) handleMouseUp(ev input.Event) {
	v.pointer.Apply(ev)
	v.surface.HandleOverlayEvent(ev)
	if ev.Button == v.dragButton {
		v.dragButton = 0
	}
}

func (v *Viewer) handleMouseMove(ev input.Event) {
	v.pointer.Apply(ev)
	captured := v.surface.HandleOverlayEvent(ev)

	// A drag that started on the scene keeps the camera even over the panel.
	if v.dragButton == 0 {
		v.onScene = !captured
		if v.onScene {
			v.updateProbe(ev.MouseX, ev.MouseY)
		}
		return
	}
	if !v.pointer.Pressed(v.dragButton) {
		// Release happened outside the window.
		v.dragButton = 0
		return
	}
	switch v.dragButton {
	case input.ButtonLeft:
		v.controls.Rotate(ev.DeltaX, ev.DeltaY)
	case input.ButtonRight, input.ButtonMiddle:
		v.controls.Pan(ev.DeltaX, ev.DeltaY)
	}
}

func (v *Viewer) handleWheel(ev input.Event) {
	if v.surface.HandleOverlayEvent(ev) {
		return
	}
	v.controls.Zoom(ev.DeltaY)
}

// SetDisplacementScale changes the scale as if the panel slider were moved:
// the value is clamped to [0, 1] and reaches the material immediately.
func (v *Viewer) SetDisplacementScale(scale float32) bool {
	return v.panel.Float(LabelDisplacementScale).SetValue(scale)
}

// TakeScreenshot saves the current frame. Failures are logged.
func (v *Viewer) TakeScreenshot() {
	path, err := v.surface.Screenshot()
	if err != nil {
		v.log.Error("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

func (v *Viewer) saveSettings() {
	v.cfg.Scene.DisplacementScale = v.settings.DisplacementScale
	path, err := v.save(v.cfg)
	if err != nil {
		v.log.Error("saving config", zap.Error(err))
		return
	}
	v.log.Info("config saved", zap.String("path", path), zap.Float32("displacement_scale", v.settings.DisplacementScale))
}

// Frame advances the camera, renders and presents one frame.
func (v *Viewer) Frame() error {
	reloaded := v.applyReloads()
	moved := v.controls.Update()
	if moved || reloaded || v.material.DisplacementScale != v.probedScale {
		v.refreshProbe()
	}
	if err := v.surface.Render(v.scene, v.panel); err != nil {
		return err
	}
	v.surface.Present()
	v.frames++
	return nil
}

// applyReloads swaps in a re-decoded texture if the watcher delivered one.
func (v *Viewer) applyReloads() bool {
	if v.reloads == nil {
		return false
	}
	select {
	case img := <-v.reloads:
		v.texture.Replace(img)
		v.log.Info("texture reloaded", zap.String("path", v.texture.Path), zap.Uint64("version", v.texture.Version()))
		return true
	default:
		return false
	}
}

// PollEvents dispatches every pending input event to its handlers.
func (v *Viewer) PollEvents() {
	for _, ev := range v.events.Poll() {
		v.dispatcher.Dispatch(ev)
	}
}

// Run polls input and renders frames until ctx is cancelled, Stop is called,
// or the window asks to quit. A render error ends the loop and is returned.
func (v *Viewer) Run(ctx context.Context) error {
	var frameTime time.Duration
	if limit := v.cfg.Window.FPSLimit; limit > 0 {
		frameTime = time.Second / time.Duration(limit)
	}

	v.log.Info("render loop started", zap.Int("fps_limit", v.cfg.Window.FPSLimit))
	defer func() {
		v.log.Info("render loop stopped", zap.Uint64("frames", v.frames))
	}()

	for {
		start := time.Now()
		if ctx.Err() != nil || v.stopped.Load() {
			return nil
		}

		v.PollEvents()
		if v.stopped.Load() {
			return nil
		}

		if err := v.Frame(); err != nil {
			return fmt.Errorf("rendering frame %d: %w", v.frames, err)
		}

		if frameTime > 0 {
			if wait := frameTime - time.Since(start); wait > 0 {
				timer := time.NewTimer(wait)
				select {
				case <-ctx.Done():
					timer.Stop()
					return nil
				case <-timer.C:
				}
			}
		}
	}
}

// Stop asks Run to return after the current frame. Safe from any goroutine.
func (v *Viewer) Stop() {
	v.stopped.Store(true)
}

// Close releases the texture watcher.
func (v *Viewer) Close() error {
	if v.watcher == nil {
		return nil
	}
	return v.watcher.Close()
}

// Settings returns a copy of the current settings.
func (v *Viewer) Settings() Settings { return v.settings }

// Scene returns the scene graph.
func (v *Viewer) Scene() *scene.Scene { return v.scene }

// Camera returns the scene camera.
func (v *Viewer) Camera() *camera.Perspective { return v.camera }

// Controls returns the orbit controls.
func (v *Viewer) Controls() *camera.OrbitControls { return v.controls }

// Material returns the plane's material.
func (v *Viewer) Material() *material.Standard { return v.material }

// Texture returns the displayed image.
func (v *Viewer) Texture() *texture.Texture { return v.texture }

// Panel returns the tweak panel.
func (v *Viewer) Panel() *gui.Panel { return v.panel }

// Frames returns the number of frames presented.
func (v *Viewer) Frames() uint64 { return v.frames }
