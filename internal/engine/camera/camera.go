// Package camera provides the perspective camera and orbit controls.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/phaseview/pkg/math"
)

// Perspective is a perspective projection camera.
type Perspective struct {
	FOV    float32 // Vertical field of view, degrees
	Aspect float32 // Width / height
	Near   float32
	Far    float32

	Position math.Vec3
	Target   math.Vec3
	Up       math.Vec3
}

// NewPerspective creates a camera at the origin looking down -Z.
func NewPerspective(fov, aspect, near, far float32) *Perspective {
	return &Perspective{
		FOV:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
		Target: math.Vec3{Z: -1},
		Up:     math.Vec3{Y: 1},
	}
}

// SetAspect updates the aspect ratio. Non-positive or NaN ratios are ignored
// so a minimized window cannot produce a degenerate projection.
func (c *Perspective) SetAspect(aspect float32) {
	if !(aspect > 0) || math32.IsInf(aspect, 0) {
		return
	}
	c.Aspect = aspect
}

// LookAt points the camera at target.
func (c *Perspective) LookAt(target math.Vec3) {
	c.Target = target
}

// ProjectionMatrix returns the projection matrix for the current aspect.
func (c *Perspective) ProjectionMatrix() math.Mat4 {
	return math.Perspective(c.FOV*math32.Pi/180, c.Aspect, c.Near, c.Far)
}

// ViewMatrix returns the view matrix for this camera.
func (c *Perspective) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Target, c.Up)
}

// orbitState is the part of the controls that Reset restores.
type orbitState struct {
	target   math.Vec3
	distance float32
	pitch    float32
	yaw      float32
}

// OrbitControls orbits a camera around a target point. Pointer input is
// accumulated and only applied to the camera in Update.
type OrbitControls struct {
	camera *Perspective

	// Point to orbit around
	Target math.Vec3

	// Spherical coordinates
	Distance float32 // Distance from target
	Pitch    float32 // Vertical angle, radians
	Yaw      float32 // Horizontal angle, radians

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	RotateSpeed float32
	ZoomSpeed   float32
	PanSpeed    float32

	pendingYaw   float32
	pendingPitch float32
	pendingZoom  float32
	pendingPanX  float32
	pendingPanY  float32
	dirty        bool

	initial orbitState
}

const (
	dragSensitivity = 0.005 // radians per pixel
	zoomSensitivity = 0.1   // fraction of distance per wheel step
	panSensitivity  = 0.002 // distance fraction per pixel
)

// NewOrbitControls creates controls for cam, orbiting cam.Target and starting
// from the camera's current position.
func NewOrbitControls(cam *Perspective) *OrbitControls {
	o := &OrbitControls{
		camera:      cam,
		MinDistance: 0.01,
		MaxDistance: 1000,
		MinPitch:    -math32.Pi/2 + 0.01,
		MaxPitch:    math32.Pi/2 - 0.01,
		RotateSpeed: 1,
		ZoomSpeed:   1,
		PanSpeed:    1,
	}
	o.setFromCamera()
	o.initial = o.state()
	return o
}

// setFromCamera derives the spherical coordinates from the camera placement.
func (o *OrbitControls) setFromCamera() {
	o.Target = o.camera.Target
	offset := o.camera.Position.Sub(o.Target)
	o.Distance = offset.Length()
	if o.Distance == 0 {
		return
	}
	o.Pitch = math32.Asin(clampf(offset.Y/o.Distance, -1, 1))
	o.Yaw = math32.Atan2(offset.X, offset.Z)
}

func (o *OrbitControls) state() orbitState {
	return orbitState{target: o.Target, distance: o.Distance, pitch: o.Pitch, yaw: o.Yaw}
}

// Camera returns the controlled camera.
func (o *OrbitControls) Camera() *Perspective {
	return o.camera
}

// Rotate queues an orbit by a pointer drag delta in pixels.
func (o *OrbitControls) Rotate(dx, dy float32) {
	o.pendingYaw -= dx * dragSensitivity * o.RotateSpeed
	o.pendingPitch += dy * dragSensitivity * o.RotateSpeed
	o.dirty = true
}

// Zoom queues a dolly by wheel steps. Positive values move closer.
func (o *OrbitControls) Zoom(delta float32) {
	o.pendingZoom += delta * o.ZoomSpeed
	o.dirty = true
}

// Pan queues a target translation by a pointer drag delta in pixels.
func (o *OrbitControls) Pan(dx, dy float32) {
	o.pendingPanX += dx * o.PanSpeed
	o.pendingPanY += dy * o.PanSpeed
	o.dirty = true
}

// Reset restores the placement the controls were created with.
func (o *OrbitControls) Reset() {
	o.Target = o.initial.target
	o.Distance = o.initial.distance
	o.Pitch = o.initial.pitch
	o.Yaw = o.initial.yaw
	o.clearPending()
	o.dirty = true
}

func (o *OrbitControls) clearPending() {
	o.pendingYaw, o.pendingPitch, o.pendingZoom = 0, 0, 0
	o.pendingPanX, o.pendingPanY = 0, 0
}

// Update applies queued input and writes the camera transform. It reports
// whether the camera moved. Without queued input the camera is untouched.
func (o *OrbitControls) Update() bool {
	if !o.dirty {
		return false
	}
	o.dirty = false

	o.Yaw += o.pendingYaw
	o.Pitch = clampf(o.Pitch+o.pendingPitch, o.MinPitch, o.MaxPitch)

	if o.pendingZoom != 0 {
		o.Distance -= o.pendingZoom * o.Distance * zoomSensitivity
		o.Distance = clampf(o.Distance, o.MinDistance, o.MaxDistance)
	}

	if o.pendingPanX != 0 || o.pendingPanY != 0 {
		// Speed scales with distance for consistent feel
		speed := o.Distance * panSensitivity
		right, up := o.axes()
		o.Target = o.Target.
			Add(right.Scale(-o.pendingPanX * speed)).
			Add(up.Scale(o.pendingPanY * speed))
	}
	o.clearPending()

	o.camera.Position = o.Target.Add(o.offset())
	o.camera.Target = o.Target
	return true
}

func (o *OrbitControls) offset() math.Vec3 {
	cp := math32.Cos(o.Pitch)
	return math.Vec3{
		X: o.Distance * cp * math32.Sin(o.Yaw),
		Y: o.Distance * math32.Sin(o.Pitch),
		Z: o.Distance * cp * math32.Cos(o.Yaw),
	}
}

// axes returns the camera's right and up directions in world space.
func (o *OrbitControls) axes() (right, up math.Vec3) {
	forward := o.offset().Scale(-1).Normalize()
	right = forward.Cross(math.Vec3{Y: 1}).Normalize()
	up = right.Cross(forward)
	return right, up
}

func clampf(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
