package viewer

import (
	"fmt"
	"image"

	"github.com/Faultbox/phaseview/internal/engine/picking"
)

// LabelPhase names the panel readout showing the phase under the cursor.
const LabelPhase = "phase"

// probeSteps is the number of ray-march samples across the relief's
// bounding box.
const probeSteps = 128

// ProbeResult is the point of the displaced plane under a pixel.
type ProbeResult struct {
	// Sample is the displacement map's red channel, 0..1.
	Sample float32
	// U and V are texture coordinates, origin top-left.
	U, V float32
	// Position is the hit point in world space.
	Position [3]float32
}

// Probe casts a ray through pixel (x, y) of the surface and returns where it
// meets the displaced plane. The relief is marched with the current
// displacement scale, so the result matches what is on screen.
func (v *Viewer) Probe(x, y int) (ProbeResult, bool) {
	w, h := v.surface.Size()
	img := v.material.DisplacementMap
	if w <= 0 || h <= 0 || img == nil || img.Image == nil {
		return ProbeResult{}, false
	}

	viewProj := v.camera.ProjectionMatrix().Mul(v.camera.ViewMatrix())
	inv, ok := viewProj.Inverse()
	if !ok {
		return ProbeResult{}, false
	}
	ray := picking.ScreenToRay(float32(x)+0.5, float32(y)+0.5, float32(w), float32(h), inv)

	size := v.cfg.Scene.PlaneSize
	half := size / 2
	pad := 1e-4 * size
	box := picking.NewAABB(-half, -half, v.material.Displace(0)-pad, half, half, v.material.Displace(1)+pad)
	height := func(px, py float32) float32 {
		u, vv := planeUV(px, py, size)
		return v.material.Displace(sampleRed(img.Image, u, vv))
	}

	p, hit := ray.MarchHeightField(box, probeSteps, height)
	if !hit {
		return ProbeResult{}, false
	}
	u, vv := planeUV(p[0], p[1], size)
	return ProbeResult{Sample: sampleRed(img.Image, u, vv), U: u, V: vv, Position: p}, true
}

// refreshProbe re-reads the readout at the last pointer position after the
// camera, the scale or the texture changed.
func (v *Viewer) refreshProbe() {
	if !v.onScene {
		v.probedScale = v.material.DisplacementScale
		return
	}
	v.updateProbe(v.pointer.MouseX, v.pointer.MouseY)
}

func (v *Viewer) updateProbe(x, y int) {
	v.probedScale = v.material.DisplacementScale
	if v.readout == nil {
		return
	}
	res, ok := v.Probe(x, y)
	if !ok {
		v.readout.Set("-")
		return
	}
	v.readout.Set(fmt.Sprintf("%.3f", res.Sample))
}

// planeUV maps a point of the centered plane to texture coordinates. The
// top edge (+Y) is v=0.
func planeUV(x, y, size float32) (u, v float32) {
	return clamp01(x/size + 0.5), clamp01(0.5 - y/size)
}

// sampleRed filters the red channel bilinearly between texel centers, with
// edges clamped.
func sampleRed(img *image.RGBA, u, v float32) float32 {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return 0
	}

	fx := min(max(u*float32(w)-0.5, 0), float32(w-1))
	fy := min(max(v*float32(h)-0.5, 0), float32(h-1))
	x0, y0 := int(fx), int(fy)
	x1, y1 := min(x0+1, w-1), min(y0+1, h-1)
	tx, ty := fx-float32(x0), fy-float32(y0)

	red := func(x, y int) float32 {
		return float32(img.Pix[img.PixOffset(b.Min.X+x, b.Min.Y+y)]) / 255
	}
	top := red(x0, y0)*(1-tx) + red(x1, y0)*tx
	bottom := red(x0, y1)*(1-tx) + red(x1, y1)*tx
	return top*(1-ty) + bottom*ty
}

func clamp01(x float32) float32 {
	return min(max(x, 0), 1)
}
