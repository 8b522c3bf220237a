// Package picking casts rays from the screen into the scene.
package picking

import (
	gomath "math"

	"github.com/chewxy/math32"

	"github.com/Faultbox/phaseview/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    [3]float32
	Direction [3]float32 // Normalized direction
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) [3]float32 {
	return [3]float32{
		r.Origin[0] + t*r.Direction[0],
		r.Origin[1] + t*r.Direction[1],
		r.Origin[2] + t*r.Direction[2],
	}
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min [3]float32
	Max [3]float32
}

// NewAABB creates an AABB from two corners in any order.
func NewAABB(minX, minY, minZ, maxX, maxY, maxZ float32) AABB {
	return AABB{
		Min: [3]float32{min(minX, maxX), min(minY, maxY), min(minZ, maxZ)},
		Max: [3]float32{max(minX, maxX), max(minY, maxY), max(minZ, maxZ)},
	}
}

// ScreenToRay converts pixel coordinates, origin top-left, to a world-space
// ray. invViewProj is the inverse of projection * view.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj math.Mat4) Ray {
	ndcX := 2*screenX/viewportW - 1
	ndcY := 1 - 2*screenY/viewportH

	near := unproject(invViewProj, math.Vec4{ndcX, ndcY, -1, 1})
	far := unproject(invViewProj, math.Vec4{ndcX, ndcY, 1, 1})

	dir := [3]float32{far[0] - near[0], far[1] - near[1], far[2] - near[2]}
	if l := math32.Sqrt(dir[0]*dir[0] + dir[1]*dir[1] + dir[2]*dir[2]); l > 0 {
		dir[0] /= l
		dir[1] /= l
		dir[2] /= l
	}
	return Ray{Origin: near, Direction: dir}
}

func unproject(inv math.Mat4, p math.Vec4) [3]float32 {
	w := inv.MulVec4(p)
	if w[3] != 0 {
		w[0] /= w[3]
		w[1] /= w[3]
		w[2] /= w[3]
	}
	return [3]float32{w[0], w[1], w[2]}
}

// Slab returns the entry and exit distances of the ray through box. A ray
// starting inside the box enters at 0.
func (r Ray) Slab(box AABB) (tmin, tmax float32, hit bool) {
	tmin = -gomath.MaxFloat32
	tmax = gomath.MaxFloat32

	for axis := 0; axis < 3; axis++ {
		o, d := r.Origin[axis], r.Direction[axis]
		if d == 0 {
			if o < box.Min[axis] || o > box.Max[axis] {
				return 0, 0, false
			}
			continue
		}
		t1 := (box.Min[axis] - o) / d
		t2 := (box.Max[axis] - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, 0, false
	}
	return max(tmin, 0), tmax, true
}

// HeightField returns the surface height above (x, y).
type HeightField func(x, y float32) float32

// Refinement steps after the march brackets a crossing.
const bisectSteps = 10

// MarchHeightField finds where the ray first reaches a height field that
// lies within box. The ray is sampled at steps evenly spaced points between
// entry and exit, and the first crossing is refined by bisection.
func (r Ray) MarchHeightField(box AABB, steps int, height HeightField) ([3]float32, bool) {
	tmin, tmax, ok := r.Slab(box)
	if !ok {
		return [3]float32{}, false
	}
	steps = max(steps, 1)

	// A flat field gives a box with no depth; the tolerance absorbs the
	// rounding in the entry point.
	tol := 1e-5 * max(box.Max[0]-box.Min[0], box.Max[1]-box.Min[1], box.Max[2]-box.Min[2])
	below := func(t float32) bool {
		p := r.At(t)
		return p[2] <= height(p[0], p[1])+tol
	}

	if below(tmin) {
		return r.At(tmin), true
	}
	prev := tmin
	dt := (tmax - tmin) / float32(steps)
	for i := 1; i <= steps; i++ {
		t := tmin + float32(i)*dt
		if !below(t) {
			prev = t
			continue
		}
		lo, hi := prev, t
		for j := 0; j < bisectSteps; j++ {
			mid := (lo + hi) / 2
			if below(mid) {
				hi = mid
			} else {
				lo = mid
			}
		}
		return r.At(hi), true
	}
	return [3]float32{}, false
}
