package camera

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/phaseview/pkg/math"
)

const eps = 1e-4

func near(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < eps
}

func newTestCamera() *Perspective {
	cam := NewPerspective(45, 16.0/9.0, 0.001, 10000)
	cam.Position = math.Vec3{X: 0, Y: 2, Z: 2}
	cam.LookAt(math.Vec3{})
	return cam
}

func TestSetAspect(t *testing.T) {
	tests := []struct {
		name string
		in   float32
		want float32
	}{
		{"landscape", 1920.0 / 1080.0, 1920.0 / 1080.0},
		{"portrait", 600.0 / 800.0, 0.75},
		{"zero ignored", 0, 2},
		{"negative ignored", -1, 2},
		{"nan ignored", float32(gomath.NaN()), 2},
		{"inf ignored", float32(gomath.Inf(1)), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := NewPerspective(45, 2, 0.1, 100)
			cam.SetAspect(tt.in)
			if !near(cam.Aspect, tt.want) {
				t.Errorf("Aspect = %v, want %v", cam.Aspect, tt.want)
			}
		})
	}
}

func TestProjectionFollowsAspect(t *testing.T) {
	cam := NewPerspective(45, 1, 0.1, 100)
	p1 := cam.ProjectionMatrix()
	cam.SetAspect(2)
	p2 := cam.ProjectionMatrix()

	if !near(p2[0], p1[0]/2) {
		t.Errorf("x scale %v should halve from %v when aspect doubles", p2[0], p1[0])
	}
	if p1[5] != p2[5] {
		t.Errorf("y scale changed with aspect: %v vs %v", p1[5], p2[5])
	}
}

func TestOrbitControlsDeriveFromCamera(t *testing.T) {
	ctl := NewOrbitControls(newTestCamera())

	if !near(ctl.Distance, float32(2*gomath.Sqrt2)) {
		t.Errorf("Distance = %v, want %v", ctl.Distance, 2*gomath.Sqrt2)
	}
	if !near(ctl.Pitch, gomath.Pi/4) {
		t.Errorf("Pitch = %v, want pi/4", ctl.Pitch)
	}
	if !near(ctl.Yaw, 0) {
		t.Errorf("Yaw = %v, want 0", ctl.Yaw)
	}
}

func TestUpdateWithoutInputLeavesCamera(t *testing.T) {
	cam := newTestCamera()
	ctl := NewOrbitControls(cam)
	before := *cam

	for i := 0; i < 5; i++ {
		if ctl.Update() {
			t.Fatal("Update reported movement without input")
		}
	}
	if *cam != before {
		t.Errorf("camera changed without input: %+v -> %+v", before, *cam)
	}
}

func TestRotateKeepsDistance(t *testing.T) {
	cam := newTestCamera()
	ctl := NewOrbitControls(cam)

	ctl.Rotate(100, 0)
	if !ctl.Update() {
		t.Fatal("expected camera to move")
	}
	if near(cam.Position.X, 0) {
		t.Error("horizontal drag should move the camera off the YZ plane")
	}
	if d := cam.Position.Distance(cam.Target); !near(d, ctl.Distance) {
		t.Errorf("distance to target = %v, want %v", d, ctl.Distance)
	}
}

func TestRotateClampsPitch(t *testing.T) {
	ctl := NewOrbitControls(newTestCamera())
	ctl.Rotate(0, 1e6)
	ctl.Update()
	if ctl.Pitch != ctl.MaxPitch {
		t.Errorf("Pitch = %v, want clamp at %v", ctl.Pitch, ctl.MaxPitch)
	}
	ctl.Rotate(0, -1e7)
	ctl.Update()
	if ctl.Pitch != ctl.MinPitch {
		t.Errorf("Pitch = %v, want clamp at %v", ctl.Pitch, ctl.MinPitch)
	}
}

func TestZoom(t *testing.T) {
	cam := newTestCamera()
	ctl := NewOrbitControls(cam)
	start := ctl.Distance

	ctl.Zoom(1)
	ctl.Update()
	if !(ctl.Distance < start) {
		t.Errorf("zoom in: distance %v should be below %v", ctl.Distance, start)
	}

	ctl.Zoom(1e6)
	ctl.Update()
	if ctl.Distance != ctl.MinDistance {
		t.Errorf("distance = %v, want clamp at %v", ctl.Distance, ctl.MinDistance)
	}
}

func TestPanMovesTarget(t *testing.T) {
	cam := newTestCamera()
	ctl := NewOrbitControls(cam)

	ctl.Pan(50, 0)
	ctl.Update()
	if near(ctl.Target.X, 0) {
		t.Error("horizontal pan should move the target along X")
	}
	if !near(cam.Position.Sub(cam.Target).Length(), ctl.Distance) {
		t.Error("pan should not change orbit distance")
	}
}

func TestReset(t *testing.T) {
	cam := newTestCamera()
	ctl := NewOrbitControls(cam)

	ctl.Rotate(300, -40)
	ctl.Pan(10, 10)
	ctl.Zoom(3)
	ctl.Update()

	ctl.Reset()
	ctl.Update()

	want := math.Vec3{X: 0, Y: 2, Z: 2}
	if !near(cam.Position.X, want.X) || !near(cam.Position.Y, want.Y) || !near(cam.Position.Z, want.Z) {
		t.Errorf("position after reset = %+v, want %+v", cam.Position, want)
	}
	if cam.Target != (math.Vec3{}) {
		t.Errorf("target after reset = %+v, want origin", cam.Target)
	}
}
