package scene

import (
	"errors"
	"testing"

	"github.com/Faultbox/phaseview/internal/engine/camera"
	"github.com/Faultbox/phaseview/internal/engine/lighting"
	"github.com/Faultbox/phaseview/internal/engine/material"
	"github.com/Faultbox/phaseview/internal/engine/mesh"
)

func buildScene(t *testing.T) *Scene {
	t.Helper()
	s := New()
	if err := s.AddCamera("camera", camera.NewPerspective(45, 1, 0.1, 100)); err != nil {
		t.Fatal(err)
	}
	if err := s.AddLight("ambient", lighting.White(1)); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddMesh("plane", mesh.Plane(1, 1, 2, 2), material.NewStandard()); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestCounts(t *testing.T) {
	s := buildScene(t)

	tests := []struct {
		kind Kind
		want int
	}{
		{KindCamera, 1},
		{KindLight, 1},
		{KindMesh, 1},
	}
	for _, tt := range tests {
		if got := s.Count(tt.kind); got != tt.want {
			t.Errorf("Count(%s) = %d, want %d", tt.kind, got, tt.want)
		}
	}
	if len(s.Nodes()) != 3 {
		t.Errorf("nodes = %d, want 3", len(s.Nodes()))
	}
}

func TestAccessors(t *testing.T) {
	s := buildScene(t)

	if s.Camera() == nil {
		t.Error("Camera() returned nil")
	}
	if len(s.Lights()) != 1 {
		t.Errorf("Lights() = %d, want 1", len(s.Lights()))
	}
	meshes := s.Meshes()
	if len(meshes) != 1 {
		t.Fatalf("Meshes() = %d, want 1", len(meshes))
	}
	if meshes[0].Model[0] != 1 || meshes[0].Model[15] != 1 {
		t.Error("mesh model matrix should start as identity")
	}
	if got := s.AmbientRadiance(); got != [3]float32{1, 1, 1} {
		t.Errorf("AmbientRadiance() = %v, want white", got)
	}
}

func TestSealRejectsAdds(t *testing.T) {
	s := buildScene(t)
	s.Seal()
	if !s.Sealed() {
		t.Fatal("Sealed() = false after Seal")
	}

	if err := s.AddLight("extra", lighting.White(1)); !errors.Is(err, ErrSealed) {
		t.Errorf("AddLight after seal: err = %v, want ErrSealed", err)
	}
	if err := s.AddCamera("extra", camera.NewPerspective(45, 1, 0.1, 100)); !errors.Is(err, ErrSealed) {
		t.Errorf("AddCamera after seal: err = %v, want ErrSealed", err)
	}
	if mn, err := s.AddMesh("extra", mesh.Plane(1, 1, 1, 1), material.NewStandard()); !errors.Is(err, ErrSealed) || mn != nil {
		t.Errorf("AddMesh after seal: (%v, %v), want (nil, ErrSealed)", mn, err)
	}
	if s.Count(KindLight) != 1 || s.Count(KindMesh) != 1 || s.Count(KindCamera) != 1 {
		t.Error("sealed scene structure changed")
	}
}

func TestEmptyScene(t *testing.T) {
	s := New()
	if s.Camera() != nil {
		t.Error("empty scene should have no camera")
	}
	if got := s.AmbientRadiance(); got != [3]float32{} {
		t.Errorf("AmbientRadiance() = %v, want black", got)
	}
}

func TestKindString(t *testing.T) {
	if KindMesh.String() != "mesh" || Kind(7).String() != "kind(7)" {
		t.Errorf("unexpected kind names: %s %s", KindMesh, Kind(7))
	}
}
