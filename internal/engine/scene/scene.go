// Package scene holds the scene graph the renderer draws: a camera, the
// lights, and the meshes with their materials.
package scene

import (
	"errors"
	"fmt"

	"github.com/Faultbox/phaseview/internal/engine/camera"
	"github.com/Faultbox/phaseview/internal/engine/lighting"
	"github.com/Faultbox/phaseview/internal/engine/material"
	"github.com/Faultbox/phaseview/internal/engine/mesh"
	"github.com/Faultbox/phaseview/pkg/math"
)

// ErrSealed is returned when adding to a scene whose structure is frozen.
var ErrSealed = errors.New("scene: sealed")

// Kind identifies what a node holds.
type Kind int

const (
	KindCamera Kind = iota
	KindLight
	KindMesh
)

func (k Kind) String() string {
	switch k {
	case KindCamera:
		return "camera"
	case KindLight:
		return "light"
	case KindMesh:
		return "mesh"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Node is one entry of the scene graph. Exactly one of Camera, Light or
// Mesh is set, according to Kind.
type Node struct {
	Name string
	Kind Kind

	Camera *camera.Perspective
	Light  *lighting.Ambient
	Mesh   *MeshNode
}

// MeshNode is geometry drawn with a material at a world transform.
type MeshNode struct {
	Geometry *mesh.Mesh
	Material *material.Standard
	Model    math.Mat4
}

// Scene is an ordered list of nodes. Once sealed its structure is fixed;
// the nodes themselves stay mutable.
type Scene struct {
	nodes  []*Node
	sealed bool
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{}
}

// AddCamera adds a camera node.
func (s *Scene) AddCamera(name string, cam *camera.Perspective) error {
	return s.add(&Node{Name: name, Kind: KindCamera, Camera: cam})
}

// AddLight adds an ambient light node.
func (s *Scene) AddLight(name string, light *lighting.Ambient) error {
	return s.add(&Node{Name: name, Kind: KindLight, Light: light})
}

// AddMesh adds a mesh node with an identity transform and returns it.
func (s *Scene) AddMesh(name string, geom *mesh.Mesh, mat *material.Standard) (*MeshNode, error) {
	mn := &MeshNode{Geometry: geom, Material: mat, Model: math.Identity()}
	if err := s.add(&Node{Name: name, Kind: KindMesh, Mesh: mn}); err != nil {
		return nil, err
	}
	return mn, nil
}

func (s *Scene) add(n *Node) error {
	if s.sealed {
		return fmt.Errorf("adding %s %q: %w", n.Kind, n.Name, ErrSealed)
	}
	s.nodes = append(s.nodes, n)
	return nil
}

// Seal freezes the scene structure.
func (s *Scene) Seal() {
	s.sealed = true
}

// Sealed reports whether Seal was called.
func (s *Scene) Sealed() bool {
	return s.sealed
}

// Nodes returns the nodes in insertion order. The slice must not be modified.
func (s *Scene) Nodes() []*Node {
	return s.nodes
}

// Count returns the number of nodes of a kind.
func (s *Scene) Count(k Kind) int {
	n := 0
	for _, node := range s.nodes {
		if node.Kind == k {
			n++
		}
	}
	return n
}

// Camera returns the first camera, or nil.
func (s *Scene) Camera() *camera.Perspective {
	for _, node := range s.nodes {
		if node.Kind == KindCamera {
			return node.Camera
		}
	}
	return nil
}

// Lights returns all lights in insertion order.
func (s *Scene) Lights() []*lighting.Ambient {
	var out []*lighting.Ambient
	for _, node := range s.nodes {
		if node.Kind == KindLight {
			out = append(out, node.Light)
		}
	}
	return out
}

// Meshes returns all mesh nodes in insertion order.
func (s *Scene) Meshes() []*MeshNode {
	var out []*MeshNode
	for _, node := range s.nodes {
		if node.Kind == KindMesh {
			out = append(out, node.Mesh)
		}
	}
	return out
}

// AmbientRadiance sums the radiance of every light.
func (s *Scene) AmbientRadiance() [3]float32 {
	var sum [3]float32
	for _, l := range s.Lights() {
		r := l.Radiance()
		sum[0] += r[0]
		sum[1] += r[1]
		sum[2] += r[2]
	}
	return sum
}
