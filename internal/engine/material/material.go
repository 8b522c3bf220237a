// Package material describes how a mesh surface is shaded.
package material

import "github.com/Faultbox/phaseview/internal/engine/texture"

// Standard is a lit material with an optional color map and an optional
// displacement map. Displacement moves each vertex along its normal by
// sample*DisplacementScale + DisplacementBias, where sample is the red
// channel of the displacement map in [0, 1].
type Standard struct {
	Color [3]float32 // Multiplied with the color map

	Map             *texture.Texture
	DisplacementMap *texture.Texture

	DisplacementScale float32
	DisplacementBias  float32

	Wireframe bool
}

// NewStandard creates a white material with unit displacement scale.
func NewStandard() *Standard {
	return &Standard{
		Color:             [3]float32{1, 1, 1},
		DisplacementScale: 1,
	}
}

// Textures returns the distinct textures the material samples, map first.
func (m *Standard) Textures() []*texture.Texture {
	var out []*texture.Texture
	if m.Map != nil {
		out = append(out, m.Map)
	}
	if m.DisplacementMap != nil && m.DisplacementMap != m.Map {
		out = append(out, m.DisplacementMap)
	}
	return out
}

// Displace returns the offset along the normal for a displacement sample.
func (m *Standard) Displace(sample float32) float32 {
	if m.DisplacementMap == nil {
		return 0
	}
	return sample*m.DisplacementScale + m.DisplacementBias
}
