// Package lighting provides the light sources the renderer understands.
package lighting

// Ambient is a light that illuminates every surface equally, regardless of
// orientation.
type Ambient struct {
	Color     [3]float32 // RGB color (0-1 range)
	Intensity float32    // Light intensity multiplier
}

// NewAmbient creates an ambient light.
func NewAmbient(color [3]float32, intensity float32) *Ambient {
	return &Ambient{Color: color, Intensity: intensity}
}

// White returns a white ambient light of the given intensity.
func White(intensity float32) *Ambient {
	return NewAmbient([3]float32{1, 1, 1}, intensity)
}

// Radiance returns the color premultiplied by intensity, as uploaded to the
// shader.
func (a *Ambient) Radiance() [3]float32 {
	return [3]float32{
		a.Color[0] * a.Intensity,
		a.Color[1] * a.Intensity,
		a.Color[2] * a.Intensity,
	}
}
