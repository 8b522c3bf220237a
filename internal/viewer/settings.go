package viewer

import "github.com/chewxy/math32"

// DefaultDisplacementScale is the starting height multiplier.
const DefaultDisplacementScale = 0.2

// Settings are the user-tweakable parameters of the viewer.
type Settings struct {
	DisplacementScale float32
}

// DefaultSettings returns the startup settings.
func DefaultSettings() Settings {
	return Settings{DisplacementScale: DefaultDisplacementScale}
}

// SetDisplacementScale stores v clamped to [0, 1]. NaN is rejected and the
// old value kept; the return value reports whether v was accepted.
func (s *Settings) SetDisplacementScale(v float32) bool {
	if math32.IsNaN(v) {
		return false
	}
	s.DisplacementScale = max(0, min(v, 1))
	return true
}
