package lighting

import "testing"

func TestRadiance(t *testing.T) {
	tests := []struct {
		name  string
		light *Ambient
		want  [3]float32
	}{
		{"white full", White(1), [3]float32{1, 1, 1}},
		{"white half", White(0.5), [3]float32{0.5, 0.5, 0.5}},
		{"tinted", NewAmbient([3]float32{1, 0.5, 0}, 2), [3]float32{2, 1, 0}},
		{"off", White(0), [3]float32{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.light.Radiance(); got != tt.want {
				t.Errorf("Radiance() = %v, want %v", got, tt.want)
			}
		})
	}
}
