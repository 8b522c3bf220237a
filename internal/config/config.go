// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Window     WindowConfig     `yaml:"window" toml:"window"`
	Scene      SceneConfig      `yaml:"scene" toml:"scene"`
	Camera     CameraConfig     `yaml:"camera" toml:"camera"`
	Controls   ControlsConfig   `yaml:"controls" toml:"controls"`
	Screenshot ScreenshotConfig `yaml:"screenshot" toml:"screenshot"`
	Logging    LoggingConfig    `yaml:"logging" toml:"logging"`

	// path is the file Load read, if any. Save writes back to it.
	path string
}

// Path returns the file the config was loaded from, or "" if none was.
func (c *Config) Path() string {
	return c.path
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title" toml:"title"`
	Width      int    `yaml:"width" toml:"width"`
	Height     int    `yaml:"height" toml:"height"`
	Fullscreen bool   `yaml:"fullscreen" toml:"fullscreen"`
	VSync      bool   `yaml:"vsync" toml:"vsync"`
	FPSLimit   int    `yaml:"fps_limit" toml:"fps_limit"`
}

// SceneConfig describes the displaced plane.
type SceneConfig struct {
	Texture           string  `yaml:"texture" toml:"texture"`                       // Albedo and displacement source
	DisplacementScale float32 `yaml:"displacement_scale" toml:"displacement_scale"` // Initial panel value, [0, 1]
	Segments          int     `yaml:"segments" toml:"segments"`                     // Plane subdivisions per side
	PlaneSize         float32 `yaml:"plane_size" toml:"plane_size"`                 // Plane edge length in world units
	WatchTexture      bool    `yaml:"watch_texture" toml:"watch_texture"`           // Reload the texture when the file changes
}

// CameraConfig holds the initial perspective camera.
type CameraConfig struct {
	FOV      float32    `yaml:"fov" toml:"fov"` // Vertical field of view, degrees
	Near     float32    `yaml:"near" toml:"near"`
	Far      float32    `yaml:"far" toml:"far"`
	Position [3]float32 `yaml:"position" toml:"position"`
}

// ControlsConfig holds orbit control sensitivities.
type ControlsConfig struct {
	RotateSpeed float32 `yaml:"rotate_speed" toml:"rotate_speed"`
	ZoomSpeed   float32 `yaml:"zoom_speed" toml:"zoom_speed"`
	PanSpeed    float32 `yaml:"pan_speed" toml:"pan_speed"`
}

// ScreenshotConfig holds screenshot output settings.
type ScreenshotConfig struct {
	Dir string `yaml:"dir" toml:"dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "phaseview",
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
		},
		Scene: SceneConfig{
			Texture:           "unwrapped_phase.png",
			DisplacementScale: 0.2,
			Segments:          300,
			PlaneSize:         1,
		},
		Camera: CameraConfig{
			FOV:      45,
			Near:     0.001,
			Far:      10000,
			Position: [3]float32{0, 2, 2},
		},
		Controls: ControlsConfig{
			RotateSpeed: 1,
			ZoomSpeed:   1,
			PanSpeed:    1,
		},
		Screenshot: ScreenshotConfig{
			Dir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate pulls out-of-range values back into their domain.
func (c *Config) Validate() {
	if c.Scene.DisplacementScale < 0 {
		c.Scene.DisplacementScale = 0
	}
	if c.Scene.DisplacementScale > 1 {
		c.Scene.DisplacementScale = 1
	}
	if c.Scene.Segments < 1 {
		c.Scene.Segments = 1
	}
	if c.Scene.PlaneSize <= 0 {
		c.Scene.PlaneSize = 1
	}
	if c.Window.Width <= 0 {
		c.Window.Width = 1280
	}
	if c.Window.Height <= 0 {
		c.Window.Height = 720
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		c.Camera.FOV = 45
	}
	if c.Camera.Near <= 0 {
		c.Camera.Near = 0.001
	}
	if c.Camera.Far <= c.Camera.Near {
		c.Camera.Far = c.Camera.Near * 1e7
	}
}
