package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagTexture    = flag.String("texture", "", "Image used as albedo and displacement map")
	flagScale      = flag.Float64("scale", -1, "Initial displacement scale (0-1)")
	flagSegments   = flag.Int("segments", 0, "Plane subdivisions per side")
	flagWatch      = flag.Bool("watch", false, "Reload the texture when the file changes")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagTexture != "" {
		cfg.Scene.Texture = *flagTexture
	}
	if *flagScale >= 0 {
		cfg.Scene.DisplacementScale = float32(*flagScale)
	}
	if *flagSegments > 0 {
		cfg.Scene.Segments = *flagSegments
	}
	if *flagWatch {
		cfg.Scene.WatchTexture = true
	}
	if *flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
}
