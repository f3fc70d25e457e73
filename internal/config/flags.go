package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagMode       = flag.String("mode", "", "Initial camera mode (free, walk, path, orbit)")
	flagPaths      = flag.String("paths", "", "Camera path file (YAML)")
	flagSeed       = flag.Int64("seed", 0, "Terrain noise seed")
	flagDepth      = flag.Int("depth", -1, "Path subdivision depth")
	flagMute       = flag.Bool("mute", false, "Disable the soundtrack")
	flagSave       = flag.Bool("save-config", false, "Write the effective config to the config directory and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SaveRequested reports whether --save-config was given.
func SaveRequested() bool {
	return *flagSave
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Graphics.ShowFPS = true
		cfg.Flythrough.ShowPath = true
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagMode != "" {
		cfg.Camera.Mode = *flagMode
	}
	if *flagPaths != "" {
		cfg.Flythrough.File = *flagPaths
	}
	if *flagSeed != 0 {
		cfg.Terrain.Seed = *flagSeed
	}
	if *flagDepth >= 0 {
		cfg.Flythrough.Depth = *flagDepth
	}
	if *flagMute {
		cfg.Audio.Enabled = false
	}
}
