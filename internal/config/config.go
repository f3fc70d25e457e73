// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/Faultbox/terrain-flyover/pkg/bezier"
)

// Config holds all viewer settings.
type Config struct {
	Graphics   GraphicsConfig   `yaml:"graphics"`
	Terrain    TerrainConfig    `yaml:"terrain"`
	Water      WaterConfig      `yaml:"water"`
	Skybox     SkyboxConfig     `yaml:"skybox"`
	Lighting   LightingConfig   `yaml:"lighting"`
	Camera     CameraConfig     `yaml:"camera"`
	Flythrough FlythroughConfig `yaml:"flythrough"`
	Audio      AudioConfig      `yaml:"audio"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// GraphicsConfig holds display and projection settings.
type GraphicsConfig struct {
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	Fullscreen bool       `yaml:"fullscreen"`
	VSync      bool       `yaml:"vsync"`
	MSAA       int        `yaml:"msaa"` // samples, 0 disables
	FOVDeg     float32    `yaml:"fov_deg"`
	Near       float32    `yaml:"near"`
	Far        float32    `yaml:"far"`
	ClearColor [3]float32 `yaml:"clear_color,flow"`
	ShowFPS    bool       `yaml:"show_fps"`
}

// TerrainConfig holds heightmap generation and mesh settings.
type TerrainConfig struct {
	GridSize      int     `yaml:"grid_size"`      // vertices per side of the render mesh
	HeightmapSize int     `yaml:"heightmap_size"` // texels per side of the heightmap
	Seed          int64   `yaml:"seed"`
	Frequency     float64 `yaml:"frequency"`
	Gain          float64 `yaml:"gain"`
	Lacunarity    float64 `yaml:"lacunarity"`
	Octaves       int32   `yaml:"octaves"`
	HeightScale   float32 `yaml:"height_scale"`
	TextureDir    string  `yaml:"texture_dir"`
}

// WaterConfig holds water plane settings.
type WaterConfig struct {
	Enabled    bool       `yaml:"enabled"`
	Level      float32    `yaml:"level"`
	Color      [3]float32 `yaml:"color,flow"`
	Alpha      float32    `yaml:"alpha"`
	Reflection bool       `yaml:"reflection"`
}

// SkyboxConfig names the six cube map faces in +X -X +Y -Y +Z -Z order.
// A missing face falls back to a gradient sky.
type SkyboxConfig struct {
	Dir   string    `yaml:"dir"`
	Faces [6]string `yaml:"faces,flow"`
}

// LightingConfig places the sun. Angles are in degrees.
type LightingConfig struct {
	SunAzimuth   float32 `yaml:"sun_azimuth"`
	SunElevation float32 `yaml:"sun_elevation"`
}

// CameraConfig holds camera mode and motion settings.
type CameraConfig struct {
	Mode              string     `yaml:"mode"` // free, walk, path or orbit
	SpeedIncrement    float32    `yaml:"speed_increment"`
	RotationIncrement float32    `yaml:"rotation_increment"`
	Friction          float32    `yaml:"friction"`
	Start             [3]float32 `yaml:"start,flow"`
	PathPeriod        float32    `yaml:"path_period"` // seconds
	WalkOffset        float32    `yaml:"walk_offset"`
}

// FlythroughConfig holds camera path settings.
type FlythroughConfig struct {
	File     string `yaml:"file"` // YAML path file; empty uses the built-in tour
	Depth    int    `yaml:"depth"`
	Watch    bool   `yaml:"watch"`
	ShowPath bool   `yaml:"show_path"`
}

// AudioConfig holds soundtrack settings.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Music   string  `yaml:"music"` // WAV file resolved like textures
	Volume  float64 `yaml:"volume"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Modes lists the accepted camera.mode values.
var Modes = []string{"free", "walk", "path", "orbit"}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			VSync:      true,
			MSAA:       4,
			FOVDeg:     45,
			Near:       0.1,
			Far:        50,
			ClearColor: [3]float32{1, 1, 1},
		},
		Terrain: TerrainConfig{
			GridSize:      1024,
			HeightmapSize: 1024,
			Seed:          1,
			Frequency:     0.9,
			Gain:          1.0,
			Lacunarity:    2.7,
			Octaves:       8,
			HeightScale:   1,
			TextureDir:    "textures",
		},
		Water: WaterConfig{
			Enabled:    true,
			Color:      [3]float32{0.2, 0.4, 0.6},
			Alpha:      0.6,
			Reflection: true,
		},
		Skybox: SkyboxConfig{
			Dir:   "textures/skybox",
			Faces: [6]string{"right.bmp", "left.bmp", "top.bmp", "bottom.bmp", "front.bmp", "back.bmp"},
		},
		Lighting: LightingConfig{
			SunAzimuth:   53,
			SunElevation: 63,
		},
		Camera: CameraConfig{
			Mode:              "free",
			SpeedIncrement:    0.01,
			RotationIncrement: math.Pi / 512,
			Friction:          0.2,
			Start:             [3]float32{0, 0.2, 3},
			PathPeriod:        7.5,
			WalkOffset:        0.2,
		},
		Flythrough: FlythroughConfig{
			Depth: 5,
		},
		Audio: AudioConfig{
			Music:  "soundtrack.wav",
			Volume: 0.7,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports settings the viewer cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics: invalid size %dx%d", c.Graphics.Width, c.Graphics.Height))
	}
	if c.Graphics.MSAA < 0 {
		errs = append(errs, fmt.Errorf("graphics: msaa %d must not be negative", c.Graphics.MSAA))
	}
	if c.Graphics.FOVDeg <= 0 || c.Graphics.FOVDeg >= 180 {
		errs = append(errs, fmt.Errorf("graphics: fov_deg %v out of range (0, 180)", c.Graphics.FOVDeg))
	}
	if c.Graphics.Near <= 0 || c.Graphics.Far <= c.Graphics.Near {
		errs = append(errs, fmt.Errorf("graphics: need 0 < near < far, got near=%v far=%v", c.Graphics.Near, c.Graphics.Far))
	}
	if c.Terrain.GridSize < 2 {
		errs = append(errs, fmt.Errorf("terrain: grid_size %d must be at least 2", c.Terrain.GridSize))
	}
	if c.Terrain.HeightmapSize < 1 {
		errs = append(errs, fmt.Errorf("terrain: heightmap_size %d must be positive", c.Terrain.HeightmapSize))
	}
	if c.Terrain.Octaves < 1 {
		errs = append(errs, fmt.Errorf("terrain: octaves %d must be positive", c.Terrain.Octaves))
	}
	if c.Lighting.SunElevation < 0 || c.Lighting.SunElevation > 90 {
		errs = append(errs, fmt.Errorf("lighting: sun_elevation %v out of range [0, 90]", c.Lighting.SunElevation))
	}
	if !slices.Contains(Modes, c.Camera.Mode) {
		errs = append(errs, fmt.Errorf("camera: unknown mode %q", c.Camera.Mode))
	}
	if c.Camera.PathPeriod <= 0 {
		errs = append(errs, fmt.Errorf("camera: path_period %v must be positive", c.Camera.PathPeriod))
	}
	if c.Flythrough.Depth < 0 || c.Flythrough.Depth > bezier.MaxDepth {
		errs = append(errs, fmt.Errorf("flythrough: depth %d out of range [0, %d]", c.Flythrough.Depth, bezier.MaxDepth))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio: volume %v out of range [0, 1]", c.Audio.Volume))
	}
	return errors.Join(errs...)
}
