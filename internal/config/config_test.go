package config

import (
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 || cfg.Graphics.Height != 720 {
		t.Errorf("expected 1280x720, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if cfg.Graphics.FOVDeg != 45 || cfg.Graphics.Near != 0.1 || cfg.Graphics.Far != 50 {
		t.Errorf("unexpected projection defaults: %+v", cfg.Graphics)
	}

	if cfg.Terrain.HeightmapSize != 1024 {
		t.Errorf("expected heightmap size 1024, got %d", cfg.Terrain.HeightmapSize)
	}
	if cfg.Terrain.Frequency != 0.9 || cfg.Terrain.Lacunarity != 2.7 || cfg.Terrain.Octaves != 8 {
		t.Errorf("unexpected noise defaults: %+v", cfg.Terrain)
	}

	if cfg.Camera.Mode != "free" {
		t.Errorf("expected camera mode 'free', got %s", cfg.Camera.Mode)
	}
	if cfg.Camera.Friction != 0.2 {
		t.Errorf("expected friction 0.2, got %v", cfg.Camera.Friction)
	}
	if got, want := cfg.Camera.RotationIncrement, float32(math.Pi/512); got != want {
		t.Errorf("expected rotation increment %v, got %v", want, got)
	}
	if cfg.Camera.Start != [3]float32{0, 0.2, 3} {
		t.Errorf("unexpected start position %v", cfg.Camera.Start)
	}

	if cfg.Flythrough.Depth != 5 {
		t.Errorf("expected depth 5, got %d", cfg.Flythrough.Depth)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  clear_color: [0.5, 0.6, 0.7]

terrain:
  seed: 42
  octaves: 6

skybox:
  dir: sky
  faces: [px.bmp, nx.bmp, py.bmp, ny.bmp, pz.bmp, nz.bmp]

camera:
  mode: path
  path_period: 10

flythrough:
  file: tour.yaml
  depth: 3
  watch: true

logging:
  level: "debug"
  log_file: "flyover.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.ClearColor != [3]float32{0.5, 0.6, 0.7} {
		t.Errorf("unexpected clear color %v", cfg.Graphics.ClearColor)
	}
	// Unset fields keep their defaults.
	if cfg.Graphics.FOVDeg != 45 {
		t.Errorf("expected default fov 45, got %v", cfg.Graphics.FOVDeg)
	}

	if cfg.Terrain.Seed != 42 || cfg.Terrain.Octaves != 6 {
		t.Errorf("unexpected terrain %+v", cfg.Terrain)
	}
	if cfg.Terrain.Lacunarity != 2.7 {
		t.Errorf("expected default lacunarity, got %v", cfg.Terrain.Lacunarity)
	}
	if cfg.Skybox.Faces[5] != "nz.bmp" {
		t.Errorf("unexpected skybox faces %v", cfg.Skybox.Faces)
	}
	if cfg.Camera.Mode != "path" || cfg.Camera.PathPeriod != 10 {
		t.Errorf("unexpected camera %+v", cfg.Camera)
	}
	if cfg.Flythrough.File != "tour.yaml" || cfg.Flythrough.Depth != 3 || !cfg.Flythrough.Watch {
		t.Errorf("unexpected flythrough %+v", cfg.Flythrough)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "flyover.log" {
		t.Errorf("unexpected logging %+v", cfg.Logging)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero width", func(c *Config) { c.Graphics.Width = 0 }, "invalid size"},
		{"fov", func(c *Config) { c.Graphics.FOVDeg = 180 }, "fov_deg"},
		{"msaa", func(c *Config) { c.Graphics.MSAA = -1 }, "msaa"},
		{"near far", func(c *Config) { c.Graphics.Far = 0.05 }, "near < far"},
		{"grid", func(c *Config) { c.Terrain.GridSize = 1 }, "grid_size"},
		{"octaves", func(c *Config) { c.Terrain.Octaves = 0 }, "octaves"},
		{"sun", func(c *Config) { c.Lighting.SunElevation = 95 }, "sun_elevation"},
		{"mode", func(c *Config) { c.Camera.Mode = "fps" }, `unknown mode "fps"`},
		{"period", func(c *Config) { c.Camera.PathPeriod = 0 }, "path_period"},
		{"depth", func(c *Config) { c.Flythrough.Depth = -1 }, "depth"},
		{"depth too deep", func(c *Config) { c.Flythrough.Depth = 60 }, "depth 60 out of range"},
		{"volume", func(c *Config) { c.Audio.Volume = 1.5 }, "volume"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
				if !cfg.Graphics.ShowFPS || !cfg.Flythrough.ShowPath {
					t.Error("expected fps and path overlay with debug flag")
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name: "mode paths and seed",
			setup: func() {
				*flagMode = "orbit"
				*flagPaths = "tour.yaml"
				*flagSeed = 7
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Camera.Mode != "orbit" || cfg.Flythrough.File != "tour.yaml" || cfg.Terrain.Seed != 7 {
					t.Errorf("flags not applied: mode=%s file=%s seed=%d",
						cfg.Camera.Mode, cfg.Flythrough.File, cfg.Terrain.Seed)
				}
			},
			teardown: func() {
				*flagMode = ""
				*flagPaths = ""
				*flagSeed = 0
			},
		},
		{
			name:  "depth zero is an override",
			setup: func() { *flagDepth = 0 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Flythrough.Depth != 0 {
					t.Errorf("expected depth 0, got %d", cfg.Flythrough.Depth)
				}
			},
			teardown: func() { *flagDepth = -1 },
		},
		{
			name: "mute flag",
			setup: func() {
				*flagMute = true
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Audio.Enabled {
					t.Error("expected audio disabled with mute flag")
				}
			},
			teardown: func() { *flagMute = false },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width from flag, height from file.
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("camera:\n  mode: sideways\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Fatal("expected Load to reject unknown camera mode")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Camera.Mode = "walk"
	cfg.Skybox.Faces[0] = "east.bmp"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loading saved config: %v", err)
	}
	if loaded.Camera.Mode != "walk" || loaded.Skybox.Faces[0] != "east.bmp" {
		t.Errorf("saved values not restored: mode=%s face=%s", loaded.Camera.Mode, loaded.Skybox.Faces[0])
	}
}

func TestSaveToConfigDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("config dir follows XDG_CONFIG_HOME on Linux only")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := Default()
	cfg.Terrain.Seed = 99
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, filepath.Join(ConfigDir(), "config.yaml")); err != nil {
		t.Fatalf("loading saved config: %v", err)
	}
	if loaded.Terrain.Seed != 99 {
		t.Errorf("expected seed 99, got %d", loaded.Terrain.Seed)
	}
}

func TestSaveRequestedFlag(t *testing.T) {
	if SaveRequested() {
		t.Fatal("save-config should default to off")
	}
	*flagSave = true
	defer func() { *flagSave = false }()
	if !SaveRequested() {
		t.Error("expected SaveRequested after setting the flag")
	}
}
