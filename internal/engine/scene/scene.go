package scene

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/terrain-flyover/internal/assets"
	"github.com/Faultbox/terrain-flyover/internal/engine/framebuffer"
	"github.com/Faultbox/terrain-flyover/internal/engine/lighting"
	"github.com/Faultbox/terrain-flyover/internal/engine/skybox"
	"github.com/Faultbox/terrain-flyover/internal/engine/terrain"
	"github.com/Faultbox/terrain-flyover/internal/engine/water"
	"github.com/Faultbox/terrain-flyover/internal/logger"
	"github.com/Faultbox/terrain-flyover/pkg/bezier"
	"github.com/Faultbox/terrain-flyover/pkg/math"
)

// WaterConfig describes the water plane.
type WaterConfig struct {
	Enabled    bool
	Level      float32
	Color      [3]float32
	Alpha      float32
	Reflection bool
}

// Config contains scene configuration options.
type Config struct {
	Width      int32
	Height     int32
	ClearColor [3]float32
	Water      WaterConfig
	SkyDir     string
	SkyFaces   [6]string
	Sun        lighting.Sun
	ShowPath   bool
}

// Scene owns every renderer and the mirror framebuffer.
type Scene struct {
	config Config

	mirror *framebuffer.Framebuffer

	sky     *skybox.Skybox
	terrain *TerrainRenderer
	water   *WaterRenderer
	paths   *PathRenderer

	heightmap *terrain.Heightmap

	// ShowPath toggles the camera path overlay.
	ShowPath bool
}

// New creates the scene. The heightmap and grid are uploaded immediately;
// biome textures are resolved through am.
func New(cfg Config, hm *terrain.Heightmap, grid *terrain.Grid, am *assets.Manager) (*Scene, error) {
	s := &Scene{config: cfg, heightmap: hm, ShowPath: cfg.ShowPath}

	var err error
	if s.sky, err = skybox.New(cfg.SkyDir, cfg.SkyFaces); err != nil {
		return nil, fmt.Errorf("creating skybox: %w", err)
	}

	if s.terrain, err = NewTerrainRenderer(); err != nil {
		s.Destroy()
		return nil, fmt.Errorf("creating terrain renderer: %w", err)
	}
	s.terrain.SnowLine = snowLine(hm)
	s.terrain.LightDir = cfg.Sun.LightDir()
	if err := s.terrain.LoadTerrain(hm, grid, am); err != nil {
		s.Destroy()
		return nil, err
	}

	if s.paths, err = NewPathRenderer(); err != nil {
		s.Destroy()
		return nil, fmt.Errorf("creating path renderer: %w", err)
	}

	if cfg.Water.Enabled {
		if s.water, err = NewWaterRenderer(); err != nil {
			s.Destroy()
			return nil, fmt.Errorf("creating water renderer: %w", err)
		}
		plane := water.BuildPlaneWithPadding(-1, 1, -1, 1, cfg.Water.Level, water.DefaultPadding)
		s.water.SetupWater(plane, cfg.Water.Color, cfg.Water.Alpha)

		if cfg.Water.Reflection {
			if s.mirror, err = framebuffer.New(cfg.Width, cfg.Height); err != nil {
				s.Destroy()
				return nil, fmt.Errorf("creating mirror framebuffer: %w", err)
			}
		}
	}

	lo, hi := hm.MinMax()
	logger.Info("scene ready",
		zap.Int("heightmap", hm.Size),
		zap.Float32("min_height", lo),
		zap.Float32("max_height", hi),
		zap.Bool("water", cfg.Water.Enabled),
		zap.Bool("reflection", s.mirror != nil),
	)
	return s, nil
}

// snowLine puts snow on the top fifth of the relief.
func snowLine(hm *terrain.Heightmap) float32 {
	lo, hi := hm.MinMax()
	return hi - (hi-lo)*0.2
}

// SetPaths updates the path overlay.
func (s *Scene) SetPaths(eye, target *bezier.Path) {
	s.paths.SetPaths(eye, target)
}

// Heightmap returns the terrain heightmap for snapping cameras.
func (s *Scene) Heightmap() *terrain.Heightmap {
	return s.heightmap
}

// WaterLevel returns the water height, or 0 without water.
func (s *Scene) WaterLevel() float32 {
	return s.config.Water.Level
}

// Update advances time-based effects.
func (s *Scene) Update(dt float32) {
	if s.water != nil {
		s.water.Update(dt)
	}
}

// Render draws one frame into the currently bound framebuffer. mirrorView
// is the view of the camera reflected across the water plane.
func (s *Scene) Render(view, proj, mirrorView math.Mat4) {
	level := s.config.Water.Level

	var reflection uint32
	if s.mirror != nil {
		restore := s.mirror.Begin(s.config.ClearColor)
		s.sky.Draw(mirrorView, proj)
		s.terrain.Render(proj.Mul(mirrorView), level, true)
		restore()
		reflection = s.mirror.ColorTexture()
	}

	viewProj := proj.Mul(view)
	s.sky.Draw(view, proj)
	s.terrain.Render(viewProj, level, false)
	if s.water != nil {
		s.water.Render(viewProj, reflection)
	}
	if s.ShowPath {
		s.paths.Render(viewProj)
	}
}

// MirrorPixels reads back the reflection pass as RGBA, bottom row first.
// ok is false when water reflection is disabled.
func (s *Scene) MirrorPixels() (pixels []byte, width, height int, ok bool) {
	if s.mirror == nil {
		return nil, 0, 0, false
	}
	w, h := s.mirror.Size()
	return s.mirror.ReadPixels(), int(w), int(h), true
}

// Resize updates the mirror target to the new viewport size.
func (s *Scene) Resize(width, height int32) {
	s.config.Width = width
	s.config.Height = height
	if s.mirror != nil {
		s.mirror.Resize(width, height)
	}
}

// Destroy releases all resources.
func (s *Scene) Destroy() {
	if s.paths != nil {
		s.paths.Destroy()
		s.paths = nil
	}
	if s.water != nil {
		s.water.Destroy()
		s.water = nil
	}
	if s.terrain != nil {
		s.terrain.Destroy()
		s.terrain = nil
	}
	if s.sky != nil {
		s.sky.Destroy()
		s.sky = nil
	}
	if s.mirror != nil {
		s.mirror.Destroy()
		s.mirror = nil
	}
}
