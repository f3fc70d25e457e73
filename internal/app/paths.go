package app

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/terrain-flyover/internal/config"
	"github.com/Faultbox/terrain-flyover/internal/engine/camera"
	"github.com/Faultbox/terrain-flyover/internal/engine/picking"
	"github.com/Faultbox/terrain-flyover/internal/engine/terrain"
	"github.com/Faultbox/terrain-flyover/internal/flythrough"
	"github.com/Faultbox/terrain-flyover/internal/logger"
	"github.com/Faultbox/terrain-flyover/pkg/bezier"
	"github.com/Faultbox/terrain-flyover/pkg/math"
)

// modeKeys maps the number row to camera modes.
var modeKeys = map[sdl.Scancode]camera.Mode{
	sdl.SCANCODE_0: camera.ModeFree,
	sdl.SCANCODE_1: camera.ModeWalk,
	sdl.SCANCODE_2: camera.ModePath,
	sdl.SCANCODE_3: camera.ModeOrbit,
}

// modeForKey returns the camera mode selected by a key.
func modeForKey(sc sdl.Scancode) (camera.Mode, bool) {
	m, ok := modeKeys[sc]
	return m, ok
}

// pressedMode returns the camera mode whose key went down this frame.
func pressedMode(pressed func(sdl.Scancode) bool) (camera.Mode, bool) {
	for sc, m := range modeKeys {
		if pressed(sc) {
			return m, true
		}
	}
	return 0, false
}

// terrainParams converts the terrain config section to generator params.
func terrainParams(tc config.TerrainConfig) terrain.Params {
	return terrain.Params{
		Size:       tc.HeightmapSize,
		Seed:       tc.Seed,
		Frequency:  tc.Frequency,
		Gain:       tc.Gain,
		Lacunarity: tc.Lacunarity,
		Octaves:    tc.Octaves,
		Scale:      tc.HeightScale,
	}
}

// projection builds the perspective matrix for the graphics config.
func projection(gc config.GraphicsConfig, aspect float32) math.Mat4 {
	return math.Perspective(gc.FOVDeg*math32.Pi/180, aspect, gc.Near, gc.Far)
}

// lens describes the current camera for picking.
func lens(v camera.View, gc config.GraphicsConfig, aspect float32) picking.Lens {
	return picking.Lens{
		Eye:    v.Eye(),
		Target: v.Target(),
		Up:     v.Up(),
		FOVY:   gc.FOVDeg * math32.Pi / 180,
		Aspect: aspect,
	}
}

// loadPaths builds the eye and target paths from the configured file, or
// from the built-in tour when no file is set.
func loadPaths(fc config.FlythroughConfig) (eye, target *bezier.Path, err error) {
	spec := flythrough.Default()
	if fc.File != "" {
		if spec, err = flythrough.Load(fc.File); err != nil {
			return nil, nil, err
		}
	}
	eye, target, err = spec.Build(fc.Depth)
	if err != nil {
		return nil, nil, fmt.Errorf("building paths: %w", err)
	}
	logger.Info("camera paths loaded",
		zap.String("file", fc.File),
		zap.Int("eye_segments", eye.Len()),
		zap.Int("target_segments", target.Len()),
		zap.Float32("eye_length", eye.Length()),
	)
	return eye, target, nil
}
