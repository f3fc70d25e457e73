// Package app implements the viewer main loop and camera mode switching.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/terrain-flyover/internal/app/states"
	"github.com/Faultbox/terrain-flyover/internal/assets"
	"github.com/Faultbox/terrain-flyover/internal/config"
	"github.com/Faultbox/terrain-flyover/internal/engine/audio"
	"github.com/Faultbox/terrain-flyover/internal/engine/camera"
	"github.com/Faultbox/terrain-flyover/internal/engine/debug"
	"github.com/Faultbox/terrain-flyover/internal/engine/input"
	"github.com/Faultbox/terrain-flyover/internal/engine/lighting"
	"github.com/Faultbox/terrain-flyover/internal/engine/picking"
	"github.com/Faultbox/terrain-flyover/internal/engine/renderer"
	"github.com/Faultbox/terrain-flyover/internal/engine/scene"
	"github.com/Faultbox/terrain-flyover/internal/engine/terrain"
	"github.com/Faultbox/terrain-flyover/internal/engine/water"
	"github.com/Faultbox/terrain-flyover/internal/engine/window"
	"github.com/Faultbox/terrain-flyover/internal/flythrough"
	"github.com/Faultbox/terrain-flyover/internal/logger"
	"github.com/Faultbox/terrain-flyover/pkg/math"
)

// Title is the window title.
const Title = "Terrain Flyover"

// App is the viewer instance.
type App struct {
	config   *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	scene    *scene.Scene
	music    *audio.Soundtrack

	states  *states.Manager
	modes   map[camera.Mode]states.State
	pathCam *camera.PathCamera

	screenshots *debug.ScreenshotCapture
	mirrorShots *debug.ScreenshotCapture
	started     time.Time
	log         *zap.Logger
}

// New creates the window, GL state, terrain and cameras.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		config:      cfg,
		input:       input.New(),
		states:      states.NewManager(),
		screenshots: debug.NewScreenshotCapture("screenshots", "flyover"),
		mirrorShots: debug.NewScreenshotCapture("screenshots", "flyover-mirror"),
		started:     time.Now(),
		log:         logger.Named("app"),
	}

	a.log.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.String("mode", cfg.Camera.Mode),
	)

	var err error
	a.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		Samples:    cfg.Graphics.MSAA,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The drawable can be larger than the window on high-DPI displays.
	width, height := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		ClearColor: cfg.Graphics.ClearColor,
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	am := assets.NewManager(cfg.Terrain.TextureDir)
	defer am.Close()

	start := time.Now()
	hm := terrain.Generate(terrainParams(cfg.Terrain))
	grid := terrain.BuildGrid(cfg.Terrain.GridSize)
	a.log.Info("terrain generated",
		zap.Int("heightmap", hm.Size),
		zap.Int("grid", grid.Dim),
		zap.Duration("took", time.Since(start)),
	)

	a.scene, err = scene.New(scene.Config{
		Width:      int32(width),
		Height:     int32(height),
		ClearColor: cfg.Graphics.ClearColor,
		Water: scene.WaterConfig{
			Enabled:    cfg.Water.Enabled,
			Level:      cfg.Water.Level,
			Color:      cfg.Water.Color,
			Alpha:      cfg.Water.Alpha,
			Reflection: cfg.Water.Reflection,
		},
		SkyDir:   cfg.Skybox.Dir,
		SkyFaces: cfg.Skybox.Faces,
		Sun: lighting.Sun{
			Azimuth:   cfg.Lighting.SunAzimuth,
			Elevation: cfg.Lighting.SunElevation,
		},
		ShowPath: cfg.Flythrough.ShowPath,
	}, hm, grid, am)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}

	if cfg.Audio.Enabled {
		a.startMusic(am)
	}

	if err := a.setupCameras(hm); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) setupCameras(hm *terrain.Heightmap) error {
	cc := a.config.Camera
	startPos := math.V3(cc.Start[0], cc.Start[1], cc.Start[2])

	eye, target, err := loadPaths(a.config.Flythrough)
	if err != nil {
		return err
	}
	a.scene.SetPaths(eye, target)
	a.pathCam = camera.NewPathCamera(eye, target, cc.PathPeriod, startPos, startPos.Add(math.V3(0, 0, -1)))

	fly := camera.NewFlyCamera(startPos, cc.SpeedIncrement, cc.RotationIncrement, cc.Friction)
	lo, hi := hm.MinMax()
	a.modes = map[camera.Mode]states.State{
		camera.ModeFree:  states.NewFreeState(fly, a.input, startPos),
		camera.ModeWalk:  states.NewWalkState(fly, a.input, startPos, hm, cc.WalkOffset),
		camera.ModePath:  states.NewPathState(a.pathCam, a.elapsed),
		camera.ModeOrbit: states.NewOrbitState(camera.NewOrbitCamera(), a.input, math.V3(-1, lo, -1), math.V3(1, hi, 1)),
	}

	mode, err := camera.ParseMode(cc.Mode)
	if err != nil {
		return err
	}
	a.states.Change(a.modes[mode])
	return nil
}

// startMusic loops the configured soundtrack. Audio failures only disable
// the soundtrack.
func (a *App) startMusic(am *assets.Manager) {
	name := a.config.Audio.Music
	data, err := am.Load(name)
	if err != nil {
		a.log.Warn("soundtrack not found", zap.String("file", name), zap.Error(err))
		return
	}
	music := audio.New(a.config.Audio.Volume)
	if err := music.Init(); err != nil {
		a.log.Warn("audio unavailable", zap.Error(err))
		return
	}
	if err := music.Play(name, data); err != nil {
		music.Close()
		a.log.Warn("soundtrack failed", zap.String("file", name), zap.Error(err))
		return
	}
	a.music = music
	a.log.Info("soundtrack playing", zap.String("file", name), zap.Float64("volume", a.config.Audio.Volume))
}

// elapsed returns seconds since the viewer started.
func (a *App) elapsed() float64 {
	return time.Since(a.started).Seconds()
}

// Run starts the main loop. It returns when the window closes, ESC is
// pressed or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	reload := a.watchPaths(ctx)

	a.running = true
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	a.log.Info("starting main loop")

	for a.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		select {
		case <-ctx.Done():
			a.running = false
			continue
		case _, ok := <-reload:
			if ok {
				a.reloadPaths()
			} else {
				reload = nil
			}
		default:
		}

		// 1. Input
		if a.input.Update() {
			a.running = false
			break
		}
		for _, event := range a.input.Events() {
			if err := a.handleEvent(event); err != nil {
				return err
			}
		}
		a.hotkeys()

		// 2. Update
		if err := a.states.Update(dt); err != nil {
			return fmt.Errorf("update error: %w", err)
		}
		a.scene.Update(float32(dt))

		// 3. Render
		a.render()

		// 4. Present
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			if a.config.Graphics.ShowFPS {
				a.window.SetTitle(fmt.Sprintf("%s - %d fps", Title, frameCount))
			}
			a.log.Debug("fps", zap.Int("count", frameCount), zap.Float64("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (a *App) handleEvent(event input.Event) error {
	switch event.Type {
	case input.EventWindowResize:
		w, h := a.window.DrawableSize()
		a.renderer.Resize(w, h)
		a.scene.Resize(int32(w), int32(h))
		return nil
	case input.EventMouseDown:
		if event.Button == sdl.BUTTON_RIGHT {
			a.pick(event.MouseX, event.MouseY)
			return nil
		}
	}
	return a.states.HandleInput(event)
}

// hotkeys handles the keys that went down this frame.
func (a *App) hotkeys() {
	pressed := a.input.IsKeyPressed
	switch {
	case pressed(sdl.SCANCODE_ESCAPE):
		a.running = false
		return
	case pressed(sdl.SCANCODE_F10):
		a.captureMirror()
	case pressed(sdl.SCANCODE_F11):
		on, err := a.window.ToggleFullscreen()
		if err != nil {
			a.log.Warn("fullscreen toggle failed", zap.Error(err))
		} else {
			a.log.Debug("fullscreen", zap.Bool("on", on))
		}
	case pressed(sdl.SCANCODE_F12):
		a.screenshot()
	case pressed(sdl.SCANCODE_P):
		a.scene.ShowPath = !a.scene.ShowPath
	case pressed(sdl.SCANCODE_M):
		if a.music != nil {
			a.log.Info("soundtrack", zap.Bool("playing", a.music.TogglePause()))
		}
	}
	if mode, ok := pressedMode(pressed); ok {
		a.states.Change(a.modes[mode])
	}
}

func (a *App) render() {
	view := a.states.View()
	if view == nil {
		return
	}
	proj := projection(a.config.Graphics, a.renderer.Aspect())
	mirror := water.Mirror(view.Eye(), view.Target(), view.Up(), a.scene.WaterLevel())

	a.renderer.Begin()
	a.scene.Render(camera.ViewMatrix(view), proj, mirror.ViewMatrix())
	a.renderer.End()
}

// pick logs the terrain point under the cursor in tour file form.
func (a *App) pick(x, y int) {
	view := a.states.View()
	if view == nil {
		return
	}
	w, h := a.window.Size()
	hm := a.scene.Heightmap()
	lo, hi := hm.MinMax()

	ray := picking.ScreenToRay(float32(x), float32(y), float32(w), float32(h),
		lens(view, a.config.Graphics, a.renderer.Aspect()))
	p, ok := picking.PickTerrain(ray, hm, math.V3(-1, lo, -1), math.V3(1, hi, 1))
	if !ok {
		a.log.Info("pick missed terrain")
		return
	}
	a.log.Info("picked terrain point", zap.String("pos", fmt.Sprintf("[%.3f, %.3f, %.3f]", p.X, p.Y, p.Z)))
}

func (a *App) screenshot() {
	w, h := a.renderer.Size()
	name, err := a.screenshots.CaptureFromPixels(a.renderer.ReadPixels(), w, h)
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("file", name))
}

// captureMirror saves the last water reflection pass as a PNG.
func (a *App) captureMirror() {
	pixels, w, h, ok := a.scene.MirrorPixels()
	if !ok {
		a.log.Info("no reflection pass to capture")
		return
	}
	name, err := a.mirrorShots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		a.log.Warn("mirror capture failed", zap.Error(err))
		return
	}
	a.log.Info("mirror capture saved", zap.String("file", name))
}

// watchPaths starts the path file watcher when enabled. The returned
// channel is nil when there is nothing to watch.
func (a *App) watchPaths(ctx context.Context) <-chan struct{} {
	fc := a.config.Flythrough
	if !fc.Watch || fc.File == "" {
		return nil
	}
	ch, err := flythrough.NewWatcher().Watch(ctx, fc.File)
	if err != nil {
		a.log.Warn("path file watch disabled", zap.String("file", fc.File), zap.Error(err))
		return nil
	}
	a.log.Info("watching path file", zap.String("file", fc.File))
	return ch
}

// reloadPaths rebuilds the paths from disk. On error the current paths stay.
func (a *App) reloadPaths() {
	eye, target, err := loadPaths(a.config.Flythrough)
	if err != nil {
		a.log.Warn("path reload failed, keeping previous paths", zap.Error(err))
		return
	}
	a.pathCam.SetPaths(eye, target)
	a.scene.SetPaths(eye, target)
}

// Close releases all resources.
func (a *App) Close() {
	a.log.Info("closing viewer")

	if a.music != nil {
		a.music.Close()
	}
	if a.scene != nil {
		a.scene.Destroy()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
