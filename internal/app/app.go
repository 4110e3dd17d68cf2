// Package app owns the window, the GL context and the frame loop.
package app

import (
	"fmt"
	"runtime"
	"time"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/cowsed/Random/SolarSystem/internal/camera"
	"github.com/cowsed/Random/SolarSystem/internal/config"
	"github.com/cowsed/Random/SolarSystem/internal/frame"
	"github.com/cowsed/Random/SolarSystem/internal/hud"
	"github.com/cowsed/Random/SolarSystem/internal/render"
	"github.com/cowsed/Random/SolarSystem/internal/scene"
)

const (
	hudRefresh    = 250 * time.Millisecond
	watchDebounce = 150 * time.Millisecond
)

func init() {
	// SDL and GL calls must stay on the main thread.
	runtime.LockOSThread()
}

// App is one viewer session.
type App struct {
	cfg config.Config
	log *zap.Logger

	window   *sdl.Window
	glctx    sdl.GLContext
	renderer *render.Renderer
	textures *render.TextureCache
	overlay  *render.Overlay
	text     *Text

	system  *scene.System
	watcher *scene.Watcher
	cam     *camera.Camera
	clock   *scene.Clock
	opts    frame.Options
	panel   *hud.Panel

	keyMap  map[sdl.Keycode]bool
	running bool
	hudAt   time.Time
}

func New(cfg config.Config, log *zap.Logger) *App {
	c := camera.New(mgl32.Vec3(cfg.Camera.Position))
	c.FOV = cfg.Camera.FOV
	c.Speed = cfg.Camera.Speed
	c.BoostSpeed = cfg.Camera.BoostSpeed
	c.Sensitivity = cfg.Camera.Sensitivity
	c.Near, c.Far = cfg.Camera.Near, cfg.Camera.Far

	clock := scene.NewClock(cfg.Simulation.TimeScale)
	clock.Paused = cfg.Simulation.Paused

	a := &App{
		cfg:   cfg,
		log:   log,
		cam:   c,
		clock: clock,
		opts: frame.Options{
			Orbits:     cfg.Render.Orbits,
			MoonOrbits: cfg.Render.MoonOrbits,
			OrbitColor: mgl32.Vec3(cfg.Render.OrbitColor),
			OrbitGlow:  cfg.Render.OrbitGlow,
		},
		keyMap: map[sdl.Keycode]bool{},
	}
	a.panel = &hud.Panel{
		Visible: cfg.HUD.Enabled,
		Items: []hud.Item{
			&hud.BoolEdit{Name: "Paused", Value: &a.clock.Paused},
			&hud.FloatEdit[float64]{Name: "Time Scale", Value: &a.clock.Scale, Step: 0.25, Min: 0, Max: 50},
			&hud.BoolEdit{Name: "Orbits", Value: &a.opts.Orbits},
			&hud.BoolEdit{Name: "Moon Orbits", Value: &a.opts.MoonOrbits},
			&hud.FloatEdit[float32]{Name: "FOV", Value: &a.cam.FOV, Step: 1, Min: camera.MinFOV, Max: camera.MaxFOV},
			&hud.FloatEdit[float32]{Name: "Speed", Value: &a.cam.Speed, Step: 0.5, Min: 0, Max: 100},
			&hud.IntEdit{Name: "HUD.x", Value: &a.cfg.HUD.X},
			&hud.IntEdit{Name: "HUD.y", Value: &a.cfg.HUD.Y},
		},
	}
	return a
}

// LoadCatalog reads the catalog file, or the built-in one when path is empty.
func LoadCatalog(path string) (*scene.Catalog, error) {
	if path == "" {
		return scene.DefaultCatalog()
	}
	return scene.LoadCatalog(path)
}

// Run opens the window and blocks until the user quits.
func (a *App) Run() error {
	catalog, err := LoadCatalog(a.cfg.Simulation.System)
	if err != nil {
		return err
	}
	if a.system, err = catalog.Build(); err != nil {
		return err
	}
	a.log.Info("system loaded", zap.String("name", a.system.Name), zap.Int("bodies", a.system.Count()))

	if err := a.open(); err != nil {
		a.close()
		return err
	}
	defer a.close()

	a.textures.Resolve(a.system)
	a.loop()
	return nil
}

func (a *App) open() error {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("init sdl: %w", err)
	}
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 3)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 3)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)

	w := a.cfg.Window
	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if w.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}
	var err error
	a.window, err = sdl.CreateWindow(w.Title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(w.Width), int32(w.Height), flags)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	if a.glctx, err = a.window.GLCreateContext(); err != nil {
		return fmt.Errorf("create gl context: %w", err)
	}
	if err := gl.Init(); err != nil {
		return fmt.Errorf("init gl: %w", err)
	}
	interval := 0
	if w.VSync {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		a.log.Warn("swap interval not supported", zap.Error(err))
	}

	r := a.cfg.Render
	a.renderer, err = render.New(render.Options{
		SphereSectors: r.SphereSectors,
		SphereStacks:  r.SphereStacks,
		OrbitSegments: r.OrbitSegments,
		Ambient:       r.Ambient,
		LightColor:    mgl32.Vec3{1, 1, 1},
		Stars:         r.Stars,
		StarSeed:      r.StarSeed,
	}, a.log)
	if err != nil {
		return err
	}
	a.renderer.Resize(a.window.GLGetDrawableSize())
	a.textures = render.NewTextureCache(a.cfg.Assets.Dir, a.cfg.Assets.MaxTextureSize, a.cfg.Assets.ProceduralFallback, a.log)

	if a.cfg.HUD.Enabled {
		a.openHUD()
	}
	if a.cfg.Simulation.System != "" && a.cfg.Simulation.Watch {
		if a.watcher, err = scene.Watch(a.cfg.Simulation.System, watchDebounce, a.log); err != nil {
			a.log.Warn("catalog hot reload disabled", zap.Error(err))
		}
	}

	sdl.SetRelativeMouseMode(true)
	return nil
}

// hudReady opens the overlay on first use, so Tab works even when the HUD
// starts disabled.
func (a *App) hudReady() bool {
	if a.text == nil {
		a.openHUD()
	}
	return a.text != nil
}

// openHUD sets up the text overlay. Without a font the viewer runs
// without it.
func (a *App) openHUD() {
	text, err := OpenText(a.cfg.HUD.Font, a.cfg.HUD.FontSize, a.cfg.HUD.Width)
	if err != nil {
		a.log.Warn("hud disabled", zap.Error(err))
		a.panel.Visible = false
		return
	}
	overlay, err := render.NewOverlay()
	if err != nil {
		text.Close()
		a.log.Warn("hud disabled", zap.Error(err))
		a.panel.Visible = false
		return
	}
	a.text, a.overlay = text, overlay
}

func (a *App) close() {
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			a.log.Warn("close watcher", zap.Error(err))
		}
	}
	if a.text != nil {
		a.text.Close()
	}
	if a.overlay != nil {
		a.overlay.Delete()
	}
	if a.textures != nil {
		a.textures.Release()
	}
	if a.renderer != nil {
		a.renderer.Delete()
	}
	if a.glctx != nil {
		sdl.GLDeleteContext(a.glctx)
	}
	if a.window != nil {
		a.window.Destroy()
	}
	sdl.Quit()
}

func now() float64 {
	return float64(sdl.GetPerformanceCounter()) / float64(sdl.GetPerformanceFrequency())
}

func (a *App) loop() {
	a.running = true
	for a.running {
		a.pollEvents()

		wall, sim := a.clock.Tick(now())
		a.handleKeys(wall)
		a.reload()
		a.system.Update(sim)

		f := frame.Build(a.system, a.opts)
		a.renderer.Draw(f, a.cam.View(), a.cam.Projection(a.renderer.Aspect()))
		a.drawHUD(wall)

		a.window.GLSwap()

		if wall > 1.0/20 {
			a.log.Debug("long frame", zap.Float32("seconds", wall))
		}
	}
	a.log.Info("quit",
		zap.Int("frames", a.clock.Frames()),
		zap.Float64("avgFrameMs", a.clock.AverageFrame()*1000))
}

func (a *App) pollEvents() {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			a.running = false
		case *sdl.KeyboardEvent:
			keyCode := e.Keysym.Sym
			if e.State == sdl.PRESSED {
				if e.Repeat == 0 {
					a.keyPressed(keyCode)
				}
				a.keyMap[keyCode] = true
			} else if e.State == sdl.RELEASED {
				delete(a.keyMap, keyCode)
			}
		case *sdl.MouseMotionEvent:
			a.cam.Look(float32(e.XRel), -float32(e.YRel))
		case *sdl.MouseWheelEvent:
			a.cam.Zoom(float32(e.Y))
		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				a.renderer.Resize(a.window.GLGetDrawableSize())
			}
		}
	}
}

// keyPressed handles one-shot keys.
func (a *App) keyPressed(k sdl.Keycode) {
	switch k {
	case sdl.K_ESCAPE:
		a.running = false
	case sdl.K_TAB:
		a.panel.Toggle(a.hudReady)
	case sdl.K_UP:
		a.panel.Move(-1)
	case sdl.K_DOWN:
		a.panel.Move(1)
	case sdl.K_LEFT:
		a.panel.Previous()
	case sdl.K_RIGHT:
		a.panel.Next()
	case sdl.K_p:
		a.clock.Paused = !a.clock.Paused
	case sdl.K_o:
		a.opts.Orbits = !a.opts.Orbits
	}
	a.hudAt = time.Time{}
}

// handleKeys moves the camera for held keys over the wall-clock delta.
func (a *App) handleKeys(dt float32) {
	boost := a.keyMap[sdl.K_LSHIFT]
	for k, down := range a.keyMap {
		if !down {
			continue
		}
		switch k {
		case sdl.K_w:
			a.cam.Move(camera.Forward, dt, boost)
		case sdl.K_s:
			a.cam.Move(camera.Backward, dt, boost)
		case sdl.K_a:
			a.cam.Move(camera.Left, dt, boost)
		case sdl.K_d:
			a.cam.Move(camera.Right, dt, boost)
		}
	}
}

// reload swaps in a catalog delivered by the watcher, keeping the current
// orbit angles of bodies that still exist.
func (a *App) reload() {
	if a.watcher == nil {
		return
	}
	select {
	case c := <-a.watcher.Updates():
		sys, err := c.Build()
		if err != nil {
			a.log.Warn("reloaded catalog rejected", zap.Error(err))
			return
		}
		sys.Adopt(a.system)
		a.textures.Resolve(sys)
		a.system = sys
		a.log.Info("system replaced", zap.String("name", sys.Name), zap.Int("bodies", sys.Count()))
	default:
	}
}

func (a *App) drawHUD(wall float32) {
	if !a.panel.Visible || a.text == nil {
		return
	}
	if time.Since(a.hudAt) >= hudRefresh {
		a.hudAt = time.Now()
		status := fmt.Sprintf("%s\nFrames: %d\nDelta: %.1fms\nAvgDelta: %.1fms\n%v",
			a.system.Name, a.clock.Frames(), wall*1000, a.clock.AverageFrame()*1000, a.cam)
		pix, w, h, err := a.text.Render(a.panel.Text(status))
		if err != nil {
			a.log.Warn("hud text", zap.Error(err))
			return
		}
		a.overlay.Upload(pix, w, h)
	}
	sw, sh := a.window.GLGetDrawableSize()
	a.overlay.Draw(a.cfg.HUD.X, a.cfg.HUD.Y, int(sw), int(sh))
}
