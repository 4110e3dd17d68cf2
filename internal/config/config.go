// Package config holds the viewer settings. Built-in defaults are
// overridden by a TOML file and then by command line flags.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Window     Window     `toml:"window"`
	Camera     Camera     `toml:"camera"`
	Simulation Simulation `toml:"simulation"`
	Render     Render     `toml:"render"`
	HUD        HUD        `toml:"hud"`
	Assets     Assets     `toml:"assets"`
}

type Window struct {
	Title      string `toml:"title"`
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Fullscreen bool   `toml:"fullscreen"`
	VSync      bool   `toml:"vsync"`
}

type Camera struct {
	Position    [3]float32 `toml:"position"`
	FOV         float32    `toml:"fov"`
	Speed       float32    `toml:"speed"`
	BoostSpeed  float32    `toml:"boost_speed"`
	Sensitivity float32    `toml:"sensitivity"`
	Near        float32    `toml:"near"`
	Far         float32    `toml:"far"`
}

type Simulation struct {
	TimeScale float64 `toml:"time_scale"`
	Paused    bool    `toml:"paused"`
	// System is a catalog file; empty means the built-in solar system.
	System string `toml:"system"`
	Watch  bool   `toml:"watch"`
}

type Render struct {
	SphereSectors int        `toml:"sphere_sectors"`
	SphereStacks  int        `toml:"sphere_stacks"`
	OrbitSegments int        `toml:"orbit_segments"`
	Orbits        bool       `toml:"orbits"`
	MoonOrbits    bool       `toml:"moon_orbits"`
	OrbitColor    [3]float32 `toml:"orbit_color"`
	OrbitGlow     float32    `toml:"orbit_glow"`
	Ambient       float32    `toml:"ambient"`
	Stars         int        `toml:"stars"`
	StarSeed      int64      `toml:"star_seed"`
}

type HUD struct {
	Enabled  bool   `toml:"enabled"`
	Font     string `toml:"font"`
	FontSize int    `toml:"font_size"`
	X        int    `toml:"x"`
	Y        int    `toml:"y"`
	Width    int    `toml:"width"`
}

type Assets struct {
	Dir                string `toml:"dir"`
	MaxTextureSize     int    `toml:"max_texture_size"`
	ProceduralFallback bool   `toml:"procedural_fallback"`
}

// Default mirrors the classic viewer: fullscreen, camera at (0, 7, 10)
// with a 45 degree field of view.
func Default() Config {
	return Config{
		Window: Window{
			Title:      "Solar System",
			Width:      1280,
			Height:     720,
			Fullscreen: true,
			VSync:      true,
		},
		Camera: Camera{
			Position:    [3]float32{0, 7, 10},
			FOV:         45,
			Speed:       5,
			BoostSpeed:  15,
			Sensitivity: 0.1,
			Near:        0.1,
			Far:         100,
		},
		Simulation: Simulation{
			TimeScale: 1,
			Watch:     true,
		},
		Render: Render{
			SphereSectors: 36,
			SphereStacks:  18,
			OrbitSegments: 100,
			Orbits:        true,
			OrbitColor:    [3]float32{0.5, 0.5, 0.5},
			OrbitGlow:     0.6,
			Ambient:       0.2,
			Stars:         2000,
			StarSeed:      42,
		},
		HUD: HUD{
			Enabled:  true,
			Font:     "resources/Font.ttf",
			FontSize: 14,
			Width:    300,
		},
		Assets: Assets{
			Dir:                "resources",
			MaxTextureSize:     2048,
			ProceduralFallback: true,
		},
	}
}

// Load reads path over the defaults. A missing file is not an error when
// optional is set.
func Load(path string, optional bool) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings the renderer cannot work with.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Camera.FOV < 1 || c.Camera.FOV > 90 {
		errs = append(errs, fmt.Errorf("camera fov %.1f outside [1, 90]", c.Camera.FOV))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera clip planes need 0 < near < far, got %g and %g", c.Camera.Near, c.Camera.Far))
	}
	if c.Camera.Speed < 0 || c.Camera.BoostSpeed < 0 {
		errs = append(errs, errors.New("camera speeds must not be negative"))
	}
	if c.Simulation.TimeScale < 0 {
		errs = append(errs, errors.New("time scale must not be negative"))
	}
	if c.Render.SphereSectors < 3 || c.Render.SphereStacks < 2 {
		errs = append(errs, fmt.Errorf("sphere needs at least 3 sectors and 2 stacks, got %d and %d", c.Render.SphereSectors, c.Render.SphereStacks))
	}
	if c.Render.OrbitSegments < 3 {
		errs = append(errs, fmt.Errorf("orbit needs at least 3 segments, got %d", c.Render.OrbitSegments))
	}
	if c.Render.Stars < 0 {
		errs = append(errs, errors.New("star count must not be negative"))
	}
	if c.HUD.FontSize <= 0 {
		errs = append(errs, fmt.Errorf("hud font size %d must be positive", c.HUD.FontSize))
	}
	return errors.Join(errs...)
}

// Write stores the config as TOML, used by the config init command.
func (c Config) Write(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
