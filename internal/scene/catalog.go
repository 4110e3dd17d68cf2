package scene

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

//go:embed default_system.yaml
var defaultCatalog []byte

// Catalog is the on-disk description of a system.
type Catalog struct {
	Name string `yaml:"name"`
	// Seed drives the texture pool picks so a catalog always looks the same.
	Seed         int64               `yaml:"seed"`
	TexturePools map[string][]string `yaml:"texture_pools"`
	Bodies       []BodySpec          `yaml:"bodies"`
}

type BodySpec struct {
	Name        string     `yaml:"name"`
	Radius      float32    `yaml:"radius"`
	Color       string     `yaml:"color"`
	Texture     string     `yaml:"texture,omitempty"`
	TexturePool string     `yaml:"texture_pool,omitempty"`
	Emissive    float32    `yaml:"emissive,omitempty"`
	Position    [3]float32 `yaml:"position,omitempty"`
	Orbit       OrbitSpec  `yaml:"orbit,omitempty"`
	Spin        float32    `yaml:"spin,omitempty"`
	Tilt        float32    `yaml:"tilt,omitempty"`
	Ring        *RingSpec  `yaml:"ring,omitempty"`
	Moons       []BodySpec `yaml:"moons,omitempty"`
}

type OrbitSpec struct {
	Radius float32 `yaml:"radius"`
	Speed  float32 `yaml:"speed"`
	Phase  float32 `yaml:"phase,omitempty"`
}

type RingSpec struct {
	Inner float32 `yaml:"inner"`
	Outer float32 `yaml:"outer"`
	Color string  `yaml:"color"`
}

// DefaultCatalog returns the built-in sun, eight planets and their moons.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalog)
}

func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// ParseCatalog decodes and validates a catalog. Unknown keys are errors so
// a misspelt field cannot silently change a body.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks names, sizes, colors and pool references.
func (c *Catalog) Validate() error {
	seen := map[string]bool{}
	central := false
	var check func(path string, b BodySpec) error
	check = func(path string, b BodySpec) error {
		if b.Name == "" {
			return fmt.Errorf("%w: %s: missing name", ErrInvalidBody, path)
		}
		if seen[b.Name] {
			return fmt.Errorf("%w: duplicate name %q", ErrInvalidBody, b.Name)
		}
		seen[b.Name] = true
		if b.Radius <= 0 {
			return fmt.Errorf("%w: %s: radius must be positive", ErrInvalidBody, b.Name)
		}
		if b.Orbit.Radius < 0 {
			return fmt.Errorf("%w: %s: negative orbit radius", ErrInvalidBody, b.Name)
		}
		if _, err := parseColor(b.Color); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidBody, b.Name, err)
		}
		if b.TexturePool != "" && len(c.TexturePools[b.TexturePool]) == 0 {
			return fmt.Errorf("%w: %s: unknown or empty texture pool %q", ErrInvalidBody, b.Name, b.TexturePool)
		}
		if r := b.Ring; r != nil {
			if r.Inner <= 0 || r.Outer <= r.Inner {
				return fmt.Errorf("%w: %s: ring needs 0 < inner < outer", ErrInvalidBody, b.Name)
			}
			if _, err := parseColor(r.Color); err != nil {
				return fmt.Errorf("%w: %s ring: %v", ErrInvalidBody, b.Name, err)
			}
		}
		for _, m := range b.Moons {
			if err := check(path+"/"+b.Name, m); err != nil {
				return err
			}
		}
		return nil
	}
	for _, b := range c.Bodies {
		if b.Orbit.Radius == 0 {
			central = true
		}
		if err := check("", b); err != nil {
			return err
		}
	}
	if !central {
		return ErrNoCentralBody
	}
	return nil
}

// Build instantiates the bodies. Pool textures are picked in declaration
// order from a source seeded with c.Seed.
func (c *Catalog) Build() (*System, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(c.Seed))
	var build func(spec BodySpec) *Body
	build = func(spec BodySpec) *Body {
		col, _ := parseColor(spec.Color)
		b := &Body{
			Name:        spec.Name,
			Position:    mgl32.Vec3(spec.Position),
			Radius:      spec.Radius,
			Color:       col,
			Texture:     spec.Texture,
			OrbitRadius: spec.Orbit.Radius,
			OrbitSpeed:  spec.Orbit.Speed,
			OrbitAngle:  wrapDegrees(spec.Orbit.Phase),
			SpinSpeed:   spec.Spin,
			AxialTilt:   spec.Tilt,
			Emissive:    spec.Emissive,
		}
		if spec.TexturePool != "" {
			pool := c.TexturePools[spec.TexturePool]
			b.Texture = pool[rng.Intn(len(pool))]
		}
		if r := spec.Ring; r != nil {
			rc, _ := parseColor(r.Color)
			b.Ring = &Ring{Inner: r.Inner, Outer: r.Outer, Color: rc}
		}
		for _, m := range spec.Moons {
			b.Moons = append(b.Moons, build(m))
		}
		return b
	}

	s := &System{Name: c.Name}
	for _, spec := range c.Bodies {
		s.Bodies = append(s.Bodies, build(spec))
	}
	// place everything before the first frame
	s.Update(0)
	return s, nil
}

func parseColor(hex string) (mgl32.Vec3, error) {
	col, err := colorful.Hex(hex)
	if err != nil {
		return mgl32.Vec3{}, fmt.Errorf("color %q: %w", hex, err)
	}
	return mgl32.Vec3{float32(col.R), float32(col.G), float32(col.B)}, nil
}
