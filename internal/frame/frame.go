// Package frame turns a scene.System into an ordered list of draw calls
// without touching the GPU.
package frame

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/cowsed/Random/SolarSystem/internal/scene"
)

// Kind selects the shared mesh a command draws with.
type Kind int

const (
	KindSphere Kind = iota
	KindOrbit
	KindRing
)

func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindOrbit:
		return "orbit"
	case KindRing:
		return "ring"
	}
	return "unknown"
}

// Command is one draw call: a shared mesh with per-instance state.
type Command struct {
	Kind     Kind
	Body     string
	Model    mgl32.Mat4
	Color    mgl32.Vec3
	Texture  uint32
	Emissive float32
	// RingRatio is inner/outer radius for KindRing.
	RingRatio float32
}

type Options struct {
	Orbits     bool
	MoonOrbits bool
	OrbitColor mgl32.Vec3
	// OrbitGlow is the emissive strength of orbit guides so they stay
	// visible on the dark side of the sun.
	OrbitGlow float32
}

// Frame is everything needed to draw one frame of a system.
type Frame struct {
	Light    mgl32.Vec3
	Commands []Command
}

// Build lays out the draw calls for the current body positions:
// orbit guides first, then emissive bodies, then the rest with their rings.
func Build(s *scene.System, opts Options) Frame {
	var f Frame
	if sun := s.Light(); sun != nil {
		f.Light = sun.Position
	}

	if opts.Orbits {
		s.Walk(func(b, parent *scene.Body) {
			if b.Central() {
				return
			}
			center := mgl32.Vec3{}
			if parent != nil {
				if !opts.MoonOrbits {
					return
				}
				center = parent.Position
			}
			f.Commands = append(f.Commands, Command{
				Kind:     KindOrbit,
				Body:     b.Name,
				Model:    mgl32.Translate3D(center.X(), center.Y(), center.Z()).Mul4(uniformScale(b.OrbitRadius)),
				Color:    opts.OrbitColor,
				Emissive: opts.OrbitGlow,
			})
		})
	}

	var lit []Command
	s.Walk(func(b, _ *scene.Body) {
		cmd := Command{
			Kind:     KindSphere,
			Body:     b.Name,
			Model:    bodyModel(b),
			Color:    b.Color,
			Texture:  b.TextureID,
			Emissive: b.Emissive,
		}
		if b.Emissive > 0 {
			f.Commands = append(f.Commands, cmd)
		} else {
			lit = append(lit, cmd)
		}
		if r := b.Ring; r != nil {
			lit = append(lit, Command{
				Kind:      KindRing,
				Body:      b.Name,
				Model:     ringModel(b),
				Color:     r.Color,
				RingRatio: r.Inner / r.Outer,
			})
		}
	})
	f.Commands = append(f.Commands, lit...)
	return f
}

// bodyModel is translate, then tilt and spin, then scale.
func bodyModel(b *scene.Body) mgl32.Mat4 {
	return placement(b).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(b.SpinAngle))).
		Mul4(uniformScale(b.Radius))
}

// ringModel lies flat in XZ around the body and ignores its tilt.
func ringModel(b *scene.Body) mgl32.Mat4 {
	p := b.Position
	return mgl32.Translate3D(p.X(), p.Y(), p.Z()).Mul4(uniformScale(b.Ring.Outer))
}

func placement(b *scene.Body) mgl32.Mat4 {
	p := b.Position
	return mgl32.Translate3D(p.X(), p.Y(), p.Z()).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(b.AxialTilt)))
}

func uniformScale(s float32) mgl32.Mat4 {
	return mgl32.Scale3D(s, s, s)
}
