package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Ring is a flat annulus around a body in the XZ plane. It does not follow
// the body's axial tilt.
type Ring struct {
	Inner float32
	Outer float32
	Color mgl32.Vec3
}

// Body is a sun, planet or moon. Orbit parameters are polar coordinates
// around the parent in the XZ plane; angles are in degrees.
type Body struct {
	Name     string
	Position mgl32.Vec3
	Radius   float32
	Color    mgl32.Vec3

	// Texture is the asset name; TextureID is the GPU handle, 0 if none.
	Texture   string
	TextureID uint32

	OrbitRadius float32
	OrbitSpeed  float32
	OrbitAngle  float32

	SpinSpeed float32
	SpinAngle float32
	AxialTilt float32

	Emissive float32
	Ring     *Ring

	Moons []*Body
}

// Central reports whether the body stays put instead of orbiting its parent.
// A top-level central body keeps its own position; a central moon sits on
// its parent.
func (b *Body) Central() bool {
	return b.OrbitRadius == 0
}

// Orbit advances the body along its circle and places it relative to
// center, then does the same for its moons around the new position. A
// central body is placed exactly at center.
func (b *Body) Orbit(center mgl32.Vec3, dt float32) {
	b.SpinAngle = wrapDegrees(b.SpinAngle + b.SpinSpeed*dt)

	if b.Central() {
		b.Position = center
	} else {
		b.OrbitAngle = wrapDegrees(b.OrbitAngle + b.OrbitSpeed*dt)
		b.Position = center.Add(polar(b.OrbitRadius, b.OrbitAngle))
	}

	for _, m := range b.Moons {
		m.Orbit(b.Position, dt)
	}
}

// Walk calls fn for the body and every descendant, parents first.
// parent is nil for the body Walk was called on.
func (b *Body) Walk(parent *Body, fn func(b, parent *Body)) {
	fn(b, parent)
	for _, m := range b.Moons {
		m.Walk(b, fn)
	}
}

func polar(radius, degrees float32) mgl32.Vec3 {
	rad := mgl32.DegToRad(degrees)
	return mgl32.Vec3{math32.Cos(rad) * radius, 0, math32.Sin(rad) * radius}
}

func wrapDegrees(a float32) float32 {
	a = math32.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}
