package frame

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cowsed/Random/SolarSystem/internal/scene"
)

func frameSystem() *scene.System {
	moon := &scene.Body{Name: "Moon", Radius: 0.05, Color: mgl32.Vec3{0.8, 0.8, 0.8}, OrbitRadius: 0.5, OrbitSpeed: 100}
	earth := &scene.Body{Name: "Earth", Radius: 0.22, TextureID: 7, OrbitRadius: 5, OrbitSpeed: 17.5, Moons: []*scene.Body{moon}}
	saturn := &scene.Body{
		Name: "Saturn", Radius: 0.4, OrbitRadius: 10, OrbitSpeed: 7,
		Ring: &scene.Ring{Inner: 0.5, Outer: 0.8, Color: mgl32.Vec3{1, 1, 1}},
	}
	sun := &scene.Body{Name: "Sun", Radius: 0.7, Color: mgl32.Vec3{1, 1, 0}, Emissive: 1}
	s := &scene.System{Bodies: []*scene.Body{sun, earth, saturn}}
	s.Update(1)
	return s
}

type step struct {
	kind Kind
	body string
}

func steps(f Frame) []step {
	var out []step
	for _, c := range f.Commands {
		out = append(out, step{c.Kind, c.Body})
	}
	return out
}

func apply(m mgl32.Mat4, v mgl32.Vec4) mgl32.Vec3 {
	return m.Mul4x1(v).Vec3()
}

func TestBuildFrameOrder(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want []step
	}{
		{"No guides", Options{}, []step{
			{KindSphere, "Sun"},
			{KindSphere, "Earth"},
			{KindSphere, "Moon"},
			{KindSphere, "Saturn"},
			{KindRing, "Saturn"},
		}},
		{"Planet guides", Options{Orbits: true}, []step{
			{KindOrbit, "Earth"},
			{KindOrbit, "Saturn"},
			{KindSphere, "Sun"},
			{KindSphere, "Earth"},
			{KindSphere, "Moon"},
			{KindSphere, "Saturn"},
			{KindRing, "Saturn"},
		}},
		{"Moon guides", Options{Orbits: true, MoonOrbits: true}, []step{
			{KindOrbit, "Earth"},
			{KindOrbit, "Moon"},
			{KindOrbit, "Saturn"},
			{KindSphere, "Sun"},
			{KindSphere, "Earth"},
			{KindSphere, "Moon"},
			{KindSphere, "Saturn"},
			{KindRing, "Saturn"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Build(frameSystem(), tt.opts)
			assert.Equal(t, tt.want, steps(f))
		})
	}
}

func TestBuildFrameUniforms(t *testing.T) {
	s := frameSystem()
	f := Build(s, Options{})

	assert.Equal(t, s.Light().Position, f.Light)

	byBody := map[string]Command{}
	for _, c := range f.Commands {
		if c.Kind == KindSphere {
			byBody[c.Body] = c
		}
	}
	assert.Equal(t, float32(1), byBody["Sun"].Emissive)
	assert.Equal(t, mgl32.Vec3{1, 1, 0}, byBody["Sun"].Color)
	assert.Zero(t, byBody["Earth"].Emissive)
	assert.Equal(t, uint32(7), byBody["Earth"].Texture)
	assert.Zero(t, byBody["Moon"].Texture)
}

func TestBodyModelTranslatesAndScales(t *testing.T) {
	s := frameSystem()
	s.Find("Earth").SpinAngle = 33
	s.Find("Earth").AxialTilt = 23
	f := Build(s, Options{})

	for _, c := range f.Commands {
		if c.Kind != KindSphere {
			continue
		}
		b := s.Find(c.Body)
		require.NotNil(t, b)

		center := apply(c.Model, mgl32.Vec4{0, 0, 0, 1})
		assert.True(t, center.ApproxEqualThreshold(b.Position, 1e-4), "%s at %v, want %v", b.Name, center, b.Position)

		edge := apply(c.Model, mgl32.Vec4{0, 1, 0, 0})
		assert.InDelta(t, b.Radius, edge.Len(), 1e-4, b.Name)
	}
}

func TestOrbitGuidesCenterOnParent(t *testing.T) {
	s := frameSystem()
	f := Build(s, Options{Orbits: true, MoonOrbits: true, OrbitColor: mgl32.Vec3{0.3, 0.3, 0.3}, OrbitGlow: 0.5})

	earth := s.Find("Earth")
	for _, c := range f.Commands {
		if c.Kind != KindOrbit {
			continue
		}
		assert.Equal(t, float32(0.5), c.Emissive)
		assert.Equal(t, mgl32.Vec3{0.3, 0.3, 0.3}, c.Color)

		center := apply(c.Model, mgl32.Vec4{0, 0, 0, 1})
		rim := apply(c.Model, mgl32.Vec4{1, 0, 0, 1})
		switch c.Body {
		case "Moon":
			assert.True(t, center.ApproxEqualThreshold(earth.Position, 1e-4))
			assert.InDelta(t, 0.5, rim.Sub(center).Len(), 1e-4)
		case "Earth":
			assert.True(t, center.ApproxEqualThreshold(mgl32.Vec3{}, 1e-4))
			assert.InDelta(t, 5, rim.Len(), 1e-4)
		}
	}
}

func TestRingCommand(t *testing.T) {
	f := Build(frameSystem(), Options{})
	last := f.Commands[len(f.Commands)-1]
	require.Equal(t, KindRing, last.Kind)
	assert.InDelta(t, 0.625, last.RingRatio, 1e-6)

	rim := apply(last.Model, mgl32.Vec4{1, 0, 0, 0})
	assert.InDelta(t, 0.8, rim.Len(), 1e-5)
	assert.Equal(t, "ring", last.Kind.String())
}

func TestRingIgnoresAxialTilt(t *testing.T) {
	s := frameSystem()
	saturn := s.Find("Saturn")
	saturn.AxialTilt = 26.7
	f := Build(s, Options{})
	last := f.Commands[len(f.Commands)-1]
	require.Equal(t, KindRing, last.Kind)

	center := apply(last.Model, mgl32.Vec4{0, 0, 0, 1})
	assert.True(t, center.ApproxEqualThreshold(saturn.Position, 1e-4))
	for _, v := range []mgl32.Vec4{{1, 0, 0, 1}, {0, 0, 1, 1}, {-1, 0, 0, 1}} {
		rim := apply(last.Model, v).Sub(center)
		assert.InDelta(t, 0, rim.Y(), 1e-5)
		assert.InDelta(t, 0.8, rim.Len(), 1e-5)
	}

	var body Command
	for _, c := range f.Commands {
		if c.Kind == KindSphere && c.Body == "Saturn" {
			body = c
		}
	}
	pole := apply(body.Model, mgl32.Vec4{0, 1, 0, 0})
	assert.NotZero(t, pole.X())
}

func TestEmptySystemHasNoLight(t *testing.T) {
	f := Build(&scene.System{}, Options{Orbits: true})
	assert.Empty(t, f.Commands)
	assert.Equal(t, mgl32.Vec3{}, f.Light)
}
