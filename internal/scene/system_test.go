package scene

import (
	"bytes"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-4

func assertVec(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], eps, "component %d of %v vs %v", i, want, got)
	}
}

func testSystem() *System {
	moon := &Body{Name: "Moon", Radius: 0.05, OrbitRadius: 0.5, OrbitSpeed: 100}
	earth := &Body{Name: "Earth", Radius: 0.22, OrbitRadius: 5, OrbitSpeed: 17.5, Moons: []*Body{moon}}
	sun := &Body{Name: "Sun", Radius: 0.7, Emissive: 1}
	return &System{Name: "test", Bodies: []*Body{sun, earth}}
}

func TestUpdateAdvancesOrbit(t *testing.T) {
	s := testSystem()
	s.Update(1)

	earth := s.Find("Earth")
	require.NotNil(t, earth)
	assert.InDelta(t, 17.5, earth.OrbitAngle, eps)

	rad := mgl32.DegToRad(17.5)
	assertVec(t, mgl32.Vec3{5 * math32.Cos(rad), 0, 5 * math32.Sin(rad)}, earth.Position)
}

func TestMoonsFollowParentCurrentPosition(t *testing.T) {
	s := testSystem()
	s.Update(1)

	earth := s.Find("Earth")
	moon := s.Find("Moon")
	require.NotNil(t, moon)

	rad := mgl32.DegToRad(100)
	want := earth.Position.Add(mgl32.Vec3{0.5 * math32.Cos(rad), 0, 0.5 * math32.Sin(rad)})
	assertVec(t, want, moon.Position)
}

func TestCentralBodyStaysPut(t *testing.T) {
	s := testSystem()
	sun := s.Bodies[0]
	sun.Position = mgl32.Vec3{1, 2, 3}
	sun.SpinSpeed = 10

	s.Update(2)

	assertVec(t, mgl32.Vec3{1, 2, 3}, sun.Position)
	assert.Equal(t, float32(0), sun.OrbitAngle)
	assert.InDelta(t, 20, sun.SpinAngle, eps)
	assert.Same(t, sun, s.Light())
}

func TestMoonOfCentralBodyOrbitsIt(t *testing.T) {
	moon := &Body{Name: "m", Radius: 1, OrbitRadius: 2, OrbitSpeed: 90}
	star := &Body{Name: "star", Radius: 1, Position: mgl32.Vec3{10, 0, 0}, Moons: []*Body{moon}}
	s := &System{Bodies: []*Body{star}}

	s.Update(1)

	assertVec(t, mgl32.Vec3{10, 0, 2}, moon.Position)
}

func TestCentralMoonRidesParent(t *testing.T) {
	twin := &Body{Name: "twin", Radius: 1, Position: mgl32.Vec3{3, 0, 0}, SpinSpeed: 10}
	planet := &Body{Name: "planet", Radius: 1, OrbitRadius: 4, OrbitSpeed: 90, Moons: []*Body{twin}}
	s := &System{Bodies: []*Body{{Name: "sun", Radius: 1}, planet}}

	s.Update(1)

	assertVec(t, mgl32.Vec3{0, 0, 4}, planet.Position)
	assertVec(t, planet.Position, twin.Position)
	assert.Equal(t, float32(0), twin.OrbitAngle)
	assert.InDelta(t, 10, twin.SpinAngle, eps)
}

func TestZeroDeltaOnlyPlaces(t *testing.T) {
	s := testSystem()
	earth := s.Find("Earth")
	earth.OrbitAngle = 90

	s.Update(0)

	assert.InDelta(t, 90, earth.OrbitAngle, eps)
	assertVec(t, mgl32.Vec3{0, 0, 5}, earth.Position)
}

func TestAnglesWrap(t *testing.T) {
	tests := []struct {
		name  string
		speed float32
		dt    float32
		want  float32
	}{
		{"Forward past a turn", 100, 4, 40},
		{"Exactly one turn", 90, 4, 0},
		{"Retrograde", -30, 1, 330},
		{"Several turns", 360, 10.5, 180},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Body{Name: "b", Radius: 1, OrbitRadius: 1, OrbitSpeed: tt.speed, SpinSpeed: tt.speed}
			b.Orbit(mgl32.Vec3{}, tt.dt)
			assert.InDelta(t, tt.want, b.OrbitAngle, eps)
			assert.InDelta(t, tt.want, b.SpinAngle, eps)
		})
	}
}

func TestWalkOrder(t *testing.T) {
	s := testSystem()
	var names, parents []string
	s.Walk(func(b, parent *Body) {
		names = append(names, b.Name)
		if parent == nil {
			parents = append(parents, "")
		} else {
			parents = append(parents, parent.Name)
		}
	})

	assert.Equal(t, []string{"Sun", "Earth", "Moon"}, names)
	assert.Equal(t, []string{"", "", "Earth"}, parents)
	assert.Equal(t, 3, s.Count())
	assert.Nil(t, s.Find("Pluto"))
}

func TestAdoptKeepsAngles(t *testing.T) {
	prev := testSystem()
	prev.Update(3)

	next := testSystem()
	next.Find("Earth").OrbitRadius = 6
	next.Adopt(prev)

	earth := next.Find("Earth")
	assert.InDelta(t, prev.Find("Earth").OrbitAngle, earth.OrbitAngle, eps)
	assert.InDelta(t, 6, earth.Position.Len(), eps)
	assert.InDelta(t, prev.Find("Moon").OrbitAngle, next.Find("Moon").OrbitAngle, eps)

	next.Adopt(nil)
	assert.InDelta(t, prev.Find("Earth").OrbitAngle, earth.OrbitAngle, eps)
}

func TestLightWithoutCentralBody(t *testing.T) {
	s := &System{Bodies: []*Body{{Name: "a", OrbitRadius: 1}}}
	assert.Nil(t, s.Light())
}

func TestDescribe(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, testSystem().Describe(&buf))
	assert.Equal(t, `test (3 bodies)
  Sun r=0.70 central
  Earth r=0.22 orbit=5.00 speed=17.5
    Moon r=0.05 orbit=0.50 speed=100.0
`, buf.String())
}
