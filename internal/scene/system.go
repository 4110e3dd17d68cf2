package scene

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrNoCentralBody = errors.New("scene: system has no central body")
	ErrInvalidBody   = errors.New("scene: invalid body")
	ErrMalformed     = errors.New("scene: malformed catalog")
)

// System is the fixed list of top-level bodies. Top-level bodies that
// orbit do so around the world origin.
type System struct {
	Name   string
	Bodies []*Body
}

// Update advances every orbit by dt seconds. Top-level central bodies keep
// their position and their moons orbit around it. Central moons ride on
// their parent.
func (s *System) Update(dt float32) {
	for _, b := range s.Bodies {
		if b.Central() {
			b.Orbit(b.Position, dt)
			continue
		}
		b.Orbit(mgl32.Vec3{}, dt)
	}
}

// Light returns the first central body, the one that lights the scene.
func (s *System) Light() *Body {
	for _, b := range s.Bodies {
		if b.Central() {
			return b
		}
	}
	return nil
}

// Walk visits every body in the system, parents before moons.
func (s *System) Walk(fn func(b, parent *Body)) {
	for _, b := range s.Bodies {
		b.Walk(nil, fn)
	}
}

// Find returns the first body with the given name.
func (s *System) Find(name string) *Body {
	var found *Body
	s.Walk(func(b, _ *Body) {
		if found == nil && b.Name == name {
			found = b
		}
	})
	return found
}

// Count returns the number of bodies including moons.
func (s *System) Count() int {
	n := 0
	s.Walk(func(_, _ *Body) { n++ })
	return n
}

// Adopt copies orbit and spin angles from prev for bodies with matching
// names so a reloaded system continues where the old one was.
func (s *System) Adopt(prev *System) {
	if prev == nil {
		return
	}
	s.Walk(func(b, _ *Body) {
		old := prev.Find(b.Name)
		if old == nil {
			return
		}
		b.OrbitAngle = old.OrbitAngle
		b.SpinAngle = old.SpinAngle
	})
	s.Update(0)
}

// Describe writes the system as an indented tree, one body per line.
func (s *System) Describe(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s (%d bodies)\n", s.Name, s.Count()); err != nil {
		return err
	}
	var err error
	var walk func(b *Body, depth int)
	walk = func(b *Body, depth int) {
		if err != nil {
			return
		}
		indent := strings.Repeat("  ", depth+1)
		if b.Central() {
			_, err = fmt.Fprintf(w, "%s%s r=%.2f central\n", indent, b.Name, b.Radius)
		} else {
			_, err = fmt.Fprintf(w, "%s%s r=%.2f orbit=%.2f speed=%.1f\n", indent, b.Name, b.Radius, b.OrbitRadius, b.OrbitSpeed)
		}
		for _, m := range b.Moons {
			walk(m, depth+1)
		}
	}
	for _, b := range s.Bodies {
		walk(b, 0)
	}
	return err
}
