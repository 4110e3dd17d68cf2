// Package mesh generates the shared unit meshes every body and orbit is
// drawn with.
package mesh

import (
	"github.com/chewxy/math32"
)

// Vertices are interleaved as position(3) normal(3) uv(2).
const (
	FloatsPerVertex = 8
	Stride          = FloatsPerVertex * 4
)

// Mesh is CPU-side geometry ready for upload.
type Mesh struct {
	Vertices []float32
	Indices  []uint32
}

// VertexCount is the number of interleaved vertices.
func (m Mesh) VertexCount() int {
	return len(m.Vertices) / FloatsPerVertex
}

// Sphere builds a unit UV sphere with the poles on the Y axis. Row 0 is
// the north pole with v=1, so flipped equirectangular maps land upright.
func Sphere(sectors, stacks int) Mesh {
	var m Mesh
	for i := 0; i <= stacks; i++ {
		theta := math32.Pi * float32(i) / float32(stacks)
		y := math32.Cos(theta)
		xz := math32.Sin(theta)

		for j := 0; j <= sectors; j++ {
			phi := 2 * math32.Pi * float32(j) / float32(sectors)
			x := xz * math32.Cos(phi)
			z := xz * math32.Sin(phi)

			u := float32(j) / float32(sectors)
			v := 1 - float32(i)/float32(stacks)
			m.Vertices = append(m.Vertices, x, y, z, x, y, z, u, v)
		}
	}

	for i := 0; i < stacks; i++ {
		k1 := uint32(i * (sectors + 1))
		k2 := k1 + uint32(sectors) + 1
		for j := 0; j < sectors; j, k1, k2 = j+1, k1+1, k2+1 {
			m.Indices = append(m.Indices,
				k1, k2, k1+1,
				k1+1, k2, k2+1,
			)
		}
	}
	return m
}

// Circle builds a unit line loop in the XZ plane with an upward normal.
func Circle(segments int) Mesh {
	var m Mesh
	for i := 0; i < segments; i++ {
		a := 2 * math32.Pi * float32(i) / float32(segments)
		m.Vertices = append(m.Vertices, math32.Cos(a), 0, math32.Sin(a), 0, 1, 0, float32(i)/float32(segments), 0)
	}
	return m
}

// Annulus builds a triangle strip for a flat ring of outer radius 1 and
// inner radius ratio, closed by repeating the first pair.
func Annulus(segments int, ratio float32) Mesh {
	var m Mesh
	for i := 0; i <= segments; i++ {
		a := 2 * math32.Pi * float32(i) / float32(segments)
		c, s := math32.Cos(a), math32.Sin(a)
		u := float32(i) / float32(segments)
		m.Vertices = append(m.Vertices,
			c*ratio, 0, s*ratio, 0, 1, 0, u, 0,
			c, 0, s, 0, 1, 0, u, 1,
		)
	}
	return m
}
