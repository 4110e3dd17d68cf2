package render

import (
	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/cowsed/Random/SolarSystem/internal/mesh"
)

// gpuMesh is an uploaded mesh.Mesh. Indexed meshes draw with DrawElements.
type gpuMesh struct {
	vao, vbo, ebo uint32
	count         int32
	mode          uint32
}

func uploadMesh(m mesh.Mesh, mode uint32) *gpuMesh {
	g := &gpuMesh{mode: mode}
	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*4, gl.Ptr(m.Vertices), gl.STATIC_DRAW)

	if len(m.Indices) > 0 {
		gl.GenBuffers(1, &g.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)
		g.count = int32(len(m.Indices))
	} else {
		g.count = int32(m.VertexCount())
	}

	// position, normal, uv
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, mesh.Stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, mesh.Stride, 3*4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, mesh.Stride, 6*4)
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)
	return g
}

func (g *gpuMesh) draw() {
	gl.BindVertexArray(g.vao)
	if g.ebo != 0 {
		gl.DrawElements(g.mode, g.count, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(g.mode, 0, g.count)
	}
	gl.BindVertexArray(0)
}

func (g *gpuMesh) delete() {
	if g.ebo != 0 {
		gl.DeleteBuffers(1, &g.ebo)
	}
	gl.DeleteBuffers(1, &g.vbo)
	gl.DeleteVertexArrays(1, &g.vao)
}
