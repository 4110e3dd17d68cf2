package render

import (
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/cowsed/Random/SolarSystem/internal/texture"
)

// starfield is a point cloud at infinity drawn behind everything else.
type starfield struct {
	prog     *Program
	vao, vbo uint32
	count    int32
}

func newStarfield(seed int64, count int) (*starfield, error) {
	prog, err := LoadProgram("star")
	if err != nil {
		return nil, err
	}
	data := make([]float32, 0, count*4)
	for _, s := range texture.Starfield(seed, count, 1) {
		data = append(data, s.Pos[0], s.Pos[1], s.Pos[2], s.Brightness)
	}

	sf := &starfield{prog: prog, count: int32(count)}
	gl.GenVertexArrays(1, &sf.vao)
	gl.BindVertexArray(sf.vao)
	gl.GenBuffers(1, &sf.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, sf.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 4*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 1, gl.FLOAT, false, 4*4, 3*4)
	gl.EnableVertexAttribArray(1)
	gl.BindVertexArray(0)
	return sf, nil
}

func (sf *starfield) draw(view, proj mgl32.Mat4) {
	sf.prog.Use()
	sf.prog.SetMat4("view", view)
	sf.prog.SetMat4("projection", proj)

	gl.DepthMask(false)
	gl.DepthFunc(gl.LEQUAL)
	gl.BindVertexArray(sf.vao)
	gl.DrawArrays(gl.POINTS, 0, sf.count)
	gl.BindVertexArray(0)
	gl.DepthFunc(gl.LESS)
	gl.DepthMask(true)
}

func (sf *starfield) delete() {
	gl.DeleteBuffers(1, &sf.vbo)
	gl.DeleteVertexArrays(1, &sf.vao)
	sf.prog.Delete()
}
