package render

import (
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Overlay draws an RGBA bitmap (the HUD text) at a pixel position on top
// of the scene.
type Overlay struct {
	prog       *Program
	vao, vbo   uint32
	tex        uint32
	w, h       int32
	Background mgl32.Vec4
}

func NewOverlay() (*Overlay, error) {
	prog, err := LoadProgram("overlay")
	if err != nil {
		return nil, err
	}
	// unit quad hanging down from its top-left corner; bitmap row 0 is the top
	quad := []float32{
		0, 0, 0, 0,
		1, 0, 1, 0,
		0, -1, 0, 1,
		1, -1, 1, 1,
	}
	o := &Overlay{prog: prog, Background: mgl32.Vec4{0.25, 0.25, 0.25, 0.75}}
	gl.GenVertexArrays(1, &o.vao)
	gl.BindVertexArray(o.vao)
	gl.GenBuffers(1, &o.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, o.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quad)*4, gl.Ptr(quad), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 4*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 4*4, 2*4)
	gl.EnableVertexAttribArray(1)
	gl.BindVertexArray(0)

	gl.GenTextures(1, &o.tex)
	gl.BindTexture(gl.TEXTURE_2D, o.tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return o, nil
}

// Upload replaces the bitmap. pix is tightly packed RGBA rows.
func (o *Overlay) Upload(pix []byte, w, h int) {
	o.w, o.h = int32(w), int32(h)
	if w == 0 || h == 0 {
		return
	}
	gl.BindTexture(gl.TEXTURE_2D, o.tex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, o.w, o.h, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Draw puts the bitmap's top-left corner at pixel (x, y) of a screen of
// the given size.
func (o *Overlay) Draw(x, y, screenW, screenH int) {
	if o.w == 0 || o.h == 0 || screenW == 0 || screenH == 0 {
		return
	}
	sw, sh := float32(screenW), float32(screenH)
	rect := mgl32.Vec4{
		2*float32(x)/sw - 1,
		1 - 2*float32(y)/sh,
		2 * float32(o.w) / sw,
		2 * float32(o.h) / sh,
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	o.prog.Use()
	o.prog.SetVec4("rect", rect)
	o.prog.SetVec4("background", o.Background)
	o.prog.SetInt("text", 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, o.tex)
	gl.BindVertexArray(o.vao)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	gl.BindVertexArray(0)

	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
}

func (o *Overlay) Delete() {
	gl.DeleteTextures(1, &o.tex)
	gl.DeleteBuffers(1, &o.vbo)
	gl.DeleteVertexArrays(1, &o.vao)
	o.prog.Delete()
}
