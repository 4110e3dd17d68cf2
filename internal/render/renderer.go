// Package render draws a scene.System with OpenGL 3.3 core. Every body
// shares one sphere mesh and every orbit guide one circle mesh; per-body
// state travels in uniforms.
package render

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/cowsed/Random/SolarSystem/internal/frame"
	"github.com/cowsed/Random/SolarSystem/internal/mesh"
)

type Options struct {
	SphereSectors int
	SphereStacks  int
	OrbitSegments int
	Ambient       float32
	LightColor    mgl32.Vec3
	ClearColor    mgl32.Vec3
	Stars         int
	StarSeed      int64
}

// Renderer owns the GL objects. It must be created and used on the thread
// that holds the GL context.
type Renderer struct {
	opts  Options
	log   *zap.Logger
	prog  *Program
	stars *starfield

	sphere *gpuMesh
	orbit  *gpuMesh
	rings  map[float32]*gpuMesh

	width, height int32
}

// New builds the shared meshes and programs. gl.Init must have run.
func New(opts Options, log *zap.Logger) (*Renderer, error) {
	prog, err := LoadProgram("body")
	if err != nil {
		return nil, err
	}
	r := &Renderer{
		opts:   opts,
		log:    log,
		prog:   prog,
		sphere: uploadMesh(mesh.Sphere(opts.SphereSectors, opts.SphereStacks), gl.TRIANGLES),
		orbit:  uploadMesh(mesh.Circle(opts.OrbitSegments), gl.LINE_LOOP),
		rings:  map[float32]*gpuMesh{},
	}
	if opts.Stars > 0 {
		if r.stars, err = newStarfield(opts.StarSeed, opts.Stars); err != nil {
			r.Delete()
			return nil, fmt.Errorf("starfield: %w", err)
		}
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	log.Info("renderer ready",
		zap.String("gl", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.Int32("sphereIndices", r.sphere.count))
	return r, nil
}

// Resize follows the drawable size of the window.
func (r *Renderer) Resize(w, h int32) {
	r.width, r.height = w, h
	gl.Viewport(0, 0, w, h)
}

func (r *Renderer) Aspect() float32 {
	if r.height == 0 {
		return 1
	}
	return float32(r.width) / float32(r.height)
}

// Draw clears the screen and executes a frame.
func (r *Renderer) Draw(f frame.Frame, view, proj mgl32.Mat4) {
	c := r.opts.ClearColor
	gl.ClearColor(c[0], c[1], c[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if r.stars != nil {
		r.stars.draw(view, proj)
	}

	p := r.prog
	p.Use()
	p.SetMat4("view", view)
	p.SetMat4("projection", proj)
	p.SetVec3("lightPos", f.Light)
	p.SetVec3("lightColor", r.opts.LightColor)
	p.SetFloat("ambientStrength", r.opts.Ambient)
	p.SetInt("texture1", 0)

	for _, cmd := range f.Commands {
		p.SetMat4("model", cmd.Model)
		p.SetVec3("objectColor", cmd.Color)
		p.SetFloat("emissiveStrength", cmd.Emissive)
		p.SetBool("useTexture", cmd.Texture != 0)
		if cmd.Texture != 0 {
			gl.ActiveTexture(gl.TEXTURE0)
			gl.BindTexture(gl.TEXTURE_2D, cmd.Texture)
		}

		switch cmd.Kind {
		case frame.KindSphere:
			r.sphere.draw()
		case frame.KindOrbit:
			r.orbit.draw()
		case frame.KindRing:
			r.ring(cmd.RingRatio).draw()
		}
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// ring returns the shared annulus for an inner/outer ratio, uploading it
// the first time it is seen.
func (r *Renderer) ring(ratio float32) *gpuMesh {
	if m, ok := r.rings[ratio]; ok {
		return m
	}
	m := uploadMesh(mesh.Annulus(r.opts.OrbitSegments, ratio), gl.TRIANGLE_STRIP)
	r.rings[ratio] = m
	r.log.Debug("ring mesh", zap.Float32("ratio", ratio))
	return m
}

// Delete frees every GL object the renderer created.
func (r *Renderer) Delete() {
	if r.stars != nil {
		r.stars.delete()
	}
	for k, m := range r.rings {
		m.delete()
		delete(r.rings, k)
	}
	r.sphere.delete()
	r.orbit.delete()
	r.prog.Delete()
}
