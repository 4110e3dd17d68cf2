package render

import (
	"hash/fnv"
	"image"
	"path/filepath"

	"github.com/go-gl/gl/v3.3-core/gl"
	"go.uber.org/zap"

	"github.com/cowsed/Random/SolarSystem/internal/scene"
	"github.com/cowsed/Random/SolarSystem/internal/texture"
)

// fallbackSize is the width of procedural textures; height is half.
const fallbackSize = 256

// TextureCache uploads each texture file once and hands out GL names.
type TextureCache struct {
	Dir        string
	MaxSize    int
	Procedural bool

	log     *zap.Logger
	loaded  map[string]uint32
	missing map[string]bool
}

func NewTextureCache(dir string, maxSize int, procedural bool, log *zap.Logger) *TextureCache {
	return &TextureCache{
		Dir:        dir,
		MaxSize:    maxSize,
		Procedural: procedural,
		log:        log,
		loaded:     map[string]uint32{},
		missing:    map[string]bool{},
	}
}

// Resolve assigns a TextureID to every body in the system. Bodies whose
// file cannot be loaded get a procedural map or, with procedural maps
// disabled, no texture at all and are drawn in their flat color.
func (c *TextureCache) Resolve(s *scene.System) {
	s.Walk(func(b, _ *scene.Body) {
		b.TextureID = c.forBody(b)
	})
}

func (c *TextureCache) forBody(b *scene.Body) uint32 {
	if b.Texture != "" {
		if id, ok := c.file(b.Texture); ok {
			return id
		}
	}
	if !c.Procedural {
		return 0
	}
	key := "procedural:" + b.Name
	if id, ok := c.loaded[key]; ok {
		return id
	}
	img := texture.Procedural(seedFor(b.Name), fallbackSize, fallbackSize/2, b.Color)
	id := upload(img)
	c.loaded[key] = id
	c.log.Debug("procedural texture", zap.String("body", b.Name), zap.Uint32("id", id))
	return id
}

func (c *TextureCache) file(name string) (uint32, bool) {
	if id, ok := c.loaded[name]; ok {
		return id, true
	}
	if c.missing[name] {
		return 0, false
	}
	path := filepath.Join(c.Dir, name)
	img, err := texture.Load(path, c.MaxSize)
	if err != nil {
		c.log.Warn("failed to load texture", zap.String("path", path), zap.Error(err))
		c.missing[name] = true
		return 0, false
	}
	id := upload(img)
	c.loaded[name] = id
	c.log.Debug("loaded texture", zap.String("path", path),
		zap.Int("width", img.Rect.Dx()), zap.Int("height", img.Rect.Dy()))
	return id, true
}

// Release deletes every uploaded texture.
func (c *TextureCache) Release() {
	for key, id := range c.loaded {
		gl.DeleteTextures(1, &id)
		delete(c.loaded, key)
	}
	c.missing = map[string]bool{}
}

func upload(img *image.RGBA) uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(img.Rect.Dx()), int32(img.Rect.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return id
}

func seedFor(name string) int64 {
	h := fnv.New64a()
	h.Write([]byte(name))
	return int64(h.Sum64())
}
