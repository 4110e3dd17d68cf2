package texture

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tex.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func TestLoadFlipsVertically(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}
	src.SetRGBA(0, 0, red)
	src.SetRGBA(1, 0, red)
	src.SetRGBA(0, 1, blue)
	src.SetRGBA(1, 1, blue)

	img, err := Load(writePNG(t, src), 0)
	require.NoError(t, err)

	assert.Equal(t, blue, img.RGBAAt(0, 0))
	assert.Equal(t, red, img.RGBAAt(0, 1))
}

func TestLoadClampsSize(t *testing.T) {
	tests := []struct {
		name         string
		w, h, max    int
		wantW, wantH int
	}{
		{"Wide", 400, 200, 100, 100, 50},
		{"Tall", 100, 300, 150, 50, 150},
		{"Already small", 64, 32, 128, 64, 32},
		{"No limit", 300, 10, 0, 300, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := Prepare(image.NewRGBA(image.Rect(0, 0, tt.w, tt.h)), tt.max)
			assert.Equal(t, tt.wantW, img.Bounds().Dx())
			assert.Equal(t, tt.wantH, img.Bounds().Dy())
		})
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.jpg"), 0)
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "junk.jpg")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))
	_, err = Load(path, 0)
	assert.Error(t, err)
}

func TestProceduralIsTintedAndStable(t *testing.T) {
	a := Procedural(7, 32, 16, [3]float32{1, 0, 0})
	b := Procedural(7, 32, 16, [3]float32{1, 0, 0})

	assert.Equal(t, image.Rect(0, 0, 32, 16), a.Bounds())
	assert.Equal(t, a.Pix, b.Pix)

	for y := 0; y < 16; y++ {
		for x := 0; x < 32; x++ {
			c := a.RGBAAt(x, y)
			assert.Zero(t, c.G)
			assert.Zero(t, c.B)
			assert.Equal(t, uint8(255), c.A)
		}
	}
}

func TestStarfield(t *testing.T) {
	stars := Starfield(3, 200, 50)
	require.Len(t, stars, 200)

	for _, s := range stars {
		r := s.Pos[0]*s.Pos[0] + s.Pos[1]*s.Pos[1] + s.Pos[2]*s.Pos[2]
		assert.InDelta(t, 2500, r, 0.5)
		assert.GreaterOrEqual(t, s.Brightness, float32(0.2))
		assert.LessOrEqual(t, s.Brightness, float32(1.0001))
	}
	assert.Equal(t, stars, Starfield(3, 200, 50))
}
