package app

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
)

// Text rasterizes wrapped text with SDL_ttf into tightly packed RGBA rows.
type Text struct {
	font  *ttf.Font
	Color sdl.Color
	Width int
}

// OpenText initializes SDL_ttf and opens the font. Close releases both.
func OpenText(path string, size, width int) (*Text, error) {
	if err := ttf.Init(); err != nil {
		return nil, fmt.Errorf("init ttf: %w", err)
	}
	font, err := ttf.OpenFont(path, size)
	if err != nil {
		ttf.Quit()
		return nil, fmt.Errorf("open font %s: %w", path, err)
	}
	return &Text{
		font:  font,
		Color: sdl.Color{R: 255, G: 0, B: 255, A: 255},
		Width: width,
	}, nil
}

// Render returns the pixels of s and their size.
func (t *Text) Render(s string) ([]byte, int, int, error) {
	surf, err := t.font.RenderUTF8BlendedWrapped(s, t.Color, t.Width)
	if err != nil {
		return nil, 0, 0, err
	}
	defer surf.Free()

	rgba, err := surf.ConvertFormat(uint32(sdl.PIXELFORMAT_RGBA32), 0)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rgba.Free()

	w, h := int(rgba.W), int(rgba.H)
	pitch := int(rgba.Pitch)
	src := rgba.Pixels()
	pix := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		copy(pix[y*w*4:(y+1)*w*4], src[y*pitch:y*pitch+w*4])
	}
	return pix, w, h, nil
}

func (t *Text) Close() {
	t.font.Close()
	ttf.Quit()
}
