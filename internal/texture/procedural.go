package texture

import (
	"image"
	"image/color"
	"math"

	"github.com/ojrac/opensimplex-go"
)

// noiseScale sets the feature size of the surface noise on the unit sphere.
const noiseScale = 3.0

// Procedural paints an equirectangular surface for bodies whose texture
// file is missing. The noise is sampled on the unit sphere so the map has
// no seam at u=0/1. tint is linear RGB in [0,1].
func Procedural(seed int64, w, h int, tint [3]float32) *image.RGBA {
	noise := opensimplex.NewNormalized(seed)
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	for y := 0; y < h; y++ {
		lat := math.Pi/2 - math.Pi*(float64(y)+0.5)/float64(h)
		for x := 0; x < w; x++ {
			lon := 2 * math.Pi * (float64(x) + 0.5) / float64(w)
			px := math.Cos(lat) * math.Cos(lon)
			py := math.Sin(lat)
			pz := math.Cos(lat) * math.Sin(lon)

			n := noise.Eval3(px*noiseScale, py*noiseScale, pz*noiseScale)
			// latitude bands like gas giants, broken up by the noise
			band := 0.5 + 0.5*math.Sin(lat*8+n*4)
			shade := 0.55 + 0.3*n + 0.15*band

			img.SetRGBA(x, y, color.RGBA{
				R: channel(tint[0], shade),
				G: channel(tint[1], shade),
				B: channel(tint[2], shade),
				A: 255,
			})
		}
	}
	return img
}

func channel(c float32, shade float64) uint8 {
	v := float64(c) * shade * 255
	if v > 255 {
		v = 255
	}
	if v < 0 {
		v = 0
	}
	return uint8(v)
}

// Star is a background point on a sphere around the origin.
type Star struct {
	Pos        [3]float32
	Brightness float32
}

// Starfield spreads count stars evenly over a sphere of the given radius
// (Fibonacci lattice) and jitters and dims them with noise.
func Starfield(seed int64, count int, radius float32) []Star {
	noise := opensimplex.NewNormalized(seed)
	golden := math.Pi * (3 - math.Sqrt(5))
	stars := make([]Star, count)

	for i := range stars {
		fi := float64(i)
		y := 1 - 2*(fi+0.5)/float64(count)
		r := math.Sqrt(1 - y*y)
		theta := golden*fi + 2*noise.Eval2(fi*0.37, 0.5)

		x := math.Cos(theta) * r
		z := math.Sin(theta) * r
		b := noise.Eval3(x*40, y*40, z*40)

		stars[i] = Star{
			Pos:        [3]float32{float32(x) * radius, float32(y) * radius, float32(z) * radius},
			Brightness: float32(0.2 + 0.8*b*b),
		}
	}
	return stars
}
