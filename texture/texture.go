package texture

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

// Texture is a CPU-side RGBA image sampled by the floor caster and uploaded
// to the GPU by the renderer.
type Texture struct {
	ID    int
	Path  string
	Image *image.RGBA

	// Fallback is set when the source could not be decoded
	Fallback bool
}

// FromImage converts any decoded image into an RGBA texture anchored at the origin.
func FromImage(id int, img image.Image) *Texture {
	b := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || b.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}
	return &Texture{ID: id, Image: rgba}
}

func (t *Texture) Width() int  { return t.Image.Rect.Dx() }
func (t *Texture) Height() int { return t.Image.Rect.Dy() }

// RGBAt returns the texel at (x, y), wrapping coordinates with modulo so any
// texture size works.
func (t *Texture) RGBAt(x, y int) color.RGBA {
	w, h := t.Width(), t.Height()
	if w == 0 || h == 0 {
		return color.RGBA{}
	}
	x %= w
	if x < 0 {
		x += w
	}
	y %= h
	if y < 0 {
		y += h
	}
	i := y*t.Image.Stride + x*4
	p := t.Image.Pix[i : i+4 : i+4]
	return color.RGBA{p[0], p[1], p[2], p[3]}
}

// Sample returns the texel at normalized coordinates; only the fractional part of u and v is used.
func (t *Texture) Sample(u, v float64) color.RGBA {
	u -= math.Floor(u)
	v -= math.Floor(v)
	return t.RGBAt(int(u*float64(t.Width())), int(v*float64(t.Height())))
}

// NewFallback builds a magenta and black checkerboard used in place of an unreadable texture.
func NewFallback(id, size int) *Texture {
	if size <= 0 {
		size = 64
	}
	cell := size / 8
	if cell == 0 {
		cell = 1
	}
	magenta := color.RGBA{255, 0, 255, 255}
	black := color.RGBA{0, 0, 0, 255}

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.SetRGBA(x, y, magenta)
			} else {
				img.SetRGBA(x, y, black)
			}
		}
	}
	return &Texture{ID: id, Image: img, Fallback: true}
}
