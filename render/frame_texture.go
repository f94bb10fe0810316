package render

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// Surface receives RGBA pixel uploads. *ebiten.Image implements it.
type Surface interface {
	WritePixels(pixels []byte)
}

// FrameTexture is a texture created on the first upload and updated in place afterwards.
type FrameTexture struct {
	width, height int

	newSurface func(width, height int) Surface
	surface    Surface
	rgba       []byte

	creations int
}

func NewFrameTexture(width, height int) *FrameTexture {
	return NewFrameTextureWith(width, height, func(w, h int) Surface {
		return ebiten.NewImage(w, h)
	})
}

// NewFrameTextureWith uses newSurface to create the backing surface.
func NewFrameTextureWith(width, height int, newSurface func(width, height int) Surface) *FrameTexture {
	return &FrameTexture{
		width:      width,
		height:     height,
		newSurface: newSurface,
		rgba:       make([]byte, width*height*4),
	}
}

func (f *FrameTexture) Initialized() bool { return f.surface != nil }

// Creations counts how many surfaces were created, at most one.
func (f *FrameTexture) Creations() int { return f.creations }

// Upload writes a tightly packed RGB buffer of width x height pixels.
func (f *FrameTexture) Upload(rgb []byte) error {
	if len(rgb) != f.width*f.height*3 {
		return fmt.Errorf("frame texture upload: got %d bytes, want %d for %dx%d RGB", len(rgb), f.width*f.height*3, f.width, f.height)
	}

	for i, j := 0, 0; i < len(rgb); i, j = i+3, j+4 {
		f.rgba[j] = rgb[i]
		f.rgba[j+1] = rgb[i+1]
		f.rgba[j+2] = rgb[i+2]
		f.rgba[j+3] = 0xff
	}

	if f.surface == nil {
		f.surface = f.newSurface(f.width, f.height)
		f.creations++
	}
	f.surface.WritePixels(f.rgba)
	return nil
}

// Image returns the backing ebiten image, nil before the first upload or for other surfaces.
func (f *FrameTexture) Image() *ebiten.Image {
	img, _ := f.surface.(*ebiten.Image)
	return img
}

func (f *FrameTexture) Size() (int, int) { return f.width, f.height }

func (f *FrameTexture) Close() {
	if img := f.Image(); img != nil {
		img.Deallocate()
	}
	f.surface = nil
}
