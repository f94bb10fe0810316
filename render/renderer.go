package render

import (
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"wolfcast/raycast"
	"wolfcast/texture"
)

var spriteBoxColor = color.RGBA{255, 0, 0, 255}

// Renderer draws cast frames with Ebitengine. GPU images for textures are created on first use.
type Renderer struct {
	textures *texture.Table
	images   map[int]*ebiten.Image

	white *ebiten.Image
	floor *FrameTexture

	halfWidth, height int
}

func NewRenderer(textures *texture.Table, halfWidth, height int) *Renderer {
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)

	return &Renderer{
		textures:  textures,
		images:    make(map[int]*ebiten.Image),
		white:     white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
		floor:     NewFrameTexture(halfWidth, height),
		halfWidth: halfWidth,
		height:    height,
	}
}

// Image returns the GPU image of a texture id, nil when the id is unknown.
func (r *Renderer) Image(id int) *ebiten.Image {
	if img, ok := r.images[id]; ok {
		return img
	}
	tex := r.textures.Get(id)
	if tex == nil {
		return nil
	}
	img := ebiten.NewImageFromImage(tex.Image)
	r.images[id] = img
	return img
}

// DrawQuad draws src stretched over the quad, tinted by its color.
func (r *Renderer) DrawQuad(dst, src *ebiten.Image, q Quad) {
	if src == nil {
		src = r.white
	}
	b := src.Bounds()

	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterNearest
	op.GeoM = QuadGeoM(q, b.Dx(), b.Dy())
	if q.Color != nil {
		op.ColorScale.ScaleWithColor(q.Color)
	}
	dst.DrawImage(src, op)
}

// FillQuad draws an untextured quad.
func (r *Renderer) FillQuad(dst *ebiten.Image, q Quad) {
	r.DrawQuad(dst, nil, q)
}

// DrawFloor uploads the floor and ceiling buffer and draws it over the 3D view.
func (r *Renderer) DrawFloor(dst *ebiten.Image, rgb []byte) error {
	if err := r.floor.Upload(rgb); err != nil {
		return err
	}
	r.DrawQuad(dst, r.floor.Image(), Quad{
		Position: mgl32.Vec2{float32(r.halfWidth), 0},
		Size:     mgl32.Vec2{float32(r.halfWidth), float32(r.height)},
	})
	return nil
}

// DrawWalls draws each wall slice as a one texel wide strip of its texture.
func (r *Renderer) DrawWalls(dst *ebiten.Image, walls []raycast.WallSlice) {
	for i := range walls {
		w := &walls[i]
		img := r.Image(w.TextureID)
		if img == nil || w.DrawEnd <= w.DrawStart {
			continue
		}
		tw, th := img.Bounds().Dx(), img.Bounds().Dy()

		col := clampInt(int(w.TexU*float64(tw)), 0, tw-1)
		y0, y1 := texRange(w.V0, w.V1, th)
		strip := img.SubImage(image.Rect(col, y0, col+1, y1)).(*ebiten.Image)

		shade := uint8(255 * w.Shade)
		r.DrawQuad(dst, strip, Quad{
			Position: mgl32.Vec2{float32(w.ScreenX), float32(w.DrawStart)},
			Size:     mgl32.Vec2{float32(w.Width), float32(w.DrawEnd - w.DrawStart)},
			Color:    color.RGBA{shade, shade, shade, 255},
		})
	}
}

// DrawSprites draws the visible sprite runs in the given order.
func (r *Renderer) DrawSprites(dst *ebiten.Image, sprites []raycast.SpriteDraw) {
	for i := range sprites {
		s := &sprites[i]
		img := r.Image(s.TextureID)
		if img == nil || s.X1 <= s.X0 {
			continue
		}
		tw, th := img.Bounds().Dx(), img.Bounds().Dy()

		x0, x1 := texRange(s.U0, s.U1, tw)
		run := img.SubImage(image.Rect(x0, 0, x1, th)).(*ebiten.Image)

		r.DrawQuad(dst, run, Quad{
			Position: mgl32.Vec2{float32(s.X0), float32(s.Top)},
			Size:     mgl32.Vec2{float32(s.X1 - s.X0), float32(s.Height)},
			Color:    s.Color,
		})
	}
}

// DrawSpriteBoxes outlines every visible sprite run.
func (r *Renderer) DrawSpriteBoxes(dst *ebiten.Image, sprites []raycast.SpriteDraw) {
	for _, s := range sprites {
		minX, minY := float32(s.X0), float32(s.Top)
		w, h := float32(s.X1-s.X0), float32(s.Height)
		vector.StrokeRect(dst, minX, minY, w, h, 1, spriteBoxColor, false)
	}
}

// Close releases the GPU images owned by the renderer.
func (r *Renderer) Close() {
	for id, img := range r.images {
		img.Deallocate()
		delete(r.images, id)
	}
	r.floor.Close()
}

// texRange converts a [from, to] fraction of n texels to a non-empty pixel range.
func texRange(from, to float64, n int) (int, int) {
	lo := clampInt(int(math.Floor(from*float64(n))), 0, n-1)
	hi := clampInt(int(math.Ceil(to*float64(n))), lo+1, n)
	return lo, hi
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
