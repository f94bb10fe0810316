package raycast

import (
	"image/color"
	"math"

	"github.com/harbdog/raycaster-go"
)

// SpriteDraw is one visible run of contiguous sprite columns.
type SpriteDraw struct {
	// Element is the index of the sprite in FrameContext.Elements
	Element   int
	TextureID int
	Color     color.RGBA

	// X0 and X1 bound the run in screen columns, X1 exclusive
	X0, X1 int
	// U0 and U1 are the texture columns, as fractions, shown between X0 and X1
	U0, U1 float64

	// Top and Height place the unclipped billboard vertically
	Top, Height float64

	// Depth is the camera space distance used for the depth test
	Depth float64
}

// CastSprites projects the level elements farthest first and clips them column by
// column against fc.Depth, which CastWalls must have filled this frame.
func (c *Caster) CastSprites(fc *FrameContext) []SpriteDraw {
	c.sprites = c.sprites[:0]

	n := len(fc.Elements)
	if n == 0 {
		return c.sprites
	}
	if cap(c.spriteOrder) < n {
		c.spriteOrder = make([]int, n)
		c.spriteDistance = make([]float64, n)
	}
	c.spriteOrder = c.spriteOrder[:n]
	c.spriteDistance = c.spriteDistance[:n]

	p := fc.Player
	pos := fc.Grid.ToGrid(p.Position)

	for i := range fc.Elements {
		sp := fc.Grid.ToGrid(fc.Elements[i].Position)
		dx, dy := pos.X-sp.X, pos.Y-sp.Y
		c.spriteOrder[i] = i
		c.spriteDistance[i] = dx*dx + dy*dy
	}
	SortSprites(c.spriteOrder, c.spriteDistance)

	invDet := 1.0 / (p.Plane.X*p.Direction.Y - p.Direction.X*p.Plane.Y)
	for _, idx := range c.spriteOrder {
		c.castSprite(fc, idx, pos.X, pos.Y, invDet)
	}
	return c.sprites
}

func (c *Caster) castSprite(fc *FrameContext, idx int, posX, posY, invDet float64) {
	halfW, w := float64(c.settings.HalfWidth()), float64(c.settings.ScreenWidth)
	h := float64(c.settings.ScreenHeight)

	e := &fc.Elements[idx]
	p := fc.Player
	sp := fc.Grid.ToGrid(e.Position)
	spriteX, spriteY := sp.X-posX, sp.Y-posY

	transformX := invDet * (p.Direction.Y*spriteX - p.Direction.X*spriteY)
	transformY := invDet * (-p.Plane.Y*spriteX + p.Plane.X*spriteY)

	// behind the camera plane
	if transformY <= 0 {
		return
	}

	scale := e.Scale
	if scale <= 0 {
		scale = 1
	}
	fullSize := math.Abs(h / transformY)
	size := fullSize * scale

	screenX := (halfW/2)*(1+transformX/transformY) + halfW
	startX := screenX - size/2
	endX := screenX + size/2

	// clamped before the int conversion, a sprite near the camera plane spans huge ranges
	visStart := math.Max(startX, halfW)
	visEnd := math.Min(endX, w)
	if visStart >= visEnd {
		return
	}
	// a column belongs to the sprite when its pixel center is covered
	x0, x1 := int(math.Ceil(visStart-0.5)), int(math.Ceil(visEnd-0.5))

	top := h/2 - size/2 + anchorOffset(e.Anchor, fullSize, size)

	// U is derived from the unclamped range so a partly visible sprite shows only its visible slice
	u := func(x int) float64 {
		return clampUnit((float64(x) - startX) / size)
	}

	run := -1
	for stripe := x0; stripe <= x1; stripe++ {
		visible := stripe < x1 && transformY < fc.Depth.At(stripe-int(halfW))
		switch {
		case visible && run < 0:
			run = stripe
		case !visible && run >= 0:
			c.sprites = append(c.sprites, SpriteDraw{
				Element:   idx,
				TextureID: e.TextureID,
				Color:     e.Color,
				X0:        run,
				X1:        stripe,
				U0:        u(run),
				U1:        u(stripe),
				Top:       top,
				Height:    size,
				Depth:     transformY,
			})
			run = -1
		}
	}
}

// anchorOffset moves a scaled billboard so its bottom or top edge stays on the floor or ceiling line.
func anchorOffset(anchor raycaster.SpriteAnchor, fullSize, size float64) float64 {
	switch anchor {
	case raycaster.AnchorBottom:
		return (fullSize - size) / 2
	case raycaster.AnchorTop:
		return -(fullSize - size) / 2
	}
	return 0
}

func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
