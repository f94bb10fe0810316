package raycast

import (
	"math"
)

// CastFloorCeiling projects every scanline below the horizon onto the floor plane and
// fills an RGB buffer of HalfWidth x ScreenHeight pixels. The ceiling row for floor row y
// is ScreenHeight-1-y. Cells outside the grid and tiles with code 0 are left black.
// The returned buffer is reused by the next call.
func (c *Caster) CastFloorCeiling(fc *FrameContext) []byte {
	halfW, h := c.settings.HalfWidth(), c.settings.ScreenHeight
	clear(c.floor)

	p := fc.Player
	grid := fc.Grid
	pos := grid.ToGrid(p.Position)

	rayDirLeftX, rayDirLeftY := p.Direction.X-p.Plane.X, p.Direction.Y-p.Plane.Y
	rayDirRightX, rayDirRightY := p.Direction.X+p.Plane.X, p.Direction.Y+p.Plane.Y

	// camera height, with the projection plane at distance 1
	posZ := 0.5 * float64(h)

	// row h/2 is the horizon, where the row distance is infinite
	for y := h/2 + 1; y < h; y++ {
		rowDistance := posZ / float64(y-h/2)

		stepX := rowDistance * (rayDirRightX - rayDirLeftX) / float64(halfW)
		stepY := rowDistance * (rayDirRightY - rayDirLeftY) / float64(halfW)

		floorX := pos.X + rowDistance*rayDirLeftX
		floorY := pos.Y + rowDistance*rayDirLeftY

		floorRow := y * halfW * 3
		ceilRow := (h - 1 - y) * halfW * 3

		for x := 0; x < halfW; x++ {
			cellX, cellY := int(math.Floor(floorX)), int(math.Floor(floorY))
			fracX, fracY := floorX-float64(cellX), floorY-float64(cellY)
			floorX += stepX
			floorY += stepY

			if !grid.InBounds(cellX, cellY) {
				continue
			}

			if tex := c.lookup(fc, grid.Floor(cellX, cellY)); tex != nil {
				px := tex.Sample(fracX, fracY)
				i := floorRow + x*3
				c.floor[i], c.floor[i+1], c.floor[i+2] = px.R, px.G, px.B
			}
			if tex := c.lookup(fc, grid.Ceiling(cellX, cellY)); tex != nil {
				px := tex.Sample(fracX, fracY)
				i := ceilRow + x*3
				c.floor[i], c.floor[i+1], c.floor[i+2] = px.R, px.G, px.B
			}
		}
	}
	return c.floor
}
