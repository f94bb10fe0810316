package raycast

import (
	"math"

	"github.com/harbdog/raycaster-go/geom"
)

const (
	// minPerpDistance keeps the projected wall height finite when the player touches a wall
	minPerpDistance = 1e-4

	sideX = 0
	sideY = 1

	sideYShade = 0.5
)

// WallGrid is the part of the map the DDA walks through.
type WallGrid interface {
	InBounds(x, y int) bool
	Wall(x, y int) int
}

// Hit is the result of marching one ray through the grid, in grid units.
type Hit struct {
	MapX, MapY int
	// Tile is the wall code that stopped the ray, 0 when the ray left the grid
	Tile int
	// Side is 0 when an X grid line was crossed last, 1 for a Y grid line
	Side int
	// PerpDistance is measured to the camera plane, not to the camera point
	PerpDistance float64
	// WallX is the fractional position of the hit along the wall face
	WallX float64
	Point geom.Vector2
	Steps int
}

// CastRay runs a DDA from pos along rayDir until a non-empty wall cell is entered
// or the ray leaves the grid.
func CastRay(grid WallGrid, pos, rayDir geom.Vector2) Hit {
	mapX, mapY := int(math.Floor(pos.X)), int(math.Floor(pos.Y))

	// a zero component yields +Inf, so the DDA never steps along that axis
	deltaDistX := math.Abs(1 / rayDir.X)
	deltaDistY := math.Abs(1 / rayDir.Y)

	var (
		stepX, stepY         int
		sideDistX, sideDistY float64
	)
	switch {
	case rayDir.X < 0:
		stepX = -1
		sideDistX = (pos.X - float64(mapX)) * deltaDistX
	case rayDir.X > 0:
		stepX = 1
		sideDistX = (float64(mapX) + 1.0 - pos.X) * deltaDistX
	default:
		stepX = 1
		sideDistX = math.Inf(1)
	}
	switch {
	case rayDir.Y < 0:
		stepY = -1
		sideDistY = (pos.Y - float64(mapY)) * deltaDistY
	case rayDir.Y > 0:
		stepY = 1
		sideDistY = (float64(mapY) + 1.0 - pos.Y) * deltaDistY
	default:
		stepY = 1
		sideDistY = math.Inf(1)
	}

	hit := Hit{Side: sideX}
	for {
		if sideDistX < sideDistY {
			sideDistX += deltaDistX
			mapX += stepX
			hit.Side = sideX
		} else {
			sideDistY += deltaDistY
			mapY += stepY
			hit.Side = sideY
		}
		hit.Steps++

		if !grid.InBounds(mapX, mapY) {
			break
		}
		if tile := grid.Wall(mapX, mapY); tile != 0 {
			hit.Tile = tile
			break
		}
	}
	hit.MapX, hit.MapY = mapX, mapY

	// back up one step to undo the overshoot
	if hit.Side == sideX {
		hit.PerpDistance = sideDistX - deltaDistX
	} else {
		hit.PerpDistance = sideDistY - deltaDistY
	}
	switch {
	case math.IsNaN(hit.PerpDistance), math.IsInf(hit.PerpDistance, 0):
		hit.PerpDistance = math.Inf(1)
		hit.Point = pos
		return hit
	case hit.PerpDistance < minPerpDistance:
		hit.PerpDistance = minPerpDistance
	}

	hit.Point = geom.Vector2{
		X: pos.X + hit.PerpDistance*rayDir.X,
		Y: pos.Y + hit.PerpDistance*rayDir.Y,
	}
	if hit.Side == sideX {
		hit.WallX = hit.Point.Y
	} else {
		hit.WallX = hit.Point.X
	}
	hit.WallX -= math.Floor(hit.WallX)

	return hit
}

// WallSlice is one textured vertical strip of the 3D view, in screen pixels.
type WallSlice struct {
	// ScreenX is the left screen column of the strip, already offset into the right half
	ScreenX int
	Width   int

	// LineStart and LineEnd span the full projected wall, DrawStart and DrawEnd the visible part
	LineStart, LineEnd float64
	DrawStart, DrawEnd float64

	TextureID int
	// TexU selects the texture column as a fraction of the texture width
	TexU float64
	// V0 and V1 are the texture rows, as fractions, visible between DrawStart and DrawEnd
	V0, V1 float64

	Side     int
	Shade    float64
	Distance float64

	// Hit is the world position where the ray stopped
	Hit geom.Vector2
}

// CastWalls casts one ray per RayDensity columns of the 3D view and fills fc.Depth.
func (c *Caster) CastWalls(fc *FrameContext) []WallSlice {
	halfW, h := c.settings.HalfWidth(), float64(c.settings.ScreenHeight)
	density := c.settings.RayDensity

	if len(fc.Depth) != halfW {
		fc.Depth = NewDepthBuffer(halfW)
	}

	p := fc.Player
	ts := fc.Grid.TileSize()
	pos := fc.Grid.ToGrid(p.Position)

	c.walls = c.walls[:0]
	for x := 0; x < halfW; x += density {
		cameraX := 2*float64(x)/float64(halfW) - 1
		rayDir := geom.Vector2{
			X: p.Direction.X + p.Plane.X*cameraX,
			Y: p.Direction.Y + p.Plane.Y*cameraX,
		}

		hit := CastRay(fc.Grid, pos, rayDir)

		width := min(density, halfW-x)
		for i := x; i < x+width; i++ {
			fc.Depth[i] = hit.PerpDistance
		}

		if hit.Tile == 0 {
			continue
		}

		lineHeight := h / hit.PerpDistance
		lineStart := h/2 - lineHeight/2
		lineEnd := h/2 + lineHeight/2
		drawStart := math.Max(lineStart, 0)
		drawEnd := math.Min(lineEnd, h)

		shade := 1.0
		if hit.Side == sideY {
			shade = sideYShade
		}

		c.walls = append(c.walls, WallSlice{
			ScreenX:   x + halfW,
			Width:     width,
			LineStart: lineStart,
			LineEnd:   lineEnd,
			DrawStart: drawStart,
			DrawEnd:   drawEnd,
			TextureID: hit.Tile,
			TexU:      hit.WallX,
			V0:        (drawStart - lineStart) / lineHeight,
			V1:        (drawEnd - lineStart) / lineHeight,
			Side:      hit.Side,
			Shade:     shade,
			Distance:  hit.PerpDistance,
			Hit:       geom.Vector2{X: hit.Point.X * ts, Y: hit.Point.Y * ts},
		})
	}
	return c.walls
}
