package main

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"wolfcast/level"
	"wolfcast/model"
	"wolfcast/raycast"
	"wolfcast/render"
)

var (
	mapFloorColor  = color.RGBA{40, 40, 40, 255}
	mapRayColor    = color.RGBA{255, 220, 0, 90}
	mapPlayerColor = color.RGBA{0, 255, 255, 255}
	mapSpriteColor = color.RGBA{255, 255, 255, 255}
)

// Minimap draws the top-down view on the left half of the screen. One map tile is
// one tile size in pixels, so world coordinates are screen coordinates.
type Minimap struct {
	renderer *render.Renderer
	level    *level.Level
	showRays bool

	// tiles is the static layer, drawn on first use
	tiles *ebiten.Image
}

func NewMinimap(r *render.Renderer, lvl *level.Level, showRays bool) *Minimap {
	return &Minimap{renderer: r, level: lvl, showRays: showRays}
}

func (m *Minimap) generateTiles() {
	grid := m.level.Grid
	ts := float32(grid.TileSize())
	w, h := int(float32(grid.Width())*ts+0.5), int(float32(grid.Height())*ts+0.5)

	m.tiles = ebiten.NewImage(w, h)
	m.tiles.Fill(mapFloorColor)

	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			code := grid.Wall(x, y)
			if code == 0 {
				continue
			}
			m.renderer.DrawQuad(m.tiles, m.renderer.Image(code), render.Quad{
				Position: mgl32.Vec2{float32(x) * ts, float32(y) * ts},
				Size:     mgl32.Vec2{ts, ts},
			})
		}
	}
}

func (m *Minimap) Draw(screen *ebiten.Image, player *model.Player, walls []raycast.WallSlice) {
	if m.tiles == nil {
		m.generateTiles()
	}
	screen.DrawImage(m.tiles, nil)

	ts := float32(m.level.Grid.TileSize())
	px, py := float32(player.Position.X), float32(player.Position.Y)

	if m.showRays {
		for i := range walls {
			hit := walls[i].Hit
			vector.StrokeLine(screen, px, py, float32(hit.X), float32(hit.Y), 1, mapRayColor, false)
		}
	}

	// sprites as small textured quads centered on their position
	size := ts / 2
	for _, e := range m.level.Elements {
		m.renderer.DrawQuad(screen, m.renderer.Image(e.TextureID), render.Quad{
			Position: mgl32.Vec2{float32(e.Position.X) - size/2, float32(e.Position.Y) - size/2},
			Size:     mgl32.Vec2{size, size},
			Color:    mapSpriteColor,
		})
	}

	// player as a quad rotated to the heading, longer along the direction
	pw, ph := ts/2, ts/4
	m.renderer.FillQuad(screen, render.Quad{
		Position: mgl32.Vec2{px - pw/2, py - ph/2},
		Size:     mgl32.Vec2{pw, ph},
		Rotation: mgl32.RadToDeg(float32(player.Heading())),
		Pivot:    mgl32.Vec2{0.5, 0.5},
		Color:    mapPlayerColor,
	})
	vector.StrokeLine(screen, px, py,
		px+float32(player.Direction.X)*ts, py+float32(player.Direction.Y)*ts,
		1, mapPlayerColor, false)
}

func (m *Minimap) Close() {
	if m.tiles != nil {
		m.tiles.Deallocate()
		m.tiles = nil
	}
}
