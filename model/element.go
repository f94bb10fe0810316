package model

import (
	"image/color"

	"github.com/harbdog/raycaster-go"
	"github.com/harbdog/raycaster-go/geom"
)

// Element is a static billboard sprite placed in the level at load time.
type Element struct {
	// Position in world units
	Position geom.Vector2

	// Scale relative to a full wall height billboard
	Scale float64

	TextureID int
	Color     color.RGBA

	// Anchor decides where the billboard sits vertically in the view
	Anchor raycaster.SpriteAnchor
}

func NewElement(cellX, cellY, textureID int, tileSize float64, anchor raycaster.SpriteAnchor) Element {
	return Element{
		Position: geom.Vector2{
			X: (float64(cellX) + 0.5) * tileSize,
			Y: (float64(cellY) + 0.5) * tileSize,
		},
		Scale:     1.0,
		TextureID: textureID,
		Color:     color.RGBA{255, 255, 255, 255},
		Anchor:    anchor,
	}
}

func (e *Element) Pos() *geom.Vector2 {
	return &e.Position
}
