package level

import (
	"fmt"

	"github.com/harbdog/raycaster-go/geom"
)

// GridMap holds the three co-indexed tile layers of a level. Layers are indexed [row][col],
// that is [y][x], and are never mutated after load.
type GridMap struct {
	wall    [][]int
	floor   [][]int
	ceiling [][]int

	width    int
	height   int
	tileSize float64
}

// NewGridMap validates that all layers share the same rectangular dimensions.
func NewGridMap(wall, floor, ceiling [][]int, tileSize float64) (*GridMap, error) {
	if len(wall) == 0 || len(wall[0]) == 0 {
		return nil, fmt.Errorf("wall layer: %w", ErrEmptyGrid)
	}
	height, width := len(wall), len(wall[0])

	layers := []struct {
		name string
		grid [][]int
	}{
		{"wall", wall},
		{"floor", floor},
		{"ceiling", ceiling},
	}
	for _, l := range layers {
		if len(l.grid) != height {
			return nil, fmt.Errorf("%s layer has %d rows, wall layer has %d: %w", l.name, len(l.grid), height, ErrDimensionMismatch)
		}
		for y, row := range l.grid {
			if len(row) != width {
				return nil, fmt.Errorf("%s layer row %d has %d columns, want %d: %w", l.name, y, len(row), width, ErrDimensionMismatch)
			}
		}
	}

	if tileSize <= 0 {
		return nil, fmt.Errorf("invalid tile size %v", tileSize)
	}

	return &GridMap{
		wall:     wall,
		floor:    floor,
		ceiling:  ceiling,
		width:    width,
		height:   height,
		tileSize: tileSize,
	}, nil
}

func (g *GridMap) Width() int        { return g.width }
func (g *GridMap) Height() int       { return g.height }
func (g *GridMap) TileSize() float64 { return g.tileSize }

func (g *GridMap) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

// Wall returns the wall tile code at the given cell, 0 when out of bounds.
func (g *GridMap) Wall(x, y int) int {
	if !g.InBounds(x, y) {
		return 0
	}
	return g.wall[y][x]
}

func (g *GridMap) Floor(x, y int) int {
	if !g.InBounds(x, y) {
		return 0
	}
	return g.floor[y][x]
}

func (g *GridMap) Ceiling(x, y int) int {
	if !g.InBounds(x, y) {
		return 0
	}
	return g.ceiling[y][x]
}

// Solid reports whether the cell holds a wall.
func (g *GridMap) Solid(x, y int) bool {
	return g.Wall(x, y) != 0
}

// ToGrid converts a world position to fractional grid-cell coordinates.
func (g *GridMap) ToGrid(world geom.Vector2) geom.Vector2 {
	return geom.Vector2{X: world.X / g.tileSize, Y: world.Y / g.tileSize}
}

// ToWorld converts grid-cell coordinates to a world position.
func (g *GridMap) ToWorld(grid geom.Vector2) geom.Vector2 {
	return geom.Vector2{X: grid.X * g.tileSize, Y: grid.Y * g.tileSize}
}
