package model

import "math"

// Obstacles reports whether a grid cell blocks movement.
type Obstacles interface {
	InBounds(cellX, cellY int) bool
	Solid(cellX, cellY int) bool
}

// blocked checks the cell containing the grid-space point (x, y).
// Points outside the grid count as blocked.
func blocked(grid Obstacles, x, y float64) bool {
	if grid == nil {
		return false
	}
	cellX, cellY := int(math.Floor(x)), int(math.Floor(y))
	if !grid.InBounds(cellX, cellY) {
		return true
	}
	return grid.Solid(cellX, cellY)
}
