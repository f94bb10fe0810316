package model

import (
	"math"

	"github.com/harbdog/raycaster-go/geom"
)

const (
	// renormalizeInterval is the number of rotations between direction/plane renormalization
	renormalizeInterval = 1024

	defaultPlayerSpeed    = 3.0
	defaultRotationSpeed  = 2.5
	defaultPlayerHitbox   = 0.2
	defaultFovDegrees     = 66.0
	sprintVelocityFactor  = 2.0
	minPlayerPlaneLength  = 1e-9
	minPlayerVectorLength = 1e-9
)

// PlayerConfig holds tunables given in grid units so they are independent of the tile size.
type PlayerConfig struct {
	// Speed in tiles per second
	Speed float64
	// RotationSpeed in radians per second
	RotationSpeed float64
	// Hitbox is the half-extent of the collision probe in tiles
	Hitbox float64
	// FovDegrees is the horizontal field of view encoded by the camera plane
	FovDegrees float64
}

func DefaultPlayerConfig() PlayerConfig {
	return PlayerConfig{
		Speed:         defaultPlayerSpeed,
		RotationSpeed: defaultRotationSpeed,
		Hitbox:        defaultPlayerHitbox,
		FovDegrees:    defaultFovDegrees,
	}
}

// Player is the camera: position in world units plus a direction vector and a camera plane
// perpendicular to it whose length relative to the direction encodes the field of view.
type Player struct {
	Position  geom.Vector2
	Direction geom.Vector2
	Plane     geom.Vector2

	// Velocity in world units per second
	Velocity float64
	// RotationSpeed in radians per second
	RotationSpeed float64
	// Hitbox in grid units
	Hitbox float64

	IsRunning bool
	TileSize  float64

	// PlaneRatio is |plane| / |direction| at spawn, restored on renormalization
	PlaneRatio float64

	Moved bool

	rotations int
}

// NewPlayer spawns a player centered in the given grid cell, facing the given heading.
func NewPlayer(cellX, cellY int, facingDegrees, tileSize float64, cfg PlayerConfig) *Player {
	angle := geom.Radians(facingDegrees)
	ratio := math.Tan(geom.Radians(cfg.FovDegrees) / 2)

	dir := geom.Vector2{X: math.Cos(angle), Y: math.Sin(angle)}

	p := &Player{
		Position: geom.Vector2{
			X: (float64(cellX) + 0.5) * tileSize,
			Y: (float64(cellY) + 0.5) * tileSize,
		},
		Direction: dir,
		// rotated a quarter turn clockwise (y grows downward), so the right screen edge is +cameraX
		Plane:         geom.Vector2{X: -dir.Y * ratio, Y: dir.X * ratio},
		Velocity:      cfg.Speed * tileSize,
		RotationSpeed: cfg.RotationSpeed,
		Hitbox:        cfg.Hitbox,
		TileSize:      tileSize,
		PlaneRatio:    ratio,
		Moved:         true,
	}

	return p
}

// GridPos returns the player position converted to grid-cell coordinates.
func (p *Player) GridPos() geom.Vector2 {
	return geom.Vector2{X: p.Position.X / p.TileSize, Y: p.Position.Y / p.TileSize}
}

// Update applies one frame of input over dt seconds.
func (p *Player) Update(in InputState, dt float64, grid Obstacles) {
	p.SetRunning(in.Pressed(KeySprint))

	if in.Pressed(KeyForward) {
		p.Move(1, dt, grid)
	} else if in.Pressed(KeyBackward) {
		p.Move(-1, dt, grid)
	}

	if in.Pressed(KeyStrafeLeft) {
		p.Strafe(-1, dt, grid)
	} else if in.Pressed(KeyStrafeRight) {
		p.Strafe(1, dt, grid)
	}

	if in.Pressed(KeyRotateLeft) {
		p.Rotate(-p.RotationSpeed * dt)
	} else if in.Pressed(KeyRotateRight) {
		p.Rotate(p.RotationSpeed * dt)
	}
}

// SetRunning latches the sprint state. Velocity is doubled only on the press edge and
// halved only on the release edge, so holding the key never compounds the scaling.
// Returns true when the state changed.
func (p *Player) SetRunning(held bool) bool {
	switch {
	case held && !p.IsRunning:
		p.IsRunning = true
		p.Velocity *= sprintVelocityFactor
		return true
	case !held && p.IsRunning:
		p.IsRunning = false
		p.Velocity /= sprintVelocityFactor
		return true
	}
	return false
}

// Move player forward (sign > 0) or backward (sign < 0) along the direction vector
func (p *Player) Move(sign, dt float64, grid Obstacles) {
	step := sign * p.Velocity * dt
	p.moveBy(p.Direction.X*step, p.Direction.Y*step, grid)
}

// Strafe player right (sign > 0) or left (sign < 0) along the camera plane
func (p *Player) Strafe(sign, dt float64, grid Obstacles) {
	length := math.Hypot(p.Plane.X, p.Plane.Y)
	if length < minPlayerPlaneLength {
		return
	}
	step := sign * p.Velocity * dt / length
	p.moveBy(p.Plane.X*step, p.Plane.Y*step, grid)
}

func (p *Player) moveBy(dx, dy float64, grid Obstacles) {
	if dx == 0 && dy == 0 {
		return
	}

	ts := p.TileSize
	gridX, gridY := p.Position.X/ts, p.Position.Y/ts
	nextX, nextY := (p.Position.X+dx)/ts, (p.Position.Y+dy)/ts

	// each axis is resolved on its own so the player slides along walls
	if dx != 0 && !blocked(grid, nextX+math.Copysign(p.Hitbox, dx), gridY) {
		p.Position.X += dx
		gridX = nextX
		p.Moved = true
	}
	if dy != 0 && !blocked(grid, gridX, nextY+math.Copysign(p.Hitbox, dy)) {
		p.Position.Y += dy
		p.Moved = true
	}
}

// Rotate direction and plane by the same rotation matrix, keeping them perpendicular.
func (p *Player) Rotate(angle float64) {
	if angle == 0 {
		return
	}
	cos, sin := math.Cos(angle), math.Sin(angle)

	oldDirX := p.Direction.X
	p.Direction.X = p.Direction.X*cos - p.Direction.Y*sin
	p.Direction.Y = oldDirX*sin + p.Direction.Y*cos

	oldPlaneX := p.Plane.X
	p.Plane.X = p.Plane.X*cos - p.Plane.Y*sin
	p.Plane.Y = oldPlaneX*sin + p.Plane.Y*cos

	p.rotations++
	if p.rotations%renormalizeInterval == 0 {
		p.renormalize()
	}
	p.Moved = true
}

// renormalize rescales direction to unit length and rebuilds the plane from it,
// undoing drift accumulated by repeated incremental rotations.
func (p *Player) renormalize() {
	length := math.Hypot(p.Direction.X, p.Direction.Y)
	if length < minPlayerVectorLength {
		return
	}
	p.Direction.X /= length
	p.Direction.Y /= length

	// keep the plane on the same side of the direction it started on
	sign := 1.0
	if p.Direction.X*p.Plane.Y-p.Direction.Y*p.Plane.X < 0 {
		sign = -1.0
	}
	p.Plane.X = -p.Direction.Y * p.PlaneRatio * sign
	p.Plane.Y = p.Direction.X * p.PlaneRatio * sign
}

// Heading returns the direction angle in radians.
func (p *Player) Heading() float64 {
	return math.Atan2(p.Direction.Y, p.Direction.X)
}
