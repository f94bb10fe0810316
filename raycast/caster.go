package raycast

import (
	"fmt"

	"wolfcast/level"
	"wolfcast/model"
	"wolfcast/texture"
)

// TextureSource resolves tile codes and element texture ids to textures.
type TextureSource interface {
	Get(id int) *texture.Texture
}

// DepthBuffer holds one perpendicular wall distance per 3D view column.
type DepthBuffer []float64

func NewDepthBuffer(columns int) DepthBuffer {
	return make(DepthBuffer, columns)
}

// At returns the depth of a column, 0 outside the buffer.
func (d DepthBuffer) At(column int) float64 {
	if column < 0 || column >= len(d) {
		return 0
	}
	return d[column]
}

// FrameContext carries the state every caster reads for one frame. Depth is written
// by CastWalls and read by CastSprites, so walls must be cast first.
type FrameContext struct {
	Grid     *level.GridMap
	Player   *model.Player
	Textures TextureSource
	Elements []model.Element
	Depth    DepthBuffer
}

// Settings describe the screen. The left half shows the map, the right half the 3D view.
type Settings struct {
	ScreenWidth  int
	ScreenHeight int
	RayDensity   int
}

func (s Settings) HalfWidth() int { return s.ScreenWidth / 2 }

func (s Settings) validate() error {
	if s.ScreenWidth <= 0 || s.ScreenHeight <= 0 {
		return fmt.Errorf("invalid screen size %dx%d", s.ScreenWidth, s.ScreenHeight)
	}
	if s.ScreenWidth%2 != 0 {
		return fmt.Errorf("screen width %d must be even", s.ScreenWidth)
	}
	if s.RayDensity < 1 {
		return fmt.Errorf("ray density %d must be at least 1", s.RayDensity)
	}
	return nil
}

// Frame is the output of one full cast.
type Frame struct {
	Walls   []WallSlice
	Floor   []byte
	Sprites []SpriteDraw
}

// Caster owns the buffers reused from frame to frame.
type Caster struct {
	settings Settings

	walls   []WallSlice
	floor   []byte
	sprites []SpriteDraw

	spriteOrder    []int
	spriteDistance []float64
}

func NewCaster(s Settings) (*Caster, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &Caster{
		settings: s,
		walls:    make([]WallSlice, 0, s.HalfWidth()/s.RayDensity+1),
		floor:    make([]byte, s.HalfWidth()*s.ScreenHeight*3),
	}, nil
}

func (c *Caster) Settings() Settings { return c.settings }

// Cast runs the wall, floor/ceiling and sprite casters in that order.
func (c *Caster) Cast(fc *FrameContext) Frame {
	walls := c.CastWalls(fc)
	floor := c.CastFloorCeiling(fc)
	sprites := c.CastSprites(fc)
	return Frame{Walls: walls, Floor: floor, Sprites: sprites}
}

func (c *Caster) lookup(fc *FrameContext, id int) *texture.Texture {
	if id == 0 || fc.Textures == nil {
		return nil
	}
	return fc.Textures.Get(id)
}
