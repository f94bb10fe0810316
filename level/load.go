package level

import (
	"errors"
	"fmt"
	"io/fs"
	"path"

	"github.com/sirupsen/logrus"

	"wolfcast/model"
)

var (
	ErrDimensionMismatch = errors.New("wall, floor and ceiling grids differ in size")
	ErrRaggedGrid        = errors.New("grid rows differ in width")
	ErrEmptyGrid         = errors.New("grid is empty")
	ErrBadElement        = errors.New("malformed element")
	ErrUnknownTexture    = errors.New("unknown texture id")
)

// Files names the level sources inside a directory.
type Files struct {
	Dir      string
	Wall     string
	Floor    string
	Ceiling  string
	Elements string
}

func DefaultFiles(dir string) Files {
	return Files{
		Dir:      dir,
		Wall:     "wall.txt",
		Floor:    "floor.txt",
		Ceiling:  "ceiling.txt",
		Elements: "elements.txt",
	}
}

// TextureSet reports which texture ids are available for tile codes and elements.
type TextureSet interface {
	Has(id int) bool
}

// Level is a loaded map with its player spawn and static sprites.
type Level struct {
	Grid     *GridMap
	Spawn    Spawn
	Elements []model.Element
}

// Load reads and validates a level. halfWidth is the width of the 3D view in pixels,
// from which the tile size is derived so that the map fills the 2D half of the screen.
func Load(fsys fs.FS, files Files, halfWidth int, tex TextureSet, log logrus.FieldLogger) (*Level, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	wall, err := parseGridFile(fsys, files.Dir, files.Wall)
	if err != nil {
		return nil, err
	}
	floor, err := parseGridFile(fsys, files.Dir, files.Floor)
	if err != nil {
		return nil, err
	}
	ceiling, err := parseGridFile(fsys, files.Dir, files.Ceiling)
	if err != nil {
		return nil, err
	}

	if halfWidth <= 0 {
		return nil, fmt.Errorf("invalid view width %d", halfWidth)
	}
	tileSize := float64(halfWidth) / float64(len(wall[0]))

	grid, err := NewGridMap(wall, floor, ceiling, tileSize)
	if err != nil {
		return nil, err
	}

	if tex != nil {
		if err := checkTextures(grid, tex); err != nil {
			return nil, err
		}
	}

	f, err := fsys.Open(path.Join(files.Dir, files.Elements))
	if err != nil {
		return nil, fmt.Errorf("open elements: %w", err)
	}
	defer f.Close()

	spawn, specs, err := ParseElements(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", files.Elements, err)
	}

	if !grid.InBounds(spawn.CellX, spawn.CellY) || grid.Solid(spawn.CellX, spawn.CellY) {
		return nil, fmt.Errorf("spawn cell (%d, %d) is not an open cell: %w", spawn.CellX, spawn.CellY, ErrBadElement)
	}

	elements := make([]model.Element, 0, len(specs))
	for _, s := range specs {
		if !grid.InBounds(s.CellX, s.CellY) {
			return nil, fmt.Errorf("element at (%d, %d) is outside the grid: %w", s.CellX, s.CellY, ErrBadElement)
		}
		if tex != nil && !tex.Has(s.TextureID) {
			return nil, fmt.Errorf("element at (%d, %d) uses texture %d: %w", s.CellX, s.CellY, s.TextureID, ErrUnknownTexture)
		}
		elements = append(elements, model.NewElement(s.CellX, s.CellY, s.TextureID, tileSize, s.Anchor))
	}

	log.WithFields(logrus.Fields{
		"width":     grid.Width(),
		"height":    grid.Height(),
		"sprites":   len(elements),
		"tile_size": tileSize,
	}).Info("level loaded")

	return &Level{
		Grid:     grid,
		Spawn:    spawn,
		Elements: elements,
	}, nil
}

// NewPlayer creates a player at the level spawn.
func (l *Level) NewPlayer(cfg model.PlayerConfig) *model.Player {
	return model.NewPlayer(l.Spawn.CellX, l.Spawn.CellY, l.Spawn.FacingDegrees, l.Grid.TileSize(), cfg)
}

func parseGridFile(fsys fs.FS, dir, name string) ([][]int, error) {
	f, err := fsys.Open(path.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("open grid: %w", err)
	}
	defer f.Close()

	grid, err := ParseGrid(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return grid, nil
}

// checkTextures rejects tile codes that have no texture, so no lookup can go out of range while casting.
func checkTextures(grid *GridMap, tex TextureSet) error {
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			for _, layer := range []struct {
				name string
				code int
			}{
				{"wall", grid.Wall(x, y)},
				{"floor", grid.Floor(x, y)},
				{"ceiling", grid.Ceiling(x, y)},
			} {
				if layer.code != 0 && !tex.Has(layer.code) {
					return fmt.Errorf("%s tile (%d, %d) uses texture %d: %w", layer.name, x, y, layer.code, ErrUnknownTexture)
				}
			}
		}
	}
	return nil
}
