package level

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/harbdog/raycaster-go"
)

// Spawn is the player start cell and facing read from the element file.
type Spawn struct {
	CellX, CellY  int
	FacingDegrees float64
}

// ElementSpec is one sprite row of the element file.
type ElementSpec struct {
	CellX, CellY int
	TextureID    int
	Anchor       raycaster.SpriteAnchor
}

// ParseGrid reads whitespace-separated non-negative integers, one grid row per line.
// Blank lines and lines starting with '#' are skipped. Every row must be as wide as the first.
func ParseGrid(r io.Reader) ([][]int, error) {
	var grid [][]int

	err := scanRows(r, func(line int, fields []string) error {
		row := make([]int, len(fields))
		for i, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil || v < 0 {
				return fmt.Errorf("line %d column %d: invalid tile code %q", line, i, f)
			}
			row[i] = v
		}
		if len(grid) > 0 && len(row) != len(grid[0]) {
			return fmt.Errorf("line %d has %d columns, want %d: %w", line, len(row), len(grid[0]), ErrRaggedGrid)
		}
		grid = append(grid, row)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(grid) == 0 {
		return nil, ErrEmptyGrid
	}
	return grid, nil
}

// ParseElements reads the element file. The first row is the player spawn
// "x y [facingDegrees]", every following row is a sprite "x y textureId [anchor]"
// where anchor is 0 for bottom, 1 for center (default) or 2 for top.
func ParseElements(r io.Reader) (Spawn, []ElementSpec, error) {
	var (
		spawn    Spawn
		elements []ElementSpec
		seen     bool
	)

	err := scanRows(r, func(line int, fields []string) error {
		if !seen {
			seen = true
			return parseSpawn(line, fields, &spawn)
		}
		e, err := parseElement(line, fields)
		if err != nil {
			return err
		}
		elements = append(elements, e)
		return nil
	})
	if err != nil {
		return Spawn{}, nil, err
	}

	if !seen {
		return Spawn{}, nil, fmt.Errorf("missing player spawn row: %w", ErrBadElement)
	}
	return spawn, elements, nil
}

func parseSpawn(line int, fields []string, spawn *Spawn) error {
	if len(fields) < 2 || len(fields) > 3 {
		return fmt.Errorf("line %d: spawn row wants 2 or 3 values, got %d: %w", line, len(fields), ErrBadElement)
	}
	x, errX := strconv.Atoi(fields[0])
	y, errY := strconv.Atoi(fields[1])
	if errX != nil || errY != nil {
		return fmt.Errorf("line %d: invalid spawn cell %q: %w", line, strings.Join(fields[:2], " "), ErrBadElement)
	}
	spawn.CellX, spawn.CellY = x, y

	if len(fields) == 3 {
		facing, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return fmt.Errorf("line %d: invalid facing %q: %w", line, fields[2], ErrBadElement)
		}
		spawn.FacingDegrees = facing
	}
	return nil
}

func parseElement(line int, fields []string) (ElementSpec, error) {
	if len(fields) < 3 || len(fields) > 4 {
		return ElementSpec{}, fmt.Errorf("line %d: element row wants 3 or 4 values, got %d: %w", line, len(fields), ErrBadElement)
	}

	var values [4]int
	values[3] = int(raycaster.AnchorCenter)
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil || v < 0 {
			return ElementSpec{}, fmt.Errorf("line %d: invalid value %q: %w", line, f, ErrBadElement)
		}
		values[i] = v
	}

	anchor := raycaster.SpriteAnchor(values[3])
	switch anchor {
	case raycaster.AnchorBottom, raycaster.AnchorCenter, raycaster.AnchorTop:
	default:
		return ElementSpec{}, fmt.Errorf("line %d: unknown anchor %d: %w", line, values[3], ErrBadElement)
	}

	return ElementSpec{
		CellX:     values[0],
		CellY:     values[1],
		TextureID: values[2],
		Anchor:    anchor,
	}, nil
}

// scanRows calls fn with the fields of every non-blank, non-comment line.
func scanRows(r io.Reader, fn func(line int, fields []string) error) error {
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if err := fn(line, strings.Fields(text)); err != nil {
			return err
		}
	}
	return scanner.Err()
}
