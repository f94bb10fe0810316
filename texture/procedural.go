package texture

import (
	"image"
	"image/color"
	"math"
)

// procedural texture ids, matching the embedded texture directory
const (
	BrickID = iota + 1
	StoneID
	WoodID
	FloorID
	CeilingID
	BarrelID
	LampID
)

// Procedural builds a texture table without reading any files.
func Procedural(size int) *Table {
	if size < 8 {
		size = 8
	}
	return NewTable(
		generate(BrickID, size, brick),
		generate(StoneID, size, stone),
		generate(WoodID, size, wood),
		generate(FloorID, size, checker(color.RGBA{96, 96, 104, 255}, color.RGBA{72, 72, 80, 255})),
		generate(CeilingID, size, checker(color.RGBA{56, 48, 40, 255}, color.RGBA{64, 56, 48, 255})),
		generate(BarrelID, size, barrel),
		generate(LampID, size, lamp),
	)
}

type pattern func(x, y, size int) color.RGBA

func generate(id, size int, fn pattern) *Texture {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetRGBA(x, y, fn(x, y, size))
		}
	}
	return &Texture{ID: id, Image: img}
}

func brick(x, y, size int) color.RGBA {
	rowH := size / 4
	row := y / rowH
	offset := 0
	if row%2 == 1 {
		offset = size / 4
	}
	if y%rowH == 0 || (x+offset)%(size/2) == 0 {
		return color.RGBA{160, 160, 150, 255}
	}
	shade := uint8(20 * ((x/3 + y/5) % 2))
	return color.RGBA{150 + shade, 50, 40, 255}
}

func stone(x, y, size int) color.RGBA {
	n := noise(x, y)
	v := uint8(100 + n%40)
	if x%(size/2) == 0 || y%(size/2) == 0 {
		v = 60
	}
	return color.RGBA{v, v, v + 8, 255}
}

func wood(x, y, size int) color.RGBA {
	plank := size / 8
	if x%plank == 0 {
		return color.RGBA{70, 40, 20, 255}
	}
	grain := uint8(15 * math.Abs(math.Sin(float64(y)*0.4+float64(x/plank))))
	return color.RGBA{130 + grain, 80 + grain, 40, 255}
}

func checker(a, b color.RGBA) pattern {
	return func(x, y, size int) color.RGBA {
		cell := size / 2
		if (x/cell+y/cell)%2 == 0 {
			return a
		}
		return b
	}
}

// barrel is a sprite: pixels outside the silhouette are fully transparent
func barrel(x, y, size int) color.RGBA {
	margin := size / 4
	if x < margin || x >= size-margin || y < size/4 {
		return color.RGBA{}
	}
	if (y-size/4)%(size/4) == 0 {
		return color.RGBA{90, 90, 90, 255}
	}
	return color.RGBA{110, 70, 30, 255}
}

func lamp(x, y, size int) color.RGBA {
	cx, cy := float64(size)/2, float64(size)/4
	d := math.Hypot(float64(x)-cx, float64(y)-cy)
	switch {
	case d < float64(size)/6:
		return color.RGBA{255, 240, 160, 255}
	case x == size/2 && y < size/8:
		return color.RGBA{40, 40, 40, 255}
	}
	return color.RGBA{}
}

func noise(x, y int) uint8 {
	h := uint32(x)*374761393 + uint32(y)*668265263
	h = (h ^ (h >> 13)) * 1274126177
	return uint8(h >> 24)
}
