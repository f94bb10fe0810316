package render

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

// Quad describes a textured unit quad placed on screen.
type Quad struct {
	Position mgl32.Vec2
	Size     mgl32.Vec2
	// Rotation in degrees, clockwise on screen since y grows downward
	Rotation float32
	// Pivot is the rotation center in unit quad coordinates, (0.5, 0.5) is the middle
	Pivot mgl32.Vec2
	Color color.Color
}

// QuadModel builds the model matrix of a unit quad:
// translate, move to pivot, rotate, move back from pivot, then scale.
func QuadModel(pos, size mgl32.Vec2, rotationDeg float32, pivot mgl32.Vec2) mgl32.Mat4 {
	px, py := pivot.X()*size.X(), pivot.Y()*size.Y()

	model := mgl32.Translate3D(pos.X(), pos.Y(), 0)
	model = model.Mul4(mgl32.Translate3D(px, py, 0))
	model = model.Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(rotationDeg)))
	model = model.Mul4(mgl32.Translate3D(-px, -py, 0))
	model = model.Mul4(mgl32.Scale3D(size.X(), size.Y(), 1))
	return model
}

// GeoM keeps the 2D affine part of a model matrix.
func GeoM(m mgl32.Mat4) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, float64(m.At(0, 0)))
	g.SetElement(0, 1, float64(m.At(0, 1)))
	g.SetElement(0, 2, float64(m.At(0, 3)))
	g.SetElement(1, 0, float64(m.At(1, 0)))
	g.SetElement(1, 1, float64(m.At(1, 1)))
	g.SetElement(1, 2, float64(m.At(1, 3)))
	return g
}

// QuadGeoM maps a source image of w x h pixels onto the quad.
func QuadGeoM(q Quad, w, h int) ebiten.GeoM {
	var g ebiten.GeoM
	if w > 0 && h > 0 {
		g.Scale(1/float64(w), 1/float64(h))
	}
	g.Concat(GeoM(QuadModel(q.Position, q.Size, q.Rotation, q.Pivot)))
	return g
}
