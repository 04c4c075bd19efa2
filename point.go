package isoband

import (
	"math"

	"github.com/fogleman/fauxgl"
)

// Point is a planar location tagged with the scalar field value Z.
type Point struct {
	X, Y, Z float64
}

// HasZ reports whether the point carries a scalar value. Missing values
// are represented by NaN, as raster no-data usually is.
func (a Point) HasZ() bool {
	return !math.IsNaN(a.Z)
}

func (a Point) Distance(b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

func (a Point) vector() fauxgl.Vector {
	return fauxgl.Vector{X: a.X, Y: a.Y, Z: a.Z}
}

type Bounds struct {
	Min, Max Point
}

func (b Bounds) Extend(p Point) Bounds {
	b.Min.X = math.Min(b.Min.X, p.X)
	b.Min.Y = math.Min(b.Min.Y, p.Y)
	b.Max.X = math.Max(b.Max.X, p.X)
	b.Max.Y = math.Max(b.Max.Y, p.Y)
	return b
}

func (b Bounds) Size() (float64, float64) {
	return b.Max.X - b.Min.X, b.Max.Y - b.Min.Y
}
