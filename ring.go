package isoband

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Ring is a closed polygon ring. The first vertex is not repeated at the
// end. Rings built by this package are clockwise and have at least three
// distinct vertices.
type Ring []Point

// newRing removes repeated vertices and orients the result clockwise. It
// returns false if fewer than three vertices remain.
func newRing(points []Point) (Ring, bool) {
	ring := make(Ring, 0, len(points))
	for _, p := range points {
		if !ring.contains(p) {
			ring = append(ring, p)
		}
	}
	if len(ring) < 3 {
		return nil, false
	}
	if !ring.IsClockwise() {
		ring = ring.Reverse()
	}
	return ring, true
}

func (ring Ring) contains(p Point) bool {
	for _, q := range ring {
		if q == p {
			return true
		}
	}
	return false
}

// Shoelace returns the sum of (x[i+1]-x[i]) * (y[i+1]+y[i]) around the
// ring. It is non-negative for clockwise rings.
func (ring Ring) Shoelace() float64 {
	var s float64
	for i, p := range ring {
		q := ring[(i+1)%len(ring)]
		s += (q.X - p.X) * (q.Y + p.Y)
	}
	return s
}

func (ring Ring) IsClockwise() bool {
	return ring.Shoelace() >= 0
}

// Reverse returns the ring traversed in the opposite direction, starting
// from the same vertex.
func (ring Ring) Reverse() Ring {
	result := make(Ring, len(ring))
	for i, p := range ring {
		result[(len(ring)-i)%len(ring)] = p
	}
	return result
}

// Area returns the unsigned planar area enclosed by the ring.
func (ring Ring) Area() float64 {
	return math.Abs(ring.Shoelace()) / 2
}

// ZRange returns the smallest and largest scalar value on the ring.
func (ring Ring) ZRange() (float64, float64) {
	if len(ring) == 0 {
		return math.NaN(), math.NaN()
	}
	z := make([]float64, len(ring))
	for i, p := range ring {
		z[i] = p.Z
	}
	return floats.Min(z), floats.Max(z)
}

func (ring Ring) Bounds() Bounds {
	if len(ring) == 0 {
		return Bounds{}
	}
	b := Bounds{ring[0], ring[0]}
	for _, p := range ring[1:] {
		b = b.Extend(p)
	}
	return b
}

// Closed returns the vertices with the first one repeated at the end, the
// form most vector formats expect.
func (ring Ring) Closed() []Point {
	if len(ring) == 0 {
		return nil
	}
	result := make([]Point, len(ring), len(ring)+1)
	copy(result, ring)
	return append(result, ring[0])
}
