package isoband

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

var ErrMissingZ = errors.New("isoband: point has no scalar value")

// Cell is the quadrilateral between four adjacent grid nodes.
//
//	P1 +-----+ P2
//	   |     |
//	   |     |
//	P4 +-----+ P3
type Cell struct {
	P1, P2, P3, P4 Point
}

// NewCell builds a cell from its upper-left, upper-right, lower-right and
// lower-left corners. Every corner must carry a scalar value.
func NewCell(p1, p2, p3, p4 Point) (Cell, error) {
	cell := Cell{p1, p2, p3, p4}
	for i, p := range cell.Points() {
		if !p.HasZ() {
			return Cell{}, fmt.Errorf("p%d (%g, %g): %w", i+1, p.X, p.Y, ErrMissingZ)
		}
	}
	return cell, nil
}

func (cell Cell) Points() [4]Point {
	return [4]Point{cell.P1, cell.P2, cell.P3, cell.P4}
}

func (cell Cell) Values() [4]float64 {
	return [4]float64{cell.P1.Z, cell.P2.Z, cell.P3.Z, cell.P4.Z}
}

// CentralMean is the mean of the corner values, used as the value at the
// centre of the cell when a saddle has to be disambiguated.
func (cell Cell) CentralMean() float64 {
	z := cell.Values()
	return floats.Sum(z[:]) / float64(len(z))
}

// Classify returns the class of each corner relative to [low, high).
func (cell Cell) Classify(low, high float64) Classification {
	var c Classification
	for i, z := range cell.Values() {
		c[i] = Classify(z, low, high)
	}
	return c
}

// edge returns the i-th boundary edge in traversal order, with the corner
// indices of both ends.
func (cell Cell) edge(i int) (pi, pe Point, ii, ie int) {
	points := cell.Points()
	ii = i
	ie = (i + 1) % len(points)
	return points[ii], points[ie], ii, ie
}
