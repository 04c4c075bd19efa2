package isoband

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

var (
	ErrShape = errors.New("isoband: grid shape mismatch")
	ErrAxis  = errors.New("isoband: axis not strictly monotonic")
)

// Grid is a scalar field sampled on a rectilinear lattice. Z is row-major:
// the value at column ix of row iy is Z[iy*W+ix], located at (X[ix], Y[iy]).
type Grid struct {
	W, H int
	X, Y []float64
	Z    []float64
}

// NewGrid builds a grid from the coordinate axes and a [row][column]
// array of values.
func NewGrid(x, y []float64, z [][]float64) (*Grid, error) {
	if len(z) != len(y) {
		return nil, fmt.Errorf("%d rows for %d y coordinates: %w", len(z), len(y), ErrShape)
	}
	data := make([]float64, 0, len(x)*len(y))
	for iy, row := range z {
		if len(row) != len(x) {
			return nil, fmt.Errorf("row %d has %d values for %d x coordinates: %w", iy, len(row), len(x), ErrShape)
		}
		data = append(data, row...)
	}
	return NewGridData(x, y, data)
}

// NewGridData builds a grid from the coordinate axes and row-major values.
func NewGridData(x, y, data []float64) (*Grid, error) {
	if len(data) != len(x)*len(y) {
		return nil, fmt.Errorf("%d values for a %dx%d grid: %w", len(data), len(x), len(y), ErrShape)
	}
	if err := checkAxis(x); err != nil {
		return nil, fmt.Errorf("x: %w", err)
	}
	if err := checkAxis(y); err != nil {
		return nil, fmt.Errorf("y: %w", err)
	}
	return &Grid{len(x), len(y), x, y, data}, nil
}

func checkAxis(a []float64) error {
	if len(a) < 2 {
		return nil
	}
	increasing := a[1] > a[0]
	for i := 1; i < len(a); i++ {
		if a[i] == a[i-1] || (a[i] > a[i-1]) != increasing {
			return fmt.Errorf("at index %d: %w", i, ErrAxis)
		}
	}
	return nil
}

func (g *Grid) Value(ix, iy int) float64 {
	return g.Z[iy*g.W+ix]
}

func (g *Grid) point(ix, iy int) Point {
	return Point{g.X[ix], g.Y[iy], g.Value(ix, iy)}
}

// Cell returns the cell whose upper-left corner is node (ix, iy).
func (g *Grid) Cell(ix, iy int) (Cell, error) {
	cell, err := NewCell(
		g.point(ix, iy),
		g.point(ix+1, iy),
		g.point(ix+1, iy+1),
		g.point(ix, iy+1))
	if err != nil {
		return Cell{}, fmt.Errorf("cell (%d, %d): %w", ix, iy, err)
	}
	return cell, nil
}

// Cells returns the number of cells in the grid.
func (g *Grid) Cells() int {
	if g.W < 2 || g.H < 2 {
		return 0
	}
	return (g.W - 1) * (g.H - 1)
}

// MinMax returns the smallest and largest value of the grid.
func (g *Grid) MinMax() (float64, float64) {
	if len(g.Z) == 0 {
		return 0, 0
	}
	return floats.Min(g.Z), floats.Max(g.Z)
}

// Isobands vectorizes every cell of the grid for the bands between
// consecutive levels, using one worker per CPU.
func (g *Grid) Isobands(levels []float64) ([]Isoband, error) {
	return g.IsobandsN(levels, runtime.NumCPU())
}

// IsobandsN is like Isobands with at most workers cells processed in
// parallel. The result lists the rings of each cell in row-major order,
// and within a cell in band order. If any cell fails, no rings are
// returned.
func (g *Grid) IsobandsN(levels []float64, workers int) ([]Isoband, error) {
	sorted := NewLevels(levels)
	if len(sorted) < 2 || g.Cells() == 0 {
		return nil, nil
	}
	if workers < 1 {
		workers = 1
	}
	results := make([][]Isoband, g.Cells())
	eg, ctx := errgroup.WithContext(context.Background())
	eg.SetLimit(workers)
	w := g.W - 1
	for i := range results {
		if ctx.Err() != nil {
			break
		}
		eg.Go(func() error {
			cell, err := g.Cell(i%w, i/w)
			if err != nil {
				return err
			}
			results[i] = cell.VectorizeBands(sorted)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	n := 0
	for _, r := range results {
		n += len(r)
	}
	bands := make([]Isoband, 0, n)
	for _, r := range results {
		bands = append(bands, r...)
	}
	return bands, nil
}
