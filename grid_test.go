package isoband

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGrid(t *testing.T) *Grid {
	t.Helper()
	g, err := NewGrid(
		[]float64{2, 6, 10},
		[]float64{11, 7, 3},
		[][]float64{
			{50, 40, 20},
			{45, 42, 35},
			{46, 47, 45},
		})
	require.NoError(t, err)
	return g
}

func TestNewGrid(t *testing.T) {
	g := testGrid(t)
	assert.Equal(t, 3, g.W)
	assert.Equal(t, 3, g.H)
	assert.Equal(t, 4, g.Cells())
	assert.Equal(t, 35.0, g.Value(2, 1))
	lo, hi := g.MinMax()
	assert.Equal(t, 20.0, lo)
	assert.Equal(t, 50.0, hi)

	empty, err := NewGridData(nil, nil, nil)
	require.NoError(t, err)
	lo, hi = empty.MinMax()
	assert.Zero(t, lo)
	assert.Zero(t, hi)

	cell, err := g.Cell(1, 0)
	require.NoError(t, err)
	assert.Equal(t, Cell{Point{6, 11, 40}, Point{10, 11, 20}, Point{10, 7, 35}, Point{6, 7, 42}}, cell)
}

func TestNewGridErrors(t *testing.T) {
	_, err := NewGrid([]float64{0, 1}, []float64{0, 1}, [][]float64{{1, 2}})
	assert.ErrorIs(t, err, ErrShape)
	_, err = NewGrid([]float64{0, 1}, []float64{0, 1}, [][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, ErrShape)
	_, err = NewGridData([]float64{0, 1}, []float64{0, 1}, []float64{1, 2, 3})
	assert.ErrorIs(t, err, ErrShape)
	_, err = NewGrid([]float64{0, 1, 1}, []float64{0, 1}, [][]float64{{1, 2, 3}, {3, 4, 5}})
	assert.ErrorIs(t, err, ErrAxis)
	_, err = NewGrid([]float64{0, 1}, []float64{3, 2, 4}, [][]float64{{1, 2}, {3, 4}, {5, 6}})
	assert.ErrorIs(t, err, ErrAxis)
}

func TestGridIsobands(t *testing.T) {
	g := testGrid(t)

	bands, err := g.Isobands([]float64{60, 0, 10, 20, 30, 40, 50})
	require.NoError(t, err)
	want := []Isoband{
		{40, 50, Ring{{2, 11, 50}, {6, 11, 40}, {6, 7, 42}, {2, 7, 45}}},
		{20, 30, Ring{{8, 11, 30}, {10, 11, 20}, {10, 8.33, 30}}},
		{30, 40, Ring{{6, 11, 40}, {8, 11, 30}, {10, 8.33, 30}, {10, 7, 35}, {7.14, 7, 40}}},
		{40, 50, Ring{{6, 11, 40}, {7.14, 7, 40}, {6, 7, 42}}},
		{40, 50, Ring{{2, 7, 45}, {6, 7, 42}, {6, 3, 47}, {2, 3, 46}}},
		{30, 40, Ring{{7.14, 7, 40}, {10, 7, 35}, {10, 5, 40}}},
		{40, 50, Ring{{6, 7, 42}, {7.14, 7, 40}, {10, 5, 40}, {10, 3, 45}, {6, 3, 47}}},
	}
	if diff := cmp.Diff(want, bands, approx); diff != "" {
		t.Errorf("Isobands mismatch (-want +got):\n%s", diff)
	}

	bands, err = g.Isobands([]float64{40, 41, 42, 43, 44, 45})
	require.NoError(t, err)
	require.Len(t, bands, 15)
	if diff := cmp.Diff(Ring{{6, 11, 40}, {7.14, 7, 40}, {6.57, 7, 41}, {6, 9, 41}}, bands[5].Ring, approx); diff != "" {
		t.Errorf("ring 5 mismatch (-want +got):\n%s", diff)
	}

	bands, err = g.Isobands(Range(0, 60, 5))
	require.NoError(t, err)
	require.Len(t, bands, 12)
	want = []Isoband{
		{40, 45, Ring{{2, 7, 45}, {6, 7, 42}, {6, 4.6, 45}}},
		{45, 50, Ring{{2, 7, 45}, {6, 4.6, 45}, {6, 3, 47}, {2, 3, 46}}},
	}
	if diff := cmp.Diff(want, bands[7:9], approx); diff != "" {
		t.Errorf("rings 7 and 8 mismatch (-want +got):\n%s", diff)
	}
}

func TestGridMatchesCells(t *testing.T) {
	g := testGrid(t)
	levels := []float64{45, 40, 41, 44, 42, 43}
	bands, err := g.IsobandsN(levels, 3)
	require.NoError(t, err)

	sorted := NewLevels(levels)
	var want []Isoband
	for iy := 0; iy < g.H-1; iy++ {
		for ix := 0; ix < g.W-1; ix++ {
			cell, err := g.Cell(ix, iy)
			require.NoError(t, err)
			want = append(want, cell.VectorizeBands(sorted)...)
		}
	}
	assert.Equal(t, want, bands)
}

func TestGridDeterministic(t *testing.T) {
	x := make([]float64, 40)
	y := make([]float64, 30)
	for i := range x {
		x[i] = float64(i)
	}
	for i := range y {
		y[i] = float64(i)
	}
	data := make([]float64, len(x)*len(y))
	for iy := range y {
		for ix := range x {
			data[iy*len(x)+ix] = 50 * math.Sin(float64(ix)/5) * math.Cos(float64(iy)/4)
		}
	}
	g, err := NewGridData(x, y, data)
	require.NoError(t, err)
	levels := Range(-50, 55, 10)
	first, err := g.IsobandsN(levels, 1)
	require.NoError(t, err)
	require.NotEmpty(t, first)
	for _, workers := range []int{0, 2, 8, 64} {
		bands, err := g.IsobandsN(levels, workers)
		require.NoError(t, err)
		assert.Equal(t, first, bands, "workers %d", workers)
	}
	for _, b := range first {
		assert.GreaterOrEqual(t, b.Ring.Shoelace(), 0.0)
		assert.GreaterOrEqual(t, len(b.Ring), 3)
	}
}

func TestGridAscendingY(t *testing.T) {
	g, err := NewGrid(
		[]float64{0, 1, 2},
		[]float64{0, 1, 2},
		[][]float64{
			{1, 2, 3},
			{2, 5, 2},
			{3, 2, 1},
		})
	require.NoError(t, err)
	bands, err := g.Isobands([]float64{0, 1.5, 2.5, 3.5, 4.5, 6})
	require.NoError(t, err)
	assert.Len(t, bands, 20)
	want := Isoband{0, 1.5, Ring{{0, 0, 1}, {0, 0.5, 1.5}, {0.5, 0, 1.5}}}
	if diff := cmp.Diff(want, bands[0], approx); diff != "" {
		t.Errorf("first band mismatch (-want +got):\n%s", diff)
	}
	var area float64
	for _, b := range bands {
		assert.True(t, b.Ring.IsClockwise())
		area += b.Ring.Area()
	}
	assert.InDelta(t, 4, area, 1e-9)
}

func TestGridMissingValue(t *testing.T) {
	g := testGrid(t)
	g.Z[4] = math.NaN()
	bands, err := g.IsobandsN([]float64{0, 100}, 2)
	assert.ErrorIs(t, err, ErrMissingZ)
	assert.Nil(t, bands)
}

func TestGridDegenerateInput(t *testing.T) {
	g := testGrid(t)
	for _, levels := range [][]float64{nil, {}, {42}} {
		bands, err := g.Isobands(levels)
		assert.NoError(t, err)
		assert.Empty(t, bands)
	}

	bands, err := g.Isobands([]float64{42, 42})
	assert.NoError(t, err)
	assert.Empty(t, bands)

	row, err := NewGrid([]float64{0, 1, 2}, []float64{0}, [][]float64{{1, 2, 3}})
	require.NoError(t, err)
	bands, err = row.Isobands([]float64{0, 10})
	assert.NoError(t, err)
	assert.Empty(t, bands)
}

func TestGridIsobandsSorted(t *testing.T) {
	g := testGrid(t)
	a, err := g.Isobands([]float64{0, 10, 20, 30, 40, 50, 60})
	require.NoError(t, err)
	b, err := g.Isobands([]float64{50, 10, 60, 30, 0, 40, 20})
	require.NoError(t, err)
	if diff := cmp.Diff(a, b, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("level order changed the result (-a +b):\n%s", diff)
	}
}
