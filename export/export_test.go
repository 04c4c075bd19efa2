package export

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/fogleman/isoband"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jonas-p/go-shp"
	geojson "github.com/paulmach/go.geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBands(t *testing.T, levels []float64) []isoband.Isoband {
	t.Helper()
	g, err := isoband.NewGrid(
		[]float64{2, 6, 10},
		[]float64{11, 7, 3},
		[][]float64{
			{50, 40, 20},
			{45, 42, 35},
			{46, 47, 45},
		})
	require.NoError(t, err)
	bands, err := g.Isobands(levels)
	require.NoError(t, err)
	return bands
}

func TestPrecisionAndScale(t *testing.T) {
	tests := []struct {
		x                float64
		precision, scale int
	}{
		{0, 1, 0},
		{1, 1, 0},
		{10, 2, 0},
		{250, 3, 0},
		{1000, 4, 0},
		{2629, 4, 0},
		{262915, 6, 0},
		{123456789, 9, 0},
		{26.29, 4, 2},
		{1.12345, 6, 5},
		{-10, 2, 0},
		{-10.005, 5, 3},
		{0.5, 2, 1},
	}
	for _, test := range tests {
		p, s := PrecisionAndScale(test.x)
		assert.Equal(t, test.precision, p, "precision of %g", test.x)
		assert.Equal(t, test.scale, s, "scale of %g", test.x)
	}
}

func TestLevelFormat(t *testing.T) {
	p, s := levelFormat(isoband.Levels{0, 12.5, 250, 1000})
	assert.Equal(t, 4, p)
	assert.Equal(t, 0, s)
	p, s = levelFormat(isoband.Levels{0, 0.25, 0.5})
	assert.Equal(t, 3, p)
	assert.Equal(t, 2, s)
	p, s = levelFormat(nil)
	assert.Zero(t, p)
	assert.Zero(t, s)
}

func TestRecords(t *testing.T) {
	levels := []float64{60, 50, 40, 30, 20, 10, 0}
	records := Records(testBands(t, levels), levels)
	require.Len(t, records, 7)
	for i, r := range records {
		assert.Equal(t, i+1, r.ID)
	}
	want := []isoband.Band{{40, 50}, {20, 30}, {30, 40}, {40, 50}, {40, 50}, {30, 40}, {40, 50}}
	for i, r := range records {
		assert.Equal(t, want[i], r.Band, "record %d", r.ID)
	}

	ring := isoband.Ring{{0, 0, 40}, {1, 0, 40}, {0, 1, 40}}
	records = Records([]isoband.Isoband{{Low: 40, High: 50, Ring: ring}}, levels)
	assert.Equal(t, isoband.Band{Low: 40, High: 50}, records[0].Band)
}

func TestWriteShapefile(t *testing.T) {
	levels := []float64{0, 12.5, 25, 37.5, 50, 62.5}
	bands := testBands(t, levels)
	path := filepath.Join(t.TempDir(), "bands.shp")
	require.NoError(t, WriteShapefile(path, bands, levels))
	for _, ext := range []string{".shp", ".shx", ".dbf"} {
		_, err := os.Stat(strings.TrimSuffix(path, ".shp") + ext)
		require.NoError(t, err, ext)
	}

	r, err := shp.Open(path)
	require.NoError(t, err)
	defer r.Close()

	fields := r.Fields()
	require.Len(t, fields, 3)
	assert.Equal(t, "id", fieldName(fields[0]))
	assert.Equal(t, "lvlmn", fieldName(fields[1]))
	assert.Equal(t, "lvlmx", fieldName(fields[2]))
	assert.EqualValues(t, 1, fields[1].Precision)
	assert.EqualValues(t, 5, fields[2].Size)

	records := Records(bands, levels)
	n := 0
	for r.Next() {
		row, shape := r.Shape()
		polygon, ok := shape.(*shp.Polygon)
		require.True(t, ok)
		record := records[row]
		assert.EqualValues(t, len(record.Ring)+1, polygon.NumPoints)
		assert.Equal(t, polygon.Points[0], polygon.Points[len(polygon.Points)-1])
		assert.InDelta(t, record.Ring[0].X, polygon.Points[0].X, 1e-9)

		attr := func(i int) string { return strings.Trim(r.ReadAttribute(row, i), " \x00") }
		assert.Equal(t, record.ID, mustAtoi(t, attr(0)))
		assert.Contains(t, []string{"0.0", "12.5", "25.0", "37.5", "50.0"}, attr(1))
		n++
	}
	assert.Equal(t, len(bands), n)

	err = WriteShapefile(filepath.Join(t.TempDir(), "bands.json"), bands, levels)
	assert.ErrorIs(t, err, ErrPath)
}

func mustAtoi(t *testing.T, s string) int {
	t.Helper()
	v, err := strconv.Atoi(s)
	require.NoError(t, err)
	return v
}

func fieldName(f shp.Field) string {
	return strings.TrimRight(string(f.Name[:]), "\x00")
}

func TestFeatureCollection(t *testing.T) {
	levels := []float64{0, 10, 20, 30, 40, 50, 60}
	bands := testBands(t, levels)
	fc := FeatureCollection(bands, levels)
	require.Len(t, fc.Features, 7)

	f := fc.Features[1]
	require.True(t, f.Geometry.IsPolygon())
	want := [][][]float64{{{8, 11}, {10, 8.33}, {10, 11}, {8, 11}}}
	if diff := cmp.Diff(want, f.Geometry.Polygon, cmpopts.EquateApprox(0, 0.01)); diff != "" {
		t.Errorf("polygon mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 2, f.Properties["id"])
	assert.Equal(t, 20.0, f.Properties["low"])
	assert.Equal(t, 30.0, f.Properties["high"])
}

func TestWriteGeoJSON(t *testing.T) {
	levels := []float64{40, 41, 42, 43, 44, 45}
	bands := testBands(t, levels)
	path := filepath.Join(t.TempDir(), "bands.geojson")
	require.NoError(t, WriteGeoJSON(path, bands, levels))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	fc, err := geojson.UnmarshalFeatureCollection(data)
	require.NoError(t, err)
	require.Len(t, fc.Features, 15)
	for i, f := range fc.Features {
		id, err := f.PropertyFloat64("id")
		require.NoError(t, err)
		assert.EqualValues(t, i+1, id)
		low, err := f.PropertyFloat64("low")
		require.NoError(t, err)
		high, err := f.PropertyFloat64("high")
		require.NoError(t, err)
		assert.Equal(t, 1.0, high-low)
	}

	err = WriteGeoJSON(filepath.Join(t.TempDir(), "missing", "bands.geojson"), bands, levels)
	assert.Error(t, err)
}
