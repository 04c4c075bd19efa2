package main

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/fogleman/gg"
	"github.com/fogleman/isoband/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	im := image.NewGray16(image.Rect(0, 0, 5, 5))
	rows := [][]uint16{
		{500, 450, 400, 300, 200},
		{460, 440, 410, 300, 250},
		{450, 430, 420, 380, 350},
		{455, 470, 440, 420, 400},
		{460, 465, 470, 460, 450},
	}
	for y, row := range rows {
		for x, v := range row {
			im.SetGray16(x, y, color.Gray16{Y: v})
		}
	}
	input := filepath.Join(dir, "dem.png")
	require.NoError(t, gg.SavePNG(input, im))

	cfgPath := filepath.Join(dir, "dem.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{
		"levels_start": 200, "levels_stop": 600, "levels_step": 20,
		"origin_x": 898879, "origin_y": 6317011,
		"pixel_width": 25, "pixel_height": -25,
		"render_size": 200
	}`), 0644))
	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)
	shp := filepath.Join(dir, "bands.shp")
	geojson := filepath.Join(dir, "bands.geojson")
	svg := filepath.Join(dir, "bands.svg")
	cfg.Shapefile = &shp
	cfg.GeoJSON = &geojson
	cfg.SVG = &svg

	require.NoError(t, run(input, cfg))
	for _, path := range []string{shp, geojson, svg, filepath.Join(dir, "bands.dbf")} {
		info, err := os.Stat(path)
		require.NoError(t, err, path)
		assert.Positive(t, info.Size(), path)
	}

	assert.Error(t, run(filepath.Join(dir, "missing.png"), cfg))
}
