package export

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fogleman/isoband"
	"github.com/jonas-p/go-shp"
)

var ErrPath = errors.New("export: shapefile path must end in .shp")

// WriteShapefile writes one polygon per band with the fields id, lvlmn and
// lvlmx. The level fields are wide enough for every level.
func WriteShapefile(path string, bands []isoband.Isoband, levels []float64) error {
	if filepath.Ext(path) != ".shp" {
		return fmt.Errorf("%s: %w", path, ErrPath)
	}
	precision, scale := levelFormat(isoband.NewLevels(levels))
	// sign and decimal point
	size := uint8(precision + 2)

	w, err := shp.Create(path, shp.POLYGON)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer w.Close()
	w.SetFields([]shp.Field{
		shp.NumberField("id", 10),
		shp.FloatField("lvlmn", size, uint8(scale)),
		shp.FloatField("lvlmx", size, uint8(scale)),
	})

	for _, r := range Records(bands, levels) {
		closed := r.Ring.Closed()
		points := make([]shp.Point, len(closed))
		for i, p := range closed {
			points[i] = shp.Point{X: p.X, Y: p.Y}
		}
		polygon := shp.Polygon(*shp.NewPolyLine([][]shp.Point{points}))
		row := int(w.Write(&polygon))
		if err := w.WriteAttribute(row, 0, r.ID); err != nil {
			return fmt.Errorf("record %d: %w", r.ID, err)
		}
		if err := w.WriteAttribute(row, 1, r.Band.Low); err != nil {
			return fmt.Errorf("record %d: %w", r.ID, err)
		}
		if err := w.WriteAttribute(row, 2, r.Band.High); err != nil {
			return fmt.Errorf("record %d: %w", r.ID, err)
		}
	}
	return nil
}
