package export

import (
	"fmt"
	"os"

	"github.com/fogleman/isoband"
	geojson "github.com/paulmach/go.geojson"
)

// FeatureCollection returns one polygon feature per band with the
// properties id, low and high. Rings are wound counterclockwise.
func FeatureCollection(bands []isoband.Isoband, levels []float64) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, r := range Records(bands, levels) {
		closed := r.Ring.Reverse().Closed()
		ring := make([][]float64, len(closed))
		for i, p := range closed {
			ring[i] = []float64{p.X, p.Y}
		}
		f := geojson.NewPolygonFeature([][][]float64{ring})
		f.SetProperty("id", r.ID)
		f.SetProperty("low", r.Band.Low)
		f.SetProperty("high", r.Band.High)
		fc.AddFeature(f)
	}
	return fc
}

func WriteGeoJSON(path string, bands []isoband.Isoband, levels []float64) error {
	data, err := FeatureCollection(bands, levels).MarshalJSON()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
