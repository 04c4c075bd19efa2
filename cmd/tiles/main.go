// Command tiles downloads Terrarium elevation tiles covering a box or a
// country and vectorizes their isobands in longitude and latitude.
//
//	tiles -bbox 36.477988,-112.726473,35.940449,-111.561530 -levels 500:3000:100 -shp canyon.shp
//	tiles -countries ne_10m_admin_0_countries/wgs84.shp -country Iceland -zoom 10 -png iceland.png
package main

import (
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/fogleman/isoband"
	"github.com/fogleman/isoband/config"
	"github.com/fogleman/isoband/export"
	"github.com/fogleman/isoband/raster"
	"github.com/fogleman/isoband/render"
	"github.com/fogleman/maps"
)

const (
	URLTemplate    = "https://s3.amazonaws.com/elevation-tiles-prod/terrarium/{z}/{x}/{y}.png"
	CacheDirectory = "cache"
	MaxDownloads   = 16
)

var (
	configPath = flag.String("config", "", "JSON config file")
	zoom       = flag.Int("zoom", 13, "tile zoom level")
	bbox       = flag.String("bbox", "", "lat0,lng0,lat1,lng1 corners of the area")
	countries  = flag.String("countries", "", "country shapefile")
	country    = flag.String("country", "", "NAME of the country to cover")
	urlFlag    = flag.String("url", URLTemplate, "tile URL template")
	cacheDir   = flag.String("cache", CacheDirectory, "tile cache directory")
	downloads  = flag.Int("downloads", MaxDownloads, "concurrent downloads")
	levelsFlag = flag.String("levels", "-500:9000:100", "levels as start:stop:step or a comma separated list")
	workers    = flag.Int("workers", 0, "parallel cells per tile, 0 for one per CPU")
	shpPath    = flag.String("shp", "", "write a shapefile")
	jsonPath   = flag.String("geojson", "", "write a GeoJSON feature collection")
	pngPath    = flag.String("png", "", "render a PNG")
	svgPath    = flag.String("svg", "", "render an SVG")
)

func parseBox(s string) (min, max raster.Point, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return min, max, fmt.Errorf("bbox %q: want lat0,lng0,lat1,lng1", s)
	}
	var v [4]float64
	for i, part := range parts {
		if v[i], err = strconv.ParseFloat(strings.TrimSpace(part), 64); err != nil {
			return min, max, fmt.Errorf("bbox %q: %w", s, err)
		}
	}
	return raster.LatLng(v[0], v[1]), raster.LatLng(v[2], v[3]), nil
}

func loadShapes(path, name string) ([]maps.Shape, error) {
	shapes, err := maps.LoadShapefile(path)
	if err != nil {
		return nil, err
	}
	var result []maps.Shape
	for _, shape := range shapes {
		if shape.Tags["NAME"] == name {
			result = append(result, shape)
		}
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("%s: no shape named %q", path, name)
	}
	return result, nil
}

func boundsForShapes(shapes []maps.Shape) (min, max raster.Point) {
	min = raster.Point{X: 180, Y: 90}
	max = raster.Point{X: -180, Y: -90}
	for _, shape := range shapes {
		for _, line := range shape.Lines {
			for _, p := range line.Points {
				if p.X < min.X {
					min.X = p.X
				}
				if p.Y < min.Y {
					min.Y = p.Y
				}
				if p.X > max.X {
					max.X = p.X
				}
				if p.Y > max.Y {
					max.Y = p.Y
				}
			}
		}
	}
	return
}

func area() (min, max raster.Point, err error) {
	if *countries != "" {
		shapes, err := loadShapes(*countries, *country)
		if err != nil {
			return min, max, err
		}
		min, max = boundsForShapes(shapes)
		return min, max, nil
	}
	if *bbox == "" {
		return min, max, fmt.Errorf("one of -bbox or -countries is required")
	}
	return parseBox(*bbox)
}

func loadConfig() (*config.Config, error) {
	cfg := config.Empty()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return nil, err
		}
	}
	if len(cfg.Levels) == 0 && cfg.LevelsStep == nil {
		levels, err := isoband.ParseLevels(*levelsFlag)
		if err != nil {
			return nil, err
		}
		cfg.Levels = levels
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "workers":
			cfg.Workers = workers
		case "shp":
			cfg.Shapefile = shpPath
		case "geojson":
			cfg.GeoJSON = jsonPath
		case "png":
			cfg.PNG = pngPath
		case "svg":
			cfg.SVG = svgPath
		}
	})
	return cfg, cfg.Validate()
}

func main() {
	flag.Parse()
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	lo, hi, err := area()
	if err != nil {
		log.Fatal(err)
	}

	min, max := raster.TileRange(*zoom, lo, hi)
	n := (max.Y - min.Y + 1) * (max.X - min.X + 1)
	nw := raster.TileLatLng(*zoom, min.X, min.Y)
	se := raster.TileLatLng(*zoom, min.X+1, min.Y+1)
	width, height := raster.CellSize(nw, (se.X-nw.X)/raster.TileSize, (se.Y-nw.Y)/raster.TileSize)
	log.Printf("%d tiles, %.1f by %.1f m per pixel", n, width, height)

	log.Println("downloading tiles...")
	cache := raster.NewCache(*urlFlag, *cacheDir, *downloads)
	// stitching reads the east and south neighbours
	cache.EnsureTiles(*zoom, min, raster.IntPoint{X: max.X + 1, Y: max.Y + 1})
	if err := cache.Wait(); err != nil {
		log.Fatal(err)
	}

	log.Println("extracting isobands...")
	levels := cfg.GetLevels()
	var bands []isoband.Isoband
	i := 0
	for y := min.Y; y <= max.Y; y++ {
		for x := min.X; x <= max.X; x++ {
			tile, err := cache.GetStitchedTile(*zoom, x, y)
			if err != nil {
				log.Fatal(err)
			}
			grid, err := tile.Grid()
			if err != nil {
				log.Fatal(err)
			}
			var b []isoband.Isoband
			if w := cfg.GetWorkers(); w > 0 {
				b, err = grid.IsobandsN(levels, w)
			} else {
				b, err = grid.Isobands(levels)
			}
			if err != nil {
				log.Fatalf("tile %d/%d/%d: %v", *zoom, x, y, err)
			}
			bands = append(bands, b...)
			i++
			log.Printf("%d/%d tiles, elevation %g to %g, %d rings", i, n, tile.MinElevation, tile.MaxElevation, len(b))
		}
	}

	if path := cfg.GetShapefile(); path != "" {
		log.Println("writing shapefile...")
		if err := export.WriteShapefile(path, bands, levels); err != nil {
			log.Fatal(err)
		}
	}
	if path := cfg.GetGeoJSON(); path != "" {
		log.Println("writing geojson...")
		if err := export.WriteGeoJSON(path, bands, levels); err != nil {
			log.Fatal(err)
		}
	}
	if cfg.GetPNG() == "" && cfg.GetSVG() == "" {
		return
	}
	log.Println("projecting bands...")
	projected := render.Mercator(bands)
	opts := cfg.GetRenderOptions()
	opts.FlipY = true
	if path := cfg.GetPNG(); path != "" {
		log.Println("rendering png...")
		if err := render.SavePNG(path, projected, opts); err != nil {
			log.Fatal(err)
		}
	}
	if path := cfg.GetSVG(); path != "" {
		log.Println("rendering svg...")
		if err := render.SaveSVG(path, projected, opts); err != nil {
			log.Fatal(err)
		}
	}
}
