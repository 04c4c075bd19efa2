// Command isobands vectorizes the isobands of an elevation image.
//
//	isobands -levels 200:600:20 -shp bands.shp dem.png
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fogleman/isoband"
	"github.com/fogleman/isoband/config"
	"github.com/fogleman/isoband/export"
	"github.com/fogleman/isoband/raster"
	"github.com/fogleman/isoband/render"
)

var (
	configPath = flag.String("config", "", "JSON config file")
	levelsFlag = flag.String("levels", "", "levels as start:stop:step or a comma separated list")
	workers    = flag.Int("workers", 0, "parallel cells, 0 for one per CPU")
	encoding   = flag.String("encoding", "", "pixel encoding: gray16 or terrarium")
	downscale  = flag.Float64("downscale", 1, "shrink the image by this factor first")
	shpPath    = flag.String("shp", "", "write a shapefile")
	jsonPath   = flag.String("geojson", "", "write a GeoJSON feature collection")
	pngPath    = flag.String("png", "", "render a PNG")
	svgPath    = flag.String("svg", "", "render an SVG")
	size       = flag.Int("size", 0, "rendered size in pixels")
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [flags] image\n", os.Args[0])
	flag.PrintDefaults()
}

// loadConfig reads the config file, if any, and lets flags set on the
// command line override it.
func loadConfig() (*config.Config, error) {
	cfg := config.Empty()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return nil, err
		}
	}
	var err error
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "levels":
			var levels isoband.Levels
			if levels, err = isoband.ParseLevels(*levelsFlag); err == nil {
				cfg.Levels = levels
				cfg.LevelsStart, cfg.LevelsStop, cfg.LevelsStep = nil, nil, nil
			}
		case "workers":
			cfg.Workers = workers
		case "encoding":
			cfg.Encoding = encoding
		case "downscale":
			cfg.Downscale = downscale
		case "shp":
			cfg.Shapefile = shpPath
		case "geojson":
			cfg.GeoJSON = jsonPath
		case "png":
			cfg.PNG = pngPath
		case "svg":
			cfg.SVG = svgPath
		case "size":
			cfg.RenderSize = size
		}
	})
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(path string, cfg *config.Config) error {
	im, err := raster.LoadImage(path, cfg.GetDownscale())
	if err != nil {
		return err
	}
	grid, err := raster.NewGrid(im, cfg.GetEncoding(), cfg.GetTransform())
	if err != nil {
		return err
	}
	lo, hi := grid.MinMax()
	log.Printf("%s: %dx%d, values %g to %g", path, grid.W, grid.H, lo, hi)

	levels := cfg.GetLevels()
	var bands []isoband.Isoband
	if n := cfg.GetWorkers(); n > 0 {
		bands, err = grid.IsobandsN(levels, n)
	} else {
		bands, err = grid.Isobands(levels)
	}
	if err != nil {
		return err
	}
	logBands(bands)
	return write(bands, levels, cfg)
}

func logBands(bands []isoband.Isoband) {
	counts := make(map[isoband.Band]int)
	var order []isoband.Band
	for _, b := range bands {
		band := isoband.Band{Low: b.Low, High: b.High}
		if counts[band] == 0 {
			order = append(order, band)
		}
		counts[band]++
	}
	for _, band := range order {
		log.Printf("z: %g to %g, %d rings", band.Low, band.High, counts[band])
	}
	log.Printf("%d rings", len(bands))
}

func write(bands []isoband.Isoband, levels isoband.Levels, cfg *config.Config) error {
	wrote := false
	if path := cfg.GetShapefile(); path != "" {
		log.Println("writing shapefile...")
		if err := export.WriteShapefile(path, bands, levels); err != nil {
			return err
		}
		wrote = true
	}
	if path := cfg.GetGeoJSON(); path != "" {
		log.Println("writing geojson...")
		if err := export.WriteGeoJSON(path, bands, levels); err != nil {
			return err
		}
		wrote = true
	}
	opts := cfg.GetRenderOptions()
	pngOut := cfg.GetPNG()
	if pngOut == "" && !wrote && cfg.GetSVG() == "" {
		pngOut = "out.png"
	}
	if pngOut != "" {
		log.Println("writing png...")
		if err := render.SavePNG(pngOut, bands, opts); err != nil {
			return err
		}
	}
	if path := cfg.GetSVG(); path != "" {
		log.Println("writing svg...")
		if err := render.SaveSVG(path, bands, opts); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := run(flag.Arg(0), cfg); err != nil {
		log.Fatalf("isobands: %v", err)
	}
}
