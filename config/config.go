// Package config loads the settings shared by the isoband commands from a
// JSON file. Omitted fields take their defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fogleman/isoband"
	"github.com/fogleman/isoband/raster"
	"github.com/fogleman/isoband/render"
)

var ErrInvalid = errors.New("config: invalid")

const maxFileSize = 1 * 1024 * 1024

type Config struct {
	Levels      []float64 `json:"levels,omitempty"`
	LevelsStart *float64  `json:"levels_start,omitempty"`
	LevelsStop  *float64  `json:"levels_stop,omitempty"`
	LevelsStep  *float64  `json:"levels_step,omitempty"`

	Workers  *int    `json:"workers,omitempty"`  // 0 uses every CPU
	Encoding *string `json:"encoding,omitempty"` // "gray16" or "terrarium"

	OriginX     *float64 `json:"origin_x,omitempty"`
	OriginY     *float64 `json:"origin_y,omitempty"`
	PixelWidth  *float64 `json:"pixel_width,omitempty"`
	PixelHeight *float64 `json:"pixel_height,omitempty"`
	Downscale   *float64 `json:"downscale,omitempty"`

	Shapefile *string `json:"shapefile,omitempty"`
	GeoJSON   *string `json:"geojson,omitempty"`
	PNG       *string `json:"png,omitempty"`
	SVG       *string `json:"svg,omitempty"`

	RenderSize      *int     `json:"render_size,omitempty"`
	RenderPadding   *int     `json:"render_padding,omitempty"`
	RenderLineWidth *float64 `json:"render_line_width,omitempty"`
}

func ptrFloat64(v float64) *float64 { return &v }
func ptrInt(v int) *int             { return &v }
func ptrString(v string) *string    { return &v }

func Empty() *Config {
	return &Config{}
}

func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Empty()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	ranged := c.LevelsStart != nil || c.LevelsStop != nil || c.LevelsStep != nil
	if ranged {
		if len(c.Levels) > 0 {
			return fmt.Errorf("%w: levels and levels_start/stop/step are exclusive", ErrInvalid)
		}
		if c.LevelsStart == nil || c.LevelsStop == nil || c.LevelsStep == nil {
			return fmt.Errorf("%w: levels_start, levels_stop and levels_step go together", ErrInvalid)
		}
		if *c.LevelsStep <= 0 {
			return fmt.Errorf("%w: levels_step must be positive, got %g", ErrInvalid, *c.LevelsStep)
		}
		if *c.LevelsStop <= *c.LevelsStart {
			return fmt.Errorf("%w: levels_stop must exceed levels_start", ErrInvalid)
		}
	}

	if c.Workers != nil && *c.Workers < 0 {
		return fmt.Errorf("%w: workers must be non-negative, got %d", ErrInvalid, *c.Workers)
	}

	if c.Encoding != nil {
		if _, err := raster.ParseEncoding(*c.Encoding); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalid, err)
		}
	}

	if c.PixelWidth != nil && *c.PixelWidth == 0 {
		return fmt.Errorf("%w: pixel_width must not be zero", ErrInvalid)
	}
	if c.PixelHeight != nil && *c.PixelHeight == 0 {
		return fmt.Errorf("%w: pixel_height must not be zero", ErrInvalid)
	}

	if c.Downscale != nil && (*c.Downscale <= 0 || *c.Downscale > 1) {
		return fmt.Errorf("%w: downscale must be in (0, 1], got %g", ErrInvalid, *c.Downscale)
	}

	if c.RenderSize != nil && *c.RenderSize <= 0 {
		return fmt.Errorf("%w: render_size must be positive, got %d", ErrInvalid, *c.RenderSize)
	}
	if c.RenderPadding != nil && (*c.RenderPadding < 0 || 2**c.RenderPadding >= c.GetRenderSize()) {
		return fmt.Errorf("%w: render_padding %d does not fit render_size %d", ErrInvalid, *c.RenderPadding, c.GetRenderSize())
	}
	if c.RenderLineWidth != nil && *c.RenderLineWidth < 0 {
		return fmt.Errorf("%w: render_line_width must be non-negative", ErrInvalid)
	}
	return nil
}

// GetLevels returns the explicit levels, or the range they describe. The
// default is 0 to 65500 by 100, spanning 16 bit gray levels.
func (c *Config) GetLevels() isoband.Levels {
	if len(c.Levels) > 0 {
		return isoband.NewLevels(c.Levels)
	}
	if c.LevelsStart != nil && c.LevelsStop != nil && c.LevelsStep != nil {
		return isoband.Range(*c.LevelsStart, *c.LevelsStop, *c.LevelsStep)
	}
	return isoband.Range(0, 65535, 100)
}

func (c *Config) GetWorkers() int {
	if c.Workers == nil {
		return 0
	}
	return *c.Workers
}

func (c *Config) GetEncoding() raster.Encoding {
	if c.Encoding == nil {
		return raster.Gray16
	}
	enc, err := raster.ParseEncoding(*c.Encoding)
	if err != nil {
		return raster.Gray16
	}
	return enc
}

func (c *Config) GetTransform() raster.GeoTransform {
	t := raster.Identity
	if c.OriginX != nil {
		t.OriginX = *c.OriginX
	}
	if c.OriginY != nil {
		t.OriginY = *c.OriginY
	}
	if c.PixelWidth != nil {
		t.PixelWidth = *c.PixelWidth
	}
	if c.PixelHeight != nil {
		t.PixelHeight = *c.PixelHeight
	}
	return t
}

func (c *Config) GetDownscale() float64 {
	if c.Downscale == nil {
		return 1
	}
	return *c.Downscale
}

func (c *Config) GetShapefile() string { return stringOr(c.Shapefile, "") }
func (c *Config) GetGeoJSON() string   { return stringOr(c.GeoJSON, "") }
func (c *Config) GetPNG() string       { return stringOr(c.PNG, "") }
func (c *Config) GetSVG() string       { return stringOr(c.SVG, "") }

func (c *Config) GetRenderSize() int {
	if c.RenderSize == nil {
		return render.DefaultOptions.Size
	}
	return *c.RenderSize
}

// GetRenderOptions returns the drawing options. Geographic transforms, whose
// rows run southwards, are drawn north up.
func (c *Config) GetRenderOptions() render.Options {
	opts := render.DefaultOptions
	opts.Size = c.GetRenderSize()
	if c.RenderPadding != nil {
		opts.Padding = *c.RenderPadding
	}
	if c.RenderLineWidth != nil {
		opts.LineWidth = *c.RenderLineWidth
	}
	opts.FlipY = c.GetTransform().PixelHeight < 0
	return opts
}

func stringOr(s *string, def string) string {
	if s == nil {
		return def
	}
	return *s
}
