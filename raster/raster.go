// Package raster turns elevation images and web map tiles into grids.
package raster

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/fogleman/isoband"
	"github.com/umahmood/haversine"
)

var (
	ErrEncoding  = errors.New("raster: unknown encoding")
	ErrDownscale = errors.New("raster: downscale factor must be in (0, 1]")
)

// Encoding tells how pixel colours map to values.
type Encoding int

const (
	// Gray16 reads the 16 bit gray level of each pixel.
	Gray16 Encoding = iota
	// Terrarium decodes elevation in meters as (R*256 + G + B/256) - 32768.
	Terrarium
)

func ParseEncoding(s string) (Encoding, error) {
	switch s {
	case "", "gray16":
		return Gray16, nil
	case "terrarium":
		return Terrarium, nil
	}
	return 0, fmt.Errorf("%q: %w", s, ErrEncoding)
}

func (e Encoding) String() string {
	switch e {
	case Gray16:
		return "gray16"
	case Terrarium:
		return "terrarium"
	}
	return fmt.Sprintf("Encoding(%d)", int(e))
}

// GeoTransform places pixels in world coordinates. The origin is the outer
// corner of the first pixel; values are sampled at pixel centres.
type GeoTransform struct {
	OriginX, OriginY        float64
	PixelWidth, PixelHeight float64
}

// Identity maps pixel (i, j) to (i + 0.5, j + 0.5).
var Identity = GeoTransform{0, 0, 1, 1}

// Axes returns the x coordinates of w columns and the y coordinates of
// h rows.
func (t GeoTransform) Axes(w, h int) (x, y []float64) {
	x = make([]float64, w)
	y = make([]float64, h)
	for i := range x {
		x[i] = t.OriginX + t.PixelWidth/2 + float64(i)*t.PixelWidth
	}
	for j := range y {
		y[j] = t.OriginY + t.PixelHeight/2 + float64(j)*t.PixelHeight
	}
	return x, y
}

// LoadImage reads an image file, shrinking it by the downscale factor
// when it is below 1.
func LoadImage(path string, downscale float64) (image.Image, error) {
	if downscale <= 0 || downscale > 1 {
		return nil, fmt.Errorf("%g: %w", downscale, ErrDownscale)
	}
	im, err := gg.LoadImage(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if downscale < 1 {
		w := int(float64(im.Bounds().Dx()) * downscale)
		h := int(float64(im.Bounds().Dy()) * downscale)
		im = imaging.Resize(im, w, h, imaging.NearestNeighbor)
	}
	return im, nil
}

// Values decodes the pixels of im in row-major order.
func Values(im image.Image, enc Encoding) ([]float64, error) {
	switch enc {
	case Gray16:
		return Gray16Values(im), nil
	case Terrarium:
		return TerrariumValues(im), nil
	}
	return nil, fmt.Errorf("%v: %w", enc, ErrEncoding)
}

func Gray16Values(im image.Image) []float64 {
	gray := ensureGray16(im)
	w := gray.Bounds().Size().X
	h := gray.Bounds().Size().Y
	buf := make([]float64, w*h)
	index := 0
	for y := 0; y < h; y++ {
		i := gray.PixOffset(gray.Rect.Min.X, gray.Rect.Min.Y+y)
		for x := 0; x < w; x++ {
			buf[index] = float64(int(gray.Pix[i])<<8 | int(gray.Pix[i+1]))
			index++
			i += 2
		}
	}
	return buf
}

func TerrariumValues(im image.Image) []float64 {
	rgba := ensureRGBA(im)
	w := rgba.Bounds().Size().X
	h := rgba.Bounds().Size().Y
	buf := make([]float64, w*h)
	index := 0
	for y := 0; y < h; y++ {
		i := rgba.PixOffset(rgba.Rect.Min.X, rgba.Rect.Min.Y+y)
		for x := 0; x < w; x++ {
			r := float64(rgba.Pix[i+0])
			g := float64(rgba.Pix[i+1])
			b := float64(rgba.Pix[i+2])
			buf[index] = (r*256 + g + b/256) - 32768
			index++
			i += 4
		}
	}
	return buf
}

// NewGrid decodes im and places its pixels with t.
func NewGrid(im image.Image, enc Encoding, t GeoTransform) (*isoband.Grid, error) {
	data, err := Values(im, enc)
	if err != nil {
		return nil, err
	}
	x, y := t.Axes(im.Bounds().Dx(), im.Bounds().Dy())
	return isoband.NewGridData(x, y, data)
}

// CellSize returns the ground size in meters of a dlng by dlat degree cell
// whose north west corner is p.
func CellSize(p Point, dlng, dlat float64) (width, height float64) {
	origin := haversine.Coord{Lat: p.Y, Lon: p.X}
	_, wKm := haversine.Distance(origin, haversine.Coord{Lat: p.Y, Lon: p.X + dlng})
	_, hKm := haversine.Distance(origin, haversine.Coord{Lat: p.Y + dlat, Lon: p.X})
	return wKm * 1000, hKm * 1000
}
