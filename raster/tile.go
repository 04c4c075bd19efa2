package raster

import (
	"image"
	"math"

	"github.com/fogleman/isoband"
	"gonum.org/v1/gonum/floats"
)

const TileSize = 256

// TileXY returns the slippy map tile containing p at zoom z.
func TileXY(z int, p Point) IntPoint {
	f := TileXYFloat(z, p)
	x := int(math.Floor(f.X))
	y := int(math.Floor(f.Y))
	return IntPoint{x, y}
}

func TileXYFloat(z int, p Point) Point {
	lat := radians(p.Y)
	n := math.Pow(2, float64(z))
	x := (p.X + 180) / 360 * n
	y := (1 - math.Log(math.Tan(lat)+(1/math.Cos(lat)))/math.Pi) / 2 * n
	return Point{x, y}
}

// TileLatLng returns the north west corner of tile (x, y) at zoom z.
func TileLatLng(z, x, y int) Point {
	return tileLatLngFloat(z, float64(x), float64(y))
}

func tileLatLngFloat(z int, x, y float64) Point {
	n := math.Pow(2, float64(z))
	lng := x/n*360 - 180
	lat := degrees(math.Atan(math.Sinh(math.Pi * (1 - 2*y/n))))
	return Point{lng, lat}
}

// TileRange returns the inclusive range of tiles covering the box spanned
// by a and b.
func TileRange(z int, a, b Point) (min, max IntPoint) {
	p0 := TileXY(z, a)
	p1 := TileXY(z, b)
	if p1.X < p0.X {
		p0.X, p1.X = p1.X, p0.X
	}
	if p1.Y < p0.Y {
		p0.Y, p1.Y = p1.Y, p0.Y
	}
	return p0, p1
}

// Tile is a decoded elevation tile. Stitched tiles carry one extra column
// and row taken from their east and south neighbours, so adjacent tiles
// share their border samples.
type Tile struct {
	Z, X, Y      int
	W, H         int
	Elevation    []float64
	MinElevation float64
	MaxElevation float64
}

func newTile(z, x, y int, im image.Image) *Tile {
	w := im.Bounds().Size().X
	h := im.Bounds().Size().Y
	elevation := TerrariumValues(im)
	lo, hi := minMax(elevation)
	return &Tile{z, x, y, w, h, elevation, lo, hi}
}

// Grid returns the tile elevations located at longitude and latitude of
// each pixel. Pixel (i, j) lies at fractional tile coordinate
// (X + i/TileSize, Y + j/TileSize).
func (tile *Tile) Grid() (*isoband.Grid, error) {
	xs := make([]float64, tile.W)
	ys := make([]float64, tile.H)
	for i := range xs {
		p := tileLatLngFloat(tile.Z, float64(tile.X)+float64(i)/TileSize, float64(tile.Y))
		xs[i] = p.X
	}
	for j := range ys {
		p := tileLatLngFloat(tile.Z, float64(tile.X), float64(tile.Y)+float64(j)/TileSize)
		ys[j] = p.Y
	}
	return isoband.NewGridData(xs, ys, tile.Elevation)
}

func minMax(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	return floats.Min(values), floats.Max(values)
}
