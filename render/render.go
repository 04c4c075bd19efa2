// Package render draws isobands as filled polygons.
package render

import (
	"errors"
	"image/color"
	"math"

	"github.com/fogleman/isoband"
	"github.com/fogleman/maps"
)

var ErrEmpty = errors.New("render: nothing to draw")

type Options struct {
	// Size bounds the larger side of the output in pixels.
	Size      int
	Padding   int
	LineWidth float64
	// FlipY draws larger y upwards, as for geographic coordinates.
	FlipY bool
}

var DefaultOptions = Options{Size: 1600, Padding: 0, LineWidth: 1}

// Mercator returns a copy of bands with longitude and latitude projected
// to web Mercator. Projected y grows northwards; draw it with FlipY.
func Mercator(bands []isoband.Isoband) []isoband.Isoband {
	proj := maps.NewMercatorProjection()
	sy := 1.0
	if proj.Project(maps.Point{X: 0, Y: 45}).Y < proj.Project(maps.Point{X: 0, Y: -45}).Y {
		sy = -1
	}
	result := make([]isoband.Isoband, len(bands))
	for i, b := range bands {
		ring := make(isoband.Ring, len(b.Ring))
		for j, p := range b.Ring {
			q := proj.Project(maps.Point{X: p.X, Y: p.Y})
			ring[j] = isoband.Point{X: q.X, Y: sy * q.Y, Z: p.Z}
		}
		result[i] = isoband.Isoband{Low: b.Low, High: b.High, Ring: ring}
	}
	return result
}

type layout struct {
	x0, y0, x1, y1 float64
	scale          float64
	w, h           int
	opts           Options
}

func newLayout(bands []isoband.Isoband, opts Options) (*layout, error) {
	if len(bands) == 0 {
		return nil, ErrEmpty
	}
	b := bands[0].Ring.Bounds()
	for _, band := range bands[1:] {
		r := band.Ring.Bounds()
		b = b.Extend(r.Min).Extend(r.Max)
	}
	pw, ph := b.Size()
	if pw == 0 || ph == 0 {
		return nil, ErrEmpty
	}
	sx := float64(opts.Size-opts.Padding*2) / pw
	sy := float64(opts.Size-opts.Padding*2) / ph
	scale := math.Min(sx, sy)
	w := int(pw*scale) + opts.Padding*2
	h := int(ph*scale) + opts.Padding*2
	return &layout{b.Min.X, b.Min.Y, b.Max.X, b.Max.Y, scale, w, h, opts}, nil
}

// point maps p to pixel coordinates.
func (l *layout) point(p isoband.Point) (float64, float64) {
	pad := float64(l.opts.Padding)
	x := pad + (p.X-l.x0)*l.scale
	y := pad + (p.Y-l.y0)*l.scale
	if l.opts.FlipY {
		y = pad + (l.y1-p.Y)*l.scale
	}
	return x, y
}

var ramp = []color.NRGBA{
	{0x2c, 0x7b, 0xb6, 0xff},
	{0xab, 0xd9, 0xe9, 0xff},
	{0xff, 0xff, 0xbf, 0xff},
	{0xfd, 0xae, 0x61, 0xff},
	{0xd7, 0x19, 0x1c, 0xff},
}

// Palette assigns each band a colour along a blue to red ramp by the
// position of its lower level among levels.
type Palette struct {
	lo, hi float64
}

func NewPalette(bands []isoband.Isoband) Palette {
	if len(bands) == 0 {
		return Palette{}
	}
	p := Palette{bands[0].Low, bands[0].Low}
	for _, b := range bands {
		p.lo = math.Min(p.lo, b.Low)
		p.hi = math.Max(p.hi, b.Low)
	}
	return p
}

func (p Palette) Color(b isoband.Isoband) color.NRGBA {
	t := 0.0
	if p.hi > p.lo {
		t = (b.Low - p.lo) / (p.hi - p.lo)
	}
	t = math.Max(0, math.Min(1, t)) * float64(len(ramp)-1)
	i := int(t)
	if i >= len(ramp)-1 {
		return ramp[len(ramp)-1]
	}
	return lerp(ramp[i], ramp[i+1], t-float64(i))
}

func lerp(a, b color.NRGBA, t float64) color.NRGBA {
	mix := func(u, v uint8) uint8 {
		return uint8(math.Round(float64(u) + (float64(v)-float64(u))*t))
	}
	return color.NRGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), mix(a.A, b.A)}
}
