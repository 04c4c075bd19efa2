package render

import (
	"image"

	"github.com/fogleman/gg"
	"github.com/fogleman/isoband"
)

func PNG(bands []isoband.Isoband, opts Options) (image.Image, error) {
	l, err := newLayout(bands, opts)
	if err != nil {
		return nil, err
	}
	palette := NewPalette(bands)
	dc := gg.NewContext(l.w, l.h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	for _, b := range bands {
		dc.NewSubPath()
		for _, p := range b.Ring {
			dc.LineTo(l.point(p))
		}
		dc.ClosePath()
		dc.SetColor(palette.Color(b))
		if opts.LineWidth > 0 {
			dc.FillPreserve()
			dc.SetRGB(0, 0, 0)
			dc.SetLineWidth(opts.LineWidth)
			dc.Stroke()
		} else {
			dc.Fill()
		}
	}
	return dc.Image(), nil
}

func SavePNG(path string, bands []isoband.Isoband, opts Options) error {
	im, err := PNG(bands, opts)
	if err != nil {
		return err
	}
	return gg.SavePNG(path, im)
}
