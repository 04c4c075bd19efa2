package render

import (
	"image/color"
	"strconv"

	"github.com/fogleman/isoband"
	"github.com/llgcode/draw2d/draw2dsvg"
)

func SVG(bands []isoband.Isoband, opts Options) (*draw2dsvg.Svg, error) {
	l, err := newLayout(bands, opts)
	if err != nil {
		return nil, err
	}
	palette := NewPalette(bands)
	svg := draw2dsvg.NewSvg()
	svg.Width = strconv.Itoa(l.w)
	svg.Height = strconv.Itoa(l.h)
	gc := draw2dsvg.NewGraphicContext(svg)
	gc.SetStrokeColor(color.Black)
	gc.SetLineWidth(opts.LineWidth)
	for _, b := range bands {
		gc.SetFillColor(palette.Color(b))
		gc.BeginPath()
		for i, p := range b.Ring {
			x, y := l.point(p)
			if i == 0 {
				gc.MoveTo(x, y)
			} else {
				gc.LineTo(x, y)
			}
		}
		gc.Close()
		if opts.LineWidth > 0 {
			gc.FillStroke()
		} else {
			gc.Fill()
		}
	}
	return svg, nil
}

func SaveSVG(path string, bands []isoband.Isoband, opts Options) error {
	svg, err := SVG(bands, opts)
	if err != nil {
		return err
	}
	return draw2dsvg.SaveToSvgFile(path, svg)
}
